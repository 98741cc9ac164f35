package response

import (
	"net/http"

	"github.com/bytedance/sonic"

	"github.com/beanbocchi/flowmeter/internal/model"
)

type CommonResponse struct {
	Data  any          `json:"data,omitempty"`
	Error *model.Error `json:"error"`
}

func write(w http.ResponseWriter, status int, body CommonResponse) error {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)

	payload, err := sonic.Marshal(body)
	if err != nil {
		return err
	}
	_, err = w.Write(payload)
	return err
}

// FromData writes a success envelope around data.
func FromData(w http.ResponseWriter, status int, data any) error {
	return write(w, status, CommonResponse{Data: data})
}

// FromMessage writes a success envelope with a plain message.
func FromMessage(w http.ResponseWriter, status int, message string) error {
	return FromData(w, status, map[string]string{"message": message})
}

// FromError writes an error envelope, preserving the error code when the
// error carries one.
func FromError(w http.ResponseWriter, status int, err error) error {
	e := model.Error{ErrCode: "internal", Message: err.Error()}
	if coded, ok := err.(model.ErrorWithCode); ok {
		e = model.NewError(coded.Code(), coded.Error())
	}
	return write(w, status, CommonResponse{Error: &e})
}
