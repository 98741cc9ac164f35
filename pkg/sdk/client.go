package sdk

import (
	"encoding/hex"
	"encoding/json"
	"fmt"
	"io"
	"mime/multipart"
	"net/http"
	"net/url"
	"strconv"
	"time"

	"github.com/google/uuid"
	"github.com/guregu/null/v6"
	"github.com/zeebo/blake3"

	"github.com/beanbocchi/flowmeter/pkg/meter"
	"github.com/beanbocchi/flowmeter/pkg/response"
)

// Client is the flowmeter SDK client
type Client struct {
	baseURL    string
	httpClient *http.Client
}

// NewClient creates a new SDK client
// baseURL is the base URL of the API, e.g., "http://localhost:8080/api/v1"
func NewClient(baseURL string) *Client {
	return &Client{
		baseURL: baseURL,
		httpClient: &http.Client{
			Timeout: 30 * time.Second,
		},
	}
}

// NewClientWithHTTPClient creates an SDK client with a custom HTTP client
func NewClientWithHTTPClient(baseURL string, httpClient *http.Client) *Client {
	return &Client{
		baseURL:    baseURL,
		httpClient: httpClient,
	}
}

// Transfer mirrors the server's transfer record.
type Transfer struct {
	ID           uuid.UUID   `json:"id"`
	ObjectKey    string      `json:"object_key"`
	Status       string      `json:"status"`
	TotalBytes   int64       `json:"total_bytes"`
	BytesRead    int64       `json:"bytes_read"`
	Fraction     float64     `json:"fraction"`
	RateBps      null.Float  `json:"rate_bps"`
	EtaSeconds   null.Float  `json:"eta_seconds"`
	ProjectedEnd null.Time   `json:"projected_end"`
	StartedAt    time.Time   `json:"started_at"`
	CompletedAt  null.Time   `json:"completed_at"`
	FileHash     null.String `json:"file_hash"`
	ErrorMessage null.String `json:"error_message"`
}

// UploadRequest is the request parameters for Upload
type UploadRequest struct {
	ObjectKey string
	File      io.Reader
	FileName  string
}

// UploadResponse is the response from Upload
type UploadResponse struct {
	Transfer Transfer
	// Hash is the blake3 digest computed client-side while streaming,
	// for comparison against the server's file_hash.
	Hash string
}

// Upload streams a file to the server under the given object key.
func (c *Client) Upload(req UploadRequest) (*UploadResponse, error) {
	// Stream multipart to avoid buffering whole file in memory.
	pr, pw := io.Pipe()
	writer := multipart.NewWriter(pw)
	hasher := blake3.New()
	writeErr := make(chan error, 1)

	fileName := req.FileName
	if fileName == "" {
		fileName = req.ObjectKey
	}

	go func() {
		defer close(writeErr)
		defer pw.Close()

		if err := writer.WriteField("object_key", req.ObjectKey); err != nil {
			pw.CloseWithError(err)
			writeErr <- fmt.Errorf("write object_key: %w", err)
			return
		}

		part, err := writer.CreateFormFile("file", fileName)
		if err != nil {
			pw.CloseWithError(err)
			writeErr <- fmt.Errorf("create form file: %w", err)
			return
		}

		// Hash while streaming to minimize RAM usage.
		if _, err := io.Copy(part, io.TeeReader(req.File, hasher)); err != nil {
			pw.CloseWithError(err)
			writeErr <- fmt.Errorf("copy file: %w", err)
			return
		}

		if err := writer.Close(); err != nil {
			pw.CloseWithError(err)
			writeErr <- fmt.Errorf("close writer: %w", err)
			return
		}
	}()

	httpReq, err := http.NewRequest("POST", fmt.Sprintf("%s/transfers", c.baseURL), pr)
	if err != nil {
		<-writeErr
		return nil, fmt.Errorf("create request: %w", err)
	}
	httpReq.Header.Set("Content-Type", writer.FormDataContentType())

	resp, err := c.httpClient.Do(httpReq)
	if err != nil {
		// Ensure writer goroutine finishes.
		<-writeErr
		return nil, err
	}
	defer resp.Body.Close()

	if wErr := <-writeErr; wErr != nil {
		return nil, wErr
	}

	var commonResp response.CommonResponse
	if err := json.NewDecoder(resp.Body).Decode(&commonResp); err != nil {
		return nil, fmt.Errorf("decode response: %w", err)
	}
	if resp.StatusCode >= http.StatusBadRequest && commonResp.Error == nil {
		return nil, fmt.Errorf("request failed with status code: %d", resp.StatusCode)
	}
	if commonResp.Error != nil {
		return nil, commonResp.Error
	}

	var transfer Transfer
	if err := decodeData(commonResp.Data, &transfer); err != nil {
		return nil, err
	}

	return &UploadResponse{
		Transfer: transfer,
		Hash:     hex.EncodeToString(hasher.Sum(nil)),
	}, nil
}

// Progress fetches the current progress of a transfer.
func (c *Client) Progress(transferID uuid.UUID) (*Transfer, error) {
	resp, err := c.doGET(fmt.Sprintf("/transfers/%s", transferID), nil)
	if err != nil {
		return nil, err
	}

	var transfer Transfer
	if err := decodeData(resp.Data, &transfer); err != nil {
		return nil, err
	}
	return &transfer, nil
}

// ListTransfers fetches a page of transfer records.
func (c *Client) ListTransfers(page, limit int32) ([]Transfer, error) {
	query := map[string]string{}
	if page > 0 {
		query["page"] = strconv.FormatInt(int64(page), 10)
	}
	if limit > 0 {
		query["limit"] = strconv.FormatInt(int64(limit), 10)
	}

	resp, err := c.doGET("/transfers", query)
	if err != nil {
		return nil, err
	}

	var paged response.PaginationResponse[Transfer]
	if err := decodeData(resp.Data, &paged); err != nil {
		return nil, err
	}
	return paged.Data, nil
}

// Download fetches an object as a metered stream sized from Content-Length,
// so the caller can watch fraction, rate and ETA while draining it. Close
// the returned reader to release the connection.
func (c *Client) Download(objectKey string) (*meter.Reader, error) {
	reqURL := fmt.Sprintf("%s/objects/%s", c.baseURL, url.PathEscape(objectKey))
	httpReq, err := http.NewRequest("GET", reqURL, nil)
	if err != nil {
		return nil, fmt.Errorf("create request: %w", err)
	}

	resp, err := c.httpClient.Do(httpReq)
	if err != nil {
		return nil, fmt.Errorf("send request: %w", err)
	}

	if resp.StatusCode != http.StatusOK {
		defer resp.Body.Close()
		var commonResp response.CommonResponse
		if err := json.NewDecoder(resp.Body).Decode(&commonResp); err == nil && commonResp.Error != nil {
			return nil, commonResp.Error
		}
		return nil, fmt.Errorf("download failed with status code: %d", resp.StatusCode)
	}

	return meter.NewReader(resp.Body, resp.ContentLength), nil
}
