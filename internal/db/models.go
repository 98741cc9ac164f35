package db

import (
	"time"

	"github.com/guregu/null/v6"
)

type Transfer struct {
	ID           string      `json:"id"`
	ObjectKey    string      `json:"object_key"`
	Status       string      `json:"status"`
	TotalBytes   int64       `json:"total_bytes"`
	BytesRead    int64       `json:"bytes_read"`
	Fraction     float64     `json:"fraction"`
	RateBps      null.Float  `json:"rate_bps"`
	FileHash     null.String `json:"file_hash"`
	ErrorMessage null.String `json:"error_message"`
	StartedAt    time.Time   `json:"started_at"`
	CompletedAt  null.Time   `json:"completed_at"`
}
