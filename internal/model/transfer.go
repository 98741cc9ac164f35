package model

import (
	"time"

	"github.com/google/uuid"
	"github.com/guregu/null/v6"
)

type TransferStatus string

const (
	TransferPending   TransferStatus = "pending"
	TransferRunning   TransferStatus = "running"
	TransferCompleted TransferStatus = "completed"
	TransferFailed    TransferStatus = "failed"
)

// TransferProgress is the API view of a metered transfer. Rate, ETA and the
// projected end stay null while the estimate is undefined (no bytes moved
// yet) and are frozen at their last observed values once the transfer ends.
type TransferProgress struct {
	ID           uuid.UUID      `json:"id"`
	ObjectKey    string         `json:"object_key"`
	Status       TransferStatus `json:"status"`
	TotalBytes   int64          `json:"total_bytes"`
	BytesRead    int64          `json:"bytes_read"`
	Fraction     float64        `json:"fraction"`
	RateBps      null.Float     `json:"rate_bps"`
	EtaSeconds   null.Float     `json:"eta_seconds"`
	ProjectedEnd null.Time      `json:"projected_end"`
	StartedAt    time.Time      `json:"started_at"`
	CompletedAt  null.Time      `json:"completed_at"`
	FileHash     null.String    `json:"file_hash"`
	ErrorMessage null.String    `json:"error_message"`
}
