package db

import (
	"context"
	"time"
)

const createTransfer = `
INSERT INTO transfers (
	id, object_key, status, total_bytes, bytes_read, fraction, started_at
) VALUES (?, ?, ?, ?, 0, 0, ?)
RETURNING id, object_key, status, total_bytes, bytes_read, fraction, rate_bps, file_hash, error_message, started_at, completed_at
`

type CreateTransferParams struct {
	ID         string
	ObjectKey  string
	Status     string
	TotalBytes int64
	StartedAt  time.Time
}

func (q *Queries) CreateTransfer(ctx context.Context, arg CreateTransferParams) (Transfer, error) {
	row := q.db.QueryRowContext(ctx, createTransfer,
		arg.ID,
		arg.ObjectKey,
		arg.Status,
		arg.TotalBytes,
		arg.StartedAt,
	)
	var t Transfer
	err := row.Scan(
		&t.ID,
		&t.ObjectKey,
		&t.Status,
		&t.TotalBytes,
		&t.BytesRead,
		&t.Fraction,
		&t.RateBps,
		&t.FileHash,
		&t.ErrorMessage,
		&t.StartedAt,
		&t.CompletedAt,
	)
	return t, err
}

const getTransfer = `
SELECT id, object_key, status, total_bytes, bytes_read, fraction, rate_bps, file_hash, error_message, started_at, completed_at
FROM transfers
WHERE id = ?
`

func (q *Queries) GetTransfer(ctx context.Context, id string) (Transfer, error) {
	row := q.db.QueryRowContext(ctx, getTransfer, id)
	var t Transfer
	err := row.Scan(
		&t.ID,
		&t.ObjectKey,
		&t.Status,
		&t.TotalBytes,
		&t.BytesRead,
		&t.Fraction,
		&t.RateBps,
		&t.FileHash,
		&t.ErrorMessage,
		&t.StartedAt,
		&t.CompletedAt,
	)
	return t, err
}

const updateTransfer = `
UPDATE transfers SET
	status = COALESCE(?, status),
	bytes_read = COALESCE(?, bytes_read),
	fraction = COALESCE(?, fraction),
	rate_bps = COALESCE(?, rate_bps),
	file_hash = COALESCE(?, file_hash),
	error_message = COALESCE(?, error_message),
	completed_at = COALESCE(?, completed_at)
WHERE id = ?
`

type UpdateTransferParams struct {
	ID           string
	Status       *string
	BytesRead    *int64
	Fraction     *float64
	RateBps      *float64
	FileHash     *string
	ErrorMessage *string
	CompletedAt  *time.Time
}

func (q *Queries) UpdateTransfer(ctx context.Context, arg UpdateTransferParams) error {
	_, err := q.db.ExecContext(ctx, updateTransfer,
		arg.Status,
		arg.BytesRead,
		arg.Fraction,
		arg.RateBps,
		arg.FileHash,
		arg.ErrorMessage,
		arg.CompletedAt,
		arg.ID,
	)
	return err
}

const listTransfers = `
SELECT id, object_key, status, total_bytes, bytes_read, fraction, rate_bps, file_hash, error_message, started_at, completed_at
FROM transfers
ORDER BY started_at DESC
LIMIT ? OFFSET ?
`

type ListTransfersParams struct {
	Limit  int64
	Offset int64
}

func (q *Queries) ListTransfers(ctx context.Context, arg ListTransfersParams) ([]Transfer, error) {
	rows, err := q.db.QueryContext(ctx, listTransfers, arg.Limit, arg.Offset)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	var items []Transfer
	for rows.Next() {
		var t Transfer
		if err := rows.Scan(
			&t.ID,
			&t.ObjectKey,
			&t.Status,
			&t.TotalBytes,
			&t.BytesRead,
			&t.Fraction,
			&t.RateBps,
			&t.FileHash,
			&t.ErrorMessage,
			&t.StartedAt,
			&t.CompletedAt,
		); err != nil {
			return nil, err
		}
		items = append(items, t)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return items, nil
}

const countTransfers = `
SELECT COUNT(*) FROM transfers
`

func (q *Queries) CountTransfers(ctx context.Context) (int64, error) {
	row := q.db.QueryRowContext(ctx, countTransfers)
	var count int64
	err := row.Scan(&count)
	return count, err
}
