package db

import (
	"context"
	"time"

	"github.com/google/uuid"
)

const createAuctionEvent = `-- name: CreateAuctionEvent :one
INSERT INTO auction_events (id, auction_id, seq, type, data)
VALUES ($1, $2,
        (SELECT COALESCE(MAX(seq), 0) + 1 FROM auction_events WHERE auction_id = $2),
        $3, $4)
RETURNING id, auction_id, seq, type, data, created_at
`

type CreateAuctionEventParams struct {
	ID        uuid.UUID `json:"id"`
	AuctionID uuid.UUID `json:"auction_id"`
	Type      string    `json:"type"`
	Data      []byte    `json:"data"`
}

// CreateAuctionEvent appends an event with the next per-auction seq.
// The seq subquery is only race-free while the caller holds the auction
// row lock, which every coordinator transaction does.
func (q *Queries) CreateAuctionEvent(ctx context.Context, arg CreateAuctionEventParams) (AuctionEvent, error) {
	row := q.db.QueryRow(ctx, createAuctionEvent,
		arg.ID,
		arg.AuctionID,
		arg.Type,
		arg.Data,
	)
	var i AuctionEvent
	err := row.Scan(
		&i.ID,
		&i.AuctionID,
		&i.Seq,
		&i.Type,
		&i.Data,
		&i.CreatedAt,
	)
	return i, err
}

const listAuctionEventsSince = `-- name: ListAuctionEventsSince :many
SELECT id, auction_id, seq, type, data, created_at
FROM auction_events
WHERE auction_id = $1
  AND created_at > $2
ORDER BY created_at, seq
`

type ListAuctionEventsSinceParams struct {
	AuctionID uuid.UUID `json:"auction_id"`
	Since     time.Time `json:"since"`
}

func (q *Queries) ListAuctionEventsSince(ctx context.Context, arg ListAuctionEventsSinceParams) ([]AuctionEvent, error) {
	rows, err := q.db.Query(ctx, listAuctionEventsSince, arg.AuctionID, arg.Since)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	items := []AuctionEvent{}
	for rows.Next() {
		var i AuctionEvent
		if err := rows.Scan(
			&i.ID,
			&i.AuctionID,
			&i.Seq,
			&i.Type,
			&i.Data,
			&i.CreatedAt,
		); err != nil {
			return nil, err
		}
		items = append(items, i)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return items, nil
}
