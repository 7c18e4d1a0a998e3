package db

import (
	"context"

	"github.com/google/uuid"
)

const addQueueEntry = `-- name: AddQueueEntry :one
INSERT INTO auction_queue_entries (auction_id, player_id, position)
VALUES ($1, $2,
        (SELECT COALESCE(MAX(position), 0) + 1 FROM auction_queue_entries WHERE auction_id = $1))
RETURNING auction_id, player_id, position
`

type AddQueueEntryParams struct {
	AuctionID uuid.UUID `json:"auction_id"`
	PlayerID  uuid.UUID `json:"player_id"`
}

func (q *Queries) AddQueueEntry(ctx context.Context, arg AddQueueEntryParams) (AuctionQueueEntry, error) {
	row := q.db.QueryRow(ctx, addQueueEntry, arg.AuctionID, arg.PlayerID)
	var i AuctionQueueEntry
	err := row.Scan(&i.AuctionID, &i.PlayerID, &i.Position)
	return i, err
}

const deleteQueueEntry = `-- name: DeleteQueueEntry :execrows
DELETE
FROM auction_queue_entries
WHERE auction_id = $1
  AND player_id = $2
`

type DeleteQueueEntryParams struct {
	AuctionID uuid.UUID `json:"auction_id"`
	PlayerID  uuid.UUID `json:"player_id"`
}

func (q *Queries) DeleteQueueEntry(ctx context.Context, arg DeleteQueueEntryParams) (int64, error) {
	result, err := q.db.Exec(ctx, deleteQueueEntry, arg.AuctionID, arg.PlayerID)
	if err != nil {
		return 0, err
	}
	return result.RowsAffected(), nil
}

const getQueueHead = `-- name: GetQueueHead :one
SELECT auction_id, player_id, position
FROM auction_queue_entries
WHERE auction_id = $1
ORDER BY position
LIMIT 1
`

func (q *Queries) GetQueueHead(ctx context.Context, auctionID uuid.UUID) (AuctionQueueEntry, error) {
	row := q.db.QueryRow(ctx, getQueueHead, auctionID)
	var i AuctionQueueEntry
	err := row.Scan(&i.AuctionID, &i.PlayerID, &i.Position)
	return i, err
}

const listQueueEntries = `-- name: ListQueueEntries :many
SELECT auction_id, player_id, position
FROM auction_queue_entries
WHERE auction_id = $1
ORDER BY position
`

func (q *Queries) ListQueueEntries(ctx context.Context, auctionID uuid.UUID) ([]AuctionQueueEntry, error) {
	rows, err := q.db.Query(ctx, listQueueEntries, auctionID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	items := []AuctionQueueEntry{}
	for rows.Next() {
		var i AuctionQueueEntry
		if err := rows.Scan(&i.AuctionID, &i.PlayerID, &i.Position); err != nil {
			return nil, err
		}
		items = append(items, i)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return items, nil
}

const updateQueuePosition = `-- name: UpdateQueuePosition :exec
UPDATE auction_queue_entries
SET position = $3
WHERE auction_id = $1
  AND player_id = $2
`

type UpdateQueuePositionParams struct {
	AuctionID uuid.UUID `json:"auction_id"`
	PlayerID  uuid.UUID `json:"player_id"`
	Position  int32     `json:"position"`
}

func (q *Queries) UpdateQueuePosition(ctx context.Context, arg UpdateQueuePositionParams) error {
	_, err := q.db.Exec(ctx, updateQueuePosition, arg.AuctionID, arg.PlayerID, arg.Position)
	return err
}
