package db

import (
	"context"

	"github.com/google/uuid"
)

const createBid = `-- name: CreateBid :one
INSERT INTO bids (id, auction_id, player_id, bidder_team_id, bidder_name, amount, bid_type, status, bid_order)
VALUES ($1, $2, $3, $4, $5, $6, $7, 'active', $8)
RETURNING id, auction_id, player_id, bidder_team_id, bidder_name, amount, bid_type, status, bid_order, created_at
`

type CreateBidParams struct {
	ID           uuid.UUID `json:"id"`
	AuctionID    uuid.UUID `json:"auction_id"`
	PlayerID     uuid.UUID `json:"player_id"`
	BidderTeamID uuid.UUID `json:"bidder_team_id"`
	BidderName   string    `json:"bidder_name"`
	Amount       int64     `json:"amount"`
	BidType      BidType   `json:"bid_type"`
	BidOrder     int32     `json:"bid_order"`
}

func (q *Queries) CreateBid(ctx context.Context, arg CreateBidParams) (Bid, error) {
	row := q.db.QueryRow(ctx, createBid,
		arg.ID,
		arg.AuctionID,
		arg.PlayerID,
		arg.BidderTeamID,
		arg.BidderName,
		arg.Amount,
		arg.BidType,
		arg.BidOrder,
	)
	var i Bid
	err := row.Scan(
		&i.ID,
		&i.AuctionID,
		&i.PlayerID,
		&i.BidderTeamID,
		&i.BidderName,
		&i.Amount,
		&i.BidType,
		&i.Status,
		&i.BidOrder,
		&i.CreatedAt,
	)
	return i, err
}

const getBidByID = `-- name: GetBidByID :one
SELECT id, auction_id, player_id, bidder_team_id, bidder_name, amount, bid_type, status, bid_order, created_at
FROM bids
WHERE id = $1
`

func (q *Queries) GetBidByID(ctx context.Context, id uuid.UUID) (Bid, error) {
	row := q.db.QueryRow(ctx, getBidByID, id)
	var i Bid
	err := row.Scan(
		&i.ID,
		&i.AuctionID,
		&i.PlayerID,
		&i.BidderTeamID,
		&i.BidderName,
		&i.Amount,
		&i.BidType,
		&i.Status,
		&i.BidOrder,
		&i.CreatedAt,
	)
	return i, err
}

const getLastBidOrder = `-- name: GetLastBidOrder :one
SELECT COALESCE(MAX(bid_order), 0)::int
FROM bids
WHERE auction_id = $1
  AND player_id = $2
`

type GetLastBidOrderParams struct {
	AuctionID uuid.UUID `json:"auction_id"`
	PlayerID  uuid.UUID `json:"player_id"`
}

// GetLastBidOrder returns the highest bid_order assigned for a lot so far,
// 0 when the lot has no bids. Callers must hold the auction row lock for
// the result to be usable as the basis of the next bid_order.
func (q *Queries) GetLastBidOrder(ctx context.Context, arg GetLastBidOrderParams) (int32, error) {
	row := q.db.QueryRow(ctx, getLastBidOrder, arg.AuctionID, arg.PlayerID)
	var bidOrder int32
	err := row.Scan(&bidOrder)
	return bidOrder, err
}

const listBidsForLot = `-- name: ListBidsForLot :many
SELECT id, auction_id, player_id, bidder_team_id, bidder_name, amount, bid_type, status, bid_order, created_at
FROM bids
WHERE auction_id = $1
  AND player_id = $2
ORDER BY bid_order
`

type ListBidsForLotParams struct {
	AuctionID uuid.UUID `json:"auction_id"`
	PlayerID  uuid.UUID `json:"player_id"`
}

func (q *Queries) ListBidsForLot(ctx context.Context, arg ListBidsForLotParams) ([]Bid, error) {
	rows, err := q.db.Query(ctx, listBidsForLot, arg.AuctionID, arg.PlayerID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	items := []Bid{}
	for rows.Next() {
		var i Bid
		if err := rows.Scan(
			&i.ID,
			&i.AuctionID,
			&i.PlayerID,
			&i.BidderTeamID,
			&i.BidderName,
			&i.Amount,
			&i.BidType,
			&i.Status,
			&i.BidOrder,
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

const countBidsForLot = `-- name: CountBidsForLot :one
SELECT count(*)
FROM bids
WHERE auction_id = $1
  AND player_id = $2
`

type CountBidsForLotParams struct {
	AuctionID uuid.UUID `json:"auction_id"`
	PlayerID  uuid.UUID `json:"player_id"`
}

func (q *Queries) CountBidsForLot(ctx context.Context, arg CountBidsForLotParams) (int64, error) {
	row := q.db.QueryRow(ctx, countBidsForLot, arg.AuctionID, arg.PlayerID)
	var count int64
	err := row.Scan(&count)
	return count, err
}

const setBidStatus = `-- name: SetBidStatus :one
UPDATE bids
SET status = $2
WHERE id = $1
RETURNING id, auction_id, player_id, bidder_team_id, bidder_name, amount, bid_type, status, bid_order, created_at
`

type SetBidStatusParams struct {
	ID     uuid.UUID `json:"id"`
	Status BidStatus `json:"status"`
}

func (q *Queries) SetBidStatus(ctx context.Context, arg SetBidStatusParams) (Bid, error) {
	row := q.db.QueryRow(ctx, setBidStatus, arg.ID, arg.Status)
	var i Bid
	err := row.Scan(
		&i.ID,
		&i.AuctionID,
		&i.PlayerID,
		&i.BidderTeamID,
		&i.BidderName,
		&i.Amount,
		&i.BidType,
		&i.Status,
		&i.BidOrder,
		&i.CreatedAt,
	)
	return i, err
}

const markLotBidsLost = `-- name: MarkLotBidsLost :exec
UPDATE bids
SET status = 'lost'
WHERE auction_id = $1
  AND player_id = $2
  AND status = 'active'
  AND id != $3
`

type MarkLotBidsLostParams struct {
	AuctionID    uuid.UUID `json:"auction_id"`
	PlayerID     uuid.UUID `json:"player_id"`
	WinningBidID uuid.UUID `json:"winning_bid_id"`
}

func (q *Queries) MarkLotBidsLost(ctx context.Context, arg MarkLotBidsLostParams) error {
	_, err := q.db.Exec(ctx, markLotBidsLost, arg.AuctionID, arg.PlayerID, arg.WinningBidID)
	return err
}

const getHighestActiveBidForLot = `-- name: GetHighestActiveBidForLot :one
SELECT id, auction_id, player_id, bidder_team_id, bidder_name, amount, bid_type, status, bid_order, created_at
FROM bids
WHERE auction_id = $1
  AND player_id = $2
  AND status = 'active'
ORDER BY bid_order DESC
LIMIT 1
`

type GetHighestActiveBidForLotParams struct {
	AuctionID uuid.UUID `json:"auction_id"`
	PlayerID  uuid.UUID `json:"player_id"`
}

func (q *Queries) GetHighestActiveBidForLot(ctx context.Context, arg GetHighestActiveBidForLotParams) (Bid, error) {
	row := q.db.QueryRow(ctx, getHighestActiveBidForLot, arg.AuctionID, arg.PlayerID)
	var i Bid
	err := row.Scan(
		&i.ID,
		&i.AuctionID,
		&i.PlayerID,
		&i.BidderTeamID,
		&i.BidderName,
		&i.Amount,
		&i.BidType,
		&i.Status,
		&i.BidOrder,
		&i.CreatedAt,
	)
	return i, err
}
