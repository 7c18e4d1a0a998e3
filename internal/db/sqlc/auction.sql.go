package db

import (
	"context"
	"time"

	"github.com/google/uuid"
)

const auctionColumns = `id, tournament_id, name, status, current_player_id, current_bid_amount, current_bidder_id, current_bidder_name, max_bid_increment, bid_timeout_seconds, max_players_per_team, max_foreign_players, sold_players, unsold_players, current_lot_deadline, created_at, updated_at`

func scanAuction(row interface{ Scan(dest ...interface{}) error }) (Auction, error) {
	var i Auction
	err := row.Scan(
		&i.ID,
		&i.TournamentID,
		&i.Name,
		&i.Status,
		&i.CurrentPlayerID,
		&i.CurrentBidAmount,
		&i.CurrentBidderID,
		&i.CurrentBidderName,
		&i.MaxBidIncrement,
		&i.BidTimeoutSeconds,
		&i.MaxPlayersPerTeam,
		&i.MaxForeignPlayers,
		&i.SoldPlayers,
		&i.UnsoldPlayers,
		&i.CurrentLotDeadline,
		&i.CreatedAt,
		&i.UpdatedAt,
	)
	return i, err
}

const createAuction = `-- name: CreateAuction :one
INSERT INTO auctions (id, tournament_id, name, status, max_bid_increment, bid_timeout_seconds, max_players_per_team, max_foreign_players)
VALUES ($1, $2, $3, 'upcoming', $4, $5, $6, $7)
RETURNING ` + auctionColumns

type CreateAuctionParams struct {
	ID                uuid.UUID `json:"id"`
	TournamentID      uuid.UUID `json:"tournament_id"`
	Name              string    `json:"name"`
	MaxBidIncrement   int64     `json:"max_bid_increment"`
	BidTimeoutSeconds int32     `json:"bid_timeout_seconds"`
	MaxPlayersPerTeam int32     `json:"max_players_per_team"`
	MaxForeignPlayers int32     `json:"max_foreign_players"`
}

func (q *Queries) CreateAuction(ctx context.Context, arg CreateAuctionParams) (Auction, error) {
	row := q.db.QueryRow(ctx, createAuction,
		arg.ID,
		arg.TournamentID,
		arg.Name,
		arg.MaxBidIncrement,
		arg.BidTimeoutSeconds,
		arg.MaxPlayersPerTeam,
		arg.MaxForeignPlayers,
	)
	return scanAuction(row)
}

const getAuctionByID = `-- name: GetAuctionByID :one
SELECT ` + auctionColumns + `
FROM auctions
WHERE id = $1
`

func (q *Queries) GetAuctionByID(ctx context.Context, id uuid.UUID) (Auction, error) {
	row := q.db.QueryRow(ctx, getAuctionByID, id)
	return scanAuction(row)
}

const getAuctionByIDForUpdate = `-- name: GetAuctionByIDForUpdate :one
SELECT ` + auctionColumns + `
FROM auctions
WHERE id = $1
FOR UPDATE
`

// GetAuctionByIDForUpdate locks the auction row for the duration of the
// enclosing transaction. Every state transition takes this lock first, so
// concurrent bids and timer fires are serialized by Postgres.
func (q *Queries) GetAuctionByIDForUpdate(ctx context.Context, id uuid.UUID) (Auction, error) {
	row := q.db.QueryRow(ctx, getAuctionByIDForUpdate, id)
	return scanAuction(row)
}

const listAuctions = `-- name: ListAuctions :many
SELECT ` + auctionColumns + `
FROM auctions
ORDER BY created_at DESC
`

func (q *Queries) ListAuctions(ctx context.Context) ([]Auction, error) {
	rows, err := q.db.Query(ctx, listAuctions)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	items := []Auction{}
	for rows.Next() {
		i, err := scanAuction(rows)
		if err != nil {
			return nil, err
		}
		items = append(items, i)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return items, nil
}

const listAuctionsByStatus = `-- name: ListAuctionsByStatus :many
SELECT ` + auctionColumns + `
FROM auctions
WHERE status = $1
ORDER BY created_at DESC
`

func (q *Queries) ListAuctionsByStatus(ctx context.Context, status AuctionStatus) ([]Auction, error) {
	rows, err := q.db.Query(ctx, listAuctionsByStatus, status)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	items := []Auction{}
	for rows.Next() {
		i, err := scanAuction(rows)
		if err != nil {
			return nil, err
		}
		items = append(items, i)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return items, nil
}

const setAuctionStatus = `-- name: SetAuctionStatus :one
UPDATE auctions
SET status     = $2,
    updated_at = now()
WHERE id = $1
RETURNING ` + auctionColumns

type SetAuctionStatusParams struct {
	ID     uuid.UUID     `json:"id"`
	Status AuctionStatus `json:"status"`
}

func (q *Queries) SetAuctionStatus(ctx context.Context, arg SetAuctionStatusParams) (Auction, error) {
	row := q.db.QueryRow(ctx, setAuctionStatus, arg.ID, arg.Status)
	return scanAuction(row)
}

const setAuctionCurrentLot = `-- name: SetAuctionCurrentLot :one
UPDATE auctions
SET current_player_id    = $2,
    current_bid_amount   = $3,
    current_bidder_id    = $4,
    current_bidder_name  = $5,
    current_lot_deadline = $6,
    updated_at           = now()
WHERE id = $1
RETURNING ` + auctionColumns

type SetAuctionCurrentLotParams struct {
	ID                 uuid.UUID  `json:"id"`
	CurrentPlayerID    *uuid.UUID `json:"current_player_id"`
	CurrentBidAmount   int64      `json:"current_bid_amount"`
	CurrentBidderID    *uuid.UUID `json:"current_bidder_id"`
	CurrentBidderName  string     `json:"current_bidder_name"`
	CurrentLotDeadline *time.Time `json:"current_lot_deadline"`
}

func (q *Queries) SetAuctionCurrentLot(ctx context.Context, arg SetAuctionCurrentLotParams) (Auction, error) {
	row := q.db.QueryRow(ctx, setAuctionCurrentLot,
		arg.ID,
		arg.CurrentPlayerID,
		arg.CurrentBidAmount,
		arg.CurrentBidderID,
		arg.CurrentBidderName,
		arg.CurrentLotDeadline,
	)
	return scanAuction(row)
}

const incrementSoldPlayers = `-- name: IncrementSoldPlayers :one
UPDATE auctions
SET sold_players = sold_players + 1,
    updated_at   = now()
WHERE id = $1
RETURNING ` + auctionColumns

func (q *Queries) IncrementSoldPlayers(ctx context.Context, id uuid.UUID) (Auction, error) {
	row := q.db.QueryRow(ctx, incrementSoldPlayers, id)
	return scanAuction(row)
}

const incrementUnsoldPlayers = `-- name: IncrementUnsoldPlayers :one
UPDATE auctions
SET unsold_players = unsold_players + 1,
    updated_at     = now()
WHERE id = $1
RETURNING ` + auctionColumns

func (q *Queries) IncrementUnsoldPlayers(ctx context.Context, id uuid.UUID) (Auction, error) {
	row := q.db.QueryRow(ctx, incrementUnsoldPlayers, id)
	return scanAuction(row)
}

const createAuctionParticipant = `-- name: CreateAuctionParticipant :one
INSERT INTO auction_participants (id, auction_id, team_id, team_name, starting_budget, remaining_budget, position)
VALUES ($1, $2, $3, $4, $5, $5,
        (SELECT COALESCE(MAX(position), 0) + 1 FROM auction_participants WHERE auction_id = $2))
RETURNING id, auction_id, team_id, team_name, starting_budget, remaining_budget, position, created_at
`

type CreateAuctionParticipantParams struct {
	ID             uuid.UUID `json:"id"`
	AuctionID      uuid.UUID `json:"auction_id"`
	TeamID         uuid.UUID `json:"team_id"`
	TeamName       string    `json:"team_name"`
	StartingBudget int64     `json:"starting_budget"`
}

func (q *Queries) CreateAuctionParticipant(ctx context.Context, arg CreateAuctionParticipantParams) (AuctionParticipant, error) {
	row := q.db.QueryRow(ctx, createAuctionParticipant,
		arg.ID,
		arg.AuctionID,
		arg.TeamID,
		arg.TeamName,
		arg.StartingBudget,
	)
	var i AuctionParticipant
	err := row.Scan(
		&i.ID,
		&i.AuctionID,
		&i.TeamID,
		&i.TeamName,
		&i.StartingBudget,
		&i.RemainingBudget,
		&i.Position,
		&i.CreatedAt,
	)
	return i, err
}

const deleteAuctionParticipant = `-- name: DeleteAuctionParticipant :execrows
DELETE
FROM auction_participants
WHERE auction_id = $1
  AND team_id = $2
`

type DeleteAuctionParticipantParams struct {
	AuctionID uuid.UUID `json:"auction_id"`
	TeamID    uuid.UUID `json:"team_id"`
}

func (q *Queries) DeleteAuctionParticipant(ctx context.Context, arg DeleteAuctionParticipantParams) (int64, error) {
	result, err := q.db.Exec(ctx, deleteAuctionParticipant, arg.AuctionID, arg.TeamID)
	if err != nil {
		return 0, err
	}
	return result.RowsAffected(), nil
}

const getAuctionParticipant = `-- name: GetAuctionParticipant :one
SELECT id, auction_id, team_id, team_name, starting_budget, remaining_budget, position, created_at
FROM auction_participants
WHERE auction_id = $1
  AND team_id = $2
`

type GetAuctionParticipantParams struct {
	AuctionID uuid.UUID `json:"auction_id"`
	TeamID    uuid.UUID `json:"team_id"`
}

func (q *Queries) GetAuctionParticipant(ctx context.Context, arg GetAuctionParticipantParams) (AuctionParticipant, error) {
	row := q.db.QueryRow(ctx, getAuctionParticipant, arg.AuctionID, arg.TeamID)
	var i AuctionParticipant
	err := row.Scan(
		&i.ID,
		&i.AuctionID,
		&i.TeamID,
		&i.TeamName,
		&i.StartingBudget,
		&i.RemainingBudget,
		&i.Position,
		&i.CreatedAt,
	)
	return i, err
}

const listAuctionParticipants = `-- name: ListAuctionParticipants :many
SELECT id, auction_id, team_id, team_name, starting_budget, remaining_budget, position, created_at
FROM auction_participants
WHERE auction_id = $1
ORDER BY position
`

func (q *Queries) ListAuctionParticipants(ctx context.Context, auctionID uuid.UUID) ([]AuctionParticipant, error) {
	rows, err := q.db.Query(ctx, listAuctionParticipants, auctionID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	items := []AuctionParticipant{}
	for rows.Next() {
		var i AuctionParticipant
		if err := rows.Scan(
			&i.ID,
			&i.AuctionID,
			&i.TeamID,
			&i.TeamName,
			&i.StartingBudget,
			&i.RemainingBudget,
			&i.Position,
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

const addParticipantBudget = `-- name: AddParticipantBudget :one
UPDATE auction_participants
SET remaining_budget = remaining_budget + $3
WHERE auction_id = $1
  AND team_id = $2
RETURNING id, auction_id, team_id, team_name, starting_budget, remaining_budget, position, created_at
`

type AddParticipantBudgetParams struct {
	AuctionID uuid.UUID `json:"auction_id"`
	TeamID    uuid.UUID `json:"team_id"`
	Amount    int64     `json:"amount"`
}

func (q *Queries) AddParticipantBudget(ctx context.Context, arg AddParticipantBudgetParams) (AuctionParticipant, error) {
	row := q.db.QueryRow(ctx, addParticipantBudget, arg.AuctionID, arg.TeamID, arg.Amount)
	var i AuctionParticipant
	err := row.Scan(
		&i.ID,
		&i.AuctionID,
		&i.TeamID,
		&i.TeamName,
		&i.StartingBudget,
		&i.RemainingBudget,
		&i.Position,
		&i.CreatedAt,
	)
	return i, err
}
