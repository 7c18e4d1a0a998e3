package db

import (
	"context"

	"github.com/google/uuid"
)

const createPlayer = `-- name: CreatePlayer :one
INSERT INTO players (id, name, slug, country, role, is_overseas, base_price, status)
VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
RETURNING id, name, slug, country, role, is_overseas, base_price, status, sold_price, team_id, photo_url, created_at, updated_at
`

type CreatePlayerParams struct {
	ID         uuid.UUID    `json:"id"`
	Name       string       `json:"name"`
	Slug       string       `json:"slug"`
	Country    string       `json:"country"`
	Role       PlayerRole   `json:"role"`
	IsOverseas bool         `json:"is_overseas"`
	BasePrice  int64        `json:"base_price"`
	Status     PlayerStatus `json:"status"`
}

func (q *Queries) CreatePlayer(ctx context.Context, arg CreatePlayerParams) (Player, error) {
	row := q.db.QueryRow(ctx, createPlayer,
		arg.ID,
		arg.Name,
		arg.Slug,
		arg.Country,
		arg.Role,
		arg.IsOverseas,
		arg.BasePrice,
		arg.Status,
	)
	var i Player
	err := row.Scan(
		&i.ID,
		&i.Name,
		&i.Slug,
		&i.Country,
		&i.Role,
		&i.IsOverseas,
		&i.BasePrice,
		&i.Status,
		&i.SoldPrice,
		&i.TeamID,
		&i.PhotoURL,
		&i.CreatedAt,
		&i.UpdatedAt,
	)
	return i, err
}

const getPlayerByID = `-- name: GetPlayerByID :one
SELECT id, name, slug, country, role, is_overseas, base_price, status, sold_price, team_id, photo_url, created_at, updated_at
FROM players
WHERE id = $1
`

func (q *Queries) GetPlayerByID(ctx context.Context, id uuid.UUID) (Player, error) {
	row := q.db.QueryRow(ctx, getPlayerByID, id)
	var i Player
	err := row.Scan(
		&i.ID,
		&i.Name,
		&i.Slug,
		&i.Country,
		&i.Role,
		&i.IsOverseas,
		&i.BasePrice,
		&i.Status,
		&i.SoldPrice,
		&i.TeamID,
		&i.PhotoURL,
		&i.CreatedAt,
		&i.UpdatedAt,
	)
	return i, err
}

const listPlayers = `-- name: ListPlayers :many
SELECT id, name, slug, country, role, is_overseas, base_price, status, sold_price, team_id, photo_url, created_at, updated_at
FROM players
ORDER BY name
`

func (q *Queries) ListPlayers(ctx context.Context) ([]Player, error) {
	rows, err := q.db.Query(ctx, listPlayers)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	items := []Player{}
	for rows.Next() {
		var i Player
		if err := rows.Scan(
			&i.ID,
			&i.Name,
			&i.Slug,
			&i.Country,
			&i.Role,
			&i.IsOverseas,
			&i.BasePrice,
			&i.Status,
			&i.SoldPrice,
			&i.TeamID,
			&i.PhotoURL,
			&i.CreatedAt,
			&i.UpdatedAt,
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

const updatePlayer = `-- name: UpdatePlayer :one
UPDATE players
SET status     = COALESCE($2, status),
    sold_price = COALESCE($3, sold_price),
    team_id    = COALESCE($4, team_id),
    photo_url  = COALESCE($5, photo_url),
    base_price = COALESCE($6, base_price),
    updated_at = now()
WHERE id = $1
RETURNING id, name, slug, country, role, is_overseas, base_price, status, sold_price, team_id, photo_url, created_at, updated_at
`

type UpdatePlayerParams struct {
	ID        uuid.UUID     `json:"id"`
	Status    *PlayerStatus `json:"status"`
	SoldPrice *int64        `json:"sold_price"`
	TeamID    *uuid.UUID    `json:"team_id"`
	PhotoURL  *string       `json:"photo_url"`
	BasePrice *int64        `json:"base_price"`
}

func (q *Queries) UpdatePlayer(ctx context.Context, arg UpdatePlayerParams) (Player, error) {
	row := q.db.QueryRow(ctx, updatePlayer,
		arg.ID,
		arg.Status,
		arg.SoldPrice,
		arg.TeamID,
		arg.PhotoURL,
		arg.BasePrice,
	)
	var i Player
	err := row.Scan(
		&i.ID,
		&i.Name,
		&i.Slug,
		&i.Country,
		&i.Role,
		&i.IsOverseas,
		&i.BasePrice,
		&i.Status,
		&i.SoldPrice,
		&i.TeamID,
		&i.PhotoURL,
		&i.CreatedAt,
		&i.UpdatedAt,
	)
	return i, err
}

const clearPlayerSale = `-- name: ClearPlayerSale :one
UPDATE players
SET status     = $2,
    sold_price = NULL,
    team_id    = NULL,
    updated_at = now()
WHERE id = $1
RETURNING id, name, slug, country, role, is_overseas, base_price, status, sold_price, team_id, photo_url, created_at, updated_at
`

type ClearPlayerSaleParams struct {
	ID     uuid.UUID    `json:"id"`
	Status PlayerStatus `json:"status"`
}

func (q *Queries) ClearPlayerSale(ctx context.Context, arg ClearPlayerSaleParams) (Player, error) {
	row := q.db.QueryRow(ctx, clearPlayerSale, arg.ID, arg.Status)
	var i Player
	err := row.Scan(
		&i.ID,
		&i.Name,
		&i.Slug,
		&i.Country,
		&i.Role,
		&i.IsOverseas,
		&i.BasePrice,
		&i.Status,
		&i.SoldPrice,
		&i.TeamID,
		&i.PhotoURL,
		&i.CreatedAt,
		&i.UpdatedAt,
	)
	return i, err
}

const createPlayerAuctionHistory = `-- name: CreatePlayerAuctionHistory :one
INSERT INTO player_auction_history (id, player_id, auction_id, final_price, winner_team_id, status, year)
VALUES ($1, $2, $3, $4, $5, $6, $7)
RETURNING id, player_id, auction_id, final_price, winner_team_id, status, year, created_at
`

type CreatePlayerAuctionHistoryParams struct {
	ID           uuid.UUID    `json:"id"`
	PlayerID     uuid.UUID    `json:"player_id"`
	AuctionID    uuid.UUID    `json:"auction_id"`
	FinalPrice   *int64       `json:"final_price"`
	WinnerTeamID *uuid.UUID   `json:"winner_team_id"`
	Status       PlayerStatus `json:"status"`
	Year         int32        `json:"year"`
}

func (q *Queries) CreatePlayerAuctionHistory(ctx context.Context, arg CreatePlayerAuctionHistoryParams) (PlayerAuctionHistory, error) {
	row := q.db.QueryRow(ctx, createPlayerAuctionHistory,
		arg.ID,
		arg.PlayerID,
		arg.AuctionID,
		arg.FinalPrice,
		arg.WinnerTeamID,
		arg.Status,
		arg.Year,
	)
	var i PlayerAuctionHistory
	err := row.Scan(
		&i.ID,
		&i.PlayerID,
		&i.AuctionID,
		&i.FinalPrice,
		&i.WinnerTeamID,
		&i.Status,
		&i.Year,
		&i.CreatedAt,
	)
	return i, err
}

const deleteUnsoldHistoryEntry = `-- name: DeleteUnsoldHistoryEntry :execrows
DELETE
FROM player_auction_history
WHERE player_id = $1
  AND auction_id = $2
  AND status = 'unsold'
`

type DeleteUnsoldHistoryEntryParams struct {
	PlayerID  uuid.UUID `json:"player_id"`
	AuctionID uuid.UUID `json:"auction_id"`
}

func (q *Queries) DeleteUnsoldHistoryEntry(ctx context.Context, arg DeleteUnsoldHistoryEntryParams) (int64, error) {
	result, err := q.db.Exec(ctx, deleteUnsoldHistoryEntry, arg.PlayerID, arg.AuctionID)
	if err != nil {
		return 0, err
	}
	return result.RowsAffected(), nil
}

const listPlayerAuctionHistory = `-- name: ListPlayerAuctionHistory :many
SELECT id, player_id, auction_id, final_price, winner_team_id, status, year, created_at
FROM player_auction_history
WHERE player_id = $1
ORDER BY created_at
`

func (q *Queries) ListPlayerAuctionHistory(ctx context.Context, playerID uuid.UUID) ([]PlayerAuctionHistory, error) {
	rows, err := q.db.Query(ctx, listPlayerAuctionHistory, playerID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	items := []PlayerAuctionHistory{}
	for rows.Next() {
		var i PlayerAuctionHistory
		if err := rows.Scan(
			&i.ID,
			&i.PlayerID,
			&i.AuctionID,
			&i.FinalPrice,
			&i.WinnerTeamID,
			&i.Status,
			&i.Year,
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

const listPlayersWonByTeam = `-- name: ListPlayersWonByTeam :many
SELECT p.id, p.name, p.slug, p.country, p.role, p.is_overseas, p.base_price, p.status, p.sold_price, p.team_id, p.photo_url, p.created_at, p.updated_at
FROM players p
         JOIN player_auction_history h ON h.player_id = p.id
WHERE h.auction_id = $1
  AND h.winner_team_id = $2
  AND h.status = 'sold'
ORDER BY h.created_at
`

type ListPlayersWonByTeamParams struct {
	AuctionID uuid.UUID `json:"auction_id"`
	TeamID    uuid.UUID `json:"team_id"`
}

func (q *Queries) ListPlayersWonByTeam(ctx context.Context, arg ListPlayersWonByTeamParams) ([]Player, error) {
	rows, err := q.db.Query(ctx, listPlayersWonByTeam, arg.AuctionID, arg.TeamID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	items := []Player{}
	for rows.Next() {
		var i Player
		if err := rows.Scan(
			&i.ID,
			&i.Name,
			&i.Slug,
			&i.Country,
			&i.Role,
			&i.IsOverseas,
			&i.BasePrice,
			&i.Status,
			&i.SoldPrice,
			&i.TeamID,
			&i.PhotoURL,
			&i.CreatedAt,
			&i.UpdatedAt,
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

const countPlayersWonByTeam = `-- name: CountPlayersWonByTeam :one
SELECT count(*)
FROM player_auction_history
WHERE auction_id = $1
  AND winner_team_id = $2
  AND status = 'sold'
`

type CountPlayersWonByTeamParams struct {
	AuctionID uuid.UUID `json:"auction_id"`
	TeamID    uuid.UUID `json:"team_id"`
}

func (q *Queries) CountPlayersWonByTeam(ctx context.Context, arg CountPlayersWonByTeamParams) (int64, error) {
	row := q.db.QueryRow(ctx, countPlayersWonByTeam, arg.AuctionID, arg.TeamID)
	var count int64
	err := row.Scan(&count)
	return count, err
}
