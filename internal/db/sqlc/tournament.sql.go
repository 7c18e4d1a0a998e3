package db

import (
	"context"

	"github.com/google/uuid"
)

const createTournament = `-- name: CreateTournament :one
INSERT INTO tournaments (id, name, slug, year)
VALUES ($1, $2, $3, $4)
RETURNING id, name, slug, year, created_at
`

type CreateTournamentParams struct {
	ID   uuid.UUID `json:"id"`
	Name string    `json:"name"`
	Slug string    `json:"slug"`
	Year int32     `json:"year"`
}

func (q *Queries) CreateTournament(ctx context.Context, arg CreateTournamentParams) (Tournament, error) {
	row := q.db.QueryRow(ctx, createTournament,
		arg.ID,
		arg.Name,
		arg.Slug,
		arg.Year,
	)
	var i Tournament
	err := row.Scan(
		&i.ID,
		&i.Name,
		&i.Slug,
		&i.Year,
		&i.CreatedAt,
	)
	return i, err
}

const getTournamentByID = `-- name: GetTournamentByID :one
SELECT id, name, slug, year, created_at
FROM tournaments
WHERE id = $1
`

func (q *Queries) GetTournamentByID(ctx context.Context, id uuid.UUID) (Tournament, error) {
	row := q.db.QueryRow(ctx, getTournamentByID, id)
	var i Tournament
	err := row.Scan(
		&i.ID,
		&i.Name,
		&i.Slug,
		&i.Year,
		&i.CreatedAt,
	)
	return i, err
}

const listTournaments = `-- name: ListTournaments :many
SELECT id, name, slug, year, created_at
FROM tournaments
ORDER BY year DESC, created_at DESC
`

func (q *Queries) ListTournaments(ctx context.Context) ([]Tournament, error) {
	rows, err := q.db.Query(ctx, listTournaments)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	items := []Tournament{}
	for rows.Next() {
		var i Tournament
		if err := rows.Scan(
			&i.ID,
			&i.Name,
			&i.Slug,
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
