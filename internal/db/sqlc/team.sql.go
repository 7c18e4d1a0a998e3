package db

import (
	"context"

	"github.com/google/uuid"
)

const createTeam = `-- name: CreateTeam :one
INSERT INTO teams (id, name, short_name, slug, owner_id)
VALUES ($1, $2, $3, $4, $5)
RETURNING id, name, short_name, slug, owner_id, logo_url, created_at
`

type CreateTeamParams struct {
	ID        uuid.UUID `json:"id"`
	Name      string    `json:"name"`
	ShortName string    `json:"short_name"`
	Slug      string    `json:"slug"`
	OwnerID   *string   `json:"owner_id"`
}

func (q *Queries) CreateTeam(ctx context.Context, arg CreateTeamParams) (Team, error) {
	row := q.db.QueryRow(ctx, createTeam,
		arg.ID,
		arg.Name,
		arg.ShortName,
		arg.Slug,
		arg.OwnerID,
	)
	var i Team
	err := row.Scan(
		&i.ID,
		&i.Name,
		&i.ShortName,
		&i.Slug,
		&i.OwnerID,
		&i.LogoURL,
		&i.CreatedAt,
	)
	return i, err
}

const getTeamByID = `-- name: GetTeamByID :one
SELECT id, name, short_name, slug, owner_id, logo_url, created_at
FROM teams
WHERE id = $1
`

func (q *Queries) GetTeamByID(ctx context.Context, id uuid.UUID) (Team, error) {
	row := q.db.QueryRow(ctx, getTeamByID, id)
	var i Team
	err := row.Scan(
		&i.ID,
		&i.Name,
		&i.ShortName,
		&i.Slug,
		&i.OwnerID,
		&i.LogoURL,
		&i.CreatedAt,
	)
	return i, err
}

const getTeamByOwnerID = `-- name: GetTeamByOwnerID :one
SELECT id, name, short_name, slug, owner_id, logo_url, created_at
FROM teams
WHERE owner_id = $1
`

func (q *Queries) GetTeamByOwnerID(ctx context.Context, ownerID string) (Team, error) {
	row := q.db.QueryRow(ctx, getTeamByOwnerID, ownerID)
	var i Team
	err := row.Scan(
		&i.ID,
		&i.Name,
		&i.ShortName,
		&i.Slug,
		&i.OwnerID,
		&i.LogoURL,
		&i.CreatedAt,
	)
	return i, err
}

const listTeams = `-- name: ListTeams :many
SELECT id, name, short_name, slug, owner_id, logo_url, created_at
FROM teams
ORDER BY name
`

func (q *Queries) ListTeams(ctx context.Context) ([]Team, error) {
	rows, err := q.db.Query(ctx, listTeams)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	items := []Team{}
	for rows.Next() {
		var i Team
		if err := rows.Scan(
			&i.ID,
			&i.Name,
			&i.ShortName,
			&i.Slug,
			&i.OwnerID,
			&i.LogoURL,
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

const updateTeamLogo = `-- name: UpdateTeamLogo :one
UPDATE teams
SET logo_url = $2
WHERE id = $1
RETURNING id, name, short_name, slug, owner_id, logo_url, created_at
`

type UpdateTeamLogoParams struct {
	ID      uuid.UUID `json:"id"`
	LogoURL *string   `json:"logo_url"`
}

func (q *Queries) UpdateTeamLogo(ctx context.Context, arg UpdateTeamLogoParams) (Team, error) {
	row := q.db.QueryRow(ctx, updateTeamLogo, arg.ID, arg.LogoURL)
	var i Team
	err := row.Scan(
		&i.ID,
		&i.Name,
		&i.ShortName,
		&i.Slug,
		&i.OwnerID,
		&i.LogoURL,
		&i.CreatedAt,
	)
	return i, err
}
