package db

import (
	"context"
)

const createUser = `-- name: CreateUser :one
INSERT INTO users (id, email, hashed_password, full_name, role, google_account_id)
VALUES ($1, $2, $3, $4, $5, $6)
RETURNING id, email, hashed_password, full_name, role, google_account_id, avatar_url, created_at
`

type CreateUserParams struct {
	ID              string   `json:"id"`
	Email           string   `json:"email"`
	HashedPassword  *string  `json:"hashed_password"`
	FullName        string   `json:"full_name"`
	Role            UserRole `json:"role"`
	GoogleAccountID *string  `json:"google_account_id"`
}

func (q *Queries) CreateUser(ctx context.Context, arg CreateUserParams) (User, error) {
	row := q.db.QueryRow(ctx, createUser,
		arg.ID,
		arg.Email,
		arg.HashedPassword,
		arg.FullName,
		arg.Role,
		arg.GoogleAccountID,
	)
	var i User
	err := row.Scan(
		&i.ID,
		&i.Email,
		&i.HashedPassword,
		&i.FullName,
		&i.Role,
		&i.GoogleAccountID,
		&i.AvatarURL,
		&i.CreatedAt,
	)
	return i, err
}

const getUserByID = `-- name: GetUserByID :one
SELECT id, email, hashed_password, full_name, role, google_account_id, avatar_url, created_at
FROM users
WHERE id = $1
`

func (q *Queries) GetUserByID(ctx context.Context, id string) (User, error) {
	row := q.db.QueryRow(ctx, getUserByID, id)
	var i User
	err := row.Scan(
		&i.ID,
		&i.Email,
		&i.HashedPassword,
		&i.FullName,
		&i.Role,
		&i.GoogleAccountID,
		&i.AvatarURL,
		&i.CreatedAt,
	)
	return i, err
}

const getUserByEmail = `-- name: GetUserByEmail :one
SELECT id, email, hashed_password, full_name, role, google_account_id, avatar_url, created_at
FROM users
WHERE email = $1
`

func (q *Queries) GetUserByEmail(ctx context.Context, email string) (User, error) {
	row := q.db.QueryRow(ctx, getUserByEmail, email)
	var i User
	err := row.Scan(
		&i.ID,
		&i.Email,
		&i.HashedPassword,
		&i.FullName,
		&i.Role,
		&i.GoogleAccountID,
		&i.AvatarURL,
		&i.CreatedAt,
	)
	return i, err
}
