package db

import (
	"errors"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
)

const (
	UniqueViolationCode = "23505"
)

const (
	UniqueEmailConstraint       = "users_email_key"
	UniqueParticipantConstraint = "auction_participants_auction_id_team_id_key"
	UniqueQueueEntryConstraint  = "auction_queue_entries_auction_id_player_id_key"
)

var ErrRecordNotFound = pgx.ErrNoRows

var (
	ErrAuctionNotEditable = errors.New("auction is not in an editable state")
	ErrLotHasBids         = errors.New("current lot already has bids")
	ErrStaleLot           = errors.New("player is no longer the current lot")
	ErrPlayerNotAvailable = errors.New("player is not available for auction")
	ErrPlayerQueued       = errors.New("player is already in the queue")
	ErrEmptyQueue         = errors.New("player queue is empty")
	ErrDuplicateTeam      = errors.New("team already participates in this auction")
	ErrNoParticipants     = errors.New("auction has no participating teams")
)

// ErrorDescription returns the error code and constraint name from a Postgres error.
func ErrorDescription(err error) (errCode string, constraintName string) {
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) {
		return pgErr.Code, pgErr.ConstraintName
	}

	return
}
