package db

import (
	"context"

	"github.com/google/uuid"
)

type AddParticipantTxParams struct {
	AuctionID      uuid.UUID `json:"auction_id"`
	TeamID         uuid.UUID `json:"team_id"`
	StartingBudget int64     `json:"starting_budget"`
}

// AddParticipantTx registers a team for an upcoming auction with its full
// purse. Registration closes once the auction starts.
func (store *SQLStore) AddParticipantTx(ctx context.Context, arg AddParticipantTxParams) (AuctionParticipant, error) {
	var participant AuctionParticipant

	err := store.ExecTx(ctx, func(q *Queries) error {
		auction, err := q.GetAuctionByIDForUpdate(ctx, arg.AuctionID)
		if err != nil {
			return err
		}
		if auction.Status != AuctionStatusUpcoming {
			return ErrAuctionNotEditable
		}

		team, err := q.GetTeamByID(ctx, arg.TeamID)
		if err != nil {
			return err
		}

		participant, err = q.CreateAuctionParticipant(ctx, CreateAuctionParticipantParams{
			ID:             uuid.Must(uuid.NewV7()),
			AuctionID:      arg.AuctionID,
			TeamID:         arg.TeamID,
			TeamName:       team.Name,
			StartingBudget: arg.StartingBudget,
		})
		if err != nil {
			if code, constraint := ErrorDescription(err); code == UniqueViolationCode && constraint == UniqueParticipantConstraint {
				return ErrDuplicateTeam
			}
			return err
		}

		return nil
	})

	return participant, err
}

type RemoveParticipantTxParams struct {
	AuctionID uuid.UUID `json:"auction_id"`
	TeamID    uuid.UUID `json:"team_id"`
}

// RemoveParticipantTx withdraws a team from an upcoming auction.
func (store *SQLStore) RemoveParticipantTx(ctx context.Context, arg RemoveParticipantTxParams) error {
	return store.ExecTx(ctx, func(q *Queries) error {
		auction, err := q.GetAuctionByIDForUpdate(ctx, arg.AuctionID)
		if err != nil {
			return err
		}
		if auction.Status != AuctionStatusUpcoming {
			return ErrAuctionNotEditable
		}

		rows, err := q.DeleteAuctionParticipant(ctx, DeleteAuctionParticipantParams{
			AuctionID: arg.AuctionID,
			TeamID:    arg.TeamID,
		})
		if err != nil {
			return err
		}
		if rows == 0 {
			return ErrRecordNotFound
		}

		return nil
	})
}
