package db

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"
)

type MarkUnsoldTxParams struct {
	AuctionID uuid.UUID `json:"auction_id"`
	PlayerID  uuid.UUID `json:"player_id"`

	// ScheduleNextLot arms the finalize timer for the next lot. Runs
	// inside the transaction.
	ScheduleNextLot func(auctionID uuid.UUID, deadline time.Time) error `json:"-"`
	// CancelTimer removes the pending finalize timer when the auction
	// completes. Runs inside the transaction.
	CancelTimer func(auctionID uuid.UUID) error `json:"-"`
}

type MarkUnsoldTxResult struct {
	Completed bool `json:"completed"`

	Auction Auction        `json:"auction"`
	Player  Player         `json:"player"`
	Events  []AuctionEvent `json:"events"`
}

// MarkUnsoldTx is the admin's explicit pass on the open lot. Unlike the
// timer path it refuses when the lot already has bids; those must settle
// through FinalizeSaleTx.
func (store *SQLStore) MarkUnsoldTx(ctx context.Context, arg MarkUnsoldTxParams) (MarkUnsoldTxResult, error) {
	var result MarkUnsoldTxResult

	err := store.ExecTx(ctx, func(q *Queries) error {
		auction, err := q.GetAuctionByIDForUpdate(ctx, arg.AuctionID)
		if err != nil {
			return err
		}

		if auction.Status != AuctionStatusLive ||
			auction.CurrentPlayerID == nil ||
			*auction.CurrentPlayerID != arg.PlayerID {
			return ErrStaleLot
		}

		bidCount, err := q.CountBidsForLot(ctx, CountBidsForLotParams{
			AuctionID: arg.AuctionID,
			PlayerID:  arg.PlayerID,
		})
		if err != nil {
			return err
		}
		if bidCount > 0 {
			return ErrLotHasBids
		}

		var ev AuctionEvent
		result.Player, auction, ev, err = recordUnsold(ctx, q, auction, arg.PlayerID)
		if err != nil {
			return err
		}
		result.Events = append(result.Events, ev)

		updated, ev, err := openNextLot(ctx, q, auction, arg.ScheduleNextLot)
		if err == nil {
			result.Auction = updated
			result.Events = append(result.Events, ev)
			return nil
		}
		if !errors.Is(err, ErrEmptyQueue) {
			return err
		}

		result.Completed = true
		result.Auction, ev, err = completeAuction(ctx, q, auction.ID)
		if err != nil {
			return err
		}
		result.Events = append(result.Events, ev)

		if arg.CancelTimer != nil {
			return arg.CancelTimer(auction.ID)
		}
		return nil
	})

	return result, err
}
