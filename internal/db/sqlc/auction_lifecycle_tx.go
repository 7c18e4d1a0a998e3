package db

import (
	"context"
	"encoding/json"
	"time"

	"github.com/cricbid/cricbid-BE/internal/event"
	"github.com/google/uuid"
)

type StartAuctionTxParams struct {
	AuctionID uuid.UUID `json:"auction_id"`

	// ScheduleLotTimer arms the finalize timer for the first lot. Runs
	// inside the transaction.
	ScheduleLotTimer func(auctionID uuid.UUID, deadline time.Time) error `json:"-"`
}

type StartAuctionTxResult struct {
	Auction Auction        `json:"auction"`
	Events  []AuctionEvent `json:"events"`
}

type LifecycleTxResult struct {
	Auction Auction        `json:"auction"`
	Events  []AuctionEvent `json:"events"`
}

type ResumeAuctionTxParams struct {
	AuctionID uuid.UUID `json:"auction_id"`

	// ScheduleLotTimer re-arms the finalize timer for the open lot. Runs
	// inside the transaction.
	ScheduleLotTimer func(auctionID uuid.UUID, deadline time.Time) error `json:"-"`
}

// StartAuctionTx takes an upcoming auction live and opens the first lot.
// It refuses to start with no registered teams or an empty queue.
func (store *SQLStore) StartAuctionTx(ctx context.Context, arg StartAuctionTxParams) (StartAuctionTxResult, error) {
	var result StartAuctionTxResult

	err := store.ExecTx(ctx, func(q *Queries) error {
		auction, err := q.GetAuctionByIDForUpdate(ctx, arg.AuctionID)
		if err != nil {
			return err
		}
		if auction.Status != AuctionStatusUpcoming {
			return ErrAuctionNotEditable
		}

		participants, err := q.ListAuctionParticipants(ctx, arg.AuctionID)
		if err != nil {
			return err
		}
		if len(participants) == 0 {
			return ErrNoParticipants
		}

		auction, err = q.SetAuctionStatus(ctx, SetAuctionStatusParams{
			ID:     arg.AuctionID,
			Status: AuctionStatusLive,
		})
		if err != nil {
			return err
		}

		ev, err := appendLifecycleEvent(ctx, q, auction, event.TypeAuctionStarted)
		if err != nil {
			return err
		}
		result.Events = append(result.Events, ev)

		// ErrEmptyQueue aborts the start: a live auction always has an
		// open lot.
		result.Auction, ev, err = openNextLot(ctx, q, auction, arg.ScheduleLotTimer)
		if err != nil {
			return err
		}
		result.Events = append(result.Events, ev)

		return nil
	})

	return result, err
}

// PauseAuctionTx suspends bidding. The pending finalize timer is left
// armed; when it fires against a paused auction it backs off, and resume
// re-arms it with a full countdown.
func (store *SQLStore) PauseAuctionTx(ctx context.Context, auctionID uuid.UUID) (LifecycleTxResult, error) {
	var result LifecycleTxResult

	err := store.ExecTx(ctx, func(q *Queries) error {
		auction, err := q.GetAuctionByIDForUpdate(ctx, auctionID)
		if err != nil {
			return err
		}
		if auction.Status != AuctionStatusLive {
			return ErrAuctionNotEditable
		}

		result.Auction, err = q.SetAuctionStatus(ctx, SetAuctionStatusParams{
			ID:     auctionID,
			Status: AuctionStatusPaused,
		})
		if err != nil {
			return err
		}

		ev, err := appendLifecycleEvent(ctx, q, result.Auction, event.TypeAuctionPaused)
		if err != nil {
			return err
		}
		result.Events = append(result.Events, ev)

		return nil
	})

	return result, err
}

// ResumeAuctionTx puts a paused auction back to live. The open lot's
// countdown restarts from the full bid timeout.
func (store *SQLStore) ResumeAuctionTx(ctx context.Context, arg ResumeAuctionTxParams) (LifecycleTxResult, error) {
	var result LifecycleTxResult

	err := store.ExecTx(ctx, func(q *Queries) error {
		auction, err := q.GetAuctionByIDForUpdate(ctx, arg.AuctionID)
		if err != nil {
			return err
		}
		if auction.Status != AuctionStatusPaused {
			return ErrAuctionNotEditable
		}

		auction, err = q.SetAuctionStatus(ctx, SetAuctionStatusParams{
			ID:     arg.AuctionID,
			Status: AuctionStatusLive,
		})
		if err != nil {
			return err
		}

		if auction.CurrentPlayerID != nil {
			deadline := time.Now().Add(time.Duration(auction.BidTimeoutSeconds) * time.Second)
			auction, err = q.SetAuctionCurrentLot(ctx, SetAuctionCurrentLotParams{
				ID:                 arg.AuctionID,
				CurrentPlayerID:    auction.CurrentPlayerID,
				CurrentBidAmount:   auction.CurrentBidAmount,
				CurrentBidderID:    auction.CurrentBidderID,
				CurrentBidderName:  auction.CurrentBidderName,
				CurrentLotDeadline: &deadline,
			})
			if err != nil {
				return err
			}

			if arg.ScheduleLotTimer != nil {
				if err = arg.ScheduleLotTimer(arg.AuctionID, deadline); err != nil {
					return err
				}
			}
		}
		result.Auction = auction

		ev, err := appendLifecycleEvent(ctx, q, auction, event.TypeAuctionResumed)
		if err != nil {
			return err
		}
		result.Events = append(result.Events, ev)

		return nil
	})

	return result, err
}

// EndAuctionTx force-ends a live or paused auction. An open lot is
// abandoned: its active bids are marked lost and the player stays available.
func (store *SQLStore) EndAuctionTx(ctx context.Context, auctionID uuid.UUID) (LifecycleTxResult, error) {
	var result LifecycleTxResult

	err := store.ExecTx(ctx, func(q *Queries) error {
		auction, err := q.GetAuctionByIDForUpdate(ctx, auctionID)
		if err != nil {
			return err
		}
		if auction.Status != AuctionStatusLive && auction.Status != AuctionStatusPaused {
			return ErrAuctionNotEditable
		}

		if auction.CurrentPlayerID != nil {
			err = q.MarkLotBidsLost(ctx, MarkLotBidsLostParams{
				AuctionID:    auctionID,
				PlayerID:     *auction.CurrentPlayerID,
				WinningBidID: uuid.Nil,
			})
			if err != nil {
				return err
			}
		}

		var ev AuctionEvent
		result.Auction, ev, err = completeAuction(ctx, q, auctionID)
		if err != nil {
			return err
		}
		result.Events = append(result.Events, ev)

		return nil
	})

	return result, err
}

func appendLifecycleEvent(ctx context.Context, q *Queries, auction Auction, eventType string) (AuctionEvent, error) {
	data, err := json.Marshal(event.AuctionStateData{
		Status:          string(auction.Status),
		CurrentPlayerID: auction.CurrentPlayerID,
		SoldPlayers:     auction.SoldPlayers,
		UnsoldPlayers:   auction.UnsoldPlayers,
		Deadline:        auction.CurrentLotDeadline,
	})
	if err != nil {
		return AuctionEvent{}, err
	}

	return q.CreateAuctionEvent(ctx, CreateAuctionEventParams{
		ID:        uuid.Must(uuid.NewV7()),
		AuctionID: auction.ID,
		Type:      eventType,
		Data:      data,
	})
}
