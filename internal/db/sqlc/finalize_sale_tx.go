package db

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/cricbid/cricbid-BE/internal/event"
	"github.com/google/uuid"
)

type FinalizeSaleTxParams struct {
	AuctionID uuid.UUID `json:"auction_id"`
	// PlayerID is the lot the caller intends to close. A timer that fires
	// after the lot already moved on carries the old player and is
	// detected as stale.
	PlayerID uuid.UUID `json:"player_id"`

	// ScheduleNextLot arms the finalize timer for the next lot. Runs
	// inside the transaction.
	ScheduleNextLot func(auctionID uuid.UUID, deadline time.Time) error `json:"-"`
	// CancelTimer removes the pending finalize timer when the auction
	// completes. Runs inside the transaction.
	CancelTimer func(auctionID uuid.UUID) error `json:"-"`
}

type FinalizeSaleTxResult struct {
	// Stale reports that the lot was already closed or the auction is not
	// live. Nothing was changed.
	Stale bool `json:"stale"`
	// Unsold reports that the lot closed without bids.
	Unsold bool `json:"unsold"`
	// Completed reports that the queue was empty and the auction ended.
	Completed bool `json:"completed"`

	Auction    Auction        `json:"auction"`
	Player     Player         `json:"player"`
	WinningBid Bid            `json:"winning_bid"`
	Events     []AuctionEvent `json:"events"`
}

// FinalizeSaleTx closes the open lot: the highest bid wins, the winner's
// budget is charged and the next queued player comes up. A lot with no bids
// goes unsold instead. Both the countdown timer and an admin's explicit
// finalize funnel through here; whichever commits second sees a stale lot
// and backs off without error.
func (store *SQLStore) FinalizeSaleTx(ctx context.Context, arg FinalizeSaleTxParams) (FinalizeSaleTxResult, error) {
	var result FinalizeSaleTxResult

	err := store.ExecTx(ctx, func(q *Queries) error {
		// 1. Lock the auction row and check the lot is still the one we
		// were asked to close.
		auction, err := q.GetAuctionByIDForUpdate(ctx, arg.AuctionID)
		if err != nil {
			return err
		}

		if auction.Status != AuctionStatusLive ||
			auction.CurrentPlayerID == nil ||
			*auction.CurrentPlayerID != arg.PlayerID {
			result.Stale = true
			result.Auction = auction
			return nil
		}

		// 2. Find the winning bid. No bids means the lot goes unsold.
		winningBid, err := q.GetHighestActiveBidForLot(ctx, GetHighestActiveBidForLotParams{
			AuctionID: arg.AuctionID,
			PlayerID:  arg.PlayerID,
		})
		if err != nil {
			if !errors.Is(err, ErrRecordNotFound) {
				return err
			}

			result.Unsold = true
			var ev AuctionEvent
			result.Player, auction, ev, err = recordUnsold(ctx, q, auction, arg.PlayerID)
			if err != nil {
				return err
			}
			result.Events = append(result.Events, ev)

			return advance(ctx, q, auction, arg, &result)
		}

		// 3. Settle the sale.
		result.WinningBid, err = q.SetBidStatus(ctx, SetBidStatusParams{
			ID:     winningBid.ID,
			Status: BidStatusWon,
		})
		if err != nil {
			return err
		}

		err = q.MarkLotBidsLost(ctx, MarkLotBidsLostParams{
			AuctionID:    arg.AuctionID,
			PlayerID:     arg.PlayerID,
			WinningBidID: winningBid.ID,
		})
		if err != nil {
			return err
		}

		soldStatus := PlayerStatusSold
		result.Player, err = q.UpdatePlayer(ctx, UpdatePlayerParams{
			ID:        arg.PlayerID,
			Status:    &soldStatus,
			SoldPrice: &winningBid.Amount,
			TeamID:    &winningBid.BidderTeamID,
		})
		if err != nil {
			return err
		}

		tournament, err := q.GetTournamentByID(ctx, auction.TournamentID)
		if err != nil {
			return err
		}

		_, err = q.CreatePlayerAuctionHistory(ctx, CreatePlayerAuctionHistoryParams{
			ID:           uuid.Must(uuid.NewV7()),
			PlayerID:     arg.PlayerID,
			AuctionID:    arg.AuctionID,
			FinalPrice:   &winningBid.Amount,
			WinnerTeamID: &winningBid.BidderTeamID,
			Status:       PlayerStatusSold,
			Year:         tournament.Year,
		})
		if err != nil {
			return err
		}

		// 4. Charge the winner. Validation keeps bids within budget, so a
		// negative result here means the books are corrupt.
		participant, err := q.AddParticipantBudget(ctx, AddParticipantBudgetParams{
			AuctionID: arg.AuctionID,
			TeamID:    winningBid.BidderTeamID,
			Amount:    -winningBid.Amount,
		})
		if err != nil {
			return err
		}
		if participant.RemainingBudget < 0 {
			return fmt.Errorf("budget for team %s would go negative settling bid %s", winningBid.BidderTeamID, winningBid.ID)
		}

		auction, err = q.IncrementSoldPlayers(ctx, arg.AuctionID)
		if err != nil {
			return err
		}

		// 5. Append the player_sold event.
		data, err := json.Marshal(event.PlayerSoldData{
			PlayerID:        result.Player.ID,
			PlayerName:      result.Player.Name,
			WinnerTeamID:    winningBid.BidderTeamID,
			WinnerTeamName:  winningBid.BidderName,
			FinalPrice:      winningBid.Amount,
			RemainingBudget: participant.RemainingBudget,
		})
		if err != nil {
			return err
		}

		ev, err := q.CreateAuctionEvent(ctx, CreateAuctionEventParams{
			ID:        uuid.Must(uuid.NewV7()),
			AuctionID: arg.AuctionID,
			Type:      event.TypePlayerSold,
			Data:      data,
		})
		if err != nil {
			return err
		}
		result.Events = append(result.Events, ev)

		// 6. Open the next lot or complete the auction.
		return advance(ctx, q, auction, arg, &result)
	})

	return result, err
}

// advance moves the auction to the next queued player, or completes it when
// the queue is empty.
func advance(ctx context.Context, q *Queries, auction Auction, arg FinalizeSaleTxParams, result *FinalizeSaleTxResult) error {
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
}
