package db

import (
	"context"
	"encoding/json"
	"errors"
	"time"

	"github.com/cricbid/cricbid-BE/internal/event"
	"github.com/cricbid/cricbid-BE/internal/validator"
	"github.com/google/uuid"
)

type PlaceBidTxParams struct {
	AuctionID    uuid.UUID `json:"auction_id"`
	PlayerID     uuid.UUID `json:"player_id"`
	BidderTeamID uuid.UUID `json:"bidder_team_id"`
	Amount       int64     `json:"amount"`
	BidType      BidType   `json:"bid_type"`

	// RescheduleTimer re-arms the lot finalize timer for the new deadline.
	// It runs inside the transaction, so a scheduling failure rolls the
	// bid back instead of leaving an accepted bid with no timer.
	RescheduleTimer func(auctionID uuid.UUID, deadline time.Time) error `json:"-"`
}

type PlaceBidTxResult struct {
	Auction Auction      `json:"auction"`
	Bid     Bid          `json:"bid"`
	Event   AuctionEvent `json:"event"`
}

// PlaceBidTx accepts or rejects a bid on the open lot. The auction row lock
// serializes concurrent bids, so validation always runs against the latest
// committed state and bid_order comes out gap-free.
func (store *SQLStore) PlaceBidTx(ctx context.Context, arg PlaceBidTxParams) (PlaceBidTxResult, error) {
	var result PlaceBidTxResult

	err := store.ExecTx(ctx, func(q *Queries) error {
		// 1. Lock the auction row. Every other bid on this auction waits here.
		auction, err := q.GetAuctionByIDForUpdate(ctx, arg.AuctionID)
		if err != nil {
			return err
		}

		// 2. Look up the bidder's registration.
		var participantSnapshot validator.ParticipantSnapshot
		participant, err := q.GetAuctionParticipant(ctx, GetAuctionParticipantParams{
			AuctionID: arg.AuctionID,
			TeamID:    arg.BidderTeamID,
		})
		switch {
		case err == nil:
			participantSnapshot = validator.ParticipantSnapshot{
				Registered:      true,
				RemainingBudget: participant.RemainingBudget,
			}
		case errors.Is(err, ErrRecordNotFound):
			participantSnapshot = validator.ParticipantSnapshot{Registered: false}
		default:
			return err
		}

		// 3. Validate against the locked state.
		lotSnapshot := validator.LotSnapshot{
			Live:             auction.Status == AuctionStatusLive,
			HasCurrentPlayer: auction.CurrentPlayerID != nil,
			CurrentBidAmount: auction.CurrentBidAmount,
			MaxBidIncrement:  auction.MaxBidIncrement,
		}
		if auction.CurrentPlayerID != nil {
			lotSnapshot.CurrentPlayerID = *auction.CurrentPlayerID
		}

		err = validator.Validate(lotSnapshot, participantSnapshot, validator.BidRequest{
			PlayerID: arg.PlayerID,
			Amount:   arg.Amount,
			Override: arg.BidType == BidTypeOverride,
		})
		if err != nil {
			return err
		}

		// 4. Record the bid with the next bid_order for this lot.
		lastOrder, err := q.GetLastBidOrder(ctx, GetLastBidOrderParams{
			AuctionID: arg.AuctionID,
			PlayerID:  arg.PlayerID,
		})
		if err != nil {
			return err
		}

		result.Bid, err = q.CreateBid(ctx, CreateBidParams{
			ID:           uuid.Must(uuid.NewV7()),
			AuctionID:    arg.AuctionID,
			PlayerID:     arg.PlayerID,
			BidderTeamID: arg.BidderTeamID,
			BidderName:   participant.TeamName,
			Amount:       arg.Amount,
			BidType:      arg.BidType,
			BidOrder:     lastOrder + 1,
		})
		if err != nil {
			return err
		}

		// 5. Move the lot state forward and restart the countdown.
		deadline := time.Now().Add(time.Duration(auction.BidTimeoutSeconds) * time.Second)
		result.Auction, err = q.SetAuctionCurrentLot(ctx, SetAuctionCurrentLotParams{
			ID:                 arg.AuctionID,
			CurrentPlayerID:    auction.CurrentPlayerID,
			CurrentBidAmount:   arg.Amount,
			CurrentBidderID:    &arg.BidderTeamID,
			CurrentBidderName:  participant.TeamName,
			CurrentLotDeadline: &deadline,
		})
		if err != nil {
			return err
		}

		// 6. Append the bid_placed event in the same transaction.
		data, err := json.Marshal(event.BidPlacedData{
			BidID:        result.Bid.ID,
			PlayerID:     arg.PlayerID,
			BidderTeamID: arg.BidderTeamID,
			BidderName:   participant.TeamName,
			Amount:       arg.Amount,
			BidType:      string(arg.BidType),
			BidOrder:     result.Bid.BidOrder,
			MinimumBid:   validator.MinimumBid(arg.Amount, auction.MaxBidIncrement),
			Deadline:     deadline,
		})
		if err != nil {
			return err
		}

		result.Event, err = q.CreateAuctionEvent(ctx, CreateAuctionEventParams{
			ID:        uuid.Must(uuid.NewV7()),
			AuctionID: arg.AuctionID,
			Type:      event.TypeBidPlaced,
			Data:      data,
		})
		if err != nil {
			return err
		}

		// 7. Re-arm the finalize timer for the new deadline.
		if arg.RescheduleTimer != nil {
			if err = arg.RescheduleTimer(arg.AuctionID, deadline); err != nil {
				return err
			}
		}

		return nil
	})

	return result, err
}
