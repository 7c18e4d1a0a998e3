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

// openNextLot pops the queue head and puts that player up for bidding, with
// the countdown reset to the full bid timeout. Returns ErrEmptyQueue when no
// player is left. Must run under the auction row lock.
func openNextLot(ctx context.Context, q *Queries, auction Auction, schedule func(auctionID uuid.UUID, deadline time.Time) error) (Auction, AuctionEvent, error) {
	head, err := q.GetQueueHead(ctx, auction.ID)
	if err != nil {
		if errors.Is(err, ErrRecordNotFound) {
			return Auction{}, AuctionEvent{}, ErrEmptyQueue
		}
		return Auction{}, AuctionEvent{}, err
	}

	player, err := q.GetPlayerByID(ctx, head.PlayerID)
	if err != nil {
		return Auction{}, AuctionEvent{}, err
	}

	if _, err = q.DeleteQueueEntry(ctx, DeleteQueueEntryParams{
		AuctionID: head.AuctionID,
		PlayerID:  head.PlayerID,
	}); err != nil {
		return Auction{}, AuctionEvent{}, err
	}

	// The current bid amount starts at the base price so the opening bid
	// obeys the same minimum formula as every raise after it.
	deadline := time.Now().Add(time.Duration(auction.BidTimeoutSeconds) * time.Second)
	updated, err := q.SetAuctionCurrentLot(ctx, SetAuctionCurrentLotParams{
		ID:                 auction.ID,
		CurrentPlayerID:    &player.ID,
		CurrentBidAmount:   player.BasePrice,
		CurrentBidderID:    nil,
		CurrentBidderName:  "",
		CurrentLotDeadline: &deadline,
	})
	if err != nil {
		return Auction{}, AuctionEvent{}, err
	}

	data, err := json.Marshal(event.PlayerChangedData{
		PlayerID:   player.ID,
		PlayerName: player.Name,
		BasePrice:  player.BasePrice,
		MinimumBid: validator.MinimumBid(player.BasePrice, auction.MaxBidIncrement),
		Deadline:   deadline,
	})
	if err != nil {
		return Auction{}, AuctionEvent{}, err
	}

	ev, err := q.CreateAuctionEvent(ctx, CreateAuctionEventParams{
		ID:        uuid.Must(uuid.NewV7()),
		AuctionID: auction.ID,
		Type:      event.TypePlayerChanged,
		Data:      data,
	})
	if err != nil {
		return Auction{}, AuctionEvent{}, err
	}

	if schedule != nil {
		if err = schedule(auction.ID, deadline); err != nil {
			return Auction{}, AuctionEvent{}, err
		}
	}

	return updated, ev, nil
}

// completeAuction clears the lot state, marks the auction completed and
// appends the auction_ended event. Must run under the auction row lock.
func completeAuction(ctx context.Context, q *Queries, auctionID uuid.UUID) (Auction, AuctionEvent, error) {
	updated, err := q.SetAuctionCurrentLot(ctx, SetAuctionCurrentLotParams{
		ID:                 auctionID,
		CurrentPlayerID:    nil,
		CurrentBidAmount:   0,
		CurrentBidderID:    nil,
		CurrentBidderName:  "",
		CurrentLotDeadline: nil,
	})
	if err != nil {
		return Auction{}, AuctionEvent{}, err
	}

	updated, err = q.SetAuctionStatus(ctx, SetAuctionStatusParams{
		ID:     auctionID,
		Status: AuctionStatusCompleted,
	})
	if err != nil {
		return Auction{}, AuctionEvent{}, err
	}

	data, err := json.Marshal(event.AuctionStateData{
		Status:        string(updated.Status),
		SoldPlayers:   updated.SoldPlayers,
		UnsoldPlayers: updated.UnsoldPlayers,
	})
	if err != nil {
		return Auction{}, AuctionEvent{}, err
	}

	ev, err := q.CreateAuctionEvent(ctx, CreateAuctionEventParams{
		ID:        uuid.Must(uuid.NewV7()),
		AuctionID: auctionID,
		Type:      event.TypeAuctionEnded,
		Data:      data,
	})
	if err != nil {
		return Auction{}, AuctionEvent{}, err
	}

	return updated, ev, nil
}

// recordUnsold marks the player unsold, appends the history entry and the
// player_unsold event, and bumps the auction's unsold counter. Must run
// under the auction row lock.
func recordUnsold(ctx context.Context, q *Queries, auction Auction, playerID uuid.UUID) (Player, Auction, AuctionEvent, error) {
	unsoldStatus := PlayerStatusUnsold
	player, err := q.UpdatePlayer(ctx, UpdatePlayerParams{
		ID:     playerID,
		Status: &unsoldStatus,
	})
	if err != nil {
		return Player{}, Auction{}, AuctionEvent{}, err
	}

	tournament, err := q.GetTournamentByID(ctx, auction.TournamentID)
	if err != nil {
		return Player{}, Auction{}, AuctionEvent{}, err
	}

	_, err = q.CreatePlayerAuctionHistory(ctx, CreatePlayerAuctionHistoryParams{
		ID:        uuid.Must(uuid.NewV7()),
		PlayerID:  playerID,
		AuctionID: auction.ID,
		Status:    PlayerStatusUnsold,
		Year:      tournament.Year,
	})
	if err != nil {
		return Player{}, Auction{}, AuctionEvent{}, err
	}

	updated, err := q.IncrementUnsoldPlayers(ctx, auction.ID)
	if err != nil {
		return Player{}, Auction{}, AuctionEvent{}, err
	}

	data, err := json.Marshal(event.PlayerUnsoldData{
		PlayerID:   player.ID,
		PlayerName: player.Name,
	})
	if err != nil {
		return Player{}, Auction{}, AuctionEvent{}, err
	}

	ev, err := q.CreateAuctionEvent(ctx, CreateAuctionEventParams{
		ID:        uuid.Must(uuid.NewV7()),
		AuctionID: auction.ID,
		Type:      event.TypePlayerUnsold,
		Data:      data,
	})
	if err != nil {
		return Player{}, Auction{}, AuctionEvent{}, err
	}

	return player, updated, ev, nil
}
