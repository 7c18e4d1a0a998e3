package event

import (
	"context"
	"encoding/json"
	"time"

	"github.com/google/uuid"
)

// Event is a realtime auction event. Seq is assigned by the database in the
// same transaction as the state change it describes, so consumers can rely
// on it for ordering and deduplication.
type Event struct {
	Type      string          `json:"type"`
	AuctionID uuid.UUID       `json:"auction_id"`
	Seq       int64           `json:"seq"`
	Data      json.RawMessage `json:"data"`
	Timestamp time.Time       `json:"timestamp"`
}

const (
	TypeAuctionStarted = "auction_started"
	TypeAuctionPaused  = "auction_paused"
	TypeAuctionResumed = "auction_resumed"
	TypeAuctionEnded   = "auction_ended"
	TypeAuctionUpdated = "auction_updated"
	TypePlayerChanged  = "player_changed"
	TypePlayerSold     = "player_sold"
	TypePlayerUnsold   = "player_unsold"
	TypeBidPlaced      = "bid_placed"
	TypeTimerSync      = "timer_sync"
)

// Topic returns the pub/sub topic for one auction's event stream.
func Topic(auctionID uuid.UUID) string {
	return "auction:" + auctionID.String()
}

// Publisher delivers events to everyone watching an auction.
type Publisher interface {
	Publish(ctx context.Context, ev Event)
}

// BidPlacedData is the payload of a bid_placed event.
type BidPlacedData struct {
	BidID        uuid.UUID `json:"bid_id"`
	PlayerID     uuid.UUID `json:"player_id"`
	BidderTeamID uuid.UUID `json:"bidder_team_id"`
	BidderName   string    `json:"bidder_name"`
	Amount       int64     `json:"amount"`
	BidType      string    `json:"bid_type"`
	BidOrder     int32     `json:"bid_order"`
	MinimumBid   int64     `json:"minimum_bid"`
	Deadline     time.Time `json:"deadline"`
}

// PlayerChangedData is the payload of a player_changed event, sent when a
// new lot opens.
type PlayerChangedData struct {
	PlayerID   uuid.UUID `json:"player_id"`
	PlayerName string    `json:"player_name"`
	BasePrice  int64     `json:"base_price"`
	MinimumBid int64     `json:"minimum_bid"`
	Deadline   time.Time `json:"deadline"`
}

// PlayerSoldData is the payload of a player_sold event.
type PlayerSoldData struct {
	PlayerID        uuid.UUID `json:"player_id"`
	PlayerName      string    `json:"player_name"`
	WinnerTeamID    uuid.UUID `json:"winner_team_id"`
	WinnerTeamName  string    `json:"winner_team_name"`
	FinalPrice      int64     `json:"final_price"`
	RemainingBudget int64     `json:"remaining_budget"`
}

// PlayerUnsoldData is the payload of a player_unsold event.
type PlayerUnsoldData struct {
	PlayerID   uuid.UUID `json:"player_id"`
	PlayerName string    `json:"player_name"`
}

// TimerSyncData carries the authoritative countdown for the open lot.
type TimerSyncData struct {
	PlayerID         uuid.UUID `json:"player_id"`
	Deadline         time.Time `json:"deadline"`
	RemainingSeconds int64     `json:"remaining_seconds"`
}

// AuctionStateData summarizes auction-level state for lifecycle events.
type AuctionStateData struct {
	Status          string     `json:"status"`
	CurrentPlayerID *uuid.UUID `json:"current_player_id,omitempty"`
	SoldPlayers     int32      `json:"sold_players"`
	UnsoldPlayers   int32      `json:"unsold_players"`
	Deadline        *time.Time `json:"deadline,omitempty"`
}
