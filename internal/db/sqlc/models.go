package db

import (
	"time"

	"github.com/google/uuid"
)

type AuctionStatus string

const (
	AuctionStatusUpcoming  AuctionStatus = "upcoming"
	AuctionStatusLive      AuctionStatus = "live"
	AuctionStatusPaused    AuctionStatus = "paused"
	AuctionStatusCompleted AuctionStatus = "completed"
)

type PlayerStatus string

const (
	PlayerStatusAvailable PlayerStatus = "available"
	PlayerStatusSold      PlayerStatus = "sold"
	PlayerStatusUnsold    PlayerStatus = "unsold"
	PlayerStatusInjured   PlayerStatus = "injured"
	PlayerStatusRetired   PlayerStatus = "retired"
)

type PlayerRole string

const (
	PlayerRoleBatter       PlayerRole = "batter"
	PlayerRoleBowler       PlayerRole = "bowler"
	PlayerRoleAllRounder   PlayerRole = "all_rounder"
	PlayerRoleWicketKeeper PlayerRole = "wicket_keeper"
)

type BidType string

const (
	BidTypeRegular  BidType = "regular"
	BidTypeOverride BidType = "override"
)

type BidStatus string

const (
	BidStatusActive BidStatus = "active"
	BidStatusWon    BidStatus = "won"
	BidStatusLost   BidStatus = "lost"
)

type UserRole string

const (
	UserRoleAdmin     UserRole = "admin"
	UserRoleTeamOwner UserRole = "team_owner"
	UserRoleViewer    UserRole = "viewer"
)

type User struct {
	ID              string    `json:"id"`
	Email           string    `json:"email"`
	HashedPassword  *string   `json:"-"`
	FullName        string    `json:"full_name"`
	Role            UserRole  `json:"role"`
	GoogleAccountID *string   `json:"google_account_id,omitempty"`
	AvatarURL       *string   `json:"avatar_url,omitempty"`
	CreatedAt       time.Time `json:"created_at"`
}

type Tournament struct {
	ID        uuid.UUID `json:"id"`
	Name      string    `json:"name"`
	Slug      string    `json:"slug"`
	Year      int32     `json:"year"`
	CreatedAt time.Time `json:"created_at"`
}

type Team struct {
	ID        uuid.UUID `json:"id"`
	Name      string    `json:"name"`
	ShortName string    `json:"short_name"`
	Slug      string    `json:"slug"`
	OwnerID   *string   `json:"owner_id,omitempty"`
	LogoURL   *string   `json:"logo_url,omitempty"`
	CreatedAt time.Time `json:"created_at"`
}

type Player struct {
	ID         uuid.UUID    `json:"id"`
	Name       string       `json:"name"`
	Slug       string       `json:"slug"`
	Country    string       `json:"country"`
	Role       PlayerRole   `json:"role"`
	IsOverseas bool         `json:"is_overseas"`
	BasePrice  int64        `json:"base_price"`
	Status     PlayerStatus `json:"status"`
	SoldPrice  *int64       `json:"sold_price,omitempty"`
	TeamID     *uuid.UUID   `json:"team_id,omitempty"`
	PhotoURL   *string      `json:"photo_url,omitempty"`
	CreatedAt  time.Time    `json:"created_at"`
	UpdatedAt  time.Time    `json:"updated_at"`
}

// PlayerAuctionHistory is append-only: one entry per auction the player was
// queued in. An unsold entry may be deleted again by an explicit requeue,
// which is the only allowed retraction.
type PlayerAuctionHistory struct {
	ID           uuid.UUID    `json:"id"`
	PlayerID     uuid.UUID    `json:"player_id"`
	AuctionID    uuid.UUID    `json:"auction_id"`
	FinalPrice   *int64       `json:"final_price,omitempty"`
	WinnerTeamID *uuid.UUID   `json:"winner_team_id,omitempty"`
	Status       PlayerStatus `json:"status"`
	Year         int32        `json:"year"`
	CreatedAt    time.Time    `json:"created_at"`
}

type Auction struct {
	ID                 uuid.UUID     `json:"id"`
	TournamentID       uuid.UUID     `json:"tournament_id"`
	Name               string        `json:"name"`
	Status             AuctionStatus `json:"status"`
	CurrentPlayerID    *uuid.UUID    `json:"current_player_id,omitempty"`
	CurrentBidAmount   int64         `json:"current_bid_amount"`
	CurrentBidderID    *uuid.UUID    `json:"current_bidder_id,omitempty"`
	CurrentBidderName  string        `json:"current_bidder_name"`
	MaxBidIncrement    int64         `json:"max_bid_increment"`
	BidTimeoutSeconds  int32         `json:"bid_timeout_seconds"`
	MaxPlayersPerTeam  int32         `json:"max_players_per_team"`
	MaxForeignPlayers  int32         `json:"max_foreign_players"`
	SoldPlayers        int32         `json:"sold_players"`
	UnsoldPlayers      int32         `json:"unsold_players"`
	CurrentLotDeadline *time.Time    `json:"current_lot_deadline,omitempty"`
	CreatedAt          time.Time     `json:"created_at"`
	UpdatedAt          time.Time     `json:"updated_at"`
}

type AuctionParticipant struct {
	ID              uuid.UUID `json:"id"`
	AuctionID       uuid.UUID `json:"auction_id"`
	TeamID          uuid.UUID `json:"team_id"`
	TeamName        string    `json:"team_name"`
	StartingBudget  int64     `json:"starting_budget"`
	RemainingBudget int64     `json:"remaining_budget"`
	Position        int32     `json:"position"`
	CreatedAt       time.Time `json:"created_at"`
}

type Bid struct {
	ID           uuid.UUID `json:"id"`
	AuctionID    uuid.UUID `json:"auction_id"`
	PlayerID     uuid.UUID `json:"player_id"`
	BidderTeamID uuid.UUID `json:"bidder_team_id"`
	BidderName   string    `json:"bidder_name"`
	Amount       int64     `json:"amount"`
	BidType      BidType   `json:"bid_type"`
	Status       BidStatus `json:"status"`
	BidOrder     int32     `json:"bid_order"`
	CreatedAt    time.Time `json:"created_at"`
}

type AuctionQueueEntry struct {
	AuctionID uuid.UUID `json:"auction_id"`
	PlayerID  uuid.UUID `json:"player_id"`
	Position  int32     `json:"position"`
}

// AuctionEvent is the persisted form of a realtime event. Seq is a
// per-auction monotonically increasing sequence assigned inside the same
// transaction that commits the state change, which makes the polling feed
// order-equivalent to the push feed.
type AuctionEvent struct {
	ID        uuid.UUID `json:"id"`
	AuctionID uuid.UUID `json:"auction_id"`
	Seq       int64     `json:"seq"`
	Type      string    `json:"type"`
	Data      []byte    `json:"data"`
	CreatedAt time.Time `json:"created_at"`
}

type Notification struct {
	ID          uuid.UUID `json:"id"`
	RecipientID string    `json:"recipient_id"`
	Title       string    `json:"title"`
	Message     string    `json:"message"`
	Type        string    `json:"type"`
	ReferenceID *string   `json:"reference_id,omitempty"`
	IsRead      bool      `json:"is_read"`
	CreatedAt   time.Time `json:"created_at"`
}
