package db

import (
	"context"

	"github.com/google/uuid"
)

type Querier interface {
	AddParticipantBudget(ctx context.Context, arg AddParticipantBudgetParams) (AuctionParticipant, error)
	AddQueueEntry(ctx context.Context, arg AddQueueEntryParams) (AuctionQueueEntry, error)
	ClearPlayerSale(ctx context.Context, arg ClearPlayerSaleParams) (Player, error)
	CountBidsForLot(ctx context.Context, arg CountBidsForLotParams) (int64, error)
	CountPlayersWonByTeam(ctx context.Context, arg CountPlayersWonByTeamParams) (int64, error)
	CreateAuction(ctx context.Context, arg CreateAuctionParams) (Auction, error)
	CreateAuctionEvent(ctx context.Context, arg CreateAuctionEventParams) (AuctionEvent, error)
	CreateAuctionParticipant(ctx context.Context, arg CreateAuctionParticipantParams) (AuctionParticipant, error)
	CreateBid(ctx context.Context, arg CreateBidParams) (Bid, error)
	CreateNotification(ctx context.Context, arg CreateNotificationParams) (Notification, error)
	CreatePlayer(ctx context.Context, arg CreatePlayerParams) (Player, error)
	CreatePlayerAuctionHistory(ctx context.Context, arg CreatePlayerAuctionHistoryParams) (PlayerAuctionHistory, error)
	CreateTeam(ctx context.Context, arg CreateTeamParams) (Team, error)
	CreateTournament(ctx context.Context, arg CreateTournamentParams) (Tournament, error)
	CreateUser(ctx context.Context, arg CreateUserParams) (User, error)
	DeleteAuctionParticipant(ctx context.Context, arg DeleteAuctionParticipantParams) (int64, error)
	DeleteQueueEntry(ctx context.Context, arg DeleteQueueEntryParams) (int64, error)
	DeleteUnsoldHistoryEntry(ctx context.Context, arg DeleteUnsoldHistoryEntryParams) (int64, error)
	GetAuctionByID(ctx context.Context, id uuid.UUID) (Auction, error)
	GetAuctionByIDForUpdate(ctx context.Context, id uuid.UUID) (Auction, error)
	GetAuctionParticipant(ctx context.Context, arg GetAuctionParticipantParams) (AuctionParticipant, error)
	GetBidByID(ctx context.Context, id uuid.UUID) (Bid, error)
	GetHighestActiveBidForLot(ctx context.Context, arg GetHighestActiveBidForLotParams) (Bid, error)
	GetLastBidOrder(ctx context.Context, arg GetLastBidOrderParams) (int32, error)
	GetPlayerByID(ctx context.Context, id uuid.UUID) (Player, error)
	GetQueueHead(ctx context.Context, auctionID uuid.UUID) (AuctionQueueEntry, error)
	GetTeamByID(ctx context.Context, id uuid.UUID) (Team, error)
	GetTeamByOwnerID(ctx context.Context, ownerID string) (Team, error)
	GetTournamentByID(ctx context.Context, id uuid.UUID) (Tournament, error)
	GetUserByEmail(ctx context.Context, email string) (User, error)
	GetUserByID(ctx context.Context, id string) (User, error)
	IncrementSoldPlayers(ctx context.Context, id uuid.UUID) (Auction, error)
	IncrementUnsoldPlayers(ctx context.Context, id uuid.UUID) (Auction, error)
	ListAuctionEventsSince(ctx context.Context, arg ListAuctionEventsSinceParams) ([]AuctionEvent, error)
	ListAuctionParticipants(ctx context.Context, auctionID uuid.UUID) ([]AuctionParticipant, error)
	ListAuctions(ctx context.Context) ([]Auction, error)
	ListAuctionsByStatus(ctx context.Context, status AuctionStatus) ([]Auction, error)
	ListBidsForLot(ctx context.Context, arg ListBidsForLotParams) ([]Bid, error)
	ListNotificationsByRecipient(ctx context.Context, recipientID string) ([]Notification, error)
	ListPlayerAuctionHistory(ctx context.Context, playerID uuid.UUID) ([]PlayerAuctionHistory, error)
	ListPlayers(ctx context.Context) ([]Player, error)
	ListPlayersWonByTeam(ctx context.Context, arg ListPlayersWonByTeamParams) ([]Player, error)
	ListQueueEntries(ctx context.Context, auctionID uuid.UUID) ([]AuctionQueueEntry, error)
	ListTeams(ctx context.Context) ([]Team, error)
	ListTournaments(ctx context.Context) ([]Tournament, error)
	MarkLotBidsLost(ctx context.Context, arg MarkLotBidsLostParams) error
	MarkNotificationRead(ctx context.Context, arg MarkNotificationReadParams) error
	SetAuctionCurrentLot(ctx context.Context, arg SetAuctionCurrentLotParams) (Auction, error)
	SetAuctionStatus(ctx context.Context, arg SetAuctionStatusParams) (Auction, error)
	SetBidStatus(ctx context.Context, arg SetBidStatusParams) (Bid, error)
	UpdatePlayer(ctx context.Context, arg UpdatePlayerParams) (Player, error)
	UpdateQueuePosition(ctx context.Context, arg UpdateQueuePositionParams) error
	UpdateTeamLogo(ctx context.Context, arg UpdateTeamLogoParams) (Team, error)
}

var _ Querier = (*Queries)(nil)
