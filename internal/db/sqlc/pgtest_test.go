package db

import (
	"context"
	"os"
	"path/filepath"
	"runtime"
	"testing"
	"time"

	"github.com/cricbid/cricbid-BE/internal/util"
	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/stretchr/testify/require"
	"github.com/testcontainers/testcontainers-go"
	tcpostgres "github.com/testcontainers/testcontainers-go/modules/postgres"
	"github.com/testcontainers/testcontainers-go/wait"
)

// newTestStore starts a Postgres container, applies the schema and returns
// a connected Store. The container is terminated when the test ends.
func newTestStore(t *testing.T) Store {
	t.Helper()
	if testing.Short() {
		t.Skip("skipping integration test in short mode")
	}

	ctx := context.Background()

	_, thisFile, _, _ := runtime.Caller(0)
	migrationPath := filepath.Join(filepath.Dir(thisFile), "..", "migrations", "000001_init.up.sql")
	migrationSQL, err := os.ReadFile(migrationPath)
	require.NoError(t, err)

	ctr, err := tcpostgres.Run(ctx, "postgres:16-alpine",
		tcpostgres.WithDatabase("cricbid_test"),
		tcpostgres.WithUsername("test"),
		tcpostgres.WithPassword("test"),
		testcontainers.WithWaitStrategy(
			wait.ForLog("database system is ready to accept connections").
				WithOccurrence(2).
				WithStartupTimeout(30*time.Second),
		),
	)
	testcontainers.CleanupContainer(t, ctr)
	require.NoError(t, err)

	connStr, err := ctr.ConnectionString(ctx, "sslmode=disable")
	require.NoError(t, err)

	pool, err := pgxpool.New(ctx, connStr)
	require.NoError(t, err)
	t.Cleanup(pool.Close)

	_, err = pool.Exec(ctx, string(migrationSQL))
	require.NoError(t, err)

	return NewStore(pool)
}

func createTestTournament(t *testing.T, store Store) Tournament {
	t.Helper()

	name := "Premier League " + shortID()
	tournament, err := store.CreateTournament(context.Background(), CreateTournamentParams{
		ID:   uuid.Must(uuid.NewV7()),
		Name: name,
		Slug: util.GenerateRandomSlug(name),
		Year: 2026,
	})
	require.NoError(t, err)
	return tournament
}

func createTestTeam(t *testing.T, store Store, name string) Team {
	t.Helper()

	team, err := store.CreateTeam(context.Background(), CreateTeamParams{
		ID:        uuid.Must(uuid.NewV7()),
		Name:      name,
		ShortName: name[:3],
		Slug:      util.GenerateRandomSlug(name),
	})
	require.NoError(t, err)
	return team
}

func createTestPlayer(t *testing.T, store Store, basePrice int64) Player {
	t.Helper()

	name := "Player " + shortID()
	player, err := store.CreatePlayer(context.Background(), CreatePlayerParams{
		ID:        uuid.Must(uuid.NewV7()),
		Name:      name,
		Slug:      util.GenerateRandomSlug(name),
		Country:   "India",
		Role:      PlayerRoleBatter,
		BasePrice: basePrice,
		Status:    PlayerStatusAvailable,
	})
	require.NoError(t, err)
	return player
}

func shortID() string {
	return uuid.NewString()[:8]
}

// auctionFixture is a ready-to-start auction: two registered teams and a
// queue of players with a 1,000,000 base price, 100,000 increment.
type auctionFixture struct {
	store   Store
	auction Auction
	teamA   Team
	teamB   Team
	players []Player
}

func seedAuction(t *testing.T, store Store, budgetA, budgetB int64, playerCount int) *auctionFixture {
	t.Helper()
	ctx := context.Background()

	tournament := createTestTournament(t, store)
	auction, err := store.CreateAuction(ctx, CreateAuctionParams{
		ID:                uuid.Must(uuid.NewV7()),
		TournamentID:      tournament.ID,
		Name:              "Season Auction " + shortID(),
		MaxBidIncrement:   100_000,
		BidTimeoutSeconds: 30,
		MaxPlayersPerTeam: 25,
		MaxForeignPlayers: 8,
	})
	require.NoError(t, err)

	f := &auctionFixture{
		store:   store,
		auction: auction,
		teamA:   createTestTeam(t, store, "Strikers "+shortID()),
		teamB:   createTestTeam(t, store, "Royals "+shortID()),
	}

	_, err = store.AddParticipantTx(ctx, AddParticipantTxParams{
		AuctionID:      auction.ID,
		TeamID:         f.teamA.ID,
		StartingBudget: budgetA,
	})
	require.NoError(t, err)
	_, err = store.AddParticipantTx(ctx, AddParticipantTxParams{
		AuctionID:      auction.ID,
		TeamID:         f.teamB.ID,
		StartingBudget: budgetB,
	})
	require.NoError(t, err)

	for i := 0; i < playerCount; i++ {
		player := createTestPlayer(t, store, 1_000_000)
		f.players = append(f.players, player)
		err = store.AddQueuePlayerTx(ctx, AddQueuePlayerTxParams{
			AuctionID: auction.ID,
			PlayerID:  player.ID,
		})
		require.NoError(t, err)
	}

	return f
}

// start takes the fixture auction live; the first queued player comes up
// with the current amount at its base price.
func (f *auctionFixture) start(t *testing.T) Auction {
	t.Helper()

	result, err := f.store.StartAuctionTx(context.Background(), StartAuctionTxParams{
		AuctionID: f.auction.ID,
	})
	require.NoError(t, err)
	require.Equal(t, AuctionStatusLive, result.Auction.Status)
	require.NotNil(t, result.Auction.CurrentPlayerID)
	return result.Auction
}

func (f *auctionFixture) bid(t *testing.T, team Team, playerID uuid.UUID, amount int64) (PlaceBidTxResult, error) {
	t.Helper()

	return f.store.PlaceBidTx(context.Background(), PlaceBidTxParams{
		AuctionID:    f.auction.ID,
		PlayerID:     playerID,
		BidderTeamID: team.ID,
		Amount:       amount,
		BidType:      BidTypeRegular,
	})
}

func (f *auctionFixture) participant(t *testing.T, team Team) AuctionParticipant {
	t.Helper()

	participant, err := f.store.GetAuctionParticipant(context.Background(), GetAuctionParticipantParams{
		AuctionID: f.auction.ID,
		TeamID:    team.ID,
	})
	require.NoError(t, err)
	return participant
}
