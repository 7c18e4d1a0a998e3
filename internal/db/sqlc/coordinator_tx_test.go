package db

import (
	"context"
	"errors"
	"sync"
	"testing"

	"github.com/cricbid/cricbid-BE/internal/validator"
	"github.com/stretchr/testify/require"
)

func TestPlaceBidTxBoundary(t *testing.T) {
	store := newTestStore(t)
	f := seedAuction(t, store, 50_000_000, 50_000_000, 1)
	auction := f.start(t)
	playerID := *auction.CurrentPlayerID

	// One below the step floor is rejected with the exact minimum.
	_, err := f.bid(t, f.teamA, playerID, 1_099_999)
	var tooLow validator.BidTooLowError
	require.ErrorAs(t, err, &tooLow)
	require.Equal(t, int64(1_100_000), tooLow.MinimumBid)

	// The rejection left no bid row behind.
	bids, err := store.ListBidsForLot(context.Background(), ListBidsForLotParams{
		AuctionID: f.auction.ID,
		PlayerID:  playerID,
	})
	require.NoError(t, err)
	require.Empty(t, bids)

	// The exact floor is accepted and opens the order at 1.
	result, err := f.bid(t, f.teamA, playerID, 1_100_000)
	require.NoError(t, err)
	require.Equal(t, int32(1), result.Bid.BidOrder)
	require.Equal(t, int64(1_100_000), result.Auction.CurrentBidAmount)
}

func TestPlaceBidTxConcurrentBidsAreGapFree(t *testing.T) {
	store := newTestStore(t)
	f := seedAuction(t, store, 50_000_000, 50_000_000, 1)
	auction := f.start(t)
	playerID := *auction.CurrentPlayerID

	// Each goroutine keeps raising until one of its bids lands. A losing
	// concurrent bid comes back as a plain BidTooLow with the new minimum,
	// which is exactly the retry signal a client would use.
	const bidders = 6
	teams := []Team{f.teamA, f.teamB}
	var wg sync.WaitGroup
	errs := make(chan error, bidders)

	for i := 0; i < bidders; i++ {
		wg.Add(1)
		go func(team Team) {
			defer wg.Done()

			amount := int64(1_100_000)
			for attempt := 0; attempt < 100; attempt++ {
				_, err := f.bid(t, team, playerID, amount)
				if err == nil {
					return
				}
				var tooLow validator.BidTooLowError
				if errors.As(err, &tooLow) {
					amount = tooLow.MinimumBid
					continue
				}
				errs <- err
				return
			}
			errs <- errors.New("bid never landed")
		}(teams[i%len(teams)])
	}
	wg.Wait()
	close(errs)
	for err := range errs {
		t.Fatalf("concurrent bid failed: %v", err)
	}

	bids, err := store.ListBidsForLot(context.Background(), ListBidsForLotParams{
		AuctionID: f.auction.ID,
		PlayerID:  playerID,
	})
	require.NoError(t, err)
	require.Len(t, bids, bidders)

	// bid_order is contiguous from 1 and amounts rise strictly with it.
	for i, bid := range bids {
		require.Equal(t, int32(i+1), bid.BidOrder)
		if i > 0 {
			require.Greater(t, bid.Amount, bids[i-1].Amount)
		}
	}

	updated, err := store.GetAuctionByID(context.Background(), f.auction.ID)
	require.NoError(t, err)
	require.Equal(t, bids[len(bids)-1].Amount, updated.CurrentBidAmount)
}

func TestPlaceBidTxRejectsPausedAuction(t *testing.T) {
	store := newTestStore(t)
	f := seedAuction(t, store, 50_000_000, 50_000_000, 1)
	auction := f.start(t)
	playerID := *auction.CurrentPlayerID

	_, err := store.PauseAuctionTx(context.Background(), f.auction.ID)
	require.NoError(t, err)

	// Any amount, any budget: a paused auction never takes a bid.
	_, err = f.bid(t, f.teamA, playerID, 10_000_000)
	require.ErrorIs(t, err, validator.ErrAuctionNotLive)

	_, err = store.ResumeAuctionTx(context.Background(), ResumeAuctionTxParams{AuctionID: f.auction.ID})
	require.NoError(t, err)

	_, err = f.bid(t, f.teamA, playerID, 1_100_000)
	require.NoError(t, err)
}

func TestTwoTeamBudgetScenario(t *testing.T) {
	store := newTestStore(t)
	f := seedAuction(t, store, 2_000_000, 1_500_000, 2)
	auction := f.start(t)
	playerID := *auction.CurrentPlayerID
	require.Equal(t, f.players[0].ID, playerID)
	require.Equal(t, int64(1_000_000), auction.CurrentBidAmount)

	_, err := f.bid(t, f.teamA, playerID, 1_100_000)
	require.NoError(t, err)

	// Below the new 1,200,000 minimum.
	_, err = f.bid(t, f.teamB, playerID, 1_150_000)
	var tooLow validator.BidTooLowError
	require.ErrorAs(t, err, &tooLow)
	require.Equal(t, int64(1_200_000), tooLow.MinimumBid)

	_, err = f.bid(t, f.teamB, playerID, 1_200_000)
	require.NoError(t, err)

	sale, err := store.FinalizeSaleTx(context.Background(), FinalizeSaleTxParams{
		AuctionID: f.auction.ID,
		PlayerID:  playerID,
	})
	require.NoError(t, err)
	require.False(t, sale.Stale)
	require.False(t, sale.Unsold)

	// Sold to team B at 1,200,000.
	require.Equal(t, f.teamB.ID, sale.WinningBid.BidderTeamID)
	require.Equal(t, int64(1_200_000), sale.WinningBid.Amount)
	require.Equal(t, BidStatusWon, sale.WinningBid.Status)
	require.Equal(t, PlayerStatusSold, sale.Player.Status)
	require.Equal(t, f.teamB.ID, *sale.Player.TeamID)
	require.Equal(t, int64(1_200_000), *sale.Player.SoldPrice)

	// Only the winner's budget is charged, and never below zero.
	require.Equal(t, int64(300_000), f.participant(t, f.teamB).RemainingBudget)
	require.Equal(t, int64(2_000_000), f.participant(t, f.teamA).RemainingBudget)

	// Team A's losing bid is marked lost.
	bids, err := store.ListBidsForLot(context.Background(), ListBidsForLotParams{
		AuctionID: f.auction.ID,
		PlayerID:  playerID,
	})
	require.NoError(t, err)
	require.Len(t, bids, 2)
	require.Equal(t, BidStatusLost, bids[0].Status)
	require.Equal(t, BidStatusWon, bids[1].Status)

	// The next queued player is up with a clean opening bid.
	require.Equal(t, int32(1), sale.Auction.SoldPlayers)
	require.NotNil(t, sale.Auction.CurrentPlayerID)
	require.Equal(t, f.players[1].ID, *sale.Auction.CurrentPlayerID)
	require.Equal(t, int64(1_000_000), sale.Auction.CurrentBidAmount)
	require.Nil(t, sale.Auction.CurrentBidderID)
}

func TestFinalizeSaleTxStaleLotIsNoOp(t *testing.T) {
	store := newTestStore(t)
	f := seedAuction(t, store, 50_000_000, 50_000_000, 2)
	auction := f.start(t)
	firstPlayerID := *auction.CurrentPlayerID

	_, err := f.bid(t, f.teamA, firstPlayerID, 1_100_000)
	require.NoError(t, err)

	sale, err := store.FinalizeSaleTx(context.Background(), FinalizeSaleTxParams{
		AuctionID: f.auction.ID,
		PlayerID:  firstPlayerID,
	})
	require.NoError(t, err)
	require.False(t, sale.Stale)
	require.Equal(t, int32(1), sale.Auction.SoldPlayers)

	// A second finalize for the same, already settled lot backs off.
	again, err := store.FinalizeSaleTx(context.Background(), FinalizeSaleTxParams{
		AuctionID: f.auction.ID,
		PlayerID:  firstPlayerID,
	})
	require.NoError(t, err)
	require.True(t, again.Stale)

	updated, err := store.GetAuctionByID(context.Background(), f.auction.ID)
	require.NoError(t, err)
	require.Equal(t, int32(1), updated.SoldPlayers)
	require.Equal(t, f.players[1].ID, *updated.CurrentPlayerID)

	// Same guard when the auction is not live at all.
	_, err = store.PauseAuctionTx(context.Background(), f.auction.ID)
	require.NoError(t, err)
	paused, err := store.FinalizeSaleTx(context.Background(), FinalizeSaleTxParams{
		AuctionID: f.auction.ID,
		PlayerID:  f.players[1].ID,
	})
	require.NoError(t, err)
	require.True(t, paused.Stale)
}

func TestFinalizeSaleTxNoBidsGoesUnsold(t *testing.T) {
	store := newTestStore(t)
	f := seedAuction(t, store, 50_000_000, 50_000_000, 1)
	auction := f.start(t)
	playerID := *auction.CurrentPlayerID

	// The timer path: the countdown expired without a single bid.
	sale, err := store.FinalizeSaleTx(context.Background(), FinalizeSaleTxParams{
		AuctionID: f.auction.ID,
		PlayerID:  playerID,
	})
	require.NoError(t, err)
	require.True(t, sale.Unsold)
	require.Equal(t, PlayerStatusUnsold, sale.Player.Status)
	require.Equal(t, int32(1), sale.Auction.UnsoldPlayers)

	// Queue was empty, so the auction completed.
	require.True(t, sale.Completed)
	require.Equal(t, AuctionStatusCompleted, sale.Auction.Status)
	require.Nil(t, sale.Auction.CurrentPlayerID)
}

func TestMarkUnsoldTxRefusesLotWithBids(t *testing.T) {
	store := newTestStore(t)
	f := seedAuction(t, store, 50_000_000, 50_000_000, 2)
	auction := f.start(t)
	playerID := *auction.CurrentPlayerID

	_, err := f.bid(t, f.teamA, playerID, 1_100_000)
	require.NoError(t, err)

	_, err = store.MarkUnsoldTx(context.Background(), MarkUnsoldTxParams{
		AuctionID: f.auction.ID,
		PlayerID:  playerID,
	})
	require.ErrorIs(t, err, ErrLotHasBids)

	// The contested lot settles through finalize; the next one, with no
	// bids, can be passed explicitly.
	sale, err := store.FinalizeSaleTx(context.Background(), FinalizeSaleTxParams{
		AuctionID: f.auction.ID,
		PlayerID:  playerID,
	})
	require.NoError(t, err)
	secondPlayerID := *sale.Auction.CurrentPlayerID

	result, err := store.MarkUnsoldTx(context.Background(), MarkUnsoldTxParams{
		AuctionID: f.auction.ID,
		PlayerID:  secondPlayerID,
	})
	require.NoError(t, err)
	require.Equal(t, PlayerStatusUnsold, result.Player.Status)
	require.Equal(t, int32(1), result.Auction.UnsoldPlayers)
}
