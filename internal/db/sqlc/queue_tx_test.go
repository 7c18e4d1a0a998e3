package db

import (
	"context"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/require"
)

func TestQueueMutationsRejectedWhileLive(t *testing.T) {
	store := newTestStore(t)
	ctx := context.Background()
	f := seedAuction(t, store, 50_000_000, 50_000_000, 3)
	f.start(t)

	extra := createTestPlayer(t, store, 1_000_000)
	err := store.AddQueuePlayerTx(ctx, AddQueuePlayerTxParams{
		AuctionID: f.auction.ID,
		PlayerID:  extra.ID,
	})
	require.ErrorIs(t, err, ErrAuctionNotEditable)

	// players[0] is the open lot, so players[1] and players[2] are queued.
	err = store.RemoveQueuePlayerTx(ctx, RemoveQueuePlayerTxParams{
		AuctionID: f.auction.ID,
		PlayerID:  f.players[1].ID,
	})
	require.ErrorIs(t, err, ErrAuctionNotEditable)

	err = store.ReorderQueueTx(ctx, ReorderQueueTxParams{
		AuctionID: f.auction.ID,
		PlayerIDs: []uuid.UUID{f.players[2].ID, f.players[1].ID},
	})
	require.ErrorIs(t, err, ErrAuctionNotEditable)

	queue, err := store.ListQueueEntries(ctx, f.auction.ID)
	require.NoError(t, err)
	require.Len(t, queue, 2)
	require.Equal(t, f.players[1].ID, queue[0].PlayerID)

	// Pausing reopens the board.
	_, err = store.PauseAuctionTx(ctx, f.auction.ID)
	require.NoError(t, err)

	err = store.AddQueuePlayerTx(ctx, AddQueuePlayerTxParams{
		AuctionID: f.auction.ID,
		PlayerID:  extra.ID,
	})
	require.NoError(t, err)

	err = store.ReorderQueueTx(ctx, ReorderQueueTxParams{
		AuctionID: f.auction.ID,
		PlayerIDs: []uuid.UUID{extra.ID, f.players[2].ID, f.players[1].ID},
	})
	require.NoError(t, err)

	err = store.RemoveQueuePlayerTx(ctx, RemoveQueuePlayerTxParams{
		AuctionID: f.auction.ID,
		PlayerID:  f.players[1].ID,
	})
	require.NoError(t, err)

	queue, err = store.ListQueueEntries(ctx, f.auction.ID)
	require.NoError(t, err)
	require.Len(t, queue, 2)
	require.Equal(t, extra.ID, queue[0].PlayerID)
}

func TestQueueMutationsRejectedWhenCompleted(t *testing.T) {
	store := newTestStore(t)
	ctx := context.Background()
	f := seedAuction(t, store, 50_000_000, 50_000_000, 2)
	f.start(t)

	_, err := store.EndAuctionTx(ctx, f.auction.ID)
	require.NoError(t, err)

	// The leftover queue row is frozen with the auction.
	err = store.RemoveQueuePlayerTx(ctx, RemoveQueuePlayerTxParams{
		AuctionID: f.auction.ID,
		PlayerID:  f.players[1].ID,
	})
	require.ErrorIs(t, err, ErrAuctionNotEditable)

	err = store.AddQueuePlayerTx(ctx, AddQueuePlayerTxParams{
		AuctionID: f.auction.ID,
		PlayerID:  createTestPlayer(t, store, 1_000_000).ID,
	})
	require.ErrorIs(t, err, ErrAuctionNotEditable)
}

func TestRequeuePlayerTxLeavesQueueAlone(t *testing.T) {
	store := newTestStore(t)
	ctx := context.Background()
	f := seedAuction(t, store, 2_000_000, 1_500_000, 2)
	auction := f.start(t)
	firstPlayerID := *auction.CurrentPlayerID

	// The lot passes with no bids; the next player comes up.
	result, err := store.MarkUnsoldTx(ctx, MarkUnsoldTxParams{
		AuctionID: f.auction.ID,
		PlayerID:  firstPlayerID,
	})
	require.NoError(t, err)
	require.Equal(t, f.players[1].ID, *result.Auction.CurrentPlayerID)

	err = store.RequeuePlayerTx(ctx, RequeuePlayerTxParams{
		AuctionID: f.auction.ID,
		PlayerID:  firstPlayerID,
	})
	require.NoError(t, err)

	// The unsold entry is retracted and the player is available again,
	// but requeue never inserts into the queue by itself.
	player, err := store.GetPlayerByID(ctx, firstPlayerID)
	require.NoError(t, err)
	require.Equal(t, PlayerStatusAvailable, player.Status)

	history, err := store.ListPlayerAuctionHistory(ctx, firstPlayerID)
	require.NoError(t, err)
	require.Empty(t, history)

	queue, err := store.ListQueueEntries(ctx, f.auction.ID)
	require.NoError(t, err)
	require.Empty(t, queue)

	// Re-adding is the separate explicit action, taken while paused.
	_, err = store.PauseAuctionTx(ctx, f.auction.ID)
	require.NoError(t, err)
	err = store.AddQueuePlayerTx(ctx, AddQueuePlayerTxParams{
		AuctionID: f.auction.ID,
		PlayerID:  firstPlayerID,
	})
	require.NoError(t, err)
	_, err = store.ResumeAuctionTx(ctx, ResumeAuctionTxParams{AuctionID: f.auction.ID})
	require.NoError(t, err)

	// Sell the open lot, then the requeued player comes up and sells too.
	_, err = f.bid(t, f.teamB, f.players[1].ID, 1_100_000)
	require.NoError(t, err)
	sale, err := store.FinalizeSaleTx(ctx, FinalizeSaleTxParams{
		AuctionID: f.auction.ID,
		PlayerID:  f.players[1].ID,
	})
	require.NoError(t, err)
	require.Equal(t, firstPlayerID, *sale.Auction.CurrentPlayerID)

	_, err = f.bid(t, f.teamA, firstPlayerID, 1_100_000)
	require.NoError(t, err)
	sale, err = store.FinalizeSaleTx(ctx, FinalizeSaleTxParams{
		AuctionID: f.auction.ID,
		PlayerID:  firstPlayerID,
	})
	require.NoError(t, err)
	require.True(t, sale.Completed)

	// One fresh sold entry; the retracted unsold entry never came back.
	history, err = store.ListPlayerAuctionHistory(ctx, firstPlayerID)
	require.NoError(t, err)
	require.Len(t, history, 1)
	require.Equal(t, PlayerStatusSold, history[0].Status)
	require.Equal(t, int64(1_100_000), *history[0].FinalPrice)
	require.Equal(t, f.teamA.ID, *history[0].WinnerTeamID)
}
