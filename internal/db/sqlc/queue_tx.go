package db

import (
	"context"
	"fmt"

	"github.com/google/uuid"
)

type AddQueuePlayerTxParams struct {
	AuctionID uuid.UUID `json:"auction_id"`
	PlayerID  uuid.UUID `json:"player_id"`
}

// queueEditable reports whether the queue may be mutated. Bidders watching
// a live auction must never see the board change under them, so add, remove
// and reorder are limited to upcoming and paused auctions.
func queueEditable(status AuctionStatus) bool {
	return status == AuctionStatusUpcoming || status == AuctionStatusPaused
}

// AddQueuePlayerTx appends an available player to the end of the auction
// queue. Allowed only while the auction is upcoming or paused.
func (store *SQLStore) AddQueuePlayerTx(ctx context.Context, arg AddQueuePlayerTxParams) error {
	return store.ExecTx(ctx, func(q *Queries) error {
		auction, err := q.GetAuctionByIDForUpdate(ctx, arg.AuctionID)
		if err != nil {
			return err
		}
		if !queueEditable(auction.Status) {
			return ErrAuctionNotEditable
		}

		player, err := q.GetPlayerByID(ctx, arg.PlayerID)
		if err != nil {
			return err
		}
		if player.Status != PlayerStatusAvailable {
			return ErrPlayerNotAvailable
		}
		if auction.CurrentPlayerID != nil && *auction.CurrentPlayerID == arg.PlayerID {
			return ErrPlayerQueued
		}

		_, err = q.AddQueueEntry(ctx, AddQueueEntryParams{
			AuctionID: arg.AuctionID,
			PlayerID:  arg.PlayerID,
		})
		if err != nil {
			if code, constraint := ErrorDescription(err); code == UniqueViolationCode && constraint == UniqueQueueEntryConstraint {
				return ErrPlayerQueued
			}
			return err
		}

		return nil
	})
}

type RemoveQueuePlayerTxParams struct {
	AuctionID uuid.UUID `json:"auction_id"`
	PlayerID  uuid.UUID `json:"player_id"`
}

// RemoveQueuePlayerTx drops a queued player. Allowed only while the auction
// is upcoming or paused, and never for the open lot; that has to settle or
// go unsold.
func (store *SQLStore) RemoveQueuePlayerTx(ctx context.Context, arg RemoveQueuePlayerTxParams) error {
	return store.ExecTx(ctx, func(q *Queries) error {
		auction, err := q.GetAuctionByIDForUpdate(ctx, arg.AuctionID)
		if err != nil {
			return err
		}
		if !queueEditable(auction.Status) {
			return ErrAuctionNotEditable
		}
		if auction.CurrentPlayerID != nil && *auction.CurrentPlayerID == arg.PlayerID {
			return ErrAuctionNotEditable
		}

		rows, err := q.DeleteQueueEntry(ctx, DeleteQueueEntryParams{
			AuctionID: arg.AuctionID,
			PlayerID:  arg.PlayerID,
		})
		if err != nil {
			return err
		}
		if rows == 0 {
			return ErrRecordNotFound
		}

		return nil
	})
}

type ReorderQueueTxParams struct {
	AuctionID uuid.UUID   `json:"auction_id"`
	PlayerIDs []uuid.UUID `json:"player_ids"`
}

// ReorderQueueTx rewrites the queue order from the given player list, which
// must contain exactly the currently queued players. Allowed only while the
// auction is upcoming or paused.
func (store *SQLStore) ReorderQueueTx(ctx context.Context, arg ReorderQueueTxParams) error {
	return store.ExecTx(ctx, func(q *Queries) error {
		auction, err := q.GetAuctionByIDForUpdate(ctx, arg.AuctionID)
		if err != nil {
			return err
		}
		if !queueEditable(auction.Status) {
			return ErrAuctionNotEditable
		}

		entries, err := q.ListQueueEntries(ctx, arg.AuctionID)
		if err != nil {
			return err
		}
		if len(entries) != len(arg.PlayerIDs) {
			return fmt.Errorf("reorder must list all %d queued players, got %d", len(entries), len(arg.PlayerIDs))
		}

		queued := make(map[uuid.UUID]bool, len(entries))
		for _, entry := range entries {
			queued[entry.PlayerID] = true
		}

		for i, playerID := range arg.PlayerIDs {
			if !queued[playerID] {
				return fmt.Errorf("player %s is not in the queue", playerID)
			}
			err = q.UpdateQueuePosition(ctx, UpdateQueuePositionParams{
				AuctionID: arg.AuctionID,
				PlayerID:  playerID,
				Position:  int32(i + 1),
			})
			if err != nil {
				return err
			}
		}

		return nil
	})
}

type RequeuePlayerTxParams struct {
	AuctionID uuid.UUID `json:"auction_id"`
	PlayerID  uuid.UUID `json:"player_id"`
}

// RequeuePlayerTx gives an unsold player another chance: the unsold history
// entry is retracted and the player goes back to available. It does not
// touch the queue; putting the player up again is a separate explicit
// queue-management action.
func (store *SQLStore) RequeuePlayerTx(ctx context.Context, arg RequeuePlayerTxParams) error {
	return store.ExecTx(ctx, func(q *Queries) error {
		auction, err := q.GetAuctionByIDForUpdate(ctx, arg.AuctionID)
		if err != nil {
			return err
		}
		if auction.Status == AuctionStatusCompleted {
			return ErrAuctionNotEditable
		}

		player, err := q.GetPlayerByID(ctx, arg.PlayerID)
		if err != nil {
			return err
		}
		if player.Status != PlayerStatusUnsold {
			return ErrPlayerNotAvailable
		}

		rows, err := q.DeleteUnsoldHistoryEntry(ctx, DeleteUnsoldHistoryEntryParams{
			PlayerID:  arg.PlayerID,
			AuctionID: arg.AuctionID,
		})
		if err != nil {
			return err
		}
		if rows == 0 {
			return ErrRecordNotFound
		}

		_, err = q.ClearPlayerSale(ctx, ClearPlayerSaleParams{
			ID:     arg.PlayerID,
			Status: PlayerStatusAvailable,
		})
		return err
	})
}
