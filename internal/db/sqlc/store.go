package db

import (
	"context"
	"fmt"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgxpool"
)

// Store provides all functions to execute db queries and transactions.
type Store interface {
	Querier
	PlaceBidTx(ctx context.Context, arg PlaceBidTxParams) (PlaceBidTxResult, error)
	FinalizeSaleTx(ctx context.Context, arg FinalizeSaleTxParams) (FinalizeSaleTxResult, error)
	MarkUnsoldTx(ctx context.Context, arg MarkUnsoldTxParams) (MarkUnsoldTxResult, error)
	StartAuctionTx(ctx context.Context, arg StartAuctionTxParams) (StartAuctionTxResult, error)
	PauseAuctionTx(ctx context.Context, auctionID uuid.UUID) (LifecycleTxResult, error)
	ResumeAuctionTx(ctx context.Context, arg ResumeAuctionTxParams) (LifecycleTxResult, error)
	EndAuctionTx(ctx context.Context, auctionID uuid.UUID) (LifecycleTxResult, error)
	AddQueuePlayerTx(ctx context.Context, arg AddQueuePlayerTxParams) error
	RemoveQueuePlayerTx(ctx context.Context, arg RemoveQueuePlayerTxParams) error
	ReorderQueueTx(ctx context.Context, arg ReorderQueueTxParams) error
	RequeuePlayerTx(ctx context.Context, arg RequeuePlayerTxParams) error
	AddParticipantTx(ctx context.Context, arg AddParticipantTxParams) (AuctionParticipant, error)
	RemoveParticipantTx(ctx context.Context, arg RemoveParticipantTxParams) error
	Ping(ctx context.Context) error
}

type SQLStore struct {
	*Queries
	connPool *pgxpool.Pool
}

// NewStore creates a new Store.
func NewStore(db *pgxpool.Pool) Store {
	return &SQLStore{
		Queries:  New(db),
		connPool: db,
	}
}

// Ping checks if the database connection is alive.
func (store *SQLStore) Ping(ctx context.Context) error {
	return store.connPool.Ping(ctx)
}

// ExecTx executes a function within a database transaction.
func (store *SQLStore) ExecTx(ctx context.Context, fn func(*Queries) error) error {
	tx, err := store.connPool.Begin(ctx)
	if err != nil {
		return err
	}

	q := New(tx)
	err = fn(q)
	if err != nil {
		if rbErr := tx.Rollback(ctx); rbErr != nil {
			return fmt.Errorf("tx error: %v, rollback error: %v", err, rbErr)
		}
		return err
	}

	return tx.Commit(ctx)
}
