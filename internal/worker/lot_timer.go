package worker

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/hibiken/asynq"
)

// LotTimer manages the single finalize timer each auction carries while a
// lot is open. The timer is an asynq task whose ID is derived from the
// auction, so re-arming is a delete followed by a fresh enqueue and at most
// one timer per auction can be pending.
type LotTimer struct {
	distributor TaskDistributor
	inspector   TaskInspector
}

func NewLotTimer(distributor TaskDistributor, inspector TaskInspector) *LotTimer {
	return &LotTimer{
		distributor: distributor,
		inspector:   inspector,
	}
}

func finalizeLotTaskID(auctionID uuid.UUID) string {
	return fmt.Sprintf("lot:finalize:%s", auctionID)
}

// Reschedule cancels any pending finalize timer for the auction and arms a
// new one for the given deadline.
func (t *LotTimer) Reschedule(ctx context.Context, auctionID uuid.UUID, deadline time.Time) error {
	if err := t.Cancel(ctx, auctionID); err != nil {
		return err
	}

	return t.distributor.DistributeTaskFinalizeLot(ctx, &PayloadFinalizeLot{
		AuctionID: auctionID,
	}, asynq.ProcessAt(deadline), asynq.Queue(QueueCritical), asynq.MaxRetry(3))
}

// Cancel removes the pending finalize timer. Missing task or queue is fine;
// the timer may have fired or never been armed.
func (t *LotTimer) Cancel(ctx context.Context, auctionID uuid.UUID) error {
	err := t.inspector.DeleteTask(ctx, QueueCritical, finalizeLotTaskID(auctionID))
	if err != nil && !errors.Is(err, asynq.ErrTaskNotFound) && !errors.Is(err, asynq.ErrQueueNotFound) {
		return err
	}
	return nil
}
