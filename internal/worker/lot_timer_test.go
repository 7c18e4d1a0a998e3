package worker

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/hibiken/asynq"
	"github.com/stretchr/testify/require"
)

type fakeDistributor struct {
	finalizePayloads []*PayloadFinalizeLot
	err              error
}

func (d *fakeDistributor) DistributeTaskSendNotification(ctx context.Context, payload *PayloadSendNotification, opts ...asynq.Option) error {
	return d.err
}

func (d *fakeDistributor) DistributeTaskStartAuction(ctx context.Context, payload *PayloadStartAuction, opts ...asynq.Option) error {
	return d.err
}

func (d *fakeDistributor) DistributeTaskFinalizeLot(ctx context.Context, payload *PayloadFinalizeLot, opts ...asynq.Option) error {
	if d.err != nil {
		return d.err
	}
	d.finalizePayloads = append(d.finalizePayloads, payload)
	return nil
}

type fakeInspector struct {
	deleted   []string
	deleteErr error
}

func (i *fakeInspector) DeleteTask(ctx context.Context, queue, taskID string) error {
	if i.deleteErr != nil {
		return i.deleteErr
	}
	i.deleted = append(i.deleted, taskID)
	return nil
}

func (i *fakeInspector) GetTaskInfo(ctx context.Context, queue, taskID string) (*asynq.TaskInfo, error) {
	return nil, asynq.ErrTaskNotFound
}

func TestLotTimerReschedule(t *testing.T) {
	distributor := new(fakeDistributor)
	inspector := new(fakeInspector)
	timer := NewLotTimer(distributor, inspector)
	auctionID := uuid.New()

	err := timer.Reschedule(context.Background(), auctionID, time.Now().Add(30*time.Second))
	require.NoError(t, err)

	// The old timer is deleted before the new one is armed.
	require.Equal(t, []string{finalizeLotTaskID(auctionID)}, inspector.deleted)
	require.Len(t, distributor.finalizePayloads, 1)
	require.Equal(t, auctionID, distributor.finalizePayloads[0].AuctionID)
}

func TestLotTimerCancelToleratesMissingTask(t *testing.T) {
	timer := NewLotTimer(new(fakeDistributor), &fakeInspector{deleteErr: asynq.ErrTaskNotFound})

	err := timer.Cancel(context.Background(), uuid.New())
	require.NoError(t, err)
}

func TestLotTimerCancelToleratesMissingQueue(t *testing.T) {
	timer := NewLotTimer(new(fakeDistributor), &fakeInspector{deleteErr: asynq.ErrQueueNotFound})

	err := timer.Cancel(context.Background(), uuid.New())
	require.NoError(t, err)
}

func TestLotTimerCancelPropagatesRealErrors(t *testing.T) {
	boom := errors.New("redis is down")
	timer := NewLotTimer(new(fakeDistributor), &fakeInspector{deleteErr: boom})

	err := timer.Cancel(context.Background(), uuid.New())
	require.ErrorIs(t, err, boom)

	// Reschedule refuses to arm a new timer if it cannot clear the old one.
	err = timer.Reschedule(context.Background(), uuid.New(), time.Now())
	require.ErrorIs(t, err, boom)
}
