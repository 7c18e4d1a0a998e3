package worker

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	db "github.com/cricbid/cricbid-BE/internal/db/sqlc"
	"github.com/google/uuid"
	"github.com/hibiken/asynq"
	"github.com/rs/zerolog/log"
)

type PayloadStartAuction struct {
	AuctionID uuid.UUID `json:"auction_id"`
}

// DistributeTaskStartAuction schedules an auction to go live, typically
// with asynq.ProcessAt set to the planned start time.
func (distributor *RedisTaskDistributor) DistributeTaskStartAuction(
	ctx context.Context,
	payload *PayloadStartAuction,
	opts ...asynq.Option,
) error {
	jsonPayload, err := json.Marshal(payload)
	if err != nil {
		return fmt.Errorf("failed to marshal task payload: %w", err)
	}

	taskID := fmt.Sprintf("auction:start:%s", payload.AuctionID)
	task := asynq.NewTask(TaskStartAuction, jsonPayload, append(opts, asynq.TaskID(taskID))...)
	info, err := distributor.client.EnqueueContext(ctx, task)
	if err != nil {
		return fmt.Errorf("failed to enqueue task: %w", err)
	}

	log.Info().
		Str("type", task.Type()).
		Str("task_id", taskID).
		Str("auction_id", payload.AuctionID.String()).
		Str("queue", info.Queue).
		Time("process_at", info.NextProcessAt).
		Msg("auction start task scheduled")

	return nil
}

// ProcessTaskStartAuction takes the auction live and opens the first lot.
func (processor *RedisTaskProcessor) ProcessTaskStartAuction(
	ctx context.Context,
	task *asynq.Task,
) error {
	var payload PayloadStartAuction
	if err := json.Unmarshal(task.Payload(), &payload); err != nil {
		return fmt.Errorf("failed to unmarshal payload: %w", asynq.SkipRetry)
	}

	result, err := processor.store.StartAuctionTx(ctx, db.StartAuctionTxParams{
		AuctionID: payload.AuctionID,
		ScheduleLotTimer: func(auctionID uuid.UUID, deadline time.Time) error {
			return processor.timer.Reschedule(ctx, auctionID, deadline)
		},
	})
	if err != nil {
		// Already started by hand, deleted, or not ready. None of these
		// get better on retry.
		if errors.Is(err, db.ErrAuctionNotEditable) ||
			errors.Is(err, db.ErrEmptyQueue) ||
			errors.Is(err, db.ErrNoParticipants) ||
			errors.Is(err, db.ErrRecordNotFound) {
			log.Info().
				Err(err).
				Str("auction_id", payload.AuctionID.String()).
				Msg("scheduled start skipped")
			return nil
		}
		return err
	}

	db.PublishAll(ctx, processor.publisher, result.Events...)

	log.Info().
		Str("auction_id", payload.AuctionID.String()).
		Msg("auction started on schedule")

	return nil
}
