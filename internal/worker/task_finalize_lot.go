package worker

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	db "github.com/cricbid/cricbid-BE/internal/db/sqlc"
	"github.com/cricbid/cricbid-BE/internal/util"
	"github.com/google/uuid"
	"github.com/hibiken/asynq"
	"github.com/rs/zerolog/log"
)

type PayloadFinalizeLot struct {
	AuctionID uuid.UUID `json:"auction_id"`
}

// DistributeTaskFinalizeLot schedules the countdown expiry for the open lot.
func (distributor *RedisTaskDistributor) DistributeTaskFinalizeLot(
	ctx context.Context,
	payload *PayloadFinalizeLot,
	opts ...asynq.Option,
) error {
	jsonPayload, err := json.Marshal(payload)
	if err != nil {
		return fmt.Errorf("failed to marshal task payload: %w", err)
	}

	taskID := finalizeLotTaskID(payload.AuctionID)
	task := asynq.NewTask(TaskFinalizeLot, jsonPayload, append(opts, asynq.TaskID(taskID))...)
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
		Msg("lot finalize timer armed")

	return nil
}

// ProcessTaskFinalizeLot closes the open lot when its countdown expires.
// The transaction decides between sold and unsold and opens the next lot;
// a timer that lost the race to a concurrent bid or an admin action sees a
// stale lot and backs off.
func (processor *RedisTaskProcessor) ProcessTaskFinalizeLot(
	ctx context.Context,
	task *asynq.Task,
) error {
	var payload PayloadFinalizeLot
	if err := json.Unmarshal(task.Payload(), &payload); err != nil {
		return fmt.Errorf("failed to unmarshal payload: %w", asynq.SkipRetry)
	}

	auction, err := processor.store.GetAuctionByID(ctx, payload.AuctionID)
	if err != nil {
		if errors.Is(err, db.ErrRecordNotFound) {
			log.Info().
				Str("auction_id", payload.AuctionID.String()).
				Msg("auction not found, skipping lot finalize")
			return nil
		}
		return fmt.Errorf("failed to get auction: %w", err)
	}

	if auction.Status != db.AuctionStatusLive || auction.CurrentPlayerID == nil {
		log.Info().
			Str("auction_id", payload.AuctionID.String()).
			Str("status", string(auction.Status)).
			Msg("no open lot to finalize, skipping")
		return nil
	}

	// A bid re-arms the timer by deleting this task and enqueuing a new
	// one. If the delete raced with this fire, the deadline in the
	// database is ahead of now and this fire is obsolete.
	if auction.CurrentLotDeadline != nil && time.Until(*auction.CurrentLotDeadline) > 2*time.Second {
		log.Info().
			Str("auction_id", payload.AuctionID.String()).
			Time("deadline", *auction.CurrentLotDeadline).
			Msg("lot deadline moved, skipping obsolete timer fire")
		return nil
	}

	playerID := *auction.CurrentPlayerID
	result, err := processor.store.FinalizeSaleTx(ctx, db.FinalizeSaleTxParams{
		AuctionID: payload.AuctionID,
		PlayerID:  playerID,
		ScheduleNextLot: func(auctionID uuid.UUID, deadline time.Time) error {
			return processor.timer.Reschedule(ctx, auctionID, deadline)
		},
		CancelTimer: func(auctionID uuid.UUID) error {
			return processor.timer.Cancel(ctx, auctionID)
		},
	})
	if err != nil {
		log.Error().
			Err(err).
			Str("auction_id", payload.AuctionID.String()).
			Str("player_id", playerID.String()).
			Msg("failed to finalize lot")
		return err
	}

	if result.Stale {
		log.Info().
			Str("auction_id", payload.AuctionID.String()).
			Str("player_id", playerID.String()).
			Msg("lot already closed, timer fire was stale")
		return nil
	}

	db.PublishAll(ctx, processor.publisher, result.Events...)

	if !result.Unsold {
		processor.notifySale(ctx, result)
	}

	log.Info().
		Str("auction_id", payload.AuctionID.String()).
		Str("player_id", playerID.String()).
		Bool("unsold", result.Unsold).
		Bool("auction_completed", result.Completed).
		Msg("lot finalized")

	return nil
}

// notifySale tells the winning team's owner about the purchase. Best
// effort; the sale is already committed.
func (processor *RedisTaskProcessor) notifySale(ctx context.Context, result db.FinalizeSaleTxResult) {
	team, err := processor.store.GetTeamByID(ctx, result.WinningBid.BidderTeamID)
	if err != nil {
		log.Warn().
			Err(err).
			Str("team_id", result.WinningBid.BidderTeamID.String()).
			Msg("failed to look up winning team for notification")
		return
	}
	if team.OwnerID == nil {
		return
	}

	err = processor.distributor.DistributeTaskSendNotification(ctx, &PayloadSendNotification{
		RecipientID: *team.OwnerID,
		Title:       "Player acquired",
		Message: fmt.Sprintf("%s joins %s for %s.",
			result.Player.Name, team.Name, util.FormatMoney(result.WinningBid.Amount)),
		Type:        "player_won",
		ReferenceID: result.Auction.ID.String(),
	})
	if err != nil {
		log.Warn().
			Err(err).
			Str("owner_id", *team.OwnerID).
			Str("auction_id", result.Auction.ID.String()).
			Msg("failed to enqueue win notification")
	}

	if processor.mailer == nil {
		return
	}
	owner, err := processor.store.GetUserByID(ctx, *team.OwnerID)
	if err != nil {
		log.Warn().
			Err(err).
			Str("owner_id", *team.OwnerID).
			Msg("failed to look up team owner for sale email")
		return
	}
	err = processor.mailer.SendSaleConfirmation(owner.Email, result.Player.Name, team.Name, result.WinningBid.Amount)
	if err != nil {
		log.Warn().
			Err(err).
			Str("email", owner.Email).
			Msg("failed to send sale confirmation email")
	}
}
