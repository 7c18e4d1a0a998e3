package timersync

import (
	"context"
	"encoding/json"
	"time"

	db "github.com/cricbid/cricbid-BE/internal/db/sqlc"
	"github.com/cricbid/cricbid-BE/internal/event"
	"github.com/go-co-op/gocron/v2"
	"github.com/rs/zerolog/log"
)

// Tracker periodically rebroadcasts the authoritative lot countdown for
// every live auction. Clients correct their local timers from these
// timer_sync events instead of trusting their own clocks.
type Tracker struct {
	store     db.Store
	publisher event.Publisher
	interval  time.Duration
	scheduler gocron.Scheduler
}

func NewTracker(store db.Store, publisher event.Publisher, interval time.Duration) (*Tracker, error) {
	scheduler, err := gocron.NewScheduler()
	if err != nil {
		return nil, err
	}

	if interval <= 0 {
		interval = 5 * time.Second
	}

	return &Tracker{
		store:     store,
		publisher: publisher,
		interval:  interval,
		scheduler: scheduler,
	}, nil
}

// Start begins the periodic broadcast job.
func (t *Tracker) Start() error {
	_, err := t.scheduler.NewJob(
		gocron.DurationJob(t.interval),
		gocron.NewTask(
			func() {
				t.broadcastTimers()
			},
		),
	)
	if err != nil {
		return err
	}

	t.scheduler.Start()
	return nil
}

// Stop shuts the scheduler down.
func (t *Tracker) Stop() error {
	return t.scheduler.Shutdown()
}

// broadcastTimers publishes a timer_sync event for every live auction with
// an open lot. These events are transient and are not written to the event
// log; pollers get the deadline from the auction state instead.
func (t *Tracker) broadcastTimers() {
	ctx := context.Background()

	auctions, err := t.store.ListAuctionsByStatus(ctx, db.AuctionStatusLive)
	if err != nil {
		log.Error().Err(err).Msg("failed to list live auctions for timer sync")
		return
	}

	now := time.Now()
	for _, auction := range auctions {
		if auction.CurrentPlayerID == nil || auction.CurrentLotDeadline == nil {
			continue
		}

		remaining := int64(auction.CurrentLotDeadline.Sub(now).Seconds())
		if remaining < 0 {
			remaining = 0
		}

		data, err := json.Marshal(event.TimerSyncData{
			PlayerID:         *auction.CurrentPlayerID,
			Deadline:         *auction.CurrentLotDeadline,
			RemainingSeconds: remaining,
		})
		if err != nil {
			log.Error().Err(err).Str("auction_id", auction.ID.String()).Msg("failed to marshal timer sync")
			continue
		}

		t.publisher.Publish(ctx, event.Event{
			Type:      event.TypeTimerSync,
			AuctionID: auction.ID,
			Data:      data,
			Timestamp: now,
		})
	}
}
