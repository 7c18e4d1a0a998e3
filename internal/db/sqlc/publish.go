package db

import (
	"context"

	"github.com/cricbid/cricbid-BE/internal/event"
)

// PublishAll converts persisted event rows into realtime events and hands
// them to the publisher. Call it only after the transaction that created
// the rows has committed, so subscribers never see an event that rolled
// back.
func PublishAll(ctx context.Context, pub event.Publisher, rows ...AuctionEvent) {
	for _, row := range rows {
		pub.Publish(ctx, event.Event{
			Type:      row.Type,
			AuctionID: row.AuctionID,
			Seq:       row.Seq,
			Data:      row.Data,
			Timestamp: row.CreatedAt,
		})
	}
}
