package api

import (
	"errors"
	"net/http"
	"time"

	db "github.com/cricbid/cricbid-BE/internal/db/sqlc"
	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog/log"
)

type auctionUpdatesResponse struct {
	Auction db.Auction        `json:"auction"`
	Events  []db.AuctionEvent `json:"events"`
	AsOf    time.Time         `json:"as_of"`
}

// listAuctionUpdates is the polling fallback for clients without a
// websocket. It returns the events recorded after ?since together with a
// snapshot of the auction, so a client can always resync from the
// response alone.
func (server *Server) listAuctionUpdates(ctx *gin.Context) {
	auctionID, ok := uuidParam(ctx, "auctionID")
	if !ok {
		return
	}

	since := time.Unix(0, 0).UTC()
	if raw := ctx.Query("since"); raw != "" {
		parsed, err := time.Parse(time.RFC3339Nano, raw)
		if err != nil {
			ctx.JSON(http.StatusBadRequest, errorResponse(errors.New("since must be RFC 3339")))
			return
		}
		since = parsed
	}

	auction, err := server.dbStore.GetAuctionByID(ctx, auctionID)
	if err != nil {
		if errors.Is(err, db.ErrRecordNotFound) {
			ctx.JSON(http.StatusNotFound, errorResponse(errors.New("auction not found")))
			return
		}

		log.Err(err).Msg("failed to get auction")
		ctx.JSON(http.StatusInternalServerError, errorResponse(ErrInternalServer))
		return
	}

	events, err := server.dbStore.ListAuctionEventsSince(ctx, db.ListAuctionEventsSinceParams{
		AuctionID: auctionID,
		Since:     since,
	})
	if err != nil {
		log.Err(err).Msg("failed to list auction events")
		ctx.JSON(http.StatusInternalServerError, errorResponse(ErrInternalServer))
		return
	}

	ctx.JSON(http.StatusOK, auctionUpdatesResponse{
		Auction: auction,
		Events:  events,
		AsOf:    time.Now().UTC(),
	})
}
