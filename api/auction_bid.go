package api

import (
	"errors"
	"net/http"
	"time"

	db "github.com/cricbid/cricbid-BE/internal/db/sqlc"
	"github.com/cricbid/cricbid-BE/internal/validator"
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/rs/zerolog/log"
)

type placeBidRequest struct {
	Amount   int64   `json:"amount" binding:"required"`
	Override bool    `json:"override"`
	Finalize bool    `json:"finalize"`
	TeamID   *string `json:"team_id"`
}

type placeBidResponse struct {
	Bid     db.Bid                   `json:"bid"`
	Auction db.Auction               `json:"auction"`
	Bids    []db.Bid                 `json:"bids"`
	Stats   lotBidStatsResponse      `json:"stats"`
	Sale    *db.FinalizeSaleTxResult `json:"sale,omitempty"`
}

// placeBid submits a bid on the open lot. Team owners bid for their own
// team; admins may bid on behalf of any team, skip the increment step with
// override, and hammer the sale down immediately with finalize.
func (server *Server) placeBid(ctx *gin.Context) {
	auctionID, ok := uuidParam(ctx, "auctionID")
	if !ok {
		return
	}

	req := new(placeBidRequest)
	if err := ctx.ShouldBindJSON(req); err != nil {
		ctx.JSON(http.StatusBadRequest, errorResponse(err))
		return
	}

	payload := authPayload(ctx)
	isAdmin := payload.Role == string(db.UserRoleAdmin)

	if req.Override && !isAdmin {
		ctx.JSON(http.StatusForbidden, errorResponse(ErrOverrideNotAdmin))
		return
	}
	if req.Finalize && !isAdmin {
		ctx.JSON(http.StatusForbidden, errorResponse(ErrFinalizeNotAdmin))
		return
	}

	var teamID uuid.UUID
	if isAdmin {
		if req.TeamID == nil {
			ctx.JSON(http.StatusBadRequest, errorResponse(ErrTeamIDRequired))
			return
		}
		id, err := uuid.Parse(*req.TeamID)
		if err != nil {
			ctx.JSON(http.StatusBadRequest, errorResponse(errors.New("invalid team_id")))
			return
		}
		teamID = id
	} else {
		team, err := server.dbStore.GetTeamByOwnerID(ctx, payload.Subject)
		if err != nil {
			if errors.Is(err, db.ErrRecordNotFound) {
				ctx.JSON(http.StatusForbidden, errorResponse(ErrNoTeamForUser))
				return
			}

			log.Err(err).Msg("failed to get bidder team")
			ctx.JSON(http.StatusInternalServerError, errorResponse(ErrInternalServer))
			return
		}
		teamID = team.ID
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
	if auction.CurrentPlayerID == nil {
		ctx.JSON(http.StatusConflict, errorResponse(validator.ErrNoActivePlayer))
		return
	}

	bidType := db.BidTypeRegular
	if req.Override {
		bidType = db.BidTypeOverride
	}

	playerID := *auction.CurrentPlayerID
	result, err := server.dbStore.PlaceBidTx(ctx, db.PlaceBidTxParams{
		AuctionID:    auctionID,
		PlayerID:     playerID,
		BidderTeamID: teamID,
		Amount:       req.Amount,
		BidType:      bidType,
		RescheduleTimer: func(id uuid.UUID, deadline time.Time) error {
			return server.lotTimer.Reschedule(ctx, id, deadline)
		},
	})
	if err != nil {
		server.writeBidError(ctx, err)
		return
	}

	db.PublishAll(ctx, server.publisher, result.Event)

	resp := placeBidResponse{Bid: result.Bid, Auction: result.Auction}

	if req.Finalize {
		sale, err := server.dbStore.FinalizeSaleTx(ctx, db.FinalizeSaleTxParams{
			AuctionID: auctionID,
			PlayerID:  playerID,
			ScheduleNextLot: func(id uuid.UUID, deadline time.Time) error {
				return server.lotTimer.Reschedule(ctx, id, deadline)
			},
			CancelTimer: func(id uuid.UUID) error {
				return server.lotTimer.Cancel(ctx, id)
			},
		})
		if err != nil {
			// The bid itself is committed; the timer will settle the lot.
			log.Err(err).Str("auction_id", auctionID.String()).Msg("failed to finalize after bid")
			ctx.JSON(http.StatusInternalServerError, errorResponse(ErrInternalServer))
			return
		}
		if !sale.Stale {
			db.PublishAll(ctx, server.publisher, sale.Events...)
			resp.Sale = &sale
			resp.Auction = sale.Auction
		}
	}

	// Recompute the bid trail and stats for the response. Best effort; the
	// bid is already committed.
	bids, err := server.dbStore.ListBidsForLot(ctx, db.ListBidsForLotParams{
		AuctionID: auctionID,
		PlayerID:  playerID,
	})
	if err != nil {
		log.Warn().Err(err).Str("auction_id", auctionID.String()).Msg("failed to list bids for response")
	}
	resp.Bids = bids
	resp.Stats = lotBidStats(playerID, result.Auction.MaxBidIncrement, bids)

	ctx.JSON(http.StatusCreated, resp)
}

// lotBidStats aggregates a lot's bid trail.
func lotBidStats(playerID uuid.UUID, bidIncrement int64, bids []db.Bid) lotBidStatsResponse {
	stats := lotBidStatsResponse{
		PlayerID:     playerID,
		TotalBids:    int64(len(bids)),
		BidIncrement: bidIncrement,
	}
	bidders := make(map[uuid.UUID]bool)
	for _, bid := range bids {
		if bid.Amount > stats.HighestBid {
			stats.HighestBid = bid.Amount
		}
		bidders[bid.BidderTeamID] = true
	}
	stats.Bidders = len(bidders)
	return stats
}

func (server *Server) writeBidError(ctx *gin.Context, err error) {
	var tooLow validator.BidTooLowError
	var noBudget validator.InsufficientBudgetError

	switch {
	case errors.As(err, &tooLow):
		ctx.JSON(http.StatusUnprocessableEntity, gin.H{
			"error":       tooLow.Error(),
			"minimum_bid": tooLow.MinimumBid,
		})
	case errors.As(err, &noBudget):
		ctx.JSON(http.StatusUnprocessableEntity, gin.H{
			"error":            noBudget.Error(),
			"available_budget": noBudget.AvailableBudget,
		})
	case errors.Is(err, validator.ErrAuctionNotLive), errors.Is(err, validator.ErrNoActivePlayer):
		ctx.JSON(http.StatusConflict, errorResponse(err))
	case errors.Is(err, validator.ErrNotAParticipant):
		ctx.JSON(http.StatusForbidden, errorResponse(err))
	case errors.Is(err, db.ErrRecordNotFound):
		ctx.JSON(http.StatusNotFound, errorResponse(errors.New("auction not found")))
	default:
		log.Err(err).Msg("failed to place bid")
		ctx.JSON(http.StatusInternalServerError, errorResponse(ErrInternalServer))
	}
}

// listLotBids returns the bid trail for a lot, newest first. Defaults to
// the open lot; pass ?player_id= for a settled one.
func (server *Server) listLotBids(ctx *gin.Context) {
	auctionID, ok := uuidParam(ctx, "auctionID")
	if !ok {
		return
	}

	playerID, err := server.resolveLotPlayer(ctx, auctionID)
	if err != nil {
		return
	}

	bids, err := server.dbStore.ListBidsForLot(ctx, db.ListBidsForLotParams{
		AuctionID: auctionID,
		PlayerID:  playerID,
	})
	if err != nil {
		log.Err(err).Msg("failed to list lot bids")
		ctx.JSON(http.StatusInternalServerError, errorResponse(ErrInternalServer))
		return
	}

	ctx.JSON(http.StatusOK, bids)
}

type lotBidStatsResponse struct {
	PlayerID     uuid.UUID `json:"player_id"`
	TotalBids    int64     `json:"total_bids"`
	HighestBid   int64     `json:"highest_bid"`
	BidIncrement int64     `json:"bid_increment"`
	Bidders      int       `json:"bidders"`
}

func (server *Server) getLotBidStats(ctx *gin.Context) {
	auctionID, ok := uuidParam(ctx, "auctionID")
	if !ok {
		return
	}

	playerID, err := server.resolveLotPlayer(ctx, auctionID)
	if err != nil {
		return
	}

	auction, err := server.dbStore.GetAuctionByID(ctx, auctionID)
	if err != nil {
		log.Err(err).Msg("failed to get auction")
		ctx.JSON(http.StatusInternalServerError, errorResponse(ErrInternalServer))
		return
	}

	bids, err := server.dbStore.ListBidsForLot(ctx, db.ListBidsForLotParams{
		AuctionID: auctionID,
		PlayerID:  playerID,
	})
	if err != nil {
		log.Err(err).Msg("failed to list lot bids")
		ctx.JSON(http.StatusInternalServerError, errorResponse(ErrInternalServer))
		return
	}

	ctx.JSON(http.StatusOK, lotBidStats(playerID, auction.MaxBidIncrement, bids))
}

// resolveLotPlayer picks the lot to inspect: the ?player_id query value if
// present, otherwise the auction's open lot. Writes the error response
// itself and returns a non-nil error when the caller should bail out.
func (server *Server) resolveLotPlayer(ctx *gin.Context, auctionID uuid.UUID) (uuid.UUID, error) {
	if raw := ctx.Query("player_id"); raw != "" {
		playerID, err := uuid.Parse(raw)
		if err != nil {
			ctx.JSON(http.StatusBadRequest, errorResponse(errors.New("invalid player_id")))
			return uuid.Nil, err
		}
		return playerID, nil
	}

	auction, err := server.dbStore.GetAuctionByID(ctx, auctionID)
	if err != nil {
		if errors.Is(err, db.ErrRecordNotFound) {
			ctx.JSON(http.StatusNotFound, errorResponse(errors.New("auction not found")))
			return uuid.Nil, err
		}

		log.Err(err).Msg("failed to get auction")
		ctx.JSON(http.StatusInternalServerError, errorResponse(ErrInternalServer))
		return uuid.Nil, err
	}
	if auction.CurrentPlayerID == nil {
		err := errors.New("no open lot; pass player_id to inspect a settled one")
		ctx.JSON(http.StatusConflict, errorResponse(err))
		return uuid.Nil, err
	}

	return *auction.CurrentPlayerID, nil
}
