package api

import (
	"errors"
	"net/http"
	"time"

	db "github.com/cricbid/cricbid-BE/internal/db/sqlc"
	"github.com/cricbid/cricbid-BE/internal/validator"
	"github.com/cricbid/cricbid-BE/internal/worker"
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/hibiken/asynq"
	"github.com/rs/zerolog/log"
)

type createAuctionRequest struct {
	TournamentID      string `json:"tournament_id" binding:"required"`
	Name              string `json:"name" binding:"required"`
	MaxBidIncrement   int64  `json:"max_bid_increment" binding:"required"`
	BidTimeoutSeconds int32  `json:"bid_timeout_seconds" binding:"required"`
	MaxPlayersPerTeam int32  `json:"max_players_per_team" binding:"required"`
	MaxForeignPlayers int32  `json:"max_foreign_players" binding:"required"`
}

func (server *Server) createAuction(ctx *gin.Context) {
	req := new(createAuctionRequest)

	if err := ctx.ShouldBindJSON(req); err != nil {
		ctx.JSON(http.StatusBadRequest, errorResponse(err))
		return
	}

	tournamentID, err := uuid.Parse(req.TournamentID)
	if err != nil {
		ctx.JSON(http.StatusBadRequest, errorResponse(errors.New("invalid tournament_id")))
		return
	}

	var violations []*FieldViolation
	if err := validator.ValidateBidIncrement(req.MaxBidIncrement); err != nil {
		violations = append(violations, fieldViolation("max_bid_increment", err))
	}
	if err := validator.ValidateBidTimeout(req.BidTimeoutSeconds); err != nil {
		violations = append(violations, fieldViolation("bid_timeout_seconds", err))
	}
	if violations != nil {
		ctx.JSON(http.StatusUnprocessableEntity, failedValidationError(violations))
		return
	}

	if _, err := server.dbStore.GetTournamentByID(ctx, tournamentID); err != nil {
		if errors.Is(err, db.ErrRecordNotFound) {
			ctx.JSON(http.StatusNotFound, errorResponse(errors.New("tournament not found")))
			return
		}

		log.Err(err).Msg("failed to get tournament")
		ctx.JSON(http.StatusInternalServerError, errorResponse(ErrInternalServer))
		return
	}

	auction, err := server.dbStore.CreateAuction(ctx, db.CreateAuctionParams{
		ID:                uuid.Must(uuid.NewV7()),
		TournamentID:      tournamentID,
		Name:              req.Name,
		MaxBidIncrement:   req.MaxBidIncrement,
		BidTimeoutSeconds: req.BidTimeoutSeconds,
		MaxPlayersPerTeam: req.MaxPlayersPerTeam,
		MaxForeignPlayers: req.MaxForeignPlayers,
	})
	if err != nil {
		log.Err(err).Msg("failed to create auction")
		ctx.JSON(http.StatusInternalServerError, errorResponse(ErrInternalServer))
		return
	}

	ctx.JSON(http.StatusCreated, auction)
}

func (server *Server) listAuctions(ctx *gin.Context) {
	if status := ctx.Query("status"); status != "" {
		switch db.AuctionStatus(status) {
		case db.AuctionStatusUpcoming, db.AuctionStatusLive, db.AuctionStatusPaused, db.AuctionStatusCompleted:
		default:
			ctx.JSON(http.StatusBadRequest, errorResponse(errors.New("invalid status filter")))
			return
		}

		auctions, err := server.dbStore.ListAuctionsByStatus(ctx, db.AuctionStatus(status))
		if err != nil {
			log.Err(err).Msg("failed to list auctions by status")
			ctx.JSON(http.StatusInternalServerError, errorResponse(ErrInternalServer))
			return
		}

		ctx.JSON(http.StatusOK, auctions)
		return
	}

	auctions, err := server.dbStore.ListAuctions(ctx)
	if err != nil {
		log.Err(err).Msg("failed to list auctions")
		ctx.JSON(http.StatusInternalServerError, errorResponse(ErrInternalServer))
		return
	}

	ctx.JSON(http.StatusOK, auctions)
}

type auctionDetailsResponse struct {
	Auction       db.Auction               `json:"auction"`
	Participants  []db.AuctionParticipant  `json:"participants"`
	Queue         []db.AuctionQueueEntry   `json:"queue"`
	CurrentPlayer *db.Player               `json:"current_player,omitempty"`
	CurrentBids   []db.Bid                 `json:"current_bids,omitempty"`
}

func (server *Server) getAuctionDetails(ctx *gin.Context) {
	auctionID, ok := uuidParam(ctx, "auctionID")
	if !ok {
		return
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

	participants, err := server.dbStore.ListAuctionParticipants(ctx, auctionID)
	if err != nil {
		log.Err(err).Msg("failed to list participants")
		ctx.JSON(http.StatusInternalServerError, errorResponse(ErrInternalServer))
		return
	}

	queue, err := server.dbStore.ListQueueEntries(ctx, auctionID)
	if err != nil {
		log.Err(err).Msg("failed to list queue")
		ctx.JSON(http.StatusInternalServerError, errorResponse(ErrInternalServer))
		return
	}

	resp := auctionDetailsResponse{
		Auction:      auction,
		Participants: participants,
		Queue:        queue,
	}

	if auction.CurrentPlayerID != nil {
		player, err := server.dbStore.GetPlayerByID(ctx, *auction.CurrentPlayerID)
		if err != nil {
			log.Err(err).Msg("failed to get current player")
			ctx.JSON(http.StatusInternalServerError, errorResponse(ErrInternalServer))
			return
		}
		resp.CurrentPlayer = &player

		bids, err := server.dbStore.ListBidsForLot(ctx, db.ListBidsForLotParams{
			AuctionID: auctionID,
			PlayerID:  *auction.CurrentPlayerID,
		})
		if err != nil {
			log.Err(err).Msg("failed to list lot bids")
			ctx.JSON(http.StatusInternalServerError, errorResponse(ErrInternalServer))
			return
		}
		resp.CurrentBids = bids
	}

	ctx.JSON(http.StatusOK, resp)
}

func (server *Server) startAuction(ctx *gin.Context) {
	auctionID, ok := uuidParam(ctx, "auctionID")
	if !ok {
		return
	}

	result, err := server.dbStore.StartAuctionTx(ctx, db.StartAuctionTxParams{
		AuctionID: auctionID,
		ScheduleLotTimer: func(id uuid.UUID, deadline time.Time) error {
			return server.lotTimer.Reschedule(ctx, id, deadline)
		},
	})
	if err != nil {
		server.writeLifecycleError(ctx, err)
		return
	}

	db.PublishAll(ctx, server.publisher, result.Events...)
	ctx.JSON(http.StatusOK, result.Auction)
}

type scheduleAuctionStartRequest struct {
	StartAt time.Time `json:"start_at" binding:"required"`
}

// scheduleAuctionStart queues a delayed start instead of going live now.
func (server *Server) scheduleAuctionStart(ctx *gin.Context) {
	auctionID, ok := uuidParam(ctx, "auctionID")
	if !ok {
		return
	}

	req := new(scheduleAuctionStartRequest)
	if err := ctx.ShouldBindJSON(req); err != nil {
		ctx.JSON(http.StatusBadRequest, errorResponse(err))
		return
	}

	if req.StartAt.Before(time.Now()) {
		ctx.JSON(http.StatusBadRequest, errorResponse(errors.New("start_at must be in the future")))
		return
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
	if auction.Status != db.AuctionStatusUpcoming {
		ctx.JSON(http.StatusConflict, errorResponse(db.ErrAuctionNotEditable))
		return
	}

	err = server.taskDistributor.DistributeTaskStartAuction(ctx, &worker.PayloadStartAuction{AuctionID: auctionID},
		asynq.ProcessAt(req.StartAt),
		asynq.Queue(worker.QueueCritical),
		asynq.MaxRetry(3),
	)
	if err != nil {
		log.Err(err).Msg("failed to schedule auction start")
		ctx.JSON(http.StatusInternalServerError, errorResponse(ErrInternalServer))
		return
	}

	ctx.JSON(http.StatusAccepted, gin.H{"auction_id": auctionID, "start_at": req.StartAt})
}

func (server *Server) pauseAuction(ctx *gin.Context) {
	auctionID, ok := uuidParam(ctx, "auctionID")
	if !ok {
		return
	}

	result, err := server.dbStore.PauseAuctionTx(ctx, auctionID)
	if err != nil {
		server.writeLifecycleError(ctx, err)
		return
	}

	db.PublishAll(ctx, server.publisher, result.Events...)
	ctx.JSON(http.StatusOK, result.Auction)
}

func (server *Server) resumeAuction(ctx *gin.Context) {
	auctionID, ok := uuidParam(ctx, "auctionID")
	if !ok {
		return
	}

	result, err := server.dbStore.ResumeAuctionTx(ctx, db.ResumeAuctionTxParams{
		AuctionID: auctionID,
		ScheduleLotTimer: func(id uuid.UUID, deadline time.Time) error {
			return server.lotTimer.Reschedule(ctx, id, deadline)
		},
	})
	if err != nil {
		server.writeLifecycleError(ctx, err)
		return
	}

	db.PublishAll(ctx, server.publisher, result.Events...)
	ctx.JSON(http.StatusOK, result.Auction)
}

func (server *Server) endAuction(ctx *gin.Context) {
	auctionID, ok := uuidParam(ctx, "auctionID")
	if !ok {
		return
	}

	result, err := server.dbStore.EndAuctionTx(ctx, auctionID)
	if err != nil {
		server.writeLifecycleError(ctx, err)
		return
	}

	// The finalize timer for the open lot is now pointless. Cancelling
	// after commit is safe: a fire in between hits the stale-lot guard.
	if err := server.lotTimer.Cancel(ctx, auctionID); err != nil {
		log.Warn().Err(err).Str("auction_id", auctionID.String()).Msg("failed to cancel lot timer")
	}

	db.PublishAll(ctx, server.publisher, result.Events...)
	ctx.JSON(http.StatusOK, result.Auction)
}

// finalizeCurrentLot lets an admin close the open lot immediately instead
// of waiting for the countdown.
func (server *Server) finalizeCurrentLot(ctx *gin.Context) {
	auctionID, ok := uuidParam(ctx, "auctionID")
	if !ok {
		return
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
		ctx.JSON(http.StatusConflict, errorResponse(errors.New("no open lot to finalize")))
		return
	}

	result, err := server.dbStore.FinalizeSaleTx(ctx, db.FinalizeSaleTxParams{
		AuctionID: auctionID,
		PlayerID:  *auction.CurrentPlayerID,
		ScheduleNextLot: func(id uuid.UUID, deadline time.Time) error {
			return server.lotTimer.Reschedule(ctx, id, deadline)
		},
		CancelTimer: func(id uuid.UUID) error {
			return server.lotTimer.Cancel(ctx, id)
		},
	})
	if err != nil {
		log.Err(err).Msg("failed to finalize lot")
		ctx.JSON(http.StatusInternalServerError, errorResponse(ErrInternalServer))
		return
	}
	if result.Stale {
		ctx.JSON(http.StatusConflict, errorResponse(db.ErrStaleLot))
		return
	}

	db.PublishAll(ctx, server.publisher, result.Events...)
	ctx.JSON(http.StatusOK, result)
}

// markCurrentLotUnsold passes on the open lot without a sale. Refused when
// the lot already has bids.
func (server *Server) markCurrentLotUnsold(ctx *gin.Context) {
	auctionID, ok := uuidParam(ctx, "auctionID")
	if !ok {
		return
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
		ctx.JSON(http.StatusConflict, errorResponse(errors.New("no open lot")))
		return
	}

	result, err := server.dbStore.MarkUnsoldTx(ctx, db.MarkUnsoldTxParams{
		AuctionID: auctionID,
		PlayerID:  *auction.CurrentPlayerID,
		ScheduleNextLot: func(id uuid.UUID, deadline time.Time) error {
			return server.lotTimer.Reschedule(ctx, id, deadline)
		},
		CancelTimer: func(id uuid.UUID) error {
			return server.lotTimer.Cancel(ctx, id)
		},
	})
	if err != nil {
		switch {
		case errors.Is(err, db.ErrLotHasBids), errors.Is(err, db.ErrStaleLot):
			ctx.JSON(http.StatusConflict, errorResponse(err))
		default:
			log.Err(err).Msg("failed to mark lot unsold")
			ctx.JSON(http.StatusInternalServerError, errorResponse(ErrInternalServer))
		}
		return
	}

	db.PublishAll(ctx, server.publisher, result.Events...)
	ctx.JSON(http.StatusOK, result)
}

type addParticipantRequest struct {
	TeamID         string `json:"team_id" binding:"required"`
	StartingBudget int64  `json:"starting_budget" binding:"required"`
}

func (server *Server) addAuctionParticipant(ctx *gin.Context) {
	auctionID, ok := uuidParam(ctx, "auctionID")
	if !ok {
		return
	}

	req := new(addParticipantRequest)
	if err := ctx.ShouldBindJSON(req); err != nil {
		ctx.JSON(http.StatusBadRequest, errorResponse(err))
		return
	}

	teamID, err := uuid.Parse(req.TeamID)
	if err != nil {
		ctx.JSON(http.StatusBadRequest, errorResponse(errors.New("invalid team_id")))
		return
	}

	if err := validator.ValidateStartingBudget(req.StartingBudget); err != nil {
		ctx.JSON(http.StatusUnprocessableEntity, failedValidationError([]*FieldViolation{fieldViolation("starting_budget", err)}))
		return
	}

	participant, err := server.dbStore.AddParticipantTx(ctx, db.AddParticipantTxParams{
		AuctionID:      auctionID,
		TeamID:         teamID,
		StartingBudget: req.StartingBudget,
	})
	if err != nil {
		switch {
		case errors.Is(err, db.ErrRecordNotFound):
			ctx.JSON(http.StatusNotFound, errorResponse(errors.New("auction or team not found")))
		case errors.Is(err, db.ErrAuctionNotEditable), errors.Is(err, db.ErrDuplicateTeam):
			ctx.JSON(http.StatusConflict, errorResponse(err))
		default:
			log.Err(err).Msg("failed to add participant")
			ctx.JSON(http.StatusInternalServerError, errorResponse(ErrInternalServer))
		}
		return
	}

	ctx.JSON(http.StatusCreated, participant)
}

func (server *Server) removeAuctionParticipant(ctx *gin.Context) {
	auctionID, ok := uuidParam(ctx, "auctionID")
	if !ok {
		return
	}
	teamID, ok := uuidParam(ctx, "teamID")
	if !ok {
		return
	}

	err := server.dbStore.RemoveParticipantTx(ctx, db.RemoveParticipantTxParams{
		AuctionID: auctionID,
		TeamID:    teamID,
	})
	if err != nil {
		switch {
		case errors.Is(err, db.ErrRecordNotFound):
			ctx.JSON(http.StatusNotFound, errorResponse(errors.New("participant not found")))
		case errors.Is(err, db.ErrAuctionNotEditable):
			ctx.JSON(http.StatusConflict, errorResponse(err))
		default:
			log.Err(err).Msg("failed to remove participant")
			ctx.JSON(http.StatusInternalServerError, errorResponse(ErrInternalServer))
		}
		return
	}

	ctx.JSON(http.StatusOK, gin.H{"message": "participant removed"})
}

func (server *Server) listAuctionParticipants(ctx *gin.Context) {
	auctionID, ok := uuidParam(ctx, "auctionID")
	if !ok {
		return
	}

	participants, err := server.dbStore.ListAuctionParticipants(ctx, auctionID)
	if err != nil {
		log.Err(err).Msg("failed to list participants")
		ctx.JSON(http.StatusInternalServerError, errorResponse(ErrInternalServer))
		return
	}

	ctx.JSON(http.StatusOK, participants)
}

type addQueuePlayerRequest struct {
	PlayerID string `json:"player_id" binding:"required"`
}

func (server *Server) addQueuePlayer(ctx *gin.Context) {
	auctionID, ok := uuidParam(ctx, "auctionID")
	if !ok {
		return
	}

	req := new(addQueuePlayerRequest)
	if err := ctx.ShouldBindJSON(req); err != nil {
		ctx.JSON(http.StatusBadRequest, errorResponse(err))
		return
	}

	playerID, err := uuid.Parse(req.PlayerID)
	if err != nil {
		ctx.JSON(http.StatusBadRequest, errorResponse(errors.New("invalid player_id")))
		return
	}

	err = server.dbStore.AddQueuePlayerTx(ctx, db.AddQueuePlayerTxParams{
		AuctionID: auctionID,
		PlayerID:  playerID,
	})
	if err != nil {
		switch {
		case errors.Is(err, db.ErrRecordNotFound):
			ctx.JSON(http.StatusNotFound, errorResponse(errors.New("auction or player not found")))
		case errors.Is(err, db.ErrAuctionNotEditable), errors.Is(err, db.ErrPlayerQueued), errors.Is(err, db.ErrPlayerNotAvailable):
			ctx.JSON(http.StatusConflict, errorResponse(err))
		default:
			log.Err(err).Msg("failed to queue player")
			ctx.JSON(http.StatusInternalServerError, errorResponse(ErrInternalServer))
		}
		return
	}

	ctx.JSON(http.StatusCreated, gin.H{"auction_id": auctionID, "player_id": playerID})
}

func (server *Server) removeQueuePlayer(ctx *gin.Context) {
	auctionID, ok := uuidParam(ctx, "auctionID")
	if !ok {
		return
	}
	playerID, ok := uuidParam(ctx, "playerID")
	if !ok {
		return
	}

	err := server.dbStore.RemoveQueuePlayerTx(ctx, db.RemoveQueuePlayerTxParams{
		AuctionID: auctionID,
		PlayerID:  playerID,
	})
	if err != nil {
		switch {
		case errors.Is(err, db.ErrRecordNotFound):
			ctx.JSON(http.StatusNotFound, errorResponse(errors.New("queue entry not found")))
		case errors.Is(err, db.ErrAuctionNotEditable):
			ctx.JSON(http.StatusConflict, errorResponse(err))
		default:
			log.Err(err).Msg("failed to remove queued player")
			ctx.JSON(http.StatusInternalServerError, errorResponse(ErrInternalServer))
		}
		return
	}

	ctx.JSON(http.StatusOK, gin.H{"message": "player removed from queue"})
}

type reorderQueueRequest struct {
	PlayerIDs []string `json:"player_ids" binding:"required,min=1"`
}

func (server *Server) reorderQueue(ctx *gin.Context) {
	auctionID, ok := uuidParam(ctx, "auctionID")
	if !ok {
		return
	}

	req := new(reorderQueueRequest)
	if err := ctx.ShouldBindJSON(req); err != nil {
		ctx.JSON(http.StatusBadRequest, errorResponse(err))
		return
	}

	playerIDs := make([]uuid.UUID, 0, len(req.PlayerIDs))
	for _, raw := range req.PlayerIDs {
		id, err := uuid.Parse(raw)
		if err != nil {
			ctx.JSON(http.StatusBadRequest, errorResponse(errors.New("invalid player id in player_ids")))
			return
		}
		playerIDs = append(playerIDs, id)
	}

	err := server.dbStore.ReorderQueueTx(ctx, db.ReorderQueueTxParams{
		AuctionID: auctionID,
		PlayerIDs: playerIDs,
	})
	if err != nil {
		switch {
		case errors.Is(err, db.ErrRecordNotFound):
			ctx.JSON(http.StatusNotFound, errorResponse(errors.New("auction not found")))
		case errors.Is(err, db.ErrAuctionNotEditable):
			ctx.JSON(http.StatusConflict, errorResponse(err))
		default:
			log.Err(err).Msg("failed to reorder queue")
			ctx.JSON(http.StatusInternalServerError, errorResponse(ErrInternalServer))
		}
		return
	}

	ctx.JSON(http.StatusOK, gin.H{"message": "queue reordered"})
}

type requeuePlayerRequest struct {
	PlayerID string `json:"player_id" binding:"required"`
}

func (server *Server) requeuePlayer(ctx *gin.Context) {
	auctionID, ok := uuidParam(ctx, "auctionID")
	if !ok {
		return
	}

	req := new(requeuePlayerRequest)
	if err := ctx.ShouldBindJSON(req); err != nil {
		ctx.JSON(http.StatusBadRequest, errorResponse(err))
		return
	}

	playerID, err := uuid.Parse(req.PlayerID)
	if err != nil {
		ctx.JSON(http.StatusBadRequest, errorResponse(errors.New("invalid player_id")))
		return
	}

	err = server.dbStore.RequeuePlayerTx(ctx, db.RequeuePlayerTxParams{
		AuctionID: auctionID,
		PlayerID:  playerID,
	})
	if err != nil {
		switch {
		case errors.Is(err, db.ErrRecordNotFound):
			ctx.JSON(http.StatusNotFound, errorResponse(errors.New("no unsold entry for this player in this auction")))
		case errors.Is(err, db.ErrAuctionNotEditable), errors.Is(err, db.ErrPlayerQueued), errors.Is(err, db.ErrPlayerNotAvailable):
			ctx.JSON(http.StatusConflict, errorResponse(err))
		default:
			log.Err(err).Msg("failed to requeue player")
			ctx.JSON(http.StatusInternalServerError, errorResponse(ErrInternalServer))
		}
		return
	}

	ctx.JSON(http.StatusOK, gin.H{"auction_id": auctionID, "player_id": playerID})
}

func (server *Server) listAuctionQueue(ctx *gin.Context) {
	auctionID, ok := uuidParam(ctx, "auctionID")
	if !ok {
		return
	}

	queue, err := server.dbStore.ListQueueEntries(ctx, auctionID)
	if err != nil {
		log.Err(err).Msg("failed to list queue")
		ctx.JSON(http.StatusInternalServerError, errorResponse(ErrInternalServer))
		return
	}

	ctx.JSON(http.StatusOK, queue)
}

type teamAuctionResult struct {
	Participant db.AuctionParticipant `json:"participant"`
	Players     []db.Player           `json:"players"`
	TotalSpent  int64                 `json:"total_spent"`
}

type auctionResultsResponse struct {
	Auction db.Auction          `json:"auction"`
	Teams   []teamAuctionResult `json:"teams"`
}

// listAuctionResults summarizes the squads built so far, per team.
func (server *Server) listAuctionResults(ctx *gin.Context) {
	auctionID, ok := uuidParam(ctx, "auctionID")
	if !ok {
		return
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

	participants, err := server.dbStore.ListAuctionParticipants(ctx, auctionID)
	if err != nil {
		log.Err(err).Msg("failed to list participants")
		ctx.JSON(http.StatusInternalServerError, errorResponse(ErrInternalServer))
		return
	}

	teams := make([]teamAuctionResult, 0, len(participants))
	for _, p := range participants {
		players, err := server.dbStore.ListPlayersWonByTeam(ctx, db.ListPlayersWonByTeamParams{
			AuctionID: auctionID,
			TeamID:    p.TeamID,
		})
		if err != nil {
			log.Err(err).Msg("failed to list players won by team")
			ctx.JSON(http.StatusInternalServerError, errorResponse(ErrInternalServer))
			return
		}

		teams = append(teams, teamAuctionResult{
			Participant: p,
			Players:     players,
			TotalSpent:  p.StartingBudget - p.RemainingBudget,
		})
	}

	ctx.JSON(http.StatusOK, auctionResultsResponse{Auction: auction, Teams: teams})
}

// writeLifecycleError maps lifecycle transaction errors onto HTTP statuses.
func (server *Server) writeLifecycleError(ctx *gin.Context, err error) {
	switch {
	case errors.Is(err, db.ErrRecordNotFound):
		ctx.JSON(http.StatusNotFound, errorResponse(errors.New("auction not found")))
	case errors.Is(err, db.ErrAuctionNotEditable):
		ctx.JSON(http.StatusConflict, errorResponse(err))
	case errors.Is(err, db.ErrEmptyQueue), errors.Is(err, db.ErrNoParticipants):
		ctx.JSON(http.StatusBadRequest, errorResponse(err))
	default:
		log.Err(err).Msg("auction lifecycle transition failed")
		ctx.JSON(http.StatusInternalServerError, errorResponse(ErrInternalServer))
	}
}
