package api

import (
	"errors"
	"net/http"

	db "github.com/cricbid/cricbid-BE/internal/db/sqlc"
	"github.com/cricbid/cricbid-BE/internal/util"
	"github.com/cricbid/cricbid-BE/internal/validator"
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/rs/zerolog/log"
)

type createTournamentRequest struct {
	Name string `json:"name" binding:"required"`
	Year int32  `json:"year" binding:"required"`
}

func (server *Server) createTournament(ctx *gin.Context) {
	req := new(createTournamentRequest)

	if err := ctx.ShouldBindJSON(req); err != nil {
		ctx.JSON(http.StatusBadRequest, errorResponse(err))
		return
	}

	if err := validator.ValidateTournamentYear(req.Year); err != nil {
		ctx.JSON(http.StatusUnprocessableEntity, failedValidationError([]*FieldViolation{fieldViolation("year", err)}))
		return
	}

	tournament, err := server.dbStore.CreateTournament(ctx, db.CreateTournamentParams{
		ID:   uuid.Must(uuid.NewV7()),
		Name: req.Name,
		Slug: util.GenerateRandomSlug(req.Name),
		Year: req.Year,
	})
	if err != nil {
		log.Err(err).Msg("failed to create tournament")
		ctx.JSON(http.StatusInternalServerError, errorResponse(ErrInternalServer))
		return
	}

	ctx.JSON(http.StatusCreated, tournament)
}

func (server *Server) listTournaments(ctx *gin.Context) {
	tournaments, err := server.dbStore.ListTournaments(ctx)
	if err != nil {
		log.Err(err).Msg("failed to list tournaments")
		ctx.JSON(http.StatusInternalServerError, errorResponse(ErrInternalServer))
		return
	}

	ctx.JSON(http.StatusOK, tournaments)
}

func (server *Server) getTournament(ctx *gin.Context) {
	tournamentID, ok := uuidParam(ctx, "tournamentID")
	if !ok {
		return
	}

	tournament, err := server.dbStore.GetTournamentByID(ctx, tournamentID)
	if err != nil {
		if errors.Is(err, db.ErrRecordNotFound) {
			ctx.JSON(http.StatusNotFound, errorResponse(errors.New("tournament not found")))
			return
		}

		log.Err(err).Msg("failed to get tournament")
		ctx.JSON(http.StatusInternalServerError, errorResponse(ErrInternalServer))
		return
	}

	ctx.JSON(http.StatusOK, tournament)
}
