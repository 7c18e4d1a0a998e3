package api

import (
	"errors"
	"mime/multipart"
	"net/http"

	db "github.com/cricbid/cricbid-BE/internal/db/sqlc"
	"github.com/cricbid/cricbid-BE/internal/util"
	"github.com/cricbid/cricbid-BE/internal/validator"
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/rs/zerolog/log"
)

type createPlayerRequest struct {
	Name       string `json:"name" binding:"required"`
	Country    string `json:"country" binding:"required"`
	Role       string `json:"role" binding:"required,oneof=batter bowler all_rounder wicket_keeper"`
	IsOverseas bool   `json:"is_overseas"`
	BasePrice  int64  `json:"base_price" binding:"required"`
}

func (server *Server) createPlayer(ctx *gin.Context) {
	req := new(createPlayerRequest)

	if err := ctx.ShouldBindJSON(req); err != nil {
		ctx.JSON(http.StatusBadRequest, errorResponse(err))
		return
	}

	var violations []*FieldViolation
	if err := validator.ValidateString(req.Name, 2, 100); err != nil {
		violations = append(violations, fieldViolation("name", err))
	}
	if err := validator.ValidatePlayerBasePrice(req.BasePrice); err != nil {
		violations = append(violations, fieldViolation("base_price", err))
	}
	if violations != nil {
		ctx.JSON(http.StatusUnprocessableEntity, failedValidationError(violations))
		return
	}

	player, err := server.dbStore.CreatePlayer(ctx, db.CreatePlayerParams{
		ID:         uuid.Must(uuid.NewV7()),
		Name:       req.Name,
		Slug:       util.GenerateRandomSlug(req.Name),
		Country:    req.Country,
		Role:       db.PlayerRole(req.Role),
		IsOverseas: req.IsOverseas,
		BasePrice:  req.BasePrice,
		Status:     db.PlayerStatusAvailable,
	})
	if err != nil {
		log.Err(err).Msg("failed to create player")
		ctx.JSON(http.StatusInternalServerError, errorResponse(ErrInternalServer))
		return
	}

	ctx.JSON(http.StatusCreated, player)
}

func (server *Server) listPlayers(ctx *gin.Context) {
	players, err := server.dbStore.ListPlayers(ctx)
	if err != nil {
		log.Err(err).Msg("failed to list players")
		ctx.JSON(http.StatusInternalServerError, errorResponse(ErrInternalServer))
		return
	}

	ctx.JSON(http.StatusOK, players)
}

type playerDetailsResponse struct {
	Player  db.Player                 `json:"player"`
	History []db.PlayerAuctionHistory `json:"history"`
}

func (server *Server) getPlayerDetails(ctx *gin.Context) {
	playerID, ok := uuidParam(ctx, "playerID")
	if !ok {
		return
	}

	player, err := server.dbStore.GetPlayerByID(ctx, playerID)
	if err != nil {
		if errors.Is(err, db.ErrRecordNotFound) {
			ctx.JSON(http.StatusNotFound, errorResponse(errors.New("player not found")))
			return
		}

		log.Err(err).Msg("failed to get player")
		ctx.JSON(http.StatusInternalServerError, errorResponse(ErrInternalServer))
		return
	}

	history, err := server.dbStore.ListPlayerAuctionHistory(ctx, playerID)
	if err != nil {
		log.Err(err).Msg("failed to list player history")
		ctx.JSON(http.StatusInternalServerError, errorResponse(ErrInternalServer))
		return
	}

	ctx.JSON(http.StatusOK, playerDetailsResponse{Player: player, History: history})
}

type updatePlayerPhotoRequest struct {
	Photo *multipart.FileHeader `form:"photo" binding:"required"`
}

func (server *Server) updatePlayerPhoto(ctx *gin.Context) {
	playerID, ok := uuidParam(ctx, "playerID")
	if !ok {
		return
	}

	req := new(updatePlayerPhotoRequest)
	if err := ctx.ShouldBind(req); err != nil {
		ctx.JSON(http.StatusBadRequest, errorResponse(err))
		return
	}

	player, err := server.dbStore.GetPlayerByID(ctx, playerID)
	if err != nil {
		if errors.Is(err, db.ErrRecordNotFound) {
			ctx.JSON(http.StatusNotFound, errorResponse(errors.New("player not found")))
			return
		}

		log.Err(err).Msg("failed to get player")
		ctx.JSON(http.StatusInternalServerError, errorResponse(ErrInternalServer))
		return
	}

	urls, err := server.uploadFileToCloudinary("player", player.Slug, "players", req.Photo)
	if err != nil {
		log.Err(err).Msg("failed to upload player photo")
		ctx.JSON(http.StatusInternalServerError, errorResponse(ErrInternalServer))
		return
	}

	updated, err := server.dbStore.UpdatePlayer(ctx, db.UpdatePlayerParams{
		ID:       playerID,
		PhotoURL: &urls[0],
	})
	if err != nil {
		log.Err(err).Msg("failed to update player photo")
		ctx.JSON(http.StatusInternalServerError, errorResponse(ErrInternalServer))
		return
	}

	ctx.JSON(http.StatusOK, updated)
}
