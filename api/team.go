package api

import (
	"errors"
	"fmt"
	"mime/multipart"
	"net/http"

	db "github.com/cricbid/cricbid-BE/internal/db/sqlc"
	"github.com/cricbid/cricbid-BE/internal/util"
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/rs/zerolog/log"
)

type createTeamRequest struct {
	Name      string  `json:"name" binding:"required"`
	ShortName string  `json:"short_name" binding:"required"`
	OwnerID   *string `json:"owner_id"`
}

func (server *Server) createTeam(ctx *gin.Context) {
	req := new(createTeamRequest)

	if err := ctx.ShouldBindJSON(req); err != nil {
		ctx.JSON(http.StatusBadRequest, errorResponse(err))
		return
	}

	if req.OwnerID != nil {
		if _, err := server.dbStore.GetUserByID(ctx, *req.OwnerID); err != nil {
			if errors.Is(err, db.ErrRecordNotFound) {
				ctx.JSON(http.StatusNotFound, errorResponse(fmt.Errorf("owner %s not found", *req.OwnerID)))
				return
			}

			log.Err(err).Msg("failed to look up team owner")
			ctx.JSON(http.StatusInternalServerError, errorResponse(ErrInternalServer))
			return
		}
	}

	team, err := server.dbStore.CreateTeam(ctx, db.CreateTeamParams{
		ID:        uuid.Must(uuid.NewV7()),
		Name:      req.Name,
		ShortName: req.ShortName,
		Slug:      util.GenerateRandomSlug(req.Name),
		OwnerID:   req.OwnerID,
	})
	if err != nil {
		log.Err(err).Msg("failed to create team")
		ctx.JSON(http.StatusInternalServerError, errorResponse(ErrInternalServer))
		return
	}

	ctx.JSON(http.StatusCreated, team)
}

func (server *Server) listTeams(ctx *gin.Context) {
	teams, err := server.dbStore.ListTeams(ctx)
	if err != nil {
		log.Err(err).Msg("failed to list teams")
		ctx.JSON(http.StatusInternalServerError, errorResponse(ErrInternalServer))
		return
	}

	ctx.JSON(http.StatusOK, teams)
}

func (server *Server) getTeam(ctx *gin.Context) {
	teamID, ok := uuidParam(ctx, "teamID")
	if !ok {
		return
	}

	team, err := server.dbStore.GetTeamByID(ctx, teamID)
	if err != nil {
		if errors.Is(err, db.ErrRecordNotFound) {
			ctx.JSON(http.StatusNotFound, errorResponse(errors.New("team not found")))
			return
		}

		log.Err(err).Msg("failed to get team")
		ctx.JSON(http.StatusInternalServerError, errorResponse(ErrInternalServer))
		return
	}

	ctx.JSON(http.StatusOK, team)
}

// getMyTeam returns the team owned by the authenticated user.
func (server *Server) getMyTeam(ctx *gin.Context) {
	payload := authPayload(ctx)

	team, err := server.dbStore.GetTeamByOwnerID(ctx, payload.Subject)
	if err != nil {
		if errors.Is(err, db.ErrRecordNotFound) {
			ctx.JSON(http.StatusNotFound, errorResponse(ErrNoTeamForUser))
			return
		}

		log.Err(err).Msg("failed to get team by owner")
		ctx.JSON(http.StatusInternalServerError, errorResponse(ErrInternalServer))
		return
	}

	ctx.JSON(http.StatusOK, team)
}

type updateTeamLogoRequest struct {
	Logo *multipart.FileHeader `form:"logo" binding:"required"`
}

// updateTeamLogo uploads a new logo. Admins may update any team; an owner
// only their own.
func (server *Server) updateTeamLogo(ctx *gin.Context) {
	teamID, ok := uuidParam(ctx, "teamID")
	if !ok {
		return
	}

	req := new(updateTeamLogoRequest)
	if err := ctx.ShouldBind(req); err != nil {
		ctx.JSON(http.StatusBadRequest, errorResponse(err))
		return
	}

	team, err := server.dbStore.GetTeamByID(ctx, teamID)
	if err != nil {
		if errors.Is(err, db.ErrRecordNotFound) {
			ctx.JSON(http.StatusNotFound, errorResponse(errors.New("team not found")))
			return
		}

		log.Err(err).Msg("failed to get team")
		ctx.JSON(http.StatusInternalServerError, errorResponse(ErrInternalServer))
		return
	}

	payload := authPayload(ctx)
	isOwner := team.OwnerID != nil && *team.OwnerID == payload.Subject
	if payload.Role != string(db.UserRoleAdmin) && !isOwner {
		ctx.JSON(http.StatusForbidden, errorResponse(errors.New("not allowed to update this team")))
		return
	}

	urls, err := server.uploadFileToCloudinary("team", team.Slug, "teams", req.Logo)
	if err != nil {
		log.Err(err).Msg("failed to upload team logo")
		ctx.JSON(http.StatusInternalServerError, errorResponse(ErrInternalServer))
		return
	}

	updated, err := server.dbStore.UpdateTeamLogo(ctx, db.UpdateTeamLogoParams{
		ID:      teamID,
		LogoURL: &urls[0],
	})
	if err != nil {
		log.Err(err).Msg("failed to update team logo")
		ctx.JSON(http.StatusInternalServerError, errorResponse(ErrInternalServer))
		return
	}

	ctx.JSON(http.StatusOK, updated)
}
