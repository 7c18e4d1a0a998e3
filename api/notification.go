package api

import (
	"net/http"

	db "github.com/cricbid/cricbid-BE/internal/db/sqlc"
	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog/log"
)

func (server *Server) listMyNotifications(ctx *gin.Context) {
	payload := authPayload(ctx)

	notifications, err := server.dbStore.ListNotificationsByRecipient(ctx, payload.Subject)
	if err != nil {
		log.Err(err).Msg("failed to list notifications")
		ctx.JSON(http.StatusInternalServerError, errorResponse(ErrInternalServer))
		return
	}

	ctx.JSON(http.StatusOK, notifications)
}

func (server *Server) markNotificationRead(ctx *gin.Context) {
	notificationID, ok := uuidParam(ctx, "notificationID")
	if !ok {
		return
	}

	payload := authPayload(ctx)

	err := server.dbStore.MarkNotificationRead(ctx, db.MarkNotificationReadParams{
		ID:          notificationID,
		RecipientID: payload.Subject,
	})
	if err != nil {
		log.Err(err).Msg("failed to mark notification read")
		ctx.JSON(http.StatusInternalServerError, errorResponse(ErrInternalServer))
		return
	}

	ctx.JSON(http.StatusOK, gin.H{"message": "notification marked read"})
}
