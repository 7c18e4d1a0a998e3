package api

import (
	"net/http"
	"slices"

	"github.com/cricbid/cricbid-BE/internal/ws"
	"github.com/gin-gonic/gin"
	"github.com/gorilla/websocket"
	"github.com/rs/zerolog/log"
)

// serveAuctionWebSocket upgrades the connection and subscribes it to the
// auction's event feed. Authentication is optional: an anonymous socket
// still receives events, it just cannot be addressed as a named user.
// Browsers cannot set headers on websocket requests, so the access token
// rides in the token query parameter instead.
func (server *Server) serveAuctionWebSocket(ctx *gin.Context) {
	auctionID, ok := uuidParam(ctx, "auctionID")
	if !ok {
		return
	}

	var userID, role string
	if tokenStr := ctx.Query("token"); tokenStr != "" {
		claims, err := server.tokenMaker.VerifyToken(tokenStr)
		if err != nil {
			ctx.JSON(http.StatusUnauthorized, errorResponse(err))
			return
		}
		userID = claims.Subject
		role = claims.Role
	}

	upgrader := websocket.Upgrader{
		ReadBufferSize:  1024,
		WriteBufferSize: 1024,
		CheckOrigin: func(r *http.Request) bool {
			origin := r.Header.Get("Origin")
			if origin == "" {
				return true
			}
			return slices.Contains(server.config.AllowedOrigins, origin)
		},
	}

	conn, err := upgrader.Upgrade(ctx.Writer, ctx.Request, nil)
	if err != nil {
		log.Warn().Err(err).Msg("websocket upgrade failed")
		return
	}

	client := ws.NewClient(server.hub, conn, userID, role)
	server.hub.Register(client)
	server.hub.Join(client, auctionID)

	go client.WritePump()
	go client.ReadPump()
}
