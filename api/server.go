package api

import (
	"context"
	"fmt"

	db "github.com/cricbid/cricbid-BE/internal/db/sqlc"
	"github.com/cricbid/cricbid-BE/internal/event"
	"github.com/cricbid/cricbid-BE/internal/storage"
	"github.com/cricbid/cricbid-BE/internal/token"
	"github.com/cricbid/cricbid-BE/internal/util"
	"github.com/cricbid/cricbid-BE/internal/worker"
	"github.com/cricbid/cricbid-BE/internal/ws"
	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog/log"
	"google.golang.org/api/idtoken"
)

type Server struct {
	router                 *gin.Engine
	dbStore                db.Store
	fileStore              storage.FileStore
	tokenMaker             token.Maker
	config                 *util.Config
	googleIDTokenValidator *idtoken.Validator
	taskDistributor        worker.TaskDistributor
	lotTimer               *worker.LotTimer
	publisher              event.Publisher
	hub                    *ws.Hub
}

// NewServer creates a new HTTP server and set up routing.
func NewServer(store db.Store, taskDistributor worker.TaskDistributor, lotTimer *worker.LotTimer, config *util.Config, publisher event.Publisher, hub *ws.Hub) (*Server, error) {
	// Create a new JWT token maker
	tokenMaker, err := token.NewJWTMaker(config.TokenSecretKey)
	if err != nil {
		return nil, fmt.Errorf("failed to create token maker: %w", err)
	}
	log.Info().Msg("Token maker created successfully ✅")

	// Create a new Google ID token validator
	googleIDTokenValidator, err := idtoken.NewValidator(context.Background())
	if err != nil {
		return nil, fmt.Errorf("failed to create google id token validator: %w", err)
	}

	// Create a new Cloudinary instance
	fileStore := storage.NewCloudinaryStore(config.CloudinaryURL)
	log.Info().Msg("Cloudinary store created successfully ✅")

	server := &Server{
		dbStore:                store,
		tokenMaker:             tokenMaker,
		config:                 config,
		googleIDTokenValidator: googleIDTokenValidator,
		fileStore:              fileStore,
		taskDistributor:        taskDistributor,
		lotTimer:               lotTimer,
		publisher:              publisher,
		hub:                    hub,
	}

	server.setupRouter()
	return server, nil
}

// setupRouter configures the HTTP server routes.
func (server *Server) setupRouter() *gin.Engine {
	gin.ForceConsoleColor()
	router := gin.Default()
	router.Use(cors.New(cors.Config{
		AllowOrigins:     server.config.AllowedOrigins,
		AllowMethods:     []string{"GET", "POST", "PUT", "PATCH", "DELETE"},
		AllowHeaders:     []string{"Origin", "Content-Length", "Content-Type", "Authorization"},
		AllowCredentials: true,
	}))

	v1 := router.Group("/v1")

	v1.POST("/tokens/verify", server.verifyAccessToken)

	v1.POST("/auth/register", server.createUser)
	v1.POST("/auth/login", server.loginUser)
	v1.POST("/auth/google-login", server.loginUserWithGoogle)

	tournamentGroup := v1.Group("/tournaments")
	{
		tournamentGroup.GET("", server.listTournaments)
		tournamentGroup.GET(":tournamentID", server.getTournament)

		tournamentGroup.POST("", authMiddleware(server.tokenMaker), requiredAdminRole(), server.createTournament)
	}

	teamGroup := v1.Group("/teams")
	{
		teamGroup.GET("", server.listTeams)
		teamGroup.GET(":teamID", server.getTeam)

		teamGroup.POST("", authMiddleware(server.tokenMaker), requiredAdminRole(), server.createTeam)
		teamGroup.PATCH(":teamID/logo", authMiddleware(server.tokenMaker), server.updateTeamLogo)
	}

	playerGroup := v1.Group("/players")
	{
		playerGroup.GET("", server.listPlayers)
		playerGroup.GET(":playerID", server.getPlayerDetails)

		playerGroup.POST("", authMiddleware(server.tokenMaker), requiredAdminRole(), server.createPlayer)
		playerGroup.PATCH(":playerID/photo", authMiddleware(server.tokenMaker), requiredAdminRole(), server.updatePlayerPhoto)
	}

	// Public auction APIs; no login required to watch.
	auctionGroup := v1.Group("/auctions")
	{
		auctionGroup.GET("", server.listAuctions)
		auctionGroup.GET(":auctionID", server.getAuctionDetails)
		auctionGroup.GET(":auctionID/participants", server.listAuctionParticipants)
		auctionGroup.GET(":auctionID/queue", server.listAuctionQueue)
		auctionGroup.GET(":auctionID/bids", server.listLotBids)
		auctionGroup.GET(":auctionID/bid-stats", server.getLotBidStats)
		auctionGroup.GET(":auctionID/results", server.listAuctionResults)

		// Polling fallback for clients without a WebSocket.
		auctionGroup.GET(":auctionID/updates", server.listAuctionUpdates)

		// Realtime feed.
		auctionGroup.GET(":auctionID/ws", server.serveAuctionWebSocket)
	}

	// Bidding requires a logged-in team owner (or an admin override).
	userAuctionGroup := v1.Group("/auctions", authMiddleware(server.tokenMaker))
	{
		userAuctionGroup.POST(":auctionID/bids", server.placeBid)
	}

	// Admin-only auction management.
	adminAuctionGroup := v1.Group("/auctions", authMiddleware(server.tokenMaker), requiredAdminRole())
	{
		adminAuctionGroup.POST("", server.createAuction)
		adminAuctionGroup.POST(":auctionID/start", server.startAuction)
		adminAuctionGroup.POST(":auctionID/schedule-start", server.scheduleAuctionStart)
		adminAuctionGroup.POST(":auctionID/pause", server.pauseAuction)
		adminAuctionGroup.POST(":auctionID/resume", server.resumeAuction)
		adminAuctionGroup.POST(":auctionID/end", server.endAuction)
		adminAuctionGroup.POST(":auctionID/finalize", server.finalizeCurrentLot)
		adminAuctionGroup.POST(":auctionID/unsold", server.markCurrentLotUnsold)

		adminAuctionGroup.POST(":auctionID/participants", server.addAuctionParticipant)
		adminAuctionGroup.DELETE(":auctionID/participants/:teamID", server.removeAuctionParticipant)

		adminAuctionGroup.POST(":auctionID/queue", server.addQueuePlayer)
		adminAuctionGroup.DELETE(":auctionID/queue/:playerID", server.removeQueuePlayer)
		adminAuctionGroup.PUT(":auctionID/queue", server.reorderQueue)
		adminAuctionGroup.POST(":auctionID/queue/:playerID/requeue", server.requeuePlayer)
	}

	notificationGroup := v1.Group("/users/me/notifications", authMiddleware(server.tokenMaker))
	{
		notificationGroup.GET("", server.listMyNotifications)
		notificationGroup.PATCH(":notificationID/read", server.markNotificationRead)
	}

	v1.GET("/users/me/team", authMiddleware(server.tokenMaker), server.getMyTeam)

	router.GET("/healthz", server.healthCheck)

	server.router = router
	return router
}

// Start runs the HTTP server on a specific address.
func (server *Server) Start(address string) error {
	return server.router.Run(address)
}

func (server *Server) healthCheck(ctx *gin.Context) {
	if err := server.dbStore.Ping(ctx); err != nil {
		ctx.JSON(503, gin.H{"status": "unavailable"})
		return
	}
	ctx.JSON(200, gin.H{"status": "ok"})
}
