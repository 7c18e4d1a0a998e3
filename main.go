package main

import (
	"context"
	"os"

	"github.com/cricbid/cricbid-BE/api"
	db "github.com/cricbid/cricbid-BE/internal/db/sqlc"
	"github.com/cricbid/cricbid-BE/internal/event"
	"github.com/cricbid/cricbid-BE/internal/mailer"
	"github.com/cricbid/cricbid-BE/internal/timersync"
	"github.com/cricbid/cricbid-BE/internal/util"
	"github.com/cricbid/cricbid-BE/internal/worker"
	"github.com/cricbid/cricbid-BE/internal/ws"
	"github.com/hibiken/asynq"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
)

func main() {
	log.Logger = log.Output(zerolog.ConsoleWriter{Out: os.Stderr})

	// Load configurations
	config, err := util.LoadConfig("./app.env")
	if err != nil {
		log.Fatal().Err(err).Msg("failed to load config file 😣")
	}

	log.Info().Msg("configurations loaded successfully ✅")

	// Create connection pool
	connPool, err := pgxpool.New(context.Background(), config.DatabaseURL)
	if err != nil {
		log.Fatal().Err(err).Msg("failed to validate db connection string 😣")
	}

	pingErr := connPool.Ping(context.Background())
	if pingErr != nil {
		log.Fatal().Err(pingErr).Msg("failed to connect to db 😣")
	}
	log.Info().Msg("connected to db ✅")

	store := db.NewStore(connPool)

	redisDb := redis.NewClient(&redis.Options{
		Addr:     config.RedisServerAddress,
		Password: "", // no password set
		DB:       0,  // use default DB
	})

	redisOpt := asynq.RedisClientOpt{
		Addr: config.RedisServerAddress,
	}

	taskDistributor := worker.NewTaskDistributor(redisOpt)
	taskInspector := worker.NewTaskInspector(redisOpt)
	lotTimer := worker.NewLotTimer(taskDistributor, taskInspector)

	// Events fan out through Redis so every instance sees every auction.
	broker := event.NewBroker(redisDb)
	go broker.Run(context.Background())

	hub := ws.NewHub(broker)

	var mailService mailer.EmailSender
	if config.SMTPUsername != "" && config.SMTPPassword != "" {
		mailService, err = mailer.NewGmailSender(config.SMTPUsername, config.SMTPPassword)
		if err != nil {
			log.Fatal().Err(err).Msg("failed to create mailer service 😣")
		}
		log.Info().Msg("mailer service ready ✅")
	} else {
		log.Warn().Msg("SMTP credentials not set, sale confirmation emails disabled")
	}

	go runTaskProcessor(redisOpt, store, broker, lotTimer, taskDistributor, mailService)

	tracker, err := timersync.NewTracker(store, broker, config.TimerSyncInterval)
	if err != nil {
		log.Fatal().Err(err).Msg("failed to create timer sync tracker 😣")
	}
	if err = tracker.Start(); err != nil {
		log.Fatal().Err(err).Msg("failed to start timer sync tracker 😣")
	}
	log.Info().Msg("timer sync tracker started ✅")

	runHTTPServer(&config, store, taskDistributor, lotTimer, broker, hub)
}

func runTaskProcessor(redisOpt asynq.RedisClientOpt, store db.Store, publisher event.Publisher, lotTimer *worker.LotTimer, taskDistributor worker.TaskDistributor, mailService mailer.EmailSender) {
	taskProcessor := worker.NewRedisTaskProcessor(redisOpt, store, publisher, lotTimer, taskDistributor, mailService)

	log.Info().Msg("starting task processor ✅")
	if err := taskProcessor.Start(); err != nil {
		log.Fatal().Err(err).Msg("failed to start task processor 😣")
	}
}

func runHTTPServer(config *util.Config, store db.Store, taskDistributor worker.TaskDistributor, lotTimer *worker.LotTimer, publisher event.Publisher, hub *ws.Hub) {
	server, err := api.NewServer(store, taskDistributor, lotTimer, config, publisher, hub)
	if err != nil {
		log.Fatal().Err(err).Msg("failed to create HTTP server 😣")
	}

	err = server.Start(config.HTTPServerAddress)
	if err != nil {
		log.Fatal().Err(err).Msg("failed to start HTTP server 😣")
	}
}
