package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"time"

	"github.com/cobaltpay/backoffice/internal/accesslog"
	"github.com/cobaltpay/backoffice/internal/api"
	"github.com/cobaltpay/backoffice/internal/config"
	"github.com/cobaltpay/backoffice/internal/storage/cache"
	"github.com/cobaltpay/backoffice/internal/storage/postgres"
	"github.com/cobaltpay/backoffice/internal/task"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
)

func main() {
	// Set up zerolog to use pretty printing
	log.Logger = log.Output(zerolog.ConsoleWriter{
		Out: os.Stderr,
	})
	log.Info().Msg("starting up...")

	// Load the application configuration
	log.Info().Msg("loading configuration...")
	cfg, err := config.LoadFromEnv()
	if err != nil {
		log.Fatal().Err(err).Msg("could not load the configuration")
	}
	if cfg.IsEnvProduction() {
		zerolog.SetGlobalLevel(zerolog.InfoLevel)
	} else {
		zerolog.SetGlobalLevel(zerolog.DebugLevel)
	}
	log.Debug().Str("config", fmt.Sprintf("%+v", cfg)).Msg("")

	// Initialize the PostgreSQL storage driver and wrap it with the in-memory caching one
	log.Info().Msg("initializing database connection...")
	postgresDriver := postgres.New(cfg.PostgresDSN)
	if err := postgresDriver.Initialize(context.Background()); err != nil {
		log.Fatal().Err(err).Msg("could not initialize the database connection")
	}
	driver := cache.New(postgresDriver)
	if err := driver.Initialize(context.Background()); err != nil {
		log.Fatal().Err(err).Msg("could not initialize the caching storage driver")
	}
	defer driver.Close()
	defer postgresDriver.Close()

	// Create the access log recorder and schedule a task that flushes it
	recorder := accesslog.NewRecorder(driver.AccessLogs())
	flushingTask := task.NewRepeating(func() {
		n, err := recorder.Flush()
		if err != nil {
			log.Error().Err(err).Msg("could not flush buffered access logs")
		} else if n > 0 {
			log.Debug().Int("amount", n).Msg("flushed buffered access logs")
		}
	}, 10*time.Second)
	flushingTask.Start()
	defer flushingTask.Stop(true)

	// Start up the back office API
	log.Info().Str("address", cfg.APIListenAddress).Msg("starting up the back office API...")
	apis := &api.Service{
		Config:   cfg,
		Storage:  driver,
		Recorder: recorder,
	}
	apiErrs := make(chan error, 1)
	apis.Startup(apiErrs)
	go func() {
		err := <-apiErrs
		log.Fatal().Err(err).Msg("the API service raised an unexpected error")
	}()
	defer func() {
		log.Info().Msg("shutting down the back office API...")
		apis.Shutdown()
	}()

	// Schedule a task that sweeps expired sessions
	sweepingTask := task.NewRepeating(func() {
		sessions := apis.SessionStorage()
		if sessions == nil {
			return
		}
		n, err := sessions.TerminateExpired(context.Background())
		if err != nil {
			log.Error().Err(err).Msg("could not terminate expired sessions")
		} else if n > 0 {
			log.Debug().Int("amount", n).Msg("terminated expired sessions")
		}
	}, time.Minute)
	sweepingTask.Start()
	defer sweepingTask.Stop(false)

	log.Info().Msg("done!")
	defer log.Info().Msg("shutting down...")

	// Wait for the application to be terminated
	shutdown := make(chan os.Signal, 1)
	signal.Notify(shutdown, os.Interrupt)
	<-shutdown
}
