package main

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/spf13/cobra"

	"playcast/internal/airquality"
	"playcast/internal/config"
	"playcast/internal/daytype"
	"playcast/internal/location"
	"playcast/internal/logger"
	"playcast/internal/motivation"
	"playcast/internal/notify"
	"playcast/internal/planner"
	"playcast/internal/scheduler"
	"playcast/internal/server"
	"playcast/internal/store"
	"playcast/internal/weather"
)

func main() {
	var cfgFile string
	var port int

	rootCmd := &cobra.Command{
		Use:   "playcastd",
		Short: "Playcast daemon with daily delivery and HTTP API",
		RunE: func(cmd *cobra.Command, args []string) error {
			return run(cfgFile, port)
		},
	}

	rootCmd.Flags().StringVar(&cfgFile, "config", "", "config file (default is $HOME/.playcast/config.yaml)")
	rootCmd.Flags().IntVarP(&port, "port", "p", 0, "HTTP port (overrides config)")

	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func run(cfgFile string, port int) error {
	cfg, err := config.Load(cfgFile)
	if err != nil {
		return fmt.Errorf("loading config: %w", err)
	}
	if port != 0 {
		cfg.Port = port
	}

	log := logger.New(logger.Config{Level: cfg.LogLevel, File: cfg.LogFile})
	logger.SetGlobalLogger(log)

	log.Info().
		Str("city", cfg.CityName).
		Str("sport", cfg.DefaultSport).
		Str("schedule", cfg.DailySchedule).
		Msg("Starting playcastd")

	st, err := store.NewStore(cfg.DBPath)
	if err != nil {
		return fmt.Errorf("opening database: %w", err)
	}
	defer st.Close()

	p, err := planner.New(planner.Config{
		Weather:    weather.NewClient(cfg.OpenWeatherAPIKey, cfg.Location),
		Air:        airquality.NewClient(cfg.Location),
		Resolver:   location.NewResolver(cfg.City()),
		Classifier: daytype.NewWeekendClassifier(),
		Motivator:  motivation.NewProvider(),
		Messenger:  notify.NewTelegram(cfg.TelegramBotToken, cfg.TelegramChatID),
		Store:      st,
		UserID:     cfg.UserID,
		Logger:     log,
	})
	if err != nil {
		return err
	}

	// Run once at startup so the whole pipeline is proven before the first
	// scheduled firing; a failure is logged, not fatal
	if _, err := p.Run(context.Background(), cfg.DefaultSport, planner.TriggerStartup); err != nil {
		log.Error().Err(err).Msg("Startup run failed")
	}

	sched := scheduler.New(log, cfg.Location)
	if err := sched.AddJob(cfg.DailySchedule, scheduler.NewRecommendationJob(p, cfg.DefaultSport)); err != nil {
		return fmt.Errorf("registering daily job: %w", err)
	}
	if err := sched.AddJob(scheduler.HeartbeatSchedule, scheduler.NewHeartbeatJob(p, log)); err != nil {
		return fmt.Errorf("registering heartbeat job: %w", err)
	}
	sched.Start()

	api := server.NewServer(p, cfg.DefaultSport, log)
	httpSrv := &http.Server{
		Addr:    fmt.Sprintf(":%d", cfg.Port),
		Handler: api.Handler(),
	}

	go func() {
		log.Info().Int("port", cfg.Port).Msg("HTTP server listening")
		if err := httpSrv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Error().Err(err).Msg("HTTP server failed")
		}
	}()

	// Wait for shutdown signal
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Info().Msg("Shutting down")

	sched.Stop()

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := httpSrv.Shutdown(shutdownCtx); err != nil {
		log.Error().Err(err).Msg("HTTP shutdown failed")
	}

	log.Info().Msg("Stopped")
	return nil
}
