package main

import (
	"context"
	"encoding/json"
	"fmt"
	"os"

	"github.com/rs/zerolog"
	"github.com/spf13/cobra"

	"playcast/internal/airquality"
	"playcast/internal/config"
	"playcast/internal/daytype"
	"playcast/internal/engine"
	"playcast/internal/location"
	"playcast/internal/logger"
	"playcast/internal/motivation"
	"playcast/internal/notify"
	"playcast/internal/planner"
	"playcast/internal/store"
	"playcast/internal/weather"
)

var (
	cfgFile string
	dbPath  string
)

func main() {
	rootCmd := &cobra.Command{
		Use:   "playcast",
		Short: "Playcast - Find the best time to play outdoor sports today",
		Long: `Playcast scores today's hourly weather and air quality forecasts and
recommends the best two-hour windows to play, with delivery to Telegram.`,
	}

	rootCmd.PersistentFlags().StringVar(&cfgFile, "config", "", "config file (default is $HOME/.playcast/config.yaml)")
	rootCmd.PersistentFlags().StringVar(&dbPath, "db", "", "database path (default is $HOME/.playcast/playcast.db)")

	rootCmd.AddCommand(recommendCmd())
	rootCmd.AddCommand(weatherCmd())
	rootCmd.AddCommand(aqiCmd())
	rootCmd.AddCommand(sportsCmd())

	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func loadConfig() (*config.Config, error) {
	cfg, err := config.Load(cfgFile)
	if err != nil {
		return nil, err
	}
	if dbPath != "" {
		cfg.DBPath = dbPath
	}
	return cfg, nil
}

func buildPlanner(cfg *config.Config, st *store.Store, log zerolog.Logger) (*planner.Planner, error) {
	return planner.New(planner.Config{
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
}

func recommendCmd() *cobra.Command {
	var dryRun bool

	cmd := &cobra.Command{
		Use:   "recommend [sport]",
		Short: "Compute today's best play windows and deliver them",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := context.Background()

			cfg, err := loadConfig()
			if err != nil {
				return err
			}

			sport := cfg.DefaultSport
			if len(args) > 0 {
				sport = args[0]
			}

			log := logger.New(logger.Config{Level: cfg.LogLevel, Pretty: true})

			st, err := store.NewStore(cfg.DBPath)
			if err != nil {
				return fmt.Errorf("opening database: %w", err)
			}
			defer st.Close()

			p, err := buildPlanner(cfg, st, log)
			if err != nil {
				return err
			}

			var result *planner.Result
			if dryRun {
				result, err = p.Preview(ctx, sport)
			} else {
				result, err = p.Run(ctx, sport, planner.TriggerManual)
			}
			if err != nil {
				return err
			}

			fmt.Println(result.Message)
			fmt.Println()

			switch {
			case result.Delivered:
				fmt.Println("✓ Sent to Telegram")
			case dryRun:
				fmt.Println("Dry run, nothing sent")
			default:
				fmt.Println("Not delivered (check telegram_bot_token and telegram_chat_id)")
			}

			return nil
		},
	}

	cmd.Flags().BoolVar(&dryRun, "dry-run", false, "Print the recommendation without delivering it")

	return cmd
}

func weatherCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "weather",
		Short: "Fetch today's hourly weather forecast",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := loadConfig()
			if err != nil {
				return err
			}

			client := weather.NewClient(cfg.OpenWeatherAPIKey, cfg.Location)
			samples, err := client.FetchHourly(context.Background(), cfg.CityName)
			if err != nil {
				return err
			}

			// Output as JSON
			enc := json.NewEncoder(os.Stdout)
			enc.SetIndent("", "  ")
			return enc.Encode(samples)
		},
	}
}

func aqiCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "aqi",
		Short: "Fetch today's hourly air quality forecast",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := loadConfig()
			if err != nil {
				return err
			}

			client := airquality.NewClient(cfg.Location)
			samples, err := client.FetchHourly(context.Background(), cfg.CityLat, cfg.CityLon)
			if err != nil {
				return err
			}

			enc := json.NewEncoder(os.Stdout)
			enc.SetIndent("", "  ")
			return enc.Encode(samples)
		},
	}
}

func sportsCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "sports",
		Short: "List sports with scoring rules",
		Run: func(cmd *cobra.Command, args []string) {
			for _, name := range engine.Sports() {
				rs, _ := engine.RulesetFor(name)
				fmt.Printf("%-12s max score %d\n", name, rs.MaxScore())
			}
		},
	}
}
