package main

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"

	"github.com/gin-gonic/gin"
	"github.com/spf13/cobra"
	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"

	"NudgePrototype/internal/auth"
	"NudgePrototype/internal/config"
	"NudgePrototype/internal/handler"
	"NudgePrototype/internal/logging"
	"NudgePrototype/internal/maps"
	"NudgePrototype/internal/models"
	"NudgePrototype/internal/observability"
	"NudgePrototype/internal/radar"
	"NudgePrototype/internal/session"
	"NudgePrototype/internal/simulation"
	"NudgePrototype/internal/storage"
)

var (
	cfgFile    string
	rosterSeed uint64
)

func main() {
	rootCmd := &cobra.Command{
		Use:   "nudge",
		Short: "Nudge: proximity radar, nudges and simulated chat",
	}
	rootCmd.PersistentFlags().StringVarP(&cfgFile, "config", "c", "", "Path to config file (default: configs/config.yaml)")

	serveCmd := &cobra.Command{
		Use:   "serve",
		Short: "Run the HTTP and WebSocket server",
		RunE:  runServe,
	}

	rosterCmd := &cobra.Command{
		Use:   "roster",
		Short: "Print a generated roster with mini profiles",
		RunE:  runRoster,
	}
	rosterCmd.Flags().Uint64Var(&rosterSeed, "seed", 0, "Random seed (0: random)")

	rootCmd.AddCommand(serveCmd, rosterCmd)

	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func runServe(cmd *cobra.Command, args []string) error {
	cfg, err := config.Load(cfgFile)
	if err != nil {
		return fmt.Errorf("config load: %w", err)
	}

	logger, err := logging.New(cfg.Log.Level, cfg.Log.Format)
	if err != nil {
		return fmt.Errorf("logger init: %w", err)
	}
	defer logger.Sync()

	if cfg.UsingDefaultSecret() {
		logger.Warn("JWT_SECRET_KEY is not set, signing session tokens with the default key")
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	store, err := storage.Open(ctx, cfg.Storage.DSN, logger)
	if err != nil {
		return fmt.Errorf("storage open: %w", err)
	}
	defer store.Close()

	metrics, err := observability.NewCollector(nil)
	if err != nil {
		return fmt.Errorf("metrics init: %w", err)
	}

	signer, err := auth.NewSigner(cfg.Session.Secret, cfg.Session.TokenTTL)
	if err != nil {
		return err
	}

	opts := session.ManagerOptions{
		Config:  sessionConfig(cfg),
		Seed:    cfg.Session.Seed,
		Metrics: metrics,
		Store:   store,
		Logger:  logger,
	}
	mapsClient := maps.NewClient(cfg.Maps.BaseURL, cfg.Maps.APIKey, cfg.Maps.Zoom, cfg.Maps.ProbeTimeout)
	if mapsClient.Configured() {
		opts.Prober = mapsClient
	} else {
		logger.Info("map service not configured, backdrop will use the fallback")
	}
	manager := session.NewManager(opts)

	gin.SetMode(cfg.Server.Mode)
	h := handler.New(manager, signer, store, logger)
	srv := &http.Server{
		Addr: cfg.Server.Addr,
		Handler: handler.NewRouter(h, handler.RouterOptions{
			Logger:          logger,
			Metrics:         metrics,
			AdminKey:        cfg.Admin.Key,
			NudgesPerSecond: cfg.RateLimit.PerSecond,
			NudgeBurst:      cfg.RateLimit.Burst,
			LimiterTTL:      cfg.RateLimit.TTL,
		}),
	}

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		logger.Info("HTTP server listening", zap.String("addr", cfg.Server.Addr))
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			return fmt.Errorf("http server: %w", err)
		}
		return nil
	})
	g.Go(func() error {
		return manager.RunReaper(gctx, cfg.Session.ReapInterval, cfg.Session.IdleTTL)
	})
	g.Go(func() error {
		<-gctx.Done()
		logger.Info("shutting down")
		shutdownCtx, cancel := context.WithTimeout(context.Background(), cfg.Server.ShutdownTimeout)
		defer cancel()
		manager.Shutdown(shutdownCtx)
		return srv.Shutdown(shutdownCtx)
	})
	return g.Wait()
}

type rosterEntry struct {
	User    models.SimulatedUser `json:"user"`
	Profile models.MiniProfile   `json:"profile"`
}

func runRoster(cmd *cobra.Command, args []string) error {
	cfg, err := config.Load(cfgFile)
	if err != nil {
		return fmt.Errorf("config load: %w", err)
	}

	rng := simulation.NewRand(rosterSeed)
	roster := radar.GenerateRoster(rng, sessionConfig(cfg).Roster)
	entries := make([]rosterEntry, 0, roster.Len())
	for _, u := range roster.Users() {
		entries = append(entries, rosterEntry{User: u, Profile: simulation.MiniProfileFor(rng, u)})
	}

	enc := json.NewEncoder(cmd.OutOrStdout())
	enc.SetIndent("", "  ")
	return enc.Encode(entries)
}

func sessionConfig(cfg *config.Config) session.Config {
	sc := session.DefaultConfig()
	sc.Roster = radar.RosterConfig{
		MinUsers:             cfg.Radar.MinUsers,
		MaxUsers:             cfg.Radar.MaxUsers,
		MinDistance:          cfg.Radar.MinDistance,
		MaxDistance:          cfg.Radar.MaxDistance,
		AngleJitter:          cfg.Radar.AngleJitter,
		AckProbability:       cfg.Radar.NudgeAckProbability,
		PeerNudgeProbability: cfg.Radar.PeerNudgeProbability,
	}
	sc.JitterInterval = cfg.Radar.JitterInterval
	sc.JitterStep = cfg.Radar.JitterStep
	sc.CompassInterval = cfg.Radar.CompassInterval
	sc.CompassStep = cfg.Radar.CompassStep
	sc.StatusInterval = cfg.Ambient.StatusInterval
	sc.Uptime = cfg.Ambient.Uptime
	sc.WindowFlickerInterval = cfg.Ambient.WindowFlickerInterval
	sc.WindowFlickerChance = cfg.Ambient.WindowFlickerChance
	sc.Buildings = cfg.Ambient.Buildings
	sc.ReplyMinDelay = cfg.Chat.ReplyMinDelay
	sc.ReplyMaxDelay = cfg.Chat.ReplyMaxDelay
	sc.DefaultCenter = maps.LatLng{Lat: cfg.Maps.DefaultLat, Lng: cfg.Maps.DefaultLng}
	sc.Zoom = cfg.Maps.Zoom
	return sc
}
