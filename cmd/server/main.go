// Package main is the entry point for the panel lighting effect server.
package main

import (
	"context"
	"fmt"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/joho/godotenv"
	"github.com/rs/cors"
	"github.com/sirupsen/logrus"
	"golang.org/x/sync/errgroup"

	"panelfx/internal/colormanager"
	"panelfx/internal/command"
	"panelfx/internal/config"
	"panelfx/internal/engine"
	"panelfx/internal/grid"
	"panelfx/internal/logging"
	"panelfx/internal/presets"
	"panelfx/internal/settings"
	"panelfx/internal/sinks"
)

// Version information (set at build time)
var (
	Version   = "0.1.0"
	BuildTime = "unknown"
	GitCommit = "unknown"
)

func main() {
	if err := godotenv.Load(); err != nil {
		log.Println("No .env file found, using environment variables")
	}

	cfg, err := config.Load(os.Getenv("CONFIG_PATH"))
	if err != nil {
		log.Fatalf("Failed to load configuration: %v", err)
	}

	logger := logging.New(cfg.LogLevel)
	entry := logrus.NewEntry(logger)

	printBanner(cfg)

	g := grid.New(cfg.Engine.Columns, cfg.Engine.RowsPerColumn, cfg.Engine.InitialTopology)
	colors := colormanager.New(entry)
	colors.LoadPresetsFromConfig(cfg.Presets)

	eng := engine.New(g, colors, cfg.Engine.TargetFPS, entry)

	artnetSink, err := sinks.NewArtNetSink(sinks.ArtNetConfig{
		Enabled:          cfg.ArtNet.Enabled,
		Host:             cfg.ArtNet.Host,
		Port:             cfg.ArtNet.Port,
		Net:              cfg.ArtNet.Net,
		Subnet:           cfg.ArtNet.Subnet,
		Universe:         cfg.ArtNet.Universe,
		StartChannel:     cfg.ArtNet.StartChannel,
		ChannelsPerPanel: cfg.ArtNet.ChannelsPerPanel,
		RefreshRate:      cfg.ArtNet.RefreshRate,
	}, entry)
	if err != nil {
		log.Fatalf("Failed to initialize Art-Net sink: %v", err)
	}
	eng.AddSink(artnetSink)

	presetStore, err := presets.NewStore(cfg.PresetStorePath)
	if err != nil {
		log.Fatalf("Failed to open preset store: %v", err)
	}

	settingsStore, err := settings.Open(cfg.SettingsDBPath)
	if err != nil {
		log.Fatalf("Failed to open settings store: %v", err)
	}
	defer func() { _ = settingsStore.Close() }()

	if addr, ok, err := settingsStore.Get(context.Background(), settings.KeyArtNetBroadcastAddress); err == nil && ok && addr != "" {
		entry.Infof("loading saved Art-Net broadcast address: %s", addr)
		if err := artnetSink.ReloadBroadcastAddress(addr); err != nil {
			entry.WithError(err).Warn("failed to load saved broadcast address")
		}
	}

	cmdServer := command.New(eng, presetStore, settingsStore, artnetSink, []string{cfg.CORSOrigin}, entry)
	eng.AddSink(cmdServer)

	eng.Start()

	router := chi.NewRouter()
	router.Use(middleware.RequestID)
	router.Use(middleware.RealIP)
	router.Use(middleware.Logger)
	router.Use(middleware.Recoverer)
	router.Use(middleware.Timeout(60 * time.Second))

	corsMiddleware := cors.New(cors.Options{
		AllowedOrigins:   []string{cfg.CORSOrigin, "http://localhost:3000", "http://localhost:4000"},
		AllowedMethods:   []string{"GET", "POST", "OPTIONS"},
		AllowedHeaders:   []string{"Accept", "Authorization", "Content-Type", "X-CSRF-Token"},
		AllowCredentials: true,
		Debug:            cfg.IsDevelopment(),
	})
	router.Use(corsMiddleware.Handler)

	router.Get("/health", healthCheckHandler)
	router.Handle("/ws", http.HandlerFunc(cmdServer.ServeHTTP))

	httpServer := &http.Server{
		Addr:         ":" + cfg.Port,
		Handler:      router,
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 15 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	var eg errgroup.Group
	eg.Go(func() error {
		log.Printf("Server listening on http://localhost:%s\n", cfg.Port)
		log.Printf("Command/event websocket: ws://localhost:%s/ws\n", cfg.Port)
		if err := httpServer.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			return err
		}
		return nil
	})

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	log.Println("Shutting down server...")

	eng.Stop()
	if err := artnetSink.Close(); err != nil {
		entry.WithError(err).Warn("error closing Art-Net sink")
	}

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()
	if err := httpServer.Shutdown(ctx); err != nil {
		log.Fatalf("Server shutdown error: %v", err)
	}

	if err := eg.Wait(); err != nil {
		log.Fatalf("Server error: %v", err)
	}

	log.Println("Server stopped")
}

// healthCheckHandler returns the server health status.
func healthCheckHandler(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusOK)
	response := fmt.Sprintf(`{
  "status": "ok",
  "timestamp": "%s",
  "version": "%s"
}`, time.Now().UTC().Format(time.RFC3339), Version)
	_, _ = w.Write([]byte(response))
}

// printBanner prints the startup banner.
func printBanner(cfg *config.Config) {
	fmt.Println("============================================")
	fmt.Println("  Panel Effect Server")
	fmt.Printf("  Version: %s\n", Version)
	fmt.Printf("  Build:   %s\n", BuildTime)
	fmt.Printf("  Commit:  %s\n", GitCommit)
	fmt.Println("============================================")
	fmt.Printf("  Environment: %s\n", cfg.Env)
	fmt.Printf("  Port:        %s\n", cfg.Port)
	fmt.Printf("  Columns:     %d\n", cfg.Engine.Columns)
	fmt.Printf("  Target FPS:  %d\n", cfg.Engine.TargetFPS)
	fmt.Printf("  Art-Net:     %v\n", cfg.ArtNet.Enabled)
	fmt.Println("============================================")
}
