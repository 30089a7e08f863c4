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

	"github.com/hande-app/logwatch/internal/api"
	"github.com/hande-app/logwatch/internal/config"
	"github.com/hande-app/logwatch/internal/database"
	"github.com/hande-app/logwatch/internal/logger"
	"github.com/hande-app/logwatch/internal/logview"
	"github.com/hande-app/logwatch/internal/monitoring"
	"github.com/hande-app/logwatch/internal/services"
	"github.com/hande-app/logwatch/internal/upstream"
	"github.com/hande-app/logwatch/internal/websocket"
)

func main() {
	logger.Init()

	// Load configuration
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("Failed to load configuration: %v", err)
	}

	// Ensure the export directory exists
	if err := os.MkdirAll(cfg.ExportDir, 0755); err != nil {
		log.Fatalf("Failed to create export directory: %v", err)
	}

	// Set up database
	db, err := database.New(cfg.DatabasePath)
	if err != nil {
		log.Fatalf("Failed to initialize database: %v", err)
	}
	defer db.Close()

	if err := database.Migrate(db); err != nil {
		log.Fatalf("Failed to apply database migrations: %v", err)
	}

	// Set up the upstream admin API client
	client := upstream.New(cfg.UpstreamBaseURL, cfg.UpstreamToken, cfg.UpstreamTimeout)

	// Set up WebSocket Hub
	hub := websocket.NewHub()
	go hub.Run()

	// Set up services
	eventService := services.NewEventService(db)
	statsReader := logview.NewStatsReader(client)
	exporter := logview.NewExporter(client, cfg.ExportDir)

	// Live tail of the activity feed, broadcast to connected dashboards
	tail := logview.NewLiveTail(client, eventService, cfg.FeedPollInterval, cfg.FeedWindowMins, func(snap logview.Snapshot) {
		hub.Broadcast <- websocket.NewFeedUpdateMessage(snap.Entries)
	})
	go tail.Run()

	// Background stats refresher
	statsRefresher := monitoring.NewStatsRefresher(statsReader, cfg.StatsHours, cfg.StatsRefresh)
	go statsRefresher.Run()

	// Scheduled audit exports
	exportScheduler, err := monitoring.NewExportScheduler(exporter, eventService, cfg.ExportCron)
	if err != nil {
		log.Fatalf("Failed to initialize export scheduler: %v", err)
	}
	go exportScheduler.Run()

	// Set up router
	router := api.NewRouter(api.RouterDeps{
		Hub:           hub,
		Tail:          tail,
		Backend:       client,
		StatsReader:   statsReader,
		Exporter:      exporter,
		EventService:  eventService,
		StatsCache:    statsRefresher,
		FeedWindow:    cfg.FeedWindowMins,
		AllowedOrigin: cfg.AllowedOrigin,
	})

	// Set up server
	srv := &http.Server{
		Addr:    fmt.Sprintf(":%d", cfg.ServerPort),
		Handler: router,
	}

	// Graceful shutdown
	go func() {
		log.Printf("Server starting on port %d\n", cfg.ServerPort)
		if err := srv.ListenAndServe(); err != http.ErrServerClosed {
			log.Fatalf("ListenAndServe(): %v", err)
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	log.Println("Shutting down server...")

	tail.Stop()            // Stop the live tail
	statsRefresher.Stop()  // Stop the stats refresher
	exportScheduler.Stop() // Stop the export scheduler

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if err := srv.Shutdown(ctx); err != nil {
		log.Fatalf("Server forced to shutdown: %v", err)
	}

	log.Println("Server exiting")
}
