package main

import (
	"context"
	"flag"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/joho/godotenv"
	"github.com/riddhisc/hrdash/api"
	dbfs "github.com/riddhisc/hrdash/db"
	"github.com/riddhisc/hrdash/internal/config"
	"github.com/riddhisc/hrdash/internal/db"
	"github.com/riddhisc/hrdash/internal/jobs"
	"github.com/riddhisc/hrdash/internal/oauth"
	"github.com/riddhisc/hrdash/internal/uploads"
)

var (
	version   = "dev"
	buildTime = "unknown"
)

func main() {
	var configPath = flag.String("config", "", "Path to config YAML file")
	flag.Parse()

	// .env is optional; real env vars win either way
	_ = godotenv.Load()

	cfg, err := config.LoadConfig(*configPath)
	if err != nil {
		log.Fatalf("Failed to load config: %v", err)
	}

	log.Printf("Starting hrdash server version %s (built at %s)", version, buildTime)

	ctx := context.Background()

	database, err := db.New(ctx, cfg.DatabasePath)
	if err != nil {
		log.Fatalf("Failed to open DB: %v", err)
	}

	if err := db.Migrate(ctx, database, dbfs.Migrations, dbfs.SeedFiles); err != nil {
		log.Fatalf("Failed to migrate DB: %v", err)
	}

	files, err := uploads.NewStore(cfg.UploadDir)
	if err != nil {
		log.Fatalf("Failed to init upload store: %v", err)
	}

	// background resume cleanup
	queue := jobs.NewRepository(database)
	pool := jobs.NewWorkerPool(queue, map[string]jobs.Handler{
		jobs.TypeResumeDelete: jobs.ResumeDeleteHandler(files),
	}, nil, cfg.CleanupWorkers)
	workerCtx, workerCancel := context.WithCancel(ctx)
	pool.Start(workerCtx)

	verifier := oauth.NewGoogleVerifier(cfg.GoogleAudience)

	handler := api.SetupRoutes(cfg, version, buildTime, database, verifier, files, pool)

	server := &http.Server{
		Addr:         cfg.Addr,
		Handler:      handler,
		ReadTimeout:  cfg.APITimeout,
		WriteTimeout: cfg.APITimeout,
		IdleTimeout:  60 * time.Second,
	}

	go func() {
		log.Printf("Server starting on %s", cfg.Addr)
		if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatalf("Server failed to start: %v", err)
		}
	}()

	// Wait for interrupt signal to gracefully shutdown the server
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	log.Println("Shutting down server...")

	// Give outstanding requests 30 seconds to complete
	shutdownCtx, cancel := context.WithTimeout(ctx, 30*time.Second)
	defer cancel()

	if err := server.Shutdown(shutdownCtx); err != nil {
		log.Fatalf("Server forced to shutdown: %v", err)
	}

	workerCancel()
	pool.Stop()

	if err := database.Close(); err != nil {
		log.Printf("Error closing DB: %v", err)
	}

	log.Println("Server exited")
}
