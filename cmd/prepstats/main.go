package main

import (
	"context"
	"log"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/fortuna/prepstats/internal/api/rest"
	"github.com/fortuna/prepstats/internal/api/websocket"
	"github.com/fortuna/prepstats/internal/cache"
	"github.com/fortuna/prepstats/internal/config"
	"github.com/fortuna/prepstats/internal/publisher"
	"github.com/fortuna/prepstats/internal/scheduler"
	"github.com/fortuna/prepstats/internal/service"
	"github.com/fortuna/prepstats/internal/stats"
	"github.com/fortuna/prepstats/internal/store"
	"github.com/fortuna/prepstats/internal/store/repository"
	"github.com/fortuna/prepstats/internal/submission"
)

const (
	serviceName    = "prepstats"
	serviceVersion = "1.0.0"

	// submissionStreamMaxLen caps the submissions stream
	submissionStreamMaxLen = 10000
)

func main() {
	log.Printf("Starting %s v%s - Deaf School Records Portal", serviceName, serviceVersion)

	cfg := config.Load()

	// Initialize database connection
	db, err := store.NewDatabase(cfg.DatabaseURL)
	if err != nil {
		log.Fatalf("Failed to connect to database: %v", err)
	}
	defer db.Close()

	log.Println("✓ Connected to database")

	if err := db.RunMigrations(); err != nil {
		log.Fatalf("Failed to run database migrations: %v", err)
	}
	log.Println("✓ Database migrations applied")

	schools := repository.NewSchoolRepository(db)
	records := repository.NewRecordRepository(db)

	// Redis backs the metadata cache and the submission stream. Without it
	// the portal still serves records straight from the database.
	redisCache := connectRedis(cfg.RedisURL)

	var metaCache service.MetadataCache
	if redisCache != nil {
		defer redisCache.Close()
		metaCache = redisCache
	}

	engine := stats.NewEngine(stats.Options{
		StandardSeasons: cfg.StandardCareerSeasons,
		HighGPThreshold: cfg.HighGPThreshold,
		DefaultPageSize: cfg.DefaultPageSize,
	})
	recordsService := service.NewRecordsService(records, engine, nil)
	metadataService := service.NewMetadataService(repository.NewMetadataRepository(db), metaCache, cfg.MetadataTTL, nil)

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	// Keep the dropdown lists warm
	sched := scheduler.NewOrchestrator(metadataService, &scheduler.Config{
		RefreshInterval: cfg.MetadataRefreshInterval,
		MaxRetries:      3,
		RetryDelay:      5 * time.Second,
	}, nil)
	go sched.Start(ctx)

	log.Println("✓ Scheduler started")

	// WebSocket hub for live record sessions and submission notices
	hub := websocket.NewHub(nil)
	go hub.Run(ctx)

	submissions := submission.NewService(submission.NewRepository(db), schools, nil)
	submissions.AddNotifier(hub)
	if redisCache != nil {
		pub := publisher.NewRedisPublisher(redisCache.Client(), submissionStreamMaxLen)
		submissions.AddNotifier(submission.NotifierFunc(func(ctx context.Context, e submission.Event) error {
			return pub.PublishSubmission(ctx, e.Type, e)
		}))
		log.Println("✓ Redis publisher initialized")
	}

	// Initialize REST API server
	restServer := rest.NewServer(
		cfg.RESTPort,
		rest.NewHandler(recordsService, metadataService, db),
		rest.NewSubmissionHandler(submissions),
		cfg.CORSOrigins,
	)
	go func() {
		log.Printf("Starting REST API server on port %s", cfg.RESTPort)
		if err := restServer.Start(); err != nil {
			log.Printf("REST server error: %v", err)
		}
	}()

	log.Printf("✓ REST API server listening on :%s", cfg.RESTPort)

	// Initialize WebSocket server
	wsServer := websocket.NewServer(cfg.WSPort, hub, recordsService, cfg.CORSOrigins, nil)
	go func() {
		log.Printf("Starting WebSocket server on port %s", cfg.WSPort)
		if err := wsServer.Start(); err != nil {
			log.Printf("WebSocket server error: %v", err)
		}
	}()

	log.Printf("✓ WebSocket server listening on :%s", cfg.WSPort)
	log.Printf("✓ %s v%s started successfully", serviceName, serviceVersion)
	log.Printf("  REST API: http://0.0.0.0:%s/api/v1", cfg.RESTPort)
	log.Printf("  WebSocket: ws://0.0.0.0:%s/ws/records", cfg.WSPort)

	// Wait for interrupt signal
	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, syscall.SIGINT, syscall.SIGTERM)
	<-sigChan

	log.Printf("Shutting down %s gracefully...", serviceName)

	sched.Stop()
	cancel()

	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer shutdownCancel()

	if err := restServer.Shutdown(shutdownCtx); err != nil {
		log.Printf("REST API server shutdown error: %v", err)
	}
	if err := wsServer.Shutdown(shutdownCtx); err != nil {
		log.Printf("WebSocket server shutdown error: %v", err)
	}

	log.Printf("%s stopped", serviceName)
}

// connectRedis retries the connection a few times, then gives up and
// returns nil.
func connectRedis(url string) *cache.RedisCache {
	const (
		maxRetries = 5
		retryDelay = 2 * time.Second
	)

	log.Println("Connecting to Redis...")
	for i := 0; i < maxRetries; i++ {
		redisCache, err := cache.NewRedisCache(url)
		if err == nil {
			log.Println("✓ Connected to Redis")
			return redisCache
		}

		if i < maxRetries-1 {
			log.Printf("Redis connection attempt %d/%d failed: %v (retrying in %v)", i+1, maxRetries, err, retryDelay)
			time.Sleep(retryDelay)
		} else {
			log.Printf("⚠️  Redis unavailable after %d attempts: %v (continuing without cache)", maxRetries, err)
		}
	}
	return nil
}
