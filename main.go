package main

import (
	"context"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/joho/godotenv"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/vaidikcode/Mirelio-Game-Forge/internal/adapters/inbound/httpapi"
	"github.com/vaidikcode/Mirelio-Game-Forge/internal/adapters/outbound/extractor"
	"github.com/vaidikcode/Mirelio-Game-Forge/internal/adapters/outbound/fetcher"
	"github.com/vaidikcode/Mirelio-Game-Forge/internal/adapters/outbound/messaging"
	"github.com/vaidikcode/Mirelio-Game-Forge/internal/adapters/outbound/repository"
	"github.com/vaidikcode/Mirelio-Game-Forge/internal/adapters/outbound/storage"
	"github.com/vaidikcode/Mirelio-Game-Forge/internal/adapters/outbound/synthesizer"
	"github.com/vaidikcode/Mirelio-Game-Forge/internal/config"
	"github.com/vaidikcode/Mirelio-Game-Forge/internal/core/ports"
	"github.com/vaidikcode/Mirelio-Game-Forge/internal/core/services"
)

func main() {
	log.Println("🚀 Gameplay SFX pipeline starting...")

	if err := godotenv.Load(); err != nil {
		log.Println("ℹ️ No .env file found, using system environment variables")
	}

	cfg, err := config.Load()
	if err != nil {
		log.Fatal("❌ Error loading configuration: ", err)
	}

	// Create root context with cancellation for graceful shutdown
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	// Prometheus metrics server
	go func() {
		mux := http.NewServeMux()
		mux.Handle("/metrics", promhttp.Handler())
		log.Printf("📊 Metrics server started on :%s", cfg.MetricsPort)
		if err := http.ListenAndServe(":"+cfg.MetricsPort, mux); err != nil {
			log.Printf("⚠️ Metrics server failed: %v", err)
		}
	}()

	dbPool, err := initDatabase(ctx, cfg.DatabaseURL)
	if err != nil {
		log.Fatal("❌ Error initializing database: ", err)
	}
	defer dbPool.Close()

	blobs, err := storage.NewFSBlobStore(cfg.BlobDir, cfg.PublicBaseURL)
	if err != nil {
		log.Fatal("❌ Error initializing blob store: ", err)
	}

	// Outbound adapters
	videoFetcher := fetcher.NewHTTPVideoFetcher(cfg.DownloadTimeout, cfg.InsecureSkipVerify)
	eventExtractor := extractor.NewGeminiExtractor(cfg.GeminiAPIKey, cfg.GeminiModel, cfg.ExtractTimeout)
	primary := synthesizer.NewMireloSynthesizer(cfg.MireloAPIKey, cfg.MireloURL, cfg.SynthesisTimeout)
	assetRepo := repository.NewPostgresAssetRepository(dbPool)

	var fallback ports.FallbackSynthesizer
	if cfg.FallbackEnabled() {
		fallback = synthesizer.NewElevenLabsFallback(cfg.ElevenLabsAPIKey, cfg.ElevenLabsURL, cfg.SynthesisTimeout)
	} else {
		log.Println("ℹ️ ELEVENLABS_API_KEY not set, fallback synthesis disabled")
	}

	var publisher ports.EventPublisher
	var natsPub *messaging.NatsPublisherAdapter
	if cfg.PublishEnabled() {
		natsPub, err = messaging.NewNatsPublisherAdapter(cfg.NatsURL)
		if err != nil {
			log.Printf("⚠️ Error connecting to NATS: %v. Completion events disabled.", err)
			natsPub = nil
		} else {
			publisher = natsPub
		}
	}

	// Core service + inbound HTTP adapter
	pipeline := services.NewPipelineService(
		videoFetcher, eventExtractor, primary, fallback,
		assetRepo, blobs, publisher, cfg.SynthConcurrency,
	)
	handler := httpapi.NewHandler(pipeline)

	server := &http.Server{
		Addr:    ":" + cfg.Port,
		Handler: handler.Routes(cfg.BlobDir),
	}

	go func() {
		log.Printf("✅ API server listening on :%s", cfg.Port)
		if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatal("❌ API server failed: ", err)
		}
	}()

	<-ctx.Done()
	log.Println("👋 Shutting down gracefully...")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := server.Shutdown(shutdownCtx); err != nil {
		log.Printf("⚠️ Error during shutdown: %v", err)
	}
	if natsPub != nil {
		if err := natsPub.Close(); err != nil {
			log.Printf("⚠️ Error draining NATS connection: %v", err)
		}
	}

	log.Println("🛑 Server stopped.")
}

func initDatabase(ctx context.Context, connStr string) (*pgxpool.Pool, error) {
	var pool *pgxpool.Pool
	var err error
	for i := 0; i < 10; i++ {
		pool, err = pgxpool.New(ctx, connStr)
		if err == nil {
			if err = pool.Ping(ctx); err == nil {
				return pool, nil
			}
		}
		log.Printf("⏳ Waiting for database... (%d/10)", i+1)

		select {
		case <-ctx.Done():
			return nil, ctx.Err()
		case <-time.After(3 * time.Second):
		}
	}
	return nil, err
}
