package main

import (
	"context"
	"log"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/joho/godotenv"

	"github.com/Parag0712/levalsupermind/internal/ai"
	"github.com/Parag0712/levalsupermind/internal/api"
	"github.com/Parag0712/levalsupermind/internal/awsclient"
	"github.com/Parag0712/levalsupermind/internal/config"
	"github.com/Parag0712/levalsupermind/internal/db"
	"github.com/Parag0712/levalsupermind/internal/model"
	"github.com/Parag0712/levalsupermind/internal/repository"
	"github.com/Parag0712/levalsupermind/internal/transcribe"
	"github.com/Parag0712/levalsupermind/internal/translation"
)

func main() {
	// Load .env file if it exists (ignore error if file doesn't exist)
	if err := godotenv.Load(); err != nil {
		log.Println("No .env file found, using environment variables")
	}

	// Load configuration
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("Failed to load configuration: %v", err)
	}

	// Set Gin mode (default to release mode)
	if os.Getenv("GIN_MODE") == "" {
		gin.SetMode(gin.ReleaseMode)
	}

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	clients, err := awsclient.New(ctx, cfg.AWS)
	if err != nil {
		log.Fatalf("Failed to create AWS clients: %v", err)
	}

	pipeline, err := buildPipeline(cfg, clients)
	if err != nil {
		log.Fatalf("Failed to build transcription pipeline: %v", err)
	}

	translator := translation.NewService(clients.Translate, cfg.Translate.SourceLanguage, cfg.Translate.Languages)

	records := openRepository(ctx, cfg.DatabaseURL)

	router := api.NewRouter(api.NewAPI(pipeline, translator, records))
	server := api.NewServer(cfg.Port, router)

	log.Printf("Video transcription backend running on :%s", cfg.Port)
	if err := server.Run(ctx, 30*time.Second); err != nil {
		log.Fatalf("Server error: %v", err)
	}
}

func buildPipeline(cfg *config.Config, clients *awsclient.Clients) (*transcribe.Pipeline, error) {
	uploader, err := transcribe.NewUploader(clients.Store, cfg.AWS.Bucket, cfg.AWS.Region)
	if err != nil {
		return nil, err
	}

	submitter, err := transcribe.NewSubmitter(clients.Transcribe, transcribe.SubmitterConfig{
		OutputBucket:   cfg.AWS.Bucket,
		LanguageCode:   cfg.Transcribe.LanguageCode,
		MediaFormat:    cfg.Transcribe.MediaFormat,
		VocabularyName: cfg.Transcribe.VocabularyName,
		JobPrefix:      cfg.Transcribe.JobPrefix,
	})
	if err != nil {
		return nil, err
	}

	policy := transcribe.DefaultPollPolicy()
	policy.MaxAttempts = cfg.Poll.MaxAttempts
	policy.Backoff.Base = cfg.Poll.Interval
	policy.Backoff.Max = cfg.Poll.MaxInterval
	policy.Grace = cfg.Poll.Grace

	poller := transcribe.NewPoller(clients.Transcribe, transcribe.NewFetcher(clients.Store), policy)
	poller.OnState(func(jobName string, state model.JobState) {
		if state.IsTerminal() {
			log.Printf("[Poller] Job %s finished: %s", jobName, state)
			return
		}
		log.Printf("[Poller] Job %s -> %s", jobName, state)
	})
	effective := poller.Policy()
	log.Printf("[Poller] Polling up to %d times, every %v growing by %.1fx to %v, grace %v",
		effective.MaxAttempts, effective.Backoff.Base, effective.Backoff.Factor, effective.Backoff.Max, effective.Grace)

	generator, err := ai.CreateGenerator(cfg.Enrichment)
	if err != nil {
		return nil, err
	}
	log.Printf("Enrichment provider initialized: %s", generator.Name())

	return transcribe.NewPipeline(transcribe.Options{
		Uploader:       uploader,
		Submitter:      submitter,
		Poller:         poller,
		Enricher:       ai.NewInvoker(generator),
		MaxUploadBytes: cfg.MaxUploadBytes,
	})
}

// openRepository uses Postgres when DATABASE_URL is set and falls back to
// in-memory storage otherwise or when the database is unreachable.
func openRepository(ctx context.Context, databaseURL string) repository.TranscriptionRepository {
	if databaseURL == "" {
		log.Println("DATABASE_URL not set, running without database (in-memory storage only)")
		return repository.NewMemoryRepository()
	}

	log.Printf("Initializing database connection with DATABASE_URL...")
	conn, err := db.Open(ctx, databaseURL)
	if err != nil {
		log.Printf("Warning: Failed to initialize database: %v. Continuing with in-memory storage.", err)
		return repository.NewMemoryRepository()
	}

	log.Println("Database and repository initialized successfully")
	return repository.NewPostgresRepository(conn)
}
