package api

import (
	"context"
	"errors"
	"log"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/Parag0712/levalsupermind/internal/model"
	"github.com/Parag0712/levalsupermind/internal/repository"
)

// multipartOverhead is allowed on top of the upload limit for form boundaries
// and headers.
const multipartOverhead = 1 << 20

// Transcriber runs the video-to-draft pipeline
type Transcriber interface {
	Transcribe(ctx context.Context, file []byte, filename, mimeType string) (*model.TranscriptionOutcome, error)
	MaxUploadBytes() int64
}

// TranslationService translates blog drafts
type TranslationService interface {
	Translate(ctx context.Context, req model.TranslationRequest) ([]model.Translation, error)
}

// API holds the handler dependencies
type API struct {
	transcriber Transcriber
	translator  TranslationService
	records     repository.TranscriptionRepository
	now         func() time.Time
}

// NewAPI creates the handler set. records may be nil, in which case
// invocations are not persisted and the history routes answer 503.
func NewAPI(transcriber Transcriber, translator TranslationService, records repository.TranscriptionRepository) *API {
	return &API{
		transcriber: transcriber,
		translator:  translator,
		records:     records,
		now:         time.Now,
	}
}

// NewRouter builds the gin engine with middleware and routes.
func NewRouter(api *API) *gin.Engine {
	engine := gin.New()
	engine.Use(gin.Recovery())
	engine.Use(RequestLogger())
	engine.Use(CORS())
	engine.Use(MaxBodySize(api.transcriber.MaxUploadBytes() + multipartOverhead))

	registerRoutes(engine, api)
	return engine
}

func registerRoutes(r *gin.Engine, api *API) {
	// Health check
	r.GET("/health", api.handleHealth)

	// API v1
	v1 := r.Group("/api/v1")
	{
		v1.POST("/video", api.handleTranscribeVideo)
		v1.POST("/translations", api.handleTranslate)
		v1.GET("/transcriptions", api.handleListTranscriptions)
		v1.GET("/transcriptions/:id", api.handleGetTranscription)
	}
}

// Server serves the API over HTTP
type Server struct {
	srv *http.Server
}

// NewServer creates a server listening on :port.
func NewServer(port string, handler http.Handler) *Server {
	return &Server{
		srv: &http.Server{
			Addr:              ":" + port,
			Handler:           handler,
			ReadHeaderTimeout: 10 * time.Second,
			IdleTimeout:       120 * time.Second,
			// No write timeout: a video request stays open until its
			// transcription job finishes.
		},
	}
}

// Run serves until ctx is cancelled, then drains in-flight requests for up
// to shutdownTimeout.
func (s *Server) Run(ctx context.Context, shutdownTimeout time.Duration) error {
	errCh := make(chan error, 1)
	go func() {
		log.Printf("[Server] Listening on %s", s.srv.Addr)
		if err := s.srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
		close(errCh)
	}()

	select {
	case err := <-errCh:
		return err
	case <-ctx.Done():
	}

	log.Printf("[Server] Shutdown signal received")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()
	if err := s.srv.Shutdown(shutdownCtx); err != nil {
		_ = s.srv.Close()
		return err
	}
	log.Printf("[Server] Stopped")
	return nil
}
