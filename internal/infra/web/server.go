package web

import (
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/google/uuid"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/rs/zerolog"

	"lecture-quiz/internal/infra/logging"
	"lecture-quiz/internal/usecase"
)

// PipelineScheduler enqueues a processing run for an uploaded video.
type PipelineScheduler interface {
	Schedule(videoID string) error
}

// Server wires the REST API: upload, status polling, results, export.
type Server struct {
	uploadUC  *usecase.UploadUseCase
	statusUC  *usecase.StatusUseCase
	resultsUC *usecase.ResultsUseCase
	exportUC  *usecase.ExportUseCase
	scheduler PipelineScheduler
	maxUpload int64
	log       *zerolog.Logger
}

func NewServer(
	uploadUC *usecase.UploadUseCase,
	statusUC *usecase.StatusUseCase,
	resultsUC *usecase.ResultsUseCase,
	exportUC *usecase.ExportUseCase,
	scheduler PipelineScheduler,
	maxUpload int64,
	logger *zerolog.Logger,
) *Server {
	l := logger.With().Str("component", "web").Logger()
	return &Server{
		uploadUC:  uploadUC,
		statusUC:  statusUC,
		resultsUC: resultsUC,
		exportUC:  exportUC,
		scheduler: scheduler,
		maxUpload: maxUpload,
		log:       &l,
	}
}

// Router builds the chi router with all routes attached.
func (s *Server) Router() *chi.Mux {
	r := chi.NewRouter()
	r.Use(middleware.Recoverer)
	r.Use(s.requestLogger)

	r.Route("/api", func(r chi.Router) {
		r.Post("/upload", s.handleUpload)
		r.Route("/videos/{id}", func(r chi.Router) {
			r.Get("/status", s.handleStatus)
			r.Get("/results", s.handleResults)
			r.Get("/export", s.handleExport)
		})
	})

	r.Get("/health", func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write([]byte("OK"))
	})
	r.Handle("/metrics", promhttp.Handler())

	return r
}

// requestLogger tags each request with an id and logs method, path,
// status and latency.
func (s *Server) requestLogger(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		reqID := uuid.NewString()
		ctx := logging.WithRequestID(r.Context(), reqID)
		ww := middleware.NewWrapResponseWriter(w, r.ProtoMajor)

		start := time.Now()
		next.ServeHTTP(ww, r.WithContext(ctx))

		s.log.Info().
			Str("request_id", reqID).
			Str("method", r.Method).
			Str("path", r.URL.Path).
			Int("status", ww.Status()).
			Dur("duration", time.Since(start)).
			Msg("request")
	})
}
