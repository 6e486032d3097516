package server

import (
	"net/http"
	"sync"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
	"go.uber.org/zap"

	"psp.com/chapter-quiz/internal/questionbank"
	"psp.com/chapter-quiz/internal/quiz"
)

// Catalog is the question bank as seen by the HTTP host.
type Catalog interface {
	Len() int
	Chapters() []questionbank.ChapterStat
}

// Options configures the middleware stack.
type Options struct {
	AllowedOrigins []string
	RateLimit      int // requests per minute per client, 0 disables
}

// Server exposes a single quiz controller over HTTP. Commands are
// serialised, so one browser tab drives one quiz at a time.
type Server struct {
	mu      sync.Mutex
	ctrl    *quiz.Controller
	catalog Catalog
	log     *zap.Logger
	opts    Options
	now     func() time.Time
}

func New(catalog Catalog, ctrl *quiz.Controller, log *zap.Logger, opts Options) *Server {
	return &Server{ctrl: ctrl, catalog: catalog, log: log, opts: opts, now: time.Now}
}

// Routes builds the chi router with CORS, security headers and rate limiting.
func (s *Server) Routes() http.Handler {
	r := chi.NewRouter()
	r.Use(middleware.RequestID, middleware.RealIP, middleware.Recoverer)
	r.Use(cors.Handler(cors.Options{
		AllowedOrigins:   s.opts.AllowedOrigins,
		AllowedMethods:   []string{"GET", "POST", "OPTIONS"},
		AllowedHeaders:   []string{"Content-Type"},
		AllowCredentials: false,
		MaxAge:           300,
	}))
	r.Use(securityHeaders)
	if s.opts.RateLimit > 0 {
		r.Use(newRateLimiter(s.opts.RateLimit, time.Minute, s.now).middleware)
	}

	r.Get("/healthz", func(w http.ResponseWriter, r *http.Request) { w.Write([]byte("ok")) })
	r.Get("/api/chapters", s.handleChapters)

	r.Route("/api/quiz", func(r chi.Router) {
		r.Get("/", s.handleState)
		r.Get("/report", s.handleReport)
		r.Post("/start", s.handleStart)
		r.Post("/answer", s.handleAnswer)
		r.Post("/next", s.command("next", (*quiz.Controller).Next))
		r.Post("/prev", s.command("prev", (*quiz.Controller).Prev))
		r.Post("/submit", s.command("submit", (*quiz.Controller).Submit))
		r.Post("/review", s.command("review", (*quiz.Controller).Review))
		r.Post("/retake", s.command("retake", (*quiz.Controller).RetakeSame))
		r.Post("/back-to-results", s.command("back to results", (*quiz.Controller).BackToResults))
		r.Post("/back-to-chapters", s.command("back to chapters", (*quiz.Controller).BackToChapters))
		r.Post("/restart", s.command("restart", func(c *quiz.Controller) error {
			c.Restart()
			return nil
		}))
	})
	return r
}
