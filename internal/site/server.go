// Package site serves the BuildVision landing page and its Atlas demo chat.
package site

import (
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"go.uber.org/zap"

	"github.com/csheth/buildvision/internal/atlas"
	"github.com/csheth/buildvision/internal/site/components"
)

const (
	sessionCookie      = "bv_demo"
	defaultSessionTTL  = 30 * time.Minute
	defaultMaxSessions = 10000
	maxFormBytes       = 16 << 10
)

// Options configures a Server.
type Options struct {
	Client      atlas.Client
	SessionTTL  time.Duration
	// MaxSessions caps live demo conversations; zero means the default.
	MaxSessions int
	Logger      *zap.Logger
}

// Server is the website's http.Handler.
type Server struct {
	router   chi.Router
	sessions *sessionStore
	log      *zap.Logger
	ttl      time.Duration
}

// New builds the router for opts.
func New(opts Options) *Server {
	log := opts.Logger
	if log == nil {
		log = zap.NewNop()
	}
	ttl := opts.SessionTTL
	if ttl <= 0 {
		ttl = defaultSessionTTL
	}
	limit := opts.MaxSessions
	if limit <= 0 {
		limit = defaultMaxSessions
	}
	s := &Server{
		sessions: newSessionStore(opts.Client, ttl, limit, log.Named("conversation")),
		log:      log,
		ttl:      ttl,
	}

	r := chi.NewRouter()
	r.Use(middleware.RequestID)
	r.Use(middleware.RealIP)
	r.Use(requestLogger(log.Named("http")))
	r.Use(middleware.Recoverer)

	r.Get("/", s.LandingPage)
	r.Get("/health", Health)
	r.Post(components.ChatPath, s.Chat)
	r.Post(components.ResetPath, s.Reset)
	r.Route("/api/demo", func(r chi.Router) {
		r.Get("/state", s.State)
		r.Post("/chat", s.ChatJSON)
	})

	s.router = r
	return s
}

func (s *Server) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	s.router.ServeHTTP(w, r)
}

// requestLogger logs one line per request once the handler returns.
func requestLogger(log *zap.Logger) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			ww := middleware.NewWrapResponseWriter(w, r.ProtoMajor)
			start := time.Now()
			defer func() {
				log.Info("request",
					zap.String("method", r.Method),
					zap.String("path", r.URL.Path),
					zap.Int("status", ww.Status()),
					zap.Int("bytes", ww.BytesWritten()),
					zap.Duration("duration", time.Since(start)),
					zap.String("request_id", middleware.GetReqID(r.Context())),
					zap.String("remote", r.RemoteAddr),
				)
			}()
			next.ServeHTTP(ww, r)
		})
	}
}
