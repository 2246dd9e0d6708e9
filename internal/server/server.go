package server

import (
	"context"
	"net/http"
	"sync"
	"time"

	"github.com/dnvishnu12/slot-booking-backend/internal/booking"
	"github.com/dnvishnu12/slot-booking-backend/internal/config"
	"github.com/dnvishnu12/slot-booking-backend/internal/db"
	"github.com/dnvishnu12/slot-booking-backend/internal/roadmap"

	"github.com/gin-gonic/gin"
)

const (
	readHeaderTimeout = 10 * time.Second
	writeTimeout      = 30 * time.Second
)

type Server struct {
	router  *gin.Engine
	config  *config.Config
	limiter *RateLimiter

	mu   sync.Mutex
	http *http.Server
}

func New(cfg *config.Config, bookings booking.Service, roadmaps roadmap.Service, storage db.Pinger) *Server {
	router := gin.New()
	limiter := NewRateLimiter(cfg.RateLimitRPS, cfg.RateLimitBurst, visitorTTL)

	router.Use(
		gin.Recovery(),
		RequestIDMiddleware(),
		RequestLoggingMiddleware(),
		MetricsMiddleware(),
		corsMiddleware(cfg.AllowedOrigins),
	)

	router.GET("/", Root)
	router.GET("/health", Health(storage))
	router.GET("/metrics", Metrics())
	SetupSwagger(router)

	api := router.Group("/")
	api.Use(RateLimitMiddleware(limiter))
	booking.NewHandler(bookings).RegisterRoutes(api)
	roadmap.NewHandler(roadmaps).RegisterRoutes(api)

	return &Server{
		router:  router,
		config:  cfg,
		limiter: limiter,
	}
}

// Handler exposes the router, mainly for tests.
func (s *Server) Handler() http.Handler {
	return s.router
}

func (s *Server) Start(port string) error {
	srv := &http.Server{
		Addr:              ":" + port,
		Handler:           s.router,
		ReadHeaderTimeout: readHeaderTimeout,
		WriteTimeout:      writeTimeout,
	}

	s.mu.Lock()
	s.http = srv
	s.mu.Unlock()

	return srv.ListenAndServe()
}

// Shutdown drains in-flight requests until ctx expires.
func (s *Server) Shutdown(ctx context.Context) error {
	s.limiter.Stop()

	s.mu.Lock()
	srv := s.http
	s.mu.Unlock()

	if srv == nil {
		return nil
	}
	return srv.Shutdown(ctx)
}
