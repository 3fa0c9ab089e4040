package appServer

import (
	"context"
	"crypto/tls"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/eventbooker/webclient/config"
	"github.com/eventbooker/webclient/internal/api"
	"github.com/eventbooker/webclient/internal/service"
	"github.com/eventbooker/webclient/internal/session"
	"github.com/eventbooker/webclient/internal/store"
	"github.com/eventbooker/webclient/internal/transport"
	"github.com/eventbooker/webclient/internal/worker"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"
)

type Server struct {
	httpServer *http.Server
}

func (s *Server) Run(cfg *config.Config, handler http.Handler) error {
	s.httpServer = &http.Server{
		Addr:              ":" + cfg.Server.Port,
		Handler:           handler,
		MaxHeaderBytes:    1 << 20,
		ReadTimeout:       10 * time.Second,
		WriteTimeout:      cfg.Server.Timeout,
		IdleTimeout:       cfg.Server.Idle_timeout,
		ReadHeaderTimeout: 3 * time.Second,
		TLSConfig:         &tls.Config{MinVersion: tls.VersionTLS12}, // ban on outdated TLS
		ErrorLog:          log.New(os.Stderr, "SERVER ERROR: ", log.LstdFlags),
	}
	return s.httpServer.ListenAndServe()
}

func (s *Server) Shutdown(ctx context.Context) error {
	return s.httpServer.Shutdown(ctx)
}

func NewServer(cfg *config.Config) {

	logrus.SetFormatter(&logrus.JSONFormatter{})
	logrus.SetOutput(os.Stdout)
	logrus.SetLevel(logrus.InfoLevel)

	// Outbound gateway to the booking API
	apiClient := api.NewClient(&cfg.API)

	// Services are stateless translators over the API client
	authService := service.NewAuthService(apiClient)
	eventService := service.NewEventService(apiClient)
	bookingService := service.NewBookingService(apiClient)

	// Session cookies and per-session event caches
	sessions := session.NewManager(&cfg.Session)
	registry := store.NewRegistry(eventService)

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	// Evict event caches of idle sessions
	cleanupWorker := worker.NewCacheCleanupWorker(registry, cfg.Cache.IdleTTL, cfg.Cache.CleanupInterval)
	go cleanupWorker.Start(ctx)
	logrus.Info("Cache cleanup worker started")

	// Initialize handlers
	authHandler := transport.NewAuthHandler(authService, sessions, registry)
	eventHandler := transport.NewEventHandler(sessions, registry)
	bookingHandler := transport.NewBookingHandler(bookingService, sessions, registry)

	if cfg.Server.Mode == "release" || cfg.Server.Env == "production" {
		gin.SetMode(gin.ReleaseMode)
	}

	srv := new(Server)
	go func() {
		if err := srv.Run(cfg, transport.InitRoutes(cfg, sessions, authHandler, eventHandler, bookingHandler)); err != nil && err != http.ErrServerClosed {
			logrus.Fatalf("error occured while running http server: %s", err.Error())
		}
	}()

	logrus.Print("App Started")

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGTERM, syscall.SIGINT)
	<-quit

	logrus.Print("App Shutting Down")

	if err := srv.Shutdown(context.Background()); err != nil {
		logrus.Errorf("error occured on server shutting down: %s", err.Error())
	}
}
