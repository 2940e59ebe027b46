package server

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"sync"
	"sync/atomic"
	"time"

	"widget-backend/src/interfaces"
	"widget-backend/src/logger"
	"widget-backend/src/models"
	"widget-backend/src/widgets"

	"github.com/gin-gonic/gin"
)

const banner = "Full example for OpenBB Custom Backend"

// -----------------------------------------------------------------------------
// Server
// -----------------------------------------------------------------------------

type Server struct {
	Config   *models.MConfig
	Logger   *logger.Logger
	Service  interfaces.IWidgetService
	Registry *widgets.Registry
	engine   *gin.Engine
	srv      *http.Server

	// WebSocket clients, owned by the hub loop
	clients     map[*Client]struct{}
	broadcast   chan *models.MLiveUpdate
	register    chan *Client
	unregister  chan *Client
	done        chan struct{}
	stopOnce    sync.Once
	connections atomic.Int32

	// Latest table per widget for new subscribers
	snapshots  map[string]*models.MLiveUpdate
	stateMutex sync.RWMutex
}

// -----------------------------------------------------------------------------
// Constructor
// -----------------------------------------------------------------------------

func NewServer(cfg *models.MConfig, svc interfaces.IWidgetService, registry *widgets.Registry, log *logger.Logger) *Server {
	if cfg.LogLevel != "DEBUG" {
		gin.SetMode(gin.ReleaseMode)
	}

	s := &Server{
		Config:   cfg,
		Logger:   log,
		Service:  svc,
		Registry: registry,
		engine:   gin.New(),
		clients:  make(map[*Client]struct{}),
		// Buffered so the scheduler never waits on the hub
		broadcast:  make(chan *models.MLiveUpdate, 256),
		register:   make(chan *Client),
		unregister: make(chan *Client),
		done:       make(chan struct{}),
		snapshots:  make(map[string]*models.MLiveUpdate),
	}

	s.engine.Use(gin.Recovery(), s.requestID(), s.cors())
	s.setupRoutes()

	s.srv = &http.Server{
		Addr:              fmt.Sprintf("%s:%d", cfg.Host, cfg.Port),
		Handler:           s.engine,
		ReadHeaderTimeout: 10 * time.Second,
	}
	return s
}

// -----------------------------------------------------------------------------
// Route Setup
// -----------------------------------------------------------------------------

func (s *Server) setupRoutes() {
	// Discovery
	s.engine.GET("/", s.getRoot)
	s.engine.GET("/widgets.json", s.getWidgets)
	s.engine.GET("/templates.json", s.getTemplates)
	s.engine.GET("/api/health", s.getHealth)

	// Widget data
	s.engine.GET("/"+widgets.OSSCompanyStats, s.getOSSCompanyStats)
	s.engine.GET("/"+widgets.GitHubStats, s.getGitHubStats)
	s.engine.GET("/"+widgets.GitHubTrending, s.getGitHubTrending)
	s.engine.GET("/"+widgets.GitHubStarHistory, s.getGitHubStarHistory)

	if s.Config.Live.Enabled {
		s.engine.GET("/ws", s.handleWebSocket)
	}
}

// Handler exposes the router, mainly for tests.
func (s *Server) Handler() http.Handler {
	return s.engine
}

// -----------------------------------------------------------------------------
// Server Lifecycle
// -----------------------------------------------------------------------------

// Start runs the hub and serves until Shutdown. It returns nil after a clean
// shutdown.
func (s *Server) Start() error {
	s.Logger.Info("Starting server on %s", s.srv.Addr)

	go s.runHub()

	if err := s.srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
		return err
	}
	return nil
}

// -----------------------------------------------------------------------------

// Shutdown stops accepting requests, waits for in-flight ones and stops the hub.
func (s *Server) Shutdown(ctx context.Context) error {
	err := s.srv.Shutdown(ctx)
	s.stopHub()
	return err
}

// -----------------------------------------------------------------------------

func (s *Server) stopHub() {
	s.stopOnce.Do(func() { close(s.done) })
}
