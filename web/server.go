package web

import (
	"log/slog"
	"net/http"
	"sync/atomic"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/filesystem"

	"github.com/inkwellhq/inkwell/pkg/client"
	"github.com/inkwellhq/inkwell/pkg/feeds"
	"github.com/inkwellhq/inkwell/pkg/history"
	"github.com/inkwellhq/inkwell/pkg/models"
)

// Server is the web UI server.
type Server struct {
	config  Config
	client  *client.Client
	models  *models.Registry
	history *history.Store
	logger  *slog.Logger
	app     *fiber.App

	// feeds is swapped atomically when the registry file changes on disk,
	// so in-flight requests keep a consistent view.
	feeds atomic.Pointer[feeds.Registry]
}

// NewServer creates a new web UI server.
// The history store may be nil to disable ask recording.
func NewServer(config Config, c *client.Client, feedReg *feeds.Registry, modelReg *models.Registry, hist *history.Store, logger *slog.Logger) *Server {
	app := fiber.New(fiber.Config{
		DisableStartupMessage: true,
	})

	s := &Server{
		config:  config,
		client:  c,
		models:  modelReg,
		history: hist,
		logger:  logger,
		app:     app,
	}
	s.feeds.Store(feedReg)

	app.Get("/ping", s.handlePing)
	app.Get("/", s.handleIndex)
	app.Use("/static", filesystem.New(filesystem.Config{
		Root:       http.FS(assetsFS),
		PathPrefix: "assets/static",
	}))

	app.Get("/api/feeds", s.handleFeeds)
	app.Get("/api/models", s.handleModels)
	app.Post("/api/search", s.handleSearch)
	app.Post("/api/ask", s.handleAsk)
	app.Post("/api/ask/stream", s.handleAskStream)

	return s
}

// ReloadFeeds swaps in a new feed registry. Called by the file watcher when
// feeds.yaml changes.
func (s *Server) ReloadFeeds(reg *feeds.Registry) {
	s.feeds.Store(reg)
	s.logger.Info("feed registry reloaded", "feeds", len(reg.Feeds()))
}

// Run starts the web server on the configured address.
func (s *Server) Run() error {
	s.logger.Info("starting web server",
		"listen", s.config.ListenAddr,
	)
	return s.app.Listen(s.config.ListenAddr)
}

// Shutdown gracefully shuts down the web server.
func (s *Server) Shutdown() error {
	return s.app.Shutdown()
}
