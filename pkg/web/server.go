// Package web exposes the decision engine over HTTP: the decide cycle for
// the ESP32, read-only status/config queries, the chat endpoint, and a
// websocket telemetry stream for dashboards.
package web

import (
	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/adaptor"
	"github.com/gofiber/fiber/v2/middleware/cors"
	"github.com/gofiber/websocket/v2"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/teslashibe/go-rover/internal/journal"
	"github.com/teslashibe/go-rover/internal/log"
	"github.com/teslashibe/go-rover/pkg/brain"
	"github.com/teslashibe/go-rover/pkg/hub"
)

// Server wires the brain to its HTTP collaborators.
type Server struct {
	app      *fiber.App
	port     string
	brain    *brain.Brain
	validate *validator.Validate

	// Optional flight recorder; nil disables journaling.
	journal *journal.Store

	telemetry *hub.Hub
}

// NewServer creates the HTTP server around a brain. journalStore may be nil.
func NewServer(port string, b *brain.Brain, journalStore *journal.Store) *Server {
	s := &Server{
		port:      port,
		brain:     b,
		validate:  validator.New(),
		journal:   journalStore,
		telemetry: hub.New("telemetry"),
	}

	app := fiber.New(fiber.Config{
		AppName:               "go-rover",
		DisableStartupMessage: true,
	})

	// CORS so the dashboard can poll from another origin.
	app.Use(cors.New())

	app.Get("/", s.handleIndex)

	api := app.Group("/api")
	api.Get("/health", s.handleHealth)

	robot := api.Group("/robot")
	robot.Post("/decide", s.handleDecide)
	robot.Get("/status", s.handleStatus)
	robot.Get("/config", s.handleConfig)
	robot.Post("/reset", s.handleReset)

	api.Post("/chat/ask", s.handleAsk)

	app.Get("/metrics", adaptor.HTTPHandler(promhttp.Handler()))

	app.Use("/ws", func(c *fiber.Ctx) error {
		if websocket.IsWebSocketUpgrade(c) {
			return c.Next()
		}
		return fiber.ErrUpgradeRequired
	})
	app.Get("/ws/telemetry", websocket.New(s.handleTelemetryWS))

	s.app = app
	return s
}

// Start runs the telemetry hub and listens. Blocks.
func (s *Server) Start() error {
	go s.telemetry.Run()
	log.Info("api server listening", "port", s.port)
	return s.app.Listen(":" + s.port)
}

// StartAsync starts the server in a goroutine.
func (s *Server) StartAsync() {
	go func() {
		if err := s.Start(); err != nil {
			log.Error("api server stopped", "error", err)
		}
	}()
}

// App returns the fiber app, for tests.
func (s *Server) App() *fiber.App {
	return s.app
}

// Shutdown gracefully stops the server.
func (s *Server) Shutdown() error {
	return s.app.Shutdown()
}

// handleTelemetryWS subscribes a dashboard client to the decision stream.
func (s *Server) handleTelemetryWS(c *websocket.Conn) {
	client := hub.NewClient(s.telemetry, c)
	client.Run()
}
