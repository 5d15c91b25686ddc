// Package server exposes the reconciliation engine over HTTP.
package server

import (
	"context"
	"fmt"

	"github.com/gofiber/fiber/v2"

	"github.com/linhadecascais/nexttrain/config"
	"github.com/linhadecascais/nexttrain/engine"
	"github.com/linhadecascais/nexttrain/stations"
)

// Server is the public HTTP surface: the train query, the station
// list, the dual-direction board and a health probe.
type Server struct {
	app  *fiber.App
	eng  *engine.Engine
	reg  *stations.Registry
	port int
}

// New assembles the fiber application and its routes.
func New(cfg config.ServerConfig, eng *engine.Engine, reg *stations.Registry) *Server {
	app := fiber.New(fiber.Config{DisableStartupMessage: true})
	app.Use(NewLogger())
	app.Use(corsMiddleware())

	s := &Server{app: app, eng: eng, reg: reg, port: cfg.Port}

	app.Get("/health", s.handleHealth)
	app.Get("/stations", s.handleStations)
	app.Get("/trains", s.handleTrains)
	app.Get("/trains/board", s.handleBoard)

	return s
}

// Listen serves until the listener fails or Shutdown is called.
func (s *Server) Listen() error {
	return s.app.Listen(fmt.Sprintf(":%d", s.port))
}

// Shutdown drains in-flight requests and stops the server.
func (s *Server) Shutdown(ctx context.Context) error {
	return s.app.ShutdownWithContext(ctx)
}

// App exposes the fiber application for in-process request tests.
func (s *Server) App() *fiber.App { return s.app }

// corsMiddleware permits any origin for GET and short-circuits
// preflight with a bare 200.
func corsMiddleware() fiber.Handler {
	return func(c *fiber.Ctx) error {
		c.Set("Access-Control-Allow-Origin", "*")
		c.Set("Access-Control-Allow-Methods", "GET, OPTIONS")
		c.Set("Access-Control-Allow-Headers", "Content-Type")
		if c.Method() == fiber.MethodOptions {
			return c.SendStatus(fiber.StatusOK)
		}
		return c.Next()
	}
}
