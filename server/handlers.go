package server

import (
	"errors"

	"github.com/gofiber/fiber/v2"

	"github.com/linhadecascais/nexttrain/engine"
)

const (
	// train queries must be fresh on every call
	cacheNever = "no-store, no-cache, must-revalidate, private"
	// the station list changes on the timescale of track works
	cacheDaily = "s-maxage=86400, stale-while-revalidate"
)

type stationDTO struct {
	ID   string `json:"id"`
	Name string `json:"name"`
}

type healthResponse struct {
	Status string `json:"status"`
}

func (s *Server) handleHealth(c *fiber.Ctx) error {
	return c.JSON(healthResponse{Status: "ok"})
}

func (s *Server) handleStations(c *fiber.Ctx) error {
	c.Set(fiber.HeaderCacheControl, cacheDaily)
	all := s.reg.All()
	out := make([]stationDTO, 0, len(all))
	for _, st := range all {
		out = append(out, stationDTO{ID: st.UserID, Name: st.Name})
	}
	return c.JSON(out)
}

func (s *Server) handleTrains(c *fiber.Ctx) error {
	c.Set(fiber.HeaderCacheControl, cacheNever)

	rows, err := s.eng.NextTrains(c.Context(), c.Query("stationId"), c.Query("toStationId"))
	if err != nil {
		var invalid *engine.InvalidStationError
		if errors.As(err, &invalid) {
			return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
				"error": "Valid Station ID required",
			})
		}
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"error": "Internal server error",
		})
	}
	if rows == nil {
		rows = []engine.DepartureResult{}
	}
	return c.JSON(rows)
}

func (s *Server) handleBoard(c *fiber.Ctx) error {
	c.Set(fiber.HeaderCacheControl, cacheNever)

	board, err := s.eng.BoardFor(c.Context(), c.Query("stationId"))
	if err != nil {
		var invalid *engine.InvalidStationError
		if errors.As(err, &invalid) {
			return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
				"error": "Valid Station ID required",
			})
		}
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"error": "Internal server error",
		})
	}
	return c.JSON(board)
}
