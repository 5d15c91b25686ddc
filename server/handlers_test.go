package server

import (
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/linhadecascais/nexttrain/config"
	"github.com/linhadecascais/nexttrain/engine"
	"github.com/linhadecascais/nexttrain/livefeed"
	"github.com/linhadecascais/nexttrain/stations"
	"github.com/linhadecascais/nexttrain/timetable"
)

type noLive struct{}

func (noLive) FetchActive(context.Context) []livefeed.Vehicle { return nil }

func newTestServer(t *testing.T) *Server {
	t.Helper()
	loc, err := time.LoadLocation("Europe/Lisbon")
	if err != nil {
		t.Fatal(err)
	}
	reg := stations.NewRegistry()
	eng := engine.New(reg, timetable.NewProvider(), noLive{}, nil, engine.NewDisappearanceCache(), engine.Options{
		PerStationTransitMinutes: 2,
		DirectPageSize:           10,
		BoardPageSize:            4,
		FreezeThresholdMinutes:   3,
		MatchWindowMinutes:       30,
		Location:                 loc,
	}).WithClock(func() time.Time {
		return time.Date(2026, 8, 26, 10, 0, 0, 0, loc)
	})
	return New(config.ServerConfig{Port: 0}, eng, reg)
}

func doRequest(t *testing.T, s *Server, method, target string) *http.Response {
	t.Helper()
	req := httptest.NewRequest(method, target, nil)
	resp, err := s.App().Test(req, -1)
	if err != nil {
		t.Fatal(err)
	}
	return resp
}

func decodeBody(t *testing.T, resp *http.Response, v any) {
	t.Helper()
	b, err := io.ReadAll(resp.Body)
	if err != nil {
		t.Fatal(err)
	}
	if err := json.Unmarshal(b, v); err != nil {
		t.Fatalf("decode %q: %v", b, err)
	}
}

func TestHealth(t *testing.T) {
	resp := doRequest(t, newTestServer(t), http.MethodGet, "/health")
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("status = %d", resp.StatusCode)
	}
	var body map[string]string
	decodeBody(t, resp, &body)
	if body["status"] != "ok" {
		t.Errorf("body = %v", body)
	}
}

func TestStations(t *testing.T) {
	resp := doRequest(t, newTestServer(t), http.MethodGet, "/stations")
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("status = %d", resp.StatusCode)
	}
	if cc := resp.Header.Get("Cache-Control"); cc != cacheDaily {
		t.Errorf("Cache-Control = %q", cc)
	}
	var body []stationDTO
	decodeBody(t, resp, &body)
	if len(body) != 17 {
		t.Fatalf("station count = %d, want 17", len(body))
	}
	if body[0].Name != "Cais do Sodre" || body[len(body)-1].Name != "Cascais" {
		t.Errorf("termini wrong: %s .. %s", body[0].Name, body[len(body)-1].Name)
	}
}

func TestTrains(t *testing.T) {
	s := newTestServer(t)

	t.Run("ok", func(t *testing.T) {
		resp := doRequest(t, s, http.MethodGet, "/trains?stationId=94-69179")
		if resp.StatusCode != http.StatusOK {
			t.Fatalf("status = %d", resp.StatusCode)
		}
		if cc := resp.Header.Get("Cache-Control"); cc != cacheNever {
			t.Errorf("Cache-Control = %q", cc)
		}
		var rows []map[string]any
		decodeBody(t, resp, &rows)
		if len(rows) == 0 || len(rows) > 10 {
			t.Fatalf("row count = %d", len(rows))
		}
		for _, key := range []string{"trainNr", "scheduledTime", "minutesToDeparture", "destination"} {
			if _, ok := rows[0][key]; !ok {
				t.Errorf("row missing %q: %v", key, rows[0])
			}
		}
	})

	t.Run("missing station id", func(t *testing.T) {
		resp := doRequest(t, s, http.MethodGet, "/trains")
		if resp.StatusCode != http.StatusBadRequest {
			t.Fatalf("status = %d, want 400", resp.StatusCode)
		}
		var body map[string]string
		decodeBody(t, resp, &body)
		if body["error"] != "Valid Station ID required" {
			t.Errorf("error = %q", body["error"])
		}
	})

	t.Run("unknown station id", func(t *testing.T) {
		resp := doRequest(t, s, http.MethodGet, "/trains?stationId=99-00000")
		if resp.StatusCode != http.StatusBadRequest {
			t.Fatalf("status = %d, want 400", resp.StatusCode)
		}
	})
}

func TestBoard(t *testing.T) {
	s := newTestServer(t)

	resp := doRequest(t, s, http.MethodGet, "/trains/board?stationId=94-69104")
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("status = %d", resp.StatusCode)
	}
	var board struct {
		Station       string           `json:"station"`
		ToCascais     []map[string]any `json:"toCascais"`
		ToCaisDoSodre []map[string]any `json:"toCaisDoSodre"`
	}
	decodeBody(t, resp, &board)
	if board.Station != "Cruz Quebrada" {
		t.Errorf("station = %q", board.Station)
	}
	if len(board.ToCascais) == 0 || len(board.ToCascais) > 4 {
		t.Errorf("toCascais rows = %d", len(board.ToCascais))
	}
	if len(board.ToCaisDoSodre) == 0 || len(board.ToCaisDoSodre) > 4 {
		t.Errorf("toCaisDoSodre rows = %d", len(board.ToCaisDoSodre))
	}

	resp = doRequest(t, s, http.MethodGet, "/trains/board")
	if resp.StatusCode != http.StatusBadRequest {
		t.Errorf("missing station: status = %d, want 400", resp.StatusCode)
	}
}

func TestCORS(t *testing.T) {
	s := newTestServer(t)

	resp := doRequest(t, s, http.MethodOptions, "/trains")
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("preflight status = %d, want 200", resp.StatusCode)
	}
	if origin := resp.Header.Get("Access-Control-Allow-Origin"); origin != "*" {
		t.Errorf("Allow-Origin = %q", origin)
	}

	resp = doRequest(t, s, http.MethodGet, "/health")
	if origin := resp.Header.Get("Access-Control-Allow-Origin"); origin != "*" {
		t.Errorf("plain GET Allow-Origin = %q", origin)
	}
}
