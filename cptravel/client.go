package cptravel

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"

	"github.com/rs/zerolog/log"

	"github.com/linhadecascais/nexttrain/config"
)

// probe is one endpoint template in the scan order. Search-like
// endpoints are tried with GET first and then POST, because the
// gateway has answered both verbs at different times.
type probe struct {
	pathFmt string // fmt args: fromID, toID, date
	search  bool
}

// probes is the ordered scan list. Data-driven so new gateway paths
// can be added without touching the control flow.
var probes = []probe{
	{pathFmt: "/cp/services/travel-api/itinerary?from=%s&to=%s&date=%s"},
	{pathFmt: "/cp/services/travel-api/v2/itinerary?from=%s&to=%s&date=%s"},
	{pathFmt: "/cp/services/travel-api/v1/itinerary?from=%s&to=%s&date=%s"},
	{pathFmt: "/cp/services/travel-api/search?from=%s&to=%s&date=%s", search: true},
	{pathFmt: "/cp/services/travel-api/v2/search?from=%s&to=%s&date=%s", search: true},
	{pathFmt: "/cp/services/travel-api/trains?from=%s&to=%s&date=%s"},
	{pathFmt: "/cp/services/travel-api/v2/trains?from=%s&to=%s&date=%s"},
	{pathFmt: "/cp/services/stations-api/stations/%[1]s/next-trains"},
	{pathFmt: "/cp/services/stations-api/v2/stations/%[1]s/next-trains"},
	{pathFmt: "/cp/services/stations-api/v1/stations/%[1]s/next-trains"},
	{pathFmt: "/cp/services/stations-api/stations/%[1]s/departures"},
	{pathFmt: "/cp/services/stations-api/stations/%[1]s/arrivals"},
}

// HeaderSet is a named group of request headers to probe with.
type HeaderSet struct {
	Name    string
	Headers map[string]string
}

// Client probes the travel API gateway for itinerary records.
type Client struct {
	baseURL    string
	headerSets []HeaderSet
	httpClient *http.Client
}

// NewClient builds a travel API client from configuration.
func NewClient(cfg config.TravelAPIConfig) *Client {
	timeout := time.Duration(cfg.TimeoutMS) * time.Millisecond
	if timeout <= 0 {
		timeout = 8 * time.Second
	}
	return &Client{
		baseURL: cfg.BaseURL,
		headerSets: []HeaderSet{
			{
				Name: "mobile app",
				Headers: map[string]string{
					"x-api-key":  cfg.APIKey,
					"User-Agent": "CP/3.4.0 (Android)",
					"Accept":     "application/json",
				},
			},
			{
				Name: "web browser",
				Headers: map[string]string{
					"x-api-key":           cfg.APIKey,
					"x-cp-connect-id":     cfg.ConnectID,
					"x-cp-connect-secret": cfg.ConnectSecret,
					"User-Agent":          "Mozilla/5.0 (Windows NT 10.0; Win64; x64) AppleWebKit/537.36",
					"Accept":              "application/json",
					"Origin":              "https://www.cp.pt",
					"Referer":             "https://www.cp.pt/",
					"X-Requested-With":    "XMLHttpRequest",
				},
			},
		},
		httpClient: &http.Client{Timeout: timeout},
	}
}

// FetchItinerary scans the probe matrix and returns the first usable
// set of itinerary records, or nil when every combination fails.
func (c *Client) FetchItinerary(ctx context.Context, fromID, toID, date string) []ItineraryRecord {
	for _, hs := range c.headerSets {
		for _, p := range probes {
			path := fmt.Sprintf(p.pathFmt, fromID, toID, date)

			if recs, ok := c.try(ctx, http.MethodGet, path, nil, hs); ok {
				return recs
			}
			if p.search {
				body := map[string]string{"from": fromID, "to": toID, "date": date}
				if recs, ok := c.try(ctx, http.MethodPost, path, body, hs); ok {
					return recs
				}
			}
		}
	}
	return nil
}

// try performs one probe request. A 401 means the endpoint exists but
// this header set is not authorised for it; a 404 means the path is
// absent. Both keep the scan going, as does every other failure.
func (c *Client) try(ctx context.Context, method, path string, body map[string]string, hs HeaderSet) ([]ItineraryRecord, bool) {
	recs, status, err := c.attempt(ctx, method, path, body, hs)
	switch {
	case err != nil:
		log.Debug().Err(err).Str("path", path).Msg("travel api probe failed")
		return nil, false
	case status >= 200 && status < 300:
		if len(recs) == 0 {
			return nil, false
		}
		log.Info().Str("path", path).Str("headers", hs.Name).Msg("travel api probe succeeded")
		return recs, true
	case status == http.StatusUnauthorized:
		log.Debug().Str("path", path).Str("headers", hs.Name).Msg("travel api probe unauthorized")
		return nil, false
	case status == http.StatusNotFound:
		return nil, false
	default:
		log.Warn().Int("status", status).Str("path", path).Msg("travel api probe rejected")
		return nil, false
	}
}

// attempt issues a single request and decodes the body on 2xx. The
// caller applies the status policy.
func (c *Client) attempt(ctx context.Context, method, path string, body map[string]string, hs HeaderSet) ([]ItineraryRecord, int, error) {
	var reqBody io.Reader
	if body != nil {
		b, err := json.Marshal(body)
		if err != nil {
			return nil, 0, err
		}
		reqBody = bytes.NewReader(b)
	}
	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, reqBody)
	if err != nil {
		return nil, 0, err
	}
	for k, v := range hs.Headers {
		req.Header.Set(k, v)
	}
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, 0, err
	}
	defer func() { _ = resp.Body.Close() }()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return nil, resp.StatusCode, nil
	}
	b, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, resp.StatusCode, err
	}
	recs, err := ParseRecords(b)
	if err != nil {
		// unexpected JSON shape counts as "no usable itineraries"
		return nil, resp.StatusCode, nil
	}
	return recs, resp.StatusCode, nil
}

// ParseRecords extracts itinerary records from a raw gateway body,
// whichever known envelope it uses.
func ParseRecords(b []byte) ([]ItineraryRecord, error) {
	trimmed := bytes.TrimSpace(b)
	if len(trimmed) > 0 && trimmed[0] == '[' {
		var recs []ItineraryRecord
		if err := json.Unmarshal(trimmed, &recs); err != nil {
			return nil, fmt.Errorf("bare array shape: %w", err)
		}
		return recs, nil
	}
	var env envelope
	if err := json.Unmarshal(trimmed, &env); err != nil {
		return nil, fmt.Errorf("envelope shape: %w", err)
	}
	switch {
	case len(env.Itineraries) > 0:
		return env.Itineraries, nil
	case len(env.Data.Itineraries) > 0:
		return env.Data.Itineraries, nil
	case len(env.Trains) > 0:
		return env.Trains, nil
	case len(env.NextTrains) > 0:
		return env.NextTrains, nil
	}
	return nil, nil
}
