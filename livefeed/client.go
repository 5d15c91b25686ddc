package livefeed

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"strconv"
	"time"

	"github.com/rs/zerolog/log"

	"github.com/linhadecascais/nexttrain/config"
	"github.com/linhadecascais/nexttrain/stations"
)

// Client fetches the operator's JSON vehicles endpoint and filters the
// feed down to the line's own trains.
type Client struct {
	url         string
	serviceCode string
	termini     [2]string
	httpClient  *http.Client
}

// NewClient builds a live position client for the configured line.
func NewClient(cfg config.LiveFeedConfig, line config.LineConfig, reg *stations.Registry) *Client {
	timeout := time.Duration(cfg.TimeoutMS) * time.Millisecond
	if timeout <= 0 {
		timeout = 5 * time.Second
	}
	return &Client{
		url:         cfg.VehiclesURL,
		serviceCode: line.ServiceCode,
		termini:     [2]string{reg.Origin().LiveID, reg.FarTerminus().LiveID},
		httpClient:  &http.Client{Timeout: timeout},
	}
}

// FetchActive returns the line's current vehicles. Any network or
// decode failure is logged and reported as "no live data available".
func (c *Client) FetchActive(ctx context.Context) []Vehicle {
	raw, err := c.fetch(ctx)
	if err != nil {
		log.Warn().Err(err).Msg("live feed unavailable")
		return nil
	}
	return c.filter(raw)
}

func (c *Client) fetch(ctx context.Context) (*rawFeed, error) {
	if c.url == "" {
		return &rawFeed{}, nil
	}
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.url, nil)
	if err != nil {
		return nil, err
	}
	req.Header.Set("Accept", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, err
	}
	defer func() { _ = resp.Body.Close() }()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("HTTP %d from %s", resp.StatusCode, c.url)
	}

	var feed rawFeed
	if err := json.NewDecoder(resp.Body).Decode(&feed); err != nil {
		return nil, fmt.Errorf("decode vehicles feed: %w", err)
	}
	return &feed, nil
}

// filter keeps vehicles that belong to the line's service and whose
// run starts or ends at one of the line termini.
func (c *Client) filter(feed *rawFeed) []Vehicle {
	out := make([]Vehicle, 0, len(feed.Vehicles))
	for _, v := range feed.Vehicles {
		if v.Service.Code != c.serviceCode {
			continue
		}
		if !c.isTerminus(v.Origin.Code) && !c.isTerminus(v.Destination.Code) {
			continue
		}
		out = append(out, Vehicle{
			TrainNumber:     strconv.FormatInt(v.TrainNumber, 10),
			OriginCode:      v.Origin.Code,
			DestinationCode: v.Destination.Code,
			LastStationCode: v.LastStation.Code,
			DelaySeconds:    v.Delay,
			Status:          v.Status,
		})
	}
	return out
}

func (c *Client) isTerminus(code string) bool {
	return code == c.termini[0] || code == c.termini[1]
}
