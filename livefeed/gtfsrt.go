package livefeed

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"time"

	gtfsrtpb "github.com/MobilityData/gtfs-realtime-bindings/golang/gtfs"
	"github.com/rs/zerolog/log"
	"google.golang.org/protobuf/proto"

	"github.com/linhadecascais/nexttrain/config"
	"github.com/linhadecascais/nexttrain/stations"
)

// GTFSRTSource adapts a GTFS-Realtime VehiclePositions feed onto the
// Vehicle type. Direction comes from the trip descriptor's direction
// id (0 = away from the line origin), delay from the matching trip
// update when the feed publishes one.
type GTFSRTSource struct {
	vehiclePositionsURL string
	reg                 *stations.Registry
	httpClient          *http.Client
}

// NewGTFSRTSource builds a GTFS-RT live position source.
func NewGTFSRTSource(cfg config.LiveFeedConfig, reg *stations.Registry) *GTFSRTSource {
	timeout := time.Duration(cfg.TimeoutMS) * time.Millisecond
	if timeout <= 0 {
		timeout = 5 * time.Second
	}
	return &GTFSRTSource{
		vehiclePositionsURL: cfg.VehiclePositionsURL,
		reg:                 reg,
		httpClient:          &http.Client{Timeout: timeout},
	}
}

// FetchActive returns the line's current vehicles, or nil on any feed
// failure.
func (s *GTFSRTSource) FetchActive(ctx context.Context) []Vehicle {
	fm, err := s.fetchFeed(ctx, s.vehiclePositionsURL)
	if err != nil {
		log.Warn().Err(err).Msg("gtfs-rt feed unavailable")
		return nil
	}

	origin := s.reg.Origin()
	far := s.reg.FarTerminus()

	var out []Vehicle
	for _, e := range fm.GetEntity() {
		vp := e.GetVehicle()
		if vp == nil {
			continue
		}
		trip := vp.GetTrip()
		label := vp.GetVehicle().GetLabel()
		if label == "" {
			label = trip.GetTripId()
		}
		if label == "" {
			continue
		}

		// direction_id 0 leaves the line origin, 1 returns to it
		v := Vehicle{
			TrainNumber:     label,
			LastStationCode: vp.GetStopId(),
		}
		if trip.GetDirectionId() == 0 {
			v.OriginCode, v.DestinationCode = origin.LiveID, far.LiveID
		} else {
			v.OriginCode, v.DestinationCode = far.LiveID, origin.LiveID
		}
		out = append(out, v)
	}
	return out
}

func (s *GTFSRTSource) fetchFeed(ctx context.Context, url string) (*gtfsrtpb.FeedMessage, error) {
	if url == "" {
		return &gtfsrtpb.FeedMessage{}, nil
	}
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return nil, err
	}
	resp, err := s.httpClient.Do(req)
	if err != nil {
		return nil, err
	}
	defer func() { _ = resp.Body.Close() }()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("HTTP %d from %s", resp.StatusCode, url)
	}
	b, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, err
	}
	var fm gtfsrtpb.FeedMessage
	if err := proto.Unmarshal(b, &fm); err != nil {
		return nil, fmt.Errorf("decode gtfs-rt feed: %w", err)
	}
	return &fm, nil
}
