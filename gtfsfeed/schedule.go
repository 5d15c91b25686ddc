package gtfsfeed

import (
	"sort"
	"strings"
	"time"

	"github.com/linhadecascais/nexttrain/stations"
)

// Route ids in the operator's extract encode the direction as an
// origin-destination node pair.
const (
	routeMarkerToCascais = "94_69005-94_69260"
	routeMarkerToCais    = "94_69260-94_69005"
)

// ScheduleFor returns the calls at a stop for one service date,
// optionally restricted to a direction, sorted by departure time.
// Trip ids in this extract embed the service date as YYYYMMDD.
func (f *Feed) ScheduleFor(stopID string, date time.Time, dir *stations.Direction) []Departure {
	dateStr := date.Format("20060102")

	marker := ""
	if dir != nil {
		if *dir == stations.TowardCascais {
			marker = routeMarkerToCascais
		} else {
			marker = routeMarkerToCais
		}
	}

	seen := map[string]bool{}
	var out []Departure
	for _, st := range f.stopTimesByStop[stopID] {
		if !strings.Contains(st.TripID, dateStr) || seen[st.TripID] {
			continue
		}
		trip, ok := f.Trips[st.TripID]
		if !ok {
			continue
		}
		route := f.Routes[trip.RouteID]
		if marker != "" && !strings.Contains(route.RouteID, marker) {
			continue
		}
		seen[st.TripID] = true

		name := route.RouteLongName
		if name == "" {
			name = route.RouteShortName
		}
		out = append(out, Departure{
			TripID:        st.TripID,
			DepartureTime: st.DepartureTime,
			ArrivalTime:   st.ArrivalTime,
			Route:         name,
			Destination:   trip.TripHeadsign,
		})
	}

	sort.SliceStable(out, func(i, j int) bool {
		return timeToSeconds(out[i].DepartureTime) < timeToSeconds(out[j].DepartureTime)
	})
	return out
}

// NextTrains returns the first limit departures at or after hhmmss.
func (f *Feed) NextTrains(stopID string, date time.Time, hhmmss string, limit int) []Departure {
	nowSecs := timeToSeconds(hhmmss)
	var out []Departure
	for _, d := range f.ScheduleFor(stopID, date, nil) {
		if timeToSeconds(d.DepartureTime) < nowSecs {
			continue
		}
		out = append(out, d)
		if len(out) >= limit {
			break
		}
	}
	return out
}

// timeToSeconds parses GTFS "HH:MM:SS" (hours may exceed 23 for
// after-midnight trips) into seconds since service day start.
func timeToSeconds(t string) int {
	var h, m, s int
	parts := strings.Split(t, ":")
	if len(parts) < 2 {
		return 0
	}
	h = atoi(parts[0])
	m = atoi(parts[1])
	if len(parts) > 2 {
		s = atoi(parts[2])
	}
	return h*3600 + m*60 + s
}

func atoi(s string) int {
	n := 0
	for _, r := range s {
		if r < '0' || r > '9' {
			return n
		}
		n = n*10 + int(r-'0')
	}
	return n
}
