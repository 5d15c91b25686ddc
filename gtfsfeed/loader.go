package gtfsfeed

import (
	"encoding/csv"
	"fmt"
	"io"
	"os"
	"path/filepath"

	"github.com/gocarina/gocsv"
	"github.com/rs/zerolog/log"
)

// Feed is a loaded GTFS extract, indexed for per-stop queries.
type Feed struct {
	Stops     map[string]Stop
	Routes    map[string]Route
	Trips     map[string]Trip
	Calendars map[string]Calendar
	StopTimes []StopTime

	stopTimesByStop map[string][]StopTime
}

// LoadDir reads a GTFS directory. calendar.txt is optional; the rest
// of the files are required.
func LoadDir(path string) (*Feed, error) {
	// tolerate records with missing trailing columns
	gocsv.SetCSVReader(func(in io.Reader) gocsv.CSVReader {
		r := csv.NewReader(in)
		r.FieldsPerRecord = -1
		return r
	})

	feed := &Feed{
		Stops:     map[string]Stop{},
		Routes:    map[string]Route{},
		Trips:     map[string]Trip{},
		Calendars: map[string]Calendar{},

		stopTimesByStop: map[string][]StopTime{},
	}

	var stops []Stop
	if err := readFile(filepath.Join(path, "stops.txt"), &stops); err != nil {
		return nil, err
	}
	for _, s := range stops {
		feed.Stops[s.StopID] = s
	}

	var routes []Route
	if err := readFile(filepath.Join(path, "routes.txt"), &routes); err != nil {
		return nil, err
	}
	for _, r := range routes {
		feed.Routes[r.RouteID] = r
	}

	var trips []Trip
	if err := readFile(filepath.Join(path, "trips.txt"), &trips); err != nil {
		return nil, err
	}
	for _, t := range trips {
		feed.Trips[t.TripID] = t
	}

	if err := readFile(filepath.Join(path, "stop_times.txt"), &feed.StopTimes); err != nil {
		return nil, err
	}
	for _, st := range feed.StopTimes {
		feed.stopTimesByStop[st.StopID] = append(feed.stopTimesByStop[st.StopID], st)
	}

	var calendars []Calendar
	if err := readFile(filepath.Join(path, "calendar.txt"), &calendars); err != nil {
		log.Debug().Str("path", path).Msg("calendar.txt absent, skipping service day filtering")
	}
	for _, c := range calendars {
		feed.Calendars[c.ServiceID] = c
	}

	log.Info().
		Int("stops", len(feed.Stops)).
		Int("trips", len(feed.Trips)).
		Int("stopTimes", len(feed.StopTimes)).
		Msg("gtfs extract loaded")
	return feed, nil
}

func readFile(path string, dest interface{}) error {
	f, err := os.Open(path)
	if err != nil {
		return fmt.Errorf("open %s: %w", filepath.Base(path), err)
	}
	defer func() { _ = f.Close() }()

	if err := gocsv.Unmarshal(f, dest); err != nil {
		return fmt.Errorf("parse %s: %w", filepath.Base(path), err)
	}
	return nil
}
