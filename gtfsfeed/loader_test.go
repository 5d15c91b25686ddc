package gtfsfeed

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/linhadecascais/nexttrain/stations"
)

func writeExtract(t *testing.T) string {
	t.Helper()
	dir := t.TempDir()
	files := map[string]string{
		"stops.txt": `stop_id,stop_name
94_69005,Cais do Sodre
94_69179,Oeiras
94_69260,Cascais
`,
		"routes.txt": `route_id,route_short_name,route_long_name
1_94_69005-94_69260,,Cais do Sodre - Cascais
1_94_69260-94_69005,,Cascais - Cais do Sodre
`,
		"trips.txt": `route_id,service_id,trip_id,trip_headsign
1_94_69005-94_69260,wk,t1_20260826,Cascais
1_94_69005-94_69260,wk,t2_20260826,Cascais
1_94_69260-94_69005,wk,t3_20260826,Cais do Sodre
1_94_69005-94_69260,wk,t4_20260827,Cascais
`,
		// t2 has a trailing short record on purpose
		"stop_times.txt": `trip_id,arrival_time,departure_time,stop_id,stop_sequence
t1_20260826,08:20:00,08:21:00,94_69179,10
t1_20260826,08:40:00,08:40:00,94_69260,17
t2_20260826,09:00:00,09:01:00,94_69179,10
t3_20260826,08:30:00,08:31:00,94_69179,8
t4_20260827,08:20:00,08:21:00,94_69179,10
t2_20260826,09:20:00,09:20:00,94_69260
`,
	}
	for name, body := range files {
		if err := os.WriteFile(filepath.Join(dir, name), []byte(body), 0o644); err != nil {
			t.Fatal(err)
		}
	}
	return dir
}

func TestLoadDir(t *testing.T) {
	feed, err := LoadDir(writeExtract(t))
	if err != nil {
		t.Fatal(err)
	}
	if len(feed.Stops) != 3 || len(feed.Routes) != 2 || len(feed.Trips) != 4 {
		t.Errorf("loaded %d stops, %d routes, %d trips", len(feed.Stops), len(feed.Routes), len(feed.Trips))
	}
	if len(feed.StopTimes) != 6 {
		t.Errorf("loaded %d stop times, want 6", len(feed.StopTimes))
	}
	if feed.Stops["94_69179"].StopName != "Oeiras" {
		t.Errorf("stop name = %q", feed.Stops["94_69179"].StopName)
	}
}

func TestLoadDirMissingFile(t *testing.T) {
	dir := t.TempDir()
	if _, err := LoadDir(dir); err == nil {
		t.Fatal("expected an error for an empty directory")
	}
}

func TestScheduleFor(t *testing.T) {
	feed, err := LoadDir(writeExtract(t))
	if err != nil {
		t.Fatal(err)
	}
	date := time.Date(2026, 8, 26, 0, 0, 0, 0, time.UTC)

	all := feed.ScheduleFor("94_69179", date, nil)
	if len(all) != 3 {
		t.Fatalf("expected 3 departures, got %d: %+v", len(all), all)
	}
	// sorted by departure time, other service dates excluded
	wantOrder := []string{"08:21:00", "08:31:00", "09:01:00"}
	for i, d := range all {
		if d.DepartureTime != wantOrder[i] {
			t.Errorf("departure %d = %s, want %s", i, d.DepartureTime, wantOrder[i])
		}
	}

	dir := stations.TowardCascais
	out := feed.ScheduleFor("94_69179", date, &dir)
	if len(out) != 2 {
		t.Fatalf("expected 2 outbound departures, got %d", len(out))
	}
	for _, d := range out {
		if d.Destination != "Cascais" {
			t.Errorf("outbound headsign = %q", d.Destination)
		}
		if d.Route != "Cais do Sodre - Cascais" {
			t.Errorf("route name = %q", d.Route)
		}
	}

	dir = stations.TowardCaisDoSodre
	in := feed.ScheduleFor("94_69179", date, &dir)
	if len(in) != 1 || in[0].TripID != "t3_20260826" {
		t.Fatalf("inbound = %+v", in)
	}
}

func TestNextTrains(t *testing.T) {
	feed, err := LoadDir(writeExtract(t))
	if err != nil {
		t.Fatal(err)
	}
	date := time.Date(2026, 8, 26, 0, 0, 0, 0, time.UTC)

	got := feed.NextTrains("94_69179", date, "08:30:00", 5)
	if len(got) != 2 {
		t.Fatalf("expected 2 departures after 08:30, got %d", len(got))
	}
	if got[0].DepartureTime != "08:31:00" || got[1].DepartureTime != "09:01:00" {
		t.Errorf("got %+v", got)
	}

	if got := feed.NextTrains("94_69179", date, "08:00:00", 1); len(got) != 1 {
		t.Errorf("limit not honoured: %d rows", len(got))
	}
}

func TestTimeToSeconds(t *testing.T) {
	tests := []struct {
		in   string
		want int
	}{
		{in: "00:00:00", want: 0},
		{in: "08:21:30", want: 30090},
		{in: "25:10:00", want: 90600}, // after-midnight trip
		{in: "08:21", want: 30060},
		{in: "bogus", want: 0},
	}
	for _, tt := range tests {
		if got := timeToSeconds(tt.in); got != tt.want {
			t.Errorf("timeToSeconds(%q) = %d, want %d", tt.in, got, tt.want)
		}
	}
}
