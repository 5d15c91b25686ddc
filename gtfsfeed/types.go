package gtfsfeed

// GTFS file records, one struct per upstream txt file. Only the
// columns the schedule queries need are mapped.

type Stop struct {
	StopID   string `csv:"stop_id"`
	StopName string `csv:"stop_name"`
}

type Route struct {
	RouteID        string `csv:"route_id"`
	RouteShortName string `csv:"route_short_name"`
	RouteLongName  string `csv:"route_long_name"`
}

type Trip struct {
	TripID       string `csv:"trip_id"`
	RouteID      string `csv:"route_id"`
	ServiceID    string `csv:"service_id"`
	TripHeadsign string `csv:"trip_headsign"`
}

type StopTime struct {
	TripID        string `csv:"trip_id"`
	StopID        string `csv:"stop_id"`
	ArrivalTime   string `csv:"arrival_time"`
	DepartureTime string `csv:"departure_time"`
	StopSequence  int    `csv:"stop_sequence"`
}

type Calendar struct {
	ServiceID string `csv:"service_id"`
	Monday    int    `csv:"monday"`
	Tuesday   int    `csv:"tuesday"`
	Wednesday int    `csv:"wednesday"`
	Thursday  int    `csv:"thursday"`
	Friday    int    `csv:"friday"`
	Saturday  int    `csv:"saturday"`
	Sunday    int    `csv:"sunday"`
	StartDate string `csv:"start_date"`
	EndDate   string `csv:"end_date"`
}

// Departure is one scheduled call at a stop, resolved against its
// trip and route.
type Departure struct {
	TripID        string
	DepartureTime string
	ArrivalTime   string
	Route         string
	Destination   string
}
