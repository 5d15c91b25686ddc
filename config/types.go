package config

// ServerConfig contains HTTP server configuration
type ServerConfig struct {
	Port int `yaml:"port" validate:"gt=0"`
}

// LineConfig describes the rail line this service answers for
type LineConfig struct {
	ServiceCode              string `yaml:"serviceCode"`
	Timezone                 string `yaml:"timezone"`
	PerStationTransitMinutes int    `yaml:"perStationTransitMinutes" validate:"gte=0"`
}

// LiveFeedConfig contains live vehicle position feed configuration.
// Source selects the feed flavour: "vehicles" for the JSON vehicles
// endpoint, "gtfsrt" for a GTFS-Realtime VehiclePositions feed.
type LiveFeedConfig struct {
	Source              string `yaml:"source" validate:"omitempty,oneof=vehicles gtfsrt"`
	VehiclesURL         string `yaml:"vehiclesURL" validate:"omitempty,url"`
	VehiclePositionsURL string `yaml:"vehiclePositionsURL" validate:"omitempty,url"`
	TimeoutMS           int    `yaml:"timeoutMS" validate:"gte=0"`
}

// TravelAPIConfig contains the official timetable API gateway configuration
type TravelAPIConfig struct {
	BaseURL       string `yaml:"baseURL" validate:"omitempty,url"`
	APIKey        string `yaml:"apiKey"`
	ConnectID     string `yaml:"connectID"`
	ConnectSecret string `yaml:"connectSecret"`
	TimeoutMS     int    `yaml:"timeoutMS" validate:"gte=0"`
}

// EngineConfig contains the reconciliation thresholds. The grace and
// freeze values differed between historical revisions of the service,
// so they are configuration rather than constants.
type EngineConfig struct {
	DirectPageSize         int `yaml:"directPageSize" validate:"gte=0"`
	BoardPageSize          int `yaml:"boardPageSize" validate:"gte=0"`
	DepartureGraceMinutes  int `yaml:"departureGraceMinutes" validate:"gte=0"`
	FreezeThresholdMinutes int `yaml:"freezeThresholdMinutes" validate:"gte=0"`
	MatchWindowMinutes     int `yaml:"matchWindowMinutes" validate:"gte=0"`
}

// GTFSConfig points at an extracted GTFS directory used by the offline
// schedule source
type GTFSConfig struct {
	Path string `yaml:"path"`
}

// AppConfig is the root configuration structure
type AppConfig struct {
	Server    ServerConfig    `yaml:"server" validate:"required"`
	Line      LineConfig      `yaml:"line"`
	LiveFeed  LiveFeedConfig  `yaml:"liveFeed"`
	TravelAPI TravelAPIConfig `yaml:"travelAPI"`
	Engine    EngineConfig    `yaml:"engine"`
	GTFS      GTFSConfig      `yaml:"gtfs"`
}
