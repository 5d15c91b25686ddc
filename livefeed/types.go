package livefeed

// Vehicle is a normalised real-time position/delay report for one
// in-service train.
type Vehicle struct {
	TrainNumber     string
	OriginCode      string
	DestinationCode string
	LastStationCode string
	DelaySeconds    int
	Status          string
}

// StatusCompleted marks a vehicle that has finished its run; such
// vehicles are excluded from matching.
const StatusCompleted = "COMPLETED"

// rawFeed mirrors the JSON vehicles endpoint payload.
type rawFeed struct {
	Vehicles []rawVehicle `json:"vehicles"`
}

type rawVehicle struct {
	TrainNumber int64   `json:"trainNumber"`
	Service     rawRef  `json:"service"`
	Origin      rawNode `json:"origin"`
	Destination rawNode `json:"destination"`
	LastStation rawNode `json:"lastStation"`
	Status      string  `json:"status"`
	Delay       int     `json:"delay"`
}

type rawRef struct {
	Code string `json:"code"`
}

type rawNode struct {
	Code        string `json:"code"`
	Designation string `json:"designation"`
}
