package engine

// DepartureResult is one row of the answer to "when is the next
// train". A nil TrainNumber marks a schedule-only projection with no
// live or timetable-API confirmation behind it.
type DepartureResult struct {
	TrainNumber        *string `json:"trainNr"`
	ScheduledTime      string  `json:"scheduledTime"`
	MinutesToDeparture int     `json:"minutesToDeparture"`
	DelayMinutes       int     `json:"delayMinutes"`
	Destination        string  `json:"destination"`
	IsDelayed          bool    `json:"isDelayed"`
	Platform           string  `json:"platform,omitempty"`

	// destCode is the raw upstream destination code, kept for the
	// destination reachability filter and dropped from the wire format.
	destCode string
}

// Board is the aggregate dual-direction view for one station.
type Board struct {
	Station       string            `json:"station"`
	ToCascais     []DepartureResult `json:"toCascais"`
	ToCaisDoSodre []DepartureResult `json:"toCaisDoSodre"`
}
