package cptravel

import "encoding/json"

// ItineraryRecord is one upcoming train in whichever shape the
// gateway happened to answer with.
type ItineraryRecord struct {
	TrainNumber      json.Number `json:"trainNumber"`
	DepartureTime    string      `json:"departureTime"`
	ArrivalTime      string      `json:"arrivalTime"`
	TrainDestination Node        `json:"trainDestination"`
	Platform         string      `json:"platform"`
	Delay            int         `json:"delay"`
}

// Node is a station reference as the gateway emits it.
type Node struct {
	Code        string `json:"code"`
	Designation string `json:"designation"`
}

// Time returns the record's departure time, falling back to the
// arrival time when the departure is absent (terminal stops).
func (r ItineraryRecord) Time() string {
	if r.DepartureTime != "" {
		return r.DepartureTime
	}
	return r.ArrivalTime
}

// envelope covers every response shape the gateway has been observed
// to produce for itinerary-like queries.
type envelope struct {
	Itineraries []ItineraryRecord `json:"itineraries"`
	Data        struct {
		Itineraries []ItineraryRecord `json:"itineraries"`
	} `json:"data"`
	Trains     []ItineraryRecord `json:"trains"`
	NextTrains []ItineraryRecord `json:"nextTrains"`
}
