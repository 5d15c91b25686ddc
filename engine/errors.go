package engine

import "fmt"

// InvalidStationError reports a missing or unresolvable user-facing
// station id. It is the only engine failure surfaced to callers;
// upstream outages degrade to the next tier instead.
type InvalidStationError struct {
	ID string
}

func (e *InvalidStationError) Error() string {
	if e.ID == "" {
		return "station id required"
	}
	return fmt.Sprintf("unknown station id %q", e.ID)
}
