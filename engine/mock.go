package engine

import (
	"hash/fnv"
	"math/rand"
	"strconv"
	"time"

	"github.com/linhadecascais/nexttrain/stations"
)

// mockDepartures is the floor of the fallback chain: a synthetic but
// well-formed list so the caller never sees an empty or error
// response. The sequence is deterministic for a given station and
// ten-minute window; delays are pseudo-random and small.
func (e *Engine) mockDepartures(st stations.Station, dir stations.Direction, now time.Time, pageSize int) []DepartureResult {
	terminus := e.reg.Terminus(dir)
	rng := rand.New(rand.NewSource(mockSeed(st, dir, now)))

	base := 19000 + rng.Intn(500)
	rows := make([]DepartureResult, 0, pageSize)
	for i := 0; i < pageSize; i++ {
		schedDelta := 3 + i*8 + rng.Intn(3)
		delay := 0
		if rng.Intn(3) == 0 {
			delay = 1 + rng.Intn(3)
		}
		at := now.Add(time.Duration(schedDelta) * time.Minute)
		num := strconv.Itoa(base + i*2)
		rows = append(rows, DepartureResult{
			TrainNumber:        &num,
			ScheduledTime:      at.Format("15:04"),
			MinutesToDeparture: schedDelta + delay,
			DelayMinutes:       delay,
			Destination:        terminus.Name,
			IsDelayed:          delay > 0,
			destCode:           terminus.LiveID,
		})
	}
	return rows
}

// mockSeed keeps the synthetic sequence stable across requests in the
// same ten-minute window so the UI does not reshuffle on refresh.
func mockSeed(st stations.Station, dir stations.Direction, now time.Time) int64 {
	h := fnv.New64a()
	_, _ = h.Write([]byte(st.UserID))
	_, _ = h.Write([]byte(dir.String()))
	return int64(h.Sum64()) ^ now.Unix()/600
}
