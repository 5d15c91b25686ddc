package engine

import (
	"context"
	"sort"
	"strings"
	"time"

	"github.com/linhadecascais/nexttrain/livefeed"
	"github.com/linhadecascais/nexttrain/stations"
	"github.com/linhadecascais/nexttrain/timetable"
)

// travelFallback is the second tier: ask the official travel API for
// the station's itinerary and merge in any live delay corrections by
// train number. Returns nil when the gateway yields nothing usable.
func (e *Engine) travelFallback(ctx context.Context, st stations.Station, dir stations.Direction, vehicles []livefeed.Vehicle, now time.Time, pageSize int) []DepartureResult {
	if e.travel == nil {
		return nil
	}
	terminus := e.reg.Terminus(dir)
	recs := e.travel.FetchItinerary(ctx, st.TimetableID, terminus.TimetableID, now.Format("2006-01-02"))
	if len(recs) == 0 {
		return nil
	}

	liveDelay := map[string]int{}
	for _, v := range vehicles {
		if v.Status == livefeed.StatusCompleted {
			continue
		}
		liveDelay[v.TrainNumber] = delayMinutes(v.DelaySeconds)
	}

	stIdx := e.reg.Index(st.UserID)
	seen := map[string]bool{}
	var rows []DepartureResult
	for _, rec := range recs {
		num := rec.TrainNumber.String()
		if num == "" || seen[num] {
			continue
		}
		hhmm := normalizeHHMM(rec.Time())
		at, ok := timetable.At(hhmm, now, 0, e.opts.Location)
		if !ok {
			continue
		}
		if !e.headedBeyond(dir, stIdx, rec.TrainDestination.Code) {
			continue
		}

		delay := rec.Delay
		if d, ok := liveDelay[num]; ok {
			delay = d
		}
		mins := minutesUntil(at, now) + delay
		if mins+e.opts.DepartureGraceMinutes < 0 {
			continue
		}
		if mins < 0 {
			mins = 0
		}
		dest := rec.TrainDestination.Designation
		if dest == "" {
			dest = "Unknown"
		}
		seen[num] = true
		n := num
		rows = append(rows, DepartureResult{
			TrainNumber:        &n,
			ScheduledTime:      hhmm,
			MinutesToDeparture: mins,
			DelayMinutes:       delay,
			Destination:        dest,
			IsDelayed:          delay > 0,
			Platform:           strings.TrimSpace(rec.Platform),
			destCode:           rec.TrainDestination.Code,
		})
	}

	sort.SliceStable(rows, func(i, j int) bool {
		return rows[i].MinutesToDeparture < rows[j].MinutesToDeparture
	})
	if len(rows) > pageSize {
		rows = rows[:pageSize]
	}
	return rows
}

// headedBeyond reports whether a destination code lies beyond stIdx in
// the requested direction. Unresolvable codes are kept: better a
// spurious row than a silently dropped train.
func (e *Engine) headedBeyond(dir stations.Direction, stIdx int, destCode string) bool {
	if destCode == "" {
		return true
	}
	destIdx := e.reg.IndexByLiveID(destCode)
	if destIdx == -1 {
		destIdx = e.reg.Index(destCode)
	}
	if destIdx == -1 {
		return true
	}
	if dir == stations.TowardCascais {
		return destIdx > stIdx
	}
	return destIdx < stIdx
}

// normalizeHHMM clamps gateway times like "08:15:00" down to "HH:MM".
func normalizeHHMM(t string) string {
	if len(t) > 5 {
		return t[:5]
	}
	return t
}
