package timetable

import (
	"sort"
	"time"

	"github.com/linhadecascais/nexttrain/stations"
)

// Provider serves day-of-week aware departure tables per direction.
type Provider struct{}

// NewProvider returns the static timetable provider.
func NewProvider() *Provider { return &Provider{} }

// Schedule returns the ordered, deduplicated list of "HH:MM" departure
// times from the direction's origin terminus for the given date. On
// weekdays the peak overlay is unioned in; on weekends only the daily
// table applies.
func (p *Provider) Schedule(d stations.Direction, date time.Time) []string {
	var daily, weekday []string
	if d == stations.TowardCascais {
		daily, weekday = toCascaisDaily, toCascaisWeekday
	} else {
		daily, weekday = toCaisDaily, toCaisWeekday
	}

	times := daily
	if isWeekday(date) {
		times = append(append([]string{}, daily...), weekday...)
	}
	return dedupeSorted(times)
}

func isWeekday(date time.Time) bool {
	wd := date.Weekday()
	return wd != time.Saturday && wd != time.Sunday
}

// dedupeSorted sorts HH:MM strings by time of day and removes
// duplicates. Lexicographic order matches chronological order for
// zero-padded HH:MM.
func dedupeSorted(times []string) []string {
	out := append([]string{}, times...)
	sort.Strings(out)
	dst := out[:0]
	var prev string
	for _, t := range out {
		if t == prev {
			continue
		}
		dst = append(dst, t)
		prev = t
	}
	return dst
}

// MinutesOfDay parses an "HH:MM" string into minutes since midnight.
// Malformed values report ok=false.
func MinutesOfDay(hhmm string) (int, bool) {
	if len(hhmm) != 5 || hhmm[2] != ':' {
		return 0, false
	}
	h := int(hhmm[0]-'0')*10 + int(hhmm[1]-'0')
	m := int(hhmm[3]-'0')*10 + int(hhmm[4]-'0')
	if hhmm[0] < '0' || hhmm[0] > '9' || hhmm[1] < '0' || hhmm[1] > '9' ||
		hhmm[3] < '0' || hhmm[3] > '9' || hhmm[4] < '0' || hhmm[4] > '9' {
		return 0, false
	}
	if h > 23 || m > 59 {
		return 0, false
	}
	return h*60 + m, true
}

// At projects an "HH:MM" departure onto a concrete instant on the
// given day, shifted by offsetMinutes of travel from the direction's
// origin terminus.
func At(hhmm string, day time.Time, offsetMinutes int, loc *time.Location) (time.Time, bool) {
	mins, ok := MinutesOfDay(hhmm)
	if !ok {
		return time.Time{}, false
	}
	base := time.Date(day.Year(), day.Month(), day.Day(), 0, 0, 0, 0, loc)
	return base.Add(time.Duration(mins+offsetMinutes) * time.Minute), true
}
