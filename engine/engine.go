package engine

import (
	"context"
	"math"
	"sort"
	"time"

	"github.com/sourcegraph/conc"

	"github.com/linhadecascais/nexttrain/config"
	"github.com/linhadecascais/nexttrain/cptravel"
	"github.com/linhadecascais/nexttrain/livefeed"
	"github.com/linhadecascais/nexttrain/stations"
	"github.com/linhadecascais/nexttrain/timetable"
)

// LiveSource provides current vehicle reports for the line. A source
// that cannot answer returns an empty set, never an error.
type LiveSource interface {
	FetchActive(ctx context.Context) []livefeed.Vehicle
}

// TimetableAPI is the best-effort official timetable tier. nil records
// mean the tier is unavailable.
type TimetableAPI interface {
	FetchItinerary(ctx context.Context, fromID, toID, date string) []cptravel.ItineraryRecord
}

// Options carries every reconciliation threshold. Grace and freeze
// values drifted between revisions of the service, so all of them are
// injected rather than hardcoded.
type Options struct {
	PerStationTransitMinutes int
	DirectPageSize           int
	BoardPageSize            int
	DepartureGraceMinutes    int
	FreezeThresholdMinutes   int
	MatchWindowMinutes       int
	Location                 *time.Location
}

// OptionsFromConfig resolves engine options, including the reference
// timezone, from the application configuration.
func OptionsFromConfig(cfg config.AppConfig) (Options, error) {
	loc, err := time.LoadLocation(cfg.Line.Timezone)
	if err != nil {
		return Options{}, err
	}
	return Options{
		PerStationTransitMinutes: cfg.Line.PerStationTransitMinutes,
		DirectPageSize:           cfg.Engine.DirectPageSize,
		BoardPageSize:            cfg.Engine.BoardPageSize,
		DepartureGraceMinutes:    cfg.Engine.DepartureGraceMinutes,
		FreezeThresholdMinutes:   cfg.Engine.FreezeThresholdMinutes,
		MatchWindowMinutes:       cfg.Engine.MatchWindowMinutes,
		Location:                 loc,
	}, nil
}

// Engine reconciles the three schedule tiers into one ranked list of
// upcoming departures.
type Engine struct {
	reg    *stations.Registry
	static *timetable.Provider
	live   LiveSource
	travel TimetableAPI
	frozen *DisappearanceCache
	opts   Options
	now    func() time.Time
}

// New wires up a reconciliation engine. The disappearance cache is
// injected so its lifecycle (and test isolation) stays explicit.
func New(reg *stations.Registry, static *timetable.Provider, live LiveSource, travel TimetableAPI, frozen *DisappearanceCache, opts Options) *Engine {
	if opts.Location == nil {
		opts.Location = time.Local
	}
	return &Engine{
		reg:    reg,
		static: static,
		live:   live,
		travel: travel,
		frozen: frozen,
		opts:   opts,
		now:    time.Now,
	}
}

// WithClock replaces the engine's clock. Tests only.
func (e *Engine) WithClock(now func() time.Time) *Engine {
	e.now = now
	return e
}

// slot is a single static departure projected onto this station's
// wall clock for today.
type slot struct {
	at   time.Time
	hhmm string
}

// NextTrains answers the direct station query: upcoming departures
// from stationID, optionally only those that reach toStationID.
func (e *Engine) NextTrains(ctx context.Context, stationID, toStationID string) ([]DepartureResult, error) {
	st, isLegacy, ok := e.reg.Resolve(stationID)
	if !ok {
		return nil, &InvalidStationError{ID: stationID}
	}
	now := e.now().In(e.opts.Location)

	dir := e.reg.DirectionFrom(st)
	destID := ""
	if !isLegacy && toStationID != "" {
		destID = toStationID
		stIdx := e.reg.Index(st.UserID)
		if destIdx := e.reg.Index(toStationID); destIdx != -1 && destIdx != stIdx {
			dir = stations.DirectionBetween(stIdx, destIdx)
		}
	}

	grid := e.buildGrid(st, dir, now)
	vehicles := e.live.FetchActive(ctx)

	rows := e.reconcile(st, dir, grid, vehicles, now, e.opts.DirectPageSize, destID)
	if len(rows) == 0 {
		rows = e.travelFallback(ctx, st, dir, vehicles, now, e.opts.DirectPageSize)
	}
	if len(rows) == 0 {
		rows = e.mockDepartures(st, dir, now, e.opts.DirectPageSize)
	}
	return rows, nil
}

// BoardFor answers the aggregate dual-direction view. The live fetch
// and both static grid computations run concurrently and join before
// matching begins.
func (e *Engine) BoardFor(ctx context.Context, stationID string) (*Board, error) {
	st, _, ok := e.reg.Resolve(stationID)
	if !ok {
		return nil, &InvalidStationError{ID: stationID}
	}
	now := e.now().In(e.opts.Location)

	var vehicles []livefeed.Vehicle
	var gridOut, gridIn []slot
	var wg conc.WaitGroup
	wg.Go(func() { vehicles = e.live.FetchActive(ctx) })
	wg.Go(func() { gridOut = e.buildGrid(st, stations.TowardCascais, now) })
	wg.Go(func() { gridIn = e.buildGrid(st, stations.TowardCaisDoSodre, now) })
	wg.Wait()

	size := e.opts.BoardPageSize
	board := &Board{Station: st.Name}
	board.ToCascais = e.directionRows(ctx, st, stations.TowardCascais, gridOut, vehicles, now, size)
	board.ToCaisDoSodre = e.directionRows(ctx, st, stations.TowardCaisDoSodre, gridIn, vehicles, now, size)
	return board, nil
}

func (e *Engine) directionRows(ctx context.Context, st stations.Station, dir stations.Direction, grid []slot, vehicles []livefeed.Vehicle, now time.Time, pageSize int) []DepartureResult {
	rows := e.reconcile(st, dir, grid, vehicles, now, pageSize, "")
	if len(rows) == 0 {
		rows = e.travelFallback(ctx, st, dir, vehicles, now, pageSize)
	}
	if len(rows) == 0 {
		rows = e.mockDepartures(st, dir, now, pageSize)
	}
	return rows
}

// buildGrid projects the day-appropriate static table onto this
// station: origin departure plus the station's cumulative offset.
func (e *Engine) buildGrid(st stations.Station, dir stations.Direction, now time.Time) []slot {
	times := e.static.Schedule(dir, now)
	offset := e.reg.OffsetFromDirectionOrigin(st, dir)
	grid := make([]slot, 0, len(times))
	for _, t := range times {
		at, ok := timetable.At(t, now, offset, e.opts.Location)
		if !ok {
			continue
		}
		grid = append(grid, slot{at: at, hhmm: at.Format("15:04")})
	}
	return grid
}

// reconcile runs steps 3 through 10 of the pipeline: filter and rank
// live vehicles, claim slots greedily, compute display minutes with
// the near-arrival freeze, fill with schedule-only rows, apply the
// destination filter, then order and truncate.
func (e *Engine) reconcile(st stations.Station, dir stations.Direction, grid []slot, vehicles []livefeed.Vehicle, now time.Time, pageSize int, destUserID string) []DepartureResult {
	if len(grid) == 0 {
		return nil
	}
	stIdx := e.reg.Index(st.UserID)
	terminus := e.reg.Terminus(dir)

	type candidate struct {
		v         livefeed.Vehicle
		remaining int
		delayMin  int
	}
	var cands []candidate
	for _, v := range vehicles {
		if v.Status == livefeed.StatusCompleted {
			continue
		}
		if v.DestinationCode != terminus.LiveID && v.DestinationCode != terminus.UserID {
			continue
		}
		lastIdx := e.reg.IndexByLiveID(v.LastStationCode)
		if lastIdx == -1 {
			continue
		}
		// still upstream of this station, inclusive
		if dir == stations.TowardCascais && lastIdx > stIdx {
			continue
		}
		if dir == stations.TowardCaisDoSodre && lastIdx < stIdx {
			continue
		}
		remaining := lastIdx - stIdx
		if remaining < 0 {
			remaining = -remaining
		}
		cands = append(cands, candidate{v: v, remaining: remaining, delayMin: delayMinutes(v.DelaySeconds)})
	}

	// nearest, least-delayed trains claim slots first
	sort.SliceStable(cands, func(i, j int) bool {
		if cands[i].remaining != cands[j].remaining {
			return cands[i].remaining < cands[j].remaining
		}
		return cands[i].delayMin < cands[j].delayMin
	})

	used := make([]bool, len(grid))
	matched := map[string]bool{}
	window := float64(e.opts.MatchWindowMinutes)
	var rows []DepartureResult

	for _, c := range cands {
		if matched[c.v.TrainNumber] {
			continue
		}
		best := -1
		bestAbs := 0.0
		for j, sl := range grid {
			if used[j] {
				continue
			}
			abs := math.Abs(sl.at.Sub(now).Minutes())
			if abs > window {
				continue
			}
			if best == -1 || abs < bestAbs {
				best, bestAbs = j, abs
			}
		}
		if best == -1 {
			continue
		}
		used[best] = true
		matched[c.v.TrainNumber] = true
		sl := grid[best]
		schedDelta := minutesUntil(sl.at, now)

		// physical position caps an over-long delay estimate
		mins := schedDelta + c.delayMin
		if c.remaining > 0 {
			if est := c.remaining * e.opts.PerStationTransitMinutes; est < mins {
				mins = est
			}
		}
		if mins < 0 {
			mins = 0
		}

		// near-arrival freeze: the undelayed countdown reaching the
		// threshold pins the disappearance instant once and for all
		delayed := sl.at.Add(time.Duration(c.delayMin) * time.Minute)
		var visible bool
		if schedDelta <= e.opts.FreezeThresholdMinutes {
			gone := e.frozen.SetIfAbsent(c.v.TrainNumber, sl.hhmm, delayed)
			visible = now.Before(gone)
		} else {
			visible = now.Before(delayed)
		}
		if !visible {
			continue
		}

		num := c.v.TrainNumber
		rows = append(rows, DepartureResult{
			TrainNumber:        &num,
			ScheduledTime:      sl.hhmm,
			MinutesToDeparture: mins,
			DelayMinutes:       c.delayMin,
			Destination:        e.destinationName(c.v.DestinationCode, terminus),
			IsDelayed:          c.delayMin > 0,
			destCode:           c.v.DestinationCode,
		})
	}

	// schedule-only fill for unclaimed future slots
	for j, sl := range grid {
		if len(rows) >= pageSize {
			break
		}
		if used[j] {
			continue
		}
		schedDelta := minutesUntil(sl.at, now)
		if schedDelta+e.opts.DepartureGraceMinutes <= 0 {
			continue
		}
		mins := schedDelta
		if mins < 0 {
			mins = 0
		}
		rows = append(rows, DepartureResult{
			ScheduledTime:      sl.hhmm,
			MinutesToDeparture: mins,
			Destination:        terminus.Name,
			destCode:           terminus.LiveID,
		})
	}

	if destUserID != "" {
		rows = e.filterByDestination(rows, stIdx, destUserID)
	}

	sort.SliceStable(rows, func(i, j int) bool {
		return rows[i].MinutesToDeparture < rows[j].MinutesToDeparture
	})
	if len(rows) > pageSize {
		rows = rows[:pageSize]
	}
	return rows
}

// filterByDestination drops rows whose implied destination does not
// lie on the correct side of, and at or beyond, the requested
// destination. When indices cannot be resolved it falls back to a
// terminus-code heuristic.
func (e *Engine) filterByDestination(rows []DepartureResult, startIdx int, destUserID string) []DepartureResult {
	endIdx := e.reg.Index(destUserID)
	origin, far := e.reg.Origin(), e.reg.FarTerminus()

	out := rows[:0]
	for _, r := range rows {
		destIdx := e.reg.IndexByLiveID(r.destCode)
		if destIdx == -1 {
			destIdx = e.reg.Index(r.destCode)
		}
		if startIdx != -1 && endIdx != -1 && destIdx != -1 {
			if endIdx > startIdx {
				// downstream: train must pass this station and reach the goal
				if destIdx <= startIdx || destIdx < endIdx {
					continue
				}
			} else {
				if destIdx >= startIdx || destIdx > endIdx {
					continue
				}
			}
		} else {
			// unknown ids: compare against the two line termini by code
			if destUserID == far.UserID && (r.destCode == origin.LiveID || r.destCode == origin.UserID) {
				continue
			}
			if destUserID == origin.UserID && (r.destCode == far.LiveID || r.destCode == far.UserID) {
				continue
			}
		}
		out = append(out, r)
	}
	return out
}

func (e *Engine) destinationName(code string, terminus stations.Station) string {
	if st, ok := e.reg.ByLiveID(code); ok {
		return st.Name
	}
	return terminus.Name
}

func minutesUntil(t, now time.Time) int {
	return int(math.Round(t.Sub(now).Minutes()))
}

func delayMinutes(seconds int) int {
	return int(math.Round(float64(seconds) / 60))
}
