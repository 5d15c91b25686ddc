package stations

// Direction is the travel sense along the line, inferred from station
// ordering: a lower index is closer to Cais do Sodré.
type Direction int

const (
	// TowardCaisDoSodre is travel toward the line origin terminus.
	TowardCaisDoSodre Direction = iota
	// TowardCascais is travel toward the far terminus.
	TowardCascais
)

func (d Direction) String() string {
	if d == TowardCascais {
		return "toCascais"
	}
	return "toCaisDoSodre"
}

// Opposite returns the reverse travel sense.
func (d Direction) Opposite() Direction {
	if d == TowardCascais {
		return TowardCaisDoSodre
	}
	return TowardCascais
}

// Registry is the immutable station lookup table, loaded once at
// process start.
type Registry struct {
	ordered     []Station
	byUserID    map[string]int
	byLiveID    map[string]int
	byTimetable map[string]int
	legacy      map[string]string
}

// NewRegistry builds the registry for the Cascais line.
func NewRegistry() *Registry {
	r := &Registry{
		ordered:     cascaisLine,
		byUserID:    make(map[string]int, len(cascaisLine)),
		byLiveID:    make(map[string]int, len(cascaisLine)),
		byTimetable: make(map[string]int, len(cascaisLine)),
		legacy:      legacyIDs,
	}
	for i, s := range cascaisLine {
		r.byUserID[s.UserID] = i
		r.byLiveID[s.LiveID] = i
		r.byTimetable[s.TimetableID] = i
	}
	return r
}

// Resolve looks up a station by its user-facing id, remapping legacy
// identifiers first. IsLegacy reports whether the id needed remapping.
func (r *Registry) Resolve(userID string) (st Station, isLegacy, ok bool) {
	if mapped, found := r.legacy[userID]; found {
		userID = mapped
		isLegacy = true
	}
	idx, found := r.byUserID[userID]
	if !found {
		return Station{}, false, false
	}
	return r.ordered[idx], isLegacy, true
}

// ByLiveID looks up a station by its live feed node code.
func (r *Registry) ByLiveID(code string) (Station, bool) {
	idx, ok := r.byLiveID[code]
	if !ok {
		return Station{}, false
	}
	return r.ordered[idx], true
}

// Index returns the line position of a station, or -1 if it does not
// belong to the line.
func (r *Registry) Index(userID string) int {
	if mapped, found := r.legacy[userID]; found {
		userID = mapped
	}
	if idx, ok := r.byUserID[userID]; ok {
		return idx
	}
	return -1
}

// IndexByLiveID returns the line position for a live feed node code,
// or -1 when unknown.
func (r *Registry) IndexByLiveID(code string) int {
	if idx, ok := r.byLiveID[code]; ok {
		return idx
	}
	return -1
}

// All returns the stations in line order. Callers must not mutate the
// returned slice.
func (r *Registry) All() []Station {
	return r.ordered
}

// Len returns the number of stations on the line.
func (r *Registry) Len() int { return len(r.ordered) }

// Origin returns the line origin terminus (Cais do Sodré).
func (r *Registry) Origin() Station { return r.ordered[0] }

// FarTerminus returns the far terminus (Cascais).
func (r *Registry) FarTerminus() Station { return r.ordered[len(r.ordered)-1] }

// Terminus returns the terminus a train travelling in d is headed to.
func (r *Registry) Terminus(d Direction) Station {
	if d == TowardCascais {
		return r.FarTerminus()
	}
	return r.Origin()
}

// DirectionFrom returns the travel sense implied by leaving st. A
// train at the origin can only head toward Cascais and vice versa; for
// intermediate stations the default sense is toward the origin, which
// is what the widget's single-direction view has always shown.
func (r *Registry) DirectionFrom(st Station) Direction {
	if st.UserID == r.Origin().UserID {
		return TowardCascais
	}
	return TowardCaisDoSodre
}

// DirectionBetween computes the travel sense from one line index to
// another. Indices must differ.
func DirectionBetween(fromIdx, toIdx int) Direction {
	if toIdx > fromIdx {
		return TowardCascais
	}
	return TowardCaisDoSodre
}

// OffsetFromDirectionOrigin returns a station's cumulative minutes
// from the terminus a direction-d service departs from.
func (r *Registry) OffsetFromDirectionOrigin(st Station, d Direction) int {
	if d == TowardCascais {
		return st.OffsetMinutes
	}
	return r.FarTerminus().OffsetMinutes - st.OffsetMinutes
}
