// Package engine is the schedule reconciliation core. Given a station
// and an optional destination it drives the three-tier fallback
// (live vehicle positions, the official travel API, the static
// tables), matches live vehicles onto schedule slots, computes stable
// minutes-to-departure values, and filters, orders and deduplicates
// the final list.
//
// Each tracked slot moves through Scheduled -> Matched -> NearArrival
// (frozen) -> Departed. The NearArrival transition is one-way for the
// process lifetime: once a slot's undelayed countdown reaches the
// freeze threshold its disappearance instant is pinned, so the row
// cannot jump backward on screen when a later delay report arrives.
package engine
