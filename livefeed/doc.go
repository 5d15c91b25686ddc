// Package livefeed fetches current vehicle positions and delays for
// the line. A failed or malformed fetch yields an empty set for that
// request cycle, never an error: live data is the best tier of truth
// but the engine must keep answering without it.
//
// Two feed flavours are supported: the operator's JSON vehicles
// endpoint and a GTFS-Realtime feed pair (trip updates plus vehicle
// positions), both normalised onto the same Vehicle type.
package livefeed
