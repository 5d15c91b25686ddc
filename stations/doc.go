// Package stations holds the static Cascais line station registry.
//
// The line is an ordered sequence of stations; the order encodes the
// line topology and is the basis for all direction inference. Each
// station carries three identifiers because the upstream data sources
// never agreed on one namespace: the user-facing id served to the
// frontend, the node code used by the live position feed, and the
// numeric id used by the CP travel API.
package stations
