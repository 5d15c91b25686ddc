// Package gtfsfeed loads the operator's published GTFS extract from
// disk and answers per-station schedule queries from it. It is an
// alternate, offline data source: the reconciliation engine does not
// consult it, but the same queries the engine answers from its static
// tables can be answered from a GTFS drop for ad-hoc tooling.
package gtfsfeed
