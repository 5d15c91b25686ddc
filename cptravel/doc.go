// Package cptravel talks to the official CP travel API gateway.
//
// The gateway's authentication and routing are undocumented and
// unstable, so the client probes a fixed ordered list of endpoint and
// header-set combinations and stops at the first one that returns a
// usable JSON body. Total failure is an expected outcome and is
// reported as nil, not as an error: the reconciliation engine treats
// this tier as best-effort.
package cptravel
