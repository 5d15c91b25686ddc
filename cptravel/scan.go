package cptravel

import (
	"context"
	"fmt"
	"net/http"
)

// ProbeResult is the outcome of a single probe attempt, for the scan
// diagnostics command.
type ProbeResult struct {
	Method    string
	Path      string
	HeaderSet string
	Status    int
	Records   int
	Err       error
}

// Success reports whether this probe found a usable body.
func (p ProbeResult) Success() bool {
	return p.Err == nil && p.Status >= 200 && p.Status < 300 && p.Records > 0
}

// Scan walks the full probe matrix, recording the outcome of every
// attempt, and stops at the first combination that answers with
// usable records. Intended for the `probe` diagnostics command.
func (c *Client) Scan(ctx context.Context, fromID, toID, date string) []ProbeResult {
	var results []ProbeResult
	for _, hs := range c.headerSets {
		for _, p := range probes {
			path := fmt.Sprintf(p.pathFmt, fromID, toID, date)
			methods := []string{http.MethodGet}
			if p.search {
				methods = append(methods, http.MethodPost)
			}
			for _, method := range methods {
				res := c.scanOne(ctx, method, path, p, hs, fromID, toID, date)
				results = append(results, res)
				if res.Success() {
					return results
				}
			}
		}
	}
	return results
}

func (c *Client) scanOne(ctx context.Context, method, path string, p probe, hs HeaderSet, fromID, toID, date string) ProbeResult {
	res := ProbeResult{Method: method, Path: path, HeaderSet: hs.Name}
	var body map[string]string
	if method == http.MethodPost {
		body = map[string]string{"from": fromID, "to": toID, "date": date}
	}
	recs, status, err := c.attempt(ctx, method, path, body, hs)
	res.Status = status
	res.Err = err
	res.Records = len(recs)
	return res
}
