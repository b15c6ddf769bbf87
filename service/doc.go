// Package service exposes the address database over HTTP.
//
// The server answers two queries:
//
//	GET /lookup?pc=<postal code>&n=<house number>
//	GET /suggest?wp=<partial locality name>
//
// Lookup resolves a postal code and house number to a public space and
// locality; suggest completes partial or misspelled locality names. Every
// response is JSON, errors included:
//
//	200 {"pr":"Stationsstraat","wp":"Amsterdam"}
//	404 {"error":"address not found"}
//
// The root path is an alias for /lookup, so the service can run behind a
// path-stripping proxy. /health reports liveness, /metrics exposes
// Prometheus counters.
//
// Request logging and panic recovery run through zap. WithQuiet silences
// the per-request log lines for deployments that log at the edge; recovery
// stays on regardless.
package service
