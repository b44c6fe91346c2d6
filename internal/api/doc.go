// Package api exposes the playlist engine over HTTP.
//
// The server is a thin gin surface: a health probe, the playlist build
// endpoint, and a counters snapshot. Requests carry the workout and
// archetype in the body; nothing is persisted. When a bearer token is
// configured, every /v1 route requires it.
package api
