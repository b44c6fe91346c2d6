// Package catalog defines the exercise and video clip data model and the
// SQLite-backed read catalog the playlist engine queries.
//
// The Store manages database connections, schema initialization, the batched
// clip query used for candidate prefetch, and the import helpers the CLI uses
// to load manifests. Clip locators are a tagged union keyed by storage
// provider so a clip can never carry locator data for a provider other than
// its own.
//
// The engine treats the catalog as read-only; only the import path writes.
// Schema changes bump the version in schema.go.
package catalog
