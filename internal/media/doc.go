// Package media abstracts the storage backends that hold video clip media.
//
// A Storage answers two questions about a clip: does its media exist, and
// what URL plays it. The Registry routes each clip to the implementation for
// its locator type: bucket storage fronted by a CDN (optionally with signed
// URLs and HeadObject verification), a hosted HLS streaming service, or the
// unimplemented external-URL variant.
//
// Existence checks never return errors; a backend failure or timeout reads
// as "does not exist" so the playlist engine can fall back instead of
// failing the request.
package media
