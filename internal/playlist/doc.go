// Package playlist assembles the ordered video playlist for one scheduled
// workout and coaching archetype.
//
// A build is a single synchronous computation: prefetch candidate clips with
// one batched catalog query, then walk the day's structure (intro, exercise
// blocks, periodic motivation, weekly closing, outro) resolving each segment
// through the archetype fallback ladder and the storage adapter. All random
// choices come from one generator seeded from workout identity, so identical
// inputs always produce identical playlists.
//
// Missing content never fails a build. Unresolvable required segments raise
// error-level signals and metrics; optional ones log at debug. The worst
// case is a short or empty playlist, not an error.
package playlist
