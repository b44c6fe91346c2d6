package playlist

import (
	"context"

	"fitcoach/internal/catalog"
	"fitcoach/internal/config"
)

// Catalog is the read-only clip catalog the engine queries. *catalog.Store
// satisfies it; tests substitute fakes.
type Catalog interface {
	QueryClips(ctx context.Context, f catalog.Filter) ([]catalog.Clip, error)
	ExercisesByID(ctx context.Context, ids []catalog.ExerciseID) (map[catalog.ExerciseID]catalog.Exercise, error)
}

// Storage answers existence and playback questions for clips.
// *media.Registry satisfies it.
type Storage interface {
	Exists(ctx context.Context, clip catalog.Clip) bool
	PlaybackURL(ctx context.Context, clip catalog.Clip) string
}

// Options carries the engine tunables. Zero values are replaced with
// repository defaults by normalize, so a zero Options is usable in tests.
type Options struct {
	MaxCandidatesPerKey int
	StorageRetryLimit   int
	MistakeProbability  float64
	MotivationEvery     int
	FallbackOrder       map[catalog.Archetype][]catalog.Archetype
}

// OptionsFromConfig maps validated configuration onto engine options.
func OptionsFromConfig(cfg *config.Config) Options {
	ladders := make(map[catalog.Archetype][]catalog.Archetype, len(cfg.Playlist.FallbackOrder))
	for archetype, ladder := range cfg.Playlist.FallbackOrder {
		converted := make([]catalog.Archetype, len(ladder))
		for i, entry := range ladder {
			converted[i] = catalog.Archetype(entry)
		}
		ladders[catalog.Archetype(archetype)] = converted
	}
	return Options{
		MaxCandidatesPerKey: cfg.Playlist.MaxCandidatesPerKey,
		StorageRetryLimit:   cfg.Playlist.StorageRetryLimit,
		MistakeProbability:  cfg.Playlist.MistakeProbability,
		MotivationEvery:     cfg.Playlist.MotivationEvery,
		FallbackOrder:       ladders,
	}
}

func (o Options) normalized() Options {
	if o.MaxCandidatesPerKey <= 0 {
		o.MaxCandidatesPerKey = 5
	}
	if o.StorageRetryLimit <= 0 {
		o.StorageRetryLimit = 3
	}
	if o.MotivationEvery <= 0 {
		o.MotivationEvery = 3
	}
	return o
}

// ladderFor returns the fallback ladder for an archetype, primary first. An
// archetype without a configured ladder falls back to itself alone.
func (o Options) ladderFor(archetype catalog.Archetype) []catalog.Archetype {
	if ladder, ok := o.FallbackOrder[archetype]; ok && len(ladder) > 0 {
		return ladder
	}
	return []catalog.Archetype{archetype}
}
