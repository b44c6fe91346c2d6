package playlist

import (
	"context"
	"log/slog"

	"fitcoach/internal/catalog"
	"fitcoach/internal/logging"
)

// resolvedClip pairs a chosen clip with its playback URL.
type resolvedClip struct {
	clip catalog.Clip
	url  string
}

// selector resolves individual segments for one build. It owns no state that
// survives the build; the pool, picker, and ladder are all per-build.
type selector struct {
	pool    *candidatePool
	cat     Catalog
	storage Storage
	picker  *picker
	ladder  []catalog.Archetype
	opts    Options
	metrics *Metrics
	logger  *slog.Logger
}

// resolveExercise walks the fallback ladder for an exercise-bound kind:
// exact archetype first, then each configured fallback in order. A miss on
// every level records the kind's miss signal and returns absent; it never
// returns an error.
func (s *selector) resolveExercise(ctx context.Context, exercise catalog.ExerciseID, kind catalog.Kind, exclude catalog.ClipID) (resolvedClip, bool) {
	for level, archetype := range s.ladder {
		candidates := s.pool.get(exercise, kind, archetype)
		if len(candidates) == 0 {
			continue
		}
		clip, ok := s.picker.chooseWithRetry(ctx, s.storage, candidates, exclude, s.opts.StorageRetryLimit, s.metrics)
		if !ok {
			continue
		}
		if level > 0 {
			s.metrics.fallbackHit(kind, level+1)
			s.logger.Debug("resolved via archetype fallback",
				logging.String("exercise", string(exercise)),
				logging.String("kind", string(kind)),
				logging.String("archetype", string(archetype)),
				logging.Int("level", level+1))
		}
		return resolvedClip{clip: clip, url: s.storage.PlaybackURL(ctx, clip)}, true
	}

	s.recordMiss(exercise, kind)
	return resolvedClip{}, false
}

// resolveGlobal is the lightweight path for clips bound to no exercise:
// a single direct query for the primary archetype, no fallback ladder. When
// weekNumber is non-zero the query is keyed to that week.
func (s *selector) resolveGlobal(ctx context.Context, kind catalog.Kind, archetype catalog.Archetype, weekNumber int) (resolvedClip, bool) {
	candidates, err := s.cat.QueryClips(ctx, catalog.Filter{
		GlobalOnly: true,
		Kinds:      []catalog.Kind{kind},
		Archetypes: []catalog.Archetype{archetype},
		WeekNumber: weekNumber,
	})
	if err != nil {
		s.logger.Warn("global clip query failed",
			logging.String("kind", string(kind)),
			logging.Error(err))
		return resolvedClip{}, false
	}
	clip, ok := s.picker.chooseWithRetry(ctx, s.storage, candidates, 0, s.opts.StorageRetryLimit, s.metrics)
	if !ok {
		s.metrics.miss(kind)
		s.logger.Debug("global clip unresolved",
			logging.String("kind", string(kind)),
			logging.String("archetype", string(archetype)),
			logging.Int("week", weekNumber))
		return resolvedClip{}, false
	}
	return resolvedClip{clip: clip, url: s.storage.PlaybackURL(ctx, clip)}, true
}

func (s *selector) recordMiss(exercise catalog.ExerciseID, kind catalog.Kind) {
	s.metrics.miss(kind)
	attrs := logging.Args(
		logging.String("exercise", string(exercise)),
		logging.String("kind", string(kind)),
		logging.Int("ladder_len", len(s.ladder)),
	)
	if kind.Required() {
		s.logger.Error("required segment unresolved after full fallback ladder", attrs...)
	} else {
		s.logger.Debug("optional segment unresolved", attrs...)
	}
}
