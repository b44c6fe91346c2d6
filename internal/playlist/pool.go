package playlist

import (
	"context"
	"fmt"

	"fitcoach/internal/catalog"
)

type poolKey struct {
	exercise  catalog.ExerciseID
	kind      catalog.Kind
	archetype catalog.Archetype
}

// candidatePool is the per-build grouping of prefetched clips. Built once,
// read many times during one build, discarded afterward. Never shared across
// builds.
type candidatePool struct {
	buckets   map[poolKey][]catalog.Clip
	exercises map[catalog.ExerciseID]catalog.Exercise
}

// prefetch issues one batched catalog query covering every (exercise, kind,
// archetype) combination assembly can need, plus one exercise lookup. This
// keeps catalog cost constant in the number of exercises and kinds.
func prefetch(ctx context.Context, cat Catalog, exerciseIDs []catalog.ExerciseID, ladder []catalog.Archetype, maxPerKey int) (*candidatePool, error) {
	unique := make([]catalog.ExerciseID, 0, len(exerciseIDs))
	seen := make(map[catalog.ExerciseID]struct{}, len(exerciseIDs))
	for _, id := range exerciseIDs {
		if _, ok := seen[id]; ok {
			continue
		}
		seen[id] = struct{}{}
		unique = append(unique, id)
	}

	pool := &candidatePool{
		buckets:   make(map[poolKey][]catalog.Clip),
		exercises: make(map[catalog.ExerciseID]catalog.Exercise),
	}
	if len(unique) == 0 {
		return pool, nil
	}

	clips, err := cat.QueryClips(ctx, catalog.Filter{
		ExerciseIDs: unique,
		Kinds:       catalog.ExerciseKinds(),
		Archetypes:  ladder,
	})
	if err != nil {
		return nil, fmt.Errorf("prefetch clips: %w", err)
	}

	for _, clip := range clips {
		key := poolKey{exercise: clip.ExerciseID, kind: clip.Kind, archetype: clip.Archetype}
		if len(pool.buckets[key]) >= maxPerKey {
			continue
		}
		pool.buckets[key] = append(pool.buckets[key], clip)
	}

	exercises, err := cat.ExercisesByID(ctx, unique)
	if err != nil {
		return nil, fmt.Errorf("prefetch exercises: %w", err)
	}
	pool.exercises = exercises
	return pool, nil
}

func (p *candidatePool) get(exercise catalog.ExerciseID, kind catalog.Kind, archetype catalog.Archetype) []catalog.Clip {
	return p.buckets[poolKey{exercise: exercise, kind: kind, archetype: archetype}]
}
