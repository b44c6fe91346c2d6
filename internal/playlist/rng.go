package playlist

import (
	"context"
	"fmt"
	"hash/fnv"
	"math/rand"

	"github.com/google/uuid"

	"fitcoach/internal/catalog"
)

// buildSeed derives the deterministic RNG seed from workout identity. The
// same (workout, week, day, archetype) always seeds the same sequence.
func buildSeed(workoutID uuid.UUID, weekNumber, dayNumber int, archetype catalog.Archetype) int64 {
	h := fnv.New64a()
	fmt.Fprintf(h, "%s|%d|%d|%s", workoutID, weekNumber, dayNumber, archetype)
	return int64(h.Sum64())
}

// picker owns the seeded generator for one build. It is created once per
// build and passed by reference through the selector, never shared across
// builds.
type picker struct {
	rng *rand.Rand
}

func newPicker(seed int64) *picker {
	return &picker{rng: rand.New(rand.NewSource(seed))}
}

// roll draws one uniform value in [0, 1) for probabilistic gating.
func (p *picker) roll() float64 {
	return p.rng.Float64()
}

// chooseWithRetry draws candidates uniformly until one's media exists on its
// backend. A candidate that fails the existence check is removed from the
// working set before the next draw, so one bad record cannot be drawn twice.
// Attempts are capped at min(limit, len(candidates)) after exclusion.
func (p *picker) chooseWithRetry(ctx context.Context, storage Storage, candidates []catalog.Clip, exclude catalog.ClipID, limit int, metrics *Metrics) (catalog.Clip, bool) {
	working := make([]catalog.Clip, 0, len(candidates))
	for _, clip := range candidates {
		if exclude != 0 && clip.ID == exclude {
			continue
		}
		working = append(working, clip)
	}
	if len(working) == 0 {
		return catalog.Clip{}, false
	}

	attempts := limit
	if len(working) < attempts {
		attempts = len(working)
	}

	for attempt := 0; attempt < attempts && len(working) > 0; attempt++ {
		idx := p.rng.Intn(len(working))
		clip := working[idx]
		if storage.Exists(ctx, clip) {
			return clip, true
		}
		metrics.storageRetry()
		working = append(working[:idx], working[idx+1:]...)
	}
	return catalog.Clip{}, false
}
