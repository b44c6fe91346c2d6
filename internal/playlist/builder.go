package playlist

import (
	"context"
	"fmt"
	"log/slog"

	"fitcoach/internal/catalog"
	"fitcoach/internal/logging"
)

// Builder assembles playlists. It is safe for concurrent use: every build
// carries its own candidate pool and seeded generator, so parallel builds
// cannot interfere.
type Builder struct {
	cat     Catalog
	storage Storage
	opts    Options
	metrics *Metrics
	logger  *slog.Logger
}

// New constructs a Builder. Metrics may be nil when counters are not wanted.
func New(cat Catalog, storage Storage, opts Options, metrics *Metrics, logger *slog.Logger) *Builder {
	return &Builder{
		cat:     cat,
		storage: storage,
		opts:    opts.normalized(),
		metrics: metrics,
		logger:  logging.NewComponentLogger(logger, "playlist"),
	}
}

// daysPerWeek fixes the plan's week length; day numbers are absolute and
// 1-based, so day 7, 14, ... close out a week.
const daysPerWeek = 7

func lastDayOfWeek(dayNumber int) bool {
	return dayNumber%daysPerWeek == 0
}

// Build assembles the playlist for one workout and archetype. Missing
// content never produces an error; the returned error covers only invalid
// input and catalog infrastructure failures. An empty playlist is a valid
// result.
func (b *Builder) Build(ctx context.Context, workout catalog.Workout, archetype catalog.Archetype) ([]Item, error) {
	if err := workout.Validate(); err != nil {
		return nil, fmt.Errorf("invalid workout: %w", err)
	}
	if _, err := catalog.ParseArchetype(string(archetype)); err != nil {
		return nil, err
	}
	b.metrics.buildStarted()

	// Reseed before any other random decision so identical inputs replay
	// the identical draw sequence.
	pick := newPicker(buildSeed(workout.ID, workout.WeekNumber, workout.DayNumber, archetype))
	sel := &selector{
		cat:     b.cat,
		storage: b.storage,
		picker:  pick,
		ladder:  b.opts.ladderFor(archetype),
		opts:    b.opts,
		metrics: b.metrics,
		logger:  b.logger,
	}

	if workout.RestDay {
		items := b.buildRestDay(ctx, sel, workout, archetype)
		b.metrics.segmentsEmitted(len(items))
		return items, nil
	}

	exerciseIDs := make([]catalog.ExerciseID, 0, len(workout.Exercises))
	for _, entry := range workout.Exercises {
		exerciseIDs = append(exerciseIDs, entry.ExerciseID)
	}
	pool, err := prefetch(ctx, b.cat, exerciseIDs, sel.ladder, b.opts.MaxCandidatesPerKey)
	if err != nil {
		return nil, err
	}
	sel.pool = pool

	items := make([]Item, 0, len(workout.Exercises)*3+4)

	// Contextual intro first, plain intro as fallback.
	if rc, ok := sel.resolveGlobal(ctx, catalog.KindContextualIntro, archetype, workout.WeekNumber); ok {
		items = append(items, newItem(SegmentIntro, rc, rc.clip.Title))
	} else if rc, ok := sel.resolveGlobal(ctx, catalog.KindIntro, archetype, 0); ok {
		items = append(items, newItem(SegmentIntro, rc, rc.clip.Title))
	}

	blocks := 0
	for i, entry := range workout.Exercises {
		exercise, known := pool.exercises[entry.ExerciseID]
		if !known {
			// Unknown exercises skip their whole block; the rest of the
			// workout still assembles.
			b.logger.Warn("exercise not found in catalog, skipping block",
				logging.String("exercise", string(entry.ExerciseID)),
				logging.String("workout", workout.ID.String()))
			continue
		}

		if rc, ok := sel.resolveExercise(ctx, entry.ExerciseID, catalog.KindTechnique, 0); ok {
			items = append(items, exerciseItem(SegmentTechnique, rc, exercise, entry, false))
		}
		if rc, ok := sel.resolveExercise(ctx, entry.ExerciseID, catalog.KindInstruction, 0); ok {
			items = append(items, exerciseItem(SegmentInstruction, rc, exercise, entry, true))
		}

		// The gating draw happens for every block regardless of outcome so
		// the draw sequence stays aligned across configurations.
		if pick.roll() < b.opts.MistakeProbability {
			if rc, ok := sel.resolveExercise(ctx, entry.ExerciseID, catalog.KindMistake, 0); ok {
				items = append(items, exerciseItem(SegmentMistake, rc, exercise, entry, false))
			}
		}

		blocks++
		if blocks%b.opts.MotivationEvery == 0 && i+1 < len(workout.Exercises) {
			if rc, ok := sel.resolveGlobal(ctx, catalog.KindMidWorkout, archetype, 0); ok {
				items = append(items, newItem(SegmentMotivation, rc, rc.clip.Title))
			}
		}
	}

	if lastDayOfWeek(workout.DayNumber) {
		if rc, ok := sel.resolveGlobal(ctx, catalog.KindTheme, archetype, workout.WeekNumber); ok {
			items = append(items, newItem(SegmentWeekly, rc, rc.clip.Title))
		} else if rc, ok := sel.resolveGlobal(ctx, catalog.KindWeekly, archetype, 0); ok {
			items = append(items, newItem(SegmentWeekly, rc, rc.clip.Title))
		}
	}

	// Contextual outro mirrors the intro fallback pattern.
	if rc, ok := sel.resolveGlobal(ctx, catalog.KindContextualOutro, archetype, workout.WeekNumber); ok {
		items = append(items, newItem(SegmentOutro, rc, rc.clip.Title))
	} else if rc, ok := sel.resolveGlobal(ctx, catalog.KindClosing, archetype, 0); ok {
		items = append(items, newItem(SegmentOutro, rc, rc.clip.Title))
	}

	b.metrics.segmentsEmitted(len(items))
	b.logger.Info("playlist assembled",
		logging.String("workout", workout.ID.String()),
		logging.String("archetype", string(archetype)),
		logging.Int("segments", len(items)),
		logging.Int("exercises", len(workout.Exercises)))
	return items, nil
}

// buildRestDay emits at most one segment: the weekly theme clip for the
// archetype.
func (b *Builder) buildRestDay(ctx context.Context, sel *selector, workout catalog.Workout, archetype catalog.Archetype) []Item {
	if rc, ok := sel.resolveGlobal(ctx, catalog.KindWeekly, archetype, 0); ok {
		return []Item{newItem(SegmentRest, rc, rc.clip.Title)}
	}
	return nil
}

func exerciseItem(segment SegmentType, rc resolvedClip, exercise catalog.Exercise, entry catalog.ExerciseEntry, withPrescription bool) Item {
	title := rc.clip.Title
	if title == "" {
		name := exercise.Name
		if name == "" {
			name = catalog.TitleFromSlug(string(exercise.ID))
		}
		title = name + ": " + kindLabel(rc.clip.Kind)
	}

	item := newItem(segment, rc, title)
	item.ExerciseID = entry.ExerciseID
	if withPrescription {
		item.Sets = entry.Sets
		item.Reps = entry.Reps
		item.RestSeconds = entry.RestSeconds
	}
	return item
}
