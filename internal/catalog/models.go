package catalog

import (
	"fmt"
	"strings"

	"github.com/google/uuid"
)

// ClipID identifies a video clip in the catalog.
type ClipID int64

// ExerciseID is the slug identifier for an exercise ("push-ups"). Empty
// means the clip is global (intro, outro, weekly theme).
type ExerciseID string

// Provider tags the storage backend holding a clip's media.
type Provider string

const (
	// ProviderR2 is bucket-style object storage fronted by a CDN.
	ProviderR2 Provider = "r2"
	// ProviderStream is a hosted HLS streaming service addressed by
	// playback or stream id.
	ProviderStream Provider = "stream"
	// ProviderExternal marks clips referenced by URL only; playback through
	// the engine is not implemented for them.
	ProviderExternal Provider = "external"
)

// Locator is the provider-specific address of a clip's media. Exactly one
// variant exists per clip; the provider tag is derived from the variant, so
// mismatched locator data is unrepresentable.
type Locator interface {
	Provider() Provider
}

// BucketLocator addresses an object key in bucket storage.
type BucketLocator struct {
	Key string
}

func (BucketLocator) Provider() Provider { return ProviderR2 }

// StreamLocator addresses a hosted stream. PlaybackID is preferred when both
// identifiers are present.
type StreamLocator struct {
	PlaybackID string
	StreamID   string
}

func (StreamLocator) Provider() Provider { return ProviderStream }

// ExternalLocator references media outside any managed backend.
type ExternalLocator struct {
	URL string
}

func (ExternalLocator) Provider() Provider { return ProviderExternal }

// Clip is a read-only catalog record describing one video clip.
type Clip struct {
	ID              ClipID
	ExerciseID      ExerciseID
	Kind            Kind
	Archetype       Archetype
	Locator         Locator
	Title           string
	DurationSeconds int
	Active          bool
	Placeholder     bool
	Mood            string
	Theme           string
	WeekNumber      int
}

// Global reports whether the clip attaches to no exercise.
func (c Clip) Global() bool { return c.ExerciseID == "" }

// Exercise is a read-only catalog record for one exercise.
type Exercise struct {
	ID          ExerciseID
	Name        string
	MuscleGroup string
}

// ExerciseEntry is one scheduled exercise within a workout.
type ExerciseEntry struct {
	ExerciseID  ExerciseID `json:"exercise_id"`
	Sets        int        `json:"sets"`
	Reps        string     `json:"reps"`
	RestSeconds int        `json:"rest_seconds"`
}

// Workout is the caller-supplied schedule a playlist is built for.
type Workout struct {
	ID         uuid.UUID       `json:"id"`
	DayNumber  int             `json:"day_number"`
	WeekNumber int             `json:"week_number"`
	RestDay    bool            `json:"rest_day"`
	Exercises  []ExerciseEntry `json:"exercises"`
}

// Validate reports structural problems with a caller-supplied workout.
func (w Workout) Validate() error {
	if w.ID == uuid.Nil {
		return fmt.Errorf("workout id is required")
	}
	if w.DayNumber <= 0 {
		return fmt.Errorf("workout day number must be positive, got %d", w.DayNumber)
	}
	if w.WeekNumber <= 0 {
		return fmt.Errorf("workout week number must be positive, got %d", w.WeekNumber)
	}
	for i, entry := range w.Exercises {
		if strings.TrimSpace(string(entry.ExerciseID)) == "" {
			return fmt.Errorf("exercise entry %d has no exercise id", i)
		}
	}
	return nil
}

// Filter describes one batched catalog clip query. Zero values mean "no
// constraint" except GlobalOnly, which restricts results to clips without an
// exercise.
type Filter struct {
	ExerciseIDs []ExerciseID
	GlobalOnly  bool
	Kinds       []Kind
	Archetypes  []Archetype
	ExcludeID   ClipID
	WeekNumber  int
}
