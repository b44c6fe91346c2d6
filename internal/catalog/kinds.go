package catalog

import (
	"fmt"
	"strings"
)

// Kind is the functional role of a clip within a workout.
type Kind string

const (
	KindTechnique       Kind = "technique"
	KindInstruction     Kind = "instruction"
	KindMistake         Kind = "mistake"
	KindIntro           Kind = "intro"
	KindClosing         Kind = "closing"
	KindWeekly          Kind = "weekly"
	KindMidWorkout      Kind = "midworkout"
	KindContextualIntro Kind = "contextual_intro"
	KindContextualOutro Kind = "contextual_outro"
	KindTheme           Kind = "theme"
)

// ExerciseKinds are resolved through the per-exercise candidate pool.
func ExerciseKinds() []Kind {
	return []Kind{KindTechnique, KindInstruction, KindMistake}
}

// GlobalKinds attach to no exercise and are resolved by direct lookup.
func GlobalKinds() []Kind {
	return []Kind{
		KindIntro, KindClosing, KindWeekly, KindMidWorkout,
		KindContextualIntro, KindContextualOutro, KindTheme,
	}
}

// Required reports whether a missing clip of this kind degrades the workout
// enough to warrant an error-level signal.
func (k Kind) Required() bool {
	return k == KindTechnique || k == KindInstruction
}

// ParseKind validates a kind string from a manifest or request.
func ParseKind(value string) (Kind, error) {
	k := Kind(strings.ToLower(strings.TrimSpace(value)))
	for _, known := range append(ExerciseKinds(), GlobalKinds()...) {
		if k == known {
			return k, nil
		}
	}
	return "", fmt.Errorf("unknown video kind %q", value)
}

// Archetype is a coaching-persona tag used to select stylistically matching
// video content.
type Archetype string

const (
	ArchetypeMentor       Archetype = "mentor"
	ArchetypeProfessional Archetype = "professional"
	ArchetypePeer         Archetype = "peer"
)

// ParseArchetype normalizes an archetype string. Unknown archetypes are
// accepted as-is (deployments may configure extra ladders) but must be
// non-empty.
func ParseArchetype(value string) (Archetype, error) {
	a := Archetype(strings.ToLower(strings.TrimSpace(value)))
	if a == "" {
		return "", fmt.Errorf("archetype must not be empty")
	}
	return a, nil
}
