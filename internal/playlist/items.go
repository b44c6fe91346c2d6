package playlist

import (
	"fitcoach/internal/catalog"
)

// SegmentType is the structural role of one playlist entry.
type SegmentType string

const (
	SegmentIntro       SegmentType = "intro"
	SegmentTechnique   SegmentType = "technique"
	SegmentInstruction SegmentType = "instruction"
	SegmentMistake     SegmentType = "mistake"
	SegmentMotivation  SegmentType = "motivation"
	SegmentWeekly      SegmentType = "weekly"
	SegmentOutro       SegmentType = "outro"
	SegmentRest        SegmentType = "rest"
)

// Item is one entry of the assembled playlist, in playback order. The caller
// decides whether and how to persist it.
type Item struct {
	Type            SegmentType        `json:"type"`
	URL             string             `json:"url"`
	DurationSeconds int                `json:"duration_seconds"`
	Title           string             `json:"title"`
	ClipID          catalog.ClipID     `json:"clip_id"`
	Provider        catalog.Provider   `json:"provider"`
	Kind            catalog.Kind       `json:"kind"`
	ExerciseID      catalog.ExerciseID `json:"exercise_id,omitempty"`
	Sets            int                `json:"sets,omitempty"`
	Reps            string             `json:"reps,omitempty"`
	RestSeconds     int                `json:"rest_seconds,omitempty"`
}

func newItem(segment SegmentType, rc resolvedClip, title string) Item {
	if title == "" {
		title = kindLabel(rc.clip.Kind)
	}
	return Item{
		Type:            segment,
		URL:             rc.url,
		DurationSeconds: rc.clip.DurationSeconds,
		Title:           title,
		ClipID:          rc.clip.ID,
		Provider:        rc.clip.Locator.Provider(),
		Kind:            rc.clip.Kind,
	}
}

func kindLabel(kind catalog.Kind) string {
	switch kind {
	case catalog.KindTechnique:
		return "Technique"
	case catalog.KindInstruction:
		return "Instruction"
	case catalog.KindMistake:
		return "Common Mistakes"
	case catalog.KindIntro, catalog.KindContextualIntro:
		return "Warm Welcome"
	case catalog.KindClosing, catalog.KindContextualOutro:
		return "Cool Down"
	case catalog.KindWeekly:
		return "Weekly Lesson"
	case catalog.KindTheme:
		return "Weekly Theme"
	case catalog.KindMidWorkout:
		return "Keep Going"
	default:
		return string(kind)
	}
}
