package catalog

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"strings"

	"golang.org/x/text/cases"
	"golang.org/x/text/language"
)

// Manifest is the JSON document the import command loads. It mirrors the
// spreadsheet exports produced by the content pipeline.
type Manifest struct {
	Exercises []ManifestExercise `json:"exercises"`
	Clips     []ManifestClip     `json:"clips"`
}

// ManifestExercise describes one exercise row.
type ManifestExercise struct {
	ID          string `json:"id"`
	Name        string `json:"name"`
	MuscleGroup string `json:"muscle_group"`
}

// ManifestClip describes one clip row. Exactly one locator group must be
// populated, matching the provider.
type ManifestClip struct {
	ExerciseID      string  `json:"exercise_id"`
	Kind            string  `json:"kind"`
	Archetype       string  `json:"archetype"`
	Provider        string  `json:"provider"`
	BucketKey       string  `json:"bucket_key"`
	PlaybackID      string  `json:"playback_id"`
	StreamID        string  `json:"stream_id"`
	ExternalURL     string  `json:"external_url"`
	Title           string  `json:"title"`
	DurationSeconds int     `json:"duration_seconds"`
	Active          *bool   `json:"active"`
	Placeholder     bool    `json:"placeholder"`
	Mood            string  `json:"mood"`
	Theme           string  `json:"theme"`
	WeekNumber      int     `json:"week_number"`
}

// ImportSummary reports what an import run wrote.
type ImportSummary struct {
	Exercises int
	Clips     int
}

var titleCaser = cases.Title(language.English)

// TitleFromSlug derives a display name from an exercise slug when the
// manifest provides none ("push-ups" becomes "Push-Ups").
func TitleFromSlug(slug string) string {
	return titleCaser.String(strings.ReplaceAll(strings.TrimSpace(slug), "-", " "))
}

// ImportManifest loads a manifest file into the store. Exercises are
// upserted first so clip foreign keys resolve.
func (s *Store) ImportManifest(ctx context.Context, path string) (ImportSummary, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return ImportSummary{}, fmt.Errorf("read manifest %s: %w", path, err)
	}

	var manifest Manifest
	if err := json.Unmarshal(data, &manifest); err != nil {
		return ImportSummary{}, fmt.Errorf("parse manifest %s: %w", path, err)
	}

	var summary ImportSummary
	for _, entry := range manifest.Exercises {
		ex := Exercise{
			ID:          ExerciseID(strings.TrimSpace(entry.ID)),
			Name:        strings.TrimSpace(entry.Name),
			MuscleGroup: strings.TrimSpace(entry.MuscleGroup),
		}
		if ex.Name == "" {
			ex.Name = TitleFromSlug(string(ex.ID))
		}
		if err := s.InsertExercise(ctx, ex); err != nil {
			return summary, err
		}
		summary.Exercises++
	}

	for i, entry := range manifest.Clips {
		clip, err := clipFromManifest(entry)
		if err != nil {
			return summary, fmt.Errorf("clip %d: %w", i, err)
		}
		if _, err := s.InsertClip(ctx, clip); err != nil {
			return summary, fmt.Errorf("clip %d: %w", i, err)
		}
		summary.Clips++
	}
	return summary, nil
}

func clipFromManifest(entry ManifestClip) (Clip, error) {
	kind, err := ParseKind(entry.Kind)
	if err != nil {
		return Clip{}, err
	}
	archetype, err := ParseArchetype(entry.Archetype)
	if err != nil {
		return Clip{}, err
	}

	var locator Locator
	switch Provider(strings.ToLower(strings.TrimSpace(entry.Provider))) {
	case ProviderR2:
		locator = BucketLocator{Key: strings.TrimSpace(entry.BucketKey)}
	case ProviderStream:
		locator = StreamLocator{
			PlaybackID: strings.TrimSpace(entry.PlaybackID),
			StreamID:   strings.TrimSpace(entry.StreamID),
		}
	case ProviderExternal:
		locator = ExternalLocator{URL: strings.TrimSpace(entry.ExternalURL)}
	default:
		return Clip{}, fmt.Errorf("unknown provider %q", entry.Provider)
	}

	active := true
	if entry.Active != nil {
		active = *entry.Active
	}

	return Clip{
		ExerciseID:      ExerciseID(strings.TrimSpace(entry.ExerciseID)),
		Kind:            kind,
		Archetype:       archetype,
		Locator:         locator,
		Title:           strings.TrimSpace(entry.Title),
		DurationSeconds: entry.DurationSeconds,
		Active:          active,
		Placeholder:     entry.Placeholder,
		Mood:            strings.TrimSpace(entry.Mood),
		Theme:           strings.TrimSpace(entry.Theme),
		WeekNumber:      entry.WeekNumber,
	}, nil
}
