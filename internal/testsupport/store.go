package testsupport

import (
	"context"
	"testing"

	"fitcoach/internal/catalog"
	"fitcoach/internal/config"
)

// MustOpenStore opens a catalog.Store for tests and registers cleanup.
func MustOpenStore(t testing.TB, cfg *config.Config) *catalog.Store {
	t.Helper()

	store, err := catalog.Open(cfg)
	if err != nil {
		t.Fatalf("catalog.Open: %v", err)
	}
	t.Cleanup(func() {
		store.Close()
	})
	return store
}

// SeedExercise inserts an exercise, deriving its name from the slug.
func SeedExercise(t testing.TB, store *catalog.Store, id catalog.ExerciseID) {
	t.Helper()
	ex := catalog.Exercise{ID: id, Name: catalog.TitleFromSlug(string(id))}
	if err := store.InsertExercise(context.Background(), ex); err != nil {
		t.Fatalf("insert exercise %s: %v", id, err)
	}
}

// SeedBucketClip inserts an active bucket clip and returns its id.
func SeedBucketClip(t testing.TB, store *catalog.Store, exercise catalog.ExerciseID, kind catalog.Kind, archetype catalog.Archetype, key string) catalog.ClipID {
	t.Helper()
	id, err := store.InsertClip(context.Background(), catalog.Clip{
		ExerciseID:      exercise,
		Kind:            kind,
		Archetype:       archetype,
		Active:          true,
		DurationSeconds: 30,
		Locator:         catalog.BucketLocator{Key: key},
	})
	if err != nil {
		t.Fatalf("insert clip: %v", err)
	}
	return id
}
