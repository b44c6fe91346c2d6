package playlist

import (
	"context"
	"testing"

	"github.com/google/uuid"

	"fitcoach/internal/catalog"
)

func TestBuildSeedStability(t *testing.T) {
	id := uuid.NewSHA1(uuid.NameSpaceOID, []byte("workout"))

	a := buildSeed(id, 2, 9, catalog.ArchetypeMentor)
	b := buildSeed(id, 2, 9, catalog.ArchetypeMentor)
	if a != b {
		t.Fatalf("same inputs produced different seeds: %d vs %d", a, b)
	}

	if buildSeed(id, 2, 9, catalog.ArchetypePeer) == a {
		t.Fatal("archetype change should change the seed")
	}
	if buildSeed(id, 3, 9, catalog.ArchetypeMentor) == a {
		t.Fatal("week change should change the seed")
	}
	other := uuid.NewSHA1(uuid.NameSpaceOID, []byte("other-workout"))
	if buildSeed(other, 2, 9, catalog.ArchetypeMentor) == a {
		t.Fatal("workout id change should change the seed")
	}
}

func TestChooseWithRetrySkipsMissingMedia(t *testing.T) {
	candidates := []catalog.Clip{
		{ID: 1, Locator: catalog.BucketLocator{Key: "a.mp4"}},
		{ID: 2, Locator: catalog.BucketLocator{Key: "b.mp4"}},
	}
	storage := &fakeStorage{missing: map[catalog.ClipID]bool{1: true}}
	metrics := NewMetrics()

	// Whatever the draw order, the only existing candidate must win.
	for seed := int64(0); seed < 20; seed++ {
		p := newPicker(seed)
		clip, ok := p.chooseWithRetry(context.Background(), storage, candidates, 0, 3, metrics)
		if !ok {
			t.Fatalf("seed %d: expected a selection", seed)
		}
		if clip.ID != 2 {
			t.Fatalf("seed %d: expected clip 2, got %d", seed, clip.ID)
		}
	}
	if metrics.Snapshot().StorageRetries == 0 {
		t.Fatal("expected at least one storage retry across seeds")
	}
}

func TestChooseWithRetryExhaustsWorkingSet(t *testing.T) {
	candidates := []catalog.Clip{
		{ID: 1, Locator: catalog.BucketLocator{Key: "a.mp4"}},
		{ID: 2, Locator: catalog.BucketLocator{Key: "b.mp4"}},
	}
	storage := &fakeStorage{missing: map[catalog.ClipID]bool{1: true, 2: true}}

	p := newPicker(42)
	if _, ok := p.chooseWithRetry(context.Background(), storage, candidates, 0, 5, NewMetrics()); ok {
		t.Fatal("expected absent when every candidate's media is missing")
	}
}

func TestChooseWithRetryHonorsExclusion(t *testing.T) {
	candidates := []catalog.Clip{
		{ID: 7, Locator: catalog.BucketLocator{Key: "a.mp4"}},
		{ID: 8, Locator: catalog.BucketLocator{Key: "b.mp4"}},
	}
	storage := &fakeStorage{missing: map[catalog.ClipID]bool{}}

	for seed := int64(0); seed < 20; seed++ {
		p := newPicker(seed)
		clip, ok := p.chooseWithRetry(context.Background(), storage, candidates, 7, 3, NewMetrics())
		if !ok || clip.ID != 8 {
			t.Fatalf("seed %d: exclusion ignored, got %v %v", seed, clip.ID, ok)
		}
	}
}

func TestChooseWithRetryLimitCapsAttempts(t *testing.T) {
	var candidates []catalog.Clip
	missing := make(map[catalog.ClipID]bool)
	for i := catalog.ClipID(1); i <= 10; i++ {
		candidates = append(candidates, catalog.Clip{ID: i, Locator: catalog.BucketLocator{Key: "x.mp4"}})
		missing[i] = true
	}
	storage := &fakeStorage{missing: missing}
	metrics := NewMetrics()

	p := newPicker(1)
	if _, ok := p.chooseWithRetry(context.Background(), storage, candidates, 0, 3, metrics); ok {
		t.Fatal("expected absent")
	}
	if got := metrics.Snapshot().StorageRetries; got != 3 {
		t.Fatalf("expected retry limit to cap attempts at 3, got %d", got)
	}
}

func TestPoolCapsBucketSize(t *testing.T) {
	fx := newFixture()
	fx.addExercise("push-ups")
	for i := 0; i < 12; i++ {
		fx.addClip("push-ups", catalog.KindTechnique, catalog.ArchetypeMentor)
	}

	pool, err := prefetch(context.Background(), fx.cat,
		[]catalog.ExerciseID{"push-ups"},
		[]catalog.Archetype{catalog.ArchetypeMentor}, 5)
	if err != nil {
		t.Fatalf("prefetch: %v", err)
	}
	got := pool.get("push-ups", catalog.KindTechnique, catalog.ArchetypeMentor)
	if len(got) != 5 {
		t.Fatalf("expected bucket capped at 5, got %d", len(got))
	}
}
