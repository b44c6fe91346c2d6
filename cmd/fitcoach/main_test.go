package main

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func TestRootCommandRegistersSubcommands(t *testing.T) {
	cmd := newRootCommand()
	want := []string{"serve", "build", "catalog", "config"}
	for _, name := range want {
		found := false
		for _, sub := range cmd.Commands() {
			if sub.Name() == name {
				found = true
				break
			}
		}
		if !found {
			t.Errorf("subcommand %q not registered", name)
		}
	}
}

func TestLoadWorkout(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "workout.json")
	payload := `{
        "id": "6ba7b810-9dad-11d1-80b4-00c04fd430c8",
        "day_number": 3,
        "week_number": 1,
        "exercises": [
            {"exercise_id": "push-ups", "sets": 3, "reps": "10", "rest_seconds": 45}
        ]
    }`
	if err := os.WriteFile(path, []byte(payload), 0o644); err != nil {
		t.Fatal(err)
	}

	workout, err := loadWorkout(path)
	if err != nil {
		t.Fatalf("loadWorkout: %v", err)
	}
	if workout.DayNumber != 3 || len(workout.Exercises) != 1 {
		t.Fatalf("unexpected workout: %+v", workout)
	}

	if _, err := loadWorkout(filepath.Join(dir, "missing.json")); err == nil {
		t.Fatal("expected error for missing file")
	}

	invalid := filepath.Join(dir, "invalid.json")
	if err := os.WriteFile(invalid, []byte(`{"day_number": 0}`), 0o644); err != nil {
		t.Fatal(err)
	}
	if _, err := loadWorkout(invalid); err == nil {
		t.Fatal("expected validation error for day_number 0")
	}
}

func TestRenderTablePadsShortRows(t *testing.T) {
	out := renderTable(
		[]string{"Kind", "Clips"},
		[][]string{{"technique", "4"}, {"intro"}},
		[]columnAlignment{alignLeft, alignRight},
	)
	if !strings.Contains(out, "technique") || !strings.Contains(out, "intro") {
		t.Fatalf("table missing rows:\n%s", out)
	}
	if renderTable(nil, nil, nil) != "" {
		t.Fatal("expected empty output for empty headers")
	}
}
