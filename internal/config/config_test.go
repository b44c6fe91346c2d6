package config_test

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"fitcoach/internal/config"
)

func TestLoadDefaultsWithoutConfigFile(t *testing.T) {
	tempHome := t.TempDir()
	t.Setenv("HOME", tempHome)
	t.Setenv("FITCOACH_API_TOKEN", "")
	t.Setenv("FITCOACH_S3_BUCKET", "")

	cfg, resolved, exists, err := config.Load("")
	if err != nil {
		t.Fatalf("Load returned error: %v", err)
	}
	if resolved == "" {
		t.Fatal("expected resolved path")
	}
	if exists {
		t.Fatal("expected config file to be absent in temp HOME")
	}

	wantData := filepath.Join(tempHome, ".local", "share", "fitcoach")
	if cfg.Paths.DataDir != wantData {
		t.Fatalf("unexpected data dir: got %q want %q", cfg.Paths.DataDir, wantData)
	}
	if cfg.Paths.APIBind != "127.0.0.1:8973" {
		t.Fatalf("unexpected api bind: %q", cfg.Paths.APIBind)
	}
	if cfg.Media.SignedURLs {
		t.Fatal("expected signed URLs disabled by default")
	}
	if cfg.Media.StreamURLTemplate != "https://stream.mux.com/%s.m3u8" {
		t.Fatalf("unexpected stream template: %q", cfg.Media.StreamURLTemplate)
	}
	if cfg.Playlist.MaxCandidatesPerKey != 5 {
		t.Fatalf("unexpected candidate cap: %d", cfg.Playlist.MaxCandidatesPerKey)
	}
	if cfg.Playlist.StorageRetryLimit != 3 {
		t.Fatalf("unexpected retry limit: %d", cfg.Playlist.StorageRetryLimit)
	}
	if cfg.Playlist.MistakeProbability != 0.3 {
		t.Fatalf("unexpected mistake probability: %v", cfg.Playlist.MistakeProbability)
	}
	ladder := cfg.Playlist.FallbackOrder["mentor"]
	if len(ladder) != 3 || ladder[0] != "mentor" {
		t.Fatalf("unexpected mentor ladder: %v", ladder)
	}
	if cfg.CatalogDBPath() != filepath.Join(wantData, "catalog.db") {
		t.Fatalf("unexpected catalog path: %q", cfg.CatalogDBPath())
	}
}

func TestLoadReadsFileAndEnvToken(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "config.toml")
	body := strings.Join([]string{
		"[paths]",
		`data_dir = "` + filepath.Join(dir, "data") + `"`,
		`log_dir = "` + filepath.Join(dir, "logs") + `"`,
		"[media]",
		`cdn_base_url = "https://cdn.example.com/"`,
		"[playlist]",
		"mistake_probability = 1.0",
		"motivation_every = 2",
	}, "\n")
	if err := os.WriteFile(path, []byte(body), 0o644); err != nil {
		t.Fatalf("write config: %v", err)
	}
	t.Setenv("FITCOACH_API_TOKEN", "secret-token")

	cfg, _, exists, err := config.Load(path)
	if err != nil {
		t.Fatalf("Load returned error: %v", err)
	}
	if !exists {
		t.Fatal("expected config file to be found")
	}
	if cfg.Paths.APIToken != "secret-token" {
		t.Fatalf("expected env token fallback, got %q", cfg.Paths.APIToken)
	}
	if cfg.Media.CDNBaseURL != "https://cdn.example.com" {
		t.Fatalf("expected trailing slash trimmed, got %q", cfg.Media.CDNBaseURL)
	}
	if cfg.Playlist.MistakeProbability != 1.0 {
		t.Fatalf("unexpected mistake probability: %v", cfg.Playlist.MistakeProbability)
	}
	if cfg.Playlist.MotivationEvery != 2 {
		t.Fatalf("unexpected motivation frequency: %d", cfg.Playlist.MotivationEvery)
	}
}

func TestValidateRejectsBadValues(t *testing.T) {
	cases := []struct {
		name   string
		mutate func(*config.Config)
		want   string
	}{
		{
			name:   "bad stream template",
			mutate: func(c *config.Config) { c.Media.StreamURLTemplate = "https://stream.example.com/manifest" },
			want:   "stream_url_template",
		},
		{
			name:   "signed urls without bucket",
			mutate: func(c *config.Config) { c.Media.SignedURLs = true },
			want:   "s3_bucket",
		},
		{
			name:   "probability out of range",
			mutate: func(c *config.Config) { c.Playlist.MistakeProbability = 1.5 },
			want:   "mistake_probability",
		},
		{
			name: "ladder not led by archetype",
			mutate: func(c *config.Config) {
				c.Playlist.FallbackOrder = map[string][]string{"mentor": {"peer", "mentor"}}
			},
			want: "fallback_order",
		},
		{
			name:   "zero retry limit",
			mutate: func(c *config.Config) { c.Playlist.StorageRetryLimit = 0 },
			want:   "storage_retry_limit",
		},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			cfg := config.Default()
			tc.mutate(&cfg)
			err := cfg.Validate()
			if err == nil {
				t.Fatal("expected validation error")
			}
			if !strings.Contains(err.Error(), tc.want) {
				t.Fatalf("error %q does not mention %q", err, tc.want)
			}
		})
	}
}

func TestWriteSampleRefusesOverwrite(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "config.toml")
	if err := config.WriteSample(path); err != nil {
		t.Fatalf("WriteSample: %v", err)
	}
	if _, err := os.Stat(path); err != nil {
		t.Fatalf("expected sample written: %v", err)
	}
	if err := config.WriteSample(path); err == nil {
		t.Fatal("expected error when overwriting existing config")
	}
}
