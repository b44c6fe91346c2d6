package config

import (
	_ "embed"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strings"

	"github.com/pelletier/go-toml/v2"
)

//go:embed sample_config.toml
var sampleConfig string

// Paths contains directory and bind address configuration.
type Paths struct {
	DataDir  string `toml:"data_dir"`
	LogDir   string `toml:"log_dir"`
	APIBind  string `toml:"api_bind"`
	APIToken string `toml:"api_token"`
}

// Media contains configuration for the video storage backends.
type Media struct {
	CDNBaseURL        string `toml:"cdn_base_url"`
	StreamURLTemplate string `toml:"stream_url_template"`
	S3Bucket          string `toml:"s3_bucket"`
	S3Region          string `toml:"s3_region"`
	S3Endpoint        string `toml:"s3_endpoint"`
	SignedURLs        bool   `toml:"signed_urls"`
	SignedURLTTL      int    `toml:"signed_url_ttl"`
	VerifyObjects     bool   `toml:"verify_objects"`
	StorageCheckTimeout int  `toml:"storage_check_timeout"`
}

// Playlist contains tunables for the playlist resolution engine.
type Playlist struct {
	MaxCandidatesPerKey int                 `toml:"max_candidates_per_key"`
	StorageRetryLimit   int                 `toml:"storage_retry_limit"`
	MistakeProbability  float64             `toml:"mistake_probability"`
	MotivationEvery     int                 `toml:"motivation_every"`
	FallbackOrder       map[string][]string `toml:"fallback_order"`
}

// Logging contains configuration for log output.
type Logging struct {
	Format string `toml:"format"`
	Level  string `toml:"level"`
}

// Config is the root configuration for the fitcoach CLI and API daemon.
type Config struct {
	Paths    Paths    `toml:"paths"`
	Media    Media    `toml:"media"`
	Playlist Playlist `toml:"playlist"`
	Logging  Logging  `toml:"logging"`
}

// DefaultConfigPath returns the absolute path to the default configuration file location.
func DefaultConfigPath() (string, error) {
	return expandPath("~/.config/fitcoach/config.toml")
}

// Load locates, parses, and validates a configuration file. The returned
// config has all path fields expanded and normalized. The boolean reports
// whether a config file was found at the resolved path; when absent, defaults
// apply.
func Load(path string) (*Config, string, bool, error) {
	cfg := Default()

	resolvedPath, exists, err := resolveConfigPath(path)
	if err != nil {
		return nil, "", false, err
	}

	if exists {
		data, readErr := os.ReadFile(resolvedPath)
		if readErr != nil {
			return nil, resolvedPath, true, fmt.Errorf("read config %s: %w", resolvedPath, readErr)
		}
		if decodeErr := toml.Unmarshal(data, &cfg); decodeErr != nil {
			return nil, resolvedPath, true, fmt.Errorf("parse config %s: %w", resolvedPath, decodeErr)
		}
	}

	applyEnvOverrides(&cfg)

	if err := cfg.normalize(); err != nil {
		return nil, resolvedPath, exists, err
	}
	if err := cfg.Validate(); err != nil {
		return nil, resolvedPath, exists, err
	}
	return &cfg, resolvedPath, exists, nil
}

// WriteSample writes the embedded sample configuration to the given path,
// refusing to overwrite an existing file.
func WriteSample(path string) error {
	expanded, err := expandPath(path)
	if err != nil {
		return err
	}
	if _, statErr := os.Stat(expanded); statErr == nil {
		return fmt.Errorf("config file already exists at %s", expanded)
	} else if !errors.Is(statErr, fs.ErrNotExist) {
		return fmt.Errorf("stat %s: %w", expanded, statErr)
	}
	if err := os.MkdirAll(filepath.Dir(expanded), 0o755); err != nil {
		return fmt.Errorf("ensure config dir: %w", err)
	}
	return os.WriteFile(expanded, []byte(sampleConfig), 0o644)
}

// EnsureDirectories creates the data and log directories when missing.
func (c *Config) EnsureDirectories() error {
	for _, dir := range []string{c.Paths.DataDir, c.Paths.LogDir} {
		if strings.TrimSpace(dir) == "" {
			continue
		}
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return fmt.Errorf("create directory %s: %w", dir, err)
		}
	}
	return nil
}

// CatalogDBPath returns the SQLite catalog location under the data directory.
func (c *Config) CatalogDBPath() string {
	return filepath.Join(c.Paths.DataDir, "catalog.db")
}

func applyEnvOverrides(cfg *Config) {
	if token := strings.TrimSpace(os.Getenv("FITCOACH_API_TOKEN")); token != "" && cfg.Paths.APIToken == "" {
		cfg.Paths.APIToken = token
	}
	if bucket := strings.TrimSpace(os.Getenv("FITCOACH_S3_BUCKET")); bucket != "" && cfg.Media.S3Bucket == "" {
		cfg.Media.S3Bucket = bucket
	}
}

func resolveConfigPath(path string) (string, bool, error) {
	trimmed := strings.TrimSpace(path)
	if trimmed == "" {
		defaultPath, err := DefaultConfigPath()
		if err != nil {
			return "", false, err
		}
		trimmed = defaultPath
	}

	expanded, err := expandPath(trimmed)
	if err != nil {
		return "", false, err
	}

	info, statErr := os.Stat(expanded)
	if statErr != nil {
		if errors.Is(statErr, fs.ErrNotExist) {
			return expanded, false, nil
		}
		return "", false, fmt.Errorf("stat config %s: %w", expanded, statErr)
	}
	if info.IsDir() {
		return "", false, fmt.Errorf("config path %s is a directory", expanded)
	}
	return expanded, true, nil
}

func expandPath(path string) (string, error) {
	trimmed := strings.TrimSpace(path)
	if trimmed == "" {
		return "", nil
	}
	if trimmed == "~" || strings.HasPrefix(trimmed, "~/") {
		home, err := os.UserHomeDir()
		if err != nil {
			return "", fmt.Errorf("resolve home directory: %w", err)
		}
		trimmed = filepath.Join(home, strings.TrimPrefix(trimmed, "~"))
	}
	abs, err := filepath.Abs(trimmed)
	if err != nil {
		return "", fmt.Errorf("resolve path %s: %w", trimmed, err)
	}
	return abs, nil
}
