package config

import (
	"errors"
	"fmt"
	"strings"
)

func (c *Config) normalize() error {
	var err error
	if c.Paths.DataDir, err = expandPath(c.Paths.DataDir); err != nil {
		return err
	}
	if c.Paths.LogDir, err = expandPath(c.Paths.LogDir); err != nil {
		return err
	}
	c.Paths.APIBind = strings.TrimSpace(c.Paths.APIBind)
	c.Paths.APIToken = strings.TrimSpace(c.Paths.APIToken)
	c.Media.CDNBaseURL = strings.TrimRight(strings.TrimSpace(c.Media.CDNBaseURL), "/")
	c.Media.StreamURLTemplate = strings.TrimSpace(c.Media.StreamURLTemplate)
	c.Logging.Format = strings.ToLower(strings.TrimSpace(c.Logging.Format))
	c.Logging.Level = strings.ToLower(strings.TrimSpace(c.Logging.Level))

	if len(c.Playlist.FallbackOrder) == 0 {
		c.Playlist.FallbackOrder = DefaultFallbackOrder()
	}
	normalized := make(map[string][]string, len(c.Playlist.FallbackOrder))
	for archetype, ladder := range c.Playlist.FallbackOrder {
		key := strings.ToLower(strings.TrimSpace(archetype))
		cleaned := make([]string, 0, len(ladder))
		for _, entry := range ladder {
			if trimmed := strings.ToLower(strings.TrimSpace(entry)); trimmed != "" {
				cleaned = append(cleaned, trimmed)
			}
		}
		normalized[key] = cleaned
	}
	c.Playlist.FallbackOrder = normalized
	return nil
}

// Validate reports the first configuration problem found.
func (c *Config) Validate() error {
	if strings.TrimSpace(c.Paths.DataDir) == "" {
		return errors.New("paths.data_dir is required")
	}
	if strings.TrimSpace(c.Paths.APIBind) == "" {
		return errors.New("paths.api_bind is required")
	}
	if c.Logging.Format != "" && c.Logging.Format != "console" && c.Logging.Format != "json" {
		return fmt.Errorf("logging.format: unsupported value %q", c.Logging.Format)
	}
	if c.Media.StreamURLTemplate != "" && strings.Count(c.Media.StreamURLTemplate, "%s") != 1 {
		return fmt.Errorf("media.stream_url_template must contain exactly one %%s placeholder, got %q", c.Media.StreamURLTemplate)
	}
	if c.Media.SignedURLs && strings.TrimSpace(c.Media.S3Bucket) == "" {
		return errors.New("media.s3_bucket is required when media.signed_urls is enabled")
	}
	if c.Media.VerifyObjects && strings.TrimSpace(c.Media.S3Bucket) == "" {
		return errors.New("media.s3_bucket is required when media.verify_objects is enabled")
	}
	if c.Media.SignedURLTTL <= 0 {
		return errors.New("media.signed_url_ttl must be positive")
	}
	if c.Media.StorageCheckTimeout <= 0 {
		return errors.New("media.storage_check_timeout must be positive")
	}
	if c.Playlist.MaxCandidatesPerKey <= 0 {
		return errors.New("playlist.max_candidates_per_key must be positive")
	}
	if c.Playlist.StorageRetryLimit <= 0 {
		return errors.New("playlist.storage_retry_limit must be positive")
	}
	if c.Playlist.MistakeProbability < 0 || c.Playlist.MistakeProbability > 1 {
		return fmt.Errorf("playlist.mistake_probability must be within [0, 1], got %v", c.Playlist.MistakeProbability)
	}
	if c.Playlist.MotivationEvery <= 0 {
		return errors.New("playlist.motivation_every must be positive")
	}
	for archetype, ladder := range c.Playlist.FallbackOrder {
		if len(ladder) == 0 {
			return fmt.Errorf("playlist.fallback_order.%s must not be empty", archetype)
		}
		if ladder[0] != archetype {
			return fmt.Errorf("playlist.fallback_order.%s must start with %q, got %q", archetype, archetype, ladder[0])
		}
	}
	return nil
}
