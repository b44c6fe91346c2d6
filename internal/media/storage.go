package media

import (
	"context"
	"log/slog"

	"fitcoach/internal/catalog"
	"fitcoach/internal/config"
	"fitcoach/internal/logging"
)

// Storage answers existence and playback questions for one provider's clips.
type Storage interface {
	// Exists reports whether the clip's media is present on the backend.
	// Failures read as absent; this method never blocks past the configured
	// check timeout.
	Exists(ctx context.Context, clip catalog.Clip) bool
	// PlaybackURL returns the URL that plays the clip, or empty when the
	// provider cannot produce one.
	PlaybackURL(ctx context.Context, clip catalog.Clip) string
}

// Registry routes clips to the Storage implementation for their provider.
type Registry struct {
	bucket   Storage
	stream   Storage
	external Storage
}

// NewRegistry builds the provider set from configuration. The signer and
// header may be nil, in which case the bucket provider serves unsigned CDN
// URLs and trusts locator presence for existence.
func NewRegistry(cfg *config.Config, signer ObjectSigner, header ObjectHeader, logger *slog.Logger) *Registry {
	logger = logging.NewComponentLogger(logger, "media")
	return &Registry{
		bucket:   newBucket(cfg, signer, header, logger),
		stream:   newStream(cfg.Media.StreamURLTemplate),
		external: externalStorage{},
	}
}

// ForClip returns the Storage responsible for the clip's locator.
func (r *Registry) ForClip(clip catalog.Clip) Storage {
	switch clip.Locator.(type) {
	case catalog.BucketLocator:
		return r.bucket
	case catalog.StreamLocator:
		return r.stream
	default:
		return r.external
	}
}

// Exists resolves the clip's provider and checks its media.
func (r *Registry) Exists(ctx context.Context, clip catalog.Clip) bool {
	return r.ForClip(clip).Exists(ctx, clip)
}

// PlaybackURL resolves the clip's provider and builds its playback URL.
func (r *Registry) PlaybackURL(ctx context.Context, clip catalog.Clip) string {
	return r.ForClip(clip).PlaybackURL(ctx, clip)
}
