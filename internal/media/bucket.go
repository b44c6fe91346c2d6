package media

import (
	"context"
	"errors"
	"log/slog"
	"strings"
	"time"

	"fitcoach/internal/catalog"
	"fitcoach/internal/config"
	"fitcoach/internal/logging"
)

// ErrObjectMissing is returned by ObjectHeader implementations when the
// object is confirmed absent (as opposed to a transport failure).
var ErrObjectMissing = errors.New("object missing")

// ObjectSigner produces time-limited GET URLs for bucket objects.
type ObjectSigner interface {
	SignGet(ctx context.Context, key string, ttl time.Duration) (string, error)
}

// ObjectHeader verifies that a bucket object is actually present.
type ObjectHeader interface {
	Head(ctx context.Context, key string) error
}

type bucketStorage struct {
	cdnBase      string
	signer       ObjectSigner
	header       ObjectHeader
	signTTL      time.Duration
	checkTimeout time.Duration
	logger       *slog.Logger
}

func newBucket(cfg *config.Config, signer ObjectSigner, header ObjectHeader, logger *slog.Logger) *bucketStorage {
	b := &bucketStorage{
		cdnBase:      strings.TrimRight(cfg.Media.CDNBaseURL, "/"),
		signTTL:      time.Duration(cfg.Media.SignedURLTTL) * time.Second,
		checkTimeout: time.Duration(cfg.Media.StorageCheckTimeout) * time.Second,
		logger:       logger,
	}
	if cfg.Media.SignedURLs {
		b.signer = signer
	}
	if cfg.Media.VerifyObjects {
		b.header = header
	}
	return b
}

func (b *bucketStorage) Exists(ctx context.Context, clip catalog.Clip) bool {
	locator, ok := clip.Locator.(catalog.BucketLocator)
	if !ok || strings.TrimSpace(locator.Key) == "" {
		return false
	}
	if b.header == nil {
		return true
	}

	checkCtx, cancel := context.WithTimeout(ctx, b.checkTimeout)
	defer cancel()

	err := b.header.Head(checkCtx, locator.Key)
	switch {
	case err == nil:
		return true
	case errors.Is(err, ErrObjectMissing):
		return false
	default:
		// Backend unreachable or timed out; treated the same as missing so
		// the selector can retry another candidate.
		b.logger.Debug("bucket existence check failed",
			logging.String("key", locator.Key),
			logging.Error(err))
		return false
	}
}

func (b *bucketStorage) PlaybackURL(ctx context.Context, clip catalog.Clip) string {
	locator, ok := clip.Locator.(catalog.BucketLocator)
	if !ok || strings.TrimSpace(locator.Key) == "" {
		return ""
	}

	if b.signer != nil {
		signed, err := b.signer.SignGet(ctx, locator.Key, b.signTTL)
		if err == nil && signed != "" {
			return signed
		}
		b.logger.Warn("signing playback URL failed, serving unsigned CDN URL",
			logging.String("key", locator.Key),
			logging.Error(err))
	}
	return b.cdnBase + "/" + strings.TrimLeft(locator.Key, "/")
}
