package media

import (
	"context"

	"fitcoach/internal/catalog"
)

// externalStorage covers clips referenced by URL only. Playback through the
// engine is not implemented for this provider, so its media never resolves.
type externalStorage struct{}

func (externalStorage) Exists(ctx context.Context, clip catalog.Clip) bool { return false }

func (externalStorage) PlaybackURL(ctx context.Context, clip catalog.Clip) string { return "" }
