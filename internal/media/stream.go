package media

import (
	"context"
	"fmt"
	"strings"

	"fitcoach/internal/catalog"
)

// streamStorage serves hosted HLS streams addressed by playback or stream id.
type streamStorage struct {
	manifestTemplate string
}

func newStream(template string) streamStorage {
	return streamStorage{manifestTemplate: strings.TrimSpace(template)}
}

func (s streamStorage) Exists(ctx context.Context, clip catalog.Clip) bool {
	locator, ok := clip.Locator.(catalog.StreamLocator)
	if !ok {
		return false
	}
	return locator.PlaybackID != "" || locator.StreamID != ""
}

func (s streamStorage) PlaybackURL(ctx context.Context, clip catalog.Clip) string {
	locator, ok := clip.Locator.(catalog.StreamLocator)
	if !ok || s.manifestTemplate == "" {
		return ""
	}
	id := locator.PlaybackID
	if id == "" {
		id = locator.StreamID
	}
	if id == "" {
		return ""
	}
	return fmt.Sprintf(s.manifestTemplate, id)
}
