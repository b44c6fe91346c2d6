package media

import (
	"context"
	"errors"
	"testing"
	"time"

	"fitcoach/internal/catalog"
	"fitcoach/internal/config"
	"fitcoach/internal/logging"
)

type fakeSigner struct {
	url string
	err error
}

func (f fakeSigner) SignGet(ctx context.Context, key string, ttl time.Duration) (string, error) {
	return f.url, f.err
}

type fakeHeader struct {
	err error
}

func (f fakeHeader) Head(ctx context.Context, key string) error { return f.err }

func bucketClip(key string) catalog.Clip {
	return catalog.Clip{ID: 1, Kind: catalog.KindTechnique, Locator: catalog.BucketLocator{Key: key}}
}

func TestBucketPlaybackURLUnsigned(t *testing.T) {
	cfg := config.Default()
	cfg.Media.CDNBaseURL = "https://cdn.example.com"

	b := newBucket(&cfg, nil, nil, logging.NewNop())
	got := b.PlaybackURL(context.Background(), bucketClip("videos/pushups.mp4"))
	want := "https://cdn.example.com/videos/pushups.mp4"
	if got != want {
		t.Fatalf("PlaybackURL = %q, want %q", got, want)
	}
}

func TestBucketPlaybackURLSigned(t *testing.T) {
	cfg := config.Default()
	cfg.Media.CDNBaseURL = "https://cdn.example.com"
	cfg.Media.SignedURLs = true
	cfg.Media.S3Bucket = "clips"

	b := newBucket(&cfg, fakeSigner{url: "https://signed.example.com/x?sig=abc"}, nil, logging.NewNop())
	got := b.PlaybackURL(context.Background(), bucketClip("videos/pushups.mp4"))
	if got != "https://signed.example.com/x?sig=abc" {
		t.Fatalf("expected signed URL, got %q", got)
	}
}

func TestBucketPlaybackURLSignFailureFallsBack(t *testing.T) {
	cfg := config.Default()
	cfg.Media.CDNBaseURL = "https://cdn.example.com"
	cfg.Media.SignedURLs = true
	cfg.Media.S3Bucket = "clips"

	b := newBucket(&cfg, fakeSigner{err: errors.New("credentials expired")}, nil, logging.NewNop())
	got := b.PlaybackURL(context.Background(), bucketClip("videos/pushups.mp4"))
	if got != "https://cdn.example.com/videos/pushups.mp4" {
		t.Fatalf("expected unsigned fallback, got %q", got)
	}
}

func TestBucketExists(t *testing.T) {
	cfg := config.Default()

	b := newBucket(&cfg, nil, nil, logging.NewNop())
	if !b.Exists(context.Background(), bucketClip("videos/ok.mp4")) {
		t.Fatal("expected locator presence to count as existing")
	}
	if b.Exists(context.Background(), bucketClip("")) {
		t.Fatal("expected empty key to read as missing")
	}
}

func TestBucketExistsWithVerification(t *testing.T) {
	cfg := config.Default()
	cfg.Media.VerifyObjects = true
	cfg.Media.S3Bucket = "clips"

	cases := []struct {
		name string
		err  error
		want bool
	}{
		{name: "present", err: nil, want: true},
		{name: "missing", err: ErrObjectMissing, want: false},
		{name: "backend failure reads as missing", err: errors.New("connection reset"), want: false},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			b := newBucket(&cfg, nil, fakeHeader{err: tc.err}, logging.NewNop())
			got := b.Exists(context.Background(), bucketClip("videos/x.mp4"))
			if got != tc.want {
				t.Fatalf("Exists = %v, want %v", got, tc.want)
			}
		})
	}
}

func TestStreamStorage(t *testing.T) {
	s := newStream("https://stream.mux.com/%s.m3u8")
	ctx := context.Background()

	both := catalog.Clip{Locator: catalog.StreamLocator{PlaybackID: "pb1", StreamID: "st1"}}
	if got := s.PlaybackURL(ctx, both); got != "https://stream.mux.com/pb1.m3u8" {
		t.Fatalf("expected playback id preferred, got %q", got)
	}

	streamOnly := catalog.Clip{Locator: catalog.StreamLocator{StreamID: "st1"}}
	if got := s.PlaybackURL(ctx, streamOnly); got != "https://stream.mux.com/st1.m3u8" {
		t.Fatalf("expected stream id fallback, got %q", got)
	}
	if !s.Exists(ctx, streamOnly) {
		t.Fatal("expected stream id to count as existing")
	}

	empty := catalog.Clip{Locator: catalog.StreamLocator{}}
	if s.Exists(ctx, empty) {
		t.Fatal("expected empty stream locator to read as missing")
	}
	if got := s.PlaybackURL(ctx, empty); got != "" {
		t.Fatalf("expected empty URL, got %q", got)
	}
}

func TestExternalStorage(t *testing.T) {
	ctx := context.Background()
	clip := catalog.Clip{Locator: catalog.ExternalLocator{URL: "https://youtube.com/watch?v=abc"}}

	var ext externalStorage
	if ext.Exists(ctx, clip) {
		t.Fatal("external provider must report missing")
	}
	if got := ext.PlaybackURL(ctx, clip); got != "" {
		t.Fatalf("external provider must return empty URL, got %q", got)
	}
}

func TestRegistryRoutesByLocator(t *testing.T) {
	cfg := config.Default()
	cfg.Media.CDNBaseURL = "https://cdn.example.com"
	reg := NewRegistry(&cfg, nil, nil, logging.NewNop())
	ctx := context.Background()

	if got := reg.PlaybackURL(ctx, bucketClip("a.mp4")); got != "https://cdn.example.com/a.mp4" {
		t.Fatalf("bucket routing failed: %q", got)
	}
	stream := catalog.Clip{Locator: catalog.StreamLocator{PlaybackID: "pb9"}}
	if got := reg.PlaybackURL(ctx, stream); got != "https://stream.mux.com/pb9.m3u8" {
		t.Fatalf("stream routing failed: %q", got)
	}
	external := catalog.Clip{Locator: catalog.ExternalLocator{URL: "https://x"}}
	if reg.Exists(ctx, external) {
		t.Fatal("external routing failed")
	}
}
