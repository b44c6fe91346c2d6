package config

const (
	defaultDataDir             = "~/.local/share/fitcoach"
	defaultLogDir              = "~/.local/share/fitcoach/logs"
	defaultAPIBind             = "127.0.0.1:8973"
	defaultLogFormat           = "console"
	defaultLogLevel            = "info"
	defaultStreamURLTemplate   = "https://stream.mux.com/%s.m3u8"
	defaultSignedURLTTL        = 900
	defaultStorageCheckTimeout = 2
	defaultMaxCandidatesPerKey = 5
	defaultStorageRetryLimit   = 3
	defaultMistakeProbability  = 0.3
	defaultMotivationEvery     = 3
)

// Default returns a Config populated with repository defaults.
func Default() Config {
	return Config{
		Paths: Paths{
			DataDir: defaultDataDir,
			LogDir:  defaultLogDir,
			APIBind: defaultAPIBind,
		},
		Media: Media{
			StreamURLTemplate:   defaultStreamURLTemplate,
			SignedURLTTL:        defaultSignedURLTTL,
			StorageCheckTimeout: defaultStorageCheckTimeout,
		},
		Playlist: Playlist{
			MaxCandidatesPerKey: defaultMaxCandidatesPerKey,
			StorageRetryLimit:   defaultStorageRetryLimit,
			MistakeProbability:  defaultMistakeProbability,
			MotivationEvery:     defaultMotivationEvery,
			FallbackOrder:       DefaultFallbackOrder(),
		},
		Logging: Logging{
			Format: defaultLogFormat,
			Level:  defaultLogLevel,
		},
	}
}

// DefaultFallbackOrder returns the shipped archetype fallback ladders. The
// primary archetype always leads its own ladder.
func DefaultFallbackOrder() map[string][]string {
	return map[string][]string{
		"mentor":       {"mentor", "professional", "peer"},
		"professional": {"professional", "mentor", "peer"},
		"peer":         {"peer", "mentor", "professional"},
	}
}
