package main

import (
	"context"
	"log/slog"
	"strings"
	"sync"

	"fitcoach/internal/catalog"
	"fitcoach/internal/config"
	"fitcoach/internal/logging"
	"fitcoach/internal/media"
)

type commandContext struct {
	configFlag *string

	configOnce sync.Once
	config     *config.Config
	configErr  error
}

func newCommandContext(configFlag *string) *commandContext {
	return &commandContext{configFlag: configFlag}
}

func (c *commandContext) ensureConfig() (*config.Config, error) {
	c.configOnce.Do(func() {
		var path string
		if c.configFlag != nil {
			path = strings.TrimSpace(*c.configFlag)
		}
		cfg, _, _, err := config.Load(path)
		if err != nil {
			c.configErr = err
			return
		}
		if err := cfg.EnsureDirectories(); err != nil {
			c.configErr = err
			return
		}
		c.config = cfg
	})
	return c.config, c.configErr
}

// openRegistry wires the media registry, attaching the S3 client only when
// signing or verification is enabled. Client construction failure degrades
// to unsigned CDN URLs rather than aborting.
func (c *commandContext) openRegistry(ctx context.Context, cfg *config.Config, logger *slog.Logger) *media.Registry {
	var signer media.ObjectSigner
	var header media.ObjectHeader
	if cfg.Media.SignedURLs || cfg.Media.VerifyObjects {
		client, err := media.NewS3Client(ctx, cfg)
		if err != nil {
			logger.Warn("bucket client unavailable, serving unsigned URLs without verification",
				logging.Error(err))
		} else {
			signer = client
			header = client
		}
	}
	return media.NewRegistry(cfg, signer, header, logger)
}

func (c *commandContext) openStore(cfg *config.Config) (*catalog.Store, error) {
	return catalog.Open(cfg)
}
