package ingest

import (
	"go.uber.org/zap"

	"github.com/tweedegolf/bag-address-lookup/internal/options"
)

type config struct {
	logger *zap.Logger
}

// Option configures a build.
type Option = options.Option[*config]

func defaultConfig() config {
	return config{
		logger: zap.NewNop(),
	}
}

// WithLogger sets the logger used for progress reporting during a build.
// The pipeline is silent by default. A nil logger is ignored.
func WithLogger(logger *zap.Logger) Option {
	return options.NoError(func(c *config) {
		if logger != nil {
			c.logger = logger
		}
	})
}
