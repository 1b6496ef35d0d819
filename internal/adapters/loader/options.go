package loader

import "github.com/leodovqa/palworld-data-tool/pkg/logger"

// Option applies a configuration option to a load.
type Option func(*loader)

// WithLogger sets the logger used for degraded inputs.
func WithLogger(l logger.Logger) Option {
	return func(ld *loader) {
		if l != nil {
			ld.logger = l
		}
	}
}
