package attendance

import "go.uber.org/zap"

type options struct {
	cache  RateCache
	strict bool
	log    *zap.Logger
}

type Option func(*options)

// WithCache enables rate memoization. Recorder invalidates the days it touches.
func WithCache(c RateCache) Option {
	return func(o *options) {
		if c != nil {
			o.cache = c
		}
	}
}

// WithStrictStatus makes the Recorder skip entries whose status is not a known Status.
func WithStrictStatus(strict bool) Option {
	return func(o *options) { o.strict = strict }
}

func WithLogger(log *zap.Logger) Option {
	return func(o *options) {
		if log != nil {
			o.log = log
		}
	}
}

func buildOptions(opts []Option) options {
	o := options{cache: noopCache{}, log: zap.NewNop()}
	for _, opt := range opts {
		opt(&o)
	}
	return o
}
