package matcher

import "time"

// DefaultMatchTimeout bounds a single backtracking match attempt.
const DefaultMatchTimeout = 5 * time.Second

type options struct {
	matchTimeout time.Duration
	prefilter    bool
}

func defaultOptions() options {
	return options{
		matchTimeout: DefaultMatchTimeout,
		prefilter:    true,
	}
}

// Option configures a regular expression matcher.
type Option func(*options)

// WithMatchTimeout sets the per-line timeout of the backtracking engine.
// Zero disables the timeout.
func WithMatchTimeout(d time.Duration) Option {
	return func(o *options) {
		o.matchTimeout = d
	}
}

// WithoutPrefilter disables the literal keyword prefilter.
func WithoutPrefilter() Option {
	return func(o *options) {
		o.prefilter = false
	}
}
