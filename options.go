package ptrie

import "github.com/rs/zerolog"

type options struct {
	logger zerolog.Logger
}

// Option configures a Trie.
type Option func(*options)

// WithLogger sets the logger used for structural mutations. Reads are never
// logged.
func WithLogger(l zerolog.Logger) Option {
	return func(o *options) {
		o.logger = l
	}
}

func defaultOptions() options {
	return options{logger: zerolog.Nop()}
}
