package traittab

type options struct {
	logger *Logger
}

// Option configures Table and RowWriter behavior.
type Option func(*options)

// WithLogger configures the structured logger used for row-level
// diagnostics (malformed rows, skipped rows, NA substitutions).
//
// If nil is passed, logging is disabled.
func WithLogger(l *Logger) Option {
	return func(o *options) {
		if l == nil {
			l = NoopLogger()
		}
		o.logger = l
	}
}

func applyOptions(optFns ...Option) *options {
	o := &options{
		logger: NoopLogger(),
	}
	for _, fn := range optFns {
		fn(o)
	}
	return o
}
