package dedupe

// defaultMaxSize bounds the seen set when no option overrides it.
const defaultMaxSize = 50000

// Option applies a configuration option to the tracker.
type Option func(*tracker)

// WithMaxSize bounds the number of IDs kept in memory.
func WithMaxSize(size int) Option {
	return func(t *tracker) {
		if size > 0 {
			t.maxSize = size
		}
	}
}
