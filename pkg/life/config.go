package life

// Config tunes the capacity of a Successor memo. The zero Config is
// unbounded, which is the recommended default.
type Config struct {
	// SuccessorMemoCapacity bounds the number of (node, step) results a
	// Memo retains before it starts evicting least-recently-used entries.
	// Zero means unbounded.
	SuccessorMemoCapacity int
}

// Option configures a Memo at construction time.
type Option func(*Config)

// WithSuccessorMemoCapacity bounds the number of memoized successor results
// a Memo will retain before evicting least-recently-used entries.
func WithSuccessorMemoCapacity(n int) Option {
	return func(c *Config) { c.SuccessorMemoCapacity = n }
}
