package quadtree

// Config tunes the capacity limits of a Store. The zero Config is fully
// unbounded, which is the recommended default: hash-consing means a given
// subpattern is allocated at most once, so most workloads never need to
// evict anything.
type Config struct {
	// NodeStoreCapacity bounds the number of distinct nodes a Store will
	// hash-cons before it starts evicting the least recently used entry.
	// Zero means unbounded.
	NodeStoreCapacity int

	// ZeroPyramidCapacity bounds how many levels of the zero pyramid are
	// memoized. Zero selects the default of 1024.
	ZeroPyramidCapacity int
}

const defaultZeroPyramidCapacity = 1024

// Option configures a Store at construction time.
type Option func(*Config)

// WithNodeStoreCapacity bounds the number of hash-consed nodes a Store will
// retain before evicting least-recently-used entries.
func WithNodeStoreCapacity(n int) Option {
	return func(c *Config) { c.NodeStoreCapacity = n }
}

// WithZeroPyramidCapacity bounds how many levels of the zero pyramid are
// memoized.
func WithZeroPyramidCapacity(n int) Option {
	return func(c *Config) { c.ZeroPyramidCapacity = n }
}

func (c Config) withDefaults() Config {
	if c.ZeroPyramidCapacity == 0 {
		c.ZeroPyramidCapacity = defaultZeroPyramidCapacity
	}

	return c
}
