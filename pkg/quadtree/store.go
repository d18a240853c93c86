package quadtree

import (
	"container/list"
	"sync"

	"github.com/johnhw/hashlife/internal/debug"
	"github.com/johnhw/hashlife/internal/xsync"
	"github.com/johnhw/hashlife/pkg/arena"
)

// ChildKey identifies a node by the identities of its four children. It is
// the hash-cons side-table key, and (paired with a step exponent) half of
// the successor memo key in pkg/life.
type ChildKey struct {
	NW, NE, SW, SE int64
}

// Store is a hash-consing node factory: joining the same four children
// returns the same *Node, no matter how many times or from how many
// goroutines the join is requested. When NodeStoreCapacity bounds the store,
// this holds only while the combination's entry has not been evicted; a Join
// after eviction mints a fresh node.
//
// Store is safe for concurrent use. Nodes allocated by a Store are never
// mutated after construction, so once a caller holds a *Node it may be
// shared freely across goroutines.
type Store struct {
	cfg Config

	arena arena.Arena[Node]
	nodes xsync.Map[ChildKey, *Node]

	// lru and lruElem implement least-recently-used eviction when
	// cfg.NodeStoreCapacity is nonzero. Both are guarded by lruMu; xsync.Map
	// itself has no notion of eviction order.
	lruMu   sync.Mutex
	lru     *list.List
	lruElem map[ChildKey]*list.Element

	evictMu sync.Mutex
	onEvict []func()

	zero zeroPyramid
}

// NewStore creates an empty Store configured by opts.
func NewStore(opts ...Option) *Store {
	var cfg Config
	for _, opt := range opts {
		opt(&cfg)
	}
	cfg = cfg.withDefaults()

	s := &Store{cfg: cfg}
	s.zero.capacity = cfg.ZeroPyramidCapacity

	if cfg.NodeStoreCapacity > 0 {
		s.lru = list.New()
		s.lruElem = make(map[ChildKey]*list.Element)
	}

	return s
}

// OnEvict registers a callback invoked whenever Join's LRU eviction drops a
// node from the store. It exists so derived caches (pkg/life's successor
// memo) can invalidate themselves wholesale rather than leaving a stale
// reference to an evicted node — see Store.touch.
func (s *Store) OnEvict(f func()) {
	s.evictMu.Lock()
	defer s.evictMu.Unlock()

	s.onEvict = append(s.onEvict, f)
}

// Join combines four same-level children into their parent node, minting a
// new node only the first time this exact combination of children is seen.
//
// Join panics with ErrLevelMismatch if the four children are not all at the
// same level — this is checked unconditionally since the check is O(1) and
// the condition it guards against is always a caller bug.
func (s *Store) Join(nw, ne, sw, se *Node) *Node {
	if nw.Level != ne.Level || ne.Level != sw.Level || sw.Level != se.Level {
		panic(ErrLevelMismatch)
	}
	debug.Log(nil, "Join", "level=%d", nw.Level)

	key := ChildKey{nw.ID, ne.ID, sw.ID, se.ID}

	node, _ := s.nodes.LoadOrStore(key, func() *Node {
		n := s.arena.Alloc()
		n.Level = nw.Level + 1
		n.NW, n.NE, n.SW, n.SE = nw, ne, sw, se
		n.Population = nw.Population + ne.Population + sw.Population + se.Population
		n.ID = identity(nw.Level, nw.ID, ne.ID, sw.ID, se.ID)

		return n
	})

	s.touch(key)

	return node
}

// touch records key as most-recently-used and evicts the least-recently-used
// entry if the store is over capacity. A no-op when the store is unbounded.
//
// Eviction only drops the hash-cons lookup entry: the evicted node's memory
// is not reclaimed, since a node still reachable as a child of some other
// live node (one that is itself still in the table, or held directly by a
// caller) must stay valid. A later Join that reconstructs the same child
// combination simply mints a fresh node and re-populates the entry.
func (s *Store) touch(key ChildKey) {
	if s.lru == nil {
		return
	}

	s.lruMu.Lock()
	defer s.lruMu.Unlock()

	if elem, ok := s.lruElem[key]; ok {
		s.lru.MoveToFront(elem)
		return
	}

	s.lruElem[key] = s.lru.PushFront(key)

	if s.lru.Len() <= s.cfg.NodeStoreCapacity {
		return
	}

	back := s.lru.Back()
	evicted := back.Value.(ChildKey) //nolint:errcheck
	s.lru.Remove(back)
	delete(s.lruElem, evicted)
	s.nodes.Delete(evicted)

	s.evictMu.Lock()
	hooks := append([]func(){}, s.onEvict...)
	s.evictMu.Unlock()

	for _, hook := range hooks {
		hook()
	}
}

// Stats reports the number of distinct nodes hash-consed so far, bucketed by
// level. It exists to support saturation tests (e.g. confirming that all
// 2^16 distinct 4x4 patterns hash-cons down to exactly 2^16 level-2 nodes).
func (s *Store) Stats() map[int]int {
	counts := make(map[int]int)

	for _, n := range s.nodes.All() {
		counts[n.Level]++
	}

	return counts
}
