package life

import (
	"container/list"
	"sync"

	"github.com/johnhw/hashlife/internal/debug"
	"github.com/johnhw/hashlife/internal/xsync"
	"github.com/johnhw/hashlife/pkg/opt"
	"github.com/johnhw/hashlife/pkg/quadtree"
)

// sentinelMax stands in for the Python reference implementation's `j=None`:
// "advance as far as this node's level allows." It is distinct from any
// valid step exponent, which is always >= 0.
const sentinelMax int32 = -1

// memoKey is the successor memo's key: a node identity paired with a step
// exponent. sentinelMax in J represents "no j given" — kept as a literal
// sentinel distinct from every real exponent, mirroring how the reference
// implementation's lru_cache keys on `None` as a value distinct from any
// int.
type memoKey struct {
	ID int64
	J  int32
}

// memo is the per-Store successor memo: Successor results depend only on
// node identity and step exponent, never on which Store instance minted the
// node, but two different Stores must not share a cache, since node
// identities from one Store carry no meaning in another's hash-cons table.
type memo struct {
	table xsync.Map[memoKey, *quadtree.Node]

	mu      sync.Mutex
	lru     *list.List
	lruElem map[memoKey]*list.Element
	cap     int
}

func newMemo(cfg Config) *memo {
	m := &memo{cap: cfg.SuccessorMemoCapacity}
	if m.cap > 0 {
		m.lru = list.New()
		m.lruElem = make(map[memoKey]*list.Element)
	}

	return m
}

// invalidate drops every memoized result. Called when the owning Store
// evicts a node, since a successor result computed from an evicted node may
// reference a *Node the store no longer considers live.
func (m *memo) invalidate() {
	m.table.Clear()

	m.mu.Lock()
	defer m.mu.Unlock()

	if m.lru != nil {
		m.lru = list.New()
		m.lruElem = make(map[memoKey]*list.Element)
	}
}

func (m *memo) touch(key memoKey) {
	if m.lru == nil {
		return
	}

	m.mu.Lock()
	defer m.mu.Unlock()

	if elem, ok := m.lruElem[key]; ok {
		m.lru.MoveToFront(elem)
		return
	}

	m.lruElem[key] = m.lru.PushFront(key)

	if m.lru.Len() <= m.cap {
		return
	}

	back := m.lru.Back()
	evicted := back.Value.(memoKey) //nolint:errcheck
	m.lru.Remove(back)
	delete(m.lruElem, evicted)
	m.table.Delete(evicted)
}

var memos xsync.Map[*quadtree.Store, *memo]

// memoFor returns the successor memo bound to s, creating it (and
// registering it to invalidate on s's own evictions) on first use. opts
// configure the memo the first time it's created for a given Store; later
// calls for the same Store ignore opts, since a memo's capacity cannot
// change once callers may be holding results from it.
func memoFor(s *quadtree.Store, opts ...Option) *memo {
	m, _ := memos.LoadOrStore(s, func() *memo {
		var cfg Config
		for _, o := range opts {
			o(&cfg)
		}

		m := newMemo(cfg)
		s.OnEvict(m.invalidate)

		return m
	})

	return m
}

// Successor returns the 2^(k-1) x 2^(k-1) central successor of m, 2^j
// generations in the future, where j defaults to the maximum supported at
// m's level (k - 2) when j is opt.None. Results are memoized by node
// identity and step exponent, so repeated calls for structurally identical
// subtrees are O(1) after the first.
//
// Successor panics with a *StepRangeError, which wraps ErrStepOutOfRange, if
// j is given and exceeds k - 2.
func Successor(s *quadtree.Store, m *quadtree.Node, j opt.Option[int], opts ...Option) *quadtree.Node {
	if j.IsSome() && j.Unwrap() > m.Level-2 {
		panic(&StepRangeError{Level: m.Level, J: j.Unwrap()})
	}

	return successor(s, memoFor(s, opts...), m, j)
}

func successor(s *quadtree.Store, mo *memo, m *quadtree.Node, j opt.Option[int]) *quadtree.Node {
	if m.IsZero() {
		return m.NW
	}

	clamped := m.Level - 2
	if j.IsSome() && j.Unwrap() < clamped {
		clamped = j.Unwrap()
	}
	debug.Assert(clamped <= m.Level-2, "step exponent %d exceeds max %d for level %d", clamped, m.Level-2, m.Level)

	key := memoKey{ID: m.ID, J: sentinelMax}
	if j.IsSome() {
		key.J = int32(clamped) //nolint:gosec
	}

	if cached, ok := mo.table.Load(key); ok {
		mo.touch(key)
		return cached
	}

	var result *quadtree.Node
	if m.Level == 2 {
		result = step4x4(s, m)
	} else {
		// Past this point j is always concrete: the reference implementation
		// reassigns its local j to this clamped value before recursing, so
		// every recursive call below — and every recursive call those calls
		// make in turn — passes a concrete step exponent, never "no j given."
		result = computeSuccessor(s, mo, m, opt.Some(clamped))
	}

	mo.table.Store(key, result)
	mo.touch(key)
	debug.Log(nil, "Successor", "level=%d j=%d -> level=%d", m.Level, clamped, result.Level)

	return result
}

// computeSuccessor performs the nine-way decomposition and one of the two
// recombination modes. j is always opt.Some here — see the comment in
// successor above. computeSuccessor never consults or updates the memo
// itself — that is successor's job — since the two recursive recombination
// modes below call successor (not computeSuccessor) on their intermediate
// joins, so those intermediate results get memoized too.
func computeSuccessor(s *quadtree.Store, mo *memo, m *quadtree.Node, j opt.Option[int]) *quadtree.Node {
	nw, ne, sw, se := m.NW, m.NE, m.SW, m.SE

	c1 := successor(s, mo, s.Join(nw.NW, nw.NE, nw.SW, nw.SE), j)
	c2 := successor(s, mo, s.Join(nw.NE, ne.NW, nw.SE, ne.SW), j)
	c3 := successor(s, mo, s.Join(ne.NW, ne.NE, ne.SW, ne.SE), j)
	c4 := successor(s, mo, s.Join(nw.SW, nw.SE, sw.NW, sw.NE), j)
	c5 := successor(s, mo, s.Join(nw.SE, ne.SW, sw.NE, se.NW), j)
	c6 := successor(s, mo, s.Join(ne.SW, ne.SE, se.NW, se.NE), j)
	c7 := successor(s, mo, s.Join(sw.NW, sw.NE, sw.SW, sw.SE), j)
	c8 := successor(s, mo, s.Join(sw.NE, se.NW, sw.SE, se.SW), j)
	c9 := successor(s, mo, s.Join(se.NW, se.NE, se.SW, se.SE), j)

	if j.Unwrap() < m.Level-2 {
		return s.Join(
			s.Join(c1.SE, c2.SW, c4.NE, c5.NW),
			s.Join(c2.SE, c3.SW, c5.NE, c6.NW),
			s.Join(c4.SE, c5.SW, c7.NE, c8.NW),
			s.Join(c5.SE, c6.SW, c8.NE, c9.NW),
		)
	}

	return s.Join(
		successor(s, mo, s.Join(c1, c2, c4, c5), j),
		successor(s, mo, s.Join(c2, c3, c5, c6), j),
		successor(s, mo, s.Join(c4, c5, c7, c8), j),
		successor(s, mo, s.Join(c5, c6, c8, c9), j),
	)
}
