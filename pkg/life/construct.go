package life

import (
	"github.com/johnhw/hashlife/pkg/quadtree"
	"github.com/johnhw/hashlife/pkg/res"
)

// Construct builds a quadtree from a finite list of on-cells, normalizing
// the pattern so its minimum coordinate sits at (0, 0), then repeatedly
// pairing cells into 2x2 blocks (bottom-up) until a single node remains.
//
// Construct returns res.Err(ErrEmptyPattern) when given no cells, rather
// than silently returning an empty node — see ErrEmptyPattern. The returned
// node is not padded; callers that intend to call Successor or Advance on it
// should pad it first via quadtree.Pad.
func Construct(s *quadtree.Store, cells []quadtree.Cell) res.Result[*quadtree.Node] {
	if len(cells) == 0 {
		return res.Err[*quadtree.Node](ErrEmptyPattern)
	}

	minX, minY := cells[0].X, cells[0].Y
	for _, c := range cells[1:] {
		if c.X < minX {
			minX = c.X
		}
		if c.Y < minY {
			minY = c.Y
		}
	}

	type coord struct{ X, Y int64 }

	level := map[coord]*quadtree.Node{}
	for _, c := range cells {
		level[coord{c.X - minX, c.Y - minY}] = quadtree.On
	}

	k := 0
	for len(level) != 1 {
		next := map[coord]*quadtree.Node{}
		zero := s.Zero(k)

		for len(level) > 0 {
			var x, y int64
			for p := range level {
				x, y = p.X, p.Y
				break
			}
			x -= x & 1
			y -= y & 1

			nw := takeOr(level, coord{x, y}, zero)
			ne := takeOr(level, coord{x + 1, y}, zero)
			sw := takeOr(level, coord{x, y + 1}, zero)
			se := takeOr(level, coord{x + 1, y + 1}, zero)

			next[coord{x >> 1, y >> 1}] = s.Join(nw, ne, sw, se)
		}

		level = next
		k++
	}

	for _, n := range level {
		return res.Ok(n)
	}

	panic("unreachable: level always has exactly one entry here")
}

func takeOr[K comparable, V any](m map[K]V, key K, def V) V {
	if v, ok := m[key]; ok {
		delete(m, key)
		return v
	}

	return def
}
