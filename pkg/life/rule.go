// Package life implements Conway's Game of Life on top of pkg/quadtree: the
// 4x4 base rule, the memoized recursive successor, pattern construction, the
// advance/fast-forward drivers, and the lazy expand/readout operator.
package life

import "github.com/johnhw/hashlife/pkg/quadtree"

// rule applies the standard Life transition to a single cell E given its
// eight neighbours a, b, c, d, f, g, h, i (reading the 3x3 neighbourhood
// left-to-right, top-to-bottom, skipping the centre). All nine arguments are
// level-0 leaves.
func rule(a, b, c, d, e, f, g, h, i *quadtree.Node) *quadtree.Node {
	outer := a.Population + b.Population + c.Population + d.Population +
		f.Population + g.Population + h.Population + i.Population

	if (e.Population != 0 && outer == 2) || outer == 3 {
		return quadtree.On
	}

	return quadtree.Off
}

// step4x4 computes the central 2x2 successor of a level-2 (4x4) node, one
// generation forward, by applying rule to each of the four overlapping 3x3
// neighbourhoods of its sixteen level-0 grandchildren. This is the base case
// Successor recurses down to.
func step4x4(s *quadtree.Store, m *quadtree.Node) *quadtree.Node {
	nw, ne, sw, se := m.NW, m.NE, m.SW, m.SE

	na := rule(nw.NW, nw.NE, ne.NW, nw.SW, nw.SE, ne.SW, sw.NW, sw.NE, se.NW)
	nb := rule(nw.NE, ne.NW, ne.NE, nw.SE, ne.SW, ne.SE, sw.NE, se.NW, se.NE)
	nc := rule(nw.SW, nw.SE, ne.SW, sw.NW, sw.NE, se.NW, sw.SW, sw.SE, se.SW)
	nd := rule(nw.SE, ne.SW, ne.SE, sw.NE, se.NW, se.NE, sw.SE, se.SW, se.SE)

	return s.Join(na, nb, nc, nd)
}
