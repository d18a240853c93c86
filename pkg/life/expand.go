package life

import (
	"iter"

	"github.com/johnhw/hashlife/pkg/opt"
	"github.com/johnhw/hashlife/pkg/quadtree"
	"github.com/johnhw/hashlife/pkg/tuple"
	"github.com/johnhw/hashlife/pkg/xiter"
)

// Rect is an inclusive clip rectangle in cell coordinates, used by Expand to
// skip subtrees that fall entirely outside the region of interest.
type Rect struct {
	X0, Y0, X1, Y1 int64
}

func (r Rect) intersects(x, y, size int64) bool {
	return x+size > r.X0 && x <= r.X1 && y+size > r.Y0 && y <= r.Y1
}

// positioned is a node read out during Expand's traversal, together with
// its absolute top-left coordinate.
type positioned struct {
	node *quadtree.Node
	x, y int64
}

// Expand lazily reads a node out as a sequence of (x, y, intensity) triples.
//
// level "zooms out" the readout: at level 0 every on-cell is reported
// individually at intensity 1.0, while at a higher level every node at that
// level is reported once, at coordinates scaled down by 2^level and an
// intensity equal to its population density (population / 2^(2*level)).
// clip, when given, restricts the readout to a rectangle in the original
// (unscaled) coordinate space: the traversal prunes any subtree that falls
// entirely outside it, and a final xiter.Filter pass re-checks every
// reported point against the same rectangle as a correctness gate over the
// stitched-together sequence.
//
// Expand never evaluates more of the tree than the consumer asks for: it is
// an iter.Seq, so a caller that calls break partway through a range leaves
// the rest of the tree unvisited.
func Expand(node *quadtree.Node, level int, clip opt.Option[Rect]) iter.Seq[tuple.Tuple3[int64, int64, float64]] {
	positions := collect(node, 0, 0, level, clip)

	if clip.IsSome() {
		r := clip.Unwrap()
		positions = xiter.Filter(positions, func(p positioned) bool {
			return r.intersects(p.x, p.y, p.node.Side())
		})
	}

	return xiter.Map(positions, func(p positioned) tuple.Tuple3[int64, int64, float64] {
		size := p.node.Side()
		gray := float64(p.node.Population) / float64(size*size)

		return tuple.New3(p.x>>uint(level), p.y>>uint(level), gray)
	})
}

// collect walks node down to level, yielding every surviving node along with
// its absolute position, pruning any subtree whose bounding box falls
// entirely outside clip.
func collect(node *quadtree.Node, x, y int64, level int, clip opt.Option[Rect]) iter.Seq[positioned] {
	if node.IsZero() {
		return xiter.Empty[positioned]()
	}

	size := node.Side()

	if clip.IsSome() && !clip.Unwrap().intersects(x, y, size) {
		return xiter.Empty[positioned]()
	}

	if node.Level == level {
		p := positioned{node, x, y}

		return func(yield func(positioned) bool) {
			yield(p)
		}
	}

	offset := size >> 1

	return func(yield func(positioned) bool) {
		xiter.Chain(
			collect(node.NW, x, y, level, clip),
			collect(node.NE, x+offset, y, level, clip),
			collect(node.SW, x, y+offset, level, clip),
			collect(node.SE, x+offset, y+offset, level, clip),
		)(yield)
	}
}
