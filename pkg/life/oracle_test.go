package life_test

import (
	"errors"
	"testing"

	. "github.com/smartystreets/goconvey/convey"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	. "github.com/johnhw/hashlife/pkg/life"
	"github.com/johnhw/hashlife/pkg/opt"
	"github.com/johnhw/hashlife/pkg/quadtree"
	"github.com/johnhw/hashlife/pkg/xerrors"
)

// baselineLife is a deliberately naive reimplementation of the standard
// Life rule over a plain set of (x, y) coordinates, used as a test oracle
// against the quadtree-based implementation. It exists only to cross-check
// Advance; production code never uses it.
func baselineLife(cells map[[2]int64]bool) map[[2]int64]bool {
	neighbours := map[[2]int64]int{}
	for c := range cells {
		for dx := int64(-1); dx <= 1; dx++ {
			for dy := int64(-1); dy <= 1; dy++ {
				neighbours[[2]int64{c[0] + dx, c[1] + dy}]++
			}
		}
	}

	next := map[[2]int64]bool{}
	for p, n := range neighbours {
		if n == 3 || (n == 4 && cells[p]) {
			next[p] = true
		}
	}

	return next
}

func toCells(pts [][2]int64) []quadtree.Cell {
	cells := make([]quadtree.Cell, len(pts))
	for i, p := range pts {
		cells[i] = quadtree.Cell{X: p[0], Y: p[1]}
	}

	return cells
}

// normalize shifts pts so their minimum x and y are both 0. Pad and each
// Centre move the pattern's origin, so the oracle's output and the
// quadtree-based pipeline's are both normalized before being compared.
func normalize(pts [][2]int64) [][2]int64 {
	minX, minY := pts[0][0], pts[0][1]
	for _, p := range pts[1:] {
		if p[0] < minX {
			minX = p[0]
		}
		if p[1] < minY {
			minY = p[1]
		}
	}

	out := make([][2]int64, len(pts))
	for i, p := range pts {
		out[i] = [2]int64{p[0] - minX, p[1] - minY}
	}

	return out
}

func toSet(pts [][2]int64) map[[2]int64]bool {
	set := make(map[[2]int64]bool, len(pts))
	for _, p := range pts {
		set[p] = true
	}

	return set
}

func normalizeSet(set map[[2]int64]bool) map[[2]int64]bool {
	pts := make([][2]int64, 0, len(set))
	for p := range set {
		pts = append(pts, p)
	}

	return toSet(normalize(pts))
}

// advanceAndReadBack builds a pattern, pads it, advances it n generations,
// and reads the on-cells back out as a set for comparison against
// baselineLife. The Pad call supplies the empty border the first Successor
// step needs; Advance's own one Centre per bit of n does not add it.
func advanceAndReadBack(t *testing.T, pts [][2]int64, n uint64) map[[2]int64]bool {
	t.Helper()

	s := quadtree.NewStore()
	built := Construct(s, toCells(pts))
	require.True(t, built.IsOk())

	advanced := Advance(s, s.Pad(built.Unwrap()), n)

	result := map[[2]int64]bool{}
	for p := range Expand(advanced, 0, opt.None[Rect]()) {
		x, y, gray := p.Unpack()
		if gray > 0 {
			result[[2]int64{x, y}] = true
		}
	}

	return result
}

func TestAdvanceAgainstBaselineOracle(t *testing.T) {
	scenarios := []struct {
		name string
		cells [][2]int64
		gens uint64
	}{
		{
			name:  "blinker",
			cells: [][2]int64{{10, 9}, {10, 10}, {10, 11}},
			gens:  1,
		},
		{
			name:  "block (still life)",
			cells: [][2]int64{{10, 10}, {11, 10}, {10, 11}, {11, 11}},
			gens:  3,
		},
		{
			name: "glider",
			cells: [][2]int64{
				{11, 10}, {12, 11}, {10, 12}, {11, 12}, {12, 12},
			},
			gens: 4,
		},
		{
			// gens = 0b1011: several consecutive set bits plus an isolated
			// one, exercising Advance's handling of multiple Successor calls
			// against a single pad budget, not just a single set bit.
			name: "glider, eleven generations",
			cells: [][2]int64{
				{11, 10}, {12, 11}, {10, 12}, {11, 12}, {12, 12},
			},
			gens: 11,
		},
		{
			// A literal cell list standing in for the Gosper glider gun,
			// since RLE parsing is out of scope for this package.
			name: "gosper glider gun",
			cells: [][2]int64{
				{1, 5}, {1, 6}, {2, 5}, {2, 6},
				{11, 5}, {11, 6}, {11, 7},
				{12, 4}, {12, 8},
				{13, 3}, {13, 9},
				{14, 3}, {14, 9},
				{15, 6},
				{16, 4}, {16, 8},
				{17, 5}, {17, 6}, {17, 7},
				{18, 6},
				{21, 3}, {21, 4}, {21, 5},
				{22, 3}, {22, 4}, {22, 5},
				{23, 2}, {23, 6},
				{25, 1}, {25, 2}, {25, 6}, {25, 7},
				{35, 3}, {35, 4}, {36, 3}, {36, 4},
			},
			gens: 1,
		},
	}

	for _, sc := range scenarios {
		sc := sc
		t.Run(sc.name, func(t *testing.T) {
			cells := normalize(sc.cells)

			got := advanceAndReadBack(t, cells, sc.gens)

			want := toSet(cells)
			for i := uint64(0); i < sc.gens; i++ {
				want = baselineLife(want)
			}

			assert.Equal(t, normalizeSet(want), normalizeSet(got))
		})
	}
}

func TestConstructEmptyPattern(t *testing.T) {
	Convey("Given an empty cell list", t, func() {
		s := quadtree.NewStore()

		Convey("Construct reports a documented error rather than a silent empty node", func() {
			result := Construct(s, nil)
			So(result.IsErr(), ShouldBeTrue)
			So(result.Err, ShouldEqual, ErrEmptyPattern)
		})
	})
}

func TestSuccessorStepOutOfRange(t *testing.T) {
	Convey("Given a level-2 node", t, func() {
		s := quadtree.NewStore()
		m := s.Join(
			s.Join(quadtree.On, quadtree.Off, quadtree.Off, quadtree.On),
			s.Join(quadtree.Off, quadtree.On, quadtree.On, quadtree.Off),
			s.Join(quadtree.On, quadtree.On, quadtree.Off, quadtree.Off),
			s.Join(quadtree.Off, quadtree.Off, quadtree.On, quadtree.On),
		)

		Convey("Successor panics with a StepRangeError wrapping ErrStepOutOfRange when j exceeds k-2", func() {
			defer func() {
				r := recover()
				require.NotNil(t, r)

				err, ok := r.(error)
				require.True(t, ok)
				So(errors.Is(err, ErrStepOutOfRange), ShouldBeTrue)

				rangeErr, ok := xerrors.AsA[*StepRangeError](err)
				So(ok, ShouldBeTrue)
				So(rangeErr.Level, ShouldEqual, m.Level)
				So(rangeErr.J, ShouldEqual, 1)
			}()

			Successor(s, m, opt.Some(1))
		})

		Convey("Successor accepts j == k-2", func() {
			So(func() { Successor(s, m, opt.Some(0)) }, ShouldNotPanic)
		})
	})
}

func TestExpandZoomLaw(t *testing.T) {
	Convey("Given a fully-on level-2 block", t, func() {
		s := quadtree.NewStore()
		m := s.Join(quadtree.On, quadtree.On, quadtree.On, quadtree.On)
		block := s.Join(m, m, m, m)

		Convey("Expanding at the block's own level reports one point at full intensity", func() {
			var points []float64
			for p := range Expand(block, block.Level, opt.None[Rect]()) {
				_, _, gray := p.Unpack()
				points = append(points, gray)
			}

			So(points, ShouldHaveLength, 1)
			So(points[0], ShouldEqual, 1.0)
		})

		Convey("Expanding at level 0 reports every individual on-cell", func() {
			count := 0
			for range Expand(block, 0, opt.None[Rect]()) {
				count++
			}

			So(count, ShouldEqual, int(block.Population))
		})
	})
}

func TestExpandClippingLaw(t *testing.T) {
	Convey("Given a pattern spanning a wide area", t, func() {
		s := quadtree.NewStore()
		built := Construct(s, toCells([][2]int64{{0, 0}, {15, 15}}))
		require.True(t, built.IsOk())
		node := built.Unwrap()

		Convey("A clip rectangle containing only one corner excludes the other", func() {
			clip := opt.Some(Rect{X0: 0, Y0: 0, X1: 2, Y1: 2})

			found := map[[2]int64]bool{}
			for p := range Expand(node, 0, clip) {
				x, y, gray := p.Unpack()
				if gray > 0 {
					found[[2]int64{x, y}] = true
				}
			}

			So(found[[2]int64{0, 0}], ShouldBeTrue)
			So(found[[2]int64{15, 15}], ShouldBeFalse)
		})
	})
}
