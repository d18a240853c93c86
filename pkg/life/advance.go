package life

import (
	"github.com/johnhw/hashlife/pkg/either"
	"github.com/johnhw/hashlife/pkg/opt"
	"github.com/johnhw/hashlife/pkg/quadtree"
	"github.com/johnhw/hashlife/pkg/tuple"
)

// FastForward advances node as quickly as possible by taking leaps "giant
// leaps": each leap pads the node once (to make room for the next
// successor), then takes the maximum-size successor step that padding
// allows. It returns the advanced node together with the exact number of
// generations actually elapsed, which grows with the pattern's size and so
// cannot be known in advance by the caller.
func FastForward(s *quadtree.Store, node *quadtree.Node, leaps int) tuple.Tuple2[*quadtree.Node, uint64] {
	var generations uint64

	for i := 0; i < leaps; i++ {
		node = s.Pad(node)
		generations += uint64(1) << uint(node.Level-2)
		node = Successor(s, node, opt.None[int]())
	}

	return tuple.New2(node, generations)
}

// Advance steps node forward by exactly n generations, using the binary
// expansion of n to pick out the right combination of successor calls: one
// Centre per bit of n (padding enough room for the largest step needed),
// then one Successor call per set bit, from most to least significant. The
// result is cropped back down before being returned.
func Advance(s *quadtree.Store, node *quadtree.Node, n uint64) *quadtree.Node {
	if n == 0 {
		return node
	}

	var bits []bool
	for n > 0 {
		bits = append(bits, n&1 == 1)
		n >>= 1
		node = s.Centre(node)
	}

	// Process from the most significant bit down to the least: each
	// Successor call shrinks node by one level, and the padding loop above
	// only added enough headroom for this descending order, where the
	// largest step is always taken while the most room remains.
	for j := len(bits) - 1; j >= 0; j-- {
		if !bits[j] {
			continue
		}

		node = Successor(s, node, opt.Some(j))
	}

	return s.Crop(node)
}

// Drive is a single entry point over Advance and FastForward: strategy.Left
// selects Advance for exactly that many generations (reporting n itself back
// as the elapsed count, since Advance is exact), strategy.Right selects
// FastForward for that many leaps.
func Drive(s *quadtree.Store, node *quadtree.Node, strategy either.Either[uint64, int]) tuple.Tuple2[*quadtree.Node, uint64] {
	if strategy.HasLeft() {
		n := strategy.UnwrapLeft()
		return tuple.New2(Advance(s, node, n), n)
	}

	return FastForward(s, node, strategy.UnwrapRight())
}
