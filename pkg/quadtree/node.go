// Package quadtree implements a hash-consed quadtree: the automaton-agnostic
// tree structure that pkg/life builds Conway's Game of Life on top of.
//
// A Node at level k represents a 2^k x 2^k square of cells. Level 0 nodes are
// single cells and are one of exactly two process-wide singletons, On and
// Off. Every other node is built by joining four level-(k-1) children, and is
// only ever minted once per distinct (NW, NE, SW, SE) combination — see
// Store.Join.
package quadtree

// Node is an immutable quadtree node.
//
// Nodes are never constructed directly outside this package; callers obtain
// them from Store.Join, Store.Zero, or the On/Off singletons. Two nodes with
// the same ID are always the same node (hash-consing guarantees structural
// uniqueness), so pointer equality and ID equality coincide.
type Node struct {
	Level int

	NW, NE, SW, SE *Node

	// Leaf is true only for the two level-0 singletons On and Off.
	Leaf bool
	// On is meaningful only when Leaf is true.
	On bool

	Population uint64

	// ID is the node's 63-bit identity hash, used as the hash-cons and memo
	// key. It is precomputed at construction time rather than derived from
	// the node's address, so two structurally identical subtrees built from
	// different arena slabs still compare equal.
	ID int64
}

// identityMask keeps the identity hash within 63 bits, matching the
// reference implementation's `(1 << 63) - 1`.
const identityMask = (uint64(1) << 63) - 1

// Mixing multipliers for the four quadrants, taken from the reference
// implementation's join() hash formula.
const (
	mulNW = 5131830419411
	mulNE = 3758991985019
	mulSW = 8973110871315
	mulSE = 4318490180473
)

// identity computes the 63-bit identity hash of a level-(k+1) node from the
// level k of its children and their four identities.
//
// The arithmetic is carried out in uint64 and relies on wraparound on
// overflow: since 2^63 divides 2^64, reducing a uint64 sum mod 2^63 by
// masking gives the same result as computing the unbounded sum and then
// reducing mod 2^63, which is what the arbitrary-precision reference
// implementation does.
func identity(childLevel int, nw, ne, sw, se int64) int64 {
	sum := uint64(childLevel) + 2 +
		mulNW*uint64(nw) +
		mulNE*uint64(ne) +
		mulSW*uint64(sw) +
		mulSE*uint64(se)

	return int64(sum & identityMask) //nolint:gosec
}

// On and Off are the two level-0 leaf singletons. Every other node is built
// out of these, directly or indirectly, so they are the base case of every
// recursive structural property in this package.
var (
	On  = &Node{Leaf: true, On: true, Population: 1, ID: 1}
	Off = &Node{Leaf: true, On: false, Population: 0, ID: 0}
)

// Side returns the node's edge length, 2^Level.
func (n *Node) Side() int64 { return int64(1) << uint(n.Level) }

// IsZero reports whether this node's population is zero, i.e. every cell
// under it is off. This is a cheap O(1) check since Population is
// precomputed at construction time.
func (n *Node) IsZero() bool { return n.Population == 0 }
