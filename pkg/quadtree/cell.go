package quadtree

// Cell is a single on-cell coordinate, the external interchange format
// pattern parsers and Construct operate on.
type Cell struct {
	X, Y int64
}
