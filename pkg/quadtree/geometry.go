package quadtree

// Centre returns a node one level larger than m, with m's content centered
// inside a ring of empty space. It is the inverse of Inner.
//
// Centre panics with ErrBaseCaseViolation if m is a leaf, since a leaf has
// no children to read a zero node's level from.
func (s *Store) Centre(m *Node) *Node {
	if m.Level < 1 {
		panic(ErrBaseCaseViolation)
	}

	z := s.Zero(m.NW.Level)

	return s.Join(
		s.Join(z, z, z, m.NW),
		s.Join(z, z, m.NE, z),
		s.Join(z, m.SW, z, z),
		s.Join(m.SE, z, z, z),
	)
}

// Inner returns the central portion of m, one level smaller. It is the
// inverse of Centre.
//
// Inner reads its grandchildren (m.NW.SE and so on), so it requires m at
// level 2 or above; it panics with ErrBaseCaseViolation otherwise, rather
// than let a too-small m fall through to a nil-pointer dereference on a
// leaf's absent children.
func (s *Store) Inner(m *Node) *Node {
	if m.Level < 2 {
		panic(ErrBaseCaseViolation)
	}

	return s.Join(m.NW.SE, m.NE.SW, m.SW.NE, m.SE.NW)
}

// IsPadded reports whether m is surrounded by at least one sub-sub-block of
// empty space on every side — the precondition Crop/Pad converge toward.
func IsPadded(m *Node) bool {
	return m.NW.Population == m.NW.SE.SE.Population &&
		m.NE.Population == m.NE.SW.SW.Population &&
		m.SW.Population == m.SW.NE.NE.Population &&
		m.SE.Population == m.SE.NW.NW.Population
}

// Crop repeatedly takes the inner node of m until the remaining padding is
// removed, stopping no later than level 3 (the smallest level at which
// IsPadded is meaningful).
func (s *Store) Crop(m *Node) *Node {
	if m.Level <= 3 || !IsPadded(m) {
		return m
	}

	return s.Crop(s.Inner(m))
}

// Pad repeatedly centres m until it is fully padded and above level 3, so
// the node it returns is always at level 4 or higher.
func (s *Store) Pad(m *Node) *Node {
	if m.Level <= 3 || !IsPadded(m) {
		return s.Pad(s.Centre(m))
	}

	return m
}
