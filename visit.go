package pagedata

// VisitedSet records the composites already expanded during one traversal.
// A VisitedSet belongs to a single top-level call and must not be shared
// between traversals.
type VisitedSet struct {
	seen map[ID]struct{}
}

// NewVisitedSet returns an empty set.
func NewVisitedSet() *VisitedSet {
	return &VisitedSet{seen: make(map[ID]struct{})}
}

// Visit marks c as visited. It returns false if c was already marked.
func (s *VisitedSet) Visit(c Composite) bool {
	id := c.Identity()
	if _, ok := s.seen[id]; ok {
		return false
	}
	s.seen[id] = struct{}{}
	return true
}

// Has reports whether c has been marked.
func (s *VisitedSet) Has(c Composite) bool {
	_, ok := s.seen[c.Identity()]
	return ok
}

// Len returns the number of marked composites.
func (s *VisitedSet) Len() int { return len(s.seen) }
