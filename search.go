package pagedata

import (
	"strconv"
	"strings"
)

// Match is a string value found at Path.
type Match struct {
	Path  string `json:"path"`
	Value string `json:"value"`
}

// RootMatches collects the matches found under one top-level entry. Paths
// are unique: a later match at an existing path replaces its value.
type RootMatches struct {
	Name    string  `json:"name"`
	Root    Value   `json:"-"`
	Matches []Match `json:"matches"`

	index map[string]int
}

// Lookup returns the matched value stored at path.
func (m *RootMatches) Lookup(path string) (string, bool) {
	for _, match := range m.Matches {
		if match.Path == path {
			return match.Value, true
		}
	}
	return "", false
}

// Paths returns the matched paths in traversal order.
func (m *RootMatches) Paths() []string {
	paths := make([]string, len(m.Matches))
	for i, match := range m.Matches {
		paths[i] = match.Path
	}
	return paths
}

// SearchResult maps root names to their matches. Roots appear in the order
// their first match was found; roots without matches are absent.
type SearchResult struct {
	roots  []*RootMatches
	byName map[string]*RootMatches
}

func newSearchResult() *SearchResult {
	return &SearchResult{byName: make(map[string]*RootMatches)}
}

// Root returns the matches recorded for name.
func (r *SearchResult) Root(name string) (*RootMatches, bool) {
	m, ok := r.byName[name]
	return m, ok
}

// Roots returns every root with at least one match.
func (r *SearchResult) Roots() []*RootMatches {
	return r.roots
}

// Len returns the number of roots with matches.
func (r *SearchResult) Len() int { return len(r.roots) }

// Total returns the number of matches across all roots.
func (r *SearchResult) Total() int {
	var n int
	for _, m := range r.roots {
		n += len(m.Matches)
	}
	return n
}

func (r *SearchResult) record(rootName string, root Value, path, value string) {
	m, ok := r.byName[rootName]
	if !ok {
		m = &RootMatches{Name: rootName, Root: root, index: make(map[string]int)}
		r.byName[rootName] = m
		r.roots = append(r.roots, m)
	}
	if i, ok := m.index[path]; ok {
		m.Matches[i].Value = value
		return
	}
	m.index[path] = len(m.Matches)
	m.Matches = append(m.Matches, Match{Path: path, Value: value})
}

// Search walks every top-level entry of doc depth-first and returns the paths
// of string values containing query. Paths are relative to the entry and use
// "a.b" for record members and "a[0]" for sequence elements.
//
// Each entry gets its own VisitedSet, so data shared between entries is
// searched once per entry. Within one entry a composite reached by recursion
// is expanded only the first time; later paths to it are not reported. A
// sequence held directly by a record member is always expanded, so a list
// shared by two members is reported under both.
func Search(doc *Record, query string, caseSensitive bool) *SearchResult {
	result := newSearchResult()
	if doc == nil {
		return result
	}

	s := &searcher{
		query:         query,
		caseSensitive: caseSensitive,
		result:        result,
	}
	if !caseSensitive {
		s.query = strings.ToLower(query)
	}

	for name, root := range doc.All() {
		s.rootName = name
		s.root = root
		s.visited = NewVisitedSet()
		s.walk(root, "")
	}
	return result
}

type searcher struct {
	query         string
	caseSensitive bool
	result        *SearchResult

	rootName string
	root     Value
	visited  *VisitedSet
}

func (s *searcher) matches(v Value) (string, bool) {
	str, ok := v.(String)
	if !ok {
		return "", false
	}
	text := string(str)
	if s.caseSensitive {
		return text, strings.Contains(text, s.query)
	}
	return text, strings.Contains(strings.ToLower(text), s.query)
}

// walk expands a composite reached at path. Non-composites are ignored.
func (s *searcher) walk(v Value, path string) {
	switch v := v.(type) {
	case *Record:
		if v == nil || !s.visited.Visit(v) {
			return
		}
		s.walkRecord(v, path)
	case *Sequence:
		if v == nil || !s.visited.Visit(v) {
			return
		}
		s.walkSequence(v, path)
	}
}

func (s *searcher) walkRecord(r *Record, path string) {
	for i, key := range r.keys {
		member := r.vals[i]
		childPath := key
		if path != "" {
			childPath = path + "." + key
		}

		if text, ok := s.matches(member); ok {
			s.result.record(s.rootName, s.root, childPath, text)
			continue
		}
		if seq, ok := member.(*Sequence); ok {
			if seq != nil {
				s.walkSequence(seq, childPath)
			}
			continue
		}
		s.walk(member, childPath)
	}
}

func (s *searcher) walkSequence(seq *Sequence, basePath string) {
	for i, elem := range seq.elems {
		elemPath := basePath + "[" + strconv.Itoa(i) + "]"
		if text, ok := s.matches(elem); ok {
			s.result.record(s.rootName, s.root, elemPath, text)
			continue
		}
		s.walk(elem, elemPath)
	}
}
