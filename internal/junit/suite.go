// Package junit provides the in-memory suite tree for JUnit test reports:
// cases, suites keyed by hierarchical path, a parser that builds the tree
// from a JUnit XML document, and a writer that serializes a tree back.
package junit

import (
	orderedmap "github.com/wk8/go-ordered-map/v2"
)

// PathSeparator joins a parent suite path and a child suite name.
// The root parent path is the empty string, so "Unit" nested in "All"
// has the path `\All\Unit`.
const PathSeparator = `\`

// JoinPath returns the path of a suite named name under parentPath.
func JoinPath(parentPath, name string) string {
	return parentPath + PathSeparator + name
}

// Message is a failure or error attached to a test case.
type Message struct {
	Type string // Exception class or failure type, may be empty
	Text string // Free-form message text
}

// Case is the outcome of one executed test.
// A Case is created once by the parser and is not modified afterwards.
type Case struct {
	Name       string
	ClassName  string
	File       string
	Line       int
	Assertions int
	Time       float64 // seconds
	Failures   []Message
	Errors     []Message
}

// Failed reports whether the case has at least one failure message.
func (c *Case) Failed() bool {
	return len(c.Failures) > 0
}

// Errored reports whether the case has at least one error message.
func (c *Case) Errored() bool {
	return len(c.Errors) > 0
}

// Suite is one node of the suite tree.
//
// The numeric fields are the totals reported for the whole subtree rooted
// at this node. They are taken from the report as-is and are never
// recomputed from Cases or Children.
type Suite struct {
	Name string
	Path string
	File string

	Tests      int
	Assertions int
	Failures   int
	Errors     int
	Time       float64

	Cases    []*Case
	Children *SuiteMap
}

// NewSuite creates an empty suite with zeroed totals.
func NewSuite(name, path string) *Suite {
	return &Suite{
		Name:     name,
		Path:     path,
		Children: NewSuiteMap(),
	}
}

// AddChild links child under s, keyed by the child's path.
func (s *Suite) AddChild(child *Suite) {
	if s.Children == nil {
		s.Children = NewSuiteMap()
	}
	s.Children.Set(child.Path, child)
}

// SuiteMap maps suite paths to suites and preserves insertion order.
// A nil *SuiteMap behaves as an empty map for reads.
type SuiteMap struct {
	m *orderedmap.OrderedMap[string, *Suite]
}

// NewSuiteMap creates an empty SuiteMap.
func NewSuiteMap() *SuiteMap {
	return &SuiteMap{m: orderedmap.New[string, *Suite]()}
}

// Get returns the suite stored at path.
func (sm *SuiteMap) Get(path string) (*Suite, bool) {
	if sm == nil || sm.m == nil {
		return nil, false
	}
	return sm.m.Get(path)
}

// Has reports whether path is present.
func (sm *SuiteMap) Has(path string) bool {
	_, ok := sm.Get(path)
	return ok
}

// Set stores s at path. A new path is appended at the end of the
// iteration order; an existing path keeps its position.
func (sm *SuiteMap) Set(path string, s *Suite) {
	if sm.m == nil {
		sm.m = orderedmap.New[string, *Suite]()
	}
	sm.m.Set(path, s)
}

// Len returns the number of entries.
func (sm *SuiteMap) Len() int {
	if sm == nil || sm.m == nil {
		return 0
	}
	return sm.m.Len()
}

// Each calls fn for every entry in insertion order.
func (sm *SuiteMap) Each(fn func(path string, s *Suite)) {
	if sm == nil || sm.m == nil {
		return
	}
	for pair := sm.m.Oldest(); pair != nil; pair = pair.Next() {
		fn(pair.Key, pair.Value)
	}
}

// Paths returns the keys in insertion order.
func (sm *SuiteMap) Paths() []string {
	paths := make([]string, 0, sm.Len())
	sm.Each(func(path string, _ *Suite) {
		paths = append(paths, path)
	})
	return paths
}

// Suites returns the values in insertion order.
func (sm *SuiteMap) Suites() []*Suite {
	suites := make([]*Suite, 0, sm.Len())
	sm.Each(func(_ string, s *Suite) {
		suites = append(suites, s)
	})
	return suites
}

// CaseCount returns the number of cases held by the suites in sm and,
// recursively, by all of their descendants.
func (sm *SuiteMap) CaseCount() int {
	n := 0
	sm.Each(func(_ string, s *Suite) {
		n += len(s.Cases) + s.Children.CaseCount()
	})
	return n
}

// Tree is the suite tree of one report: the top-level suites, and every
// suite in the tree flattened in document order.
type Tree struct {
	Roots *SuiteMap
	All   *SuiteMap
}

// NewTree creates an empty tree.
func NewTree() *Tree {
	return &Tree{
		Roots: NewSuiteMap(),
		All:   NewSuiteMap(),
	}
}
