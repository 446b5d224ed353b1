package logging

import (
	"github.com/AndreyAkinshin/paralog/internal/junit"
)

// Aggregator merges the suite trees of many Readers into one tree in which
// suites are identified by path.
//
// An Aggregator is filled by sequential AddReader calls and queried
// afterwards. It is not safe for concurrent use.
type Aggregator struct {
	resolver

	readers []*Reader
	suites  *junit.SuiteMap // merged top-level suites
	all     *junit.SuiteMap // every merged suite, keyed by path
}

// NewAggregator creates an empty Aggregator.
func NewAggregator() *Aggregator {
	a := &Aggregator{
		suites: junit.NewSuiteMap(),
		all:    junit.NewSuiteMap(),
	}
	a.resolver = resolver{
		total: a.readerTotal,
		index: func() *junit.SuiteMap { return a.all },
	}
	return a
}

// AddReader merges the suite tree of r and returns a for chaining.
//
// Each Reader must be added once; adding the same Reader twice counts its
// results twice.
func (a *Aggregator) AddReader(r *Reader) *Aggregator {
	a.readers = append(a.readers, r)
	a.merge(r.Suites(), nil)
	return a
}

// merge folds source into the merged tree under parent (nil at top level).
// Totals are added after the children are merged. Each source suite already
// reports its whole subtree, so they are summed as reported and never
// recomputed from children or cases.
func (a *Aggregator) merge(source *junit.SuiteMap, parent *junit.Suite) {
	source.Each(func(path string, s *junit.Suite) {
		target, ok := a.all.Get(path)
		if !ok {
			target = junit.NewSuite(s.Name, path)
			a.all.Set(path, target)
			if parent == nil {
				a.suites.Set(path, target)
			}
		}

		if parent != nil && !parent.Children.Has(path) {
			parent.AddChild(target)
		}

		target.Cases = append(target.Cases, s.Cases...)

		a.merge(s.Children, target)

		target.Tests += s.Tests
		target.Assertions += s.Assertions
		target.Failures += s.Failures
		target.Errors += s.Errors
		target.Time += s.Time
		target.File = s.File
	})
}

// readerTotal sums each Reader's own total of m.
func (a *Aggregator) readerTotal(m Metric) float64 {
	var total float64
	for _, r := range a.readers {
		total += r.Total(m)
	}
	return total
}

// Readers returns the added Readers in insertion order.
func (a *Aggregator) Readers() []*Reader {
	return a.readers
}

// Suites returns the merged top-level suites.
func (a *Aggregator) Suites() *junit.SuiteMap {
	return a.suites
}

// AllSuites returns every merged suite keyed by path.
func (a *Aggregator) AllSuites() *junit.SuiteMap {
	return a.all
}

// FlattenCases returns the merged top-level suites. Each suite keeps its
// own cases and nested children.
func (a *Aggregator) FlattenCases() *junit.SuiteMap {
	return a.suites
}

// IsSuccessful reports whether the run had no failures and no errors.
func (a *Aggregator) IsSuccessful() bool {
	return a.TotalFailures() == 0 && a.TotalErrors() == 0
}
