// Package logging aggregates the JUnit reports written by parallel test
// workers into one suite tree.
//
// A Reader owns the suite tree of a single worker report. An Aggregator
// merges the trees of many Readers by suite path. Both answer the same
// aggregate queries: totals of a Metric and the texts of a MessageKind.
package logging

import (
	"fmt"
	"strings"

	"golang.org/x/text/cases"
	"golang.org/x/text/language"

	"github.com/AndreyAkinshin/paralog/internal/junit"
)

// Metric is a numeric suite total that can be summed across suites.
type Metric int

const (
	MetricTests Metric = iota
	MetricAssertions
	MetricFailures
	MetricErrors
	MetricTime
)

// Metrics lists every Metric in display order.
var Metrics = []Metric{MetricTests, MetricAssertions, MetricFailures, MetricErrors, MetricTime}

var metricNames = [...]string{
	MetricTests:      "tests",
	MetricAssertions: "assertions",
	MetricFailures:   "failures",
	MetricErrors:     "errors",
	MetricTime:       "time",
}

// metricFields reads the field of a suite that backs each metric.
var metricFields = [...]func(*junit.Suite) float64{
	MetricTests:      func(s *junit.Suite) float64 { return float64(s.Tests) },
	MetricAssertions: func(s *junit.Suite) float64 { return float64(s.Assertions) },
	MetricFailures:   func(s *junit.Suite) float64 { return float64(s.Failures) },
	MetricErrors:     func(s *junit.Suite) float64 { return float64(s.Errors) },
	MetricTime:       func(s *junit.Suite) float64 { return s.Time },
}

func (m Metric) String() string {
	if m < 0 || int(m) >= len(metricNames) {
		return fmt.Sprintf("Metric(%d)", int(m))
	}
	return metricNames[m]
}

// Label returns the display name of the metric, e.g. "Assertions".
func (m Metric) Label() string {
	return cases.Title(language.English).String(m.String())
}

// IsFloat reports whether the metric is fractional (time) rather than a count.
func (m Metric) IsFloat() bool {
	return m == MetricTime
}

// Of returns the metric's value for one suite.
func (m Metric) Of(s *junit.Suite) float64 {
	return metricFields[m](s)
}

// ParseMetric parses a metric name such as "tests" or "Time".
func ParseMetric(name string) (Metric, error) {
	for _, m := range Metrics {
		if strings.EqualFold(name, m.String()) {
			return m, nil
		}
	}
	return 0, fmt.Errorf("unknown metric %q, want one of: %s", name, strings.Join(metricNames[:], ", "))
}

// MessageKind selects which messages of a case are collected.
type MessageKind int

const (
	KindFailures MessageKind = iota
	KindErrors
)

func (k MessageKind) String() string {
	switch k {
	case KindFailures:
		return "failures"
	case KindErrors:
		return "errors"
	default:
		return fmt.Sprintf("MessageKind(%d)", int(k))
	}
}

// Of returns the case's messages of this kind.
func (k MessageKind) Of(c *junit.Case) []junit.Message {
	if k == KindErrors {
		return c.Errors
	}
	return c.Failures
}

// sumMetric adds up m over the given suites only, without descending into
// children: each suite already carries the totals of its subtree.
func sumMetric(suites *junit.SuiteMap, m Metric) float64 {
	var total float64
	suites.Each(func(_ string, s *junit.Suite) {
		total += m.Of(s)
	})
	return total
}

// collectMessages returns the text of every message of kind k, walking
// suites in index order and cases in insertion order.
func collectMessages(all *junit.SuiteMap, k MessageKind) []string {
	var texts []string
	all.Each(func(_ string, s *junit.Suite) {
		for _, c := range s.Cases {
			for _, msg := range k.Of(c) {
				texts = append(texts, msg.Text)
			}
		}
	})
	return texts
}

// collectCases concatenates the cases of every suite in index order.
func collectCases(all *junit.SuiteMap) []*junit.Case {
	var out []*junit.Case
	all.Each(func(_ string, s *junit.Suite) {
		out = append(out, s.Cases...)
	})
	return out
}

// resolver answers the generic aggregate queries for its owner. The owner
// supplies how a metric total is reduced and which flat suite index to walk
// for messages.
type resolver struct {
	total func(Metric) float64
	index func() *junit.SuiteMap
}

// Total returns the sum of metric m.
func (r resolver) Total(m Metric) float64 {
	return r.total(m)
}

// TotalTests returns the number of executed tests.
func (r resolver) TotalTests() int { return int(r.total(MetricTests)) }

// TotalAssertions returns the number of assertions.
func (r resolver) TotalAssertions() int { return int(r.total(MetricAssertions)) }

// TotalFailures returns the number of failed tests.
func (r resolver) TotalFailures() int { return int(r.total(MetricFailures)) }

// TotalErrors returns the number of errored tests.
func (r resolver) TotalErrors() int { return int(r.total(MetricErrors)) }

// TotalTime returns the elapsed time in seconds.
func (r resolver) TotalTime() float64 { return r.total(MetricTime) }

// Messages returns the text of every message of kind k.
func (r resolver) Messages(k MessageKind) []string {
	return collectMessages(r.index(), k)
}

// Failures returns every failure message text.
func (r resolver) Failures() []string { return r.Messages(KindFailures) }

// Errors returns every error message text.
func (r resolver) Errors() []string { return r.Messages(KindErrors) }

// Cases returns every case, in index order then case order.
func (r resolver) Cases() []*junit.Case {
	return collectCases(r.index())
}

// Feedback returns one status symbol per case, in index order then case
// order. It is recomputed on every call.
func (r resolver) Feedback() []Status {
	var feedback []Status
	r.index().Each(func(_ string, s *junit.Suite) {
		for _, c := range s.Cases {
			feedback = append(feedback, StatusOf(c))
		}
	})
	return feedback
}

// Status is the one-character outcome of a case.
type Status byte

const (
	StatusPass    Status = '.'
	StatusFailure Status = 'F'
	StatusError   Status = 'E'
)

func (s Status) String() string {
	return string([]byte{byte(s)})
}

// StatusOf classifies a case. A failure takes precedence over an error.
func StatusOf(c *junit.Case) Status {
	switch {
	case c.Failed():
		return StatusFailure
	case c.Errored():
		return StatusError
	default:
		return StatusPass
	}
}

// FeedbackString joins a feedback sequence, e.g. "..F.E".
func FeedbackString(feedback []Status) string {
	var b strings.Builder
	b.Grow(len(feedback))
	for _, s := range feedback {
		b.WriteByte(byte(s))
	}
	return b.String()
}
