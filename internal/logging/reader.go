package logging

import (
	stderrors "errors"
	"fmt"
	"io/fs"

	"github.com/spf13/afero"

	"github.com/AndreyAkinshin/paralog/internal/errors"
	"github.com/AndreyAkinshin/paralog/internal/junit"
)

// Reader holds the parsed suite tree of one worker report.
// It is not modified after construction.
type Reader struct {
	resolver

	fs     afero.Fs
	path   string
	suites *junit.SuiteMap
	all    *junit.SuiteMap
}

// NewReader reads and parses the JUnit report at path.
//
// It fails with an InvalidInput error if the report does not exist or is
// not a valid JUnit document, and with a CrashedWorker error if the report
// is empty.
func NewReader(fsys afero.Fs, path string) (*Reader, error) {
	info, err := fsys.Stat(path)
	if stderrors.Is(err, fs.ErrNotExist) {
		return nil, errors.InvalidInput(path, nil)
	}
	if err != nil {
		return nil, errors.InvalidInput(path, err)
	}
	if info.IsDir() {
		return nil, errors.InvalidInput(path, fmt.Errorf("%s is a directory", path))
	}
	if info.Size() == 0 {
		return nil, errors.CrashedWorker(path)
	}

	data, err := afero.ReadFile(fsys, path)
	if err != nil {
		return nil, errors.InvalidInput(path, err)
	}

	tree, err := junit.Parse(data)
	if err != nil {
		return nil, errors.InvalidInput(path, err)
	}

	r := NewReaderFromTree(tree)
	r.fs = fsys
	r.path = path
	return r, nil
}

// NewReaderFromTree wraps an already built suite tree.
// The tree's suite totals must cover each suite's whole subtree.
func NewReaderFromTree(tree *junit.Tree) *Reader {
	r := &Reader{
		suites: tree.Roots,
		all:    tree.All,
	}
	if r.suites == nil {
		r.suites = junit.NewSuiteMap()
	}
	if r.all == nil {
		r.all = junit.NewSuiteMap()
	}
	r.resolver = resolver{
		total: func(m Metric) float64 { return sumMetric(r.suites, m) },
		index: func() *junit.SuiteMap { return r.all },
	}
	return r
}

// Path returns the report path, or "" for a Reader built from a tree.
func (r *Reader) Path() string {
	return r.path
}

// Suites returns the top-level suites of the report.
func (r *Reader) Suites() *junit.SuiteMap {
	return r.suites
}

// AllSuites returns every suite of the report keyed by path.
func (r *Reader) AllSuites() *junit.SuiteMap {
	return r.all
}

// RemoveLog deletes the report file.
func (r *Reader) RemoveLog() error {
	if r.fs == nil || r.path == "" {
		return nil
	}
	if err := r.fs.Remove(r.path); err != nil {
		return fmt.Errorf("remove report %s: %w", r.path, err)
	}
	return nil
}
