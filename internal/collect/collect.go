// Package collect finds the reports written by parallel test workers, reads
// them into logging.Readers and merges them into one logging.Aggregator.
package collect

import (
	"context"
	"fmt"
	"path/filepath"
	"runtime"
	"sort"

	"github.com/bitrise-io/go-utils/v2/log"
	"github.com/hashicorp/go-multierror"
	"github.com/spf13/afero"
	"golang.org/x/sync/errgroup"

	"github.com/AndreyAkinshin/paralog/internal/errors"
	"github.com/AndreyAkinshin/paralog/internal/junit"
	"github.com/AndreyAkinshin/paralog/internal/logging"
)

// Collector loads worker reports from a filesystem.
type Collector struct {
	fs       afero.Fs
	logger   log.Logger
	parallel int
}

// New creates a Collector. parallel bounds how many reports are parsed at
// once; values below 1 mean one per CPU.
func New(fs afero.Fs, logger log.Logger, parallel int) *Collector {
	if parallel < 1 {
		parallel = runtime.NumCPU()
	}
	return &Collector{
		fs:       fs,
		logger:   logger,
		parallel: parallel,
	}
}

// NewOs creates a Collector on the operating system filesystem.
func NewOs(logger log.Logger, parallel int) *Collector {
	return New(afero.NewOsFs(), logger, parallel)
}

// Discover returns the sorted paths of the files in dir matching pattern.
func (c *Collector) Discover(dir, pattern string) ([]string, error) {
	exists, err := afero.DirExists(c.fs, dir)
	if err != nil {
		return nil, fmt.Errorf("check report directory: %w", err)
	}
	if !exists {
		return nil, errors.InvalidInput(dir, fmt.Errorf("report directory %s does not exist", dir))
	}

	matches, err := afero.Glob(c.fs, filepath.Join(dir, pattern))
	if err != nil {
		return nil, errors.Configf("invalid report pattern %q: %v", pattern, err)
	}

	var paths []string
	for _, m := range matches {
		isDir, err := afero.IsDir(c.fs, m)
		if err != nil {
			return nil, fmt.Errorf("stat %s: %w", m, err)
		}
		if isDir {
			continue
		}
		paths = append(paths, m)
	}
	sort.Strings(paths)

	c.logger.Debugf("Found %d report(s) in %s matching %s", len(paths), dir, pattern)
	return paths, nil
}

// Load reads every report concurrently and returns the Readers in the order
// of paths. If any report cannot be read, no Reader is returned and the error
// lists every failing report.
func (c *Collector) Load(ctx context.Context, paths []string) ([]*logging.Reader, error) {
	readers := make([]*logging.Reader, len(paths))
	errs := make([]error, len(paths))

	var g errgroup.Group
	g.SetLimit(c.parallel)
	for i, path := range paths {
		g.Go(func() error {
			if err := ctx.Err(); err != nil {
				errs[i] = err
				return nil
			}
			r, err := logging.NewReader(c.fs, path)
			if err != nil {
				errs[i] = err
				return nil
			}
			c.logger.Debugf("Parsed %s: %d suite(s), %d test(s)", path, r.AllSuites().Len(), r.TotalTests())
			readers[i] = r
			return nil
		})
	}
	_ = g.Wait()

	var failed []error
	for _, err := range errs {
		if err != nil {
			failed = append(failed, err)
		}
	}
	switch len(failed) {
	case 0:
		return readers, nil
	case 1:
		return nil, failed[0]
	default:
		var merr *multierror.Error
		merr = multierror.Append(merr, failed...)
		return nil, merr
	}
}

// Aggregate merges readers, in order, into a new Aggregator.
func (c *Collector) Aggregate(readers []*logging.Reader) *logging.Aggregator {
	agg := logging.NewAggregator()
	for _, r := range readers {
		agg.AddReader(r)
	}
	c.logger.Debugf("Merged %d report(s) into %d suite(s)", len(readers), agg.AllSuites().Len())
	return agg
}

// Collect loads the reports at paths and merges them.
func (c *Collector) Collect(ctx context.Context, paths []string) (*logging.Aggregator, error) {
	readers, err := c.Load(ctx, paths)
	if err != nil {
		return nil, err
	}
	return c.Aggregate(readers), nil
}

// Cleanup removes the report of every reader.
func (c *Collector) Cleanup(readers []*logging.Reader) error {
	var merr *multierror.Error
	for _, r := range readers {
		if err := r.RemoveLog(); err != nil {
			merr = multierror.Append(merr, err)
			continue
		}
		c.logger.Debugf("Removed %s", r.Path())
	}
	return merr.ErrorOrNil()
}

// Export writes the merged suite tree of agg as a JUnit XML file.
func (c *Collector) Export(path string, agg *logging.Aggregator) error {
	if dir := filepath.Dir(path); dir != "." {
		if err := c.fs.MkdirAll(dir, 0o755); err != nil {
			return fmt.Errorf("create directory for %s: %w", path, err)
		}
	}

	f, err := c.fs.Create(path)
	if err != nil {
		return fmt.Errorf("create %s: %w", path, err)
	}
	if err := junit.Write(f, agg.FlattenCases()); err != nil {
		_ = f.Close()
		return err
	}
	if err := f.Close(); err != nil {
		return fmt.Errorf("close %s: %w", path, err)
	}

	c.logger.Debugf("Wrote merged JUnit log to %s", path)
	return nil
}
