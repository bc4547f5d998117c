package search

import (
	"context"
	"fmt"
	"runtime"
	"time"

	"golang.org/x/sync/errgroup"

	"github.com/viant/vehiclepos/index"
	"github.com/viant/vehiclepos/index/bruteforce"
	"github.com/viant/vehiclepos/index/halving"
	"github.com/viant/vehiclepos/position"
)

// Index kinds accepted by NewIndex.
const (
	KindHalving = "halving"
	KindBrute   = "brute"
)

// NewIndex returns an empty index of the given kind. An empty kind selects
// the halving search.
func NewIndex(kind string) (index.Index, error) {
	switch kind {
	case KindHalving, "":
		return &halving.Index{}, nil
	case KindBrute:
		return &bruteforce.Index{}, nil
	}
	return nil, fmt.Errorf("search: unknown index kind %q", kind)
}

// Result pairs a query with its nearest record.
type Result struct {
	Query    position.Query
	Record   position.Record
	Distance float32
}

// Timing captures how long the load and search phases took.
type Timing struct {
	Read   time.Duration
	Search time.Duration
}

// Total returns the combined duration of both phases.
func (t Timing) Total() time.Duration { return t.Read + t.Search }

// Runner executes nearest queries against an index.
type Runner struct {
	index       index.Index
	parallelism int
	logger      *Logger
}

// Option configures a Runner.
type Option func(*Runner)

// WithParallelism bounds the number of queries in flight. Values below one
// select runtime.GOMAXPROCS(0).
func WithParallelism(n int) Option {
	return func(r *Runner) { r.parallelism = n }
}

// WithLogger sets the logger used for query and run events.
func WithLogger(l *Logger) Option {
	return func(r *Runner) {
		if l != nil {
			r.logger = l
		}
	}
}

// NewRunner creates a Runner over idx.
func NewRunner(idx index.Index, opts ...Option) *Runner {
	r := &Runner{index: idx, logger: NoopLogger()}
	for _, opt := range opts {
		opt(r)
	}
	if r.parallelism < 1 {
		r.parallelism = runtime.GOMAXPROCS(0)
	}
	return r
}

// Run finds the nearest record for every query. Results are returned in
// query order. The first failing query cancels the remaining ones and its
// error is returned.
func (r *Runner) Run(ctx context.Context, queries []position.Query) ([]Result, error) {
	started := time.Now()
	results := make([]Result, len(queries))

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(r.parallelism)
	for i, q := range queries {
		if gctx.Err() != nil {
			break
		}
		g.Go(func() error {
			if err := gctx.Err(); err != nil {
				return err
			}
			res := Result{Query: q}
			rec, err := r.index.Nearest(q)
			if err != nil {
				r.logger.LogQuery(gctx, res, err)
				return fmt.Errorf("search: query %d (%v, %v): %w", i, q.X, q.Y, err)
			}
			res.Record = rec
			res.Distance = position.SquaredDistance(q, rec)
			results[i] = res
			r.logger.LogQuery(gctx, res, nil)
			return nil
		})
	}
	err := g.Wait()
	if err == nil {
		// a cancelled parent context stops scheduling without any query
		// failing
		err = ctx.Err()
	}
	r.logger.LogRun(ctx, len(queries), r.index.Len(), time.Since(started), err)
	if err != nil {
		return nil, err
	}
	return results, nil
}
