package assistant

import (
	"context"

	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"
)

// fetchCall is one collaborator read in a parallel group.
type fetchCall struct {
	name string
	run  func(ctx context.Context) error
}

// fetchOutcome reports how a parallel group settled.
type fetchOutcome struct {
	failed   int
	total    int
	firstErr error
}

// allFailed reports whether no call in the group succeeded.
func (o fetchOutcome) allFailed() bool {
	return o.total > 0 && o.failed == o.total
}

// fetchAll runs every call concurrently and waits for all of them. A failing
// call never cancels its siblings: its result stays empty and the failure is
// only logged and counted.
func fetchAll(ctx context.Context, logger *zap.Logger, calls ...fetchCall) fetchOutcome {
	var g errgroup.Group
	errs := make([]error, len(calls))

	for i, call := range calls {
		g.Go(func() error {
			if err := call.run(ctx); err != nil {
				logger.Warn("parallel fetch failed, using empty result",
					zap.String("call", call.name),
					zap.Error(err),
				)
				errs[i] = err
			}
			return nil
		})
	}
	_ = g.Wait()

	out := fetchOutcome{total: len(calls)}
	for _, err := range errs {
		if err == nil {
			continue
		}
		out.failed++
		if out.firstErr == nil {
			out.firstErr = err
		}
	}
	return out
}

// fetchInto adapts a list call into a fetchCall writing to dst.
func fetchInto[T any](name string, dst *[]T, load func(context.Context) ([]T, error)) fetchCall {
	return fetchCall{
		name: name,
		run: func(ctx context.Context) error {
			list, err := load(ctx)
			if err != nil {
				*dst = []T{}
				return err
			}
			*dst = list
			return nil
		},
	}
}
