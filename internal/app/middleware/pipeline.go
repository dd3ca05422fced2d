package middleware

import (
	"context"

	"hotelstay/internal/app/commands"
	"hotelstay/internal/app/queries"
)

type CommandMiddleware func(next commands.Bus) commands.Bus

type QueryMiddleware func(next queries.Bus) queries.Bus

// CommandPipeline lists command stages outermost first. Booking commands run
// logging, validation, idempotency, outbox flush and the unit of work in that order.
type CommandPipeline []CommandMiddleware

// With appends the stage built by build when enabled. Stages that need a
// store are only built once the store is known to exist.
func (p CommandPipeline) With(enabled bool, build func() CommandMiddleware) CommandPipeline {
	if !enabled {
		return p
	}
	return append(p, build())
}

func (p CommandPipeline) Wrap(base commands.Bus) commands.Bus {
	wrapped := base
	for i := len(p) - 1; i >= 0; i-- {
		wrapped = p[i](wrapped)
	}
	return wrapped
}

// QueryPipeline lists query stages outermost first.
type QueryPipeline []QueryMiddleware

func (p QueryPipeline) Wrap(base queries.Bus) queries.Bus {
	wrapped := base
	for i := len(p) - 1; i >= 0; i-- {
		wrapped = p[i](wrapped)
	}
	return wrapped
}

type commandFunc func(ctx context.Context, cmd commands.Command) (any, error)

func (f commandFunc) Dispatch(ctx context.Context, cmd commands.Command) (any, error) {
	return f(ctx, cmd)
}

type queryFunc func(ctx context.Context, query queries.Query) (any, error)

func (f queryFunc) Ask(ctx context.Context, q queries.Query) (any, error) {
	return f(ctx, q)
}
