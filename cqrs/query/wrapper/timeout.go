package wrapper

import (
	"context"
	"time"

	"github.com/rise-and-shine/mediator/cqrs/query"
	"github.com/rise-and-shine/mediator/result"
)

type TimeoutQueryWrapper[I query.Input, O query.Output] struct {
	timeout time.Duration
	next    query.Query[I, O]
}

// NewTimeoutQueryWrapper returns a query.WrapFunc that bounds the inner
// chain with a deadline. The inner handler observes the deadline through ctx.
func NewTimeoutQueryWrapper[I query.Input, O query.Output](
	timeout time.Duration,
) query.WrapFunc[I, O] {
	return func(next query.Query[I, O]) query.Query[I, O] {
		return &TimeoutQueryWrapper[I, O]{timeout: timeout, next: next}
	}
}

func (q *TimeoutQueryWrapper[I, O]) Execute(ctx context.Context, in I) result.Result[O] {
	ctx, cancel := context.WithTimeout(ctx, q.timeout)
	defer cancel()

	return q.next.Execute(ctx, in)
}
