package wrapper

import (
	"context"
	"time"

	"github.com/rise-and-shine/mediator/cqrs/command"
	"github.com/rise-and-shine/mediator/result"
)

type TimeoutCommandWrapper[I command.Input, O command.Output] struct {
	timeout time.Duration
	next    command.Command[I, O]
}

// NewTimeoutCommandWrapper returns a command.WrapFunc that bounds the inner
// chain with a deadline. The inner handler observes the deadline through ctx.
func NewTimeoutCommandWrapper[I command.Input, O command.Output](
	timeout time.Duration,
) command.WrapFunc[I, O] {
	return func(next command.Command[I, O]) command.Command[I, O] {
		return &TimeoutCommandWrapper[I, O]{timeout: timeout, next: next}
	}
}

func (cmd *TimeoutCommandWrapper[I, O]) Execute(ctx context.Context, in I) result.Result[O] {
	ctx, cancel := context.WithTimeout(ctx, cmd.timeout)
	defer cancel()

	return cmd.next.Execute(ctx, in)
}
