package wrapper

import (
	"context"
	"fmt"
	"runtime"

	"github.com/rise-and-shine/mediator/cqrs/command"
	"github.com/rise-and-shine/mediator/logger"
	"github.com/rise-and-shine/mediator/result"
)

const stackTraceSize = 4096 // 4KB

type RecoveryCommandWrapper[I command.Input, O command.Output] struct {
	logger  logger.Logger
	next    command.Command[I, O]
	cmdName string
}

// NewRecoveryCommandWrapper returns a command.WrapFunc that converts a panic
// in the inner chain into a failed result carrying the panic value and stack
// trace, so a misbehaving handler cannot take down concurrent dispatches.
func NewRecoveryCommandWrapper[I command.Input, O command.Output](
	logger logger.Logger,
	cmdName string,
) command.WrapFunc[I, O] {
	return func(next command.Command[I, O]) command.Command[I, O] {
		return &RecoveryCommandWrapper[I, O]{
			logger:  logger.Named("cqrs.command.recovery").With("command_name", cmdName),
			next:    next,
			cmdName: cmdName,
		}
	}
}

func (cmd *RecoveryCommandWrapper[I, O]) Execute(ctx context.Context, in I) (res result.Result[O]) {
	defer func() {
		if r := recover(); r != nil {
			stackTrace := make([]byte, stackTraceSize)
			stackTrace = stackTrace[:runtime.Stack(stackTrace, false)]

			cmd.logger.
				WithContext(ctx).
				With("stack_trace", string(stackTrace)).
				With("panic_values", fmt.Sprintf("%v", r)).
				Error("panic recovered in command handler")

			res = result.Err[O](
				result.NewFailure("PANIC_RECOVERED", "panic recovered in command handler").
					WithArgs(map[string]any{
						"stack_trace":  string(stackTrace),
						"panic_values": fmt.Sprintf("%v", r),
					}),
			)
		}
	}()

	return cmd.next.Execute(ctx, in)
}
