package wrapper

import (
	"context"
	"fmt"
	"runtime"

	"github.com/rise-and-shine/mediator/cqrs/query"
	"github.com/rise-and-shine/mediator/logger"
	"github.com/rise-and-shine/mediator/result"
)

const stackTraceSize = 4096 // 4KB

type RecoveryQueryWrapper[I query.Input, O query.Output] struct {
	logger  logger.Logger
	next    query.Query[I, O]
	qryName string
}

// NewRecoveryQueryWrapper returns a query.WrapFunc that converts a panic in
// the inner chain into a failed result carrying the panic value and stack
// trace.
func NewRecoveryQueryWrapper[I query.Input, O query.Output](
	logger logger.Logger,
	qryName string,
) query.WrapFunc[I, O] {
	return func(next query.Query[I, O]) query.Query[I, O] {
		return &RecoveryQueryWrapper[I, O]{
			logger:  logger.Named("cqrs.query.recovery").With("query_name", qryName),
			next:    next,
			qryName: qryName,
		}
	}
}

func (q *RecoveryQueryWrapper[I, O]) Execute(ctx context.Context, in I) (res result.Result[O]) {
	defer func() {
		if r := recover(); r != nil {
			stackTrace := make([]byte, stackTraceSize)
			stackTrace = stackTrace[:runtime.Stack(stackTrace, false)]

			q.logger.
				WithContext(ctx).
				With("stack_trace", string(stackTrace)).
				With("panic_values", fmt.Sprintf("%v", r)).
				Error("panic recovered in query handler")

			res = result.Err[O](
				result.NewFailure("PANIC_RECOVERED", "panic recovered in query handler").
					WithArgs(map[string]any{
						"stack_trace":  string(stackTrace),
						"panic_values": fmt.Sprintf("%v", r),
					}),
			)
		}
	}()

	return q.next.Execute(ctx, in)
}
