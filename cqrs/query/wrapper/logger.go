package wrapper

import (
	"context"
	"time"

	"github.com/rise-and-shine/mediator/cqrs/query"
	"github.com/rise-and-shine/mediator/logger"
	"github.com/rise-and-shine/mediator/mask"
	"github.com/rise-and-shine/mediator/result"
)

type LoggerQueryWrapper[I query.Input, O query.Output] struct {
	logger  logger.Logger
	next    query.Query[I, O]
	qryName string
}

// NewLoggerQueryWrapper returns a query.WrapFunc that records exactly one
// "started" and one "completed" event per execution, regardless of outcome.
// The wrapper never alters the result.
func NewLoggerQueryWrapper[I query.Input, O query.Output](
	logger logger.Logger,
	qryName string,
) query.WrapFunc[I, O] {
	return func(next query.Query[I, O]) query.Query[I, O] {
		return &LoggerQueryWrapper[I, O]{
			logger:  logger.Named("cqrs.query.logger").With("query_name", qryName),
			next:    next,
			qryName: qryName,
		}
	}
}

func (q *LoggerQueryWrapper[I, O]) Execute(ctx context.Context, in I) result.Result[O] {
	log := q.logger.WithContext(ctx).With("input", mask.Fields(in))

	log.Debug("query started")

	start := time.Now()
	res := q.next.Execute(ctx, in)
	duration := time.Since(start)

	log = log.With("execution_time", duration.String())

	if res.IsFailure() {
		e := res.Err()
		log = log.With("error", errorObject(e))
		if e.Category == result.CategoryFailure {
			log.Error("query completed")
		} else {
			log.Warn("query completed")
		}
		return res
	}

	log.Info("query completed")
	return res
}

// errorObject converts a result error to a structured map for logging.
func errorObject(e result.Error) map[string]any {
	obj := map[string]any{
		"code":     e.Code,
		"category": e.Category.String(),
		"message":  e.Message,
	}
	if len(e.Args) > 0 {
		obj["args"] = e.Args
	}
	if len(e.Violations) > 0 {
		obj["violations"] = e.Violations
	}
	return obj
}
