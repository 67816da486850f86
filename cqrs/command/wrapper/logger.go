package wrapper

import (
	"context"
	"time"

	"github.com/rise-and-shine/mediator/cqrs/command"
	"github.com/rise-and-shine/mediator/logger"
	"github.com/rise-and-shine/mediator/mask"
	"github.com/rise-and-shine/mediator/result"
)

type LoggerCommandWrapper[I command.Input, O command.Output] struct {
	logger  logger.Logger
	next    command.Command[I, O]
	cmdName string
}

// NewLoggerCommandWrapper returns a command.WrapFunc that records exactly one
// "started" and one "completed" event per execution, regardless of outcome.
// Sensitive input fields tagged with `mask:"true"` are masked before logging.
// The wrapper never alters the result.
func NewLoggerCommandWrapper[I command.Input, O command.Output](
	logger logger.Logger,
	cmdName string,
) command.WrapFunc[I, O] {
	return func(next command.Command[I, O]) command.Command[I, O] {
		return &LoggerCommandWrapper[I, O]{
			logger:  logger.Named("cqrs.command.logger").With("command_name", cmdName),
			next:    next,
			cmdName: cmdName,
		}
	}
}

func (cmd *LoggerCommandWrapper[I, O]) Execute(ctx context.Context, in I) result.Result[O] {
	log := cmd.logger.WithContext(ctx).With("input", mask.Fields(in))

	log.Debug("command started")

	start := time.Now()
	res := cmd.next.Execute(ctx, in)
	duration := time.Since(start)

	log = log.With("execution_time", duration.String())

	if res.IsFailure() {
		e := res.Err()
		log = log.With("error", errorObject(e))
		if e.Category == result.CategoryFailure {
			log.Error("command completed")
		} else {
			log.Warn("command completed")
		}
		return res
	}

	log.Info("command completed")
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
