package wrapper

import (
	"context"
	"fmt"
	"time"

	"github.com/rise-and-shine/mediator/alert"
	"github.com/rise-and-shine/mediator/cqrs/command"
	"github.com/rise-and-shine/mediator/logger"
	"github.com/rise-and-shine/mediator/meta"
	"github.com/rise-and-shine/mediator/result"
)

const alertTimeout = 3 * time.Second

type AlertCommandWrapper[I command.Input, O command.Output] struct {
	logger        logger.Logger
	alertProvider alert.Provider
	next          command.Command[I, O]
	cmdName       string
}

// NewAlertCommandWrapper returns a command.WrapFunc that reports internal
// failures to the alert provider out of band. Alert delivery is
// fire-and-forget: a failure to send never fails the dispatched operation,
// and expected failures (validation, not-found, conflicts) are not reported.
func NewAlertCommandWrapper[I command.Input, O command.Output](
	logger logger.Logger,
	alertProvider alert.Provider,
	cmdName string,
) command.WrapFunc[I, O] {
	return func(next command.Command[I, O]) command.Command[I, O] {
		return &AlertCommandWrapper[I, O]{
			logger:        logger.Named("cqrs.command.alerting"),
			alertProvider: alertProvider,
			next:          next,
			cmdName:       cmdName,
		}
	}
}

func (cmd *AlertCommandWrapper[I, O]) Execute(ctx context.Context, in I) result.Result[O] {
	res := cmd.next.Execute(ctx, in)
	if res.IsSuccess() || res.Err().Category != result.CategoryFailure {
		return res
	}

	e := res.Err()

	operation := fmt.Sprintf("command: %s", cmd.cmdName)
	details := make(map[string]string)
	for k, v := range meta.Extract(ctx) {
		details[string(k)] = v
	}
	for k, v := range e.StringArgs() {
		details[k] = v
	}

	newCtx, cancel := context.WithTimeout(context.WithoutCancel(ctx), alertTimeout)

	go func() {
		defer cancel() // ensure newCtx is cancelled after sending alert

		sendErr := cmd.alertProvider.SendError(newCtx, e.Code, e.Message, operation, details)
		if sendErr != nil {
			cmd.logger.With("alert_send_error", sendErr).Warn("failed to send error alert")
		}
	}()

	return res
}
