package cqrs

import (
	"github.com/rise-and-shine/mediator/cqrs/command"
	cmdwrapper "github.com/rise-and-shine/mediator/cqrs/command/wrapper"
	"github.com/rise-and-shine/mediator/cqrs/query"
	qrywrapper "github.com/rise-and-shine/mediator/cqrs/query/wrapper"
	"github.com/rise-and-shine/mediator/val"
)

// composeCommand wraps a command handler with the standard pipeline.
//
// The first wrap is outermost: it executes first on the way in and last on
// the way out. Logging wraps validation so that validation short-circuits
// are still logged as completed-with-failure. Recovery sits inside tracing
// so a panic is converted to a failure before the span is closed.
func composeCommand[I command.Input, O command.Output](
	d *Dispatcher,
	name string,
	cmd command.Command[I, O],
	validators []val.Validator[I],
) command.Command[I, O] {
	wraps := make([]command.WrapFunc[I, O], 0, 8) //nolint:mnd // pipeline depth

	wraps = append(wraps,
		cmdwrapper.NewMetaInjectCommandWrapper[I, O](d.cfg.ServiceName, d.cfg.ServiceVersion, name),
		cmdwrapper.NewLoggerCommandWrapper[I, O](d.logger, name),
	)
	if !d.cfg.DisableMetrics {
		wraps = append(wraps, cmdwrapper.NewMetricsCommandWrapper[I, O](d.metrics, name))
	}
	if d.alerts != nil {
		wraps = append(wraps, cmdwrapper.NewAlertCommandWrapper[I, O](d.logger, d.alerts, name))
	}
	if !d.cfg.DisableTracing {
		wraps = append(wraps, cmdwrapper.NewTracingCommandWrapper[I, O]())
	}
	wraps = append(wraps, cmdwrapper.NewRecoveryCommandWrapper[I, O](d.logger, name))
	if d.cfg.Timeout > 0 {
		wraps = append(wraps, cmdwrapper.NewTimeoutCommandWrapper[I, O](d.cfg.Timeout))
	}
	wraps = append(wraps, cmdwrapper.NewValidationCommandWrapper[I, O](validators...))

	return composeCommandWraps(cmd, wraps)
}

// composeQuery wraps a query handler with the standard pipeline. The query
// pipeline carries the same ordering guarantees as the command pipeline but
// skips the metrics and alerting wrappers.
func composeQuery[I query.Input, O query.Output](
	d *Dispatcher,
	name string,
	qry query.Query[I, O],
	validators []val.Validator[I],
) query.Query[I, O] {
	wraps := make([]query.WrapFunc[I, O], 0, 6) //nolint:mnd // pipeline depth

	wraps = append(wraps,
		qrywrapper.NewMetaInjectQueryWrapper[I, O](d.cfg.ServiceName, d.cfg.ServiceVersion, name),
		qrywrapper.NewLoggerQueryWrapper[I, O](d.logger, name),
	)
	if !d.cfg.DisableTracing {
		wraps = append(wraps, qrywrapper.NewTracingQueryWrapper[I, O]())
	}
	wraps = append(wraps, qrywrapper.NewRecoveryQueryWrapper[I, O](d.logger, name))
	if d.cfg.Timeout > 0 {
		wraps = append(wraps, qrywrapper.NewTimeoutQueryWrapper[I, O](d.cfg.Timeout))
	}
	wraps = append(wraps, qrywrapper.NewValidationQueryWrapper[I, O](validators...))

	return composeQueryWraps(qry, wraps)
}

// composeCommandWraps applies wraps in reverse so that wraps[0] ends up
// outermost and the terminal handler innermost.
func composeCommandWraps[I command.Input, O command.Output](
	terminal command.Command[I, O],
	wraps []command.WrapFunc[I, O],
) command.Command[I, O] {
	composed := terminal
	for i := len(wraps) - 1; i >= 0; i-- {
		composed = wraps[i](composed)
	}
	return composed
}

func composeQueryWraps[I query.Input, O query.Output](
	terminal query.Query[I, O],
	wraps []query.WrapFunc[I, O],
) query.Query[I, O] {
	composed := terminal
	for i := len(wraps) - 1; i >= 0; i-- {
		composed = wraps[i](composed)
	}
	return composed
}
