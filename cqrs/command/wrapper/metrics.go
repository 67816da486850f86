package wrapper

import (
	"context"
	"time"

	"github.com/rcrowley/go-metrics"

	"github.com/rise-and-shine/mediator/cqrs/command"
	"github.com/rise-and-shine/mediator/result"
)

type MetricsCommandWrapper[I command.Input, O command.Output] struct {
	timer    metrics.Timer
	failures metrics.Meter
	next     command.Command[I, O]
}

// NewMetricsCommandWrapper returns a command.WrapFunc that records execution
// timings and failure rates per command into the given metrics registry.
func NewMetricsCommandWrapper[I command.Input, O command.Output](
	registry metrics.Registry,
	cmdName string,
) command.WrapFunc[I, O] {
	return func(next command.Command[I, O]) command.Command[I, O] {
		return &MetricsCommandWrapper[I, O]{
			timer:    metrics.GetOrRegisterTimer("cqrs.command."+cmdName+".execute", registry),
			failures: metrics.GetOrRegisterMeter("cqrs.command."+cmdName+".failures", registry),
			next:     next,
		}
	}
}

func (cmd *MetricsCommandWrapper[I, O]) Execute(ctx context.Context, in I) result.Result[O] {
	start := time.Now()

	res := cmd.next.Execute(ctx, in)

	cmd.timer.UpdateSince(start)
	if res.IsFailure() {
		cmd.failures.Mark(1)
	}

	return res
}
