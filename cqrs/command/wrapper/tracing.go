package wrapper

import (
	"context"
	"fmt"
	"strings"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"

	"github.com/rise-and-shine/mediator/cqrs/command"
	"github.com/rise-and-shine/mediator/result"
)

type TracingCommandWrapper[I command.Input, O command.Output] struct {
	tracer   trace.Tracer
	spanName string
	next     command.Command[I, O]
}

// NewTracingCommandWrapper returns a command.WrapFunc that starts an
// OpenTelemetry span per execution and records failed results on the span.
func NewTracingCommandWrapper[I command.Input, O command.Output]() command.WrapFunc[I, O] {
	return func(next command.Command[I, O]) command.Command[I, O] {
		return &TracingCommandWrapper[I, O]{
			tracer:   otel.Tracer("cqrs/command"),
			spanName: spanNameFor(next),
			next:     next,
		}
	}
}

func (t *TracingCommandWrapper[I, O]) Execute(ctx context.Context, in I) result.Result[O] {
	ctx, span := t.tracer.Start(ctx, t.spanName)
	defer span.End()

	res := t.next.Execute(ctx, in)

	if res.IsFailure() {
		e := res.Err()
		span.RecordError(e)
		span.SetStatus(codes.Error, e.Message)
	}

	return res
}

// spanNameFor returns a span name based on the wrapped handler type.
func spanNameFor(h any) string {
	fullType := fmt.Sprintf("%T", h)

	fullType = strings.TrimPrefix(fullType, "*")

	parts := strings.Split(fullType, ".")
	if len(parts) > 1 {
		return parts[len(parts)-1]
	}

	return fullType
}
