package wrapper

import (
	"context"
	"fmt"
	"strings"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"

	"github.com/rise-and-shine/mediator/cqrs/query"
	"github.com/rise-and-shine/mediator/result"
)

// TracingQueryWrapper wraps a query handler with OpenTelemetry tracing.
//
// It starts a new span for each query execution, records failed results and
// sets span status. The span name is derived from the query type for better
// trace readability.
type TracingQueryWrapper[I query.Input, O query.Output] struct {
	tracer   trace.Tracer
	spanName string
	next     query.Query[I, O]
}

// NewTracingQueryWrapper returns a query.WrapFunc that wraps a query handler
// with tracing.
func NewTracingQueryWrapper[I query.Input, O query.Output]() query.WrapFunc[I, O] {
	return func(next query.Query[I, O]) query.Query[I, O] {
		return &TracingQueryWrapper[I, O]{
			tracer:   otel.Tracer("cqrs/query"),
			spanName: spanNameFor(next),
			next:     next,
		}
	}
}

func (t *TracingQueryWrapper[I, O]) Execute(ctx context.Context, in I) result.Result[O] {
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
