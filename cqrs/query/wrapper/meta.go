package wrapper

import (
	"context"
	"fmt"

	"github.com/google/uuid"
	"go.opentelemetry.io/otel/trace"

	"github.com/rise-and-shine/mediator/cqrs/query"
	"github.com/rise-and-shine/mediator/meta"
	"github.com/rise-and-shine/mediator/result"
)

type MetaInjectQueryWrapper[I query.Input, O query.Output] struct {
	serviceName    string
	serviceVersion string
	next           query.Query[I, O]
	qryName        string
}

// NewMetaInjectQueryWrapper returns a query.WrapFunc that seeds the context
// with dispatch metadata (trace id, operation name, service identity) for
// the downstream chain.
func NewMetaInjectQueryWrapper[I query.Input, O query.Output](
	serviceName, serviceVersion, qryName string,
) query.WrapFunc[I, O] {
	return func(next query.Query[I, O]) query.Query[I, O] {
		return &MetaInjectQueryWrapper[I, O]{
			serviceName:    serviceName,
			serviceVersion: serviceVersion,
			next:           next,
			qryName:        qryName,
		}
	}
}

func (q *MetaInjectQueryWrapper[I, O]) Execute(ctx context.Context, in I) result.Result[O] {
	metadata := map[meta.ContextKey]string{ //nolint:exhaustive // only dispatch-owned keys are seeded
		meta.TraceID:        traceIDFor(ctx),
		meta.Operation:      q.qryName,
		meta.ServiceName:    q.serviceName,
		meta.ServiceVersion: q.serviceVersion,
	}

	ctx = meta.Inject(ctx, metadata)

	return q.next.Execute(ctx, in)
}

// traceIDFor extracts the trace ID from the current span in the context.
// If no trace ID is available, it generates a new UUID to use as a trace ID.
func traceIDFor(ctx context.Context) string {
	if existing := meta.Find(ctx, meta.TraceID); existing != "" {
		return existing
	}

	span := trace.SpanFromContext(ctx)
	traceID := span.SpanContext().TraceID()

	if traceID.IsValid() {
		return traceID.String()
	}

	return fmt.Sprintf("man-%s", uuid.New().String())
}
