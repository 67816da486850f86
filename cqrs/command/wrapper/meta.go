package wrapper

import (
	"context"
	"fmt"

	"github.com/google/uuid"
	"go.opentelemetry.io/otel/trace"

	"github.com/rise-and-shine/mediator/cqrs/command"
	"github.com/rise-and-shine/mediator/meta"
	"github.com/rise-and-shine/mediator/result"
)

type MetaInjectCommandWrapper[I command.Input, O command.Output] struct {
	serviceName    string
	serviceVersion string
	next           command.Command[I, O]
	cmdName        string
}

// NewMetaInjectCommandWrapper returns a command.WrapFunc that seeds the
// context with dispatch metadata (trace id, operation name, service
// identity) for the downstream chain.
func NewMetaInjectCommandWrapper[I command.Input, O command.Output](
	serviceName, serviceVersion, cmdName string,
) command.WrapFunc[I, O] {
	return func(next command.Command[I, O]) command.Command[I, O] {
		return &MetaInjectCommandWrapper[I, O]{
			serviceName:    serviceName,
			serviceVersion: serviceVersion,
			next:           next,
			cmdName:        cmdName,
		}
	}
}

func (cmd *MetaInjectCommandWrapper[I, O]) Execute(ctx context.Context, in I) result.Result[O] {
	metadata := map[meta.ContextKey]string{ //nolint:exhaustive // only dispatch-owned keys are seeded
		meta.TraceID:        getTraceID(ctx),
		meta.Operation:      cmd.cmdName,
		meta.ServiceName:    cmd.serviceName,
		meta.ServiceVersion: cmd.serviceVersion,
	}

	// add meta to context for downstream chain
	ctx = meta.Inject(ctx, metadata)

	return cmd.next.Execute(ctx, in)
}

// getTraceID extracts the trace ID from the current span in the context.
// If no trace ID is available, it generates a new UUID to use as a trace ID.
func getTraceID(ctx context.Context) string {
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
