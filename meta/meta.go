// Package meta provides functionality for managing dispatch metadata through context.
//
// Metadata is carried as string pairs under typed context keys and flows
// through the whole decorator chain: it is seeded by the meta-inject wrapper,
// attached to log events, forwarded as message headers and included in alert
// details.
package meta

import "context"

// ContextKey is a type for keys used in context values for metadata.
type ContextKey string

const (
	// TraceID is a unique identifier correlating one dispatched operation
	// across services.
	TraceID ContextKey = "trace_id"

	// ActorID identifies the user or system on whose behalf the operation runs.
	ActorID ContextKey = "actor_id"

	// ActorType indicates the kind of actor (user, service, scheduler).
	ActorType ContextKey = "actor_type"

	// Operation is the registered name of the command, query or event
	// currently being dispatched.
	Operation ContextKey = "operation"

	// Locale is the natural language preferred for boundary-level message
	// rendering.
	Locale ContextKey = "locale"

	// ServiceName identifies the name of the current running service.
	ServiceName ContextKey = "service_name"

	// ServiceVersion indicates the version of the service.
	ServiceVersion ContextKey = "service_version"
)

// allKeys lists every key Extract looks up. Keep in sync with the constants.
var allKeys = []ContextKey{ //nolint:gochecknoglobals // finite set of keys
	TraceID,
	ActorID,
	ActorType,
	Operation,
	Locale,
	ServiceName,
	ServiceVersion,
}

// Inject adds metadata from the provided map to the context. Empty values
// are skipped. The returned context carries the added values; the input
// context is unchanged.
func Inject(ctx context.Context, data map[ContextKey]string) context.Context {
	for k, v := range data {
		if v != "" {
			ctx = context.WithValue(ctx, k, v) //nolint:fatcontext // finite set of keys
		}
	}
	return ctx
}

// Extract returns every known metadata value present in the context.
// Only non-empty string values are included.
func Extract(ctx context.Context) map[ContextKey]string {
	data := make(map[ContextKey]string)
	for _, k := range allKeys {
		if v, ok := ctx.Value(k).(string); ok && v != "" {
			data[k] = v
		}
	}
	return data
}

// Find returns the value for a single metadata key, or an empty string when
// the key is absent.
func Find(ctx context.Context, key ContextKey) string {
	if v, ok := ctx.Value(key).(string); ok {
		return v
	}
	return ""
}
