// Package query defines interfaces and types for CQRS query handling.
//
// It provides abstractions for query execution, input/output typing, and
// middleware wrapping. Queries represent read-only operations that return
// results and do not change state.
package query

import (
	"context"

	"github.com/rise-and-shine/mediator/result"
)

type (
	// Input represents the input type for a query.
	Input any

	// Output represents the output type for a query.
	Output any
)

// Query defines a handler for a CQRS query.
//
// Execute runs the query with the given input and context. Queries are
// read-only by contract; they may be invoked concurrently and must be safe
// for concurrent use.
type Query[I Input, O Output] interface {
	// Execute processes the query input and returns its result.
	Execute(ctx context.Context, in I) result.Result[O]
}

// Func adapts a plain function to the Query interface.
type Func[I Input, O Output] func(ctx context.Context, in I) result.Result[O]

// Execute implements Query.
func (f Func[I, O]) Execute(ctx context.Context, in I) result.Result[O] {
	return f(ctx, in)
}

// WrapFunc defines a middleware function for wrapping query handlers.
//
// It takes a Query and returns a wrapped Query, enabling cross-cutting
// concerns. A wrapper must invoke the next handler at most once per request.
type WrapFunc[I Input, O Output] func(Query[I, O]) Query[I, O]
