// Package command defines interfaces and types for CQRS command handling.
//
// It provides abstractions for command execution, input/output typing, and
// middleware wrapping. Commands represent operations that change state and
// return a result.Result carrying either the produced value or an expected
// failure.
package command

import (
	"context"

	"github.com/rise-and-shine/mediator/result"
)

// EmptyResult is a placeholder type for commands that do not produce a value.
type EmptyResult = struct{}

type (
	// Input represents the input type for a command.
	Input any

	// Output represents the output type for a command.
	Output any
)

// Command defines a handler for a CQRS command.
//
// Execute runs the command with the given input and context. Expected
// failures travel inside the returned result; handlers must observe ctx and
// return a cancelled result once cancellation is seen. Handlers may be
// invoked concurrently and must be safe for concurrent use.
type Command[I Input, O Output] interface {
	// Execute processes the command input and returns its result.
	Execute(ctx context.Context, in I) result.Result[O]
}

// Func adapts a plain function to the Command interface.
type Func[I Input, O Output] func(ctx context.Context, in I) result.Result[O]

// Execute implements Command.
func (f Func[I, O]) Execute(ctx context.Context, in I) result.Result[O] {
	return f(ctx, in)
}

// WrapFunc defines a middleware function for wrapping command handlers.
//
// It takes a Command and returns a wrapped Command, enabling cross-cutting
// concerns. A wrapper must invoke the next handler at most once per request.
type WrapFunc[I Input, O Output] func(Command[I, O]) Command[I, O]
