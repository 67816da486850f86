package wrapper

import (
	"context"

	"github.com/rise-and-shine/mediator/cqrs/command"
	"github.com/rise-and-shine/mediator/result"
	"github.com/rise-and-shine/mediator/val"
)

type ValidationCommandWrapper[I command.Input, O command.Output] struct {
	validators []val.Validator[I]
	next       command.Command[I, O]
}

// NewValidationCommandWrapper returns a command.WrapFunc that runs every
// registered validator for the command input. All failing rules are
// aggregated into a single validation failure; the next handler is never
// invoked when any rule fails.
func NewValidationCommandWrapper[I command.Input, O command.Output](
	validators ...val.Validator[I],
) command.WrapFunc[I, O] {
	return func(next command.Command[I, O]) command.Command[I, O] {
		return &ValidationCommandWrapper[I, O]{
			validators: validators,
			next:       next,
		}
	}
}

func (cmd *ValidationCommandWrapper[I, O]) Execute(ctx context.Context, in I) result.Result[O] {
	var violations []result.Violation
	for _, v := range cmd.validators {
		violations = append(violations, v.Validate(in)...)
	}

	if len(violations) > 0 {
		return result.Err[O](result.NewValidation(violations...))
	}

	return cmd.next.Execute(ctx, in)
}
