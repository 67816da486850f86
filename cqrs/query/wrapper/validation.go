package wrapper

import (
	"context"

	"github.com/rise-and-shine/mediator/cqrs/query"
	"github.com/rise-and-shine/mediator/result"
	"github.com/rise-and-shine/mediator/val"
)

type ValidationQueryWrapper[I query.Input, O query.Output] struct {
	validators []val.Validator[I]
	next       query.Query[I, O]
}

// NewValidationQueryWrapper returns a query.WrapFunc that runs every
// registered validator for the query input. All failing rules are aggregated
// into a single validation failure; the next handler is never invoked when
// any rule fails.
func NewValidationQueryWrapper[I query.Input, O query.Output](
	validators ...val.Validator[I],
) query.WrapFunc[I, O] {
	return func(next query.Query[I, O]) query.Query[I, O] {
		return &ValidationQueryWrapper[I, O]{
			validators: validators,
			next:       next,
		}
	}
}

func (q *ValidationQueryWrapper[I, O]) Execute(ctx context.Context, in I) result.Result[O] {
	var violations []result.Violation
	for _, v := range q.validators {
		violations = append(violations, v.Validate(in)...)
	}

	if len(violations) > 0 {
		return result.Err[O](result.NewValidation(violations...))
	}

	return q.next.Execute(ctx, in)
}
