// Package result_test contains tests for the result package.
package result_test

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/rise-and-shine/mediator/result"
)

func TestOkRoundTrip(t *testing.T) {
	r := result.Ok(42)

	assert.True(t, r.IsSuccess())
	assert.False(t, r.IsFailure())
	assert.Equal(t, 42, r.Value())
	assert.Equal(t, result.ErrNone, r.Err())
}

func TestErrRoundTrip(t *testing.T) {
	e := result.NewNotFound("USER_NOT_FOUND", "user does not exist")
	r := result.Err[string](e)

	assert.False(t, r.IsSuccess())
	assert.True(t, r.IsFailure())
	assert.Equal(t, e, r.Err())
	assert.Equal(t, "fallback", r.ValueOr("fallback"))
}

func TestValuePanicsOnFailure(t *testing.T) {
	r := result.Err[int](result.NewFailure("BOOM", "boom"))

	assert.PanicsWithValue(t,
		"result: Value called on a failed result (BOOM: boom)",
		func() { _ = r.Value() },
	)
}

func TestErrPanicsOnZeroError(t *testing.T) {
	assert.Panics(t, func() { _ = result.Err[int](result.ErrNone) })
}

func TestFrom(t *testing.T) {
	v := "hello"

	tests := []struct {
		name      string
		in        *string
		wantOK    bool
		wantValue string
		wantErr   result.Error
	}{
		{
			name:      "non-nil pointer becomes success",
			in:        &v,
			wantOK:    true,
			wantValue: "hello",
		},
		{
			name:    "nil pointer becomes null value failure",
			in:      nil,
			wantOK:  false,
			wantErr: result.ErrNullValue,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			r := result.From(tt.in)

			assert.Equal(t, tt.wantOK, r.IsSuccess())
			if tt.wantOK {
				assert.Equal(t, tt.wantValue, r.Value())
			} else {
				assert.Equal(t, tt.wantErr, r.Err())
			}
		})
	}
}

func TestMapAndFlatMap(t *testing.T) {
	double := func(v int) int { return v * 2 }

	ok := result.Map(result.Ok(21), double)
	require.True(t, ok.IsSuccess())
	assert.Equal(t, 42, ok.Value())

	failed := result.Map(result.Err[int](result.NewFailure("BOOM", "boom")), double)
	assert.True(t, failed.IsFailure())
	assert.Equal(t, "BOOM", failed.Err().Code)

	chained := result.FlatMap(result.Ok(2), func(v int) result.Result[string] {
		return result.Ok("got 2")
	})
	require.True(t, chained.IsSuccess())
	assert.Equal(t, "got 2", chained.Value())
}

func TestNewValidationAggregatesViolations(t *testing.T) {
	e := result.NewValidation(
		result.Violation{Field: "name", Message: "required"},
		result.Violation{Field: "email", Message: "invalid format"},
	)

	assert.Equal(t, "VALIDATION_FAILED", e.Code)
	assert.Equal(t, result.CategoryValidation, e.Category)
	assert.Len(t, e.Violations, 2)
}

func TestErrorIdentity(t *testing.T) {
	a := result.NewConflict("STALE_WRITE", "resource changed")
	b := result.NewConflict("STALE_WRITE", "different message").
		WithArgs(map[string]any{"version": 3})

	assert.True(t, a.Is(b))
	assert.False(t, a.Is(result.NewFailure("STALE_WRITE", "resource changed")))
}

func TestWithArgsDoesNotMutate(t *testing.T) {
	base := result.NewProblem("LIMIT_EXCEEDED", "too many items")
	derived := base.WithArgs(map[string]any{"limit": 10})

	assert.Nil(t, base.Args)
	assert.Equal(t, map[string]any{"limit": 10}, derived.Args)
}

func TestStringArgs(t *testing.T) {
	e := result.NewProblem("LIMIT_EXCEEDED", "too many items").
		WithArgs(map[string]any{"limit": 10, "actor": "u-1"})

	assert.Equal(t, map[string]string{"limit": "10", "actor": "u-1"}, e.StringArgs())
	assert.Nil(t, result.NewFailure("X", "y").StringArgs())
}

func TestNewCancelled(t *testing.T) {
	ctx, cancel := context.WithCancel(t.Context())
	cancel()

	e := result.NewCancelled(ctx.Err())

	assert.Equal(t, "OPERATION_CANCELLED", e.Code)
	assert.Equal(t, result.CategoryCancelled, e.Category)
	assert.Equal(t, "context canceled", e.Args["cause"])
}

func TestCategoryString(t *testing.T) {
	tests := []struct {
		category result.Category
		want     string
	}{
		{result.CategoryFailure, "failure"},
		{result.CategoryValidation, "validation"},
		{result.CategoryProblem, "problem"},
		{result.CategoryNotFound, "not_found"},
		{result.CategoryConflict, "conflict"},
		{result.CategoryCancelled, "cancelled"},
		{result.Category(99), "unknown"},
	}

	for _, tt := range tests {
		assert.Equal(t, tt.want, tt.category.String())
	}
}
