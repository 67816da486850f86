// Package val_test contains tests for the val package.
package val_test

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/rise-and-shine/mediator/result"
	"github.com/rise-and-shine/mediator/val"
)

type createUser struct {
	Name  string `json:"name"  validate:"required"`
	Email string `json:"email" validate:"required,email"`
	Age   int    `json:"age"   validate:"gte=0,lte=150"`
}

func TestCheckSchema(t *testing.T) {
	tests := []struct {
		name       string
		input      any
		violations []result.Violation
	}{
		{
			name:  "valid struct",
			input: createUser{Name: "Ali", Email: "ali@x.com", Age: 30},
		},
		{
			name:  "every failing rule is collected",
			input: createUser{Name: "", Email: "not-an-email", Age: 200},
			violations: []result.Violation{
				{Field: "name", Message: "This field is required"},
				{Field: "email", Message: "Invalid email format"},
				{Field: "age", Message: "Must be less than or equal to 150"},
			},
		},
		{
			name:  "non-struct values are skipped",
			input: "plain string",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := val.CheckSchema(tt.input)
			assert.Equal(t, tt.violations, got)
		})
	}
}

func TestSchemaValidator(t *testing.T) {
	v := val.Schema[createUser]()

	assert.Empty(t, v.Validate(createUser{Name: "Ali", Email: "a@b.com", Age: 1}))

	violations := v.Validate(createUser{Email: "a@b.com"})
	require.Len(t, violations, 1)
	assert.Equal(t, "name", violations[0].Field)
}

func TestRule(t *testing.T) {
	noSpaces := val.Rule("name",
		func(in createUser) bool { return !strings.Contains(in.Name, " ") },
		"must not contain spaces",
	)

	assert.Empty(t, noSpaces.Validate(createUser{Name: "Ali"}))
	assert.Equal(t,
		[]result.Violation{{Field: "name", Message: "must not contain spaces"}},
		noSpaces.Validate(createUser{Name: "Ali Baba"}),
	)
}

func TestFuncAdapter(t *testing.T) {
	called := false
	v := val.Func[int](func(in int) []result.Violation {
		called = true
		if in < 0 {
			return []result.Violation{{Field: "value", Message: "must be non-negative"}}
		}
		return nil
	})

	assert.Nil(t, v.Validate(1))
	assert.True(t, called)
	assert.Len(t, v.Validate(-1), 1)
}
