// Package val provides the validator contract used by the validation
// decorators, together with a schema validator built on struct tags.
//
// Validators are pure: they inspect a request value and report rule
// violations without side effects or I/O. The validation decorator runs
// every validator registered for a request type and aggregates all failing
// rules before short-circuiting the dispatch.
package val

import (
	"reflect"
	"strings"

	"github.com/go-playground/validator/v10"

	"github.com/rise-and-shine/mediator/result"
)

var validate *validator.Validate //nolint:gochecknoglobals // single configured instance shared by all schema validators

func init() { //nolint:gochecknoinits // configures the shared validator instance
	validate = validator.New(validator.WithRequiredStructEnabled())
	validate.RegisterTagNameFunc(tagName)
}

// Validator reports rule violations for a request value.
type Validator[I any] interface {
	// Validate inspects in and returns every failing rule. An empty or nil
	// slice means the value is valid.
	Validate(in I) []result.Violation
}

// Func adapts a plain function to the Validator interface.
type Func[I any] func(in I) []result.Violation

// Validate implements Validator.
func (f Func[I]) Validate(in I) []result.Violation {
	return f(in)
}

// Rule builds a single-field validator from a predicate. The violation is
// reported when ok returns false.
func Rule[I any](field string, ok func(in I) bool, message string) Validator[I] {
	return Func[I](func(in I) []result.Violation {
		if ok(in) {
			return nil
		}
		return []result.Violation{{Field: field, Message: message}}
	})
}

// RegisterRule registers a custom validation tag usable in `validate` struct
// tags. It must be called before the first schema validation runs.
func RegisterRule(tag string, fn validator.Func) error {
	return validate.RegisterValidation(tag, fn)
}

// tagName resolves the reported name of a struct field. It checks the
// 'json', 'query' and 'params' tags in that order and falls back to the
// field name.
func tagName(fld reflect.StructField) string {
	for _, tag := range []string{"json", "query", "params"} {
		name := strings.SplitN(fld.Tag.Get(tag), ",", 2)[0]
		if name != "" && name != "-" {
			return name
		}
	}
	return fld.Name
}
