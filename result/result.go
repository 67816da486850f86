// Package result provides the tagged success-or-failure value used as the
// universal return type of command and query handlers.
//
// A Result is either a Success carrying a value or a Failure carrying an
// Error. The two states are mutually exclusive and enforced at construction:
// a Success never carries an Error and a Failure never carries a value.
// Expected failures travel as values; panics are reserved for programmer
// errors such as reading the value of a failed result.
package result

// Result is a tagged union of Success(value) or Failure(error).
//
// The zero Result is a failure carrying ErrNone; always construct results
// through Ok, Err or From.
type Result[T any] struct {
	value T
	err   Error
	ok    bool
}

// Ok constructs a successful result carrying v.
func Ok[T any](v T) Result[T] {
	return Result[T]{value: v, ok: true}
}

// Err constructs a failed result carrying e.
//
// Passing ErrNone is a programmer error and panics: a failure without an
// error would break the tag invariant.
func Err[T any](e Error) Result[T] {
	if e.IsNone() {
		panic("result: Err called with the zero error")
	}
	return Result[T]{err: e}
}

// From converts a plain pointer into a result. A non-nil pointer becomes a
// success carrying the pointed-to value; nil becomes Failure(ErrNullValue).
//
// This replaces implicit value-to-result conversion with an explicit factory.
func From[T any](v *T) Result[T] {
	if v == nil {
		return Err[T](ErrNullValue)
	}
	return Ok(*v)
}

// IsSuccess reports whether the result carries a value.
func (r Result[T]) IsSuccess() bool {
	return r.ok
}

// IsFailure reports whether the result carries an error.
func (r Result[T]) IsFailure() bool {
	return !r.ok
}

// Value returns the success value.
//
// Calling Value on a failed result is a programmer error and panics. Use
// ValueOr or check IsSuccess first when the state is not known.
func (r Result[T]) Value() T {
	if !r.ok {
		panic("result: Value called on a failed result (" + r.err.Error() + ")")
	}
	return r.value
}

// ValueOr returns the success value, or def when the result is a failure.
func (r Result[T]) ValueOr(def T) T {
	if !r.ok {
		return def
	}
	return r.value
}

// Err returns the carried error. A successful result returns ErrNone.
func (r Result[T]) Err() Error {
	return r.err
}

// Map transforms a successful result's value with fn. A failure passes
// through unchanged.
func Map[T, U any](r Result[T], fn func(T) U) Result[U] {
	if r.IsFailure() {
		return Err[U](r.err)
	}
	return Ok(fn(r.value))
}

// FlatMap chains result-returning operations. A failure passes through
// unchanged; a success is fed into fn.
func FlatMap[T, U any](r Result[T], fn func(T) Result[U]) Result[U] {
	if r.IsFailure() {
		return Err[U](r.err)
	}
	return fn(r.value)
}
