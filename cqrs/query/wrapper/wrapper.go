// Package wrapper provides middleware wrappers for CQRS query handlers.
//
// This package enables cross-cutting concerns such as validation, logging
// and tracing to be applied to query handlers in a composable way. Wrappers
// hold a reference to the next handler in the chain, are constructed once at
// composition time and carry no per-request state.
package wrapper
