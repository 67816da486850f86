// Package wrapper provides middleware wrappers for CQRS command handlers.
//
// This package enables cross-cutting concerns such as validation, logging,
// tracing, metrics, alerting and panic recovery to be applied to command
// handlers in a composable way. Wrappers hold a reference to the next handler
// in the chain, are constructed once at composition time and invoked many
// times per request; they carry no per-request state.
package wrapper
