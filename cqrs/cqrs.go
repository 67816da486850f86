// Package cqrs provides Command Query Responsibility Segregation (CQRS)
// pattern implementation with a central dispatcher.
//
// The package defines abstractions for commands, queries and events, a
// registry binding each request type to exactly one handler, and a decorator
// pipeline applying cross-cutting concerns (validation, logging, tracing,
// metrics, alerting, panic recovery) around every handler. Handlers are
// registered once at startup; after the first dispatch the registry is
// frozen and served lock-free.
package cqrs
