package cqrs

import "github.com/code19m/errx"

// Stable error codes for dispatcher failures. Configuration errors surface
// as plain errors at registration time; resolution failures travel inside a
// failed result.
const (
	CodeDuplicateRegistration = "DUPLICATE_REGISTRATION"
	CodeRegistryFrozen        = "REGISTRY_FROZEN"
	CodeHandlerNotFound       = "HANDLER_NOT_FOUND"
	CodeHandlerTypeMismatch   = "HANDLER_TYPE_MISMATCH"
	CodeSubscriberFailed      = "EVENT_SUBSCRIBER_FAILED"
)

var (
	// ErrDuplicateRegistration is returned when a second handler is
	// registered for a request type that is already bound.
	ErrDuplicateRegistration = errx.New(
		"[cqrs]: handler already registered for this request type",
		errx.WithCode(CodeDuplicateRegistration),
	)

	// ErrRegistryFrozen is returned when registration is attempted after the
	// dispatcher has started serving requests.
	ErrRegistryFrozen = errx.New(
		"[cqrs]: registry is frozen once dispatching has started",
		errx.WithCode(CodeRegistryFrozen),
	)
)
