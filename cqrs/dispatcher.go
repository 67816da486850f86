package cqrs

import (
	"context"
	"fmt"
	"reflect"
	"sync"
	"sync/atomic"

	"github.com/code19m/errx"
	"github.com/rcrowley/go-metrics"
	"github.com/samber/lo"

	"github.com/rise-and-shine/mediator/alert"
	"github.com/rise-and-shine/mediator/cqrs/command"
	"github.com/rise-and-shine/mediator/cqrs/event"
	"github.com/rise-and-shine/mediator/cqrs/query"
	"github.com/rise-and-shine/mediator/logger"
	"github.com/rise-and-shine/mediator/result"
	"github.com/rise-and-shine/mediator/val"
)

// Unit is the value carried by results of operations that produce nothing,
// such as Publish.
type Unit = struct{}

const (
	kindCommand = "command"
	kindQuery   = "query"
)

// handlerEntry binds a request type to its fully decorated handler.
type handlerEntry struct {
	name    string
	kind    string
	handler any
}

// subscriberEntry binds an event type to one named subscriber. The invoke
// closure restores the concrete event type captured at subscription time.
type subscriberEntry struct {
	name   string
	invoke func(ctx context.Context, e any) error
}

// Dispatcher resolves and invokes the decorated handler for a given request
// and fans events out to their subscribers.
//
// Registration happens once during process startup, before the first Send or
// Publish; the first dispatch freezes the registry and later registration
// attempts fail with ErrRegistryFrozen. Because the registry is read-only
// after startup, dispatching needs no locking and handlers may be invoked
// from any number of goroutines concurrently.
type Dispatcher struct {
	cfg     Config
	logger  logger.Logger
	alerts  alert.Provider
	metrics metrics.Registry

	mu          sync.Mutex
	frozen      atomic.Bool
	handlers    map[reflect.Type]handlerEntry
	subscribers map[reflect.Type][]subscriberEntry
}

// Option configures optional dispatcher collaborators.
type Option func(*Dispatcher)

// WithAlertProvider enables the alerting wrapper, reporting internal
// failures to the given provider.
func WithAlertProvider(p alert.Provider) Option {
	return func(d *Dispatcher) { d.alerts = p }
}

// WithMetricsRegistry overrides the metrics registry used by the metrics
// wrappers. Defaults to metrics.DefaultRegistry.
func WithMetricsRegistry(r metrics.Registry) Option {
	return func(d *Dispatcher) { d.metrics = r }
}

// New creates a dispatcher with the given configuration. A nil logger
// disables logging output (a no-op logger is used); log events are still
// emitted per the pipeline contract.
func New(cfg Config, log logger.Logger, opts ...Option) (*Dispatcher, error) {
	if violations := val.CheckSchema(cfg); len(violations) > 0 {
		fields := make(errx.M, len(violations))
		for _, v := range violations {
			fields[v.Field] = v.Message
		}
		return nil, errx.New(
			"[cqrs]: invalid dispatcher config",
			errx.WithType(errx.T_Validation),
			errx.WithFields(fields),
		)
	}

	if log == nil {
		log = logger.NewNop()
	}

	d := &Dispatcher{
		cfg:         cfg,
		logger:      log,
		metrics:     metrics.DefaultRegistry,
		handlers:    make(map[reflect.Type]handlerEntry),
		subscribers: make(map[reflect.Type][]subscriberEntry),
	}

	for _, opt := range opts {
		opt(d)
	}

	return d, nil
}

// RegisterCommand binds a command handler to the input type I and wraps it
// with the standard pipeline. Exactly one handler may be bound per input
// type; a second registration fails with ErrDuplicateRegistration.
//
// Registration is not safe for use concurrently with dispatching; complete
// all registration during startup.
func RegisterCommand[I command.Input, O command.Output](
	d *Dispatcher,
	name string,
	cmd command.Command[I, O],
	validators ...val.Validator[I],
) error {
	composed := composeCommand(d, name, cmd, validators)
	return d.register(typeOf[I](), handlerEntry{name: name, kind: kindCommand, handler: composed})
}

// RegisterQuery binds a query handler to the input type I and wraps it with
// the standard pipeline. Exactly one handler may be bound per input type.
func RegisterQuery[I query.Input, O query.Output](
	d *Dispatcher,
	name string,
	qry query.Query[I, O],
	validators ...val.Validator[I],
) error {
	composed := composeQuery(d, name, qry, validators)
	return d.register(typeOf[I](), handlerEntry{name: name, kind: kindQuery, handler: composed})
}

// Subscribe adds a named subscriber for the event type E. Any number of
// subscribers may be bound to the same event type; they run in subscription
// order on Publish.
func Subscribe[E event.Event](d *Dispatcher, name string, sub event.Subscriber[E]) error {
	d.mu.Lock()
	defer d.mu.Unlock()

	if d.frozen.Load() {
		return errx.Wrap(ErrRegistryFrozen, errx.WithDetails(errx.D{
			"event_type": typeOf[E]().String(),
			"subscriber": name,
		}))
	}

	invoke := func(ctx context.Context, e any) error {
		payload, ok := e.(E)
		if !ok {
			return errx.New(fmt.Sprintf("[cqrs]: subscriber %q received unexpected payload type %T", name, e))
		}
		return sub.Handle(ctx, payload)
	}

	t := typeOf[E]()
	d.subscribers[t] = append(d.subscribers[t], subscriberEntry{name: name, invoke: invoke})
	return nil
}

// Send dispatches a command or query to its registered handler and returns
// the handler's result. Resolution failures are returned as failed results
// with stable codes; they are configuration errors and are also logged.
func Send[I command.Input, O command.Output](ctx context.Context, d *Dispatcher, in I) result.Result[O] {
	d.frozen.Store(true)

	if err := ctx.Err(); err != nil {
		return result.Err[O](result.NewCancelled(err))
	}

	t := typeOf[I]()
	entry, ok := d.handlers[t]
	if !ok {
		d.logger.Named("cqrs.dispatcher").
			With("request_type", t.String()).
			Error("no handler registered for request type")
		return result.Err[O](
			result.NewFailure(CodeHandlerNotFound, "no handler registered for request type").
				WithArgs(map[string]any{"request_type": t.String()}),
		)
	}

	switch h := entry.handler.(type) {
	case command.Command[I, O]:
		return h.Execute(ctx, in)
	case query.Query[I, O]:
		return h.Execute(ctx, in)
	default:
		d.logger.Named("cqrs.dispatcher").
			With("request_type", t.String()).
			With("operation", entry.name).
			Error("registered handler does not match requested output type")
		return result.Err[O](
			result.NewFailure(CodeHandlerTypeMismatch, "registered handler does not match requested output type").
				WithArgs(map[string]any{"request_type": t.String(), "operation": entry.name}),
		)
	}
}

// Publish fans an event out to every subscriber of its type, in
// subscription order. All subscribers run even when earlier ones fail; the
// returned result reports the first failure together with the names of every
// failed subscriber. Nothing is rolled back. Publishing an event with no
// subscribers succeeds.
//
// Once ctx cancellation is observed, remaining subscribers are skipped and a
// cancelled result is returned.
func Publish[E event.Event](ctx context.Context, d *Dispatcher, e E) result.Result[Unit] {
	d.frozen.Store(true)

	t := typeOf[E]()
	log := d.logger.Named("cqrs.event").WithContext(ctx).With("event_type", t.String())

	var (
		firstErr error
		failed   []string
	)

	for _, sub := range d.subscribers[t] {
		if err := ctx.Err(); err != nil {
			log.With("subscriber", sub.name).Warn("event fan-out cancelled")
			return result.Err[Unit](result.NewCancelled(err).WithArgs(map[string]any{
				"event":      t.String(),
				"skipped_at": sub.name,
			}))
		}

		if err := invokeSubscriber(ctx, sub, e); err != nil {
			log.With("subscriber", sub.name).With("error", err.Error()).
				Error("event subscriber failed")
			failed = append(failed, sub.name)
			if firstErr == nil {
				firstErr = err
			}
		}
	}

	if firstErr != nil {
		return result.Err[Unit](
			result.NewFailure(CodeSubscriberFailed, "one or more event subscribers failed").
				WithArgs(map[string]any{
					"event":              t.String(),
					"failed_subscribers": failed,
					"first_error":        firstErr.Error(),
				}),
		)
	}

	return result.Ok(Unit{})
}

// Operations returns the registered operation names, sorted registration
// kind first. Intended for startup logging and diagnostics.
func (d *Dispatcher) Operations() []string {
	d.mu.Lock()
	defer d.mu.Unlock()

	entries := lo.Values(d.handlers)
	return lo.Map(entries, func(e handlerEntry, _ int) string {
		return e.kind + ":" + e.name
	})
}

func (d *Dispatcher) register(t reflect.Type, entry handlerEntry) error {
	d.mu.Lock()
	defer d.mu.Unlock()

	if d.frozen.Load() {
		return errx.Wrap(ErrRegistryFrozen, errx.WithDetails(errx.D{
			"request_type": t.String(),
			"operation":    entry.name,
		}))
	}

	if existing, ok := d.handlers[t]; ok {
		return errx.Wrap(ErrDuplicateRegistration, errx.WithDetails(errx.D{
			"request_type": t.String(),
			"operation":    entry.name,
			"existing":     existing.name,
		}))
	}

	d.handlers[t] = entry
	return nil
}

// invokeSubscriber runs one subscriber, converting a panic into an error so
// a misbehaving subscriber cannot stop the fan-out.
func invokeSubscriber(ctx context.Context, sub subscriberEntry, e any) (err error) {
	defer func() {
		if r := recover(); r != nil {
			err = errx.New(fmt.Sprintf("[cqrs]: panic in event subscriber %q: %v", sub.name, r))
		}
	}()

	return sub.invoke(ctx, e)
}

// typeOf returns the reflect.Type of the static type parameter, independent
// of any runtime value. Registration and dispatch must agree on this key.
func typeOf[T any]() reflect.Type {
	return reflect.TypeOf((*T)(nil)).Elem()
}
