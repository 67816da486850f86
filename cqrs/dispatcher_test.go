package cqrs_test

import (
	"context"
	"errors"
	"sync"
	"testing"

	"github.com/code19m/errx"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/rise-and-shine/mediator/cqrs"
	"github.com/rise-and-shine/mediator/cqrs/command"
	"github.com/rise-and-shine/mediator/cqrs/event"
	"github.com/rise-and-shine/mediator/cqrs/query"
	"github.com/rise-and-shine/mediator/logger"
	"github.com/rise-and-shine/mediator/meta"
	"github.com/rise-and-shine/mediator/result"
	"github.com/rise-and-shine/mediator/val"
)

// spyLogger records log messages per level so tests can assert on the
// pipeline's logging contract.
type spyLogger struct {
	mu      *sync.Mutex
	entries *[]spyEntry
}

type spyEntry struct {
	level string
	msg   string
}

func newSpyLogger() *spyLogger {
	return &spyLogger{mu: &sync.Mutex{}, entries: &[]spyEntry{}}
}

func (s *spyLogger) record(level string, args ...any) {
	s.mu.Lock()
	defer s.mu.Unlock()
	msg := ""
	if len(args) > 0 {
		if str, ok := args[0].(string); ok {
			msg = str
		}
	}
	*s.entries = append(*s.entries, spyEntry{level: level, msg: msg})
}

func (s *spyLogger) count(level, msg string) int {
	s.mu.Lock()
	defer s.mu.Unlock()
	n := 0
	for _, e := range *s.entries {
		if e.level == level && e.msg == msg {
			n++
		}
	}
	return n
}

func (s *spyLogger) Debug(args ...any) { s.record("debug", args...) }
func (s *spyLogger) Info(args ...any)  { s.record("info", args...) }
func (s *spyLogger) Warn(args ...any)  { s.record("warn", args...) }
func (s *spyLogger) Error(args ...any) { s.record("error", args...) }
func (s *spyLogger) Fatal(args ...any) { s.record("fatal", args...) }

func (s *spyLogger) Debugw(msg string, _ ...any) { s.record("debug", msg) }
func (s *spyLogger) Infow(msg string, _ ...any)  { s.record("info", msg) }
func (s *spyLogger) Warnw(msg string, _ ...any)  { s.record("warn", msg) }
func (s *spyLogger) Errorw(msg string, _ ...any) { s.record("error", msg) }

func (s *spyLogger) With(_ ...any) logger.Logger               { return s }
func (s *spyLogger) WithContext(_ context.Context) logger.Logger { return s }
func (s *spyLogger) Named(_ string) logger.Logger              { return s }
func (s *spyLogger) Sync() error                               { return nil }

type createUser struct {
	Name  string `json:"name" validate:"required"`
	Email string `json:"email" validate:"omitempty,email"`
}

type createdUser struct {
	ID   string
	Name string
}

type createUserHandler struct {
	mu    sync.Mutex
	calls int
	fail  result.Error
}

func (h *createUserHandler) Execute(ctx context.Context, in createUser) result.Result[createdUser] {
	h.mu.Lock()
	h.calls++
	h.mu.Unlock()

	if !h.fail.IsNone() {
		return result.Err[createdUser](h.fail)
	}
	return result.Ok(createdUser{ID: "u-1", Name: in.Name})
}

func (h *createUserHandler) callCount() int {
	h.mu.Lock()
	defer h.mu.Unlock()
	return h.calls
}

type getUser struct {
	ID string `json:"id" validate:"required"`
}

func testConfig() cqrs.Config {
	return cqrs.Config{
		ServiceName:    "user-service",
		ServiceVersion: "test",
		DisableTracing: true,
		DisableMetrics: true,
	}
}

func newDispatcher(t *testing.T, log logger.Logger) *cqrs.Dispatcher {
	t.Helper()
	d, err := cqrs.New(testConfig(), log)
	require.NoError(t, err)
	return d
}

func TestNew_InvalidConfig(t *testing.T) {
	_, err := cqrs.New(cqrs.Config{}, nil)
	require.Error(t, err)

	assert.Equal(t, errx.T_Validation, errx.AsErrorX(err).Type())
}

func TestSend_CommandSuccess(t *testing.T) {
	spy := newSpyLogger()
	d := newDispatcher(t, spy)

	h := &createUserHandler{}
	require.NoError(t, cqrs.RegisterCommand(d, "user.create", h, val.Schema[createUser]()))

	res := cqrs.Send[createUser, createdUser](context.Background(), d, createUser{Name: "alice"})

	require.True(t, res.IsSuccess())
	assert.Equal(t, "alice", res.Value().Name)
	assert.Equal(t, 1, h.callCount())

	assert.Equal(t, 1, spy.count("debug", "command started"))
	assert.Equal(t, 1, spy.count("info", "command completed"))
}

func TestSend_ValidationFailure(t *testing.T) {
	spy := newSpyLogger()
	d := newDispatcher(t, spy)

	h := &createUserHandler{}
	require.NoError(t, cqrs.RegisterCommand(d, "user.create", h, val.Schema[createUser]()))

	res := cqrs.Send[createUser, createdUser](context.Background(), d, createUser{Email: "not-an-email"})

	require.True(t, res.IsFailure())
	e := res.Err()
	assert.Equal(t, result.CategoryValidation, e.Category)

	fields := make([]string, 0, len(e.Violations))
	for _, v := range e.Violations {
		fields = append(fields, v.Field)
	}
	assert.ElementsMatch(t, []string{"name", "email"}, fields)

	// Validation short-circuits before the handler, but the completion is
	// still logged.
	assert.Equal(t, 0, h.callCount())
	assert.Equal(t, 1, spy.count("debug", "command started"))
	assert.Equal(t, 1, spy.count("warn", "command completed"))
}

func TestSend_ExtraRuleValidators(t *testing.T) {
	d := newDispatcher(t, nil)

	h := &createUserHandler{}
	reserved := val.Rule[createUser]("name", func(in createUser) bool {
		return in.Name != "root"
	}, "This name is reserved")

	require.NoError(t, cqrs.RegisterCommand(d, "user.create", h, val.Schema[createUser](), reserved))

	res := cqrs.Send[createUser, createdUser](context.Background(), d, createUser{Name: "root"})

	require.True(t, res.IsFailure())
	require.Len(t, res.Err().Violations, 1)
	assert.Equal(t, "This name is reserved", res.Err().Violations[0].Message)
}

func TestSend_HandlerFailurePassesThrough(t *testing.T) {
	spy := newSpyLogger()
	d := newDispatcher(t, spy)

	h := &createUserHandler{fail: result.NewConflict("USER_EXISTS", "user already exists")}
	require.NoError(t, cqrs.RegisterCommand(d, "user.create", h))

	res := cqrs.Send[createUser, createdUser](context.Background(), d, createUser{Name: "alice"})

	require.True(t, res.IsFailure())
	assert.Equal(t, "USER_EXISTS", res.Err().Code)
	assert.Equal(t, result.CategoryConflict, res.Err().Category)
	assert.Equal(t, 1, spy.count("warn", "command completed"))
}

func TestSend_QuerySuccess(t *testing.T) {
	d := newDispatcher(t, nil)

	q := query.Func[getUser, createdUser](func(_ context.Context, in getUser) result.Result[createdUser] {
		return result.Ok(createdUser{ID: in.ID, Name: "alice"})
	})
	require.NoError(t, cqrs.RegisterQuery(d, "user.get", q, val.Schema[getUser]()))

	res := cqrs.Send[getUser, createdUser](context.Background(), d, getUser{ID: "u-1"})

	require.True(t, res.IsSuccess())
	assert.Equal(t, "u-1", res.Value().ID)
}

func TestSend_HandlerNotFound(t *testing.T) {
	d := newDispatcher(t, nil)

	res := cqrs.Send[createUser, createdUser](context.Background(), d, createUser{Name: "alice"})

	require.True(t, res.IsFailure())
	assert.Equal(t, cqrs.CodeHandlerNotFound, res.Err().Code)
	assert.Equal(t, result.CategoryFailure, res.Err().Category)
}

func TestSend_CancelledContext(t *testing.T) {
	d := newDispatcher(t, nil)

	h := &createUserHandler{}
	require.NoError(t, cqrs.RegisterCommand(d, "user.create", h))

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	res := cqrs.Send[createUser, createdUser](ctx, d, createUser{Name: "alice"})

	require.True(t, res.IsFailure())
	assert.Equal(t, result.CategoryCancelled, res.Err().Category)
	assert.Equal(t, 0, h.callCount())
}

func TestSend_PanicRecovered(t *testing.T) {
	d := newDispatcher(t, nil)

	panicking := command.Func[createUser, createdUser](func(_ context.Context, _ createUser) result.Result[createdUser] {
		panic("boom")
	})
	require.NoError(t, cqrs.RegisterCommand(d, "user.create", panicking))

	res := cqrs.Send[createUser, createdUser](context.Background(), d, createUser{Name: "alice"})

	require.True(t, res.IsFailure())
	assert.Equal(t, "PANIC_RECOVERED", res.Err().Code)
	assert.Equal(t, result.CategoryFailure, res.Err().Category)
}

func TestSend_MetaInjected(t *testing.T) {
	d := newDispatcher(t, nil)

	var seen map[meta.ContextKey]string
	capture := command.Func[createUser, createdUser](func(ctx context.Context, in createUser) result.Result[createdUser] {
		seen = meta.Extract(ctx)
		return result.Ok(createdUser{Name: in.Name})
	})
	require.NoError(t, cqrs.RegisterCommand(d, "user.create", capture))

	res := cqrs.Send[createUser, createdUser](context.Background(), d, createUser{Name: "alice"})
	require.True(t, res.IsSuccess())

	assert.Equal(t, "user.create", seen[meta.Operation])
	assert.Equal(t, "user-service", seen[meta.ServiceName])
	assert.NotEmpty(t, seen[meta.TraceID])
}

func TestRegisterCommand_Duplicate(t *testing.T) {
	d := newDispatcher(t, nil)

	require.NoError(t, cqrs.RegisterCommand(d, "user.create", &createUserHandler{}))
	err := cqrs.RegisterCommand(d, "user.create.v2", &createUserHandler{})

	require.Error(t, err)
	assert.Equal(t, cqrs.CodeDuplicateRegistration, errx.AsErrorX(err).Code())
}

func TestRegisterCommand_FrozenAfterSend(t *testing.T) {
	d := newDispatcher(t, nil)
	require.NoError(t, cqrs.RegisterCommand(d, "user.create", &createUserHandler{}))

	_ = cqrs.Send[createUser, createdUser](context.Background(), d, createUser{Name: "alice"})

	err := cqrs.RegisterQuery(d, "user.get",
		query.Func[getUser, createdUser](func(_ context.Context, _ getUser) result.Result[createdUser] {
			return result.Ok(createdUser{})
		}))

	require.Error(t, err)
	assert.Equal(t, cqrs.CodeRegistryFrozen, errx.AsErrorX(err).Code())
}

type userCreated struct {
	ID string
}

func TestPublish_AllSubscribersRun(t *testing.T) {
	d := newDispatcher(t, nil)

	var order []string
	sub := func(name string, fail bool) event.SubscriberFunc[userCreated] {
		return func(_ context.Context, _ userCreated) error {
			order = append(order, name)
			if fail {
				return errors.New(name + " failed")
			}
			return nil
		}
	}

	require.NoError(t, cqrs.Subscribe[userCreated](d, "send-welcome-email", sub("send-welcome-email", false)))
	require.NoError(t, cqrs.Subscribe[userCreated](d, "index-user", sub("index-user", true)))
	require.NoError(t, cqrs.Subscribe[userCreated](d, "audit-log", sub("audit-log", false)))

	res := cqrs.Publish(context.Background(), d, userCreated{ID: "u-1"})

	// The failing subscriber does not stop the others.
	assert.Equal(t, []string{"send-welcome-email", "index-user", "audit-log"}, order)

	require.True(t, res.IsFailure())
	e := res.Err()
	assert.Equal(t, cqrs.CodeSubscriberFailed, e.Code)
	assert.Equal(t, []string{"index-user"}, e.Args["failed_subscribers"])
	assert.Contains(t, e.Args["first_error"], "index-user failed")
}

func TestPublish_NoSubscribers(t *testing.T) {
	d := newDispatcher(t, nil)

	res := cqrs.Publish(context.Background(), d, userCreated{ID: "u-1"})

	assert.True(t, res.IsSuccess())
}

func TestPublish_PanickingSubscriber(t *testing.T) {
	d := newDispatcher(t, nil)

	ran := false
	require.NoError(t, cqrs.Subscribe[userCreated](d, "panics",
		event.SubscriberFunc[userCreated](func(_ context.Context, _ userCreated) error {
			panic("subscriber bug")
		})))
	require.NoError(t, cqrs.Subscribe[userCreated](d, "still-runs",
		event.SubscriberFunc[userCreated](func(_ context.Context, _ userCreated) error {
			ran = true
			return nil
		})))

	res := cqrs.Publish(context.Background(), d, userCreated{ID: "u-1"})

	assert.True(t, ran)
	require.True(t, res.IsFailure())
	assert.Equal(t, []string{"panics"}, res.Err().Args["failed_subscribers"])
}

func TestPublish_CancelledContext(t *testing.T) {
	d := newDispatcher(t, nil)

	require.NoError(t, cqrs.Subscribe[userCreated](d, "never-runs",
		event.SubscriberFunc[userCreated](func(_ context.Context, _ userCreated) error {
			t.Fatal("subscriber must not run after cancellation")
			return nil
		})))

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	res := cqrs.Publish(ctx, d, userCreated{ID: "u-1"})

	require.True(t, res.IsFailure())
	assert.Equal(t, result.CategoryCancelled, res.Err().Category)
}

func TestSubscribe_FrozenAfterPublish(t *testing.T) {
	d := newDispatcher(t, nil)

	_ = cqrs.Publish(context.Background(), d, userCreated{ID: "u-1"})

	err := cqrs.Subscribe[userCreated](d, "late",
		event.SubscriberFunc[userCreated](func(_ context.Context, _ userCreated) error { return nil }))

	require.Error(t, err)
	assert.Equal(t, cqrs.CodeRegistryFrozen, errx.AsErrorX(err).Code())
}

func TestOperations(t *testing.T) {
	d := newDispatcher(t, nil)

	require.NoError(t, cqrs.RegisterCommand(d, "user.create", &createUserHandler{}))
	require.NoError(t, cqrs.RegisterQuery(d, "user.get",
		query.Func[getUser, createdUser](func(_ context.Context, _ getUser) result.Result[createdUser] {
			return result.Ok(createdUser{})
		})))

	ops := d.Operations()

	assert.ElementsMatch(t, []string{"command:user.create", "query:user.get"}, ops)
}
