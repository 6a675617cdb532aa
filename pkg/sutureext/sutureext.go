package sutureext

import (
	"context"
	"errors"
	"log/slog"

	"github.com/thejerf/suture/v4"
)

// NewSimple creates a supervisor that logs its events through slog.
func NewSimple(name string) *suture.Supervisor {
	return suture.New(name, suture.Spec{
		EventHook: logEvent,
	})
}

func logEvent(ei suture.Event) {
	level, msg := slog.LevelWarn, "Unknown supervisor event"
	attrs := []any{"package", "suture"}
	switch e := ei.(type) {
	case suture.EventStopTimeout:
		level, msg = slog.LevelInfo, "Service did not stop in time"
		attrs = append(attrs, "supervisor", e.SupervisorName, "service", e.ServiceName)
	case suture.EventServicePanic:
		level, msg = slog.LevelError, "Service panicked"
		attrs = append(attrs, "supervisor", e.SupervisorName, "service", e.ServiceName, "panic", e.PanicMsg)
		slog.Debug(e.Stacktrace, "package", "suture")
	case suture.EventServiceTerminate:
		level, msg = slog.LevelError, "Service failed"
		attrs = append(attrs, "supervisor", e.SupervisorName, "service", e.ServiceName, "restarting", e.Restarting, "error", e.Err)
	case suture.EventBackoff:
		level, msg = slog.LevelDebug, "Supervisor entered backoff"
		attrs = append(attrs, "supervisor", e.SupervisorName)
	case suture.EventResume:
		level, msg = slog.LevelDebug, "Supervisor left backoff"
		attrs = append(attrs, "supervisor", e.SupervisorName)
	default:
		attrs = append(attrs, "event", ei.String())
	}
	slog.Log(context.Background(), level, msg, attrs...)
}

// Service is a suture service with a name for the logs.
type Service interface {
	String() string
	suture.Service
}

func Add(super *suture.Supervisor, service Service) suture.ServiceToken {
	return super.Add(sanitizeService{Service: service})
}

type sanitizeService struct {
	Service
}

func (s sanitizeService) Serve(ctx context.Context) error {
	return SanitizeError(ctx, s.Service.Serve(ctx))
}

// SanitizeError keeps a service error from looking like a context error
// unless ctx really is done, since suture stops a service that returns one.
func SanitizeError(ctx context.Context, err error) error {
	if err == nil {
		return nil
	}

	select {
	case <-ctx.Done():
		return ctx.Err()
	default:
	}

	if !(errors.Is(err, context.Canceled) || errors.Is(err, context.DeadlineExceeded)) {
		return err
	}

	var errs []error
	if errors.Is(err, suture.ErrDoNotRestart) {
		errs = append(errs, suture.ErrDoNotRestart)
	}
	if errors.Is(err, suture.ErrTerminateSupervisorTree) {
		errs = append(errs, suture.ErrTerminateSupervisorTree)
	}
	errs = append(errs, errors.New(err.Error()))

	return errors.Join(errs...)
}

type ServiceFunc struct {
	name string
	fn   func(ctx context.Context) error
}

func NewServiceFunc(name string, fn func(ctx context.Context) error) ServiceFunc {
	return ServiceFunc{
		name: name,
		fn:   fn,
	}
}

func (s ServiceFunc) String() string {
	return s.name
}

func (s ServiceFunc) Serve(ctx context.Context) error {
	return s.fn(ctx)
}
