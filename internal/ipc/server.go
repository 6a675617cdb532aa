// Package ipc exposes the command dispatcher and a read-only view of the
// layout over HTTP.
package ipc

import (
	"context"
	"errors"
	"log/slog"
	"net"
	"net/http"
	"time"

	"github.com/ItsNotGoodName/x-scroller/internal/build"
	"github.com/ItsNotGoodName/x-scroller/internal/bus"
	"github.com/ItsNotGoodName/x-scroller/internal/command"
	"github.com/ItsNotGoodName/x-scroller/internal/tree"
	"github.com/ItsNotGoodName/x-scroller/pkg/chiext"
	"github.com/danielgtaylor/huma/v2"
	"github.com/danielgtaylor/huma/v2/adapters/humachi"
	"github.com/danielgtaylor/huma/v2/sse"
	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/google/uuid"
)

// Runner runs fn on the goroutine that owns the tree.
type Runner interface {
	Do(ctx context.Context, fn func() error) error
}

type RunnerFunc func(ctx context.Context, fn func() error) error

func (f RunnerFunc) Do(ctx context.Context, fn func() error) error {
	return f(ctx, fn)
}

// Backend is what the handlers read from and write to. Nil hubs are never
// streamed.
type Backend struct {
	Runner     Runner
	Dispatcher *command.Dispatcher
	Scroller   *bus.Hub[bus.ScrollerEvent]
	Trail      *bus.Hub[bus.TrailEvent]
	Window     *bus.Hub[bus.WindowEvent]
}

type WorkspaceInfo struct {
	ID      uint64    `json:"id"`
	UUID    uuid.UUID `json:"uuid"`
	Name    string    `json:"name"`
	Output  string    `json:"output"`
	Layout  string    `json:"layout"`
	Visible bool      `json:"visible"`
	Focused bool      `json:"focused"`
	Views   int       `json:"views"`
}

type TrailInfo struct {
	ID    uuid.UUID `json:"id"`
	Views []uint64  `json:"views"`
}

type TrailsInfo struct {
	Length       int         `json:"length"`
	Active       int         `json:"active"`
	ActiveLength int         `json:"active_length"`
	Trails       []TrailInfo `json:"trails"`
}

type CommandInput struct {
	Body struct {
		Command string `json:"command" minLength:"1" doc:"Commands separated by ';' or ','"`
	}
}

type CommandOutput struct {
	Body []command.Result
}

type TreeOutput struct {
	Body tree.Info
}

type WorkspacesOutput struct {
	Body []WorkspaceInfo
}

type TrailsOutput struct {
	Body TrailsInfo
}

type CommandsOutput struct {
	Body []string
}

type VersionOutput struct {
	Body build.Build
}

// NewHandler builds the router that serves the API of b.
func NewHandler(b Backend) http.Handler {
	r := chi.NewRouter()
	r.Use(middleware.RequestID)
	r.Use(chiext.Logger())
	r.Use(middleware.Recoverer)

	api := humachi.New(r, huma.DefaultConfig("x-scroller", build.Current.Version))

	huma.Register(api, huma.Operation{
		OperationID: "run-command",
		Method:      http.MethodPost,
		Path:        "/api/command",
		Summary:     "Run commands",
	}, func(ctx context.Context, input *CommandInput) (*CommandOutput, error) {
		var results []command.Result
		err := b.Runner.Do(ctx, func() error {
			results = b.Dispatcher.Run(input.Body.Command)
			return nil
		})
		if err != nil {
			return nil, unavailable(err)
		}
		if results == nil {
			results = []command.Result{}
		}
		return &CommandOutput{Body: results}, nil
	})

	huma.Register(api, huma.Operation{
		OperationID: "list-commands",
		Method:      http.MethodGet,
		Path:        "/api/commands",
		Summary:     "List command names",
	}, func(ctx context.Context, input *struct{}) (*CommandsOutput, error) {
		return &CommandsOutput{Body: command.Names()}, nil
	})

	huma.Register(api, huma.Operation{
		OperationID: "get-version",
		Method:      http.MethodGet,
		Path:        "/api/version",
		Summary:     "Get the version of the window manager",
	}, func(ctx context.Context, input *struct{}) (*VersionOutput, error) {
		return &VersionOutput{Body: build.Current}, nil
	})

	huma.Register(api, huma.Operation{
		OperationID: "get-tree",
		Method:      http.MethodGet,
		Path:        "/api/tree",
		Summary:     "Get the layout tree",
	}, func(ctx context.Context, input *struct{}) (*TreeOutput, error) {
		var info tree.Info
		err := b.Runner.Do(ctx, func() error {
			info = b.Dispatcher.Layout.Tree.Info()
			return nil
		})
		if err != nil {
			return nil, unavailable(err)
		}
		return &TreeOutput{Body: info}, nil
	})

	huma.Register(api, huma.Operation{
		OperationID: "list-workspaces",
		Method:      http.MethodGet,
		Path:        "/api/workspaces",
		Summary:     "List workspaces",
	}, func(ctx context.Context, input *struct{}) (*WorkspacesOutput, error) {
		var list []WorkspaceInfo
		err := b.Runner.Do(ctx, func() error {
			list = workspaces(b.Dispatcher.Layout.Tree)
			return nil
		})
		if err != nil {
			return nil, unavailable(err)
		}
		return &WorkspacesOutput{Body: list}, nil
	})

	huma.Register(api, huma.Operation{
		OperationID: "get-trails",
		Method:      http.MethodGet,
		Path:        "/api/trails",
		Summary:     "Get the trails",
	}, func(ctx context.Context, input *struct{}) (*TrailsOutput, error) {
		var info TrailsInfo
		err := b.Runner.Do(ctx, func() error {
			t := b.Dispatcher.Trails
			info = TrailsInfo{
				Length:       t.Length(),
				Active:       t.Active(),
				ActiveLength: t.ActiveLength(),
				Trails:       []TrailInfo{},
			}
			for _, trail := range t.Trails() {
				views := make([]uint64, 0, len(trail.Views))
				for _, id := range trail.Views {
					views = append(views, id.Uint64())
				}
				info.Trails = append(info.Trails, TrailInfo{ID: trail.ID, Views: views})
			}
			return nil
		})
		if err != nil {
			return nil, unavailable(err)
		}
		return &TrailsOutput{Body: info}, nil
	})

	sse.Register(api, huma.Operation{
		OperationID: "events",
		Method:      http.MethodGet,
		Path:        "/api/events",
		Summary:     "Stream layout, trail and window events",
	}, map[string]any{
		EventScroller: bus.ScrollerEvent{},
		EventTrail:    bus.TrailEvent{},
		EventWindow:   bus.WindowEvent{},
	}, func(ctx context.Context, input *struct{}, send sse.Sender) {
		var (
			scrollerC <-chan bus.ScrollerEvent
			trailC    <-chan bus.TrailEvent
			windowC   <-chan bus.WindowEvent
		)
		if b.Scroller != nil {
			c, unsub := b.Scroller.Subscribe(ctx)
			defer unsub()
			scrollerC = c
		}
		if b.Trail != nil {
			c, unsub := b.Trail.Subscribe(ctx)
			defer unsub()
			trailC = c
		}
		if b.Window != nil {
			c, unsub := b.Window.Subscribe(ctx)
			defer unsub()
			windowC = c
		}

		for {
			var err error
			select {
			case <-ctx.Done():
				return
			case e := <-scrollerC:
				err = send.Data(e)
			case e := <-trailC:
				err = send.Data(e)
			case e := <-windowC:
				err = send.Data(e)
			}
			if err != nil {
				slog.Debug("Event stream closed", "package", "ipc", "error", err)
				return
			}
		}
	})

	return r
}

func unavailable(err error) error {
	if errors.Is(err, context.Canceled) || errors.Is(err, context.DeadlineExceeded) {
		return huma.Error503ServiceUnavailable("window manager is busy", err)
	}
	return huma.Error500InternalServerError("failed to reach window manager", err)
}

func workspaces(t *tree.Tree) []WorkspaceInfo {
	focused := t.FocusedWorkspace()
	list := []WorkspaceInfo{}
	for _, id := range t.Workspaces() {
		ws := t.Workspace(id)
		if ws == nil {
			continue
		}
		info := WorkspaceInfo{
			ID:      ws.ID.Uint64(),
			UUID:    ws.UUID,
			Name:    ws.Name,
			Layout:  ws.Layout.Type.String(),
			Visible: t.IsVisible(id),
			Focused: id == focused,
		}
		if o := t.Output(ws.Pending.Output); o != nil {
			info.Output = o.Name
		}
		t.EachTiling(id, func(c *tree.Container) {
			if c.IsView() {
				info.Views++
			}
		})
		list = append(list, info)
	}
	return list
}

// Server serves the API until its context is cancelled.
type Server struct {
	addr    string
	handler http.Handler
}

func NewServer(addr string, b Backend) *Server {
	return &Server{
		addr:    addr,
		handler: NewHandler(b),
	}
}

func (s *Server) String() string {
	return "ipc.Server"
}

func (s *Server) Serve(ctx context.Context) error {
	srv := &http.Server{
		Addr:        s.addr,
		Handler:     s.handler,
		BaseContext: func(net.Listener) context.Context { return ctx },
	}

	errC := make(chan error, 1)
	go func() {
		slog.Info("Listening", "package", "ipc", "address", s.addr)
		errC <- srv.ListenAndServe()
	}()

	select {
	case err := <-errC:
		return err
	case <-ctx.Done():
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		if err := srv.Shutdown(shutdownCtx); err != nil {
			return err
		}
		return ctx.Err()
	}
}
