package main

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log"
	"log/slog"
	"os"
	"os/signal"
	"path/filepath"
	"strings"

	"github.com/ItsNotGoodName/x-scroller/internal/app"
	"github.com/ItsNotGoodName/x-scroller/internal/build"
	"github.com/ItsNotGoodName/x-scroller/internal/bus"
	"github.com/ItsNotGoodName/x-scroller/internal/command"
	"github.com/ItsNotGoodName/x-scroller/internal/core"
	"github.com/ItsNotGoodName/x-scroller/internal/ipc"
	"github.com/danielgtaylor/huma/v2/humacli"
	"github.com/joho/godotenv"
	"github.com/k0kubun/pp"
	"github.com/phsym/console-slog"
	"github.com/spf13/cobra"
)

type Options struct {
	Debug   bool   `doc:"enable debug"`
	Host    string `doc:"host to listen on" default:"127.0.0.1"`
	Port    int    `doc:"port to listen on" default:"8080"`
	Config  string `doc:"config file" default:".x-scroller.yaml"`
	Display string `doc:"X display, defaults to $DISPLAY"`
}

func (o *Options) addr() string {
	return core.Address(o.Host, o.Port)
}

func main() {
	godotenv.Load()

	cli := humacli.New(func(hooks humacli.Hooks, options *Options) {
		if options.Debug {
			InitLogger(slog.LevelDebug)
		} else {
			InitLogger(slog.LevelInfo)
		}

		OnServe(hooks, func(ctx context.Context) error {
			configFilePath, err := filepath.Abs(options.Config)
			if err != nil {
				return err
			}

			return app.Run(ctx, app.Options{
				Debug:      options.Debug,
				Addr:       options.addr(),
				ConfigPath: configFilePath,
				Display:    options.Display,
			})
		})
	})

	cli.Root().Use = "x-scroller"
	cli.Root().Short = "Scrolling tiling window manager for X11"
	cli.Root().Version = build.Current.String()

	cli.Root().AddCommand(&cobra.Command{
		Use:   "msg <command>...",
		Short: "Run commands in the running window manager",
		Args:  cobra.MinimumNArgs(1),
		Run: humacli.WithOptions(func(cmd *cobra.Command, args []string, options *Options) {
			results, err := ipc.NewClient(options.addr()).Command(cmd.Context(), strings.Join(args, " "))
			if err != nil {
				log.Fatal(err)
			}
			failed := false
			for _, res := range results {
				if res.Success() {
					continue
				}
				failed = true
				fmt.Fprintf(os.Stderr, "%s: %s\n", res.Command, res.Error)
			}
			if failed {
				os.Exit(2)
			}
		}),
	})

	cli.Root().AddCommand(&cobra.Command{
		Use:   "tree",
		Short: "Print the layout tree",
		Args:  cobra.NoArgs,
		Run: humacli.WithOptions(func(cmd *cobra.Command, args []string, options *Options) {
			info, err := ipc.NewClient(options.addr()).Tree(cmd.Context())
			if err != nil {
				log.Fatal(err)
			}
			pp.Println(info)
		}),
	})

	cli.Root().AddCommand(&cobra.Command{
		Use:   "remote-version",
		Short: "Print the version of the running window manager",
		Args:  cobra.NoArgs,
		Run: humacli.WithOptions(func(cmd *cobra.Command, args []string, options *Options) {
			b, err := ipc.NewClient(options.addr()).Version(cmd.Context())
			if err != nil {
				log.Fatal(err)
			}
			fmt.Println(b)
		}),
	})

	cli.Root().AddCommand(&cobra.Command{
		Use:   "commands",
		Short: "List the command names",
		Args:  cobra.NoArgs,
		Run: func(cmd *cobra.Command, args []string) {
			for _, name := range command.Names() {
				fmt.Println(name)
			}
		},
	})

	cli.Root().AddCommand(&cobra.Command{
		Use:   "events",
		Short: "Print events as JSON lines until interrupted",
		Args:  cobra.NoArgs,
		Run: humacli.WithOptions(func(cmd *cobra.Command, args []string, options *Options) {
			ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt)
			defer stop()

			enc := json.NewEncoder(os.Stdout)
			err := ipc.NewClient(options.addr()).Events(ctx, func(e bus.Event) error {
				return enc.Encode(e)
			})
			if err != nil && !errors.Is(err, context.Canceled) {
				log.Fatal(err)
			}
		}),
	})

	cli.Run()
}

func InitLogger(level slog.Level) {
	slog.SetDefault(slog.New(console.NewHandler(os.Stderr, &console.HandlerOptions{
		Level: level,
	})))
}

func OnServe(hooks humacli.Hooks, serveFn func(ctx context.Context) error) {
	stopC := make(chan struct{})
	hooks.OnStart(func() {
		ctx, cancel := context.WithCancel(context.Background())
		defer cancel()

		errC := make(chan error, 1)

		go func() { errC <- serveFn(ctx) }()

		select {
		case <-stopC:
			cancel()
		case err := <-errC:
			if err != nil && !errors.Is(err, context.Canceled) {
				log.Fatal(err)
			}
			return
		}

		<-errC
		<-stopC
	})
	hooks.OnStop(func() {
		stopC <- struct{}{}
		stopC <- struct{}{}
	})
}
