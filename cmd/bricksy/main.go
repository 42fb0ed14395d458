package main

import (
	"context"
	"errors"
	"log"
	"log/slog"
	"os"
	"path/filepath"
	"time"

	"github.com/danielgtaylor/huma/v2/humacli"
	"github.com/joho/godotenv"
	"github.com/phsym/console-slog"
	"github.com/tj-513/bricksy-experimental/brick"
	"github.com/tj-513/bricksy-experimental/devtool"
	"github.com/tj-513/bricksy-experimental/internal/build"
	"github.com/tj-513/bricksy-experimental/internal/config"
	"github.com/tj-513/bricksy-experimental/internal/core"
	"github.com/tj-513/bricksy-experimental/pkg/sutureext"
)

type Options struct {
	Debug  bool   `doc:"enable debug"`
	Host   string `doc:"host to listen on"`
	Port   int    `doc:"port to listen on" default:"8080"`
	Config string `doc:"config file" default:".bricksy.yaml"`
}

// Counter is the demo state: a brick the devtool inspector can watch.
type Counter struct {
	Count int `json:"count"`
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

			store, err := config.NewStore(config.NewYAML(configFilePath))
			if err != nil {
				return err
			}
			cfg, err := store.GetConfig()
			if err != nil {
				return err
			}

			interval, err := time.ParseDuration(cfg.Demo.Interval)
			if err != nil {
				return err
			}

			rec := devtool.NewRecorder(cfg.Devtool.History)

			var dt brick.Devtool = devtool.Discard
			if !cfg.Devtool.Disabled {
				dt = devtool.Multi(rec.Brick("counter"), devtool.NewConsole("counter"))
			}

			counter := brick.NewWithDevtool(Counter{}, dt)
			if err := counter.RegisterAction("INC", brick.Reducer(func(s Counter, step int) Counter {
				return Counter{Count: s.Count + step}
			})); err != nil {
				return err
			}
			if err := counter.RegisterAction("RESET", func(Counter, any) Counter {
				return Counter{}
			}); err != nil {
				return err
			}
			if err := counter.RegisterSideEffect("INC", brick.Effect(func(step int) {
				slog.Debug("Counter incremented", slog.Int("step", step))
			})); err != nil {
				return err
			}

			super := sutureext.NewSimple("bricksy")
			sutureext.Add(super, devtool.NewServer(rec, core.Address(options.Host, options.Port)))
			sutureext.Add(super, sutureext.NewServiceFunc("demo.counter", func(ctx context.Context) error {
				ticker := time.NewTicker(interval)
				defer ticker.Stop()

				for {
					select {
					case <-ctx.Done():
						return ctx.Err()
					case <-ticker.C:
						counter.Dispatch("INC", cfg.Demo.Step)
					}
				}
			}))

			slog.Info("Starting devtool server", slog.String("address", core.Address(options.Host, options.Port)))

			return super.Serve(ctx)
		})
	})

	cli.Root().Version = build.Current.Version

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
