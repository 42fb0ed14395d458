package devtool

import (
	"context"
	"embed"
	"net/http"
	"time"

	"github.com/danielgtaylor/huma/v2"
	"github.com/danielgtaylor/huma/v2/adapters/humachi"
	"github.com/danielgtaylor/huma/v2/sse"
	"github.com/go-chi/chi/v5"
	"github.com/tj-513/bricksy-experimental/internal/build"
	"github.com/tj-513/bricksy-experimental/pkg/chiext"
	"github.com/tj-513/bricksy-experimental/pkg/sutureext"
)

//go:embed web
var webFS embed.FS

type BricksOutput struct {
	Body struct {
		Bricks []BrickInfo `json:"bricks"`
	}
}

type TransitionsOutput struct {
	Body struct {
		Transitions []Transition `json:"transitions"`
	}
}

type BuildOutput struct {
	Body build.Build
}

// RegisterAPI mounts the inspection operations on api.
func RegisterAPI(api huma.API, rec *Recorder) {
	huma.Register(api, huma.Operation{
		OperationID: "list-bricks",
		Method:      http.MethodGet,
		Path:        "/api/bricks",
		Summary:     "List registered bricks",
	}, func(ctx context.Context, input *struct{}) (*BricksOutput, error) {
		res := &BricksOutput{}
		res.Body.Bricks = rec.Bricks()
		return res, nil
	})

	huma.Register(api, huma.Operation{
		OperationID: "list-transitions",
		Method:      http.MethodGet,
		Path:        "/api/transitions",
		Summary:     "List recent transitions across all bricks",
	}, func(ctx context.Context, input *struct{}) (*TransitionsOutput, error) {
		res := &TransitionsOutput{}
		res.Body.Transitions = rec.Transitions()
		return res, nil
	})

	huma.Register(api, huma.Operation{
		OperationID: "list-brick-transitions",
		Method:      http.MethodGet,
		Path:        "/api/bricks/{id}/transitions",
		Summary:     "List recent transitions of one brick",
	}, func(ctx context.Context, input *struct {
		ID string `path:"id"`
	}) (*TransitionsOutput, error) {
		transitions, ok := rec.BrickTransitions(input.ID)
		if !ok {
			return nil, huma.Error404NotFound("unknown brick id")
		}
		res := &TransitionsOutput{}
		res.Body.Transitions = transitions
		return res, nil
	})

	huma.Register(api, huma.Operation{
		OperationID: "get-build",
		Method:      http.MethodGet,
		Path:        "/api/build",
		Summary:     "Build information",
	}, func(ctx context.Context, input *struct{}) (*BuildOutput, error) {
		return &BuildOutput{Body: build.Current}, nil
	})

	sse.Register(api, huma.Operation{
		OperationID: "stream-transitions",
		Method:      http.MethodGet,
		Path:        "/api/events",
		Summary:     "Live transition feed",
	}, map[string]any{
		"transition": Transition{},
	}, func(ctx context.Context, input *struct{}, send sse.Sender) {
		feed, stop := rec.Subscribe(ctx)
		defer stop()

		for {
			select {
			case <-ctx.Done():
				return
			case t := <-feed:
				if err := send.Data(t); err != nil {
					return
				}
			}
		}
	})
}

// NewRouter returns the full devtool handler: inspection API plus the
// embedded single-page inspector.
func NewRouter(rec *Recorder) http.Handler {
	router := chi.NewRouter()
	router.Use(chiext.Logger())
	router.Use(chiext.StaticEmbedFS(chiext.StaticFSConfig{
		FileSystem: webFS,
		Root:       "web",
	}))

	api := humachi.New(router, huma.DefaultConfig("bricksy devtool", build.Current.Version))
	RegisterAPI(api, rec)

	return router
}

// NewServer returns the devtool HTTP server as a supervisable service.
func NewServer(rec *Recorder, addr string) sutureext.ServiceFunc {
	return sutureext.NewServiceFunc("devtool.http("+addr+")", func(ctx context.Context) error {
		srv := &http.Server{
			Addr:    addr,
			Handler: NewRouter(rec),
		}

		errC := make(chan error, 1)
		go func() { errC <- srv.ListenAndServe() }()

		select {
		case err := <-errC:
			return err
		case <-ctx.Done():
		}

		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		if err := srv.Shutdown(shutdownCtx); err != nil {
			return err
		}
		return ctx.Err()
	})
}
