package devtool_test

import (
	"encoding/json"
	"net/http"
	"testing"

	"github.com/danielgtaylor/huma/v2/humatest"
	"github.com/stretchr/testify/require"
	"github.com/tj-513/bricksy-experimental/devtool"
)

func TestAPI_listBricks(t *testing.T) {
	t.Parallel()

	rec := devtool.NewRecorder(16)
	rec.Brick("counter").Send("@@INIT", map[string]any{"count": 0})

	_, api := humatest.New(t)
	devtool.RegisterAPI(api, rec)

	resp := api.Get("/api/bricks")
	require.Equal(t, http.StatusOK, resp.Code)

	var body struct {
		Bricks []devtool.BrickInfo `json:"bricks"`
	}
	require.NoError(t, json.Unmarshal(resp.Body.Bytes(), &body))
	require.Len(t, body.Bricks, 1)
	require.Equal(t, "counter", body.Bricks[0].Name)
	require.Equal(t, 1, body.Bricks[0].Transitions)
}

func TestAPI_listTransitions(t *testing.T) {
	t.Parallel()

	rec := devtool.NewRecorder(16)
	sender := rec.Brick("counter")
	sender.Send("@@INIT", 0)
	sender.Send("INC", 1)

	_, api := humatest.New(t)
	devtool.RegisterAPI(api, rec)

	resp := api.Get("/api/transitions")
	require.Equal(t, http.StatusOK, resp.Code)

	var body struct {
		Transitions []devtool.Transition `json:"transitions"`
	}
	require.NoError(t, json.Unmarshal(resp.Body.Bytes(), &body))
	require.Len(t, body.Transitions, 2)
	require.Equal(t, "INC", body.Transitions[1].Label)
}

func TestAPI_listBrickTransitions(t *testing.T) {
	t.Parallel()

	rec := devtool.NewRecorder(16)
	rec.Brick("counter").Send("@@INIT", 0)
	id := rec.Bricks()[0].ID

	_, api := humatest.New(t)
	devtool.RegisterAPI(api, rec)

	resp := api.Get("/api/bricks/" + id + "/transitions")
	require.Equal(t, http.StatusOK, resp.Code)

	resp = api.Get("/api/bricks/nope/transitions")
	require.Equal(t, http.StatusNotFound, resp.Code)
}

func TestAPI_build(t *testing.T) {
	t.Parallel()

	rec := devtool.NewRecorder(16)

	_, api := humatest.New(t)
	devtool.RegisterAPI(api, rec)

	resp := api.Get("/api/build")
	require.Equal(t, http.StatusOK, resp.Code)
}

func TestNewRouter_servesInspectorPage(t *testing.T) {
	t.Parallel()

	router := devtool.NewRouter(devtool.NewRecorder(16))

	req, rec := newRequest(t, "/")
	router.ServeHTTP(rec, req)

	require.Equal(t, http.StatusOK, rec.Code)
	require.Contains(t, rec.Body.String(), "bricksy devtool")
}
