package devtool_test

import (
	"context"
	"testing"

	"github.com/stretchr/testify/require"
	"github.com/tj-513/bricksy-experimental/brick"
	"github.com/tj-513/bricksy-experimental/devtool"
)

func TestRecorder_recordsTransitionsInOrder(t *testing.T) {
	t.Parallel()

	rec := devtool.NewRecorder(16)
	sender := rec.Brick("counter")

	sender.Send("@@INIT", 0)
	sender.Send("INC", 1)

	transitions := rec.Transitions()
	require.Len(t, transitions, 2)
	require.Equal(t, uint64(1), transitions[0].Seq)
	require.Equal(t, "@@INIT", transitions[0].Label)
	require.Equal(t, "INC", transitions[1].Label)
	require.Equal(t, 1, transitions[1].Payload)
	require.Equal(t, "counter", transitions[1].Brick)
}

func TestRecorder_boundsHistory(t *testing.T) {
	t.Parallel()

	rec := devtool.NewRecorder(3)
	sender := rec.Brick("counter")

	for i := 0; i < 10; i++ {
		sender.Send("INC", i)
	}

	transitions := rec.Transitions()
	require.Len(t, transitions, 3)
	require.Equal(t, 7, transitions[0].Payload)
	require.Equal(t, 9, transitions[2].Payload)

	// Eviction does not reset per-brick counts.
	require.Equal(t, 10, rec.Bricks()[0].Transitions)
}

func TestRecorder_tracksLastStatePerBrick(t *testing.T) {
	t.Parallel()

	rec := devtool.NewRecorder(16)
	a := rec.Brick("a")
	b := rec.Brick("b")

	a.Send("@@INIT", 1)
	b.Send("@@INIT", "x")
	a.Send("INC", 2)

	// A side-effect report is not a state.
	a.Send("PING", brick.SideEffectReport{Kind: "sideEffect", Payload: "hi"})

	bricks := rec.Bricks()
	require.Len(t, bricks, 2)
	require.Equal(t, "a", bricks[0].Name)
	require.Equal(t, 2, bricks[0].State)
	require.Equal(t, 3, bricks[0].Transitions)
	require.Equal(t, "x", bricks[1].State)
	require.NotEqual(t, bricks[0].ID, bricks[1].ID)
}

func TestRecorder_BrickTransitions(t *testing.T) {
	t.Parallel()

	rec := devtool.NewRecorder(16)
	a := rec.Brick("a")
	rec.Brick("b").Send("@@INIT", 0)
	a.Send("@@INIT", 1)

	id := rec.Bricks()[0].ID

	transitions, ok := rec.BrickTransitions(id)
	require.True(t, ok)
	require.Len(t, transitions, 1)
	require.Equal(t, 1, transitions[0].Payload)

	_, ok = rec.BrickTransitions("nope")
	require.False(t, ok)
}

func TestRecorder_Subscribe_receivesLiveFeed(t *testing.T) {
	t.Parallel()

	rec := devtool.NewRecorder(16)
	sender := rec.Brick("counter")

	feed, stop := rec.Subscribe(context.Background())
	defer stop()

	sender.Send("INC", 5)

	got := <-feed
	require.Equal(t, "INC", got.Label)
	require.Equal(t, 5, got.Payload)
}

func TestRecorder_asBrickDevtool(t *testing.T) {
	t.Parallel()

	rec := devtool.NewRecorder(16)
	b := brick.NewWithDevtool(0, devtool.Multi(rec.Brick("counter"), devtool.Discard))

	require.NoError(t, b.RegisterAction("INC", brick.Reducer(func(s, step int) int {
		return s + step
	})))
	b.Dispatch("INC", 5)

	bricks := rec.Bricks()
	require.Equal(t, 5, bricks[0].State)

	labels := []string{}
	for _, tr := range rec.Transitions() {
		labels = append(labels, tr.Label)
	}
	require.Equal(t, []string{brick.LabelInit, "INC"}, labels)
}
