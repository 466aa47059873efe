package app

import (
	"context"
	"testing"
	"time"

	"github.com/kino-6/q-deck-launcher-sub002/internal/config"
	"github.com/kino-6/q-deck-launcher-sub002/internal/dragdrop"
	"github.com/kino-6/q-deck-launcher-sub002/internal/events"
	"github.com/kino-6/q-deck-launcher-sub002/internal/icon"
	"github.com/kino-6/q-deck-launcher-sub002/internal/overlay"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type slowIcons struct{ delay time.Duration }

func (s slowIcons) Acquire(ctx context.Context, _ string, _ icon.Hint) (string, bool) {
	select {
	case <-time.After(s.delay):
		return "slow.png", true
	case <-ctx.Done():
		return "", false
	}
}

// startEngine runs an engine on a real loop and returns the DropCompleted feed.
func startEngine(t *testing.T, icons dragdrop.IconSource) (*Engine, *events.Loop, *memConfigs, <-chan DropCompleted) {
	t.Helper()
	loop := events.NewLoop(4)
	ctx, cancel := context.WithCancel(context.Background())
	go loop.Run(ctx)
	t.Cleanup(func() {
		cancel()
		loop.Stop()
	})

	configs := &memConfigs{cfg: testConfig()}
	eng := New(Settings{
		Config:    configs.cfg.Clone(),
		Host:      &fakeHost{},
		Scheduler: loop,
		Post:      loop.Post,
		Configs:   configs,
		State:     &memState{},
		Icons:     icons,
		Notifier:  &fakeNotifier{},
		NewExecutor: func(config.UIConfig) Executor {
			return &fakeExec{}
		},
	})
	drops := make(chan DropCompleted, 4)
	require.NoError(t, events.Subscribe(eng.Bus(), func(m DropCompleted) { drops <- m }))

	var startErr error
	require.NoError(t, loop.Call(context.Background(), func() { startErr = eng.Start() }))
	require.NoError(t, startErr)
	return eng, loop, configs, drops
}

func TestDropKeepsLoopResponsiveWhileIconLoads(t *testing.T) {
	eng, loop, configs, drops := startEngine(t, slowIcons{delay: 400 * time.Millisecond})
	geom := dragdrop.UniformGrid(dragdrop.Point{}, 4, 6, 10, 3, 1)

	eng.DragEnter()
	eng.Drop([]string{"/opt/tool.sh"}, dragdrop.Point{X: 23, Y: 5}, geom)

	ctx, cancel := context.WithTimeout(context.Background(), time.Second)
	defer cancel()
	start := time.Now()
	var state overlay.State
	require.NoError(t, loop.Call(ctx, func() {
		eng.Overlay().Toggle()
		state = eng.Overlay().State()
	}))
	assert.Less(t, time.Since(start), 200*time.Millisecond, "the loop waited on the icon")
	assert.NotEqual(t, overlay.Hidden, state)

	var dragging bool
	require.NoError(t, loop.Call(ctx, func() { dragging = eng.Overlay().DragGuard().Active() }))
	assert.True(t, dragging, "the drag stays active until the button is committed")

	select {
	case done := <-drops:
		require.NoError(t, done.Err)
		assert.Equal(t, "slow.png", done.Result.Button.Icon)
		assert.Equal(t, config.Position{Row: 2, Col: 3}, done.Result.Button.Position)
	case <-time.After(2 * time.Second):
		t.Fatal("drop never completed")
	}

	var saves int
	require.NoError(t, loop.Call(context.Background(), func() {
		saves = configs.saves
		dragging = eng.Overlay().DragGuard().Active()
	}))
	assert.Equal(t, 1, saves)
	assert.False(t, dragging)
}

func TestCloseAbandonsLoadingDrop(t *testing.T) {
	eng, loop, configs, drops := startEngine(t, slowIcons{delay: time.Minute})
	geom := dragdrop.UniformGrid(dragdrop.Point{}, 4, 6, 10, 3, 1)

	eng.DragEnter()
	eng.Drop([]string{"/opt/tool.sh"}, dragdrop.Point{X: 23, Y: 5}, geom)
	require.NoError(t, loop.Call(context.Background(), eng.Close))

	select {
	case done := <-drops:
		assert.ErrorIs(t, done.Err, context.Canceled)
	case <-time.After(2 * time.Second):
		t.Fatal("the abandoned drop was never reported")
	}

	var saves int
	var dragging bool
	require.NoError(t, loop.Call(context.Background(), func() {
		saves = configs.saves
		dragging = eng.Overlay().DragGuard().Active()
	}))
	assert.Zero(t, saves)
	assert.False(t, dragging)
}
