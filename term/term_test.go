package term

import (
	"context"
	"testing"
	"time"

	"github.com/gdamore/tcell/v2"
	"github.com/phanxgames/starfield"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newSimScreen(t *testing.T, cols, rows int) tcell.SimulationScreen {
	t.Helper()
	s := tcell.NewSimulationScreen("UTF-8")
	require.NoError(t, s.Init())
	s.SetSize(cols, rows)
	t.Cleanup(s.Fini)
	return s
}

func newTestSurface(t *testing.T, cols, rows int) (*Surface, tcell.SimulationScreen) {
	t.Helper()
	screen := newSimScreen(t, cols, rows)
	c, err := NewCanvas(screen, 0, 0)
	require.NoError(t, err)
	s, err := c.Surface()
	require.NoError(t, err)
	return s.(*Surface), screen
}

func TestNewCanvasSize(t *testing.T) {
	screen := newSimScreen(t, 40, 12)
	c, err := NewCanvas(screen, 0, 0)
	require.NoError(t, err)
	w, h := c.Size()
	assert.Equal(t, 40*DefaultCellW, w)
	assert.Equal(t, 12*DefaultCellH, h)

	c, err = NewCanvas(screen, 4, 4)
	require.NoError(t, err)
	w, h = c.Size()
	assert.Equal(t, 160, w)
	assert.Equal(t, 48, h)
}

func TestNewCanvasNilScreen(t *testing.T) {
	_, err := NewCanvas(nil, 0, 0)
	assert.ErrorIs(t, err, starfield.ErrNoSurface)
}

func TestCanvasReturnsSameSurface(t *testing.T) {
	c, err := NewCanvas(newSimScreen(t, 10, 10), 0, 0)
	require.NoError(t, err)
	a, _ := c.Surface()
	b, _ := c.Surface()
	assert.Same(t, a, b)
}

func TestClearIsOpaque(t *testing.T) {
	s, _ := newTestSurface(t, 4, 4)
	s.Clear(starfield.Color{R: 0.5, G: 0.5, B: 0.5, A: 0.1})
	assert.Equal(t, starfield.Color{R: 0.5, G: 0.5, B: 0.5, A: 1}, s.Cell(3, 3))
}

func TestCircleBlendsSourceOver(t *testing.T) {
	s, _ := newTestSurface(t, 10, 10)
	s.Clear(starfield.Color{A: 1})

	// Radius 20 around the center of cell (2, 1) covers it.
	s.Circle(20, 24, 20, starfield.Color{R: 1, G: 1, B: 1, A: 0.5})
	got := s.Cell(2, 1)
	assert.InDelta(t, 0.5, got.R, 1e-9)
	assert.InDelta(t, 1.0, got.A, 1e-9)

	// Far cells untouched.
	assert.Equal(t, 0.0, s.Cell(9, 9).R)
}

func TestTinyCircleScalesByCoverage(t *testing.T) {
	s, _ := newTestSurface(t, 10, 10)
	s.Clear(starfield.Color{A: 1})
	s.Circle(1, 1, 1, starfield.ColorWhite)
	got := s.Cell(0, 0)
	assert.Greater(t, got.R, 0.0)
	assert.Less(t, got.R, 0.1)
}

func TestCircleOffscreenIsIgnored(t *testing.T) {
	s, _ := newTestSurface(t, 4, 4)
	s.Clear(starfield.Color{A: 1})
	s.Circle(-100, -100, 5, starfield.ColorWhite)
	s.Circle(10000, 10000, 5, starfield.ColorWhite)
	for row := 0; row < 4; row++ {
		for col := 0; col < 4; col++ {
			assert.Equal(t, 0.0, s.Cell(col, row).R)
		}
	}
}

func TestRectCoversCellCenters(t *testing.T) {
	s, _ := newTestSurface(t, 10, 6)
	s.Clear(starfield.Color{A: 1})
	// x 8..40 covers cells 1..4, y 16..48 covers rows 1..2.
	s.Rect(8, 16, 32, 32, starfield.ColorWhite)
	for row := 0; row < 6; row++ {
		for col := 0; col < 10; col++ {
			want := 0.0
			if col >= 1 && col <= 4 && row >= 1 && row <= 2 {
				want = 1
			}
			assert.InDelta(t, want, s.Cell(col, row).R, 1e-9, "cell %d,%d", col, row)
		}
	}
}

func TestLineWalksCells(t *testing.T) {
	s, _ := newTestSurface(t, 10, 4)
	s.Clear(starfield.Color{A: 1})
	// Horizontal line through row 1 from cell 1 to cell 6.
	s.Line(12, 24, 52, 24, starfield.ColorWhite, 16)
	for col := 1; col <= 6; col++ {
		assert.InDelta(t, 1.0, s.Cell(col, 1).R, 1e-9, "col %d", col)
	}
	assert.Equal(t, 0.0, s.Cell(0, 1).R)
	assert.Equal(t, 0.0, s.Cell(7, 1).R)
	assert.Equal(t, 0.0, s.Cell(3, 0).R)
}

func TestPresentWritesScreen(t *testing.T) {
	s, screen := newTestSurface(t, 6, 3)
	s.Clear(starfield.Hex(0x0a0a0a))
	s.Text("hey", 8, 16, starfield.DefaultFont, starfield.TextAlignLeft, starfield.BaselineTop, starfield.ColorWhite)
	s.Present()

	r, _, style, _ := screen.GetContent(1, 1)
	assert.Equal(t, 'h', r)
	fg, bg, _ := style.Decompose()
	assert.Equal(t, tcell.NewRGBColor(255, 255, 255), fg)
	assert.Equal(t, tcell.NewRGBColor(10, 10, 10), bg)

	r, _, _, _ = screen.GetContent(3, 1)
	assert.Equal(t, 'y', r)
	r, _, _, _ = screen.GetContent(0, 0)
	assert.Equal(t, ' ', r)
}

func TestTextAlignment(t *testing.T) {
	s, screen := newTestSurface(t, 20, 3)
	s.Clear(starfield.Color{A: 1})
	s.Text("abcd", 10*DefaultCellW, 0, starfield.DefaultFont, starfield.TextAlignCenter, starfield.BaselineTop, starfield.ColorWhite)
	s.Text("xy", 20*DefaultCellW, 2*DefaultCellH, starfield.DefaultFont, starfield.TextAlignRight, starfield.BaselineTop, starfield.ColorWhite)
	s.Present()

	r, _, _, _ := screen.GetContent(8, 0)
	assert.Equal(t, 'a', r)
	r, _, _, _ = screen.GetContent(19, 2)
	assert.Equal(t, 'y', r)
}

func TestControllerOnTerminal(t *testing.T) {
	screen := newSimScreen(t, 80, 24)
	canvas, err := NewCanvas(screen, 0, 0)
	require.NoError(t, err)
	sched := starfield.NewFrameScheduler()
	ctrl, err := starfield.NewController(starfield.EffectSpiral, canvas, sched)
	require.NoError(t, err)
	require.NoError(t, ctrl.Start())
	defer ctrl.Stop()

	sched.RunFrame()
	surf, _ := canvas.Surface()
	surf.(*Surface).Present()

	// The core glow brightens the center cell above the background.
	center := surf.(*Surface).Cell(40, 12)
	assert.Greater(t, center.R, starfield.Hex(0x060606).R)
	assert.Equal(t, uint64(1), ctrl.Frames())
}

func TestLoopStopsOnQuitKey(t *testing.T) {
	s, screen := newTestSurface(t, 20, 10)
	sched := starfield.NewFrameScheduler()
	frames := 0
	var tick func()
	tick = func() {
		frames++
		sched.Schedule(tick)
	}
	sched.Schedule(tick)

	done := make(chan error, 1)
	go func() {
		done <- Loop(context.Background(), screen, sched, s, LoopConfig{FPS: 200})
	}()
	time.Sleep(50 * time.Millisecond)
	screen.InjectKey(tcell.KeyRune, 'q', tcell.ModNone)

	select {
	case err := <-done:
		assert.NoError(t, err)
	case <-time.After(2 * time.Second):
		t.Fatal("loop did not stop on q")
	}
}

func TestLoopForwardsKeys(t *testing.T) {
	s, screen := newTestSurface(t, 20, 10)
	keys := make(chan rune, 4)
	done := make(chan error, 1)
	go func() {
		done <- Loop(context.Background(), screen, starfield.NewFrameScheduler(), s, LoopConfig{
			OnKey: func(ev *tcell.EventKey) { keys <- ev.Rune() },
		})
	}()
	time.Sleep(20 * time.Millisecond)
	screen.InjectKey(tcell.KeyRune, '2', tcell.ModNone)

	select {
	case r := <-keys:
		assert.Equal(t, '2', r)
	case <-time.After(2 * time.Second):
		t.Fatal("key not forwarded")
	}
	screen.InjectKey(tcell.KeyEscape, 0, tcell.ModNone)
	select {
	case err := <-done:
		assert.NoError(t, err)
	case <-time.After(2 * time.Second):
		t.Fatal("loop did not stop on escape")
	}
}

func TestLoopStopsOnContext(t *testing.T) {
	s, screen := newTestSurface(t, 20, 10)
	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Millisecond)
	defer cancel()
	err := Loop(ctx, screen, starfield.NewFrameScheduler(), s, LoopConfig{})
	assert.NoError(t, err)
}
