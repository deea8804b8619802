// Package showcase is the desktop host for the starfield effects: three
// full-window pages that snap-scroll, each with its own animated
// background, driven by an ebiten game loop.
package showcase

import (
	"errors"
	"fmt"
	"log/slog"
	"strings"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/inpututil"
	"github.com/phanxgames/starfield"
	"github.com/phanxgames/starfield/signup"
)

type banner struct {
	title string
	body  string
	color starfield.Color
}

var banners = map[starfield.Effect]banner{
	starfield.EffectWarp: {
		title: "Explore the Cosmos",
		body: "Lorem ipsum dolor sit amet, consectetur adipiscing elit. Sed do eiusmod tempor incididunt ut labore et dolore " +
			"magna aliqua. Ut enim ad minim veniam, quis nostrud exercitation ullamco laboris nisi ut aliquip ex ea commodo " +
			"consequat. Duis aute irure dolor in reprehenderit in voluptate velit esse cillum dolore.",
		color: starfield.Hex(0x00ffc8),
	},
	starfield.EffectTwinkle: {
		title: "Infinite Possibilities",
		body: "Excepteur sint occaecat cupidatat non proident, sunt in culpa qui officia deserunt mollit anim id est laborum. " +
			"Sed ut perspiciatis unde omnis iste natus error sit voluptatem accusantium doloremque laudantium, totam rem " +
			"aperiam, eaque ipsa quae ab illo inventore veritatis et quasi architecto beatae vitae dicta.",
		color: starfield.Hex(0x00ff88),
	},
}

var (
	titleFont     = starfield.Font{Size: 64, Bold: true}
	bodyFont      = starfield.Font{Size: 20}
	indicatorFont = starfield.Font{Size: 28}
)

// page is one full-window section with its own effect session.
type page struct {
	effect    starfield.Effect
	canvas    *starfield.ImageCanvas
	ctrl      *starfield.Controller
	banner    *banner
	indicator bool
	form      bool
}

// App is the showcase ebiten.Game.
type App struct {
	cfg   Config
	log   *slog.Logger
	sched *starfield.FrameScheduler
	pages []*page
	pager *Pager
	form  *signup.Form

	fps    starfield.FPSCounter
	shots  *screenshotter
	script *ScriptRunner
	chime  *Chime

	elapsed float64
	chars   []rune
	quit    bool
	closed  bool
}

// AppOption configures an App.
type AppOption func(*App)

// WithScript plays r during the run.
func WithScript(r *ScriptRunner) AppOption {
	return func(a *App) { a.script = r }
}

// WithChime plays c on signup.
func WithChime(c *Chime) AppOption {
	return func(a *App) { a.chime = c }
}

// New builds the pages and starts every effect session. With cfg.Effect
// set, the app shows that effect alone on a single page.
func New(cfg Config, log *slog.Logger, opts ...AppOption) (*App, error) {
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("showcase: %w", err)
	}
	if log == nil {
		log = slog.Default()
	}
	a := &App{
		cfg:   cfg,
		log:   log,
		sched: starfield.NewFrameScheduler(),
		form:  signup.New(),
		shots: newScreenshotter(cfg.ScreenshotDir, log),
	}
	for _, o := range opts {
		o(a)
	}
	a.form.OnSubmit = a.onSignup

	if err := a.buildPages(); err != nil {
		a.Close()
		return nil, err
	}
	start := cfg.StartPage
	if len(a.pages) == 1 {
		start = 0
	}
	a.pager = NewPager(len(a.pages), float64(cfg.Height), start)
	return a, nil
}

func (a *App) buildPages() error {
	layout := starfield.Effects
	if a.cfg.Effect != "" {
		e, err := starfield.ParseEffect(a.cfg.Effect)
		if err != nil {
			return fmt.Errorf("showcase: %w", err)
		}
		layout = []starfield.Effect{e}
	}
	single := len(layout) == 1

	for i, e := range layout {
		canvas, err := starfield.NewImageCanvas(a.cfg.Width, a.cfg.Height)
		if err != nil {
			return fmt.Errorf("showcase: page %d: %w", i, err)
		}
		pg := &page{effect: e, canvas: canvas}
		a.pages = append(a.pages, pg)

		ctrl, err := starfield.NewController(e, canvas, a.sched,
			starfield.WithLogger(a.log),
			starfield.WithCount(a.cfg.Counts.For(e)),
			starfield.WithDebug(a.cfg.Debug))
		if err != nil {
			return fmt.Errorf("showcase: page %d: %w", i, err)
		}
		pg.ctrl = ctrl
		if err := ctrl.Start(); err != nil {
			return fmt.Errorf("showcase: page %d: %w", i, err)
		}

		if single {
			continue
		}
		if b, ok := banners[e]; ok {
			pg.banner = &b
			pg.indicator = i < len(layout)-1
		} else {
			pg.form = true
		}
	}
	a.log.Info("showcase ready", "pages", len(a.pages), "width", a.cfg.Width, "height", a.cfg.Height)
	return nil
}

// Pager returns the page scroller.
func (a *App) Pager() *Pager { return a.pager }

// Form returns the signup form.
func (a *App) Form() *signup.Form { return a.form }

// Controllers returns the effect sessions, one per page.
func (a *App) Controllers() []*starfield.Controller {
	out := make([]*starfield.Controller, len(a.pages))
	for i, pg := range a.pages {
		out[i] = pg.ctrl
	}
	return out
}

func (a *App) formPage() int {
	for i, pg := range a.pages {
		if pg.form {
			return i
		}
	}
	return -1
}

// formActive reports whether keyboard input goes to the form.
func (a *App) formActive() bool {
	fp := a.formPage()
	return fp >= 0 && a.pager.Page() == fp && !a.pager.Scrolling()
}

// Update implements ebiten.Game.
func (a *App) Update() error {
	if a.script != nil {
		a.script.Step(a)
	}
	a.pollInput()
	a.step(1 / float64(a.cfg.TPS))
	a.fps.Update(1/float64(a.cfg.TPS), ebiten.ActualFPS(), ebiten.ActualTPS())
	if a.quit {
		return ebiten.Termination
	}
	return nil
}

// step advances page scrolling, the form fade and every effect session by
// one tick.
func (a *App) step(dt float64) {
	a.elapsed += dt
	a.pager.Update(float32(dt))
	a.form.Update(float32(dt))
	a.sched.RunFrame()
}

func (a *App) pollInput() {
	if inpututil.IsKeyJustPressed(ebiten.KeyEscape) {
		a.Quit()
		return
	}
	if inpututil.IsKeyJustPressed(ebiten.KeyF12) {
		a.Screenshot("manual")
	}
	for _, k := range []struct {
		key  ebiten.Key
		name string
	}{
		{ebiten.KeyPageDown, "pagedown"},
		{ebiten.KeyArrowDown, "down"},
		{ebiten.KeyPageUp, "pageup"},
		{ebiten.KeyArrowUp, "up"},
		{ebiten.KeyHome, "home"},
		{ebiten.KeyEnd, "end"},
		{ebiten.KeyEnter, "enter"},
		{ebiten.KeyNumpadEnter, "enter"},
	} {
		if inpututil.IsKeyJustPressed(k.key) {
			_ = a.PressKey(k.name)
		}
	}
	if inpututil.IsKeyJustPressed(ebiten.KeyTab) {
		if ebiten.IsKeyPressed(ebiten.KeyShift) {
			_ = a.PressKey("shift+tab")
		} else {
			_ = a.PressKey("tab")
		}
	}
	if repeating(ebiten.KeyBackspace) {
		_ = a.PressKey("backspace")
	}

	if _, wy := ebiten.Wheel(); wy != 0 && !a.pager.Scrolling() {
		if wy < 0 {
			a.pager.Next()
		} else {
			a.pager.Prev()
		}
	}

	if inpututil.IsMouseButtonJustPressed(ebiten.MouseButtonLeft) {
		x, y := ebiten.CursorPosition()
		a.Click(float64(x), float64(y))
	}

	if a.formActive() {
		a.chars = ebiten.AppendInputChars(a.chars[:0])
		a.form.Insert(a.chars...)
	}
}

// repeating reports a key press with keyboard auto-repeat.
func repeating(k ebiten.Key) bool {
	d := inpututil.KeyPressDuration(k)
	return d == 1 || (d >= 30 && d%4 == 0)
}

// Busy implements scriptTarget.
func (a *App) Busy() bool { return a.pager.Scrolling() }

// Screenshot queues a capture of the next drawn frame.
func (a *App) Screenshot(label string) { a.shots.Queue(label) }

// GoToPage scrolls to page.
func (a *App) GoToPage(page int) { a.pager.GoTo(page) }

// TypeText types s into the form when the form page is showing.
func (a *App) TypeText(s string) {
	if a.formActive() {
		a.form.Insert([]rune(s)...)
	}
}

// ErrUnknownKey is returned by PressKey for names it does not handle.
var ErrUnknownKey = errors.New("showcase: unknown key")

// PressKey performs the action bound to a named key.
func (a *App) PressKey(name string) error {
	switch strings.ToLower(name) {
	case "pagedown", "down":
		a.pager.Next()
	case "pageup", "up":
		a.pager.Prev()
	case "home":
		a.pager.GoTo(0)
	case "end":
		a.pager.GoTo(a.pager.Count() - 1)
	case "escape":
		a.Quit()
	case "tab":
		if a.formActive() {
			a.form.FocusNext()
		}
	case "shift+tab":
		if a.formActive() {
			a.form.FocusPrev()
		}
	case "backspace":
		if a.formActive() {
			a.form.Backspace()
		}
	case "enter":
		if a.formActive() {
			if err := a.form.Submit(); err != nil {
				a.log.Debug("signup rejected", "err", err)
			}
		}
	default:
		return fmt.Errorf("%w: %q", ErrUnknownKey, name)
	}
	return nil
}

// Click handles a primary click at screen coordinates.
func (a *App) Click(x, y float64) {
	if !a.formActive() {
		return
	}
	cx, cy := a.formCenter()
	field, onField, onButton := signup.HitTest(x, y, cx, cy)
	switch {
	case onField:
		a.form.SetFocus(field)
	case onButton:
		_ = a.PressKey("enter")
	}
}

// Quit ends the run after the current tick.
func (a *App) Quit() { a.quit = true }

func (a *App) formCenter() (float64, float64) {
	fp := a.formPage()
	return float64(a.cfg.Width) / 2, a.pager.PageY(fp) + float64(a.cfg.Height)/2
}

func (a *App) onSignup(name, email string) {
	a.log.Info("signup submitted", "name", name, "email", email)
	if a.chime != nil {
		a.chime.Play()
	}
}

// Draw implements ebiten.Game.
func (a *App) Draw(screen *ebiten.Image) {
	for i, pg := range a.pages {
		if !a.pager.Visible(i) {
			continue
		}
		op := &ebiten.DrawImageOptions{}
		op.GeoM.Translate(0, a.pager.PageY(i))
		screen.DrawImage(pg.canvas.Image(), op)
	}

	s, err := starfield.NewEbitenSurface(screen)
	if err == nil {
		a.drawOverlay(s)
	}
	a.shots.flush(screen)
}

// drawOverlay paints page content over the effect backgrounds.
func (a *App) drawOverlay(s starfield.Surface) {
	w, h := float64(a.cfg.Width), float64(a.cfg.Height)
	for i, pg := range a.pages {
		if !a.pager.Visible(i) {
			continue
		}
		top := a.pager.PageY(i)
		if pg.banner != nil {
			drawBanner(s, pg.banner, w/2, top+h/2, w)
		}
		if pg.indicator {
			y := top + h - 48 + bounceOffset(a.elapsed)
			s.Text("↓", w/2, y, indicatorFont, starfield.TextAlignCenter, starfield.BaselineMiddle,
				starfield.ColorWhite.WithAlpha(0.7))
		}
		if pg.form {
			cursor := int(a.elapsed*2)%2 == 0
			a.form.Draw(s, w/2, top+h/2, cursor && a.formActive())
		}
	}
	if a.cfg.ShowFPS {
		a.fps.Draw(s)
	}
}

// Layout implements ebiten.Game. The logical size never changes; the
// window scales it.
func (a *App) Layout(_, _ int) (int, int) {
	return a.cfg.Width, a.cfg.Height
}

// Close stops every session and releases page images. It is safe to call
// more than once.
func (a *App) Close() {
	if a.closed {
		return
	}
	a.closed = true
	for _, pg := range a.pages {
		if pg.ctrl != nil {
			pg.ctrl.Stop()
		}
		pg.canvas.Dispose()
	}
	a.sched.Close()
	if a.chime != nil {
		a.chime.Close()
	}
	if a.script != nil {
		if err := a.script.Err(); err != nil {
			a.log.Warn("script finished with errors", "err", err)
		}
	}
	a.log.Debug("showcase closed")
}

// Run opens the window and blocks until it is closed.
func Run(cfg Config, log *slog.Logger, opts ...AppOption) error {
	a, err := New(cfg, log, opts...)
	if err != nil {
		return err
	}
	defer a.Close()

	ebiten.SetWindowTitle(cfg.Title)
	ebiten.SetWindowSize(cfg.Width, cfg.Height)
	ebiten.SetTPS(cfg.TPS)
	if err := ebiten.RunGame(a); err != nil && !errors.Is(err, ebiten.Termination) {
		return fmt.Errorf("showcase: %w", err)
	}
	return nil
}
