package showcase

import (
	"bytes"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"strings"

	"github.com/pelletier/go-toml/v2"
	"github.com/phanxgames/starfield"
)

// PageCount is the number of showcase pages.
const PageCount = 3

// Config holds the showcase settings. Keys missing from a TOML file keep
// their defaults.
type Config struct {
	Title  string `toml:"title"`
	Width  int    `toml:"width"`
	Height int    `toml:"height"`
	TPS    int    `toml:"tps"`

	// StartPage is zero-based.
	StartPage int `toml:"start_page"`
	// Effect, when set, shows a single full-window effect with no pages.
	Effect string `toml:"effect"`

	Debug         bool   `toml:"debug"`
	ShowFPS       bool   `toml:"show_fps"`
	ScreenshotDir string `toml:"screenshot_dir"`
	Sound         bool   `toml:"sound"`

	Counts Counts       `toml:"counts"`
	Term   TermSettings `toml:"terminal"`
}

// Counts overrides particle counts per effect. Zero selects the effect's
// default.
type Counts struct {
	Warp    int `toml:"warp"`
	Twinkle int `toml:"twinkle"`
	Spiral  int `toml:"spiral"`
}

// For returns the configured count for e, or zero.
func (c Counts) For(e starfield.Effect) int {
	switch e {
	case starfield.EffectWarp:
		return c.Warp
	case starfield.EffectTwinkle:
		return c.Twinkle
	case starfield.EffectSpiral:
		return c.Spiral
	}
	return 0
}

// TermSettings configures the terminal front end.
type TermSettings struct {
	CellW int `toml:"cell_w"`
	CellH int `toml:"cell_h"`
	FPS   int `toml:"fps"`
}

// DefaultConfig returns the built-in settings.
func DefaultConfig() Config {
	return Config{
		Title:         "Starfield",
		Width:         1280,
		Height:        720,
		TPS:           60,
		ScreenshotDir: "screenshots",
		Term: TermSettings{
			CellW: 8,
			CellH: 16,
			FPS:   30,
		},
	}
}

// LoadConfig reads path over the defaults. A missing file is not an error.
func LoadConfig(path string) (Config, error) {
	cfg := DefaultConfig()
	if path == "" {
		return cfg, nil
	}
	data, err := os.ReadFile(path)
	if errors.Is(err, fs.ErrNotExist) {
		return cfg, nil
	}
	if err != nil {
		return cfg, fmt.Errorf("load config %s: %w", path, err)
	}
	if err := ParseConfig(data, &cfg); err != nil {
		return cfg, fmt.Errorf("load config %s: %w", path, err)
	}
	return cfg, nil
}

// ParseConfig decodes TOML data into cfg. Keys absent from data leave cfg
// untouched; unknown keys are rejected.
func ParseConfig(data []byte, cfg *Config) error {
	dec := toml.NewDecoder(bytes.NewReader(data))
	dec.DisallowUnknownFields()
	if err := dec.Decode(cfg); err != nil {
		var serr *toml.StrictMissingError
		if errors.As(err, &serr) {
			keys := make([]string, 0, len(serr.Errors))
			for i := range serr.Errors {
				keys = append(keys, strings.Join(serr.Errors[i].Key(), "."))
			}
			return fmt.Errorf("unknown keys: %s", strings.Join(keys, ", "))
		}
		var derr *toml.DecodeError
		if errors.As(err, &derr) {
			row, col := derr.Position()
			return fmt.Errorf("line %d column %d: %w", row, col, err)
		}
		return err
	}
	return cfg.Validate()
}

// Validate reports the first invalid setting.
func (c Config) Validate() error {
	switch {
	case c.Width <= 0 || c.Height <= 0:
		return fmt.Errorf("window size %dx%d: %w", c.Width, c.Height, starfield.ErrInvalidCanvas)
	case c.TPS <= 0:
		return fmt.Errorf("tps %d must be positive", c.TPS)
	case c.StartPage < 0 || c.StartPage >= PageCount:
		return fmt.Errorf("start_page %d out of range [0, %d)", c.StartPage, PageCount)
	case c.Counts.Warp < 0 || c.Counts.Twinkle < 0 || c.Counts.Spiral < 0:
		return errors.New("particle counts must not be negative")
	case c.Term.CellW < 0 || c.Term.CellH < 0 || c.Term.FPS < 0:
		return errors.New("terminal settings must not be negative")
	}
	if c.Effect != "" {
		if _, err := starfield.ParseEffect(c.Effect); err != nil {
			return err
		}
	}
	return nil
}

// Marshal encodes the config as TOML.
func (c Config) Marshal() ([]byte, error) {
	return toml.Marshal(c)
}
