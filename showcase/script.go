package showcase

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"
)

// scriptStep is a single action in an automation script.
type scriptStep struct {
	Action string  `json:"action"`
	Label  string  `json:"label,omitempty"`
	Page   int     `json:"page,omitempty"`
	Text   string  `json:"text,omitempty"`
	Key    string  `json:"key,omitempty"`
	X      float64 `json:"x,omitempty"`
	Y      float64 `json:"y,omitempty"`
	Frames int     `json:"frames,omitempty"`
}

type script struct {
	Steps []scriptStep `json:"steps"`
}

// scriptTarget is what a script drives. App implements it.
type scriptTarget interface {
	// Busy reports whether the target is mid-transition; the runner waits.
	Busy() bool
	Screenshot(label string)
	GoToPage(page int)
	TypeText(s string)
	PressKey(name string) error
	Click(x, y float64)
	Quit()
}

var knownActions = map[string]bool{
	"wait": true, "screenshot": true, "page": true, "next": true, "prev": true,
	"type": true, "key": true, "submit": true, "click": true, "quit": true,
}

// ScriptRunner plays a JSON script one step per tick, for demos and
// visual regression captures.
type ScriptRunner struct {
	steps     []scriptStep
	cursor    int
	waitCount int
	done      bool
	err       error
}

// ParseScript parses a JSON script.
func ParseScript(data []byte) (*ScriptRunner, error) {
	var sc script
	if err := json.Unmarshal(data, &sc); err != nil {
		return nil, fmt.Errorf("parse script: %w", err)
	}
	if len(sc.Steps) == 0 {
		return nil, errors.New("parse script: no steps")
	}
	for i, st := range sc.Steps {
		if !knownActions[st.Action] {
			return nil, fmt.Errorf("parse script: step %d: unknown action %q", i, st.Action)
		}
	}
	return &ScriptRunner{steps: sc.Steps}, nil
}

// LoadScript reads and parses a script file.
func LoadScript(path string) (*ScriptRunner, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("load script: %w", err)
	}
	return ParseScript(data)
}

// Done reports whether every step has run.
func (r *ScriptRunner) Done() bool {
	return r.done
}

// Err returns the first step error, if any. Failing steps are skipped.
func (r *ScriptRunner) Err() error {
	return r.err
}

// Step advances the script by one tick.
func (r *ScriptRunner) Step(t scriptTarget) {
	if r.done || t.Busy() {
		return
	}
	if r.waitCount > 0 {
		r.waitCount--
		return
	}
	if r.cursor >= len(r.steps) {
		r.done = true
		return
	}

	st := r.steps[r.cursor]
	r.cursor++

	switch st.Action {
	case "wait":
		if st.Frames > 0 {
			r.waitCount = st.Frames - 1 // this tick counts as one
		}
	case "screenshot":
		t.Screenshot(st.Label)
	case "page":
		t.GoToPage(st.Page)
	case "next":
		r.fail(t.PressKey("pagedown"))
	case "prev":
		r.fail(t.PressKey("pageup"))
	case "type":
		t.TypeText(st.Text)
	case "key":
		r.fail(t.PressKey(st.Key))
	case "submit":
		r.fail(t.PressKey("enter"))
	case "click":
		t.Click(st.X, st.Y)
	case "quit":
		t.Quit()
	}

	if r.cursor >= len(r.steps) && r.waitCount == 0 {
		r.done = true
	}
}

func (r *ScriptRunner) fail(err error) {
	if err != nil && r.err == nil {
		r.err = fmt.Errorf("script step %d: %w", r.cursor-1, err)
	}
}
