package showcase

import (
	"errors"
	"strings"
	"testing"
)

type fakeTarget struct {
	busy   bool
	calls  []string
	keyErr error
}

func (f *fakeTarget) Busy() bool { return f.busy }
func (f *fakeTarget) Screenshot(label string) { f.calls = append(f.calls, "shot:"+label) }
func (f *fakeTarget) GoToPage(p int) { f.calls = append(f.calls, "page:"+string(rune('0'+p))) }
func (f *fakeTarget) TypeText(s string) { f.calls = append(f.calls, "type:"+s) }
func (f *fakeTarget) Click(x, y float64) { f.calls = append(f.calls, "click") }
func (f *fakeTarget) Quit() { f.calls = append(f.calls, "quit") }
func (f *fakeTarget) PressKey(name string) error {
	f.calls = append(f.calls, "key:"+name)
	return f.keyErr
}

func TestParseScript(t *testing.T) {
	data := []byte(`{"steps": [
		{"action": "page", "page": 2},
		{"action": "wait", "frames": 30},
		{"action": "type", "text": "Ada"},
		{"action": "key", "key": "tab"},
		{"action": "submit"},
		{"action": "screenshot", "label": "done"}
	]}`)
	r, err := ParseScript(data)
	if err != nil {
		t.Fatal(err)
	}
	if len(r.steps) != 6 {
		t.Fatalf("steps = %d, want 6", len(r.steps))
	}
	if r.steps[0].Page != 2 || r.steps[1].Frames != 30 || r.steps[2].Text != "Ada" {
		t.Errorf("steps = %+v", r.steps)
	}
}

func TestParseScript_Invalid(t *testing.T) {
	tests := []struct {
		name string
		data string
		want string
	}{
		{"bad json", `not json`, "parse script"},
		{"empty", `{"steps": []}`, "no steps"},
		{"unknown action", `{"steps": [{"action": "dance"}]}`, `unknown action "dance"`},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := ParseScript([]byte(tt.data))
			if err == nil || !strings.Contains(err.Error(), tt.want) {
				t.Errorf("err = %v, want containing %q", err, tt.want)
			}
		})
	}
}

func TestRunnerStep_Sequence(t *testing.T) {
	r, err := ParseScript([]byte(`{"steps": [
		{"action": "page", "page": 2},
		{"action": "type", "text": "Ada"},
		{"action": "next"},
		{"action": "prev"},
		{"action": "submit"},
		{"action": "click", "x": 1, "y": 2},
		{"action": "screenshot", "label": "x"},
		{"action": "quit"}
	]}`))
	if err != nil {
		t.Fatal(err)
	}
	tgt := &fakeTarget{}
	for i := 0; i < 8; i++ {
		r.Step(tgt)
	}
	want := []string{"page:2", "type:Ada", "key:pagedown", "key:pageup", "key:enter", "click", "shot:x", "quit"}
	if strings.Join(tgt.calls, ",") != strings.Join(want, ",") {
		t.Errorf("calls = %v, want %v", tgt.calls, want)
	}
	if !r.Done() {
		t.Error("runner should be done after the last step")
	}
}

func TestRunnerStep_Wait(t *testing.T) {
	r, err := ParseScript([]byte(`{"steps": [
		{"action": "wait", "frames": 3},
		{"action": "screenshot", "label": "after"}
	]}`))
	if err != nil {
		t.Fatal(err)
	}
	tgt := &fakeTarget{}

	// The wait step itself consumes one tick, then two more.
	for i := 0; i < 3; i++ {
		r.Step(tgt)
		if len(tgt.calls) != 0 {
			t.Fatalf("tick %d: screenshot taken during wait", i)
		}
	}
	r.Step(tgt)
	if len(tgt.calls) != 1 || tgt.calls[0] != "shot:after" {
		t.Errorf("calls = %v, want the screenshot", tgt.calls)
	}
	if !r.Done() {
		t.Error("runner should be done")
	}
}

func TestRunnerWaitsWhileBusy(t *testing.T) {
	r, err := ParseScript([]byte(`{"steps": [{"action": "quit"}]}`))
	if err != nil {
		t.Fatal(err)
	}
	tgt := &fakeTarget{busy: true}
	r.Step(tgt)
	r.Step(tgt)
	if len(tgt.calls) != 0 || r.Done() {
		t.Fatalf("runner advanced while target busy: %v", tgt.calls)
	}
	tgt.busy = false
	r.Step(tgt)
	if len(tgt.calls) != 1 || !r.Done() {
		t.Errorf("calls = %v, done = %v", tgt.calls, r.Done())
	}
}

func TestRunnerRecordsKeyErrors(t *testing.T) {
	r, err := ParseScript([]byte(`{"steps": [{"action": "key", "key": "f13"}, {"action": "key", "key": "tab"}]}`))
	if err != nil {
		t.Fatal(err)
	}
	boom := errors.New("boom")
	tgt := &fakeTarget{keyErr: boom}
	r.Step(tgt)
	r.Step(tgt)
	if !errors.Is(r.Err(), boom) {
		t.Fatalf("Err = %v, want boom", r.Err())
	}
	if !strings.Contains(r.Err().Error(), "step 0") {
		t.Errorf("Err = %v, want first failing step", r.Err())
	}
	if len(tgt.calls) != 2 {
		t.Errorf("failing step should not stop the script: %v", tgt.calls)
	}
}
