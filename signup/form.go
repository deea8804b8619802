// Package signup implements the signup form shown on the last showcase page.
//
// A Form holds two text fields and moves from the input phase to a static
// confirmation once both fields validate. Nothing is sent anywhere.
package signup

import (
	"errors"
	"net/mail"
	"strings"
	"unicode"

	"github.com/tanema/gween"
	"github.com/tanema/gween/ease"
)

// Field identifies a text input.
type Field uint8

const (
	FieldName Field = iota
	FieldEmail
	fieldCount
)

// String returns the field name.
func (f Field) String() string {
	switch f {
	case FieldName:
		return "name"
	case FieldEmail:
		return "email"
	}
	return "unknown"
}

// Phase is the form's lifecycle stage.
type Phase uint8

const (
	PhaseInput Phase = iota
	PhaseConfirmed
)

// Validation errors returned by Submit.
var (
	ErrNameRequired  = errors.New("signup: name is required")
	ErrEmailRequired = errors.New("signup: email is required")
	ErrEmailInvalid  = errors.New("signup: email is not a valid address")
)

// MaxFieldLen caps the number of runes in a field.
const MaxFieldLen = 64

// FadeDuration is the confirmation fade-in time in seconds.
const FadeDuration float32 = 0.6

// Form is the signup form model. It is not safe for concurrent use.
type Form struct {
	name, email []rune
	focus       Field
	phase       Phase
	err         error

	fade    *gween.Tween
	opacity float64

	// OnSubmit, when set, runs once after a successful Submit.
	OnSubmit func(name, email string)
}

// New returns an empty form with the name field focused.
func New() *Form {
	return &Form{}
}

// Name returns the current name text.
func (f *Form) Name() string { return string(f.name) }

// Email returns the current email text.
func (f *Form) Email() string { return string(f.email) }

// Focus returns the focused field.
func (f *Form) Focus() Field { return f.focus }

// Phase returns the current phase.
func (f *Form) Phase() Phase { return f.phase }

// Err returns the last validation error, or nil.
func (f *Form) Err() error { return f.err }

// SetFocus focuses field. Out-of-range values are ignored.
func (f *Form) SetFocus(field Field) {
	if field < fieldCount {
		f.focus = field
	}
}

// FocusNext cycles focus to the next field, wrapping around.
func (f *Form) FocusNext() {
	f.focus = (f.focus + 1) % fieldCount
}

// FocusPrev cycles focus to the previous field, wrapping around.
func (f *Form) FocusPrev() {
	f.focus = (f.focus + fieldCount - 1) % fieldCount
}

func (f *Form) field() *[]rune {
	if f.focus == FieldEmail {
		return &f.email
	}
	return &f.name
}

// Insert appends printable runes to the focused field. Control characters
// are dropped and the field stops growing at MaxFieldLen. Input after
// confirmation is ignored.
func (f *Form) Insert(rs ...rune) {
	if f.phase != PhaseInput {
		return
	}
	buf := f.field()
	for _, r := range rs {
		if !unicode.IsPrint(r) || len(*buf) >= MaxFieldLen {
			continue
		}
		*buf = append(*buf, r)
	}
	f.err = nil
}

// Backspace removes the last rune of the focused field.
func (f *Form) Backspace() {
	if f.phase != PhaseInput {
		return
	}
	buf := f.field()
	if n := len(*buf); n > 0 {
		*buf = (*buf)[:n-1]
	}
	f.err = nil
}

// Validate checks both fields without changing phase.
func (f *Form) Validate() error {
	name := strings.TrimSpace(string(f.name))
	email := strings.TrimSpace(string(f.email))
	switch {
	case name == "":
		return ErrNameRequired
	case email == "":
		return ErrEmailRequired
	}
	addr, err := mail.ParseAddress(email)
	if err != nil || addr.Address != email || addr.Name != "" {
		return ErrEmailInvalid
	}
	return nil
}

// Submit validates the form. On success the form moves to the confirmed
// phase, starts the fade-in and calls OnSubmit. On failure the offending
// field gets focus and the error is kept for display. Submitting a
// confirmed form is a no-op.
func (f *Form) Submit() error {
	if f.phase == PhaseConfirmed {
		return nil
	}
	if err := f.Validate(); err != nil {
		f.err = err
		if errors.Is(err, ErrNameRequired) {
			f.focus = FieldName
		} else {
			f.focus = FieldEmail
		}
		return err
	}
	f.err = nil
	f.phase = PhaseConfirmed
	f.opacity = 0
	f.fade = gween.New(0, 1, FadeDuration, ease.OutCubic)
	if f.OnSubmit != nil {
		f.OnSubmit(strings.TrimSpace(string(f.name)), strings.TrimSpace(string(f.email)))
	}
	return nil
}

// Update advances the confirmation fade by dt seconds.
func (f *Form) Update(dt float32) {
	if f.fade == nil {
		return
	}
	v, done := f.fade.Update(dt)
	f.opacity = float64(v)
	if done {
		f.opacity = 1
		f.fade = nil
	}
}

// Opacity returns the confirmation view's opacity in [0, 1]. It is 1
// during the input phase.
func (f *Form) Opacity() float64 {
	if f.phase == PhaseInput {
		return 1
	}
	return f.opacity
}
