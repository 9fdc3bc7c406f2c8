package client

import (
	"github.com/tomz197/dodger/internal/input"
	"github.com/tomz197/dodger/internal/submit"
)

// FormField identifies the focused input of the submission form.
type FormField int

const (
	FieldNone FormField = iota
	FieldName
	FieldEmail
)

// maxFieldLen caps typed input per field.
const maxFieldLen = 48

// Form is the game-over score submission form.
type Form struct {
	Name      []rune
	Email     []rune
	TimeScore string // Read-only, filled from the final time
	Focus     FormField
	Status    string
	Pending   bool // Submission in flight
	Submitted bool // Accepted; no resubmission for this game over
}

// NewForm creates an empty form for the given final time.
func NewForm(timeScore string) *Form {
	return &Form{TimeScore: timeScore}
}

// Entry returns the submission built from the form.
func (f *Form) Entry() submit.Entry {
	return submit.Entry{
		Name:      string(f.Name),
		Email:     string(f.Email),
		TimeScore: f.TimeScore,
	}
}

// Focused reports whether a text field has focus.
func (f *Form) Focused() bool {
	return f.Focus != FieldNone
}

// NextField cycles focus Name -> Email -> none.
func (f *Form) NextField() {
	switch f.Focus {
	case FieldNone:
		f.Focus = FieldName
	case FieldName:
		f.Focus = FieldEmail
	default:
		f.Focus = FieldNone
	}
}

// Edit applies typed text and backspaces to the focused field.
func (f *Form) Edit(in input.Input) {
	var field *[]rune
	switch f.Focus {
	case FieldName:
		field = &f.Name
	case FieldEmail:
		field = &f.Email
	default:
		return
	}

	for i := 0; i < in.Backspace && len(*field) > 0; i++ {
		*field = (*field)[:len(*field)-1]
	}
	for _, r := range in.Text {
		if len(*field) >= maxFieldLen {
			break
		}
		*field = append(*field, r)
	}
}

// CanSubmit reports whether a new submission may start.
func (f *Form) CanSubmit() bool {
	return !f.Pending && !f.Submitted
}

// Begin validates the form and marks it pending. It returns false and sets
// the status when fields are missing.
func (f *Form) Begin() bool {
	if !f.CanSubmit() {
		return false
	}
	if err := f.Entry().Validate(); err != nil {
		f.Status = submit.StatusFor(err)
		return false
	}
	f.Pending = true
	f.Status = submit.StatusSubmitting
	return true
}

// Finish records the result of a submission.
func (f *Form) Finish(err error) {
	f.Pending = false
	f.Status = submit.StatusFor(err)
	if err == nil {
		f.Submitted = true
		f.Focus = FieldNone
	}
}
