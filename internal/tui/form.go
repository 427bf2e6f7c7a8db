package tui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/passnode/passnode/internal/validators"
	"github.com/passnode/passnode/models"
)

// recordForm is a generic entry form driven by the kind descriptor: one text
// input per field in display order, sensitive fields masked while typing.
type recordForm struct {
	kind      models.Kind
	inputs    []textinput.Model
	focus     int
	validator validators.Validator
}

func newRecordForm(kind models.Kind) *recordForm {
	inputs := make([]textinput.Model, len(kind.Fields))
	for i, field := range kind.Fields {
		in := textinput.New()
		in.Placeholder = field
		in.CharLimit = 512
		in.Width = 40
		if sensitiveFields[field] {
			in.EchoMode = textinput.EchoPassword
			in.EchoCharacter = '*'
		}
		inputs[i] = in
	}
	inputs[0].Focus()

	return &recordForm{kind: kind, inputs: inputs, validator: validators.NewRecordValidator()}
}

func (f *recordForm) init() tea.Cmd {
	return textinput.Blink
}

func (f *recordForm) update(msg tea.Msg) tea.Cmd {
	var cmd tea.Cmd
	f.inputs[f.focus], cmd = f.inputs[f.focus].Update(msg)
	return cmd
}

func (f *recordForm) focusNext() {
	f.inputs[f.focus].Blur()
	f.focus = (f.focus + 1) % len(f.inputs)
	f.inputs[f.focus].Focus()
}

func (f *recordForm) focusPrev() {
	f.inputs[f.focus].Blur()
	f.focus = (f.focus - 1 + len(f.inputs)) % len(f.inputs)
	f.inputs[f.focus].Focus()
}

func (f *recordForm) onLastField() bool {
	return f.focus == len(f.inputs)-1
}

// record validates the form and builds the plaintext record. Only the
// designated uniqueness field is mandatory; every other field may stay
// empty.
func (f *recordForm) record() (models.Record, error) {
	rec := make(models.Record, len(f.kind.Fields))
	for i, field := range f.kind.Fields {
		rec[field] = strings.TrimSpace(f.inputs[i].Value())
	}
	if err := f.validator.Validate(f.kind, rec); err != nil {
		return nil, err
	}
	return rec, nil
}

func (f *recordForm) view() string {
	width := 0
	for _, field := range f.kind.Fields {
		if len(field) > width {
			width = len(field)
		}
	}

	var b strings.Builder
	for i, field := range f.kind.Fields {
		b.WriteString(fmt.Sprintf("%-*s │ [%s]\n", width, field, f.inputs[i].View()))
	}
	return strings.TrimRight(b.String(), "\n")
}
