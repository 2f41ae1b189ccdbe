package tui

import (
	"strconv"
	"strings"

	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/tatianab/just-do-now/internal/engine"
	"github.com/tatianab/just-do-now/internal/models"
)

const (
	fieldTitle = iota
	fieldFrequency
	fieldDays
	fieldTime
	fieldDuration
	fieldCategory
	fieldIcon
	fieldCount
)

var fieldLabels = [fieldCount]string{"Title", "Frequency", "Days", "Time", "Duration", "Category", "Icon"}

// habitForm edits one HabitInput. editID is empty when creating.
type habitForm struct {
	editID string
	inputs [fieldCount]textinput.Model
	focus  int
	err    string
}

func newHabitForm(editID string, in engine.HabitInput) habitForm {
	f := habitForm{editID: editID}
	placeholders := [fieldCount]string{
		"Morning run",
		"DAILY | WEEKLY | SPECIFIC_DAYS",
		"0-6, comma separated (0 = Sunday)",
		"HH:mm (optional)",
		"minutes (default 30)",
		"Health | Work | Skill | Mindset | Routine",
		models.DefaultIcon,
	}
	for i := range f.inputs {
		ti := textinput.New()
		ti.Placeholder = placeholders[i]
		ti.CharLimit = 64
		ti.Width = 40
		f.inputs[i] = ti
	}

	freq := in.Frequency
	if freq == "" {
		freq = models.FrequencyDaily
	}
	f.inputs[fieldTitle].SetValue(in.Title)
	f.inputs[fieldFrequency].SetValue(string(freq))
	f.inputs[fieldDays].SetValue(formatDays(in.Days))
	f.inputs[fieldTime].SetValue(in.ReminderTime)
	if in.Duration > 0 {
		f.inputs[fieldDuration].SetValue(strconv.Itoa(in.Duration))
	}
	f.inputs[fieldCategory].SetValue(in.Category)
	f.inputs[fieldIcon].SetValue(in.Icon)
	f.inputs[fieldTitle].Focus()
	return f
}

func (f *habitForm) move(delta int) {
	f.inputs[f.focus].Blur()
	f.focus = (f.focus + delta + fieldCount) % fieldCount
	f.inputs[f.focus].Focus()
}

func (f habitForm) update(msg tea.Msg) (habitForm, tea.Cmd) {
	var cmd tea.Cmd
	f.inputs[f.focus], cmd = f.inputs[f.focus].Update(msg)
	return f, cmd
}

// input converts the raw fields. Parse problems are reported as validation
// errors so the form shows them the same way as engine errors.
func (f habitForm) input() (engine.HabitInput, error) {
	in := engine.HabitInput{
		Title:        f.inputs[fieldTitle].Value(),
		Frequency:    models.Frequency(strings.ToUpper(strings.TrimSpace(f.inputs[fieldFrequency].Value()))),
		ReminderTime: f.inputs[fieldTime].Value(),
		Category:     strings.TrimSpace(f.inputs[fieldCategory].Value()),
		Icon:         f.inputs[fieldIcon].Value(),
	}
	days, err := parseDays(f.inputs[fieldDays].Value())
	if err != nil {
		return in, &engine.ValidationError{Field: "days", Msg: "use numbers 0-6 separated by commas"}
	}
	in.Days = days
	if d := strings.TrimSpace(f.inputs[fieldDuration].Value()); d != "" {
		n, err := strconv.Atoi(d)
		if err != nil {
			return in, &engine.ValidationError{Field: "duration", Msg: "must be a number of minutes"}
		}
		in.Duration = n
	}
	return in, nil
}

func parseDays(s string) ([]int, error) {
	var out []int
	for _, part := range strings.Split(s, ",") {
		part = strings.TrimSpace(part)
		if part == "" {
			continue
		}
		n, err := strconv.Atoi(part)
		if err != nil {
			return nil, err
		}
		out = append(out, n)
	}
	return out, nil
}

func formatDays(days []int) string {
	parts := make([]string, len(days))
	for i, d := range days {
		parts[i] = strconv.Itoa(d)
	}
	return strings.Join(parts, ",")
}
