package tui

import (
	"context"
	"errors"
	"fmt"
	"log"
	"os"
	"path/filepath"

	"github.com/charmbracelet/bubbles/textinput"
	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/tatianab/just-do-now/internal/app"
	"github.com/tatianab/just-do-now/internal/config"
	"github.com/tatianab/just-do-now/internal/engine"
	"github.com/tatianab/just-do-now/internal/models"
)

type view int

const (
	viewHabits view = iota
	viewStats
	viewShop
	viewCoach
	viewSettings
	viewCount
)

var viewNames = [viewCount]string{"Habits", "Stats", "Shop", "Coach", "Settings"}

type mode int

const (
	modeBrowse mode = iota
	modeRate
	modeForm
	modeConfirmDelete
	modeConfirmReset
)

type model struct {
	app *app.App

	view   view
	mode   mode
	cursor int
	// showAll lists every habit instead of today's agenda.
	showAll bool

	efficiency int
	form       habitForm

	coachInput textinput.Model
	coachView  viewport.Model
	coachText  string
	coachBusy  bool
	shopCursor int
	flash      string
	flashIsErr bool
	width      int
	height     int
}

func newModel(a *app.App) model {
	ti := textinput.New()
	ti.Placeholder = "Ask Neon for advice (empty for a pep talk)..."
	ti.CharLimit = 256
	ti.Width = 60

	return model{
		app:        a,
		coachInput: ti,
		coachView:  viewport.New(80, 12),
		efficiency: engine.DefaultEfficiency,
	}
}

func (m model) Init() tea.Cmd {
	return nil
}

type coachMsg struct {
	text string
}

// visibleHabits is the list the cursor moves over in the habits view.
func (m model) visibleHabits() []models.Habit {
	s := m.app.Controller.State()
	if m.showAll {
		return s.Habits
	}
	a := engine.BuildAgenda(s.Habits, m.app.Controller.Now())
	return append(a.Inbox, a.Timeline...)
}

func (m model) selected() (models.Habit, bool) {
	hs := m.visibleHabits()
	if m.cursor < 0 || m.cursor >= len(hs) {
		return models.Habit{}, false
	}
	return hs[m.cursor], true
}

func (m *model) setFlash(msg string, err error) {
	if err != nil {
		m.flash = err.Error()
		m.flashIsErr = true
		return
	}
	m.flash = msg
	m.flashIsErr = false
}

func (m model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.coachView.Width = max(20, msg.Width-4)
		m.coachView.Height = max(5, msg.Height-12)
		m.coachView.SetContent(m.coachText)
		return m, nil

	case coachMsg:
		m.coachBusy = false
		m.coachText = msg.text
		m.coachView.SetContent(m.coachText)
		m.coachView.GotoTop()
		return m, nil

	case tea.KeyMsg:
		if msg.Type == tea.KeyCtrlC {
			return m, tea.Quit
		}
		switch m.mode {
		case modeRate:
			return m.updateRate(msg)
		case modeForm:
			return m.updateForm(msg)
		case modeConfirmDelete, modeConfirmReset:
			return m.updateConfirm(msg)
		}
		if m.view == viewCoach {
			return m.updateCoach(msg)
		}
		return m.updateBrowse(msg)
	}

	var cmd tea.Cmd
	switch {
	case m.mode == modeForm:
		m.form, cmd = m.form.update(msg)
	case m.view == viewCoach:
		m.coachInput, cmd = m.coachInput.Update(msg)
	}
	return m, cmd
}

func (m model) updateBrowse(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	ctx := context.Background()
	switch msg.String() {
	case "q", "esc":
		return m, tea.Quit
	case "tab":
		m.view = (m.view + 1) % viewCount
		return m, m.focusCoach()
	case "shift+tab":
		m.view = (m.view + viewCount - 1) % viewCount
		return m, m.focusCoach()
	case "1", "2", "3", "4", "5":
		m.view = view(msg.String()[0] - '1')
		return m, m.focusCoach()
	}

	switch m.view {
	case viewHabits:
		hs := m.visibleHabits()
		switch msg.String() {
		case "up", "k":
			m.cursor = max(0, m.cursor-1)
		case "down", "j":
			m.cursor = min(max(0, len(hs)-1), m.cursor+1)
		case "v":
			m.showAll = !m.showAll
			m.cursor = 0
		case "a":
			m.form = newHabitForm("", engine.HabitInput{})
			m.mode = modeForm
			return m, textinput.Blink
		case "e":
			if h, ok := m.selected(); ok {
				m.form = newHabitForm(h.ID, engine.InputFrom(h))
				m.mode = modeForm
				return m, textinput.Blink
			}
		case "d":
			if _, ok := m.selected(); ok {
				m.mode = modeConfirmDelete
			}
		case "f":
			if h, ok := m.selected(); ok {
				res, err := m.app.Controller.CompleteFocus(ctx, h.ID)
				m.setFlash(toggleFlash(h, res), err)
			}
		case "enter", " ":
			if h, ok := m.selected(); ok {
				today := models.DateOf(m.app.Controller.Now())
				if h.CompletedOn(today) {
					res, err := m.app.Controller.Toggle(ctx, h.ID, engine.DefaultEfficiency)
					m.setFlash(toggleFlash(h, res), err)
				} else {
					m.efficiency = engine.DefaultEfficiency
					m.mode = modeRate
				}
			}
		}

	case viewShop:
		switch msg.String() {
		case "up", "k":
			m.shopCursor = max(0, m.shopCursor-1)
		case "down", "j":
			m.shopCursor = min(len(models.Catalog)-1, m.shopCursor+1)
		case "enter", "b":
			item := models.Catalog[m.shopCursor]
			_, err := m.app.Controller.Purchase(ctx, item.ID)
			m.setFlash(fmt.Sprintf("Acquired %s.", item.Name), err)
		}

	case viewSettings:
		switch msg.String() {
		case "s":
			on := !m.app.Controller.State().AudioEnabled
			err := m.app.Controller.SetAudio(ctx, on)
			m.setFlash(fmt.Sprintf("Audio %s.", onOff(on)), err)
		case "g":
			on, err := m.app.Controller.ToggleTheme()
			m.setFlash(fmt.Sprintf("Gold theme %s.", onOff(on)), err)
		case "R":
			m.mode = modeConfirmReset
		}
	}
	return m, nil
}

func (m model) updateRate(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "left", "h", "-":
		m.efficiency = max(0, m.efficiency-10)
	case "right", "l", "+":
		m.efficiency = min(100, m.efficiency+10)
	case "esc":
		m.mode = modeBrowse
	case "enter", " ":
		m.mode = modeBrowse
		if h, ok := m.selected(); ok {
			res, err := m.app.Controller.Toggle(context.Background(), h.ID, m.efficiency)
			m.setFlash(toggleFlash(h, res), err)
		}
	}
	return m, nil
}

func (m model) updateForm(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "esc":
		m.mode = modeBrowse
		return m, nil
	case "tab", "down":
		m.form.move(1)
		return m, nil
	case "shift+tab", "up":
		m.form.move(-1)
		return m, nil
	case "enter":
		in, err := m.form.input()
		if err == nil {
			ctx := context.Background()
			if m.form.editID == "" {
				_, err = m.app.Controller.AddHabit(ctx, in)
			} else {
				_, err = m.app.Controller.EditHabit(ctx, m.form.editID, in)
			}
		}
		var verr *engine.ValidationError
		if errors.As(err, &verr) {
			m.form.err = verr.Error()
			return m, nil
		}
		m.mode = modeBrowse
		m.setFlash(fmt.Sprintf("Saved %q.", in.Title), err)
		return m, nil
	}
	var cmd tea.Cmd
	m.form, cmd = m.form.update(msg)
	return m, cmd
}

func (m model) updateConfirm(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	confirmed := msg.String() == "y"
	current := m.mode
	m.mode = modeBrowse
	if !confirmed {
		return m, nil
	}
	ctx := context.Background()
	switch current {
	case modeConfirmDelete:
		if h, ok := m.selected(); ok {
			err := m.app.Controller.DeleteHabit(ctx, h.ID)
			m.setFlash(fmt.Sprintf("Deleted %q.", h.Title), err)
			m.cursor = max(0, m.cursor-1)
		}
	case modeConfirmReset:
		err := m.app.Controller.Reset(ctx)
		m.setFlash("All data wiped.", err)
		m.cursor = 0
	}
	return m, nil
}

func (m model) updateCoach(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "esc":
		m.coachInput.Blur()
		m.view = viewHabits
		return m, nil
	case "tab":
		m.coachInput.Blur()
		m.view = viewSettings
		return m, nil
	case "shift+tab":
		m.coachInput.Blur()
		m.view = viewShop
		return m, nil
	case "pgup", "pgdown":
		var cmd tea.Cmd
		m.coachView, cmd = m.coachView.Update(msg)
		return m, cmd
	case "ctrl+r":
		if m.coachBusy {
			return m, nil
		}
		m.coachBusy = true
		return m, m.askReport()
	case "enter":
		if m.coachBusy {
			return m, nil
		}
		q := m.coachInput.Value()
		m.coachInput.Reset()
		m.coachBusy = true
		return m, m.askCoach(q)
	}
	var cmd tea.Cmd
	m.coachInput, cmd = m.coachInput.Update(msg)
	return m, cmd
}

func (m *model) focusCoach() tea.Cmd {
	if m.view == viewCoach {
		m.coachInput.Focus()
		return textinput.Blink
	}
	m.coachInput.Blur()
	return nil
}

func (m model) askCoach(query string) tea.Cmd {
	habits := m.app.Controller.State().Habits
	c := m.app.Coach
	return func() tea.Msg {
		ctx := context.Background()
		if query == "" {
			return coachMsg{c.Motivation(ctx, habits)}
		}
		return coachMsg{c.Advise(ctx, habits, query)}
	}
}

func (m model) askReport() tea.Cmd {
	habits := m.app.Controller.State().Habits
	c := m.app.Coach
	return func() tea.Msg {
		return coachMsg{c.Report(context.Background(), habits)}
	}
}

func toggleFlash(h models.Habit, res engine.ToggleResult) string {
	if !res.Delta.Positive {
		return fmt.Sprintf("%s undone (%+d XP, %+d credits).", h.Title, res.Delta.XP, res.Delta.Credits)
	}
	s := fmt.Sprintf("%s complete: %+d XP, %+d credits, streak %d.", h.Title, res.Delta.XP, res.Delta.Credits, res.Habit.Streak)
	if res.LeveledUp {
		s += fmt.Sprintf(" LEVEL UP: %d!", res.Level)
	}
	return s
}

func onOff(b bool) string {
	if b {
		return "on"
	}
	return "off"
}

// Run drives the TUI until the user quits.
func Run(a *app.App) error {
	p := tea.NewProgram(newModel(a), tea.WithAltScreen())
	_, err := p.Run()
	return err
}

// Start loads configuration, logs to <data dir>/jdn.log and runs the TUI.
func Start() error {
	cfg, err := config.LoadConfig()
	if err != nil {
		return err
	}
	if err := os.MkdirAll(cfg.DataDir, 0755); err != nil {
		return fmt.Errorf("create data dir: %w", err)
	}
	f, err := os.OpenFile(filepath.Join(cfg.DataDir, "jdn.log"), os.O_CREATE|os.O_APPEND|os.O_WRONLY, 0644)
	if err != nil {
		return fmt.Errorf("open log: %w", err)
	}
	defer f.Close()
	logger := log.New(f, "jdn ", log.LstdFlags)

	a, err := app.New(context.Background(), cfg, logger)
	if err != nil {
		return err
	}
	defer a.Close()
	return Run(a)
}
