package tui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/tatianab/just-do-now/internal/engine"
	"github.com/tatianab/just-do-now/internal/models"
	"github.com/tatianab/just-do-now/internal/ui"
)

func (m model) View() string {
	theme := ui.ThemeFor(m.app.Controller.GoldTheme())

	var body string
	switch m.mode {
	case modeForm:
		body = m.renderForm(theme)
	default:
		switch m.view {
		case viewHabits:
			body = m.renderHabits(theme)
		case viewStats:
			body = m.renderStats()
		case viewShop:
			body = m.renderShop(theme)
		case viewCoach:
			body = m.renderCoach()
		case viewSettings:
			body = m.renderSettings()
		}
	}

	flash := ""
	if m.flash != "" {
		if m.flashIsErr {
			flash = ui.Bad.Render(ui.IconError + " " + m.flash)
		} else {
			flash = ui.Good.Render(m.flash)
		}
	}

	return lipgloss.JoinVertical(lipgloss.Left,
		m.renderHeader(theme),
		"",
		body,
		"",
		flash,
		ui.Muted.Render(m.helpLine()),
	)
}

func (m model) renderHeader(theme ui.Theme) string {
	s := m.app.Controller.State()
	var tabs []string
	for i, name := range viewNames {
		label := fmt.Sprintf(" %d %s ", i+1, name)
		if view(i) == m.view {
			tabs = append(tabs, theme.Selected.Render(label))
		} else {
			tabs = append(tabs, ui.Muted.Render(label))
		}
	}
	stats := fmt.Sprintf("%s LVL %d  %s %d XP  %s %d",
		ui.IconBolt, engine.Level(s.TotalXP),
		ui.ProgressBar(engine.DisplayProgressPercent(s.TotalXP), 12), s.TotalXP,
		ui.IconCredits, s.TotalCredits)
	return lipgloss.JoinVertical(lipgloss.Left,
		theme.Accent.Render("JUST DO NOW")+"  "+stats,
		strings.Join(tabs, ""),
	)
}

func (m model) renderHabits(theme ui.Theme) string {
	now := m.app.Controller.Now()
	today := models.DateOf(now)
	hs := m.visibleHabits()

	title := "Today"
	if m.showAll {
		title = "All habits"
	}
	if len(hs) == 0 {
		return ui.Heading("", title) + "\n" + ui.Muted.Render("Nothing here. Press a to add a habit.")
	}

	var b strings.Builder
	b.WriteString(ui.Heading("", title) + "\n")
	for i, h := range hs {
		mark := ui.IconTodo
		if h.CompletedOn(today) {
			mark = ui.IconDone
		}
		slot := ""
		if h.ReminderTime != "" {
			if end, err := engine.EndTime(h.ReminderTime, h.Duration); err == nil {
				slot = fmt.Sprintf("%s %s-%s ", ui.IconClock, h.ReminderTime, end)
			}
		}
		line := fmt.Sprintf("%s %s%s  %s %d  %s", mark, slot, h.Title, ui.IconFire, h.Streak, ui.Muted.Render(string(h.Category)))
		if i == m.cursor {
			line = theme.Selected.Render(line)
		}
		b.WriteString(line + "\n")
	}

	switch m.mode {
	case modeRate:
		b.WriteString("\n" + ui.H2.Render("Efficiency") + " " + ui.ProgressBar(float64(m.efficiency), 20) +
			fmt.Sprintf(" %d%%  ", m.efficiency) + ui.Muted.Render("←/→ adjust, enter confirm, esc cancel"))
	case modeConfirmDelete:
		if h, ok := m.selected(); ok {
			b.WriteString("\n" + ui.Warn.Render(fmt.Sprintf("%s Delete %q permanently? (y/N)", ui.IconWarn, h.Title)))
		}
	}
	return b.String()
}

func (m model) renderStats() string {
	s := m.app.Controller.State()
	d := engine.BuildDashboard(s.Habits, s.TotalXP, s.Attributes, m.app.Controller.Now())

	var b strings.Builder
	b.WriteString(ui.Heading(ui.IconBolt, fmt.Sprintf("Level %d", d.Level)) + "  " +
		ui.ProgressBar(d.Progress, 30) + fmt.Sprintf(" %.0f%%\n\n", d.Progress))
	b.WriteString(ui.LabelValue("Completions", d.TotalCompletions) + "   ")
	b.WriteString(ui.LabelValue("Best streak", d.BestStreak) + "   ")
	b.WriteString(ui.LabelValue("Habits", d.HabitCount) + "\n\n")

	b.WriteString(ui.H2.Render("Attributes") + "\n")
	for _, sk := range d.Skills {
		b.WriteString(fmt.Sprintf("%-10s %s %3d  Lv %d\n", sk.Attribute, ui.ProgressBar(float64(sk.Value), 20), sk.Value, sk.Level))
	}

	b.WriteString("\n" + ui.H2.Render(fmt.Sprintf("Last %d days", engine.ActivityDays)) + "\n")
	for _, day := range d.Activity {
		b.WriteString(ui.Heat(day.Count) + " ")
	}
	return b.String()
}

func (m model) renderShop(theme ui.Theme) string {
	s := m.app.Controller.State()
	var b strings.Builder
	b.WriteString(ui.Heading(ui.IconShop, "Black market") + "  " + ui.LabelValue("Credits", s.TotalCredits) + "\n\n")
	for i, item := range models.Catalog {
		status := fmt.Sprintf("%d credits", item.Cost)
		if s.Owns(item.ID) {
			status = ui.Good.Render("owned")
		} else if s.TotalCredits < item.Cost {
			status = ui.Bad.Render(status)
		}
		line := fmt.Sprintf("%-16s %s", item.Name, status)
		if i == m.shopCursor {
			line = theme.Selected.Render(fmt.Sprintf("%-16s", item.Name)) + " " + status
		}
		b.WriteString(line + "\n  " + ui.Muted.Render(item.Description) + "\n")
	}
	return b.String()
}

func (m model) renderCoach() string {
	status := ui.Good.Render("online")
	if !m.app.Coach.Online() {
		status = ui.Warn.Render("offline")
	}
	body := m.coachView.View()
	if m.coachBusy {
		body = ui.Muted.Render("Neon is thinking...")
	} else if m.coachText == "" {
		body = ui.Muted.Render("Press enter for a pep talk, type a question, or ctrl+r for a performance report.")
	}
	return lipgloss.JoinVertical(lipgloss.Left,
		ui.Heading(ui.IconCoach, "Neon")+" "+status,
		ui.Panel.Render(body),
		m.coachInput.View(),
	)
}

func (m model) renderSettings() string {
	s := m.app.Controller.State()
	theme := "locked"
	if s.Owns(models.ItemThemeGold) {
		theme = onOff(m.app.Controller.GoldTheme())
	}
	var b strings.Builder
	b.WriteString(ui.Heading("", "Settings") + "\n")
	b.WriteString(ui.LabelValue("Audio", onOff(s.AudioEnabled)) + "\n")
	b.WriteString(ui.LabelValue("Gold theme", theme) + "\n")
	b.WriteString(ui.LabelValue("Inventory", strings.Join(s.Inventory, ", ")) + "\n\n")
	b.WriteString(ui.H2.Render("Session counters") + "\n")
	var counters strings.Builder
	if err := m.app.Metrics.WriteText(&counters); err == nil {
		b.WriteString(ui.Muted.Render(counters.String()))
	}
	if m.mode == modeConfirmReset {
		b.WriteString("\n" + ui.Bad.Render(ui.IconWarn+" Wipe ALL habits, XP, credits and items? This cannot be undone. (y/N)"))
	}
	return b.String()
}

func (m model) renderForm(theme ui.Theme) string {
	title := "New habit"
	if m.form.editID != "" {
		title = "Edit habit"
	}
	var b strings.Builder
	b.WriteString(ui.Heading("", title) + "\n\n")
	for i, in := range m.form.inputs {
		label := fmt.Sprintf("%-10s", fieldLabels[i])
		if i == m.form.focus {
			label = theme.Accent.Render(label)
		} else {
			label = ui.Muted.Render(label)
		}
		b.WriteString(label + " " + in.View() + "\n")
	}
	if m.form.err != "" {
		b.WriteString("\n" + ui.Bad.Render(m.form.err))
	}
	return b.String()
}

func (m model) helpLine() string {
	switch m.mode {
	case modeForm:
		return "tab/↑↓ move • enter save • esc cancel"
	case modeRate, modeConfirmDelete, modeConfirmReset:
		return ""
	}
	switch m.view {
	case viewHabits:
		return "↑↓ select • enter toggle • f focus done • a add • e edit • d delete • v today/all • tab views • q quit"
	case viewShop:
		return "↑↓ select • enter buy • tab views • q quit"
	case viewCoach:
		return "enter ask • ctrl+r report • pgup/pgdn scroll • esc back"
	case viewSettings:
		return "s audio • g gold theme • R reset • tab views • q quit"
	default:
		return "tab views • q quit"
	}
}
