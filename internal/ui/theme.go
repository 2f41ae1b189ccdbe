// Package ui holds the lipgloss styles shared by the CLI and the TUI.
package ui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"
)

const (
	IconBolt    = "⚡"
	IconDone    = "✅"
	IconTodo    = "◻️"
	IconFire    = "🔥"
	IconCredits = "💠"
	IconShop    = "🛒"
	IconCrown   = "👑"
	IconCoach   = "🤖"
	IconClock   = "🕒"
	IconInfo    = "ℹ️"
	IconWarn    = "⚠️"
	IconError   = "🧨"
)

var (
	cCyan   = lipgloss.Color("51")
	cAccent = lipgloss.Color("205") // magenta
	cGood   = lipgloss.Color("42")
	cWarn   = lipgloss.Color("214")
	cBad    = lipgloss.Color("196")
	cMuted  = lipgloss.Color("244")
	cGold   = lipgloss.Color("220")
)

var (
	Title = lipgloss.NewStyle().Bold(true).Foreground(cCyan)
	H2    = lipgloss.NewStyle().Bold(true).Foreground(cAccent)
	Muted = lipgloss.NewStyle().Foreground(cMuted)
	Key   = lipgloss.NewStyle().Bold(true).Foreground(cCyan)
	Good  = lipgloss.NewStyle().Bold(true).Foreground(cGood)
	Warn  = lipgloss.NewStyle().Bold(true).Foreground(cWarn)
	Bad   = lipgloss.NewStyle().Bold(true).Foreground(cBad)
	Gold  = lipgloss.NewStyle().Bold(true).Foreground(cGold)

	Panel       = lipgloss.NewStyle().BorderStyle(lipgloss.RoundedBorder()).BorderForeground(cMuted).Padding(0, 1)
	SelectedRow = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("0")).Background(cCyan)

	BadgeLevelUp = lipgloss.NewStyle().Bold(true).Foreground(cGold).Render("LEVEL UP")
)

// Theme is the accent palette. The gold variant is unlocked in the shop.
type Theme struct {
	Accent   lipgloss.Style
	Selected lipgloss.Style
	Border   lipgloss.Color
}

var (
	NeonTheme = Theme{Accent: Title, Selected: SelectedRow, Border: cCyan}
	GoldTheme = Theme{
		Accent:   Gold,
		Selected: lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("0")).Background(cGold),
		Border:   cGold,
	}
)

func ThemeFor(gold bool) Theme {
	if gold {
		return GoldTheme
	}
	return NeonTheme
}

func Heading(icon string, title string) string {
	icon = strings.TrimSpace(icon)
	if icon != "" {
		icon += " "
	}
	return Title.Render(icon + title)
}

func LabelValue(label string, value any) string {
	return fmt.Sprintf("%s %v", Key.Render(label+":"), value)
}

// ProgressBar renders pct (0-100) as a fixed-width bar.
func ProgressBar(pct float64, width int) string {
	if width <= 0 {
		return ""
	}
	filled := int(pct / 100 * float64(width))
	filled = min(width, max(0, filled))
	return Good.Render(strings.Repeat("█", filled)) + Muted.Render(strings.Repeat("░", width-filled))
}

// Heat picks a cell for the activity grid.
func Heat(count int) string {
	switch {
	case count <= 0:
		return Muted.Render("·")
	case count == 1:
		return Good.Render("▪")
	default:
		return Gold.Render("■")
	}
}
