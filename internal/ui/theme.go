package ui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"
)

// SistemaLevelUp theme (CLI + TUI).
// Kept intentionally small: reusable styles and a few emojis.

const (
	IconSword   = "⚔️"
	IconShield  = "🛡️"
	IconSparkle = "✨"
	IconDone    = "✅"
	IconTrophy  = "🏆"
	IconGold    = "🪙"
	IconHeart   = "❤️"
	IconSkull   = "💀"
	IconFire    = "🔥"
	IconInfo    = "ℹ️"
	IconWarn    = "⚠️"
	IconError   = "🧨"
	IconShop    = "🏪"
	IconPet     = "🐾"
	IconScroll  = "📜"
	IconLoop    = "🔁"
	IconTarget  = "🎯"
	IconBook    = "📖"
)

var (
	cPrimary = lipgloss.Color("63")  // blue
	cAccent  = lipgloss.Color("205") // magenta
	cGood    = lipgloss.Color("42")  // green
	cWarn    = lipgloss.Color("214") // orange
	cBad     = lipgloss.Color("196") // red
	cMuted   = lipgloss.Color("244") // gray
	cGold    = lipgloss.Color("220") // gold
)

var (
	Title = lipgloss.NewStyle().Bold(true).Foreground(cAccent)
	H2    = lipgloss.NewStyle().Bold(true).Foreground(cPrimary)
	Muted = lipgloss.NewStyle().Foreground(cMuted)
	Key   = lipgloss.NewStyle().Bold(true).Foreground(cPrimary)
	Good  = lipgloss.NewStyle().Bold(true).Foreground(cGood)
	Warn  = lipgloss.NewStyle().Bold(true).Foreground(cWarn)
	Bad   = lipgloss.NewStyle().Bold(true).Foreground(cBad)
	Gold  = lipgloss.NewStyle().Bold(true).Foreground(cGold)
	Dim   = lipgloss.NewStyle().Foreground(cMuted)

	Panel       = lipgloss.NewStyle().BorderStyle(lipgloss.RoundedBorder()).BorderForeground(cMuted).Padding(0, 1)
	PanelTitle  = lipgloss.NewStyle().Bold(true).Foreground(cPrimary)
	SelectedRow = lipgloss.NewStyle().Bold(true).Foreground(cGold).Background(cPrimary)

	BadgeLevelUp = lipgloss.NewStyle().Bold(true).Foreground(cGold).Render("LEVEL UP")
)

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

// HealthBar renders a fixed-width bar like ███░░░░░░░ 300/1000.
func HealthBar(current, max, width int) string {
	if max <= 0 || width <= 0 {
		return ""
	}
	if current < 0 {
		current = 0
	}
	if current > max {
		current = max
	}
	filled := current * width / max
	bar := strings.Repeat("█", filled) + strings.Repeat("░", width-filled)
	style := Good
	switch {
	case current*4 <= max:
		style = Bad
	case current*2 <= max:
		style = Warn
	}
	return fmt.Sprintf("%s %d/%d", style.Render(bar), current, max)
}

func StatusText(status string) string {
	s := strings.ToLower(strings.TrimSpace(status))
	switch s {
	case "completed", "defeated", "done":
		return Good.Render(s)
	case "active", "alive":
		return H2.Render(s)
	case "claimed":
		return Gold.Render(s)
	case "cancelled":
		return Bad.Render(s)
	default:
		return Muted.Render(status)
	}
}

func RankBadge(rank string) string {
	switch rank {
	case "A":
		return Gold.Render("Rank A")
	case "B":
		return Good.Render("Rank B")
	case "C":
		return H2.Render("Rank C")
	case "D":
		return Warn.Render("Rank D")
	default:
		return Muted.Render("Rank E")
	}
}
