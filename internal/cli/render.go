package cli

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/julianstephens/girassol/internal/calendar"
	"github.com/julianstephens/girassol/internal/habits"
)

var (
	TitleStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("214")).
			Bold(true)

	MutedStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("240"))

	DoneStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("42"))

	WarnStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("203"))

	todayStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("214")).
			Underline(true).
			Bold(true)

	cellStyle = lipgloss.NewStyle().Width(4).Align(lipgloss.Right)
)

// BandStyle colours a consistency band
func BandStyle(b habits.Band) lipgloss.Style {
	switch b {
	case habits.BandStrong:
		return DoneStyle
	case habits.BandOK:
		return TitleStyle
	default:
		return WarnStyle
	}
}

// Check renders a checkbox
func Check(done bool) string {
	if done {
		return DoneStyle.Render("[x]")
	}
	return "[ ]"
}

// RenderStrip draws a weekday header over one mark per day
func RenderStrip(days []calendar.Day, done func(date string) bool) string {
	var head, marks strings.Builder
	for _, d := range days {
		head.WriteString(d.Label() + " ")
		if done(d.Date) {
			marks.WriteString(DoneStyle.Render("●") + " ")
		} else {
			marks.WriteString(MutedStyle.Render("○") + " ")
		}
	}
	return MutedStyle.Render(strings.TrimRight(head.String(), " ")) + "\n" + strings.TrimRight(marks.String(), " ")
}

// RenderMonth draws a Sunday-first month. mark highlights a date; today is underlined.
func RenderMonth(g calendar.Grid, today string, mark func(date string) bool) string {
	var b strings.Builder
	b.WriteString(TitleStyle.Render(fmt.Sprintf("%s %d", g.Month, g.Year)))
	b.WriteString("\n")

	var head []string
	for _, wd := range []string{"Su", "Mo", "Tu", "We", "Th", "Fr", "Sa"} {
		head = append(head, cellStyle.Render(wd))
	}
	b.WriteString(MutedStyle.Render(lipgloss.JoinHorizontal(lipgloss.Top, head...)))
	b.WriteString("\n")

	for _, week := range g.Weeks() {
		cells := make([]string, 0, len(week))
		for _, day := range week {
			if day == 0 {
				cells = append(cells, cellStyle.Render(""))
				continue
			}
			date := g.Date(day)
			marked := mark != nil && mark(date)
			text := strconv.Itoa(day)
			style := lipgloss.NewStyle()
			if marked {
				text += "*"
				style = DoneStyle
			}
			if date == today {
				if marked {
					style = style.Underline(true).Bold(true)
				} else {
					style = todayStyle
				}
			}
			text = style.Render(text)
			cells = append(cells, cellStyle.Render(text))
		}
		b.WriteString(lipgloss.JoinHorizontal(lipgloss.Top, cells...))
		b.WriteString("\n")
	}
	return strings.TrimRight(b.String(), "\n")
}

// ShortID is the prefix shown in listings; any unique prefix resolves back
func ShortID(id string) string {
	if len(id) > 8 {
		return id[:8]
	}
	return id
}

// Indent prefixes every line of s with two spaces
func Indent(s string) string {
	return "  " + strings.ReplaceAll(s, "\n", "\n  ")
}
