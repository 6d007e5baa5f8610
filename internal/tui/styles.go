package tui

import (
	"github.com/charmbracelet/lipgloss"
	"github.com/tartampluch/go-datepicker/internal/engine"
)

type styles struct {
	title     lipgloss.Style
	header    lipgloss.Style
	day       lipgloss.Style
	adjacent  lipgloss.Style
	disabled  lipgloss.Style
	selected  lipgloss.Style
	rangeMid  lipgloss.Style
	today     lipgloss.Style
	highlight lipgloss.Style
	status    lipgloss.Style
	err       lipgloss.Style
}

func defaultStyles() styles {
	return styles{
		title:     lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("39")),
		header:    lipgloss.NewStyle().Foreground(lipgloss.Color("245")),
		day:       lipgloss.NewStyle(),
		adjacent:  lipgloss.NewStyle().Foreground(lipgloss.Color("240")),
		disabled:  lipgloss.NewStyle().Foreground(lipgloss.Color("238")).Strikethrough(true),
		selected:  lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("231")).Background(lipgloss.Color("27")),
		rangeMid:  lipgloss.NewStyle().Foreground(lipgloss.Color("231")).Background(lipgloss.Color("24")),
		today:     lipgloss.NewStyle().Bold(true).Underline(true),
		highlight: lipgloss.NewStyle().Foreground(lipgloss.Color("214")),
		status:    lipgloss.NewStyle().Italic(true).Foreground(lipgloss.Color("250")),
		err:       lipgloss.NewStyle().Foreground(lipgloss.Color("196")),
	}
}

// cell picks the style of c. The focused cell is shown in reverse video.
func (s styles) cell(c engine.DayCell, focused bool) lipgloss.Style {
	var st lipgloss.Style
	switch {
	case !c.CurrentMonth:
		st = s.adjacent
	case c.RangeState == engine.RangeMiddle:
		st = s.rangeMid
	case c.Selected:
		st = s.selected
	case !c.Selectable:
		st = s.disabled
	case c.Highlighted:
		st = s.highlight
	case c.Today:
		st = s.today
	default:
		st = s.day
	}
	if focused {
		st = st.Reverse(true)
	}
	return st
}
