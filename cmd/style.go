package cmd

import (
	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/lipgloss/table"

	"github.com/Tiliavir/contractor-time-tracker/internal/model"
)

// palette holds the colours of one theme.
type palette struct {
	accent lipgloss.Color
	muted  lipgloss.Color
	border lipgloss.Color
	stripe lipgloss.Color
}

var palettes = map[model.Theme]palette{
	model.ThemeDark: {
		accent: lipgloss.Color("#89b4fa"),
		muted:  lipgloss.Color("#7f849c"),
		border: lipgloss.Color("#45475a"),
		stripe: lipgloss.Color("#cdd6f4"),
	},
	model.ThemeLight: {
		accent: lipgloss.Color("#1e66f5"),
		muted:  lipgloss.Color("#8c8fa1"),
		border: lipgloss.Color("#bcc0cc"),
		stripe: lipgloss.Color("#4c4f69"),
	},
}

func paletteFor(t model.Theme) palette {
	if p, ok := palettes[t]; ok {
		return p
	}
	return palettes[model.DefaultTheme]
}

func (p palette) title(s string) string {
	return lipgloss.NewStyle().Bold(true).Foreground(p.accent).Render(s)
}

func (p palette) dim(s string) string {
	return lipgloss.NewStyle().Foreground(p.muted).Render(s)
}

// table renders rows under headers. Columns listed in numeric are right
// aligned.
func (p palette) table(headers []string, rows [][]string, numeric ...int) string {
	right := map[int]bool{}
	for _, c := range numeric {
		right[c] = true
	}
	t := table.New().
		Border(lipgloss.RoundedBorder()).
		BorderStyle(lipgloss.NewStyle().Foreground(p.border)).
		Headers(headers...).
		Rows(rows...).
		StyleFunc(func(row, col int) lipgloss.Style {
			s := lipgloss.NewStyle().Padding(0, 1)
			if right[col] {
				s = s.Align(lipgloss.Right)
			}
			if row == table.HeaderRow {
				return s.Bold(true).Foreground(p.accent)
			}
			return s.Foreground(p.stripe)
		})
	return t.Render()
}
