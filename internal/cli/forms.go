package cli

import (
	"github.com/alexanderramin/ganttsheet/internal/cli/formatter"
	"github.com/alexanderramin/ganttsheet/internal/domain"
	"github.com/charmbracelet/huh"
	"github.com/charmbracelet/lipgloss"
)

func ganttHuhTheme() *huh.Theme {
	t := huh.ThemeBase()

	t.Focused.Title = lipgloss.NewStyle().Foreground(formatter.ColorHeader).Bold(true)
	t.Focused.SelectSelector = lipgloss.NewStyle().Foreground(formatter.ColorHeader)
	t.Focused.SelectedOption = lipgloss.NewStyle().Foreground(formatter.ColorGreen)
	t.Focused.UnselectedOption = lipgloss.NewStyle().Foreground(formatter.ColorFg)
	t.Focused.FocusedButton = lipgloss.NewStyle().Foreground(formatter.ColorFg).Background(formatter.ColorHeader).Padding(0, 1)
	t.Focused.BlurredButton = lipgloss.NewStyle().Foreground(formatter.ColorDim).Padding(0, 1)
	t.Focused.Description = lipgloss.NewStyle().Foreground(formatter.ColorDim)

	t.Blurred.Title = lipgloss.NewStyle().Foreground(formatter.ColorDim)
	t.Blurred.SelectSelector = lipgloss.NewStyle().Foreground(formatter.ColorDim)
	t.Blurred.SelectedOption = lipgloss.NewStyle().Foreground(formatter.ColorDim)
	t.Blurred.UnselectedOption = lipgloss.NewStyle().Foreground(formatter.ColorDim)

	return t
}

func columnSelect(title string, columns []string, value *string) *huh.Select[string] {
	return huh.NewSelect[string]().
		Title(title).
		Options(huh.NewOptions(columns...)...).
		Value(value)
}

// pickColumnsForm asks for the three columns, preselecting the detected ones.
func pickColumnsForm(columns []string, sel *domain.ColumnSelection) error {
	if len(columns) == 0 {
		return nil
	}
	if sel.Description == "" {
		sel.Description = columns[0]
	}
	if sel.StartDate == "" {
		sel.StartDate = columns[0]
	}
	if sel.EndDate == "" {
		sel.EndDate = columns[0]
	}
	return huh.NewForm(
		huh.NewGroup(
			columnSelect("Task description column", columns, &sel.Description),
			columnSelect("Start date column", columns, &sel.StartDate),
			columnSelect("End date column", columns, &sel.EndDate),
		),
	).WithTheme(ganttHuhTheme()).WithShowHelp(false).Run()
}

func confirmForm(title string) (bool, error) {
	var ok bool
	err := huh.NewForm(
		huh.NewGroup(
			huh.NewConfirm().Title(title).Value(&ok),
		),
	).WithTheme(ganttHuhTheme()).WithShowHelp(false).Run()
	return ok, err
}
