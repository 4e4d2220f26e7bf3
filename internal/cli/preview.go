package cli

import (
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/alexanderramin/ganttsheet/internal/app"
	"github.com/alexanderramin/ganttsheet/internal/cli/formatter"
	"github.com/alexanderramin/ganttsheet/internal/domain"
	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/table"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/spf13/cobra"
)

var previewKeys = struct {
	Quit   key.Binding
	Toggle key.Binding
}{
	Quit:   key.NewBinding(key.WithKeys("q", "esc", "ctrl+c"), key.WithHelp("q", "quit")),
	Toggle: key.NewBinding(key.WithKeys("tab"), key.WithHelp("tab", "chart/table")),
}

// previewModel shows the built tasks as a navigable table, with the terminal
// chart one keypress away.
type previewModel struct {
	table     table.Model
	chart     string
	anomalies string
	showChart bool
}

func taskTableRows(tasks []domain.Task, today time.Time) []table.Row {
	rows := make([]table.Row, 0, len(tasks))
	for _, t := range tasks {
		rows = append(rows, table.Row{
			t.ID,
			t.Name,
			domain.ISODate(t.Start),
			domain.ISODate(t.End),
			strconv.Itoa(t.DurationDays()),
			string(t.StatusOn(today)),
		})
	}
	return rows
}

func newPreviewModel(res *app.BuildResponse, chart string, today time.Time) previewModel {
	t := table.New(
		table.WithColumns([]table.Column{
			{Title: "ID", Width: 4},
			{Title: "Task", Width: 30},
			{Title: "Start", Width: 10},
			{Title: "End", Width: 10},
			{Title: "Days", Width: 5},
			{Title: "Status", Width: 10},
		}),
		table.WithRows(taskTableRows(res.Tasks, today)),
		table.WithFocused(true),
	)

	styles := table.DefaultStyles()
	styles.Header = styles.Header.
		BorderStyle(lipgloss.NormalBorder()).
		BorderForeground(formatter.ColorDim).
		BorderBottom(true).
		Foreground(formatter.ColorHeader).
		Bold(true)
	styles.Selected = styles.Selected.
		Foreground(formatter.ColorFg).
		Background(formatter.ColorHeader).
		Bold(false)
	t.SetStyles(styles)
	// Height includes the two header lines.
	t.SetHeight(min(max(len(res.Tasks), 1), 15) + 2)

	return previewModel{
		table:     t,
		chart:     chart,
		anomalies: formatter.FormatAnomalies(res.Anomalies, res.Degraded),
	}
}

func (m previewModel) Init() tea.Cmd { return nil }

func (m previewModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	if msg, ok := msg.(tea.KeyMsg); ok {
		switch {
		case key.Matches(msg, previewKeys.Quit):
			return m, tea.Quit
		case key.Matches(msg, previewKeys.Toggle):
			m.showChart = !m.showChart
			return m, nil
		}
	}
	var cmd tea.Cmd
	m.table, cmd = m.table.Update(msg)
	return m, cmd
}

func (m previewModel) View() string {
	var b strings.Builder
	if m.showChart {
		b.WriteString(m.chart)
	} else {
		b.WriteString(m.table.View())
	}
	b.WriteString("\n")
	if m.anomalies != "" {
		b.WriteString(m.anomalies)
	}
	b.WriteString(formatter.Dim(fmt.Sprintf("%s • %s",
		previewKeys.Toggle.Help().Key+" "+previewKeys.Toggle.Help().Desc,
		previewKeys.Quit.Help().Key+" "+previewKeys.Quit.Help().Desc)))
	b.WriteString("\n")
	return b.String()
}

func newPreviewCmd(a *App) *cobra.Command {
	var flags selectionFlags

	cmd := &cobra.Command{
		Use:   "preview <sheet>",
		Short: "Browse the built tasks and their timeline",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			res, err := buildFromFile(cmd, a, args[0], &flags)
			if err != nil {
				return err
			}
			chart, err := a.Charts.Chart(cmd.Context(), app.ChartRequest{
				Tasks: res.Tasks,
				Style: domain.ChartTerminal,
				Width: 24,
			})
			if err != nil {
				return err
			}

			if !a.interactive() {
				fmt.Fprintln(cmd.OutOrStdout(), string(chart.Body))
				return nil
			}

			p := tea.NewProgram(newPreviewModel(res, string(chart.Body), a.today()),
				tea.WithContext(cmd.Context()),
				tea.WithInput(cmd.InOrStdin()),
				tea.WithOutput(cmd.OutOrStdout()),
			)
			_, err = p.Run()
			return err
		},
	}
	flags.register(cmd)
	return cmd
}
