package cli

import (
	"fmt"

	"github.com/alexanderramin/ganttsheet/internal/app"
	"github.com/alexanderramin/ganttsheet/internal/domain"
	"github.com/spf13/cobra"
)

func newChartCmd(a *App) *cobra.Command {
	var flags selectionFlags
	var style, title string
	var width int

	cmd := &cobra.Command{
		Use:   "chart <sheet>",
		Short: "Render a Gantt chart as Mermaid, Google Charts JSON or terminal bars",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			res, err := buildFromFile(cmd, a, args[0], &flags)
			if err != nil {
				return err
			}
			chart, err := a.Charts.Chart(cmd.Context(), app.ChartRequest{
				Tasks: res.Tasks,
				Style: domain.ChartStyle(style),
				Title: title,
				Width: width,
			})
			if err != nil {
				return err
			}
			_, err = fmt.Fprintln(cmd.OutOrStdout(), string(chart.Body))
			return err
		},
	}
	flags.register(cmd)
	cmd.Flags().StringVar(&style, "style", string(domain.ChartMermaid), "mermaid, google-charts or terminal")
	cmd.Flags().StringVar(&title, "title", "", "chart title")
	cmd.Flags().IntVar(&width, "width", 24, "name column width for terminal charts")
	return cmd
}
