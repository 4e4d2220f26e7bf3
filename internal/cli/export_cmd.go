package cli

import (
	"errors"
	"fmt"
	"io/fs"
	"os"

	"github.com/alexanderramin/ganttsheet/internal/app"
	"github.com/alexanderramin/ganttsheet/internal/cli/formatter"
	"github.com/alexanderramin/ganttsheet/internal/domain"
	"github.com/alexanderramin/ganttsheet/internal/export"
	"github.com/spf13/cobra"
)

func newExportCmd(a *App) *cobra.Command {
	var flags selectionFlags
	var output, title, project, company string
	var yes bool

	cmd := &cobra.Command{
		Use:   "export <sheet>",
		Short: "Write a styled Gantt workbook",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			res, err := buildFromFile(cmd, a, args[0], &flags)
			if err != nil {
				return err
			}
			fmt.Fprint(cmd.ErrOrStderr(), formatter.FormatAnomalies(res.Anomalies, res.Degraded))

			path := domain.CoalesceStr(output, a.DefaultOutput, export.DefaultFileName)
			if !yes && a.interactive() {
				if _, statErr := os.Stat(path); statErr == nil {
					ok, err := a.Confirm(fmt.Sprintf("Overwrite %s?", path))
					if err != nil {
						return err
					}
					if !ok {
						fmt.Fprintln(cmd.OutOrStdout(), formatter.Dim("Export cancelled."))
						return nil
					}
				} else if !errors.Is(statErr, fs.ErrNotExist) {
					return fmt.Errorf("checking output: %w", statErr)
				}
			}

			result, err := a.Exports.Export(cmd.Context(), app.ExportRequest{
				Tasks:   res.Tasks,
				Title:   title,
				Project: project,
				Company: company,
				Path:    path,
			})
			if err != nil {
				return err
			}
			fmt.Fprint(cmd.OutOrStdout(), formatter.FormatExport(result))
			return nil
		},
	}
	flags.register(cmd)
	cmd.Flags().StringVarP(&output, "output", "o", "", "workbook path")
	cmd.Flags().StringVar(&title, "title", "", "chart title")
	cmd.Flags().StringVar(&project, "project", "", "project name for the footer")
	cmd.Flags().StringVar(&company, "company", "", "company name for the footer")
	cmd.Flags().BoolVarP(&yes, "yes", "y", false, "overwrite without asking")
	return cmd
}
