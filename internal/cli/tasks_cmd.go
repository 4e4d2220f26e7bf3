package cli

import (
	"encoding/json"
	"fmt"

	"github.com/alexanderramin/ganttsheet/internal/cli/formatter"
	"github.com/alexanderramin/ganttsheet/internal/domain"
	"github.com/spf13/cobra"
)

type taskJSON struct {
	ID           string `json:"id"`
	Name         string `json:"name"`
	Start        string `json:"start"`
	End          string `json:"end"`
	DurationDays int    `json:"duration_days"`
	Status       string `json:"status"`
}

func newTasksCmd(a *App) *cobra.Command {
	var flags selectionFlags
	var asJSON bool

	cmd := &cobra.Command{
		Use:   "tasks <sheet>",
		Short: "Build the task list from a sheet",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			res, err := buildFromFile(cmd, a, args[0], &flags)
			if err != nil {
				return err
			}
			today := a.today()
			out := cmd.OutOrStdout()

			if asJSON {
				rows := make([]taskJSON, 0, len(res.Tasks))
				for _, t := range res.Tasks {
					rows = append(rows, taskJSON{
						ID:           t.ID,
						Name:         t.Name,
						Start:        domain.ISODate(t.Start),
						End:          domain.ISODate(t.End),
						DurationDays: t.DurationDays(),
						Status:       string(t.StatusOn(today)),
					})
				}
				enc := json.NewEncoder(out)
				enc.SetIndent("", "  ")
				return enc.Encode(rows)
			}

			fmt.Fprint(out, formatter.FormatTasks(res.Tasks, today))
			fmt.Fprint(cmd.ErrOrStderr(), formatter.FormatAnomalies(res.Anomalies, res.Degraded))
			return nil
		},
	}
	flags.register(cmd)
	cmd.Flags().BoolVar(&asJSON, "json", false, "print tasks as JSON")
	return cmd
}
