package cli

import (
	"fmt"
	"os"

	"github.com/alexanderramin/ganttsheet/internal/app"
	"github.com/alexanderramin/ganttsheet/internal/detect"
	"github.com/alexanderramin/ganttsheet/internal/domain"
	"github.com/spf13/cobra"
)

// selectionFlags are the column overrides shared by every command that
// builds tasks.
type selectionFlags struct {
	description string
	start       string
	end         string
	pick        bool
}

func (f *selectionFlags) register(cmd *cobra.Command) {
	cmd.Flags().StringVar(&f.description, "description", "", "column holding task names")
	cmd.Flags().StringVar(&f.start, "start", "", "column holding start dates")
	cmd.Flags().StringVar(&f.end, "end", "", "column holding end dates")
	cmd.Flags().BoolVar(&f.pick, "pick", false, "choose columns interactively")
}

func (f *selectionFlags) selection() domain.ColumnSelection {
	return domain.ColumnSelection{Description: f.description, StartDate: f.start, EndDate: f.end}
}

// buildFromFile reads the sheet at path and builds its tasks. With --pick on
// a terminal, the detected columns are offered for adjustment first.
func buildFromFile(cmd *cobra.Command, a *App, path string, flags *selectionFlags) (*app.BuildResponse, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading sheet: %w", err)
	}

	sel := flags.selection()
	if flags.pick && a.interactive() {
		inspected, err := a.Inspect.Inspect(cmd.Context(), data)
		if err != nil {
			return nil, err
		}
		merged := detect.Merge(inspected.Suggested, sel)
		if err := a.PickColumns(inspected.Table.Columns, &merged); err != nil {
			return nil, fmt.Errorf("choosing columns: %w", err)
		}
		sel = merged
	}

	return a.Build.BuildTasks(cmd.Context(), app.BuildRequest{Data: data, Selection: sel})
}
