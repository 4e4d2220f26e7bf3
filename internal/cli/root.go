package cli

import (
	"context"
	"time"

	"github.com/alexanderramin/ganttsheet/internal/app"
	"github.com/alexanderramin/ganttsheet/internal/domain"
	"github.com/spf13/cobra"
)

// App holds the use cases and terminal hooks the commands run against.
type App struct {
	Inspect app.InspectUseCase
	Build   app.BuildTasksUseCase
	Charts  app.ChartUseCase
	Exports app.ExportUseCase

	Today func() time.Time
	// DefaultOutput is the export path used when --output is not given.
	DefaultOutput string

	// IsInteractive reports whether prompts and the preview UI may be shown.
	IsInteractive func() bool
	// PickColumns lets the user adjust the detected column selection.
	PickColumns func(columns []string, sel *domain.ColumnSelection) error
	// Confirm asks a yes/no question.
	Confirm func(title string) (bool, error)
	// Serve runs the HTTP API until ctx is canceled.
	Serve func(ctx context.Context) error
}

func (a *App) interactive() bool {
	return a.IsInteractive != nil && a.IsInteractive()
}

func (a *App) today() time.Time {
	if a.Today != nil {
		return a.Today()
	}
	return domain.Day(time.Now())
}

// NewRootCmd creates the top-level "ganttsheet" command and registers all
// subcommands against the provided App.
func NewRootCmd(a *App) *cobra.Command {
	if a.PickColumns == nil {
		a.PickColumns = pickColumnsForm
	}
	if a.Confirm == nil {
		a.Confirm = confirmForm
	}

	root := &cobra.Command{
		Use:           "ganttsheet",
		Short:         "Turn task spreadsheets into Gantt charts",
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	root.PersistentFlags().String(configFlag, "", "YAML config file (default $GANTT_CONFIG)")

	root.AddCommand(
		newColumnsCmd(a),
		newTasksCmd(a),
		newChartCmd(a),
		newExportCmd(a),
		newPreviewCmd(a),
		newServeCmd(a),
	)

	return root
}
