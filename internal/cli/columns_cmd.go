package cli

import (
	"fmt"
	"os"

	"github.com/alexanderramin/ganttsheet/internal/cli/formatter"
	"github.com/spf13/cobra"
)

func newColumnsCmd(a *App) *cobra.Command {
	return &cobra.Command{
		Use:   "columns <sheet>",
		Short: "List a sheet's columns and the detected task columns",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			data, err := os.ReadFile(args[0])
			if err != nil {
				return fmt.Errorf("reading sheet: %w", err)
			}
			res, err := a.Inspect.Inspect(cmd.Context(), data)
			if err != nil {
				return err
			}
			fmt.Fprint(cmd.OutOrStdout(), formatter.FormatColumns(res.Table.Columns, res.Suggested, len(res.Table.Rows)))
			return nil
		},
	}
}
