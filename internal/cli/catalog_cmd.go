package cli

import (
	"fmt"

	"github.com/alexanderramin/liftplan/internal/cli/formatter"
	"github.com/spf13/cobra"
)

func newCatalogCmd(app *App) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "catalog",
		Short: "Manage the exercise catalog",
	}

	cmd.AddCommand(
		newCatalogImportCmd(app),
		newCatalogListCmd(app),
		newCatalogShowCmd(app),
		newCatalogStatsCmd(app),
	)

	return cmd
}

func newCatalogImportCmd(app *App) *cobra.Command {
	return &cobra.Command{
		Use:   "import FILE",
		Short: "Import an ExerciseDB-style JSON catalog",
		Long: `Import exercises from a JSON array of
{"id", "name", "bodyPart", "target", "equipment", "instructions"} objects.
Records are matched on "id", so re-importing a file updates it in place.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			result, err := app.Catalog.ImportFile(cmd.Context(), args[0])
			if err != nil {
				return err
			}
			fmt.Fprint(cmd.OutOrStdout(), formatter.FormatImportResult(result.Imported, result.Created, result.Updated))
			return nil
		},
	}
}

func newCatalogListCmd(app *App) *cobra.Command {
	var equipment []string
	var limit int

	cmd := &cobra.Command{
		Use:   "list",
		Short: "List catalog exercises",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			records, err := app.Catalog.List(cmd.Context(), equipment, limit)
			if err != nil {
				return err
			}
			fmt.Fprint(cmd.OutOrStdout(), formatter.FormatExerciseList(records))
			return nil
		},
	}

	cmd.Flags().StringSliceVarP(&equipment, "equipment", "e", nil, "Only list exercises using this equipment")
	cmd.Flags().IntVarP(&limit, "limit", "n", 50, "Maximum rows to show (0 for all)")

	return cmd
}

func newCatalogStatsCmd(app *App) *cobra.Command {
	return &cobra.Command{
		Use:   "stats",
		Short: "Show catalog size per equipment",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			stats, err := app.Catalog.Stats(cmd.Context())
			if err != nil {
				return err
			}
			fmt.Fprint(cmd.OutOrStdout(), formatter.FormatCatalogStats(stats.Total, stats.ByEquipment))
			return nil
		},
	}
}

func newCatalogShowCmd(app *App) *cobra.Command {
	return &cobra.Command{
		Use:   "show ID",
		Short: "Show one exercise by catalog or source id",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			rec, err := app.Catalog.Get(cmd.Context(), args[0])
			if err != nil {
				return err
			}
			fmt.Fprint(cmd.OutOrStdout(), formatter.FormatExercise(rec))
			return nil
		},
	}
}
