// internal/cli/import_data.go
package cli

import (
	"context"
	"fmt"
	"io"
	"os"

	"github.com/spf13/cobra"

	"github.com/javajoker/foodgram-backend/internal/database"
	"github.com/javajoker/foodgram-backend/internal/repository"
	"github.com/javajoker/foodgram-backend/internal/services"
)

type importOptions struct {
	ingredients string
	tags        string
}

// NewImportDataCommand loads ingredient and tag fixtures. Existing rows are
// left untouched; malformed rows are logged and skipped.
func NewImportDataCommand(rootOpts *RootOptions) *cobra.Command {
	opts := &importOptions{}

	cmd := &cobra.Command{
		Use:          "import-data",
		Short:        "Import ingredient and tag fixtures from CSV or JSON",
		Args:         cobra.NoArgs,
		SilenceUsage: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			db, err := openDatabase(rootOpts)
			if err != nil {
				return err
			}
			defer database.Close(db)

			catalog := services.NewCatalogService(repository.NewGormStore(db))
			return runImport(cmd.Context(), catalog, opts, cmd.OutOrStdout())
		},
	}

	cmd.Flags().StringVar(&opts.ingredients, "ingredients", "data/ingredients.csv", "ingredients fixture (.csv or .json), empty to skip")
	cmd.Flags().StringVar(&opts.tags, "tags", "data/tags.csv", "tags fixture (.csv or .json), empty to skip")

	return cmd
}

type importFunc func(ctx context.Context, r io.Reader, format services.FixtureFormat) (*services.ImportReport, error)

func runImport(ctx context.Context, catalog *services.CatalogService, opts *importOptions, out io.Writer) error {
	steps := []struct {
		name string
		path string
		run  importFunc
	}{
		{"ingredients", opts.ingredients, catalog.ImportIngredients},
		{"tags", opts.tags, catalog.ImportTags},
	}

	for _, step := range steps {
		if step.path == "" {
			continue
		}

		report, err := importFile(ctx, step.path, step.run)
		if err != nil {
			return fmt.Errorf("failed to import %s: %w", step.name, err)
		}
		fmt.Fprintf(out, "%s: %d created, %d existing, %d skipped\n",
			step.name, report.Created, report.Existed, report.Skipped)
	}
	return nil
}

func importFile(ctx context.Context, path string, run importFunc) (*services.ImportReport, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	return run(ctx, f, services.FixtureFormatFromPath(path))
}
