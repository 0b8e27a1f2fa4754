package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/example/halovoc/internal/config"
	"github.com/example/halovoc/internal/excel"
)

// newWordsCommand groups spreadsheet import/export.
func newWordsCommand(cfg *config.Config) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "words",
		Short: "Import and export the word collection",
	}

	importCmd := &cobra.Command{
		Use:   "import <file>",
		Short: "Import words from an xlsx or csv file",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			a, err := openApp(cfg)
			if err != nil {
				return err
			}
			defer a.close()

			importer := excel.NewImporter(a.words, a.registry)
			result, err := importer.Import(cmd.Context(), excel.DefaultImportConfig(args[0]))
			if err != nil {
				return err
			}
			fmt.Printf("processed %d rows: %d created, %d skipped\n",
				result.TotalProcessed, result.Created, result.Skipped)
			for _, e := range result.Errors {
				fmt.Println(" ", e)
			}
			return nil
		},
	}

	exportCmd := &cobra.Command{
		Use:   "export <file>",
		Short: "Export all words to an xlsx file",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			a, err := openApp(cfg)
			if err != nil {
				return err
			}
			defer a.close()

			count, err := excel.NewExporter(a.words).Export(cmd.Context(), args[0])
			if err != nil {
				return err
			}
			fmt.Printf("exported %d words to %s\n", count, args[0])
			return nil
		},
	}

	cmd.AddCommand(importCmd, exportCmd)
	return cmd
}
