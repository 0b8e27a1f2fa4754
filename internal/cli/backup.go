package cli

import (
	"encoding/json"
	"fmt"
	"os"
	"time"

	"github.com/spf13/cobra"

	"github.com/example/halovoc/internal/backup"
	"github.com/example/halovoc/internal/config"
)

// newBackupCommand groups envelope export and import.
func newBackupCommand(cfg *config.Config) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "backup",
		Short: "Export and restore the full data set",
	}

	exportCmd := &cobra.Command{
		Use:   "export <file>",
		Short: "Write a backup envelope to a JSON file",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			a, err := openApp(cfg)
			if err != nil {
				return err
			}
			defer a.close()

			env, err := backup.Export(cmd.Context(), a.store, time.Now())
			if err != nil {
				return err
			}
			data, err := json.MarshalIndent(env, "", "  ")
			if err != nil {
				return fmt.Errorf("failed to encode envelope: %v", err)
			}
			if err := os.WriteFile(args[0], data, 0644); err != nil {
				return fmt.Errorf("failed to write backup: %v", err)
			}
			fmt.Printf("exported backup %s to %s\n", env.ID, args[0])
			return nil
		},
	}

	importCmd := &cobra.Command{
		Use:   "import <file>",
		Short: "Restore a backup envelope from a JSON file",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			data, err := os.ReadFile(args[0])
			if err != nil {
				return fmt.Errorf("failed to read backup: %v", err)
			}
			a, err := openApp(cfg)
			if err != nil {
				return err
			}
			defer a.close()

			result, err := backup.Import(cmd.Context(), a.store, data)
			if err != nil {
				return err
			}
			fmt.Printf("restored %d keys (%d skipped)\n", len(result.Imported), len(result.Skipped))
			// A load normalizes whatever the envelope contained.
			if _, err := a.words.Load(cmd.Context()); err != nil {
				return err
			}
			if _, err := a.registry.List(cmd.Context()); err != nil {
				return err
			}
			return nil
		},
	}

	cmd.AddCommand(exportCmd, importCmd)
	return cmd
}
