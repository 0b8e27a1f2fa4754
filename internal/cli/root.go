// Package cli wires the command-line surface around the stores.
package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/example/halovoc/internal/config"
	"github.com/example/halovoc/internal/srs"
	"github.com/example/halovoc/internal/storage"
	"github.com/example/halovoc/internal/tags"
	"github.com/example/halovoc/internal/words"
)

// app bundles the wired stores one command invocation uses.
type app struct {
	cfg      *config.Config
	store    *storage.SQL
	words    *words.Store
	registry *tags.Registry
	quota    *srs.Tracker
}

// openApp connects storage and builds the store graph.
func openApp(cfg *config.Config) (*app, error) {
	var store *storage.SQL
	var err error
	switch cfg.DBDriver {
	case "postgres":
		store, err = storage.OpenPostgres(cfg.DBDSN)
	default:
		store, err = storage.OpenSQLite(cfg.DBPath)
	}
	if err != nil {
		return nil, err
	}
	wordStore := words.NewStore(store)
	return &app{
		cfg:      cfg,
		store:    store,
		words:    wordStore,
		registry: tags.NewRegistry(store, wordStore),
		quota:    srs.NewTracker(store),
	}, nil
}

func (a *app) close() {
	if err := a.store.Close(); err != nil {
		fmt.Println("failed to close storage:", err)
	}
}

// NewRootCommand builds the halovoc command tree.
func NewRootCommand(cfg *config.Config) *cobra.Command {
	root := &cobra.Command{
		Use:           "halovoc",
		Short:         "Vocabulary collection with hierarchical tags and spaced repetition",
		SilenceUsage:  true,
		SilenceErrors: true,
	}
	root.AddCommand(
		newServeCommand(cfg),
		newWordsCommand(cfg),
		newTagsCommand(cfg),
		newDueCommand(cfg),
		newBackupCommand(cfg),
	)
	return root
}
