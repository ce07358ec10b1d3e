package main

import (
	"fmt"
	"sort"

	"github.com/spf13/cobra"

	"github.com/jismyseban/MINI-RAG-BOT/internal/adapters/vectordb"
)

var statusCmd = &cobra.Command{
	Use:   "status",
	Short: "Show what is currently indexed",
	RunE:  runStatus,
}

func init() {
	rootCmd.AddCommand(statusCmd)
}

func runStatus(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfigOnly()
	if err != nil {
		return err
	}

	store, err := vectordb.NewSQLiteStore(cfg.DBPath)
	if err != nil {
		return fmt.Errorf("opening vector store: %w", err)
	}
	defer store.Close()

	ctx := cmd.Context()
	files, err := store.Files(ctx)
	if err != nil {
		return err
	}
	count, err := store.Count(ctx)
	if err != nil {
		return err
	}

	fmt.Printf("Corpus dir:  %s\n", cfg.DataDir)
	fmt.Printf("Store path:  %s\n", cfg.DBPath)
	fmt.Printf("Documents:   %d\n", len(files))
	fmt.Printf("Chunks:      %d\n", count)

	if len(files) == 0 {
		return nil
	}

	names := make([]string, 0, len(files))
	for name := range files {
		names = append(names, name)
	}
	sort.Strings(names)

	fmt.Println("\nIndexed files:")
	for _, name := range names {
		fmt.Printf("  %s  (sha1 %.8s)\n", name, files[name])
	}
	return nil
}
