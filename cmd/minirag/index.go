package main

import (
	"fmt"

	"github.com/spf13/cobra"
)

var indexCmd = &cobra.Command{
	Use:   "index",
	Short: "Index the corpus directory and exit",
	RunE:  runIndex,
}

func init() {
	rootCmd.AddCommand(indexCmd)
}

func runIndex(cmd *cobra.Command, args []string) error {
	a, err := newApp(configPath)
	if err != nil {
		return err
	}
	defer a.Close()

	ctx := cmd.Context()
	docs, err := a.loader.Scan(ctx, a.cfg.DataDir)
	if err != nil {
		return fmt.Errorf("scanning %s: %w", a.cfg.DataDir, err)
	}
	if err := a.indexer.Sync(ctx, docs); err != nil {
		return err
	}

	count, err := a.store.Count(ctx)
	if err != nil {
		return err
	}
	fmt.Printf("Indexed %d documents (%d chunks)\n", len(docs), count)
	return nil
}
