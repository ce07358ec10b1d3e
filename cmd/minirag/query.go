package main

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"
)

var queryAnswer bool

var queryCmd = &cobra.Command{
	Use:   "query <question>",
	Short: "Retrieve matching chunks for a question",
	Args:  cobra.MinimumNArgs(1),
	RunE:  runQuery,
}

func init() {
	queryCmd.Flags().BoolVarP(&queryAnswer, "answer", "a", false, "also generate an answer from the retrieved context")
	rootCmd.AddCommand(queryCmd)
}

func runQuery(cmd *cobra.Command, args []string) error {
	a, err := newApp(configPath)
	if err != nil {
		return err
	}
	defer a.Close()

	ctx := cmd.Context()
	question := strings.Join(args, " ")

	if queryAnswer {
		ans, err := a.answerer.Ask(ctx, question)
		if err != nil {
			return err
		}
		if len(ans.Sources) == 0 {
			fmt.Println("Nothing relevant found in the index.")
			return nil
		}
		fmt.Println(ans.Text)
		fmt.Println()
		for _, src := range ans.Sources {
			fmt.Printf("  %s (score: %.2f)\n", src.Source, src.Score)
		}
		return nil
	}

	results, err := a.retriever.Retrieve(ctx, question)
	if err != nil {
		return err
	}
	if len(results) == 0 {
		fmt.Println("Nothing relevant found in the index.")
		return nil
	}
	for i, r := range results {
		fmt.Printf("%d. %s (score: %.2f)\n   %s\n", i+1, r.Source, r.Score, r.Text)
	}
	return nil
}
