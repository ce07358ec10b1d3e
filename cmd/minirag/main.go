// Command minirag runs a Telegram bot that answers questions from a local
// document corpus using retrieval-augmented generation.
package main

import (
	"fmt"
	"os"

	"github.com/joho/godotenv"
	"github.com/spf13/cobra"
)

var configPath string

var rootCmd = &cobra.Command{
	Use:          "minirag",
	Short:        "Telegram RAG bot answering questions from local documents",
	SilenceUsage: true, // don't print usage on operational errors
	Long: `minirag indexes text documents into a local vector store and answers
questions about them over Telegram, grounded strictly on the indexed content.`,
}

func init() {
	rootCmd.PersistentFlags().StringVarP(&configPath, "config", "c", "config.yaml", "path to the YAML config file")
}

func main() {
	godotenv.Load() // .env is optional, real env vars win either way

	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
