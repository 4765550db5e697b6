package cmd

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
)

var (
	cfgFile string
	verbose bool
)

var rootCmd = &cobra.Command{
	Use:   "sportsdesk",
	Short: "Conversational assistant for sports subscription packages",
	Long: `Sportsdesk answers questions about sports subscription packages in Thai.
It ingests the package catalog into a semantic index, keeps track of which
sport a conversation is about, and grounds every answer in the indexed
documents. It also exposes the assistant over HTTP, WebSocket and MCP.`,
}

func Execute() error {
	return rootCmd.Execute()
}

func init() {
	rootCmd.PersistentFlags().StringVar(&cfgFile, "config", ".sportsdesk.yml", "config file path")
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "verbose output")
}

func exitOnError(err error) {
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}
