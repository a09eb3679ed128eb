package main

import (
	"fmt"
	"os"

	"github.com/brightsmile/clinassist/internal/cli"
	"github.com/brightsmile/clinassist/internal/cli/client"
	"github.com/spf13/cobra"
)

var version = "dev"

func main() {
	rootCmd := &cobra.Command{
		Use:   "clinassist",
		Short: "Clinic assistant CLI",
		Long: `Clinic assistant CLI talks to a running clinassistd server.

Environment variables:
  CLINIC_API_URL   API base URL (default: http://localhost:8080)`,
		Version: version,
	}

	rootCmd.PersistentFlags().Bool("output", false, "Output as JSON")
	rootCmd.PersistentFlags().String("api-url", "", "API base URL (overrides env)")
	cli.AddHelpJSONFlag(rootCmd)

	rootCmd.AddCommand(client.AskCmd())
	rootCmd.AddCommand(client.ChatCmd())
	rootCmd.AddCommand(client.SlotsCmd())
	rootCmd.AddCommand(client.BookCmd())
	rootCmd.AddCommand(client.FAQsCmd())

	cli.CheckHelpJSON(rootCmd)
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
