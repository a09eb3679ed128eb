package main

import (
	"fmt"
	"os"

	"github.com/brightsmile/clinassist/internal/cli"
	"github.com/brightsmile/clinassist/internal/cli/admin"
	"github.com/spf13/cobra"
)

func main() {
	rootCmd := &cobra.Command{
		Use:   "clinassistd",
		Short: "Clinic assistant daemon",
		Long:  "Clinic assistant daemon for running the API server and verifying data files",
	}

	cli.AddHelpJSONFlag(rootCmd)
	rootCmd.AddCommand(admin.ServeCmd())
	rootCmd.AddCommand(admin.CheckCmd())

	if len(os.Args) == 1 {
		os.Args = append(os.Args, "serve")
	}

	cli.CheckHelpJSON(rootCmd)
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}
