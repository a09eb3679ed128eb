package client

import (
	"encoding/json"
	"fmt"

	"github.com/spf13/cobra"
)

// FAQ represents an FAQ entry returned by the API.
type FAQ struct {
	Question string   `json:"question"`
	Answer   string   `json:"answer"`
	Keywords []string `json:"keywords"`
}

// FAQsCmd creates the faqs command.
func FAQsCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "faqs",
		Short: "List frequently asked questions",
		RunE: func(cmd *cobra.Command, args []string) error {
			outputJSON, _ := cmd.Flags().GetBool("output")
			return runFAQs(cmd, outputJSON)
		},
	}
}

func runFAQs(cmd *cobra.Command, outputJSON bool) error {
	api, err := NewAPIClientWithCmd(cmd)
	if err != nil {
		return err
	}

	resp, err := api.Get("/faqs")
	if err != nil {
		return fmt.Errorf("failed to list faqs: %w", err)
	}

	var faqs []FAQ
	if err := json.Unmarshal(resp.Data, &faqs); err != nil {
		return fmt.Errorf("failed to parse faqs: %w", err)
	}

	if outputJSON {
		output, _ := json.MarshalIndent(faqs, "", "  ")
		fmt.Println(string(output))
		return nil
	}

	for i, f := range faqs {
		fmt.Printf("%d. %s\n   %s\n", i+1, f.Question, f.Answer)
	}
	return nil
}
