package client

import (
	"bufio"
	"encoding/json"
	"fmt"
	"os"
	"strings"

	"github.com/spf13/cobra"
)

// ChatCmd creates the interactive chat command.
func ChatCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "chat",
		Short: "Chat with the assistant interactively",
		Long:  "Starts an interactive session with the clinic assistant. Type 'exit' or 'quit' to leave.",
		RunE:  runChat,
	}
}

func runChat(cmd *cobra.Command, args []string) error {
	api, err := NewAPIClientWithCmd(cmd)
	if err != nil {
		return err
	}

	fmt.Println("Connected to the clinic assistant. Type 'exit' to leave.")

	scanner := bufio.NewScanner(os.Stdin)
	for {
		fmt.Print("you> ")
		if !scanner.Scan() {
			break
		}

		message := strings.TrimSpace(scanner.Text())
		if message == "" {
			continue
		}
		if message == "exit" || message == "quit" {
			break
		}

		resp, err := api.Post("/chat", ChatRequest{Message: message})
		if err != nil {
			fmt.Fprintf(os.Stderr, "error: %v\n", err)
			continue
		}

		var chatResp ChatResponse
		if err := json.Unmarshal(resp.Data, &chatResp); err != nil {
			fmt.Fprintf(os.Stderr, "error: failed to parse reply: %v\n", err)
			continue
		}

		fmt.Printf("assistant> %s\n", chatResp.Reply)
	}

	return scanner.Err()
}
