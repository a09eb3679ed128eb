package client

import (
	"encoding/json"
	"fmt"
	"net/url"

	"github.com/spf13/cobra"
)

// Slot represents an appointment slot returned by the API.
type Slot struct {
	ID       int    `json:"id"`
	Date     string `json:"date"`
	Time     string `json:"time"`
	Duration string `json:"duration"`
	Type     string `json:"type"`
	Status   string `json:"status"`
}

// SlotsCmd creates the slots command.
func SlotsCmd() *cobra.Command {
	var (
		date     string
		slotType string
	)

	cmd := &cobra.Command{
		Use:   "slots",
		Short: "List available appointment slots",
		RunE: func(cmd *cobra.Command, args []string) error {
			outputJSON, _ := cmd.Flags().GetBool("output")
			return runSlots(cmd, date, slotType, outputJSON)
		},
	}

	cmd.Flags().StringVarP(&date, "date", "d", "", "Filter by date (YYYY-MM-DD)")
	cmd.Flags().StringVarP(&slotType, "type", "t", "", "Filter by appointment type")

	cmd.AddCommand(slotDatesCmd())

	return cmd
}

func slotDatesCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "dates",
		Short: "List dates with availability",
		RunE: func(cmd *cobra.Command, args []string) error {
			outputJSON, _ := cmd.Flags().GetBool("output")
			return runSlotDates(cmd, outputJSON)
		},
	}
}

func runSlots(cmd *cobra.Command, date, slotType string, outputJSON bool) error {
	api, err := NewAPIClientWithCmd(cmd)
	if err != nil {
		return err
	}

	query := url.Values{}
	if date != "" {
		query.Set("date", date)
	}
	if slotType != "" {
		query.Set("type", slotType)
	}
	path := "/slots"
	if encoded := query.Encode(); encoded != "" {
		path += "?" + encoded
	}

	resp, err := api.Get(path)
	if err != nil {
		return fmt.Errorf("failed to list slots: %w", err)
	}

	var slots []Slot
	if err := json.Unmarshal(resp.Data, &slots); err != nil {
		return fmt.Errorf("failed to parse slots: %w", err)
	}

	if outputJSON {
		output, _ := json.MarshalIndent(slots, "", "  ")
		fmt.Println(string(output))
		return nil
	}

	if len(slots) == 0 {
		fmt.Println("No available slots.")
		return nil
	}

	for _, s := range slots {
		fmt.Printf("%d. %s at %s (%s, %s)\n", s.ID, s.Date, s.Time, s.Type, s.Duration)
	}
	return nil
}

func runSlotDates(cmd *cobra.Command, outputJSON bool) error {
	api, err := NewAPIClientWithCmd(cmd)
	if err != nil {
		return err
	}

	resp, err := api.Get("/slots/dates")
	if err != nil {
		return fmt.Errorf("failed to list dates: %w", err)
	}

	var dates []string
	if err := json.Unmarshal(resp.Data, &dates); err != nil {
		return fmt.Errorf("failed to parse dates: %w", err)
	}

	if outputJSON {
		output, _ := json.MarshalIndent(dates, "", "  ")
		fmt.Println(string(output))
		return nil
	}

	if len(dates) == 0 {
		fmt.Println("No dates with availability.")
		return nil
	}

	for _, d := range dates {
		fmt.Println(d)
	}
	return nil
}
