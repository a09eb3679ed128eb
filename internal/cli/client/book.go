package client

import (
	"encoding/json"
	"fmt"
	"strconv"

	"github.com/spf13/cobra"
)

// BookRequest represents the booking API request.
type BookRequest struct {
	PatientName  string `json:"patient_name"`
	PatientPhone string `json:"patient_phone"`
	Reason       string `json:"reason,omitempty"`
}

// Booking represents a confirmed booking returned by the API.
type Booking struct {
	ID          string `json:"id"`
	SlotID      int    `json:"slot_id"`
	Date        string `json:"date"`
	Time        string `json:"time"`
	Type        string `json:"type"`
	PatientName string `json:"patient_name"`
	BookedAt    string `json:"booked_at"`
}

// BookCmd creates the book command.
func BookCmd() *cobra.Command {
	var (
		name   string
		phone  string
		reason string
	)

	cmd := &cobra.Command{
		Use:   "book <slot-id>",
		Short: "Book an appointment slot",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			slotID, err := strconv.Atoi(args[0])
			if err != nil {
				return fmt.Errorf("invalid slot id %q", args[0])
			}
			outputJSON, _ := cmd.Flags().GetBool("output")
			return runBook(cmd, slotID, name, phone, reason, outputJSON)
		},
	}

	cmd.Flags().StringVarP(&name, "name", "n", "", "Patient name (required)")
	cmd.Flags().StringVarP(&phone, "phone", "p", "", "Patient phone number")
	cmd.Flags().StringVarP(&reason, "reason", "r", "", "Reason for the visit")
	_ = cmd.MarkFlagRequired("name")

	return cmd
}

func runBook(cmd *cobra.Command, slotID int, name, phone, reason string, outputJSON bool) error {
	api, err := NewAPIClientWithCmd(cmd)
	if err != nil {
		return err
	}

	resp, err := api.Post(fmt.Sprintf("/slots/%d/book", slotID), BookRequest{
		PatientName:  name,
		PatientPhone: phone,
		Reason:       reason,
	})
	if err != nil {
		return fmt.Errorf("booking failed: %w", err)
	}

	var booking Booking
	if err := json.Unmarshal(resp.Data, &booking); err != nil {
		return fmt.Errorf("failed to parse booking: %w", err)
	}

	if outputJSON {
		output, _ := json.MarshalIndent(booking, "", "  ")
		fmt.Println(string(output))
		return nil
	}

	fmt.Printf("Booked slot %d for %s: %s at %s (confirmation %s)\n",
		booking.SlotID, booking.PatientName, booking.Date, booking.Time, booking.ID)
	return nil
}
