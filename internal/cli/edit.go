package cli

import (
	"fmt"
	"strings"
	"time"

	"github.com/spf13/cobra"

	"github.com/obma24/Quest-Board/internal/app/quest"
	"github.com/obma24/Quest-Board/internal/domain"
)

func init() {
	editCmd.Flags().StringVar(&editTitle, "title", "", "New title")
	editCmd.Flags().StringVar(&editDescription, "description", "", "New description")
	editCmd.Flags().StringVar(&editFrequency, "frequency", "", "New frequency: DAILY, WEEKLY, or ONCE")
	editCmd.Flags().StringVar(&editDue, "due", "", "New due date (RFC 3339)")
	editCmd.Flags().BoolVar(&editClearDue, "clear-due", false, "Remove the due date")
	rootCmd.AddCommand(editCmd)
}

var (
	editTitle       string
	editDescription string
	editFrequency   string
	editDue         string
	editClearDue    bool
)

var editCmd = &cobra.Command{
	Use:   "edit QUEST_ID",
	Short: "Edit a quest",
	Args:  cobra.ExactArgs(1),
	RunE:  runEdit,
}

func runEdit(cmd *cobra.Command, args []string) error {
	d, err := newDaemon()
	if err != nil {
		return err
	}
	defer d.Close()

	var patch quest.EditPatch
	if cmd.Flags().Changed("title") {
		patch.Title = &editTitle
	}
	if cmd.Flags().Changed("description") {
		patch.Description = &editDescription
	}
	if cmd.Flags().Changed("frequency") {
		f := domain.Frequency(strings.ToUpper(editFrequency))
		patch.Frequency = &f
	}
	if editClearDue {
		patch.ClearDueAt = true
	} else if cmd.Flags().Changed("due") {
		t, err := time.Parse(time.RFC3339, editDue)
		if err != nil {
			return fmt.Errorf("parse --due: %w", err)
		}
		patch.DueAt = &t
	}

	q, err := d.Quests.Edit(args[0], patch)
	if err != nil {
		return err
	}

	fmt.Printf("Updated %q\n", q.Title)
	return nil
}
