package cli

import (
	"fmt"
	"strings"
	"time"

	"github.com/spf13/cobra"

	"github.com/obma24/Quest-Board/internal/domain"
)

func init() {
	addCmd.Flags().StringVar(&addFrequency, "frequency", "ONCE", "Quest frequency: DAILY, WEEKLY, or ONCE")
	addCmd.Flags().StringVar(&addDescription, "description", "", "Quest description")
	addCmd.Flags().StringVar(&addDue, "due", "", "Due date (RFC 3339, e.g. 2024-06-01T18:00:00Z)")
	rootCmd.AddCommand(addCmd)
}

var (
	addFrequency   string
	addDescription string
	addDue         string
)

var addCmd = &cobra.Command{
	Use:   "add TITLE",
	Short: "Add a new quest",
	Args:  cobra.ExactArgs(1),
	RunE:  runAdd,
}

func runAdd(cmd *cobra.Command, args []string) error {
	d, err := newDaemon()
	if err != nil {
		return err
	}
	defer d.Close()

	var dueAt *time.Time
	if addDue != "" {
		t, err := time.Parse(time.RFC3339, addDue)
		if err != nil {
			return fmt.Errorf("parse --due: %w", err)
		}
		dueAt = &t
	}

	freq := domain.Frequency(strings.ToUpper(addFrequency))
	q, err := d.Quests.Create(currentUser(d), args[0], addDescription, freq, dueAt)
	if err != nil {
		return err
	}

	fmt.Printf("Added %s quest %q (+%d XP, +%d coins on completion)\n",
		q.Frequency, q.Title, q.RewardXP, q.RewardCoins)
	fmt.Printf("  id: %s\n", q.ID)
	return nil
}
