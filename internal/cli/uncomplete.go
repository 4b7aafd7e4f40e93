package cli

import (
	"fmt"

	"github.com/spf13/cobra"
)

func init() {
	rootCmd.AddCommand(uncompleteCmd)
}

var uncompleteCmd = &cobra.Command{
	Use:   "uncomplete QUEST_ID",
	Short: "Reopen a completed quest",
	Args:  cobra.ExactArgs(1),
	RunE:  runUncomplete,
}

func runUncomplete(cmd *cobra.Command, args []string) error {
	d, err := newDaemon()
	if err != nil {
		return err
	}
	defer d.Close()

	q, err := d.Quests.Uncomplete(args[0])
	if err != nil {
		return err
	}

	fmt.Printf("Reopened %q\n", q.Title)
	return nil
}
