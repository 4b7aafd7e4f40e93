package cli

import (
	"fmt"

	"github.com/spf13/cobra"
)

func init() {
	rootCmd.AddCommand(completeCmd)
}

var completeCmd = &cobra.Command{
	Use:   "complete QUEST_ID",
	Short: "Complete a quest and collect its rewards",
	Args:  cobra.ExactArgs(1),
	RunE:  runComplete,
}

func runComplete(cmd *cobra.Command, args []string) error {
	d, err := newDaemon()
	if err != nil {
		return err
	}
	defer d.Close()

	res, err := d.Quests.Complete(args[0], currentUser(d))
	if err != nil {
		return err
	}

	fmt.Printf("Completed %q: +%d XP, +%d coins\n",
		res.Quest.Title, res.Quest.RewardXP, res.Quest.RewardCoins)
	fmt.Printf("  level %d (%d XP), %d coins, streak %d\n",
		res.User.Level, res.User.XP, res.User.Coins, res.User.DailyStreak)
	if res.Spawned != nil {
		next := "-"
		if res.Spawned.DueAt != nil {
			next = res.Spawned.DueAt.Format("2006-01-02 15:04")
		}
		fmt.Printf("  next occurrence due %s (id %s)\n", next, res.Spawned.ID)
	}
	return nil
}
