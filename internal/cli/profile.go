package cli

import (
	"errors"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/obma24/Quest-Board/internal/app/progression"
	"github.com/obma24/Quest-Board/internal/domain"
)

func init() {
	rootCmd.AddCommand(profileCmd)
}

var profileCmd = &cobra.Command{
	Use:   "profile",
	Short: "Show level, XP, coins, and streak",
	Args:  cobra.NoArgs,
	RunE:  runProfile,
}

func runProfile(cmd *cobra.Command, args []string) error {
	d, err := newDaemon()
	if err != nil {
		return err
	}
	defer d.Close()

	userID := currentUser(d)
	u, err := d.Quests.Profile(userID)
	if errors.Is(err, domain.ErrUserNotFound) {
		fmt.Printf("No progress yet for %s. Complete a quest or log in first.\n", userID)
		return nil
	}
	if err != nil {
		return err
	}

	fmt.Printf("%s\n", u.ID)
	fmt.Printf("  Level:     %d (%d / %d XP)\n", u.Level, u.XP, progression.XPThreshold(u.Level))
	fmt.Printf("  Coins:     %d\n", u.Coins)
	fmt.Printf("  Completed: %d quests\n", u.CompletedQuests)
	fmt.Printf("  Streak:    %d days\n", u.DailyStreak)
	if len(u.EarnedBadges) > 0 {
		fmt.Printf("  Badges:    %d (see 'questboard badges')\n", len(u.EarnedBadges))
	}
	return nil
}
