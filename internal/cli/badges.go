package cli

import (
	"errors"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/obma24/Quest-Board/internal/domain"
)

func init() {
	rootCmd.AddCommand(badgesCmd)
}

var badgesCmd = &cobra.Command{
	Use:   "badges",
	Short: "List earned badges",
	Args:  cobra.NoArgs,
	RunE:  runBadges,
}

func runBadges(cmd *cobra.Command, args []string) error {
	d, err := newDaemon()
	if err != nil {
		return err
	}
	defer d.Close()

	u, err := d.Quests.Profile(currentUser(d))
	if errors.Is(err, domain.ErrUserNotFound) || (err == nil && len(u.EarnedBadges) == 0) {
		fmt.Println("No badges yet. Keep your streak going!")
		return nil
	}
	if err != nil {
		return err
	}

	for _, b := range u.EarnedBadges {
		fmt.Printf("  %s\n", b)
	}
	return nil
}
