package cli

import (
	"fmt"

	"github.com/spf13/cobra"
)

func init() {
	rootCmd.AddCommand(loginCmd)
}

var loginCmd = &cobra.Command{
	Use:   "login",
	Short: "Record a login and extend the daily streak",
	Args:  cobra.NoArgs,
	RunE:  runLogin,
}

func runLogin(cmd *cobra.Command, args []string) error {
	d, err := newDaemon()
	if err != nil {
		return err
	}
	defer d.Close()

	u, err := d.Quests.RecordLogin(currentUser(d))
	if err != nil {
		return err
	}

	fmt.Printf("Welcome back, %s! Daily streak: %d\n", u.ID, u.DailyStreak)
	return nil
}
