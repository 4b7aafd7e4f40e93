// Package cli implements the Quest Board command-line interface using Cobra.
// Each subcommand maps to one lifecycle operation (add, complete, login, etc.).
package cli

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/obma24/Quest-Board/internal/daemon"
)

var rootCmd = &cobra.Command{
	Use:   "questboard",
	Short: "Quest Board — a gamified task tracker",
	Long: `Quest Board turns your task list into quests.
Completing quests earns XP, coins, levels, daily streaks, and badges.
Daily and weekly quests respawn automatically when completed.`,
	SilenceUsage:  true,
	SilenceErrors: true,
}

var (
	appVersion string
	userFlag   string
)

func init() {
	rootCmd.PersistentFlags().StringVar(&userFlag, "user", "", "User id (overrides config default)")
}

// Execute runs the root command. Called from main.go.
func Execute(version string) {
	appVersion = version
	rootCmd.Version = version

	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, "Error:", err)
		os.Exit(1)
	}
}

// newDaemon builds the daemon for one-shot commands.
func newDaemon() (*daemon.Daemon, error) {
	return daemon.New(appVersion)
}

// currentUser resolves the user id from the --user flag or config.
func currentUser(d *daemon.Daemon) string {
	if userFlag != "" {
		return userFlag
	}
	if d.Config.User.DefaultID != "" {
		return d.Config.User.DefaultID
	}
	return "default"
}
