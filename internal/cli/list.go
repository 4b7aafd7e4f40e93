package cli

import (
	"fmt"
	"os"
	"text/tabwriter"

	"github.com/spf13/cobra"
)

func init() {
	listCmd.Flags().BoolVar(&listAll, "all", false, "Include completed quests")
	rootCmd.AddCommand(listCmd)
}

var listAll bool

var listCmd = &cobra.Command{
	Use:     "list",
	Aliases: []string{"ls"},
	Short:   "List quests",
	RunE:    runList,
}

func runList(cmd *cobra.Command, args []string) error {
	d, err := newDaemon()
	if err != nil {
		return err
	}
	defer d.Close()

	quests, err := d.Quests.List(currentUser(d))
	if err != nil {
		return err
	}

	if len(quests) == 0 {
		fmt.Println("No quests yet. Run 'questboard add <title>' to get started.")
		return nil
	}

	w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
	fmt.Fprintln(w, "ID\tTITLE\tFREQUENCY\tDUE\tSTATUS\tREWARD")
	for _, q := range quests {
		if q.Completed && !listAll {
			continue
		}
		due := "-"
		if q.DueAt != nil {
			due = q.DueAt.Format("2006-01-02 15:04")
		}
		status := "open"
		if q.Completed {
			status = "done"
		}
		fmt.Fprintf(w, "%s\t%s\t%s\t%s\t%s\t%d XP / %d coins\n",
			q.ID, q.Title, q.Frequency, due, status, q.RewardXP, q.RewardCoins)
	}
	return w.Flush()
}
