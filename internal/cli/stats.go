package cli

import (
	"fmt"
	"strings"

	"github.com/existflow/gleam/internal/store"
	"github.com/spf13/cobra"
)

var monthsCmd = &cobra.Command{
	Use:   "months",
	Short: "List months that hold entries",
	RunE: func(cmd *cobra.Command, args []string) error {
		s, cleanup, err := openStore()
		if err != nil {
			return err
		}
		defer cleanup()

		for _, m := range s.AvailableMonths() {
			fmt.Println(m)
		}
		return nil
	},
}

var statsCmd = &cobra.Command{
	Use:   "stats",
	Short: "Review per-project history",
	Long: `Show each project's entries for a month and its visible ideas.

Examples:
  gleam stats
  gleam stats --month 2024-03
  gleam stats --status finished --query wri`,
	RunE: runStats,
}

var (
	statsMonth  string
	statsQuery  string
	statsStatus string
)

func init() {
	statsCmd.Flags().StringVarP(&statsMonth, "month", "m", store.MonthAll, "Month to review (YYYY-MM or ALL)")
	statsCmd.Flags().StringVarP(&statsQuery, "query", "q", "", "Case-insensitive name search")
	statsCmd.Flags().StringVarP(&statsStatus, "status", "s", "all", "all, ongoing, or finished")
}

func runStats(cmd *cobra.Command, args []string) error {
	s, cleanup, err := openStore()
	if err != nil {
		return err
	}
	defer cleanup()

	cards := s.Stats(statsMonth, statsQuery, store.ParseStatus(statsStatus))
	if len(cards) == 0 {
		fmt.Println("Nothing to review.")
		return nil
	}

	for _, card := range cards {
		state := "ongoing"
		if card.Project.IsFinished {
			state = "finished"
		}
		fmt.Printf("\n%s  (%s)\n", card.Project.Name, state)
		fmt.Println(strings.Repeat("─", 60))

		if len(card.Entries) == 0 {
			fmt.Println("  no entries this month")
		}
		for _, e := range card.Entries {
			fmt.Printf("  %s  %s\n", e.Date, firstLine(e.Content))
		}

		if len(card.Inspirations) > 0 {
			fmt.Println("  ideas:")
			for _, insp := range card.Inspirations {
				fmt.Printf("    • %s\n", firstLine(insp.Content))
			}
		}
	}
	fmt.Println()
	return nil
}
