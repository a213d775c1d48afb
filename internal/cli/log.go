package cli

import (
	"fmt"
	"strings"
	"time"

	"github.com/existflow/gleam/internal/model"
	"github.com/spf13/cobra"
)

var logCmd = &cobra.Command{
	Use:   "log [project] [content]",
	Short: "Write a day's entry for a project",
	Long: `Write the grid cell for a project and day. Writing an occupied cell
replaces its content; a day holds at most one entry per project.

Examples:
  gleam log writing "three pages before breakfast"
  gleam log writing "catch-up" --date 2024-05-01
  gleam log writing --date 2024-05-01 --delete`,
	Args: cobra.MinimumNArgs(1),
	RunE: runLog,
}

var (
	logDate   string
	logDelete bool
)

func init() {
	logCmd.Flags().StringVarP(&logDate, "date", "d", "", "Day to write (YYYY-MM-DD, default today)")
	logCmd.Flags().BoolVar(&logDelete, "delete", false, "Clear the cell instead of writing it")
}

func runLog(cmd *cobra.Command, args []string) error {
	s, cleanup, err := openStore()
	if err != nil {
		return err
	}
	defer cleanup()

	p, err := findProject(s, args[0])
	if err != nil {
		return err
	}

	date := logDate
	if date == "" {
		date = time.Now().Format(model.DateFormat)
	}

	if logDelete {
		e, ok := s.EntryForCell(date, p.ID)
		if !ok {
			fmt.Printf("Nothing logged for %s on %s.\n", p.Name, date)
			return nil
		}
		s.DeleteEntry(e.ID)
		fmt.Printf("🗑  Cleared %s on %s\n", p.Name, date)
		return nil
	}

	if len(args) < 2 {
		return fmt.Errorf("content required (or pass --delete)")
	}
	content := strings.Join(args[1:], " ")

	_, existed := s.EntryForCell(date, p.ID)
	if _, err := s.AddEntry(date, p.ID, content, model.DefaultIntensity); err != nil {
		return fmt.Errorf("failed to log entry: %w", err)
	}

	if existed {
		fmt.Printf("✓ Updated [%s] %s: %q\n", p.Name, date, content)
	} else {
		fmt.Printf("✓ Logged [%s] %s: %q\n", p.Name, date, content)
	}
	return nil
}
