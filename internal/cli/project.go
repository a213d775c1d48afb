package cli

import (
	"errors"
	"fmt"
	"strings"

	"github.com/existflow/gleam/internal/config"
	"github.com/existflow/gleam/internal/store"
	"github.com/spf13/cobra"
)

var projectCmd = &cobra.Command{
	Use:   "project",
	Short: "Manage projects",
	Long:  `Create, list, reorder and retire the projects tracked on the grid.`,
}

var projectNewCmd = &cobra.Command{
	Use:   "new [name]",
	Short: "Create a new project",
	Long: `Create a new project at the end of the grid.

Examples:
  gleam project new "Writing"
  gleam project new`,
	Args: cobra.MaximumNArgs(1),
	RunE: runProjectNew,
}

var projectListCmd = &cobra.Command{
	Use:     "list",
	Aliases: []string{"ls"},
	Short:   "List all projects",
	RunE:    runProjectList,
}

var projectRenameCmd = &cobra.Command{
	Use:   "rename [project] [name]",
	Short: "Rename a project",
	Args:  cobra.ExactArgs(2),
	RunE:  runProjectRename,
}

var projectFinishCmd = &cobra.Command{
	Use:   "finish [project]",
	Short: "Mark a project finished (kept for history, off the grid)",
	Args:  cobra.ExactArgs(1),
	RunE:  runProjectSetFinished(true),
}

var projectWakeCmd = &cobra.Command{
	Use:   "wake [project]",
	Short: "Bring a finished project back to the grid",
	Args:  cobra.ExactArgs(1),
	RunE:  runProjectSetFinished(false),
}

var projectMoveCmd = &cobra.Command{
	Use:   "move [project] [before]",
	Short: "Move a project in front of another",
	Long: `Move a project to another project's position; everything in between
shifts by one slot.

Examples:
  gleam project move writing reading`,
	Args: cobra.ExactArgs(2),
	RunE: runProjectMove,
}

var projectDeleteCmd = &cobra.Command{
	Use:     "delete [project]",
	Aliases: []string{"rm"},
	Short:   "Delete a project",
	Long: `Delete a project. Entries and ideas that reference it are kept and
read as unlinked afterwards.`,
	Args: cobra.ExactArgs(1),
	RunE: runProjectDelete,
}

func init() {
	projectCmd.AddCommand(projectNewCmd)
	projectCmd.AddCommand(projectListCmd)
	projectCmd.AddCommand(projectRenameCmd)
	projectCmd.AddCommand(projectFinishCmd)
	projectCmd.AddCommand(projectWakeCmd)
	projectCmd.AddCommand(projectMoveCmd)
	projectCmd.AddCommand(projectDeleteCmd)
}

func runProjectNew(cmd *cobra.Command, args []string) error {
	s, cleanup, err := openStore()
	if err != nil {
		return err
	}
	defer cleanup()

	name := ""
	if len(args) > 0 {
		name = args[0]
	}

	p, err := s.AddProject(name)
	if errors.Is(err, store.ErrProjectCap) {
		fmt.Println("Nine active projects is the limit. Finish one first.")
		return nil
	}
	if err != nil {
		return err
	}

	fmt.Printf("✓ Created project: %s (id: %s)\n", p.Name, shortID(p.ID))
	return nil
}

func runProjectList(cmd *cobra.Command, args []string) error {
	s, cleanup, err := openStore()
	if err != nil {
		return err
	}
	defer cleanup()

	projects := s.Projects()
	if len(projects) == 0 {
		fmt.Println("No projects found.")
		return nil
	}

	fmt.Println()
	fmt.Printf("  %-4s  %-10s  %-24s  %-8s  %s\n", "Slot", "ID", "Name", "Color", "State")
	fmt.Println(strings.Repeat("─", 64))
	for _, p := range projects {
		state := "ongoing"
		if p.IsFinished {
			state = "finished"
		}
		fmt.Printf("  %-4d  %-10s  %-24s  %-8s  %s\n",
			p.Slot, shortID(p.ID), p.Name, p.Color, state)
	}
	fmt.Println()
	return nil
}

func runProjectRename(cmd *cobra.Command, args []string) error {
	s, cleanup, err := openStore()
	if err != nil {
		return err
	}
	defer cleanup()

	p, err := findProject(s, args[0])
	if err != nil {
		return err
	}
	name := args[1]
	s.UpdateProject(p.ID, store.ProjectUpdate{Name: &name})
	fmt.Printf("✓ Renamed %s to %s\n", p.Name, name)
	return nil
}

func runProjectSetFinished(finished bool) func(*cobra.Command, []string) error {
	return func(cmd *cobra.Command, args []string) error {
		s, cleanup, err := openStore()
		if err != nil {
			return err
		}
		defer cleanup()

		p, err := findProject(s, args[0])
		if err != nil {
			return err
		}
		s.UpdateProject(p.ID, store.ProjectUpdate{IsFinished: &finished})
		if finished {
			fmt.Printf("✓ Finished: %s\n", p.Name)
		} else {
			fmt.Printf("✓ Back on the grid: %s\n", p.Name)
		}
		return nil
	}
}

func runProjectMove(cmd *cobra.Command, args []string) error {
	s, cleanup, err := openStore()
	if err != nil {
		return err
	}
	defer cleanup()

	dragged, err := findProject(s, args[0])
	if err != nil {
		return err
	}
	target, err := findProject(s, args[1])
	if err != nil {
		return err
	}

	s.ReorderProjects(dragged.ID, target.ID)
	fmt.Printf("✓ Moved %s in front of %s\n", dragged.Name, target.Name)
	return nil
}

func runProjectDelete(cmd *cobra.Command, args []string) error {
	s, cleanup, err := openStore()
	if err != nil {
		return err
	}
	defer cleanup()

	p, err := findProject(s, args[0])
	if err != nil {
		return err
	}

	cfg, _ := config.Load()
	if cfg.ConfirmDelete {
		if !confirm(fmt.Sprintf("Delete %q? Its entries and ideas become unlinked.", p.Name)) {
			fmt.Println("Cancelled.")
			return nil
		}
	}

	s.DeleteProject(p.ID)
	fmt.Printf("🗑  Deleted project: %s\n", p.Name)
	return nil
}
