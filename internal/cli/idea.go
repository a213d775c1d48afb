package cli

import (
	"fmt"
	"strings"
	"time"

	"github.com/existflow/gleam/internal/config"
	"github.com/existflow/gleam/internal/model"
	"github.com/existflow/gleam/internal/store"
	"github.com/spf13/cobra"
)

var ideaCmd = &cobra.Command{
	Use:     "idea",
	Aliases: []string{"ideas"},
	Short:   "Capture and manage ideas",
	Long:    `The idea pool holds free-form thoughts, optionally linked to a project.`,
}

var ideaAddCmd = &cobra.Command{
	Use:   "add [content]",
	Short: "Capture an idea",
	Long: `Capture an idea into the pool, newest first.

Examples:
  gleam idea add "ship the zine as a PDF"
  gleam idea add "interval drills" --project movement`,
	Args: cobra.MinimumNArgs(1),
	RunE: runIdeaAdd,
}

var ideaListCmd = &cobra.Command{
	Use:     "list",
	Aliases: []string{"ls"},
	Short:   "List ideas",
	Long: `List ideas. The filter is one of all, unlinked, hidden, or a project;
only the hidden filter shows archived ideas.`,
	RunE: runIdeaList,
}

var ideaLinkCmd = &cobra.Command{
	Use:   "link [id] [project]",
	Short: "Link an idea to a project (or 'none' to unlink)",
	Args:  cobra.ExactArgs(2),
	RunE:  runIdeaLink,
}

var ideaHideCmd = &cobra.Command{
	Use:   "hide [id]",
	Short: "Archive an idea out of the default listings",
	Args:  cobra.ExactArgs(1),
	RunE:  runIdeaSetHidden(true),
}

var ideaShowCmd = &cobra.Command{
	Use:   "show [id]",
	Short: "Bring a hidden idea back",
	Args:  cobra.ExactArgs(1),
	RunE:  runIdeaSetHidden(false),
}

var ideaDeleteCmd = &cobra.Command{
	Use:     "delete [id]",
	Aliases: []string{"rm"},
	Short:   "Delete an idea permanently",
	Args:    cobra.ExactArgs(1),
	RunE:    runIdeaDelete,
}

var (
	ideaProject    string
	ideaListQuery  string
	ideaListFilter string
)

func init() {
	ideaAddCmd.Flags().StringVarP(&ideaProject, "project", "P", "", "Project to link the idea to")
	ideaListCmd.Flags().StringVarP(&ideaListQuery, "query", "q", "", "Case-insensitive content search")
	ideaListCmd.Flags().StringVarP(&ideaListFilter, "filter", "f", "all", "all, unlinked, hidden, or a project")

	ideaCmd.AddCommand(ideaAddCmd)
	ideaCmd.AddCommand(ideaListCmd)
	ideaCmd.AddCommand(ideaLinkCmd)
	ideaCmd.AddCommand(ideaHideCmd)
	ideaCmd.AddCommand(ideaShowCmd)
	ideaCmd.AddCommand(ideaDeleteCmd)
}

func runIdeaAdd(cmd *cobra.Command, args []string) error {
	s, cleanup, err := openStore()
	if err != nil {
		return err
	}
	defer cleanup()

	projectID := ""
	projectName := "general pool"
	if ideaProject != "" {
		p, err := findProject(s, ideaProject)
		if err != nil {
			return err
		}
		projectID = p.ID
		projectName = p.Name
	}

	content := strings.Join(args, " ")
	insp, err := s.AddInspiration(content, projectID)
	if err != nil {
		return fmt.Errorf("failed to capture idea: %w", err)
	}

	fmt.Printf("✓ Captured into [%s] (id: %s)\n", projectName, shortID(insp.ID))
	return nil
}

func runIdeaList(cmd *cobra.Command, args []string) error {
	s, cleanup, err := openStore()
	if err != nil {
		return err
	}
	defer cleanup()

	filter := store.FilterAll
	switch strings.ToLower(ideaListFilter) {
	case "", "all":
	case "unlinked":
		filter = store.FilterUnlinked
	case "hidden":
		filter = store.FilterHidden
	default:
		p, err := findProject(s, ideaListFilter)
		if err != nil {
			return err
		}
		filter = p.ID
	}

	ideas := s.FilterInspirations(ideaListQuery, filter)
	if len(ideas) == 0 {
		fmt.Println("No ideas found.")
		return nil
	}

	fmt.Println()
	for _, insp := range ideas {
		label := "general pool"
		if insp.Linked() {
			if p, ok := s.ResolveProject(insp.ProjectID); ok {
				label = p.Name
			} else {
				label = "unlinked"
			}
		}
		when := insp.CreatedAt
		if t, err := time.Parse(time.RFC3339, insp.CreatedAt); err == nil {
			when = t.Local().Format("Jan 2 2006")
		}
		marker := " "
		if insp.IsHidden {
			marker = "·"
		}
		fmt.Printf("  %s %-8s  [%s]  %s  (%s)\n",
			marker, shortID(insp.ID), label, firstLine(insp.Content), when)
	}
	fmt.Println()
	return nil
}

func runIdeaLink(cmd *cobra.Command, args []string) error {
	s, cleanup, err := openStore()
	if err != nil {
		return err
	}
	defer cleanup()

	insp, err := findIdea(s, args[0])
	if err != nil {
		return err
	}

	projectID := ""
	label := "general pool"
	if args[1] != "none" {
		p, err := findProject(s, args[1])
		if err != nil {
			return err
		}
		projectID = p.ID
		label = p.Name
	}

	s.UpdateInspiration(insp.ID, store.InspirationUpdate{ProjectID: &projectID})
	fmt.Printf("✓ Idea %s now belongs to [%s]\n", shortID(insp.ID), label)
	return nil
}

func runIdeaSetHidden(hidden bool) func(*cobra.Command, []string) error {
	return func(cmd *cobra.Command, args []string) error {
		s, cleanup, err := openStore()
		if err != nil {
			return err
		}
		defer cleanup()

		insp, err := findIdea(s, args[0])
		if err != nil {
			return err
		}
		s.UpdateInspiration(insp.ID, store.InspirationUpdate{IsHidden: &hidden})
		if hidden {
			fmt.Printf("✓ Hidden: %s\n", firstLine(insp.Content))
		} else {
			fmt.Printf("✓ Visible again: %s\n", firstLine(insp.Content))
		}
		return nil
	}
}

func runIdeaDelete(cmd *cobra.Command, args []string) error {
	s, cleanup, err := openStore()
	if err != nil {
		return err
	}
	defer cleanup()

	insp, err := findIdea(s, args[0])
	if err != nil {
		return err
	}

	cfg, _ := config.Load()
	if cfg.ConfirmDelete {
		if !confirm(fmt.Sprintf("Delete idea %q for good?", firstLine(insp.Content))) {
			fmt.Println("Cancelled.")
			return nil
		}
	}

	s.DeleteInspiration(insp.ID)
	fmt.Printf("🗑  Deleted: %s\n", firstLine(insp.Content))
	return nil
}

// findIdea resolves an id or id prefix across the whole pool, hidden
// items included.
func findIdea(s *store.Store, arg string) (model.Inspiration, error) {
	var match model.Inspiration
	matches := 0
	for _, i := range s.Inspirations() {
		if i.ID == arg {
			return i, nil
		}
		if strings.HasPrefix(i.ID, arg) {
			match = i
			matches++
		}
	}
	switch matches {
	case 1:
		return match, nil
	case 0:
		return model.Inspiration{}, fmt.Errorf("idea not found: %s", arg)
	default:
		return model.Inspiration{}, fmt.Errorf("ambiguous idea id: %s", arg)
	}
}

func firstLine(s string) string {
	if i := strings.IndexByte(s, '\n'); i >= 0 {
		s = s[:i] + "…"
	}
	if len(s) > 60 {
		s = s[:57] + "..."
	}
	return s
}
