package cli

import (
	"fmt"
	"strings"

	"github.com/existflow/gleam/internal/blob"
	"github.com/existflow/gleam/internal/config"
	"github.com/existflow/gleam/internal/model"
	"github.com/existflow/gleam/internal/store"
)

// ephemeral switches the store to the in-memory backend for throwaway
// sessions. Set from the root --ephemeral flag.
var ephemeral bool

// openStore opens the configured blob backend and loads the store.
// The returned cleanup closes the backend.
func openStore() (*store.Store, func(), error) {
	cfg, err := config.Load()
	if err != nil {
		cfg = config.DefaultConfig()
	}

	var b blob.Store
	switch {
	case ephemeral:
		b = blob.NewMemory()
	case cfg.Storage == config.StoragePostgres:
		if cfg.PostgresURL == "" {
			return nil, nil, fmt.Errorf("storage is postgres but postgres_url is not set")
		}
		b, err = blob.OpenPostgres(cfg.PostgresURL)
	default:
		b, err = blob.OpenDefaultSQLite()
	}
	if err != nil {
		return nil, nil, fmt.Errorf("failed to open storage: %w", err)
	}

	s, err := store.Open(b)
	if err != nil {
		b.Close()
		return nil, nil, fmt.Errorf("failed to load store: %w", err)
	}

	return s, func() { _ = b.Close() }, nil
}

// findProject resolves a CLI argument to a project by exact id, id prefix,
// or case-insensitive name.
func findProject(s *store.Store, arg string) (model.Project, error) {
	projects := s.Projects()
	for _, p := range projects {
		if p.ID == arg {
			return p, nil
		}
	}
	for _, p := range projects {
		if strings.EqualFold(p.Name, arg) {
			return p, nil
		}
	}
	var matches []model.Project
	for _, p := range projects {
		if strings.HasPrefix(p.ID, arg) {
			matches = append(matches, p)
		}
	}
	switch len(matches) {
	case 1:
		return matches[0], nil
	case 0:
		return model.Project{}, fmt.Errorf("project not found: %s", arg)
	default:
		return model.Project{}, fmt.Errorf("ambiguous project: %s", arg)
	}
}

// confirm prompts for a yes/no answer on stdin.
func confirm(prompt string) bool {
	fmt.Printf("%s [y/N]: ", prompt)
	var answer string
	fmt.Scanln(&answer)
	return answer == "y" || answer == "Y"
}

// shortID trims an id for display.
func shortID(id string) string {
	if len(id) > 8 {
		return id[:8]
	}
	return id
}
