package model

// Project represents a tracked habit or practice. Projects are columns on
// the monthly matrix, ordered by Slot.
type Project struct {
	ID         string `json:"id"`
	Name       string `json:"name"`
	Color      string `json:"color"`
	Slot       int    `json:"slot"`
	IsFinished bool   `json:"isFinished"`
}

// MaxActiveProjects caps how many non-finished projects can exist at once.
const MaxActiveProjects = 9

// DefaultProjectName is used when a project is created without a name.
const DefaultProjectName = "New Practice"

// StarterProjects returns the projects seeded on first launch.
func StarterProjects() []Project {
	return []Project{
		{ID: "1", Name: "Writing", Color: Palette[0], Slot: 0},
		{ID: "2", Name: "Movement", Color: Palette[1], Slot: 1},
		{ID: "3", Name: "Reading", Color: Palette[2], Slot: 2},
	}
}
