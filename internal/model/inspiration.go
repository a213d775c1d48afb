package model

// Inspiration is a free-form idea note, optionally tied to a project.
// An empty ProjectID means the idea lives in the general pool.
type Inspiration struct {
	ID        string `json:"id"`
	Content   string `json:"content"`
	ProjectID string `json:"projectId,omitempty"`
	CreatedAt string `json:"createdAt"` // ISO-8601, set once at creation
	IsHidden  bool   `json:"isHidden"`
}

// Linked reports whether the inspiration references a project. The
// reference is soft: the project may no longer exist.
func (i Inspiration) Linked() bool {
	return i.ProjectID != ""
}
