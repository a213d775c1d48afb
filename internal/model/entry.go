package model

// Intensity bounds for an entry's visual weight. Current mutations always
// write DefaultIntensity; the full 0-4 range is accepted when present.
const (
	MinIntensity     = 0
	MaxIntensity     = 4
	DefaultIntensity = 1
)

// DateFormat is the calendar-day key format for entries (time.Parse layout).
const DateFormat = "2006-01-02"

// Entry is a single day's note for one project. At most one entry exists
// per (Date, ProjectID) cell.
type Entry struct {
	ID        string `json:"id"`
	Date      string `json:"date"` // YYYY-MM-DD
	ProjectID string `json:"projectId"`
	Content   string `json:"content"`
	Intensity int    `json:"intensity"`
}

// Month returns the YYYY-MM prefix of the entry's date.
func (e Entry) Month() string {
	if len(e.Date) < 7 {
		return e.Date
	}
	return e.Date[:7]
}

// InMonth reports whether the entry falls in the given YYYY-MM month.
func (e Entry) InMonth(month string) bool {
	return e.Month() == month
}
