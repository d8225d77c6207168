package streak

import "github.com/julianstephens/habitrack/internal/models"

// Report summarizes a habit's progress for display
type Report struct {
	Name           string   `json:"name" yaml:"name"`
	DaysCompleted  int      `json:"days_completed" yaml:"days_completed"`
	Streak         int      `json:"streak" yaml:"streak"`
	CompletedDates []string `json:"completed_dates" yaml:"completed_dates"`
}

func NewReport(p models.Progress) Report {
	return Report{
		Name:           p.Name,
		DaysCompleted:  p.CompletedDates.Len(),
		Streak:         FromSet(p.CompletedDates),
		CompletedDates: p.CompletedDates.Strings(),
	}
}
