package domain

// DayNote is the export view of one tracking day, already formatted for
// the configured locale.
type DayNote struct {
	Key          string
	Date         string
	GoalHours    float64
	Progress     float64
	TotalTime    string
	IsPartialDay bool
	Rows         []NoteRow
}

type NoteRow struct {
	Start    string
	End      string
	Duration string
}
