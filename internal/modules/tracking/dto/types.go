package dto

import "time"

type SegmentOutput struct {
	Start time.Time

	// End is nil for the running tail of the open session.
	End      *time.Time
	Duration time.Duration
}

type BucketOutput struct {
	Key      string
	Date     string
	DayStart time.Time
	Segments []SegmentOutput

	// Total is the day's worn time as a percentage of the goal.
	Total        float64
	IsPartialDay bool
}

// Stats summarizes HistoricalProgress.
type Stats struct {
	Days           int
	DaysGoalMet    int
	MeanProgress   float64
	MedianProgress float64
	StdDevProgress float64
	BestDay        string

	// BestTotal is the best day's Total, in percent.
	BestTotal float64
}

type ReportInput struct {
	// Days sizes the historical series; zero or less means one entry
	// per recorded day.
	Days int
}

type ReportOutput struct {
	Now time.Time

	// Today labels the tracking day containing Now.
	Today      string
	GoalHours  float64
	DayStartAt string

	GroupedSessions []BucketOutput
	WornSeconds     float64
	TotalTime       string
	EstEndTime      string
	FinishAt        time.Time
	GoalReached     bool
	Progress        float64

	CurrentScore       float64
	HistoricalScores   []float64
	HistoricalProgress []float64
	Stats              Stats

	IsWearing bool
	OpenSince *time.Time
	Warnings  []string
}

type ExportInput struct {
	Dir  string
	Days int
}

type ExportOutput struct {
	Dir   string
	Paths []string
}
