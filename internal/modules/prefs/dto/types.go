package dto

type PreferencesOutput struct {
	GoalHours  float64
	DayStartAt string
	// GoalIsDefault and DayStartIsDefault are set for values that come
	// from configuration rather than the preference store.
	GoalIsDefault     bool
	DayStartIsDefault bool
}

type SetGoalInput struct {
	Hours float64
}

type SetDayStartInput struct {
	At string
}
