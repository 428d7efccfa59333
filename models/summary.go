package models

// SeasonSummary is the reduction over a season's game records rendered on
// the Summary sheet. Averages over optional fields are meaningful only when
// the matching sample count is positive.
type SeasonSummary struct {
	TotalGames int
	HomeWins   int
	AwayWins   int

	AverageAttendance float64
	AttendanceSamples int

	TotalRuns          int
	AverageRunsPerGame float64
	TotalHomeRuns      int

	AverageDuration float64
	DurationSamples int

	DayGames   int
	NightGames int
}
