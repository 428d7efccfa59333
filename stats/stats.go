// Package stats derives season-level summary figures from flattened
// game records.
package stats

import (
	"github.com/aluiziolira/mlb-stadium-stats/models"
	"github.com/aluiziolira/mlb-stadium-stats/parser"
)

// Summarize aggregates a season of game records. Attendance and duration
// averages only cover records that carry a parseable value, with the
// sample counts reported alongside. Tied scores count for neither side.
func Summarize(records []*models.GameRecord) *models.SeasonSummary {
	summary := &models.SeasonSummary{
		TotalGames: len(records),
	}

	var attendanceTotal float64
	var durationTotal float64

	for _, r := range records {
		if r == nil {
			continue
		}

		switch {
		case r.HomeScore > r.AwayScore:
			summary.HomeWins++
		case r.AwayScore > r.HomeScore:
			summary.AwayWins++
		}

		summary.TotalRuns += r.HomeScore + r.AwayScore
		summary.TotalHomeRuns += r.Home.HomeRuns + r.Away.HomeRuns

		if value, ok := parser.ParseNumber(r.Attendance); ok {
			attendanceTotal += value
			summary.AttendanceSamples++
		}
		if value, ok := parser.ParseNumber(r.GameDuration); ok {
			durationTotal += value
			summary.DurationSamples++
		}

		switch r.DayNight {
		case "day":
			summary.DayGames++
		case "night":
			summary.NightGames++
		}
	}

	if summary.TotalGames > 0 {
		summary.AverageRunsPerGame = float64(summary.TotalRuns) / float64(summary.TotalGames)
	}
	if summary.AttendanceSamples > 0 {
		summary.AverageAttendance = attendanceTotal / float64(summary.AttendanceSamples)
	}
	if summary.DurationSamples > 0 {
		summary.AverageDuration = durationTotal / float64(summary.DurationSamples)
	}

	return summary
}
