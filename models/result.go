package models

import "time"

// ExportResult holds the overall outcome of one season export run.
type ExportResult struct {
	VenueID   int
	VenueName string
	Season    string

	StartTime time.Time
	EndTime   time.Time

	ScheduledGames int
	ExportedGames  int
	SkippedGames   int
	FailedGamePks  []int64
	ErrorsByType   map[string]int
	RequestCount   int

	OutputFile string
}
