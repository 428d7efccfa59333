package pipeline

import "github.com/aluiziolira/mlb-stadium-stats/models"

// Reporter receives progress callbacks while a season export runs. The
// console frontend implements it to print per-game progress.
type Reporter interface {
	OnVenueResolved(venue *models.Venue)
	OnScheduleFetched(venueID int, season string, games int)
	OnGameStart(index, total int, gamePk int64)
	OnGameExported(gamePk int64)
	OnGameSkipped(gamePk int64, err error)
	OnComplete(result *models.ExportResult)
}

// NopReporter discards all progress callbacks.
type NopReporter struct{}

func (NopReporter) OnVenueResolved(*models.Venue)      {}
func (NopReporter) OnScheduleFetched(int, string, int) {}
func (NopReporter) OnGameStart(int, int, int64)        {}
func (NopReporter) OnGameExported(int64)               {}
func (NopReporter) OnGameSkipped(int64, error)         {}
func (NopReporter) OnComplete(*models.ExportResult)    {}
