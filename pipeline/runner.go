package pipeline

import (
	"context"
	"fmt"
	"log/slog"
	"sort"
	"time"

	"github.com/aluiziolira/mlb-stadium-stats/config"
	"github.com/aluiziolira/mlb-stadium-stats/export"
	"github.com/aluiziolira/mlb-stadium-stats/models"
	"github.com/aluiziolira/mlb-stadium-stats/parser"
	"github.com/aluiziolira/mlb-stadium-stats/stats"
	"github.com/aluiziolira/mlb-stadium-stats/statsapi"
)

// Boxscores are only fetched for games in this final state.
const statusFinal = "F"

// OutputWriter defines the interface for export output.
type OutputWriter interface {
	Write(records []*models.GameRecord) error
	WriteSummary(summary *models.SeasonSummary) error
	WriteStadiumInfo(venue *models.Venue, season string, gamesAnalyzed int) error
	Close() error
	Validate() error
}

// WriterFactory builds the output writer once the export path is known.
type WriterFactory func(path string) (OutputWriter, error)

// Runner drives one season export end to end: venue lookup, schedule
// fetch, sequential boxscore fetches, aggregation, and the workbook
// write. Zero-valued optional fields fall back to working defaults.
type Runner struct {
	Client    *statsapi.Client
	Config    *config.Config
	Reporter  Reporter
	NewWriter WriterFactory
	Now       func() time.Time
}

// Run executes the export. A venue that cannot be resolved or a failed
// schedule fetch aborts the run; individual boxscore failures skip the
// game and continue. A season with no games succeeds without creating
// a file.
func (r *Runner) Run(ctx context.Context, venueID int, season string) (*models.ExportResult, error) {
	if ctx == nil {
		ctx = context.Background()
	}
	reporter := r.Reporter
	if reporter == nil {
		reporter = NopReporter{}
	}
	now := r.Now
	if now == nil {
		now = time.Now
	}
	newWriter := r.NewWriter
	if newWriter == nil {
		newWriter = func(path string) (OutputWriter, error) {
			return export.NewXLSXWriter(path)
		}
	}

	result := &models.ExportResult{
		VenueID:      venueID,
		Season:       season,
		StartTime:    now(),
		ErrorsByType: make(map[string]int),
	}

	venue, err := r.Client.Venue(ctx, venueID)
	if err != nil {
		return nil, err
	}
	result.VenueName = venue.Name
	reporter.OnVenueResolved(venue)

	games, err := r.Client.Schedule(ctx, venueID, season)
	if err != nil {
		return nil, fmt.Errorf("fetch schedule: %w", err)
	}
	result.ScheduledGames = len(games)
	reporter.OnScheduleFetched(venueID, season, len(games))

	if len(games) == 0 {
		result.RequestCount = r.Client.RequestCount()
		result.EndTime = now()
		reporter.OnComplete(result)
		return result, nil
	}

	pipe, err := NewPipeline(r.Config.DedupeMaxSize)
	if err != nil {
		return nil, fmt.Errorf("create pipeline: %w", err)
	}
	pipe.Start(1)
	if r.Config.Verbose {
		pipe.StartMetricsReporting(10 * time.Second)
	}

	total := len(games)
	for i := range games {
		game := &games[i]

		if err := ctx.Err(); err != nil {
			pipe.Close()
			return nil, err
		}

		reporter.OnGameStart(i+1, total, game.GamePk)

		var box *models.Boxscore
		if game.Status.StatusCode == statusFinal {
			fetched, err := r.Client.Boxscore(ctx, game.GamePk)
			if err != nil {
				category := statsapi.ErrorTypeLabel(err)
				result.SkippedGames++
				result.FailedGamePks = append(result.FailedGamePks, game.GamePk)
				result.ErrorsByType[category]++
				r.Client.Metrics.IncSkipped()
				slog.Error("boxscore fetch failed, skipping game",
					slog.Int64("game_pk", game.GamePk),
					slog.String("category", category),
					slog.Any("error", err),
				)
				reporter.OnGameSkipped(game.GamePk, err)
				continue
			}
			box = fetched
		}

		record := parser.FlattenGame(game, box)
		if err := pipe.Process(record); err != nil {
			slog.Error("pipeline process error", slog.Any("error", err))
			continue
		}
		reporter.OnGameExported(game.GamePk)
	}

	if err := pipe.Close(); err != nil {
		return nil, fmt.Errorf("close pipeline: %w", err)
	}

	records := pipe.Records()
	sort.SliceStable(records, func(i, j int) bool {
		return records[i].GameDate.Before(records[j].GameDate)
	})

	result.ExportedGames = len(records)
	r.Client.Metrics.AddExported(len(records))

	venueName := venue.Name
	if venueName == "" {
		venueName = fmt.Sprintf("Stadium_%d", venueID)
	}
	outputPath := export.UniquePath(r.Config.OutputDir, venueName, season, now())

	writer, err := newWriter(outputPath)
	if err != nil {
		return nil, fmt.Errorf("create output writer: %w", err)
	}
	result.OutputFile = outputPath

	if err := writer.Write(records); err != nil {
		return nil, fmt.Errorf("write games: %w", err)
	}
	if len(records) > 0 {
		if err := writer.WriteSummary(stats.Summarize(records)); err != nil {
			return nil, fmt.Errorf("write summary: %w", err)
		}
	}
	if err := writer.WriteStadiumInfo(venue, season, len(records)); err != nil {
		return nil, fmt.Errorf("write stadium info: %w", err)
	}
	if err := writer.Close(); err != nil {
		return nil, fmt.Errorf("save workbook: %w", err)
	}
	if err := writer.Validate(); err != nil {
		return nil, fmt.Errorf("validate workbook: %w", err)
	}

	result.RequestCount = r.Client.RequestCount()
	result.EndTime = now()
	reporter.OnComplete(result)
	return result, nil
}
