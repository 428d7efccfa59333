// Package export writes season data to Excel workbooks.
package export

import (
	"fmt"
	"os"
	"path/filepath"
	"sync"

	"github.com/aluiziolira/mlb-stadium-stats/models"
	"github.com/xuri/excelize/v2"
)

// Sheet names inside an exported workbook.
const (
	SheetGames   = "Games_Data"
	SheetSummary = "Summary"
	SheetStadium = "Stadium_Info"
)

var gamesHeader = []string{
	"GameID",
	"GameDate",
	"DayNight",
	"GameType",
	"Season",
	"SeriesDescription",
	"SeriesGameNumber",
	"GameNumber",
	"DoubleHeader",
	"ScheduledInnings",
	"AwayTeam",
	"AwayTeamAbbr",
	"HomeTeam",
	"HomeTeamAbbr",
	"GameStatus",
	"StatusCode",
	"CurrentInning",
	"InningState",
	"AwayScore",
	"HomeScore",
	"AwayHits",
	"HomeHits",
	"AwayErrors",
	"HomeErrors",
	"AwayLeftOnBase",
	"HomeLeftOnBase",
	"Temperature",
	"Condition",
	"Wind",
	"WindSpeed",
	"WindDirection",
	"WinningPitcher",
	"WinningPitcherID",
	"LosingPitcher",
	"LosingPitcherID",
	"SavePitcher",
	"SavePitcherID",
	"Away_AtBats",
	"Away_Runs",
	"Away_Hits",
	"Away_RBI",
	"Away_BaseOnBalls",
	"Away_StrikeOuts",
	"Away_StolenBases",
	"Away_Doubles",
	"Away_Triples",
	"Away_HomeRuns",
	"Away_Pitches",
	"Away_Strikes",
	"Away_EarnedRuns",
	"Away_InningsPitched",
	"Away_PitchingHits",
	"Away_PitchingWalks",
	"Away_PitchingStrikeouts",
	"Home_AtBats",
	"Home_Runs",
	"Home_Hits",
	"Home_RBI",
	"Home_BaseOnBalls",
	"Home_StrikeOuts",
	"Home_StolenBases",
	"Home_Doubles",
	"Home_Triples",
	"Home_HomeRuns",
	"Home_Pitches",
	"Home_Strikes",
	"Home_EarnedRuns",
	"Home_InningsPitched",
	"Home_PitchingHits",
	"Home_PitchingWalks",
	"Home_PitchingStrikeouts",
	"Attendance",
	"GameDuration",
	"FirstPitch",
}

// XLSXWriter builds the workbook in memory and materializes it on disk
// only when Close saves it. The Summary and Stadium_Info sheets are
// created on first use.
type XLSXWriter struct {
	mu      sync.Mutex
	file    *excelize.File
	path    string
	nextRow int
	saved   bool
}

// NewXLSXWriter initialises a workbook with the games sheet and its
// header row.
func NewXLSXWriter(path string) (*XLSXWriter, error) {
	if err := ensureDir(path); err != nil {
		return nil, err
	}

	file := excelize.NewFile()
	if _, err := file.NewSheet(SheetGames); err != nil {
		file.Close()
		return nil, fmt.Errorf("create games sheet: %w", err)
	}
	if err := file.DeleteSheet("Sheet1"); err != nil {
		file.Close()
		return nil, fmt.Errorf("drop default sheet: %w", err)
	}
	index, err := file.GetSheetIndex(SheetGames)
	if err != nil {
		file.Close()
		return nil, fmt.Errorf("locate games sheet: %w", err)
	}
	file.SetActiveSheet(index)

	header := make([]interface{}, len(gamesHeader))
	for i, name := range gamesHeader {
		header[i] = name
	}
	if err := file.SetSheetRow(SheetGames, "A1", &header); err != nil {
		file.Close()
		return nil, fmt.Errorf("write games header: %w", err)
	}

	return &XLSXWriter{
		file:    file,
		path:    path,
		nextRow: 2,
	}, nil
}

// Write appends game records to the games sheet.
func (w *XLSXWriter) Write(records []*models.GameRecord) error {
	w.mu.Lock()
	defer w.mu.Unlock()

	for _, record := range records {
		if record == nil {
			continue
		}
		cell, err := excelize.CoordinatesToCellName(1, w.nextRow)
		if err != nil {
			return fmt.Errorf("games row cell: %w", err)
		}
		row := gameRow(record)
		if err := w.file.SetSheetRow(SheetGames, cell, &row); err != nil {
			return fmt.Errorf("write games row: %w", err)
		}
		w.nextRow++
	}
	return nil
}

// WriteSummary adds the season summary sheet.
func (w *XLSXWriter) WriteSummary(summary *models.SeasonSummary) error {
	w.mu.Lock()
	defer w.mu.Unlock()

	if _, err := w.file.NewSheet(SheetSummary); err != nil {
		return fmt.Errorf("create summary sheet: %w", err)
	}

	attendance := interface{}("N/A")
	if summary.AttendanceSamples > 0 {
		attendance = summary.AverageAttendance
	}
	duration := interface{}("N/A")
	if summary.DurationSamples > 0 {
		duration = summary.AverageDuration
	}

	rows := [][]interface{}{
		{"Metric", "Value"},
		{"Total Games", summary.TotalGames},
		{"Home Team Wins", summary.HomeWins},
		{"Away Team Wins", summary.AwayWins},
		{"Average Attendance", attendance},
		{"Total Runs Scored", summary.TotalRuns},
		{"Average Runs Per Game", summary.AverageRunsPerGame},
		{"Total Home Runs", summary.TotalHomeRuns},
		{"Average Game Duration (minutes)", duration},
		{"Day Games", summary.DayGames},
		{"Night Games", summary.NightGames},
	}
	return w.writeRows(SheetSummary, rows)
}

// WriteStadiumInfo adds the stadium details sheet. A nil venue skips the
// sheet entirely.
func (w *XLSXWriter) WriteStadiumInfo(venue *models.Venue, season string, gamesAnalyzed int) error {
	if venue == nil {
		return nil
	}

	w.mu.Lock()
	defer w.mu.Unlock()

	if _, err := w.file.NewSheet(SheetStadium); err != nil {
		return fmt.Errorf("create stadium sheet: %w", err)
	}

	rows := [][]interface{}{
		{"Attribute", "Value"},
		{"Stadium ID", venue.ID},
		{"Stadium Name", venue.Name},
		{"City", venue.Location.City},
		{"State", venue.Location.State},
		{"Latitude", venue.Location.DefaultCoordinates.Latitude},
		{"Longitude", venue.Location.DefaultCoordinates.Longitude},
		{"Field Info", venue.FieldInfo.Description},
		{"Season", season},
		{"Games Analyzed", gamesAnalyzed},
	}
	return w.writeRows(SheetStadium, rows)
}

// Close saves the workbook to its path and releases resources.
func (w *XLSXWriter) Close() error {
	w.mu.Lock()
	defer w.mu.Unlock()

	if err := w.file.SaveAs(w.path); err != nil {
		return fmt.Errorf("save workbook: %w", err)
	}
	w.saved = true
	return w.file.Close()
}

// Validate ensures the saved workbook exists and has content.
func (w *XLSXWriter) Validate() error {
	w.mu.Lock()
	defer w.mu.Unlock()

	if !w.saved {
		return fmt.Errorf("workbook has not been saved")
	}
	info, err := os.Stat(w.path)
	if err != nil {
		return fmt.Errorf("stat workbook: %w", err)
	}
	if info.Size() <= 0 {
		return fmt.Errorf("workbook is empty")
	}
	return nil
}

func (w *XLSXWriter) writeRows(sheet string, rows [][]interface{}) error {
	for i := range rows {
		cell, err := excelize.CoordinatesToCellName(1, i+1)
		if err != nil {
			return fmt.Errorf("%s row cell: %w", sheet, err)
		}
		if err := w.file.SetSheetRow(sheet, cell, &rows[i]); err != nil {
			return fmt.Errorf("write %s row: %w", sheet, err)
		}
	}
	return nil
}

func gameRow(r *models.GameRecord) []interface{} {
	gameDate := ""
	if !r.GameDate.IsZero() {
		gameDate = r.GameDate.Format("2006-01-02 15:04:05")
	}

	row := []interface{}{
		r.GameID,
		gameDate,
		r.DayNight,
		r.GameType,
		r.Season,
		r.SeriesDescription,
		r.SeriesGameNumber,
		r.GameNumber,
		r.DoubleHeader,
		r.ScheduledInnings,
		r.AwayTeam,
		r.AwayTeamAbbr,
		r.HomeTeam,
		r.HomeTeamAbbr,
		r.GameStatus,
		r.StatusCode,
		r.CurrentInning,
		r.InningState,
		r.AwayScore,
		r.HomeScore,
		r.AwayHits,
		r.HomeHits,
		r.AwayErrors,
		r.HomeErrors,
		r.AwayLeftOnBase,
		r.HomeLeftOnBase,
		r.Temperature,
		r.Condition,
		r.Wind,
		r.WindSpeed,
		r.WindDirection,
		r.WinningPitcher,
		r.WinningPitcherID,
		r.LosingPitcher,
		r.LosingPitcherID,
		r.SavePitcher,
		r.SavePitcherID,
	}
	row = append(row, sideValues(r.Away)...)
	row = append(row, sideValues(r.Home)...)
	row = append(row, r.Attendance, r.GameDuration, r.FirstPitch)
	return row
}

func sideValues(totals models.BoxscoreTotals) []interface{} {
	return []interface{}{
		totals.AtBats,
		totals.Runs,
		totals.Hits,
		totals.RBI,
		totals.BaseOnBalls,
		totals.StrikeOuts,
		totals.StolenBases,
		totals.Doubles,
		totals.Triples,
		totals.HomeRuns,
		totals.Pitches,
		totals.Strikes,
		totals.EarnedRuns,
		totals.InningsPitched,
		totals.PitchingHits,
		totals.PitchingWalks,
		totals.PitchingStrikeouts,
	}
}

func ensureDir(filename string) error {
	dir := filepath.Dir(filename)
	if dir == "" || dir == "." {
		return nil
	}
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return fmt.Errorf("create directory %q: %w", dir, err)
	}
	return nil
}
