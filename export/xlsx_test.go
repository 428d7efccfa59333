package export

import (
	"path/filepath"
	"testing"
	"time"

	"github.com/aluiziolira/mlb-stadium-stats/models"
	"github.com/xuri/excelize/v2"
)

func recordFixtures() []*models.GameRecord {
	return []*models.GameRecord{
		{
			GameID:           745001,
			GameDate:         time.Date(2024, 6, 1, 23, 10, 0, 0, time.UTC),
			DayNight:         "night",
			GameType:         "R",
			Season:           "2024",
			GameNumber:       1,
			DoubleHeader:     "N",
			ScheduledInnings: 9,
			AwayTeam:         "Boston Red Sox",
			AwayTeamAbbr:     "BOS",
			HomeTeam:         "Tampa Bay Rays",
			HomeTeamAbbr:     "TB",
			GameStatus:       "Final",
			StatusCode:       "F",
			AwayScore:        2,
			HomeScore:        5,
			Away:             models.BoxscoreTotals{AtBats: 33, HomeRuns: 1, InningsPitched: "8.0"},
			Home:             models.BoxscoreTotals{AtBats: 31, HomeRuns: 2, InningsPitched: "9.0"},
			Attendance:       "17291",
			GameDuration:     "165",
			FirstPitch:       "2024-06-01 23:10:00",
		},
		{
			GameID:           745002,
			GameDate:         time.Date(2024, 6, 2, 17, 10, 0, 0, time.UTC),
			DayNight:         "day",
			GameType:         "R",
			Season:           "2024",
			GameNumber:       1,
			DoubleHeader:     "N",
			ScheduledInnings: 9,
			AwayTeam:         "Boston Red Sox",
			AwayTeamAbbr:     "BOS",
			HomeTeam:         "Tampa Bay Rays",
			HomeTeamAbbr:     "TB",
			GameStatus:       "Final",
			StatusCode:       "F",
			AwayScore:        7,
			HomeScore:        3,
		},
	}
}

func venueFixture() *models.Venue {
	return &models.Venue{
		ID:   15,
		Name: "Tropicana Field",
		Location: models.VenueLocation{
			City:               "St. Petersburg",
			State:              "FL",
			DefaultCoordinates: models.Coordinates{Latitude: 27.767778, Longitude: -82.6525},
		},
		FieldInfo: models.VenueFieldInfo{Description: "Dome stadium with artificial turf"},
	}
}

func TestXLSXWriterWorkbook(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "season.xlsx")

	writer, err := NewXLSXWriter(path)
	if err != nil {
		t.Fatalf("create xlsx writer: %v", err)
	}

	if err := writer.Write(recordFixtures()); err != nil {
		t.Fatalf("write games: %v", err)
	}
	summary := &models.SeasonSummary{
		TotalGames:         2,
		HomeWins:           1,
		AwayWins:           1,
		AverageAttendance:  17291,
		AttendanceSamples:  1,
		TotalRuns:          17,
		AverageRunsPerGame: 8.5,
		TotalHomeRuns:      3,
		AverageDuration:    165,
		DurationSamples:    1,
		DayGames:           1,
		NightGames:         1,
	}
	if err := writer.WriteSummary(summary); err != nil {
		t.Fatalf("write summary: %v", err)
	}
	if err := writer.WriteStadiumInfo(venueFixture(), "2024", 2); err != nil {
		t.Fatalf("write stadium info: %v", err)
	}
	if err := writer.Close(); err != nil {
		t.Fatalf("close writer: %v", err)
	}
	if err := writer.Validate(); err != nil {
		t.Fatalf("validate writer: %v", err)
	}

	file, err := excelize.OpenFile(path)
	if err != nil {
		t.Fatalf("reopen workbook: %v", err)
	}
	defer file.Close()

	sheets := file.GetSheetList()
	want := map[string]bool{SheetGames: true, SheetSummary: true, SheetStadium: true}
	for _, sheet := range sheets {
		delete(want, sheet)
	}
	if len(want) != 0 {
		t.Fatalf("missing sheets %v in %v", want, sheets)
	}

	rows, err := file.GetRows(SheetGames)
	if err != nil {
		t.Fatalf("read games rows: %v", err)
	}
	if len(rows) != 3 {
		t.Fatalf("games rows = %d, want header + 2", len(rows))
	}
	if len(rows[0]) != len(gamesHeader) {
		t.Fatalf("header columns = %d, want %d", len(rows[0]), len(gamesHeader))
	}
	if rows[0][0] != "GameID" || rows[0][len(rows[0])-1] != "FirstPitch" {
		t.Fatalf("unexpected header bounds: %q..%q", rows[0][0], rows[0][len(rows[0])-1])
	}

	checks := map[string]string{
		"A2":  "745001",
		"B2":  "2024-06-01 23:10:00",
		"M2":  "Tampa Bay Rays",
		"T2":  "5",
		"AL2": "33",
		"BT2": "17291",
		"A3":  "745002",
	}
	for cell, wantValue := range checks {
		got, err := file.GetCellValue(SheetGames, cell)
		if err != nil {
			t.Fatalf("read cell %s: %v", cell, err)
		}
		if got != wantValue {
			t.Fatalf("cell %s = %q, want %q", cell, got, wantValue)
		}
	}

	summaryChecks := map[string]string{
		"A1":  "Metric",
		"B1":  "Value",
		"A2":  "Total Games",
		"B2":  "2",
		"A5":  "Average Attendance",
		"B5":  "17291",
		"B7":  "8.5",
		"A9":  "Average Game Duration (minutes)",
		"A11": "Night Games",
		"B11": "1",
	}
	for cell, wantValue := range summaryChecks {
		got, err := file.GetCellValue(SheetSummary, cell)
		if err != nil {
			t.Fatalf("read summary cell %s: %v", cell, err)
		}
		if got != wantValue {
			t.Fatalf("summary cell %s = %q, want %q", cell, got, wantValue)
		}
	}

	stadiumChecks := map[string]string{
		"A1":  "Attribute",
		"B2":  "15",
		"B3":  "Tropicana Field",
		"B4":  "St. Petersburg",
		"A10": "Games Analyzed",
		"B10": "2",
	}
	for cell, wantValue := range stadiumChecks {
		got, err := file.GetCellValue(SheetStadium, cell)
		if err != nil {
			t.Fatalf("read stadium cell %s: %v", cell, err)
		}
		if got != wantValue {
			t.Fatalf("stadium cell %s = %q, want %q", cell, got, wantValue)
		}
	}
}

func TestXLSXWriterSummaryNA(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "season.xlsx")

	writer, err := NewXLSXWriter(path)
	if err != nil {
		t.Fatalf("create xlsx writer: %v", err)
	}
	summary := &models.SeasonSummary{TotalGames: 1, TotalRuns: 4, AverageRunsPerGame: 4}
	if err := writer.WriteSummary(summary); err != nil {
		t.Fatalf("write summary: %v", err)
	}
	if err := writer.Close(); err != nil {
		t.Fatalf("close writer: %v", err)
	}

	file, err := excelize.OpenFile(path)
	if err != nil {
		t.Fatalf("reopen workbook: %v", err)
	}
	defer file.Close()

	for _, cell := range []string{"B5", "B9"} {
		got, err := file.GetCellValue(SheetSummary, cell)
		if err != nil {
			t.Fatalf("read cell %s: %v", cell, err)
		}
		if got != "N/A" {
			t.Fatalf("cell %s = %q, want N/A without samples", cell, got)
		}
	}
}

func TestXLSXWriterOmitsUnwrittenSheets(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "season.xlsx")

	writer, err := NewXLSXWriter(path)
	if err != nil {
		t.Fatalf("create xlsx writer: %v", err)
	}
	if err := writer.WriteStadiumInfo(venueFixture(), "2024", 0); err != nil {
		t.Fatalf("write stadium info: %v", err)
	}
	if err := writer.Close(); err != nil {
		t.Fatalf("close writer: %v", err)
	}

	file, err := excelize.OpenFile(path)
	if err != nil {
		t.Fatalf("reopen workbook: %v", err)
	}
	defer file.Close()

	for _, sheet := range file.GetSheetList() {
		if sheet == SheetSummary {
			t.Fatalf("summary sheet should not exist when never written")
		}
	}
}

func TestXLSXWriterValidateBeforeClose(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "season.xlsx")

	writer, err := NewXLSXWriter(path)
	if err != nil {
		t.Fatalf("create xlsx writer: %v", err)
	}
	if err := writer.Validate(); err == nil {
		t.Fatalf("validate should fail before the workbook is saved")
	}
	if err := writer.Close(); err != nil {
		t.Fatalf("close writer: %v", err)
	}
	if err := writer.Validate(); err != nil {
		t.Fatalf("validate after close: %v", err)
	}
}

func TestWriteStadiumDirectory(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "stadiums.xlsx")

	venues := []models.Venue{*venueFixture()}
	if err := WriteStadiumDirectory(path, venues); err != nil {
		t.Fatalf("write stadium directory: %v", err)
	}

	file, err := excelize.OpenFile(path)
	if err != nil {
		t.Fatalf("reopen workbook: %v", err)
	}
	defer file.Close()

	rows, err := file.GetRows("Stadiums")
	if err != nil {
		t.Fatalf("read stadium rows: %v", err)
	}
	if len(rows) != 2 {
		t.Fatalf("stadium rows = %d, want header + 1", len(rows))
	}
	if rows[0][0] != "StadiumID" || rows[0][1] != "StadiumName" {
		t.Fatalf("unexpected header: %v", rows[0])
	}
	if rows[1][0] != "15" || rows[1][1] != "Tropicana Field" {
		t.Fatalf("unexpected venue row: %v", rows[1])
	}
}
