package parser

import (
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/aluiziolira/mlb-stadium-stats/models"
)

// FlattenGame merges a schedule entry and its boxscore into one flat
// record. A nil boxscore leaves the detailed-statistics fields at their
// zero values.
func FlattenGame(g *models.ScheduleGame, box *models.Boxscore) *models.GameRecord {
	if g == nil {
		return nil
	}

	record := &models.GameRecord{
		GameID:            g.GamePk,
		GameDate:          parseAPITime(g.GameDate),
		DayNight:          g.DayNight,
		GameType:          g.GameType,
		Season:            g.Season,
		SeriesDescription: g.SeriesDescription,
		SeriesGameNumber:  g.SeriesGameNumber,
		GameNumber:        defaultInt(g.GameNumber, 1),
		DoubleHeader:      defaultString(g.DoubleHeader, "N"),
		ScheduledInnings:  defaultInt(g.ScheduledInnings, 9),
		AwayTeam:          g.Teams.Away.Team.Name,
		AwayTeamAbbr:      g.Teams.Away.Team.Abbreviation,
		HomeTeam:          g.Teams.Home.Team.Name,
		HomeTeamAbbr:      g.Teams.Home.Team.Abbreviation,
		GameStatus:        g.Status.DetailedState,
		StatusCode:        g.Status.StatusCode,
	}

	if ls := g.Linescore; ls != nil {
		record.CurrentInning = ls.CurrentInning
		record.InningState = ls.InningState
		record.AwayScore = ls.Teams.Away.Runs
		record.HomeScore = ls.Teams.Home.Runs
		record.AwayHits = ls.Teams.Away.Hits
		record.HomeHits = ls.Teams.Home.Hits
		record.AwayErrors = ls.Teams.Away.Errors
		record.HomeErrors = ls.Teams.Home.Errors
		record.AwayLeftOnBase = ls.Teams.Away.LeftOnBase
		record.HomeLeftOnBase = ls.Teams.Home.LeftOnBase
	}

	if w := g.Weather; w != nil {
		record.Temperature = w.Temp
		record.Condition = w.Condition
		record.Wind = w.Wind
		record.WindSpeed = w.WindSpeed
		record.WindDirection = w.WindDirection
	}

	if d := g.Decisions; d != nil {
		if d.Winner != nil {
			record.WinningPitcher = d.Winner.FullName
			record.WinningPitcherID = d.Winner.ID
		}
		if d.Loser != nil {
			record.LosingPitcher = d.Loser.FullName
			record.LosingPitcherID = d.Loser.ID
		}
		if d.Save != nil {
			record.SavePitcher = d.Save.FullName
			record.SavePitcherID = d.Save.ID
		}
	}

	if box != nil {
		record.Away = flattenSide(box.Teams.Away)
		record.Home = flattenSide(box.Teams.Home)

		if info := box.GameInfo; info != nil {
			record.Attendance = formatCount(info.Attendance)
			record.GameDuration = formatCount(info.GameDurationMinutes)
			record.FirstPitch = NormalizeTimestamp(info.FirstPitch)
		}
	}

	return record
}

func flattenSide(team models.BoxscoreTeam) models.BoxscoreTotals {
	batting := team.TeamStats.Batting
	pitching := team.TeamStats.Pitching
	return models.BoxscoreTotals{
		AtBats:             batting.AtBats,
		Runs:               batting.Runs,
		Hits:               batting.Hits,
		RBI:                batting.RBI,
		BaseOnBalls:        batting.BaseOnBalls,
		StrikeOuts:         batting.StrikeOuts,
		StolenBases:        batting.StolenBases,
		Doubles:            batting.Doubles,
		Triples:            batting.Triples,
		HomeRuns:           batting.HomeRuns,
		Pitches:            pitching.NumberOfPitches,
		Strikes:            pitching.Strikes,
		EarnedRuns:         pitching.EarnedRuns,
		InningsPitched:     pitching.InningsPitched,
		PitchingHits:       pitching.Hits,
		PitchingWalks:      pitching.BaseOnBalls,
		PitchingStrikeouts: pitching.StrikeOuts,
	}
}

// ValidateGame ensures a flattened record carries the required fields.
func ValidateGame(r *models.GameRecord) error {
	if r == nil {
		return fmt.Errorf("game record is nil")
	}
	if r.GameID <= 0 {
		return fmt.Errorf("game record missing gamePk")
	}
	return nil
}

// ParseNumber reads a numeric string that may carry thousands separators,
// as attendance figures sometimes do.
func ParseNumber(s string) (float64, bool) {
	s = strings.TrimSpace(s)
	if s == "" {
		return 0, false
	}
	s = strings.ReplaceAll(s, ",", "")
	value, err := strconv.ParseFloat(s, 64)
	if err != nil {
		return 0, false
	}
	return value, true
}

// NormalizeTimestamp rewrites an RFC 3339 timestamp as a naive UTC string
// suitable for a spreadsheet cell. Unparseable input yields an empty
// string.
func NormalizeTimestamp(s string) string {
	t, err := time.Parse(time.RFC3339, s)
	if err != nil {
		return ""
	}
	return t.UTC().Format("2006-01-02 15:04:05")
}

func parseAPITime(s string) time.Time {
	t, err := time.Parse(time.RFC3339, s)
	if err != nil {
		return time.Time{}
	}
	return t.UTC()
}

func defaultInt(v, fallback int) int {
	if v == 0 {
		return fallback
	}
	return v
}

func defaultString(v, fallback string) string {
	if v == "" {
		return fallback
	}
	return v
}

func formatCount(v *int) string {
	if v == nil {
		return ""
	}
	return strconv.Itoa(*v)
}
