package models

import "time"

// GameRecord is one game flattened into the wide row written to the
// Games_Data sheet. Boxscore-derived fields keep their zero values for
// games without detailed statistics.
type GameRecord struct {
	GameID            int64
	GameDate          time.Time
	DayNight          string
	GameType          string
	Season            string
	SeriesDescription string
	SeriesGameNumber  int
	GameNumber        int
	DoubleHeader      string
	ScheduledInnings  int

	AwayTeam     string
	AwayTeamAbbr string
	HomeTeam     string
	HomeTeamAbbr string

	GameStatus string
	StatusCode string

	CurrentInning  int
	InningState    string
	AwayScore      int
	HomeScore      int
	AwayHits       int
	HomeHits       int
	AwayErrors     int
	HomeErrors     int
	AwayLeftOnBase int
	HomeLeftOnBase int

	Temperature   string
	Condition     string
	Wind          string
	WindSpeed     string
	WindDirection string

	WinningPitcher   string
	WinningPitcherID int64
	LosingPitcher    string
	LosingPitcherID  int64
	SavePitcher      string
	SavePitcherID    int64

	Away BoxscoreTotals
	Home BoxscoreTotals

	// Attendance and GameDuration stay empty when the boxscore carried no
	// value, so averages can tell "missing" apart from zero.
	Attendance   string
	GameDuration string
	FirstPitch   string
}

// BoxscoreTotals are one side's flattened batting and pitching totals.
type BoxscoreTotals struct {
	AtBats      int
	Runs        int
	Hits        int
	RBI         int
	BaseOnBalls int
	StrikeOuts  int
	StolenBases int
	Doubles     int
	Triples     int
	HomeRuns    int

	Pitches            int
	Strikes            int
	EarnedRuns         int
	InningsPitched     string
	PitchingHits       int
	PitchingWalks      int
	PitchingStrikeouts int
}
