package models

// Boxscore is the subset of the boxscore endpoint consumed for the export.
type Boxscore struct {
	Teams    BoxscoreTeams `json:"teams"`
	GameInfo *GameInfo     `json:"gameInfo"`
}

// BoxscoreTeams holds both sides' aggregate statistics.
type BoxscoreTeams struct {
	Away BoxscoreTeam `json:"away"`
	Home BoxscoreTeam `json:"home"`
}

// BoxscoreTeam is one side's team-level statistics.
type BoxscoreTeam struct {
	TeamStats TeamStats `json:"teamStats"`
}

// TeamStats groups a team's batting and pitching totals.
type TeamStats struct {
	Batting  BattingStats  `json:"batting"`
	Pitching PitchingStats `json:"pitching"`
}

// BattingStats are a team's offensive totals for one game.
type BattingStats struct {
	AtBats      int `json:"atBats"`
	Runs        int `json:"runs"`
	Hits        int `json:"hits"`
	RBI         int `json:"rbi"`
	BaseOnBalls int `json:"baseOnBalls"`
	StrikeOuts  int `json:"strikeOuts"`
	StolenBases int `json:"stolenBases"`
	Doubles     int `json:"doubles"`
	Triples     int `json:"triples"`
	HomeRuns    int `json:"homeRuns"`
}

// PitchingStats are a team's pitching totals for one game. Innings pitched
// arrives as a string ("8.2") and is carried through unchanged.
type PitchingStats struct {
	NumberOfPitches int    `json:"numberOfPitches"`
	Strikes         int    `json:"strikes"`
	EarnedRuns      int    `json:"earnedRuns"`
	InningsPitched  string `json:"inningsPitched"`
	Hits            int    `json:"hits"`
	BaseOnBalls     int    `json:"baseOnBalls"`
	StrikeOuts      int    `json:"strikeOuts"`
}

// GameInfo is the attendance/duration footer of a boxscore. Attendance and
// duration are pointers so a missing value is distinguishable from zero.
type GameInfo struct {
	Attendance          *int   `json:"attendance"`
	GameDurationMinutes *int   `json:"gameDurationMinutes"`
	FirstPitch          string `json:"firstPitch"`
}
