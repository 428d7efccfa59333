package models

// ScheduleResponse is the envelope returned by the schedule endpoint,
// grouping games by calendar date.
type ScheduleResponse struct {
	TotalGames int            `json:"totalGames"`
	Dates      []ScheduleDate `json:"dates"`
}

// ScheduleDate holds the games played on one date.
type ScheduleDate struct {
	Date  string         `json:"date"`
	Games []ScheduleGame `json:"games"`
}

// ScheduleGame is one schedule entry, hydrated with teams, linescore,
// weather, and pitching decisions. Optional blocks are pointers so their
// absence is distinguishable from zero values.
type ScheduleGame struct {
	GamePk            int64         `json:"gamePk"`
	GameDate          string        `json:"gameDate"`
	DayNight          string        `json:"dayNight"`
	GameType          string        `json:"gameType"`
	Season            string        `json:"season"`
	SeriesDescription string        `json:"seriesDescription"`
	SeriesGameNumber  int           `json:"seriesGameNumber"`
	GameNumber        int           `json:"gameNumber"`
	DoubleHeader      string        `json:"doubleHeader"`
	ScheduledInnings  int           `json:"scheduledInnings"`
	Status            GameStatus    `json:"status"`
	Teams             ScheduleTeams `json:"teams"`
	Linescore         *Linescore    `json:"linescore"`
	Weather           *Weather      `json:"weather"`
	Decisions         *Decisions    `json:"decisions"`
}

// GameStatus mirrors the status block of a schedule entry.
type GameStatus struct {
	DetailedState string `json:"detailedState"`
	StatusCode    string `json:"statusCode"`
}

// ScheduleTeams holds both sides of a matchup.
type ScheduleTeams struct {
	Away ScheduleTeam `json:"away"`
	Home ScheduleTeam `json:"home"`
}

// ScheduleTeam is one side's team reference.
type ScheduleTeam struct {
	Team Team `json:"team"`
}

// Team identifies an MLB club.
type Team struct {
	ID           int64  `json:"id"`
	Name         string `json:"name"`
	Abbreviation string `json:"abbreviation"`
}

// Linescore is the running score block of a schedule entry.
type Linescore struct {
	CurrentInning int            `json:"currentInning"`
	InningState   string         `json:"inningState"`
	Teams         LinescoreTeams `json:"teams"`
}

// LinescoreTeams holds both sides' line totals.
type LinescoreTeams struct {
	Away LinescoreTotals `json:"away"`
	Home LinescoreTotals `json:"home"`
}

// LinescoreTotals are one side's line totals for a game.
type LinescoreTotals struct {
	Runs       int `json:"runs"`
	Hits       int `json:"hits"`
	Errors     int `json:"errors"`
	LeftOnBase int `json:"leftOnBase"`
}

// Weather is the game-time weather block. The API reports all values as
// free-form strings.
type Weather struct {
	Temp          string `json:"temp"`
	Condition     string `json:"condition"`
	Wind          string `json:"wind"`
	WindSpeed     string `json:"windSpeed"`
	WindDirection string `json:"windDirection"`
}

// Decisions names the pitchers of record for a completed game.
type Decisions struct {
	Winner *Person `json:"winner"`
	Loser  *Person `json:"loser"`
	Save   *Person `json:"save"`
}

// Person is a player reference.
type Person struct {
	ID       int64  `json:"id"`
	FullName string `json:"fullName"`
}
