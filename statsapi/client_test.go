package statsapi

import (
	"context"
	"errors"
	"net"
	"net/http"
	"net/url"
	"testing"

	"github.com/aluiziolira/mlb-stadium-stats/config"
	"github.com/jarcoal/httpmock"
)

const venueFixture = `{
	"venues": [
		{
			"id": 15,
			"name": "Tropicana Field",
			"location": {
				"city": "St. Petersburg",
				"state": "FL",
				"defaultCoordinates": {"latitude": 27.767778, "longitude": -82.6525}
			},
			"fieldInfo": {"description": "Dome stadium with artificial turf"}
		}
	]
}`

const scheduleFixture = `{
	"totalGames": 3,
	"dates": [
		{
			"date": "2024-06-01",
			"games": [
				{
					"gamePk": 745001,
					"gameDate": "2024-06-01T23:10:00Z",
					"dayNight": "night",
					"gameType": "R",
					"season": "2024",
					"status": {"detailedState": "Final", "statusCode": "F"},
					"teams": {
						"away": {"team": {"id": 111, "name": "Boston Red Sox", "abbreviation": "BOS"}},
						"home": {"team": {"id": 139, "name": "Tampa Bay Rays", "abbreviation": "TB"}}
					}
				},
				{
					"gamePk": 745002,
					"gameDate": "2024-06-01T17:10:00Z",
					"dayNight": "day",
					"gameType": "R",
					"season": "2024",
					"status": {"detailedState": "Final", "statusCode": "F"},
					"teams": {
						"away": {"team": {"id": 111, "name": "Boston Red Sox", "abbreviation": "BOS"}},
						"home": {"team": {"id": 139, "name": "Tampa Bay Rays", "abbreviation": "TB"}}
					}
				}
			]
		},
		{
			"date": "2024-06-02",
			"games": [
				{
					"gamePk": 745003,
					"gameDate": "2024-06-02T17:10:00Z",
					"dayNight": "day",
					"gameType": "R",
					"season": "2024",
					"status": {"detailedState": "Scheduled", "statusCode": "S"},
					"teams": {
						"away": {"team": {"id": 111, "name": "Boston Red Sox", "abbreviation": "BOS"}},
						"home": {"team": {"id": 139, "name": "Tampa Bay Rays", "abbreviation": "TB"}}
					}
				}
			]
		}
	]
}`

const boxscoreFixture = `{
	"teams": {
		"away": {
			"teamStats": {
				"batting": {"atBats": 33, "runs": 2, "hits": 7, "rbi": 2, "baseOnBalls": 3, "strikeOuts": 9, "stolenBases": 1, "doubles": 2, "triples": 0, "homeRuns": 1},
				"pitching": {"numberOfPitches": 142, "strikes": 90, "earnedRuns": 5, "inningsPitched": "8.0", "hits": 10, "baseOnBalls": 2, "strikeOuts": 7}
			}
		},
		"home": {
			"teamStats": {
				"batting": {"atBats": 31, "runs": 5, "hits": 10, "rbi": 5, "baseOnBalls": 2, "strikeOuts": 7, "stolenBases": 0, "doubles": 3, "triples": 1, "homeRuns": 2},
				"pitching": {"numberOfPitches": 128, "strikes": 85, "earnedRuns": 2, "inningsPitched": "9.0", "hits": 7, "baseOnBalls": 3, "strikeOuts": 9}
			}
		}
	},
	"gameInfo": {"attendance": 17291, "gameDurationMinutes": 165, "firstPitch": "2024-06-01T23:10:00Z"}
}`

func newTestClient(t *testing.T) (*Client, *httpmock.MockTransport) {
	t.Helper()

	cfg := config.DefaultConfig()
	cfg.Delay = 0

	client, err := NewClient(cfg)
	if err != nil {
		t.Fatalf("new client: %v", err)
	}

	transport := httpmock.NewMockTransport()
	client.WithTransport(transport)
	return client, transport
}

func TestVenueResolvesStadium(t *testing.T) {
	client, transport := newTestClient(t)
	transport.RegisterResponder("GET", `=~^https://statsapi\.mlb\.com/api/v1/venues/15`,
		httpmock.NewStringResponder(200, venueFixture))

	venue, err := client.Venue(context.Background(), 15)
	if err != nil {
		t.Fatalf("venue: %v", err)
	}
	if venue.ID != 15 || venue.Name != "Tropicana Field" {
		t.Fatalf("venue = %d/%q, want 15/Tropicana Field", venue.ID, venue.Name)
	}
	if venue.Location.City != "St. Petersburg" || venue.Location.State != "FL" {
		t.Fatalf("location = %q/%q, want St. Petersburg/FL", venue.Location.City, venue.Location.State)
	}
	if venue.Location.DefaultCoordinates.Latitude != 27.767778 {
		t.Fatalf("latitude = %v, want 27.767778", venue.Location.DefaultCoordinates.Latitude)
	}
	if venue.FieldInfo.Description == "" {
		t.Fatalf("field info description should not be empty")
	}
}

func TestVenueNotFoundOnEmptyList(t *testing.T) {
	client, transport := newTestClient(t)
	transport.RegisterResponder("GET", `=~^https://statsapi\.mlb\.com/api/v1/venues/999`,
		httpmock.NewStringResponder(200, `{"venues": []}`))

	_, err := client.Venue(context.Background(), 999)
	var notFound ErrVenueNotFound
	if !errors.As(err, &notFound) {
		t.Fatalf("expected ErrVenueNotFound, got %v", err)
	}
	if got := err.Error(); got != "could not find stadium with ID 999" {
		t.Fatalf("error message = %q, want %q", got, "could not find stadium with ID 999")
	}
}

func TestVenueNotFoundOnHTTP404(t *testing.T) {
	client, transport := newTestClient(t)
	transport.RegisterResponder("GET", `=~^https://statsapi\.mlb\.com/api/v1/venues/999`,
		httpmock.NewStringResponder(404, `{"messageNumber": 10, "message": "Object not found"}`))

	_, err := client.Venue(context.Background(), 999)
	var notFound ErrVenueNotFound
	if !errors.As(err, &notFound) {
		t.Fatalf("expected ErrVenueNotFound, got %v", err)
	}
	if notFound.ID != 999 {
		t.Fatalf("not found ID = %d, want 999", notFound.ID)
	}
}

func TestScheduleFlattensDatesAndSendsParams(t *testing.T) {
	client, transport := newTestClient(t)

	var gotQuery url.Values
	var gotAgent string
	transport.RegisterResponder("GET", `=~^https://statsapi\.mlb\.com/api/v1/schedule`,
		func(req *http.Request) (*http.Response, error) {
			gotQuery = req.URL.Query()
			gotAgent = req.Header.Get("User-Agent")
			return httpmock.NewStringResponse(200, scheduleFixture), nil
		})

	games, err := client.Schedule(context.Background(), 15, "2024")
	if err != nil {
		t.Fatalf("schedule: %v", err)
	}
	if len(games) != 3 {
		t.Fatalf("games = %d, want 3", len(games))
	}
	if games[0].GamePk != 745001 || games[2].GamePk != 745003 {
		t.Fatalf("game order = %d..%d, want 745001..745003", games[0].GamePk, games[2].GamePk)
	}
	if games[2].Status.StatusCode != "S" {
		t.Fatalf("status code = %q, want S", games[2].Status.StatusCode)
	}

	params := map[string]string{
		"sportId":  "1",
		"season":   "2024",
		"venueIds": "15",
		"gameType": "R,F,D,L,W",
		"hydrate":  "team,linescore,decisions,person,probablePitcher,stats,weather,broadcasts",
	}
	for key, want := range params {
		if got := gotQuery.Get(key); got != want {
			t.Fatalf("query %s = %q, want %q", key, got, want)
		}
	}
	if gotAgent != "Stadium-Season-Stats-Exporter/1.0" {
		t.Fatalf("user agent = %q, want Stadium-Season-Stats-Exporter/1.0", gotAgent)
	}
}

func TestScheduleEmptySeason(t *testing.T) {
	client, transport := newTestClient(t)
	transport.RegisterResponder("GET", `=~^https://statsapi\.mlb\.com/api/v1/schedule`,
		httpmock.NewStringResponder(200, `{"totalGames": 0, "dates": []}`))

	games, err := client.Schedule(context.Background(), 15, "2024")
	if err != nil {
		t.Fatalf("schedule: %v", err)
	}
	if len(games) != 0 {
		t.Fatalf("games = %d, want 0", len(games))
	}
}

func TestBoxscoreDecodesTotals(t *testing.T) {
	client, transport := newTestClient(t)
	transport.RegisterResponder("GET", `=~^https://statsapi\.mlb\.com/api/v1/game/745001/boxscore`,
		httpmock.NewStringResponder(200, boxscoreFixture))

	box, err := client.Boxscore(context.Background(), 745001)
	if err != nil {
		t.Fatalf("boxscore: %v", err)
	}
	if got := box.Teams.Home.TeamStats.Batting.Runs; got != 5 {
		t.Fatalf("home runs scored = %d, want 5", got)
	}
	if got := box.Teams.Away.TeamStats.Pitching.InningsPitched; got != "8.0" {
		t.Fatalf("away innings pitched = %q, want 8.0", got)
	}
	if box.GameInfo == nil || box.GameInfo.Attendance == nil {
		t.Fatalf("game info attendance should be present")
	}
	if got := *box.GameInfo.Attendance; got != 17291 {
		t.Fatalf("attendance = %d, want 17291", got)
	}
}

func TestBoxscoreMissingGameInfo(t *testing.T) {
	client, transport := newTestClient(t)
	transport.RegisterResponder("GET", `=~^https://statsapi\.mlb\.com/api/v1/game/745001/boxscore`,
		httpmock.NewStringResponder(200, `{"teams": {"away": {}, "home": {}}}`))

	box, err := client.Boxscore(context.Background(), 745001)
	if err != nil {
		t.Fatalf("boxscore: %v", err)
	}
	if box.GameInfo != nil {
		t.Fatalf("game info should be nil when absent")
	}
}

func TestMalformedBodyClassifiedAsDecode(t *testing.T) {
	client, transport := newTestClient(t)
	transport.RegisterResponder("GET", `=~^https://statsapi\.mlb\.com/api/v1/schedule`,
		httpmock.NewStringResponder(200, `<html>maintenance</html>`))

	_, err := client.Schedule(context.Background(), 15, "2024")
	var decode ErrDecode
	if !errors.As(err, &decode) {
		t.Fatalf("expected ErrDecode, got %v", err)
	}
}

func TestRateLimitClassified(t *testing.T) {
	client, transport := newTestClient(t)
	transport.RegisterResponder("GET", `=~^https://statsapi\.mlb\.com/api/v1/schedule`,
		httpmock.NewStringResponder(429, ""))

	_, err := client.Schedule(context.Background(), 15, "2024")
	var rateLimited ErrRateLimited
	if !errors.As(err, &rateLimited) {
		t.Fatalf("expected ErrRateLimited, got %v", err)
	}
}

func TestRequestCount(t *testing.T) {
	client, transport := newTestClient(t)
	transport.RegisterResponder("GET", `=~^https://statsapi\.mlb\.com/api/v1/venues/15`,
		httpmock.NewStringResponder(200, venueFixture))
	transport.RegisterResponder("GET", `=~^https://statsapi\.mlb\.com/api/v1/game/745001/boxscore`,
		httpmock.NewStringResponder(200, boxscoreFixture))

	if _, err := client.Venue(context.Background(), 15); err != nil {
		t.Fatalf("venue: %v", err)
	}
	if _, err := client.Boxscore(context.Background(), 745001); err != nil {
		t.Fatalf("boxscore: %v", err)
	}
	if got := client.RequestCount(); got != 2 {
		t.Fatalf("request count = %d, want 2", got)
	}
}

func TestClassifyError(t *testing.T) {
	tests := []struct {
		name       string
		err        error
		statusCode int
		expected   string
	}{
		{name: "nil", err: nil, statusCode: 0, expected: "unknown"},
		{name: "context timeout", err: context.DeadlineExceeded, statusCode: 0, expected: "timeout"},
		{name: "net timeout", err: &net.DNSError{IsTimeout: true}, statusCode: 0, expected: "timeout"},
		{name: "connection", err: &net.OpError{Op: "dial", Net: "tcp", Err: errors.New("connection refused")}, statusCode: 0, expected: "connection"},
		{name: "forbidden", err: nil, statusCode: http.StatusForbidden, expected: "forbidden"},
		{name: "not found", err: nil, statusCode: http.StatusNotFound, expected: "not_found"},
		{name: "rate limited", err: nil, statusCode: http.StatusTooManyRequests, expected: "rate_limited"},
		{name: "other", err: errors.New("some other error"), statusCode: 0, expected: "other"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := ErrorTypeLabel(classifyError(tt.err, tt.statusCode)); got != tt.expected {
				t.Fatalf("classifyError(%v, %d) = %q, want %q", tt.err, tt.statusCode, got, tt.expected)
			}
		})
	}
}

func TestErrorTypeLabel(t *testing.T) {
	tests := []struct {
		name     string
		err      error
		expected string
	}{
		{name: "venue not found", err: ErrVenueNotFound{ID: 15}, expected: "venue_not_found"},
		{name: "decode", err: ErrDecode{Err: errors.New("bad json")}, expected: "decode"},
		{name: "wrapped not found", err: ErrNotFound{Err: errors.New("http status 404")}, expected: "not_found"},
		{name: "plain", err: errors.New("boom"), expected: "other"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := ErrorTypeLabel(tt.err); got != tt.expected {
				t.Fatalf("ErrorTypeLabel(%v) = %q, want %q", tt.err, got, tt.expected)
			}
		})
	}
}
