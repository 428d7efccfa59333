// Package statsapi provides a sequential client for the MLB Stats API.
package statsapi

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"net"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"sync"
	"sync/atomic"
	"time"

	"github.com/aluiziolira/mlb-stadium-stats/config"
	"github.com/aluiziolira/mlb-stadium-stats/models"
	"github.com/gocolly/colly/v2"
)

const (
	venueHydrate      = "location,fieldInfo,timezone"
	scheduleHydrate   = "team,linescore,decisions,person,probablePitcher,stats,weather,broadcasts"
	scheduleGameTypes = "R,F,D,L,W"
)

// Client wraps a rate-limited colly collector around the Stats API
// endpoints. Requests are issued one at a time with a fixed delay
// between them.
type Client struct {
	cfg       *config.Config
	base      *url.URL
	collector *colly.Collector
	Metrics   *Metrics

	requestCount int64

	mu       sync.Mutex
	body     []byte
	status   int
	fetchErr error
}

// NewClient builds a client instance configured from cfg.
func NewClient(cfg *config.Config) (*Client, error) {
	parsed, err := url.Parse(cfg.BaseURL)
	if err != nil {
		return nil, fmt.Errorf("parse base url: %w", err)
	}
	if parsed.Host == "" {
		return nil, fmt.Errorf("base url must include a host")
	}

	collector := colly.NewCollector(
		colly.AllowedDomains(parsed.Host),
		colly.UserAgent(cfg.UserAgent),
		colly.AllowURLRevisit(),
	)

	collector.IgnoreRobotsTxt = true
	// Hydrated schedule payloads exceed colly's default body cap.
	collector.MaxBodySize = 0
	collector.WithTransport(&http.Transport{
		Proxy: http.ProxyFromEnvironment,
		DialContext: (&net.Dialer{
			Timeout:   30 * time.Second,
			KeepAlive: 30 * time.Second,
		}).DialContext,
		MaxIdleConns:        100,
		IdleConnTimeout:     90 * time.Second,
		TLSHandshakeTimeout: 10 * time.Second,
	})

	if err := collector.Limit(&colly.LimitRule{
		DomainGlob:  "*",
		Parallelism: 1,
		Delay:       cfg.Delay,
	}); err != nil {
		return nil, fmt.Errorf("configure rate limits: %w", err)
	}

	c := &Client{
		cfg:       cfg,
		base:      parsed,
		collector: collector,
		Metrics:   NewMetrics(),
	}
	c.registerHandlers()
	return c, nil
}

// WithTransport replaces the underlying HTTP transport.
func (c *Client) WithTransport(rt http.RoundTripper) {
	c.collector.WithTransport(rt)
}

// Venues fetches all MLB venues with location and field metadata.
func (c *Client) Venues(ctx context.Context) ([]models.Venue, error) {
	query := url.Values{}
	query.Set("sportId", "1")
	query.Set("hydrate", venueHydrate)

	var resp struct {
		Venues []models.Venue `json:"venues"`
	}
	if err := c.getJSON(ctx, "venues", c.cfg.VenueTimeout, c.endpoint("/venues", query), &resp); err != nil {
		return nil, err
	}
	return resp.Venues, nil
}

// Venue fetches a single venue by ID. A missing venue is reported as
// ErrVenueNotFound.
func (c *Client) Venue(ctx context.Context, id int) (*models.Venue, error) {
	query := url.Values{}
	query.Set("hydrate", venueHydrate)

	var resp struct {
		Venues []models.Venue `json:"venues"`
	}
	err := c.getJSON(ctx, "venue", c.cfg.VenueTimeout, c.endpoint(fmt.Sprintf("/venues/%d", id), query), &resp)
	if err != nil {
		var notFound ErrNotFound
		if errors.As(err, &notFound) {
			return nil, ErrVenueNotFound{ID: id}
		}
		return nil, err
	}
	if len(resp.Venues) == 0 {
		return nil, ErrVenueNotFound{ID: id}
	}
	return &resp.Venues[0], nil
}

// Schedule fetches every game played at a venue during a season,
// flattened across schedule dates.
func (c *Client) Schedule(ctx context.Context, venueID int, season string) ([]models.ScheduleGame, error) {
	query := url.Values{}
	query.Set("sportId", "1")
	query.Set("season", season)
	query.Set("venueIds", strconv.Itoa(venueID))
	query.Set("gameType", scheduleGameTypes)
	query.Set("hydrate", scheduleHydrate)

	var resp models.ScheduleResponse
	if err := c.getJSON(ctx, "schedule", c.cfg.ScheduleTimeout, c.endpoint("/schedule", query), &resp); err != nil {
		return nil, err
	}

	games := make([]models.ScheduleGame, 0, resp.TotalGames)
	for _, date := range resp.Dates {
		games = append(games, date.Games...)
	}
	return games, nil
}

// Boxscore fetches the final boxscore for a game.
func (c *Client) Boxscore(ctx context.Context, gamePk int64) (*models.Boxscore, error) {
	var box models.Boxscore
	if err := c.getJSON(ctx, "boxscore", c.cfg.BoxscoreTimeout, c.endpoint(fmt.Sprintf("/game/%d/boxscore", gamePk), nil), &box); err != nil {
		return nil, err
	}
	return &box, nil
}

// RequestCount reports how many requests the client has issued.
func (c *Client) RequestCount() int {
	return int(atomic.LoadInt64(&c.requestCount))
}

func (c *Client) registerHandlers() {
	c.collector.OnRequest(func(r *colly.Request) {
		r.Ctx.Put("start", time.Now())
		current := atomic.LoadInt64(&c.requestCount)
		if current%50 == 0 {
			slog.Debug("api request progress",
				slog.Int64("requests", current),
				slog.String("url", r.URL.String()),
			)
		}
	})

	c.collector.OnResponse(func(r *colly.Response) {
		if start, ok := r.Request.Ctx.GetAny("start").(time.Time); ok {
			c.Metrics.ObserveDuration(time.Since(start))
		}
		c.body = append(c.body[:0], r.Body...)
		c.status = r.StatusCode
	})

	c.collector.OnError(func(r *colly.Response, err error) {
		statusCode := 0
		requestURL := ""
		if r != nil {
			statusCode = r.StatusCode
			if r.Request != nil && r.Request.URL != nil {
				requestURL = r.Request.URL.String()
			}
		}
		c.fetchErr = classifyError(err, statusCode)
		slog.Debug("api request error",
			slog.String("url", requestURL),
			slog.String("category", ErrorTypeLabel(c.fetchErr)),
			slog.Any("error", err),
		)
	})
}

// getJSON issues one request and decodes the response body into out.
// The collector is synchronous, so the mutex serializes callers and
// keeps the response snapshot fields coherent.
func (c *Client) getJSON(ctx context.Context, endpoint string, timeout time.Duration, rawURL string, out interface{}) error {
	if ctx == nil {
		ctx = context.Background()
	}
	if err := ctx.Err(); err != nil {
		return err
	}

	c.mu.Lock()
	defer c.mu.Unlock()

	c.body = c.body[:0]
	c.status = 0
	c.fetchErr = nil

	c.collector.SetRequestTimeout(timeout)
	atomic.AddInt64(&c.requestCount, 1)
	c.Metrics.IncRequest(endpoint)

	visitErr := c.collector.Visit(rawURL)
	c.collector.Wait()

	if c.fetchErr != nil {
		c.Metrics.IncError(ErrorTypeLabel(c.fetchErr))
		return c.fetchErr
	}
	if visitErr != nil {
		classified := classifyError(visitErr, c.status)
		c.Metrics.IncError(ErrorTypeLabel(classified))
		return classified
	}

	if err := json.Unmarshal(c.body, out); err != nil {
		decodeErr := ErrDecode{Err: err}
		c.Metrics.IncError(ErrorTypeLabel(decodeErr))
		return decodeErr
	}
	return nil
}

func (c *Client) endpoint(parts string, query url.Values) string {
	u := *c.base
	u.Path = strings.TrimRight(u.Path, "/") + parts
	if query != nil {
		u.RawQuery = query.Encode()
	}
	return u.String()
}

func classifyError(err error, statusCode int) error {
	if err == nil && statusCode == 0 {
		return nil
	}

	if errors.Is(err, context.DeadlineExceeded) {
		return ErrTimeout{Err: err}
	}
	var netErr net.Error
	if errors.As(err, &netErr) && netErr.Timeout() {
		return ErrTimeout{Err: err}
	}
	var opErr *net.OpError
	if errors.As(err, &opErr) {
		return ErrConnection{Err: err}
	}

	if statusCode != 0 {
		wrapped := err
		if wrapped == nil {
			wrapped = fmt.Errorf("http status %d", statusCode)
		}
		switch statusCode {
		case http.StatusForbidden:
			return ErrForbidden{Err: wrapped}
		case http.StatusNotFound:
			return ErrNotFound{Err: wrapped}
		case http.StatusTooManyRequests:
			return ErrRateLimited{Err: wrapped}
		}
	}

	if err == nil {
		return nil
	}
	return err
}
