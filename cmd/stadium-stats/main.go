package main

import (
	"bufio"
	"context"
	"errors"
	"flag"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"strconv"
	"strings"
	"syscall"
	"time"

	"github.com/aluiziolira/mlb-stadium-stats/config"
	"github.com/aluiziolira/mlb-stadium-stats/models"
	"github.com/aluiziolira/mlb-stadium-stats/pipeline"
	"github.com/aluiziolira/mlb-stadium-stats/statsapi"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

func main() {
	defaultCfg := config.DefaultConfig()
	baseURLDefault := defaultCfg.BaseURL
	if value, ok := config.EnvString("STADIUMSTATS_BASE_URL"); ok {
		baseURLDefault = value
	}
	outputDefault := defaultCfg.OutputDir
	if value, ok := config.EnvString("STADIUMSTATS_OUTPUT_DIR"); ok {
		outputDefault = value
	}
	metricsDefault := defaultCfg.MetricsAddr
	if value, ok := config.EnvString("STADIUMSTATS_METRICS_ADDR"); ok {
		metricsDefault = value
	}
	delayDefault := int(defaultCfg.Delay / time.Millisecond)
	if value, ok, err := config.EnvInt("STADIUMSTATS_DELAY_MS"); err != nil {
		fmt.Fprintf(os.Stderr, "invalid STADIUMSTATS_DELAY_MS: %v\n", err)
		os.Exit(1)
	} else if ok {
		delayDefault = value
	}

	baseURL := flag.String("base-url", baseURLDefault, "MLB Stats API base URL")
	delayMs := flag.Int("delay", delayDefault, "Delay between API requests (milliseconds)")
	outputDir := flag.String("output-dir", outputDefault, "Directory for the exported workbook")
	metricsAddr := flag.String("metrics-addr", metricsDefault, "Prometheus metrics listen address (e.g. :9090)")
	verbose := flag.Bool("v", false, "Enable verbose logging")

	flag.Parse()

	logger, level := newLogger(*verbose)
	slog.SetDefault(logger)
	_ = level // restore slog.SetLogLoggerLevel(level.Level()) once the toolchain is Go 1.22+

	cfg := buildConfigFromFlags(*baseURL, *delayMs, *outputDir, *verbose, *metricsAddr)
	if err := cfg.Validate(); err != nil {
		slog.Error("invalid configuration", slog.Any("error", err))
		os.Exit(1)
	}

	fmt.Println("Stadium Season Stats Exporter")
	fmt.Println(strings.Repeat("=", 50))

	stadiumID, season, err := promptInputs(os.Stdin)
	if err != nil {
		fmt.Println(err)
		os.Exit(1)
	}

	slog.Info("starting export",
		slog.Int("stadium_id", stadiumID),
		slog.String("season", season),
		slog.String("base_url", cfg.BaseURL),
	)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()
	go func() {
		<-ctx.Done()
		slog.Info("shutdown signal received, finishing current request")
	}()

	client, err := statsapi.NewClient(cfg)
	if err != nil {
		slog.Error("initialising api client", slog.Any("error", err))
		os.Exit(1)
	}

	var metricsServer *http.Server
	if cfg.MetricsAddr != "" && client.Metrics != nil {
		metricsServer = &http.Server{
			Addr:    cfg.MetricsAddr,
			Handler: promhttp.HandlerFor(client.Metrics.Registry, promhttp.HandlerOpts{}),
		}
		go func() {
			if err := metricsServer.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
				slog.Error("metrics server failed", slog.Any("error", err))
			}
		}()
		slog.Info("metrics server enabled", slog.String("addr", cfg.MetricsAddr))
	}

	runner := &pipeline.Runner{
		Client:   client,
		Config:   cfg,
		Reporter: &consoleReporter{venueID: stadiumID, season: season},
	}

	startTime := time.Now()
	result, err := runner.Run(ctx, stadiumID, season)
	if err != nil {
		if errors.Is(err, context.Canceled) {
			fmt.Println("\nOperation cancelled by user")
			os.Exit(1)
		}
		var notFound statsapi.ErrVenueNotFound
		if errors.As(err, &notFound) {
			fmt.Printf("Error: %v\n", err)
		} else {
			fmt.Printf("Error: %v\n", err)
			fmt.Println("Check your connection and try again later.")
		}
		os.Exit(1)
	}

	if metricsServer != nil {
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		if err := metricsServer.Shutdown(shutdownCtx); err != nil {
			slog.Error("metrics server shutdown failed", slog.Any("error", err))
		}
		cancel()
	}

	if result.ScheduledGames == 0 {
		fmt.Printf("No games found for stadium %d in %s\n", stadiumID, season)
		return
	}

	fmt.Printf("\nSuccess! Created %s\n", result.OutputFile)
	printSummary(result, time.Since(startTime))
}

func buildConfigFromFlags(baseURL string, delayMs int, outputDir string, verbose bool, metricsAddr string) *config.Config {
	cfg := config.DefaultConfig()
	cfg.BaseURL = baseURL
	cfg.Delay = time.Duration(delayMs) * time.Millisecond
	cfg.OutputDir = outputDir
	cfg.Verbose = verbose
	cfg.MetricsAddr = metricsAddr
	return cfg
}

// promptInputs reads and validates the stadium ID and season year. The
// error messages are the exact strings shown to the user.
func promptInputs(in io.Reader) (int, string, error) {
	scanner := bufio.NewScanner(in)

	fmt.Print("Enter Stadium ID: ")
	idText, err := readLine(scanner)
	if err != nil {
		return 0, "", err
	}
	if !isDigits(idText) {
		return 0, "", errors.New("Error: Stadium ID must be a number")
	}
	stadiumID, err := strconv.Atoi(idText)
	if err != nil {
		return 0, "", errors.New("Error: Stadium ID must be a number")
	}

	fmt.Print("Enter Season Year (e.g., 2024): ")
	season, err := readLine(scanner)
	if err != nil {
		return 0, "", err
	}
	if !isDigits(season) || len(season) != 4 {
		return 0, "", errors.New("Error: Season must be a 4-digit year")
	}

	return stadiumID, season, nil
}

func readLine(scanner *bufio.Scanner) (string, error) {
	if !scanner.Scan() {
		if err := scanner.Err(); err != nil {
			return "", fmt.Errorf("read input: %w", err)
		}
		return "", errors.New("no input provided")
	}
	return strings.TrimSpace(scanner.Text()), nil
}

func isDigits(s string) bool {
	if s == "" {
		return false
	}
	for _, r := range s {
		if r < '0' || r > '9' {
			return false
		}
	}
	return true
}

// consoleReporter renders export progress in the interactive session.
type consoleReporter struct {
	venueID int
	season  string
}

func (cr *consoleReporter) OnVenueResolved(venue *models.Venue) {
	name := venue.Name
	if name == "" {
		name = "Unknown"
	}
	city := venue.Location.City
	if city == "" {
		city = "Unknown"
	}
	state := venue.Location.State
	if state == "" {
		state = "Unknown"
	}
	fmt.Printf("\nFound stadium: %s\n", name)
	fmt.Printf("Location: %s, %s\n", city, state)
	fmt.Printf("Fetching schedule for stadium %d in %s...\n", cr.venueID, cr.season)
}

func (cr *consoleReporter) OnScheduleFetched(venueID int, season string, games int) {
	fmt.Printf("Found %d games\n", games)
	if games > 0 {
		fmt.Printf("\nProcessing %d games with detailed statistics...\n", games)
	}
}

func (cr *consoleReporter) OnGameStart(index, total int, gamePk int64) {
	fmt.Printf("Processing game %d/%d: %d", index, total, gamePk)
}

func (cr *consoleReporter) OnGameExported(gamePk int64) {
	fmt.Println(" ✓")
}

func (cr *consoleReporter) OnGameSkipped(gamePk int64, err error) {
	fmt.Println(" ✗ skipped")
}

func (cr *consoleReporter) OnComplete(result *models.ExportResult) {}

func printSummary(result *models.ExportResult, duration time.Duration) {
	separator := "--------------------------------------------------"
	fmt.Println("\n" + separator)
	fmt.Println("Export complete")

	name := result.VenueName
	if name == "" {
		name = "Unknown"
	}

	fmt.Printf("  Stadium:       %s\n", name)
	fmt.Printf("  Season:        %s\n", result.Season)
	fmt.Printf("  Games found:   %d\n", result.ScheduledGames)
	fmt.Printf("  Games saved:   %d\n", result.ExportedGames)
	fmt.Printf("  Games skipped: %d\n", result.SkippedGames)
	successRate := 0.0
	if result.ScheduledGames > 0 {
		successRate = float64(result.ExportedGames) / float64(result.ScheduledGames) * 100
	}
	fmt.Printf("  Success rate:  %.2f%%\n", successRate)
	if len(result.ErrorsByType) > 0 {
		fmt.Printf("  Error types:   %v\n", result.ErrorsByType)
	}
	fmt.Printf("  API requests:  %d\n", result.RequestCount)
	fmt.Printf("  Duration:      %v\n", duration)
	fmt.Printf("  Output file:   %s\n", result.OutputFile)
	fmt.Println(separator)
}

func newLogger(verbose bool) (*slog.Logger, *slog.LevelVar) {
	level := &slog.LevelVar{}
	if verbose {
		level.Set(slog.LevelDebug)
	} else {
		level.Set(slog.LevelInfo)
	}

	opts := &slog.HandlerOptions{Level: level}
	var handler slog.Handler
	if isTerminal(os.Stdout) {
		handler = slog.NewTextHandler(os.Stdout, opts)
	} else {
		handler = slog.NewJSONHandler(os.Stdout, opts)
	}

	return slog.New(handler), level
}

func isTerminal(f *os.File) bool {
	info, err := f.Stat()
	if err != nil {
		return false
	}
	return (info.Mode() & os.ModeCharDevice) != 0
}
