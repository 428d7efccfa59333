package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"sort"
	"strings"
	"syscall"

	"github.com/aluiziolira/mlb-stadium-stats/config"
	"github.com/aluiziolira/mlb-stadium-stats/export"
	"github.com/aluiziolira/mlb-stadium-stats/models"
	"github.com/aluiziolira/mlb-stadium-stats/statsapi"
)

func main() {
	defaultCfg := config.DefaultConfig()
	baseURLDefault := defaultCfg.BaseURL
	if value, ok := config.EnvString("STADIUMSTATS_BASE_URL"); ok {
		baseURLDefault = value
	}

	baseURL := flag.String("base-url", baseURLDefault, "MLB Stats API base URL")
	exportPath := flag.String("export", "", "Write the stadium list to an xlsx file at this path")
	verbose := flag.Bool("v", false, "Enable verbose logging")

	flag.Parse()

	logger, level := newLogger(*verbose)
	slog.SetDefault(logger)
	_ = level // restore slog.SetLogLoggerLevel(level.Level()) once the toolchain is Go 1.22+

	cfg := config.DefaultConfig()
	cfg.BaseURL = *baseURL
	cfg.Verbose = *verbose
	if err := cfg.Validate(); err != nil {
		slog.Error("invalid configuration", slog.Any("error", err))
		os.Exit(1)
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	client, err := statsapi.NewClient(cfg)
	if err != nil {
		slog.Error("initialising api client", slog.Any("error", err))
		os.Exit(1)
	}

	fmt.Println("MLB Stadiums with Stadium IDs")
	fmt.Println(strings.Repeat("=", 50))

	slog.Debug("fetching venue listing", slog.String("base_url", cfg.BaseURL))

	venues, err := client.Venues(ctx)
	if err != nil {
		if errors.Is(err, context.Canceled) {
			fmt.Println("\nOperation cancelled by user")
			os.Exit(1)
		}
		fmt.Printf("Error fetching MLB venues from StatsAPI: %v\n", err)
		os.Exit(1)
	}

	if len(venues) == 0 {
		fmt.Println("No venues found.")
		return
	}

	sort.Slice(venues, func(i, j int) bool {
		return venues[i].Name < venues[j].Name
	})

	printVenueTable(venues)

	fmt.Println("\nTo export a season, copy the Stadium ID (first column)")
	fmt.Println("Example: stadium-stats")
	fmt.Println("         Enter Stadium ID: 15")

	if *exportPath != "" {
		if err := export.WriteStadiumDirectory(*exportPath, venues); err != nil {
			slog.Error("writing stadium directory", slog.Any("error", err))
			os.Exit(1)
		}
		fmt.Printf("\nSaved stadium list to: %s\n", *exportPath)
	}
}

func printVenueTable(venues []models.Venue) {
	fmt.Printf("Found %d MLB venues:\n", len(venues))
	fmt.Println()
	fmt.Printf("%-12s %-35s %-20s %-5s\n", "Stadium ID", "Stadium Name", "City", "State")
	fmt.Println(strings.Repeat("-", 75))

	for _, venue := range venues {
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
			state = "N/A"
		}
		fmt.Printf("%-12d %-35s %-20s %-5s\n",
			venue.ID, truncate(name, 34, 31), truncate(city, 19, 16), state)
	}
}

// truncate shortens s to keep runes plus an ellipsis when it exceeds max
// runes, so table columns stay aligned.
func truncate(s string, max, keep int) string {
	runes := []rune(s)
	if len(runes) > max {
		return string(runes[:keep]) + "..."
	}
	return s
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
