package main

import (
	"context"
	"flag"
	"io"
	"log"
	"os"
	"time"

	"github.com/fortuna/prepstats/internal/config"
	"github.com/fortuna/prepstats/internal/service"
	"github.com/fortuna/prepstats/internal/stats"
	"github.com/fortuna/prepstats/internal/store"
	"github.com/fortuna/prepstats/internal/store/repository"
)

const (
	appName    = "prepstats-careers"
	appVersion = "1.0.0"
)

func main() {
	log.Printf("=== %s v%s ===", appName, appVersion)

	cfg := config.Load()

	var (
		dsn      = flag.String("dsn", cfg.DatabaseURL, "PostgreSQL DSN")
		school   = flag.String("school", "", "School ID (e.g. msd)")
		division = flag.String("division", "", "Division name")
		sport    = flag.String("sport", "", "Sport (e.g. Basketball)")
		season   = flag.String("season", "", "Season (e.g. 2023-24)")
		variant  = flag.String("football-variant", "", "Football variant (e.g. 8-man)")
		query    = flag.String("q", "", "Search text")
		category = flag.String("category", "", "Stat category (batting, pitching, passing, ...)")
		view     = flag.String("view", string(stats.ViewCareerStandard), "season, career-standard or career-extended")
		sortKey  = flag.String("sort", "", "Sort column key")
		advanced = flag.Bool("advanced", false, "Include advanced columns")
		out      = flag.String("out", "", "Output file (default stdout)")
	)

	flag.Parse()

	db, err := store.NewDatabase(*dsn)
	if err != nil {
		log.Fatalf("connect database: %v", err)
	}
	defer db.Close()

	engine := stats.NewEngine(stats.Options{
		StandardSeasons: cfg.StandardCareerSeasons,
		HighGPThreshold: cfg.HighGPThreshold,
		DefaultPageSize: cfg.DefaultPageSize,
	})
	records := service.NewRecordsService(repository.NewRecordRepository(db), engine, nil)

	filter := stats.Filter{
		SchoolID:        *school,
		Division:        *division,
		Sport:           *sport,
		Season:          *season,
		FootballVariant: *variant,
		Query:           *query,
		StatCategory:    *category,
		ShowAdvanced:    *advanced,
		StatsView:       stats.ParseStatsView(*view),
	}

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Minute)
	defer cancel()

	raw, err := records.Fetch(ctx, filter)
	if err != nil {
		log.Fatalf("fetch records: %v", err)
	}

	state := filter.ViewState()
	if *sortKey != "" {
		state = state.Resolve(raw).Click(*sortKey)
	}

	var w io.Writer = os.Stdout
	if *out != "" {
		f, err := os.Create(*out)
		if err != nil {
			log.Fatalf("create %s: %v", *out, err)
		}
		defer f.Close()
		w = f
	}

	n, err := Export(w, records, raw, state)
	if err != nil {
		log.Fatalf("export failed: %v", err)
	}

	log.Printf("✓ Exported %d rows (%d raw records)", n, len(raw))
}
