package main

import (
	"context"
	"flag"
	"log"

	"github.com/fortuna/prepstats/internal/backfill"
	"github.com/fortuna/prepstats/internal/config"
	"github.com/fortuna/prepstats/internal/store"
	"github.com/fortuna/prepstats/internal/store/repository"
)

const (
	appName    = "prepstats-backfill"
	appVersion = "1.0.0"
)

func main() {
	log.Printf("=== %s v%s ===", appName, appVersion)

	cfg := config.Load()

	var (
		dsn    = flag.String("dsn", cfg.DatabaseURL, "PostgreSQL DSN")
		school = flag.String("school", "", "School full name for rows without a School column")
		sport  = flag.String("sport", "", "Sport for rows without a Sport column")
		season = flag.String("season", "", "Season for rows without a Season column")
		source = flag.String("source", "backfill", "Source tag stored with each row")
		dryRun = flag.Bool("dry-run", false, "Dry run (do not write to DB)")
	)

	flag.Parse()

	if flag.NArg() == 0 {
		log.Fatalf("usage: %s [flags] sheet.csv [sheet.csv ...]", appName)
	}

	db, err := store.NewDatabase(*dsn)
	if err != nil {
		log.Fatalf("connect database: %v", err)
	}
	defer db.Close()

	if err := db.RunMigrations(); err != nil {
		log.Fatalf("run migrations: %v", err)
	}

	runner := backfill.NewRunner(repository.NewRecordRepository(db))

	spec := backfill.JobSpec{
		Files:  flag.Args(),
		School: *school,
		Sport:  *sport,
		Season: *season,
		Source: *source,
		DryRun: *dryRun,
	}

	if err := runner.Run(context.Background(), spec, &consoleReporter{dryRun: *dryRun}); err != nil {
		log.Fatalf("backfill failed: %v", err)
	}

	log.Println("✓ Backfill completed successfully")
}

type consoleReporter struct {
	dryRun bool
}

func (c *consoleReporter) OnJobStart(spec backfill.JobSpec) {
	log.Printf("Importing %d file(s) (dry_run=%v)", len(spec.Files), c.dryRun)
}

func (c *consoleReporter) OnFileStart(path string, index int, total int) {
	log.Printf("[%d/%d] %s", index+1, total, path)
}

func (c *consoleReporter) OnRowSkipped(line int, reason string) {
	log.Printf("  ⚠️  line %d skipped: %s", line, reason)
}

func (c *consoleReporter) OnProgress(message string, current int, total int) {
	log.Printf("Progress: %s (%d/%d)", message, current, total)
}

func (c *consoleReporter) OnJobComplete(imported int) {
	log.Printf("Job complete: %d rows", imported)
}

func (c *consoleReporter) OnJobError(err error) {
	log.Printf("Job error: %v", err)
}
