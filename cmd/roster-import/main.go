// roster-import loads the allow-list of placement-eligible roll numbers
// from an xlsx roster into the approved_rolls table. Already-present roll
// numbers are skipped, so re-running with an updated roster is safe.
package main

import (
	"context"
	"flag"
	"os"
	"path/filepath"
	"time"

	"github.com/tnpcell/portal/internal/app/repositories"
	"github.com/tnpcell/portal/internal/config"
	"github.com/tnpcell/portal/internal/db"
	"github.com/tnpcell/portal/internal/pkg/logger"
	"github.com/tnpcell/portal/internal/pkg/roster"
)

func main() {
	var (
		filePath   = flag.String("file", "", "path to the xlsx roster (required)")
		sheet      = flag.String("sheet", "", "sheet name, defaults to the first sheet")
		column     = flag.String("column", roster.DefaultColumn, "header of the roll number column")
		configPath = flag.String("config", filepath.Join("configs", "config.yaml"), "path to config file")
	)
	flag.Parse()

	if *filePath == "" {
		flag.Usage()
		os.Exit(2)
	}

	cfg, err := config.LoadConfig(*configPath)
	if err != nil {
		logger.Fatal().Err(err).Msg("Failed to load configuration")
	}

	f, err := os.Open(*filePath)
	if err != nil {
		logger.Fatal().Err(err).Str("file", *filePath).Msg("Failed to open roster")
	}
	defer f.Close()

	rollNumbers, err := roster.NewParser(*sheet, *column).Parse(f)
	if err != nil {
		logger.Fatal().Err(err).Str("file", *filePath).Msg("Failed to parse roster")
	}

	database, err := db.NewPostgresDB(cfg)
	if err != nil {
		logger.Fatal().Err(err).Msg("Failed to connect to database")
	}
	defer database.Close()

	ctx, cancel := context.WithTimeout(context.Background(), 60*time.Second)
	defer cancel()

	rollRepo := repositories.NewApprovedRollRepository(database.Pool)
	inserted, err := rollRepo.BulkInsert(ctx, rollNumbers)
	if err != nil {
		logger.Fatal().Err(err).Msg("Failed to insert roll numbers")
	}

	total, err := rollRepo.Count(ctx)
	if err != nil {
		logger.Fatal().Err(err).Msg("Failed to count allow-list entries")
	}

	logger.Info().
		Str("file", *filePath).
		Int("parsed", len(rollNumbers)).
		Int64("inserted", inserted).
		Int64("skipped", int64(len(rollNumbers))-inserted).
		Int64("total", total).
		Msg("Roster import complete")
}
