// Package main provides the database seeder for the UOM service.
package main

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	_ "github.com/lib/pq"
	"github.com/rs/zerolog/log"

	"github.com/mutugading/goapps-backend/services/uom/internal/infrastructure/config"
	"github.com/mutugading/goapps-backend/services/uom/pkg/logger"
)

type statusSeed struct {
	name        string
	description string
	isUsable    bool
}

var statusSeeds = []statusSeed{
	{"Active", "Available for new records", true},
	{"Inactive", "Temporarily unavailable", false},
	{"Deprecated", "Kept for history only", false},
}

type uomSeed struct {
	name        string
	description string
	factor      string
	status      string
}

// Factors are relative to the base unit of each dimension: gram, meter,
// liter and piece.
var uomSeeds = []uomSeed{
	// Weight
	{"Kilogram", "Weight in kilograms", "1000", "Active"},
	{"Gram", "Weight in grams", "1", "Active"},
	{"Milligram", "Weight in milligrams", "0.001", "Active"},
	{"Ton", "Weight in metric tons", "1000000", "Active"},
	{"Pound", "Weight in pounds", "453.592", "Active"},
	{"Ounce", "Weight in ounces", "28.350", "Active"},

	// Length
	{"Meter", "Length in meters", "1", "Active"},
	{"Centimeter", "Length in centimeters", "0.010", "Active"},
	{"Millimeter", "Length in millimeters", "0.001", "Active"},
	{"Kilometer", "Length in kilometers", "1000", "Active"},
	{"Inch", "Length in inches", "0.025", "Active"},
	{"Foot", "Length in feet", "0.305", "Active"},
	{"Yard", "Length in yards", "0.914", "Deprecated"},

	// Volume
	{"Liter", "Volume in liters", "1", "Active"},
	{"Milliliter", "Volume in milliliters", "0.001", "Active"},
	{"Gallon", "Volume in US gallons", "3.785", "Inactive"},
	{"Cubic Meter", "Volume in cubic meters", "1000", "Active"},

	// Quantity
	{"Piece", "Count in pieces", "1", "Active"},
	{"Dozen", "Count in dozens", "12", "Active"},
	{"Gross", "Count in grosses", "144", "Deprecated"},
}

func main() {
	// Load configuration
	cfg, err := config.Load("")
	if err != nil {
		log.Fatal().Err(err).Msg("Failed to load configuration")
	}

	// Setup logger
	logger.Setup(cfg.Logger.Level, cfg.Logger.Format, cfg.Logger.PrettyJSON)

	log.Info().Msg("Starting UOM seeder")

	// Connect to database
	db, err := sql.Open("postgres", cfg.Database.ConnectionString())
	if err != nil {
		log.Fatal().Err(err).Msg("Failed to connect to database")
	}
	defer func() {
		if err := db.Close(); err != nil {
			log.Warn().Err(err).Msg("Failed to close database connection")
		}
	}()

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	if err := db.PingContext(ctx); err != nil {
		log.Error().Err(err).Msg("Failed to ping database")
		return
	}

	statusIDs, statusInserted := seedStatuses(ctx, db)
	uomInserted, uomSkipped := seedUOMs(ctx, db, statusIDs)

	fmt.Printf("\nSeeding completed\n")
	fmt.Printf("   Statuses inserted: %d of %d\n", statusInserted, len(statusSeeds))
	fmt.Printf("   UOMs inserted:     %d\n", uomInserted)
	fmt.Printf("   UOMs skipped:      %d\n", uomSkipped)
}

// seedStatuses inserts missing statuses and returns the id of every seeded name.
func seedStatuses(ctx context.Context, db *sql.DB) (map[string]int64, int) {
	ids := make(map[string]int64, len(statusSeeds))
	inserted := 0

	for _, seed := range statusSeeds {
		var id int64
		err := db.QueryRowContext(ctx, "SELECT id FROM uom_status WHERE name = $1", seed.name).Scan(&id)
		if err == nil {
			log.Debug().Str("name", seed.name).Msg("Status already exists, skipping")
			ids[seed.name] = id
			continue
		}
		if !errors.Is(err, sql.ErrNoRows) {
			log.Error().Err(err).Str("name", seed.name).Msg("Failed to look up status")
			continue
		}

		err = db.QueryRowContext(ctx,
			"INSERT INTO uom_status (name, description, is_usable) VALUES ($1, $2, $3) RETURNING id",
			seed.name, seed.description, seed.isUsable,
		).Scan(&id)
		if err != nil {
			log.Error().Err(err).Str("name", seed.name).Msg("Failed to insert status")
			continue
		}

		log.Info().Int64("id", id).Str("name", seed.name).Msg("Inserted status")
		ids[seed.name] = id
		inserted++
	}

	return ids, inserted
}

func seedUOMs(ctx context.Context, db *sql.DB, statusIDs map[string]int64) (inserted, skipped int) {
	for _, seed := range uomSeeds {
		statusID, ok := statusIDs[seed.status]
		if !ok {
			log.Warn().Str("name", seed.name).Str("status", seed.status).Msg("Status missing, skipping UOM")
			skipped++
			continue
		}

		var exists bool
		err := db.QueryRowContext(ctx,
			"SELECT EXISTS(SELECT 1 FROM uom WHERE LOWER(name) = LOWER($1))",
			seed.name,
		).Scan(&exists)
		if err != nil {
			log.Error().Err(err).Str("name", seed.name).Msg("Failed to check existence")
			continue
		}

		if exists {
			log.Debug().Str("name", seed.name).Msg("UOM already exists, skipping")
			skipped++
			continue
		}

		_, err = db.ExecContext(ctx,
			`INSERT INTO uom (name, description, conversion_factor_to_base, uom_status_id)
			 VALUES ($1, $2, $3::numeric, $4)`,
			seed.name, seed.description, seed.factor, statusID,
		)
		if err != nil {
			log.Error().Err(err).Str("name", seed.name).Msg("Failed to insert UOM")
			continue
		}

		log.Info().Str("name", seed.name).Str("factor", seed.factor).Msg("Inserted UOM")
		inserted++
	}

	return inserted, skipped
}
