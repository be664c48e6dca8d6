package services

import (
	"context"

	"diettracker/models"
)

// Store is the remote persistence boundary: everything the pipeline needs
// from the spreadsheet. SheetsService is the real implementation; tests
// substitute fakes.
type Store interface {
	// FetchAll retrieves every row of both tables in one go.
	FetchAll(ctx context.Context) (*models.Snapshot, error)
	// AppendLog appends one immutable row to the Logs table.
	AppendLog(ctx context.Context, entry models.LogEntry) error
	// UpsertSetting overwrites the user's value cell in place, or appends a
	// new row when the user has none.
	UpsertSetting(ctx context.Context, user, name string, value float64) error
}

// Seeder is the optional store extension that writes the header rows of a
// blank spreadsheet. Only wired up in dev.
type Seeder interface {
	SeedTables(ctx context.Context) error
}

// Estimator turns free-text meal items into a structured breakdown.
type Estimator interface {
	// Estimate returns the parsed breakdown plus the raw response JSON that
	// gets archived in the json_data column.
	Estimate(ctx context.Context, mealName string, items []string) (*models.NutritionBreakdown, string, error)
}
