package services

import (
	"context"
	"fmt"
	"time"

	"google.golang.org/api/option"
	"google.golang.org/api/sheets/v4"

	"diettracker/models"
	"diettracker/utils"
)

// Sheet tab names and ranges. Row 1 of each tab is the header row.
const (
	logsRange      = "Logs!A2:K"
	logsAppendAt   = "Logs!A1"
	settingsRange  = "Settings!A2:C"
	settingsKeyCol = "Settings!A:A"
)

// SheetsService is the remote store client. One spreadsheet, two tabs:
// Logs (append-only meal rows) and Settings (one row per user).
type SheetsService struct {
	spreadsheetID string
	svc           *sheets.Service
}

func NewSheetsService(ctx context.Context, spreadsheetID string, credentialsJSON []byte) (*SheetsService, error) {
	svc, err := sheets.NewService(ctx,
		option.WithCredentialsJSON(credentialsJSON),
		option.WithScopes(sheets.SpreadsheetsScope),
	)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", models.ErrStoreUnavailable, err)
	}
	return &SheetsService{spreadsheetID: spreadsheetID, svc: svc}, nil
}

// FetchAll reads both tabs and stamps the result. A transport or auth
// failure is fatal for the caller's render cycle.
func (s *SheetsService) FetchAll(ctx context.Context) (*models.Snapshot, error) {
	resp, err := s.svc.Spreadsheets.Values.BatchGet(s.spreadsheetID).
		Ranges(logsRange, settingsRange).
		Context(ctx).Do()
	if err != nil {
		return nil, fmt.Errorf("%w: %v", models.ErrStoreUnavailable, err)
	}
	if len(resp.ValueRanges) != 2 {
		return nil, fmt.Errorf("%w: expected 2 ranges, got %d", models.ErrStoreUnavailable, len(resp.ValueRanges))
	}

	snap := &models.Snapshot{FetchedAt: time.Now()}
	for _, row := range resp.ValueRanges[0].Values {
		snap.Logs = append(snap.Logs, parseLogRow(row))
	}
	for i, row := range resp.ValueRanges[1].Values {
		// +2: ranges start at row 2, sheet rows are 1-based.
		snap.Settings = append(snap.Settings, parseSettingRow(row, i+2))
	}
	return snap, nil
}

// AppendLog appends one row in the fixed column order
// User, Timestamp, Date, Meal, items_text, five macros, json_data.
func (s *SheetsService) AppendLog(ctx context.Context, entry models.LogEntry) error {
	vr := &sheets.ValueRange{Values: [][]interface{}{logRow(entry)}}
	_, err := s.svc.Spreadsheets.Values.Append(s.spreadsheetID, logsAppendAt, vr).
		ValueInputOption("USER_ENTERED").
		InsertDataOption("INSERT_ROWS").
		Context(ctx).Do()
	if err != nil {
		return fmt.Errorf("%w: %v", models.ErrStoreWrite, err)
	}
	return nil
}

// UpsertSetting looks the user up in column A and overwrites the value cell
// of that row, appending a fresh row when the user has none. The lookup
// matches on the user alone, not (user, setting name) — with a second
// setting name this would clobber the wrong row. Kept to match the deployed
// sheet, where each user has exactly one row.
func (s *SheetsService) UpsertSetting(ctx context.Context, user, name string, value float64) error {
	col, err := s.svc.Spreadsheets.Values.Get(s.spreadsheetID, settingsKeyCol).Context(ctx).Do()
	if err != nil {
		return fmt.Errorf("%w: %v", models.ErrStoreWrite, err)
	}

	if row := findUserRow(col.Values, user); row > 0 {
		vr := &sheets.ValueRange{Values: [][]interface{}{{value}}}
		_, err = s.svc.Spreadsheets.Values.Update(s.spreadsheetID, fmt.Sprintf("Settings!C%d", row), vr).
			ValueInputOption("USER_ENTERED").
			Context(ctx).Do()
	} else {
		vr := &sheets.ValueRange{Values: [][]interface{}{{user, name, value}}}
		_, err = s.svc.Spreadsheets.Values.Append(s.spreadsheetID, "Settings!A1", vr).
			ValueInputOption("USER_ENTERED").
			InsertDataOption("INSERT_ROWS").
			Context(ctx).Do()
	}
	if err != nil {
		return fmt.Errorf("%w: %v", models.ErrStoreWrite, err)
	}
	return nil
}

// SeedTables writes the header rows of a blank spreadsheet. Dev helper only.
func (s *SheetsService) SeedTables(ctx context.Context) error {
	headers := map[string][]interface{}{
		"Logs!A1": {"User", "Timestamp", "Date", "Meal", "items_text",
			"calories_kcal", "protein_g", "carbs_g", "fat_g", "fiber_g", "json_data"},
		"Settings!A1": {"User", "Setting", "Value"},
	}
	for rng, row := range headers {
		vr := &sheets.ValueRange{Values: [][]interface{}{row}}
		_, err := s.svc.Spreadsheets.Values.Update(s.spreadsheetID, rng, vr).
			ValueInputOption("RAW").
			Context(ctx).Do()
		if err != nil {
			return fmt.Errorf("%w: %v", models.ErrStoreWrite, err)
		}
	}
	return nil
}

// findUserRow returns the 1-based sheet row whose first cell equals user,
// or 0 when absent. values spans the whole key column including the header.
func findUserRow(values [][]interface{}, user string) int {
	for i, row := range values {
		if len(row) > 0 && utils.CellString(row[0]) == user {
			return i + 1
		}
	}
	return 0
}

func parseLogRow(row []interface{}) models.LogEntry {
	cell := func(i int) interface{} {
		if i < len(row) {
			return row[i]
		}
		return nil
	}
	return models.LogEntry{
		User:      utils.CellString(cell(0)),
		Timestamp: utils.CellTime(cell(1)),
		Date:      utils.CellDate(cell(2)),
		Meal:      utils.CellString(cell(3)),
		ItemsText: utils.CellString(cell(4)),
		Calories:  utils.CellFloat(cell(5)),
		Protein:   utils.CellFloat(cell(6)),
		Carbs:     utils.CellFloat(cell(7)),
		Fat:       utils.CellFloat(cell(8)),
		Fiber:     utils.CellFloat(cell(9)),
		RawJSON:   utils.CellString(cell(10)),
	}
}

func parseSettingRow(row []interface{}, sheetRow int) models.Setting {
	cell := func(i int) interface{} {
		if i < len(row) {
			return row[i]
		}
		return nil
	}
	return models.Setting{
		User:  utils.CellString(cell(0)),
		Name:  utils.CellString(cell(1)),
		Value: utils.CellFloat(cell(2)),
		Row:   sheetRow,
	}
}

func logRow(e models.LogEntry) []interface{} {
	return []interface{}{
		e.User,
		e.Timestamp.UTC().Format(time.RFC3339),
		e.Date,
		e.Meal,
		e.ItemsText,
		e.Calories, e.Protein, e.Carbs, e.Fat, e.Fiber,
		e.RawJSON,
	}
}
