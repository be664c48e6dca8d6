package services

import (
	"time"

	"diettracker/models"
)

// DefaultCalorieGoal applies when a user has no persisted goal row.
const DefaultCalorieGoal = 2000

// Aggregations are pure functions over a Snapshot: no I/O, no mutation.
// The handlers call them on every render; the Snapshot is small enough that
// a linear scan is the whole strategy.

// CalorieGoal returns the stored goal for user, or the default when no
// matching row exists.
func CalorieGoal(snap *models.Snapshot, user string) int {
	for _, s := range snap.Settings {
		if s.User == user && s.Name == models.SettingCalorieGoal {
			return int(s.Value)
		}
	}
	return DefaultCalorieGoal
}

// DailyLogs returns the user's entries for one calendar date, in the order
// they appear in the sheet. date is in models.DateLayout.
func DailyLogs(snap *models.Snapshot, user, date string) []models.LogEntry {
	var out []models.LogEntry
	for _, e := range snap.Logs {
		if e.User == user && e.Date == date {
			out = append(out, e)
		}
	}
	return out
}

// DailyTotals sums the five macros component-wise; zero for an empty day.
func DailyTotals(logs []models.LogEntry) models.NutritionTotals {
	var t models.NutritionTotals
	for _, e := range logs {
		t.Calories += e.Calories
		t.Protein += e.Protein
		t.Carbs += e.Carbs
		t.Fat += e.Fat
		t.Fiber += e.Fiber
	}
	return t
}

// TrendPoint is one charted day of the weekly trend.
type TrendPoint struct {
	Date     string  `json:"date"`
	Calories float64 `json:"calories_kcal"`
}

// WeeklyTrend sums calories per day over the 7 calendar days ending at
// endDate inclusive. Days with no entries are omitted, not zero-filled, and
// the average is the mean over the days that are present — so a single
// logged day in an otherwise empty week averages to that day's total.
func WeeklyTrend(snap *models.Snapshot, user string, endDate time.Time) ([]TrendPoint, float64) {
	start := endDate.AddDate(0, 0, -6)

	byDate := make(map[string]float64)
	for _, e := range snap.Logs {
		if e.User != user || e.Date == "" {
			continue
		}
		d, err := time.Parse(models.DateLayout, e.Date)
		if err != nil {
			continue
		}
		if d.Before(start) || d.After(endDate) {
			continue
		}
		byDate[e.Date] += e.Calories
	}

	var points []TrendPoint
	var sum float64
	for i := 0; i < 7; i++ {
		key := start.AddDate(0, 0, i).Format(models.DateLayout)
		if total, ok := byDate[key]; ok {
			points = append(points, TrendPoint{Date: key, Calories: total})
			sum += total
		}
	}
	if len(points) == 0 {
		return nil, 0
	}
	return points, sum / float64(len(points))
}
