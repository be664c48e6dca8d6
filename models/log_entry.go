package models

import "time"

// DateLayout is the calendar-date format used in the Date column and in
// every date-keyed comparison. Time of day never participates in filtering.
const DateLayout = "2006-01-02"

// Meal names are a closed set; the UI renders one entry form per name.
const (
	MealBreakfast = "Breakfast"
	MealLunch     = "Lunch"
	MealDinner    = "Dinner"
)

var MealNames = []string{MealBreakfast, MealLunch, MealDinner}

func ValidMeal(name string) bool {
	for _, m := range MealNames {
		if m == name {
			return true
		}
	}
	return false
}

// LogEntry is one row of the Logs sheet. Rows are append-only and never
// edited after the fact. The numeric totals are copied verbatim from the
// estimator response; nothing downstream recomputes them from the items.
type LogEntry struct {
	User      string    `json:"user"`
	Timestamp time.Time `json:"timestamp"`
	Date      string    `json:"date"` // DateLayout
	Meal      string    `json:"meal"`
	ItemsText string    `json:"items_text"`
	Calories  float64   `json:"calories_kcal"`
	Protein   float64   `json:"protein_g"`
	Carbs     float64   `json:"carbs_g"`
	Fat       float64   `json:"fat_g"`
	Fiber     float64   `json:"fiber_g"`
	RawJSON   string    `json:"json_data,omitempty"`
}
