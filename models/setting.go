package models

// SettingCalorieGoal is the only setting name in use today.
const SettingCalorieGoal = "Calorie Goal"

// Setting is one row of the Settings sheet. At most one row exists per
// user; updates overwrite the value cell in place.
type Setting struct {
	User  string  `json:"user"`
	Name  string  `json:"setting_name"`
	Value float64 `json:"value"`
	Row   int     `json:"-"` // 1-based sheet row, kept for in-place updates
}
