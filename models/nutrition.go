package models

// NutritionItem is one food line as broken down by the estimator.
type NutritionItem struct {
	Name         string  `json:"name"`
	QuantityText string  `json:"quantity_text"`
	Calories     float64 `json:"calories_kcal"`
	Protein      float64 `json:"protein_g"`
	Carbs        float64 `json:"carbs_g"`
	Fat          float64 `json:"fat_g"`
	Fiber        float64 `json:"fiber_g"`
}

// NutritionTotals carries the five tracked macros. Fields absent from an
// estimator response decode as 0, never null.
type NutritionTotals struct {
	Calories float64 `json:"calories_kcal"`
	Protein  float64 `json:"protein_g"`
	Carbs    float64 `json:"carbs_g"`
	Fat      float64 `json:"fat_g"`
	Fiber    float64 `json:"fiber_g"`
}

// NutritionBreakdown is the estimator's full structured answer for one meal.
// Totals are treated as ground truth; they are not re-derived from Items.
type NutritionBreakdown struct {
	Meal   string          `json:"meal"`
	Items  []NutritionItem `json:"items"`
	Totals NutritionTotals `json:"totals"`
}
