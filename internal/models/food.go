package models

import (
	"github.com/google/uuid"
)

// WeeklyCalorieMultiplier converts a goal weight in pounds to a weekly
// calorie budget.
const WeeklyCalorieMultiplier = 84

// UserGoals holds the user's weight-loss goal. The weekly calorie target is
// always derived, never stored.
type UserGoals struct {
	GoalWeightLbs float64 `json:"goal_weight_lbs"`
}

func (g UserGoals) WeeklyCalorieTarget() float64 {
	return g.GoalWeightLbs * WeeklyCalorieMultiplier
}

// FoodLogItem is one suggested food inside a [FOOD_LOG] block. It exists
// only transiently in assistant replies; accepting one produces a FoodEntry.
type FoodLogItem struct {
	Name     string  `json:"name"`
	Calories float64 `json:"calories"`
	Protein  float64 `json:"protein"`
	Quantity string  `json:"quantity,omitempty"`
}

// FoodLogBlock is the delimited JSON payload embedded in a reply. A block
// with no items is treated as absent.
type FoodLogBlock struct {
	Items []FoodLogItem `json:"items"`
}

// FoodEntry is a durable food log record on the client, one item logged for
// a day. DateKey is yyyy-MM-dd in local time.
type FoodEntry struct {
	ID           string  `json:"id"`
	DateKey      string  `json:"date_key"`
	Name         string  `json:"name"`
	Calories     float64 `json:"calories"`
	ProteinGrams float64 `json:"protein_grams"`
}

func NewFoodEntry(dateKey, name string, calories, proteinGrams float64) FoodEntry {
	return FoodEntry{
		ID:           uuid.NewString(),
		DateKey:      dateKey,
		Name:         name,
		Calories:     calories,
		ProteinGrams: proteinGrams,
	}
}
