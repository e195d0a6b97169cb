package foodlog

import (
	"math"
	"regexp"
	"strconv"
	"strings"

	"flf-coach/internal/models"
)

// Matches lines like "- **Chicken (4 oz)**: 200-250 calories" or
// "**Kale**: 50 calories". The en dash shows up in some model output.
var mealLineRe = regexp.MustCompile(`(?i)[-*]?\s*\*\*([^*]+)\*\*\s*:\s*(\d+)(?:\s*[-–]\s*(\d+))?\s*calories?`)

var quantityRe = regexp.MustCompile(`^(.+?)\s*\(([^)]+)\)\s*$`)

// ParseMealLines is the last-resort path when the follow-up completion
// fails: scan the original reply for bolded meal lines and build a block
// from them. Calorie ranges average out; protein is unknowable from this
// shape, so it defaults to zero. Returns nil when nothing matches.
func ParseMealLines(reply string) *models.FoodLogBlock {
	var items []models.FoodLogItem
	for _, m := range mealLineRe.FindAllStringSubmatch(reply, -1) {
		fullName := strings.TrimSpace(m[1])
		lo, err := strconv.Atoi(m[2])
		if err != nil {
			continue
		}
		hi := lo
		if m[3] != "" {
			if parsed, err := strconv.Atoi(m[3]); err == nil {
				hi = parsed
			}
		}

		name, quantity := fullName, ""
		if qm := quantityRe.FindStringSubmatch(fullName); qm != nil {
			name = strings.TrimSpace(qm[1])
			quantity = strings.TrimSpace(qm[2])
		}

		items = append(items, models.FoodLogItem{
			Name:     name,
			Calories: math.Round(float64(lo+hi) / 2),
			Protein:  0,
			Quantity: quantity,
		})
	}

	if len(items) == 0 {
		return nil
	}
	return &models.FoodLogBlock{Items: items}
}
