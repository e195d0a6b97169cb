// Package prompt assembles the system instructions sent to the model.
// Assembly is deterministic and cheap, so the prompt is rebuilt per request.
package prompt

import (
	"fmt"
	"math"
	"strings"
)

// Options selects the per-user sections of the system prompt. Zero-value
// sections are omitted entirely, never emitted empty.
type Options struct {
	GoalWeightLbs       float64
	WeeklyCalorieTarget float64
	Challenges          []string

	// FoodLogDirective includes the backend-only instruction that replies
	// about meals must end with a [FOOD_LOG] block.
	FoodLogDirective bool

	// CustomInstructions is free text appended last (direct-provider path
	// only; the backend owns its own prompt).
	CustomInstructions string
}

// System builds the full system prompt: directive (backend only), base
// instructions, coaching framework, then the per-user sections, joined by
// blank lines.
func System(opts Options) string {
	parts := make([]string, 0, 5)
	if opts.FoodLogDirective {
		parts = append(parts, foodLogDirective)
	}
	parts = append(parts, baseInstructions, coachFramework)

	if opts.GoalWeightLbs > 0 || opts.WeeklyCalorieTarget > 0 {
		parts = append(parts, fmt.Sprintf(
			"User's goal weight: %g lbs. Weekly calorie target: %d cal (this is their weekly food budget).",
			opts.GoalWeightLbs, int(math.Round(opts.WeeklyCalorieTarget))))
	}

	if len(opts.Challenges) > 0 {
		parts = append(parts, fmt.Sprintf(
			"Things the user finds challenging: %s.", strings.Join(opts.Challenges, "; ")))
	}

	if custom := strings.TrimSpace(opts.CustomInstructions); custom != "" {
		parts = append(parts, "Additional instructions for how you should act:\n"+custom)
	}

	return strings.Join(parts, "\n\n")
}
