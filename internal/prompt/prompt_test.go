package prompt

import (
	"strings"
	"testing"
)

func TestSystem_ChallengesJoined(t *testing.T) {
	tests := []struct {
		name       string
		challenges []string
		want       string
	}{
		{"single challenge", []string{"late night snacking"}, "Things the user finds challenging: late night snacking."},
		{"multiple challenges", []string{"late night snacking", "eating out", "weekends"}, "Things the user finds challenging: late night snacking; eating out; weekends."},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			got := System(Options{Challenges: tc.challenges})
			if !strings.Contains(got, tc.want) {
				t.Errorf("Expected prompt to contain %q", tc.want)
			}
			for _, ch := range tc.challenges {
				if !strings.Contains(got, ch) {
					t.Errorf("Expected prompt to contain challenge %q", ch)
				}
			}
		})
	}
}

func TestSystem_OmitsEmptyChallenges(t *testing.T) {
	got := System(Options{})
	if strings.Contains(got, "finds challenging") {
		t.Error("Expected challenges section to be omitted when list is empty")
	}
}

func TestSystem_GoalLine(t *testing.T) {
	got := System(Options{GoalWeightLbs: 150, WeeklyCalorieTarget: 12600})
	want := "User's goal weight: 150 lbs. Weekly calorie target: 12600 cal (this is their weekly food budget)."
	if !strings.Contains(got, want) {
		t.Errorf("Expected prompt to contain %q", want)
	}
}

func TestSystem_OmitsGoalLineWhenUnset(t *testing.T) {
	got := System(Options{})
	if strings.Contains(got, "goal weight:") {
		t.Error("Expected goal line to be omitted when no goal is set")
	}
}

func TestSystem_RoundsWeeklyTarget(t *testing.T) {
	got := System(Options{GoalWeightLbs: 142.5, WeeklyCalorieTarget: 142.5 * 84})
	if !strings.Contains(got, "Weekly calorie target: 11970 cal") {
		t.Errorf("Expected rounded weekly target in prompt, got:\n%s", got)
	}
}

func TestSystem_FoodLogDirective(t *testing.T) {
	withDirective := System(Options{FoodLogDirective: true})
	if !strings.HasPrefix(withDirective, "CRITICAL - Food logging:") {
		t.Error("Expected backend prompt to start with the food-log directive")
	}

	without := System(Options{})
	if strings.Contains(without, "CRITICAL - Food logging:") {
		t.Error("Expected client prompt to omit the food-log directive")
	}
	if !strings.HasPrefix(without, "You are a supportive, non-judgmental fat loss coach.") {
		t.Error("Expected client prompt to start with the base instructions")
	}
}

func TestSystem_SectionOrder(t *testing.T) {
	got := System(Options{
		GoalWeightLbs:       180,
		WeeklyCalorieTarget: 15120,
		Challenges:          []string{"travel weeks"},
		CustomInstructions:  "Always answer in one paragraph.",
	})

	idxBase := strings.Index(got, "You are a supportive")
	idxFramework := strings.Index(got, "COACHING FRAMEWORK")
	idxGoal := strings.Index(got, "User's goal weight:")
	idxChallenges := strings.Index(got, "Things the user finds challenging:")
	idxCustom := strings.Index(got, "Additional instructions")

	order := []int{idxBase, idxFramework, idxGoal, idxChallenges, idxCustom}
	for i := 1; i < len(order); i++ {
		if order[i-1] < 0 || order[i] < 0 || order[i-1] >= order[i] {
			t.Fatalf("Sections out of order: %v", order)
		}
	}
}

func TestSystem_OmitsBlankCustomInstructions(t *testing.T) {
	got := System(Options{CustomInstructions: "   \n  "})
	if strings.Contains(got, "Additional instructions") {
		t.Error("Expected whitespace-only custom instructions to be omitted")
	}
}
