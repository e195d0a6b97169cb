package foodlog

import "testing"

func TestDefaultClassifier(t *testing.T) {
	tests := []struct {
		name     string
		reply    string
		lastUser string
		want     bool
	}{
		{
			"reply mentions logging",
			"You can add to your app the items we discussed.",
			"what should I eat?",
			true,
		},
		{
			"user asked to log",
			"Sounds like a balanced lunch!",
			"help me log my lunch",
			true,
		},
		{
			"bolded meal breakdown shape",
			"Here's the estimate:\n- **Chicken breast (4 oz)**: 180 calories\n- **Rice (1 cup)**: 200 calories",
			"",
			true,
		},
		{
			"parenthetical breakdown shape",
			"Chicken (4 oz): 180 and about 250 calories total.",
			"",
			true,
		},
		{
			"calories without breakdown shape",
			"A banana is about 100 calories, a nice snack.",
			"is a banana a good snack?",
			false,
		},
		{
			"plain encouragement",
			"Great consistency this week, keep it up!",
			"thanks coach",
			false,
		},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			if got := DefaultClassifier(tc.reply, tc.lastUser); got != tc.want {
				t.Errorf("Expected %v, got %v", tc.want, got)
			}
		})
	}
}
