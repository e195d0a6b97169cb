package foodlog

import (
	"strings"
	"testing"

	"flf-coach/internal/models"
)

func TestExtract_RoundTrip(t *testing.T) {
	block := &models.FoodLogBlock{Items: []models.FoodLogItem{
		{Name: "Kale", Calories: 60, Protein: 2, Quantity: "2 cups"},
		{Name: "Wild rice", Calories: 100, Protein: 4, Quantity: "1/2 cup"},
		{Name: "Goat cheese", Calories: 100, Protein: 6, Quantity: "1/4 cup"},
	}}
	reply := "Nice choice! Tap each item below to add it to your Food log.\n\n" + Format(block)

	got, ok := Extract(reply)
	if !ok {
		t.Fatal("Expected block to be extracted")
	}
	if len(got.Items) != 3 {
		t.Fatalf("Expected 3 items, got %d", len(got.Items))
	}
	for i, item := range block.Items {
		if got.Items[i] != item {
			t.Errorf("Item %d: expected %+v, got %+v", i, item, got.Items[i])
		}
	}
}

func TestExtract_NoBlock(t *testing.T) {
	if _, ok := Extract("Great job staying under budget this week!"); ok {
		t.Error("Expected no block in plain reply")
	}
}

func TestExtract_InvalidJSONTreatedAsAbsent(t *testing.T) {
	reply := "Here you go.\n[FOOD_LOG]\n{\"items\":[{\"name\":]\n[/FOOD_LOG]"
	if _, ok := Extract(reply); ok {
		t.Error("Expected malformed block to be treated as absent")
	}
}

func TestExtract_EmptyItemsTreatedAsAbsent(t *testing.T) {
	reply := "Here you go.\n[FOOD_LOG]\n{\"items\":[]}\n[/FOOD_LOG]"
	if _, ok := Extract(reply); ok {
		t.Error("Expected empty items list to be treated as absent")
	}
}

func TestExtract_CaseInsensitiveDelimiters(t *testing.T) {
	reply := "Done.\n[food_log]\n{\"items\":[{\"name\":\"Oats\",\"calories\":150,\"protein\":5}]}\n[/food_log]"
	got, ok := Extract(reply)
	if !ok {
		t.Fatal("Expected lower-case delimiters to match")
	}
	if got.Items[0].Name != "Oats" {
		t.Errorf("Expected Oats, got %q", got.Items[0].Name)
	}
}

func TestExtractLoose_RawJSONWithoutDelimiters(t *testing.T) {
	got, ok := ExtractLoose(`{"items":[{"name":"Eggs","calories":140,"protein":12,"quantity":"2"}]}`)
	if !ok {
		t.Fatal("Expected raw JSON to parse")
	}
	if got.Items[0].Name != "Eggs" || got.Items[0].Calories != 140 {
		t.Errorf("Unexpected item: %+v", got.Items[0])
	}
}

func TestFormat_QuantityOmittedWhenEmpty(t *testing.T) {
	out := Format(&models.FoodLogBlock{Items: []models.FoodLogItem{{Name: "Salmon", Calories: 230, Protein: 25}}})
	if strings.Contains(out, "quantity") {
		t.Errorf("Expected quantity to be omitted, got %s", out)
	}
	if !strings.HasPrefix(out, "[FOOD_LOG]\n") || !strings.HasSuffix(out, "\n[/FOOD_LOG]") {
		t.Errorf("Expected canonical delimiters, got %s", out)
	}
}

func TestHasBlock(t *testing.T) {
	if !HasBlock("text [FOOD_LOG]{} more") {
		t.Error("Expected tag to be detected")
	}
	if HasBlock("no tags here") {
		t.Error("Expected no tag")
	}
}
