package foodlog

import "testing"

func TestParseMealLines_RangeAveraged(t *testing.T) {
	block := ParseMealLines("**Kale (2 cups)**: 50-70 calories")
	if block == nil {
		t.Fatal("Expected a block")
	}
	if len(block.Items) != 1 {
		t.Fatalf("Expected 1 item, got %d", len(block.Items))
	}

	item := block.Items[0]
	if item.Name != "Kale" {
		t.Errorf("Expected name Kale, got %q", item.Name)
	}
	if item.Quantity != "2 cups" {
		t.Errorf("Expected quantity '2 cups', got %q", item.Quantity)
	}
	if item.Calories != 60 {
		t.Errorf("Expected calories 60 (average of 50-70), got %v", item.Calories)
	}
	if item.Protein != 0 {
		t.Errorf("Expected protein 0, got %v", item.Protein)
	}
}

func TestParseMealLines_MultipleLines(t *testing.T) {
	reply := `Here's my estimate for your plate:
- **Grilled chicken (4 oz)**: 180 calories
- **Brown rice (1 cup)**: 215 calories
- **Broccoli**: 50-60 calories`

	block := ParseMealLines(reply)
	if block == nil {
		t.Fatal("Expected a block")
	}
	if len(block.Items) != 3 {
		t.Fatalf("Expected 3 items, got %d", len(block.Items))
	}

	if block.Items[0].Name != "Grilled chicken" || block.Items[0].Quantity != "4 oz" || block.Items[0].Calories != 180 {
		t.Errorf("Unexpected first item: %+v", block.Items[0])
	}
	if block.Items[2].Name != "Broccoli" || block.Items[2].Quantity != "" || block.Items[2].Calories != 55 {
		t.Errorf("Unexpected third item: %+v", block.Items[2])
	}
}

func TestParseMealLines_EnDashRange(t *testing.T) {
	block := ParseMealLines("**Latte (16 oz)**: 180–220 calories")
	if block == nil {
		t.Fatal("Expected a block")
	}
	if block.Items[0].Calories != 200 {
		t.Errorf("Expected calories 200, got %v", block.Items[0].Calories)
	}
}

func TestParseMealLines_NoMatch(t *testing.T) {
	if block := ParseMealLines("Keep drinking water and aim for protein at every meal."); block != nil {
		t.Errorf("Expected nil, got %+v", block)
	}
}
