// Package foodlog turns free-text coach replies into machine-parseable meal
// suggestions: it detects when a reply concerns logging, extracts or
// reconstructs the delimited [FOOD_LOG] block, and rewrites the visible
// reply around it.
package foodlog

import (
	"encoding/json"
	"regexp"

	"flf-coach/internal/models"
)

var (
	blockRe = regexp.MustCompile(`(?is)\[FOOD_LOG\]\s*(.*?)\s*\[/FOOD_LOG\]`)
	itemsRe = regexp.MustCompile(`(?s)\{.*"items".*\}`)
	hasTag  = regexp.MustCompile(`(?i)\[FOOD_LOG\]`)
)

// HasBlock reports whether the reply already carries a [FOOD_LOG] tag.
func HasBlock(reply string) bool {
	return hasTag.MatchString(reply)
}

// Extract finds the delimited block in a reply and parses its JSON payload.
// A missing block, unparseable JSON, or an empty items list all return
// (nil, false): a bad block is treated as absent, never as an error.
func Extract(reply string) (*models.FoodLogBlock, bool) {
	candidate := reply
	if m := blockRe.FindStringSubmatch(reply); m != nil {
		candidate = m[1]
	} else if !hasTag.MatchString(reply) {
		return nil, false
	}

	jsonMatch := itemsRe.FindString(candidate)
	if jsonMatch == "" {
		return nil, false
	}

	var block models.FoodLogBlock
	if err := json.Unmarshal([]byte(jsonMatch), &block); err != nil {
		return nil, false
	}
	if len(block.Items) == 0 {
		return nil, false
	}
	return &block, true
}

// ExtractLoose parses a constrained follow-up completion whose whole output
// should be a block, tolerating missing delimiters around the raw JSON.
func ExtractLoose(text string) (*models.FoodLogBlock, bool) {
	if m := blockRe.FindStringSubmatch(text); m != nil {
		text = m[1]
	}
	jsonMatch := itemsRe.FindString(text)
	if jsonMatch == "" {
		return nil, false
	}

	var block models.FoodLogBlock
	if err := json.Unmarshal([]byte(jsonMatch), &block); err != nil {
		return nil, false
	}
	if len(block.Items) == 0 {
		return nil, false
	}
	return &block, true
}

// Format renders a block canonically, ready to append to a reply.
func Format(block *models.FoodLogBlock) string {
	payload, _ := json.Marshal(block)
	return "[FOOD_LOG]\n" + string(payload) + "\n[/FOOD_LOG]"
}
