package client

import (
	"context"
	"fmt"
	"time"

	"flf-coach/internal/foodlog"
	"flf-coach/internal/models"
)

// Suggestions returns the food-log items embedded in an assistant message,
// or nil when it carries no usable block.
func (s *Service) Suggestions(msg models.ChatMessage) []models.FoodLogItem {
	block, ok := foodlog.Extract(msg.Content)
	if !ok {
		return nil
	}
	return block.Items
}

// ApplySuggestion logs one suggested item as a food entry dated today.
// The (message ID, item index) pair is the idempotency key: applying the
// same suggestion twice creates exactly one entry, and the applied state
// survives restarts.
func (s *Service) ApplySuggestion(ctx context.Context, msg models.ChatMessage, index int) (bool, models.FoodEntry, error) {
	items := s.Suggestions(msg)
	if index < 0 || index >= len(items) {
		return false, models.FoodEntry{}, fmt.Errorf("suggestion index %d out of range (message has %d items)", index, len(items))
	}
	item := items[index]

	name := item.Name
	if item.Quantity != "" {
		name = fmt.Sprintf("%s (%s)", item.Name, item.Quantity)
	}

	entry := models.NewFoodEntry(time.Now().Format("2006-01-02"), name, item.Calories, item.Protein)
	key := fmt.Sprintf("%s:%d", msg.ID, index)

	applied, err := s.store.ApplySuggestion(ctx, key, entry)
	if err != nil {
		return false, models.FoodEntry{}, err
	}
	if !applied {
		return false, models.FoodEntry{}, nil
	}
	return true, entry, nil
}
