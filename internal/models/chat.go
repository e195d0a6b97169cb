package models

import (
	"time"

	"github.com/google/uuid"
)

// Message roles.
const (
	RoleUser      = "user"
	RoleAssistant = "assistant"
)

// ChatMessage is one turn of the conversation as the client persists it.
// History is append-only and ordered by send time; messages are never
// mutated or deleted.
type ChatMessage struct {
	ID        uuid.UUID `json:"id"`
	Role      string    `json:"role"` // "user" or "assistant"
	Content   string    `json:"content"`
	Timestamp time.Time `json:"timestamp"`
	ImagePath string    `json:"image_path,omitempty"`
}

func NewChatMessage(role, content string) ChatMessage {
	return ChatMessage{
		ID:        uuid.New(),
		Role:      role,
		Content:   content,
		Timestamp: time.Now(),
	}
}

// APIMessage is the wire shape of one turn in the /chat message list.
type APIMessage struct {
	Role    string `json:"role"`
	Content string `json:"content"`
}

// UserContext is derived from local state on every request and never stored
// server-side.
type UserContext struct {
	GoalWeightLbs       float64  `json:"goalWeightLbs"`
	WeeklyCalorieTarget float64  `json:"weeklyCalorieTarget"`
	UserChallenges      []string `json:"userChallenges"`
}

// ChatRequest is the payload sent to POST /chat. ImageBase64, when present,
// is attached to the final user turn; it may or may not carry a data: prefix.
type ChatRequest struct {
	Messages    []APIMessage `json:"messages"`
	ImageBase64 string       `json:"imageBase64,omitempty"`
	UserContext *UserContext `json:"userContext,omitempty"`
}

// ChatResponse is the reply envelope. Errors are reported in-band with
// HTTP 200 so the client has a single decoding path.
type ChatResponse struct {
	Reply *string `json:"reply"`
	Error string  `json:"error,omitempty"`
}
