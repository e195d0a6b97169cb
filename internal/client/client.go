// Package client is the on-device chat orchestrator: it keeps the
// conversation history, talks to the backend proxy (or, for local dev, the
// provider directly), and turns accepted food-log suggestions into durable
// food entries.
package client

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"strings"
	"time"

	"github.com/rs/zerolog"

	"flf-coach/internal/config"
	"flf-coach/internal/models"
	"flf-coach/internal/openai"
	"flf-coach/internal/prompt"
	"flf-coach/internal/storage"
)

const (
	// maxHistoryMessages bounds the window of prior turns sent per request.
	maxHistoryMessages = 20

	// Fail fast instead of hanging; the user gets a clear message and can
	// retry.
	requestTimeout = 25 * time.Second

	directMaxTokens = 512
)

// User-facing strings for the backend path.
const (
	msgGeneric    = "Something went wrong. Please try again."
	msgTimeout    = "This is taking longer than usual. Please try again."
	msgConnecting = "We're having trouble connecting. Please try again."
	msgNoPhotos   = "I can't analyze photos right now. Please try again later or type your question."
)

type Service struct {
	store              *storage.Store
	backendURL         string
	apiKey             string
	customInstructions string

	provider   *openai.Client
	httpClient *http.Client
	timeout    time.Duration

	log zerolog.Logger
}

func New(store *storage.Store, cfg *config.ClientConfig, log zerolog.Logger) *Service {
	return &Service{
		store:              store,
		backendURL:         strings.TrimRight(strings.TrimSpace(cfg.BackendURL), "/"),
		apiKey:             cfg.OpenAIAPIKey,
		customInstructions: cfg.CustomInstructions,
		provider:           openai.NewClient(cfg.OpenAIBaseURL, cfg.OpenAIAPIKey),
		httpClient:         &http.Client{},
		timeout:            requestTimeout,
		log:                log,
	}
}

// Send records the user's turn, gets the coach's reply, records it, and
// returns the stored assistant message. Chat failures never surface as
// errors; they become short apologetic replies. Errors mean local storage
// failed.
func (s *Service) Send(ctx context.Context, text, imageBase64 string) (models.ChatMessage, error) {
	history, err := s.store.RecentMessages(ctx, maxHistoryMessages)
	if err != nil {
		return models.ChatMessage{}, fmt.Errorf("load history: %w", err)
	}

	userMsg := models.NewChatMessage(models.RoleUser, text)
	if err := s.store.AppendMessage(ctx, userMsg); err != nil {
		return models.ChatMessage{}, fmt.Errorf("store user message: %w", err)
	}

	reply := s.respond(ctx, text, imageBase64, history)

	assistantMsg := models.NewChatMessage(models.RoleAssistant, reply)
	if err := s.store.AppendMessage(ctx, assistantMsg); err != nil {
		return models.ChatMessage{}, fmt.Errorf("store assistant message: %w", err)
	}
	return assistantMsg, nil
}

func (s *Service) respond(ctx context.Context, text, imageBase64 string, history []models.ChatMessage) string {
	if s.backendURL != "" {
		return s.callBackend(ctx, text, imageBase64, history)
	}
	if imageBase64 != "" {
		return msgNoPhotos
	}
	if s.apiKey != "" {
		return s.callDirect(ctx, text, history)
	}
	return s.localFallback(text)
}

// userContext is rebuilt from local state on every call; it is never cached
// or sent anywhere except inside the request.
func (s *Service) userContext(ctx context.Context) (*models.UserContext, error) {
	goals, err := s.store.Goals(ctx)
	if err != nil {
		return nil, err
	}
	challenges, err := s.store.Challenges(ctx)
	if err != nil {
		return nil, err
	}

	uc := &models.UserContext{UserChallenges: challenges}
	if goals != nil {
		uc.GoalWeightLbs = goals.GoalWeightLbs
		uc.WeeklyCalorieTarget = goals.WeeklyCalorieTarget()
	}
	return uc, nil
}

// SystemPrompt builds the direct-path system prompt (no food-log directive;
// the backend owns its own).
func (s *Service) SystemPrompt(ctx context.Context) (string, error) {
	uc, err := s.userContext(ctx)
	if err != nil {
		return "", err
	}
	return prompt.System(prompt.Options{
		GoalWeightLbs:       uc.GoalWeightLbs,
		WeeklyCalorieTarget: uc.WeeklyCalorieTarget,
		Challenges:          uc.UserChallenges,
		CustomInstructions:  s.customInstructions,
	}), nil
}

func (s *Service) callBackend(ctx context.Context, text, imageBase64 string, history []models.ChatMessage) string {
	apiMessages := make([]models.APIMessage, 0, len(history)+1)
	for _, msg := range history {
		apiMessages = append(apiMessages, models.APIMessage{Role: msg.Role, Content: msg.Content})
	}
	apiMessages = append(apiMessages, models.APIMessage{Role: models.RoleUser, Content: text})

	uc, err := s.userContext(ctx)
	if err != nil {
		s.log.Error().Err(err).Msg("build user context")
		return msgGeneric
	}

	body, err := json.Marshal(models.ChatRequest{
		Messages:    apiMessages,
		ImageBase64: imageBase64,
		UserContext: uc,
	})
	if err != nil {
		return msgGeneric
	}

	callCtx, cancel := context.WithTimeout(ctx, s.timeout)
	defer cancel()

	req, err := http.NewRequestWithContext(callCtx, http.MethodPost, s.backendURL+"/chat", bytes.NewReader(body))
	if err != nil {
		return msgGeneric
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := s.httpClient.Do(req)
	if err != nil {
		if errors.Is(err, context.DeadlineExceeded) || callCtx.Err() == context.DeadlineExceeded {
			return msgTimeout
		}
		s.log.Error().Err(err).Msg("backend call failed")
		return msgConnecting
	}
	defer resp.Body.Close()

	var decoded models.ChatResponse
	if err := json.NewDecoder(resp.Body).Decode(&decoded); err != nil || resp.StatusCode != http.StatusOK {
		s.log.Error().Err(err).Int("status", resp.StatusCode).Msg("unexpected backend response")
		return msgGeneric
	}

	if decoded.Reply != nil && strings.TrimSpace(*decoded.Reply) != "" {
		return strings.TrimSpace(*decoded.Reply)
	}
	if decoded.Error != "" {
		return decoded.Error
	}
	return msgGeneric
}

func (s *Service) callDirect(ctx context.Context, text string, history []models.ChatMessage) string {
	systemPrompt, err := s.SystemPrompt(ctx)
	if err != nil {
		s.log.Error().Err(err).Msg("build system prompt")
		return msgGeneric
	}

	messages := make([]openai.Message, 0, len(history)+2)
	messages = append(messages, openai.Text("system", systemPrompt))
	for _, msg := range history {
		messages = append(messages, openai.Text(msg.Role, msg.Content))
	}
	messages = append(messages, openai.Text(models.RoleUser, text))

	reply, err := s.provider.CreateCompletion(ctx, messages, directMaxTokens, s.timeout)
	if err != nil {
		var apiErr *openai.APIError
		switch {
		case errors.Is(err, openai.ErrTimeout):
			return "Request timed out. Check your connection and API key, then try again."
		case errors.As(err, &apiErr):
			return fmt.Sprintf("API error: %s. Check your API key and try again.", apiErr.Message)
		default:
			s.log.Error().Err(err).Msg("direct provider call failed")
			return "Network error. Check your connection and API key."
		}
	}
	return reply
}

// localFallback keeps the chat minimally useful with no backend and no key.
func (s *Service) localFallback(userMessage string) string {
	lower := strings.ToLower(userMessage)
	switch {
	case strings.Contains(lower, "challeng") || strings.Contains(lower, "hard") || strings.Contains(lower, "struggle"):
		return "It sounds like you're hitting a rough patch—that's really common. Would you like me to remember this so I can check in later? You can also add it to your challenges in this chat so I keep it in mind. What would help most right now: a small step for today or just acknowledging that it's okay to have off days?"
	case strings.Contains(lower, "calor") || strings.Contains(lower, "budget") || strings.Contains(lower, "week"):
		return "Your weekly target is in your Overview tab—you can see how many calories you have left for the week there. If you're under, you have room; if you're over, we can focus on the next week without guilt. Want to talk through a plan for the rest of the week?"
	case strings.Contains(lower, "weight") || strings.Contains(lower, "scale"):
		return "Daily weigh-ins are just data—they help you see trends, not define you. Keep logging in the Weigh In tab; over time the trend matters more than any single number. How are you feeling aside from the number?"
	case strings.Contains(lower, "goal"):
		return "I've got your goal weight and weekly calorie target in mind. Consistency beats perfection: small, sustainable steps will get you there. What's one thing you can do today that feels doable?"
	default:
		return "I'm here to support you. Tell me about your wins, struggles, or questions—I'll do my best to help."
	}
}
