package handlers

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"strings"
	"time"

	"github.com/rs/zerolog"

	"flf-coach/internal/foodlog"
	"flf-coach/internal/models"
	"flf-coach/internal/openai"
	"flf-coach/internal/prompt"
)

// User-facing strings. Failures always come back as one of these, HTTP 200,
// with detail only in the server log.
const (
	msgGenericFailure = "Something went wrong. Please try again later."
	msgInvalidRequest = "Backend received an invalid request. Check that the app is using the latest version."
	msgTimeout        = "This is taking longer than usual. Please try again."

	defaultPhotoPrompt = "Here's my plate - can you estimate the calories and give me feedback?"

	mainMaxTokens  = 600
	blockMaxTokens = 400
)

// completer is what the handler needs from the provider client.
type completer interface {
	CreateCompletion(ctx context.Context, messages []openai.Message, maxTokens int, timeout time.Duration) (string, error)
}

type ChatHandler struct {
	provider completer
	classify foodlog.Classifier
	hasKey   bool

	providerTimeout   time.Duration
	blockFetchTimeout time.Duration

	log zerolog.Logger
}

func NewChatHandler(provider completer, classify foodlog.Classifier, hasKey bool, providerTimeout, blockFetchTimeout time.Duration, log zerolog.Logger) *ChatHandler {
	return &ChatHandler{
		provider:          provider,
		classify:          classify,
		hasKey:            hasKey,
		providerTimeout:   providerTimeout,
		blockFetchTimeout: blockFetchTimeout,
		log:               log,
	}
}

// Chat proxies one conversation turn to the provider and post-processes the
// reply so meal-logging turns always carry a [FOOD_LOG] block. The endpoint
// always answers HTTP 200; errors travel in-band.
func (h *ChatHandler) Chat(w http.ResponseWriter, r *http.Request) {
	if !h.hasKey {
		h.log.Error().Msg("OPENAI_API_KEY is not set; /chat cannot reach the provider")
		sendError(w, msgGenericFailure)
		return
	}

	// messages must be a JSON list; everything else about the body is
	// best-effort.
	var raw struct {
		Messages    json.RawMessage     `json:"messages"`
		ImageBase64 string              `json:"imageBase64"`
		UserContext *models.UserContext `json:"userContext"`
	}
	if err := json.NewDecoder(r.Body).Decode(&raw); err != nil {
		h.log.Error().Err(err).Msg("invalid /chat body")
		sendError(w, msgInvalidRequest)
		return
	}
	var messages []models.APIMessage
	trimmed := strings.TrimSpace(string(raw.Messages))
	if trimmed == "" || trimmed == "null" || json.Unmarshal(raw.Messages, &messages) != nil {
		h.log.Error().Str("messages", string(raw.Messages)).Msg("/chat messages is not a list")
		sendError(w, msgInvalidRequest)
		return
	}

	ctxOpts := prompt.Options{FoodLogDirective: true}
	if raw.UserContext != nil {
		ctxOpts.GoalWeightLbs = raw.UserContext.GoalWeightLbs
		ctxOpts.WeeklyCalorieTarget = raw.UserContext.WeeklyCalorieTarget
		ctxOpts.Challenges = raw.UserContext.UserChallenges
	}
	systemPrompt := prompt.System(ctxOpts)

	providerMessages := make([]openai.Message, 0, len(messages)+1)
	providerMessages = append(providerMessages, openai.Text("system", systemPrompt))
	for i, m := range messages {
		isLastUser := m.Role == models.RoleUser && i == len(messages)-1
		if isLastUser && raw.ImageBase64 != "" {
			text := m.Content
			if text == "" {
				text = defaultPhotoPrompt
			}
			providerMessages = append(providerMessages, openai.Vision(text, raw.ImageBase64))
			continue
		}
		role := m.Role
		if role == "" {
			role = models.RoleUser
		}
		providerMessages = append(providerMessages, openai.Text(role, m.Content))
	}

	reply, err := h.provider.CreateCompletion(r.Context(), providerMessages, mainMaxTokens, h.providerTimeout)
	if err != nil {
		h.respondError(w, err)
		return
	}

	lastUserContent := ""
	if len(messages) > 0 && messages[len(messages)-1].Role == models.RoleUser {
		lastUserContent = messages[len(messages)-1].Content
	}

	if h.classify(reply, lastUserContent) && !foodlog.HasBlock(reply) {
		block := h.fetchFoodLogBlock(r.Context(), lastUserContent, reply)
		if block == nil {
			block = foodlog.ParseMealLines(reply)
		}
		if block != nil {
			reply = foodlog.Rewrite(reply, block)
		}
	}

	writeJSON(w, http.StatusOK, models.ChatResponse{Reply: &reply})
}

// fetchFoodLogBlock issues the constrained follow-up completion that should
// emit nothing but a block. Any failure returns nil; the caller falls back
// to the line parser and, failing that, leaves the reply alone.
func (h *ChatHandler) fetchFoodLogBlock(ctx context.Context, lastUserMessage, reply string) *models.FoodLogBlock {
	messages := []openai.Message{
		openai.Text("system", prompt.BlockOnly),
		openai.Text("user", "User said: "+lastUserMessage),
		openai.Text("assistant", reply),
		openai.Text("user", "Output only the [FOOD_LOG] block for the meal discussed above."),
	}

	text, err := h.provider.CreateCompletion(ctx, messages, blockMaxTokens, h.blockFetchTimeout)
	if err != nil {
		h.log.Warn().Err(err).Msg("food-log block fetch failed; falling back to line parser")
		return nil
	}

	block, ok := foodlog.ExtractLoose(text)
	if !ok {
		h.log.Warn().Msg("food-log block fetch returned unusable content")
		return nil
	}
	return block
}

func (h *ChatHandler) respondError(w http.ResponseWriter, err error) {
	var apiErr *openai.APIError
	switch {
	case errors.Is(err, openai.ErrTimeout):
		h.log.Error().Err(err).Msg("provider call timed out")
		sendError(w, msgTimeout)
	case errors.As(err, &apiErr):
		h.log.Error().Int("status", apiErr.StatusCode).Str("code", apiErr.Code).Msg("provider API error")
		msg := apiErr.Message
		if msg == "" {
			msg = msgGenericFailure
		}
		sendError(w, msg)
	default:
		h.log.Error().Err(err).Msg("provider call failed")
		sendError(w, msgGenericFailure)
	}
}

// sendError reports a failure in-band with a success-shaped envelope.
func sendError(w http.ResponseWriter, msg string) {
	writeJSON(w, http.StatusOK, models.ChatResponse{Reply: nil, Error: msg})
}

func writeJSON(w http.ResponseWriter, status int, data interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(data)
}
