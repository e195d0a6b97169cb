// Package openai is a minimal client for the chat-completions API. It makes
// one attempt per call with a single timeout; there are no retries.
package openai

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"
)

const (
	// Model is fixed; the app never exposes model selection.
	Model = "gpt-4o-mini"

	completionsPath = "/v1/chat/completions"
)

// ErrTimeout marks a call that exceeded its deadline, so callers can use the
// "taking longer than usual" wording instead of the generic failure one.
var ErrTimeout = errors.New("openai: request timed out")

// APIError is a non-success response from the provider. Its message is safe
// to surface in-band; the handler logs the rest.
type APIError struct {
	StatusCode int
	Code       string
	Message    string
}

func (e *APIError) Error() string {
	if e.Message != "" {
		return fmt.Sprintf("openai: %s", e.Message)
	}
	if e.Code != "" {
		return fmt.Sprintf("openai: %s", e.Code)
	}
	return fmt.Sprintf("openai: HTTP %d", e.StatusCode)
}

// Message is one chat-completions turn. Content is either a plain string or
// a []ContentPart for vision turns.
type Message struct {
	Role    string `json:"role"`
	Content any    `json:"content"`
}

type ContentPart struct {
	Type     string    `json:"type"`
	Text     string    `json:"text,omitempty"`
	ImageURL *ImageURL `json:"image_url,omitempty"`
}

type ImageURL struct {
	URL string `json:"url"`
}

// Text builds a plain message.
func Text(role, content string) Message {
	return Message{Role: role, Content: content}
}

// Vision builds a user turn carrying text plus an image as a data URI.
func Vision(text, imageBase64 string) Message {
	return Message{
		Role: "user",
		Content: []ContentPart{
			{Type: "text", Text: text},
			{Type: "image_url", ImageURL: &ImageURL{URL: NormalizeImageDataURI(imageBase64)}},
		},
	}
}

// NormalizeImageDataURI prepends the jpeg data-URI prefix unless the payload
// already carries one.
func NormalizeImageDataURI(imageBase64 string) string {
	if strings.HasPrefix(imageBase64, "data:") {
		return imageBase64
	}
	return "data:image/jpeg;base64," + imageBase64
}

type completionRequest struct {
	Model     string    `json:"model"`
	Messages  []Message `json:"messages"`
	MaxTokens int       `json:"max_tokens,omitempty"`
}

type completionResponse struct {
	Choices []struct {
		Message struct {
			Role    string `json:"role"`
			Content string `json:"content"`
		} `json:"message"`
	} `json:"choices"`
	Error *struct {
		Message string `json:"message"`
		Code    string `json:"code"`
	} `json:"error"`
}

type Client struct {
	baseURL    string
	apiKey     string
	httpClient *http.Client
}

func NewClient(baseURL, apiKey string) *Client {
	return &Client{
		baseURL:    strings.TrimRight(baseURL, "/"),
		apiKey:     apiKey,
		httpClient: &http.Client{},
	}
}

// CreateCompletion sends one chat-completion request and returns the first
// choice's text, trimmed. Deadline overruns map to ErrTimeout.
func (c *Client) CreateCompletion(ctx context.Context, messages []Message, maxTokens int, timeout time.Duration) (string, error) {
	body, err := json.Marshal(completionRequest{
		Model:     Model,
		Messages:  messages,
		MaxTokens: maxTokens,
	})
	if err != nil {
		return "", fmt.Errorf("marshal completion request: %w", err)
	}

	callCtx, cancel := context.WithTimeout(ctx, timeout)
	defer cancel()

	req, err := http.NewRequestWithContext(callCtx, http.MethodPost, c.baseURL+completionsPath, bytes.NewReader(body))
	if err != nil {
		return "", fmt.Errorf("build completion request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Authorization", "Bearer "+c.apiKey)

	resp, err := c.httpClient.Do(req)
	if err != nil {
		if errors.Is(err, context.DeadlineExceeded) || callCtx.Err() == context.DeadlineExceeded {
			return "", ErrTimeout
		}
		return "", fmt.Errorf("call completion endpoint: %w", err)
	}
	defer resp.Body.Close()

	raw, err := io.ReadAll(resp.Body)
	if err != nil {
		if callCtx.Err() == context.DeadlineExceeded {
			return "", ErrTimeout
		}
		return "", fmt.Errorf("read completion response: %w", err)
	}

	var decoded completionResponse
	if err := json.Unmarshal(raw, &decoded); err != nil {
		return "", fmt.Errorf("decode completion response (HTTP %d): %w", resp.StatusCode, err)
	}

	if resp.StatusCode != http.StatusOK {
		apiErr := &APIError{StatusCode: resp.StatusCode}
		if decoded.Error != nil {
			apiErr.Message = decoded.Error.Message
			apiErr.Code = decoded.Error.Code
		}
		return "", apiErr
	}

	if len(decoded.Choices) == 0 {
		return "", fmt.Errorf("completion response has no choices")
	}

	text := strings.TrimSpace(decoded.Choices[0].Message.Content)
	if text == "" {
		return "", fmt.Errorf("completion response has empty content")
	}
	return text, nil
}
