// Package scribe calls the generative-text service to draft or polish a
// message body and to suggest a theme. Every failure path, from missing
// configuration to a malformed response, degrades to returning
// the caller's input (or the default theme) and never raises a hard error.
package scribe

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"strings"
	"time"

	"github.com/lixenwraith/keepsake/logger"
	"github.com/lixenwraith/keepsake/model"
	"github.com/lixenwraith/keepsake/theme"
)

// Mode selects between drafting from scratch and polishing existing text.
type Mode uint8

const (
	ModeDraft Mode = iota
	ModePolish
)

// Provider is a prompt-in/text-out remote call.
type Provider interface {
	Complete(ctx context.Context, prompt string) (string, error)
}

// OllamaProvider talks to an Ollama-compatible generate endpoint.
type OllamaProvider struct {
	baseURL string
	model   string
	client  *http.Client
}

// NewOllamaProvider creates a provider against baseURL (e.g.
// http://localhost:11434) and model name.
func NewOllamaProvider(baseURL, modelName string) *OllamaProvider {
	return &OllamaProvider{
		baseURL: strings.TrimRight(baseURL, "/"),
		model:   modelName,
		client:  &http.Client{Timeout: 30 * time.Second},
	}
}

type generateRequest struct {
	Model  string `json:"model"`
	Prompt string `json:"prompt"`
	Stream bool   `json:"stream"`
}

type generateResponse struct {
	Response string `json:"response"`
}

func (p *OllamaProvider) Complete(ctx context.Context, prompt string) (string, error) {
	body, _ := json.Marshal(generateRequest{Model: p.model, Prompt: prompt})
	req, err := http.NewRequestWithContext(ctx, "POST", p.baseURL+"/api/generate", bytes.NewReader(body))
	if err != nil {
		return "", err
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := p.client.Do(req)
	if err != nil {
		return "", fmt.Errorf("scribe request failed: %w", err)
	}
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusOK {
		return "", fmt.Errorf("scribe returned status %d", resp.StatusCode)
	}
	var gr generateResponse
	if err := json.NewDecoder(resp.Body).Decode(&gr); err != nil {
		return "", fmt.Errorf("decode scribe response: %w", err)
	}
	if strings.TrimSpace(gr.Response) == "" {
		return "", fmt.Errorf("scribe returned empty response")
	}
	return strings.TrimSpace(gr.Response), nil
}

// Scribe wraps a provider with the degradation policy. A nil provider means
// unconfigured: every call falls through immediately.
type Scribe struct {
	provider Provider
}

// New creates a Scribe. provider may be nil.
func New(provider Provider) *Scribe {
	return &Scribe{provider: provider}
}

// DraftOrPolish returns generated or polished text for the message, or the
// input unchanged when the service is unavailable or unusable.
func (s *Scribe) DraftOrPolish(ctx context.Context, text, sender, recipient string, rel model.Relationship, mode Mode) string {
	if s.provider == nil {
		return text
	}
	var prompt string
	if mode == ModeDraft {
		prompt = fmt.Sprintf(
			"Write a short, warm greeting-card message (3-5 sentences) from %s to their %s, %s. Plain text only.",
			sender, rel, recipient)
	} else {
		prompt = fmt.Sprintf(
			"Polish this greeting-card message from %s to their %s, %s. Keep the voice, fix the flow, stay under 6 sentences. Plain text only.\n\n%s",
			sender, rel, recipient, text)
	}
	out, err := s.provider.Complete(ctx, prompt)
	if err != nil {
		logger.Log.Debug("scribe degraded to input", "err", err)
		return text
	}
	return out
}

// SuggestTheme asks for a theme matching the text and relationship,
// defaulting when the answer doesn't name a registered theme.
func (s *Scribe) SuggestTheme(ctx context.Context, text string, rel model.Relationship) theme.ID {
	if s.provider == nil {
		return theme.Default
	}
	ids := theme.All()
	names := make([]string, len(ids))
	for i, id := range ids {
		names[i] = string(id)
	}
	prompt := fmt.Sprintf(
		"Pick the one best matching theme for a greeting card to a %s with this text, answering with exactly one word from: %s\n\n%s",
		rel, strings.Join(names, ", "), text)
	out, err := s.provider.Complete(ctx, prompt)
	if err != nil {
		logger.Log.Debug("theme suggestion degraded to default", "err", err)
		return theme.Default
	}
	answer := strings.ToUpper(strings.TrimSpace(out))
	for _, id := range ids {
		if strings.Contains(answer, string(id)) {
			return id
		}
	}
	return theme.Default
}
