// internal/llm/assistant.go
package llm

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"strings"

	"hw-quote/internal/domain"
)

// Assistant wraps a Client with the two prompts the configurator needs.
type Assistant struct {
	client Client
}

func NewAssistant(client Client) *Assistant {
	return &Assistant{client: client}
}

// MatchConfig asks the model to map a free-text configuration onto catalog
// component ids. Categories the model cannot match are absent from the
// result. Ids are returned as given, without checking them against the catalog.
func (a *Assistant) MatchConfig(ctx context.Context, components map[string][]domain.Component, configText string) (map[string]string, error) {
	if strings.TrimSpace(configText) == "" {
		return map[string]string{}, nil
	}

	catalogJSON, err := json.Marshal(components)
	if err != nil {
		return nil, fmt.Errorf("encode components: %w", err)
	}

	reply, err := a.client.Generate(ctx, BuildMatchPrompt(string(catalogJSON), configText))
	if err != nil {
		return nil, fmt.Errorf("match config: %w", err)
	}

	raw := ExtractJSON(reply)
	if raw == "" {
		slog.Warn("Model reply without JSON", "reply", truncate(reply, 200))
		return nil, ErrNoJSON
	}

	var parsed map[string]any
	if err := json.Unmarshal([]byte(raw), &parsed); err != nil {
		return nil, fmt.Errorf("%w: %w", ErrNoJSON, err)
	}

	matched := make(map[string]string, len(parsed))
	for category, v := range parsed {
		id, ok := v.(string)
		if !ok || id == "" {
			slog.Debug("Non-string match dropped", "category", category, "value", v)
			continue
		}
		matched[category] = id
	}
	return matched, nil
}

// DraftQuote asks the model for Markdown quotation prose.
func (a *Assistant) DraftQuote(ctx context.Context, configText string, total float64) (string, error) {
	reply, err := a.client.Generate(ctx, BuildQuotePrompt(configText, total))
	if err != nil {
		return "", fmt.Errorf("draft quote: %w", err)
	}
	return strings.TrimSpace(reply), nil
}
