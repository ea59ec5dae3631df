// Package gemini implements captioner.Captioner against Google's Generative
// Language REST API.
//
// The API returns a much larger object than we need — as with any third-party
// response, we only unmarshal the fields we care about. A JSON response schema
// is requested so the model's reply is itself a parseable {caption, tags}
// object rather than free text.
package gemini

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"regexp"
	"strings"

	"github.com/sakif/photostream/internal/captioner"
)

var _ captioner.Captioner = (*Client)(nil)

const suggestionPrompt = "Generate a creative, engaging social media caption for this image. " +
	"Also provide 3-5 relevant hashtags as a JSON array. " +
	"Return the response as a JSON object with keys 'caption' and 'tags'."

// dataURIPrefix matches the header of a browser-produced data URI, e.g.
// "data:image/jpeg;base64,". Payloads may arrive with or without it.
var dataURIPrefix = regexp.MustCompile(`^data:image/(png|jpg|jpeg|webp);base64,`)

// Client calls the generateContent endpoint for one configured model.
type Client struct {
	config Config
	http   *http.Client
	logger *slog.Logger
}

// New creates a Gemini client. The API key is checked here so a misconfigured
// deployment fails at startup wiring, not on the first user request.
func New(cfg Config, logger *slog.Logger) (*Client, error) {
	if cfg.APIKey == "" {
		return nil, fmt.Errorf("gemini: API key is required")
	}
	if cfg.Model == "" || cfg.BaseURL == "" || cfg.Timeout <= 0 {
		return nil, fmt.Errorf("gemini: model, base URL and timeout must be set")
	}
	return &Client{
		config: cfg,
		http:   &http.Client{Timeout: cfg.Timeout},
		logger: logger,
	}, nil
}

// Request/response wire shapes, trimmed to the fields we use.

type generateRequest struct {
	Contents         []content        `json:"contents"`
	GenerationConfig generationConfig `json:"generationConfig"`
}

type content struct {
	Parts []part `json:"parts"`
}

type part struct {
	Text       string      `json:"text,omitempty"`
	InlineData *inlineData `json:"inline_data,omitempty"`
}

type inlineData struct {
	MimeType string `json:"mime_type"`
	Data     string `json:"data"`
}

type generationConfig struct {
	ResponseMimeType string          `json:"response_mime_type"`
	ResponseSchema   json.RawMessage `json:"response_schema"`
}

type generateResponse struct {
	Candidates []struct {
		Content content `json:"content"`
	} `json:"candidates"`
}

// responseSchema constrains the model to a {caption, tags} JSON object.
var responseSchema = json.RawMessage(`{
	"type": "OBJECT",
	"properties": {
		"caption": {"type": "STRING"},
		"tags": {"type": "ARRAY", "items": {"type": "STRING"}}
	}
}`)

// Suggest sends the image to the model and parses its suggestion. Any failure
// (transport, remote error status, malformed reply) is returned as a real
// error — the handler layer owns the fallback.
func (c *Client) Suggest(ctx context.Context, req captioner.Request) (*captioner.Suggestion, error) {
	if strings.TrimSpace(req.Data) == "" {
		return nil, fmt.Errorf("gemini: no image payload")
	}

	body := generateRequest{
		Contents: []content{{
			Parts: []part{
				{InlineData: &inlineData{
					MimeType: "image/jpeg",
					Data:     dataURIPrefix.ReplaceAllString(req.Data, ""),
				}},
				{Text: suggestionPrompt},
			},
		}},
		GenerationConfig: generationConfig{
			ResponseMimeType: "application/json",
			ResponseSchema:   responseSchema,
		},
	}

	payload, err := json.Marshal(body)
	if err != nil {
		return nil, fmt.Errorf("gemini: encoding request: %w", err)
	}

	url := fmt.Sprintf("%s/v1beta/models/%s:generateContent", c.config.BaseURL, c.config.Model)
	httpReq, err := http.NewRequestWithContext(ctx, http.MethodPost, url, bytes.NewReader(payload))
	if err != nil {
		return nil, fmt.Errorf("gemini: building request: %w", err)
	}
	httpReq.Header.Set("Content-Type", "application/json")
	httpReq.Header.Set("x-goog-api-key", c.config.APIKey)

	resp, err := c.http.Do(httpReq)
	if err != nil {
		return nil, fmt.Errorf("gemini: calling model: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		// Read a little of the body for the log — enough to diagnose a 404
		// (wrong model name or region) without dumping the whole reply.
		snippet, _ := io.ReadAll(io.LimitReader(resp.Body, 512))
		c.logger.Warn("gemini call failed",
			slog.Int("status", resp.StatusCode),
			slog.String("body", string(snippet)),
		)
		return nil, fmt.Errorf("gemini: model returned status %d", resp.StatusCode)
	}

	var generated generateResponse
	if err := json.NewDecoder(resp.Body).Decode(&generated); err != nil {
		return nil, fmt.Errorf("gemini: decoding response: %w", err)
	}
	if len(generated.Candidates) == 0 || len(generated.Candidates[0].Content.Parts) == 0 {
		return nil, fmt.Errorf("gemini: no candidates in response")
	}

	resultText := generated.Candidates[0].Content.Parts[0].Text
	if resultText == "" {
		return nil, fmt.Errorf("gemini: empty response text")
	}

	var suggestion captioner.Suggestion
	if err := json.Unmarshal([]byte(resultText), &suggestion); err != nil {
		return nil, fmt.Errorf("gemini: parsing suggestion: %w", err)
	}
	if suggestion.Caption == "" {
		suggestion.Caption = "Just posted a photo!"
	}

	c.logger.Info("caption suggested",
		slog.String("model", c.config.Model),
		slog.Int("tags", len(suggestion.Tags)),
	)
	return &suggestion, nil
}
