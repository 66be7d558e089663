package openai

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/reliantpm/docfiler/internal/llm"
	"github.com/reliantpm/docfiler/internal/resolve"
)

// MatchVendor implements resolve.Matcher using text-only chat/completions.
// The model is handed the numbered vendor list and a bounded excerpt; its
// reply is schema-validated, and anything other than a listed name comes back
// as the no-match sentinel.
func (c *Client) MatchVendor(ctx context.Context, vendors []string, excerpt string) (string, error) {
	rid := uuid.New().String()
	start := time.Now()

	c.logger.Info("llm.match.start",
		"req_id", rid,
		"model", c.cfg.Model,
		"temp", c.cfg.Temperature,
		"vendors", len(vendors),
		"excerpt_len", len(excerpt),
	)

	schema := llm.BuildVendorMatchSchema(vendors, resolve.NoMatch)
	sys := llm.BuildVendorSystemPrompt(resolve.NoMatch)
	user := llm.BuildVendorUserPrompt(vendors, excerpt)

	body := map[string]any{
		"model":           c.cfg.Model,
		"temperature":     c.cfg.Temperature,
		"response_format": map[string]any{"type": "json_object"},
		"messages": []map[string]any{
			{"role": "system", "content": sys},
			{"role": "user", "content": user},
		},
	}

	endpoint := strings.TrimRight(c.cfg.BaseURL, "/") + "/chat/completions"
	raw, _, err := llm.SendJSON(ctx, c.http, endpoint, body, map[string]string{
		"Authorization": "Bearer " + c.cfg.APIKey,
	}, c.logger)
	if err != nil {
		c.logger.Error("llm.match.http_error",
			"req_id", rid, "error", err,
			"elapsed_ms", time.Since(start).Milliseconds(),
		)
		return "", err
	}

	var cc struct {
		Choices []struct {
			Message struct {
				Content string `json:"content"`
			} `json:"message"`
		} `json:"choices"`
	}
	if err := json.Unmarshal(raw, &cc); err != nil {
		c.logger.Error("llm.match.decode_error",
			"req_id", rid, "error", err, "raw_bytes", len(raw),
			"elapsed_ms", time.Since(start).Milliseconds(),
		)
		return "", fmt.Errorf("decode openai response: %w", err)
	}
	if len(cc.Choices) == 0 {
		c.logger.Error("llm.match.no_choices",
			"req_id", rid,
			"elapsed_ms", time.Since(start).Milliseconds(),
		)
		return "", fmt.Errorf("no choices in openai response")
	}
	content := []byte(strings.TrimSpace(cc.Choices[0].Message.Content))

	if err := llm.ValidateJSONAgainstSchema(schema, content); err != nil {
		// A reply outside the enum means an unlisted vendor name; that is a
		// no-match, not a transport failure.
		c.logger.Warn("llm.match.schema_rejected",
			"req_id", rid, "error", err,
			"elapsed_ms", time.Since(start).Milliseconds(),
		)
		return resolve.NoMatch, nil
	}

	var out struct {
		Vendor string `json:"vendor"`
	}
	if err := json.Unmarshal(content, &out); err != nil {
		return "", fmt.Errorf("unmarshal vendor match: %w", err)
	}

	c.logger.Info("llm.match.ok",
		"req_id", rid,
		"vendor", out.Vendor,
		"elapsed_ms", time.Since(start).Milliseconds(),
	)
	return out.Vendor, nil
}
