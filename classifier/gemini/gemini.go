// SPDX-License-Identifier: GPL-3.0-or-later
package gemini

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/mvelho/go-mail-triage/config"
	"github.com/mvelho/go-mail-triage/domain"
	"github.com/mvelho/go-mail-triage/log"

	"github.com/sirupsen/logrus"
)

const (
	GeminiTimeout = 30 * time.Second

	// MaxBodyChars caps the email body sent with the prompt.
	MaxBodyChars = 8000
)

type Gemini struct {
	client   *http.Client
	endpoint string
	model    string
	apiKey   string
	l        *logrus.Logger
}

func NewGemini(conf *config.Config) *Gemini {
	return &Gemini{
		client: &http.Client{
			Timeout: GeminiTimeout,
		},
		endpoint: conf.GeminiEndpoint,
		model:    conf.GeminiModel,
		apiKey:   conf.GeminiAPIKey,
		l:        log.Logger(log.LOG_CLASSIFIER),
	}
}

type generateRequest struct {
	Contents []content `json:"contents"`
}

type content struct {
	Parts []part `json:"parts"`
}

type part struct {
	Text string `json:"text"`
}

type generateResponse struct {
	Candidates []struct {
		Content struct {
			Parts []part `json:"parts"`
		} `json:"content"`
	} `json:"candidates"`
	Error *struct {
		Code    int    `json:"code"`
		Status  string `json:"status"`
		Message string `json:"message"`
	} `json:"error"`
}

type classifyResult struct {
	Summary  string `json:"summary"`
	Category string `json:"category"`
}

// Classify asks the model for a one-sentence summary and a single category
// choice. Quota exhaustion propagates as domain.ErrQuotaExhausted; every
// other failure is logged and reported as no result.
func (g *Gemini) Classify(ctx context.Context, body string, categories []*domain.Category) (*domain.Classification, error) {
	prompt := buildPrompt(body, categories)

	payload, err := json.Marshal(&generateRequest{
		Contents: []content{{Parts: []part{{Text: prompt}}}},
	})
	if err != nil {
		return nil, fmt.Errorf("could not serialize request: %w", err)
	}

	url := fmt.Sprintf("%s/models/%s:generateContent?key=%s", g.endpoint, g.model, g.apiKey)
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, url, bytes.NewReader(payload))
	if err != nil {
		return nil, fmt.Errorf("could not create request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := g.client.Do(req)
	if err != nil {
		g.l.WithField("error", err).Warn("Could not reach classification backend")
		return nil, nil
	}
	defer resp.Body.Close()

	if resp.StatusCode == http.StatusTooManyRequests {
		return nil, fmt.Errorf("backend rejected request with status %d: %w", resp.StatusCode, domain.ErrQuotaExhausted)
	}

	responseBody, err := io.ReadAll(resp.Body)
	if err != nil {
		g.l.WithField("error", err).Warn("Could not read backend response")
		return nil, nil
	}

	generateResponse := &generateResponse{}
	err = json.Unmarshal(responseBody, generateResponse)
	if err != nil {
		g.l.WithField("error", err).Warn("Could not deserialize backend response")
		return nil, nil
	}

	if generateResponse.Error != nil && generateResponse.Error.Status == "RESOURCE_EXHAUSTED" {
		return nil, fmt.Errorf("backend reported %s: %w", generateResponse.Error.Status, domain.ErrQuotaExhausted)
	}

	if resp.StatusCode != http.StatusOK {
		g.l.WithField("status", resp.StatusCode).Warn("Unexpected status from classification backend")
		return nil, nil
	}

	if len(generateResponse.Candidates) == 0 || len(generateResponse.Candidates[0].Content.Parts) == 0 {
		g.l.Warn("No candidates in backend response")
		return nil, nil
	}

	result := &classifyResult{}
	err = json.Unmarshal([]byte(stripFences(generateResponse.Candidates[0].Content.Parts[0].Text)), result)
	if err != nil {
		g.l.WithField("error", err).Warn("Could not parse classification result")
		return nil, nil
	}

	if len(result.Category) == 0 {
		g.l.Warn("Classification result contains no category")
		return nil, nil
	}

	g.l.WithFields(logrus.Fields{"category": result.Category}).Debug("Classified mail")

	return &domain.Classification{
		Summary:  result.Summary,
		Category: result.Category,
	}, nil
}

func buildPrompt(body string, categories []*domain.Category) string {
	var categoryList strings.Builder
	for _, category := range categories {
		fmt.Fprintf(&categoryList, "- %q: %s\n", category.Name, category.Description)
	}
	fmt.Fprintf(&categoryList, "- %q: Use this category for any email that does not clearly fit the others.", domain.CatchAllCategory)

	return fmt.Sprintf(`Analyze the email content below. Your task is:
1. Summarize the email in a single sentence.
2. Classify the email into ONE of the user-defined categories provided. You MUST choose one from the list.

User Categories:
%s

Email Content:
"""
%s
"""

Respond ONLY with a valid JSON object in the following format, with no other text or formatting:
{"summary": "Your one-sentence summary here", "category": "The Exact Name of the Chosen Category"}`,
		categoryList.String(),
		truncateBody(body),
	)
}

func truncateBody(body string) string {
	runes := []rune(body)
	if len(runes) <= MaxBodyChars {
		return body
	}
	return string(runes[:MaxBodyChars])
}

// stripFences removes the markdown code fences the model tends to wrap its
// JSON in despite the prompt.
func stripFences(text string) string {
	text = strings.TrimSpace(text)
	text = strings.ReplaceAll(text, "```json", "")
	text = strings.ReplaceAll(text, "```", "")
	return strings.TrimSpace(text)
}
