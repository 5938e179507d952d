// SPDX-License-Identifier: GPL-3.0-or-later
package gemini

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/mvelho/go-mail-triage/config"
	"github.com/mvelho/go-mail-triage/domain"
	"github.com/mvelho/go-mail-triage/log"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var testCategories = []*domain.Category{
	{Name: "Jobs", Description: "Job offers"},
	{Name: "Promotions", Description: "Marketing emails"},
}

func newTestGemini(t *testing.T, handler http.HandlerFunc) *Gemini {
	log.InitLogging("error")

	server := httptest.NewServer(handler)
	t.Cleanup(server.Close)

	return NewGemini(&config.Config{
		GeminiEndpoint: server.URL,
		GeminiModel:    "gemini-1.5-flash",
		GeminiAPIKey:   "test-key",
	})
}

func candidateResponse(text string) string {
	response := map[string]interface{}{
		"candidates": []map[string]interface{}{
			{"content": map[string]interface{}{
				"parts": []map[string]string{{"text": text}},
			}},
		},
	}
	raw, _ := json.Marshal(response)
	return string(raw)
}

func TestGemini_Classify(t *testing.T) {
	var seenPrompt string
	gemini := newTestGemini(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/models/gemini-1.5-flash:generateContent", r.URL.Path)
		assert.Equal(t, "test-key", r.URL.Query().Get("key"))

		request := &generateRequest{}
		require.NoError(t, json.NewDecoder(r.Body).Decode(request))
		seenPrompt = request.Contents[0].Parts[0].Text

		_, _ = w.Write([]byte(candidateResponse("```json\n{\"summary\": \"A great job offer\", \"category\": \"Jobs\"}\n```")))
	})

	result, err := gemini.Classify(context.Background(), "We would like to offer you a position", testCategories)
	assert.NoError(t, err)
	require.NotNil(t, result)
	assert.Equal(t, "A great job offer", result.Summary)
	assert.Equal(t, "Jobs", result.Category)

	assert.Contains(t, seenPrompt, `"Jobs": Job offers`)
	assert.Contains(t, seenPrompt, `"Promotions": Marketing emails`)
	assert.Contains(t, seenPrompt, `"Other"`)
	assert.Contains(t, seenPrompt, "We would like to offer you a position")
}

func TestGemini_ClassifyQuotaExhausted(t *testing.T) {
	gemini := newTestGemini(t, func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusTooManyRequests)
	})

	result, err := gemini.Classify(context.Background(), "body", testCategories)
	assert.Nil(t, result)
	assert.ErrorIs(t, err, domain.ErrQuotaExhausted)
}

func TestGemini_ClassifyResourceExhaustedStatus(t *testing.T) {
	gemini := newTestGemini(t, func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusBadRequest)
		_, _ = w.Write([]byte(`{"error": {"code": 429, "status": "RESOURCE_EXHAUSTED", "message": "quota"}}`))
	})

	result, err := gemini.Classify(context.Background(), "body", testCategories)
	assert.Nil(t, result)
	assert.ErrorIs(t, err, domain.ErrQuotaExhausted)
}

func TestGemini_ClassifySwallowedFailures(t *testing.T) {
	tests := []struct {
		name    string
		handler http.HandlerFunc
	}{
		{
			"server error",
			func(w http.ResponseWriter, r *http.Request) {
				w.WriteHeader(http.StatusInternalServerError)
			},
		},
		{
			"no candidates",
			func(w http.ResponseWriter, r *http.Request) {
				_, _ = w.Write([]byte(`{"candidates": []}`))
			},
		},
		{
			"unparseable result",
			func(w http.ResponseWriter, r *http.Request) {
				_, _ = w.Write([]byte(candidateResponse("I cannot classify this email.")))
			},
		},
		{
			"missing category",
			func(w http.ResponseWriter, r *http.Request) {
				_, _ = w.Write([]byte(candidateResponse(`{"summary": "something", "category": ""}`)))
			},
		},
		{
			"garbage response",
			func(w http.ResponseWriter, r *http.Request) {
				_, _ = w.Write([]byte("not json at all"))
			},
		},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			gemini := newTestGemini(t, tc.handler)

			result, err := gemini.Classify(context.Background(), "body", testCategories)
			assert.Nil(t, result)
			assert.NoError(t, err)
		})
	}
}

func TestGemini_ClassifyTruncatesBody(t *testing.T) {
	var seenPrompt string
	gemini := newTestGemini(t, func(w http.ResponseWriter, r *http.Request) {
		request := &generateRequest{}
		require.NoError(t, json.NewDecoder(r.Body).Decode(request))
		seenPrompt = request.Contents[0].Parts[0].Text

		_, _ = w.Write([]byte(candidateResponse(`{"summary": "s", "category": "Jobs"}`)))
	})

	body := strings.Repeat("x", MaxBodyChars+500)
	_, err := gemini.Classify(context.Background(), body, testCategories)
	assert.NoError(t, err)

	assert.Contains(t, seenPrompt, strings.Repeat("x", MaxBodyChars))
	assert.NotContains(t, seenPrompt, strings.Repeat("x", MaxBodyChars+1))
}

func TestStripFences(t *testing.T) {
	tests := []struct {
		name     string
		in       string
		expected string
	}{
		{"plain", `{"a": 1}`, `{"a": 1}`},
		{"fenced", "```json\n{\"a\": 1}\n```", `{"a": 1}`},
		{"fenced without language", "```\n{\"a\": 1}\n```", `{"a": 1}`},
		{"surrounding whitespace", "  {\"a\": 1}\n\n", `{"a": 1}`},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			assert.Equal(t, tc.expected, stripFences(tc.in))
		})
	}
}

func TestTruncateBody(t *testing.T) {
	assert.Equal(t, "short", truncateBody("short"))

	long := strings.Repeat("é", MaxBodyChars+1)
	assert.Equal(t, MaxBodyChars, len([]rune(truncateBody(long))))
}
