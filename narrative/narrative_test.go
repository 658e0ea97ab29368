package narrative

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/stretchr/testify/require"
)

var bondRequest = Request{Scenario: "Bond Strategy", BestMove: "Aggressive Long Bonds", WeightedEV: 1200}

func TestStatic(t *testing.T) {
	got := Static{}.Justify(context.Background(), bondRequest)

	require.Equal(t, "Within 'Bond Strategy', Aggressive Long Bonds contributes the most expected value (1200.0) of the available moves.", got)
}

func TestOpenAI(t *testing.T) {
	t.Run("returns the completion text", func(t *testing.T) {
		var gotPath string
		var gotBody map[string]any
		server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			gotPath = r.URL.Path
			_ = json.NewDecoder(r.Body).Decode(&gotBody)
			w.Header().Set("Content-Type", "application/json")
			_, _ = w.Write([]byte(`{
				"id": "chatcmpl-1",
				"object": "chat.completion",
				"created": 1700000000,
				"model": "test-model",
				"choices": [{
					"index": 0,
					"message": {"role": "assistant", "content": "  Long bonds dominate.  "},
					"finish_reason": "stop"
				}]
			}`))
		}))
		defer server.Close()

		g := NewOpenAI("test-key", WithBaseURL(server.URL+"/"), WithModel("test-model"), WithMaxRetries(0))
		got := g.Justify(context.Background(), bondRequest)

		require.Equal(t, "Long bonds dominate.", got)
		require.True(t, strings.HasSuffix(gotPath, "/chat/completions"), "unexpected path %s", gotPath)
		require.Equal(t, "test-model", gotBody["model"])
		messages, ok := gotBody["messages"].([]any)
		require.True(t, ok)
		require.Len(t, messages, 2)
		user := messages[1].(map[string]any)
		require.Contains(t, user["content"], "Best move: Aggressive Long Bonds")
		require.Contains(t, user["content"], "1200.00")
	})

	t.Run("returns the unavailable marker on failure", func(t *testing.T) {
		server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			http.Error(w, `{"error": {"message": "boom"}}`, http.StatusInternalServerError)
		}))
		defer server.Close()

		g := NewOpenAI("test-key", WithBaseURL(server.URL+"/"), WithMaxRetries(0))

		require.Equal(t, Unavailable, g.Justify(context.Background(), bondRequest))
	})

	t.Run("returns the unavailable marker on empty content", func(t *testing.T) {
		server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			w.Header().Set("Content-Type", "application/json")
			_, _ = w.Write([]byte(`{"id": "x", "object": "chat.completion", "created": 1, "model": "m", "choices": []}`))
		}))
		defer server.Close()

		g := NewOpenAI("test-key", WithBaseURL(server.URL+"/"), WithMaxRetries(0))

		require.Equal(t, Unavailable, g.Justify(context.Background(), bondRequest))
	})
}
