package llm

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/nguyentantai21042004/caption-qa/internal/logger"
)

func newTestServer(t *testing.T, handler http.HandlerFunc) Options {
	t.Helper()
	srv := httptest.NewServer(handler)
	t.Cleanup(srv.Close)
	return Options{
		Provider: "openai",
		Model:    "gpt-3.5-turbo",
		APIKeys:  []string{"sk-test"},
		BaseURL:  srv.URL + "/v1",
	}
}

func TestOpenAIComplete(t *testing.T) {
	var gotBody map[string]interface{}
	opts := newTestServer(t, func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/v1/chat/completions" {
			http.NotFound(w, r)
			return
		}
		if err := json.NewDecoder(r.Body).Decode(&gotBody); err != nil {
			t.Errorf("decode request: %v", err)
		}
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{"id":"x","object":"chat.completion","choices":[{"index":0,"message":{"role":"assistant","content":"  The meeting covered the budget.  "},"finish_reason":"stop"}]}`))
	})

	c, err := NewCompleter(opts, logger.NewNop())
	if err != nil {
		t.Fatalf("NewCompleter() error = %v", err)
	}

	got, err := c.Complete(context.Background(), "Summarize this", 0)
	if err != nil {
		t.Fatalf("Complete() error = %v", err)
	}
	if got != "The meeting covered the budget." {
		t.Errorf("Complete() = %q", got)
	}

	if gotBody["model"] != "gpt-3.5-turbo" {
		t.Errorf("model = %v", gotBody["model"])
	}
	temp, ok := gotBody["temperature"].(float64)
	if !ok || temp <= 0 || temp > 1e-6 {
		t.Errorf("temperature = %v, want an explicit near-zero value", gotBody["temperature"])
	}
	msgs, _ := gotBody["messages"].([]interface{})
	if len(msgs) != 1 {
		t.Fatalf("messages = %v", gotBody["messages"])
	}
	if msg := msgs[0].(map[string]interface{}); msg["role"] != "user" || msg["content"] != "Summarize this" {
		t.Errorf("message = %v", msg)
	}
}

func TestOpenAICompleteEmptyChoices(t *testing.T) {
	opts := newTestServer(t, func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{"id":"x","choices":[]}`))
	})

	c, _ := NewCompleter(opts, logger.NewNop())
	if _, err := c.Complete(context.Background(), "hi", 0); err != ErrEmptyResponse {
		t.Errorf("Complete() error = %v, want ErrEmptyResponse", err)
	}
}

func TestOpenAICompleteServerError(t *testing.T) {
	opts := newTestServer(t, func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusTooManyRequests)
		_, _ = w.Write([]byte(`{"error":{"message":"rate limited","type":"requests"}}`))
	})

	c, _ := NewCompleter(opts, logger.NewNop())
	if _, err := c.Complete(context.Background(), "hi", 0); err == nil {
		t.Error("Complete() should fail on a 429 response")
	}
}

func TestOpenAIEmbed(t *testing.T) {
	opts := newTestServer(t, func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/v1/embeddings" {
			http.NotFound(w, r)
			return
		}
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{"object":"list","data":[{"object":"embedding","index":0,"embedding":[0.5,-0.25,1]}],"model":"text-embedding-ada-002"}`))
	})
	opts.Model = "text-embedding-ada-002"

	e, err := NewEmbedder(opts, logger.NewNop())
	if err != nil {
		t.Fatalf("NewEmbedder() error = %v", err)
	}
	vec, err := e.Embed(context.Background(), "budget")
	if err != nil {
		t.Fatalf("Embed() error = %v", err)
	}
	want := []float32{0.5, -0.25, 1}
	if len(vec) != len(want) {
		t.Fatalf("Embed() = %v", vec)
	}
	for i := range want {
		if vec[i] != want[i] {
			t.Errorf("vec[%d] = %v, want %v", i, vec[i], want[i])
		}
	}
}

func TestNewRejectsBadOptions(t *testing.T) {
	tests := []struct {
		name string
		opts Options
	}{
		{"no keys", Options{Provider: "openai"}},
		{"unknown provider", Options{Provider: "anthropic", APIKeys: []string{"k"}}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if _, err := NewCompleter(tt.opts, logger.NewNop()); err == nil {
				t.Error("NewCompleter() should fail")
			}
			if _, err := NewEmbedder(tt.opts, logger.NewNop()); err == nil {
				t.Error("NewEmbedder() should fail")
			}
		})
	}
}

func TestIsRateLimited(t *testing.T) {
	tests := []struct {
		msg  string
		want bool
	}{
		{"Error 429, Message: Resource has been exhausted", true},
		{"RESOURCE_EXHAUSTED", true},
		{"exceeded your current quota", true},
		{"invalid argument", false},
	}
	for _, tt := range tests {
		if got := isRateLimited(errString(tt.msg)); got != tt.want {
			t.Errorf("isRateLimited(%q) = %v, want %v", tt.msg, got, tt.want)
		}
	}
}

type errString string

func (e errString) Error() string { return string(e) }

func TestGeminiRotateKey(t *testing.T) {
	g := newGemini(Options{Provider: "gemini", APIKeys: []string{"a", "b", "c"}}, logger.NewNop())

	g.rotateKey(context.Background(), 0)
	if g.currentKey != 1 {
		t.Fatalf("currentKey = %d, want 1", g.currentKey)
	}
	// A stale failure on key 0 must not skip key 1.
	g.rotateKey(context.Background(), 0)
	if g.currentKey != 1 {
		t.Errorf("currentKey = %d, want 1", g.currentKey)
	}
	g.rotateKey(context.Background(), 1)
	g.rotateKey(context.Background(), 2)
	if g.currentKey != 0 {
		t.Errorf("currentKey = %d, want wrap to 0", g.currentKey)
	}
}
