package providers

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"
)

func TestInferenceComplete(t *testing.T) {
	var gotAuth string
	var gotReq inferenceRequest

	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotAuth = r.Header.Get("Authorization")
		if err := json.NewDecoder(r.Body).Decode(&gotReq); err != nil {
			t.Fatalf("decoding request: %v", err)
		}
		json.NewEncoder(w).Encode([]inferenceResult{
			{GeneratedText: gotReq.Inputs + "  Les chats n'ont qu'une seule vie. 🐱  "},
		})
	}))
	defer server.Close()

	c := NewInferenceCompleter("test-token", server.URL, 5*time.Second)
	text, err := c.Complete(context.Background(), Request{
		System:      "Tu es FactCheck_Bot.",
		UserMessage: "Les chats ont 9 vies ?",
		MaxTokens:   200,
	})
	if err != nil {
		t.Fatalf("Complete() error = %v", err)
	}

	if text != "Les chats n'ont qu'une seule vie. 🐱" {
		t.Errorf("unexpected reply text %q", text)
	}
	if gotAuth != "Bearer test-token" {
		t.Errorf("missing bearer token, got %q", gotAuth)
	}
	if gotReq.Parameters.MaxNewTokens != 200 {
		t.Errorf("max_new_tokens = %d, want 200", gotReq.Parameters.MaxNewTokens)
	}
	if gotReq.Parameters.Temperature != Temperature {
		t.Errorf("temperature = %v, want %v", gotReq.Parameters.Temperature, Temperature)
	}
}

func TestInferenceUpstreamError(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "model overloaded", http.StatusServiceUnavailable)
	}))
	defer server.Close()

	c := NewInferenceCompleter("t", server.URL, 5*time.Second)
	_, err := c.Complete(context.Background(), Request{UserMessage: "x ?", MaxTokens: 100})

	var upstream *UpstreamError
	if !errors.As(err, &upstream) {
		t.Fatalf("expected UpstreamError, got %v", err)
	}
	if upstream.Status != http.StatusServiceUnavailable {
		t.Errorf("status = %d, want 503", upstream.Status)
	}
	if ErrorKind(err) != "upstream" {
		t.Errorf("ErrorKind = %q, want upstream", ErrorKind(err))
	}
}

func TestInferenceMalformedResponse(t *testing.T) {
	tests := []struct {
		name string
		body string
	}{
		{"not json", "oops"},
		{"empty array", "[]"},
		{"missing field", `[{"something_else": "x"}]`},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				w.Write([]byte(tt.body))
			}))
			defer server.Close()

			c := NewInferenceCompleter("t", server.URL, 5*time.Second)
			_, err := c.Complete(context.Background(), Request{UserMessage: "x ?", MaxTokens: 100})
			if !errors.Is(err, ErrMalformed) {
				t.Errorf("expected ErrMalformed, got %v", err)
			}
		})
	}
}

func TestInferenceTimeout(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		time.Sleep(200 * time.Millisecond)
	}))
	defer server.Close()

	c := NewInferenceCompleter("t", server.URL, 20*time.Millisecond)
	_, err := c.Complete(context.Background(), Request{UserMessage: "x ?", MaxTokens: 100})
	if !errors.Is(err, ErrTimeout) {
		t.Errorf("expected ErrTimeout, got %v", err)
	}
	if ErrorKind(err) != "timeout" {
		t.Errorf("ErrorKind = %q, want timeout", ErrorKind(err))
	}
}

func TestErrorKind(t *testing.T) {
	tests := []struct {
		name string
		err  error
		want string
	}{
		{"nil", nil, "none"},
		{"timeout", ErrTimeout, "timeout"},
		{"upstream", &UpstreamError{Status: 500, Body: "x"}, "upstream"},
		{"malformed", ErrMalformed, "malformed"},
		{"other", errors.New("boom"), "other"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := ErrorKind(tt.err); got != tt.want {
				t.Errorf("ErrorKind() = %q, want %q", got, tt.want)
			}
		})
	}
}
