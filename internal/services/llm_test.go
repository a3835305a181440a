package services

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"
)

func TestLLMClient_DecodesFlatShape(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`{"generated_text":"flat response"}`))
	}))
	defer srv.Close()

	client := NewLLMClient(srv.URL, "test-token", 2)
	got, err := client.Generate(context.Background(), "prompt", ParamsForIntent(IntentFlashcards))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if got != "flat response" {
		t.Errorf("expected %q, got %q", "flat response", got)
	}
}

func TestLLMClient_DecodesArrayShape(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`[{"generated_text":"array response"}]`))
	}))
	defer srv.Close()

	client := NewLLMClient(srv.URL, "test-token", 2)
	got, err := client.Generate(context.Background(), "prompt", ParamsForIntent(IntentFlashcards))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if got != "array response" {
		t.Errorf("expected %q, got %q", "array response", got)
	}
}

func TestLLMClient_DecodesCandidatesShape(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`{"candidates":[{"content":{"parts":[{"text":"nested response"}]}}]}`))
	}))
	defer srv.Close()

	client := NewLLMClient(srv.URL, "test-token", 2)
	got, err := client.Generate(context.Background(), "prompt", ParamsForIntent(IntentFlashcards))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if got != "nested response" {
		t.Errorf("expected %q, got %q", "nested response", got)
	}
}

func TestLLMClient_SendsExpectedPayload(t *testing.T) {
	var captured struct {
		Inputs     string `json:"inputs"`
		Parameters struct {
			MaxNewTokens int     `json:"max_new_tokens"`
			Temperature  float64 `json:"temperature"`
			TopP         float64 `json:"top_p"`
		} `json:"parameters"`
		Options struct {
			WaitForModel bool `json:"wait_for_model"`
		} `json:"options"`
	}
	var authHeader string

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		authHeader = r.Header.Get("Authorization")
		json.NewDecoder(r.Body).Decode(&captured)
		w.Write([]byte(`{"generated_text":"ok"}`))
	}))
	defer srv.Close()

	client := NewLLMClient(srv.URL, "secret", 1)
	_, err := client.Generate(context.Background(), "my prompt", ParamsForIntent(IntentExtraction))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if authHeader != "Bearer secret" {
		t.Errorf("expected bearer auth header, got %q", authHeader)
	}
	if captured.Inputs != "my prompt" {
		t.Errorf("expected inputs %q, got %q", "my prompt", captured.Inputs)
	}
	if captured.Parameters.Temperature != 0.1 {
		t.Errorf("expected extraction temperature 0.1, got %v", captured.Parameters.Temperature)
	}
	if !captured.Options.WaitForModel {
		t.Errorf("expected wait_for_model true")
	}
}

func TestLLMClient_Non200IsModelInvocationError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusServiceUnavailable)
		w.Write([]byte(`{"error":"model loading"}`))
	}))
	defer srv.Close()

	client := NewLLMClient(srv.URL, "test-token", 2)
	_, err := client.Generate(context.Background(), "prompt", ParamsForIntent(IntentFlashcards))

	var invErr *ModelInvocationError
	if !errors.As(err, &invErr) {
		t.Fatalf("expected ModelInvocationError, got %v", err)
	}
	if invErr.StatusCode != http.StatusServiceUnavailable {
		t.Errorf("expected status 503, got %d", invErr.StatusCode)
	}
}

func TestLLMClient_GarbageBodyIsModelInvocationError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte("<html>not json</html>"))
	}))
	defer srv.Close()

	client := NewLLMClient(srv.URL, "test-token", 2)
	_, err := client.Generate(context.Background(), "prompt", ParamsForIntent(IntentFlashcards))

	var invErr *ModelInvocationError
	if !errors.As(err, &invErr) {
		t.Fatalf("expected ModelInvocationError, got %v", err)
	}
}

func TestLLMClient_CancelledContext(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`{"generated_text":"ok"}`))
	}))
	defer srv.Close()

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	client := NewLLMClient(srv.URL, "test-token", 1)
	_, err := client.Generate(ctx, "prompt", ParamsForIntent(IntentFlashcards))
	if err == nil {
		t.Fatalf("expected error for cancelled context")
	}
}

// The client carries no timeout of its own: a slow model call runs as long as
// the caller's context allows, and only the context deadline cuts it off.
func TestLLMClient_SlowModelBoundedByCallerContext(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		time.Sleep(300 * time.Millisecond)
		w.Write([]byte(`{"generated_text":"slow but fine"}`))
	}))
	defer srv.Close()

	client := NewLLMClient(srv.URL, "test-token", 1)

	got, err := client.Generate(context.Background(), "prompt", ParamsForIntent(IntentFlashcards))
	if err != nil {
		t.Fatalf("slow response should succeed without a deadline: %v", err)
	}
	if got != "slow but fine" {
		t.Errorf("expected %q, got %q", "slow but fine", got)
	}

	ctx, cancel := context.WithTimeout(context.Background(), 50*time.Millisecond)
	defer cancel()
	if _, err := client.Generate(ctx, "prompt", ParamsForIntent(IntentFlashcards)); err == nil {
		t.Fatal("expected error when the caller's deadline expires mid-call")
	}
}
