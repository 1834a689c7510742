package provider

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/ppiankov/neurorouter"

	"github.com/truai/governor/internal/model"
)

func testDecision() model.RoutingDecision {
	return model.RoutingDecision{
		Tier:     model.TierMid,
		Provider: "openai",
		Model:    "gpt-4o-mini",
	}
}

func TestCompleteReturnsContent(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(`{"choices":[{"message":{"role":"assistant","content":"done"}}]}`))
	}))
	defer srv.Close()

	c := New("test-key", srv.URL)
	out, err := c.Complete(context.Background(), testDecision(), "do the thing")
	if err != nil {
		t.Fatalf("complete: %v", err)
	}
	if out != "done" {
		t.Fatalf("content = %q", out)
	}
}

func TestCompleteMapsRateLimit(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusTooManyRequests)
		w.Write([]byte(`{"error":{"message":"slow down","type":"rate_limit_exceeded"}}`))
	}))
	defer srv.Close()

	c := New("test-key", srv.URL)
	_, err := c.Complete(context.Background(), testDecision(), "do the thing")
	if !errors.Is(err, neurorouter.ErrRateLimited) {
		t.Fatalf("err = %v, want ErrRateLimited", err)
	}
}

func TestCompleteEmptyChoicesFails(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(`{"choices":[]}`))
	}))
	defer srv.Close()

	c := New("test-key", srv.URL)
	if _, err := c.Complete(context.Background(), testDecision(), "hi"); err == nil {
		t.Fatal("expected error for empty choices")
	}
}
