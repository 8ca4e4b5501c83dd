package azure

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"
)

func TestComplete(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodPost {
			t.Errorf("Expected POST, got %s", r.Method)
		}
		if r.URL.Path != "/openai/deployments/gpt-4o/chat/completions" {
			t.Errorf("Unexpected path: %s", r.URL.Path)
		}
		if got := r.URL.Query().Get("api-version"); got != DefaultAPIVersion {
			t.Errorf("Expected api-version %s, got %s", DefaultAPIVersion, got)
		}
		if got := r.Header.Get("api-key"); got != "test-key" {
			t.Errorf("Expected api-key header test-key, got %q", got)
		}

		var req chatRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			t.Fatalf("Failed to decode request: %v", err)
		}
		if len(req.Messages) != 2 {
			t.Fatalf("Expected 2 messages, got %d", len(req.Messages))
		}
		if req.Messages[0].Role != "system" || req.Messages[0].Content != "be brief" {
			t.Errorf("Unexpected system message: %+v", req.Messages[0])
		}
		if req.Messages[1].Role != "user" || req.Messages[1].Content != "summarize this" {
			t.Errorf("Unexpected user message: %+v", req.Messages[1])
		}
		if req.Temperature != 0 {
			t.Errorf("Expected temperature 0, got %v", req.Temperature)
		}

		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(`{"choices":[{"index":0,"message":{"role":"assistant","content":"  - point one\n- point two  "}}]}`))
	}))
	defer server.Close()

	client := NewClient("test-key", server.URL+"/", "", "", 5*time.Second)
	got, err := client.Complete(context.Background(), "be brief", "summarize this")
	if err != nil {
		t.Fatalf("Complete failed: %v", err)
	}

	if got != "- point one\n- point two" {
		t.Errorf("Expected trimmed completion, got %q", got)
	}
}

func TestCompleteErrors(t *testing.T) {
	tests := []struct {
		name    string
		status  int
		body    string
		wantErr string
	}{
		{
			name:    "api error message",
			status:  http.StatusUnauthorized,
			body:    `{"error":{"code":"401","message":"Access denied due to invalid subscription key."}}`,
			wantErr: "status 401: Access denied due to invalid subscription key.",
		},
		{
			name:    "plain error body",
			status:  http.StatusBadGateway,
			body:    "upstream down",
			wantErr: "status 502: upstream down",
		},
		{
			name:    "no choices",
			status:  http.StatusOK,
			body:    `{"choices":[]}`,
			wantErr: "no choices",
		},
		{
			name:    "empty content",
			status:  http.StatusOK,
			body:    `{"choices":[{"message":{"role":"assistant","content":"   "}}]}`,
			wantErr: "empty completion",
		},
		{
			name:    "invalid json",
			status:  http.StatusOK,
			body:    `not json`,
			wantErr: "decoding response",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				w.WriteHeader(tt.status)
				w.Write([]byte(tt.body))
			}))
			defer server.Close()

			client := NewClient("key", server.URL, "custom", "2024-02-01", time.Second)
			_, err := client.Complete(context.Background(), "s", "u")
			if err == nil {
				t.Fatal("Expected error")
			}
			if !strings.Contains(err.Error(), tt.wantErr) {
				t.Errorf("Expected error containing %q, got %v", tt.wantErr, err)
			}
		})
	}
}

func TestNewClientDefaults(t *testing.T) {
	client := NewClient("key", "https://example.openai.azure.com/", "", "", 0)

	if client.Deployment() != DefaultDeployment {
		t.Errorf("Expected deployment %s, got %s", DefaultDeployment, client.Deployment())
	}
	if client.apiVersion != DefaultAPIVersion {
		t.Errorf("Expected api version %s, got %s", DefaultAPIVersion, client.apiVersion)
	}
	if client.endpoint != "https://example.openai.azure.com" {
		t.Errorf("Expected trailing slash trimmed, got %s", client.endpoint)
	}
	if client.httpClient.Timeout != 60*time.Second {
		t.Errorf("Expected default timeout 60s, got %v", client.httpClient.Timeout)
	}
}
