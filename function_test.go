package videosummarizer

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"os"
	"strings"
	"testing"

	"github.com/pep299/video-summarizer/internal/transport/server"
)

func TestMain(m *testing.M) {
	// Set up test environment variables
	os.Setenv("AZURE_OPENAI_API_KEY", "test-azure-key")
	os.Setenv("AZURE_OPENAI_ENDPOINT", "https://example.openai.azure.com")
	os.Setenv("API_AUTH_TOKEN", "test-token")

	// Run tests
	code := m.Run()

	// Clean up
	os.Unsetenv("AZURE_OPENAI_API_KEY")
	os.Unsetenv("AZURE_OPENAI_ENDPOINT")
	os.Unsetenv("API_AUTH_TOKEN")

	os.Exit(code)
}

func TestHandleRequestHealthCheck(t *testing.T) {
	req := httptest.NewRequest("GET", "/api/v1/health", nil)
	w := httptest.NewRecorder()

	server.HandleRequest(w, req)

	if w.Code != http.StatusOK {
		t.Errorf("Expected status %d, got %d", http.StatusOK, w.Code)
	}

	var response map[string]interface{}
	if err := json.Unmarshal(w.Body.Bytes(), &response); err != nil {
		t.Fatalf("Failed to parse response: %v", err)
	}

	if response["status"] != "ok" {
		t.Errorf("Expected status 'ok', got %v", response["status"])
	}
}

func TestHandleRequestIndexPage(t *testing.T) {
	req := httptest.NewRequest("GET", "/", nil)
	w := httptest.NewRecorder()

	server.HandleRequest(w, req)

	if w.Code != http.StatusOK {
		t.Errorf("Expected status %d, got %d", http.StatusOK, w.Code)
	}
	if !strings.Contains(w.Body.String(), "YouTube Video Content Summarizer") {
		t.Error("Expected the summarizer page")
	}
}

func TestHandleRequestKeepsSessions(t *testing.T) {
	first := httptest.NewRecorder()
	server.HandleRequest(first, httptest.NewRequest("GET", "/", nil))
	cookies := first.Result().Cookies()
	if len(cookies) == 0 {
		t.Fatal("Expected a session cookie")
	}

	req := httptest.NewRequest("GET", "/api/v1/history", nil)
	req.Header.Set("Authorization", "Bearer test-token")
	req.AddCookie(cookies[0])
	second := httptest.NewRecorder()
	server.HandleRequest(second, req)

	if second.Code != http.StatusOK {
		t.Fatalf("Expected status %d, got %d", http.StatusOK, second.Code)
	}
	if got := second.Result().Cookies(); len(got) == 0 || got[0].Value != cookies[0].Value {
		t.Error("Expected the same session across invocations")
	}
}

func TestHandleRequestRequiresToken(t *testing.T) {
	req := httptest.NewRequest("POST", "/api/v1/summaries", strings.NewReader(`{"url":"https://youtu.be/dQw4w9WgXcQ"}`))
	w := httptest.NewRecorder()

	server.HandleRequest(w, req)

	if w.Code != http.StatusUnauthorized {
		t.Errorf("Expected status %d, got %d", http.StatusUnauthorized, w.Code)
	}
}

func TestHandleRequestNotFound(t *testing.T) {
	req := httptest.NewRequest("GET", "/nonexistent", nil)
	w := httptest.NewRecorder()

	server.HandleRequest(w, req)

	if w.Code != http.StatusNotFound {
		t.Errorf("Expected status %d, got %d", http.StatusNotFound, w.Code)
	}
}
