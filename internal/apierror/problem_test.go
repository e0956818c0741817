package apierror

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
)

func init() {
	// Set gin to test mode to reduce noise in test output
	gin.SetMode(gin.TestMode)
}

func TestProblemDetailsJSON(t *testing.T) {
	retryAfter := 30
	problem := &ProblemDetails{
		Type:        TypeUpstreamData,
		Title:       TitleUpstreamData,
		Status:      http.StatusBadGateway,
		Detail:      "check-in store unavailable",
		Instance:    "/api/v1/members/abc/attention",
		RequestID:   "req-abc123",
		UserMessage: "Member data is temporarily unavailable",
		RetryAfter:  &retryAfter,
		Errors: []FieldError{
			{Field: "member_id", Message: "must be a valid UUID", Code: "invalid_uuid"},
		},
	}

	data, err := json.Marshal(problem)
	if err != nil {
		t.Fatalf("Failed to marshal ProblemDetails: %v", err)
	}

	var result map[string]interface{}
	if err := json.Unmarshal(data, &result); err != nil {
		t.Fatalf("Failed to unmarshal JSON: %v", err)
	}

	if result["type"] != TypeUpstreamData {
		t.Errorf("Expected type=%q, got %q", TypeUpstreamData, result["type"])
	}
	if result["title"] != TitleUpstreamData {
		t.Errorf("Expected title=%q, got %q", TitleUpstreamData, result["title"])
	}
	if result["status"] != float64(http.StatusBadGateway) {
		t.Errorf("Expected status=%d, got %v", http.StatusBadGateway, result["status"])
	}
	if result["request_id"] != "req-abc123" {
		t.Errorf("Expected request_id=%q, got %q", "req-abc123", result["request_id"])
	}
	if result["retry_after"] != float64(30) {
		t.Errorf("Expected retry_after=%d, got %v", 30, result["retry_after"])
	}

	errors, ok := result["errors"].([]interface{})
	if !ok || len(errors) != 1 {
		t.Errorf("Expected 1 error, got %v", result["errors"])
	}
}

func TestProblemDetailsJSONOmitsEmpty(t *testing.T) {
	problem := &ProblemDetails{
		Type:   TypeInternal,
		Title:  TitleInternal,
		Status: http.StatusInternalServerError,
	}

	data, err := json.Marshal(problem)
	if err != nil {
		t.Fatalf("Failed to marshal ProblemDetails: %v", err)
	}

	var result map[string]interface{}
	if err := json.Unmarshal(data, &result); err != nil {
		t.Fatalf("Failed to unmarshal JSON: %v", err)
	}

	omittedFields := []string{"detail", "instance", "request_id", "user_message", "retry_after", "errors"}
	for _, field := range omittedFields {
		if _, exists := result[field]; exists {
			t.Errorf("Expected field %q to be omitted when empty, but it was present", field)
		}
	}

	requiredFields := []string{"type", "title", "status"}
	for _, field := range requiredFields {
		if _, exists := result[field]; !exists {
			t.Errorf("Expected required field %q to be present", field)
		}
	}
}

func TestWriteProblemContentType(t *testing.T) {
	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)

	WriteProblem(c, NewForbiddenError("req-1"))

	if got := w.Header().Get("Content-Type"); got != ContentTypeProblemJSON {
		t.Errorf("Expected Content-Type %q, got %q", ContentTypeProblemJSON, got)
	}
	if w.Code != http.StatusForbidden {
		t.Errorf("Expected status %d, got %d", http.StatusForbidden, w.Code)
	}
}

func TestWriteProblemRetryAfterHeader(t *testing.T) {
	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)

	WriteProblem(c, NewUpstreamDataError("req-2", 15))

	if got := w.Header().Get("Retry-After"); got != "15" {
		t.Errorf("Expected Retry-After header %q, got %q", "15", got)
	}
	if w.Code != http.StatusBadGateway {
		t.Errorf("Expected status %d, got %d", http.StatusBadGateway, w.Code)
	}
}

func TestProblemDetailsError(t *testing.T) {
	withDetail := &ProblemDetails{Title: "Some Title", Detail: "the detail"}
	if withDetail.Error() != "the detail" {
		t.Errorf("Expected Error() to return detail, got %q", withDetail.Error())
	}

	withoutDetail := &ProblemDetails{Title: "Some Title"}
	if withoutDetail.Error() != "Some Title" {
		t.Errorf("Expected Error() to return title, got %q", withoutDetail.Error())
	}
}

func TestNotFoundErrorDetail(t *testing.T) {
	p := NewNotFoundError("req-3", "member", "m-123")
	if p.Status != http.StatusNotFound {
		t.Errorf("Expected status 404, got %d", p.Status)
	}
	if p.Detail != "member with ID 'm-123' was not found" {
		t.Errorf("Unexpected detail: %q", p.Detail)
	}
}
