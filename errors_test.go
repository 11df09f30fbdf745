package brain

import (
	"errors"
	"fmt"
	"strings"
	"testing"
	"time"
)

func TestErrorMessagesCarryEndpoint(t *testing.T) {
	err := NewAuthenticationError("/routes/process-label", 401, "Not authenticated", nil)
	if !strings.Contains(err.Error(), "[/routes/process-label]") {
		t.Errorf("Expected endpoint in message, got %q", err.Error())
	}
	if err.Endpoint() != "/routes/process-label" {
		t.Errorf("Unexpected endpoint %q", err.Endpoint())
	}
}

func TestErrorUnwrap(t *testing.T) {
	cause := fmt.Errorf("underlying failure")
	err := NewNetworkError("/routes/chatgpt-food-lookup", "connection refused", cause)
	if !errors.Is(err, cause) {
		t.Error("Expected errors.Is to find the wrapped cause")
	}
}

func TestErrorsImplementErrorWithStatus(t *testing.T) {
	cases := []ErrorWithStatus{
		NewAuthenticationError("/x", 403, "forbidden", nil),
		NewRateLimitError("/x", "slow down", 5*time.Second, nil),
		NewInvalidRequestError("/x", 422, "unprocessable", "bad field", nil),
		NewServiceUnavailableError("/x", "ocr down", nil),
		NewServerError("/x", 500, "boom", nil),
		NewNetworkError("/x", "refused", nil),
		NewTimeoutError("/x", time.Second, nil),
		NewUnknownError("/x", 418, "teapot", nil),
	}
	for _, err := range cases {
		if err.Error() == "" {
			t.Errorf("%T: empty message", err)
		}
	}
}

func TestRateLimitErrorRetryAfterInMessage(t *testing.T) {
	err := NewRateLimitError("/x", "slow down", 30*time.Second, nil)
	if !strings.Contains(err.Error(), "retry after 30s") {
		t.Errorf("Expected retry hint in message, got %q", err.Error())
	}
}
