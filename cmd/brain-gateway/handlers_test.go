package main

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/castleverde/brain"
)

// stubDetector returns canned OCR text or a canned error.
type stubDetector struct {
	text string
	err  error
}

func (d *stubDetector) DetectText(ctx context.Context, image []byte) (string, error) {
	return d.text, d.err
}

func newTestGateway(t *testing.T, cfg *GatewayConfig, detector TextDetector) *httptest.Server {
	t.Helper()
	if cfg == nil {
		cfg = DefaultConfig()
	}
	server := NewGatewayServer(cfg, &ServerConfig{ListenAddr: ":0"}, detector, NewLogger(io.Discard))
	ts := httptest.NewServer(server.applyMiddleware(server.setupRoutes()))
	t.Cleanup(ts.Close)
	return ts
}

func multipartImage(t *testing.T, content []byte) (*bytes.Buffer, string) {
	t.Helper()
	var buf bytes.Buffer
	mw := multipart.NewWriter(&buf)
	part, err := mw.CreateFormFile("image", "label.jpg")
	if err != nil {
		t.Fatalf("Failed to create form file: %v", err)
	}
	part.Write(content)
	mw.Close()
	return &buf, mw.FormDataContentType()
}

func TestProcessLabelHappyPath(t *testing.T) {
	detector := &stubDetector{text: "Total Fat 8g\nProtein 3g\n8 servings per container"}
	ts := newTestGateway(t, nil, detector)

	body, contentType := multipartImage(t, []byte("image-bytes"))
	resp, err := http.Post(ts.URL+"/routes/process-label", contentType, body)
	if err != nil {
		t.Fatalf("Request failed: %v", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		t.Fatalf("Expected 200, got %d", resp.StatusCode)
	}
	var facts brain.NutritionFacts
	if err := json.NewDecoder(resp.Body).Decode(&facts); err != nil {
		t.Fatalf("Failed to decode response: %v", err)
	}
	if facts.TotalFat != 8 || facts.Protein != 3 || facts.Servings != 8 {
		t.Errorf("Unexpected facts: %+v", facts)
	}
	// Unlocated nutrients default to 1.0.
	if facts.DietaryFiber != 1 {
		t.Errorf("Expected default fiber 1, got %v", facts.DietaryFiber)
	}
}

func TestProcessLabelNoDetector(t *testing.T) {
	ts := newTestGateway(t, nil, nil)

	body, contentType := multipartImage(t, []byte("image-bytes"))
	resp, err := http.Post(ts.URL+"/routes/process-label", contentType, body)
	if err != nil {
		t.Fatalf("Request failed: %v", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusServiceUnavailable {
		t.Fatalf("Expected 503, got %d", resp.StatusCode)
	}
	var envelope struct {
		Detail string `json:"detail"`
	}
	json.NewDecoder(resp.Body).Decode(&envelope)
	if !strings.Contains(envelope.Detail, "not configured") {
		t.Errorf("Unexpected detail %q", envelope.Detail)
	}
}

func TestProcessLabelEmptyImage(t *testing.T) {
	ts := newTestGateway(t, nil, &stubDetector{})

	body, contentType := multipartImage(t, nil)
	resp, err := http.Post(ts.URL+"/routes/process-label", contentType, body)
	if err != nil {
		t.Fatalf("Request failed: %v", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusBadRequest {
		t.Fatalf("Expected 400, got %d", resp.StatusCode)
	}
}

func TestProcessLabelDetectorErrors(t *testing.T) {
	cases := []struct {
		name       string
		err        error
		wantStatus int
	}{
		{"unavailable", fmt.Errorf("%w: maintenance", ErrDetectorUnavailable), http.StatusServiceUnavailable},
		{"bad image", fmt.Errorf("%w: corrupt data", ErrBadImage), http.StatusBadRequest},
		{"upstream", fmt.Errorf("%w: quota exceeded", ErrDetectorUpstream), http.StatusBadGateway},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			ts := newTestGateway(t, nil, &stubDetector{err: tc.err})

			body, contentType := multipartImage(t, []byte("image-bytes"))
			resp, err := http.Post(ts.URL+"/routes/process-label", contentType, body)
			if err != nil {
				t.Fatalf("Request failed: %v", err)
			}
			defer resp.Body.Close()

			if resp.StatusCode != tc.wantStatus {
				t.Errorf("Expected %d, got %d", tc.wantStatus, resp.StatusCode)
			}
		})
	}
}

func TestProcessLabelNoTextDetected(t *testing.T) {
	ts := newTestGateway(t, nil, &stubDetector{text: ""})

	body, contentType := multipartImage(t, []byte("image-bytes"))
	resp, err := http.Post(ts.URL+"/routes/process-label", contentType, body)
	if err != nil {
		t.Fatalf("Request failed: %v", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		t.Fatalf("Expected 200, got %d", resp.StatusCode)
	}
	var facts brain.NutritionFacts
	json.NewDecoder(resp.Body).Decode(&facts)
	if facts.Protein != 1 || facts.Servings != 1 {
		t.Errorf("Expected default facts, got %+v", facts)
	}
}

func TestFoodLookupKnownItem(t *testing.T) {
	ts := newTestGateway(t, nil, nil)

	resp, err := http.Post(ts.URL+"/routes/chatgpt-food-lookup", "application/json",
		strings.NewReader(`{"item":"oatmeal"}`))
	if err != nil {
		t.Fatalf("Request failed: %v", err)
	}
	defer resp.Body.Close()

	var nutrients brain.FoodNutrients
	if err := json.NewDecoder(resp.Body).Decode(&nutrients); err != nil {
		t.Fatalf("Failed to decode response: %v", err)
	}
	if nutrients.Carbs != 27 {
		t.Errorf("Unexpected nutrients: %+v", nutrients)
	}
}

func TestFoodLookupUnknownItemFallsBack(t *testing.T) {
	ts := newTestGateway(t, nil, nil)

	resp, err := http.Post(ts.URL+"/routes/chatgpt-food-lookup", "application/json",
		strings.NewReader(`{"item":"mystery casserole"}`))
	if err != nil {
		t.Fatalf("Request failed: %v", err)
	}
	defer resp.Body.Close()

	var nutrients brain.FoodNutrients
	json.NewDecoder(resp.Body).Decode(&nutrients)
	want := brain.FoodNutrients{Protein: 25, Fat: 10, Fiber: 5, Carbs: 60, Sugar: 20}
	if nutrients != want {
		t.Errorf("Expected fallback entry %+v, got %+v", want, nutrients)
	}
}

func TestFoodLookupMissingItem(t *testing.T) {
	ts := newTestGateway(t, nil, nil)

	resp, err := http.Post(ts.URL+"/routes/chatgpt-food-lookup", "application/json",
		strings.NewReader(`{}`))
	if err != nil {
		t.Fatalf("Request failed: %v", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusUnprocessableEntity {
		t.Errorf("Expected 422, got %d", resp.StatusCode)
	}
}

func TestRootLivenessMessage(t *testing.T) {
	ts := newTestGateway(t, nil, nil)

	resp, err := http.Get(ts.URL + "/")
	if err != nil {
		t.Fatalf("Request failed: %v", err)
	}
	defer resp.Body.Close()

	var status brain.HealthStatus
	json.NewDecoder(resp.Body).Decode(&status)
	if status.Message != "Castle Verde API is live" {
		t.Errorf("Unexpected message %q", status.Message)
	}
	if resp.Header.Get("X-Request-ID") == "" {
		t.Error("Expected a request ID header")
	}
}

func TestBrainClientAgainstGateway(t *testing.T) {
	detector := &stubDetector{text: "Protein 12g\nTotal Carbohydrate 27g"}
	ts := newTestGateway(t, nil, detector)

	client, err := brain.New(brain.WithBaseURL(ts.URL))
	if err != nil {
		t.Fatalf("Failed to create brain client: %v", err)
	}

	facts, err := client.ProcessLabel(context.Background(), "label.jpg", strings.NewReader("image-bytes"))
	if err != nil {
		t.Fatalf("ProcessLabel failed: %v", err)
	}
	if facts.Protein != 12 || facts.TotalCarbohydrate != 27 {
		t.Errorf("Unexpected facts: %+v", facts)
	}

	status, err := client.Health(context.Background())
	if err != nil {
		t.Fatalf("Health failed: %v", err)
	}
	if status.Message != "Castle Verde API is live" {
		t.Errorf("Unexpected message %q", status.Message)
	}
}
