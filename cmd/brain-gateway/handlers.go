package main

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/castleverde/brain"
	"github.com/castleverde/brain/nutrition"
	"zliu.org/goutil/rest"
)

// maxUploadBytes bounds label image uploads.
const maxUploadBytes = 10 << 20

// handleProcessLabel accepts an image file, performs OCR and returns the
// structured nutrient data parsed from the label text.
func (s *GatewayServer) handleProcessLabel(w http.ResponseWriter, r *http.Request) {
	route := "/routes/process-label"
	requestID := GetRequestID(r.Context())
	startTime := time.Now()

	if r.Method != http.MethodPost {
		s.writeError(w, route, http.StatusMethodNotAllowed, "Method not allowed")
		return
	}

	if s.detector == nil {
		s.metrics.RecordError(route, "unconfigured")
		s.writeError(w, route, http.StatusServiceUnavailable,
			"OCR service is not configured correctly. Check API key/credentials.")
		return
	}

	s.metrics.IncActiveRequests(route)
	defer s.metrics.DecActiveRequests(route)

	r.Body = http.MaxBytesReader(w, r.Body, maxUploadBytes)
	file, _, err := r.FormFile("image")
	if err != nil {
		s.writeError(w, route, http.StatusBadRequest, "Expected an image file upload.")
		return
	}
	defer file.Close()

	content, err := io.ReadAll(file)
	if err != nil {
		s.writeError(w, route, http.StatusBadRequest, fmt.Sprintf("Failed to read image file: %v", err))
		return
	}
	if len(content) == 0 {
		s.writeError(w, route, http.StatusBadRequest, "Received an empty image file.")
		return
	}

	text, err := s.detector.DetectText(r.Context(), content)
	if err != nil {
		s.handleDetectorError(w, route, requestID, err)
		return
	}

	var facts nutrition.Facts
	if text == "" {
		// No readable text: fall back to the parser defaults so the client
		// still gets a usable response.
		s.logger.Warn(LogEntry{RequestID: requestID, Route: route, Message: "no text detected in image"})
		facts = nutrition.ParseLabelText("")
	} else {
		facts = nutrition.ParseLabelText(text)
	}

	s.metrics.RecordRequest(route, r.Method, "200", time.Since(startTime))
	s.writeJSON(w, http.StatusOK, brain.NutritionFacts{
		Protein:           facts.Protein,
		TotalFat:          facts.TotalFat,
		TotalCarbohydrate: facts.TotalCarbohydrate,
		DietaryFiber:      facts.DietaryFiber,
		TotalSugars:       facts.TotalSugars,
		Servings:          facts.Servings,
	})
}

// handleDetectorError maps OCR failures onto the HTTP statuses the deployed
// backend uses: 503 for a down service, 502 for upstream failures, 400 for
// functional image errors.
func (s *GatewayServer) handleDetectorError(w http.ResponseWriter, route, requestID string, err error) {
	rest.Log().Error().Err(err).Str("request_id", requestID).Msg("ocr detection failed")

	switch {
	case errors.Is(err, ErrDetectorUnavailable):
		s.metrics.RecordError(route, "ocr_unavailable")
		s.writeError(w, route, http.StatusServiceUnavailable,
			fmt.Sprintf("The OCR service (Google Vision) is temporarily unavailable: %v", err))
	case errors.Is(err, ErrBadImage):
		s.metrics.RecordError(route, "bad_image")
		s.writeError(w, route, http.StatusBadRequest, fmt.Sprintf("Google Vision API Error: %v", err))
	default:
		s.metrics.RecordError(route, "ocr_upstream")
		s.writeError(w, route, http.StatusBadGateway,
			fmt.Sprintf("Error communicating with the OCR service (Google Vision): %v", err))
	}
}

// handleFoodLookup returns the macro breakdown for a named food item.
func (s *GatewayServer) handleFoodLookup(w http.ResponseWriter, r *http.Request) {
	route := "/routes/chatgpt-food-lookup"
	startTime := time.Now()

	if r.Method != http.MethodPost {
		s.writeError(w, route, http.StatusMethodNotAllowed, "Method not allowed")
		return
	}

	var req brain.FoodLookupRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		s.writeError(w, route, http.StatusUnprocessableEntity, "Invalid request body")
		return
	}
	if strings.TrimSpace(req.Item) == "" {
		s.writeError(w, route, http.StatusUnprocessableEntity, "item is required")
		return
	}

	nutrients := s.foods.Lookup(req.Item)

	s.metrics.RecordRequest(route, r.Method, "200", time.Since(startTime))
	s.writeJSON(w, http.StatusOK, nutrients)
}

// handleHealth handles the /health endpoint
func (s *GatewayServer) handleHealth(w http.ResponseWriter, r *http.Request) {
	s.writeJSON(w, http.StatusOK, map[string]any{
		"status":    "healthy",
		"ocr":       s.detector != nil,
		"timestamp": time.Now().UTC().Format(time.RFC3339),
	})
}

// handleRoot serves the liveness message at the API root.
func (s *GatewayServer) handleRoot(w http.ResponseWriter, r *http.Request) {
	if r.URL.Path != "/" {
		s.writeError(w, r.URL.Path, http.StatusNotFound, "Not Found")
		return
	}
	s.writeJSON(w, http.StatusOK, brain.HealthStatus{Message: "Castle Verde API is live"})
}

// writeJSON writes a JSON response with the given status code.
func (s *GatewayServer) writeJSON(w http.ResponseWriter, status int, body any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(body)
}

// writeError writes a FastAPI-style {"detail": ...} error envelope.
func (s *GatewayServer) writeError(w http.ResponseWriter, route string, status int, detail string) {
	if status >= 500 {
		s.metrics.RecordError(route, fmt.Sprintf("http_%d", status))
	}
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(map[string]string{"detail": detail})
}
