package main

import (
	"context"
	"encoding/base64"
	"errors"
	"fmt"

	"google.golang.org/api/googleapi"
	"google.golang.org/api/option"
	vision "google.golang.org/api/vision/v1"
)

// TextDetector extracts raw text from an image. The gateway runs with a
// Google Vision backed implementation; tests substitute their own.
type TextDetector interface {
	DetectText(ctx context.Context, image []byte) (string, error)
}

// Detector failure categories the process-label handler maps onto HTTP
// statuses, matching the deployed backend's behavior.
var (
	// ErrDetectorUnavailable: the OCR service is temporarily down (503).
	ErrDetectorUnavailable = errors.New("ocr service unavailable")
	// ErrDetectorUpstream: the OCR service rejected or failed the call (502).
	ErrDetectorUpstream = errors.New("ocr service error")
	// ErrBadImage: the OCR service reported a problem with the image (400).
	ErrBadImage = errors.New("ocr rejected image")
)

// visionDetector implements TextDetector on the Google Vision API.
type visionDetector struct {
	service *vision.Service
}

// NewVisionDetector creates a Google Vision text detector authenticated
// with an API key.
func NewVisionDetector(ctx context.Context, apiKey string) (TextDetector, error) {
	service, err := vision.NewService(ctx, option.WithAPIKey(apiKey))
	if err != nil {
		return nil, fmt.Errorf("failed to initialize Google Vision client: %w", err)
	}
	return &visionDetector{service: service}, nil
}

// DetectText runs TEXT_DETECTION over the image and returns the full text
// annotation. An image with no readable text returns an empty string.
func (d *visionDetector) DetectText(ctx context.Context, image []byte) (string, error) {
	req := &vision.BatchAnnotateImagesRequest{
		Requests: []*vision.AnnotateImageRequest{
			{
				Image:    &vision.Image{Content: base64.StdEncoding.EncodeToString(image)},
				Features: []*vision.Feature{{Type: "TEXT_DETECTION"}},
			},
		},
	}

	resp, err := d.service.Images.Annotate(req).Context(ctx).Do()
	if err != nil {
		var apiErr *googleapi.Error
		if errors.As(err, &apiErr) && apiErr.Code == 503 {
			return "", fmt.Errorf("%w: %v", ErrDetectorUnavailable, err)
		}
		return "", fmt.Errorf("%w: %v", ErrDetectorUpstream, err)
	}

	if len(resp.Responses) == 0 {
		return "", fmt.Errorf("%w: empty annotation response", ErrDetectorUpstream)
	}
	annotation := resp.Responses[0]
	if annotation.Error != nil {
		// A functional error usually means a client-side problem such as a
		// corrupt or unsupported image.
		return "", fmt.Errorf("%w: %s", ErrBadImage, annotation.Error.Message)
	}
	if annotation.FullTextAnnotation == nil {
		return "", nil
	}
	return annotation.FullTextAnnotation.Text, nil
}
