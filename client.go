package brain

import (
	"context"
	"fmt"
	"io"
	"net/http"
)

// Endpoint paths of the Castle Verde backend, relative to the resolved base
// URL. The backend mounts its API routers under /routes; the liveness
// message lives at the app root.
const (
	pathProcessLabel = "/routes/process-label"
	pathFoodLookup   = "/routes/chatgpt-food-lookup"
	pathRoot         = "/"
)

// Client exposes the typed operations of the Castle Verde API.
type Client struct {
	b *baseClient
}

// BaseURL reports the resolved base URL the client targets.
func (c *Client) BaseURL() string {
	return c.b.baseURL
}

// Params reports the default request parameters applied to every call.
func (c *Client) Params() RequestParams {
	return c.b.params
}

// ProcessLabel uploads a nutrition label image for OCR and returns the
// structured nutrient data the backend extracted from it.
func (c *Client) ProcessLabel(ctx context.Context, filename string, image io.Reader) (*NutritionFacts, error) {
	if image == nil {
		return nil, fmt.Errorf("image reader is required")
	}
	if filename == "" {
		filename = "label"
	}
	var facts NutritionFacts
	if err := c.b.doMultipart(ctx, pathProcessLabel, "image", filename, image, &facts); err != nil {
		return nil, err
	}
	return &facts, nil
}

// FoodLookup returns the macro breakdown for a named food item.
func (c *Client) FoodLookup(ctx context.Context, item string) (*FoodNutrients, error) {
	if item == "" {
		return nil, fmt.Errorf("item is required")
	}
	var nutrients FoodNutrients
	if err := c.b.doJSON(ctx, http.MethodPost, pathFoodLookup, FoodLookupRequest{Item: item}, &nutrients); err != nil {
		return nil, err
	}
	return &nutrients, nil
}

// Health checks the API root liveness message.
func (c *Client) Health(ctx context.Context) (*HealthStatus, error) {
	var status HealthStatus
	if err := c.b.doJSON(ctx, http.MethodGet, pathRoot, nil, &status); err != nil {
		return nil, err
	}
	return &status, nil
}
