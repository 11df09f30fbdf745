package brain

// NutritionFacts is the structured nutrient data extracted from a scanned
// nutrition label by the /process-label endpoint. All values are grams per
// serving, except Servings which is the servings-per-container count.
type NutritionFacts struct {
	Protein           float64 `json:"protein"`
	TotalFat          float64 `json:"total_fat"`
	TotalCarbohydrate float64 `json:"total_carbohydrate"`
	DietaryFiber      float64 `json:"dietary_fiber"`
	TotalSugars       float64 `json:"total_sugars"`
	Servings          float64 `json:"servings"`
}

// FoodLookupRequest asks the backend for the macros of a named food item.
type FoodLookupRequest struct {
	Item string `json:"item"`
}

// FoodNutrients is the macro breakdown returned by /chatgpt-food-lookup.
type FoodNutrients struct {
	Protein float64 `json:"protein"`
	Fat     float64 `json:"fat"`
	Fiber   float64 `json:"fiber"`
	Carbs   float64 `json:"carbs"`
	Sugar   float64 `json:"sugar"`
}

// HealthStatus is the liveness message served at the API root.
type HealthStatus struct {
	Message string `json:"message"`
}

// apiError is the FastAPI-style error envelope the backend returns on
// failure: {"detail": "..."}.
type apiError struct {
	Detail string `json:"detail"`
}
