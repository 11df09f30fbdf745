package main

import (
	"strings"

	"github.com/castleverde/brain"
)

// FoodStore resolves food items to macro breakdowns.
//
// TODO: replace the static table with a model-backed lookup once the
// food-lookup prompt is settled; the deployed backend still returns the
// default entry for everything.
type FoodStore struct {
	entries  map[string]brain.FoodNutrients
	fallback brain.FoodNutrients
}

// NewFoodStore creates a store with a small seed table and the backend's
// historical default as the fallback for unknown items.
func NewFoodStore() *FoodStore {
	return &FoodStore{
		entries: map[string]brain.FoodNutrients{
			"oatmeal":        {Protein: 5, Fat: 3, Fiber: 4, Carbs: 27, Sugar: 1},
			"chicken breast": {Protein: 31, Fat: 3.6, Fiber: 0, Carbs: 0, Sugar: 0},
			"white rice":     {Protein: 4.3, Fat: 0.4, Fiber: 0.6, Carbs: 45, Sugar: 0.1},
			"black beans":    {Protein: 8.9, Fat: 0.5, Fiber: 8.7, Carbs: 23.7, Sugar: 0.3},
			"apple":          {Protein: 0.5, Fat: 0.3, Fiber: 4.4, Carbs: 25, Sugar: 19},
		},
		fallback: brain.FoodNutrients{Protein: 25, Fat: 10, Fiber: 5, Carbs: 60, Sugar: 20},
	}
}

// Lookup returns the macros for an item, falling back to the default entry
// when the item is unknown.
func (f *FoodStore) Lookup(item string) brain.FoodNutrients {
	if nutrients, ok := f.entries[strings.ToLower(strings.TrimSpace(item))]; ok {
		return nutrients
	}
	return f.fallback
}
