package services

import (
	"github.com/vladimiradmaev/recipe-helper/internal/domain"
)

// IngredientInput is an ingredient as typed by a user, before catalog lookup.
type IngredientInput struct {
	Product  string  `json:"product"`
	Quantity float64 `json:"quantity"`
	Unit     string  `json:"unit"`
}

// ToDomain validates the input through the domain constructor.
func (in IngredientInput) ToDomain() (domain.Ingredient, error) {
	return domain.NewIngredient(
		domain.Product{Name: normalizeName(in.Product)},
		in.Quantity,
		domain.MeasurementUnit{Name: normalizeName(in.Unit)},
	)
}

// RecipeInput describes a new recipe.
type RecipeInput struct {
	Name             string
	Category         string
	Description      string
	Ingredients      []IngredientInput
	PreparingMinutes int
	CookingMinutes   int
}
