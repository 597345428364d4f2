package domain

import (
	"fmt"
	"math"
	"strconv"

	apperrors "github.com/vladimiradmaev/recipe-helper/internal/errors"
)

const CodeInvalidQuantity = "INVALID_QUANTITY"

// MergeKey identifies a shopping list line: two ingredients with the same
// key are the same line item regardless of quantity.
type MergeKey struct {
	Product string
	Unit    string
}

func (k MergeKey) String() string {
	return k.Product + "/" + k.Unit
}

// Ingredient is a product in some positive quantity of a unit.
type Ingredient struct {
	Product  Product
	Quantity float64
	Unit     MeasurementUnit
}

// NewIngredient rejects non-positive and non-finite quantities.
func NewIngredient(product Product, quantity float64, unit MeasurementUnit) (Ingredient, error) {
	i := Ingredient{Product: product, Quantity: quantity, Unit: unit}
	if err := i.Validate(); err != nil {
		return Ingredient{}, err
	}
	return i, nil
}

// Validate checks the quantity of an ingredient built without NewIngredient.
func (i Ingredient) Validate() error {
	if math.IsNaN(i.Quantity) || math.IsInf(i.Quantity, 0) || i.Quantity <= 0 {
		return apperrors.NewValidationError(CodeInvalidQuantity,
			fmt.Sprintf("ingredient quantity must be greater than 0 (%v)", i.Quantity)).
			WithContext("product", i.Product.Name).
			WithContext("quantity", i.Quantity)
	}
	return nil
}

func (i Ingredient) Key() MergeKey {
	return MergeKey{Product: i.Product.Name, Unit: i.Unit.Name}
}

// SameLine reports whether other merges into the same shopping list line.
func (i Ingredient) SameLine(other Ingredient) bool {
	return i.Key() == other.Key()
}

// Combine returns a new ingredient with the summed quantity. Ingredients of
// different products or units cannot be combined.
func (i Ingredient) Combine(other Ingredient) (Ingredient, error) {
	if !i.SameLine(other) {
		return Ingredient{}, apperrors.NewTypeMismatchError(
			fmt.Sprintf("cannot combine %s with %s", i.Key(), other.Key())).
			WithContext("left", i.Key().String()).
			WithContext("right", other.Key().String())
	}
	return Ingredient{Product: i.Product, Quantity: i.Quantity + other.Quantity, Unit: i.Unit}, nil
}

// FormatQuantity prints 12 as "12" and 0.5 as "0.5", rounded to three decimals.
func FormatQuantity(q float64) string {
	return strconv.FormatFloat(math.Round(q*1000)/1000, 'f', -1, 64)
}

func (i Ingredient) String() string {
	return fmt.Sprintf("<Ингредиент: %s, %s %s>", i.Product.Name, FormatQuantity(i.Quantity), i.Unit.Name)
}
