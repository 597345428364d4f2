package domain

import (
	"errors"
	"math"
	"testing"

	apperrors "github.com/vladimiradmaev/recipe-helper/internal/errors"
)

var (
	fromAnimals = ProductCategory{Name: "животного происхождения", Colour: MustColour("белый", 255, 255, 255)}
	eggs        = NewProduct("яйцо", fromAnimals)
	sausage     = NewProduct("сосиски", fromAnimals)
	grams       = MeasurementUnit{Name: "грамм"}
	pieces      = MeasurementUnit{Name: "шт."}
)

func mustIngredient(t *testing.T, p Product, q float64, u MeasurementUnit) Ingredient {
	t.Helper()
	i, err := NewIngredient(p, q, u)
	if err != nil {
		t.Fatalf("NewIngredient(%s, %v, %s): %v", p.Name, q, u.Name, err)
	}
	return i
}

func TestNewIngredientQuantity(t *testing.T) {
	tests := []struct {
		quantity float64
		wantErr  bool
	}{
		{quantity: 1},
		{quantity: 0.25},
		{quantity: 12},
		{quantity: 0, wantErr: true},
		{quantity: -3, wantErr: true},
		{quantity: math.NaN(), wantErr: true},
		{quantity: math.Inf(1), wantErr: true},
	}

	for _, tt := range tests {
		_, err := NewIngredient(eggs, tt.quantity, pieces)
		if (err != nil) != tt.wantErr {
			t.Fatalf("quantity %v: err = %v, wantErr %v", tt.quantity, err, tt.wantErr)
		}
		if err != nil && apperrors.CodeOf(err) != CodeInvalidQuantity {
			t.Fatalf("quantity %v: unexpected code %s", tt.quantity, apperrors.CodeOf(err))
		}
	}
}

func TestIngredientSameLineIgnoresQuantity(t *testing.T) {
	a := mustIngredient(t, eggs, 2, pieces)
	b := mustIngredient(t, NewProduct("яйцо", ProductCategory{}), 5, pieces)
	c := mustIngredient(t, eggs, 2, grams)

	if !a.SameLine(b) {
		t.Fatalf("expected same line for equal product name and unit")
	}
	if a.SameLine(c) {
		t.Fatalf("unit must be part of the merge key")
	}
}

func TestIngredientCombine(t *testing.T) {
	a := mustIngredient(t, sausage, 100, grams)
	b := mustIngredient(t, sausage, 50.5, grams)

	sum, err := a.Combine(b)
	if err != nil {
		t.Fatalf("Combine: %v", err)
	}
	if sum.Quantity != 150.5 || sum.Key() != a.Key() {
		t.Fatalf("unexpected sum %v", sum)
	}
	if a.Quantity != 100 {
		t.Fatalf("Combine must not modify its receiver")
	}

	_, err = a.Combine(mustIngredient(t, sausage, 3, pieces))
	if !errors.Is(err, apperrors.ErrTypeMismatch) {
		t.Fatalf("expected type mismatch, got %v", err)
	}
}

func TestIngredientString(t *testing.T) {
	i := mustIngredient(t, sausage, 12, pieces)
	if got, want := i.String(), "<Ингредиент: сосиски, 12 шт.>"; got != want {
		t.Fatalf("String() = %q, want %q", got, want)
	}
}

func TestFormatQuantity(t *testing.T) {
	tests := []struct {
		in   float64
		want string
	}{
		{in: 12, want: "12"},
		{in: 0.5, want: "0.5"},
		{in: 0.1 + 0.2, want: "0.3"},
		{in: 1.0 / 3, want: "0.333"},
	}
	for _, tt := range tests {
		if got := FormatQuantity(tt.in); got != tt.want {
			t.Errorf("FormatQuantity(%v) = %q, want %q", tt.in, got, tt.want)
		}
	}
}

func TestCombinedSumRendersRounded(t *testing.T) {
	a := mustIngredient(t, eggs, 0.1, pieces)
	sum, err := a.Combine(mustIngredient(t, eggs, 0.2, pieces))
	if err != nil {
		t.Fatal(err)
	}
	if got, want := sum.String(), "<Ингредиент: яйцо, 0.3 шт.>"; got != want {
		t.Fatalf("String() = %q, want %q", got, want)
	}
}
