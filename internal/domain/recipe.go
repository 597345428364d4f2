package domain

import (
	"fmt"
	"time"
)

// Recipe is a named set of ingredients owned by a master user.
// The ingredient list is fixed once the recipe is created.
type Recipe struct {
	ID          uint
	Master      User
	Name        string
	Category    RecipeCategory
	Description string
	Timer       RecipesTimer
	CreatedAt   time.Time
	UpdatedAt   time.Time

	ingredients []Ingredient
}

func NewRecipe(master User, name string, category RecipeCategory, description string, ingredients []Ingredient, timer RecipesTimer, clock Clock) Recipe {
	now := clockOrSystem(clock).Now()
	return Recipe{
		Master:      master,
		Name:        name,
		Category:    category,
		Description: description,
		Timer:       timer,
		CreatedAt:   now,
		UpdatedAt:   now,
		ingredients: append([]Ingredient(nil), ingredients...),
	}
}

// Ingredients returns a copy in recipe order.
func (r Recipe) Ingredients() []Ingredient {
	return append([]Ingredient(nil), r.ingredients...)
}

func (r Recipe) String() string {
	return fmt.Sprintf("<Рецепт: %s>", r.Name)
}
