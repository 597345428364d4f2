package database

import (
	"sort"

	"github.com/vladimiradmaev/recipe-helper/internal/domain"
)

func ToDomainUser(u User) domain.User {
	name := u.FirstName
	if u.LastName != "" {
		name += " " + u.LastName
	}
	if name == "" {
		name = u.Username
	}
	return domain.User{
		ID:           u.ID,
		TelegramID:   u.TelegramID,
		Name:         name,
		Email:        u.Email,
		PasswordHash: u.PasswordHash,
		CreatedAt:    u.CreatedAt,
		UpdatedAt:    u.UpdatedAt,
	}
}

func ToDomainColour(c *Colour) domain.Colour {
	if c == nil {
		return domain.Colour{}
	}
	colour, err := domain.NewColour(c.Name, []int{int(c.R), int(c.G), int(c.B)})
	if err != nil {
		// uint8 columns are always in range
		return domain.Colour{}
	}
	return colour
}

func ToDomainRecipeCategory(c *RecipeCategory) domain.RecipeCategory {
	if c == nil {
		return domain.RecipeCategory{}
	}
	return domain.RecipeCategory{Name: c.Name, Colour: ToDomainColour(c.Colour)}
}

func toDomainIngredient(p Product, u MeasurementUnit, quantity float64) (domain.Ingredient, error) {
	return domain.NewIngredient(domain.Product{Name: p.Name}, quantity, domain.MeasurementUnit{Name: u.Name})
}

// ToDomainRecipe expects User, Category and Ingredients (with Product and Unit) preloaded.
func ToDomainRecipe(r Recipe) (domain.Recipe, error) {
	rows := append([]RecipeIngredient(nil), r.Ingredients...)
	sort.SliceStable(rows, func(i, j int) bool { return rows[i].Position < rows[j].Position })

	ingredients := make([]domain.Ingredient, 0, len(rows))
	for _, row := range rows {
		ing, err := toDomainIngredient(row.Product, row.Unit, row.Quantity)
		if err != nil {
			return domain.Recipe{}, err
		}
		ingredients = append(ingredients, ing)
	}

	timer, err := domain.NewRecipesTimer(r.PreparingMinutes, r.CookingMinutes)
	if err != nil {
		return domain.Recipe{}, err
	}

	recipe := domain.NewRecipe(ToDomainUser(r.User), r.Name, ToDomainRecipeCategory(r.Category), r.Description, ingredients, timer, domain.FixedClock(r.CreatedAt))
	recipe.ID = r.ID
	recipe.UpdatedAt = r.UpdatedAt
	return recipe, nil
}

// ToDomainShoppingList expects User and Items (with Product and Unit) preloaded.
func ToDomainShoppingList(l ShoppingList, clock domain.Clock) (*domain.ShoppingList, error) {
	rows := append([]ShoppingListItem(nil), l.Items...)
	sort.SliceStable(rows, func(i, j int) bool { return rows[i].Position < rows[j].Position })

	items := make([]domain.Ingredient, 0, len(rows))
	for _, row := range rows {
		ing, err := toDomainIngredient(row.Product, row.Unit, row.Quantity)
		if err != nil {
			return nil, err
		}
		items = append(items, ing)
	}
	return domain.RestoreShoppingList(l.ID, ToDomainUser(l.User), l.Name, l.CreatedAt, l.UpdatedAt, items, clock)
}
