package handlers

import (
	"github.com/vladimiradmaev/recipe-helper/internal/interfaces"
)

// Dependencies holds all service dependencies for handlers
type Dependencies struct {
	UserService     interfaces.UserServiceInterface
	ShoppingListSvc interfaces.ShoppingListServiceInterface
	RecipeSvc       interfaces.RecipeServiceInterface
	CatalogSvc      interfaces.CatalogServiceInterface
	// Parser is optional; without it ingredient text is parsed locally.
	Parser interfaces.IngredientParserInterface
}
