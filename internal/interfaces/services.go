package interfaces

import (
	"context"

	"github.com/vladimiradmaev/recipe-helper/internal/database"
	"github.com/vladimiradmaev/recipe-helper/internal/domain"
	"github.com/vladimiradmaev/recipe-helper/internal/services"
)

// UserServiceInterface defines the contract for user operations
type UserServiceInterface interface {
	RegisterUser(ctx context.Context, telegramID int64, username, firstName, lastName string) (*database.User, error)
	GetUserByTelegramID(ctx context.Context, telegramID int64) (*database.User, error)
	SetCredentials(ctx context.Context, userID uint, email, password string) error
	CheckPassword(ctx context.Context, userID uint, password string) (bool, error)
}

// CatalogServiceInterface defines the contract for colours, categories, products and units
type CatalogServiceInterface interface {
	CreateColour(ctx context.Context, name string, rgb []int) (*database.Colour, error)
	CreateProductCategory(ctx context.Context, name, colourName string) (*database.ProductCategory, error)
	CreateRecipeCategory(ctx context.Context, name, colourName string) (*database.RecipeCategory, error)
	GetOrCreateProduct(ctx context.Context, name, categoryName string) (*database.Product, error)
	GetOrCreateUnit(ctx context.Context, name string) (*database.MeasurementUnit, error)
	ListUnits(ctx context.Context) ([]database.MeasurementUnit, error)
	ListProducts(ctx context.Context) ([]database.Product, error)
	ListRecipeCategories(ctx context.Context) ([]database.RecipeCategory, error)
}

// ShoppingListServiceInterface defines the contract for shopping list operations
type ShoppingListServiceInterface interface {
	CreateList(ctx context.Context, userID uint, name string) (*domain.ShoppingList, error)
	ListUserLists(ctx context.Context, userID uint) ([]database.ShoppingList, error)
	GetList(ctx context.Context, userID, listID uint) (*domain.ShoppingList, error)
	AddIngredients(ctx context.Context, userID, listID uint, in []services.IngredientInput) (*domain.ShoppingList, error)
	AddRecipe(ctx context.Context, userID, listID, recipeID uint) (*domain.ShoppingList, error)
}

// RecipeServiceInterface defines the contract for recipe operations
type RecipeServiceInterface interface {
	CreateRecipe(ctx context.Context, userID uint, in services.RecipeInput) (*database.Recipe, error)
	ListUserRecipes(ctx context.Context, userID uint) ([]database.Recipe, error)
	LoadDomainRecipe(ctx context.Context, userID, recipeID uint) (domain.Recipe, error)
}

// IngredientParserInterface turns user text into ingredients
type IngredientParserInterface interface {
	ParseIngredients(ctx context.Context, text string) ([]services.IngredientInput, error)
}
