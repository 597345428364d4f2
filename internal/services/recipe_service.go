package services

import (
	"context"
	"errors"
	"strings"

	"github.com/vladimiradmaev/recipe-helper/internal/database"
	"github.com/vladimiradmaev/recipe-helper/internal/domain"
	apperrors "github.com/vladimiradmaev/recipe-helper/internal/errors"
	"gorm.io/gorm"
)

type RecipeService struct {
	db *gorm.DB
}

func NewRecipeService(db *gorm.DB) *RecipeService {
	return &RecipeService{db: db}
}

// CreateRecipe validates every ingredient and the timer before writing anything.
func (s *RecipeService) CreateRecipe(ctx context.Context, userID uint, in RecipeInput) (*database.Recipe, error) {
	name := strings.TrimSpace(in.Name)
	if name == "" {
		return nil, apperrors.NewValidationError("EMPTY_RECIPE_NAME", "recipe name is required")
	}
	if len(in.Ingredients) == 0 {
		return nil, apperrors.NewValidationError("EMPTY_RECIPE", "recipe needs at least one ingredient")
	}
	if _, err := domain.NewRecipesTimer(in.PreparingMinutes, in.CookingMinutes); err != nil {
		return nil, err
	}
	for _, ing := range in.Ingredients {
		if _, err := ing.ToDomain(); err != nil {
			return nil, err
		}
	}

	recipe := &database.Recipe{
		UserID:           userID,
		Name:             name,
		Description:      strings.TrimSpace(in.Description),
		PreparingMinutes: in.PreparingMinutes,
		CookingMinutes:   in.CookingMinutes,
	}

	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if in.Category != "" {
			var category database.RecipeCategory
			if err := tx.Where("name = ?", normalizeName(in.Category)).First(&category).Error; err != nil {
				if errors.Is(err, gorm.ErrRecordNotFound) {
					return apperrors.NewNotFoundError("recipe category", in.Category)
				}
				return apperrors.NewDatabaseError(err)
			}
			recipe.CategoryID = &category.ID
		}

		if err := tx.Omit("User", "Category", "Ingredients").Create(recipe).Error; err != nil {
			return apperrors.NewDatabaseError(err)
		}

		for pos, ing := range in.Ingredients {
			product, err := getOrCreateProduct(tx, ing.Product, "")
			if err != nil {
				return err
			}
			unit, err := getOrCreateUnit(tx, ing.Unit)
			if err != nil {
				return err
			}
			row := &database.RecipeIngredient{
				RecipeID:  recipe.ID,
				Position:  pos,
				ProductID: product.ID,
				UnitID:    unit.ID,
				Quantity:  ing.Quantity,
			}
			if err := tx.Omit("Product", "Unit").Create(row).Error; err != nil {
				return apperrors.NewDatabaseError(err)
			}
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	return s.GetRecipe(ctx, userID, recipe.ID)
}

// GetRecipe loads a recipe owned by userID with everything preloaded.
func (s *RecipeService) GetRecipe(ctx context.Context, userID, recipeID uint) (*database.Recipe, error) {
	var recipe database.Recipe
	err := preloadRecipe(s.db.WithContext(ctx)).
		Where("id = ? AND user_id = ?", recipeID, userID).
		First(&recipe).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperrors.NewNotFoundError("recipe", recipeID)
		}
		return nil, apperrors.NewDatabaseError(err)
	}
	return &recipe, nil
}

func (s *RecipeService) ListUserRecipes(ctx context.Context, userID uint) ([]database.Recipe, error) {
	var recipes []database.Recipe
	if err := s.db.WithContext(ctx).
		Preload("Category").
		Where("user_id = ?", userID).
		Order("created_at DESC").
		Find(&recipes).Error; err != nil {
		return nil, apperrors.NewDatabaseError(err)
	}
	return recipes, nil
}

// LoadDomainRecipe returns the recipe as a domain value.
func (s *RecipeService) LoadDomainRecipe(ctx context.Context, userID, recipeID uint) (domain.Recipe, error) {
	row, err := s.GetRecipe(ctx, userID, recipeID)
	if err != nil {
		return domain.Recipe{}, err
	}
	return database.ToDomainRecipe(*row)
}

func preloadRecipe(tx *gorm.DB) *gorm.DB {
	return tx.
		Preload("User").
		Preload("Category.Colour").
		Preload("Ingredients", func(db *gorm.DB) *gorm.DB { return db.Order("position ASC") }).
		Preload("Ingredients.Product").
		Preload("Ingredients.Unit")
}
