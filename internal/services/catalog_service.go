package services

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/vladimiradmaev/recipe-helper/internal/database"
	"github.com/vladimiradmaev/recipe-helper/internal/domain"
	apperrors "github.com/vladimiradmaev/recipe-helper/internal/errors"
	"gorm.io/gorm"
)

// CatalogService manages colours, categories, products and units.
type CatalogService struct {
	db *gorm.DB
}

func NewCatalogService(db *gorm.DB) *CatalogService {
	return &CatalogService{db: db}
}

func (s *CatalogService) CreateColour(ctx context.Context, name string, rgb []int) (*database.Colour, error) {
	colour, err := domain.NewColour(name, rgb)
	if err != nil {
		return nil, err
	}
	c := colour.RGB()
	row := &database.Colour{Name: normalizeName(name), R: c[0], G: c[1], B: c[2]}
	if err := s.db.WithContext(ctx).Create(row).Error; err != nil {
		return nil, apperrors.NewDatabaseError(err)
	}
	return row, nil
}

func (s *CatalogService) GetColour(ctx context.Context, name string) (*database.Colour, error) {
	var row database.Colour
	if err := s.db.WithContext(ctx).Where("name = ?", normalizeName(name)).First(&row).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperrors.NewNotFoundError("colour", name)
		}
		return nil, apperrors.NewDatabaseError(err)
	}
	return &row, nil
}

func (s *CatalogService) CreateProductCategory(ctx context.Context, name, colourName string) (*database.ProductCategory, error) {
	colour, err := s.GetColour(ctx, colourName)
	if err != nil {
		return nil, err
	}
	row := &database.ProductCategory{Name: normalizeName(name), ColourID: &colour.ID, Colour: colour}
	if err := s.db.WithContext(ctx).Omit("Colour").Create(row).Error; err != nil {
		return nil, apperrors.NewDatabaseError(err)
	}
	return row, nil
}

func (s *CatalogService) CreateRecipeCategory(ctx context.Context, name, colourName string) (*database.RecipeCategory, error) {
	colour, err := s.GetColour(ctx, colourName)
	if err != nil {
		return nil, err
	}
	row := &database.RecipeCategory{Name: normalizeName(name), ColourID: &colour.ID, Colour: colour}
	if err := s.db.WithContext(ctx).Omit("Colour").Create(row).Error; err != nil {
		return nil, apperrors.NewDatabaseError(err)
	}
	return row, nil
}

// GetOrCreateProduct finds a product by name, creating it in categoryName when missing.
// An empty categoryName leaves the product uncategorised.
func (s *CatalogService) GetOrCreateProduct(ctx context.Context, name, categoryName string) (*database.Product, error) {
	return getOrCreateProduct(s.db.WithContext(ctx), name, categoryName)
}

func (s *CatalogService) GetOrCreateUnit(ctx context.Context, name string) (*database.MeasurementUnit, error) {
	return getOrCreateUnit(s.db.WithContext(ctx), name)
}

func (s *CatalogService) ListUnits(ctx context.Context) ([]database.MeasurementUnit, error) {
	var units []database.MeasurementUnit
	if err := s.db.WithContext(ctx).Order("name ASC").Find(&units).Error; err != nil {
		return nil, apperrors.NewDatabaseError(err)
	}
	return units, nil
}

func (s *CatalogService) ListProducts(ctx context.Context) ([]database.Product, error) {
	var products []database.Product
	if err := s.db.WithContext(ctx).Preload("Category").Order("name ASC").Find(&products).Error; err != nil {
		return nil, apperrors.NewDatabaseError(err)
	}
	return products, nil
}

func (s *CatalogService) ListRecipeCategories(ctx context.Context) ([]database.RecipeCategory, error) {
	var categories []database.RecipeCategory
	if err := s.db.WithContext(ctx).Preload("Colour").Order("name ASC").Find(&categories).Error; err != nil {
		return nil, apperrors.NewDatabaseError(err)
	}
	return categories, nil
}

func getOrCreateProduct(tx *gorm.DB, name, categoryName string) (*database.Product, error) {
	name = normalizeName(name)
	if name == "" {
		return nil, apperrors.NewValidationError("EMPTY_PRODUCT", "product name is required")
	}

	var categoryID *uint
	if categoryName != "" {
		var category database.ProductCategory
		if err := tx.Where("name = ?", normalizeName(categoryName)).First(&category).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return nil, apperrors.NewNotFoundError("product category", categoryName)
			}
			return nil, apperrors.NewDatabaseError(err)
		}
		categoryID = &category.ID
	}

	product := &database.Product{}
	if err := tx.Where(database.Product{Name: name}).Attrs(database.Product{CategoryID: categoryID}).FirstOrCreate(product).Error; err != nil {
		return nil, apperrors.NewDatabaseError(fmt.Errorf("product %q: %w", name, err))
	}
	return product, nil
}

func getOrCreateUnit(tx *gorm.DB, name string) (*database.MeasurementUnit, error) {
	name = normalizeName(name)
	if name == "" {
		return nil, apperrors.NewValidationError("EMPTY_UNIT", "unit name is required")
	}
	unit := &database.MeasurementUnit{}
	if err := tx.Where(database.MeasurementUnit{Name: name}).FirstOrCreate(unit).Error; err != nil {
		return nil, apperrors.NewDatabaseError(fmt.Errorf("unit %q: %w", name, err))
	}
	return unit, nil
}

func normalizeName(s string) string {
	return strings.ToLower(strings.Join(strings.Fields(s), " "))
}
