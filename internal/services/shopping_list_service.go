package services

import (
	"context"
	"errors"
	"strings"
	"sync"

	"github.com/vladimiradmaev/recipe-helper/internal/database"
	"github.com/vladimiradmaev/recipe-helper/internal/domain"
	apperrors "github.com/vladimiradmaev/recipe-helper/internal/errors"
	"github.com/vladimiradmaev/recipe-helper/internal/logger"
	"gorm.io/gorm"
)

// ShoppingListService persists shopping lists. Additions go through the
// domain aggregate so the merge rule lives in one place.
type ShoppingListService struct {
	db      *gorm.DB
	recipes *RecipeService
	clock   domain.Clock
	locks   *listLocks
}

func NewShoppingListService(db *gorm.DB, recipes *RecipeService, clock domain.Clock) *ShoppingListService {
	if clock == nil {
		clock = domain.SystemClock
	}
	return &ShoppingListService{
		db:      db,
		recipes: recipes,
		clock:   clock,
		locks:   newListLocks(),
	}
}

func (s *ShoppingListService) CreateList(ctx context.Context, userID uint, name string) (*domain.ShoppingList, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		return nil, apperrors.NewValidationError("EMPTY_LIST_NAME", "shopping list name is required")
	}

	now := s.clock.Now()
	row := &database.ShoppingList{UserID: userID, Name: name}
	row.CreatedAt = now
	row.UpdatedAt = now
	if err := s.db.WithContext(ctx).Omit("User", "Items").Create(row).Error; err != nil {
		return nil, apperrors.NewDatabaseError(err)
	}
	logger.Info("Shopping list created", "list_id", row.ID, "user_id", userID)
	return s.GetList(ctx, userID, row.ID)
}

func (s *ShoppingListService) ListUserLists(ctx context.Context, userID uint) ([]database.ShoppingList, error) {
	var lists []database.ShoppingList
	if err := s.db.WithContext(ctx).
		Where("user_id = ?", userID).
		Order("updated_at DESC").
		Find(&lists).Error; err != nil {
		return nil, apperrors.NewDatabaseError(err)
	}
	return lists, nil
}

func (s *ShoppingListService) GetList(ctx context.Context, userID, listID uint) (*domain.ShoppingList, error) {
	row, err := loadList(s.db.WithContext(ctx), userID, listID)
	if err != nil {
		return nil, err
	}
	return database.ToDomainShoppingList(*row, s.clock)
}

// AddIngredient merges one ingredient into the list.
func (s *ShoppingListService) AddIngredient(ctx context.Context, userID, listID uint, in IngredientInput) (*domain.ShoppingList, error) {
	ing, err := in.ToDomain()
	if err != nil {
		return nil, err
	}
	return s.Add(ctx, userID, listID, domain.AddIngredient(ing))
}

// AddIngredients merges several ingredients in order within one transaction.
func (s *ShoppingListService) AddIngredients(ctx context.Context, userID, listID uint, in []IngredientInput) (*domain.ShoppingList, error) {
	ings := make([]domain.Ingredient, 0, len(in))
	for _, i := range in {
		ing, err := i.ToDomain()
		if err != nil {
			return nil, err
		}
		ings = append(ings, ing)
	}
	return s.apply(ctx, userID, listID, func(l *domain.ShoppingList) error {
		for _, ing := range ings {
			if err := l.AddIngredient(ing); err != nil {
				return err
			}
		}
		return nil
	})
}

// AddRecipe merges every ingredient of a recipe owned by the same user.
func (s *ShoppingListService) AddRecipe(ctx context.Context, userID, listID, recipeID uint) (*domain.ShoppingList, error) {
	recipe, err := s.recipes.LoadDomainRecipe(ctx, userID, recipeID)
	if err != nil {
		return nil, err
	}
	return s.Add(ctx, userID, listID, domain.AddRecipe(recipe))
}

func (s *ShoppingListService) Add(ctx context.Context, userID, listID uint, a domain.Addition) (*domain.ShoppingList, error) {
	return s.apply(ctx, userID, listID, func(l *domain.ShoppingList) error {
		return l.Add(a)
	})
}

// apply loads the list, runs fn on the aggregate and writes the result back.
// Writers to the same list are serialised in-process and by the transaction.
func (s *ShoppingListService) apply(ctx context.Context, userID, listID uint, fn func(*domain.ShoppingList) error) (*domain.ShoppingList, error) {
	unlock := s.locks.lock(listID)
	defer unlock()

	var result *domain.ShoppingList
	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		row, err := loadList(tx, userID, listID)
		if err != nil {
			return err
		}
		list, err := database.ToDomainShoppingList(*row, s.clock)
		if err != nil {
			return err
		}
		if err := fn(list); err != nil {
			return err
		}
		if err := saveItems(tx, row, list); err != nil {
			return err
		}
		result = list
		return nil
	})
	if err != nil {
		return nil, err
	}

	logger.Debug("Shopping list updated", "list_id", listID, "lines", result.Len())
	return result, nil
}

func loadList(tx *gorm.DB, userID, listID uint) (*database.ShoppingList, error) {
	var row database.ShoppingList
	err := tx.
		Preload("User").
		Preload("Items", func(db *gorm.DB) *gorm.DB { return db.Order("position ASC") }).
		Preload("Items.Product").
		Preload("Items.Unit").
		Where("id = ? AND user_id = ?", listID, userID).
		First(&row).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperrors.NewNotFoundError("shopping list", listID)
		}
		return nil, apperrors.NewDatabaseError(err)
	}
	return &row, nil
}

// saveItems upserts one row per domain line, keyed by (product, unit).
func saveItems(tx *gorm.DB, row *database.ShoppingList, list *domain.ShoppingList) error {
	existing := make(map[domain.MergeKey]database.ShoppingListItem, len(row.Items))
	for _, item := range row.Items {
		existing[domain.MergeKey{Product: item.Product.Name, Unit: item.Unit.Name}] = item
	}

	for pos, ing := range list.Items() {
		if item, ok := existing[ing.Key()]; ok {
			if item.Quantity == ing.Quantity && item.Position == pos {
				continue
			}
			err := tx.Model(&database.ShoppingListItem{}).
				Where("id = ?", item.ID).
				Updates(map[string]interface{}{"quantity": ing.Quantity, "position": pos}).Error
			if err != nil {
				return apperrors.NewDatabaseError(err)
			}
			continue
		}

		product, err := getOrCreateProduct(tx, ing.Product.Name, "")
		if err != nil {
			return err
		}
		unit, err := getOrCreateUnit(tx, ing.Unit.Name)
		if err != nil {
			return err
		}
		item := &database.ShoppingListItem{
			ShoppingListID: row.ID,
			ProductID:      product.ID,
			UnitID:         unit.ID,
			Position:       pos,
			Quantity:       ing.Quantity,
		}
		if err := tx.Omit("Product", "Unit").Create(item).Error; err != nil {
			return apperrors.NewDatabaseError(err)
		}
	}

	err := tx.Model(&database.ShoppingList{}).
		Where("id = ?", row.ID).
		UpdateColumn("updated_at", list.UpdatedAt).Error
	if err != nil {
		return apperrors.NewDatabaseError(err)
	}
	return nil
}

// listLocks hands out one mutex per list id. Entries are dropped when
// their last holder or waiter releases them.
type listLocks struct {
	mu    sync.Mutex
	locks map[uint]*listLock
}

type listLock struct {
	mu   sync.Mutex
	refs int
}

func newListLocks() *listLocks {
	return &listLocks{locks: make(map[uint]*listLock)}
}

func (l *listLocks) lock(id uint) func() {
	l.mu.Lock()
	entry, ok := l.locks[id]
	if !ok {
		entry = &listLock{}
		l.locks[id] = entry
	}
	entry.refs++
	l.mu.Unlock()

	entry.mu.Lock()
	return func() {
		entry.mu.Unlock()

		l.mu.Lock()
		entry.refs--
		if entry.refs == 0 {
			delete(l.locks, id)
		}
		l.mu.Unlock()
	}
}

func (l *listLocks) len() int {
	l.mu.Lock()
	defer l.mu.Unlock()
	return len(l.locks)
}
