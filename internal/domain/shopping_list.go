package domain

import (
	"fmt"
	"strings"
	"time"

	apperrors "github.com/vladimiradmaev/recipe-helper/internal/errors"
)

// AdditionKind tags what is being added to a shopping list.
type AdditionKind string

const (
	AdditionIngredient AdditionKind = "ingredient"
	AdditionRecipe     AdditionKind = "recipe"
)

// Addition is either an ingredient or a whole recipe.
type Addition struct {
	Kind       AdditionKind
	Ingredient Ingredient
	Recipe     Recipe
}

func AddIngredient(i Ingredient) Addition {
	return Addition{Kind: AdditionIngredient, Ingredient: i}
}

func AddRecipe(r Recipe) Addition {
	return Addition{Kind: AdditionRecipe, Recipe: r}
}

// ShoppingList accumulates ingredients, merging lines with the same MergeKey.
// It is not safe for concurrent use.
type ShoppingList struct {
	ID        uint
	Master    User
	Name      string
	CreatedAt time.Time
	UpdatedAt time.Time

	items []Ingredient
	index map[MergeKey]int
	clock Clock
}

func NewShoppingList(master User, name string, clock Clock) *ShoppingList {
	clock = clockOrSystem(clock)
	now := clock.Now()
	return &ShoppingList{
		Master:    master,
		Name:      name,
		CreatedAt: now,
		UpdatedAt: now,
		index:     make(map[MergeKey]int),
		clock:     clock,
	}
}

// Add dispatches on the addition kind.
func (l *ShoppingList) Add(a Addition) error {
	switch a.Kind {
	case AdditionIngredient:
		return l.AddIngredient(a.Ingredient)
	case AdditionRecipe:
		return l.AddRecipe(a.Recipe)
	default:
		return apperrors.NewUnsupportedTypeError(string(a.Kind))
	}
}

// AddIngredient merges item into the first line with the same key, or
// appends it as a new line.
func (l *ShoppingList) AddIngredient(item Ingredient) error {
	if err := l.merge(item); err != nil {
		return err
	}
	l.touch()
	return nil
}

// AddRecipe adds every recipe ingredient in order.
func (l *ShoppingList) AddRecipe(r Recipe) error {
	for _, item := range r.ingredients {
		if err := item.Validate(); err != nil {
			return fmt.Errorf("add recipe %q: %w", r.Name, err)
		}
	}
	for _, item := range r.ingredients {
		if err := l.merge(item); err != nil {
			return fmt.Errorf("add recipe %q: %w", r.Name, err)
		}
	}
	l.touch()
	return nil
}

// merge validates before touching the list, so a rejected item leaves it unchanged.
func (l *ShoppingList) merge(item Ingredient) error {
	if err := item.Validate(); err != nil {
		return err
	}
	if l.index == nil {
		l.index = make(map[MergeKey]int)
	}
	key := item.Key()
	if pos, ok := l.index[key]; ok {
		combined, err := l.items[pos].Combine(item)
		if err != nil {
			return err
		}
		l.items[pos] = combined
		return nil
	}
	l.index[key] = len(l.items)
	l.items = append(l.items, item)
	return nil
}

func (l *ShoppingList) touch() {
	l.UpdatedAt = clockOrSystem(l.clock).Now()
}

// Items returns a copy of the lines in insertion order.
func (l *ShoppingList) Items() []Ingredient {
	return append([]Ingredient(nil), l.items...)
}

// Item looks a line up by its merge key.
func (l *ShoppingList) Item(key MergeKey) (Ingredient, bool) {
	pos, ok := l.index[key]
	if !ok {
		return Ingredient{}, false
	}
	return l.items[pos], true
}

func (l *ShoppingList) Len() int {
	return len(l.items)
}

func (l *ShoppingList) String() string {
	parts := make([]string, 0, len(l.items))
	for _, item := range l.items {
		parts = append(parts, item.String())
	}
	return fmt.Sprintf("<Список покупок: %s, в составе: %s>", l.Name, strings.Join(parts, ", "))
}

// RestoreShoppingList rebuilds a list from stored lines without touching
// its timestamps. Lines sharing a key are merged.
func RestoreShoppingList(id uint, master User, name string, createdAt, updatedAt time.Time, items []Ingredient, clock Clock) (*ShoppingList, error) {
	l := NewShoppingList(master, name, clock)
	l.ID = id
	for _, item := range items {
		if err := l.merge(item); err != nil {
			return nil, err
		}
	}
	l.CreatedAt = createdAt
	l.UpdatedAt = updatedAt
	return l, nil
}
