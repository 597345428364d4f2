package database

import (
	"time"

	"gorm.io/gorm"
)

type User struct {
	gorm.Model
	TelegramID   int64 `gorm:"uniqueIndex"`
	Username     string
	FirstName    string
	LastName     string
	Email        string
	PasswordHash string
}

// DisplayName prefers the first name, then the username.
func (u User) DisplayName() string {
	if u.FirstName != "" {
		return u.FirstName
	}
	return u.Username
}

type Colour struct {
	gorm.Model
	Name string `gorm:"uniqueIndex"`
	R    uint8
	G    uint8
	B    uint8
}

type ProductCategory struct {
	gorm.Model
	Name     string `gorm:"uniqueIndex"`
	ColourID *uint
	Colour   *Colour
}

type Product struct {
	gorm.Model
	Name       string `gorm:"uniqueIndex"`
	CategoryID *uint
	Category   *ProductCategory
}

type MeasurementUnit struct {
	gorm.Model
	Name string `gorm:"uniqueIndex"`
}

type RecipeCategory struct {
	gorm.Model
	Name     string `gorm:"uniqueIndex"`
	ColourID *uint
	Colour   *Colour
}

type Recipe struct {
	gorm.Model
	UserID           uint `gorm:"index"`
	User             User
	Name             string
	CategoryID       *uint
	Category         *RecipeCategory
	Description      string
	PreparingMinutes int
	CookingMinutes   int
	Ingredients      []RecipeIngredient `gorm:"constraint:OnDelete:CASCADE"`
}

type RecipeIngredient struct {
	ID        uint `gorm:"primaryKey"`
	RecipeID  uint `gorm:"index"`
	Position  int
	ProductID uint
	Product   Product
	UnitID    uint
	Unit      MeasurementUnit
	Quantity  float64
}

type ShoppingList struct {
	gorm.Model
	UserID uint `gorm:"index"`
	User   User
	Name   string
	Items  []ShoppingListItem `gorm:"constraint:OnDelete:CASCADE"`
}

// ShoppingListItem is one merged line; the unique index is the merge key.
type ShoppingListItem struct {
	ID             uint `gorm:"primaryKey"`
	ShoppingListID uint `gorm:"uniqueIndex:idx_list_item_key"`
	ProductID      uint `gorm:"uniqueIndex:idx_list_item_key"`
	Product        Product
	UnitID         uint `gorm:"uniqueIndex:idx_list_item_key"`
	Unit           MeasurementUnit
	Position       int
	Quantity       float64
	CreatedAt      time.Time
	UpdatedAt      time.Time
}

// Models lists every table for AutoMigrate.
func Models() []interface{} {
	return []interface{}{
		&User{},
		&Colour{},
		&ProductCategory{},
		&Product{},
		&MeasurementUnit{},
		&RecipeCategory{},
		&Recipe{},
		&RecipeIngredient{},
		&ShoppingList{},
		&ShoppingListItem{},
	}
}
