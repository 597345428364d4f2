package domain

import "fmt"

// ProductCategory groups products, e.g. "животного происхождения".
type ProductCategory struct {
	Name   string
	Colour Colour
}

func (c ProductCategory) String() string {
	return fmt.Sprintf("<Категория: %s>", c.Name)
}

// Product is identified by its name. The category is only used when the
// product is created and is not kept on the value.
type Product struct {
	Name string
}

func NewProduct(name string, _ ProductCategory) Product {
	return Product{Name: name}
}

// Equal compares products by name.
func (p Product) Equal(other Product) bool {
	return p.Name == other.Name
}

func (p Product) String() string {
	return fmt.Sprintf("<Продукт: %s>", p.Name)
}

// MeasurementUnit is a unit such as "грамм" or "шт.".
type MeasurementUnit struct {
	Name string
}

func (u MeasurementUnit) String() string {
	return fmt.Sprintf("<Единица измерения: %s>", u.Name)
}

// RecipeCategory groups recipes, e.g. "завтрак".
type RecipeCategory struct {
	Name   string
	Colour Colour
}

func (c RecipeCategory) String() string {
	return fmt.Sprintf("<Категория рецептов: %s>", c.Name)
}
