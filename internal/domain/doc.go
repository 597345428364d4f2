// Package domain holds the recipe and shopping list model: validated value
// types and the ShoppingList aggregate that merges ingredients by
// (product, unit). It performs no I/O.
package domain
