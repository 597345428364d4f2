package keyboards

import (
	"fmt"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"
	"github.com/vladimiradmaev/recipe-helper/internal/database"
	"github.com/vladimiradmaev/recipe-helper/internal/domain"
)

// Callback data
const (
	MainMenuData  = "main_menu"
	ListsData     = "lists"
	RecipesData   = "recipes"
	NewListData   = "new_list"
	NewRecipeData = "new_recipe"

	RecipeCategorySkipData = "recipe_category_skip"

	ListPrefix           = "list"
	AddItemPrefix        = "add_item"
	AddRecipePrefix      = "add_recipe"
	RecipePrefix         = "recipe"
	RecipeToListPrefix   = "recipe_to_list"
	RecipeCategoryPrefix = "recipe_category"
)

// Data joins a callback prefix with its ids: Data("list", 3) is "list:3".
func Data(prefix string, ids ...uint) string {
	out := prefix
	for _, id := range ids {
		out += fmt.Sprintf(":%d", id)
	}
	return out
}

func backRow(title, data string) []tgbotapi.InlineKeyboardButton {
	return tgbotapi.NewInlineKeyboardRow(
		tgbotapi.NewInlineKeyboardButtonData(title, data),
	)
}

// MainMenu creates the main menu keyboard
func MainMenu() tgbotapi.InlineKeyboardMarkup {
	return tgbotapi.NewInlineKeyboardMarkup(
		tgbotapi.NewInlineKeyboardRow(
			tgbotapi.NewInlineKeyboardButtonData("🛒 Списки покупок", ListsData),
		),
		tgbotapi.NewInlineKeyboardRow(
			tgbotapi.NewInlineKeyboardButtonData("📖 Рецепты", RecipesData),
		),
	)
}

// ListsMenu shows one button per shopping list
func ListsMenu(lists []database.ShoppingList) tgbotapi.InlineKeyboardMarkup {
	keyboard := tgbotapi.NewInlineKeyboardMarkup()
	for _, l := range lists {
		keyboard.InlineKeyboard = append(keyboard.InlineKeyboard, tgbotapi.NewInlineKeyboardRow(
			tgbotapi.NewInlineKeyboardButtonData("🛒 "+l.Name, Data(ListPrefix, l.ID)),
		))
	}
	keyboard.InlineKeyboard = append(keyboard.InlineKeyboard,
		tgbotapi.NewInlineKeyboardRow(
			tgbotapi.NewInlineKeyboardButtonData("➕ Новый список", NewListData),
		),
		backRow("◀️ Главное меню", MainMenuData),
	)
	return keyboard
}

// ListMenu creates the keyboard under a single shopping list
func ListMenu(listID uint) tgbotapi.InlineKeyboardMarkup {
	return tgbotapi.NewInlineKeyboardMarkup(
		tgbotapi.NewInlineKeyboardRow(
			tgbotapi.NewInlineKeyboardButtonData("➕ Продукты", Data(AddItemPrefix, listID)),
			tgbotapi.NewInlineKeyboardButtonData("📖 Из рецепта", Data(AddRecipePrefix, listID)),
		),
		backRow("◀️ Все списки", ListsData),
	)
}

// RecipesMenu lists recipes. With a non-zero listID a tap adds the recipe to that list.
func RecipesMenu(recipes []database.Recipe, listID uint) tgbotapi.InlineKeyboardMarkup {
	keyboard := tgbotapi.NewInlineKeyboardMarkup()
	for _, r := range recipes {
		data := Data(RecipePrefix, r.ID)
		if listID != 0 {
			data = Data(RecipeToListPrefix, listID, r.ID)
		}
		keyboard.InlineKeyboard = append(keyboard.InlineKeyboard, tgbotapi.NewInlineKeyboardRow(
			tgbotapi.NewInlineKeyboardButtonData("🍳 "+r.Name, data),
		))
	}

	if listID != 0 {
		keyboard.InlineKeyboard = append(keyboard.InlineKeyboard, backRow("◀️ Назад", Data(ListPrefix, listID)))
		return keyboard
	}
	keyboard.InlineKeyboard = append(keyboard.InlineKeyboard,
		tgbotapi.NewInlineKeyboardRow(
			tgbotapi.NewInlineKeyboardButtonData("➕ Новый рецепт", NewRecipeData),
		),
		backRow("◀️ Главное меню", MainMenuData),
	)
	return keyboard
}

// RecipeMenu creates the keyboard under a single recipe
func RecipeMenu() tgbotapi.InlineKeyboardMarkup {
	return tgbotapi.NewInlineKeyboardMarkup(
		backRow("◀️ Все рецепты", RecipesData),
	)
}

// CancelMenu offers a single way back out of an input dialog
func CancelMenu(data string) tgbotapi.InlineKeyboardMarkup {
	return tgbotapi.NewInlineKeyboardMarkup(
		backRow("◀️ Отмена", data),
	)
}

var colourEmojis = []struct {
	emoji string
	rgb   domain.RGB
}{
	{"🔴", domain.RGB{221, 46, 68}},
	{"🟠", domain.RGB{244, 144, 12}},
	{"🟡", domain.RGB{253, 203, 88}},
	{"🟢", domain.RGB{120, 177, 89}},
	{"🔵", domain.RGB{85, 172, 238}},
	{"🟣", domain.RGB{170, 142, 214}},
	{"🟤", domain.RGB{193, 105, 79}},
	{"⚫", domain.RGB{49, 55, 61}},
	{"⚪", domain.RGB{230, 231, 232}},
}

// ColourEmoji picks the coloured circle closest to c.
func ColourEmoji(c domain.Colour) string {
	rgb := c.RGB()
	best, bestDist := colourEmojis[0].emoji, -1
	for _, e := range colourEmojis {
		dist := 0
		for i := range rgb {
			d := int(rgb[i]) - int(e.rgb[i])
			dist += d * d
		}
		if bestDist < 0 || dist < bestDist {
			best, bestDist = e.emoji, dist
		}
	}
	return best
}

// CategoryLabel renders a recipe category with its colour, e.g. "🟡 завтраки #ffff00".
func CategoryLabel(c database.RecipeCategory) string {
	if c.Colour == nil {
		return c.Name
	}
	colour := database.ToDomainColour(c.Colour)
	return fmt.Sprintf("%s %s %s", ColourEmoji(colour), c.Name, colour.Hex())
}

// RecipeCategoriesMenu lets the user pick a category for a new recipe
func RecipeCategoriesMenu(categories []database.RecipeCategory) tgbotapi.InlineKeyboardMarkup {
	keyboard := tgbotapi.NewInlineKeyboardMarkup()
	for _, c := range categories {
		keyboard.InlineKeyboard = append(keyboard.InlineKeyboard, tgbotapi.NewInlineKeyboardRow(
			tgbotapi.NewInlineKeyboardButtonData(CategoryLabel(c), Data(RecipeCategoryPrefix, c.ID)),
		))
	}
	keyboard.InlineKeyboard = append(keyboard.InlineKeyboard,
		tgbotapi.NewInlineKeyboardRow(
			tgbotapi.NewInlineKeyboardButtonData("Без категории", RecipeCategorySkipData),
		),
		backRow("◀️ Отмена", RecipesData),
	)
	return keyboard
}
