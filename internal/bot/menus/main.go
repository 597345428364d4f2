package menus

import (
	"fmt"
	"strings"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"
	"github.com/vladimiradmaev/recipe-helper/internal/bot/keyboards"
	"github.com/vladimiradmaev/recipe-helper/internal/database"
	"github.com/vladimiradmaev/recipe-helper/internal/domain"
)

// Sender is the part of *tgbotapi.BotAPI the bot talks through.
type Sender interface {
	Send(c tgbotapi.Chattable) (tgbotapi.Message, error)
	Request(c tgbotapi.Chattable) (*tgbotapi.APIResponse, error)
}

var _ Sender = (*tgbotapi.BotAPI)(nil)

// SendMainMenu sends the main menu to a chat
func SendMainMenu(api Sender, chatID int64) error {
	text := `🍳 *Помощник по рецептам*

🛒 Собирайте списки покупок: одинаковые продукты в одной единице измерения складываются в одну строку.
📖 Сохраняйте рецепты и добавляйте их в список целиком.

Выберите действие:`

	msg := tgbotapi.NewMessage(chatID, text)
	msg.ParseMode = "Markdown"
	msg.ReplyMarkup = keyboards.MainMenu()
	_, err := api.Send(msg)
	return err
}

// SendLists sends the user's shopping lists
func SendLists(api Sender, chatID int64, lists []database.ShoppingList) error {
	text := "Ваши списки покупок:"
	if len(lists) == 0 {
		text = "У вас пока нет списков покупок. Нажмите 'Новый список' чтобы создать первый."
	}
	msg := tgbotapi.NewMessage(chatID, text)
	msg.ReplyMarkup = keyboards.ListsMenu(lists)
	_, err := api.Send(msg)
	return err
}

// RenderList formats a shopping list as a numbered message.
func RenderList(list *domain.ShoppingList) string {
	var b strings.Builder
	fmt.Fprintf(&b, "🛒 %s\n\n", list.Name)

	items := list.Items()
	if len(items) == 0 {
		b.WriteString("Список пуст.")
		return b.String()
	}
	for i, item := range items {
		fmt.Fprintf(&b, "%d. %s: %s %s\n", i+1, item.Product.Name, domain.FormatQuantity(item.Quantity), item.Unit.Name)
	}
	fmt.Fprintf(&b, "\nОбновлен: %s", list.UpdatedAt.Format("02.01.2006 15:04"))
	return b.String()
}

// SendList sends a single shopping list with its actions
func SendList(api Sender, chatID int64, list *domain.ShoppingList) error {
	msg := tgbotapi.NewMessage(chatID, RenderList(list))
	msg.ReplyMarkup = keyboards.ListMenu(list.ID)
	_, err := api.Send(msg)
	return err
}

// SendRecipes sends recipe buttons. A non-zero listID turns them into "add to list" buttons.
func SendRecipes(api Sender, chatID int64, recipes []database.Recipe, listID uint) error {
	var text string
	switch {
	case len(recipes) == 0 && listID != 0:
		text = "У вас пока нет рецептов. Создайте рецепт в разделе 'Рецепты'."
	case len(recipes) == 0:
		text = "У вас пока нет рецептов. Нажмите 'Новый рецепт' чтобы добавить."
	case listID != 0:
		text = "Выберите рецепт, ингредиенты которого нужно добавить в список:"
	default:
		text = "Ваши рецепты:"
	}
	msg := tgbotapi.NewMessage(chatID, text)
	msg.ReplyMarkup = keyboards.RecipesMenu(recipes, listID)
	_, err := api.Send(msg)
	return err
}

// RenderRecipe formats a recipe card.
func RenderRecipe(r domain.Recipe) string {
	var b strings.Builder
	fmt.Fprintf(&b, "🍳 %s\n", r.Name)
	if r.Category.Name != "" {
		fmt.Fprintf(&b, "Категория: %s\n", r.Category.Name)
	}
	if r.Description != "" {
		fmt.Fprintf(&b, "\n%s\n", r.Description)
	}

	b.WriteString("\nИнгредиенты:\n")
	for _, item := range r.Ingredients() {
		fmt.Fprintf(&b, "• %s: %s %s\n", item.Product.Name, domain.FormatQuantity(item.Quantity), item.Unit.Name)
	}

	fmt.Fprintf(&b, "\n⏱ Подготовка: %s\n", r.Timer.PreparingString())
	fmt.Fprintf(&b, "🔥 Приготовление: %s", r.Timer.CookingString())
	return b.String()
}

// SendRecipe sends a recipe card
func SendRecipe(api Sender, chatID int64, r domain.Recipe) error {
	msg := tgbotapi.NewMessage(chatID, RenderRecipe(r))
	msg.ReplyMarkup = keyboards.RecipeMenu()
	_, err := api.Send(msg)
	return err
}

// SendPrompt asks for text input with a cancel button leading to back.
func SendPrompt(api Sender, chatID int64, text, back string) error {
	msg := tgbotapi.NewMessage(chatID, text)
	msg.ReplyMarkup = keyboards.CancelMenu(back)
	_, err := api.Send(msg)
	return err
}

// SendRecipeCategories asks which category the new recipe belongs to
func SendRecipeCategories(api Sender, chatID int64, recipeName string, categories []database.RecipeCategory) error {
	msg := tgbotapi.NewMessage(chatID, fmt.Sprintf("Рецепт \"%s\".\nВыберите категорию:", recipeName))
	msg.ReplyMarkup = keyboards.RecipeCategoriesMenu(categories)
	_, err := api.Send(msg)
	return err
}

// SendRecipeIngredientsPrompt asks for the ingredients of the recipe being created
func SendRecipeIngredientsPrompt(api Sender, chatID int64, recipeName string) error {
	text := fmt.Sprintf(`Рецепт "%s".
Теперь отправьте ингредиенты, по одному на строке:
продукт количество единица`, recipeName)
	return SendPrompt(api, chatID, text, keyboards.RecipesData)
}
