package handlers

import (
	"context"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"
	"github.com/vladimiradmaev/recipe-helper/internal/bot/menus"
	"github.com/vladimiradmaev/recipe-helper/internal/bot/state"
	"github.com/vladimiradmaev/recipe-helper/internal/database"
	"github.com/vladimiradmaev/recipe-helper/internal/logger"
)

// CommandHandler handles bot commands
type CommandHandler struct {
	api          menus.Sender
	deps         Dependencies
	stateManager state.StateManager
}

// NewCommandHandler creates a new command handler
func NewCommandHandler(api menus.Sender, deps Dependencies, stateManager state.StateManager) *CommandHandler {
	return &CommandHandler{
		api:          api,
		deps:         deps,
		stateManager: stateManager,
	}
}

// Handle processes a command message
func (h *CommandHandler) Handle(ctx context.Context, message *tgbotapi.Message, user *database.User) error {
	logger.Info("Handling command", "command", message.Command(), "user_id", user.ID)

	// any command interrupts a pending dialog
	h.stateManager.SetUserState(user.TelegramID, state.None)
	h.stateManager.ClearTempData(user.TelegramID)

	chatID := message.Chat.ID
	switch message.Command() {
	case "start":
		return menus.SendMainMenu(h.api, chatID)
	case "help":
		return h.handleHelp(chatID)
	case "lists":
		lists, err := h.deps.ShoppingListSvc.ListUserLists(ctx, user.ID)
		if err != nil {
			return replyError(h.api, chatID, err)
		}
		return menus.SendLists(h.api, chatID, lists)
	case "recipes":
		recipes, err := h.deps.RecipeSvc.ListUserRecipes(ctx, user.ID)
		if err != nil {
			return replyError(h.api, chatID, err)
		}
		return menus.SendRecipes(h.api, chatID, recipes, 0)
	case "categories":
		return h.handleCategories(ctx, chatID)
	case "category":
		return h.handleRecipeCategory(ctx, chatID, message.CommandArguments())
	case "colour":
		return h.handleColour(ctx, chatID, message.CommandArguments())
	case "product_category":
		return h.handleProductCategory(ctx, chatID, message.CommandArguments())
	case "product":
		return h.handleProduct(ctx, chatID, message.CommandArguments())
	case "products":
		return h.handleProducts(ctx, chatID)
	case "unit":
		return h.handleUnit(ctx, chatID, message.CommandArguments())
	case "units":
		return h.handleUnits(ctx, chatID)
	case "password":
		return h.handleSetPassword(ctx, message, user)
	case "check_password":
		return h.handleCheckPassword(ctx, message, user)
	default:
		return h.handleUnknownCommand(chatID)
	}
}

// handleHelp handles the /help command
func (h *CommandHandler) handleHelp(chatID int64) error {
	text := `Доступные команды:
/start - Показать главное меню
/lists - Списки покупок
/recipes - Рецепты
/help - Показать это сообщение

Каталог:
/categories - Категории рецептов
/category название; цвет - Новая категория рецептов
/colour название; R G B - Новый цвет
/product_category название; цвет - Новая категория продуктов
/product название; категория - Добавить продукт
/products - Продукты в каталоге
/unit название - Добавить единицу измерения
/units - Единицы измерения

Аккаунт:
/password email пароль - Задать email и пароль
/check_password пароль - Проверить пароль

Как добавить продукты в список:
1. Откройте список и нажмите "➕ Продукты"
2. Пишите по одному продукту на строке: продукт количество единица
Пример:
яйцо 2 шт.
молоко 0,5 л

Одинаковые продукты в одной единице измерения складываются.
"сосиски 100 грамм" и "сосиски 2 шт." останутся разными строками.`

	msg := tgbotapi.NewMessage(chatID, text)
	_, err := h.api.Send(msg)
	return err
}

// handleUnknownCommand handles unknown commands
func (h *CommandHandler) handleUnknownCommand(chatID int64) error {
	msg := tgbotapi.NewMessage(chatID, "Неизвестная команда. Используйте /help для просмотра доступных команд.")
	_, err := h.api.Send(msg)
	return err
}

// replyError tells the user what went wrong. Input mistakes end there,
// anything else is returned for the update loop to log.
func replyError(api menus.Sender, chatID int64, err error) error {
	msg := tgbotapi.NewMessage(chatID, "❌ "+userMessage(err))
	if _, sendErr := api.Send(msg); sendErr != nil {
		logger.Error("Failed to send error reply", "error", sendErr)
	}
	if isUserError(err) {
		logger.Info("Rejected user input", "error", err)
		return nil
	}
	return err
}
