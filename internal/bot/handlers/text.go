package handlers

import (
	"context"
	"encoding/json"
	"fmt"
	"strconv"
	"strings"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"
	"github.com/vladimiradmaev/recipe-helper/internal/bot/keyboards"
	"github.com/vladimiradmaev/recipe-helper/internal/bot/menus"
	"github.com/vladimiradmaev/recipe-helper/internal/bot/state"
	"github.com/vladimiradmaev/recipe-helper/internal/database"
	"github.com/vladimiradmaev/recipe-helper/internal/logger"
	"github.com/vladimiradmaev/recipe-helper/internal/services"
)

// TextHandler handles text messages
type TextHandler struct {
	api          menus.Sender
	deps         Dependencies
	stateManager state.StateManager
}

// NewTextHandler creates a new text handler
func NewTextHandler(api menus.Sender, deps Dependencies, stateManager state.StateManager) *TextHandler {
	return &TextHandler{
		api:          api,
		deps:         deps,
		stateManager: stateManager,
	}
}

// Handle processes a text message
func (h *TextHandler) Handle(ctx context.Context, message *tgbotapi.Message, user *database.User) error {
	userState := h.stateManager.GetUserState(user.TelegramID)

	switch userState {
	case state.WaitingForListName:
		return h.handleListName(ctx, message, user)
	case state.WaitingForIngredients:
		return h.handleIngredients(ctx, message, user)
	case state.WaitingForRecipeName:
		return h.handleRecipeName(ctx, message, user)
	case state.WaitingForRecipeCategory:
		return h.handleRecipeCategoryText(ctx, message, user)
	case state.WaitingForRecipeIngredient:
		return h.handleRecipeIngredients(ctx, message, user)
	case state.WaitingForRecipeTimer:
		return h.handleRecipeTimer(ctx, message, user)
	default:
		return h.handleDefaultText(message.Chat.ID)
	}
}

func (h *TextHandler) finishDialog(user *database.User) {
	h.stateManager.SetUserState(user.TelegramID, state.None)
	h.stateManager.ClearTempData(user.TelegramID)
}

// handleListName creates a shopping list from the typed name
func (h *TextHandler) handleListName(ctx context.Context, message *tgbotapi.Message, user *database.User) error {
	list, err := h.deps.ShoppingListSvc.CreateList(ctx, user.ID, message.Text)
	if err != nil {
		return replyError(h.api, message.Chat.ID, err)
	}
	h.finishDialog(user)
	return menus.SendList(h.api, message.Chat.ID, list)
}

// handleIngredients merges typed ingredients into the list chosen earlier
func (h *TextHandler) handleIngredients(ctx context.Context, message *tgbotapi.Message, user *database.User) error {
	raw, ok := h.stateManager.GetTempData(user.TelegramID, state.KeyListID)
	listID, err := strconv.ParseUint(raw, 10, 64)
	if !ok || err != nil {
		logger.Warn("Ingredient input without a list", "user_id", user.ID, "list_id", raw)
		h.finishDialog(user)
		return menus.SendMainMenu(h.api, message.Chat.ID)
	}

	inputs, err := h.parseIngredients(ctx, message.Text)
	if err != nil {
		return replyError(h.api, message.Chat.ID, err)
	}

	list, err := h.deps.ShoppingListSvc.AddIngredients(ctx, user.ID, uint(listID), inputs)
	if err != nil {
		return replyError(h.api, message.Chat.ID, err)
	}
	h.finishDialog(user)

	msg := tgbotapi.NewMessage(message.Chat.ID, fmt.Sprintf("✅ Добавлено продуктов: %d", len(inputs)))
	if _, err := h.api.Send(msg); err != nil {
		return err
	}
	return menus.SendList(h.api, message.Chat.ID, list)
}

func (h *TextHandler) handleRecipeName(ctx context.Context, message *tgbotapi.Message, user *database.User) error {
	name := strings.TrimSpace(message.Text)
	if name == "" {
		return menus.SendPrompt(h.api, message.Chat.ID, "Название рецепта не может быть пустым. Введите название:", keyboards.RecipesData)
	}
	h.stateManager.SetTempData(user.TelegramID, state.KeyRecipeName, name)

	categories, err := h.deps.CatalogSvc.ListRecipeCategories(ctx)
	if err != nil {
		return replyError(h.api, message.Chat.ID, err)
	}
	if len(categories) == 0 {
		h.stateManager.SetUserState(user.TelegramID, state.WaitingForRecipeIngredient)
		return menus.SendRecipeIngredientsPrompt(h.api, message.Chat.ID, name)
	}

	h.stateManager.SetUserState(user.TelegramID, state.WaitingForRecipeCategory)
	return menus.SendRecipeCategories(h.api, message.Chat.ID, name, categories)
}

// handleRecipeCategoryText repeats the category keyboard; categories are picked by button
func (h *TextHandler) handleRecipeCategoryText(ctx context.Context, message *tgbotapi.Message, user *database.User) error {
	name, _ := h.stateManager.GetTempData(user.TelegramID, state.KeyRecipeName)
	categories, err := h.deps.CatalogSvc.ListRecipeCategories(ctx)
	if err != nil {
		return replyError(h.api, message.Chat.ID, err)
	}
	return menus.SendRecipeCategories(h.api, message.Chat.ID, name, categories)
}

func (h *TextHandler) handleRecipeIngredients(ctx context.Context, message *tgbotapi.Message, user *database.User) error {
	inputs, err := h.parseIngredients(ctx, message.Text)
	if err != nil {
		return replyError(h.api, message.Chat.ID, err)
	}
	for _, in := range inputs {
		if _, err := in.ToDomain(); err != nil {
			return replyError(h.api, message.Chat.ID, err)
		}
	}

	encoded, err := json.Marshal(inputs)
	if err != nil {
		return fmt.Errorf("failed to encode recipe ingredients: %w", err)
	}
	h.stateManager.SetTempData(user.TelegramID, state.KeyRecipeIngredients, string(encoded))
	h.stateManager.SetUserState(user.TelegramID, state.WaitingForRecipeTimer)

	text := "Сколько минут занимает подготовка и сколько приготовление? Введите два числа через пробел (например: 15 30)."
	return menus.SendPrompt(h.api, message.Chat.ID, text, keyboards.RecipesData)
}

func (h *TextHandler) handleRecipeTimer(ctx context.Context, message *tgbotapi.Message, user *database.User) error {
	preparing, cooking, err := services.ParseTimer(message.Text)
	if err != nil {
		return replyError(h.api, message.Chat.ID, err)
	}

	name, _ := h.stateManager.GetTempData(user.TelegramID, state.KeyRecipeName)
	category, _ := h.stateManager.GetTempData(user.TelegramID, state.KeyRecipeCategory)
	encoded, _ := h.stateManager.GetTempData(user.TelegramID, state.KeyRecipeIngredients)
	var inputs []services.IngredientInput
	if err := json.Unmarshal([]byte(encoded), &inputs); err != nil || name == "" {
		logger.Warn("Recipe dialog lost its data", "user_id", user.ID)
		h.finishDialog(user)
		return menus.SendPrompt(h.api, message.Chat.ID, "Данные рецепта потеряны, начните заново.", keyboards.RecipesData)
	}

	row, err := h.deps.RecipeSvc.CreateRecipe(ctx, user.ID, services.RecipeInput{
		Name:             name,
		Category:         category,
		Ingredients:      inputs,
		PreparingMinutes: preparing,
		CookingMinutes:   cooking,
	})
	if err != nil {
		return replyError(h.api, message.Chat.ID, err)
	}
	h.finishDialog(user)

	recipe, err := h.deps.RecipeSvc.LoadDomainRecipe(ctx, user.ID, row.ID)
	if err != nil {
		return replyError(h.api, message.Chat.ID, err)
	}
	return menus.SendRecipe(h.api, message.Chat.ID, recipe)
}

func (h *TextHandler) parseIngredients(ctx context.Context, text string) ([]services.IngredientInput, error) {
	if h.deps.Parser != nil {
		return h.deps.Parser.ParseIngredients(ctx, text)
	}
	return services.ParseIngredientText(text)
}

// handleDefaultText handles text outside of any dialog
func (h *TextHandler) handleDefaultText(chatID int64) error {
	msg := tgbotapi.NewMessage(chatID, "Пожалуйста, используйте меню для выбора действия.")
	msg.ReplyMarkup = keyboards.MainMenu()
	_, err := h.api.Send(msg)
	return err
}
