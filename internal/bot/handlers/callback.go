package handlers

import (
	"context"
	"fmt"
	"strconv"
	"strings"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"
	"github.com/vladimiradmaev/recipe-helper/internal/bot/keyboards"
	"github.com/vladimiradmaev/recipe-helper/internal/bot/menus"
	"github.com/vladimiradmaev/recipe-helper/internal/bot/state"
	"github.com/vladimiradmaev/recipe-helper/internal/database"
	apperrors "github.com/vladimiradmaev/recipe-helper/internal/errors"
	"github.com/vladimiradmaev/recipe-helper/internal/logger"
)

// CallbackHandler handles callback query messages
type CallbackHandler struct {
	api          menus.Sender
	deps         Dependencies
	stateManager state.StateManager
}

// NewCallbackHandler creates a new callback handler
func NewCallbackHandler(api menus.Sender, deps Dependencies, stateManager state.StateManager) *CallbackHandler {
	return &CallbackHandler{
		api:          api,
		deps:         deps,
		stateManager: stateManager,
	}
}

// Handle processes a callback query
func (h *CallbackHandler) Handle(ctx context.Context, query *tgbotapi.CallbackQuery, user *database.User) error {
	// Answer the callback query first
	callback := tgbotapi.NewCallback(query.ID, "")
	if _, err := h.api.Request(callback); err != nil {
		logger.Warn("Failed to answer callback query", "error", err)
	}
	if query.Message == nil {
		return nil
	}
	chatID := query.Message.Chat.ID

	switch query.Data {
	case keyboards.MainMenuData:
		h.resetDialog(user)
		return menus.SendMainMenu(h.api, chatID)
	case keyboards.ListsData:
		h.resetDialog(user)
		return h.handleLists(ctx, chatID, user)
	case keyboards.RecipesData:
		h.resetDialog(user)
		return h.handleRecipes(ctx, chatID, user, 0)
	case keyboards.NewListData:
		h.resetDialog(user)
		h.stateManager.SetUserState(user.TelegramID, state.WaitingForListName)
		return menus.SendPrompt(h.api, chatID, "Введите название нового списка покупок:", keyboards.ListsData)
	case keyboards.NewRecipeData:
		h.resetDialog(user)
		h.stateManager.SetUserState(user.TelegramID, state.WaitingForRecipeName)
		return menus.SendPrompt(h.api, chatID, "Введите название рецепта:", keyboards.RecipesData)
	case keyboards.RecipeCategorySkipData:
		return h.handleRecipeCategory(ctx, chatID, user, 0)
	}

	prefix, ids, err := parseCallbackData(query.Data)
	if err != nil {
		logger.Warn("Malformed callback data", "data", query.Data, "error", err)
		return h.handleUnknownCallback(chatID)
	}

	switch {
	case prefix == keyboards.ListPrefix && len(ids) == 1:
		h.resetDialog(user)
		return h.handleShowList(ctx, chatID, user, ids[0])
	case prefix == keyboards.AddItemPrefix && len(ids) == 1:
		return h.handleAddItem(chatID, user, ids[0])
	case prefix == keyboards.AddRecipePrefix && len(ids) == 1:
		h.resetDialog(user)
		return h.handleRecipes(ctx, chatID, user, ids[0])
	case prefix == keyboards.RecipePrefix && len(ids) == 1:
		return h.handleShowRecipe(ctx, chatID, user, ids[0])
	case prefix == keyboards.RecipeCategoryPrefix && len(ids) == 1:
		return h.handleRecipeCategory(ctx, chatID, user, ids[0])
	case prefix == keyboards.RecipeToListPrefix && len(ids) == 2:
		return h.handleRecipeToList(ctx, chatID, user, ids[0], ids[1])
	default:
		return h.handleUnknownCallback(chatID)
	}
}

func (h *CallbackHandler) resetDialog(user *database.User) {
	h.stateManager.SetUserState(user.TelegramID, state.None)
	h.stateManager.ClearTempData(user.TelegramID)
}

func (h *CallbackHandler) handleLists(ctx context.Context, chatID int64, user *database.User) error {
	lists, err := h.deps.ShoppingListSvc.ListUserLists(ctx, user.ID)
	if err != nil {
		return replyError(h.api, chatID, err)
	}
	return menus.SendLists(h.api, chatID, lists)
}

func (h *CallbackHandler) handleRecipes(ctx context.Context, chatID int64, user *database.User, listID uint) error {
	recipes, err := h.deps.RecipeSvc.ListUserRecipes(ctx, user.ID)
	if err != nil {
		return replyError(h.api, chatID, err)
	}
	return menus.SendRecipes(h.api, chatID, recipes, listID)
}

func (h *CallbackHandler) handleShowList(ctx context.Context, chatID int64, user *database.User, listID uint) error {
	list, err := h.deps.ShoppingListSvc.GetList(ctx, user.ID, listID)
	if err != nil {
		return replyError(h.api, chatID, err)
	}
	return menus.SendList(h.api, chatID, list)
}

// handleAddItem starts the ingredient input dialog for a list
func (h *CallbackHandler) handleAddItem(chatID int64, user *database.User, listID uint) error {
	h.stateManager.ClearTempData(user.TelegramID)
	h.stateManager.SetTempData(user.TelegramID, state.KeyListID, strconv.FormatUint(uint64(listID), 10))
	h.stateManager.SetUserState(user.TelegramID, state.WaitingForIngredients)

	text := `Отправьте продукты, по одному на строке:
продукт количество единица

Пример:
яйцо 2 шт.
молоко 0,5 л`
	return menus.SendPrompt(h.api, chatID, text, keyboards.Data(keyboards.ListPrefix, listID))
}

func (h *CallbackHandler) handleShowRecipe(ctx context.Context, chatID int64, user *database.User, recipeID uint) error {
	recipe, err := h.deps.RecipeSvc.LoadDomainRecipe(ctx, user.ID, recipeID)
	if err != nil {
		return replyError(h.api, chatID, err)
	}
	return menus.SendRecipe(h.api, chatID, recipe)
}

func (h *CallbackHandler) handleRecipeToList(ctx context.Context, chatID int64, user *database.User, listID, recipeID uint) error {
	list, err := h.deps.ShoppingListSvc.AddRecipe(ctx, user.ID, listID, recipeID)
	if err != nil {
		return replyError(h.api, chatID, err)
	}
	if _, err := h.api.Send(tgbotapi.NewMessage(chatID, "✅ Ингредиенты рецепта добавлены в список")); err != nil {
		return err
	}
	return menus.SendList(h.api, chatID, list)
}

// handleRecipeCategory stores the picked category and moves the recipe dialog on.
// categoryID 0 means no category.
func (h *CallbackHandler) handleRecipeCategory(ctx context.Context, chatID int64, user *database.User, categoryID uint) error {
	if h.stateManager.GetUserState(user.TelegramID) != state.WaitingForRecipeCategory {
		return h.handleUnknownCallback(chatID)
	}

	if categoryID != 0 {
		categories, err := h.deps.CatalogSvc.ListRecipeCategories(ctx)
		if err != nil {
			return replyError(h.api, chatID, err)
		}
		found := false
		for _, c := range categories {
			if c.ID == categoryID {
				h.stateManager.SetTempData(user.TelegramID, state.KeyRecipeCategory, c.Name)
				found = true
				break
			}
		}
		if !found {
			return replyError(h.api, chatID, apperrors.NewNotFoundError("recipe category", categoryID))
		}
	}

	name, _ := h.stateManager.GetTempData(user.TelegramID, state.KeyRecipeName)
	h.stateManager.SetUserState(user.TelegramID, state.WaitingForRecipeIngredient)
	return menus.SendRecipeIngredientsPrompt(h.api, chatID, name)
}

// handleUnknownCallback handles unknown callbacks
func (h *CallbackHandler) handleUnknownCallback(chatID int64) error {
	msg := tgbotapi.NewMessage(chatID, "Неизвестная команда. Используйте /start чтобы открыть главное меню.")
	_, err := h.api.Send(msg)
	return err
}

// parseCallbackData splits "prefix:1:2" into its prefix and ids.
func parseCallbackData(data string) (string, []uint, error) {
	parts := strings.Split(data, ":")
	if len(parts) < 2 {
		return "", nil, fmt.Errorf("no ids in %q", data)
	}
	ids := make([]uint, 0, len(parts)-1)
	for _, p := range parts[1:] {
		id, err := strconv.ParseUint(p, 10, 64)
		if err != nil || id == 0 {
			return "", nil, fmt.Errorf("invalid id %q", p)
		}
		ids = append(ids, uint(id))
	}
	return parts[0], ids, nil
}
