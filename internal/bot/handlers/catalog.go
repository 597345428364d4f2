package handlers

import (
	"context"
	"fmt"
	"strconv"
	"strings"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"
	"github.com/vladimiradmaev/recipe-helper/internal/bot/keyboards"
	apperrors "github.com/vladimiradmaev/recipe-helper/internal/errors"
)

const codeInvalidArgs = "INVALID_COMMAND_ARGS"

// splitArgs splits "name; rest" command arguments. rest may be empty when optional.
func splitArgs(args string, restRequired bool, usage string) (string, string, error) {
	name, rest, _ := strings.Cut(args, ";")
	name, rest = strings.TrimSpace(name), strings.TrimSpace(rest)
	if name == "" || (restRequired && rest == "") {
		return "", "", apperrors.NewValidationError(codeInvalidArgs, "usage: "+usage).
			WithContext("usage", usage)
	}
	return name, rest, nil
}

func (h *CommandHandler) reply(chatID int64, text string) error {
	_, err := h.api.Send(tgbotapi.NewMessage(chatID, text))
	return err
}

// handleColour: /colour розовый; 255 192 203
func (h *CommandHandler) handleColour(ctx context.Context, chatID int64, args string) error {
	const usage = "/colour название; R G B"
	name, rest, err := splitArgs(args, true, usage)
	if err != nil {
		return replyError(h.api, chatID, err)
	}
	fields := strings.Fields(rest)
	rgb := make([]int, 0, len(fields))
	for _, f := range fields {
		v, err := strconv.Atoi(f)
		if err != nil {
			return replyError(h.api, chatID, apperrors.NewValidationError(codeInvalidArgs, "usage: "+usage).
				WithContext("usage", usage))
		}
		rgb = append(rgb, v)
	}

	colour, err := h.deps.CatalogSvc.CreateColour(ctx, name, rgb)
	if err != nil {
		return replyError(h.api, chatID, err)
	}
	return h.reply(chatID, fmt.Sprintf("✅ Цвет \"%s\" сохранен", colour.Name))
}

// handleRecipeCategory: /category завтраки; желтый
func (h *CommandHandler) handleRecipeCategory(ctx context.Context, chatID int64, args string) error {
	name, colour, err := splitArgs(args, true, "/category название; цвет")
	if err != nil {
		return replyError(h.api, chatID, err)
	}
	category, err := h.deps.CatalogSvc.CreateRecipeCategory(ctx, name, colour)
	if err != nil {
		return replyError(h.api, chatID, err)
	}
	return h.reply(chatID, "✅ Категория рецептов сохранена: "+keyboards.CategoryLabel(*category))
}

// handleProductCategory: /product_category молочное; белый
func (h *CommandHandler) handleProductCategory(ctx context.Context, chatID int64, args string) error {
	name, colour, err := splitArgs(args, true, "/product_category название; цвет")
	if err != nil {
		return replyError(h.api, chatID, err)
	}
	category, err := h.deps.CatalogSvc.CreateProductCategory(ctx, name, colour)
	if err != nil {
		return replyError(h.api, chatID, err)
	}
	return h.reply(chatID, fmt.Sprintf("✅ Категория продуктов \"%s\" сохранена", category.Name))
}

// handleProduct: /product молоко; молочное (category is optional)
func (h *CommandHandler) handleProduct(ctx context.Context, chatID int64, args string) error {
	name, category, err := splitArgs(args, false, "/product название; категория")
	if err != nil {
		return replyError(h.api, chatID, err)
	}
	product, err := h.deps.CatalogSvc.GetOrCreateProduct(ctx, name, category)
	if err != nil {
		return replyError(h.api, chatID, err)
	}
	return h.reply(chatID, fmt.Sprintf("✅ Продукт \"%s\" в каталоге", product.Name))
}

// handleUnit: /unit пучок
func (h *CommandHandler) handleUnit(ctx context.Context, chatID int64, args string) error {
	name, _, err := splitArgs(args, false, "/unit название")
	if err != nil {
		return replyError(h.api, chatID, err)
	}
	unit, err := h.deps.CatalogSvc.GetOrCreateUnit(ctx, name)
	if err != nil {
		return replyError(h.api, chatID, err)
	}
	return h.reply(chatID, fmt.Sprintf("✅ Единица измерения \"%s\" в каталоге", unit.Name))
}

func (h *CommandHandler) handleUnits(ctx context.Context, chatID int64) error {
	units, err := h.deps.CatalogSvc.ListUnits(ctx)
	if err != nil {
		return replyError(h.api, chatID, err)
	}
	names := make([]string, 0, len(units))
	for _, u := range units {
		names = append(names, u.Name)
	}
	return h.reply(chatID, "Единицы измерения: "+strings.Join(names, ", "))
}

func (h *CommandHandler) handleProducts(ctx context.Context, chatID int64) error {
	products, err := h.deps.CatalogSvc.ListProducts(ctx)
	if err != nil {
		return replyError(h.api, chatID, err)
	}
	if len(products) == 0 {
		return h.reply(chatID, "Каталог продуктов пуст.")
	}

	var b strings.Builder
	b.WriteString("Продукты:\n")
	for _, p := range products {
		if p.Category != nil {
			fmt.Fprintf(&b, "• %s (%s)\n", p.Name, p.Category.Name)
			continue
		}
		fmt.Fprintf(&b, "• %s\n", p.Name)
	}
	return h.reply(chatID, b.String())
}

func (h *CommandHandler) handleCategories(ctx context.Context, chatID int64) error {
	categories, err := h.deps.CatalogSvc.ListRecipeCategories(ctx)
	if err != nil {
		return replyError(h.api, chatID, err)
	}
	if len(categories) == 0 {
		return h.reply(chatID, "Категорий рецептов пока нет. Добавьте: /category название; цвет")
	}

	var b strings.Builder
	b.WriteString("Категории рецептов:\n")
	for _, c := range categories {
		b.WriteString(keyboards.CategoryLabel(c) + "\n")
	}
	return h.reply(chatID, b.String())
}
