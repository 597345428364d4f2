package handlers

import (
	stderrors "errors"

	"github.com/vladimiradmaev/recipe-helper/internal/domain"
	apperrors "github.com/vladimiradmaev/recipe-helper/internal/errors"
)

// userMessage turns a service error into a reply the user can act on.
func userMessage(err error) string {
	switch apperrors.CodeOf(err) {
	case domain.CodeInvalidQuantity:
		return "Количество должно быть положительным числом."
	case domain.CodeInvalidTimer, "INVALID_TIMER_INPUT":
		return "Введите два неотрицательных числа через пробел: минуты подготовки и приготовления (например: 15 30)."
	case "UNPARSED_INGREDIENT", "EMPTY_INGREDIENTS", "EMPTY_PRODUCT", "EMPTY_UNIT":
		return "Не удалось разобрать продукты. Пишите по одному на строке: продукт количество единица (например: яйцо 2 шт.)"
	case "EMPTY_LIST_NAME":
		return "Название списка не может быть пустым."
	case "EMPTY_RECIPE_NAME":
		return "Название рецепта не может быть пустым."
	case "EMPTY_RECIPE":
		return "В рецепте должен быть хотя бы один ингредиент."
	case domain.CodeInvalidColourLength, domain.CodeInvalidColourComponent:
		return "Цвет задается тремя числами от 0 до 255 (например: 255 192 203)."
	case "WEAK_PASSWORD":
		return "Пароль слишком короткий: нужно не меньше 8 символов."
	case codeInvalidArgs:
		return "Неверный формат команды. Используйте: " + usageOf(err)
	}

	switch {
	case apperrors.IsType(err, apperrors.ErrorTypeNotFound):
		return "Ничего не найдено. Возможно, запись была удалена."
	case apperrors.IsType(err, apperrors.ErrorTypeExternal):
		return "Сервис распознавания сейчас недоступен. Попробуйте записать продукты в формате: продукт количество единица."
	default:
		return "Произошла ошибка. Пожалуйста, попробуйте еще раз."
	}
}

func isUserError(err error) bool {
	return apperrors.IsType(err, apperrors.ErrorTypeValidation) ||
		apperrors.IsType(err, apperrors.ErrorTypeTypeMismatch) ||
		apperrors.IsType(err, apperrors.ErrorTypeNotFound)
}

func usageOf(err error) string {
	var appErr *apperrors.AppError
	if stderrors.As(err, &appErr) {
		if usage, ok := appErr.Context["usage"].(string); ok {
			return usage
		}
	}
	return "/help"
}
