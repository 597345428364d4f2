package handlers

import (
	"context"
	"strings"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"
	"github.com/vladimiradmaev/recipe-helper/internal/database"
	apperrors "github.com/vladimiradmaev/recipe-helper/internal/errors"
	"github.com/vladimiradmaev/recipe-helper/internal/logger"
)

// dropSecret removes a message that carried a password from the chat.
func (h *CommandHandler) dropSecret(message *tgbotapi.Message) {
	if _, err := h.api.Request(tgbotapi.NewDeleteMessage(message.Chat.ID, message.MessageID)); err != nil {
		logger.Warn("Failed to delete message with password", "error", err)
	}
}

// handleSetPassword: /password email пароль
func (h *CommandHandler) handleSetPassword(ctx context.Context, message *tgbotapi.Message, user *database.User) error {
	h.dropSecret(message)

	fields := strings.Fields(message.CommandArguments())
	if len(fields) != 2 || !strings.Contains(fields[0], "@") {
		return replyError(h.api, message.Chat.ID,
			apperrors.NewValidationError(codeInvalidArgs, "usage: /password email пароль").
				WithContext("usage", "/password email пароль"))
	}

	if err := h.deps.UserService.SetCredentials(ctx, user.ID, fields[0], fields[1]); err != nil {
		return replyError(h.api, message.Chat.ID, err)
	}
	logger.Info("Credentials updated", "user_id", user.ID)
	return h.reply(message.Chat.ID, "✅ Email и пароль сохранены. Сообщение с паролем удалено.")
}

// handleCheckPassword: /check_password пароль
func (h *CommandHandler) handleCheckPassword(ctx context.Context, message *tgbotapi.Message, user *database.User) error {
	h.dropSecret(message)

	password := strings.TrimSpace(message.CommandArguments())
	if password == "" {
		return replyError(h.api, message.Chat.ID,
			apperrors.NewValidationError(codeInvalidArgs, "usage: /check_password пароль").
				WithContext("usage", "/check_password пароль"))
	}

	ok, err := h.deps.UserService.CheckPassword(ctx, user.ID, password)
	if err != nil {
		return replyError(h.api, message.Chat.ID, err)
	}
	if !ok {
		return h.reply(message.Chat.ID, "❌ Пароль не подходит или еще не установлен.")
	}
	return h.reply(message.Chat.ID, "✅ Пароль верный.")
}
