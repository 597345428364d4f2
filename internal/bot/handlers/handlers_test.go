package handlers

import (
	"context"
	"strconv"
	"strings"
	"testing"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"
	"github.com/vladimiradmaev/recipe-helper/internal/bot/state"
	"github.com/vladimiradmaev/recipe-helper/internal/database"
	"github.com/vladimiradmaev/recipe-helper/internal/database/dbtest"
	"github.com/vladimiradmaev/recipe-helper/internal/domain"
	"github.com/vladimiradmaev/recipe-helper/internal/services"
)

const telegramID = int64(42)

type fakeSender struct {
	sent     []tgbotapi.Chattable
	requests int
}

func (f *fakeSender) Send(c tgbotapi.Chattable) (tgbotapi.Message, error) {
	f.sent = append(f.sent, c)
	return tgbotapi.Message{}, nil
}

func (f *fakeSender) Request(c tgbotapi.Chattable) (*tgbotapi.APIResponse, error) {
	f.requests++
	return &tgbotapi.APIResponse{Ok: true}, nil
}

func (f *fakeSender) lastText(t *testing.T) string {
	t.Helper()
	if len(f.sent) == 0 {
		t.Fatalf("nothing was sent")
	}
	msg, ok := f.sent[len(f.sent)-1].(tgbotapi.MessageConfig)
	if !ok {
		t.Fatalf("last sent value is %T", f.sent[len(f.sent)-1])
	}
	return msg.Text
}

type harness struct {
	sender  *fakeSender
	states  *state.Manager
	handler *UpdateHandler
	users   *services.UserService
	lists   *services.ShoppingListService
	recipes *services.RecipeService
	catalog *services.CatalogService
}

func newHarness(t *testing.T) *harness {
	t.Helper()
	db := dbtest.DB(t)
	recipes := services.NewRecipeService(db)
	h := &harness{
		sender:  &fakeSender{},
		states:  state.NewManager(),
		users:   services.NewUserService(db),
		lists:   services.NewShoppingListService(db, recipes, domain.SystemClock),
		recipes: recipes,
		catalog: services.NewCatalogService(db),
	}
	h.handler = NewUpdateHandler(h.sender, Dependencies{
		UserService:     h.users,
		ShoppingListSvc: h.lists,
		RecipeSvc:       h.recipes,
		CatalogSvc:      h.catalog,
	}, h.states)
	return h
}

func from() *tgbotapi.User {
	return &tgbotapi.User{ID: telegramID, FirstName: "Тимофей", UserName: "tim"}
}

func (h *harness) text(t *testing.T, text string) {
	t.Helper()
	msg := &tgbotapi.Message{MessageID: len(h.sender.sent) + 1, From: from(), Chat: &tgbotapi.Chat{ID: telegramID}, Text: text}
	if strings.HasPrefix(text, "/") {
		msg.Entities = []tgbotapi.MessageEntity{{Type: "bot_command", Offset: 0, Length: len(strings.Fields(text)[0])}}
	}
	if err := h.handler.Handle(context.Background(), tgbotapi.Update{Message: msg}); err != nil {
		t.Fatalf("text %q: %v", text, err)
	}
}

func (h *harness) click(t *testing.T, data string) {
	t.Helper()
	query := &tgbotapi.CallbackQuery{
		ID:      "cb",
		From:    from(),
		Message: &tgbotapi.Message{Chat: &tgbotapi.Chat{ID: telegramID}},
		Data:    data,
	}
	if err := h.handler.Handle(context.Background(), tgbotapi.Update{CallbackQuery: query}); err != nil {
		t.Fatalf("click %q: %v", data, err)
	}
}

func (h *harness) user(t *testing.T) *database.User {
	t.Helper()
	u, err := h.users.GetUserByTelegramID(context.Background(), telegramID)
	if err != nil {
		t.Fatalf("GetUserByTelegramID: %v", err)
	}
	return u
}

func (h *harness) onlyList(t *testing.T) *domain.ShoppingList {
	t.Helper()
	u := h.user(t)
	rows, err := h.lists.ListUserLists(context.Background(), u.ID)
	if err != nil || len(rows) != 1 {
		t.Fatalf("ListUserLists = %d rows, %v", len(rows), err)
	}
	list, err := h.lists.GetList(context.Background(), u.ID, rows[0].ID)
	if err != nil {
		t.Fatalf("GetList: %v", err)
	}
	return list
}

func TestStartCommandSendsMainMenu(t *testing.T) {
	h := newHarness(t)
	h.states.SetUserState(telegramID, state.WaitingForListName)

	h.text(t, "/start")

	if got := h.states.GetUserState(telegramID); got != state.None {
		t.Fatalf("state after /start = %q", got)
	}
	msg := h.sender.sent[0].(tgbotapi.MessageConfig)
	if _, ok := msg.ReplyMarkup.(tgbotapi.InlineKeyboardMarkup); !ok {
		t.Fatalf("main menu has no inline keyboard")
	}
}

func TestCreateListAndAddIngredients(t *testing.T) {
	h := newHarness(t)

	h.click(t, "new_list")
	if got := h.states.GetUserState(telegramID); got != state.WaitingForListName {
		t.Fatalf("state = %q", got)
	}
	h.text(t, "На выходные")

	list := h.onlyList(t)
	if list.Name != "На выходные" || list.Len() != 0 {
		t.Fatalf("unexpected list %v", list)
	}

	h.click(t, "add_item:"+uintString(list.ID))
	h.text(t, "яйцо 2 шт.\nсосиски 100 грамм\nяйцо 3 шт.")

	list = h.onlyList(t)
	items := list.Items()
	if len(items) != 2 {
		t.Fatalf("items = %v", items)
	}
	if items[0].Product.Name != "яйцо" || items[0].Quantity != 5 {
		t.Fatalf("eggs not merged: %v", items[0])
	}
	if !strings.Contains(h.sender.lastText(t), "1. яйцо: 5 шт.") {
		t.Fatalf("rendered list: %q", h.sender.lastText(t))
	}
	if got := h.states.GetUserState(telegramID); got != state.None {
		t.Fatalf("dialog not finished: %q", got)
	}
}

func TestInvalidIngredientKeepsDialogOpen(t *testing.T) {
	h := newHarness(t)
	h.click(t, "new_list")
	h.text(t, "Список")
	list := h.onlyList(t)

	h.click(t, "add_item:"+uintString(list.ID))
	h.text(t, "яйцо 0 шт.")

	if !strings.HasPrefix(h.sender.lastText(t), "❌") {
		t.Fatalf("expected error reply, got %q", h.sender.lastText(t))
	}
	if got := h.states.GetUserState(telegramID); got != state.WaitingForIngredients {
		t.Fatalf("state = %q", got)
	}
	if h.onlyList(t).Len() != 0 {
		t.Fatalf("invalid ingredient was stored")
	}
}

func TestRecipeDialogAndAddToList(t *testing.T) {
	h := newHarness(t)

	h.click(t, "new_recipe")
	h.text(t, "Яичница")
	h.text(t, "яйцо 2 шт.\nсосиски 2 шт.")
	h.text(t, "15 75")

	card := h.sender.lastText(t)
	if !strings.Contains(card, "Яичница") || !strings.Contains(card, "1 ч., 15 мин.") {
		t.Fatalf("recipe card: %q", card)
	}

	u := h.user(t)
	recipes, err := h.recipes.ListUserRecipes(context.Background(), u.ID)
	if err != nil || len(recipes) != 1 {
		t.Fatalf("ListUserRecipes = %d, %v", len(recipes), err)
	}

	h.click(t, "new_list")
	h.text(t, "Завтрак")
	list := h.onlyList(t)

	h.click(t, "recipe_to_list:"+uintString(list.ID)+":"+uintString(recipes[0].ID))
	h.click(t, "recipe_to_list:"+uintString(list.ID)+":"+uintString(recipes[0].ID))

	items := h.onlyList(t).Items()
	if len(items) != 2 || items[0].Quantity != 4 || items[1].Quantity != 4 {
		t.Fatalf("items after adding recipe twice = %v", items)
	}
}

func TestBadTimerIsRejected(t *testing.T) {
	h := newHarness(t)
	h.click(t, "new_recipe")
	h.text(t, "Чай")
	h.text(t, "чай 1 пакетик")
	h.text(t, "-5 3")

	if got := h.states.GetUserState(telegramID); got != state.WaitingForRecipeTimer {
		t.Fatalf("state = %q", got)
	}
	if !strings.HasPrefix(h.sender.lastText(t), "❌") {
		t.Fatalf("expected error reply, got %q", h.sender.lastText(t))
	}
}

func TestForeignListIsNotFound(t *testing.T) {
	h := newHarness(t)
	h.click(t, "list:999")
	if !strings.HasPrefix(h.sender.lastText(t), "❌") {
		t.Fatalf("expected error reply, got %q", h.sender.lastText(t))
	}
	if h.sender.requests != 1 {
		t.Fatalf("callback not answered")
	}
}

func TestParseCallbackData(t *testing.T) {
	tests := []struct {
		data    string
		prefix  string
		ids     []uint
		wantErr bool
	}{
		{data: "list:3", prefix: "list", ids: []uint{3}},
		{data: "recipe_to_list:3:7", prefix: "recipe_to_list", ids: []uint{3, 7}},
		{data: "list", wantErr: true},
		{data: "list:abc", wantErr: true},
		{data: "list:0", wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.data, func(t *testing.T) {
			prefix, ids, err := parseCallbackData(tt.data)
			if tt.wantErr {
				if err == nil {
					t.Fatalf("expected error")
				}
				return
			}
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			if prefix != tt.prefix || len(ids) != len(tt.ids) {
				t.Fatalf("got %q %v", prefix, ids)
			}
			for i := range ids {
				if ids[i] != tt.ids[i] {
					t.Fatalf("got %v, want %v", ids, tt.ids)
				}
			}
		})
	}
}

func uintString(id uint) string {
	return strconv.FormatUint(uint64(id), 10)
}

func (f *fakeSender) lastKeyboard(t *testing.T) tgbotapi.InlineKeyboardMarkup {
	t.Helper()
	msg, ok := f.sent[len(f.sent)-1].(tgbotapi.MessageConfig)
	if !ok {
		t.Fatalf("last sent value is %T", f.sent[len(f.sent)-1])
	}
	keyboard, ok := msg.ReplyMarkup.(tgbotapi.InlineKeyboardMarkup)
	if !ok {
		t.Fatalf("last message has no inline keyboard")
	}
	return keyboard
}

func TestRecipeDialogWithCategory(t *testing.T) {
	h := newHarness(t)
	h.text(t, "/category Завтраки; желтый")
	if got := h.sender.lastText(t); !strings.Contains(got, "🟡 завтраки #ffff00") {
		t.Fatalf("category reply: %q", got)
	}

	h.click(t, "new_recipe")
	h.text(t, "Омлет")
	if got := h.states.GetUserState(telegramID); got != state.WaitingForRecipeCategory {
		t.Fatalf("state = %q", got)
	}

	var data string
	for _, row := range h.sender.lastKeyboard(t).InlineKeyboard {
		if row[0].Text == "🟡 завтраки #ffff00" {
			data = *row[0].CallbackData
		}
	}
	if !strings.HasPrefix(data, "recipe_category:") {
		t.Fatalf("category button not found")
	}

	h.text(t, "завтраки")
	if got := h.states.GetUserState(telegramID); got != state.WaitingForRecipeCategory {
		t.Fatalf("typed text left the category step: %q", got)
	}

	h.click(t, data)
	if got := h.states.GetUserState(telegramID); got != state.WaitingForRecipeIngredient {
		t.Fatalf("state = %q", got)
	}
	h.text(t, "яйцо 3 шт.\nмолоко 100 мл")
	h.text(t, "5 10")

	if card := h.sender.lastText(t); !strings.Contains(card, "Категория: завтраки") {
		t.Fatalf("recipe card: %q", card)
	}
}

func TestRecipeDialogSkipCategory(t *testing.T) {
	h := newHarness(t)
	h.text(t, "/category супы; красный")

	h.click(t, "new_recipe")
	h.text(t, "Бутерброд")
	h.click(t, "recipe_category_skip")
	h.text(t, "хлеб 1 шт.")
	h.text(t, "2 0")

	if card := h.sender.lastText(t); strings.Contains(card, "Категория") {
		t.Fatalf("recipe got a category: %q", card)
	}
}

func TestCategoryCallbackOutsideDialog(t *testing.T) {
	h := newHarness(t)
	h.click(t, "recipe_category_skip")
	if got := h.states.GetUserState(telegramID); got != state.None {
		t.Fatalf("state = %q", got)
	}
}

func TestCatalogCommands(t *testing.T) {
	h := newHarness(t)

	steps := []struct {
		text string
		want string
	}{
		{text: "/colour розовый; 255 192 203", want: "✅ Цвет \"розовый\""},
		{text: "/colour серый; 300 0 0", want: "❌ Цвет задается"},
		{text: "/colour серый", want: "❌ Неверный формат команды. Используйте: /colour"},
		{text: "/product_category Молочное; белый", want: "✅ Категория продуктов \"молочное\""},
		{text: "/product молоко; молочное", want: "✅ Продукт \"молоко\""},
		{text: "/product хлеб", want: "✅ Продукт \"хлеб\""},
		{text: "/product сыр; нет такой", want: "❌"},
		{text: "/unit пучок", want: "✅ Единица измерения \"пучок\""},
		{text: "/units", want: "пучок"},
		{text: "/products", want: "• молоко (молочное)"},
		{text: "/category десерты; розовый", want: "⚪ десерты #ffc0cb"},
		{text: "/categories", want: "десерты"},
	}
	for _, step := range steps {
		h.text(t, step.text)
		if got := h.sender.lastText(t); !strings.Contains(got, step.want) {
			t.Fatalf("%s: reply %q, want it to contain %q", step.text, got, step.want)
		}
	}
}

func TestPasswordCommands(t *testing.T) {
	h := newHarness(t)

	h.text(t, "/password tim@test.ch short")
	if !strings.Contains(h.sender.lastText(t), "не меньше 8") {
		t.Fatalf("weak password reply: %q", h.sender.lastText(t))
	}

	h.text(t, "/check_password secret-123")
	if !strings.HasPrefix(h.sender.lastText(t), "❌") {
		t.Fatalf("check without password: %q", h.sender.lastText(t))
	}

	requests := h.sender.requests
	h.text(t, "/password tim@test.ch secret-123")
	if h.sender.requests != requests+1 {
		t.Fatalf("message with password was not deleted")
	}
	if !strings.HasPrefix(h.sender.lastText(t), "✅") {
		t.Fatalf("set password reply: %q", h.sender.lastText(t))
	}
	if u := h.user(t); u.Email != "tim@test.ch" || u.PasswordHash == "" || u.PasswordHash == "secret-123" {
		t.Fatalf("credentials not stored as hash: %+v", u)
	}

	h.text(t, "/check_password secret-123")
	if got := h.sender.lastText(t); got != "✅ Пароль верный." {
		t.Fatalf("check reply: %q", got)
	}
	h.text(t, "/check_password wrong-pass")
	if !strings.HasPrefix(h.sender.lastText(t), "❌") {
		t.Fatalf("wrong password accepted: %q", h.sender.lastText(t))
	}
}
