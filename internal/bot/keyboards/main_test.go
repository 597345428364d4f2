package keyboards

import (
	"testing"

	"github.com/vladimiradmaev/recipe-helper/internal/database"
	"github.com/vladimiradmaev/recipe-helper/internal/domain"
)

func TestColourEmoji(t *testing.T) {
	tests := []struct {
		rgb  []int
		want string
	}{
		{rgb: []int{255, 0, 0}, want: "🔴"},
		{rgb: []int{255, 255, 0}, want: "🟡"},
		{rgb: []int{0, 128, 0}, want: "🟢"},
		{rgb: []int{255, 255, 255}, want: "⚪"},
		{rgb: []int{0, 0, 0}, want: "⚫"},
	}
	for _, tt := range tests {
		c := domain.MustColour("c", tt.rgb...)
		if got := ColourEmoji(c); got != tt.want {
			t.Errorf("ColourEmoji(%v) = %s, want %s", tt.rgb, got, tt.want)
		}
	}
}

func TestRecipeCategoriesMenu(t *testing.T) {
	categories := []database.RecipeCategory{
		{Name: "супы", Colour: &database.Colour{Name: "красный", R: 255}},
		{Name: "разное"},
	}
	categories[0].ID = 4
	categories[1].ID = 9

	rows := RecipeCategoriesMenu(categories).InlineKeyboard
	if len(rows) != 4 {
		t.Fatalf("expected 4 rows, got %d", len(rows))
	}
	if rows[0][0].Text != "🔴 супы #ff0000" || *rows[0][0].CallbackData != "recipe_category:4" {
		t.Fatalf("first button = %q %q", rows[0][0].Text, *rows[0][0].CallbackData)
	}
	if rows[1][0].Text != "разное" {
		t.Fatalf("uncoloured category label = %q", rows[1][0].Text)
	}
	if *rows[2][0].CallbackData != RecipeCategorySkipData {
		t.Fatalf("skip button missing")
	}
}
