package domain

import (
	"fmt"

	apperrors "github.com/vladimiradmaev/recipe-helper/internal/errors"
)

const CodeInvalidTimer = "INVALID_TIMER"

// RecipesTimer holds preparation and cooking durations in minutes.
type RecipesTimer struct {
	PreparingMinutes int
	CookingMinutes   int
}

func NewRecipesTimer(preparing, cooking int) (RecipesTimer, error) {
	if preparing < 0 || cooking < 0 {
		return RecipesTimer{}, apperrors.NewValidationError(CodeInvalidTimer,
			fmt.Sprintf("timer minutes must not be negative (%d, %d)", preparing, cooking)).
			WithContext("preparing_minutes", preparing).
			WithContext("cooking_minutes", cooking)
	}
	return RecipesTimer{PreparingMinutes: preparing, CookingMinutes: cooking}, nil
}

func (t RecipesTimer) PreparingString() string {
	return FormatMinutes(t.PreparingMinutes)
}

func (t RecipesTimer) CookingString() string {
	return FormatMinutes(t.CookingMinutes)
}

// TotalMinutes is preparation plus cooking time.
func (t RecipesTimer) TotalMinutes() int {
	return t.PreparingMinutes + t.CookingMinutes
}

func (t RecipesTimer) String() string {
	return fmt.Sprintf("<Время: подготовка %s, готовка %s>", t.PreparingString(), t.CookingString())
}

// FormatMinutes renders 75 as "1 ч., 15 мин." and 30 as "30 мин.".
func FormatMinutes(minutes int) string {
	if minutes >= 60 {
		return fmt.Sprintf("%d ч., %d мин.", minutes/60, minutes%60)
	}
	return fmt.Sprintf("%d мин.", minutes)
}
