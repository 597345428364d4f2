package services

import (
	"fmt"
	"strconv"
	"strings"

	apperrors "github.com/vladimiradmaev/recipe-helper/internal/errors"
)

const defaultUnit = "шт."

// ParseIngredientLine parses "<product> <quantity> [unit]", e.g.
// "сосиски 100 грамм" or "молоко 0,5 л". A missing unit means pieces.
func ParseIngredientLine(line string) (IngredientInput, error) {
	fields := strings.Fields(strings.TrimSpace(line))

	qtyIdx := -1
	var qty float64
	for i := len(fields) - 1; i >= 1; i-- {
		v, err := strconv.ParseFloat(strings.ReplaceAll(fields[i], ",", "."), 64)
		if err == nil {
			qtyIdx, qty = i, v
			break
		}
	}
	if qtyIdx < 0 {
		return IngredientInput{}, apperrors.NewValidationError("UNPARSED_INGREDIENT",
			fmt.Sprintf("cannot find quantity in %q", line)).
			WithContext("line", line)
	}

	unit := strings.Join(fields[qtyIdx+1:], " ")
	if unit == "" {
		unit = defaultUnit
	}
	return IngredientInput{
		Product:  strings.Join(fields[:qtyIdx], " "),
		Quantity: qty,
		Unit:     unit,
	}, nil
}

// ParseIngredientText parses one ingredient per line or per ';'.
func ParseIngredientText(text string) ([]IngredientInput, error) {
	var out []IngredientInput
	for _, line := range splitIngredientLines(text) {
		in, err := ParseIngredientLine(line)
		if err != nil {
			return nil, err
		}
		out = append(out, in)
	}
	if len(out) == 0 {
		return nil, apperrors.NewValidationError("EMPTY_INGREDIENTS", "no ingredients found")
	}
	return out, nil
}

func splitIngredientLines(text string) []string {
	var lines []string
	for _, line := range strings.FieldsFunc(text, func(r rune) bool { return r == '\n' || r == ';' }) {
		line = strings.TrimSpace(strings.TrimLeft(strings.TrimSpace(line), "-•*"))
		if line != "" {
			lines = append(lines, line)
		}
	}
	return lines
}

// ParseTimer parses "<preparing> <cooking>" minutes, e.g. "15 30".
func ParseTimer(text string) (preparing, cooking int, err error) {
	fields := strings.Fields(text)
	if len(fields) != 2 {
		return 0, 0, apperrors.NewValidationError("INVALID_TIMER_INPUT", "expected two numbers: preparing and cooking minutes")
	}
	preparing, err = strconv.Atoi(fields[0])
	if err != nil {
		return 0, 0, apperrors.NewValidationError("INVALID_TIMER_INPUT", fmt.Sprintf("invalid preparing minutes %q", fields[0]))
	}
	cooking, err = strconv.Atoi(fields[1])
	if err != nil {
		return 0, 0, apperrors.NewValidationError("INVALID_TIMER_INPUT", fmt.Sprintf("invalid cooking minutes %q", fields[1]))
	}
	return preparing, cooking, nil
}
