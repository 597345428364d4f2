package domain

import (
	"fmt"

	apperrors "github.com/vladimiradmaev/recipe-helper/internal/errors"
)

const (
	CodeInvalidColourLength    = "INVALID_COLOUR_LENGTH"
	CodeInvalidColourComponent = "INVALID_COLOUR_COMPONENT"
)

// RGB is a validated colour triple.
type RGB [3]uint8

func (c RGB) String() string {
	return fmt.Sprintf("(%d, %d, %d)", c[0], c[1], c[2])
}

// Colour tags product and recipe categories. The zero value is black without a name.
type Colour struct {
	name string
	rgb  RGB
}

// NewColour validates that components has exactly three values in [0, 255].
func NewColour(name string, components []int) (Colour, error) {
	if len(components) != 3 {
		return Colour{}, apperrors.NewValidationError(CodeInvalidColourLength,
			fmt.Sprintf("invalid colour value %v: expected 3 components, got %d", components, len(components))).
			WithContext("colour", components)
	}

	var rgb RGB
	for i, c := range components {
		if c < 0 || c > 255 {
			return Colour{}, apperrors.NewValidationError(CodeInvalidColourComponent,
				fmt.Sprintf("invalid component %d for colour %v", c, components)).
				WithContext("component", c).
				WithContext("colour", components)
		}
		rgb[i] = uint8(c)
	}

	return Colour{name: name, rgb: rgb}, nil
}

// MustColour is NewColour for package-level constants; it panics on invalid input.
func MustColour(name string, components ...int) Colour {
	c, err := NewColour(name, components)
	if err != nil {
		panic(err)
	}
	return c
}

func (c Colour) Name() string { return c.name }

func (c Colour) RGB() RGB { return c.rgb }

// Hex renders the colour as #rrggbb.
func (c Colour) Hex() string {
	return fmt.Sprintf("#%02x%02x%02x", c.rgb[0], c.rgb[1], c.rgb[2])
}

func (c Colour) String() string {
	return fmt.Sprintf("<Цвет: %s %s>", c.name, c.rgb)
}
