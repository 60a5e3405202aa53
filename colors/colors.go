// Package colors converts between colour notations and reads colormaps
// exported by ColorMoves (https://sciviscolor.org/colormoves/).
package colors

import (
	"errors"
	"fmt"
	"strconv"
	"strings"
)

// ErrHexLength is returned for hex strings that are neither 3 nor 6 digits long.
var ErrHexLength = errors.New("colors: HEX value must be of length 3 or 6")

// RGB is an 8-bit colour.
type RGB struct {
	R, G, B uint8
}

// String formats as "(r, g, b)".
func (c RGB) String() string {
	return fmt.Sprintf("(%d, %d, %d)", c.R, c.G, c.B)
}

// Decimal divides each channel by 255.
func (c RGB) Decimal() Decimal {
	return Decimal{R: float64(c.R) / 255, G: float64(c.G) / 255, B: float64(c.B) / 255}
}

// Hex formats as "#rrggbb".
func (c RGB) Hex() string {
	return fmt.Sprintf("#%02x%02x%02x", c.R, c.G, c.B)
}

// Decimal is a colour with channels in [0, 1].
type Decimal struct {
	R, G, B float64
}

// RGB scales the channels to 0..255, rounding to the nearest integer and
// clamping values outside [0, 1].
func (d Decimal) RGB() RGB {
	return RGB{R: toByte(d.R), G: toByte(d.G), B: toByte(d.B)}
}

// HexToRGB parses "#f00", "fff" or "#00ff00" style colours. Any "#" at
// either end is ignored.
func HexToRGB(value string) (RGB, error) {
	value = strings.Trim(strings.TrimSpace(value), "#")

	switch len(value) {
	case 3:
		var b strings.Builder
		for _, r := range value {
			b.WriteRune(r)
			b.WriteRune(r)
		}
		value = b.String()
	case 6:
	default:
		return RGB{}, fmt.Errorf("%w: %q", ErrHexLength, value)
	}

	n, err := strconv.ParseUint(value, 16, 32)
	if err != nil {
		return RGB{}, fmt.Errorf("parse hex colour %q: %w", value, err)
	}
	return RGB{R: uint8(n >> 16), G: uint8(n >> 8), B: uint8(n)}, nil
}

func toByte(v float64) uint8 {
	switch {
	case v <= 0:
		return 0
	case v >= 1:
		return 255
	default:
		return uint8(v*255 + 0.5)
	}
}
