package image

import (
	"errors"
	"fmt"

	"github.com/lucasb-eyer/go-colorful"
)

// ErrInvalidHex возвращается для строк, не похожих на #RRGGBB
var ErrInvalidHex = errors.New("invalid hex color")

// RGB цвет пикселя без альфа-канала
type RGB struct {
	R, G, B uint8
}

// ParseHex разбирает строку вида #RRGGBB
func ParseHex(s string) (RGB, error) {
	if !ValidHex(s) {
		return RGB{}, fmt.Errorf("%w: %q", ErrInvalidHex, s)
	}
	c, err := colorful.Hex(s)
	if err != nil {
		return RGB{}, fmt.Errorf("%w: %q: %v", ErrInvalidHex, s, err)
	}
	r, g, b := c.RGB255()
	return RGB{R: r, G: g, B: b}, nil
}

// ValidHex проверяет формат #RRGGBB
func ValidHex(s string) bool {
	if len(s) != 7 || s[0] != '#' {
		return false
	}
	for i := 1; i < len(s); i++ {
		c := s[i]
		isDigit := c >= '0' && c <= '9'
		isLower := c >= 'a' && c <= 'f'
		isUpper := c >= 'A' && c <= 'F'
		if !isDigit && !isLower && !isUpper {
			return false
		}
	}
	return true
}

// Hex возвращает цвет в верхнем регистре
func (c RGB) Hex() string {
	return fmt.Sprintf("#%02X%02X%02X", c.R, c.G, c.B)
}

// Matches сравнивает каждый канал с допуском tol
func (c RGB) Matches(p RGB, tol int) bool {
	return absDiff(p.R, c.R) <= tol && absDiff(p.G, c.G) <= tol && absDiff(p.B, c.B) <= tol
}

func absDiff(a, b uint8) int {
	if a > b {
		return int(a - b)
	}
	return int(b - a)
}
