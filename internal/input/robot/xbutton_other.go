//go:build !windows

package robot

import "wonryeol/internal/input"

func xbutton(input.MouseButton, bool) error {
	return input.ErrUnsupportedButton
}
