// Package robot драйвер ввода на robotgo (SendInput под Windows)
package robot

import (
	"github.com/go-vgo/robotgo"

	"wonryeol/internal/input"
)

// Driver реализует input.Driver через robotgo
type Driver struct{}

// New создает новый драйвер
func New() *Driver {
	return &Driver{}
}

func (d *Driver) CursorPos() (int, int, error) {
	x, y := robotgo.GetMousePos()
	return x, y, nil
}

func (d *Driver) SetCursorPos(x, y int) error {
	robotgo.Move(x, y)
	return nil
}

func (d *Driver) MouseDown(b input.MouseButton) error {
	switch b {
	case input.Left, input.Right, input.Middle:
		return robotgo.Toggle(b.String())
	case input.X1, input.X2:
		return xbutton(b, true)
	}
	return input.ErrUnsupportedButton
}

func (d *Driver) MouseUp(b input.MouseButton) error {
	switch b {
	case input.Left, input.Right, input.Middle:
		return robotgo.Toggle(b.String(), "up")
	case input.X1, input.X2:
		return xbutton(b, false)
	}
	return input.ErrUnsupportedButton
}

func (d *Driver) KeyDown(key string) error {
	return robotgo.KeyToggle(key, "down")
}

func (d *Driver) KeyUp(key string) error {
	return robotgo.KeyToggle(key, "up")
}
