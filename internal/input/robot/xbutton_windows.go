//go:build windows

package robot

import (
	"golang.org/x/sys/windows"

	"wonryeol/internal/input"
)

const (
	mouseEventXDown = 0x0080
	mouseEventXUp   = 0x0100
)

var (
	user32         = windows.NewLazySystemDLL("user32.dll")
	procMouseEvent = user32.NewProc("mouse_event")
)

// xbutton robotgo не умеет боковые кнопки, шлем mouse_event напрямую
func xbutton(b input.MouseButton, down bool) error {
	data := uintptr(1)
	if b == input.X2 {
		data = 2
	}
	flag := uintptr(mouseEventXUp)
	if down {
		flag = mouseEventXDown
	}
	if err := procMouseEvent.Find(); err != nil {
		return err
	}
	procMouseEvent.Call(flag, 0, 0, data, 0)
	return nil
}
