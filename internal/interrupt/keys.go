package interrupt

import (
	"fmt"
	"strings"
)

// Виртуальные коды клавиш Windows, которые нужны хукам
const (
	vkBack    = 0x08
	vkTab     = 0x09
	vkReturn  = 0x0D
	vkShift   = 0x10
	vkControl = 0x11
	vkMenu    = 0x12
	vkCapital = 0x14
	vkEscape  = 0x1B
	vkSpace   = 0x20
	vkF1      = 0x70
	vkF24     = 0x87
	vkLShift  = 0xA0
	vkRShift  = 0xA1
	vkLCtrl   = 0xA2
	vkRCtrl   = 0xA3
	vkLMenu   = 0xA4
	vkRMenu   = 0xA5
)

var vkNames = map[uint32]string{
	vkBack:    "backspace",
	vkTab:     "tab",
	vkReturn:  "enter",
	vkShift:   "shift",
	vkControl: "ctrl",
	vkMenu:    "alt",
	vkCapital: "capslock",
	vkEscape:  "esc",
	vkSpace:   "space",
	0x21:      "pageup",
	0x22:      "pagedown",
	0x23:      "end",
	0x24:      "home",
	0x25:      "left",
	0x26:      "up",
	0x27:      "right",
	0x28:      "down",
	0x2D:      "insert",
	0x2E:      "delete",
	vkLShift:  "shift",
	vkRShift:  "shift",
	vkLCtrl:   "ctrl",
	vkRCtrl:   "ctrl",
	vkLMenu:   "alt",
	vkRMenu:   "alt",
	0xC0:      "`",
	0xBD:      "-",
	0xBB:      "=",
}

// KeyName имя клавиши по виртуальному коду
func KeyName(vk uint32) string {
	switch {
	case vk >= '0' && vk <= '9':
		return string(rune(vk))
	case vk >= 'A' && vk <= 'Z':
		return string(rune(vk - 'A' + 'a'))
	case vk >= vkF1 && vk <= vkF24:
		return fmt.Sprintf("f%d", vk-vkF1+1)
	}
	if name, ok := vkNames[vk]; ok {
		return name
	}
	return fmt.Sprintf("vk%02x", vk)
}

// NormalizeKey приводит имя клавиши из конфига к виду KeyName
func NormalizeKey(key string) string {
	k := strings.ToLower(strings.TrimSpace(key))
	switch k {
	case "return":
		return "enter"
	case "control", "lctrl", "rctrl":
		return "ctrl"
	case "escape":
		return "esc"
	case "x1":
		return "mouse4"
	case "x2":
		return "mouse5"
	}
	return k
}
