package input

import (
	"errors"
	"fmt"
	"strings"
)

// ErrUnsupportedButton возвращает драйвер, который не умеет эту кнопку
var ErrUnsupportedButton = errors.New("unsupported mouse button")

// Kind вид действия
type Kind int

const (
	KindKey Kind = iota
	KindMouse
)

// MouseButton кнопка мыши
type MouseButton int

const (
	Left MouseButton = iota
	Right
	Middle
	X1
	X2
)

func (b MouseButton) String() string {
	switch b {
	case Left:
		return "left"
	case Right:
		return "right"
	case Middle:
		return "center"
	case X1:
		return "mouse4"
	case X2:
		return "mouse5"
	}
	return fmt.Sprintf("button(%d)", int(b))
}

// Action одно действие ввода: клавиша или кнопка мыши.
// Разбирается один раз при применении конфига.
type Action struct {
	Kind   Kind
	Key    string
	Button MouseButton
}

// Key действие-клавиша
func Key(name string) Action {
	return Action{Kind: KindKey, Key: strings.ToLower(name)}
}

// Mouse действие-кнопка мыши
func Mouse(b MouseButton) Action {
	return Action{Kind: KindMouse, Button: b}
}

// ParseAction разбирает имя из конфига: клавиша, "좌클릭"/"우클릭", "mouse4"/"mouse5"
func ParseAction(name string) (Action, error) {
	n := strings.ToLower(strings.TrimSpace(name))
	switch n {
	case "":
		return Action{}, errors.New("empty action name")
	case "좌클릭", "왼클릭", "left", "lbutton":
		return Mouse(Left), nil
	case "우클릭", "right", "rbutton":
		return Mouse(Right), nil
	case "middle", "center":
		return Mouse(Middle), nil
	case "mouse4", "x1":
		return Mouse(X1), nil
	case "mouse5", "x2":
		return Mouse(X2), nil
	}
	return Key(n), nil
}

// String возвращает каноническое имя действия
func (a Action) String() string {
	if a.Kind == KindMouse {
		return a.Button.String()
	}
	return a.Key
}
