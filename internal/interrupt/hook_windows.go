//go:build windows

package interrupt

import (
	"context"
	"fmt"

	"github.com/moutend/go-hook/pkg/keyboard"
	"github.com/moutend/go-hook/pkg/mouse"
	"github.com/moutend/go-hook/pkg/types"
)

const (
	wmKeyDown     = types.Message(0x0100)
	wmKeyUp       = types.Message(0x0101)
	wmSysKeyDown  = types.Message(0x0104)
	wmSysKeyUp    = types.Message(0x0105)
	wmXButtonDown = types.Message(0x020B)
	wmXButtonUp   = types.Message(0x020C)

	llkhfInjected = 0x10
	llmhfInjected = 0x01
)

// StartMonitoring ставит низкоуровневые хуки клавиатуры и мыши и
// передает события в Handle до отмены ctx
func (im *InterruptManager) StartMonitoring(ctx context.Context) error {
	keyChan := make(chan types.KeyboardEvent, 100)
	mouseChan := make(chan types.MouseEvent, 100)

	if err := keyboard.Install(nil, keyChan); err != nil {
		return fmt.Errorf("keyboard hook: %w", err)
	}
	defer keyboard.Uninstall()

	if err := mouse.Install(nil, mouseChan); err != nil {
		return fmt.Errorf("mouse hook: %w", err)
	}
	defer mouse.Uninstall()

	for {
		select {
		case <-ctx.Done():
			return nil
		case ev := <-keyChan:
			var down bool
			switch ev.Message {
			case wmKeyDown, wmSysKeyDown:
				down = true
			case wmKeyUp, wmSysKeyUp:
				down = false
			default:
				continue
			}
			im.Handle(Event{
				Key:      KeyName(uint32(ev.VKCode)),
				Down:     down,
				Injected: ev.Flags&llkhfInjected != 0,
			})
		case ev := <-mouseChan:
			if ev.Message != wmXButtonDown && ev.Message != wmXButtonUp {
				continue
			}
			var key string
			switch ev.MouseData >> 16 {
			case 1:
				key = "mouse4"
			case 2:
				key = "mouse5"
			default:
				continue
			}
			im.Handle(Event{
				Key:      key,
				Down:     ev.Message == wmXButtonDown,
				Injected: ev.Flags&llmhfInjected != 0,
			})
		}
	}
}
