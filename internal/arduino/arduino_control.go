package arduino

import (
	"io"
	"sync"

	"wonryeol/internal/input"
)

var waitForArduinoResponse = func(expectedResponse string, port io.Reader) (string, error) {
	return WaitForArduinoResponse(port, expectedResponse)
}

// Driver реализует input.Driver поверх HID-скетча на Arduino.
// Скетч не сообщает позицию курсора, поэтому она хранится локально.
type Driver struct {
	mu   sync.Mutex
	port io.ReadWriter
	x, y int
}

// NewDriver создает драйвер поверх открытого порта
func NewDriver(port io.ReadWriter) *Driver {
	return &Driver{port: port}
}

func (d *Driver) do(send func(io.Writer) error) error {
	d.mu.Lock()
	defer d.mu.Unlock()
	return ProcessAndWait(send, waitForArduinoResponse, d.port)
}

func (d *Driver) CursorPos() (int, int, error) {
	d.mu.Lock()
	defer d.mu.Unlock()
	return d.x, d.y, nil
}

func (d *Driver) SetCursorPos(x, y int) error {
	err := d.do(func(w io.Writer) error { return SendMoveToArduino(w, x, y) })
	if err != nil {
		return err
	}
	d.mu.Lock()
	d.x, d.y = x, y
	d.mu.Unlock()
	return nil
}

func (d *Driver) MouseDown(b input.MouseButton) error {
	return d.do(func(w io.Writer) error { return SendMouseDownToArduino(w, b.String()) })
}

func (d *Driver) MouseUp(b input.MouseButton) error {
	return d.do(func(w io.Writer) error { return SendMouseUpToArduino(w, b.String()) })
}

func (d *Driver) KeyDown(key string) error {
	return d.do(func(w io.Writer) error { return SendKeyDownToArduino(w, key) })
}

func (d *Driver) KeyUp(key string) error {
	return d.do(func(w io.Writer) error { return SendKeyUpToArduino(w, key) })
}
