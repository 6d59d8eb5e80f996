package arduino

import (
	"bytes"
	"fmt"
	"io"

	"github.com/tarm/serial"
)

// ResponseReceived подтверждение выполнения команды от скетча
const ResponseReceived = "received"

func InitializePort(name string, baud int) (*serial.Port, error) {
	port, err := serial.OpenPort(&serial.Config{
		Name:     name,
		Baud:     baud,
		Parity:   serial.ParityNone,
		StopBits: serial.Stop1,
	})
	return port, err
}

func writeCommand(port io.Writer, message string) error {
	if _, err := port.Write([]byte(message)); err != nil {
		return fmt.Errorf("error writing to Arduino: %w", err)
	}
	return nil
}

func SendKeyDownToArduino(port io.Writer, key string) error {
	return writeCommand(port, fmt.Sprintf("key_down:%s\n", key))
}

func SendKeyUpToArduino(port io.Writer, key string) error {
	return writeCommand(port, fmt.Sprintf("key_up:%s\n", key))
}

// SendMoveToArduino перемещение курсора в абсолютные координаты
func SendMoveToArduino(port io.Writer, x, y int) error {
	return writeCommand(port, fmt.Sprintf("move:%d,%d\n", x, y))
}

func SendMouseDownToArduino(port io.Writer, button string) error {
	return writeCommand(port, fmt.Sprintf("mouse_down:%s\n", button))
}

func SendMouseUpToArduino(port io.Writer, button string) error {
	return writeCommand(port, fmt.Sprintf("mouse_up:%s\n", button))
}

func WaitForArduinoResponse(port io.Reader, expectedResponse string) (string, error) {
	var response string
	buf := make([]byte, 128)
	for {
		n, err := port.Read(buf)
		if err != nil {
			return "", fmt.Errorf("error reading from Arduino: %w", err)
		}

		response += string(buf[:n])

		if len(response) > 0 && response[len(response)-1] == '\n' {
			response = string(bytes.TrimSpace([]byte(response)))

			if response == expectedResponse {
				return response, nil
			}
			return "", fmt.Errorf("unexpected response: '%s'", response)
		}
	}
}
