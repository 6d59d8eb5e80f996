package arduino

import (
	"fmt"
	"io"
)

// ProcessAndWait отправляет команду и ждет подтверждения от Arduino
func ProcessAndWait(
	send func(io.Writer) error,
	waitForArduinoResponse func(string, io.Reader) (string, error),
	port io.ReadWriter,
) error {
	if err := send(port); err != nil {
		return err
	}

	if _, err := waitForArduinoResponse(ResponseReceived, port); err != nil {
		return fmt.Errorf("error waiting for Arduino response: %w", err)
	}
	return nil
}
