package screenshot

import (
	"errors"
	"fmt"
	"image"

	"github.com/kbinani/screenshot"

	imgpkg "wonryeol/internal/image"
)

// ErrEmptyArea вырожденная область снимка (x1>=x2 или y1>=y2)
var ErrEmptyArea = errors.New("empty capture area")

// Capturer источник снимков экрана
type Capturer interface {
	CaptureRect(r image.Rectangle) (*image.RGBA, error)
}

// ScreenshotManager снимает прямоугольники экрана через kbinani/screenshot
type ScreenshotManager struct{}

// NewScreenshotManager создает новый экземпляр ScreenshotManager
func NewScreenshotManager() *ScreenshotManager {
	return &ScreenshotManager{}
}

// CaptureRect снимает область в экранных координатах.
// Углы не переставляются: перевернутая область тоже ErrEmptyArea.
func (m *ScreenshotManager) CaptureRect(r image.Rectangle) (*image.RGBA, error) {
	if r.Empty() {
		return nil, fmt.Errorf("capture %v: %w", r, ErrEmptyArea)
	}

	img, err := screenshot.CaptureRect(r)
	if err != nil {
		return nil, fmt.Errorf("failed to capture screenshot: %w", err)
	}
	return img, nil
}

// PixelAt цвет одного пикселя экрана
func PixelAt(c Capturer, x, y int) (imgpkg.RGB, error) {
	img, err := c.CaptureRect(image.Rect(x, y, x+1, y+1))
	if err != nil {
		return imgpkg.RGB{}, err
	}
	return imgpkg.PixelAt(img, 0, 0), nil
}

// DisplayBounds границы основного монитора
func DisplayBounds() image.Rectangle {
	if screenshot.NumActiveDisplays() == 0 {
		return image.Rectangle{}
	}
	return screenshot.GetDisplayBounds(0)
}

// SaveScreenshot снимает область и сохраняет ее в png для отладки
func SaveScreenshot(c Capturer, r image.Rectangle, filename string) error {
	img, err := c.CaptureRect(r)
	if err != nil {
		return err
	}
	return imgpkg.SaveImage(img, filename)
}
