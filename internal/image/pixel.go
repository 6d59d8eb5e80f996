package image

import (
	"fmt"
	"image"
	"image/png"
	"os"
)

// GetPixelColor получает цвет пикселя по координатам.
// За пределами изображения возвращает черный цвет.
func GetPixelColor(img image.Image, x int, y int) RGB {
	bounds := img.Bounds()
	if x < bounds.Min.X || x >= bounds.Max.X || y < bounds.Min.Y || y >= bounds.Max.Y {
		return RGB{}
	}

	r, g, b, _ := img.At(x, y).RGBA()
	return RGB{R: uint8(r >> 8), G: uint8(g >> 8), B: uint8(b >> 8)}
}

// pixelAt читает пиксель в локальных координатах (от Bounds().Min) без проверки границ
func pixelAt(img *image.RGBA, x, y int) RGB {
	i := img.PixOffset(img.Rect.Min.X+x, img.Rect.Min.Y+y)
	return RGB{R: img.Pix[i], G: img.Pix[i+1], B: img.Pix[i+2]}
}

// PixelAt читает пиксель в локальных координатах
func PixelAt(img *image.RGBA, x, y int) RGB {
	return pixelAt(img, x, y)
}

// AnyMatch сравнивает все пиксели изображения с цветом.
// Полный проход без шага: область маленькая, точность важнее скорости.
func AnyMatch(img *image.RGBA, target RGB, tol int) bool {
	w, h := img.Rect.Dx(), img.Rect.Dy()
	for y := 0; y < h; y++ {
		row := img.PixOffset(img.Rect.Min.X, img.Rect.Min.Y+y)
		for x := 0; x < w; x++ {
			i := row + x*4
			if target.Matches(RGB{R: img.Pix[i], G: img.Pix[i+1], B: img.Pix[i+2]}, tol) {
				return true
			}
		}
	}
	return false
}

// SaveImage сохраняет изображение в png для отладки
func SaveImage(img image.Image, filename string) error {
	file, err := os.Create(filename)
	if err != nil {
		return fmt.Errorf("failed to create file: %w", err)
	}
	defer file.Close()

	if err := png.Encode(file, img); err != nil {
		return fmt.Errorf("failed to encode image: %w", err)
	}
	return nil
}
