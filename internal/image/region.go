package image

import (
	"image"
)

// ExcludeStride шаг проверки окрестности на исключающие цвета
const ExcludeStride = 3

// FindTextCenter находит центр цветной надписи, начиная с совпавшего пикселя.
// Сначала расширяемся по горизонтали, затем по вертикали через centerX.
// Это крестовая проба, а не заливка: многострочные или Г-образные надписи
// центрируются неточно.
func FindTextCenter(img *image.RGBA, start image.Point, target RGB, tol int) image.Point {
	width, height := img.Rect.Dx(), img.Rect.Dy()

	left := start.X
	for left > 0 && target.Matches(pixelAt(img, left-1, start.Y), tol) {
		left--
	}
	right := start.X
	for right < width-1 && target.Matches(pixelAt(img, right+1, start.Y), tol) {
		right++
	}
	centerX := (left + right) / 2

	top := start.Y
	for top > 0 && target.Matches(pixelAt(img, centerX, top-1), tol) {
		top--
	}
	bottom := start.Y
	for bottom < height-1 && target.Matches(pixelAt(img, centerX, bottom+1), tol) {
		bottom++
	}

	return image.Point{X: centerX, Y: (top + bottom) / 2}
}

// HasExcludeColorNearby ищет исключающий цвет в квадрате [-radius, +radius]
// вокруг центра с шагом ExcludeStride.
func HasExcludeColorNearby(img *image.RGBA, center image.Point, radius int, excludes []RGB, tol int) bool {
	width, height := img.Rect.Dx(), img.Rect.Dy()
	for _, ex := range excludes {
		for dy := -radius; dy <= radius; dy += ExcludeStride {
			for dx := -radius; dx <= radius; dx += ExcludeStride {
				nx, ny := center.X+dx, center.Y+dy
				if nx < 0 || nx >= width || ny < 0 || ny >= height {
					continue
				}
				if ex.Matches(pixelAt(img, nx, ny), tol) {
					return true
				}
			}
		}
	}
	return false
}
