package inventory

import "image"

// Slot центр ячейки инвентаря и ее настоящий столбец
type Slot struct {
	X, Y int
	Col  int
	Row  int
}

// Point центр ячейки
func (s Slot) Point() image.Point {
	return image.Pt(s.X, s.Y)
}

// CellWidth ширина ячейки в пикселях (дробная)
func CellWidth(area image.Rectangle, cols int) float64 {
	if cols < 1 {
		cols = 1
	}
	return float64(area.Dx()) / float64(cols)
}

// GetInventoryPositions центры ячеек змейкой: четные строки слева
// направо, нечетные справа налево. Col всегда настоящий столбец.
func GetInventoryPositions(area image.Rectangle, cols, rows int) []Slot {
	if cols < 1 || rows < 1 {
		return nil
	}
	cellW := CellWidth(area, cols)
	cellH := float64(area.Dy()) / float64(rows)

	slots := make([]Slot, 0, cols*rows)
	for row := 0; row < rows; row++ {
		for i := 0; i < cols; i++ {
			col := i
			if row%2 == 1 {
				col = cols - 1 - i
			}
			slots = append(slots, Slot{
				X:   int(float64(area.Min.X) + cellW*(float64(col)+0.5)),
				Y:   int(float64(area.Min.Y) + cellH*(float64(row)+0.5)),
				Col: col,
				Row: row,
			})
		}
	}
	return slots
}
