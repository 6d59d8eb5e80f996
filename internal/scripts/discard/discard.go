// Package discard выбрасывает все ячейки инвентаря подряд без проверки
package discard

import (
	"context"
	"fmt"
	"image"
	"time"

	"wonryeol/internal/input"
	"wonryeol/internal/logger"
	"wonryeol/internal/scripts"
	"wonryeol/internal/scripts/inventory"
	"wonryeol/internal/status"
)

const Feature = "discard"

// Discarder телепорт + клик с модификатором по каждой ячейке змейкой
type Discarder struct {
	Area       image.Rectangle
	Cols, Rows int
	Modifier   string
	Delay      time.Duration

	controller *input.Controller
	status     scripts.Publisher
	logger     *logger.LoggerManager
	sleep      func(context.Context, time.Duration) error
}

func NewDiscarder(area image.Rectangle, cols, rows int, modifier string, delay time.Duration, controller *input.Controller, publisher scripts.Publisher, loggerManager *logger.LoggerManager) *Discarder {
	return &Discarder{
		Area:       area,
		Cols:       cols,
		Rows:       rows,
		Modifier:   modifier,
		Delay:      delay,
		controller: controller,
		status:     publisher,
		logger:     loggerManager,
		sleep:      scripts.Sleep,
	}
}

// Run проходит все ячейки один раз; возвращает число выброшенных
func (d *Discarder) Run(ctx context.Context) (int, error) {
	slots := inventory.GetInventoryPositions(d.Area, d.Cols, d.Rows)
	_ = d.status.Publish(Feature, "🗑️ 버리는 중...", status.Info)

	discarded := 0
	for i, slot := range slots {
		if ctx.Err() != nil {
			break
		}
		if err := d.controller.Teleport(slot.X, slot.Y); err != nil {
			return discarded, fmt.Errorf("teleport to slot %d: %w", i, err)
		}
		if err := d.controller.ModifierClick(d.Modifier, input.Left); err != nil {
			return discarded, fmt.Errorf("discard slot %d: %w", i, err)
		}
		discarded++

		if i%10 == 0 {
			_ = d.status.Publish(Feature, fmt.Sprintf("%d/%d", i+1, len(slots)), status.Info)
		}
		if err := d.sleep(ctx, d.Delay); err != nil {
			break
		}
	}
	return discarded, nil
}

// Task обертка для supervisor
func (d *Discarder) Task(ctx context.Context) error {
	n, err := d.Run(ctx)
	if err != nil {
		return err
	}
	_ = d.status.Publish(Feature, fmt.Sprintf("✅ 완료! 총 %s개 버림", status.FormatCount(n)), status.Done)
	d.logger.Info("🗑️ Выброшено %d ячеек", n)
	return nil
}
