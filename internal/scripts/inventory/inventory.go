// Package inventory очищает сетку инвентаря: сначала отмечает ценные
// предметы по цвету описания, затем выбрасывает остальные.
package inventory

import (
	"context"
	"fmt"
	"image"
	"sync/atomic"
	"time"

	imgpkg "wonryeol/internal/image"
	"wonryeol/internal/input"
	"wonryeol/internal/logger"
	"wonryeol/internal/screenshot"
	"wonryeol/internal/scripts"
	"wonryeol/internal/status"
)

const Feature = "inventory"

// State стадия очистки
type State int32

const (
	Idle State = iota
	Scanning
	Discarding
)

func (s State) String() string {
	switch s {
	case Scanning:
		return "scanning"
	case Discarding:
		return "discarding"
	}
	return "idle"
}

// Options параметры очистки
type Options struct {
	KeepColor       imgpkg.RGB
	Tolerance       int
	Area            image.Rectangle
	DescArea        image.Rectangle
	Cols, Rows      int
	MoveDuration    time.Duration
	PanelDelay      time.Duration
	SpaceDelay      time.Duration
	HoverDelay      time.Duration
	TeleportDelay   time.Duration
	ClickDelay      time.Duration
	FavoriteKey     input.Action
	DiscardModifier string
}

// Result итог одного запуска
type Result struct {
	Scanned   int
	Favorites []int
	// Unscanned ячейки, описание которых не удалось снять; не выбрасываются
	Unscanned []int
	Discarded int
	Cancelled bool
}

// Cleaner двухфазная очистка инвентаря
type Cleaner struct {
	opts       Options
	controller *input.Controller
	capturer   screenshot.Capturer
	status     scripts.Publisher
	logger     *logger.LoggerManager
	sleep      func(context.Context, time.Duration) error
	state      atomic.Int32
}

// NewCleaner создает новый экземпляр Cleaner
func NewCleaner(opts Options, controller *input.Controller, capturer screenshot.Capturer, publisher scripts.Publisher, loggerManager *logger.LoggerManager) *Cleaner {
	return &Cleaner{
		opts:       opts,
		controller: controller,
		capturer:   capturer,
		status:     publisher,
		logger:     loggerManager,
		sleep:      scripts.Sleep,
	}
}

// State текущая стадия
func (c *Cleaner) State() State {
	return State(c.state.Load())
}

// descRect область описания для столбца col
func (c *Cleaner) descRect(col int) image.Rectangle {
	offset := int(float64(col) * CellWidth(c.opts.Area, c.opts.Cols))
	return c.opts.DescArea.Add(image.Pt(offset, 0))
}

// Run выполняет обе фазы. Отмена во время сканирования пропускает
// выбрасывание целиком.
func (c *Cleaner) Run(ctx context.Context) (Result, error) {
	defer c.state.Store(int32(Idle))

	var res Result
	slots := GetInventoryPositions(c.opts.Area, c.opts.Cols, c.opts.Rows)
	if len(slots) == 0 {
		return res, nil
	}
	keep := make([]bool, len(slots))

	c.state.Store(int32(Scanning))
	first := slots[0]
	if err := c.controller.SmoothMove(first.X, first.Y, c.opts.MoveDuration); err != nil {
		return res, fmt.Errorf("hover first slot: %w", err)
	}
	if err := c.sleep(ctx, c.opts.HoverDelay); err != nil {
		res.Cancelled = true
		return res, nil
	}

	for i, slot := range slots {
		if ctx.Err() != nil {
			c.logger.Info("⏹️ Сканирование прервано на %d/%d, выбрасывание пропущено", i, len(slots))
			res.Cancelled = true
			return res, nil
		}
		_ = c.status.Publish(Feature, fmt.Sprintf("스캔 중: %d/%d", i+1, len(slots)), status.Info)

		if err := c.controller.SmoothMove(slot.X, slot.Y, c.opts.MoveDuration); err != nil {
			return res, fmt.Errorf("move to slot %d: %w", i, err)
		}
		if err := c.sleep(ctx, c.opts.PanelDelay); err != nil {
			res.Cancelled = true
			return res, nil
		}

		img, err := c.capturer.CaptureRect(c.descRect(slot.Col))
		if err == nil && img.Rect.Empty() {
			err = screenshot.ErrEmptyArea
		}
		if err != nil {
			c.logger.LogError(err, fmt.Sprintf("Ошибка снимка описания ячейки %d", i))
			keep[i] = true
			res.Unscanned = append(res.Unscanned, i)
			continue
		}
		res.Scanned++

		if imgpkg.AnyMatch(img, c.opts.KeepColor, c.opts.Tolerance) {
			keep[i] = true
			res.Favorites = append(res.Favorites, i)
			if err := c.toggleFavorite(ctx); err != nil {
				return res, err
			}
		}
	}

	c.state.Store(int32(Discarding))
	for i, slot := range slots {
		if keep[i] {
			continue
		}
		if ctx.Err() != nil {
			res.Cancelled = true
			return res, nil
		}
		_ = c.status.Publish(Feature, fmt.Sprintf("버리는 중: %d/%d", i+1, len(slots)), status.Info)

		if err := c.controller.Teleport(slot.X, slot.Y); err != nil {
			return res, fmt.Errorf("teleport to slot %d: %w", i, err)
		}
		if err := c.sleep(ctx, c.opts.TeleportDelay); err != nil {
			res.Cancelled = true
			return res, nil
		}
		if err := c.controller.ModifierClick(c.opts.DiscardModifier, input.Left); err != nil {
			return res, fmt.Errorf("discard slot %d: %w", i, err)
		}
		res.Discarded++
		if err := c.sleep(ctx, c.opts.ClickDelay); err != nil {
			res.Cancelled = true
			return res, nil
		}
	}

	c.logger.Info("✅ Инвентарь: отмечено %d, выброшено %d, без снимка %d", len(res.Favorites), res.Discarded, len(res.Unscanned))
	return res, nil
}

// toggleFavorite игре нужно два нажатия подряд. Пара уходит целиком
// даже при отмене, иначе отметка остается наполовину.
func (c *Cleaner) toggleFavorite(ctx context.Context) error {
	pair := context.WithoutCancel(ctx)
	for n := 0; n < 2; n++ {
		if err := c.controller.Tap(c.opts.FavoriteKey); err != nil {
			return fmt.Errorf("favorite key: %w", err)
		}
		_ = c.sleep(pair, c.opts.SpaceDelay)
	}
	return nil
}

// Task обертка для supervisor
func (c *Cleaner) Task(ctx context.Context) error {
	res, err := c.Run(ctx)
	if err != nil {
		_ = c.status.Publish(Feature, "❌ "+err.Error(), status.Alert)
		return err
	}
	if res.Cancelled {
		_ = c.status.Publish(Feature, "⏸️ 중지됨", status.Info)
		return nil
	}
	_ = c.status.Publish(Feature, fmt.Sprintf("✅ 완료! 보관 %d, 버림 %d", len(res.Favorites), res.Discarded), status.Done)
	return nil
}
