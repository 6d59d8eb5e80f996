// Package consume повторяет одно действие (клавиша или кнопка мыши)
// с задержкой, с паузой на время чата
package consume

import (
	"context"
	"fmt"
	"time"

	"wonryeol/internal/input"
	"wonryeol/internal/logger"
	"wonryeol/internal/scripts"
	"wonryeol/internal/status"
)

const Feature = "consume"

type Consumer struct {
	Action input.Action
	Delay  time.Duration

	controller *input.Controller
	status     scripts.Publisher
	logger     *logger.LoggerManager
	pause      scripts.Pause
	sleep      func(context.Context, time.Duration) error
}

func NewConsumer(action input.Action, delay time.Duration, controller *input.Controller, publisher scripts.Publisher, loggerManager *logger.LoggerManager) *Consumer {
	return &Consumer{
		Action:     action,
		Delay:      delay,
		controller: controller,
		status:     publisher,
		logger:     loggerManager,
		sleep:      scripts.Sleep,
	}
}

// Pause флаг паузы (Enter)
func (c *Consumer) Pause() *scripts.Pause {
	return &c.pause
}

// Run повторяет действие до отмены ctx; возвращает число повторов
func (c *Consumer) Run(ctx context.Context) (int, error) {
	c.pause.Clear()
	count := 0
	for ctx.Err() == nil {
		if c.pause.Paused() {
			if err := c.sleep(ctx, scripts.TickInterval); err != nil {
				break
			}
			continue
		}
		if err := c.controller.Tap(c.Action); err != nil {
			return count, fmt.Errorf("consume %s: %w", c.Action, err)
		}
		count++
		_ = c.status.Publish(Feature, fmt.Sprintf("먹음: %s", status.FormatCount(count)), status.Info)
		if err := c.sleep(ctx, c.Delay); err != nil {
			break
		}
	}
	return count, nil
}

func (c *Consumer) Task(ctx context.Context) error {
	n, err := c.Run(ctx)
	_ = c.status.Publish(Feature, fmt.Sprintf("총 %s회 입력", status.FormatCount(n)), status.Info)
	return err
}
