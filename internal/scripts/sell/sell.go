// Package sell продает предмет под курсором повторным ctrl+кликом
package sell

import (
	"context"
	"fmt"
	"time"

	"wonryeol/internal/input"
	"wonryeol/internal/logger"
	"wonryeol/internal/scripts"
	"wonryeol/internal/status"
)

const Feature = "sell"

// ModifierSettle пауза между нажатием модификатора и кликом
const ModifierSettle = 10 * time.Millisecond

type Seller struct {
	Delay time.Duration

	controller *input.Controller
	status     scripts.Publisher
	logger     *logger.LoggerManager
	sleep      func(context.Context, time.Duration) error
}

func NewSeller(delay time.Duration, controller *input.Controller, publisher scripts.Publisher, loggerManager *logger.LoggerManager) *Seller {
	return &Seller{
		Delay:      delay,
		controller: controller,
		status:     publisher,
		logger:     loggerManager,
		sleep:      scripts.Sleep,
	}
}

// once один ctrl+клик; false если отменили до клика
func (s *Seller) once(ctx context.Context) (bool, error) {
	ctrl := input.Key("ctrl")
	if err := s.controller.Press(ctrl); err != nil {
		return false, err
	}
	defer func() {
		if err := s.controller.Release(ctrl); err != nil {
			s.logger.LogError(err, "Ошибка отпускания ctrl")
		}
	}()
	if err := s.sleep(ctx, ModifierSettle); err != nil {
		return false, nil
	}
	if err := s.controller.Click(input.Left); err != nil {
		return false, err
	}
	_ = s.sleep(ctx, ModifierSettle)
	return true, nil
}

// Run кликает до отмены ctx; возвращает число продаж
func (s *Seller) Run(ctx context.Context) (int, error) {
	count := 0
	for ctx.Err() == nil {
		clicked, err := s.once(ctx)
		if err != nil {
			return count, fmt.Errorf("sell click: %w", err)
		}
		if !clicked {
			break
		}
		count++
		_ = s.status.Publish(Feature, fmt.Sprintf("판매: %s", status.FormatCount(count)), status.Info)
		if err := s.sleep(ctx, s.Delay); err != nil {
			break
		}
	}
	return count, nil
}

func (s *Seller) Task(ctx context.Context) error {
	n, err := s.Run(ctx)
	s.logger.Info("💰 Продано %d", n)
	return err
}
