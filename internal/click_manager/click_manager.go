package click_manager

import (
	"fmt"
	"image"
	"time"

	"wonryeol/internal/input"
	"wonryeol/internal/logger"
)

// ClickManager наводит курсор и выполняет настроенное действие
type ClickManager struct {
	controller   *input.Controller
	action       input.Action
	moveDuration time.Duration
	cooldown     *Cooldown
	logger       *logger.LoggerManager
}

// NewClickManager создает новый экземпляр ClickManager
func NewClickManager(controller *input.Controller, action input.Action, moveDuration time.Duration, cooldown *Cooldown, loggerManager *logger.LoggerManager) *ClickManager {
	return &ClickManager{
		controller:   controller,
		action:       action,
		moveDuration: moveDuration,
		cooldown:     cooldown,
		logger:       loggerManager,
	}
}

// Cooldown окно подавления повторных кликов
func (m *ClickManager) Cooldown() *Cooldown {
	return m.cooldown
}

// MoveTo плавно ведет курсор в точку
func (m *ClickManager) MoveTo(p image.Point) error {
	if err := m.controller.SmoothMove(p.X, p.Y, m.moveDuration); err != nil {
		return fmt.Errorf("move to %v: %w", p, err)
	}
	return nil
}

// Fire выполняет действие в текущей позиции и запоминает клик
func (m *ClickManager) Fire(p image.Point, now time.Time) error {
	if err := m.controller.Tap(m.action); err != nil {
		return fmt.Errorf("%s at %v: %w", m.action, p, err)
	}
	if m.cooldown != nil {
		m.cooldown.Record(p, now)
	}
	m.logger.Debug("Клик %s по (%d, %d)", m.action, p.X, p.Y)
	return nil
}

// ClickCoordinates наводит курсор и выполняет действие
func (m *ClickManager) ClickCoordinates(p image.Point, now time.Time) error {
	if err := m.MoveTo(p); err != nil {
		return err
	}
	return m.Fire(p, now)
}
