// Package skill_auto нажимает клавиши умений по таймерам, по одному
// независимому планировщику на пресет.
package skill_auto

import (
	"context"
	"fmt"
	"strings"
	"sync"
	"time"

	"wonryeol/internal/input"
	"wonryeol/internal/logger"
	"wonryeol/internal/scripts"
	"wonryeol/internal/status"
)

// HonryeongsaKey клавиша, которую не жмем, пока ее держит игрок
const HonryeongsaKey = "space"

// HeldChecker физическое состояние клавиш
type HeldChecker interface {
	IsHeld(key string) bool
}

// Slot одна клавиша пресета
type Slot struct {
	Enabled  bool
	Action   input.Action
	Cooldown time.Duration
	Hold     bool
}

// Scheduler планировщик одного пресета
type Scheduler struct {
	Name        string
	Honryeongsa bool

	controller *input.Controller
	held       HeldChecker
	status     scripts.Publisher
	logger     *logger.LoggerManager
	pause      scripts.Pause

	mu       sync.Mutex
	slots    []Slot
	lastUsed []time.Time
	holding  []bool
}

// NewScheduler создает планировщик; lastUsed нулевой, поэтому все слоты
// срабатывают сразу после запуска
func NewScheduler(name string, slots []Slot, honryeongsa bool, controller *input.Controller, held HeldChecker, publisher scripts.Publisher, loggerManager *logger.LoggerManager) *Scheduler {
	return &Scheduler{
		Name:        name,
		Honryeongsa: honryeongsa,
		controller:  controller,
		held:        held,
		status:      publisher,
		logger:      loggerManager,
		slots:       append([]Slot(nil), slots...),
		lastUsed:    make([]time.Time, len(slots)),
		holding:     make([]bool, len(slots)),
	}
}

// Pause флаг паузы пресета (Enter)
func (s *Scheduler) Pause() *scripts.Pause {
	return &s.pause
}

// SetEnabled включает или выключает слот на лету.
// Выключение зажатого слота отпускает его.
func (s *Scheduler) SetEnabled(i int, enabled bool) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if i < 0 || i >= len(s.slots) {
		return fmt.Errorf("slot %d out of range", i)
	}
	s.slots[i].Enabled = enabled
	if !enabled && s.holding[i] {
		s.releaseLocked(i)
	}
	return nil
}

func (s *Scheduler) releaseLocked(i int) {
	s.holding[i] = false
	if err := s.controller.Release(s.slots[i].Action); err != nil {
		s.logger.LogError(err, fmt.Sprintf("Ошибка отпускания %s", s.slots[i].Action))
	}
}

// ReleaseAll отпускает все зажатые слоты
func (s *Scheduler) ReleaseAll() {
	s.mu.Lock()
	defer s.mu.Unlock()
	for i := range s.slots {
		if s.holding[i] {
			s.releaseLocked(i)
		}
	}
}

// Holding зажат ли слот
func (s *Scheduler) Holding(i int) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return i >= 0 && i < len(s.holding) && s.holding[i]
}

func (s *Scheduler) guarded(a input.Action) bool {
	return s.Honryeongsa && s.held != nil &&
		a.Kind == input.KindKey && strings.EqualFold(a.Key, HonryeongsaKey) &&
		s.held.IsHeld(HonryeongsaKey)
}

// Tick один шаг планировщика; возвращает номера сработавших слотов.
// На паузе ничего не жмется, зажатые слоты отпускаются, lastUsed не сбрасывается.
func (s *Scheduler) Tick(now time.Time, paused bool) []int {
	s.mu.Lock()
	defer s.mu.Unlock()

	if paused {
		for i := range s.slots {
			if s.holding[i] {
				s.releaseLocked(i)
			}
		}
		return nil
	}

	var fired []int
	for i, slot := range s.slots {
		if !slot.Enabled {
			if s.holding[i] {
				s.releaseLocked(i)
			}
			continue
		}
		if slot.Cooldown <= 0 || s.holding[i] {
			continue
		}
		if !s.lastUsed[i].IsZero() && now.Sub(s.lastUsed[i]) < slot.Cooldown {
			continue
		}
		if s.guarded(slot.Action) {
			continue
		}

		var err error
		if slot.Hold {
			err = s.controller.Press(slot.Action)
			if err == nil {
				s.holding[i] = true
			}
		} else {
			err = s.controller.Tap(slot.Action)
		}
		if err != nil {
			s.logger.LogError(err, fmt.Sprintf("Ошибка нажатия %s", slot.Action))
		}
		s.lastUsed[i] = now
		fired = append(fired, i)
	}
	return fired
}

// Run крутит Tick до отмены ctx; при выходе отпускает все зажатое.
// Каждый запуск начинается с нулевых lastUsed.
func (s *Scheduler) Run(ctx context.Context) error {
	defer s.ReleaseAll()
	s.pause.Clear()
	s.mu.Lock()
	for i := range s.lastUsed {
		s.lastUsed[i] = time.Time{}
	}
	s.mu.Unlock()
	_ = s.status.Publish(s.Name, "⚡ 스킬 실행 중...", status.Info)
	defer func() { _ = s.status.Publish(s.Name, "⏹️ 중지됨", status.Info) }()

	ticker := time.NewTicker(scripts.TickInterval)
	defer ticker.Stop()
	for {
		s.Tick(time.Now(), s.pause.Paused())
		select {
		case <-ctx.Done():
			return nil
		case <-ticker.C:
		}
	}
}
