package scripts

import (
	"context"
	"sync/atomic"
	"time"

	"wonryeol/internal/status"
)

// TickInterval период опроса фоновых циклов
const TickInterval = 10 * time.Millisecond

// Publisher получатель обновлений состояния
type Publisher interface {
	Publish(feature, text string, level status.Level) error
}

// NopPublisher отбрасывает обновления
type NopPublisher struct{}

func (NopPublisher) Publish(string, string, status.Level) error { return nil }

// Sleep ждет d или отмену ctx; возвращает ctx.Err() при отмене
func Sleep(ctx context.Context, d time.Duration) error {
	if d <= 0 {
		return ctx.Err()
	}
	t := time.NewTimer(d)
	defer t.Stop()
	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-t.C:
		return nil
	}
}

// Pause флаг паузы по Enter
type Pause struct {
	v atomic.Bool
}

// Toggle переключает паузу и возвращает новое состояние
func (p *Pause) Toggle() bool {
	for {
		old := p.v.Load()
		if p.v.CompareAndSwap(old, !old) {
			return !old
		}
	}
}

func (p *Pause) Paused() bool { return p.v.Load() }

func (p *Pause) Clear() { p.v.Store(false) }
