package click_manager

import (
	"image"
	"math"
	"sync"
	"time"
)

// Cooldown подавляет повторный клик рядом с последним принятым.
// Отказ только если точка ближе Distance И прошло меньше Window.
type Cooldown struct {
	Distance float64
	Window   time.Duration

	mu       sync.Mutex
	last     image.Point
	lastTime time.Time
	has      bool
}

// NewCooldown создает окно подавления
func NewCooldown(distance float64, window time.Duration) *Cooldown {
	return &Cooldown{Distance: distance, Window: window}
}

// Blocked проверяет точку без изменения состояния
func (c *Cooldown) Blocked(p image.Point, now time.Time) bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.blocked(p, now)
}

func (c *Cooldown) blocked(p image.Point, now time.Time) bool {
	if !c.has {
		return false
	}
	dist := math.Hypot(float64(p.X-c.last.X), float64(p.Y-c.last.Y))
	return dist < c.Distance && now.Sub(c.lastTime) < c.Window
}

// Record запоминает принятый клик
func (c *Cooldown) Record(p image.Point, now time.Time) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.last, c.lastTime, c.has = p, now, true
}

// Accept проверяет и при успехе сразу запоминает точку
func (c *Cooldown) Accept(p image.Point, now time.Time) bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.blocked(p, now) {
		return false
	}
	c.last, c.lastTime, c.has = p, now, true
	return true
}

