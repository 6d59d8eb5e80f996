package input

import (
	"errors"
	"fmt"
	"sync"
	"time"
)

// SmoothFPS частота шагов плавного движения
const SmoothFPS = 144

// MinSmoothSteps минимальное число шагов плавного движения
const MinSmoothSteps = 20

// Driver низкоуровневый источник синтетического ввода
type Driver interface {
	CursorPos() (int, int, error)
	SetCursorPos(x, y int) error
	MouseDown(b MouseButton) error
	MouseUp(b MouseButton) error
	KeyDown(key string) error
	KeyUp(key string) error
}

// Controller поверх Driver: плавное движение, клики, учет зажатых клавиш
type Controller struct {
	drv   Driver
	sleep func(time.Duration)

	mu   sync.Mutex
	held map[Action]int
}

// NewController создает новый экземпляр Controller
func NewController(drv Driver) *Controller {
	return &Controller{
		drv:   drv,
		sleep: time.Sleep,
		held:  make(map[Action]int),
	}
}

// WithSleep подменяет функцию ожидания (для тестов)
func (c *Controller) WithSleep(sleep func(time.Duration)) *Controller {
	c.sleep = sleep
	return c
}

// Sleep ждет через ту же функцию, что и сам контроллер
func (c *Controller) Sleep(d time.Duration) {
	if d > 0 {
		c.sleep(d)
	}
}

// SmoothSteps число шагов для заданной длительности
func SmoothSteps(duration time.Duration) int {
	steps := int(duration.Seconds() * SmoothFPS)
	if steps < MinSmoothSteps {
		steps = MinSmoothSteps
	}
	return steps
}

// Ease кривая ease-in-out t²(3-2t)
func Ease(t float64) float64 {
	return t * t * (3 - 2*t)
}

// SmoothMove плавно ведет курсор к цели, без телепортации
func (c *Controller) SmoothMove(x, y int, duration time.Duration) error {
	sx, sy, err := c.drv.CursorPos()
	if err != nil {
		return fmt.Errorf("cursor position: %w", err)
	}

	steps := SmoothSteps(duration)
	pause := duration / time.Duration(steps)
	for i := 1; i <= steps; i++ {
		t := Ease(float64(i) / float64(steps))
		nx := int(float64(sx) + float64(x-sx)*t)
		ny := int(float64(sy) + float64(y-sy)*t)
		if err := c.drv.SetCursorPos(nx, ny); err != nil {
			return fmt.Errorf("set cursor: %w", err)
		}
		c.Sleep(pause)
	}
	return nil
}

// Teleport ставит курсор сразу в точку
func (c *Controller) Teleport(x, y int) error {
	return c.drv.SetCursorPos(x, y)
}

func (c *Controller) down(a Action) error {
	if a.Kind == KindMouse {
		return c.drv.MouseDown(a.Button)
	}
	return c.drv.KeyDown(a.Key)
}

func (c *Controller) up(a Action) error {
	if a.Kind == KindMouse {
		return c.drv.MouseUp(a.Button)
	}
	return c.drv.KeyUp(a.Key)
}

// Tap нажимает и сразу отпускает
func (c *Controller) Tap(a Action) error {
	if err := c.down(a); err != nil {
		return err
	}
	return c.up(a)
}

// Click клик кнопкой мыши в текущей позиции
func (c *Controller) Click(b MouseButton) error {
	return c.Tap(Mouse(b))
}

// Press зажимает действие и запоминает его как удерживаемое
func (c *Controller) Press(a Action) error {
	if err := c.down(a); err != nil {
		return err
	}
	c.mu.Lock()
	c.held[a]++
	c.mu.Unlock()
	return nil
}

// Release отпускает удерживаемое действие
func (c *Controller) Release(a Action) error {
	c.mu.Lock()
	if c.held[a] > 1 {
		c.held[a]--
	} else {
		delete(c.held, a)
	}
	c.mu.Unlock()
	return c.up(a)
}

// Held список удерживаемых сейчас действий
func (c *Controller) Held() []Action {
	c.mu.Lock()
	defer c.mu.Unlock()
	out := make([]Action, 0, len(c.held))
	for a := range c.held {
		out = append(out, a)
	}
	return out
}

// ReleaseAll отпускает все, что было зажато через Press
func (c *Controller) ReleaseAll() error {
	c.mu.Lock()
	held := c.held
	c.held = make(map[Action]int)
	c.mu.Unlock()

	var errs []error
	for a := range held {
		if err := c.up(a); err != nil {
			errs = append(errs, fmt.Errorf("release %s: %w", a, err))
		}
	}
	return errors.Join(errs...)
}

// ModifierClick клик с зажатым модификатором (например ctrl+клик)
func (c *Controller) ModifierClick(modifier string, b MouseButton) error {
	if modifier == "" || modifier == "none" {
		return c.Click(b)
	}
	if err := c.drv.KeyDown(modifier); err != nil {
		return err
	}
	clickErr := c.Click(b)
	if err := c.drv.KeyUp(modifier); err != nil {
		return errors.Join(clickErr, err)
	}
	return clickErr
}
