package interrupt

import (
	"errors"
	"fmt"
	"sync"
	"time"

	"golang.org/x/time/rate"

	"wonryeol/internal/logger"
)

// ErrHotkeyConflict клавиша уже занята аварийной остановкой
var ErrHotkeyConflict = errors.New("hotkey conflicts with emergency stop key")

// DebounceInterval минимальный интервал между срабатываниями одной привязки
const DebounceInterval = 300 * time.Millisecond

// Event нажатие или отпускание клавиши/кнопки мыши от хука
type Event struct {
	Key      string
	Down     bool
	Injected bool
}

// Binding привязка горячей клавиши к функции
type Binding struct {
	Name     string
	Key      string
	Modifier string
}

type binding struct {
	Binding
	handler func()
	limiter *rate.Limiter
}

// InterruptManager разбирает события хуков и вызывает обработчики
type InterruptManager struct {
	mu            sync.Mutex
	emergencyKey  string
	onEmergency   func()
	bindings      map[string]*binding
	enterHandlers []func()
	chatting      bool
	held          map[string]bool
	now           func() time.Time
	loggerManager *logger.LoggerManager
}

// NewInterruptManager создает новый менеджер прерываний
func NewInterruptManager(loggerManager *logger.LoggerManager) *InterruptManager {
	return &InterruptManager{
		bindings:      make(map[string]*binding),
		held:          make(map[string]bool),
		now:           time.Now,
		loggerManager: loggerManager,
	}
}

// SetClock подменяет часы (для тестов)
func (im *InterruptManager) SetClock(now func() time.Time) {
	im.mu.Lock()
	im.now = now
	im.mu.Unlock()
}

// SetEmergency назначает клавишу аварийной остановки.
// Привязки на этой клавише снимаются.
func (im *InterruptManager) SetEmergency(key string, fn func()) {
	im.mu.Lock()
	defer im.mu.Unlock()
	im.emergencyKey = NormalizeKey(key)
	im.onEmergency = fn
	for name, b := range im.bindings {
		if b.Key == im.emergencyKey {
			im.loggerManager.Info("Привязка %s снята: клавиша %s занята аварийной остановкой", name, b.Key)
			delete(im.bindings, name)
		}
	}
}

// Bind регистрирует или заменяет привязку с тем же именем.
// При конфликте с аварийной клавишей старая привязка остается.
func (im *InterruptManager) Bind(b Binding, handler func()) error {
	b.Key = NormalizeKey(b.Key)
	b.Modifier = NormalizeKey(b.Modifier)
	if b.Modifier == "" || b.Modifier == "없음" {
		b.Modifier = "none"
	}
	if b.Key == "" {
		return fmt.Errorf("binding %s: empty key", b.Name)
	}

	im.mu.Lock()
	defer im.mu.Unlock()
	if b.Key == im.emergencyKey {
		return fmt.Errorf("binding %s on %s: %w", b.Name, b.Key, ErrHotkeyConflict)
	}
	im.bindings[b.Name] = &binding{
		Binding: b,
		handler: handler,
		limiter: rate.NewLimiter(rate.Every(DebounceInterval), 1),
	}
	return nil
}

// Unbind снимает привязку
func (im *InterruptManager) Unbind(name string) {
	im.mu.Lock()
	delete(im.bindings, name)
	im.mu.Unlock()
}

// Bindings копия текущих привязок
func (im *InterruptManager) Bindings() []Binding {
	im.mu.Lock()
	defer im.mu.Unlock()
	out := make([]Binding, 0, len(im.bindings))
	for _, b := range im.bindings {
		out = append(out, b.Binding)
	}
	return out
}

// OnEnter добавляет обработчик Enter (пауза функций на время чата)
func (im *InterruptManager) OnEnter(fn func()) {
	im.mu.Lock()
	im.enterHandlers = append(im.enterHandlers, fn)
	im.mu.Unlock()
}

// Chatting открыт ли чат (Enter переключает)
func (im *InterruptManager) Chatting() bool {
	im.mu.Lock()
	defer im.mu.Unlock()
	return im.chatting
}

// ResetChat сбрасывает флаг чата
func (im *InterruptManager) ResetChat() {
	im.mu.Lock()
	im.chatting = false
	im.mu.Unlock()
}

// IsHeld зажата ли клавиша физически (синтетический ввод не учитывается)
func (im *InterruptManager) IsHeld(key string) bool {
	im.mu.Lock()
	defer im.mu.Unlock()
	return im.held[NormalizeKey(key)]
}

func (im *InterruptManager) modifierHeld(mod string) bool {
	if mod == "none" {
		return true
	}
	return im.held[mod]
}

// Handle обрабатывает одно событие хука
func (im *InterruptManager) Handle(ev Event) {
	key := NormalizeKey(ev.Key)

	im.mu.Lock()
	if ev.Injected {
		im.mu.Unlock()
		return
	}
	wasHeld := im.held[key]
	im.held[key] = ev.Down
	if !ev.Down || wasHeld {
		im.mu.Unlock()
		return
	}

	if key == im.emergencyKey && im.onEmergency != nil {
		fn := im.onEmergency
		im.mu.Unlock()
		im.loggerManager.Info("Аварийная остановка (%s)", key)
		fn()
		return
	}

	if key == "enter" {
		im.chatting = !im.chatting
		handlers := append([]func(){}, im.enterHandlers...)
		im.mu.Unlock()
		for _, fn := range handlers {
			fn()
		}
		return
	}

	if im.chatting {
		im.mu.Unlock()
		return
	}

	now := im.now()
	var fire []func()
	for _, b := range im.bindings {
		if b.Key != key || !im.modifierHeld(b.Modifier) {
			continue
		}
		if !b.limiter.AllowN(now, 1) {
			im.loggerManager.Debug("Повтор %s отброшен", b.Name)
			continue
		}
		fire = append(fire, b.handler)
	}
	im.mu.Unlock()

	for _, fn := range fire {
		fn()
	}
}
