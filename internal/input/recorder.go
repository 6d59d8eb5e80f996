package input

import (
	"fmt"
	"sync"
)

// Recorder драйвер без побочных эффектов, записывает события.
// Используется в тестах и в режиме --dry-run.
type Recorder struct {
	mu     sync.Mutex
	x, y   int
	Events []string
}

// NewRecorder создает Recorder с курсором в точке (x, y)
func NewRecorder(x, y int) *Recorder {
	return &Recorder{x: x, y: y}
}

func (r *Recorder) record(format string, args ...interface{}) {
	r.Events = append(r.Events, fmt.Sprintf(format, args...))
}

func (r *Recorder) CursorPos() (int, int, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.x, r.y, nil
}

func (r *Recorder) SetCursorPos(x, y int) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.x, r.y = x, y
	r.record("move:%d,%d", x, y)
	return nil
}

func (r *Recorder) MouseDown(b MouseButton) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.record("mouse_down:%s", b)
	return nil
}

func (r *Recorder) MouseUp(b MouseButton) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.record("mouse_up:%s", b)
	return nil
}

func (r *Recorder) KeyDown(key string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.record("key_down:%s", key)
	return nil
}

func (r *Recorder) KeyUp(key string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.record("key_up:%s", key)
	return nil
}

// Snapshot копия событий
func (r *Recorder) Snapshot() []string {
	r.mu.Lock()
	defer r.mu.Unlock()
	return append([]string(nil), r.Events...)
}

// Count сколько раз встретилось событие
func (r *Recorder) Count(event string) int {
	n := 0
	for _, e := range r.Snapshot() {
		if e == event {
			n++
		}
	}
	return n
}

// Without убирает движения курсора из списка событий
func (r *Recorder) Without(prefix string) []string {
	var out []string
	for _, e := range r.Snapshot() {
		if len(e) >= len(prefix) && e[:len(prefix)] == prefix {
			continue
		}
		out = append(out, e)
	}
	return out
}
