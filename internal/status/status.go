// Package status разносит обновления состояния функций наблюдателям:
// журналу, уведомлениям рабочего стола, консоли.
package status

import (
	"errors"
	"sync"
	"time"
)

// ErrClosed публикация после закрытия шины
var ErrClosed = errors.New("status bus closed")

type Level int

const (
	Info Level = iota
	// Done функция завершила работу (уведомление пользователю)
	Done
	// Alert аварийная остановка и ошибки
	Alert
)

// Update одно сообщение о состоянии функции
type Update struct {
	Feature string
	Text    string
	Level   Level
	Time    time.Time
}

// Bus неблокирующая рассылка; медленный подписчик теряет сообщения
type Bus struct {
	mu      sync.Mutex
	subs    []chan Update
	closed  bool
	dropped int
}

func NewBus() *Bus {
	return &Bus{}
}

// Subscribe возвращает канал с буфером size
func (b *Bus) Subscribe(size int) <-chan Update {
	ch := make(chan Update, size)
	b.mu.Lock()
	defer b.mu.Unlock()
	if b.closed {
		close(ch)
		return ch
	}
	b.subs = append(b.subs, ch)
	return ch
}

// Publish отправляет обновление всем подписчикам не блокируясь
func (b *Bus) Publish(feature, text string, level Level) error {
	u := Update{Feature: feature, Text: text, Level: level, Time: time.Now()}
	b.mu.Lock()
	defer b.mu.Unlock()
	if b.closed {
		return ErrClosed
	}
	for _, ch := range b.subs {
		select {
		case ch <- u:
		default:
			b.dropped++
		}
	}
	return nil
}

// Dropped сколько сообщений потеряно из-за переполненных подписчиков
func (b *Bus) Dropped() int {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.dropped
}

// Close закрывает все каналы подписчиков
func (b *Bus) Close() {
	b.mu.Lock()
	defer b.mu.Unlock()
	if b.closed {
		return
	}
	b.closed = true
	for _, ch := range b.subs {
		close(ch)
	}
	b.subs = nil
}
