// Package supervisor запускает именованные фоновые задачи с отменой через
// context и гарантирует их завершение при остановке.
package supervisor

import (
	"context"
	"errors"
	"sort"
	"sync"

	"github.com/sourcegraph/conc/panics"

	"wonryeol/internal/logger"
)

// Task тело задачи; должно вернуться после отмены ctx
type Task func(ctx context.Context) error

type task struct {
	cancel context.CancelFunc
	done   chan struct{}
}

// Supervisor набор именованных задач
type Supervisor struct {
	mu     sync.Mutex
	ctx    context.Context
	tasks  map[string]*task
	logger *logger.LoggerManager

	// OnExit вызывается после завершения задачи (в том числе после паники)
	OnExit func(name string, err error)
}

// New создает Supervisor; отмена ctx останавливает все задачи
func New(ctx context.Context, loggerManager *logger.LoggerManager) *Supervisor {
	return &Supervisor{
		ctx:    ctx,
		tasks:  make(map[string]*task),
		logger: loggerManager,
	}
}

// Start запускает задачу, если задача с таким именем еще не работает
func (s *Supervisor) Start(name string, fn Task) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.tasks[name]; ok {
		return false
	}

	ctx, cancel := context.WithCancel(s.ctx)
	t := &task{cancel: cancel, done: make(chan struct{})}
	s.tasks[name] = t

	go s.run(ctx, name, t, fn)
	return true
}

func (s *Supervisor) run(ctx context.Context, name string, t *task, fn Task) {
	defer close(t.done)
	defer t.cancel()

	var err error
	var pc panics.Catcher
	pc.Try(func() { err = fn(ctx) })
	if r := pc.Recovered(); r != nil {
		err = r.AsError()
		s.logger.Error("Задача %s упала: %v\n%s", name, r.Value, r.Stack)
	} else if err != nil && !errors.Is(err, context.Canceled) {
		s.logger.Error("Задача %s завершилась с ошибкой: %v", name, err)
	}

	s.mu.Lock()
	if s.tasks[name] == t {
		delete(s.tasks, name)
	}
	onExit := s.OnExit
	s.mu.Unlock()

	if onExit != nil {
		onExit(name, err)
	}
}

// Stop отменяет задачу и ждет ее завершения
func (s *Supervisor) Stop(name string) bool {
	s.mu.Lock()
	t, ok := s.tasks[name]
	s.mu.Unlock()
	if !ok {
		return false
	}
	t.cancel()
	<-t.done
	return true
}

// Toggle запускает задачу или останавливает работающую; true если запущена
func (s *Supervisor) Toggle(name string, fn Task) bool {
	if s.Stop(name) {
		return false
	}
	return s.Start(name, fn)
}

// Running работает ли задача
func (s *Supervisor) Running(name string) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	_, ok := s.tasks[name]
	return ok
}

// Names имена работающих задач
func (s *Supervisor) Names() []string {
	s.mu.Lock()
	defer s.mu.Unlock()
	names := make([]string, 0, len(s.tasks))
	for name := range s.tasks {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// StopAll отменяет все задачи и дожидается каждой
func (s *Supervisor) StopAll() {
	s.mu.Lock()
	tasks := make([]*task, 0, len(s.tasks))
	for _, t := range s.tasks {
		tasks = append(tasks, t)
	}
	s.mu.Unlock()

	for _, t := range tasks {
		t.cancel()
	}
	for _, t := range tasks {
		<-t.done
	}
}
