// Package app собирает функции в одно состояние приложения: горячие
// клавиши включают и выключают задачи supervisor, конфиг применяется
// целиком через ApplyConfig.
package app

import (
	"context"
	"errors"
	"fmt"
	"sort"
	"strings"
	"sync"
	"time"

	"wonryeol/internal/click_manager"
	"wonryeol/internal/config"
	imgpkg "wonryeol/internal/image"
	"wonryeol/internal/input"
	"wonryeol/internal/interrupt"
	"wonryeol/internal/logger"
	"wonryeol/internal/screenshot"
	"wonryeol/internal/scripts"
	"wonryeol/internal/scripts/belial"
	"wonryeol/internal/scripts/consume"
	"wonryeol/internal/scripts/discard"
	"wonryeol/internal/scripts/inventory"
	"wonryeol/internal/scripts/sell"
	"wonryeol/internal/scripts/skill_auto"
	"wonryeol/internal/status"
	"wonryeol/internal/supervisor"
)

// EmergencyFeature имя в статусах аварийной остановки
const EmergencyFeature = "emergency"

// ErrUnknownFeature нет функции с таким именем
var ErrUnknownFeature = errors.New("unknown feature")

// PresetFeature имя задачи пресета умений i (с нуля)
func PresetFeature(i int) string {
	return fmt.Sprintf("skill_auto:%d", i+1)
}

// feature одна включаемая функция: привязка и сборка задачи
type feature struct {
	binding interrupt.Binding
	build   func() (supervisor.Task, *scripts.Pause)
}

// App состояние приложения
type App struct {
	controller *input.Controller
	capturer   screenshot.Capturer
	hotkeys    *interrupt.InterruptManager
	bus        *status.Bus
	super      *supervisor.Supervisor
	logger     *logger.LoggerManager

	// bindMu сериализует ApplyConfig целиком: замена функций и
	// перерегистрация горячих клавиш не перемежаются
	bindMu sync.Mutex

	mu         sync.Mutex
	cfg        *config.Config
	cooldown   *click_manager.Cooldown
	features   map[string]feature
	order      []string
	schedulers []*skill_auto.Scheduler
	armed      map[string]bool
	pauses     map[string]*scripts.Pause
	started    map[string]time.Time
}

// New создает приложение; задачи отменяются вместе с ctx
func New(ctx context.Context, controller *input.Controller, capturer screenshot.Capturer, hotkeys *interrupt.InterruptManager, bus *status.Bus, loggerManager *logger.LoggerManager) *App {
	a := &App{
		controller: controller,
		capturer:   capturer,
		hotkeys:    hotkeys,
		bus:        bus,
		super:      supervisor.New(ctx, loggerManager.Component("supervisor")),
		logger:     loggerManager,
		features:   make(map[string]feature),
		armed:      make(map[string]bool),
		pauses:     make(map[string]*scripts.Pause),
		started:    make(map[string]time.Time),
	}
	a.super.OnExit = a.onTaskExit
	hotkeys.OnEnter(a.onEnter)
	return a
}

// Supervisor задачи приложения
func (a *App) Supervisor() *supervisor.Supervisor {
	return a.super
}

// Config текущий применённый конфиг
func (a *App) Config() *config.Config {
	a.mu.Lock()
	defer a.mu.Unlock()
	return a.cfg
}

// Features имена функций в порядке привязки
func (a *App) Features() []string {
	a.mu.Lock()
	defer a.mu.Unlock()
	return append([]string(nil), a.order...)
}

// ClickAction действие клика для найденной надписи
func ClickAction(cfg *config.Config) (input.Action, error) {
	if cfg.ClickType == "right" {
		return input.Mouse(input.Right), nil
	}
	return input.ParseAction(cfg.ClickKey)
}

// ApplyConfig пересобирает функции и перерегистрирует горячие клавиши.
// Работающие задачи доживают со старыми настройками. Конфликты привязок
// возвращаются вместе; остальные привязки применяются.
func (a *App) ApplyConfig(cfg *config.Config) error {
	clickAction, err := ClickAction(cfg)
	if err != nil {
		return fmt.Errorf("click action: %w", err)
	}
	consumeAction, err := input.ParseAction(cfg.Consume.ActionKey)
	if err != nil {
		return fmt.Errorf("consume action: %w", err)
	}
	favoriteKey, err := input.ParseAction(cfg.Inventory.FavoriteKey)
	if err != nil {
		return fmt.Errorf("favorite key: %w", err)
	}
	keepColor, err := imgpkg.ParseHex(cfg.Inventory.KeepColor)
	if err != nil {
		return fmt.Errorf("keep color: %w", err)
	}
	schedulers, err := a.buildSchedulers(cfg)
	if err != nil {
		return err
	}

	a.bindMu.Lock()
	defer a.bindMu.Unlock()

	a.mu.Lock()
	a.cfg = cfg
	a.cooldown = click_manager.NewCooldown(cfg.CooldownDistance, config.Seconds(cfg.CooldownTime))
	cooldown := a.cooldown
	a.schedulers = schedulers
	a.features = make(map[string]feature)
	a.order = a.order[:0]

	add := func(name, key, modifier string, build func() (supervisor.Task, *scripts.Pause)) {
		a.features[name] = feature{
			binding: interrupt.Binding{Name: name, Key: key, Modifier: modifier},
			build:   build,
		}
		a.order = append(a.order, name)
	}

	add(belial.Feature, cfg.TriggerKey, cfg.TriggerModifier, func() (supervisor.Task, *scripts.Pause) {
		clicker := click_manager.NewClickManager(a.controller, clickAction, config.Seconds(cfg.MoveDuration), cooldown, a.logger.Component("click"))
		params := belial.Params{
			Colors:       config.ParseColors(cfg.Colors),
			Excludes:     config.ParseColors(cfg.ExcludeColors),
			Tolerance:    cfg.Tolerance,
			ExcludeRange: cfg.ExcludeRange,
			Step:         cfg.SearchStep,
		}
		s := belial.NewScanner(params, cfg.SearchArea.Rect(), a.capturer, clicker, a.bus, a.logger.Component(belial.Feature))
		s.Verify = cfg.VerifyBeforeClick
		s.ClickDelay = config.Seconds(cfg.ClickDelay)
		return s.Run, nil
	})

	inv := cfg.Inventory
	add(inventory.Feature, inv.TriggerKey, inv.TriggerModifier, func() (supervisor.Task, *scripts.Pause) {
		opts := inventory.Options{
			KeepColor:       keepColor,
			Tolerance:       inv.Tolerance,
			Area:            inv.Area.Rect(),
			DescArea:        inv.DescArea.Rect(),
			Cols:            inv.Cols,
			Rows:            inv.Rows,
			MoveDuration:    config.Seconds(inv.MoveDuration),
			PanelDelay:      config.Seconds(inv.PanelDelay),
			SpaceDelay:      config.Seconds(inv.SpaceDelay),
			HoverDelay:      config.Seconds(inv.HoverDelay),
			TeleportDelay:   config.Seconds(inv.TeleportDelay),
			ClickDelay:      config.Seconds(inv.ClickDelay),
			FavoriteKey:     favoriteKey,
			DiscardModifier: inv.DiscardModifier,
		}
		return inventory.NewCleaner(opts, a.controller, a.capturer, a.bus, a.logger.Component(inventory.Feature)).Task, nil
	})

	add(discard.Feature, cfg.Discard.TriggerKey, cfg.Discard.TriggerModifier, func() (supervisor.Task, *scripts.Pause) {
		d := discard.NewDiscarder(inv.Area.Rect(), inv.Cols, inv.Rows, inv.DiscardModifier, config.Seconds(cfg.Discard.Delay),
			a.controller, a.bus, a.logger.Component(discard.Feature))
		return d.Task, nil
	})

	add(sell.Feature, cfg.Sell.TriggerKey, cfg.Sell.TriggerModifier, func() (supervisor.Task, *scripts.Pause) {
		return sell.NewSeller(config.Seconds(cfg.Sell.Delay), a.controller, a.bus, a.logger.Component(sell.Feature)).Task, nil
	})

	add(consume.Feature, cfg.Consume.TriggerKey, cfg.Consume.TriggerModifier, func() (supervisor.Task, *scripts.Pause) {
		c := consume.NewConsumer(consumeAction, config.Seconds(cfg.Consume.Delay), a.controller, a.bus, a.logger.Component(consume.Feature))
		return c.Task, c.Pause()
	})

	for i, preset := range cfg.SkillAuto.Presets {
		s := schedulers[i]
		add(PresetFeature(i), preset.TriggerKey, preset.TriggerModifier, func() (supervisor.Task, *scripts.Pause) {
			return s.Run, s.Pause()
		})
	}
	bindings := make([]interrupt.Binding, 0, len(a.order))
	for _, name := range a.order {
		bindings = append(bindings, a.features[name].binding)
	}
	a.mu.Unlock()

	return a.rebind(cfg.EmergencyStopKey, bindings)
}

func (a *App) buildSchedulers(cfg *config.Config) ([]*skill_auto.Scheduler, error) {
	out := make([]*skill_auto.Scheduler, 0, len(cfg.SkillAuto.Presets))
	for i, preset := range cfg.SkillAuto.Presets {
		slots := make([]skill_auto.Slot, len(preset.Slots))
		for j, s := range preset.Slots {
			slots[j] = skill_auto.Slot{
				Enabled:  s.Enabled,
				Cooldown: config.Seconds(s.Cooldown),
				Hold:     s.Hold,
			}
			if !s.Enabled && strings.TrimSpace(s.Key) == "" {
				continue
			}
			action, err := input.ParseAction(s.Key)
			if err != nil {
				return nil, fmt.Errorf("preset %q slot %d: %w", preset.Name, j+1, err)
			}
			slots[j].Action = action
		}
		name := PresetFeature(i)
		out = append(out, skill_auto.NewScheduler(name, slots, preset.HonryeongsaMode,
			a.controller, a.hotkeys, a.bus, a.logger.Component(name)))
	}
	return out, nil
}

// rebind снимает лишние привязки и ставит новые; вызывается под bindMu
func (a *App) rebind(emergencyKey string, bindings []interrupt.Binding) error {
	a.hotkeys.SetEmergency(emergencyKey, a.EmergencyStop)

	wanted := make(map[string]bool, len(bindings))
	for _, b := range bindings {
		wanted[b.Name] = true
	}
	for _, b := range a.hotkeys.Bindings() {
		if !wanted[b.Name] {
			a.hotkeys.Unbind(b.Name)
		}
	}

	var errs []error
	for _, b := range bindings {
		name := b.Name
		if err := a.hotkeys.Bind(b, func() { a.Trigger(name) }); err != nil {
			a.logger.LogError(err, "Горячая клавиша не назначена")
			errs = append(errs, err)
		}
	}
	return errors.Join(errs...)
}

// Arm взводит функцию: после этого ее горячая клавиша запускает задачу
func (a *App) Arm(name string) error {
	a.mu.Lock()
	f, ok := a.features[name]
	if !ok {
		a.mu.Unlock()
		return fmt.Errorf("%w: %s", ErrUnknownFeature, name)
	}
	a.armed[name] = true
	a.mu.Unlock()

	_ = a.bus.Publish(name, fmt.Sprintf("🔴 [%s] 키로 시작", strings.ToUpper(f.binding.Key)), status.Info)
	return nil
}

// Disarm снимает взвод и останавливает задачу
func (a *App) Disarm(name string) {
	a.mu.Lock()
	delete(a.armed, name)
	a.mu.Unlock()
	a.super.Stop(name)
	_ = a.bus.Publish(name, "⏸️ 대기 중", status.Info)
}

// Armed взведена ли функция
func (a *App) Armed(name string) bool {
	a.mu.Lock()
	defer a.mu.Unlock()
	return a.armed[name]
}

// AutoStart взводит функции, отмеченные в auto_start
func (a *App) AutoStart() error {
	cfg := a.Config()
	if cfg == nil {
		return nil
	}
	flags := map[string]bool{
		belial.Feature:    cfg.AutoStart.Belial,
		inventory.Feature: cfg.AutoStart.Inventory,
		discard.Feature:   cfg.AutoStart.Discard,
		sell.Feature:      cfg.AutoStart.Sell,
		consume.Feature:   cfg.AutoStart.Consume,
	}
	for i := range cfg.SkillAuto.Presets {
		flags[PresetFeature(i)] = cfg.AutoStart.SkillAuto
	}

	var errs []error
	for _, name := range a.Features() {
		if flags[name] {
			errs = append(errs, a.Arm(name))
		}
	}
	return errors.Join(errs...)
}

// Trigger обработчик горячей клавиши: запускает или останавливает задачу
func (a *App) Trigger(name string) {
	a.mu.Lock()
	f, ok := a.features[name]
	armed := a.armed[name]
	a.mu.Unlock()
	if !ok || !armed {
		return
	}

	if a.super.Stop(name) {
		a.logger.Info("⏹️ %s остановлен", name)
		return
	}

	task, pause := f.build()
	a.mu.Lock()
	if pause != nil {
		a.pauses[name] = pause
	}
	a.started[name] = time.Now()
	a.mu.Unlock()

	if a.super.Start(name, task) {
		a.logger.Info("▶️ %s запущен", name)
	}
}

// SetSkillSlot включает или выключает слот пресета на лету;
// выключение зажатого слота отпускает клавишу
func (a *App) SetSkillSlot(preset, slot int, enabled bool) error {
	a.mu.Lock()
	if preset < 0 || preset >= len(a.schedulers) {
		a.mu.Unlock()
		return fmt.Errorf("%w: preset %d", ErrUnknownFeature, preset+1)
	}
	s := a.schedulers[preset]
	a.mu.Unlock()
	if err := s.SetEnabled(slot, enabled); err != nil {
		return err
	}

	a.mu.Lock()
	a.cfg.SkillAuto.Presets[preset].Slots[slot].Enabled = enabled
	a.mu.Unlock()
	return nil
}

func (a *App) onTaskExit(name string, err error) {
	a.mu.Lock()
	delete(a.pauses, name)
	started, ok := a.started[name]
	delete(a.started, name)
	a.mu.Unlock()

	if ok && err == nil {
		a.logger.Debug("%s работал %s", name, status.FormatDuration(time.Since(started)))
	}
}

// onEnter Enter ставит на паузу работающие функции с паузой (чат)
func (a *App) onEnter() {
	a.mu.Lock()
	pauses := make(map[string]*scripts.Pause, len(a.pauses))
	for name, p := range a.pauses {
		pauses[name] = p
	}
	a.mu.Unlock()

	names := make([]string, 0, len(pauses))
	for name := range pauses {
		names = append(names, name)
	}
	sort.Strings(names)
	for _, name := range names {
		if !a.super.Running(name) {
			continue
		}
		if pauses[name].Toggle() {
			_ = a.bus.Publish(name, "⏸️ PAUSED (Enter로 재개)", status.Info)
		} else {
			_ = a.bus.Publish(name, "▶️ 재개", status.Info)
		}
	}
}

// EmergencyStop останавливает все работающие задачи, снимает паузы и
// отпускает зажатый ввод. Функции остаются взведенными.
func (a *App) EmergencyStop() {
	running := a.super.Names()
	a.super.StopAll()

	a.mu.Lock()
	for _, p := range a.pauses {
		p.Clear()
	}
	a.mu.Unlock()

	if err := a.controller.ReleaseAll(); err != nil {
		a.logger.LogError(err, "Не удалось отпустить клавиши")
	}
	a.hotkeys.ResetChat()

	a.logger.Info("🛑 Аварийная остановка: %s", strings.Join(running, ", "))
	if err := a.bus.Publish(EmergencyFeature, fmt.Sprintf("🛑 긴급 정지 (%d)", len(running)), status.Alert); err != nil {
		a.logger.Debug("Статус аварийной остановки не отправлен: %v", err)
	}
}

// Shutdown останавливает все и снимает привязки
func (a *App) Shutdown() {
	a.super.StopAll()
	if err := a.controller.ReleaseAll(); err != nil {
		a.logger.LogError(err, "Не удалось отпустить клавиши")
	}
	a.bindMu.Lock()
	defer a.bindMu.Unlock()
	for _, b := range a.hotkeys.Bindings() {
		a.hotkeys.Unbind(b.Name)
	}
}
