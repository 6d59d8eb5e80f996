package main

import (
	"errors"
	"fmt"
	"log"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"
	"github.com/sqweek/dialog"

	"wonryeol/internal/app"
	"wonryeol/internal/arduino"
	"wonryeol/internal/config"
	"wonryeol/internal/input"
	"wonryeol/internal/input/robot"
	"wonryeol/internal/interrupt"
	"wonryeol/internal/logger"
	"wonryeol/internal/screenshot"
	"wonryeol/internal/status"
)

const appTitle = "원렬"

var (
	configPath string
	dryRun     bool
	quiet      bool
	armList    []string
)

func main() {
	root := &cobra.Command{
		Use:           "wonryeol",
		Short:         "Автоматизация кликов по цветам пикселей",
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE:          runApp,
	}
	root.PersistentFlags().StringVarP(&configPath, "config", "c", config.DefaultPath, "файл настроек")

	run := &cobra.Command{
		Use:   "run",
		Short: "Запустить горячие клавиши и фоновые функции",
		RunE:  runApp,
	}
	for _, c := range []*cobra.Command{root, run} {
		c.Flags().BoolVar(&dryRun, "dry-run", false, "не посылать ввод, только журнал")
		c.Flags().BoolVarP(&quiet, "quiet", "q", false, "без диалогов и уведомлений")
		c.Flags().StringSliceVar(&armList, "arm", nil, "взвести функции при запуске (belial,inventory,...)")
	}

	root.AddCommand(run, gridCmd(), checkConfigCmd(), colorsCmd(), pickCmd(), captureCmd())

	if err := root.Execute(); err != nil {
		log.Fatal(err)
	}
}

// openDriver выбирает источник ввода по input_backend
func openDriver(cfg *config.Config, loggerManager *logger.LoggerManager) (input.Driver, func(), error) {
	if dryRun {
		loggerManager.Info("🧪 Режим без ввода")
		return input.NewRecorder(0, 0), func() {}, nil
	}

	switch cfg.InputBackend {
	case "arduino":
		portObj, err := arduino.InitializePort(cfg.Arduino.Port, cfg.Arduino.BaudRate)
		if err != nil {
			return nil, nil, fmt.Errorf("open arduino port %s: %w", cfg.Arduino.Port, err)
		}
		loggerManager.Info("🔌 Arduino на %s (%d бод)", cfg.Arduino.Port, cfg.Arduino.BaudRate)
		return arduino.NewDriver(portObj), func() {
			if err := portObj.Close(); err != nil {
				loggerManager.LogError(err, "Error closing port")
			}
		}, nil
	case "robotgo", "":
		return robot.New(), func() {}, nil
	}
	return nil, nil, fmt.Errorf("unknown input backend %q", cfg.InputBackend)
}

func warn(text string) {
	if quiet {
		return
	}
	dialog.Message("%s", text).Title(appTitle).Info()
}

func runApp(cmd *cobra.Command, args []string) error {
	cfg, warnings, loadErr := config.Load(configPath)

	loggerManager, err := logger.NewLoggerManager(cfg.LogFilePath)
	if err != nil {
		return fmt.Errorf("init logger: %w", err)
	}
	defer loggerManager.Close()

	loggerManager.Info("🚀 Запуск %s", appTitle)
	if loadErr != nil {
		loggerManager.LogError(loadErr, "Ошибка загрузки конфигурации, используются значения по умолчанию")
		warn(fmt.Sprintf("설정 파일을 불러오지 못해 기본값을 사용합니다:\n%v", loadErr))
	}
	for _, w := range warnings {
		loggerManager.Info("⚠️ %s", w)
	}

	drv, closeDriver, err := openDriver(cfg, loggerManager)
	if err != nil {
		return err
	}
	defer closeDriver()

	ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	bus := status.NewBus()
	defer bus.Close()
	go status.LogSink(bus.Subscribe(256), loggerManager.Component("status"))
	if !quiet {
		go status.NewDesktopNotifier(appTitle).Run(bus.Subscribe(64), loggerManager.Component("notify"))
	}

	controller := input.NewController(drv)
	hotkeys := interrupt.NewInterruptManager(loggerManager.Component("hotkeys"))
	a := app.New(ctx, controller, screenshot.NewScreenshotManager(), hotkeys, bus, loggerManager)
	defer a.Shutdown()

	if err := a.ApplyConfig(cfg); err != nil {
		loggerManager.LogError(err, "Ошибка применения конфигурации")
		if !errors.Is(err, interrupt.ErrHotkeyConflict) {
			def := config.Default()
			if err := a.ApplyConfig(&def); err != nil {
				return fmt.Errorf("apply default config: %w", err)
			}
		}
	}

	for _, name := range armList {
		if err := a.Arm(name); err != nil {
			loggerManager.LogError(err, "Не удалось взвести функцию")
		}
	}
	if err := a.AutoStart(); err != nil {
		loggerManager.LogError(err, "Ошибка автозапуска")
	}

	config.Watch(configPath, func(next *config.Config, warnings []string, err error) {
		if err != nil {
			loggerManager.LogError(err, "Конфигурация не перечитана")
			return
		}
		for _, w := range warnings {
			loggerManager.Info("⚠️ %s", w)
		}
		if err := a.ApplyConfig(next); err != nil {
			loggerManager.LogError(err, "Ошибка применения конфигурации")
			return
		}
		loggerManager.Info("🔄 Конфигурация перечитана")
	})

	go func() {
		if err := hotkeys.StartMonitoring(ctx); err != nil && !errors.Is(err, ctx.Err()) {
			loggerManager.LogError(err, "Хуки клавиатуры не запущены")
			stop()
		}
	}()

	loggerManager.Info("⏸️ Готово. Функции: %v, аварийная остановка: %s", a.Features(), cfg.EmergencyStopKey)
	<-ctx.Done()
	loggerManager.Info("👋 Завершение работы")
	return nil
}
