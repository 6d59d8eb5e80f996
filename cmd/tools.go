package main

import (
	"errors"
	"fmt"
	"image"
	"io/fs"
	"os"
	"strconv"

	"github.com/spf13/cobra"
	"golang.design/x/clipboard"

	"wonryeol/internal/config"
	"wonryeol/internal/input/robot"
	"wonryeol/internal/screenshot"
	"wonryeol/internal/scripts/inventory"
	"wonryeol/internal/status"
)

func gridCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "grid",
		Short: "Показать центры ячеек инвентаря в порядке обхода",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, _, err := config.Load(configPath)
			if err != nil {
				fmt.Fprintf(cmd.ErrOrStderr(), "⚠️ %v\n", err)
			}
			inv := cfg.Inventory
			out := cmd.OutOrStdout()
			for i, s := range inventory.GetInventoryPositions(inv.Area.Rect(), inv.Cols, inv.Rows) {
				fmt.Fprintf(out, "%3d  row=%d col=%2d  (%d, %d)\n", i, s.Row, s.Col, s.X, s.Y)
			}
			return nil
		},
	}
}

func checkConfigCmd() *cobra.Command {
	var write bool
	cmd := &cobra.Command{
		Use:   "check-config",
		Short: "Проверить и нормализовать файл настроек",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, warnings, err := loadForEdit()
			if err != nil {
				return err
			}
			out := cmd.OutOrStdout()
			for _, w := range warnings {
				fmt.Fprintf(out, "⚠️ %s\n", w)
			}
			fmt.Fprintf(out, "version:   %d\n", cfg.Version)
			fmt.Fprintf(out, "colors:    %s (exclude %s), tolerance %d\n",
				status.FormatCount(len(cfg.Colors)), status.FormatCount(len(cfg.ExcludeColors)), cfg.Tolerance)
			fmt.Fprintf(out, "area:      %v step %d\n", cfg.SearchArea.Rect(), cfg.SearchStep)
			fmt.Fprintf(out, "cooldown:  %.0fpx / %s\n", cfg.CooldownDistance, status.FormatDuration(config.Seconds(cfg.CooldownTime)))
			fmt.Fprintf(out, "inventory: %dx%d, %s slots\n", cfg.Inventory.Cols, cfg.Inventory.Rows,
				status.FormatCount(cfg.Inventory.Cols*cfg.Inventory.Rows))
			for _, p := range cfg.SkillAuto.Presets {
				enabled := 0
				for _, s := range p.Slots {
					if s.Enabled {
						enabled++
					}
				}
				fmt.Fprintf(out, "preset:    %s [%s] %d/%d slots\n", p.Name, p.TriggerKey, enabled, len(p.Slots))
			}

			if write {
				if err := config.Save(configPath, cfg); err != nil {
					return err
				}
				fmt.Fprintf(out, "✅ %s saved\n", configPath)
			}
			return nil
		},
	}
	cmd.Flags().BoolVar(&write, "write", false, "перезаписать файл нормализованным конфигом")
	return cmd
}

func colorsCmd() *cobra.Command {
	var exclude bool
	cmd := &cobra.Command{
		Use:   "colors",
		Short: "Управление списками цветов",
	}
	cmd.PersistentFlags().BoolVar(&exclude, "exclude", false, "работать со списком исключений")

	listOf := func(cfg *config.Config) []config.ColorEntry {
		if exclude {
			return cfg.ExcludeColors
		}
		return cfg.Colors
	}

	list := &cobra.Command{
		Use:   "list",
		Short: "Показать цвета",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, _, err := loadForEdit()
			if err != nil {
				return err
			}
			for i, c := range listOf(cfg) {
				fmt.Fprintf(cmd.OutOrStdout(), "%2d  %s  %s\n", i, c.Hex, c.Label)
			}
			return nil
		},
	}

	add := &cobra.Command{
		Use:   "add <#RRGGBB> [label]",
		Short: "Добавить цвет",
		Args:  cobra.RangeArgs(1, 2),
		RunE: func(cmd *cobra.Command, args []string) error {
			label := ""
			if len(args) == 2 {
				label = args[1]
			}
			return editColors(func(cfg *config.Config) error {
				return cfg.AddColor(args[0], label, exclude)
			})
		},
	}

	remove := &cobra.Command{
		Use:   "remove <index>",
		Short: "Удалить цвет по номеру",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			idx, err := strconv.Atoi(args[0])
			if err != nil {
				return fmt.Errorf("bad index %q: %w", args[0], err)
			}
			return editColors(func(cfg *config.Config) error {
				return cfg.RemoveColor(idx, exclude)
			})
		},
	}

	cmd.AddCommand(list, add, remove)
	return cmd
}

// loadForEdit как config.Load, но отсутствующий файл не ошибка
func loadForEdit() (*config.Config, []string, error) {
	if _, err := os.Stat(configPath); errors.Is(err, fs.ErrNotExist) {
		def := config.Default()
		return &def, nil, nil
	}
	return config.Load(configPath)
}

// editColors меняет списки цветов и сохраняет файл целиком
func editColors(edit func(cfg *config.Config) error) error {
	cfg, _, err := loadForEdit()
	if err != nil {
		return err
	}
	if err := edit(cfg); err != nil {
		return err
	}
	return config.Save(configPath, cfg)
}

func pickCmd() *cobra.Command {
	var add, exclude, copyHex bool
	cmd := &cobra.Command{
		Use:   "pick",
		Short: "Цвет пикселя под курсором",
		RunE: func(cmd *cobra.Command, args []string) error {
			x, y, err := robot.New().CursorPos()
			if err != nil {
				return err
			}
			c, err := screenshot.PixelAt(screenshot.NewScreenshotManager(), x, y)
			if err != nil {
				return fmt.Errorf("pixel at (%d, %d): %w", x, y, err)
			}
			hex := c.Hex()
			fmt.Fprintf(cmd.OutOrStdout(), "(%d, %d) %s\n", x, y, hex)
			if copyHex {
				if err := clipboard.Init(); err != nil {
					fmt.Fprintf(cmd.ErrOrStderr(), "⚠️ clipboard: %v\n", err)
				} else {
					clipboard.Write(clipboard.FmtText, []byte(hex))
				}
			}
			if !add {
				return nil
			}
			return editColors(func(cfg *config.Config) error {
				return cfg.AddColor(hex, "", exclude)
			})
		},
	}
	cmd.Flags().BoolVar(&add, "add", false, "добавить цвет в список")
	cmd.Flags().BoolVar(&exclude, "exclude", false, "добавить в исключения")
	cmd.Flags().BoolVar(&copyHex, "copy", false, "скопировать цвет в буфер обмена")
	return cmd
}

func captureCmd() *cobra.Command {
	var areaName string
	cmd := &cobra.Command{
		Use:   "capture <file.png>",
		Short: "Сохранить снимок области для отладки",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, _, err := loadForEdit()
			if err != nil {
				return err
			}
			var r image.Rectangle
			switch areaName {
			case "search":
				r = cfg.SearchArea.Rect()
			case "inventory":
				r = cfg.Inventory.Area.Rect()
			case "desc":
				r = cfg.Inventory.DescArea.Rect()
			case "screen":
				r = screenshot.DisplayBounds()
			default:
				return fmt.Errorf("unknown area %q", areaName)
			}
			if err := screenshot.SaveScreenshot(screenshot.NewScreenshotManager(), r, args[0]); err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "📸 %v -> %s\n", r, args[0])
			return nil
		},
	}
	cmd.Flags().StringVar(&areaName, "area", "search", "search|inventory|desc|screen")
	return cmd
}
