package config

import (
	"errors"
	"fmt"
	"strings"

	"github.com/mitchellh/mapstructure"
	"github.com/spf13/viper"

	imgpkg "wonryeol/internal/image"
)

// ErrUnsupportedVersion файл записан более новой версией программы
var ErrUnsupportedVersion = errors.New("unsupported config version")

// Load читает файл настроек. При любой ошибке возвращается пригодный
// конфиг (по умолчанию), чтобы вызывающий мог продолжить работу.
// Второе значение содержит предупреждения нормализации.
func Load(path string) (*Config, []string, error) {
	v := viper.New()
	v.SetConfigFile(path)
	v.SetConfigType("json")

	if err := v.ReadInConfig(); err != nil {
		cfg := Default()
		return &cfg, nil, fmt.Errorf("reading config %s: %w", path, err)
	}

	cfg, warnings, err := Decode(v.AllSettings())
	if err != nil {
		def := Default()
		return &def, nil, fmt.Errorf("decoding config %s: %w", path, err)
	}
	return cfg, warnings, nil
}

// Decode мигрирует сырое дерево настроек и раскладывает его поверх Default()
func Decode(raw map[string]interface{}) (*Config, []string, error) {
	if err := migrate(raw); err != nil {
		return nil, nil, err
	}

	cfg := Default()
	decoder, err := mapstructure.NewDecoder(&mapstructure.DecoderConfig{
		DecodeHook:       mapstructure.ComposeDecodeHookFunc(colorEntryHook),
		WeaklyTypedInput: true,
		ZeroFields:       true,
		Result:           &cfg,
	})
	if err != nil {
		return nil, nil, err
	}
	if err := decoder.Decode(raw); err != nil {
		return nil, nil, err
	}

	warnings := cfg.Normalize()
	return &cfg, warnings, nil
}

func versionOf(raw map[string]interface{}) (int, error) {
	switch v := raw["version"].(type) {
	case nil:
		return 0, nil
	case int:
		return v, nil
	case int64:
		return int(v), nil
	case float64:
		return int(v), nil
	}
	return 0, fmt.Errorf("version: unexpected type %T", raw["version"])
}

// migrate поднимает файлы старых версий до CurrentVersion
func migrate(raw map[string]interface{}) error {
	version, err := versionOf(raw)
	if err != nil {
		return err
	}
	if version > CurrentVersion {
		return fmt.Errorf("%w: %d (supported %d)", ErrUnsupportedVersion, version, CurrentVersion)
	}
	if version == CurrentVersion {
		return nil
	}

	// один пресет на верхнем уровне skill_auto -> presets[0]
	if sa, ok := raw["skill_auto"].(map[string]interface{}); ok {
		if _, has := sa["presets"]; !has {
			if _, legacy := sa["slots"]; legacy {
				preset := map[string]interface{}{"name": "프리셋 1"}
				for _, k := range []string{"trigger_key", "trigger_modifier", "honryeongsa_mode", "slots"} {
					if val, ok := sa[k]; ok {
						preset[k] = val
						delete(sa, k)
					}
				}
				sa["presets"] = []interface{}{preset}
			}
		}
	}

	if c2, ok := raw["consume2"]; ok {
		if _, has := raw["consume"]; !has {
			raw["consume"] = c2
		}
		delete(raw, "consume2")
	}

	raw["version"] = CurrentVersion
	return nil
}

// NormalizeModifier приводит имя модификатора к none/ctrl/shift/alt
func NormalizeModifier(m string) string {
	m = strings.ToLower(strings.TrimSpace(m))
	switch m {
	case "", "없음", "none":
		return "none"
	case "control":
		return "ctrl"
	}
	return m
}

func clamp(v, lo, hi int) int {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}

func normalizeColors(list []ColorEntry, name string, warnings *[]string) []ColorEntry {
	out := make([]ColorEntry, 0, len(list))
	for _, e := range list {
		rgb, err := imgpkg.ParseHex(strings.TrimSpace(e.Hex))
		if err != nil {
			*warnings = append(*warnings, fmt.Sprintf("%s: dropped %q: %v", name, e.Hex, err))
			continue
		}
		if e.Label == "" {
			e.Label = rgb.Hex()
		}
		e.Hex = rgb.Hex()
		out = append(out, e)
	}
	return out
}

// Normalize приводит значения к допустимым диапазонам и возвращает
// список исправлений
func (c *Config) Normalize() []string {
	var warnings []string
	def := Default()

	c.Version = CurrentVersion
	c.InputBackend = strings.ToLower(strings.TrimSpace(c.InputBackend))
	if c.InputBackend != "robotgo" && c.InputBackend != "arduino" {
		warnings = append(warnings, fmt.Sprintf("input_backend %q unknown, using robotgo", c.InputBackend))
		c.InputBackend = "robotgo"
	}
	if c.EmergencyStopKey == "" {
		c.EmergencyStopKey = def.EmergencyStopKey
	}

	c.Colors = normalizeColors(c.Colors, "colors", &warnings)
	c.ExcludeColors = normalizeColors(c.ExcludeColors, "exclude_colors", &warnings)
	c.Tolerance = clamp(c.Tolerance, 0, 255)
	if c.ExcludeRange < 0 {
		c.ExcludeRange = 0
	}
	if c.SearchStep < 1 {
		c.SearchStep = 1
	}
	c.TriggerModifier = NormalizeModifier(c.TriggerModifier)
	if c.ClickType != "right" && c.ClickType != "fkey" {
		warnings = append(warnings, fmt.Sprintf("click_type %q unknown, using right", c.ClickType))
		c.ClickType = "right"
	}

	inv := &c.Inventory
	if _, err := imgpkg.ParseHex(inv.KeepColor); err != nil {
		warnings = append(warnings, fmt.Sprintf("inventory.keep_color %q invalid, using %s", inv.KeepColor, def.Inventory.KeepColor))
		inv.KeepColor = def.Inventory.KeepColor
	}
	inv.Tolerance = clamp(inv.Tolerance, 0, 255)
	if inv.Cols < 1 {
		inv.Cols = 1
	}
	if inv.Rows < 1 {
		inv.Rows = 1
	}
	inv.TriggerModifier = NormalizeModifier(inv.TriggerModifier)
	inv.DiscardModifier = NormalizeModifier(inv.DiscardModifier)
	if inv.FavoriteKey == "" {
		inv.FavoriteKey = def.Inventory.FavoriteKey
	}

	c.Discard.TriggerModifier = NormalizeModifier(c.Discard.TriggerModifier)
	c.Sell.TriggerModifier = NormalizeModifier(c.Sell.TriggerModifier)
	c.Consume.TriggerModifier = NormalizeModifier(c.Consume.TriggerModifier)
	if c.Consume.ActionKey == "" {
		c.Consume.ActionKey = def.Consume.ActionKey
	}

	presets := c.SkillAuto.Presets
	if len(presets) > PresetCount {
		presets = presets[:PresetCount]
	}
	for i := len(presets); i < PresetCount; i++ {
		presets = append(presets, defaultPreset(i))
	}
	for i := range presets {
		p := &presets[i]
		if p.Name == "" {
			p.Name = defaultPreset(i).Name
		}
		p.TriggerModifier = NormalizeModifier(p.TriggerModifier)
		slots := p.Slots
		if len(slots) > SlotCount {
			slots = slots[:SlotCount]
		}
		defSlots := defaultSlots()
		for j := len(slots); j < SlotCount; j++ {
			slots = append(slots, defSlots[j])
		}
		for j := range slots {
			if slots[j].Cooldown < 0 {
				slots[j].Cooldown = 0
			}
		}
		p.Slots = slots
	}
	c.SkillAuto.Presets = presets

	return warnings
}
