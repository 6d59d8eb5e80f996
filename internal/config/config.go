package config

import (
	"fmt"
	"image"
	"strconv"
	"time"
)

// CurrentVersion версия схемы файла настроек
const CurrentVersion = 2

const (
	PresetCount = 5
	SlotCount   = 9
)

// DefaultPath имя файла настроек рядом с бинарником
const DefaultPath = "color_clicker_config.json"

// Area прямоугольник на экране (x2, y2 не включаются)
type Area struct {
	X1 int `mapstructure:"x1" json:"x1"`
	Y1 int `mapstructure:"y1" json:"y1"`
	X2 int `mapstructure:"x2" json:"x2"`
	Y2 int `mapstructure:"y2" json:"y2"`
}

// Rect переводит область в image.Rectangle как есть, без перестановки
// углов: x1>=x2 или y1>=y2 дает пустой прямоугольник.
func (a Area) Rect() image.Rectangle {
	return image.Rectangle{Min: image.Pt(a.X1, a.Y1), Max: image.Pt(a.X2, a.Y2)}
}

type Arduino struct {
	Port     string `mapstructure:"port" json:"port"`
	BaudRate int    `mapstructure:"baud_rate" json:"baud_rate"`
}

// Inventory настройки очистки инвентаря
type Inventory struct {
	KeepColor       string  `mapstructure:"keep_color" json:"keep_color"`
	Tolerance       int     `mapstructure:"tolerance" json:"tolerance"`
	Area            Area    `mapstructure:"area" json:"area"`
	DescArea        Area    `mapstructure:"desc_area" json:"desc_area"`
	Cols            int     `mapstructure:"cols" json:"cols"`
	Rows            int     `mapstructure:"rows" json:"rows"`
	TriggerKey      string  `mapstructure:"trigger_key" json:"trigger_key"`
	TriggerModifier string  `mapstructure:"trigger_modifier" json:"trigger_modifier"`
	MoveDuration    float64 `mapstructure:"move_duration" json:"move_duration"`
	PanelDelay      float64 `mapstructure:"panel_delay" json:"panel_delay"`
	SpaceDelay      float64 `mapstructure:"space_delay" json:"space_delay"`
	ClickDelay      float64 `mapstructure:"click_delay" json:"click_delay"`
	HoverDelay      float64 `mapstructure:"hover_delay" json:"hover_delay"`
	TeleportDelay   float64 `mapstructure:"teleport_delay" json:"teleport_delay"`
	FavoriteKey     string  `mapstructure:"favorite_key" json:"favorite_key"`
	DiscardModifier string  `mapstructure:"discard_modifier" json:"discard_modifier"`
}

// Loop простая повторяющаяся функция с горячей клавишей (discard, sell)
type Loop struct {
	TriggerKey      string  `mapstructure:"trigger_key" json:"trigger_key"`
	TriggerModifier string  `mapstructure:"trigger_modifier" json:"trigger_modifier"`
	Delay           float64 `mapstructure:"delay" json:"delay"`
}

type Consume struct {
	TriggerKey      string  `mapstructure:"trigger_key" json:"trigger_key"`
	TriggerModifier string  `mapstructure:"trigger_modifier" json:"trigger_modifier"`
	Delay           float64 `mapstructure:"delay" json:"delay"`
	ActionKey       string  `mapstructure:"action_key" json:"action_key"`
}

// SkillSlot одна клавиша пресета
type SkillSlot struct {
	Enabled  bool    `mapstructure:"enabled" json:"enabled"`
	Key      string  `mapstructure:"key" json:"key"`
	Cooldown float64 `mapstructure:"cooldown" json:"cooldown"`
	Hold     bool    `mapstructure:"hold" json:"hold"`
}

type SkillPreset struct {
	Name            string      `mapstructure:"name" json:"name"`
	TriggerKey      string      `mapstructure:"trigger_key" json:"trigger_key"`
	TriggerModifier string      `mapstructure:"trigger_modifier" json:"trigger_modifier"`
	HonryeongsaMode bool        `mapstructure:"honryeongsa_mode" json:"honryeongsa_mode"`
	Slots           []SkillSlot `mapstructure:"slots" json:"slots"`
}

type SkillAuto struct {
	Presets []SkillPreset `mapstructure:"presets" json:"presets"`
}

type Overlay struct {
	Enabled bool    `mapstructure:"enabled" json:"enabled"`
	X       int     `mapstructure:"x" json:"x"`
	Y       int     `mapstructure:"y" json:"y"`
	Alpha   float64 `mapstructure:"alpha" json:"alpha"`
}

// AutoStart какие функции взводятся сразу при запуске
type AutoStart struct {
	Belial    bool `mapstructure:"belial" json:"belial"`
	Inventory bool `mapstructure:"inventory" json:"inventory"`
	Discard   bool `mapstructure:"discard" json:"discard"`
	Sell      bool `mapstructure:"sell" json:"sell"`
	Consume   bool `mapstructure:"consume" json:"consume"`
	SkillAuto bool `mapstructure:"skill_auto" json:"skill_auto"`
}

// Config основная структура конфигурации
type Config struct {
	Version          int     `mapstructure:"version" json:"version"`
	LogFilePath      string  `mapstructure:"log_file_path" json:"log_file_path"`
	InputBackend     string  `mapstructure:"input_backend" json:"input_backend"`
	Arduino          Arduino `mapstructure:"arduino" json:"arduino"`
	EmergencyStopKey string  `mapstructure:"emergency_stop_key" json:"emergency_stop_key"`

	Colors            []ColorEntry `mapstructure:"colors" json:"colors"`
	ExcludeColors     []ColorEntry `mapstructure:"exclude_colors" json:"exclude_colors"`
	Tolerance         int          `mapstructure:"tolerance" json:"tolerance"`
	ExcludeRange      int          `mapstructure:"exclude_range" json:"exclude_range"`
	TriggerKey        string       `mapstructure:"trigger_key" json:"trigger_key"`
	TriggerModifier   string       `mapstructure:"trigger_modifier" json:"trigger_modifier"`
	ClickType         string       `mapstructure:"click_type" json:"click_type"`
	ClickKey          string       `mapstructure:"click_key" json:"click_key"`
	ClickDelay        float64      `mapstructure:"click_delay" json:"click_delay"`
	MoveDuration      float64      `mapstructure:"move_duration" json:"move_duration"`
	VerifyBeforeClick bool         `mapstructure:"verify_before_click" json:"verify_before_click"`
	SearchArea        Area         `mapstructure:"search_area" json:"search_area"`
	SearchStep        int          `mapstructure:"search_step" json:"search_step"`
	CooldownDistance  float64      `mapstructure:"cooldown_distance" json:"cooldown_distance"`
	CooldownTime      float64      `mapstructure:"cooldown_time" json:"cooldown_time"`

	Inventory Inventory `mapstructure:"inventory" json:"inventory"`
	Discard   Loop      `mapstructure:"discard" json:"discard"`
	Sell      Loop      `mapstructure:"sell" json:"sell"`
	Consume   Consume   `mapstructure:"consume" json:"consume"`
	SkillAuto SkillAuto `mapstructure:"skill_auto" json:"skill_auto"`
	Overlay   Overlay   `mapstructure:"overlay" json:"overlay"`
	AutoStart AutoStart `mapstructure:"auto_start" json:"auto_start"`
}

// Seconds переводит секунды из файла в time.Duration
func Seconds(s float64) time.Duration {
	return time.Duration(s * float64(time.Second))
}

func defaultSlots() []SkillSlot {
	slots := make([]SkillSlot, SlotCount)
	for i := range slots {
		slots[i].Key = strconv.Itoa(i + 1)
	}
	return slots
}

func defaultPreset(i int) SkillPreset {
	return SkillPreset{
		Name:            fmt.Sprintf("프리셋 %d", i+1),
		TriggerKey:      fmt.Sprintf("f%d", i+6),
		TriggerModifier: "none",
		Slots:           defaultSlots(),
	}
}

// Default настройки по умолчанию; единственное место, где задаются значения
// для отсутствующих в файле ключей.
func Default() Config {
	presets := make([]SkillPreset, PresetCount)
	for i := range presets {
		presets[i] = defaultPreset(i)
	}
	return Config{
		Version:          CurrentVersion,
		LogFilePath:      "logs/wonryeol.log",
		InputBackend:     "robotgo",
		Arduino:          Arduino{Port: "COM3", BaudRate: 9600},
		EmergencyStopKey: "f12",
		Colors: []ColorEntry{
			{Hex: "#DFB387", Label: "#DFB387"},
			{Hex: "#DDB186", Label: "#DDB186"},
			{Hex: "#D9AE83", Label: "#D9AE83"},
			{Hex: "#D8AD82", Label: "#D8AD82"},
			{Hex: "#D8AD81", Label: "#D8AD81"},
		},
		ExcludeColors:    []ColorEntry{{Hex: "#37EAD5", Label: "#37EAD5"}},
		Tolerance:        0,
		ExcludeRange:     3,
		TriggerKey:       "f4",
		TriggerModifier:  "none",
		ClickType:        "fkey",
		ClickKey:         "f",
		ClickDelay:       0.01,
		MoveDuration:     0.15,
		SearchArea:       Area{X1: 6, Y1: 7, X2: 2137, Y2: 1168},
		SearchStep:       5,
		CooldownDistance: 50,
		CooldownTime:     0.1,
		Inventory: Inventory{
			KeepColor:       "#DFA8F0",
			Tolerance:       15,
			Area:            Area{X1: 1690, Y1: 961, X2: 2501, Y2: 1287},
			DescArea:        Area{X1: 1144, Y1: 428, X2: 1636, Y2: 1147},
			Cols:            11,
			Rows:            3,
			TriggerKey:      "f3",
			TriggerModifier: "none",
			MoveDuration:    0.15,
			PanelDelay:      0.08,
			SpaceDelay:      0.05,
			ClickDelay:      0.01,
			HoverDelay:      0.3,
			TeleportDelay:   0.02,
			FavoriteKey:     "space",
			DiscardModifier: "ctrl",
		},
		Discard:   Loop{TriggerKey: "f1", TriggerModifier: "none", Delay: 0.01},
		Sell:      Loop{TriggerKey: "f2", TriggerModifier: "none", Delay: 0.01},
		Consume:   Consume{TriggerKey: "mouse5", TriggerModifier: "none", Delay: 0.01, ActionKey: "우클릭"},
		SkillAuto: SkillAuto{Presets: presets},
		Overlay:   Overlay{Enabled: true, X: 10, Y: 10, Alpha: 0.8},
	}
}
