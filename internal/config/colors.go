package config

import (
	"encoding/json"
	"fmt"
	"reflect"
	"strings"

	imgpkg "wonryeol/internal/image"
)

// ColorEntry цвет с подписью; в файле хранится парой [hex, label]
type ColorEntry struct {
	Hex   string
	Label string
}

func (c ColorEntry) MarshalJSON() ([]byte, error) {
	return json.Marshal([2]string{c.Hex, c.Label})
}

func (c *ColorEntry) UnmarshalJSON(b []byte) error {
	var pair []string
	if err := json.Unmarshal(b, &pair); err == nil {
		entry, err := entryFromSlice(pair)
		if err != nil {
			return err
		}
		*c = entry
		return nil
	}
	var s string
	if err := json.Unmarshal(b, &s); err != nil {
		return fmt.Errorf("color entry: %w", err)
	}
	*c = ColorEntry{Hex: s, Label: s}
	return nil
}

func entryFromSlice(pair []string) (ColorEntry, error) {
	switch len(pair) {
	case 1:
		return ColorEntry{Hex: pair[0], Label: pair[0]}, nil
	case 2:
		return ColorEntry{Hex: pair[0], Label: pair[1]}, nil
	}
	return ColorEntry{}, fmt.Errorf("color entry: want [hex, label], got %d items", len(pair))
}

var colorEntryType = reflect.TypeOf(ColorEntry{})

// colorEntryHook раскладывает [hex, label] из viper в ColorEntry
func colorEntryHook(f reflect.Type, t reflect.Type, data interface{}) (interface{}, error) {
	if t != colorEntryType {
		return data, nil
	}
	switch v := data.(type) {
	case string:
		return ColorEntry{Hex: v, Label: v}, nil
	case []interface{}:
		pair := make([]string, 0, len(v))
		for _, item := range v {
			pair = append(pair, fmt.Sprint(item))
		}
		return entryFromSlice(pair)
	case []string:
		return entryFromSlice(v)
	}
	return data, nil
}

// RGB разбирает цвет записи
func (c ColorEntry) RGB() (imgpkg.RGB, error) {
	return imgpkg.ParseHex(c.Hex)
}

// ParseColors переводит записи в RGB, пропуская невалидные
func ParseColors(entries []ColorEntry) []imgpkg.RGB {
	out := make([]imgpkg.RGB, 0, len(entries))
	for _, e := range entries {
		if rgb, err := e.RGB(); err == nil {
			out = append(out, rgb)
		}
	}
	return out
}

func (c *Config) colorList(exclude bool) *[]ColorEntry {
	if exclude {
		return &c.ExcludeColors
	}
	return &c.Colors
}

// AddColor добавляет цвет после проверки формата #RRGGBB
func (c *Config) AddColor(hex, label string, exclude bool) error {
	rgb, err := imgpkg.ParseHex(strings.TrimSpace(hex))
	if err != nil {
		return err
	}
	if label == "" {
		label = rgb.Hex()
	}
	list := c.colorList(exclude)
	*list = append(*list, ColorEntry{Hex: rgb.Hex(), Label: label})
	return nil
}

// RemoveColor удаляет цвет по индексу
func (c *Config) RemoveColor(index int, exclude bool) error {
	list := c.colorList(exclude)
	if index < 0 || index >= len(*list) {
		return fmt.Errorf("color index %d out of range [0, %d)", index, len(*list))
	}
	*list = append((*list)[:index], (*list)[index+1:]...)
	return nil
}
