package config

import (
	"errors"
	"image"
	"os"
	"path/filepath"
	"reflect"
	"strings"
	"testing"
)

func writeFile(t *testing.T, body string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "cfg.json")
	if err := os.WriteFile(path, []byte(body), 0o644); err != nil {
		t.Fatal(err)
	}
	return path
}

func TestLoadMissingFileFallsBackToDefaults(t *testing.T) {
	cfg, _, err := Load(filepath.Join(t.TempDir(), "nope.json"))
	if err == nil {
		t.Fatal("expected error for missing file")
	}
	def := Default()
	if !reflect.DeepEqual(*cfg, def) {
		t.Fatal("missing file must yield Default()")
	}
}

func TestLoadMalformedFallsBackToDefaults(t *testing.T) {
	cfg, _, err := Load(writeFile(t, `{"colors": [`))
	if err == nil {
		t.Fatal("expected parse error")
	}
	if cfg.TriggerKey != Default().TriggerKey {
		t.Fatal("defaults expected")
	}
}

func TestLoadPartialFileKeepsDefaults(t *testing.T) {
	cfg, warnings, err := Load(writeFile(t, `{
  "version": 2,
  "tolerance": 12,
  "colors": [["#ffffff", "흰색"], ["#GGGGGG", "bad"]],
  "inventory": {"cols": 4}
}`))
	if err != nil {
		t.Fatal(err)
	}
	if cfg.Tolerance != 12 {
		t.Fatalf("tolerance %d", cfg.Tolerance)
	}
	if len(cfg.Colors) != 1 || cfg.Colors[0] != (ColorEntry{Hex: "#FFFFFF", Label: "흰색"}) {
		t.Fatalf("colors %+v", cfg.Colors)
	}
	if len(warnings) != 1 || !strings.Contains(warnings[0], "#GGGGGG") {
		t.Fatalf("warnings %v", warnings)
	}
	if cfg.Inventory.Cols != 4 || cfg.Inventory.Rows != Default().Inventory.Rows {
		t.Fatalf("inventory %+v", cfg.Inventory)
	}
	if cfg.SearchArea != Default().SearchArea {
		t.Fatal("absent search_area must keep defaults")
	}
	if len(cfg.SkillAuto.Presets) != PresetCount {
		t.Fatal("presets must be padded")
	}
}

func TestLoadSaveLoadIsIdempotent(t *testing.T) {
	path := writeFile(t, `{
  "colors": [["#DFB387", "gold"]],
  "exclude_colors": [],
  "tolerance": 7,
  "trigger_modifier": "없음",
  "click_delay": 0.015,
  "search_area": {"x1": 1, "y1": 2, "x2": 300, "y2": 400},
  "skill_auto": {"presets": [{"name": "보스", "trigger_key": "f7", "slots": [{"enabled": true, "key": "q", "cooldown": 2.5, "hold": true}]}]},
  "auto_start": {"skill_auto": true}
}`)
	first, _, err := Load(path)
	if err != nil {
		t.Fatal(err)
	}
	if err := Save(path, first); err != nil {
		t.Fatal(err)
	}
	second, _, err := Load(path)
	if err != nil {
		t.Fatal(err)
	}
	if !reflect.DeepEqual(first, second) {
		t.Fatalf("reload differs:\n%+v\n%+v", first, second)
	}
	if first.TriggerModifier != "none" {
		t.Fatalf("modifier %q", first.TriggerModifier)
	}
	if s := first.SkillAuto.Presets[0].Slots[0]; !s.Enabled || !s.Hold || s.Cooldown != 2.5 {
		t.Fatalf("slot %+v", s)
	}

	body, _ := os.ReadFile(path)
	if !strings.Contains(string(body), `"보스"`) {
		t.Fatal("non-ASCII must be written raw")
	}
	if !strings.Contains(string(body), "[\n      \"#DFB387\",\n      \"gold\"\n    ]") {
		t.Fatalf("colours must be stored as pairs:\n%s", body)
	}
}

func TestMigrateLegacySkillAuto(t *testing.T) {
	path := writeFile(t, `{
  "skill_auto": {
    "trigger_key": "f8",
    "trigger_modifier": "없음",
    "honryeongsa_mode": true,
    "slots": [{"enabled": true, "key": "space", "cooldown": 1.0}]
  },
  "consume2": {"trigger_key": "f9", "delay": 0.2, "action_key": "mouse4"}
}`)
	cfg, _, err := Load(path)
	if err != nil {
		t.Fatal(err)
	}
	p := cfg.SkillAuto.Presets[0]
	if p.TriggerKey != "f8" || !p.HonryeongsaMode || p.TriggerModifier != "none" {
		t.Fatalf("preset %+v", p)
	}
	if len(p.Slots) != SlotCount || p.Slots[0].Key != "space" || p.Slots[1].Key != "2" {
		t.Fatalf("slots %+v", p.Slots)
	}
	if cfg.Consume.TriggerKey != "f9" || cfg.Consume.ActionKey != "mouse4" {
		t.Fatalf("consume %+v", cfg.Consume)
	}
	if cfg.Version != CurrentVersion {
		t.Fatalf("version %d", cfg.Version)
	}
}

func TestLoadRejectsNewerVersion(t *testing.T) {
	_, _, err := Load(writeFile(t, `{"version": 99}`))
	if !errors.Is(err, ErrUnsupportedVersion) {
		t.Fatalf("got %v", err)
	}
}

func TestNormalizeClampsRanges(t *testing.T) {
	cfg := Default()
	cfg.Tolerance = 300
	cfg.SearchStep = 0
	cfg.Inventory.Cols = 0
	cfg.Inventory.Rows = -2
	cfg.SkillAuto.Presets = cfg.SkillAuto.Presets[:2]
	cfg.SkillAuto.Presets[0].Slots = append(cfg.SkillAuto.Presets[0].Slots, SkillSlot{}, SkillSlot{})
	cfg.Normalize()

	if cfg.Tolerance != 255 || cfg.SearchStep != 1 || cfg.Inventory.Cols != 1 || cfg.Inventory.Rows != 1 {
		t.Fatalf("not clamped: %+v", cfg)
	}
	if len(cfg.SkillAuto.Presets) != PresetCount || len(cfg.SkillAuto.Presets[0].Slots) != SlotCount {
		t.Fatal("presets/slots must be padded or truncated")
	}
}

func TestAddRemoveColor(t *testing.T) {
	cfg := Default()
	n := len(cfg.ExcludeColors)
	if err := cfg.AddColor("#abcdef", "", true); err != nil {
		t.Fatal(err)
	}
	if got := cfg.ExcludeColors[n]; got.Hex != "#ABCDEF" || got.Label != "#ABCDEF" {
		t.Fatalf("got %+v", got)
	}
	if err := cfg.AddColor("abcdef", "", false); err == nil {
		t.Fatal("hex without # must be rejected")
	}
	if err := cfg.RemoveColor(n, true); err != nil {
		t.Fatal(err)
	}
	if len(cfg.ExcludeColors) != n {
		t.Fatal("remove failed")
	}
	if err := cfg.RemoveColor(100, true); err == nil {
		t.Fatal("out of range must fail")
	}
}

func TestAreaRectKeepsCorners(t *testing.T) {
	if got := (Area{X1: 10, Y1: 20, X2: 110, Y2: 70}).Rect(); got != image.Rect(10, 20, 110, 70) {
		t.Fatalf("got %v", got)
	}
	for _, a := range []Area{
		{X1: 60, Y1: 20, X2: 0, Y2: 0},
		{X1: 0, Y1: 50, X2: 100, Y2: 10},
		{X1: 30, Y1: 0, X2: 30, Y2: 40},
	} {
		if r := a.Rect(); !r.Empty() {
			t.Fatalf("%+v must stay degenerate, got %v", a, r)
		}
	}
}
