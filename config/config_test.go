package config

import (
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/dshills/quill/display"
)

func TestDefaultConfig(t *testing.T) {
	cfg := DefaultConfig()
	if cfg.ShowScrollBar != 1 {
		t.Errorf("ShowScrollBar = %d, want 1", cfg.ShowScrollBar)
	}
	if cfg.Style != StyleMinimal {
		t.Errorf("Style = %v, want minimal", cfg.Style)
	}
	if !cfg.ShowLineNumbers || !cfg.ShortTabNames || !cfg.AutoHideCommandRegion {
		t.Error("boolean defaults wrong")
	}
	if cfg.BackgroundFadeTime != 60 || cfg.BackgroundFadeWait != 60 {
		t.Error("fade defaults wrong")
	}
}

func TestEditorConfig_Apply(t *testing.T) {
	cfg := DefaultConfig()
	cfg.Apply(map[string]any{
		"show_scrollbar":    int64(0),
		"style":             "normal",
		"line_margins":      []any{float64(4), float64(2)},
		"widget_margins":    int64(3), // scalar applies to both axes
		"underline_height":  float64(1.5),
		"show_line_numbers": false,
		"unknown_key":       "ignored",
	})

	if cfg.ShowScrollBar != 0 {
		t.Error("show_scrollbar not applied")
	}
	if cfg.Style != StyleNormal {
		t.Error("style not applied")
	}
	if cfg.LineMargins != (display.Vec2{X: 4, Y: 2}) {
		t.Errorf("LineMargins = %v", cfg.LineMargins)
	}
	if cfg.WidgetMargins != (display.Vec2{X: 3, Y: 3}) {
		t.Errorf("WidgetMargins = %v", cfg.WidgetMargins)
	}
	if cfg.UnderlineHeight != 1.5 {
		t.Errorf("UnderlineHeight = %v", cfg.UnderlineHeight)
	}
	if cfg.ShowLineNumbers {
		t.Error("show_line_numbers not applied")
	}
}

func TestEditorConfig_ApplyIgnoresBadShapes(t *testing.T) {
	cfg := DefaultConfig()
	cfg.Apply(map[string]any{
		"show_scrollbar":   "not a number",
		"line_margins":     []any{float64(1)}, // wrong arity
		"underline_height": "tall",
	})

	def := DefaultConfig()
	if cfg.ShowScrollBar != def.ShowScrollBar || cfg.LineMargins != def.LineMargins || cfg.UnderlineHeight != def.UnderlineHeight {
		t.Error("malformed values should keep prior values")
	}
}

func TestEditorConfig_ApplyNil(t *testing.T) {
	cfg := DefaultConfig()
	cfg.Apply(nil)
	if cfg != DefaultConfig() {
		t.Error("Apply(nil) changed the config")
	}
}

func TestLoad_TOML(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "quill.toml")
	src := "style = \"normal\"\nshow_line_numbers = false\nline_margins = [2, 3]\n"
	if err := os.WriteFile(path, []byte(src), 0o644); err != nil {
		t.Fatal(err)
	}

	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}
	if cfg.Style != StyleNormal {
		t.Error("style not loaded")
	}
	if cfg.ShowLineNumbers {
		t.Error("show_line_numbers not loaded")
	}
	if cfg.LineMargins != (display.Vec2{X: 2, Y: 3}) {
		t.Errorf("LineMargins = %v", cfg.LineMargins)
	}
}

func TestLoad_YAML(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "quill.yaml")
	src := "style: normal\nshort_tab_names: false\nunderline_height: 2\n"
	if err := os.WriteFile(path, []byte(src), 0o644); err != nil {
		t.Fatal(err)
	}

	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}
	if cfg.Style != StyleNormal || cfg.ShortTabNames {
		t.Error("yaml values not loaded")
	}
	if cfg.UnderlineHeight != 2 {
		t.Errorf("UnderlineHeight = %v, want 2", cfg.UnderlineHeight)
	}
}

func TestLoad_MissingFileKeepsDefaults(t *testing.T) {
	cfg, err := Load(filepath.Join(t.TempDir(), "absent.toml"))
	if err != nil {
		t.Fatalf("missing file should not error: %v", err)
	}
	if cfg != DefaultConfig() {
		t.Error("missing file should yield the defaults")
	}
}

func TestLoad_MalformedReportsParseError(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "bad.toml")
	if err := os.WriteFile(path, []byte("= nonsense ="), 0o644); err != nil {
		t.Fatal(err)
	}

	_, err := Load(path)
	if err == nil {
		t.Fatal("malformed file should error")
	}
	var perr *ParseError
	if !errors.As(err, &perr) {
		t.Errorf("err = %T, want *ParseError", err)
	}
}

func TestSaveLoadRoundTrip(t *testing.T) {
	cfg := DefaultConfig()
	cfg.Style = StyleNormal
	cfg.ShowLineNumbers = false
	cfg.LineMargins = display.Vec2{X: 5, Y: 6}

	for _, name := range []string{"rt.toml", "rt.yaml"} {
		path := filepath.Join(t.TempDir(), name)
		if err := Save(path, cfg); err != nil {
			t.Fatalf("Save %s: %v", name, err)
		}
		got, err := Load(path)
		if err != nil {
			t.Fatalf("Load %s: %v", name, err)
		}
		if got != cfg {
			t.Errorf("%s round trip: got %+v, want %+v", name, got, cfg)
		}
	}
}

func TestParseStyle(t *testing.T) {
	if ParseStyle("NORMAL") != StyleNormal {
		t.Error("case-insensitive parse failed")
	}
	if ParseStyle("whatever") != StyleMinimal {
		t.Error("unknown style should default to minimal")
	}
}
