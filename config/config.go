// Package config holds the editor's display/behavior configuration and its
// TOML and YAML loaders. Unrecognized keys are ignored; missing keys keep
// their defaults.
package config

import (
	"strings"

	"github.com/dshills/quill/display"
)

// Style selects the editor chrome style.
type Style int

const (
	// StyleNormal shows full chrome.
	StyleNormal Style = iota
	// StyleMinimal reduces chrome to the essentials.
	StyleMinimal
)

// String returns the style name.
func (s Style) String() string {
	if s == StyleMinimal {
		return "minimal"
	}
	return "normal"
}

// ParseStyle parses a style name, defaulting to minimal.
func ParseStyle(s string) Style {
	if strings.EqualFold(s, "normal") {
		return StyleNormal
	}
	return StyleMinimal
}

// EditorConfig is the recognized option set. Field defaults follow
// DefaultConfig.
type EditorConfig struct {
	// ShowScrollBar is bool-as-int: nonzero shows the scrollbar.
	ShowScrollBar uint32

	Style Style

	LineMargins         display.Vec2
	WidgetMargins       display.Vec2
	InlineWidgetMargins display.Vec2

	UnderlineHeight float32

	ShowLineNumbers          bool
	ShortTabNames            bool
	ShowIndicatorRegion      bool
	AutoHideCommandRegion    bool
	CursorLineSolid          bool
	ShowNormalModeKeyStrokes bool

	BackgroundFadeTime float32
	BackgroundFadeWait float32
}

// DefaultConfig returns the documented defaults.
func DefaultConfig() EditorConfig {
	return EditorConfig{
		ShowScrollBar:            1,
		Style:                    StyleMinimal,
		LineMargins:              display.Vec2{X: 1, Y: 1},
		WidgetMargins:            display.Vec2{X: 1, Y: 1},
		InlineWidgetMargins:      display.Vec2{X: 2, Y: 2},
		UnderlineHeight:          3,
		ShowLineNumbers:          true,
		ShortTabNames:            true,
		ShowIndicatorRegion:      true,
		AutoHideCommandRegion:    true,
		CursorLineSolid:          false,
		ShowNormalModeKeyStrokes: false,
		BackgroundFadeTime:       60,
		BackgroundFadeWait:       60,
	}
}

// Apply copies recognized keys from a parsed configuration table onto the
// config. Values of the wrong shape are ignored, preserving the prior value.
func (c *EditorConfig) Apply(table map[string]any) {
	if table == nil {
		return
	}
	if v, ok := asUint(table["show_scrollbar"]); ok {
		c.ShowScrollBar = v
	}
	if v, ok := asString(table["style"]); ok {
		c.Style = ParseStyle(v)
	}
	if v, ok := asVec2(table["line_margins"]); ok {
		c.LineMargins = v
	}
	if v, ok := asVec2(table["widget_margins"]); ok {
		c.WidgetMargins = v
	}
	if v, ok := asVec2(table["inline_widget_margins"]); ok {
		c.InlineWidgetMargins = v
	}
	if v, ok := asFloat(table["underline_height"]); ok {
		c.UnderlineHeight = float32(v)
	}
	if v, ok := asBool(table["show_line_numbers"]); ok {
		c.ShowLineNumbers = v
	}
	if v, ok := asBool(table["short_tab_names"]); ok {
		c.ShortTabNames = v
	}
	if v, ok := asBool(table["show_indicator_region"]); ok {
		c.ShowIndicatorRegion = v
	}
	if v, ok := asBool(table["auto_hide_command_region"]); ok {
		c.AutoHideCommandRegion = v
	}
	if v, ok := asBool(table["cursor_line_solid"]); ok {
		c.CursorLineSolid = v
	}
	if v, ok := asBool(table["show_normal_mode_keystrokes"]); ok {
		c.ShowNormalModeKeyStrokes = v
	}
	if v, ok := asFloat(table["background_fade_time"]); ok {
		c.BackgroundFadeTime = float32(v)
	}
	if v, ok := asFloat(table["background_fade_wait"]); ok {
		c.BackgroundFadeWait = float32(v)
	}
}

// Table converts the config back into a plain table for serialization.
func (c *EditorConfig) Table() map[string]any {
	return map[string]any{
		"show_scrollbar":              int64(c.ShowScrollBar),
		"style":                       c.Style.String(),
		"line_margins":                []any{float64(c.LineMargins.X), float64(c.LineMargins.Y)},
		"widget_margins":              []any{float64(c.WidgetMargins.X), float64(c.WidgetMargins.Y)},
		"inline_widget_margins":       []any{float64(c.InlineWidgetMargins.X), float64(c.InlineWidgetMargins.Y)},
		"underline_height":            float64(c.UnderlineHeight),
		"show_line_numbers":           c.ShowLineNumbers,
		"short_tab_names":             c.ShortTabNames,
		"show_indicator_region":       c.ShowIndicatorRegion,
		"auto_hide_command_region":    c.AutoHideCommandRegion,
		"cursor_line_solid":           c.CursorLineSolid,
		"show_normal_mode_keystrokes": c.ShowNormalModeKeyStrokes,
		"background_fade_time":        float64(c.BackgroundFadeTime),
		"background_fade_wait":        float64(c.BackgroundFadeWait),
	}
}

func asBool(v any) (bool, bool) {
	switch b := v.(type) {
	case bool:
		return b, true
	case int64:
		return b != 0, true
	case float64:
		return b != 0, true
	default:
		return false, false
	}
}

func asUint(v any) (uint32, bool) {
	switch n := v.(type) {
	case int64:
		if n < 0 {
			return 0, false
		}
		return uint32(n), true
	case float64:
		if n < 0 {
			return 0, false
		}
		return uint32(n), true
	case bool:
		if n {
			return 1, true
		}
		return 0, true
	default:
		return 0, false
	}
}

func asFloat(v any) (float64, bool) {
	switch n := v.(type) {
	case float64:
		return n, true
	case int64:
		return float64(n), true
	case int:
		return float64(n), true
	default:
		return 0, false
	}
}

func asString(v any) (string, bool) {
	s, ok := v.(string)
	return s, ok
}

func asVec2(v any) (display.Vec2, bool) {
	switch pair := v.(type) {
	case []any:
		if len(pair) != 2 {
			return display.Vec2{}, false
		}
		x, okX := asFloat(pair[0])
		y, okY := asFloat(pair[1])
		if !okX || !okY {
			return display.Vec2{}, false
		}
		return display.Vec2{X: float32(x), Y: float32(y)}, true
	case float64:
		// A scalar applies to both axes.
		return display.Vec2{X: float32(pair), Y: float32(pair)}, true
	case int64:
		return display.Vec2{X: float32(pair), Y: float32(pair)}, true
	default:
		return display.Vec2{}, false
	}
}
