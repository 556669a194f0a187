package ui

import (
	"fmt"

	"github.com/hubastard/canopy/engine/colors"
)

// Style is the visual configuration of the UI. It round-trips through YAML.
type Style struct {
	Text    TextStyle `yaml:"text"`
	Spacing Spacing   `yaml:"spacing"`
	Visuals Visuals   `yaml:"visuals"`
}

// TextStyle holds text sizes in points.
type TextStyle struct {
	Small     float32 `yaml:"small"`
	Body      float32 `yaml:"body"`
	Monospace float32 `yaml:"monospace"`
	Heading   float32 `yaml:"heading"`
}

type Spacing struct {
	ItemSpacing   Vec2    `yaml:"item_spacing,flow"`
	WindowPadding Vec2    `yaml:"window_padding,flow"`
	ButtonPadding Vec2    `yaml:"button_padding,flow"`
	IconSize      float32 `yaml:"icon_size"`
	SliderWidth   float32 `yaml:"slider_width"`
}

type WidgetColors struct {
	BgFill   colors.Color `yaml:"bg_fill,flow"`
	FgStroke colors.Color `yaml:"fg_stroke,flow"`
}

type WidgetVisuals struct {
	Inactive WidgetColors `yaml:"inactive"`
	Hovered  WidgetColors `yaml:"hovered"`
	Active   WidgetColors `yaml:"active"`
}

type Visuals struct {
	DarkMode      bool          `yaml:"dark_mode"`
	ClearColor    colors.Color  `yaml:"clear_color,flow"`
	TextColor     colors.Color  `yaml:"text_color,flow"`
	WeakTextColor colors.Color  `yaml:"weak_text_color,flow"`
	WindowFill    colors.Color  `yaml:"window_fill,flow"`
	WindowStroke  colors.Color  `yaml:"window_stroke,flow"`
	TitleBarFill  colors.Color  `yaml:"title_bar_fill,flow"`
	Selection     colors.Color  `yaml:"selection,flow"`
	Widgets       WidgetVisuals `yaml:"widgets"`
}

// MaxTextSize bounds every text size so the font atlas stays buildable.
const MaxTextSize = 128

// Validate reports text sizes that cannot be rendered.
func (s Style) Validate() error {
	for _, f := range []struct {
		name string
		v    float32
	}{
		{"small", s.Text.Small},
		{"body", s.Text.Body},
		{"monospace", s.Text.Monospace},
		{"heading", s.Text.Heading},
	} {
		if !(f.v > 0 && f.v <= MaxTextSize) {
			return fmt.Errorf("text.%s = %v, want a size in (0, %d]", f.name, f.v, MaxTextSize)
		}
	}
	return nil
}

func DefaultStyle() Style {
	return Style{
		Text: TextStyle{Small: 10, Body: 14, Monospace: 13, Heading: 20},
		Spacing: Spacing{
			ItemSpacing:   Vec2{8, 4},
			WindowPadding: Vec2{8, 8},
			ButtonPadding: Vec2{6, 3},
			IconSize:      14,
			SliderWidth:   160,
		},
		Visuals: DarkVisuals(),
	}
}

func DarkVisuals() Visuals {
	return Visuals{
		DarkMode:      true,
		ClearColor:    colors.DarkGray,
		TextColor:     colors.Color{0.86, 0.86, 0.86, 1},
		WeakTextColor: colors.Color{0.55, 0.55, 0.55, 1},
		WindowFill:    colors.Color{0.11, 0.11, 0.11, 0.96},
		WindowStroke:  colors.Color{0.24, 0.24, 0.24, 1},
		TitleBarFill:  colors.Color{0.16, 0.16, 0.16, 1},
		Selection:     colors.Color{0.0, 0.36, 0.5, 1},
		Widgets: WidgetVisuals{
			Inactive: WidgetColors{BgFill: colors.Color{0.24, 0.24, 0.24, 1}, FgStroke: colors.Color{0.71, 0.71, 0.71, 1}},
			Hovered:  WidgetColors{BgFill: colors.Color{0.27, 0.27, 0.27, 1}, FgStroke: colors.Color{0.94, 0.94, 0.94, 1}},
			Active:   WidgetColors{BgFill: colors.Color{0.21, 0.21, 0.21, 1}, FgStroke: colors.White},
		},
	}
}

func LightVisuals() Visuals {
	return Visuals{
		DarkMode:      false,
		ClearColor:    colors.Color{0.85, 0.86, 0.88, 1},
		TextColor:     colors.Color{0.24, 0.24, 0.24, 1},
		WeakTextColor: colors.Color{0.5, 0.5, 0.5, 1},
		WindowFill:    colors.Color{0.97, 0.97, 0.97, 0.96},
		WindowStroke:  colors.Color{0.75, 0.75, 0.75, 1},
		TitleBarFill:  colors.Color{0.9, 0.9, 0.9, 1},
		Selection:     colors.Color{0.56, 0.82, 1, 1},
		Widgets: WidgetVisuals{
			Inactive: WidgetColors{BgFill: colors.Color{0.9, 0.9, 0.9, 1}, FgStroke: colors.Color{0.29, 0.29, 0.29, 1}},
			Hovered:  WidgetColors{BgFill: colors.Color{0.82, 0.82, 0.82, 1}, FgStroke: colors.Black},
			Active:   WidgetColors{BgFill: colors.Color{0.65, 0.65, 0.65, 1}, FgStroke: colors.Black},
		},
	}
}

// widget picks the color set for an interaction state.
func (v Visuals) widget(r Response) WidgetColors {
	switch {
	case r.Active:
		return v.Widgets.Active
	case r.Hovered:
		return v.Widgets.Hovered
	default:
		return v.Widgets.Inactive
	}
}
