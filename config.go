package posekit

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"slices"
)

// Config holds the visual and interaction settings of all editors. Each
// editor receives its own section at construction.
type Config struct {
	Pose  PoseConfig  `json:"pose"`
	Mask  MaskConfig  `json:"mask"`
	Box   BoxConfig   `json:"box"`
	Debug DebugConfig `json:"debug"`
}

// PoseConfig configures the Pose Editor.
type PoseConfig struct {
	// JointRadius is the on-screen radius of a joint handle, in display units.
	JointRadius float64 `json:"joint_radius"`
	// BoneOutlineWidth and BoneCoreWidth are display-unit stroke widths.
	BoneOutlineWidth float64 `json:"bone_outline_width"`
	BoneCoreWidth    float64 `json:"bone_core_width"`

	BoneOutlineColor   Color `json:"bone_outline_color"`
	BoneColor          Color `json:"bone_color"`
	BoneHighlightColor Color `json:"bone_highlight_color"`
	JointColor         Color `json:"joint_color"`
	JointActiveColor   Color `json:"joint_active_color"`
	BackgroundColor    Color `json:"background_color"`

	// OverlayAlpha is the opacity of the optional mask overlay.
	OverlayAlpha float64 `json:"overlay_alpha"`
	// TooltipFade is the tooltip fade-in duration in seconds.
	TooltipFade float64 `json:"tooltip_fade"`
	// FontSize is the tooltip text size.
	FontSize float64 `json:"font_size"`
}

// MaskConfig configures the Mask Painter.
type MaskConfig struct {
	// PenWidths is the fixed set of selectable widths, in image pixels.
	PenWidths       []int `json:"pen_widths"`
	DefaultPenWidth int   `json:"default_pen_width"`
	PenColor        Color `json:"pen_color"`
	EraserColor     Color `json:"eraser_color"`
	// LayerAlpha is the opacity of the painted layer over the background.
	LayerAlpha float64 `json:"layer_alpha"`
}

// BoxConfig configures the Bounding Box Adjuster.
type BoxConfig struct {
	// MinSize is the smallest allowed width and height, in display units.
	MinSize     float64 `json:"min_size"`
	HandleSize  float64 `json:"handle_size"`
	StrokeWidth float64 `json:"stroke_width"`
	StrokeColor Color   `json:"stroke_color"`
	HandleColor Color   `json:"handle_color"`
}

// DebugConfig holds developer settings.
type DebugConfig struct {
	Enabled       bool   `json:"enabled"`
	ShowFPS       bool   `json:"show_fps"`
	ScreenshotDir string `json:"screenshot_dir"`
}

// DefaultPenWidths is the selectable pen width set.
var DefaultPenWidths = []int{5, 10, 20, 40}

// DefaultConfig returns a configuration with default values.
func DefaultConfig() *Config {
	return &Config{
		Pose: PoseConfig{
			JointRadius:        8,
			BoneOutlineWidth:   8,
			BoneCoreWidth:      4,
			BoneOutlineColor:   Color{0, 0, 0, 0.6},
			BoneColor:          Color{1, 1, 1, 1},
			BoneHighlightColor: Color{1, 0.6, 0, 1},
			JointColor:         Color{0.2, 0.6, 1, 1},
			JointActiveColor:   Color{1, 0.6, 0, 1},
			BackgroundColor:    Color{0.1, 0.1, 0.1, 1},
			OverlayAlpha:       0.5,
			TooltipFade:        0.15,
			FontSize:           13,
		},
		Mask: MaskConfig{
			PenWidths:       slices.Clone(DefaultPenWidths),
			DefaultPenWidth: 20,
			PenColor:        ColorWhite,
			EraserColor:     ColorBlack,
			LayerAlpha:      0.6,
		},
		Box: BoxConfig{
			MinSize:     5,
			HandleSize:  8,
			StrokeWidth: 2,
			StrokeColor: Color{0, 0.6, 1, 1},
			HandleColor: ColorWhite,
		},
		Debug: DebugConfig{
			ScreenshotDir: "screenshots",
		},
	}
}

// LoadConfig reads a JSON configuration file. Missing fields keep their
// default values.
func LoadConfig(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read config: %w", err)
	}
	cfg := DefaultConfig()
	if err := json.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("parse config: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// Save writes the configuration as indented JSON, creating the directory
// if needed.
func (c *Config) Save(path string) error {
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return fmt.Errorf("create config directory: %w", err)
	}
	data, err := json.MarshalIndent(c, "", "  ")
	if err != nil {
		return fmt.Errorf("marshal config: %w", err)
	}
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return fmt.Errorf("write config: %w", err)
	}
	return nil
}

// Validate checks that the configuration is usable.
func (c *Config) Validate() error {
	if c.Pose.JointRadius <= 0 {
		return fmt.Errorf("pose.joint_radius must be positive")
	}
	if c.Pose.BoneCoreWidth <= 0 || c.Pose.BoneOutlineWidth < c.Pose.BoneCoreWidth {
		return fmt.Errorf("pose.bone_outline_width must be at least pose.bone_core_width, which must be positive")
	}
	if c.Pose.OverlayAlpha < 0 || c.Pose.OverlayAlpha > 1 {
		return fmt.Errorf("pose.overlay_alpha must be between 0 and 1")
	}
	if c.Pose.TooltipFade < 0 {
		return fmt.Errorf("pose.tooltip_fade must not be negative")
	}
	if c.Pose.FontSize <= 0 {
		return fmt.Errorf("pose.font_size must be positive")
	}
	if len(c.Mask.PenWidths) == 0 {
		return fmt.Errorf("mask.pen_widths cannot be empty")
	}
	for _, w := range c.Mask.PenWidths {
		if w <= 0 {
			return fmt.Errorf("mask.pen_widths: %d: %w", w, ErrInvalidPenWidth)
		}
	}
	if !slices.Contains(c.Mask.PenWidths, c.Mask.DefaultPenWidth) {
		return fmt.Errorf("mask.default_pen_width %d: %w", c.Mask.DefaultPenWidth, ErrInvalidPenWidth)
	}
	if c.Mask.LayerAlpha < 0 || c.Mask.LayerAlpha > 1 {
		return fmt.Errorf("mask.layer_alpha must be between 0 and 1")
	}
	if c.Box.MinSize <= 0 {
		return fmt.Errorf("box.min_size must be positive")
	}
	if c.Box.HandleSize <= 0 {
		return fmt.Errorf("box.handle_size must be positive")
	}
	return nil
}
