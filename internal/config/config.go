// Package config loads the command line configuration from fitprint.yaml,
// FITPRINT_ environment variables and bound command flags.
package config

import (
	"errors"
	"fmt"
	"strings"

	"github.com/go-playground/validator/v10"
	"github.com/spf13/viper"

	"github.com/piwi3910/FitPrint/internal/logger"
	"github.com/piwi3910/FitPrint/internal/model"
)

// Config holds all command line configuration
type Config struct {
	Log    logger.Config
	Layout LayoutConfig
}

// LayoutConfig holds the paper and packing settings
type LayoutConfig struct {
	Paper       string  `validate:"required"`
	PaperWidth  float64 `validate:"gte=0"` // custom paper only
	PaperHeight float64 `validate:"gte=0"` // custom paper only
	Orientation string  `validate:"oneof=auto portrait landscape"`
	Margin      float64 `validate:"gte=0"`
	Spacing     float64 `validate:"gte=0"`
	Strategy    string  `validate:"oneof=bottom-left maxrects-bssf maxrects-baf skyline legacy"`
	Order       string  `validate:"oneof=area-desc input height-desc width-desc perimeter-desc max-side-desc balanced"`
	Scale       string  `validate:"oneof=none down up both"`
	MinSize     float64 `validate:"gt=0"`
	MaxSize     float64 `validate:"gtefield=MinSize"`
	DPI         float64 `validate:"gt=0"`
	PhotoWidth  float64 `validate:"gt=0"`

	Rotation    bool
	Seed        int64
	Consolidate bool
	Best        bool // try every strategy and keep the fewest pages
}

var validate = validator.New()

// NewViper returns a viper instance with the defaults, search paths and
// environment binding in place. An explicit file replaces the search.
//
// Priority (highest to lowest):
// 1. Bound command flags
// 2. Environment variables with FITPRINT_ prefix (e.g., FITPRINT_LAYOUT_SPACING)
// 3. fitprint.yaml in . or $HOME/.fitprint
// 4. Built-in defaults
func NewViper(file string) *viper.Viper {
	v := viper.New()
	if file != "" {
		v.SetConfigFile(file)
	} else {
		v.SetConfigName("fitprint")
		v.SetConfigType("yaml")
		v.AddConfigPath(".")
		v.AddConfigPath("$HOME/.fitprint")
	}

	v.SetEnvPrefix("FITPRINT")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_", "-", "_"))
	v.AutomaticEnv()

	applyDefaults(v)
	return v
}

// Load reads the configuration file, if any, and builds a validated Config.
// A missing file in the search path is not an error; a missing explicit file
// is.
func Load(v *viper.Viper) (*Config, error) {
	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if !errors.As(err, &notFound) {
			return nil, fmt.Errorf("error reading config file: %w", err)
		}
	}

	cfg := &Config{
		Log: logger.Config{
			Level:  v.GetString("log.level"),
			Format: v.GetString("log.format"),
			Output: v.GetString("log.output"),
		},
		Layout: LayoutConfig{
			Paper:       strings.ToLower(v.GetString("layout.paper")),
			PaperWidth:  v.GetFloat64("layout.paper_width"),
			PaperHeight: v.GetFloat64("layout.paper_height"),
			Orientation: strings.ToLower(v.GetString("layout.orientation")),
			Margin:      v.GetFloat64("layout.margin"),
			Spacing:     v.GetFloat64("layout.spacing"),
			Rotation:    v.GetBool("layout.rotation"),
			Strategy:    strings.ToLower(v.GetString("layout.strategy")),
			Order:       strings.ToLower(v.GetString("layout.order")),
			Seed:        v.GetInt64("layout.seed"),
			Consolidate: v.GetBool("layout.consolidate"),
			Best:        v.GetBool("layout.best"),
			Scale:       strings.ToLower(v.GetString("layout.scale")),
			MinSize:     v.GetFloat64("layout.min_size"),
			MaxSize:     v.GetFloat64("layout.max_size"),
			DPI:         v.GetFloat64("layout.dpi"),
			PhotoWidth:  v.GetFloat64("layout.photo_width"),
		},
	}

	if err := cfg.validate(); err != nil {
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}
	return cfg, nil
}

// applyDefaults mirrors model.DefaultProjectSettings so the command line and
// the desktop app start from the same layout.
func applyDefaults(v *viper.Viper) {
	ps := model.DefaultProjectSettings()

	v.SetDefault("log.level", "info")
	v.SetDefault("log.format", "console")
	v.SetDefault("log.output", "stderr")

	v.SetDefault("layout.paper", model.DefaultPaper().Key)
	v.SetDefault("layout.paper_width", 0.0)
	v.SetDefault("layout.paper_height", 0.0)
	v.SetDefault("layout.orientation", string(ps.Orientation))
	v.SetDefault("layout.margin", ps.OuterMargin)
	v.SetDefault("layout.spacing", ps.Spacing)
	v.SetDefault("layout.rotation", ps.RotationAllowed)
	v.SetDefault("layout.strategy", string(ps.Strategy))
	v.SetDefault("layout.order", string(ps.Order))
	v.SetDefault("layout.seed", ps.Seed)
	v.SetDefault("layout.consolidate", ps.Consolidate)
	v.SetDefault("layout.best", false)
	v.SetDefault("layout.scale", string(ps.ScaleMode))
	v.SetDefault("layout.min_size", ps.MinSize)
	v.SetDefault("layout.max_size", ps.MaxSize)
	v.SetDefault("layout.dpi", ps.DPI)
	v.SetDefault("layout.photo_width", ps.DefaultWidth)
}

func (c *Config) validate() error {
	if err := validate.Struct(c.Layout); err != nil {
		var verrs validator.ValidationErrors
		if errors.As(err, &verrs) {
			msgs := make([]string, 0, len(verrs))
			for _, fe := range verrs {
				msgs = append(msgs, fmt.Sprintf("layout.%s failed %s", strings.ToLower(fe.Field()), fe.Tag()))
			}
			return errors.New(strings.Join(msgs, "; "))
		}
		return err
	}
	if _, err := c.Layout.ResolvePaper(); err != nil {
		return err
	}
	return nil
}

// ResolvePaper returns the configured paper preset, or a custom sheet when
// the paper is "custom".
func (l LayoutConfig) ResolvePaper() (model.Paper, error) {
	if l.Paper == "custom" {
		if l.PaperWidth <= 0 || l.PaperHeight <= 0 {
			return model.Paper{}, errors.New("custom paper needs layout.paper_width and layout.paper_height")
		}
		return model.CustomPaper(l.PaperWidth, l.PaperHeight), nil
	}
	p, ok := model.FindPaper(l.Paper)
	if !ok {
		return model.Paper{}, fmt.Errorf("unknown paper %q", l.Paper)
	}
	return p, nil
}

// ProjectSettings converts the layout configuration to project settings.
func (l LayoutConfig) ProjectSettings() model.ProjectSettings {
	return model.ProjectSettings{
		Orientation:     model.PaperOrientation(l.Orientation),
		OuterMargin:     l.Margin,
		Spacing:         l.Spacing,
		RotationAllowed: l.Rotation,
		Strategy:        model.Strategy(l.Strategy),
		Order:           model.Order(l.Order),
		Seed:            l.Seed,
		Consolidate:     l.Consolidate,
		ScaleMode:       model.ScaleMode(l.Scale),
		MinSize:         l.MinSize,
		MaxSize:         l.MaxSize,
		DPI:             l.DPI,
		DefaultWidth:    l.PhotoWidth,
	}
}
