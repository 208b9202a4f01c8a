package model

// AppConfig holds application-wide preferences and default settings.
type AppConfig struct {
	// Defaults applied to new projects
	DefaultPaper       string    `json:"default_paper"` // preset key
	DefaultOrientation string    `json:"default_orientation"`
	DefaultOuterMargin float64   `json:"default_outer_margin"`
	DefaultSpacing     float64   `json:"default_spacing"`
	DefaultRotation    bool      `json:"default_rotation"`
	DefaultStrategy    string    `json:"default_strategy"`
	DefaultScaleMode   ScaleMode `json:"default_scale_mode"`
	DefaultDPI         float64   `json:"default_dpi"`
	DefaultPhotoWidth  float64   `json:"default_photo_width"`

	// Application preferences
	RecentProjects []string `json:"recent_projects"`
	Theme          string   `json:"theme"` // "light", "dark", "system"
}

// DefaultAppConfig returns an AppConfig populated with sensible defaults
// matching the values from DefaultProjectSettings().
func DefaultAppConfig() AppConfig {
	defaults := DefaultProjectSettings()
	return AppConfig{
		DefaultPaper:       DefaultPaper().Key,
		DefaultOrientation: string(defaults.Orientation),
		DefaultOuterMargin: defaults.OuterMargin,
		DefaultSpacing:     defaults.Spacing,
		DefaultRotation:    defaults.RotationAllowed,
		DefaultStrategy:    string(defaults.Strategy),
		DefaultScaleMode:   defaults.ScaleMode,
		DefaultDPI:         defaults.DPI,
		DefaultPhotoWidth:  defaults.DefaultWidth,
		RecentProjects:     []string{},
		Theme:              "system",
	}
}

// ApplyToSettings copies the default values from AppConfig into a
// ProjectSettings struct. This is used when creating a new project so it
// inherits the user's saved defaults.
func (c AppConfig) ApplyToSettings(s *ProjectSettings) {
	s.Orientation = PaperOrientation(c.DefaultOrientation)
	s.OuterMargin = c.DefaultOuterMargin
	s.Spacing = c.DefaultSpacing
	s.RotationAllowed = c.DefaultRotation
	s.Strategy = Strategy(c.DefaultStrategy)
	s.ScaleMode = c.DefaultScaleMode
	s.DPI = c.DefaultDPI
	s.DefaultWidth = c.DefaultPhotoWidth
}

// Paper returns the configured default paper, falling back to A4.
func (c AppConfig) Paper() Paper {
	if p, ok := FindPaper(c.DefaultPaper); ok {
		return p
	}
	return DefaultPaper()
}

// AddRecentProject moves path to the front of the recent list, keeping at
// most max entries.
func (c *AppConfig) AddRecentProject(path string, max int) {
	recent := []string{path}
	for _, p := range c.RecentProjects {
		if p != path {
			recent = append(recent, p)
		}
	}
	if max > 0 && len(recent) > max {
		recent = recent[:max]
	}
	c.RecentProjects = recent
}
