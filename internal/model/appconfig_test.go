package model

import "testing"

func TestDefaultAppConfigMatchesDefaultSettings(t *testing.T) {
	cfg := DefaultAppConfig()
	defaults := DefaultProjectSettings()

	if cfg.DefaultSpacing != defaults.Spacing {
		t.Errorf("Spacing mismatch: config=%f settings=%f", cfg.DefaultSpacing, defaults.Spacing)
	}
	if cfg.DefaultOuterMargin != defaults.OuterMargin {
		t.Errorf("OuterMargin mismatch: config=%f settings=%f", cfg.DefaultOuterMargin, defaults.OuterMargin)
	}
	if cfg.DefaultStrategy != string(defaults.Strategy) {
		t.Errorf("Strategy mismatch: config=%s settings=%s", cfg.DefaultStrategy, defaults.Strategy)
	}
	if cfg.DefaultPhotoWidth != 50 {
		t.Errorf("expected default photo width 50, got %f", cfg.DefaultPhotoWidth)
	}
	if cfg.Theme != "system" {
		t.Errorf("expected default theme=system, got %s", cfg.Theme)
	}
	if cfg.RecentProjects == nil {
		t.Error("RecentProjects should not be nil")
	}
}

func TestApplyToSettings(t *testing.T) {
	cfg := DefaultAppConfig()
	cfg.DefaultSpacing = 2.0
	cfg.DefaultRotation = false
	cfg.DefaultStrategy = "skyline"

	s := DefaultProjectSettings()
	cfg.ApplyToSettings(&s)

	if s.Spacing != 2.0 {
		t.Errorf("expected Spacing=2.0, got %f", s.Spacing)
	}
	if s.RotationAllowed {
		t.Error("expected rotation disabled")
	}
	if s.Strategy != StrategySkyline {
		t.Errorf("expected Strategy=skyline, got %s", s.Strategy)
	}
}

func TestAppConfigPaperFallsBackToA4(t *testing.T) {
	cfg := DefaultAppConfig()
	cfg.DefaultPaper = "letter"
	if cfg.Paper().Key != "letter" {
		t.Errorf("expected letter, got %s", cfg.Paper().Key)
	}
	cfg.DefaultPaper = "nope"
	if cfg.Paper().Key != "a4" {
		t.Errorf("expected a4 fallback, got %s", cfg.Paper().Key)
	}
}

func TestAddRecentProject(t *testing.T) {
	cfg := DefaultAppConfig()
	cfg.AddRecentProject("a.fitprint", 3)
	cfg.AddRecentProject("b.fitprint", 3)
	cfg.AddRecentProject("a.fitprint", 3)
	cfg.AddRecentProject("c.fitprint", 3)
	cfg.AddRecentProject("d.fitprint", 3)

	want := []string{"d.fitprint", "c.fitprint", "a.fitprint"}
	if len(cfg.RecentProjects) != len(want) {
		t.Fatalf("expected %v, got %v", want, cfg.RecentProjects)
	}
	for i := range want {
		if cfg.RecentProjects[i] != want[i] {
			t.Errorf("position %d: expected %s, got %s", i, want[i], cfg.RecentProjects[i])
		}
	}
}
