package model

import (
	"testing"
)

func TestNewProjectTemplate(t *testing.T) {
	photos := []Photo{
		NewPhoto("Passport", 35, 45, 8),
		NewPhoto("Portrait", 102, 152, 1),
	}
	photos[0].Path = "/tmp/passport.jpg"
	photos[0].PixelWidth = 413

	tmpl := NewProjectTemplate("Passport sheet", "Eight passport photos", photos, MatchPaper(102, 152), DefaultProjectSettings())

	if tmpl.Name != "Passport sheet" {
		t.Errorf("expected name 'Passport sheet', got %q", tmpl.Name)
	}
	if tmpl.ID == "" {
		t.Error("expected non-empty ID")
	}
	if tmpl.CreatedAt == "" {
		t.Error("expected non-empty CreatedAt")
	}
	if len(tmpl.Photos) != 2 {
		t.Fatalf("expected 2 photos, got %d", len(tmpl.Photos))
	}
	if tmpl.Photos[0].Path != "" || tmpl.Photos[0].PixelWidth != 0 {
		t.Error("template photos should not keep image files")
	}
	if photos[0].Path == "" {
		t.Error("source photos must not be modified")
	}
	if tmpl.Paper.Key != "photo4x6" {
		t.Errorf("expected photo4x6 paper, got %s", tmpl.Paper.Key)
	}
}

func TestProjectTemplate_ToProject(t *testing.T) {
	photos := []Photo{NewPhoto("Passport", 35, 45, 8)}
	photos[0].LockOrientation = true
	settings := DefaultProjectSettings()
	settings.Spacing = 2

	tmpl := NewProjectTemplate("Test", "desc", photos, DefaultPaper(), settings)
	proj := tmpl.ToProject("My Project")

	if proj.Name != "My Project" {
		t.Errorf("expected project name 'My Project', got %q", proj.Name)
	}
	if len(proj.Photos) != 1 {
		t.Fatalf("expected 1 photo, got %d", len(proj.Photos))
	}
	if proj.Photos[0].ID == photos[0].ID {
		t.Error("project photos should get fresh IDs")
	}
	if proj.Photos[0].Copies != 8 || !proj.Photos[0].LockOrientation {
		t.Errorf("photo fields not carried over: %+v", proj.Photos[0])
	}
	if proj.Settings.Spacing != 2 {
		t.Errorf("expected spacing 2, got %f", proj.Settings.Spacing)
	}
	if proj.Result != nil {
		t.Error("a new project should have no result")
	}
}

func TestTemplateStore(t *testing.T) {
	store := NewTemplateStore()
	a := NewProjectTemplate("A", "", nil, DefaultPaper(), DefaultProjectSettings())
	b := NewProjectTemplate("B", "", nil, DefaultPaper(), DefaultProjectSettings())
	store.Add(a)
	store.Add(b)

	if len(store.Names()) != 2 {
		t.Fatalf("expected 2 names, got %d", len(store.Names()))
	}
	if store.FindByName("B") == nil {
		t.Error("expected to find template B")
	}
	if !store.Remove(a.ID) {
		t.Error("expected Remove to succeed")
	}
	if store.Remove(a.ID) {
		t.Error("expected second Remove to fail")
	}
	if store.FindByName("A") != nil {
		t.Error("template A should be gone")
	}
}
