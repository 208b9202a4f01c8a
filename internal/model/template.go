package model

import (
	"time"

	"github.com/google/uuid"
)

// ProjectTemplate is a reusable print job, such as "8 passport photos on a
// 10x15 sheet". It captures photos, paper and settings but never a layout.
type ProjectTemplate struct {
	ID          string          `json:"id"`
	Name        string          `json:"name"`
	Description string          `json:"description"`
	CreatedAt   string          `json:"created_at"`
	UpdatedAt   string          `json:"updated_at"`
	Photos      []Photo         `json:"photos"`
	Paper       Paper           `json:"paper"`
	Settings    ProjectSettings `json:"settings"`
}

// NewProjectTemplate creates a new template from the given project data.
// Image paths are dropped so the template only describes sizes and copies.
func NewProjectTemplate(name, description string, photos []Photo, paper Paper, settings ProjectSettings) ProjectTemplate {
	now := time.Now().UTC().Format(time.RFC3339)
	return ProjectTemplate{
		ID:          uuid.New().String()[:8],
		Name:        name,
		Description: description,
		CreatedAt:   now,
		UpdatedAt:   now,
		Photos:      templatePhotos(photos),
		Paper:       paper,
		Settings:    settings,
	}
}

// ToProject creates a new Project from this template. Photos get fresh IDs
// so they are independent of the template.
func (t ProjectTemplate) ToProject(projectName string) Project {
	photos := make([]Photo, len(t.Photos))
	for i, p := range t.Photos {
		photos[i] = NewPhoto(p.Name, p.Width, p.Height, p.Copies)
		photos[i].LockOrientation = p.LockOrientation
	}
	return Project{
		Name:     projectName,
		Photos:   photos,
		Paper:    t.Paper,
		Settings: t.Settings,
	}
}

// TemplateStore holds a collection of project templates.
type TemplateStore struct {
	Templates []ProjectTemplate `json:"templates"`
}

// NewTemplateStore creates an empty template store.
func NewTemplateStore() TemplateStore {
	return TemplateStore{
		Templates: []ProjectTemplate{},
	}
}

// Add adds a template to the store.
func (ts *TemplateStore) Add(t ProjectTemplate) {
	ts.Templates = append(ts.Templates, t)
}

// Remove removes a template by ID. Returns true if found and removed.
func (ts *TemplateStore) Remove(id string) bool {
	for i, t := range ts.Templates {
		if t.ID == id {
			ts.Templates = append(ts.Templates[:i], ts.Templates[i+1:]...)
			return true
		}
	}
	return false
}

// FindByName returns a pointer to the first template with the given name, or nil.
func (ts *TemplateStore) FindByName(name string) *ProjectTemplate {
	for i := range ts.Templates {
		if ts.Templates[i].Name == name {
			return &ts.Templates[i]
		}
	}
	return nil
}

// Names returns a list of template names for UI dropdowns.
func (ts *TemplateStore) Names() []string {
	names := make([]string, len(ts.Templates))
	for i, t := range ts.Templates {
		names[i] = t.Name
	}
	return names
}

func templatePhotos(photos []Photo) []Photo {
	cp := make([]Photo, len(photos))
	copy(cp, photos)
	for i := range cp {
		cp[i].Path = ""
		cp[i].PixelWidth = 0
		cp[i].PixelHeight = 0
	}
	return cp
}
