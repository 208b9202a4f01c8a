package project

import (
	"encoding/json"
	"fmt"
	"os"

	"github.com/piwi3910/FitPrint/internal/model"
)

// ProjectExtension is the file extension of saved projects.
const ProjectExtension = ".fitprint"

// SaveProject writes the project, including its last layout, as JSON.
func SaveProject(path string, proj model.Project) error {
	if err := writeJSON(path, proj); err != nil {
		return fmt.Errorf("failed to save project: %w", err)
	}
	return nil
}

// LoadProject reads a project saved by SaveProject. Settings missing from
// older files fall back to the defaults.
func LoadProject(path string) (model.Project, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return model.Project{}, fmt.Errorf("failed to read project: %w", err)
	}
	proj := model.NewProject()
	if err := json.Unmarshal(data, &proj); err != nil {
		return model.Project{}, fmt.Errorf("failed to parse project: %w", err)
	}
	if proj.Photos == nil {
		proj.Photos = []model.Photo{}
	}
	return proj, nil
}
