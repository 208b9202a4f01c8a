package project

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/piwi3910/FitPrint/internal/model"
)

func TestSaveAndLoadProject(t *testing.T) {
	path := filepath.Join(t.TempDir(), "order"+ProjectExtension)

	proj := model.NewProject()
	proj.Name = "Wedding"
	proj.Photos = []model.Photo{
		model.NewPhoto("Couple", 100, 150, 2),
		model.NewPhoto("Cake", 90, 130, 1),
	}
	proj.Settings.Spacing = 3
	proj.Result = &model.Layout{
		PageWidth: 190, PageHeight: 277, Spacing: 3,
		Pages: []model.Page{{Number: 1, Items: []model.PlacedItem{
			{Item: model.Item{ID: "a", Width: 100, Height: 150}, Width: 100, Height: 150},
		}}},
	}

	require.NoError(t, SaveProject(path, proj))

	loaded, err := LoadProject(path)
	require.NoError(t, err)
	assert.Equal(t, "Wedding", loaded.Name)
	assert.Equal(t, proj.Photos, loaded.Photos)
	assert.Equal(t, 3.0, loaded.Settings.Spacing)
	require.NotNil(t, loaded.Result)
	assert.Equal(t, 1, loaded.Result.PlacedCount())
}

func TestLoadProject_OldFileGetsDefaults(t *testing.T) {
	path := filepath.Join(t.TempDir(), "old.fitprint")
	require.NoError(t, os.WriteFile(path, []byte(`{"name":"Old"}`), 0644))

	loaded, err := LoadProject(path)
	require.NoError(t, err)
	assert.Equal(t, "Old", loaded.Name)
	assert.NotNil(t, loaded.Photos)
	assert.Equal(t, model.DefaultPaper(), loaded.Paper)
	assert.Equal(t, model.DefaultProjectSettings(), loaded.Settings)
}

func TestLoadProject_Errors(t *testing.T) {
	_, err := LoadProject(filepath.Join(t.TempDir(), "missing.fitprint"))
	assert.Error(t, err)

	path := filepath.Join(t.TempDir(), "bad.fitprint")
	require.NoError(t, os.WriteFile(path, []byte("{"), 0644))
	_, err = LoadProject(path)
	assert.Error(t, err)
}
