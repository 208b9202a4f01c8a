package engine

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/piwi3910/FitPrint/internal/model"
)

func TestPrepareJob_TurnsPaperForLandscapePhotos(t *testing.T) {
	photos := []model.Photo{model.NewPhoto("Wide", 150, 100, 2)}
	ps := model.DefaultProjectSettings()

	job := PrepareJob(photos, model.DefaultPaper(), ps)

	assert.Equal(t, 297.0, job.Paper.Width)
	assert.Equal(t, 210.0, job.Paper.Height)
	assert.Equal(t, 277.0, job.Settings.PageWidth)
	assert.Equal(t, 190.0, job.Settings.PageHeight)
	assert.Equal(t, 10.0, job.Margin)
	assert.Len(t, job.Items, 2)
}

func TestPrepareJob_ScalesDownOversizePhotos(t *testing.T) {
	photos := []model.Photo{model.NewPhoto("Poster", 400, 600, 1)}
	ps := model.DefaultProjectSettings()
	ps.Orientation = model.OrientationPortrait
	ps.ScaleMode = model.ScaleDown
	ps.MaxSize = 0

	job := PrepareJob(photos, model.DefaultPaper(), ps)

	require.Len(t, job.Items, 1)
	it := job.Items[0]
	assert.LessOrEqual(t, it.Width, job.Settings.PageWidth+epsilon)
	assert.LessOrEqual(t, it.Height, job.Settings.PageHeight+epsilon)
	assert.InDelta(t, 400.0/600.0, it.Width/it.Height, 1e-9)
	assert.Equal(t, 400.0, photos[0].Width, "input photos must not change")
}

func TestJobPack(t *testing.T) {
	photos := []model.Photo{
		model.NewPhoto("A", 100, 150, 2),
		model.NewPhoto("B", 90, 130, 1),
	}
	job := PrepareJob(photos, model.DefaultPaper(), model.DefaultProjectSettings())

	layout, err := job.Pack(false)
	require.NoError(t, err)
	assert.Equal(t, 3, layout.PlacedCount())

	best, err := job.Pack(true)
	require.NoError(t, err)
	assert.Equal(t, 3, best.PlacedCount())
	assert.LessOrEqual(t, len(best.Pages), len(layout.Pages))
}

func TestJobPack_Oversize(t *testing.T) {
	photos := []model.Photo{model.NewPhoto("Poster", 400, 600, 1)}
	job := PrepareJob(photos, model.DefaultPaper(), model.DefaultProjectSettings())

	layout, err := job.Pack(false)
	assert.ErrorIs(t, err, ErrOversize)
	assert.Len(t, layout.Rejected, 1)
}
