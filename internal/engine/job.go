package engine

import "github.com/piwi3910/FitPrint/internal/model"

// Job is a photo order ready for packing: the paper turned for the photos,
// the photos after scaling, their copies expanded into items and the layout
// settings for the printable area.
type Job struct {
	Paper    model.Paper
	Margin   float64
	Settings model.LayoutSettings
	Photos   []model.Photo
	Items    []model.Item
}

// PrepareJob resolves orientation and scaling for a set of photos.
func PrepareJob(photos []model.Photo, paper model.Paper, ps model.ProjectSettings) Job {
	settings := ps.LayoutSettings(paper, photos)
	scaled := model.ApplyScaling(photos, settings.PageWidth, settings.PageHeight,
		ps.ScaleMode, ps.MinSize, ps.MaxSize)
	return Job{
		Paper:    paper.Oriented(ps.Orientation, photos),
		Margin:   ps.OuterMargin,
		Settings: settings,
		Photos:   scaled,
		Items:    model.ExpandPhotos(scaled),
	}
}

// Pack packs the job's items with the configured strategy, or with every
// strategy keeping the best result when best is set.
func (j Job) Pack(best bool, opts ...Option) (model.Layout, error) {
	if best {
		return PackBest(j.Settings, j.Items, opts...)
	}
	return Pack(j.Settings, j.Items, opts...)
}
