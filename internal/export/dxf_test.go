package export

import (
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/yofu/dxf"
	"github.com/yofu/dxf/drawing"
	"github.com/yofu/dxf/entity"

	"github.com/piwi3910/FitPrint/internal/model"
)

func TestExportDXF_LinesPerRectangle(t *testing.T) {
	path := filepath.Join(t.TempDir(), "cut.dxf")
	require.NoError(t, ExportDXF(path, buildTestLayout(), 20))

	d, err := dxf.Open(path)
	require.NoError(t, err)

	var lines []*entity.Line
	for _, e := range d.Entities() {
		if l, ok := e.(*entity.Line); ok {
			lines = append(lines, l)
		}
	}
	// 2 page outlines and 3 prints.
	assert.Len(t, lines, 4*5)

	// The first print sits at the top of page 1, so its bottom edge is at
	// 277 - 150 in DXF coordinates.
	found := false
	for _, l := range lines {
		if l.Start[0] == 0 && l.Start[1] == 127 && l.End[0] == 100 && l.End[1] == 127 {
			found = true
		}
	}
	assert.True(t, found, "expected mirrored bottom edge of the first print")

	// Page 2 starts one page width plus the gap to the right.
	var maxX float64
	for _, l := range lines {
		if l.End[0] > maxX {
			maxX = l.End[0]
		}
	}
	assert.Equal(t, 190.0+20+190, maxX)
}

func TestDXFRect_FourLines(t *testing.T) {
	var d *drawing.Drawing = dxf.NewDrawing()
	require.NoError(t, dxfRect(d, 10, 20, 30, 40))

	var lines int
	for _, e := range d.Entities() {
		if _, ok := e.(*entity.Line); ok {
			lines++
		}
	}
	assert.Equal(t, 4, lines)
}

func TestExportDXF_EmptyLayout(t *testing.T) {
	path := filepath.Join(t.TempDir(), "empty.dxf")
	assert.Error(t, ExportDXF(path, model.Layout{}, 10))
}
