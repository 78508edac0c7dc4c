package chart

import (
	"bytes"
	"os"
	"path/filepath"
	"testing"

	"channel-stats/domain/model"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var pngMagic = []byte{0x89, 'P', 'N', 'G', '\r', '\n', 0x1a, '\n'}

func TestRender_WritesPNG(t *testing.T) {
	var buf bytes.Buffer
	err := NewRenderer().Render(&buf, model.BarChart{
		Name:  "view_count",
		Title: "VIEW_COUNT",
		Bars: []model.Bar{
			{Label: "Adele", Value: 900},
			{Label: "Drake", Value: 700},
		},
	})
	require.NoError(t, err)
	require.True(t, bytes.HasPrefix(buf.Bytes(), pngMagic))
}

func TestRender_AllZeroValues(t *testing.T) {
	var buf bytes.Buffer
	err := NewRenderer().Render(&buf, model.BarChart{
		Name: "video_count",
		Bars: []model.Bar{{Label: "a", Value: 0}, {Label: "b", Value: 0}},
	})
	require.NoError(t, err)
	require.True(t, bytes.HasPrefix(buf.Bytes(), pngMagic))
}

func TestRender_EmptyChart(t *testing.T) {
	err := NewRenderer().Render(&bytes.Buffer{}, model.BarChart{Name: "monthly_releases"})
	require.ErrorIs(t, err, ErrEmptyChart)
}

func TestWriteAll_SkipsEmptyCharts(t *testing.T) {
	dir := filepath.Join(t.TempDir(), "charts")
	charts := []model.BarChart{
		{Name: "view_count", Bars: []model.Bar{{Label: "a", Value: 1}}},
		{Name: "top_views"},
	}

	written, err := NewRenderer().WriteAll(dir, charts)
	require.NoError(t, err)
	assert.Equal(t, []string{filepath.Join(dir, "view_count.png")}, written)

	_, err = os.Stat(filepath.Join(dir, "top_views.png"))
	assert.True(t, os.IsNotExist(err))
}
