package chart

import (
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"

	"channel-stats/domain/model"
	"channel-stats/infrastructure/logger"

	gochart "github.com/wcharczuk/go-chart/v2"
)

// ErrEmptyChart is returned for a chart without bars; go-chart cannot draw one.
var ErrEmptyChart = errors.New("chart has no bars")

const (
	minWidth   = 1024
	height     = 512
	barWidth   = 60
	barSpacing = 20
	// labelRoom leaves space under the axis for wrapped labels.
	labelRoom = 160
)

// Renderer draws model.BarChart values as PNG images
type Renderer struct{}

// NewRenderer creates a PNG renderer
func NewRenderer() *Renderer {
	return &Renderer{}
}

// Render writes chart to w as PNG.
func (r *Renderer) Render(w io.Writer, chart model.BarChart) error {
	if len(chart.Bars) == 0 {
		return fmt.Errorf("%s: %w", chart.Name, ErrEmptyChart)
	}

	maxValue := 0.0
	values := make([]gochart.Value, 0, len(chart.Bars))
	for _, bar := range chart.Bars {
		if bar.Value > maxValue {
			maxValue = bar.Value
		}
		values = append(values, gochart.Value{Label: bar.Label, Value: bar.Value})
	}
	// go-chart rejects a zero data range, e.g. when every bar is 0.
	yMax := maxValue * 1.1
	if yMax <= 0 {
		yMax = 1
	}

	width := len(values)*(barWidth+barSpacing) + 2*barWidth
	if width < minWidth {
		width = minWidth
	}

	graph := gochart.BarChart{
		Title:      chart.Title,
		Width:      width,
		Height:     height + labelRoom,
		BarWidth:   barWidth,
		BarSpacing: barSpacing,
		Background: gochart.Style{
			Padding: gochart.Box{Top: 40, Left: 16, Right: 16, Bottom: labelRoom},
		},
		YAxis: gochart.YAxis{
			Name:  chart.YName,
			Range: &gochart.ContinuousRange{Min: 0, Max: yMax},
		},
		Bars: values,
	}

	if err := graph.Render(gochart.PNG, w); err != nil {
		return fmt.Errorf("render chart %s: %w", chart.Name, err)
	}
	return nil
}

// WriteAll renders every chart into dir as <name>.png and returns the paths
// written. Empty charts are skipped with a warning.
func (r *Renderer) WriteAll(dir string, charts []model.BarChart) ([]string, error) {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("failed to create chart directory %s: %w", dir, err)
	}

	var written []string
	for _, c := range charts {
		path := filepath.Join(dir, c.Name+".png")
		if err := r.writeFile(path, c); err != nil {
			if errors.Is(err, ErrEmptyChart) {
				logger.GetLogger().WithField("chart", c.Name).Warn("Skipping chart without data")
				continue
			}
			return written, err
		}
		written = append(written, path)
	}
	logger.GetLogger().WithField("dir", dir).WithField("charts", len(written)).Info("Charts written")
	return written, nil
}

func (r *Renderer) writeFile(path string, c model.BarChart) error {
	if len(c.Bars) == 0 {
		return fmt.Errorf("%s: %w", c.Name, ErrEmptyChart)
	}
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("failed to create %s: %w", path, err)
	}
	if err := r.Render(f, c); err != nil {
		_ = f.Close()
		_ = os.Remove(path)
		return err
	}
	return f.Close()
}
