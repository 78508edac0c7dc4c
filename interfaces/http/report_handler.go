package http

import (
	"bytes"
	"errors"
	"io"
	"net/http"

	"channel-stats/domain/model"
	"channel-stats/infrastructure/chart"
	"channel-stats/infrastructure/logger"

	"github.com/gin-gonic/gin"
)

// ChartRenderer draws one chart
type ChartRenderer interface {
	Render(w io.Writer, c model.BarChart) error
}

// IReportHandler defines the HTTP handlers that expose a finished report
type IReportHandler interface {
	GetChannels(ctx *gin.Context)
	GetPlaylist(ctx *gin.Context)
	ListCharts(ctx *gin.Context)
	GetChart(ctx *gin.Context)
}

// ReportHandler serves one report built at startup. It never calls the API.
type ReportHandler struct {
	report   *model.Report
	charts   []model.BarChart
	renderer ChartRenderer
}

// NewReportHandler creates a new report handler instance
func NewReportHandler(report *model.Report, charts []model.BarChart, renderer ChartRenderer) IReportHandler {
	return &ReportHandler{
		report:   report,
		charts:   charts,
		renderer: renderer,
	}
}

// GetChannels handles GET /api/report/channels
func (h *ReportHandler) GetChannels(ctx *gin.Context) {
	ctx.JSON(http.StatusOK, gin.H{
		"success":  true,
		"selected": h.report.Selected.ChannelID,
		"data":     h.report.Channels,
	})
}

// GetPlaylist handles GET /api/report/playlist
func (h *ReportHandler) GetPlaylist(ctx *gin.Context) {
	ctx.JSON(http.StatusOK, gin.H{
		"success": true,
		"dropped": h.report.Dropped,
		"data":    h.report.Playlist,
	})
}

// ListCharts handles GET /api/report/charts
func (h *ReportHandler) ListCharts(ctx *gin.Context) {
	type chartInfo struct {
		Name  string `json:"name"`
		Title string `json:"title"`
		Bars  int    `json:"bars"`
	}
	out := make([]chartInfo, 0, len(h.charts))
	for _, c := range h.charts {
		out = append(out, chartInfo{Name: c.Name, Title: c.Title, Bars: len(c.Bars)})
	}
	ctx.JSON(http.StatusOK, gin.H{
		"success": true,
		"data":    out,
	})
}

// GetChart handles GET /api/report/charts/:name and answers with a PNG
func (h *ReportHandler) GetChart(ctx *gin.Context) {
	name := ctx.Param("name")
	var found *model.BarChart
	for i := range h.charts {
		if h.charts[i].Name == name {
			found = &h.charts[i]
			break
		}
	}
	if found == nil {
		ctx.JSON(http.StatusNotFound, gin.H{
			"error": "Chart not found",
		})
		return
	}

	var buf bytes.Buffer
	if err := h.renderer.Render(&buf, *found); err != nil {
		if errors.Is(err, chart.ErrEmptyChart) {
			ctx.JSON(http.StatusNotFound, gin.H{
				"error":   "Chart has no data",
				"message": err.Error(),
			})
			return
		}
		logger.GetLogger().WithField("chart", name).WithField("error", err).Error("Failed to render chart")
		ctx.JSON(http.StatusInternalServerError, gin.H{
			"error":   "Failed to render chart",
			"message": err.Error(),
		})
		return
	}
	ctx.Data(http.StatusOK, "image/png", buf.Bytes())
}
