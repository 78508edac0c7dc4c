package usecase

import (
	"context"
	"fmt"
	"strings"

	"channel-stats/domain/model"
	"channel-stats/infrastructure/logger"
)

// Chart names, also used as file names and in the HTTP routes.
const (
	ChartViewCount       = "view_count"
	ChartSubscriberCount = "subscriber_count"
	ChartVideoCount      = "video_count"
	ChartMonthlyReleases = "monthly_releases"
	ChartTopViews        = "top_views"
)

const defaultTopN = 10

// ReportOptions tune which channel is collected and how the playlist is charted
type ReportOptions struct {
	// ChannelID forces the channel whose playlist is collected.
	ChannelID   string
	MonthFilter model.MonthFilter
	TopN        int
}

// IReportUseCase assembles the tables of one run and derives charts from them
type IReportUseCase interface {
	Build(ctx context.Context, channelIDs []string) (*model.Report, error)
	Charts(report *model.Report) []model.BarChart
}

// ReportUseCase implements IReportUseCase
type ReportUseCase struct {
	channelUseCase   IChannelUseCase
	collectorUseCase ICollectorUseCase
	options          ReportOptions
}

// NewReportUseCase creates a new report use case instance
func NewReportUseCase(channelUseCase IChannelUseCase, collectorUseCase ICollectorUseCase, options ReportOptions) IReportUseCase {
	if options.TopN <= 0 {
		options.TopN = defaultTopN
	}
	if options.MonthFilter.Mode == "" {
		options.MonthFilter = model.DefaultMonthFilter()
	}
	return &ReportUseCase{
		channelUseCase:   channelUseCase,
		collectorUseCase: collectorUseCase,
		options:          options,
	}
}

// Build fetches the channel table, picks a channel, collects its uploads and
// drops playlist rows without a comment count.
func (u *ReportUseCase) Build(ctx context.Context, channelIDs []string) (*model.Report, error) {
	if len(channelIDs) == 0 {
		return nil, fmt.Errorf("%w: no channel ids", model.ErrInvalidArgument)
	}

	channels, err := u.channelUseCase.BuildChannelTable(ctx, channelIDs)
	if err != nil {
		return nil, err
	}

	selected, err := u.selectChannel(channels)
	if err != nil {
		return nil, err
	}

	var expected int64
	if selected.VideoCount != nil {
		expected = *selected.VideoCount
	}
	records, err := u.collectorUseCase.CollectPlaylistRecords(ctx, selected.UploadsPlaylistID, expected)
	if err != nil {
		return nil, fmt.Errorf("collect playlist of %s: %w", selected.ChannelID, err)
	}

	playlist := model.PlaylistTable(records)
	cleaned := playlist.DropMissingComments()

	logger.GetLogger().
		WithField("channel_id", selected.ChannelID).
		WithField("channel_title", selected.Title).
		WithField("records", len(playlist)).
		WithField("dropped", len(playlist)-len(cleaned)).
		Info("Report built")

	return &model.Report{
		Channels: channels,
		Selected: selected,
		Playlist: cleaned,
		Dropped:  len(playlist) - len(cleaned),
	}, nil
}

func (u *ReportUseCase) selectChannel(channels model.ChannelTable) (model.ChannelSummary, error) {
	if u.options.ChannelID != "" {
		selected, ok := channels.Find(u.options.ChannelID)
		if !ok {
			return model.ChannelSummary{}, fmt.Errorf("%w: %s is not in the channel list", model.ErrChannelNotFound, u.options.ChannelID)
		}
		return selected, nil
	}
	selected, ok := channels.SelectMostVideos()
	if !ok {
		return model.ChannelSummary{}, fmt.Errorf("%w: no channel reports a video count", model.ErrChannelNotFound)
	}
	return selected, nil
}

// Charts derives the bar charts from the report as it is now.
func (u *ReportUseCase) Charts(report *model.Report) []model.BarChart {
	if report == nil {
		return nil
	}
	charts := []model.BarChart{
		channelChart(ChartViewCount, report.Channels, func(c model.ChannelSummary) *int64 { return c.ViewCount }),
		channelChart(ChartSubscriberCount, report.Channels, func(c model.ChannelSummary) *int64 { return c.SubscriberCount }),
		channelChart(ChartVideoCount, report.Channels, func(c model.ChannelSummary) *int64 { return c.VideoCount }),
	}

	artist := strings.ToUpper(report.Selected.Title)
	filter := u.options.MonthFilter

	monthly := model.BarChart{
		Name:  ChartMonthlyReleases,
		Title: fmt.Sprintf("%s'S NUMBER OF SONGS IN %s", artist, filter.Label()),
		XName: "year_month",
		YName: "size",
	}
	for _, mc := range report.Playlist.MonthlyReleaseCounts(filter) {
		monthly.Bars = append(monthly.Bars, model.Bar{Label: mc.Month, Value: float64(mc.Count)})
	}
	charts = append(charts, monthly)

	top := model.BarChart{
		Name:  ChartTopViews,
		Title: fmt.Sprintf("%s'S TOP VIEW", artist),
		XName: "view",
		YName: "title",
	}
	for _, row := range report.Playlist.TopByViews(u.options.TopN) {
		if row.Views == nil {
			continue
		}
		top.Bars = append(top.Bars, model.Bar{Label: row.Title, Value: float64(*row.Views)})
	}
	charts = append(charts, top)

	return charts
}

func channelChart(name string, channels model.ChannelTable, value func(model.ChannelSummary) *int64) model.BarChart {
	chart := model.BarChart{
		Name:  name,
		Title: strings.ToUpper(name),
		XName: "channel_title",
		YName: name,
	}
	for _, c := range channels {
		v := value(c)
		if v == nil {
			continue
		}
		chart.Bars = append(chart.Bars, model.Bar{Label: c.Title, Value: float64(*v)})
	}
	return chart
}
