package model

import (
	"sort"
	"strings"
)

// ChannelTable has one row per channel, in the order the ids were configured.
type ChannelTable []ChannelSummary

// SelectMostVideos returns the first channel holding the highest video count.
// Channels without a video count never win.
func (t ChannelTable) SelectMostVideos() (ChannelSummary, bool) {
	var (
		best  ChannelSummary
		found bool
	)
	for _, row := range t {
		if row.VideoCount == nil {
			continue
		}
		if !found || *row.VideoCount > *best.VideoCount {
			best = row
			found = true
		}
	}
	return best, found
}

// Find returns the row for channelID.
func (t ChannelTable) Find(channelID string) (ChannelSummary, bool) {
	for _, row := range t {
		if row.ChannelID == channelID {
			return row, true
		}
	}
	return ChannelSummary{}, false
}

// PlaylistTable holds the video records of one playlist in playlist order.
type PlaylistTable []VideoRecord

// DropMissingComments returns a copy without the rows whose comment count is missing.
func (t PlaylistTable) DropMissingComments() PlaylistTable {
	out := make(PlaylistTable, 0, len(t))
	for _, row := range t {
		if row.Comments == nil {
			continue
		}
		out = append(out, row)
	}
	return out
}

// MonthCount is the number of videos released in one "YYYY-MM" month.
type MonthCount struct {
	Month string `json:"year_month"`
	Count int    `json:"size"`
}

// MonthlyReleaseCounts groups the table by release month, ascending, and keeps
// the months accepted by filter.
func (t PlaylistTable) MonthlyReleaseCounts(filter MonthFilter) []MonthCount {
	counts := make(map[string]int)
	for _, row := range t {
		counts[row.YearMonth()]++
	}
	months := make([]string, 0, len(counts))
	for month := range counts {
		months = append(months, month)
	}
	sort.Strings(months)

	out := make([]MonthCount, 0, len(months))
	for _, month := range months {
		if !filter.Accept(month) {
			continue
		}
		out = append(out, MonthCount{Month: month, Count: counts[month]})
	}
	return out
}

// TopByViews returns the n most viewed rows. Rows without a view count sort last.
func (t PlaylistTable) TopByViews(n int) PlaylistTable {
	sorted := make(PlaylistTable, len(t))
	copy(sorted, t)
	sort.SliceStable(sorted, func(i, j int) bool {
		a, b := sorted[i].Views, sorted[j].Views
		if a == nil {
			return false
		}
		if b == nil {
			return true
		}
		return *a > *b
	})
	if n >= 0 && n < len(sorted) {
		sorted = sorted[:n]
	}
	return sorted
}

// MonthFilterMode selects how MonthFilter matches a "YYYY-MM" key.
type MonthFilterMode string

const (
	// MonthFilterLexical keeps every key that sorts after Bound as a plain
	// string. With the default bound "2021-00" this also keeps "2021-13" and
	// "2022-01"; it is kept as the default to match the published charts.
	MonthFilterLexical MonthFilterMode = "lexical"
	// MonthFilterYear keeps the keys whose year equals Year.
	MonthFilterYear MonthFilterMode = "year"
)

// MonthFilter restricts monthly release counts to one period.
type MonthFilter struct {
	Mode  MonthFilterMode
	Bound string
	Year  string
}

// DefaultMonthFilter is the lexical "> 2021-00" filter.
func DefaultMonthFilter() MonthFilter {
	return MonthFilter{Mode: MonthFilterLexical, Bound: "2021-00", Year: "2021"}
}

// Accept reports whether month passes the filter.
func (f MonthFilter) Accept(month string) bool {
	switch f.Mode {
	case MonthFilterYear:
		return strings.HasPrefix(month, f.Year+"-")
	default:
		return month > f.Bound
	}
}

// Label is the period name used in chart titles: the configured year in year
// mode, the year part of Bound otherwise.
func (f MonthFilter) Label() string {
	if f.Mode == MonthFilterYear || f.Bound == "" {
		return f.Year
	}
	return strings.SplitN(f.Bound, "-", 2)[0]
}
