package filecsv

import (
	"encoding/csv"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strconv"
	"time"

	"channel-stats/domain/model"
	"channel-stats/infrastructure/logger"
)

const (
	ChannelsFile = "channels.csv"
	PlaylistFile = "playlist.csv"
)

var (
	channelHeader  = []string{"channel_id", "channel_title", "view_count", "subscriber_count", "video_count", "playlist_id"}
	playlistHeader = []string{"video_id", "title", "published_date", "view", "like", "dislike", "comment"}
)

// NewFile creates (or truncates) the file at path, creating parent directories.
func NewFile(path string) (*os.File, error) {
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		logger.GetLogger().WithField("error", err).Error("Error while creating directory")
		return nil, err
	}
	file, err := os.OpenFile(path, os.O_CREATE|os.O_WRONLY|os.O_TRUNC, 0o644)
	if err != nil {
		logger.GetLogger().WithField("error", err).Error("Error while open file")
		return nil, err
	}

	return file, nil
}

// WriteReport writes the channel table and the playlist table of report into dir.
func WriteReport(dir string, report *model.Report) ([]string, error) {
	channels := filepath.Join(dir, ChannelsFile)
	if err := writeRows(channels, channelHeader, channelRows(report.Channels)); err != nil {
		return nil, err
	}
	playlist := filepath.Join(dir, PlaylistFile)
	if err := writeRows(playlist, playlistHeader, playlistRows(report.Playlist)); err != nil {
		return nil, err
	}
	return []string{channels, playlist}, nil
}

func channelRows(table model.ChannelTable) [][]string {
	rows := make([][]string, 0, len(table))
	for _, c := range table {
		rows = append(rows, []string{
			c.ChannelID,
			c.Title,
			cell(c.ViewCount),
			cell(c.SubscriberCount),
			cell(c.VideoCount),
			c.UploadsPlaylistID,
		})
	}
	return rows
}

func playlistRows(table model.PlaylistTable) [][]string {
	rows := make([][]string, 0, len(table))
	for _, v := range table {
		rows = append(rows, []string{
			v.VideoID,
			v.Title,
			v.PublishedAt.UTC().Format(time.RFC3339),
			cell(v.Views),
			cell(v.Likes),
			cell(v.Dislikes),
			cell(v.Comments),
		})
	}
	return rows
}

// cell renders a missing count as an empty cell.
func cell(v *int64) string {
	if v == nil {
		return ""
	}
	return strconv.FormatInt(*v, 10)
}

func writeRows(path string, header []string, rows [][]string) error {
	file, err := NewFile(path)
	if err != nil {
		return fmt.Errorf("failed to open %s: %w", path, err)
	}
	if err := writeCSV(file, header, rows); err != nil {
		_ = file.Close()
		return fmt.Errorf("failed to write %s: %w", path, err)
	}
	if err := file.Close(); err != nil {
		return fmt.Errorf("failed to close %s: %w", path, err)
	}
	return nil
}

func writeCSV(w io.Writer, header []string, rows [][]string) error {
	cw := csv.NewWriter(w)
	if err := cw.Write(header); err != nil {
		return err
	}
	return cw.WriteAll(rows)
}
