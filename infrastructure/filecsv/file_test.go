package filecsv

import (
	"encoding/csv"
	"errors"
	"os"
	"path/filepath"
	"testing"
	"time"

	"channel-stats/domain/model"

	"github.com/stretchr/testify/require"
)

func readCSV(t *testing.T, path string) [][]string {
	t.Helper()
	f, err := os.Open(path)
	require.NoError(t, err)
	defer f.Close()
	rows, err := csv.NewReader(f).ReadAll()
	require.NoError(t, err)
	return rows
}

func TestWriteReport(t *testing.T) {
	dir := filepath.Join(t.TempDir(), "out")
	report := &model.Report{
		Channels: model.ChannelTable{
			{ChannelID: "UC1", Title: "Adele, Official", ViewCount: model.Int64(900), VideoCount: model.Int64(40), UploadsPlaylistID: "UU1"},
		},
		Playlist: model.PlaylistTable{
			{VideoID: "v1", Title: `Hello "live"`, PublishedAt: time.Date(2021, 3, 1, 12, 0, 0, 0, time.UTC), Views: model.Int64(10), Comments: model.Int64(0)},
		},
	}

	paths, err := WriteReport(dir, report)
	require.NoError(t, err)
	require.Equal(t, []string{filepath.Join(dir, ChannelsFile), filepath.Join(dir, PlaylistFile)}, paths)

	channels := readCSV(t, paths[0])
	require.Equal(t, channelHeader, channels[0])
	require.Equal(t, []string{"UC1", "Adele, Official", "900", "", "40", "UU1"}, channels[1])

	playlist := readCSV(t, paths[1])
	require.Equal(t, playlistHeader, playlist[0])
	require.Equal(t, []string{"v1", `Hello "live"`, "2021-03-01T12:00:00Z", "10", "", "", "0"}, playlist[1])
}

func TestNewFile_Truncates(t *testing.T) {
	path := filepath.Join(t.TempDir(), "a.csv")
	require.NoError(t, os.WriteFile(path, []byte("old content that is long"), 0o644))

	f, err := NewFile(path)
	require.NoError(t, err)
	_, err = f.WriteString("new")
	require.NoError(t, err)
	require.NoError(t, f.Close())

	b, err := os.ReadFile(path)
	require.NoError(t, err)
	require.Equal(t, "new", string(b))
}

type failingWriter struct{}

func (failingWriter) Write(p []byte) (int, error) {
	return 0, errors.New("disk full")
}

func TestWriteCSV_ReturnsWriteError(t *testing.T) {
	err := writeCSV(failingWriter{}, channelHeader, [][]string{{"UC1"}})
	require.EqualError(t, err, "disk full")
}

func TestWriteReport_UnwritableDir(t *testing.T) {
	dir := filepath.Join(t.TempDir(), "out")
	require.NoError(t, os.WriteFile(dir, []byte("not a directory"), 0o644))

	_, err := WriteReport(dir, &model.Report{})
	require.Error(t, err)
}
