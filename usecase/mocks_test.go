package usecase_test

import (
	"context"
	"encoding/json"
	"fmt"
	"sort"
	"strconv"
	"strings"

	"channel-stats/domain/dto"
	"channel-stats/domain/model"

	"github.com/stretchr/testify/mock"
)

// MockYouTube is a testify mock of repository.IYouTube
type MockYouTube struct {
	mock.Mock
}

func (m *MockYouTube) GetChannel(ctx context.Context, channelID string) (*dto.ChannelItem, error) {
	args := m.Called(ctx, channelID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*dto.ChannelItem), args.Error(1)
}

func (m *MockYouTube) ListPlaylistItems(ctx context.Context, playlistID, pageToken string, maxResults int64) (*dto.PlaylistPage, error) {
	args := m.Called(ctx, playlistID, pageToken, maxResults)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*dto.PlaylistPage), args.Error(1)
}

func (m *MockYouTube) ListVideos(ctx context.Context, videoIDs []string) ([]dto.VideoItem, error) {
	args := m.Called(ctx, videoIDs)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]dto.VideoItem), args.Error(1)
}

// fakePlaylist serves a playlist of ids from memory and records every call.
type fakePlaylist struct {
	ids []string
	// noDetails lists ids the videos call does not return.
	noDetails map[string]bool
	// stuckToken, when set, is returned as next token by every page.
	stuckToken string
	stats      map[string]map[string]interface{}
	published  map[string]string

	pageTokens []string
	batches    [][]string
}

func newFakePlaylist(n int) *fakePlaylist {
	f := &fakePlaylist{
		noDetails: map[string]bool{},
		stats:     map[string]map[string]interface{}{},
		published: map[string]string{},
	}
	for i := 0; i < n; i++ {
		f.ids = append(f.ids, fmt.Sprintf("vid%03d", i))
	}
	return f
}

func (f *fakePlaylist) GetChannel(ctx context.Context, channelID string) (*dto.ChannelItem, error) {
	return nil, fmt.Errorf("%w: %s", model.ErrChannelNotFound, channelID)
}

func (f *fakePlaylist) ListPlaylistItems(ctx context.Context, playlistID, pageToken string, maxResults int64) (*dto.PlaylistPage, error) {
	f.pageTokens = append(f.pageTokens, pageToken)

	start := 0
	if pageToken != "" && pageToken != f.stuckToken {
		start, _ = strconv.Atoi(strings.TrimPrefix(pageToken, "p"))
	}
	end := min(start+int(maxResults), len(f.ids))

	page := &dto.PlaylistPage{TotalResults: int64(len(f.ids))}
	for i := start; i < end; i++ {
		page.Items = append(page.Items, dto.PlaylistEntry{VideoID: f.ids[i], Position: int64(i)})
	}
	switch {
	case f.stuckToken != "":
		page.NextPageToken = f.stuckToken
	case end < len(f.ids):
		page.NextPageToken = fmt.Sprintf("p%d", end)
	}
	return page, nil
}

// ListVideos answers in reverse order so callers have to restore the batch order.
func (f *fakePlaylist) ListVideos(ctx context.Context, videoIDs []string) ([]dto.VideoItem, error) {
	f.batches = append(f.batches, append([]string(nil), videoIDs...))

	var items []dto.VideoItem
	for _, id := range videoIDs {
		if f.noDetails[id] {
			continue
		}
		items = append(items, f.item(id))
	}
	sort.SliceStable(items, func(i, j int) bool { return items[i].ID > items[j].ID })
	return items, nil
}

func (f *fakePlaylist) item(id string) dto.VideoItem {
	var item dto.VideoItem
	item.ID = id
	item.Snippet.Title = "Title " + id
	item.Snippet.PublishedAt = "2021-03-01T12:00:00Z"
	if p, ok := f.published[id]; ok {
		item.Snippet.PublishedAt = p
	}
	item.Statistics = map[string]interface{}{
		"viewCount":    json.Number("100"),
		"likeCount":    json.Number("10"),
		"commentCount": json.Number("1"),
	}
	if s, ok := f.stats[id]; ok {
		item.Statistics = s
	}
	return item
}
