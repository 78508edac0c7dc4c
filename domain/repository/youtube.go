package repository

import (
	"context"

	"channel-stats/domain/dto"
)

// MaxPageSize is the largest page playlistItems.list and the largest id batch
// videos.list accept.
const MaxPageSize = 50

// IYouTube defines the read-only YouTube Data API operations the pipeline uses.
// Every transport failure is wrapped with model.ErrFetchFailed.
type IYouTube interface {
	// GetChannel returns model.ErrChannelNotFound when the API lists no item.
	GetChannel(ctx context.Context, channelID string) (*dto.ChannelItem, error)
	// ListPlaylistItems fetches one page; an empty pageToken asks for the first page.
	ListPlaylistItems(ctx context.Context, playlistID, pageToken string, maxResults int64) (*dto.PlaylistPage, error)
	// ListVideos fetches details for at most MaxPageSize ids. Unknown ids are simply absent.
	ListVideos(ctx context.Context, videoIDs []string) ([]dto.VideoItem, error)
}
