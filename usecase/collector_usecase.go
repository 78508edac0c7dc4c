package usecase

import (
	"context"
	"errors"
	"fmt"

	"channel-stats/domain/dto"
	"channel-stats/domain/model"
	"channel-stats/domain/repository"
	"channel-stats/infrastructure/logger"
)

// ICollectorUseCase walks a playlist and returns one record per listed video
type ICollectorUseCase interface {
	CollectPlaylistRecords(ctx context.Context, playlistID string, expectedCount int64) ([]model.VideoRecord, error)
}

// CollectorUseCase implements ICollectorUseCase on top of the Data API client
type CollectorUseCase struct {
	youtubeRepo repository.IYouTube
}

// NewCollectorUseCase creates a new collector
func NewCollectorUseCase(youtubeRepo repository.IYouTube) ICollectorUseCase {
	return &CollectorUseCase{youtubeRepo: youtubeRepo}
}

// CollectPlaylistRecords pages through playlistID and fetches details for the
// listed videos in batches of at most 50 ids.
//
// expectedCount bounds the number of page requests to ceil(expectedCount/50).
// Paging also stops when the API hands out no next token or repeats the one
// just used. Records come back in playlist order; ids the detail call does not
// know are left out.
func (u *CollectorUseCase) CollectPlaylistRecords(ctx context.Context, playlistID string, expectedCount int64) ([]model.VideoRecord, error) {
	if playlistID == "" {
		return nil, fmt.Errorf("%w: playlist id is empty", model.ErrInvalidArgument)
	}
	if expectedCount < 0 {
		return nil, fmt.Errorf("%w: expected count %d is negative", model.ErrInvalidArgument, expectedCount)
	}

	log := logger.GetLogger().WithField("playlist_id", playlistID)

	var (
		records   []model.VideoRecord
		pending   []string
		pageToken string
		listed    int
	)
	flush := func(ids []string) error {
		batch, err := u.fetchBatch(ctx, ids)
		if err != nil {
			return err
		}
		records = append(records, batch...)
		return nil
	}

	for page := 0; int64(page)*repository.MaxPageSize < expectedCount; page++ {
		resp, err := u.youtubeRepo.ListPlaylistItems(ctx, playlistID, pageToken, repository.MaxPageSize)
		if err != nil {
			return nil, wrapFetch(fmt.Sprintf("playlist %s page %d", playlistID, page), err)
		}
		for _, item := range resp.Items {
			if item.VideoID == "" {
				continue
			}
			pending = append(pending, item.VideoID)
			listed++
		}
		for len(pending) >= repository.MaxPageSize {
			if err := flush(pending[:repository.MaxPageSize]); err != nil {
				return nil, err
			}
			pending = pending[repository.MaxPageSize:]
		}
		if resp.NextPageToken == "" || resp.NextPageToken == pageToken {
			break
		}
		pageToken = resp.NextPageToken
	}
	if len(pending) > 0 {
		if err := flush(pending); err != nil {
			return nil, err
		}
	}

	log.WithField("listed", listed).WithField("records", len(records)).Info("Collected playlist records")
	return records, nil
}

// fetchBatch requests details for ids and returns them in the order of ids.
func (u *CollectorUseCase) fetchBatch(ctx context.Context, ids []string) ([]model.VideoRecord, error) {
	items, err := u.youtubeRepo.ListVideos(ctx, ids)
	if err != nil {
		return nil, wrapFetch(fmt.Sprintf("details for %d videos", len(ids)), err)
	}

	byID := make(map[string]dto.VideoItem, len(items))
	for _, item := range items {
		byID[item.ID] = item
	}

	out := make([]model.VideoRecord, 0, len(ids))
	for _, id := range ids {
		item, ok := byID[id]
		if !ok {
			logger.GetLogger().WithField("video_id", id).Debug("No details returned for video")
			continue
		}
		record, err := toVideoRecord(item)
		if err != nil {
			logger.GetLogger().WithField("video_id", id).WithField("error", err).Warn("Skipping video with unreadable publish date")
			continue
		}
		out = append(out, record)
	}
	return out, nil
}

// wrapFetch makes sure a client failure carries model.ErrFetchFailed exactly once.
// Caller errors keep their own sentinel.
func wrapFetch(what string, err error) error {
	if errors.Is(err, model.ErrFetchFailed) || errors.Is(err, model.ErrInvalidArgument) {
		return fmt.Errorf("%s: %w", what, err)
	}
	return fmt.Errorf("%w: %s: %w", model.ErrFetchFailed, what, err)
}
