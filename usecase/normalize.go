package usecase

import (
	"fmt"
	"time"

	"channel-stats/domain/dto"
	"channel-stats/domain/model"
	"channel-stats/infrastructure/logger"
	"channel-stats/infrastructure/utils"
)

// coerceCount runs one statistics field through TryParseInt and logs the
// diagnostic when the value is unusable. The record keeps a nil count.
func coerceCount(subject, field string, stats map[string]interface{}) *int64 {
	v, diag := utils.TryParseInt(field, stats[field])
	if diag != nil {
		logger.GetLogger().
			WithField("subject", subject).
			WithField("field", diag.Field).
			WithField("value", diag.Value).
			WithField("reason", diag.Reason).
			Warn("Statistic is not a usable integer")
	}
	return v
}

func toChannelSummary(item *dto.ChannelItem) model.ChannelSummary {
	return model.ChannelSummary{
		ChannelID:         item.ID,
		Title:             item.Snippet.Title,
		ViewCount:         coerceCount(item.ID, "viewCount", item.Statistics),
		SubscriberCount:   coerceCount(item.ID, "subscriberCount", item.Statistics),
		VideoCount:        coerceCount(item.ID, "videoCount", item.Statistics),
		UploadsPlaylistID: item.ContentDetails.RelatedPlaylists.Uploads,
	}
}

func toVideoRecord(item dto.VideoItem) (model.VideoRecord, error) {
	published, err := time.Parse(time.RFC3339Nano, item.Snippet.PublishedAt)
	if err != nil {
		return model.VideoRecord{}, fmt.Errorf("video %s: bad publishedAt %q: %w", item.ID, item.Snippet.PublishedAt, err)
	}
	return model.VideoRecord{
		VideoID:     item.ID,
		Title:       item.Snippet.Title,
		PublishedAt: published,
		Views:       coerceCount(item.ID, "viewCount", item.Statistics),
		Likes:       coerceCount(item.ID, "likeCount", item.Statistics),
		Dislikes:    coerceCount(item.ID, "dislikeCount", item.Statistics),
		Comments:    coerceCount(item.ID, "commentCount", item.Statistics),
	}, nil
}
