package usecase

import (
	"context"
	"errors"
	"fmt"

	"channel-stats/domain/model"
	"channel-stats/domain/repository"
	"channel-stats/infrastructure/logger"
)

// IChannelUseCase defines the channel statistics operations
type IChannelUseCase interface {
	GetChannelStats(ctx context.Context, channelID string) (*model.ChannelSummary, error)
	BuildChannelTable(ctx context.Context, channelIDs []string) (model.ChannelTable, error)
}

// ChannelUseCase implements IChannelUseCase
type ChannelUseCase struct {
	youtubeRepo repository.IYouTube
}

// NewChannelUseCase creates a new channel use case instance
func NewChannelUseCase(youtubeRepo repository.IYouTube) IChannelUseCase {
	return &ChannelUseCase{youtubeRepo: youtubeRepo}
}

// GetChannelStats looks up one channel and flattens it into a summary
func (u *ChannelUseCase) GetChannelStats(ctx context.Context, channelID string) (*model.ChannelSummary, error) {
	if channelID == "" {
		return nil, fmt.Errorf("%w: channel id is empty", model.ErrInvalidArgument)
	}

	item, err := u.youtubeRepo.GetChannel(ctx, channelID)
	if err != nil {
		if errors.Is(err, model.ErrChannelNotFound) {
			return nil, err
		}
		return nil, wrapFetch("channel "+channelID, err)
	}
	if item == nil {
		return nil, fmt.Errorf("%w: %s", model.ErrChannelNotFound, channelID)
	}

	summary := toChannelSummary(item)
	if summary.ChannelID == "" {
		summary.ChannelID = channelID
	}
	return &summary, nil
}

// BuildChannelTable fetches the channels one after another in the given
// order. The first failure aborts the whole table.
func (u *ChannelUseCase) BuildChannelTable(ctx context.Context, channelIDs []string) (model.ChannelTable, error) {
	table := make(model.ChannelTable, 0, len(channelIDs))
	for _, id := range channelIDs {
		summary, err := u.GetChannelStats(ctx, id)
		if err != nil {
			return nil, fmt.Errorf("build channel table: %w", err)
		}
		table = append(table, *summary)
	}
	logger.GetLogger().WithField("channels", len(table)).Info("Channel table built")
	return table, nil
}
