package repository

import (
	"context"

	"channel-stats/domain/model"
)

// ISnapshot stores the tables of one run
type ISnapshot interface {
	Save(ctx context.Context, runID string, report *model.Report) error
}
