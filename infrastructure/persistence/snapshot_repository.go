package persistence

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"channel-stats/domain/model"
	"channel-stats/domain/repository"
	"channel-stats/infrastructure/logger"
)

// EnsureSnapshotSchema creates the snapshot tables if they do not exist
func EnsureSnapshotSchema(db *sql.DB) error {
	ddl := []string{
		`CREATE TABLE IF NOT EXISTS channel_snapshot (
        run_id TEXT NOT NULL,
        channel_id TEXT NOT NULL,
        channel_title TEXT NOT NULL,
        view_count BIGINT,
        subscriber_count BIGINT,
        video_count BIGINT,
        playlist_id TEXT,
        selected BOOLEAN NOT NULL DEFAULT FALSE,
        captured_at TIMESTAMPTZ NOT NULL,
        PRIMARY KEY (run_id, channel_id)
    )`,
		`CREATE TABLE IF NOT EXISTS video_snapshot (
        run_id TEXT NOT NULL,
        position INT NOT NULL,
        video_id TEXT NOT NULL,
        title TEXT NOT NULL,
        published_at TIMESTAMPTZ NOT NULL,
        view_count BIGINT,
        like_count BIGINT,
        dislike_count BIGINT,
        comment_count BIGINT,
        captured_at TIMESTAMPTZ NOT NULL,
        PRIMARY KEY (run_id, position)
    )`,
	}
	for _, stmt := range ddl {
		if _, err := db.Exec(stmt); err != nil {
			return fmt.Errorf("create snapshot tables: %w", err)
		}
	}

	if _, err := db.Exec(`CREATE INDEX IF NOT EXISTS idx_video_snapshot_video_id ON video_snapshot(video_id)`); err != nil {
		logger.GetLogger().WithField("error", err).Warn("failed creating idx_video_snapshot_video_id")
	}
	return nil
}

// SnapshotRepository writes the tables of a run to PostgreSQL.
// Rows are only ever inserted; nothing in the pipeline reads them back.
type SnapshotRepository struct {
	db  *sql.DB
	now func() time.Time
}

func NewSnapshotRepository(db *sql.DB) repository.ISnapshot {
	return &SnapshotRepository{db: db, now: time.Now}
}

// Save stores the channel table and the cleaned playlist under runID in one transaction.
func (r *SnapshotRepository) Save(ctx context.Context, runID string, report *model.Report) error {
	if runID == "" {
		return fmt.Errorf("%w: run id is empty", model.ErrInvalidArgument)
	}
	if report == nil {
		return fmt.Errorf("%w: report is nil", model.ErrInvalidArgument)
	}

	capturedAt := r.now().UTC()
	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("begin snapshot: %w", err)
	}
	defer func() { _ = tx.Rollback() }()

	for _, c := range report.Channels {
		_, err := tx.ExecContext(ctx, `INSERT INTO channel_snapshot(run_id, channel_id, channel_title, view_count, subscriber_count, video_count, playlist_id, selected, captured_at)
          VALUES ($1,$2,$3,$4,$5,$6,$7,$8,$9)`,
			runID, c.ChannelID, c.Title, nullInt(c.ViewCount), nullInt(c.SubscriberCount), nullInt(c.VideoCount),
			c.UploadsPlaylistID, c.ChannelID == report.Selected.ChannelID, capturedAt)
		if err != nil {
			return fmt.Errorf("insert channel %s: %w", c.ChannelID, err)
		}
	}

	for i, v := range report.Playlist {
		_, err := tx.ExecContext(ctx, `INSERT INTO video_snapshot(run_id, position, video_id, title, published_at, view_count, like_count, dislike_count, comment_count, captured_at)
          VALUES ($1,$2,$3,$4,$5,$6,$7,$8,$9,$10)`,
			runID, i, v.VideoID, v.Title, v.PublishedAt.UTC(), nullInt(v.Views), nullInt(v.Likes), nullInt(v.Dislikes), nullInt(v.Comments), capturedAt)
		if err != nil {
			return fmt.Errorf("insert video %s: %w", v.VideoID, err)
		}
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("commit snapshot: %w", err)
	}

	logger.GetLogger().
		WithField("run_id", runID).
		WithField("channels", len(report.Channels)).
		WithField("videos", len(report.Playlist)).
		Info("Snapshot saved")
	return nil
}

// nullInt maps a missing count to SQL NULL.
func nullInt(v *int64) sql.NullInt64 {
	if v == nil {
		return sql.NullInt64{}
	}
	return sql.NullInt64{Int64: *v, Valid: true}
}
