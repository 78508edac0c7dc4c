package model

import "time"

// ChannelSummary is the flattened statistics record of one channel.
// A nil count means the API did not report a usable number.
type ChannelSummary struct {
	ChannelID         string `json:"channel_id"`
	Title             string `json:"channel_title"`
	ViewCount         *int64 `json:"view_count"`
	SubscriberCount   *int64 `json:"subscriber_count"`
	VideoCount        *int64 `json:"video_count"`
	UploadsPlaylistID string `json:"playlist_id"`
}

// VideoRecord is the flattened statistics record of one uploaded video
type VideoRecord struct {
	VideoID     string    `json:"video_id"`
	Title       string    `json:"title"`
	PublishedAt time.Time `json:"published_date"`
	Views       *int64    `json:"view"`
	Likes       *int64    `json:"like"`
	Dislikes    *int64    `json:"dislike"`
	Comments    *int64    `json:"comment"`
}

// YearMonth renders the publish date the way monthly grouping keys it.
func (v VideoRecord) YearMonth() string {
	return v.PublishedAt.UTC().Format("2006-01")
}

// Report holds the tables assembled by one run.
type Report struct {
	Channels ChannelTable   `json:"channels"`
	Selected ChannelSummary `json:"selected"`
	Playlist PlaylistTable  `json:"playlist"`
	// Dropped counts playlist rows removed by the cleaning pass.
	Dropped int `json:"dropped"`
}

// Int64 returns a pointer to v.
func Int64(v int64) *int64 {
	return &v
}
