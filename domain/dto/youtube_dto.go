package dto

// ChannelListResponse is the raw body of channels.list
type ChannelListResponse struct {
	Items []ChannelItem `json:"items"`
}

// ChannelItem is one channel resource as returned by the API.
// Statistics stays a map so that absent counters can be told apart from zero.
type ChannelItem struct {
	ID      string `json:"id"`
	Snippet struct {
		Title string `json:"title"`
	} `json:"snippet"`
	ContentDetails struct {
		RelatedPlaylists struct {
			Uploads string `json:"uploads"`
		} `json:"relatedPlaylists"`
	} `json:"contentDetails"`
	Statistics map[string]interface{} `json:"statistics"`
}

// PlaylistPage is one page of playlistItems.list.
// An empty NextPageToken means there are no further pages.
type PlaylistPage struct {
	Items         []PlaylistEntry `json:"items"`
	NextPageToken string          `json:"next_page_token,omitempty"`
	TotalResults  int64           `json:"total_results"`
}

// PlaylistEntry is the part of a playlist item the collector needs
type PlaylistEntry struct {
	VideoID  string `json:"video_id"`
	Position int64  `json:"position"`
}

// VideoListResponse is the raw body of videos.list
type VideoListResponse struct {
	Items []VideoItem `json:"items"`
}

// VideoItem is one video resource as returned by the API.
type VideoItem struct {
	ID      string `json:"id"`
	Snippet struct {
		Title       string `json:"title"`
		PublishedAt string `json:"publishedAt"`
	} `json:"snippet"`
	Statistics map[string]interface{} `json:"statistics"`
}
