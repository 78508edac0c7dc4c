package youtube

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"strings"

	"channel-stats/domain/dto"
	"channel-stats/domain/model"
	"channel-stats/domain/repository"
	"channel-stats/infrastructure/logger"

	"google.golang.org/api/googleapi"
	"google.golang.org/api/googleapi/transport"
	"google.golang.org/api/option"
	"google.golang.org/api/youtube/v3"
)

var (
	channelParts  = []string{"snippet", "contentDetails", "statistics"}
	playlistParts = []string{"snippet", "contentDetails"}
	videoParts    = []string{"snippet", "contentDetails", "statistics"}
)

// Client represents YouTube API client
type Client struct {
	service    *youtube.Service
	httpClient *http.Client
}

// Config represents YouTube API configuration
type Config struct {
	APIKey string `json:"api_key"`
	// Endpoint overrides the API root, e.g. "https://youtube.googleapis.com/".
	Endpoint string `json:"endpoint"`
	// HTTPClient supplies the base transport; the API key is layered on top.
	HTTPClient *http.Client `json:"-"`
}

// NewYouTubeClient creates a read-only client authenticated with a developer key
func NewYouTubeClient(ctx context.Context, config *Config) (repository.IYouTube, error) {
	if config == nil || config.APIKey == "" {
		return nil, fmt.Errorf("%w: YouTube API key is required", model.ErrInvalidArgument)
	}

	base := http.DefaultTransport
	if config.HTTPClient != nil && config.HTTPClient.Transport != nil {
		base = config.HTTPClient.Transport
	}
	httpClient := &http.Client{Transport: &transport.APIKey{Key: config.APIKey, Transport: base}}

	opts := []option.ClientOption{option.WithHTTPClient(httpClient)}
	if config.Endpoint != "" {
		endpoint := config.Endpoint
		if !strings.HasSuffix(endpoint, "/") {
			endpoint += "/"
		}
		opts = append(opts, option.WithEndpoint(endpoint))
	}

	service, err := youtube.NewService(ctx, opts...)
	if err != nil {
		return nil, fmt.Errorf("failed to create YouTube service with API key: %w", err)
	}

	return &Client{
		service:    service,
		httpClient: httpClient,
	}, nil
}

// GetChannel looks up a single channel by id
func (c *Client) GetChannel(ctx context.Context, channelID string) (*dto.ChannelItem, error) {
	q := url.Values{}
	q.Set("part", strings.Join(channelParts, ","))
	q.Set("id", channelID)

	var response dto.ChannelListResponse
	if err := c.getJSON(ctx, "channels", q, &response); err != nil {
		return nil, fmt.Errorf("%w: get channel %s: %w", model.ErrFetchFailed, channelID, err)
	}
	if len(response.Items) == 0 {
		return nil, fmt.Errorf("%w: %s", model.ErrChannelNotFound, channelID)
	}
	return &response.Items[0], nil
}

// ListPlaylistItems fetches one page of a playlist
func (c *Client) ListPlaylistItems(ctx context.Context, playlistID, pageToken string, maxResults int64) (*dto.PlaylistPage, error) {
	if maxResults <= 0 || maxResults > repository.MaxPageSize {
		maxResults = repository.MaxPageSize
	}

	call := c.service.PlaylistItems.List(playlistParts).
		PlaylistId(playlistID).
		MaxResults(maxResults).
		Context(ctx)
	if pageToken != "" {
		call = call.PageToken(pageToken)
	}

	response, err := call.Do()
	if err != nil {
		return nil, fmt.Errorf("%w: list playlist items %s: %w", model.ErrFetchFailed, playlistID, err)
	}

	page := &dto.PlaylistPage{
		Items:         make([]dto.PlaylistEntry, 0, len(response.Items)),
		NextPageToken: response.NextPageToken,
	}
	if response.PageInfo != nil {
		page.TotalResults = response.PageInfo.TotalResults
	}
	for _, item := range response.Items {
		var entry dto.PlaylistEntry
		if item.ContentDetails != nil {
			entry.VideoID = item.ContentDetails.VideoId
		}
		if item.Snippet != nil {
			entry.Position = item.Snippet.Position
			if entry.VideoID == "" && item.Snippet.ResourceId != nil {
				entry.VideoID = item.Snippet.ResourceId.VideoId
			}
		}
		page.Items = append(page.Items, entry)
	}
	return page, nil
}

// ListVideos fetches snippet and statistics for up to 50 videos
func (c *Client) ListVideos(ctx context.Context, videoIDs []string) ([]dto.VideoItem, error) {
	if len(videoIDs) == 0 {
		return nil, nil
	}
	if len(videoIDs) > repository.MaxPageSize {
		return nil, fmt.Errorf("%w: %d video ids in one request, max %d", model.ErrInvalidArgument, len(videoIDs), repository.MaxPageSize)
	}

	q := url.Values{}
	q.Set("part", strings.Join(videoParts, ","))
	q.Set("id", strings.Join(videoIDs, ","))
	q.Set("maxResults", fmt.Sprint(repository.MaxPageSize))

	var response dto.VideoListResponse
	if err := c.getJSON(ctx, "videos", q, &response); err != nil {
		return nil, fmt.Errorf("%w: list videos: %w", model.ErrFetchFailed, err)
	}
	return response.Items, nil
}

// getJSON performs a GET against the v3 resource and decodes the body keeping
// numbers as json.Number. Channels and videos are read this way because the
// generated structs turn an absent counter into 0.
func (c *Client) getJSON(ctx context.Context, resource string, q url.Values, out interface{}) error {
	q.Set("alt", "json")
	q.Set("prettyPrint", "false")
	u := c.service.BasePath + "youtube/v3/" + resource + "?" + q.Encode()

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, u, nil)
	if err != nil {
		return err
	}
	req.Header.Set("Accept", "application/json")

	res, err := c.httpClient.Do(req)
	if err != nil {
		return err
	}
	defer googleapi.CloseBody(res)
	if err := googleapi.CheckResponse(res); err != nil {
		logger.GetLogger().WithField("resource", resource).WithField("status", res.StatusCode).Warn("YouTube API returned an error")
		return err
	}

	dec := json.NewDecoder(res.Body)
	dec.UseNumber()
	if err := dec.Decode(out); err != nil {
		return fmt.Errorf("decode %s response: %w", resource, err)
	}
	return nil
}
