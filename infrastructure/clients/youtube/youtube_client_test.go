package youtube

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"channel-stats/domain/model"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"google.golang.org/api/googleapi"
)

const testKey = "test-key"

func newTestClient(t *testing.T, handler http.HandlerFunc) *Client {
	t.Helper()
	srv := httptest.NewServer(handler)
	t.Cleanup(srv.Close)

	repo, err := NewYouTubeClient(context.Background(), &Config{
		APIKey:     testKey,
		Endpoint:   srv.URL,
		HTTPClient: srv.Client(),
	})
	require.NoError(t, err)
	return repo.(*Client)
}

func TestNewYouTubeClient_RequiresAPIKey(t *testing.T) {
	_, err := NewYouTubeClient(context.Background(), &Config{})
	require.ErrorIs(t, err, model.ErrInvalidArgument)
}

func TestClient_GetChannel(t *testing.T) {
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/youtube/v3/channels", r.URL.Path)
		assert.Equal(t, testKey, r.URL.Query().Get("key"))
		assert.Equal(t, "snippet,contentDetails,statistics", r.URL.Query().Get("part"))
		assert.Equal(t, "UC1", r.URL.Query().Get("id"))
		_, _ = w.Write([]byte(`{"items":[{"id":"UC1",
			"snippet":{"title":"Artist One"},
			"contentDetails":{"relatedPlaylists":{"uploads":"UU1"}},
			"statistics":{"viewCount":"1000","videoCount":"120","hiddenSubscriberCount":true}}]}`))
	})

	item, err := client.GetChannel(context.Background(), "UC1")
	require.NoError(t, err)
	assert.Equal(t, "Artist One", item.Snippet.Title)
	assert.Equal(t, "UU1", item.ContentDetails.RelatedPlaylists.Uploads)
	assert.Equal(t, "1000", item.Statistics["viewCount"])
	_, hasSubscribers := item.Statistics["subscriberCount"]
	assert.False(t, hasSubscribers)
}

func TestClient_GetChannel_NotFound(t *testing.T) {
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte(`{"items":[]}`))
	})

	_, err := client.GetChannel(context.Background(), "UCmissing")
	require.ErrorIs(t, err, model.ErrChannelNotFound)
	require.False(t, errors.Is(err, model.ErrFetchFailed))
}

func TestClient_GetChannel_TransportFailure(t *testing.T) {
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusForbidden)
		_, _ = w.Write([]byte(`{"error":{"code":403,"message":"quota exceeded"}}`))
	})

	_, err := client.GetChannel(context.Background(), "UC1")
	require.ErrorIs(t, err, model.ErrFetchFailed)

	var apiErr *googleapi.Error
	require.ErrorAs(t, err, &apiErr)
	assert.Equal(t, http.StatusForbidden, apiErr.Code)
}

func TestClient_ListPlaylistItems(t *testing.T) {
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/youtube/v3/playlistItems", r.URL.Path)
		q := r.URL.Query()
		assert.Equal(t, testKey, q.Get("key"))
		assert.Equal(t, "UU1", q.Get("playlistId"))
		assert.Equal(t, "50", q.Get("maxResults"))
		switch q.Get("pageToken") {
		case "":
			_ = json.NewEncoder(w).Encode(map[string]interface{}{
				"nextPageToken": "p2",
				"pageInfo":      map[string]interface{}{"totalResults": 3, "resultsPerPage": 50},
				"items": []interface{}{
					map[string]interface{}{"contentDetails": map[string]interface{}{"videoId": "v1"}, "snippet": map[string]interface{}{"position": 0}},
					map[string]interface{}{"contentDetails": map[string]interface{}{"videoId": "v2"}, "snippet": map[string]interface{}{"position": 1}},
				},
			})
		case "p2":
			_ = json.NewEncoder(w).Encode(map[string]interface{}{
				"items": []interface{}{
					map[string]interface{}{"snippet": map[string]interface{}{"position": 2, "resourceId": map[string]interface{}{"videoId": "v3"}}},
				},
			})
		default:
			t.Errorf("unexpected page token %q", q.Get("pageToken"))
		}
	})

	first, err := client.ListPlaylistItems(context.Background(), "UU1", "", 50)
	require.NoError(t, err)
	assert.Equal(t, "p2", first.NextPageToken)
	assert.Equal(t, int64(3), first.TotalResults)
	require.Len(t, first.Items, 2)
	assert.Equal(t, "v1", first.Items[0].VideoID)
	assert.Equal(t, int64(1), first.Items[1].Position)

	second, err := client.ListPlaylistItems(context.Background(), "UU1", "p2", 500)
	require.NoError(t, err)
	assert.Empty(t, second.NextPageToken)
	require.Len(t, second.Items, 1)
	assert.Equal(t, "v3", second.Items[0].VideoID)
}

func TestClient_ListPlaylistItems_TransportFailure(t *testing.T) {
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusNotFound)
		_, _ = w.Write([]byte(`{"error":{"code":404,"message":"playlistNotFound"}}`))
	})

	_, err := client.ListPlaylistItems(context.Background(), "UUgone", "", 50)
	require.ErrorIs(t, err, model.ErrFetchFailed)
}

func TestClient_ListVideos(t *testing.T) {
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/youtube/v3/videos", r.URL.Path)
		assert.Equal(t, "v1,v2", r.URL.Query().Get("id"))
		_, _ = w.Write([]byte(`{"items":[
			{"id":"v1","snippet":{"title":"Song","publishedAt":"2021-03-01T10:00:00Z"},
			 "statistics":{"viewCount":"10","likeCount":"2","commentCount":"1"}}]}`))
	})

	items, err := client.ListVideos(context.Background(), []string{"v1", "v2"})
	require.NoError(t, err)
	require.Len(t, items, 1)
	assert.Equal(t, "Song", items[0].Snippet.Title)
	assert.Equal(t, "2021-03-01T10:00:00Z", items[0].Snippet.PublishedAt)
	assert.Nil(t, items[0].Statistics["dislikeCount"])
}

func TestClient_ListVideos_Limits(t *testing.T) {
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		t.Error("no request expected")
	})

	items, err := client.ListVideos(context.Background(), nil)
	require.NoError(t, err)
	assert.Empty(t, items)

	ids := strings.Split(strings.Repeat("v,", 51), ",")[:51]
	_, err = client.ListVideos(context.Background(), ids)
	require.ErrorIs(t, err, model.ErrInvalidArgument)
}
