package youtube

import (
	"context"
	"encoding/json"
	"net/http"
	"strings"
	"testing"
)

func TestSearch_IgnoresUnexpectedFields(t *testing.T) {
	client := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		writeJSON(t, w, map[string]interface{}{
			"kind": "youtube#searchListResponse",
			"etag": "xyz",
			"items": []map[string]interface{}{
				{
					"id": map[string]interface{}{"kind": "youtube#video", "videoId": "v1"},
					"snippet": map[string]interface{}{
						"channelId":          "UC123",
						"title":              "Test Video",
						"newFieldFromGoogle": "surprise feature!",
						"anotherNewField":    []string{"we", "added", "this"},
					},
				},
			},
			"experimentalSection": map[string]interface{}{"optIn": true},
		})
	}))

	ids, err := client.SearchChannelIDs(context.Background(), "test")
	if err != nil {
		t.Fatalf("discovery should survive new fields in the API response, got error: %v", err)
	}
	if len(ids) != 1 || ids[0] != "UC123" {
		t.Errorf("expected [UC123] despite unexpected fields, got %v", ids)
	}
}

func TestSearch_HandlesEmptyResponse(t *testing.T) {
	client := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		writeJSON(t, w, map[string]interface{}{"kind": "youtube#searchListResponse"})
	}))

	ids, err := client.SearchChannelIDs(context.Background(), "obscure keyword")
	if err != nil {
		t.Fatalf("a keyword with no results is not an error, got: %v", err)
	}
	if len(ids) != 0 {
		t.Errorf("expected no channel IDs, got %v", ids)
	}
}

func TestSearch_SkipsResultsWithoutChannel(t *testing.T) {
	client := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		writeJSON(t, w, map[string]interface{}{
			"items": []map[string]interface{}{
				{"id": map[string]interface{}{"kind": "youtube#playlist", "playlistId": "PL1"}},
				searchItem("video", "UC9"),
			},
		})
	}))

	ids, err := client.SearchChannelIDs(context.Background(), "mixed results")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(ids) != 1 || ids[0] != "UC9" {
		t.Errorf("results without a channel must be skipped, got %v", ids)
	}
}

func TestSearch_ServerErrorMentionsAPI(t *testing.T) {
	client := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusServiceUnavailable)
		_, _ = w.Write([]byte("Service temporarily unavailable"))
	}))

	_, err := client.SearchChannelIDs(context.Background(), "anything")
	if err == nil {
		t.Fatal("expected error when the API is down")
	}
	errMsg := strings.ToLower(err.Error())
	if !strings.Contains(errMsg, "api") && !strings.Contains(errMsg, "503") {
		t.Errorf("error should identify the API failure, got: %v", err)
	}
}

func TestSearch_RateLimitMentionsLimit(t *testing.T) {
	client := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Retry-After", "60")
		w.WriteHeader(http.StatusTooManyRequests)
		_ = json.NewEncoder(w).Encode(map[string]interface{}{
			"error": map[string]interface{}{"code": 429, "message": "Quota exceeded"},
		})
	}))

	_, err := client.SearchChannelIDs(context.Background(), "anything")
	if err == nil {
		t.Fatal("expected error when rate limited")
	}
	errMsg := strings.ToLower(err.Error())
	if !strings.Contains(errMsg, "rate") && !strings.Contains(errMsg, "quota") {
		t.Errorf("error should indicate rate limiting, got: %v", err)
	}
}

func TestSearch_HandlesMalformedJSON(t *testing.T) {
	client := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{"invalid": json}`))
	}))

	_, err := client.SearchChannelIDs(context.Background(), "anything")
	if err == nil {
		t.Fatal("expected error for malformed response")
	}
	if strings.Contains(err.Error(), "panic") {
		t.Error("malformed response should be handled gracefully, not panic")
	}
}

func TestSearch_HandlesTruncatedResponse(t *testing.T) {
	client := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{"items": [{"id": {"videoId": "v1"}, "snippet": {"channelId": "UC`))
	}))

	_, err := client.SearchChannelIDs(context.Background(), "anything")
	if err == nil {
		t.Fatal("expected error for truncated response")
	}
}

func TestChannelProfiles_SkipsItemsMissingStatistics(t *testing.T) {
	client := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		writeJSON(t, w, map[string]interface{}{
			"items": []map[string]interface{}{
				{
					"id":      "UC1",
					"snippet": map[string]interface{}{"title": "No Stats Channel"},
				},
				{
					"id":         "UC2",
					"snippet":    map[string]interface{}{"title": "Complete Channel", "country": "FR"},
					"statistics": map[string]interface{}{"subscriberCount": "7000", "hiddenSubscriberCount": false},
				},
			},
		})
	}))

	profiles, err := client.ChannelProfiles(context.Background(), []string{"UC1", "UC2"})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if _, ok := profiles["UC1"]; ok {
		t.Error("items without statistics must be skipped, not parsed as zero values")
	}
	if p := profiles["UC2"]; p.Subscribers != 7000 {
		t.Errorf("complete items should still parse, got %+v", p)
	}
}

func TestVideoStats_HandlesNullFields(t *testing.T) {
	client := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		writeJSON(t, w, map[string]interface{}{
			"items": []map[string]interface{}{
				{
					"id":         "vid1",
					"snippet":    nil,
					"statistics": map[string]interface{}{"viewCount": "10"},
				},
				{
					"id":         "vid2",
					"snippet":    map[string]interface{}{"publishedAt": "2024-03-01T00:00:00Z"},
					"statistics": map[string]interface{}{"viewCount": "20"},
				},
			},
		})
	}))

	stats, err := client.VideoStats(context.Background(), []string{"vid1", "vid2"})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if _, ok := stats["vid1"]; ok {
		t.Error("videos with null snippets must be skipped, not parsed as zero values")
	}
	if s := stats["vid2"]; s.Views != 20 {
		t.Errorf("intact videos should still parse, got %+v", s)
	}
}
