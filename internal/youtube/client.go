// Package youtube provides a client for the YouTube Data API v3.
//
// This package enables tuberfind to:
// - Search for channels relevant to a keyword
// - Fetch channel profiles (subscribers, country) in batched lookups
// - Locate a channel's most recent upload
// - Fetch upload dates and view counts in batched lookups
package youtube

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"strings"
	"time"

	"golang.org/x/time/rate"
	"google.golang.org/api/googleapi"
	"google.golang.org/api/option"
	ytv3 "google.golang.org/api/youtube/v3"
)

const (
	// maxBatchIDs is the most IDs channels.list and videos.list accept per call.
	maxBatchIDs = 50

	// maxPageSize is the most results search.list returns per page.
	maxPageSize = 50

	// activityProbeSize is how many recent activities to scan for the latest
	// upload. activities.list costs one unit regardless of page size.
	activityProbeSize = 5

	defaultSearchInterval = 500 * time.Millisecond
)

// searchTypes are queried in order for every keyword: a video search surfaces
// the channels behind matching uploads, a channel search surfaces channels
// matched by name or description.
var searchTypes = []string{"video", "channel"}

// ClientOption configures the Client.
type ClientOption func(*Client)

// WithEndpoint points the client at a custom API endpoint (useful for testing).
func WithEndpoint(url string) ClientOption {
	return func(c *Client) {
		c.endpoint = url
	}
}

// WithPageSize sets the number of results requested per search page (1-50).
func WithPageSize(n int64) ClientOption {
	return func(c *Client) {
		c.pageSize = n
	}
}

// WithSearchPages sets the number of result pages fetched per search query.
func WithSearchPages(n int) ClientOption {
	return func(c *Client) {
		c.searchPages = n
	}
}

// WithSearchInterval sets the minimum delay between search calls.
// Zero or negative disables pacing.
func WithSearchInterval(d time.Duration) ClientOption {
	return func(c *Client) {
		c.searchInterval = d
	}
}

// Client is a YouTube Data API client tuned for low-quota channel discovery.
type Client struct {
	svc            *ytv3.Service
	limiter        *rate.Limiter
	usage          usageCounter
	endpoint       string
	pageSize       int64
	searchPages    int
	searchInterval time.Duration
}

// NewClient creates a client authenticated with the given API key.
func NewClient(ctx context.Context, apiKey string, opts ...ClientOption) (*Client, error) {
	if apiKey == "" {
		return nil, errors.New("API key is required")
	}

	c := &Client{
		pageSize:       maxPageSize,
		searchPages:    1,
		searchInterval: defaultSearchInterval,
	}

	for _, opt := range opts {
		opt(c)
	}

	if c.pageSize < 1 || c.pageSize > maxPageSize {
		return nil, fmt.Errorf("page size must be between 1 and %d, got %d", maxPageSize, c.pageSize)
	}
	if c.searchPages < 1 {
		return nil, fmt.Errorf("search pages must be at least 1, got %d", c.searchPages)
	}

	apiOpts := []option.ClientOption{option.WithAPIKey(apiKey)}
	if c.endpoint != "" {
		apiOpts = append(apiOpts, option.WithEndpoint(c.endpoint))
	}

	svc, err := ytv3.NewService(ctx, apiOpts...)
	if err != nil {
		return nil, fmt.Errorf("failed to create youtube service: %w", err)
	}

	c.svc = svc
	c.limiter = rate.NewLimiter(rate.Every(c.searchInterval), 1)
	return c, nil
}

// SearchChannelIDs runs the discovery searches for one keyword and returns
// the channel IDs they surface, deduplicated within the keyword and ordered
// as the API returned them. Every page fetched costs 100 quota units.
func (c *Client) SearchChannelIDs(ctx context.Context, keyword string) ([]string, error) {
	seen := make(map[string]bool)
	var ids []string

	for _, searchType := range searchTypes {
		pageToken := ""
		for page := 0; page < c.searchPages; page++ {
			if err := c.limiter.Wait(ctx); err != nil {
				return nil, err
			}

			call := c.svc.Search.List([]string{"snippet"}).
				Q(keyword).
				Type(searchType).
				MaxResults(c.pageSize).
				Context(ctx)
			if pageToken != "" {
				call = call.PageToken(pageToken)
			}

			c.usage.searches.Add(1)
			resp, err := call.Do()
			if err != nil {
				return nil, fmt.Errorf("search %q (type=%s) failed: %w", keyword, searchType, apiError(err))
			}

			for _, item := range resp.Items {
				id := channelIDOf(item)
				if id == "" || seen[id] {
					continue
				}
				seen[id] = true
				ids = append(ids, id)
			}

			pageToken = resp.NextPageToken
			if pageToken == "" {
				break
			}
		}
	}

	return ids, nil
}

// ChannelProfiles fetches subscriber counts and countries for the given
// channel IDs, batching up to 50 IDs per call (one quota unit each). IDs the
// API does not return (deleted or terminated channels) are absent from the
// result. Profiles from successful batches are returned even when other
// batches fail; the joined batch errors come back alongside them.
func (c *Client) ChannelProfiles(ctx context.Context, ids []string) (map[string]Profile, error) {
	profiles := make(map[string]Profile, len(ids))
	var errs []error

	for start := 0; start < len(ids); start += maxBatchIDs {
		batch := ids[start:min(start+maxBatchIDs, len(ids))]

		c.usage.channels.Add(1)
		resp, err := c.svc.Channels.List([]string{"snippet", "statistics"}).
			Id(strings.Join(batch, ",")).
			Context(ctx).
			Do()
		if err != nil {
			errs = append(errs, fmt.Errorf("channel lookup for %d ids failed: %w", len(batch), apiError(err)))
			if ctx.Err() != nil {
				break
			}
			continue
		}

		for _, item := range resp.Items {
			if item.Snippet == nil || item.Statistics == nil {
				continue
			}
			profiles[item.Id] = Profile{
				ID:          item.Id,
				Title:       item.Snippet.Title,
				Subscribers: subscriberCount(item.Statistics),
				Country:     item.Snippet.Country,
			}
		}
	}

	return profiles, errors.Join(errs...)
}

// LatestUploadID returns the video ID of the channel's most recent upload
// (one quota unit), or "" when the channel has none. Equal activity
// timestamps break toward the higher video ID.
func (c *Client) LatestUploadID(ctx context.Context, channelID string) (string, error) {
	c.usage.activities.Add(1)
	resp, err := c.svc.Activities.List([]string{"snippet", "contentDetails"}).
		ChannelId(channelID).
		MaxResults(activityProbeSize).
		Context(ctx).
		Do()
	if err != nil {
		return "", fmt.Errorf("activity lookup for channel %s failed: %w", channelID, apiError(err))
	}

	var bestID string
	var bestAt time.Time
	for _, item := range resp.Items {
		id := uploadVideoID(item)
		if id == "" {
			continue
		}
		var at time.Time
		if item.Snippet != nil {
			at, _ = time.Parse(time.RFC3339, item.Snippet.PublishedAt)
		}
		switch {
		case bestID == "":
			bestID, bestAt = id, at
		case at.After(bestAt):
			bestID, bestAt = id, at
		case at.Equal(bestAt) && id > bestID:
			bestID = id
		}
	}

	return bestID, nil
}

// VideoStats fetches publication dates and view counts for the given video
// IDs, batching up to 50 IDs per call (one quota unit each). IDs the API does
// not return are absent from the result. Like ChannelProfiles, it returns
// what it could fetch alongside any batch errors.
func (c *Client) VideoStats(ctx context.Context, ids []string) (map[string]VideoStats, error) {
	stats := make(map[string]VideoStats, len(ids))
	var errs []error

	for start := 0; start < len(ids); start += maxBatchIDs {
		batch := ids[start:min(start+maxBatchIDs, len(ids))]

		c.usage.videos.Add(1)
		resp, err := c.svc.Videos.List([]string{"snippet", "statistics"}).
			Id(strings.Join(batch, ",")).
			Context(ctx).
			Do()
		if err != nil {
			errs = append(errs, fmt.Errorf("video lookup for %d ids failed: %w", len(batch), apiError(err)))
			if ctx.Err() != nil {
				break
			}
			continue
		}

		for _, item := range resp.Items {
			if item.Snippet == nil || item.Statistics == nil {
				continue
			}
			publishedAt, _ := time.Parse(time.RFC3339, item.Snippet.PublishedAt)
			stats[item.Id] = VideoStats{
				PublishedAt: publishedAt,
				Views:       int64(item.Statistics.ViewCount),
			}
		}
	}

	return stats, errors.Join(errs...)
}

// Usage reports the API calls attempted so far and their quota cost.
func (c *Client) Usage() Usage {
	return c.usage.snapshot()
}

// channelIDOf extracts the channel ID from a search result of either type.
func channelIDOf(item *ytv3.SearchResult) string {
	if item.Id != nil && item.Id.ChannelId != "" {
		return item.Id.ChannelId
	}
	if item.Snippet != nil {
		return item.Snippet.ChannelId
	}
	return ""
}

// subscriberCount maps hidden subscriber counts to zero.
func subscriberCount(stats *ytv3.ChannelStatistics) int64 {
	if stats.HiddenSubscriberCount {
		return 0
	}
	return int64(stats.SubscriberCount)
}

// uploadVideoID digs the uploaded video ID out of an activity. Older channels
// report uploads as playlist items rather than upload events.
func uploadVideoID(item *ytv3.Activity) string {
	if item.ContentDetails == nil {
		return ""
	}
	if u := item.ContentDetails.Upload; u != nil && u.VideoId != "" {
		return u.VideoId
	}
	if p := item.ContentDetails.PlaylistItem; p != nil && p.ResourceId != nil {
		return p.ResourceId.VideoId
	}
	return ""
}

// apiError prefixes googleapi errors with a hint the operator can act on.
func apiError(err error) error {
	var gerr *googleapi.Error
	if !errors.As(err, &gerr) {
		return err
	}
	switch gerr.Code {
	case http.StatusBadRequest:
		return fmt.Errorf("request rejected, check the API key: %w", err)
	case http.StatusForbidden:
		return fmt.Errorf("access denied, daily quota may be exhausted: %w", err)
	case http.StatusNotFound:
		return fmt.Errorf("resource not found: %w", err)
	case http.StatusTooManyRequests:
		return fmt.Errorf("rate limit exceeded: %w", err)
	default:
		return err
	}
}
