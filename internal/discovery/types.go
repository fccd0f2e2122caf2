// Package discovery implements the channel discovery pipeline.
//
// This package enables tuberfind to:
// - Collect candidate channels from keyword searches
// - Drop duplicate candidates while preserving first-seen order
// - Filter candidates by subscriber minimum and country before any
//   expensive lookup is made
// - Cap how many candidates reach the enrichment stage
// - Join survivors with their latest upload's date and view count
package discovery

import (
	"context"
	"time"

	"github.com/ddddgit/KOL/internal/youtube"
)

// Finder is the slice of the YouTube client the pipeline depends on.
type Finder interface {
	SearchChannelIDs(ctx context.Context, keyword string) ([]string, error)
	ChannelProfiles(ctx context.Context, ids []string) (map[string]youtube.Profile, error)
	LatestUploadID(ctx context.Context, channelID string) (string, error)
	VideoStats(ctx context.Context, ids []string) (map[string]youtube.VideoStats, error)
}

// Record is one finalized output row: a channel that passed every filter,
// joined with its latest upload when it has one. HasVideo is false when the
// channel has no uploads or the lookups for them failed; the publication
// fields are zero in that case.
type Record struct {
	Profile    youtube.Profile `json:"profile"`
	VideoID    string          `json:"video_id,omitempty"`
	VideoDate  time.Time       `json:"video_date,omitempty"`
	VideoViews int64           `json:"video_views,omitempty"`
	HasVideo   bool            `json:"has_video"`
	URL        string          `json:"url"`
}

// RecordSink receives finalized records in enrichment order.
type RecordSink interface {
	Append(rec Record) error
}

// channelURL builds the public channel page URL.
func channelURL(id string) string {
	return "https://www.youtube.com/channel/" + id
}
