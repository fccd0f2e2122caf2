package youtube

import "sync/atomic"

// Quota cost per Data API method, in units. search.list is two orders of
// magnitude more expensive than every other call this client makes.
const (
	searchCost     = 100
	channelsCost   = 1
	activitiesCost = 1
	videosCost     = 1
)

// Usage is a snapshot of the API calls a client has attempted, by method,
// plus their combined quota cost.
type Usage struct {
	Searches   int64 `json:"searches"`
	Channels   int64 `json:"channels"`
	Activities int64 `json:"activities"`
	Videos     int64 `json:"videos"`
	Units      int64 `json:"units"`
}

// usageCounter tracks per-method call counts. Counters only grow.
type usageCounter struct {
	searches   atomic.Int64
	channels   atomic.Int64
	activities atomic.Int64
	videos     atomic.Int64
}

func (u *usageCounter) snapshot() Usage {
	usage := Usage{
		Searches:   u.searches.Load(),
		Channels:   u.channels.Load(),
		Activities: u.activities.Load(),
		Videos:     u.videos.Load(),
	}
	usage.Units = usage.Searches*searchCost +
		usage.Channels*channelsCost +
		usage.Activities*activitiesCost +
		usage.Videos*videosCost
	return usage
}
