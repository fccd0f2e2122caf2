package youtube

import "time"

// Profile is the lightweight channel metadata used for filtering.
type Profile struct {
	ID          string `json:"id"`
	Title       string `json:"title"`
	Subscribers int64  `json:"subscribers"`
	Country     string `json:"country"`
}

// VideoStats holds a video's publication date and view count.
type VideoStats struct {
	PublishedAt time.Time `json:"published_at"`
	Views       int64     `json:"views"`
}
