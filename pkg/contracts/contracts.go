// Package contracts pins the YouTube Data API v3 response shapes this
// project's tests fake. Each contract is a canonical response body, and the
// package tests validate every contract against the schemas in
// youtube-discovery.json (a trimmed copy of Google's Discovery document) so
// the fakes cannot drift from the real API.
package contracts

// SearchVideoContract is a search.list response for type=video queries.
// Channel identity rides in the snippet for video results.
const SearchVideoContract = `{
  "kind": "youtube#searchListResponse",
  "nextPageToken": "CAUQAA",
  "items": [
    {
      "id": {"kind": "youtube#video", "videoId": "dQw4w9WgXcQ"},
      "snippet": {
        "publishedAt": "2024-06-02T10:00:00Z",
        "channelId": "UC1234567890abcdefghijkl",
        "title": "Latte Art Basics",
        "channelTitle": "Home Barista Show"
      }
    }
  ]
}`

// SearchChannelContract is a search.list response for type=channel queries.
// Channel identity rides in the id for channel results.
const SearchChannelContract = `{
  "kind": "youtube#searchListResponse",
  "items": [
    {
      "id": {"kind": "youtube#channel", "channelId": "UC1234567890abcdefghijkl"},
      "snippet": {
        "publishedAt": "2019-03-14T09:00:00Z",
        "channelId": "UC1234567890abcdefghijkl",
        "title": "Home Barista Show",
        "channelTitle": "Home Barista Show"
      }
    }
  ]
}`

// ChannelListContract is a channels.list response with statistics. Counts
// are JSON strings (uint64 in the schema), never numbers.
const ChannelListContract = `{
  "kind": "youtube#channelListResponse",
  "items": [
    {
      "id": "UC1234567890abcdefghijkl",
      "snippet": {"title": "Home Barista Show", "country": "US"},
      "statistics": {"subscriberCount": "52000", "hiddenSubscriberCount": false, "videoCount": "214"}
    }
  ]
}`

// ActivityListContract is an activities.list response carrying one upload
// event and one playlist-item upload (the shape older channels report).
const ActivityListContract = `{
  "kind": "youtube#activityListResponse",
  "items": [
    {
      "snippet": {"type": "upload", "publishedAt": "2024-06-02T10:00:00Z", "channelId": "UC1234567890abcdefghijkl"},
      "contentDetails": {"upload": {"videoId": "dQw4w9WgXcQ"}}
    },
    {
      "snippet": {"type": "playlistItem", "publishedAt": "2024-05-20T08:00:00Z", "channelId": "UC1234567890abcdefghijkl"},
      "contentDetails": {"playlistItem": {"resourceId": {"kind": "youtube#video", "videoId": "xvFZjo5PgG0"}}}
    }
  ]
}`

// VideoListContract is a videos.list response with statistics. View counts
// are JSON strings, like all uint64 statistics.
const VideoListContract = `{
  "kind": "youtube#videoListResponse",
  "items": [
    {
      "id": "dQw4w9WgXcQ",
      "snippet": {"publishedAt": "2024-06-02T10:00:00Z", "channelId": "UC1234567890abcdefghijkl", "title": "Latte Art Basics"},
      "statistics": {"viewCount": "12345"}
    }
  ]
}`
