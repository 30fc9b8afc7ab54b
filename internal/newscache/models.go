package newscache

import "time"

type Source struct {
	Name string `json:"name"`
}

// Article matches the backend wire shape, which is also what cache records
// carry. PublishedAt stays a raw string so records round-trip untouched;
// PublishedTime parses it on demand.
type Article struct {
	Title       string `json:"title"`
	Description string `json:"description"`
	URL         string `json:"url"`
	ImageURL    string `json:"urlToImage,omitempty"`
	Source      Source `json:"source"`
	PublishedAt string `json:"publishedAt,omitempty"`
}

var pubDateLayouts = []string{
	time.RFC1123,  // Mon, 02 Jan 2006 15:04:05 GMT
	time.RFC1123Z, // Mon, 02 Jan 2006 15:04:05 -0700
	time.RFC3339,
}

// PublishedTime parses the publication timestamp. ok is false when the
// field is empty or in none of the known layouts.
func (a Article) PublishedTime() (t time.Time, ok bool) {
	for _, layout := range pubDateLayouts {
		if t, err := time.Parse(layout, a.PublishedAt); err == nil {
			return t, true
		}
	}
	return time.Time{}, false
}

// Entry is the persisted cache record for one user key.
type Entry struct {
	Articles []Article `json:"articles"`
	Topics   []string  `json:"topics"`
	CachedAt int64     `json:"cachedAt"` // epoch milliseconds
	UserID   string    `json:"userId"`
}

// CachedTime converts the epoch-millisecond stamp back to a time.Time.
func (e Entry) CachedTime() time.Time {
	return time.UnixMilli(e.CachedAt)
}
