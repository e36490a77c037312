package domain

import (
	"crypto/sha1" //nolint:gosec // fingerprint is a dedup key, not a security primitive
	"encoding/hex"
	"time"
)

// Article represents a syndicated content item collected from a feed.
// Articles are immutable once stored, the Fingerprint is the dedup key across the system.
type Article struct {
	ID          int64
	Category    string
	Title       string
	Description string
	Link        string
	Source      string
	PublishedAt time.Time // zero if the feed didn't provide it
	Fingerprint string
	IngestedAt  time.Time
}

// Fingerprint derives the content fingerprint from title and link
func Fingerprint(title, link string) string {
	h := sha1.Sum([]byte(title + link)) //nolint:gosec // see import comment
	return hex.EncodeToString(h[:])
}

// HasPublished reports whether the publish time is known
func (a *Article) HasPublished() bool {
	return !a.PublishedAt.IsZero()
}
