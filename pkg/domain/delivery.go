package domain

import "time"

// DeliveryStatus represents the state of a delivery record
type DeliveryStatus string

// delivery statuses, PENDING moves to exactly one of the terminal ones
const (
	StatusPending DeliveryStatus = "PENDING"
	StatusSent    DeliveryStatus = "SENT"
	StatusFailed  DeliveryStatus = "FAILED"
)

// IsTerminal reports whether no further transitions are allowed
func (s DeliveryStatus) IsTerminal() bool {
	return s == StatusSent || s == StatusFailed
}

// ReactionType represents user feedback on a delivered article
type ReactionType string

const (
	ReactionNone    ReactionType = ""
	ReactionLike    ReactionType = "like"
	ReactionDislike ReactionType = "dislike"
)

// Valid reports whether the reaction is like or dislike
func (r ReactionType) Valid() bool {
	return r == ReactionLike || r == ReactionDislike
}

// Delta returns the score adjustment for the reaction
func (r ReactionType) Delta() float64 {
	switch r {
	case ReactionLike:
		return 1.0
	case ReactionDislike:
		return -1.0
	default:
		return 0
	}
}

// DeliveryRecord is a ledger entry for one attempt to deliver one article (or manual message) to one user.
// Existence of a record for (UserID, ArticleFingerprint) excludes the article from future candidates.
type DeliveryRecord struct {
	ID                 string             `json:"id"`
	UserID             string             `json:"userId"`
	ArticleFingerprint string             `json:"articleFingerprint,omitempty"`
	Category           string             `json:"category,omitempty"`
	Source             string             `json:"source,omitempty"`
	Title              string             `json:"title,omitempty"`
	Subject            string             `json:"subject"`
	Message            string             `json:"message"`
	Channels           []Channel          `json:"channels"`
	Status             DeliveryStatus     `json:"status"`
	CreatedAt          time.Time          `json:"createdAt"`
	SentAt             *time.Time         `json:"sentAt,omitempty"`
	ChannelMessageRef  string             `json:"channelMessageRef,omitempty"`
	ChannelRefs        map[Channel]string `json:"channelRefs,omitempty"` // per-channel message references
	Reaction           ReactionType       `json:"reaction,omitempty"`
}

// Reaction is an inbound feedback event
type Reaction struct {
	UserID     string
	Type       ReactionType
	Category   string
	Source     string
	Title      string
	MessageRef string // optional, record id or any channel message reference of the record
}

// ReactionResult describes what happened to a reaction
type ReactionResult struct {
	Applied  bool   // score delta applied to the profile
	Cleared  bool   // same reaction submitted twice, stored flag removed
	RecordID string // correlated delivery record, if any
}

// DeliveryStats is an aggregated view of the delivery ledger
type DeliveryStats struct {
	Total          int                    `json:"total"`
	UniqueUsers    int                    `json:"uniqueUsers"`
	ByStatus       map[DeliveryStatus]int `json:"byStatus"`
	ByChannel      map[Channel]int        `json:"byChannel"`
	Likes          int                    `json:"likes"`
	Dislikes       int                    `json:"dislikes"`
	SentLast24h    int                    `json:"sentLast24h"`
	SentLast7d     int                    `json:"sentLast7d"`
	DailyBreakdown []DailyCount           `json:"dailyBreakdown"` // last 7 days, oldest first
	Recent         []DeliveryRecord       `json:"recent"`
}

// DailyCount is the number of records sent on a day
type DailyCount struct {
	Date string `json:"date"` // YYYY-MM-DD, UTC
	Sent int    `json:"sent"`
}
