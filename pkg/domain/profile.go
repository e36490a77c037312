package domain

import "time"

// DefaultDecayFactor is the multiplier applied to every score on a decay pass
const DefaultDecayFactor = 0.95

// MinRetainedScore is the smallest absolute score kept after decay
const MinRetainedScore = 0.1

// PreferenceProfile holds learned per-user weights. A missing key means score 0.
type PreferenceProfile struct {
	UserID         string
	CategoryScores map[string]float64
	SourceScores   map[string]float64
	KeywordScores  map[string]float64
	TotalLikes     int
	TotalDislikes  int
	DecayFactor    float64
	LastUpdatedAt  time.Time
}

// NewPreferenceProfile makes an empty profile with default decay
func NewPreferenceProfile(userID string) *PreferenceProfile {
	return &PreferenceProfile{
		UserID:         userID,
		CategoryScores: map[string]float64{},
		SourceScores:   map[string]float64{},
		KeywordScores:  map[string]float64{},
		DecayFactor:    DefaultDecayFactor,
	}
}

// ScoreEntry is a single named score, used for ordered summaries
type ScoreEntry struct {
	Name  string  `json:"name"`
	Score float64 `json:"score"`
}

// ProfileSummary is a human oriented view of a profile
type ProfileSummary struct {
	UserID                   string       `json:"userId"`
	Status                   string       `json:"status"`
	Message                  string       `json:"message,omitempty"`
	TotalLikes               int          `json:"totalLikes"`
	TotalDislikes            int          `json:"totalDislikes"`
	LastUpdated              *time.Time   `json:"lastUpdated,omitempty"`
	TopCategories            []ScoreEntry `json:"topCategories"`
	TopSources               []ScoreEntry `json:"topSources"`
	TopKeywords              []ScoreEntry `json:"topKeywords"`
	LeastPreferredCategories []ScoreEntry `json:"leastPreferredCategories"`
}

// profile summary statuses
const (
	ProfileStatusActive = "active"
	ProfileStatusNoData = "no_data"
)
