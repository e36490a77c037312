// Package metrics provides prometheus collectors for delivery cycles, channel sends and reactions.
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

const namespace = "newsdrop"

var (
	// CyclesTotal counts delivery cycles by result (completed, skipped, failed)
	CyclesTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "cycles_total",
			Help:      "Total number of delivery cycles",
		},
		[]string{"result"},
	)

	// CycleDuration measures delivery cycle duration
	CycleDuration = promauto.NewHistogram(
		prometheus.HistogramOpts{
			Namespace: namespace,
			Name:      "cycle_duration_seconds",
			Help:      "Duration of delivery cycles in seconds",
			Buckets:   prometheus.DefBuckets,
		},
	)

	// UsersTotal counts per-user outcomes within cycles (delivered, no_candidates, error)
	UsersTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "users_total",
			Help:      "Total number of processed eligible users by outcome",
		},
		[]string{"outcome"},
	)

	// DeliveriesTotal counts ledger records by final status
	DeliveriesTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "deliveries_total",
			Help:      "Total number of deliveries by status",
		},
		[]string{"status"},
	)

	// ChannelSendsTotal counts channel adapter calls
	ChannelSendsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "channel_sends_total",
			Help:      "Total number of channel sends by channel and result",
		},
		[]string{"channel", "result"},
	)

	// ReactionsTotal counts ingested reactions by type and effect (applied, cleared)
	ReactionsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "reactions_total",
			Help:      "Total number of user reactions",
		},
		[]string{"type", "effect"},
	)

	// DecayedProfilesTotal counts profiles processed by decay passes
	DecayedProfilesTotal = promauto.NewCounter(
		prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "decayed_profiles_total",
			Help:      "Total number of profiles decayed",
		},
	)

	// ArticlesCollectedTotal counts new articles stored by the feed collector
	ArticlesCollectedTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "articles_collected_total",
			Help:      "Total number of new articles collected by category",
		},
		[]string{"category"},
	)
)

// RecordCycle records a finished delivery cycle
func RecordCycle(result string, seconds float64) {
	CyclesTotal.WithLabelValues(result).Inc()
	if result != "skipped" {
		CycleDuration.Observe(seconds)
	}
}

// RecordUser records the outcome of a single user in a cycle
func RecordUser(outcome string) {
	UsersTotal.WithLabelValues(outcome).Inc()
}

// RecordDelivery records a delivery record reaching its final status
func RecordDelivery(status string) {
	DeliveriesTotal.WithLabelValues(status).Inc()
}

// RecordChannelSend records a single channel send
func RecordChannelSend(channel string, ok bool) {
	result := "ok"
	if !ok {
		result = "error"
	}
	ChannelSendsTotal.WithLabelValues(channel, result).Inc()
}

// RecordReaction records an ingested reaction
func RecordReaction(reactionType string, cleared bool) {
	effect := "applied"
	if cleared {
		effect = "cleared"
	}
	ReactionsTotal.WithLabelValues(reactionType, effect).Inc()
}

// RecordDecay records the number of profiles decayed in one pass
func RecordDecay(profiles int) {
	DecayedProfilesTotal.Add(float64(profiles))
}

// RecordArticles records newly stored articles of a category
func RecordArticles(category string, count int) {
	ArticlesCollectedTotal.WithLabelValues(category).Add(float64(count))
}
