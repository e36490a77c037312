package metrics

import (
	"testing"

	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
)

// shared global collectors, tests compare against values before the call

func TestRecordCycle(t *testing.T) {
	before := testutil.ToFloat64(CyclesTotal.WithLabelValues("completed"))
	skippedBefore := testutil.ToFloat64(CyclesTotal.WithLabelValues("skipped"))

	RecordCycle("completed", 0.5)
	RecordCycle("skipped", 0)

	assert.InDelta(t, before+1, testutil.ToFloat64(CyclesTotal.WithLabelValues("completed")), 1e-9)
	assert.InDelta(t, skippedBefore+1, testutil.ToFloat64(CyclesTotal.WithLabelValues("skipped")), 1e-9)
	assert.Equal(t, 1, testutil.CollectAndCount(CycleDuration))
}

func TestRecordChannelSend(t *testing.T) {
	okBefore := testutil.ToFloat64(ChannelSendsTotal.WithLabelValues("email", "ok"))
	errBefore := testutil.ToFloat64(ChannelSendsTotal.WithLabelValues("email", "error"))

	RecordChannelSend("email", true)
	RecordChannelSend("email", false)
	RecordChannelSend("email", false)

	assert.InDelta(t, okBefore+1, testutil.ToFloat64(ChannelSendsTotal.WithLabelValues("email", "ok")), 1e-9)
	assert.InDelta(t, errBefore+2, testutil.ToFloat64(ChannelSendsTotal.WithLabelValues("email", "error")), 1e-9)
}

func TestRecordReaction(t *testing.T) {
	appliedBefore := testutil.ToFloat64(ReactionsTotal.WithLabelValues("like", "applied"))
	clearedBefore := testutil.ToFloat64(ReactionsTotal.WithLabelValues("like", "cleared"))

	RecordReaction("like", false)
	RecordReaction("like", true)

	assert.InDelta(t, appliedBefore+1, testutil.ToFloat64(ReactionsTotal.WithLabelValues("like", "applied")), 1e-9)
	assert.InDelta(t, clearedBefore+1, testutil.ToFloat64(ReactionsTotal.WithLabelValues("like", "cleared")), 1e-9)
}

func TestRecordCounters(t *testing.T) {
	decayBefore := testutil.ToFloat64(DecayedProfilesTotal)
	articlesBefore := testutil.ToFloat64(ArticlesCollectedTotal.WithLabelValues("SPORTS"))
	deliveriesBefore := testutil.ToFloat64(DeliveriesTotal.WithLabelValues("SENT"))
	usersBefore := testutil.ToFloat64(UsersTotal.WithLabelValues("delivered"))

	RecordDecay(3)
	RecordArticles("SPORTS", 5)
	RecordDelivery("SENT")
	RecordUser("delivered")

	assert.InDelta(t, decayBefore+3, testutil.ToFloat64(DecayedProfilesTotal), 1e-9)
	assert.InDelta(t, articlesBefore+5, testutil.ToFloat64(ArticlesCollectedTotal.WithLabelValues("SPORTS")), 1e-9)
	assert.InDelta(t, deliveriesBefore+1, testutil.ToFloat64(DeliveriesTotal.WithLabelValues("SENT")), 1e-9)
	assert.InDelta(t, usersBefore+1, testutil.ToFloat64(UsersTotal.WithLabelValues("delivered")), 1e-9)
}
