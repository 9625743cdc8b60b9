package metrics

import (
	"testing"

	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
)

func TestRecordRefresh(t *testing.T) {
	before := testutil.ToFloat64(RefreshTotal.WithLabelValues(OutcomeFailure))

	RecordRefresh(OutcomeFailure, 0.25, 0)

	assert.Equal(t, before+1, testutil.ToFloat64(RefreshTotal.WithLabelValues(OutcomeFailure)))
	assert.Equal(t, float64(0), testutil.ToFloat64(Articles))

	RecordRefresh(OutcomeSuccess, 0.1, 12)
	assert.Equal(t, float64(12), testutil.ToFloat64(Articles))
}

func TestRecordPublisher(t *testing.T) {
	before := testutil.ToFloat64(PublisherMatches.WithLabelValues("BBC"))
	RecordPublisher("BBC", true)
	RecordPublisher("BBC", true)
	assert.Equal(t, before+2, testutil.ToFloat64(PublisherMatches.WithLabelValues("BBC")))
}

func TestRecordPublisher_UnknownNamesShareOneLabel(t *testing.T) {
	RecordPublisher("warmup", false)
	series := testutil.CollectAndCount(PublisherMatches)
	before := testutil.ToFloat64(PublisherMatches.WithLabelValues(OtherPublisher))

	RecordPublisher("Feed Outlet One", false)
	RecordPublisher("Feed Outlet Two", false)

	assert.Equal(t, before+2, testutil.ToFloat64(PublisherMatches.WithLabelValues(OtherPublisher)))
	assert.Equal(t, series, testutil.CollectAndCount(PublisherMatches))
}
