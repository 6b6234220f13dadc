package metrics

import (
	"testing"
	"time"

	"ap-merch-web/internal/domain"

	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
)

func TestObserveStep(t *testing.T) {
	before := testutil.ToFloat64(StepTotal.WithLabelValues("idea", OutcomeSuccess))
	ObserveStep("idea", time.Now(), nil)
	assert.Equal(t, before+1, testutil.ToFloat64(StepTotal.WithLabelValues("idea", OutcomeSuccess)))

	beforeStatus := testutil.ToFloat64(StepTotal.WithLabelValues("publish", "status"))
	ObserveStep("publish", time.Now(), domain.StatusError("webhook", 500, "boom"))
	assert.Equal(t, beforeStatus+1, testutil.ToFloat64(StepTotal.WithLabelValues("publish", "status")))
}

func TestRecordListingLookup(t *testing.T) {
	before := testutil.ToFloat64(ListingLookupTotal.WithLabelValues("found"))
	RecordListingLookup(domain.LookupFound)
	assert.Equal(t, before+1, testutil.ToFloat64(ListingLookupTotal.WithLabelValues("found")))
}
