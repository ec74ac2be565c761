package metrics

import (
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
)

func TestRecordCommand(t *testing.T) {
	before := testutil.ToFloat64(botCommandsTotal.WithLabelValues("deposit", "ok"))

	RecordCommand("deposit", "ok", 5*time.Millisecond)

	assert.Equal(t, before+1, testutil.ToFloat64(botCommandsTotal.WithLabelValues("deposit", "ok")))
}

func TestRecordBackendRequest(t *testing.T) {
	before := testutil.ToFloat64(backendRequestsTotal.WithLabelValues(OutcomeHTTPError))

	RecordBackendRequest(OutcomeHTTPError, time.Millisecond)

	assert.Equal(t, before+1, testutil.ToFloat64(backendRequestsTotal.WithLabelValues(OutcomeHTTPError)))
}

func TestEmptyLabelsBecomeUnknown(t *testing.T) {
	before := testutil.ToFloat64(errorsTotal.WithLabelValues("unknown", "unknown"))

	RecordError("", "")

	assert.Equal(t, before+1, testutil.ToFloat64(errorsTotal.WithLabelValues("unknown", "unknown")))
}
