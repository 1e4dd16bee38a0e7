package observability

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"career-workers/internal/common/logger"
)

func TestObservability_RecordAndShutdown(t *testing.T) {
	obs := New("career-workers-test", logger.NewTestLogger(t))
	require.NotNil(t, obs)

	assert.NotPanics(t, func() {
		obs.RecordJob(context.Background(), "match-careers", 120*time.Millisecond)
	})
	assert.NoError(t, obs.Shutdown(context.Background()))
}

func TestObservability_NilAndZeroValue(t *testing.T) {
	var nilObs *Observability
	assert.NotPanics(t, func() {
		nilObs.RecordJob(context.Background(), "score-reality-quiz", time.Second)
	})
	assert.NoError(t, nilObs.Shutdown(context.Background()))

	zero := &Observability{}
	assert.NotPanics(t, func() {
		zero.RecordJob(context.Background(), "score-reality-quiz", time.Second)
	})
	assert.NoError(t, zero.Shutdown(context.Background()))
}
