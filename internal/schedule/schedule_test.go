package schedule

import (
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

func TestStartRunsTaskImmediately(t *testing.T) {
	var runs atomic.Int32
	r := New("@every 1h", func() { runs.Add(1) }, zap.NewNop())

	require.NoError(t, r.Start())
	defer r.Stop()

	assert.Eventually(t, func() bool { return runs.Load() >= 1 },
		time.Second, 10*time.Millisecond)
}

func TestStartRejectsInvalidSpec(t *testing.T) {
	r := New("not a cron spec", func() {}, zap.NewNop())

	err := r.Start()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "invalid schedule")
}
