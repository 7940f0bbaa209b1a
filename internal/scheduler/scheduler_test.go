package scheduler

import (
	"bytes"
	"context"
	"errors"
	"sync/atomic"
	"testing"

	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type countingReconciler struct {
	calls int32
	err   error
}

func (r *countingReconciler) ReconcilePendingWithdrawals(context.Context) (int, error) {
	atomic.AddInt32(&r.calls, 1)
	return 1, r.err
}

func quietLogger() *logrus.Logger {
	l := logrus.New()
	l.SetOutput(&bytes.Buffer{})
	return l
}

func TestNew_InvalidSchedule(t *testing.T) {
	_, err := New("every now and then", &countingReconciler{}, quietLogger())

	assert.ErrorContains(t, err, "invalid reconcile schedule")
}

func TestRunOnce(t *testing.T) {
	r := &countingReconciler{err: errors.New("db down")}
	s, err := New("@every 1h", r, quietLogger())
	require.NoError(t, err)

	s.runOnce()

	assert.Equal(t, int32(1), atomic.LoadInt32(&r.calls))
}

func TestRun_StopsOnCancel(t *testing.T) {
	s, err := New("@every 1h", &countingReconciler{}, quietLogger())
	require.NoError(t, err)

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	assert.NoError(t, s.Run(ctx))
}
