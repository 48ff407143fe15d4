package alert

import (
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/soundprediction/globescope/pkg/config"
)

type recordingAlerter struct {
	subjects []string
	err      error
}

func (r *recordingAlerter) Alert(subject, _ string) error {
	r.subjects = append(r.subjects, subject)
	return r.err
}

func TestThrottledSuppressesRepeatSubjects(t *testing.T) {
	inner := &recordingAlerter{}
	throttled := NewThrottled(inner, time.Hour)

	require.NoError(t, throttled.Alert("backend down", "first"))
	require.NoError(t, throttled.Alert("backend down", "second"))
	require.NoError(t, throttled.Alert("backend down", "third"))

	assert.Equal(t, []string{"backend down"}, inner.subjects)
}

func TestThrottledDistinctSubjectsPassThrough(t *testing.T) {
	inner := &recordingAlerter{}
	throttled := NewThrottled(inner, time.Hour)

	require.NoError(t, throttled.Alert("primary down", "a"))
	require.NoError(t, throttled.Alert("fallback down", "b"))

	assert.Equal(t, []string{"primary down", "fallback down"}, inner.subjects)
}

func TestThrottledResendsAfterInterval(t *testing.T) {
	inner := &recordingAlerter{}
	throttled := NewThrottled(inner, 10*time.Millisecond)

	require.NoError(t, throttled.Alert("backend down", "a"))
	time.Sleep(20 * time.Millisecond)
	require.NoError(t, throttled.Alert("backend down", "b"))

	assert.Len(t, inner.subjects, 2)
}

func TestThrottledPropagatesErrors(t *testing.T) {
	wantErr := errors.New("smtp refused")
	throttled := NewThrottled(&recordingAlerter{err: wantErr}, time.Hour)

	assert.ErrorIs(t, throttled.Alert("backend down", "a"), wantErr)
}

func TestEmailAlerterDisabledIsNoOp(t *testing.T) {
	a := NewEmailAlerter(config.AlertConfig{Enabled: false})

	assert.NoError(t, a.Alert("backend down", "message"))
}

func TestNoOpAlerter(t *testing.T) {
	a := &NoOpAlerter{}

	assert.NoError(t, a.Alert("anything", "at all"))
}
