package dataset

import (
	"strings"
	"testing"

	"github.com/hashicorp/go-hclog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mikel-ao/aloe-extraction-optimization/internal/events"
	"github.com/mikel-ao/aloe-extraction-optimization/internal/model"
)

// stubSource serves a scripted sequence of CSV payloads, repeating the last
// one once the script runs out.
type stubSource struct {
	payloads []string
	loads    int
	failWith error
}

func (s *stubSource) Load() (*Dataset, error) {
	if s.failWith != nil {
		return nil, s.failWith
	}
	i := s.loads
	if i >= len(s.payloads) {
		i = len(s.payloads) - 1
	}
	s.loads++
	return ParseCSV(strings.NewReader(s.payloads[i]), model.DefaultDesignSpace())
}

func (s *stubSource) Describe() string {
	return "stub"
}

func TestWatcherPublishesOncePerChange(t *testing.T) {
	changed := strings.Replace(sampleCSV, "43.1", "44.0", 1)
	source := &stubSource{payloads: []string{sampleCSV, changed, changed}}

	initial, err := ParseCSV(strings.NewReader(sampleCSV), model.DefaultDesignSpace())
	require.NoError(t, err)

	bus := events.NewEventBus()
	subscriber := make(chan events.Event, 4)
	bus.Subscribe(DATASET_CHANGED_EVENT_TYPE, subscriber)

	watcher := NewWatcher(hclog.NewNullLogger(), source, bus, "@every 1h", initial)

	// same fingerprint: nothing published
	watcher.checkForUpdates()
	assert.Empty(t, subscriber)

	// new fingerprint: exactly one event with the new dataset
	watcher.checkForUpdates()
	require.Len(t, subscriber, 1)
	event := <-subscriber
	assert.Equal(t, DATASET_CHANGED_EVENT_TYPE, event.Type)
	payload, ok := event.Data.(DatasetChangedEvent)
	require.True(t, ok)
	assert.Equal(t, initial.Fingerprint(), payload.PreviousFingerprint)
	require.NotNil(t, payload.Dataset)
	assert.NotEqual(t, initial.Fingerprint(), payload.Dataset.Fingerprint())

	// unchanged again: still nothing new
	watcher.checkForUpdates()
	assert.Empty(t, subscriber)
}

func TestWatcherKeepsCurrentDatasetOnLoadError(t *testing.T) {
	initial, err := ParseCSV(strings.NewReader(sampleCSV), model.DefaultDesignSpace())
	require.NoError(t, err)

	source := &stubSource{failWith: assert.AnError}
	bus := events.NewEventBus()
	subscriber := make(chan events.Event, 1)
	bus.Subscribe(DATASET_CHANGED_EVENT_TYPE, subscriber)

	watcher := NewWatcher(hclog.NewNullLogger(), source, bus, "@every 1h", initial)
	watcher.checkForUpdates()

	assert.Empty(t, subscriber)
	assert.Equal(t, initial, watcher.current)
}

func TestWatcherStartRejectsBadSchedule(t *testing.T) {
	source := &stubSource{payloads: []string{sampleCSV}}
	watcher := NewWatcher(hclog.NewNullLogger(), source, events.NewEventBus(), "not-a-schedule", nil)

	err := watcher.Start()

	require.Error(t, err)
	assert.Contains(t, err.Error(), "invalid refresh schedule")
}

func TestWatcherStartAndStop(t *testing.T) {
	source := &stubSource{payloads: []string{sampleCSV}}
	watcher := NewWatcher(hclog.NewNullLogger(), source, events.NewEventBus(), "@every 1h", nil)

	require.NoError(t, watcher.Start())
	watcher.Stop()
}
