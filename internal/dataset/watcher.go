package dataset

import (
	"fmt"
	"time"

	"github.com/hashicorp/go-hclog"
	"github.com/robfig/cron/v3"

	"github.com/mikel-ao/aloe-extraction-optimization/internal/events"
)

const DATASET_CHANGED_EVENT_TYPE = "DatasetChanged"

// DatasetChangedEvent carries the freshly loaded dataset to subscribers when
// a refresh detects new content.
type DatasetChangedEvent struct {
	PreviousFingerprint string
	Dataset             *Dataset
}

// Watcher reloads the dataset on a schedule and publishes a change event
// when the content fingerprint differs from the last load.
type Watcher struct {
	logger        hclog.Logger
	source        IDatasetSource
	eventBus      *events.EventBus
	cronScheduler *cron.Cron
	schedule      string
	current       *Dataset
}

func NewWatcher(logger hclog.Logger, source IDatasetSource, eventBus *events.EventBus, schedule string,
	initial *Dataset) *Watcher {
	return &Watcher{
		logger:        logger,
		source:        source,
		eventBus:      eventBus,
		cronScheduler: cron.New(cron.WithSeconds()),
		schedule:      schedule,
		current:       initial,
	}
}

func (w *Watcher) Start() error {
	if _, err := w.cronScheduler.AddFunc(w.schedule, w.checkForUpdates); err != nil {
		return fmt.Errorf("invalid refresh schedule %q: %w", w.schedule, err)
	}

	w.cronScheduler.Start()
	return nil
}

func (w *Watcher) Stop() {
	w.cronScheduler.Stop()
}

func (w *Watcher) checkForUpdates() {
	dataset, err := w.source.Load()
	if err != nil {
		w.logger.Error("Error reloading dataset", "source", w.source.Describe(), "error", err)
		return
	}

	previous := ""
	if w.current != nil {
		previous = w.current.Fingerprint()
	}
	if dataset.Fingerprint() == previous {
		return
	}

	w.logger.Info("Dataset changed", "source", w.source.Describe(), "runs", dataset.Len())
	w.current = dataset
	w.eventBus.Publish(events.Event{
		Type:      DATASET_CHANGED_EVENT_TYPE,
		Timestamp: time.Now(),
		Data: DatasetChangedEvent{
			PreviousFingerprint: previous,
			Dataset:             dataset,
		},
	})
}
