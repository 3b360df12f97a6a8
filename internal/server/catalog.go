package server

import (
	"fmt"
	"sync"
	"time"

	"github.com/hashicorp/go-hclog"

	"github.com/mikel-ao/aloe-extraction-optimization/internal/dataset"
	"github.com/mikel-ao/aloe-extraction-optimization/internal/events"
	"github.com/mikel-ao/aloe-extraction-optimization/internal/model"
	"github.com/mikel-ao/aloe-extraction-optimization/internal/rsm"
)

// Catalog holds one fitted response surface per solvent system over the
// current dataset. HTTP handlers read it while the dataset watcher refits
// it, so access is guarded.
type Catalog struct {
	logger  hclog.Logger
	fitOpts []rsm.Option

	mutex    sync.RWMutex
	dataset  *dataset.Dataset
	models   map[model.SolventSystem]*rsm.FittedModel
	fittedAt time.Time
}

func NewCatalog(logger hclog.Logger, fitOpts ...rsm.Option) *Catalog {
	return &Catalog{
		logger:  logger,
		fitOpts: fitOpts,
		models:  map[model.SolventSystem]*rsm.FittedModel{},
	}
}

// Refit fits a model per solvent system present in the dataset and swaps
// the catalog to the new set atomically. On any fit error the previous
// models stay in place.
func (c *Catalog) Refit(ds *dataset.Dataset) error {
	models := make(map[model.SolventSystem]*rsm.FittedModel, len(ds.Systems()))
	for _, system := range ds.Systems() {
		fitted, err := rsm.Fit(ds.Runs(system), c.fitOpts...)
		if err != nil {
			return fmt.Errorf("fitting %s model: %w", system, err)
		}
		models[system] = fitted
		c.logger.Info(fmt.Sprintf("Fitted %s: %s", system.DisplayName(), fitted))
	}

	c.mutex.Lock()
	c.dataset = ds
	c.models = models
	c.fittedAt = time.Now()
	c.mutex.Unlock()

	return nil
}

// Model returns the fitted model for the solvent system, if the current
// dataset has that response column.
func (c *Catalog) Model(system model.SolventSystem) (*rsm.FittedModel, bool) {
	c.mutex.RLock()
	defer c.mutex.RUnlock()
	fitted, ok := c.models[system]
	return fitted, ok
}

// Systems returns the solvent systems with a fitted model, in canonical
// order.
func (c *Catalog) Systems() []model.SolventSystem {
	c.mutex.RLock()
	defer c.mutex.RUnlock()
	systems := []model.SolventSystem{}
	for _, system := range model.AllSolventSystems() {
		if _, ok := c.models[system]; ok {
			systems = append(systems, system)
		}
	}
	return systems
}

// Dataset returns the dataset the current models were fitted on.
func (c *Catalog) Dataset() *dataset.Dataset {
	c.mutex.RLock()
	defer c.mutex.RUnlock()
	return c.dataset
}

// FittedAt returns when the current models were fitted.
func (c *Catalog) FittedAt() time.Time {
	c.mutex.RLock()
	defer c.mutex.RUnlock()
	return c.fittedAt
}

// SubscribeToUpdates refits the catalog whenever the dataset watcher
// publishes a change.
func (c *Catalog) SubscribeToUpdates(eventBus *events.EventBus) {
	datasetChangedChan := make(chan events.Event)
	eventBus.Subscribe(dataset.DATASET_CHANGED_EVENT_TYPE, datasetChangedChan)
	go c.datasetChangedHandler(datasetChangedChan)
}

func (c *Catalog) datasetChangedHandler(eventChan <-chan events.Event) {
	for event := range eventChan {
		changedEvent, ok := event.Data.(dataset.DatasetChangedEvent)
		if !ok {
			c.logger.Info("Invalid event data")
			continue
		}

		c.logger.Info(fmt.Sprintf("Refitting models over %d runs", changedEvent.Dataset.Len()))
		if err := c.Refit(changedEvent.Dataset); err != nil {
			c.logger.Error("Error refitting models after dataset change", "error", err)
		}
	}
}
