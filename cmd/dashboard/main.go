package main

import (
	"fmt"
	"io"
	"os"
	"path/filepath"

	"github.com/gorilla/mux"
	"github.com/hashicorp/go-hclog"

	"github.com/mikel-ao/aloe-extraction-optimization/internal/config"
	"github.com/mikel-ao/aloe-extraction-optimization/internal/dataset"
	"github.com/mikel-ao/aloe-extraction-optimization/internal/events"
	"github.com/mikel-ao/aloe-extraction-optimization/internal/model"
	"github.com/mikel-ao/aloe-extraction-optimization/internal/server"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		panic(err)
	}

	_ = os.MkdirAll(filepath.Dir(cfg.LogFile), 0777)
	logFile, err := os.OpenFile(cfg.LogFile, os.O_APPEND|os.O_CREATE|os.O_WRONLY, 0777)
	if err != nil {
		panic(err)
	}
	defer func() {
		if err := logFile.Close(); err != nil {
			panic(err)
		}
	}()

	logger := hclog.New(&hclog.LoggerOptions{
		Name:   "aloe-dash",
		Level:  hclog.LevelFromString(cfg.LogLevel),
		Output: io.MultiWriter(os.Stdout, logFile),
	})

	eventBus := events.NewEventBus()

	space := model.DefaultDesignSpace()
	var source dataset.IDatasetSource
	if cfg.DatasetURL != "" {
		source = dataset.NewHTTPSource(cfg.DatasetURL, space)
	} else {
		source = dataset.NewFileSource(cfg.DatasetPath, space)
	}

	ds, err := source.Load()
	if err != nil {
		logger.Error("Error while loading dataset ::", err.Error())
		return
	}
	logger.Info(fmt.Sprintf("Loaded %d runs from %s", ds.Len(), source.Describe()))

	catalog := server.NewCatalog(logger)
	if err := catalog.Refit(ds); err != nil {
		logger.Error("Error while fitting models ::", err.Error())
		return
	}
	catalog.SubscribeToUpdates(eventBus)

	watcher := dataset.NewWatcher(logger, source, eventBus, cfg.RefreshSchedule, ds)
	if err := watcher.Start(); err != nil {
		logger.Error("Error while starting dataset watcher ::", err.Error())
		return
	}
	defer watcher.Stop()

	views, err := config.LoadViews(cfg.ViewsPath)
	if err != nil {
		logger.Error("Error while loading views config ::", err.Error())
		return
	}

	handler := server.NewHandler(logger, catalog, space, views)

	defaultRouter := mux.NewRouter()
	handler.RegisterRoutes(defaultRouter)

	server.StartHttpServer(logger, defaultRouter, cfg.Addr)
}
