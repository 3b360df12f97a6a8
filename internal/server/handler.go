package server

import (
	"fmt"
	"net/http"

	"github.com/google/uuid"
	"github.com/gorilla/mux"
	"github.com/hashicorp/go-hclog"

	"github.com/mikel-ao/aloe-extraction-optimization/internal/config"
	"github.com/mikel-ao/aloe-extraction-optimization/internal/model"
	"github.com/mikel-ao/aloe-extraction-optimization/internal/rsm"
	"github.com/mikel-ao/aloe-extraction-optimization/internal/surface"
)

type Handler struct {
	logger  hclog.Logger
	catalog *Catalog
	space   model.DesignSpace
	views   *config.Views
}

func NewHandler(logger hclog.Logger, catalog *Catalog, space model.DesignSpace, views *config.Views) *Handler {
	return &Handler{
		logger:  logger,
		catalog: catalog,
		space:   space,
		views:   views,
	}
}

// RegisterRoutes attaches the dashboard API to the router.
func (handler *Handler) RegisterRoutes(router *mux.Router) {
	router.HandleFunc("/health", handler.Health).Methods(http.MethodGet)
	router.HandleFunc("/api/dataset", handler.GetDataset).Methods(http.MethodGet)
	router.HandleFunc("/api/models", handler.ListModels).Methods(http.MethodGet)
	router.HandleFunc("/api/models/{solvent}", handler.GetModel).Methods(http.MethodGet)
	router.HandleFunc("/api/models/{solvent}/importance", handler.GetImportance).Methods(http.MethodGet)
	router.HandleFunc("/api/predict", handler.Predict).Methods(http.MethodPost)
	router.HandleFunc("/api/surface", handler.BuildSurface).Methods(http.MethodPost)
	router.HandleFunc("/api/optimum", handler.FindOptimum).Methods(http.MethodPost)
	router.HandleFunc("/api/views", handler.GetViews).Methods(http.MethodGet)
}

func (handler *Handler) Health(rw http.ResponseWriter, r *http.Request) {
	rw.Header().Add("Content-Type", "application/json")
	toJSON(map[string]string{"status": "ok"}, rw)
}

func (handler *Handler) GetDataset(rw http.ResponseWriter, r *http.Request) {
	rw.Header().Add("Content-Type", "application/json")

	ds := handler.catalog.Dataset()
	if ds == nil {
		rw.WriteHeader(http.StatusServiceUnavailable)
		toJSON("no dataset loaded", rw)
		return
	}

	toJSON(&DatasetInfoResponse{
		Runs:          ds.Len(),
		Systems:       ds.Systems(),
		DesignSpace:   handler.space,
		ObservedSpace: ds.ObservedSpace(),
		Fingerprint:   ds.Fingerprint(),
		FittedAt:      handler.catalog.FittedAt(),
	}, rw)
}

func (handler *Handler) ListModels(rw http.ResponseWriter, r *http.Request) {
	rw.Header().Add("Content-Type", "application/json")

	summaries := []ModelSummary{}
	for _, system := range handler.catalog.Systems() {
		fitted, _ := handler.catalog.Model(system)
		summaries = append(summaries, summarize(system, fitted))
	}

	toJSON(summaries, rw)
}

func (handler *Handler) GetModel(rw http.ResponseWriter, r *http.Request) {
	rw.Header().Add("Content-Type", "application/json")

	fitted, system, ok := handler.modelFromPath(rw, r)
	if !ok {
		return
	}

	coefficients := make([]Coefficient, len(fitted.Terms))
	for i, term := range fitted.Terms {
		coefficients[i] = Coefficient{Term: term.String(), Value: fitted.Coefficients[i]}
	}

	toJSON(&ModelDetailResponse{
		ModelSummary: summarize(system, fitted),
		Coefficients: coefficients,
	}, rw)
}

func (handler *Handler) GetImportance(rw http.ResponseWriter, r *http.Request) {
	rw.Header().Add("Content-Type", "application/json")

	fitted, system, ok := handler.modelFromPath(rw, r)
	if !ok {
		return
	}

	toJSON(&ImportanceResponse{
		Solvent: system,
		Impacts: fitted.FactorImpacts(),
	}, rw)
}

func (handler *Handler) Predict(rw http.ResponseWriter, r *http.Request) {
	rw.Header().Add("Content-Type", "application/json")

	request := &PredictRequest{}
	if err := fromJSON(request, r.Body); err != nil {
		handler.logger.Error("Error decoding predict request", "error", err)
		rw.WriteHeader(http.StatusBadRequest)
		toJSON("invalid request body", rw)
		return
	}

	fitted, ok := handler.model(rw, request.Solvent)
	if !ok {
		return
	}

	yield, warnings := fitted.PredictIn(handler.space, request.Point)

	messages := []string{}
	for _, warning := range warnings {
		handler.logger.Warn("Prediction outside design space", "solvent", request.Solvent, "warning", warning.String())
		messages = append(messages, warning.String())
	}

	toJSON(&PredictResponse{
		Solvent:  request.Solvent,
		Point:    request.Point,
		Yield:    yield,
		Warnings: messages,
	}, rw)
}

func (handler *Handler) BuildSurface(rw http.ResponseWriter, r *http.Request) {
	rw.Header().Add("Content-Type", "application/json")

	request := &SurfaceRequest{}
	if err := fromJSON(request, r.Body); err != nil {
		handler.logger.Error("Error decoding surface request", "error", err)
		rw.WriteHeader(http.StatusBadRequest)
		toJSON("invalid request body", rw)
		return
	}

	fitted, ok := handler.model(rw, request.Solvent)
	if !ok {
		return
	}

	ds := handler.catalog.Dataset()
	data, err := surface.Build(fitted, ds.ObservedSpace(), request.Slice, request.Fixed, request.Resolution)
	if err != nil {
		handler.logger.Error("Error building surface", "error", err)
		rw.WriteHeader(http.StatusBadRequest)
		toJSON(err.Error(), rw)
		return
	}

	toJSON(&SurfaceResponse{
		Solvent:     request.Solvent,
		SurfaceData: *data,
	}, rw)
}

func (handler *Handler) FindOptimum(rw http.ResponseWriter, r *http.Request) {
	rw.Header().Add("Content-Type", "application/json")

	runId := uuid.New().String()

	request := &OptimumRequest{}
	if err := fromJSON(request, r.Body); err != nil {
		handler.logger.Error("Error decoding optimum request", "error", err)
		rw.WriteHeader(http.StatusBadRequest)
		toJSON("invalid request body", rw)
		return
	}

	fitted, ok := handler.model(rw, request.Solvent)
	if !ok {
		return
	}

	resolution := request.Resolution
	if resolution < 2 {
		resolution = rsm.DefaultOptimumResolution
	}

	handler.logger.Info(fmt.Sprintf("Searching optimum for %s with resolution %d, run ID: %s",
		request.Solvent, resolution, runId))

	best, yield := rsm.FindOptimum(fitted, handler.space, resolution)

	toJSON(&OptimumResponse{
		RunId:      runId,
		Solvent:    request.Solvent,
		Point:      best,
		Yield:      yield,
		Resolution: resolution,
	}, rw)
}

func (handler *Handler) GetViews(rw http.ResponseWriter, r *http.Request) {
	rw.Header().Add("Content-Type", "application/json")
	toJSON(handler.views, rw)
}

// modelFromPath resolves the {solvent} path variable to a fitted model,
// writing the error response itself when it cannot.
func (handler *Handler) modelFromPath(rw http.ResponseWriter, r *http.Request) (*rsm.FittedModel, model.SolventSystem, bool) {
	key := getURLParameter(r, "solvent")
	system, err := model.ParseSolventSystem(key)
	if err != nil {
		rw.WriteHeader(http.StatusBadRequest)
		toJSON(err.Error(), rw)
		return nil, 0, false
	}

	fitted, ok := handler.model(rw, system)
	return fitted, system, ok
}

func (handler *Handler) model(rw http.ResponseWriter, system model.SolventSystem) (*rsm.FittedModel, bool) {
	fitted, ok := handler.catalog.Model(system)
	if !ok {
		rw.WriteHeader(http.StatusNotFound)
		toJSON(fmt.Sprintf("no model for solvent system %s", system), rw)
		return nil, false
	}
	return fitted, true
}

func summarize(system model.SolventSystem, fitted *rsm.FittedModel) ModelSummary {
	return ModelSummary{
		Solvent:     system,
		DisplayName: system.DisplayName(),
		ModelType:   fitted.ModelType,
		Terms:       len(fitted.Terms),
		Runs:        fitted.Runs,
		RSquared:    fitted.RSquared,
		AdjRSquared: fitted.AdjRSquared,
		RMSE:        fitted.RMSE,
		Formula:     fitted.Formula(),
	}
}

func getURLParameter(r *http.Request, parameter string) string {
	vars := mux.Vars(r)
	id := vars[parameter]
	return id
}
