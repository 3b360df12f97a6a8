package server

import (
	"encoding/json"
	"io"
	"time"

	"github.com/mikel-ao/aloe-extraction-optimization/internal/model"
	"github.com/mikel-ao/aloe-extraction-optimization/internal/rsm"
	"github.com/mikel-ao/aloe-extraction-optimization/internal/surface"
)

func toJSON(i interface{}, w io.Writer) error {
	e := json.NewEncoder(w)
	return e.Encode(i)
}

func fromJSON(i interface{}, r io.Reader) error {
	d := json.NewDecoder(r)
	return d.Decode(i)
}

type DatasetInfoResponse struct {
	Runs          int                   `json:"runs"`
	Systems       []model.SolventSystem `json:"systems"`
	DesignSpace   model.DesignSpace     `json:"designSpace"`
	ObservedSpace model.DesignSpace     `json:"observedSpace"`
	Fingerprint   string                `json:"fingerprint"`
	FittedAt      time.Time             `json:"fittedAt"`
}

type ModelSummary struct {
	Solvent     model.SolventSystem `json:"solvent"`
	DisplayName string              `json:"displayName"`
	ModelType   string              `json:"modelType"`
	Terms       int                 `json:"terms"`
	Runs        int                 `json:"runs"`
	RSquared    float64             `json:"rSquared"`
	AdjRSquared float64             `json:"adjRSquared"`
	RMSE        float64             `json:"rmse"`
	Formula     string              `json:"formula"`
}

type Coefficient struct {
	Term  string  `json:"term"`
	Value float64 `json:"value"`
}

type ModelDetailResponse struct {
	ModelSummary
	Coefficients []Coefficient `json:"coefficients"`
}

type ImportanceResponse struct {
	Solvent model.SolventSystem `json:"solvent"`
	Impacts []rsm.FactorImpact  `json:"impacts"`
}

type PredictRequest struct {
	Solvent model.SolventSystem `json:"solvent"`
	Point   model.Point         `json:"point"`
}

type PredictResponse struct {
	Solvent  model.SolventSystem `json:"solvent"`
	Point    model.Point         `json:"point"`
	Yield    float64             `json:"yield"`
	Warnings []string            `json:"warnings"`
}

type SurfaceRequest struct {
	Solvent    model.SolventSystem `json:"solvent"`
	Slice      surface.SliceType   `json:"slice"`
	Fixed      float64             `json:"fixed"`
	Resolution int                 `json:"resolution"`
}

type SurfaceResponse struct {
	Solvent model.SolventSystem `json:"solvent"`
	surface.SurfaceData
}

type OptimumRequest struct {
	Solvent    model.SolventSystem `json:"solvent"`
	Resolution int                 `json:"resolution"`
}

type OptimumResponse struct {
	RunId      string              `json:"runId"`
	Solvent    model.SolventSystem `json:"solvent"`
	Point      model.Point         `json:"point"`
	Yield      float64             `json:"yield"`
	Resolution int                 `json:"resolution"`
}
