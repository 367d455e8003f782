package models

import "github.com/Amieurramy/updated-back-main/internal/recsys"

// TrainRequest body opcional de POST /admin/recommendations/train. Los campos
// ausentes toman los valores configurados por entorno.
type TrainRequest struct {
	EmbeddingDim     *int     `json:"embeddingDim,omitempty" validate:"omitempty,min=1,max=256"`
	Regularization   *float64 `json:"regularization,omitempty" validate:"omitempty,gte=0,lte=1"`
	LearningRate     *float64 `json:"learningRate,omitempty" validate:"omitempty,gt=0,lte=1"`
	MaxEpochs        *int     `json:"maxEpochs,omitempty" validate:"omitempty,min=1,max=1000"`
	BatchSize        *int     `json:"batchSize,omitempty" validate:"omitempty,min=1,max=4096"`
	ValidationSplit  *float64 `json:"validationSplit,omitempty" validate:"omitempty,gte=0,lt=1"`
	Patience         *int     `json:"patience,omitempty" validate:"omitempty,min=1,max=100"`
	MinDelta         *float64 `json:"minDelta,omitempty" validate:"omitempty,gte=0"`
	MinObservations  *int     `json:"minObservations,omitempty" validate:"omitempty,min=0"`
	TopN             *int     `json:"topN,omitempty" validate:"omitempty,min=1,max=100"`
	Seed             *int64   `json:"seed,omitempty"`
	FailOnDivergence *bool    `json:"failOnDivergence,omitempty"`
}

// Apply superpone los campos presentes sobre base.
func (r *TrainRequest) Apply(base recsys.Config) recsys.Config {
	if r == nil {
		return base
	}
	if r.EmbeddingDim != nil {
		base.EmbeddingDim = *r.EmbeddingDim
	}
	if r.Regularization != nil {
		base.Regularization = *r.Regularization
	}
	if r.LearningRate != nil {
		base.LearningRate = *r.LearningRate
	}
	if r.MaxEpochs != nil {
		base.MaxEpochs = *r.MaxEpochs
	}
	if r.BatchSize != nil {
		base.BatchSize = *r.BatchSize
	}
	if r.ValidationSplit != nil {
		base.ValidationSplit = *r.ValidationSplit
	}
	if r.Patience != nil {
		base.Patience = *r.Patience
	}
	if r.MinDelta != nil {
		base.MinDelta = *r.MinDelta
	}
	if r.MinObservations != nil {
		base.MinObservations = *r.MinObservations
	}
	if r.TopN != nil {
		base.TopN = *r.TopN
	}
	if r.Seed != nil {
		base.Seed = *r.Seed
	}
	if r.FailOnDivergence != nil {
		base.FailOnDivergence = *r.FailOnDivergence
	}
	return base
}

// AdminRecommenderSummary resumen de cobertura del modelo.
type AdminRecommenderSummary struct {
	TotalUsers             int64 `json:"totalUsers"`
	UsersWithParams        int64 `json:"usersWithParams"`
	UsersWithoutParams     int64 `json:"usersWithoutParams"`
	TotalMenuItems         int64 `json:"totalMenuItems"`
	MenuItemsWithParams    int64 `json:"menuItemsWithParams"`
	MenuItemsWithoutParams int64 `json:"menuItemsWithoutParams"`
	ExplicitRatings        int64 `json:"explicitRatings"`
	ImputedRatings         int64 `json:"imputedRatings"`

	LastRun *recsys.Report `json:"lastRun,omitempty"`
}

// TrainingRunsPage respuesta de GET /admin/recommendations/runs.
type TrainingRunsPage struct {
	Runs  []recsys.Report `json:"runs"`
	Limit int64           `json:"limit"`
}
