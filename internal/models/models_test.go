package models

import (
	"testing"

	"github.com/Amieurramy/updated-back-main/internal/recsys"
)

func TestMenuItemDoc_ConflictsWith(t *testing.T) {
	t.Parallel()

	item := MenuItemDoc{
		DietaryInfo: map[string]bool{"vegetarian": true, "glutenFree": false},
		HealthInfo:  map[string]bool{"low_sugar": true},
	}
	tests := []struct {
		name    string
		dietary map[string]bool
		health  map[string]bool
		want    bool
	}{
		{"empty profile", nil, nil, false},
		{"satisfied", map[string]bool{"vegetarian": true}, map[string]bool{"low_sugar": true}, false},
		{"inactive preference", map[string]bool{"glutenFree": false}, nil, false},
		{"dietary conflict", map[string]bool{"glutenFree": true}, nil, true},
		{"missing flag counts as conflict", nil, map[string]bool{"low_sodium": true}, true},
	}
	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			if got := item.ConflictsWith(tt.dietary, tt.health); got != tt.want {
				t.Errorf("ConflictsWith() = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestTrainRequest_Apply(t *testing.T) {
	t.Parallel()

	base := recsys.DefaultConfig()

	var nilReq *TrainRequest
	if got := nilReq.Apply(base); got != base {
		t.Errorf("nil request changed the config: %+v", got)
	}

	dim, split, fail := 4, 0.0, true
	got := (&TrainRequest{EmbeddingDim: &dim, ValidationSplit: &split, FailOnDivergence: &fail}).Apply(base)

	want := base
	want.EmbeddingDim = 4
	want.ValidationSplit = 0
	want.FailOnDivergence = true
	if got != want {
		t.Errorf("Apply() = %+v, want %+v", got, want)
	}
}
