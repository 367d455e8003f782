package recsys

import (
	"math"
	"testing"
)

// fixedModel arma un modelo con biases de ítem conocidos y embeddings en cero.
func fixedModel(users []string, items []string, itemBias []float64) (*Model, *RunIndex, *RunIndex) {
	ui, ii := newRunIndex(), newRunIndex()
	for _, u := range users {
		ui.assign(u)
	}
	for _, i := range items {
		ii.assign(i)
	}
	m := &Model{
		Dim:   2,
		userF: newTable(len(users), 2),
		itemF: newTable(len(items), 2),
		userB: newTable(len(users), 1),
		itemB: newTable(len(items), 1),
	}
	copy(m.itemB.w, itemBias)
	return m, ui, ii
}

func TestTopN(t *testing.T) {
	t.Parallel()

	items := []string{"a", "b", "c", "d", "e"}
	model, users, idx := fixedModel([]string{"u1"}, items, []float64{0.1, 0.9, -0.3, 0.5, 0.7})

	tests := []struct {
		name     string
		user     string
		mean     float64
		universe []string
		exclude  map[string]struct{}
		n        int
		want     []string
	}{
		{
			name:     "ranked descending",
			user:     "u1",
			universe: items,
			n:        10,
			want:     []string{"b", "e", "d", "a", "c"},
		},
		{
			name:     "cut to n",
			user:     "u1",
			universe: items,
			n:        2,
			want:     []string{"b", "e"},
		},
		{
			name:     "excludes interaction set",
			user:     "u1",
			universe: items,
			exclude:  InteractionSet([]string{"b"}, []string{"d"}),
			n:        10,
			want:     []string{"e", "a", "c"},
		},
		{
			name:     "items without parameters are never recommended",
			user:     "u1",
			universe: []string{"zzz", "a", "c"},
			n:        10,
			want:     []string{"a", "c"},
		},
		{
			name:     "unknown user",
			user:     "nobody",
			universe: items,
			n:        10,
			want:     nil,
		},
	}

	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			got := TopN(model, users, idx, tt.user, tt.mean, tt.universe, tt.exclude, tt.n)
			if len(got) != len(tt.want) {
				t.Fatalf("TopN() returned %d items, want %d: %+v", len(got), len(tt.want), got)
			}
			for i := range got {
				if got[i].ItemID != tt.want[i] {
					t.Errorf("TopN()[%d] = %q, want %q", i, got[i].ItemID, tt.want[i])
				}
			}
		})
	}
}

func TestTopN_AddsUserMean(t *testing.T) {
	t.Parallel()

	model, users, items := fixedModel([]string{"u1"}, []string{"a"}, []float64{0.25})
	model.userB.w[0] = 0.5

	got := TopN(model, users, items, "u1", 3.5, []string{"a"}, nil, 5)
	if len(got) != 1 {
		t.Fatalf("len = %d, want 1", len(got))
	}
	if math.Abs(got[0].Score-4.25) > 1e-12 {
		t.Errorf("Score = %v, want 4.25", got[0].Score)
	}
}

func TestTopN_TiesKeepCatalogOrder(t *testing.T) {
	t.Parallel()

	items := []string{"x", "y", "z", "w"}
	model, users, idx := fixedModel([]string{"u1"}, items, []float64{0, 0, 0, 0})

	universe := []string{"z", "w", "x", "y", "z"}
	got := TopN(model, users, idx, "u1", 0, universe, nil, 10)

	want := []string{"z", "w", "x", "y"}
	if len(got) != len(want) {
		t.Fatalf("len = %d, want %d (duplicates in the universe must collapse)", len(got), len(want))
	}
	for i := range want {
		if got[i].ItemID != want[i] {
			t.Errorf("TopN()[%d] = %q, want %q", i, got[i].ItemID, want[i])
		}
	}
}

func TestTopN_SkipsNonFiniteScores(t *testing.T) {
	t.Parallel()

	model, users, idx := fixedModel([]string{"u1"}, []string{"a", "b"}, []float64{math.NaN(), 1})

	got := TopN(model, users, idx, "u1", 0, []string{"a", "b"}, nil, 10)
	if len(got) != 1 || got[0].ItemID != "b" {
		t.Errorf("TopN() = %+v, want only b", got)
	}
}
