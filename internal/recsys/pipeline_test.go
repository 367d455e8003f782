package recsys

import (
	"context"
	"encoding/json"
	"errors"
	"math"
	"testing"

	"github.com/rs/zerolog"
)

type memSource struct {
	obs       []Observation
	favorites map[string][]string
	items     []string
	err       error
}

func (s *memSource) Observations(context.Context) ([]Observation, error) {
	if s.err != nil {
		return nil, s.err
	}
	return s.obs, nil
}

func (s *memSource) Favorites(context.Context) (map[string][]string, error) {
	return s.favorites, nil
}

func (s *memSource) Items(context.Context) ([]string, error) { return s.items, nil }

type memSink struct {
	users   map[string]UserParams
	items   map[string]ItemParams
	lists   map[string][]Scored
	failFor map[string]bool
}

func newMemSink() *memSink {
	return &memSink{
		users:   make(map[string]UserParams),
		items:   make(map[string]ItemParams),
		lists:   make(map[string][]Scored),
		failFor: make(map[string]bool),
	}
}

func (s *memSink) SaveUserParams(_ context.Context, id string, p UserParams) error {
	if s.failFor[id] {
		return errors.New("write refused")
	}
	s.users[id] = p
	return nil
}

func (s *memSink) SaveItemParams(_ context.Context, id string, p ItemParams) error {
	if s.failFor[id] {
		return errors.New("write refused")
	}
	s.items[id] = p
	return nil
}

func (s *memSink) SaveRecommendations(_ context.Context, id, _ string, recs []Scored) error {
	if s.failFor["list:"+id] {
		return errors.New("write refused")
	}
	s.lists[id] = recs
	return nil
}

func (s *memSink) writes() int { return len(s.users) + len(s.items) + len(s.lists) }

// threeUsersFourItems: 12 observaciones, cada usuario deja un ítem sin valorar.
func threeUsersFourItems() *memSource {
	return &memSource{
		obs: []Observation{
			{UserID: "u1", ItemID: "i1", Rating: 5},
			{UserID: "u1", ItemID: "i2", Rating: 4},
			{UserID: "u1", ItemID: "i3", Rating: 1},
			{UserID: "u1", ItemID: "i1", Rating: 5},
			{UserID: "u2", ItemID: "i2", Rating: 5},
			{UserID: "u2", ItemID: "i3", Rating: 2},
			{UserID: "u2", ItemID: "i4", Rating: 4},
			{UserID: "u2", ItemID: "i2", Rating: 4},
			{UserID: "u3", ItemID: "i1", Rating: 4},
			{UserID: "u3", ItemID: "i3", Rating: 2},
			{UserID: "u3", ItemID: "i4", Rating: 5},
			{UserID: "u3", ItemID: "i4", Rating: 4},
		},
		favorites: map[string][]string{"u3": {"i2"}},
		items:     []string{"i1", "i2", "i3", "i4", "i5"},
	}
}

func TestPipeline_ThreeUsersFourItems(t *testing.T) {
	t.Parallel()

	src := threeUsersFourItems()
	sink := newMemSink()

	rep, err := NewPipeline(src, sink, DefaultConfig(), zerolog.Nop()).Run(context.Background())
	if err != nil {
		t.Fatalf("Run() error = %v", err)
	}

	if rep.Status != StatusCompleted {
		t.Fatalf("Status = %q, want %q", rep.Status, StatusCompleted)
	}
	if rep.Users != 3 || rep.Items != 4 || rep.Pairs != 12 {
		t.Errorf("mapped %d users / %d items / %d pairs, want 3/4/12", rep.Users, rep.Items, rep.Pairs)
	}
	for _, u := range []string{"u1", "u2", "u3"} {
		p, ok := sink.users[u]
		if !ok {
			t.Errorf("user %s has no parameters", u)
			continue
		}
		if len(p.Embedding) != 10 || p.TrainedAt.IsZero() {
			t.Errorf("user %s params = %+v", u, p)
		}
	}
	if len(sink.items) != 4 {
		t.Errorf("items updated = %d, want 4", len(sink.items))
	}
	if _, ok := sink.items["i5"]; ok {
		t.Error("i5 has no observations and must keep its previous parameters")
	}

	rated := map[string][]string{}
	for _, o := range src.obs {
		rated[o.UserID] = append(rated[o.UserID], o.ItemID)
	}

	nonEmpty := 0
	for u, list := range sink.lists {
		excl := InteractionSet(rated[u], src.favorites[u])
		if len(list) > 15 {
			t.Errorf("list for %s has %d items, want <= 15", u, len(list))
		}
		for i, rec := range list {
			if _, bad := excl[rec.ItemID]; bad {
				t.Errorf("list for %s contains interacted item %s", u, rec.ItemID)
			}
			if rec.ItemID == "i5" {
				t.Errorf("list for %s contains untrained item i5", u)
			}
			if i > 0 && list[i-1].Score < rec.Score {
				t.Errorf("list for %s not sorted at %d", u, i)
			}
		}
		if len(list) > 0 {
			nonEmpty++
		}
	}
	if nonEmpty == 0 {
		t.Error("all recommendation lists are empty")
	}
	if got := sink.lists["u1"]; len(got) != 1 || got[0].ItemID != "i4" {
		t.Errorf("u1 list = %+v, want [i4]", got)
	}
	if got := sink.lists["u3"]; len(got) != 0 {
		t.Errorf("u3 list = %+v, want empty (rated or favorited everything)", got)
	}
	if rep.ListsWritten != 3 || rep.PersistFailures != 0 {
		t.Errorf("ListsWritten=%d PersistFailures=%d, want 3/0", rep.ListsWritten, rep.PersistFailures)
	}
}

func TestPipeline_InsufficientData(t *testing.T) {
	t.Parallel()

	src := threeUsersFourItems()
	src.obs = src.obs[:5]
	sink := newMemSink()

	rep, err := NewPipeline(src, sink, DefaultConfig(), zerolog.Nop()).Run(context.Background())
	if !errors.Is(err, ErrInsufficientData) || !IsNoop(err) {
		t.Fatalf("Run() error = %v, want ErrInsufficientData", err)
	}
	if rep == nil || rep.Status != StatusInsufficientData {
		t.Fatalf("report = %+v, want status %q", rep, StatusInsufficientData)
	}
	if sink.writes() != 0 {
		t.Errorf("sink received %d writes, want 0", sink.writes())
	}
}

func TestPipeline_ZeroConfigHasNoThreshold(t *testing.T) {
	t.Parallel()

	src := threeUsersFourItems()
	src.obs = src.obs[:5]

	p := NewPipeline(src, newMemSink(), Config{}, zerolog.Nop())
	cfg := p.Config()
	if cfg.MinObservations != 0 || cfg.Regularization != 0 || cfg.ValidationSplit != 0 || cfg.MinDelta != 0 {
		t.Errorf("Config() = %+v, want explicit zeros kept", cfg)
	}
	if cfg.EmbeddingDim != DefaultConfig().EmbeddingDim || cfg.TopN != DefaultConfig().TopN {
		t.Errorf("Config() = %+v, want defaults for the other zero fields", cfg)
	}

	rep, err := p.Run(context.Background())
	if err != nil {
		t.Fatalf("Run() error = %v", err)
	}
	if rep.Status != StatusCompleted {
		t.Errorf("Status = %q, want completed with no minimum threshold", rep.Status)
	}
}

func TestPipeline_AllReferencesBroken(t *testing.T) {
	t.Parallel()

	var obs []Observation
	for i := 0; i < 12; i++ {
		obs = append(obs, Observation{UserID: "u1", ItemID: "", Rating: 3})
	}
	sink := newMemSink()

	rep, err := NewPipeline(&memSource{obs: obs}, sink, DefaultConfig(), zerolog.Nop()).Run(context.Background())
	if !errors.Is(err, ErrEmptyMapping) || !IsNoop(err) {
		t.Fatalf("Run() error = %v, want ErrEmptyMapping", err)
	}
	if rep.Status != StatusInsufficientMapped || rep.Dropped != 12 {
		t.Errorf("report = %+v", rep)
	}
	if sink.writes() != 0 {
		t.Errorf("sink received %d writes, want 0", sink.writes())
	}
}

func TestPipeline_SingleMappedPair(t *testing.T) {
	t.Parallel()

	obs := []Observation{{UserID: "u1", ItemID: "i1", Rating: 4}}
	for i := 0; i < 9; i++ {
		obs = append(obs, Observation{UserID: "u1", ItemID: "", Rating: 2})
	}
	sink := newMemSink()

	rep, err := NewPipeline(&memSource{obs: obs, items: []string{"i1", "i2"}}, sink, DefaultConfig(), zerolog.Nop()).
		Run(context.Background())
	if err != nil {
		t.Fatalf("Run() error = %v", err)
	}

	if rep.Status != StatusCompleted || rep.Pairs != 1 || rep.Dropped != 9 {
		t.Errorf("report = %+v", rep)
	}
	if rep.ValPairs != 0 || rep.FinalValLoss.Valid() {
		t.Errorf("validation should be disabled: valPairs=%d valLoss=%v", rep.ValPairs, rep.FinalValLoss)
	}
	if !rep.FinalLoss.Valid() {
		t.Errorf("FinalLoss = %v, want finite", rep.FinalLoss)
	}
	if len(sink.users) != 1 || len(sink.items) != 1 {
		t.Errorf("writes users=%d items=%d, want 1/1", len(sink.users), len(sink.items))
	}
	if list, ok := sink.lists["u1"]; !ok || len(list) != 0 {
		t.Errorf("u1 list = %+v (written=%v), want written and empty", list, ok)
	}
}

func TestPipeline_PersistenceFailuresDoNotAbort(t *testing.T) {
	t.Parallel()

	sink := newMemSink()
	sink.failFor["u2"] = true
	sink.failFor["i3"] = true
	sink.failFor["list:u1"] = true

	rep, err := NewPipeline(threeUsersFourItems(), sink, DefaultConfig(), zerolog.Nop()).Run(context.Background())
	if err != nil {
		t.Fatalf("Run() error = %v", err)
	}

	if rep.Status != StatusCompleted {
		t.Errorf("Status = %q, want completed", rep.Status)
	}
	if rep.PersistFailures != 3 {
		t.Errorf("PersistFailures = %d, want 3", rep.PersistFailures)
	}
	if rep.UsersUpdated != 2 || rep.ItemsUpdated != 3 || rep.ListsWritten != 2 {
		t.Errorf("updated users=%d items=%d lists=%d, want 2/3/2", rep.UsersUpdated, rep.ItemsUpdated, rep.ListsWritten)
	}
}

func TestPipeline_SourceError(t *testing.T) {
	t.Parallel()

	boom := errors.New("mongo down")
	rep, err := NewPipeline(&memSource{err: boom}, newMemSink(), DefaultConfig(), zerolog.Nop()).Run(context.Background())
	if !errors.Is(err, boom) {
		t.Fatalf("Run() error = %v, want wrapped %v", err, boom)
	}
	if IsNoop(err) {
		t.Error("a source failure is not a no-op")
	}
	if rep.Status != StatusFailed {
		t.Errorf("Status = %q, want failed", rep.Status)
	}
}

func TestPipeline_StableAcrossRuns(t *testing.T) {
	t.Parallel()

	run := func() map[string][]Scored {
		sink := newMemSink()
		if _, err := NewPipeline(threeUsersFourItems(), sink, DefaultConfig(), zerolog.Nop()).Run(context.Background()); err != nil {
			t.Fatalf("Run() error = %v", err)
		}
		return sink.lists
	}

	a, b := run(), run()
	for u, la := range a {
		lb := b[u]
		if len(la) != len(lb) {
			t.Fatalf("user %s: list lengths %d vs %d", u, len(la), len(lb))
		}
		for i := range la {
			if la[i].ItemID != lb[i].ItemID {
				t.Errorf("user %s rank %d: %s vs %s", u, i, la[i].ItemID, lb[i].ItemID)
			}
			if math.Abs(la[i].Score-lb[i].Score) > 1e-9 {
				t.Errorf("user %s rank %d: score %v vs %v", u, i, la[i].Score, lb[i].Score)
			}
		}
	}
}

func TestLoss_JSON(t *testing.T) {
	t.Parallel()

	tests := []struct {
		in   Loss
		want string
	}{
		{Loss(0.25), `0.25`},
		{Loss(math.NaN()), `"N/A"`},
		{Loss(math.Inf(1)), `"N/A"`},
	}
	for _, tt := range tests {
		b, err := json.Marshal(tt.in)
		if err != nil {
			t.Fatalf("Marshal(%v) error = %v", tt.in, err)
		}
		if string(b) != tt.want {
			t.Errorf("Marshal(%v) = %s, want %s", tt.in, b, tt.want)
		}
	}

	var l Loss
	if err := json.Unmarshal([]byte(`"N/A"`), &l); err != nil || l.Valid() {
		t.Errorf(`Unmarshal("N/A") = %v, %v; want NaN`, l, err)
	}
	if got := Loss(math.NaN()).String(); got != "N/A" {
		t.Errorf("String() = %q, want N/A", got)
	}
}
