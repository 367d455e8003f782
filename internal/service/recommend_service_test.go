package service

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/Amieurramy/updated-back-main/internal/models"

	"github.com/rs/zerolog"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

type fakeItemFinder struct {
	items map[primitive.ObjectID]models.MenuItemDoc
}

func (f *fakeItemFinder) FindByIDs(_ context.Context, ids []primitive.ObjectID) ([]models.MenuItemDoc, error) {
	out := []models.MenuItemDoc{}
	for _, id := range ids {
		if m, ok := f.items[id]; ok {
			out = append(out, m)
		}
	}
	return out, nil
}

type fakeHistory struct{}

func (fakeHistory) FindByUser(context.Context, primitive.ObjectID, int64) ([]models.Recommendation, error) {
	return []models.Recommendation{{RunID: "r1"}}, nil
}

func TestRecommendService_ForUser(t *testing.T) {
	t.Parallel()

	a, b, gone := primitive.NewObjectID(), primitive.NewObjectID(), primitive.NewObjectID()
	trained := time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)
	userID := primitive.NewObjectID()
	users := &fakeUsers{docs: map[primitive.ObjectID]*models.UserDoc{userID: {
		ID:              userID,
		Recommendations: []primitive.ObjectID{b, gone, a},
		CFParams:        &models.CFParams{W: []float64{0.1}, LastTrained: trained},
	}}}
	items := &fakeItemFinder{items: map[primitive.ObjectID]models.MenuItemDoc{
		a: {ID: a, Name: "ceviche", CFFeatures: []float64{0.3, 0.1}},
		b: {ID: b, Name: "causa"},
	}}
	svc := NewRecommendService(users, items, fakeHistory{}, time.Minute, zerolog.Nop())

	got, err := svc.ForUser(context.Background(), userID.Hex(), false)
	if err != nil {
		t.Fatalf("ForUser() error = %v", err)
	}
	if len(got.Items) != 2 {
		t.Fatalf("items = %d, want 2 (deleted dish skipped)", len(got.Items))
	}
	if got.Items[0].Name != "causa" || got.Items[0].Rank != 1 || got.Items[1].Name != "ceviche" || got.Items[1].Rank != 2 {
		t.Errorf("items = %+v, want causa then ceviche", got.Items)
	}
	if got.Items[1].CFFeatures != nil {
		t.Error("cfFeatures must not be exposed")
	}
	if got.LastTrained == nil || !got.LastTrained.Equal(trained) {
		t.Errorf("LastTrained = %v, want %v", got.LastTrained, trained)
	}
}

func TestRecommendService_Errors(t *testing.T) {
	t.Parallel()

	svc := NewRecommendService(&fakeUsers{docs: map[primitive.ObjectID]*models.UserDoc{}}, &fakeItemFinder{}, fakeHistory{}, time.Minute, zerolog.Nop())

	if _, err := svc.ForUser(context.Background(), "xyz", true); !errors.Is(err, ErrInvalidID) {
		t.Errorf("ForUser(xyz) error = %v, want ErrInvalidID", err)
	}
	if _, err := svc.ForUser(context.Background(), primitive.NewObjectID().Hex(), true); !errors.Is(err, ErrNotFound) {
		t.Errorf("ForUser(unknown) error = %v, want ErrNotFound", err)
	}

	hist, err := svc.History(context.Background(), primitive.NewObjectID().Hex(), 5)
	if err != nil || len(hist) != 1 {
		t.Errorf("History() = %v, %v", hist, err)
	}
}

func TestRecommendService_UntrainedUser(t *testing.T) {
	t.Parallel()

	userID := primitive.NewObjectID()
	users := &fakeUsers{docs: map[primitive.ObjectID]*models.UserDoc{userID: {ID: userID}}}
	svc := NewRecommendService(users, &fakeItemFinder{}, fakeHistory{}, time.Minute, zerolog.Nop())

	got, err := svc.ForUser(context.Background(), userID.Hex(), false)
	if err != nil {
		t.Fatalf("ForUser() error = %v", err)
	}
	if got.Items == nil || len(got.Items) != 0 || got.LastTrained != nil {
		t.Errorf("got %+v, want empty non-nil list and no lastTrained", got)
	}
}
