package repository

import (
	"context"
	"errors"

	"github.com/Amieurramy/updated-back-main/internal/db"
	"github.com/Amieurramy/updated-back-main/internal/recsys"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

type TrainingRunRepository struct {
	col *mongo.Collection
}

func NewTrainingRunRepository() *TrainingRunRepository {
	return &TrainingRunRepository{col: db.DB().Collection(db.TrainingRunsCollection)}
}

func (r *TrainingRunRepository) Insert(ctx context.Context, rep *recsys.Report) error {
	_, err := r.col.InsertOne(ctx, rep)
	return err
}

// List devuelve las últimas corridas, más reciente primero.
func (r *TrainingRunRepository) List(ctx context.Context, limit int64) ([]recsys.Report, error) {
	if limit <= 0 || limit > 100 {
		limit = 20
	}
	cur, err := r.col.Find(ctx, bson.M{},
		options.Find().SetSort(bson.D{{Key: "startedAt", Value: -1}}).SetLimit(limit),
	)
	if err != nil {
		return nil, err
	}
	defer cur.Close(ctx)

	out := []recsys.Report{}
	if err := cur.All(ctx, &out); err != nil {
		return nil, err
	}
	return out, nil
}

func (r *TrainingRunRepository) Last(ctx context.Context) (*recsys.Report, error) {
	var rep recsys.Report
	err := r.col.FindOne(ctx, bson.M{},
		options.FindOne().SetSort(bson.D{{Key: "startedAt", Value: -1}}),
	).Decode(&rep)
	if errors.Is(err, mongo.ErrNoDocuments) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &rep, nil
}
