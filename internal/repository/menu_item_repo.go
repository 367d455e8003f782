package repository

import (
	"context"
	"errors"
	"time"

	"github.com/Amieurramy/updated-back-main/internal/db"
	"github.com/Amieurramy/updated-back-main/internal/models"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

type MenuItemRepository struct {
	col *mongo.Collection
}

func NewMenuItemRepository() *MenuItemRepository {
	return &MenuItemRepository{col: db.DB().Collection(db.MenuItemsCollection)}
}

func (r *MenuItemRepository) FindByID(ctx context.Context, id primitive.ObjectID) (*models.MenuItemDoc, error) {
	var m models.MenuItemDoc
	err := r.col.FindOne(ctx, bson.M{"_id": id}).Decode(&m)
	if errors.Is(err, mongo.ErrNoDocuments) {
		return nil, nil
	}
	return &m, err
}

// FindByIDs devuelve los platos en el mismo orden que ids; los que no existen se omiten.
func (r *MenuItemRepository) FindByIDs(ctx context.Context, ids []primitive.ObjectID) ([]models.MenuItemDoc, error) {
	if len(ids) == 0 {
		return []models.MenuItemDoc{}, nil
	}
	cur, err := r.col.Find(ctx, bson.M{"_id": bson.M{"$in": ids}})
	if err != nil {
		return nil, err
	}
	defer cur.Close(ctx)

	byID := make(map[primitive.ObjectID]models.MenuItemDoc, len(ids))
	for cur.Next(ctx) {
		var m models.MenuItemDoc
		if err := cur.Decode(&m); err != nil {
			return nil, err
		}
		byID[m.ID] = m
	}
	if err := cur.Err(); err != nil {
		return nil, err
	}

	out := make([]models.MenuItemDoc, 0, len(ids))
	for _, id := range ids {
		if m, ok := byID[id]; ok {
			out = append(out, m)
		}
	}
	return out, nil
}

func (r *MenuItemRepository) List(ctx context.Context, f models.MenuItemFilter) ([]models.MenuItemDoc, error) {
	filter := bson.M{}
	if f.Category != "" {
		filter["category"] = f.Category
	}
	if f.AvailableOnly {
		filter["isAvailable"] = true
	}
	if f.Limit <= 0 || f.Limit > 200 {
		f.Limit = 50
	}

	opts := options.Find().
		SetSort(bson.D{{Key: "_id", Value: 1}}).
		SetLimit(f.Limit).
		SetSkip(f.Offset).
		SetProjection(bson.M{"cfFeatures": 0})

	cur, err := r.col.Find(ctx, filter, opts)
	if err != nil {
		return nil, err
	}
	defer cur.Close(ctx)

	out := []models.MenuItemDoc{}
	if err := cur.All(ctx, &out); err != nil {
		return nil, err
	}
	return out, nil
}

// All devuelve el catálogo completo con la información nutricional (sin parámetros CF).
func (r *MenuItemRepository) All(ctx context.Context) ([]models.MenuItemDoc, error) {
	cur, err := r.col.Find(ctx, bson.M{},
		options.Find().
			SetSort(bson.D{{Key: "_id", Value: 1}}).
			SetProjection(bson.M{"cfFeatures": 0}),
	)
	if err != nil {
		return nil, err
	}
	defer cur.Close(ctx)

	var out []models.MenuItemDoc
	if err := cur.All(ctx, &out); err != nil {
		return nil, err
	}
	return out, nil
}

// AllIDs devuelve los ids del catálogo en orden de inserción (_id ascendente).
func (r *MenuItemRepository) AllIDs(ctx context.Context) ([]string, error) {
	cur, err := r.col.Find(ctx, bson.M{},
		options.Find().
			SetSort(bson.D{{Key: "_id", Value: 1}}).
			SetProjection(bson.M{"_id": 1}),
	)
	if err != nil {
		return nil, err
	}
	defer cur.Close(ctx)

	var ids []string
	for cur.Next(ctx) {
		var doc struct {
			ID primitive.ObjectID `bson:"_id"`
		}
		if err := cur.Decode(&doc); err != nil {
			return nil, err
		}
		ids = append(ids, doc.ID.Hex())
	}
	return ids, cur.Err()
}

// SetCFParams reemplaza embedding y bias del plato.
func (r *MenuItemRepository) SetCFParams(ctx context.Context, id primitive.ObjectID, features []float64, bias float64) error {
	res, err := r.col.UpdateOne(ctx,
		bson.M{"_id": id},
		bson.M{"$set": bson.M{
			"cfFeatures": features,
			"cfBias":     bias,
			"updatedAt":  time.Now().UTC(),
		}},
	)
	if err != nil {
		return err
	}
	if res.MatchedCount == 0 {
		return mongo.ErrNoDocuments
	}
	return nil
}

func (r *MenuItemRepository) UpdateRatingStats(ctx context.Context, id primitive.ObjectID, stats models.RatingStats) error {
	_, err := r.col.UpdateOne(ctx,
		bson.M{"_id": id},
		bson.M{"$set": bson.M{"ratingStats": stats}},
	)
	return err
}

func (r *MenuItemRepository) Count(ctx context.Context) (int64, error) {
	return r.col.CountDocuments(ctx, bson.M{})
}

func (r *MenuItemRepository) CountWithParams(ctx context.Context) (int64, error) {
	return r.col.CountDocuments(ctx, bson.M{"cfFeatures.0": bson.M{"$exists": true}})
}
