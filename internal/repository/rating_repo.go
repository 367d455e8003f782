package repository

import (
	"context"
	"time"

	"github.com/Amieurramy/updated-back-main/internal/db"
	"github.com/Amieurramy/updated-back-main/internal/models"
	"github.com/Amieurramy/updated-back-main/internal/recsys"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

type RatingRepository struct {
	col *mongo.Collection
}

func NewRatingRepository() *RatingRepository {
	return &RatingRepository{col: db.DB().Collection(db.RatingsCollection)}
}

// UpsertRating guarda un rating explícito; reemplaza cualquier valor anterior (incluido uno imputado).
func (r *RatingRepository) UpsertRating(ctx context.Context, userID, itemID primitive.ObjectID, rating float64) error {
	now := time.Now().UTC()
	_, err := r.col.UpdateOne(ctx,
		bson.M{"user": userID, "menuItem": itemID},
		bson.M{
			"$set": bson.M{
				"rating":    rating,
				"source":    recsys.SourceExplicit,
				"updatedAt": now,
			},
			"$setOnInsert": bson.M{"createdAt": now},
		},
		options.Update().SetUpsert(true),
	)
	return err
}

// InsertImputed crea un rating imputado solo si el par aún no tiene ninguno.
// Devuelve true si insertó.
func (r *RatingRepository) InsertImputed(ctx context.Context, userID, itemID primitive.ObjectID) (bool, error) {
	now := time.Now().UTC()
	res, err := r.col.UpdateOne(ctx,
		bson.M{"user": userID, "menuItem": itemID},
		bson.M{"$setOnInsert": bson.M{
			"rating":    recsys.ImputedRating,
			"source":    recsys.SourceImputed,
			"createdAt": now,
			"updatedAt": now,
		}},
		options.Update().SetUpsert(true),
	)
	if err != nil {
		return false, err
	}
	return res.UpsertedCount > 0, nil
}

func (r *RatingRepository) GetByUser(ctx context.Context, userID primitive.ObjectID, limit, offset int64) ([]models.RatingDoc, error) {
	cur, err := r.col.Find(ctx,
		bson.M{"user": userID},
		options.Find().
			SetSort(bson.D{{Key: "updatedAt", Value: -1}}).
			SetLimit(limit).
			SetSkip(offset),
	)
	if err != nil {
		return nil, err
	}
	defer cur.Close(ctx)

	out := []models.RatingDoc{}
	if err := cur.All(ctx, &out); err != nil {
		return nil, err
	}
	return out, nil
}

// ItemStats calcula promedio y cantidad de ratings explícitos de un plato.
func (r *RatingRepository) ItemStats(ctx context.Context, itemID primitive.ObjectID) (models.RatingStats, error) {
	cur, err := r.col.Aggregate(ctx, mongo.Pipeline{
		{{Key: "$match", Value: bson.M{"menuItem": itemID, "source": recsys.SourceExplicit}}},
		{{Key: "$group", Value: bson.M{
			"_id":   nil,
			"avg":   bson.M{"$avg": "$rating"},
			"count": bson.M{"$sum": 1},
			"last":  bson.M{"$max": "$updatedAt"},
		}}},
	})
	if err != nil {
		return models.RatingStats{}, err
	}
	defer cur.Close(ctx)

	var stats models.RatingStats
	if cur.Next(ctx) {
		var row struct {
			Avg   float64   `bson:"avg"`
			Count int       `bson:"count"`
			Last  time.Time `bson:"last"`
		}
		if err := cur.Decode(&row); err != nil {
			return stats, err
		}
		stats.Average = row.Avg
		stats.Count = row.Count
		if !row.Last.IsZero() {
			stats.LastRatedAt = &row.Last
		}
	}
	return stats, cur.Err()
}

// CountBySource cuenta los ratings con la procedencia dada.
func (r *RatingRepository) CountBySource(ctx context.Context, source string) (int64, error) {
	filter := bson.M{"source": source}
	if source == recsys.SourceExplicit {
		// los documentos anteriores a la columna source son explícitos
		filter = bson.M{"source": bson.M{"$in": bson.A{recsys.SourceExplicit, nil, ""}}}
	}
	return r.col.CountDocuments(ctx, filter)
}

// Observations devuelve un snapshot de todos los ratings resolviendo las referencias a
// usuarios y platos. Si una referencia no existe el id queda vacío.
func (r *RatingRepository) Observations(ctx context.Context) ([]recsys.Observation, error) {
	pipeline := mongo.Pipeline{
		{{Key: "$sort", Value: bson.D{{Key: "_id", Value: 1}}}},
		{{Key: "$lookup", Value: bson.M{
			"from":         db.UsersCollection,
			"localField":   "user",
			"foreignField": "_id",
			"as":           "u",
		}}},
		{{Key: "$lookup", Value: bson.M{
			"from":         db.MenuItemsCollection,
			"localField":   "menuItem",
			"foreignField": "_id",
			"as":           "m",
		}}},
		{{Key: "$project", Value: bson.M{
			"user":      1,
			"menuItem":  1,
			"rating":    1,
			"source":    1,
			"userFound": bson.M{"$gt": bson.A{bson.M{"$size": "$u"}, 0}},
			"itemFound": bson.M{"$gt": bson.A{bson.M{"$size": "$m"}, 0}},
		}}},
	}

	cur, err := r.col.Aggregate(ctx, pipeline, options.Aggregate().SetAllowDiskUse(true))
	if err != nil {
		return nil, err
	}
	defer cur.Close(ctx)

	var out []recsys.Observation
	for cur.Next(ctx) {
		var row struct {
			User      primitive.ObjectID `bson:"user"`
			MenuItem  primitive.ObjectID `bson:"menuItem"`
			Rating    float64            `bson:"rating"`
			Source    string             `bson:"source"`
			UserFound bool               `bson:"userFound"`
			ItemFound bool               `bson:"itemFound"`
		}
		if err := cur.Decode(&row); err != nil {
			return nil, err
		}
		out = append(out, toObservation(row.User, row.MenuItem, row.Rating, row.Source, row.UserFound, row.ItemFound))
	}
	return out, cur.Err()
}

func toObservation(user, item primitive.ObjectID, rating float64, source string, userFound, itemFound bool) recsys.Observation {
	o := recsys.Observation{Rating: rating, Source: source}
	if o.Source == "" {
		o.Source = recsys.SourceExplicit
	}
	if userFound && !user.IsZero() {
		o.UserID = user.Hex()
	}
	if itemFound && !item.IsZero() {
		o.ItemID = item.Hex()
	}
	return o
}
