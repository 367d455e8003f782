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

type UserRepository struct {
	col *mongo.Collection
}

func NewUserRepository() *UserRepository {
	return &UserRepository{col: db.DB().Collection(db.UsersCollection)}
}

func (r *UserRepository) FindByEmail(ctx context.Context, email string) (*models.UserDoc, error) {
	var u models.UserDoc
	err := r.col.FindOne(ctx, bson.M{"email": email}).Decode(&u)
	if errors.Is(err, mongo.ErrNoDocuments) {
		return nil, nil
	}
	return &u, err
}

func (r *UserRepository) FindByID(ctx context.Context, id primitive.ObjectID) (*models.UserDoc, error) {
	var u models.UserDoc
	err := r.col.FindOne(ctx, bson.M{"_id": id}).Decode(&u)
	if errors.Is(err, mongo.ErrNoDocuments) {
		return nil, nil
	}
	return &u, err
}

func (r *UserRepository) Insert(ctx context.Context, u *models.UserDoc) error {
	res, err := r.col.InsertOne(ctx, u)
	if err != nil {
		return err
	}
	if id, ok := res.InsertedID.(primitive.ObjectID); ok {
		u.ID = id
	}
	return nil
}

// UpdateByID aplica un $set parcial sobre el usuario.
func (r *UserRepository) UpdateByID(ctx context.Context, id primitive.ObjectID, update bson.M) error {
	update["updatedAt"] = time.Now().UTC()
	res, err := r.col.UpdateOne(ctx,
		bson.M{"_id": id},
		bson.M{"$set": update},
	)
	if err != nil {
		return err
	}
	if res.MatchedCount == 0 {
		return mongo.ErrNoDocuments
	}
	return nil
}

func (r *UserRepository) AddFavorite(ctx context.Context, id, itemID primitive.ObjectID) error {
	res, err := r.col.UpdateOne(ctx,
		bson.M{"_id": id},
		bson.M{"$addToSet": bson.M{"favorites": itemID}},
	)
	if err != nil {
		return err
	}
	if res.MatchedCount == 0 {
		return mongo.ErrNoDocuments
	}
	return nil
}

func (r *UserRepository) RemoveFavorite(ctx context.Context, id, itemID primitive.ObjectID) error {
	res, err := r.col.UpdateOne(ctx,
		bson.M{"_id": id},
		bson.M{"$pull": bson.M{"favorites": itemID}},
	)
	if err != nil {
		return err
	}
	if res.MatchedCount == 0 {
		return mongo.ErrNoDocuments
	}
	return nil
}

// AllFavorites devuelve los favoritos de todos los usuarios que tienen alguno (hex → hex).
func (r *UserRepository) AllFavorites(ctx context.Context) (map[string][]string, error) {
	cur, err := r.col.Find(ctx,
		bson.M{"favorites.0": bson.M{"$exists": true}},
		options.Find().SetProjection(bson.M{"favorites": 1}),
	)
	if err != nil {
		return nil, err
	}
	defer cur.Close(ctx)

	out := make(map[string][]string)
	for cur.Next(ctx) {
		var doc struct {
			ID        primitive.ObjectID   `bson:"_id"`
			Favorites []primitive.ObjectID `bson:"favorites"`
		}
		if err := cur.Decode(&doc); err != nil {
			return nil, err
		}
		ids := make([]string, len(doc.Favorites))
		for i, f := range doc.Favorites {
			ids[i] = f.Hex()
		}
		out[doc.ID.Hex()] = ids
	}
	return out, cur.Err()
}

// SetCFParams reemplaza los parámetros aprendidos del usuario.
func (r *UserRepository) SetCFParams(ctx context.Context, id primitive.ObjectID, p models.CFParams) error {
	return r.UpdateByID(ctx, id, bson.M{"cfParams": p})
}

// SetRecommendations reemplaza la lista de recomendaciones del usuario.
func (r *UserRepository) SetRecommendations(ctx context.Context, id primitive.ObjectID, items []primitive.ObjectID) error {
	if items == nil {
		items = []primitive.ObjectID{}
	}
	return r.UpdateByID(ctx, id, bson.M{"recommendations": items})
}

func (r *UserRepository) Count(ctx context.Context) (int64, error) {
	return r.col.CountDocuments(ctx, bson.M{})
}

func (r *UserRepository) CountWithParams(ctx context.Context) (int64, error) {
	return r.col.CountDocuments(ctx, bson.M{"cfParams.w.0": bson.M{"$exists": true}})
}
