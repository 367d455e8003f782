package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// RatingDoc es una señal usuario–plato. Source: explicit (el usuario puntuó) o
// imputed (derivado de sus preferencias).
type RatingDoc struct {
	ID        primitive.ObjectID `json:"id" bson:"_id,omitempty"`
	User      primitive.ObjectID `json:"user" bson:"user"`
	MenuItem  primitive.ObjectID `json:"menuItem" bson:"menuItem"`
	Rating    float64            `json:"rating" bson:"rating"`
	Source    string             `json:"source" bson:"source"`
	CreatedAt time.Time          `json:"createdAt" bson:"createdAt"`
	UpdatedAt time.Time          `json:"updatedAt" bson:"updatedAt"`
}

// RatingRequest body de POST /me/ratings.
type RatingRequest struct {
	MenuItemID string  `json:"menuItemId" validate:"required,mongodb"`
	Rating     float64 `json:"rating" validate:"gte=0,lte=5"`
}
