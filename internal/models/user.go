package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

const (
	RoleUser  = "user"
	RoleAdmin = "admin"
)

// CFParams son los parámetros aprendidos del usuario en la última corrida.
type CFParams struct {
	W           []float64 `json:"w" bson:"w"`
	B           float64   `json:"b" bson:"b"`
	LastTrained time.Time `json:"lastTrained" bson:"lastTrained"`
}

type UserDoc struct {
	ID           primitive.ObjectID `json:"id" bson:"_id,omitempty"`
	Name         string             `json:"name" bson:"name"`
	Email        string             `json:"email" bson:"email"`
	PasswordHash string             `json:"-" bson:"passwordHash"`
	Role         string             `json:"role" bson:"role"`

	Favorites      []primitive.ObjectID `json:"favorites" bson:"favorites"`
	DietaryProfile map[string]bool      `json:"dietaryProfile,omitempty" bson:"dietaryProfile,omitempty"`
	HealthProfile  map[string]bool      `json:"healthProfile,omitempty" bson:"healthProfile,omitempty"`

	CFParams        *CFParams            `json:"cfParams,omitempty" bson:"cfParams,omitempty"`
	Recommendations []primitive.ObjectID `json:"recommendations" bson:"recommendations"`

	CreatedAt time.Time `json:"createdAt" bson:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt" bson:"updatedAt"`
}

// PreferencesRequest body de PUT /me/preferences.
type PreferencesRequest struct {
	DietaryProfile map[string]bool `json:"dietaryProfile" validate:"omitempty,dive,keys,oneof=vegetarian vegan glutenFree lactoseFree,endkeys"`
	HealthProfile  map[string]bool `json:"healthProfile" validate:"omitempty,dive,keys,oneof=low_carb low_fat low_sugar low_sodium,endkeys"`
}

// PreferencesResult resultado de guardar preferencias.
type PreferencesResult struct {
	DietaryProfile map[string]bool `json:"dietaryProfile"`
	HealthProfile  map[string]bool `json:"healthProfile"`
	ImputedRatings int             `json:"imputedRatings"`
}
