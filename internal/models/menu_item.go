package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

type RatingStats struct {
	Average     float64    `json:"average" bson:"average"`
	Count       int        `json:"count" bson:"count"`
	LastRatedAt *time.Time `json:"lastRatedAt,omitempty" bson:"lastRatedAt,omitempty"`
}

// MenuItemDoc es un plato del menú. DietaryInfo usa las claves vegetarian, vegan,
// glutenFree y lactoseFree; HealthInfo low_carb, low_fat, low_sugar y low_sodium.
type MenuItemDoc struct {
	ID              primitive.ObjectID `json:"id" bson:"_id,omitempty"`
	Name            string             `json:"name" bson:"name"`
	Description     string             `json:"description,omitempty" bson:"description,omitempty"`
	Price           float64            `json:"price" bson:"price"`
	Image           string             `json:"image,omitempty" bson:"image,omitempty"`
	Category        string             `json:"category" bson:"category"`
	DietaryInfo     map[string]bool    `json:"dietaryInfo,omitempty" bson:"dietaryInfo,omitempty"`
	HealthInfo      map[string]bool    `json:"healthInfo,omitempty" bson:"healthInfo,omitempty"`
	IsAvailable     bool               `json:"isAvailable" bson:"isAvailable"`
	IsPopular       bool               `json:"isPopular" bson:"isPopular"`
	PreparationTime int                `json:"preparationTime,omitempty" bson:"preparationTime,omitempty"`

	CFFeatures  []float64    `json:"cfFeatures,omitempty" bson:"cfFeatures,omitempty"`
	CFBias      float64      `json:"cfBias" bson:"cfBias"`
	RatingStats *RatingStats `json:"ratingStats,omitempty" bson:"ratingStats,omitempty"`

	CreatedAt time.Time `json:"createdAt" bson:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt" bson:"updatedAt"`
}

// ConflictsWith indica si el plato no cumple alguna preferencia activa del perfil.
func (m *MenuItemDoc) ConflictsWith(dietary, health map[string]bool) bool {
	for k, want := range dietary {
		if want && !m.DietaryInfo[k] {
			return true
		}
	}
	for k, want := range health {
		if want && !m.HealthInfo[k] {
			return true
		}
	}
	return false
}

// MenuItemFilter filtros de GET /menu-items.
type MenuItemFilter struct {
	Category      string
	AvailableOnly bool
	Limit         int64
	Offset        int64
}
