package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

const AlgoMatrixFactorization = "mf-adam"

type RecItem struct {
	MenuItemID string  `bson:"menuItemId" json:"menuItemId"`
	Score      float64 `bson:"score"      json:"score"`
}

// Recommendation es una entrada del historial: la lista generada para un usuario en una corrida.
type Recommendation struct {
	ID        primitive.ObjectID `bson:"_id,omitempty"        json:"id"`
	UserID    primitive.ObjectID `bson:"userId"               json:"userId"`
	RunID     string             `bson:"runId"                json:"runId"`
	Algo      string             `bson:"algo"                 json:"algo"`
	Items     []RecItem          `bson:"items"                json:"items"`
	CreatedAt time.Time          `bson:"createdAt"            json:"createdAt"`
}

// RecommendedMenuItem es lo que ve el cliente: el plato en el orden de la lista.
type RecommendedMenuItem struct {
	MenuItemDoc `bson:",inline"`
	Rank        int `json:"rank" bson:"rank"`
}

// UserRecommendations respuesta de GET /me/recommendations.
type UserRecommendations struct {
	UserID      string                `json:"userId"`
	LastTrained *time.Time            `json:"lastTrained,omitempty"`
	Items       []RecommendedMenuItem `json:"items"`
}
