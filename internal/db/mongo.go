package db

import (
	"context"
	"fmt"
	"time"

	"github.com/Amieurramy/updated-back-main/internal/config"
	"github.com/Amieurramy/updated-back-main/internal/logging"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

// Colecciones del backend.
const (
	UsersCollection           = "users"
	MenuItemsCollection       = "menuitems"
	RatingsCollection         = "ratings"
	RecommendationsCollection = "recommendations"
	TrainingRunsCollection    = "training_runs"
)

var mongoClient *mongo.Client
var mongoDB *mongo.Database

func InitMongo(cfg *config.Config) error {
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	client, err := mongo.Connect(ctx, options.Client().ApplyURI(cfg.MongoURI))
	if err != nil {
		return fmt.Errorf("mongo connect: %w", err)
	}

	if err := client.Ping(ctx, nil); err != nil {
		_ = client.Disconnect(context.Background())
		return fmt.Errorf("mongo ping: %w", err)
	}

	mongoClient = client
	mongoDB = client.Database(cfg.MongoDB)
	log := logging.Component("mongo")
	log.Info().Str("db", cfg.MongoDB).Msg("conectado")

	if err := ensureIndexes(ctx, mongoDB); err != nil {
		log.Warn().Err(err).Msg("no se pudieron crear índices")
	}
	return nil
}

func ensureIndexes(ctx context.Context, d *mongo.Database) error {
	_, err := d.Collection(RatingsCollection).Indexes().CreateOne(ctx, mongo.IndexModel{
		Keys:    bson.D{{Key: "user", Value: 1}, {Key: "menuItem", Value: 1}},
		Options: options.Index().SetUnique(true),
	})
	if err != nil {
		return err
	}
	_, err = d.Collection(UsersCollection).Indexes().CreateOne(ctx, mongo.IndexModel{
		Keys:    bson.D{{Key: "email", Value: 1}},
		Options: options.Index().SetUnique(true),
	})
	if err != nil {
		return err
	}
	_, err = d.Collection(TrainingRunsCollection).Indexes().CreateOne(ctx, mongo.IndexModel{
		Keys: bson.D{{Key: "startedAt", Value: -1}},
	})
	return err
}

// Ping para el health check.
func Ping(ctx context.Context) error {
	if mongoClient == nil {
		return fmt.Errorf("mongo no inicializado")
	}
	return mongoClient.Ping(ctx, nil)
}

func Disconnect(ctx context.Context) error {
	if mongoClient == nil {
		return nil
	}
	return mongoClient.Disconnect(ctx)
}

func DB() *mongo.Database {
	return mongoDB
}
