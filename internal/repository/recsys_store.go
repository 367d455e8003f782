package repository

import (
	"context"
	"fmt"

	"github.com/Amieurramy/updated-back-main/internal/cache"
	"github.com/Amieurramy/updated-back-main/internal/models"
	"github.com/Amieurramy/updated-back-main/internal/recsys"

	"github.com/rs/zerolog"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

// RecsysStore adapta las colecciones de Mongo a recsys.Source y recsys.Sink.
type RecsysStore struct {
	users   *UserRepository
	items   *MenuItemRepository
	ratings *RatingRepository
	history *RecommendationRepository
	logger  zerolog.Logger
}

var (
	_ recsys.Source = (*RecsysStore)(nil)
	_ recsys.Sink   = (*RecsysStore)(nil)
)

//nolint:gocritic // zerolog.Logger por valor
func NewRecsysStore(
	users *UserRepository,
	items *MenuItemRepository,
	ratings *RatingRepository,
	history *RecommendationRepository,
	logger zerolog.Logger,
) *RecsysStore {
	return &RecsysStore{
		users:   users,
		items:   items,
		ratings: ratings,
		history: history,
		logger:  logger,
	}
}

func (s *RecsysStore) Observations(ctx context.Context) ([]recsys.Observation, error) {
	return s.ratings.Observations(ctx)
}

func (s *RecsysStore) Favorites(ctx context.Context) (map[string][]string, error) {
	return s.users.AllFavorites(ctx)
}

func (s *RecsysStore) Items(ctx context.Context) ([]string, error) {
	return s.items.AllIDs(ctx)
}

func (s *RecsysStore) SaveUserParams(ctx context.Context, userID string, p recsys.UserParams) error {
	id, err := parseID(userID)
	if err != nil {
		return err
	}
	return s.users.SetCFParams(ctx, id, models.CFParams{
		W:           p.Embedding,
		B:           p.Bias,
		LastTrained: p.TrainedAt,
	})
}

func (s *RecsysStore) SaveItemParams(ctx context.Context, itemID string, p recsys.ItemParams) error {
	id, err := parseID(itemID)
	if err != nil {
		return err
	}
	return s.items.SetCFParams(ctx, id, p.Embedding, p.Bias)
}

// SaveRecommendations reemplaza la lista del usuario. El historial y la invalidación
// del cache son secundarios: si fallan se loguea y la escritura principal se mantiene.
func (s *RecsysStore) SaveRecommendations(ctx context.Context, userID, runID string, recs []recsys.Scored) error {
	id, err := parseID(userID)
	if err != nil {
		return err
	}

	ids := make([]primitive.ObjectID, 0, len(recs))
	items := make([]models.RecItem, 0, len(recs))
	for _, r := range recs {
		itemID, err := parseID(r.ItemID)
		if err != nil {
			return err
		}
		ids = append(ids, itemID)
		items = append(items, models.RecItem{MenuItemID: r.ItemID, Score: r.Score})
	}

	if err := s.users.SetRecommendations(ctx, id, ids); err != nil {
		return err
	}

	if err := cache.Delete(ctx, cache.UserRecommendationsKey(userID)); err != nil {
		s.logger.Warn().Err(err).Str("user", userID).Msg("no se pudo invalidar el cache")
	}

	err = s.history.Insert(ctx, &models.Recommendation{
		UserID: id,
		RunID:  runID,
		Algo:   models.AlgoMatrixFactorization,
		Items:  items,
	})
	if err != nil {
		s.logger.Warn().Err(err).Str("user", userID).Msg("no se pudo guardar el historial")
	}
	return nil
}

func parseID(hex string) (primitive.ObjectID, error) {
	id, err := primitive.ObjectIDFromHex(hex)
	if err != nil {
		return primitive.NilObjectID, fmt.Errorf("invalid object id %q: %w", hex, err)
	}
	return id, nil
}
