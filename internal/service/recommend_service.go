package service

import (
	"context"
	"fmt"
	"time"

	"github.com/Amieurramy/updated-back-main/internal/cache"
	"github.com/Amieurramy/updated-back-main/internal/metrics"
	"github.com/Amieurramy/updated-back-main/internal/models"

	"github.com/rs/zerolog"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

type userFinder interface {
	FindByID(ctx context.Context, id primitive.ObjectID) (*models.UserDoc, error)
}

type menuItemFinder interface {
	FindByIDs(ctx context.Context, ids []primitive.ObjectID) ([]models.MenuItemDoc, error)
}

type historyFinder interface {
	FindByUser(ctx context.Context, userID primitive.ObjectID, limit int64) ([]models.Recommendation, error)
}

// RecommendService sirve las listas persistidas por la última corrida de entrenamiento.
type RecommendService struct {
	users   userFinder
	items   menuItemFinder
	history historyFinder
	ttl     time.Duration
	logger  zerolog.Logger
}

//nolint:gocritic // zerolog.Logger por valor
func NewRecommendService(users userFinder, items menuItemFinder, history historyFinder, ttl time.Duration, logger zerolog.Logger) *RecommendService {
	return &RecommendService{
		users:   users,
		items:   items,
		history: history,
		ttl:     ttl,
		logger:  logger,
	}
}

// ForUser devuelve los platos recomendados al usuario, en el orden de la lista.
// refresh=true ignora el cache.
func (s *RecommendService) ForUser(ctx context.Context, userHex string, refresh bool) (*models.UserRecommendations, error) {
	userID, err := parseObjectID(userHex)
	if err != nil {
		return nil, err
	}

	key := cache.UserRecommendationsKey(userHex)
	if !refresh {
		var cached models.UserRecommendations
		ok, err := cache.GetJSON(ctx, key, &cached)
		if err != nil {
			s.logger.Warn().Err(err).Str("key", key).Msg("cache get falló")
		}
		metrics.RecordCache("recommendations", ok)
		if ok {
			return &cached, nil
		}
	}

	u, err := s.users.FindByID(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("find user: %w", err)
	}
	if u == nil {
		return nil, ErrNotFound
	}

	docs, err := s.items.FindByIDs(ctx, u.Recommendations)
	if err != nil {
		return nil, fmt.Errorf("find menu items: %w", err)
	}

	out := &models.UserRecommendations{
		UserID: userHex,
		Items:  make([]models.RecommendedMenuItem, 0, len(docs)),
	}
	if u.CFParams != nil && !u.CFParams.LastTrained.IsZero() {
		t := u.CFParams.LastTrained
		out.LastTrained = &t
	}
	for i, d := range docs {
		d.CFFeatures = nil
		out.Items = append(out.Items, models.RecommendedMenuItem{MenuItemDoc: d, Rank: i + 1})
	}

	if err := cache.SetJSON(ctx, key, out, s.ttl); err != nil {
		s.logger.Warn().Err(err).Str("key", key).Msg("cache set falló")
	}
	return out, nil
}

// History devuelve las últimas listas generadas para el usuario.
func (s *RecommendService) History(ctx context.Context, userHex string, limit int64) ([]models.Recommendation, error) {
	userID, err := parseObjectID(userHex)
	if err != nil {
		return nil, err
	}
	return s.history.FindByUser(ctx, userID, limit)
}
