package service

import (
	"context"
	"fmt"

	"github.com/Amieurramy/updated-back-main/internal/models"
	"github.com/Amieurramy/updated-back-main/internal/repository"
)

type RatingService struct {
	ratings *repository.RatingRepository
	items   *repository.MenuItemRepository
}

func NewRatingService(r *repository.RatingRepository, m *repository.MenuItemRepository) *RatingService {
	return &RatingService{
		ratings: r,
		items:   m,
	}
}

// AddOrUpdate guarda el rating explícito del usuario y recalcula ratingStats del plato.
// El modelo no cambia hasta la próxima corrida de entrenamiento.
func (s *RatingService) AddOrUpdate(ctx context.Context, userHex string, req models.RatingRequest) error {
	userID, err := parseObjectID(userHex)
	if err != nil {
		return err
	}
	itemID, err := parseObjectID(req.MenuItemID)
	if err != nil {
		return err
	}

	item, err := s.items.FindByID(ctx, itemID)
	if err != nil {
		return err
	}
	if item == nil {
		return fmt.Errorf("menu item %s: %w", req.MenuItemID, ErrNotFound)
	}

	if err := s.ratings.UpsertRating(ctx, userID, itemID, req.Rating); err != nil {
		return err
	}

	stats, err := s.ratings.ItemStats(ctx, itemID)
	if err != nil {
		return err
	}
	return s.items.UpdateRatingStats(ctx, itemID, stats)
}

func (s *RatingService) GetByUser(ctx context.Context, userHex string, limit, offset int64) ([]models.RatingDoc, error) {
	userID, err := parseObjectID(userHex)
	if err != nil {
		return nil, err
	}
	return s.ratings.GetByUser(ctx, userID, limit, offset)
}
