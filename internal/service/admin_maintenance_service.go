package service

import (
	"context"

	"github.com/Amieurramy/updated-back-main/internal/models"
	"github.com/Amieurramy/updated-back-main/internal/recsys"
	"github.com/Amieurramy/updated-back-main/internal/repository"
)

// AdminMaintenanceService arma el resumen de cobertura del recomendador.
type AdminMaintenanceService struct {
	users   *repository.UserRepository
	items   *repository.MenuItemRepository
	ratings *repository.RatingRepository
	runs    RunStore
}

func NewAdminMaintenanceService(
	users *repository.UserRepository,
	items *repository.MenuItemRepository,
	ratings *repository.RatingRepository,
	runs RunStore,
) *AdminMaintenanceService {
	return &AdminMaintenanceService{users: users, items: items, ratings: ratings, runs: runs}
}

func (s *AdminMaintenanceService) Summary(ctx context.Context) (*models.AdminRecommenderSummary, error) {
	var out models.AdminRecommenderSummary
	var err error

	if out.TotalUsers, err = s.users.Count(ctx); err != nil {
		return nil, err
	}
	if out.UsersWithParams, err = s.users.CountWithParams(ctx); err != nil {
		return nil, err
	}
	out.UsersWithoutParams = out.TotalUsers - out.UsersWithParams

	if out.TotalMenuItems, err = s.items.Count(ctx); err != nil {
		return nil, err
	}
	if out.MenuItemsWithParams, err = s.items.CountWithParams(ctx); err != nil {
		return nil, err
	}
	out.MenuItemsWithoutParams = out.TotalMenuItems - out.MenuItemsWithParams

	if out.ExplicitRatings, err = s.ratings.CountBySource(ctx, recsys.SourceExplicit); err != nil {
		return nil, err
	}
	if out.ImputedRatings, err = s.ratings.CountBySource(ctx, recsys.SourceImputed); err != nil {
		return nil, err
	}

	if s.runs != nil {
		if out.LastRun, err = s.runs.Last(ctx); err != nil {
			return nil, err
		}
	}
	return &out, nil
}
