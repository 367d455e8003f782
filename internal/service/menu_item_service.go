package service

import (
	"context"

	"github.com/Amieurramy/updated-back-main/internal/models"
	"github.com/Amieurramy/updated-back-main/internal/repository"
)

type MenuItemService struct {
	items *repository.MenuItemRepository
}

func NewMenuItemService(items *repository.MenuItemRepository) *MenuItemService {
	return &MenuItemService{items: items}
}

func (s *MenuItemService) List(ctx context.Context, f models.MenuItemFilter) ([]models.MenuItemDoc, error) {
	return s.items.List(ctx, f)
}

func (s *MenuItemService) Get(ctx context.Context, hex string) (*models.MenuItemDoc, error) {
	id, err := parseObjectID(hex)
	if err != nil {
		return nil, err
	}
	m, err := s.items.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if m == nil {
		return nil, ErrNotFound
	}
	m.CFFeatures = nil
	return m, nil
}
