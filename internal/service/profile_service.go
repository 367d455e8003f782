package service

import (
	"context"
	"fmt"

	"github.com/Amieurramy/updated-back-main/internal/models"

	"github.com/rs/zerolog"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

type profileUsers interface {
	FindByID(ctx context.Context, id primitive.ObjectID) (*models.UserDoc, error)
	UpdateByID(ctx context.Context, id primitive.ObjectID, update bson.M) error
	AddFavorite(ctx context.Context, id, itemID primitive.ObjectID) error
	RemoveFavorite(ctx context.Context, id, itemID primitive.ObjectID) error
}

type profileCatalog interface {
	FindByID(ctx context.Context, id primitive.ObjectID) (*models.MenuItemDoc, error)
	All(ctx context.Context) ([]models.MenuItemDoc, error)
}

type imputedWriter interface {
	InsertImputed(ctx context.Context, userID, itemID primitive.ObjectID) (bool, error)
}

// ProfileService maneja favoritos y preferencias alimentarias del usuario.
type ProfileService struct {
	users   profileUsers
	items   profileCatalog
	ratings imputedWriter
	logger  zerolog.Logger
}

//nolint:gocritic // zerolog.Logger por valor
func NewProfileService(users profileUsers, items profileCatalog, ratings imputedWriter, logger zerolog.Logger) *ProfileService {
	return &ProfileService{users: users, items: items, ratings: ratings, logger: logger}
}

func (s *ProfileService) AddFavorite(ctx context.Context, userHex, itemHex string) error {
	userID, itemID, err := s.resolve(ctx, userHex, itemHex)
	if err != nil {
		return err
	}
	return s.users.AddFavorite(ctx, userID, itemID)
}

func (s *ProfileService) RemoveFavorite(ctx context.Context, userHex, itemHex string) error {
	userID, err := parseObjectID(userHex)
	if err != nil {
		return err
	}
	itemID, err := parseObjectID(itemHex)
	if err != nil {
		return err
	}
	return s.users.RemoveFavorite(ctx, userID, itemID)
}

func (s *ProfileService) resolve(ctx context.Context, userHex, itemHex string) (primitive.ObjectID, primitive.ObjectID, error) {
	userID, err := parseObjectID(userHex)
	if err != nil {
		return userID, primitive.NilObjectID, err
	}
	itemID, err := parseObjectID(itemHex)
	if err != nil {
		return userID, itemID, err
	}
	item, err := s.items.FindByID(ctx, itemID)
	if err != nil {
		return userID, itemID, err
	}
	if item == nil {
		return userID, itemID, fmt.Errorf("menu item %s: %w", itemHex, ErrNotFound)
	}
	return userID, itemID, nil
}

// SubmitPreferences guarda el perfil alimentario y de salud del usuario e imputa un
// rating bajo (0.5, source imputed) a cada plato que contradice alguna preferencia
// activa. Nunca pisa un rating existente.
func (s *ProfileService) SubmitPreferences(ctx context.Context, userHex string, req models.PreferencesRequest) (*models.PreferencesResult, error) {
	userID, err := parseObjectID(userHex)
	if err != nil {
		return nil, err
	}
	u, err := s.users.FindByID(ctx, userID)
	if err != nil {
		return nil, err
	}
	if u == nil {
		return nil, ErrNotFound
	}

	dietary, health := u.DietaryProfile, u.HealthProfile
	update := bson.M{}
	if req.DietaryProfile != nil {
		dietary = req.DietaryProfile
		update["dietaryProfile"] = dietary
	}
	if req.HealthProfile != nil {
		health = req.HealthProfile
		update["healthProfile"] = health
	}
	if len(update) > 0 {
		if err := s.users.UpdateByID(ctx, userID, update); err != nil {
			return nil, err
		}
	}

	catalog, err := s.items.All(ctx)
	if err != nil {
		return nil, fmt.Errorf("load catalog: %w", err)
	}

	imputed := 0
	for i := range catalog {
		if !catalog[i].ConflictsWith(dietary, health) {
			continue
		}
		ok, err := s.ratings.InsertImputed(ctx, userID, catalog[i].ID)
		if err != nil {
			return nil, fmt.Errorf("impute rating for %s: %w", catalog[i].ID.Hex(), err)
		}
		if ok {
			imputed++
		}
	}

	s.logger.Info().Str("user", userHex).Int("imputed", imputed).Msg("preferencias guardadas")
	return &models.PreferencesResult{
		DietaryProfile: dietary,
		HealthProfile:  health,
		ImputedRatings: imputed,
	}, nil
}
