package account

import (
	"context"

	"github.com/google/uuid"
	"github.com/phrazzld/scent-api/internal/domain"
)

// Stats summarizes the user's orders and saved wishlist.
func (s *Service) Stats(ctx context.Context, userID uuid.UUID) (*domain.UserStats, error) {
	user, err := s.GetUser(ctx, userID)
	if err != nil {
		return nil, err
	}
	orders, err := s.orders.ListByEmail(ctx, user.Email)
	if err != nil {
		return nil, NewAccountServiceError("stats", "failed to load orders", err)
	}
	saved, err := s.wishlists.Load(ctx, user.Email)
	if err != nil {
		return nil, NewAccountServiceError("stats", "failed to load wishlist", err)
	}
	stats := domain.ComputeStats(orders, len(saved))
	return &stats, nil
}

// Settings returns the user's preferences, defaults included.
func (s *Service) Settings(ctx context.Context, userID uuid.UUID) (domain.Settings, error) {
	user, err := s.GetUser(ctx, userID)
	if err != nil {
		return domain.Settings{}, err
	}
	settings, err := s.settings.Get(ctx, user.Email)
	if err != nil {
		return domain.Settings{}, NewAccountServiceError("settings", "failed to load settings", err)
	}
	return settings, nil
}

// SaveSettings stores the user's preferences.
func (s *Service) SaveSettings(ctx context.Context, userID uuid.UUID, settings domain.Settings) error {
	if err := settings.Validate(); err != nil {
		return err
	}
	user, err := s.GetUser(ctx, userID)
	if err != nil {
		return err
	}
	if err := s.settings.Save(ctx, user.Email, settings); err != nil {
		return NewAccountServiceError("save_settings", "failed to save settings", err)
	}
	s.logger.Debug("settings saved", "user_id", userID)
	return nil
}
