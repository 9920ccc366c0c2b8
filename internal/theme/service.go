package theme

import (
	"context"
	"errors"

	"github.com/google/uuid"

	"github.com/billfold/billfold/internal/shared"
)

// Service handles the template theme lifecycle. A missing theme row is
// provisioned with defaults on first access.
type Service struct {
	repo Repository
}

// NewService builds a Service instance.
func NewService(repo Repository) *Service {
	return &Service{repo: repo}
}

// GetOrCreate returns the owner's theme, inserting the default row on a
// read miss.
func (s *Service) GetOrCreate(ctx context.Context, ownerID uuid.UUID) (Theme, error) {
	t, err := s.repo.GetByOwner(ctx, ownerID)
	if err == nil {
		return t, nil
	}
	if !errors.Is(err, shared.ErrNotFound) {
		return Theme{}, err
	}
	return s.repo.Create(ctx, Default(ownerID))
}

// Update validates and persists theme changes, provisioning the row first
// if needed.
func (s *Service) Update(ctx context.Context, t Theme) (Theme, error) {
	if !ValidLayout(t.Layout) {
		return Theme{}, errors.New("layout must be one of compact, standard, detailed")
	}
	if !ValidLogoPosition(t.LogoPosition) {
		return Theme{}, errors.New("logo position must be one of left, right, center")
	}

	if _, err := s.GetOrCreate(ctx, t.OwnerID); err != nil {
		return Theme{}, err
	}
	if err := s.repo.Update(ctx, t); err != nil {
		return Theme{}, err
	}
	return s.repo.GetByOwner(ctx, t.OwnerID)
}
