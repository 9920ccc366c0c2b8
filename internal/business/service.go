package business

import (
	"context"
	"errors"
	"strings"

	"github.com/google/uuid"

	"github.com/billfold/billfold/internal/shared"
)

// Service handles the business profile lifecycle. A missing profile is not
// an error: it is provisioned with defaults on first access.
type Service struct {
	repo Repository
}

// NewService builds a Service instance.
func NewService(repo Repository) *Service {
	return &Service{repo: repo}
}

// GetOrCreate returns the owner's profile, inserting the default row on a
// read miss.
func (s *Service) GetOrCreate(ctx context.Context, ownerID uuid.UUID) (Info, error) {
	info, err := s.repo.GetByOwner(ctx, ownerID)
	if err == nil {
		return info, nil
	}
	if !errors.Is(err, shared.ErrNotFound) {
		return Info{}, err
	}
	return s.repo.Create(ctx, Info{
		OwnerID:         ownerID,
		BusinessName:    DefaultBusinessName,
		DefaultCurrency: DefaultCurrency,
		TaxRate:         DefaultTaxRate,
	})
}

// Update validates and persists profile changes. The row is provisioned
// first if the owner has never touched their profile.
func (s *Service) Update(ctx context.Context, info Info) (Info, error) {
	if strings.TrimSpace(info.BusinessName) == "" {
		return Info{}, errors.New("business name is required")
	}
	if len(info.DefaultCurrency) != 3 {
		return Info{}, errors.New("default currency must be 3 letters")
	}
	if info.TaxRate < 0 || info.TaxRate > 100 {
		return Info{}, errors.New("tax rate must be between 0 and 100")
	}

	if _, err := s.GetOrCreate(ctx, info.OwnerID); err != nil {
		return Info{}, err
	}
	if err := s.repo.Update(ctx, info); err != nil {
		return Info{}, err
	}
	return s.repo.GetByOwner(ctx, info.OwnerID)
}
