package products

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"sync"

	"github.com/google/uuid"
)

// Service owns the per-owner product cache. Mutations trigger a full reload;
// a failed reload keeps the previous snapshot.
type Service struct {
	repo Repository

	mu    sync.RWMutex
	cache map[uuid.UUID][]Product
}

// NewService builds a Service instance.
func NewService(repo Repository) *Service {
	return &Service{
		repo:  repo,
		cache: make(map[uuid.UUID][]Product),
	}
}

// List returns the cached product list, loading it on first access.
func (s *Service) List(ctx context.Context, ownerID uuid.UUID) ([]Product, error) {
	s.mu.RLock()
	cached, ok := s.cache[ownerID]
	s.mu.RUnlock()
	if ok {
		return cached, nil
	}
	return s.Refresh(ctx, ownerID)
}

// Refresh reloads the owner's products from the store.
func (s *Service) Refresh(ctx context.Context, ownerID uuid.UUID) ([]Product, error) {
	list, err := s.repo.ListByOwner(ctx, ownerID)
	if err != nil {
		return nil, fmt.Errorf("products: refresh: %w", err)
	}
	s.mu.Lock()
	s.cache[ownerID] = list
	s.mu.Unlock()
	return list, nil
}

// Get fetches a single product scoped to its owner.
func (s *Service) Get(ctx context.Context, ownerID, id uuid.UUID) (Product, error) {
	return s.repo.Get(ctx, ownerID, id)
}

// Create validates and persists a new product, then refreshes the cache.
func (s *Service) Create(ctx context.Context, product Product) (Product, error) {
	if err := validate(product); err != nil {
		return Product{}, err
	}
	created, err := s.repo.Create(ctx, product)
	if err != nil {
		return Product{}, err
	}
	if _, err := s.Refresh(ctx, product.OwnerID); err != nil {
		return created, err
	}
	return created, nil
}

// Update validates and persists changes to an existing product.
func (s *Service) Update(ctx context.Context, product Product) error {
	if product.ID == uuid.Nil {
		return errors.New("product id required")
	}
	if err := validate(product); err != nil {
		return err
	}
	if err := s.repo.Update(ctx, product); err != nil {
		return err
	}
	_, err := s.Refresh(ctx, product.OwnerID)
	return err
}

// Delete removes a product. Line items that referenced it keep their copied
// description and price; the product reference on them is left dangling.
func (s *Service) Delete(ctx context.Context, ownerID, id uuid.UUID) error {
	if err := s.repo.Delete(ctx, ownerID, id); err != nil {
		return err
	}
	_, err := s.Refresh(ctx, ownerID)
	return err
}

func validate(p Product) error {
	if strings.TrimSpace(p.Name) == "" {
		return errors.New("product name is required")
	}
	if p.Price <= 0 {
		return errors.New("price must be positive")
	}
	if len(p.CurrencyCode) != 3 {
		return errors.New("currency code must be 3 letters")
	}
	return nil
}
