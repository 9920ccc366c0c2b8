package customers

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"sync"

	"github.com/google/uuid"
)

// Service owns the per-owner customer cache. Every mutation reloads the
// owner's list so the cache always reflects the last successful server
// state; a failed reload keeps the previous snapshot.
type Service struct {
	repo Repository

	mu    sync.RWMutex
	cache map[uuid.UUID][]Customer
}

// NewService builds a Service instance.
func NewService(repo Repository) *Service {
	return &Service{
		repo:  repo,
		cache: make(map[uuid.UUID][]Customer),
	}
}

// List returns the cached customer list, loading it on first access.
func (s *Service) List(ctx context.Context, ownerID uuid.UUID) ([]Customer, error) {
	s.mu.RLock()
	cached, ok := s.cache[ownerID]
	s.mu.RUnlock()
	if ok {
		return cached, nil
	}
	return s.Refresh(ctx, ownerID)
}

// Refresh reloads the owner's customers from the store.
func (s *Service) Refresh(ctx context.Context, ownerID uuid.UUID) ([]Customer, error) {
	list, err := s.repo.ListByOwner(ctx, ownerID)
	if err != nil {
		return nil, fmt.Errorf("customers: refresh: %w", err)
	}
	s.mu.Lock()
	s.cache[ownerID] = list
	s.mu.Unlock()
	return list, nil
}

// Get fetches a single customer scoped to its owner.
func (s *Service) Get(ctx context.Context, ownerID, id uuid.UUID) (Customer, error) {
	return s.repo.Get(ctx, ownerID, id)
}

// Create validates and persists a new customer, then refreshes the cache.
func (s *Service) Create(ctx context.Context, customer Customer) (Customer, error) {
	if err := validate(customer); err != nil {
		return Customer{}, err
	}
	created, err := s.repo.Create(ctx, customer)
	if err != nil {
		return Customer{}, err
	}
	if _, err := s.Refresh(ctx, customer.OwnerID); err != nil {
		return created, err
	}
	return created, nil
}

// Update validates and persists changes to an existing customer.
func (s *Service) Update(ctx context.Context, customer Customer) error {
	if customer.ID == uuid.Nil {
		return errors.New("customer id required")
	}
	if err := validate(customer); err != nil {
		return err
	}
	if err := s.repo.Update(ctx, customer); err != nil {
		return err
	}
	_, err := s.Refresh(ctx, customer.OwnerID)
	return err
}

// Delete removes a customer. Invoices that copied the customer's name and
// email are untouched.
func (s *Service) Delete(ctx context.Context, ownerID, id uuid.UUID) error {
	if err := s.repo.Delete(ctx, ownerID, id); err != nil {
		return err
	}
	_, err := s.Refresh(ctx, ownerID)
	return err
}

func validate(c Customer) error {
	if strings.TrimSpace(c.FirstName) == "" {
		return errors.New("first name is required")
	}
	if strings.TrimSpace(c.LastName) == "" {
		return errors.New("last name is required")
	}
	if c.Gender != nil && !ValidGender(*c.Gender) {
		return errors.New("gender must be one of male, female, other")
	}
	return nil
}
