package invoices

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"sync"

	"github.com/google/uuid"
)

// Service owns the per-owner invoice cache and the invoice lifecycle.
// Mutations trigger a full reload; a failed reload keeps the previous
// snapshot so the cache always reflects the last successful server state.
type Service struct {
	repo Repository

	mu    sync.RWMutex
	cache map[uuid.UUID][]InvoiceWithItems
}

// NewService builds a Service instance.
func NewService(repo Repository) *Service {
	return &Service{
		repo:  repo,
		cache: make(map[uuid.UUID][]InvoiceWithItems),
	}
}

// List returns the cached invoice list, loading it on first access.
func (s *Service) List(ctx context.Context, ownerID uuid.UUID) ([]InvoiceWithItems, error) {
	s.mu.RLock()
	cached, ok := s.cache[ownerID]
	s.mu.RUnlock()
	if ok {
		return cached, nil
	}
	return s.Refresh(ctx, ownerID)
}

// Refresh reloads the owner's invoices, items and product image references.
// Any sub-fetch failure fails the whole refresh and leaves the prior cache
// in place.
func (s *Service) Refresh(ctx context.Context, ownerID uuid.UUID) ([]InvoiceWithItems, error) {
	list, err := s.repo.ListByOwner(ctx, ownerID)
	if err != nil {
		return nil, fmt.Errorf("invoices: refresh: %w", err)
	}
	s.mu.Lock()
	s.cache[ownerID] = list
	s.mu.Unlock()
	return list, nil
}

// Get fetches a single invoice with its items.
func (s *Service) Get(ctx context.Context, ownerID, id uuid.UUID) (InvoiceWithItems, error) {
	return s.repo.Get(ctx, ownerID, id)
}

// Create validates the input, aggregates totals at the flat default rate and
// persists invoice plus items atomically. The persisted invoice carries a
// single subtotal/tax/total triple, so multi-currency item sets collapse to
// the first currency group.
func (s *Service) Create(ctx context.Context, input CreateInvoiceInput) (Invoice, error) {
	if strings.TrimSpace(input.CustomerName) == "" {
		return Invoice{}, errors.New("customer name is required")
	}
	if len(input.Items) == 0 {
		return Invoice{}, errors.New("at least one line item is required")
	}
	for _, item := range input.Items {
		if strings.TrimSpace(item.Description) == "" {
			return Invoice{}, errors.New("item description is required")
		}
		if item.Quantity <= 0 {
			return Invoice{}, errors.New("item quantity must be positive")
		}
		if item.CurrencyCode == "" {
			return Invoice{}, errors.New("item currency code is required")
		}
	}

	totals := AggregateByCurrency(input.Items, DefaultTaxRate)
	first := totals[0]
	amounts := Amounts{
		Subtotal:  first.Subtotal,
		TaxRate:   DefaultTaxRate,
		TaxAmount: first.TaxAmount,
		Total:     first.Total,
	}

	created, err := s.repo.Create(ctx, input, amounts)
	if err != nil {
		return Invoice{}, fmt.Errorf("invoices: create: %w", err)
	}
	if _, err := s.Refresh(ctx, input.OwnerID); err != nil {
		return created, err
	}
	return created, nil
}

// Update patches status, notes and/or due date. Status values outside the
// accepted set are rejected; amounts are never recomputed.
func (s *Service) Update(ctx context.Context, ownerID, id uuid.UUID, patch UpdateInvoiceInput) error {
	if patch.Status != nil && !ValidStatus(*patch.Status) {
		return fmt.Errorf("invalid status %q", *patch.Status)
	}
	if patch.Status == nil && patch.Notes == nil && patch.DueDate == nil {
		return errors.New("nothing to update")
	}
	if err := s.repo.Update(ctx, ownerID, id, patch); err != nil {
		return err
	}
	_, err := s.Refresh(ctx, ownerID)
	return err
}

// UpdateStatus is a convenience wrapper for the status-only patch.
func (s *Service) UpdateStatus(ctx context.Context, ownerID, id uuid.UUID, status Status) error {
	return s.Update(ctx, ownerID, id, UpdateInvoiceInput{Status: &status})
}

// Delete removes an invoice together with its items.
func (s *Service) Delete(ctx context.Context, ownerID, id uuid.UUID) error {
	if err := s.repo.Delete(ctx, ownerID, id); err != nil {
		return err
	}
	_, err := s.Refresh(ctx, ownerID)
	return err
}

// Preview computes per-currency totals for a prospective invoice without
// persisting anything. The composition screen uses it while items are being
// picked.
func (s *Service) Preview(items []ItemInput) []CurrencyTotal {
	return AggregateByCurrency(items, DefaultTaxRate)
}
