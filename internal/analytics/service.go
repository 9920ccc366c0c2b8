// Package analytics aggregates invoice figures into dashboard summaries.
package analytics

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"golang.org/x/sync/errgroup"

	"github.com/billfold/billfold/internal/invoices"
)

// CurrencyAmount is one per-currency aggregate figure.
type CurrencyAmount struct {
	CurrencyCode string  `json:"currency_code"`
	Amount       float64 `json:"amount"`
}

// StatusCount reports how many invoices sit in one status.
type StatusCount struct {
	Status invoices.Status `json:"status"`
	Count  int             `json:"count"`
}

// MonthlyPoint is one month of invoiced and collected totals.
type MonthlyPoint struct {
	Month    string  `json:"month"`
	Invoiced float64 `json:"invoiced"`
	Paid     float64 `json:"paid"`
}

// Dashboard is the full analytics payload for one owner.
type Dashboard struct {
	Revenue      []CurrencyAmount `json:"revenue"`
	Outstanding  []CurrencyAmount `json:"outstanding"`
	StatusCounts []StatusCount    `json:"status_counts"`
	Monthly      []MonthlyPoint   `json:"monthly"`
	GeneratedAt  time.Time        `json:"generated_at"`
}

// Repository exposes the aggregate queries the dashboard needs.
type Repository interface {
	TotalsByCurrency(ctx context.Context, ownerID uuid.UUID, status invoices.Status) ([]CurrencyAmount, error)
	CountsByStatus(ctx context.Context, ownerID uuid.UUID) ([]StatusCount, error)
	MonthlySeries(ctx context.Context, ownerID uuid.UUID, months int) ([]MonthlyPoint, error)
}

// Service coordinates dashboard query execution with the cache layer.
type Service struct {
	repo  Repository
	cache *Cache
}

// NewService wires a Repository with a Cache helper.
func NewService(repo Repository, cache *Cache) *Service {
	return &Service{repo: repo, cache: cache}
}

// monthlyWindow is the number of trailing months shown in the series.
const monthlyWindow = 6

// Dashboard returns the cached dashboard, computing it when missing.
func (s *Service) Dashboard(ctx context.Context, ownerID uuid.UUID) (Dashboard, error) {
	var dash Dashboard
	err := s.cache.FetchJSON(ctx, ownerID, &dash, func(ctx context.Context) (interface{}, error) {
		return s.compute(ctx, ownerID)
	})
	if err != nil {
		return Dashboard{}, fmt.Errorf("analytics: dashboard: %w", err)
	}
	return dash, nil
}

// Invalidate drops the cached dashboard after invoice mutations.
func (s *Service) Invalidate(ctx context.Context, ownerID uuid.UUID) error {
	return s.cache.Invalidate(ctx, ownerID)
}

func (s *Service) compute(ctx context.Context, ownerID uuid.UUID) (Dashboard, error) {
	dash := Dashboard{GeneratedAt: time.Now().UTC()}

	g, ctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		revenue, err := s.repo.TotalsByCurrency(ctx, ownerID, invoices.StatusPaid)
		if err != nil {
			return fmt.Errorf("revenue: %w", err)
		}
		dash.Revenue = revenue
		return nil
	})
	g.Go(func() error {
		outstanding, err := s.repo.TotalsByCurrency(ctx, ownerID, invoices.StatusSent)
		if err != nil {
			return fmt.Errorf("outstanding: %w", err)
		}
		dash.Outstanding = outstanding
		return nil
	})
	g.Go(func() error {
		counts, err := s.repo.CountsByStatus(ctx, ownerID)
		if err != nil {
			return fmt.Errorf("status counts: %w", err)
		}
		dash.StatusCounts = counts
		return nil
	})
	g.Go(func() error {
		monthly, err := s.repo.MonthlySeries(ctx, ownerID, monthlyWindow)
		if err != nil {
			return fmt.Errorf("monthly series: %w", err)
		}
		dash.Monthly = monthly
		return nil
	})
	if err := g.Wait(); err != nil {
		return Dashboard{}, err
	}
	return dash, nil
}
