package analytics

import (
	"context"
	"errors"
	"testing"
	"time"

	miniredis "github.com/alicebob/miniredis/v2"
	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/billfold/billfold/internal/invoices"
)

type mockRepo struct {
	totals      map[invoices.Status][]CurrencyAmount
	counts      []StatusCount
	monthly     []MonthlyPoint
	totalsCalls int
	countsCalls int
	seriesCalls int
	totalsErr   error
}

func (m *mockRepo) TotalsByCurrency(ctx context.Context, ownerID uuid.UUID, status invoices.Status) ([]CurrencyAmount, error) {
	m.totalsCalls++
	if m.totalsErr != nil {
		return nil, m.totalsErr
	}
	return m.totals[status], nil
}

func (m *mockRepo) CountsByStatus(ctx context.Context, ownerID uuid.UUID) ([]StatusCount, error) {
	m.countsCalls++
	return m.counts, nil
}

func (m *mockRepo) MonthlySeries(ctx context.Context, ownerID uuid.UUID, months int) ([]MonthlyPoint, error) {
	m.seriesCalls++
	return m.monthly, nil
}

func newTestService(t *testing.T, repo Repository) *Service {
	t.Helper()
	mr := miniredis.RunT(t)
	client := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	t.Cleanup(func() { _ = client.Close() })
	return NewService(repo, NewCache(client, time.Minute))
}

func sampleRepo() *mockRepo {
	return &mockRepo{
		totals: map[invoices.Status][]CurrencyAmount{
			invoices.StatusPaid: {{CurrencyCode: "USD", Amount: 2420}},
			invoices.StatusSent: {{CurrencyCode: "USD", Amount: 660}, {CurrencyCode: "EUR", Amount: 110}},
		},
		counts: []StatusCount{
			{Status: invoices.StatusDraft, Count: 1},
			{Status: invoices.StatusPaid, Count: 4},
			{Status: invoices.StatusSent, Count: 2},
		},
		monthly: []MonthlyPoint{
			{Month: "2026-07", Invoiced: 1200, Paid: 900},
			{Month: "2026-08", Invoiced: 1980, Paid: 1520},
		},
	}
}

func TestDashboardAggregates(t *testing.T) {
	repo := sampleRepo()
	svc := newTestService(t, repo)

	dash, err := svc.Dashboard(context.Background(), uuid.New())
	require.NoError(t, err)

	require.Len(t, dash.Revenue, 1)
	assert.InDelta(t, 2420.0, dash.Revenue[0].Amount, 1e-9)
	require.Len(t, dash.Outstanding, 2)
	assert.Len(t, dash.StatusCounts, 3)
	require.Len(t, dash.Monthly, 2)
	assert.Equal(t, "2026-07", dash.Monthly[0].Month)
	assert.False(t, dash.GeneratedAt.IsZero())
}

func TestDashboardCachesPerOwner(t *testing.T) {
	repo := sampleRepo()
	svc := newTestService(t, repo)
	ownerID := uuid.New()

	_, err := svc.Dashboard(context.Background(), ownerID)
	require.NoError(t, err)
	assert.Equal(t, 1, repo.countsCalls)

	// Second call must come from the cache.
	_, err = svc.Dashboard(context.Background(), ownerID)
	require.NoError(t, err)
	assert.Equal(t, 1, repo.countsCalls)

	// A different owner computes its own payload.
	_, err = svc.Dashboard(context.Background(), uuid.New())
	require.NoError(t, err)
	assert.Equal(t, 2, repo.countsCalls)
}

func TestDashboardInvalidateForcesRecompute(t *testing.T) {
	repo := sampleRepo()
	svc := newTestService(t, repo)
	ownerID := uuid.New()

	_, err := svc.Dashboard(context.Background(), ownerID)
	require.NoError(t, err)

	require.NoError(t, svc.Invalidate(context.Background(), ownerID))

	repo.totals[invoices.StatusPaid] = []CurrencyAmount{{CurrencyCode: "USD", Amount: 3000}}
	dash, err := svc.Dashboard(context.Background(), ownerID)
	require.NoError(t, err)
	require.Len(t, dash.Revenue, 1)
	assert.InDelta(t, 3000.0, dash.Revenue[0].Amount, 1e-9)
}

func TestDashboardPropagatesQueryErrors(t *testing.T) {
	repo := sampleRepo()
	repo.totalsErr = errors.New("relation missing")
	svc := newTestService(t, repo)

	_, err := svc.Dashboard(context.Background(), uuid.New())
	require.Error(t, err)
}
