package invoices

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/billfold/billfold/internal/shared"
)

type memoryRepo struct {
	invoices map[uuid.UUID]InvoiceWithItems
	order    []uuid.UUID

	createCalls int
	listCalls   int
	listErr     error
	createErr   error
}

func newMemoryRepo() *memoryRepo {
	return &memoryRepo{invoices: make(map[uuid.UUID]InvoiceWithItems)}
}

func (m *memoryRepo) ListByOwner(ctx context.Context, ownerID uuid.UUID) ([]InvoiceWithItems, error) {
	m.listCalls++
	if m.listErr != nil {
		return nil, m.listErr
	}
	var out []InvoiceWithItems
	for i := len(m.order) - 1; i >= 0; i-- {
		inv := m.invoices[m.order[i]]
		if inv.OwnerID == ownerID {
			out = append(out, inv)
		}
	}
	return out, nil
}

func (m *memoryRepo) Get(ctx context.Context, ownerID, id uuid.UUID) (InvoiceWithItems, error) {
	inv, ok := m.invoices[id]
	if !ok || inv.OwnerID != ownerID {
		return InvoiceWithItems{}, shared.ErrNotFound
	}
	return inv, nil
}

func (m *memoryRepo) Create(ctx context.Context, input CreateInvoiceInput, amounts Amounts) (Invoice, error) {
	m.createCalls++
	if m.createErr != nil {
		return Invoice{}, m.createErr
	}
	last := ""
	if len(m.order) > 0 {
		last = m.invoices[m.order[len(m.order)-1]].Number
	}
	number, err := NextNumber(last)
	if err != nil {
		return Invoice{}, err
	}
	now := time.Now().UTC()
	inv := Invoice{
		ID:            uuid.New(),
		OwnerID:       input.OwnerID,
		Number:        number,
		CustomerName:  input.CustomerName,
		CustomerEmail: input.CustomerEmail,
		DueDate:       input.DueDate,
		Notes:         input.Notes,
		Subtotal:      amounts.Subtotal,
		TaxRate:       amounts.TaxRate,
		TaxAmount:     amounts.TaxAmount,
		Total:         amounts.Total,
		Status:        StatusDraft,
		CreatedAt:     now,
		UpdatedAt:     now,
	}
	withItems := InvoiceWithItems{Invoice: inv}
	for _, item := range input.Items {
		withItems.Items = append(withItems.Items, Item{
			ID:           uuid.New(),
			InvoiceID:    inv.ID,
			ProductID:    item.ProductID,
			Description:  item.Description,
			Quantity:     item.Quantity,
			UnitPrice:    item.UnitPrice,
			CurrencyCode: item.CurrencyCode,
			Subtotal:     item.UnitPrice * float64(item.Quantity),
			CreatedAt:    now,
		})
	}
	m.invoices[inv.ID] = withItems
	m.order = append(m.order, inv.ID)
	return inv, nil
}

func (m *memoryRepo) Update(ctx context.Context, ownerID, id uuid.UUID, patch UpdateInvoiceInput) error {
	inv, ok := m.invoices[id]
	if !ok || inv.OwnerID != ownerID {
		return shared.ErrNotFound
	}
	if patch.Status != nil {
		inv.Status = *patch.Status
	}
	if patch.Notes != nil {
		inv.Notes = patch.Notes
	}
	if patch.DueDate != nil {
		inv.DueDate = patch.DueDate
	}
	inv.UpdatedAt = time.Now().UTC()
	m.invoices[id] = inv
	return nil
}

func (m *memoryRepo) Delete(ctx context.Context, ownerID, id uuid.UUID) error {
	inv, ok := m.invoices[id]
	if !ok || inv.OwnerID != ownerID {
		return shared.ErrNotFound
	}
	delete(m.invoices, id)
	for i, oid := range m.order {
		if oid == id {
			m.order = append(m.order[:i], m.order[i+1:]...)
			break
		}
	}
	return nil
}

func validInput(ownerID uuid.UUID) CreateInvoiceInput {
	return CreateInvoiceInput{
		OwnerID:      ownerID,
		CustomerName: "Ada Lovelace",
		Items: []ItemInput{
			{Description: "Consulting", Quantity: 2, UnitPrice: 100, CurrencyCode: "USD"},
		},
	}
}

func TestCreateAssignsSequentialNumbers(t *testing.T) {
	repo := newMemoryRepo()
	svc := NewService(repo)
	ownerID := uuid.New()

	first, err := svc.Create(context.Background(), validInput(ownerID))
	require.NoError(t, err)
	assert.Equal(t, "INV-0001", first.Number)

	second, err := svc.Create(context.Background(), validInput(ownerID))
	require.NoError(t, err)
	assert.Equal(t, "INV-0002", second.Number)
}

func TestCreateComputesAmountsAtDefaultRate(t *testing.T) {
	repo := newMemoryRepo()
	svc := NewService(repo)

	created, err := svc.Create(context.Background(), validInput(uuid.New()))
	require.NoError(t, err)

	assert.InDelta(t, 200.0, created.Subtotal, 1e-9)
	assert.InDelta(t, DefaultTaxRate, created.TaxRate, 1e-9)
	assert.InDelta(t, 20.0, created.TaxAmount, 1e-9)
	assert.InDelta(t, 220.0, created.Total, 1e-9)
	assert.Equal(t, StatusDraft, created.Status)
}

func TestCreateMultiCurrencyKeepsFirstGroup(t *testing.T) {
	repo := newMemoryRepo()
	svc := NewService(repo)

	input := validInput(uuid.New())
	input.Items = append(input.Items, ItemInput{Description: "Hosting", Quantity: 1, UnitPrice: 50, CurrencyCode: "EUR"})

	created, err := svc.Create(context.Background(), input)
	require.NoError(t, err)

	// The persisted triple reflects the first currency seen (USD).
	assert.InDelta(t, 200.0, created.Subtotal, 1e-9)
	assert.InDelta(t, 220.0, created.Total, 1e-9)
}

func TestCreateValidatesBeforeWrite(t *testing.T) {
	repo := newMemoryRepo()
	svc := NewService(repo)
	ownerID := uuid.New()

	cases := []struct {
		name  string
		input CreateInvoiceInput
	}{
		{name: "missing customer name", input: CreateInvoiceInput{OwnerID: ownerID, Items: validInput(ownerID).Items}},
		{name: "no items", input: CreateInvoiceInput{OwnerID: ownerID, CustomerName: "Ada"}},
		{name: "zero quantity", input: CreateInvoiceInput{OwnerID: ownerID, CustomerName: "Ada", Items: []ItemInput{{Description: "x", Quantity: 0, UnitPrice: 1, CurrencyCode: "USD"}}}},
		{name: "blank description", input: CreateInvoiceInput{OwnerID: ownerID, CustomerName: "Ada", Items: []ItemInput{{Description: "  ", Quantity: 1, UnitPrice: 1, CurrencyCode: "USD"}}}},
		{name: "missing currency", input: CreateInvoiceInput{OwnerID: ownerID, CustomerName: "Ada", Items: []ItemInput{{Description: "x", Quantity: 1, UnitPrice: 1}}}},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			_, err := svc.Create(context.Background(), tc.input)
			require.Error(t, err)
		})
	}
	assert.Zero(t, repo.createCalls, "invalid input must not reach the repository")
}

func TestUpdateRejectsUnknownStatus(t *testing.T) {
	repo := newMemoryRepo()
	svc := NewService(repo)
	ownerID := uuid.New()

	created, err := svc.Create(context.Background(), validInput(ownerID))
	require.NoError(t, err)

	bad := Status("archived")
	err = svc.Update(context.Background(), ownerID, created.ID, UpdateInvoiceInput{Status: &bad})
	require.Error(t, err)

	got, err := svc.Get(context.Background(), ownerID, created.ID)
	require.NoError(t, err)
	assert.Equal(t, StatusDraft, got.Status)
}

func TestUpdateNeverTouchesAmounts(t *testing.T) {
	repo := newMemoryRepo()
	svc := NewService(repo)
	ownerID := uuid.New()

	created, err := svc.Create(context.Background(), validInput(ownerID))
	require.NoError(t, err)

	require.NoError(t, svc.UpdateStatus(context.Background(), ownerID, created.ID, StatusPaid))

	got, err := svc.Get(context.Background(), ownerID, created.ID)
	require.NoError(t, err)
	assert.Equal(t, StatusPaid, got.Status)
	assert.InDelta(t, created.Subtotal, got.Subtotal, 1e-9)
	assert.InDelta(t, created.Total, got.Total, 1e-9)
}

func TestUpdateEmptyPatchRejected(t *testing.T) {
	svc := NewService(newMemoryRepo())
	err := svc.Update(context.Background(), uuid.New(), uuid.New(), UpdateInvoiceInput{})
	require.Error(t, err)
}

func TestListUsesCacheUntilRefresh(t *testing.T) {
	repo := newMemoryRepo()
	svc := NewService(repo)
	ownerID := uuid.New()

	_, err := svc.Create(context.Background(), validInput(ownerID))
	require.NoError(t, err)
	callsAfterCreate := repo.listCalls

	// Cached: repeated listing must not hit the repository again.
	for i := 0; i < 3; i++ {
		list, err := svc.List(context.Background(), ownerID)
		require.NoError(t, err)
		require.Len(t, list, 1)
	}
	assert.Equal(t, callsAfterCreate, repo.listCalls)

	_, err = svc.Refresh(context.Background(), ownerID)
	require.NoError(t, err)
	assert.Equal(t, callsAfterCreate+1, repo.listCalls)
}

func TestFailedRefreshKeepsPriorCache(t *testing.T) {
	repo := newMemoryRepo()
	svc := NewService(repo)
	ownerID := uuid.New()

	_, err := svc.Create(context.Background(), validInput(ownerID))
	require.NoError(t, err)

	repo.listErr = errors.New("connection reset")
	_, err = svc.Refresh(context.Background(), ownerID)
	require.Error(t, err)

	// The previous snapshot still serves reads.
	list, err := svc.List(context.Background(), ownerID)
	require.NoError(t, err)
	assert.Len(t, list, 1)
}

func TestDeleteRemovesInvoiceAndItems(t *testing.T) {
	repo := newMemoryRepo()
	svc := NewService(repo)
	ownerID := uuid.New()

	created, err := svc.Create(context.Background(), validInput(ownerID))
	require.NoError(t, err)

	require.NoError(t, svc.Delete(context.Background(), ownerID, created.ID))

	_, err = svc.Get(context.Background(), ownerID, created.ID)
	require.ErrorIs(t, err, shared.ErrNotFound)

	list, err := svc.List(context.Background(), ownerID)
	require.NoError(t, err)
	assert.Empty(t, list)
}

func TestDeleteScopedToOwner(t *testing.T) {
	repo := newMemoryRepo()
	svc := NewService(repo)
	ownerID := uuid.New()

	created, err := svc.Create(context.Background(), validInput(ownerID))
	require.NoError(t, err)

	err = svc.Delete(context.Background(), uuid.New(), created.ID)
	require.ErrorIs(t, err, shared.ErrNotFound)
}

func TestPreviewDoesNotPersist(t *testing.T) {
	repo := newMemoryRepo()
	svc := NewService(repo)

	totals := svc.Preview([]ItemInput{{Quantity: 1, UnitPrice: 100, CurrencyCode: "USD"}})
	require.Len(t, totals, 1)
	assert.InDelta(t, 110.0, totals[0].Total, 1e-9)
	assert.Zero(t, repo.createCalls)
}
