package theme

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/billfold/billfold/internal/shared"
)

type memoryRepo struct {
	byOwner map[uuid.UUID]Theme
}

func newMemoryRepo() *memoryRepo {
	return &memoryRepo{byOwner: make(map[uuid.UUID]Theme)}
}

func (m *memoryRepo) GetByOwner(ctx context.Context, ownerID uuid.UUID) (Theme, error) {
	t, ok := m.byOwner[ownerID]
	if !ok {
		return Theme{}, shared.ErrNotFound
	}
	return t, nil
}

func (m *memoryRepo) Create(ctx context.Context, t Theme) (Theme, error) {
	if t.ID == uuid.Nil {
		t.ID = uuid.New()
	}
	now := time.Now().UTC()
	t.CreatedAt = now
	t.UpdatedAt = now
	m.byOwner[t.OwnerID] = t
	return t, nil
}

func (m *memoryRepo) Update(ctx context.Context, t Theme) error {
	existing, ok := m.byOwner[t.OwnerID]
	if !ok {
		return shared.ErrNotFound
	}
	t.ID = existing.ID
	t.CreatedAt = existing.CreatedAt
	t.UpdatedAt = time.Now().UTC()
	m.byOwner[t.OwnerID] = t
	return nil
}

func TestGetOrCreateProvisionsDefaultTheme(t *testing.T) {
	svc := NewService(newMemoryRepo())
	ownerID := uuid.New()

	theme, err := svc.GetOrCreate(context.Background(), ownerID)
	require.NoError(t, err)

	assert.Equal(t, "#007AFF", theme.PrimaryColor)
	assert.Equal(t, "#f8f9fa", theme.SecondaryColor)
	assert.Equal(t, "#34C759", theme.AccentColor)
	assert.Equal(t, "Inter", theme.FontFamily)
	assert.Equal(t, LayoutStandard, theme.Layout)
	assert.Equal(t, LogoRight, theme.LogoPosition)

	again, err := svc.GetOrCreate(context.Background(), ownerID)
	require.NoError(t, err)
	assert.Equal(t, theme.ID, again.ID)
}

func TestUpdateValidatesEnums(t *testing.T) {
	svc := NewService(newMemoryRepo())
	ownerID := uuid.New()

	base := Default(ownerID)

	bad := base
	bad.Layout = Layout("fancy")
	_, err := svc.Update(context.Background(), bad)
	require.Error(t, err)

	bad = base
	bad.LogoPosition = LogoPosition("top")
	_, err = svc.Update(context.Background(), bad)
	require.Error(t, err)
}

func TestUpdateProvisionsThenPersists(t *testing.T) {
	svc := NewService(newMemoryRepo())
	ownerID := uuid.New()

	want := Default(ownerID)
	want.PrimaryColor = "#FF2D55"
	want.Layout = LayoutDetailed
	want.LogoPosition = LogoCenter

	got, err := svc.Update(context.Background(), want)
	require.NoError(t, err)
	assert.Equal(t, "#FF2D55", got.PrimaryColor)
	assert.Equal(t, LayoutDetailed, got.Layout)
	assert.Equal(t, LogoCenter, got.LogoPosition)
}
