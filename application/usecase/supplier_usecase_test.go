package usecase

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/invenra/invenra/application/port/outbound"
	"github.com/invenra/invenra/domain/entity"
	"github.com/invenra/invenra/infrastructure/service/logger"
	"github.com/invenra/invenra/pkg/apperror"
)

type mockSupplierRepository struct {
	suppliers map[string]*entity.Supplier
}

func newMockSupplierRepository() *mockSupplierRepository {
	return &mockSupplierRepository{suppliers: make(map[string]*entity.Supplier)}
}

func (m *mockSupplierRepository) FindAll(ctx context.Context) ([]*entity.Supplier, error) {
	out := make([]*entity.Supplier, 0, len(m.suppliers))
	for _, s := range m.suppliers {
		if !s.IsDeleted {
			out = append(out, s)
		}
	}
	return out, nil
}

func (m *mockSupplierRepository) FindByID(ctx context.Context, id string) (*entity.Supplier, error) {
	if s, exists := m.suppliers[id]; exists && !s.IsDeleted {
		return s, nil
	}
	return nil, outbound.ErrSupplierNotFound
}

func (m *mockSupplierRepository) Create(ctx context.Context, supplier *entity.Supplier) error {
	m.suppliers[supplier.ID] = supplier
	return nil
}

func (m *mockSupplierRepository) Update(ctx context.Context, supplier *entity.Supplier) error {
	if s, exists := m.suppliers[supplier.ID]; !exists || s.IsDeleted {
		return outbound.ErrSupplierNotFound
	}
	m.suppliers[supplier.ID] = supplier
	return nil
}

func (m *mockSupplierRepository) SoftDelete(ctx context.Context, id string) error {
	s, exists := m.suppliers[id]
	if !exists || s.IsDeleted {
		return outbound.ErrSupplierNotFound
	}
	s.IsDeleted = true
	s.IsActive = false
	return nil
}

func newTestSupplierUseCase(repo *mockSupplierRepository) *SupplierUseCase {
	log := logger.NewStructuredLogger(logger.Config{Level: "error", Format: "text", ServiceName: "test"})
	return NewSupplierUseCase(repo, log)
}

func TestSupplierUseCase_Create(t *testing.T) {
	repo := newMockSupplierRepository()
	uc := newTestSupplierUseCase(repo)

	created, err := uc.Create(context.Background(), &entity.Supplier{
		Name:             "Parts & Co",
		ContactPerson:    "Jamie Doe",
		PaymentTermsDays: 30,
	})
	require.NoError(t, err)
	assert.NotEmpty(t, created.ID)
	assert.True(t, created.IsActive)
	assert.False(t, created.IsDeleted)

	_, err = uc.Create(context.Background(), &entity.Supplier{Name: "   "})
	assert.True(t, apperror.IsKind(err, "BAD_REQUEST"))
}

func TestSupplierUseCase_Delete(t *testing.T) {
	repo := newMockSupplierRepository()
	uc := newTestSupplierUseCase(repo)

	created, err := uc.Create(context.Background(), &entity.Supplier{Name: "Parts & Co"})
	require.NoError(t, err)

	require.NoError(t, uc.Delete(context.Background(), created.ID))

	// The row survives but is hidden from reads.
	stored := repo.suppliers[created.ID]
	assert.True(t, stored.IsDeleted)
	assert.False(t, stored.IsActive)

	_, err = uc.Get(context.Background(), created.ID)
	assert.True(t, apperror.IsKind(err, "NOT_FOUND"))

	err = uc.Delete(context.Background(), created.ID)
	assert.True(t, apperror.IsKind(err, "NOT_FOUND"))
}

func TestSupplierUseCase_Update(t *testing.T) {
	repo := newMockSupplierRepository()
	uc := newTestSupplierUseCase(repo)

	created, err := uc.Create(context.Background(), &entity.Supplier{Name: "Parts & Co"})
	require.NoError(t, err)
	createdAt := created.UpdatedAt

	updated, err := uc.Update(context.Background(), created.ID, &entity.Supplier{Name: "Parts & Company"})
	require.NoError(t, err)
	assert.Equal(t, "Parts & Company", updated.Name)
	assert.False(t, updated.UpdatedAt.Before(createdAt))

	t.Run("id mismatch", func(t *testing.T) {
		_, err := uc.Update(context.Background(), created.ID, &entity.Supplier{Base: entity.Base{ID: "someone-else"}, Name: "Parts"})
		assert.True(t, apperror.IsKind(err, "BAD_REQUEST"))
	})

	t.Run("unknown supplier", func(t *testing.T) {
		_, err := uc.Update(context.Background(), "missing", &entity.Supplier{Name: "Ghost"})
		assert.True(t, apperror.IsKind(err, "NOT_FOUND"))
	})
}
