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

type mockCustomerRepository struct {
	customers map[string]*entity.Customer
}

func newMockCustomerRepository() *mockCustomerRepository {
	return &mockCustomerRepository{customers: make(map[string]*entity.Customer)}
}

func (m *mockCustomerRepository) FindAll(ctx context.Context) ([]*entity.Customer, error) {
	out := make([]*entity.Customer, 0, len(m.customers))
	for _, c := range m.customers {
		if !c.IsDeleted {
			out = append(out, c)
		}
	}
	return out, nil
}

func (m *mockCustomerRepository) FindByID(ctx context.Context, id string) (*entity.Customer, error) {
	if c, exists := m.customers[id]; exists && !c.IsDeleted {
		return c, nil
	}
	return nil, outbound.ErrCustomerNotFound
}

func (m *mockCustomerRepository) Create(ctx context.Context, customer *entity.Customer) error {
	m.customers[customer.ID] = customer
	return nil
}

func (m *mockCustomerRepository) Update(ctx context.Context, customer *entity.Customer) error {
	if c, exists := m.customers[customer.ID]; !exists || c.IsDeleted {
		return outbound.ErrCustomerNotFound
	}
	m.customers[customer.ID] = customer
	return nil
}

func (m *mockCustomerRepository) SoftDelete(ctx context.Context, id string) error {
	c, exists := m.customers[id]
	if !exists || c.IsDeleted {
		return outbound.ErrCustomerNotFound
	}
	c.IsDeleted = true
	c.IsActive = false
	return nil
}

func newTestCustomerUseCase(repo *mockCustomerRepository) *CustomerUseCase {
	log := logger.NewStructuredLogger(logger.Config{Level: "error", Format: "text", ServiceName: "test"})
	return NewCustomerUseCase(repo, log)
}

func TestCustomerUseCase_Create(t *testing.T) {
	repo := newMockCustomerRepository()
	uc := newTestCustomerUseCase(repo)

	created, err := uc.Create(context.Background(), &entity.Customer{Name: "Acme Corp"})
	require.NoError(t, err)
	assert.NotEmpty(t, created.ID)
	assert.True(t, created.IsActive)
	assert.False(t, created.IsDeleted)

	_, err = uc.Create(context.Background(), &entity.Customer{Name: "   "})
	assert.True(t, apperror.IsKind(err, "BAD_REQUEST"))
}

func TestCustomerUseCase_Delete(t *testing.T) {
	repo := newMockCustomerRepository()
	uc := newTestCustomerUseCase(repo)

	created, err := uc.Create(context.Background(), &entity.Customer{Name: "Acme Corp"})
	require.NoError(t, err)

	require.NoError(t, uc.Delete(context.Background(), created.ID))

	// The row survives but is hidden from reads.
	stored := repo.customers[created.ID]
	assert.True(t, stored.IsDeleted)
	assert.False(t, stored.IsActive)

	_, err = uc.Get(context.Background(), created.ID)
	assert.True(t, apperror.IsKind(err, "NOT_FOUND"))

	err = uc.Delete(context.Background(), created.ID)
	assert.True(t, apperror.IsKind(err, "NOT_FOUND"))
}

func TestCustomerUseCase_Update(t *testing.T) {
	repo := newMockCustomerRepository()
	uc := newTestCustomerUseCase(repo)

	created, err := uc.Create(context.Background(), &entity.Customer{Name: "Acme Corp"})
	require.NoError(t, err)
	createdAt := created.UpdatedAt

	updated, err := uc.Update(context.Background(), created.ID, &entity.Customer{Name: "Acme Corporation"})
	require.NoError(t, err)
	assert.Equal(t, "Acme Corporation", updated.Name)
	assert.False(t, updated.UpdatedAt.Before(createdAt))

	_, err = uc.Update(context.Background(), "missing", &entity.Customer{Name: "Ghost"})
	assert.True(t, apperror.IsKind(err, "NOT_FOUND"))
}
