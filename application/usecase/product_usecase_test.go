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

type mockProductRepository struct {
	products map[string]*entity.Product
}

func newMockProductRepository() *mockProductRepository {
	return &mockProductRepository{products: make(map[string]*entity.Product)}
}

func (m *mockProductRepository) FindAll(ctx context.Context) ([]*entity.Product, error) {
	out := make([]*entity.Product, 0, len(m.products))
	for _, p := range m.products {
		out = append(out, p)
	}
	return out, nil
}

func (m *mockProductRepository) FindAllForSelection(ctx context.Context) ([]*entity.ProductSelection, error) {
	out := make([]*entity.ProductSelection, 0, len(m.products))
	for _, p := range m.products {
		out = append(out, &entity.ProductSelection{
			ID:            p.ID,
			Name:          p.Name,
			Price:         p.Price,
			PurchasePrice: p.PurchasePrice,
			Quantity:      p.Quantity,
		})
	}
	return out, nil
}

func (m *mockProductRepository) FindByID(ctx context.Context, id string) (*entity.Product, error) {
	if p, exists := m.products[id]; exists {
		return p, nil
	}
	return nil, outbound.ErrProductNotFound
}

func (m *mockProductRepository) Create(ctx context.Context, product *entity.Product) error {
	m.products[product.ID] = product
	return nil
}

func (m *mockProductRepository) Update(ctx context.Context, product *entity.Product) error {
	if _, exists := m.products[product.ID]; !exists {
		return outbound.ErrProductNotFound
	}
	m.products[product.ID] = product
	return nil
}

func (m *mockProductRepository) Delete(ctx context.Context, id string) error {
	if _, exists := m.products[id]; !exists {
		return outbound.ErrProductNotFound
	}
	delete(m.products, id)
	return nil
}

func newTestProductUseCase(repo *mockProductRepository) *ProductUseCase {
	log := logger.NewStructuredLogger(logger.Config{Level: "error", Format: "text", ServiceName: "test"})
	return NewProductUseCase(repo, log)
}

func TestProductUseCase_Create(t *testing.T) {
	t.Run("assigns id and created timestamp", func(t *testing.T) {
		repo := newMockProductRepository()
		uc := newTestProductUseCase(repo)

		created, err := uc.Create(context.Background(), &entity.Product{
			Name:          "Widget",
			Price:         19.99,
			PurchasePrice: 12.50,
			Quantity:      10,
		})
		require.NoError(t, err)
		assert.NotEmpty(t, created.ID)
		assert.False(t, created.CreatedAt.IsZero())
		assert.Nil(t, created.UpdatedAt)
		assert.Contains(t, repo.products, created.ID)
	})

	t.Run("rejects missing name and negative amounts", func(t *testing.T) {
		uc := newTestProductUseCase(newMockProductRepository())

		_, err := uc.Create(context.Background(), &entity.Product{Price: 1})
		assert.True(t, apperror.IsKind(err, "BAD_REQUEST"))

		_, err = uc.Create(context.Background(), &entity.Product{Name: "Widget", Price: -1})
		assert.True(t, apperror.IsKind(err, "BAD_REQUEST"))

		_, err = uc.Create(context.Background(), &entity.Product{Name: "Widget", Quantity: -5})
		assert.True(t, apperror.IsKind(err, "BAD_REQUEST"))
	})
}

func TestProductUseCase_Get(t *testing.T) {
	repo := newMockProductRepository()
	uc := newTestProductUseCase(repo)

	created, err := uc.Create(context.Background(), &entity.Product{Name: "Widget", Price: 5})
	require.NoError(t, err)

	found, err := uc.Get(context.Background(), created.ID)
	require.NoError(t, err)
	assert.Equal(t, "Widget", found.Name)

	_, err = uc.Get(context.Background(), "missing")
	require.Error(t, err)
	assert.True(t, apperror.IsKind(err, "NOT_FOUND"))
}

func TestProductUseCase_Update(t *testing.T) {
	repo := newMockProductRepository()
	uc := newTestProductUseCase(repo)

	created, err := uc.Create(context.Background(), &entity.Product{Name: "Widget", Price: 5})
	require.NoError(t, err)

	t.Run("success sets the updated timestamp", func(t *testing.T) {
		updated, err := uc.Update(context.Background(), created.ID, &entity.Product{Name: "Widget v2", Price: 6})
		require.NoError(t, err)
		assert.Equal(t, created.ID, updated.ID)
		require.NotNil(t, updated.UpdatedAt)
	})

	t.Run("id mismatch", func(t *testing.T) {
		_, err := uc.Update(context.Background(), created.ID, &entity.Product{ID: "someone-else", Name: "Widget"})
		assert.True(t, apperror.IsKind(err, "BAD_REQUEST"))
	})

	t.Run("unknown product", func(t *testing.T) {
		_, err := uc.Update(context.Background(), "missing", &entity.Product{Name: "Widget"})
		assert.True(t, apperror.IsKind(err, "NOT_FOUND"))
	})
}

func TestProductUseCase_Delete(t *testing.T) {
	repo := newMockProductRepository()
	uc := newTestProductUseCase(repo)

	created, err := uc.Create(context.Background(), &entity.Product{Name: "Widget", Price: 5})
	require.NoError(t, err)

	require.NoError(t, uc.Delete(context.Background(), created.ID))
	assert.NotContains(t, repo.products, created.ID)

	err = uc.Delete(context.Background(), created.ID)
	assert.True(t, apperror.IsKind(err, "NOT_FOUND"))
}

func TestProductUseCase_ListForSelection(t *testing.T) {
	repo := newMockProductRepository()
	uc := newTestProductUseCase(repo)

	_, err := uc.Create(context.Background(), &entity.Product{Name: "Widget", Price: 5, PurchasePrice: 3, Quantity: 2})
	require.NoError(t, err)

	selection, err := uc.ListForSelection(context.Background())
	require.NoError(t, err)
	require.Len(t, selection, 1)
	assert.Equal(t, "Widget", selection[0].Name)
	assert.Equal(t, 3.0, selection[0].PurchasePrice)
}
