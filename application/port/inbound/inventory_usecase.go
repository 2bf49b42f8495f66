package inbound

import (
	"context"

	"github.com/invenra/invenra/domain/entity"
)

type ProductUseCase interface {
	List(ctx context.Context) ([]*entity.Product, error)
	ListForSelection(ctx context.Context) ([]*entity.ProductSelection, error)
	Get(ctx context.Context, id string) (*entity.Product, error)
	Create(ctx context.Context, product *entity.Product) (*entity.Product, error)
	Update(ctx context.Context, id string, product *entity.Product) (*entity.Product, error)
	Delete(ctx context.Context, id string) error
}

type CustomerUseCase interface {
	List(ctx context.Context) ([]*entity.Customer, error)
	Get(ctx context.Context, id string) (*entity.Customer, error)
	Create(ctx context.Context, customer *entity.Customer) (*entity.Customer, error)
	Update(ctx context.Context, id string, customer *entity.Customer) (*entity.Customer, error)
	Delete(ctx context.Context, id string) error
}

type SupplierUseCase interface {
	List(ctx context.Context) ([]*entity.Supplier, error)
	Get(ctx context.Context, id string) (*entity.Supplier, error)
	Create(ctx context.Context, supplier *entity.Supplier) (*entity.Supplier, error)
	Update(ctx context.Context, id string, supplier *entity.Supplier) (*entity.Supplier, error)
	Delete(ctx context.Context, id string) error
}
