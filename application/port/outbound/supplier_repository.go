package outbound

import (
	"context"
	"errors"

	"github.com/invenra/invenra/domain/entity"
)

var ErrSupplierNotFound = errors.New("supplier not found")

type SupplierRepository interface {
	FindAll(ctx context.Context) ([]*entity.Supplier, error)
	FindByID(ctx context.Context, id string) (*entity.Supplier, error)
	Create(ctx context.Context, supplier *entity.Supplier) error
	Update(ctx context.Context, supplier *entity.Supplier) error
	SoftDelete(ctx context.Context, id string) error
}
