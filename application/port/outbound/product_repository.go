package outbound

import (
	"context"
	"errors"

	"github.com/invenra/invenra/domain/entity"
)

var ErrProductNotFound = errors.New("product not found")

type ProductRepository interface {
	FindAll(ctx context.Context) ([]*entity.Product, error)
	FindAllForSelection(ctx context.Context) ([]*entity.ProductSelection, error)
	FindByID(ctx context.Context, id string) (*entity.Product, error)
	Create(ctx context.Context, product *entity.Product) error
	Update(ctx context.Context, product *entity.Product) error
	Delete(ctx context.Context, id string) error
}
