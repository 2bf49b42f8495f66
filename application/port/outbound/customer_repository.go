package outbound

import (
	"context"
	"errors"

	"github.com/invenra/invenra/domain/entity"
)

var ErrCustomerNotFound = errors.New("customer not found")

type CustomerRepository interface {
	FindAll(ctx context.Context) ([]*entity.Customer, error)
	FindByID(ctx context.Context, id string) (*entity.Customer, error)
	Create(ctx context.Context, customer *entity.Customer) error
	Update(ctx context.Context, customer *entity.Customer) error
	SoftDelete(ctx context.Context, id string) error
}
