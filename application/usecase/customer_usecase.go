package usecase

import (
	"context"
	"errors"
	"strings"

	"github.com/google/uuid"

	"github.com/invenra/invenra/application/port/outbound"
	"github.com/invenra/invenra/domain/entity"
	"github.com/invenra/invenra/infrastructure/service/logger"
	"github.com/invenra/invenra/pkg/apperror"
)

type CustomerUseCase struct {
	customerRepository outbound.CustomerRepository
	logger             logger.Logger
}

func NewCustomerUseCase(customerRepo outbound.CustomerRepository, log logger.Logger) *CustomerUseCase {
	return &CustomerUseCase{
		customerRepository: customerRepo,
		logger:             log,
	}
}

func (uc *CustomerUseCase) List(ctx context.Context) ([]*entity.Customer, error) {
	customers, err := uc.customerRepository.FindAll(ctx)
	if err != nil {
		uc.logger.Error(ctx, "Failed to list customers", err, nil)
		return nil, apperror.NewInternalServer("failed to list customers")
	}
	return customers, nil
}

func (uc *CustomerUseCase) Get(ctx context.Context, id string) (*entity.Customer, error) {
	customer, err := uc.customerRepository.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, outbound.ErrCustomerNotFound) {
			return nil, apperror.NewNotFound("customer not found")
		}
		uc.logger.Error(ctx, "Failed to get customer", err, map[string]interface{}{"id": id})
		return nil, apperror.NewInternalServer("failed to get customer")
	}
	return customer, nil
}

func (uc *CustomerUseCase) Create(ctx context.Context, customer *entity.Customer) (*entity.Customer, error) {
	if strings.TrimSpace(customer.Name) == "" {
		return nil, apperror.NewBadRequest("customer name is required")
	}

	customer.InitNew(uuid.NewString())

	if err := uc.customerRepository.Create(ctx, customer); err != nil {
		uc.logger.Error(ctx, "Failed to create customer", err, map[string]interface{}{"name": customer.Name})
		return nil, apperror.NewInternalServer("failed to create customer")
	}
	return customer, nil
}

func (uc *CustomerUseCase) Update(ctx context.Context, id string, customer *entity.Customer) (*entity.Customer, error) {
	if customer.ID != "" && customer.ID != id {
		return nil, apperror.NewBadRequest("id mismatch")
	}
	if strings.TrimSpace(customer.Name) == "" {
		return nil, apperror.NewBadRequest("customer name is required")
	}

	customer.ID = id
	customer.Touch()

	if err := uc.customerRepository.Update(ctx, customer); err != nil {
		if errors.Is(err, outbound.ErrCustomerNotFound) {
			return nil, apperror.NewNotFound("customer not found")
		}
		uc.logger.Error(ctx, "Failed to update customer", err, map[string]interface{}{"id": id})
		return nil, apperror.NewInternalServer("failed to update customer")
	}
	return customer, nil
}

// Delete marks the customer deleted instead of removing the row.
func (uc *CustomerUseCase) Delete(ctx context.Context, id string) error {
	if err := uc.customerRepository.SoftDelete(ctx, id); err != nil {
		if errors.Is(err, outbound.ErrCustomerNotFound) {
			return apperror.NewNotFound("customer not found")
		}
		uc.logger.Error(ctx, "Failed to delete customer", err, map[string]interface{}{"id": id})
		return apperror.NewInternalServer("failed to delete customer")
	}
	return nil
}
