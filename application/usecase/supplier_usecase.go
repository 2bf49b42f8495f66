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

type SupplierUseCase struct {
	supplierRepository outbound.SupplierRepository
	logger             logger.Logger
}

func NewSupplierUseCase(supplierRepo outbound.SupplierRepository, log logger.Logger) *SupplierUseCase {
	return &SupplierUseCase{
		supplierRepository: supplierRepo,
		logger:             log,
	}
}

func (uc *SupplierUseCase) List(ctx context.Context) ([]*entity.Supplier, error) {
	suppliers, err := uc.supplierRepository.FindAll(ctx)
	if err != nil {
		uc.logger.Error(ctx, "Failed to list suppliers", err, nil)
		return nil, apperror.NewInternalServer("failed to list suppliers")
	}
	return suppliers, nil
}

func (uc *SupplierUseCase) Get(ctx context.Context, id string) (*entity.Supplier, error) {
	supplier, err := uc.supplierRepository.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, outbound.ErrSupplierNotFound) {
			return nil, apperror.NewNotFound("supplier not found")
		}
		uc.logger.Error(ctx, "Failed to get supplier", err, map[string]interface{}{"id": id})
		return nil, apperror.NewInternalServer("failed to get supplier")
	}
	return supplier, nil
}

func (uc *SupplierUseCase) Create(ctx context.Context, supplier *entity.Supplier) (*entity.Supplier, error) {
	if strings.TrimSpace(supplier.Name) == "" {
		return nil, apperror.NewBadRequest("supplier name is required")
	}

	supplier.InitNew(uuid.NewString())

	if err := uc.supplierRepository.Create(ctx, supplier); err != nil {
		uc.logger.Error(ctx, "Failed to create supplier", err, map[string]interface{}{"name": supplier.Name})
		return nil, apperror.NewInternalServer("failed to create supplier")
	}
	return supplier, nil
}

func (uc *SupplierUseCase) Update(ctx context.Context, id string, supplier *entity.Supplier) (*entity.Supplier, error) {
	if supplier.ID != "" && supplier.ID != id {
		return nil, apperror.NewBadRequest("id mismatch")
	}
	if strings.TrimSpace(supplier.Name) == "" {
		return nil, apperror.NewBadRequest("supplier name is required")
	}

	supplier.ID = id
	supplier.Touch()

	if err := uc.supplierRepository.Update(ctx, supplier); err != nil {
		if errors.Is(err, outbound.ErrSupplierNotFound) {
			return nil, apperror.NewNotFound("supplier not found")
		}
		uc.logger.Error(ctx, "Failed to update supplier", err, map[string]interface{}{"id": id})
		return nil, apperror.NewInternalServer("failed to update supplier")
	}
	return supplier, nil
}

// Delete marks the supplier deleted instead of removing the row.
func (uc *SupplierUseCase) Delete(ctx context.Context, id string) error {
	if err := uc.supplierRepository.SoftDelete(ctx, id); err != nil {
		if errors.Is(err, outbound.ErrSupplierNotFound) {
			return apperror.NewNotFound("supplier not found")
		}
		uc.logger.Error(ctx, "Failed to delete supplier", err, map[string]interface{}{"id": id})
		return apperror.NewInternalServer("failed to delete supplier")
	}
	return nil
}
