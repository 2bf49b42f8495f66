package usecase

import (
	"context"
	"errors"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/invenra/invenra/application/port/outbound"
	"github.com/invenra/invenra/domain/entity"
	"github.com/invenra/invenra/infrastructure/service/logger"
	"github.com/invenra/invenra/pkg/apperror"
)

type ProductUseCase struct {
	productRepository outbound.ProductRepository
	logger            logger.Logger
}

func NewProductUseCase(productRepo outbound.ProductRepository, log logger.Logger) *ProductUseCase {
	return &ProductUseCase{
		productRepository: productRepo,
		logger:            log,
	}
}

func (uc *ProductUseCase) List(ctx context.Context) ([]*entity.Product, error) {
	products, err := uc.productRepository.FindAll(ctx)
	if err != nil {
		uc.logger.Error(ctx, "Failed to list products", err, nil)
		return nil, apperror.NewInternalServer("failed to list products")
	}
	return products, nil
}

func (uc *ProductUseCase) ListForSelection(ctx context.Context) ([]*entity.ProductSelection, error) {
	products, err := uc.productRepository.FindAllForSelection(ctx)
	if err != nil {
		uc.logger.Error(ctx, "Failed to list products for selection", err, nil)
		return nil, apperror.NewInternalServer("failed to list products")
	}
	return products, nil
}

func (uc *ProductUseCase) Get(ctx context.Context, id string) (*entity.Product, error) {
	product, err := uc.productRepository.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, outbound.ErrProductNotFound) {
			return nil, apperror.NewNotFound("product not found")
		}
		uc.logger.Error(ctx, "Failed to get product", err, map[string]interface{}{"id": id})
		return nil, apperror.NewInternalServer("failed to get product")
	}
	return product, nil
}

func (uc *ProductUseCase) Create(ctx context.Context, product *entity.Product) (*entity.Product, error) {
	if err := validateProduct(product); err != nil {
		return nil, err
	}

	product.ID = uuid.NewString()
	product.CreatedAt = time.Now().UTC()
	product.UpdatedAt = nil

	if err := uc.productRepository.Create(ctx, product); err != nil {
		uc.logger.Error(ctx, "Failed to create product", err, map[string]interface{}{"name": product.Name})
		return nil, apperror.NewInternalServer("failed to create product")
	}
	return product, nil
}

func (uc *ProductUseCase) Update(ctx context.Context, id string, product *entity.Product) (*entity.Product, error) {
	if product.ID != "" && product.ID != id {
		return nil, apperror.NewBadRequest("id mismatch")
	}
	if err := validateProduct(product); err != nil {
		return nil, err
	}

	product.ID = id
	now := time.Now().UTC()
	product.UpdatedAt = &now

	if err := uc.productRepository.Update(ctx, product); err != nil {
		if errors.Is(err, outbound.ErrProductNotFound) {
			return nil, apperror.NewNotFound("product not found")
		}
		uc.logger.Error(ctx, "Failed to update product", err, map[string]interface{}{"id": id})
		return nil, apperror.NewInternalServer("failed to update product")
	}
	return product, nil
}

func (uc *ProductUseCase) Delete(ctx context.Context, id string) error {
	if err := uc.productRepository.Delete(ctx, id); err != nil {
		if errors.Is(err, outbound.ErrProductNotFound) {
			return apperror.NewNotFound("product not found")
		}
		uc.logger.Error(ctx, "Failed to delete product", err, map[string]interface{}{"id": id})
		return apperror.NewInternalServer("failed to delete product")
	}
	return nil
}

func validateProduct(product *entity.Product) error {
	if strings.TrimSpace(product.Name) == "" {
		return apperror.NewBadRequest("product name is required")
	}
	if product.Price < 0 || product.PurchasePrice < 0 {
		return apperror.NewBadRequest("prices cannot be negative")
	}
	if product.Quantity < 0 {
		return apperror.NewBadRequest("quantity cannot be negative")
	}
	return nil
}
