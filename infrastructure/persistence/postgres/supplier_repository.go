package postgres

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/invenra/invenra/application/port/outbound"
	"github.com/invenra/invenra/domain/entity"
)

const supplierColumns = `id, name, contact_person, address, city, postal_code, country, phone, email, tax_number, bank_account, bank_name, notes, payment_terms_days, is_active, is_deleted, created_at, updated_at`

type supplierRepository struct {
	db *sql.DB
}

func NewSupplierRepository(db *sql.DB) outbound.SupplierRepository {
	return &supplierRepository{db: db}
}

func (r *supplierRepository) FindAll(ctx context.Context) ([]*entity.Supplier, error) {
	query := fmt.Sprintf(`SELECT %s FROM suppliers WHERE is_deleted = FALSE ORDER BY created_at DESC`, supplierColumns)

	rows, err := r.db.QueryContext(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("failed to query suppliers: %w", err)
	}
	defer rows.Close()

	var suppliers []*entity.Supplier
	for rows.Next() {
		supplier, err := scanSupplier(rows)
		if err != nil {
			return nil, err
		}
		suppliers = append(suppliers, supplier)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate suppliers: %w", err)
	}

	return suppliers, nil
}

func (r *supplierRepository) FindByID(ctx context.Context, id string) (*entity.Supplier, error) {
	query := fmt.Sprintf(`SELECT %s FROM suppliers WHERE id = $1 AND is_deleted = FALSE`, supplierColumns)

	supplier, err := scanSupplier(r.db.QueryRowContext(ctx, query, id))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, outbound.ErrSupplierNotFound
		}
		return nil, err
	}
	return supplier, nil
}

func (r *supplierRepository) Create(ctx context.Context, supplier *entity.Supplier) error {
	query := `
		INSERT INTO suppliers (id, name, contact_person, address, city, postal_code, country, phone, email, tax_number, bank_account, bank_name, notes, payment_terms_days, is_active, is_deleted, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, $15, $16, $17, $18)
	`

	_, err := r.db.ExecContext(ctx, query,
		supplier.ID,
		supplier.Name,
		supplier.ContactPerson,
		supplier.Address,
		supplier.City,
		supplier.PostalCode,
		supplier.Country,
		supplier.Phone,
		supplier.Email,
		supplier.TaxNumber,
		supplier.BankAccount,
		supplier.BankName,
		supplier.Notes,
		supplier.PaymentTermsDays,
		supplier.IsActive,
		supplier.IsDeleted,
		supplier.CreatedAt,
		supplier.UpdatedAt,
	)
	if err != nil {
		return fmt.Errorf("failed to create supplier: %w", err)
	}
	return nil
}

func (r *supplierRepository) Update(ctx context.Context, supplier *entity.Supplier) error {
	query := `
		UPDATE suppliers
		SET name = $2, contact_person = $3, address = $4, city = $5, postal_code = $6, country = $7, phone = $8, email = $9, tax_number = $10, bank_account = $11, bank_name = $12, notes = $13, payment_terms_days = $14, is_active = $15, updated_at = $16
		WHERE id = $1 AND is_deleted = FALSE
	`

	result, err := r.db.ExecContext(ctx, query,
		supplier.ID,
		supplier.Name,
		supplier.ContactPerson,
		supplier.Address,
		supplier.City,
		supplier.PostalCode,
		supplier.Country,
		supplier.Phone,
		supplier.Email,
		supplier.TaxNumber,
		supplier.BankAccount,
		supplier.BankName,
		supplier.Notes,
		supplier.PaymentTermsDays,
		supplier.IsActive,
		supplier.UpdatedAt,
	)
	if err != nil {
		return fmt.Errorf("failed to update supplier: %w", err)
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to get rows affected: %w", err)
	}
	if rowsAffected == 0 {
		return outbound.ErrSupplierNotFound
	}

	return nil
}

func (r *supplierRepository) SoftDelete(ctx context.Context, id string) error {
	query := `
		UPDATE suppliers
		SET is_deleted = TRUE, is_active = FALSE, updated_at = $2
		WHERE id = $1 AND is_deleted = FALSE
	`

	result, err := r.db.ExecContext(ctx, query, id, time.Now().UTC())
	if err != nil {
		return fmt.Errorf("failed to soft delete supplier: %w", err)
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to get rows affected: %w", err)
	}
	if rowsAffected == 0 {
		return outbound.ErrSupplierNotFound
	}

	return nil
}

func scanSupplier(row rowScanner) (*entity.Supplier, error) {
	var supplier entity.Supplier
	err := row.Scan(
		&supplier.ID,
		&supplier.Name,
		&supplier.ContactPerson,
		&supplier.Address,
		&supplier.City,
		&supplier.PostalCode,
		&supplier.Country,
		&supplier.Phone,
		&supplier.Email,
		&supplier.TaxNumber,
		&supplier.BankAccount,
		&supplier.BankName,
		&supplier.Notes,
		&supplier.PaymentTermsDays,
		&supplier.IsActive,
		&supplier.IsDeleted,
		&supplier.CreatedAt,
		&supplier.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, sql.ErrNoRows
		}
		return nil, fmt.Errorf("failed to scan supplier: %w", err)
	}
	return &supplier, nil
}
