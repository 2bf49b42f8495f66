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

const customerColumns = `id, name, address, city, postal_code, country, phone, email, tax_number, notes, credit_limit, current_credit, is_active, is_deleted, created_at, updated_at`

type customerRepository struct {
	db *sql.DB
}

func NewCustomerRepository(db *sql.DB) outbound.CustomerRepository {
	return &customerRepository{db: db}
}

func (r *customerRepository) FindAll(ctx context.Context) ([]*entity.Customer, error) {
	query := fmt.Sprintf(`SELECT %s FROM customers WHERE is_deleted = FALSE ORDER BY created_at DESC`, customerColumns)

	rows, err := r.db.QueryContext(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("failed to query customers: %w", err)
	}
	defer rows.Close()

	var customers []*entity.Customer
	for rows.Next() {
		customer, err := scanCustomer(rows)
		if err != nil {
			return nil, err
		}
		customers = append(customers, customer)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate customers: %w", err)
	}

	return customers, nil
}

func (r *customerRepository) FindByID(ctx context.Context, id string) (*entity.Customer, error) {
	query := fmt.Sprintf(`SELECT %s FROM customers WHERE id = $1 AND is_deleted = FALSE`, customerColumns)

	customer, err := scanCustomer(r.db.QueryRowContext(ctx, query, id))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, outbound.ErrCustomerNotFound
		}
		return nil, err
	}
	return customer, nil
}

func (r *customerRepository) Create(ctx context.Context, customer *entity.Customer) error {
	query := `
		INSERT INTO customers (id, name, address, city, postal_code, country, phone, email, tax_number, notes, credit_limit, current_credit, is_active, is_deleted, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, $15, $16)
	`

	_, err := r.db.ExecContext(ctx, query,
		customer.ID,
		customer.Name,
		customer.Address,
		customer.City,
		customer.PostalCode,
		customer.Country,
		customer.Phone,
		customer.Email,
		customer.TaxNumber,
		customer.Notes,
		customer.CreditLimit,
		customer.CurrentCredit,
		customer.IsActive,
		customer.IsDeleted,
		customer.CreatedAt,
		customer.UpdatedAt,
	)
	if err != nil {
		return fmt.Errorf("failed to create customer: %w", err)
	}
	return nil
}

func (r *customerRepository) Update(ctx context.Context, customer *entity.Customer) error {
	query := `
		UPDATE customers
		SET name = $2, address = $3, city = $4, postal_code = $5, country = $6, phone = $7, email = $8, tax_number = $9, notes = $10, credit_limit = $11, current_credit = $12, is_active = $13, updated_at = $14
		WHERE id = $1 AND is_deleted = FALSE
	`

	result, err := r.db.ExecContext(ctx, query,
		customer.ID,
		customer.Name,
		customer.Address,
		customer.City,
		customer.PostalCode,
		customer.Country,
		customer.Phone,
		customer.Email,
		customer.TaxNumber,
		customer.Notes,
		customer.CreditLimit,
		customer.CurrentCredit,
		customer.IsActive,
		customer.UpdatedAt,
	)
	if err != nil {
		return fmt.Errorf("failed to update customer: %w", err)
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to get rows affected: %w", err)
	}
	if rowsAffected == 0 {
		return outbound.ErrCustomerNotFound
	}

	return nil
}

func (r *customerRepository) SoftDelete(ctx context.Context, id string) error {
	query := `
		UPDATE customers
		SET is_deleted = TRUE, is_active = FALSE, updated_at = $2
		WHERE id = $1 AND is_deleted = FALSE
	`

	result, err := r.db.ExecContext(ctx, query, id, time.Now().UTC())
	if err != nil {
		return fmt.Errorf("failed to soft delete customer: %w", err)
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to get rows affected: %w", err)
	}
	if rowsAffected == 0 {
		return outbound.ErrCustomerNotFound
	}

	return nil
}

func scanCustomer(row rowScanner) (*entity.Customer, error) {
	var customer entity.Customer
	err := row.Scan(
		&customer.ID,
		&customer.Name,
		&customer.Address,
		&customer.City,
		&customer.PostalCode,
		&customer.Country,
		&customer.Phone,
		&customer.Email,
		&customer.TaxNumber,
		&customer.Notes,
		&customer.CreditLimit,
		&customer.CurrentCredit,
		&customer.IsActive,
		&customer.IsDeleted,
		&customer.CreatedAt,
		&customer.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, sql.ErrNoRows
		}
		return nil, fmt.Errorf("failed to scan customer: %w", err)
	}
	return &customer, nil
}
