package postgres

import (
	"context"
	"fmt"

	"github.com/Jav1009/community-service-api/internal/domain"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

type ServiceRepository struct {
	pool *pgxpool.Pool
}

func NewServiceRepository(pool *pgxpool.Pool) *ServiceRepository {
	return &ServiceRepository{pool: pool}
}

const serviceColumns = `id, name, description, price, estimated_duration, is_available, created_at, updated_at`

func (r *ServiceRepository) List(ctx context.Context) ([]domain.Service, error) {
	query := `SELECT ` + serviceColumns + ` FROM services ORDER BY created_at DESC, id DESC`

	rows, err := r.pool.Query(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("list services: %w", err)
	}
	defer rows.Close()

	var services []domain.Service
	for rows.Next() {
		svc, err := scanService(rows)
		if err != nil {
			return nil, fmt.Errorf("scan service: %w", err)
		}
		services = append(services, svc)
	}
	if rows.Err() != nil {
		return nil, fmt.Errorf("iterate services: %w", rows.Err())
	}
	return services, nil
}

// GetByID returns nil without error when no service has that id.
func (r *ServiceRepository) GetByID(ctx context.Context, id int64) (*domain.Service, error) {
	query := `SELECT ` + serviceColumns + ` FROM services WHERE id = $1`

	svc, err := scanService(r.pool.QueryRow(ctx, query, id))
	if err != nil {
		if err == pgx.ErrNoRows {
			return nil, nil
		}
		return nil, fmt.Errorf("get service by id: %w", err)
	}
	return &svc, nil
}

func (r *ServiceRepository) Create(ctx context.Context, svc domain.Service) (int64, error) {
	const stmt = `
INSERT INTO services (name, description, price, estimated_duration, is_available)
VALUES ($1, $2, $3, $4, $5)
RETURNING id`

	var id int64
	err := r.pool.QueryRow(ctx, stmt,
		svc.Name,
		svc.Description,
		svc.Price,
		svc.EstimatedDuration,
		svc.IsAvailable,
	).Scan(&id)
	if err != nil {
		if isCheckViolation(err) {
			return 0, domain.InvalidInputf("price must be a valid non-negative number")
		}
		return 0, fmt.Errorf("create service: %w", err)
	}
	return id, nil
}

func (r *ServiceRepository) Update(ctx context.Context, svc domain.Service) error {
	const stmt = `
UPDATE services
SET name = $2, description = $3, price = $4, estimated_duration = $5, is_available = $6, updated_at = $7
WHERE id = $1`

	tag, err := r.pool.Exec(ctx, stmt,
		svc.ID,
		svc.Name,
		svc.Description,
		svc.Price,
		svc.EstimatedDuration,
		svc.IsAvailable,
		svc.UpdatedAt,
	)
	if err != nil {
		if isCheckViolation(err) {
			return domain.InvalidInputf("price must be a valid non-negative number")
		}
		return fmt.Errorf("update service: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return domain.NotFoundf("Service with ID %d not found", svc.ID)
	}
	return nil
}

// Delete reports whether a row was removed.
func (r *ServiceRepository) Delete(ctx context.Context, id int64) (bool, error) {
	tag, err := r.pool.Exec(ctx, `DELETE FROM services WHERE id = $1`, id)
	if err != nil {
		return false, fmt.Errorf("delete service: %w", err)
	}
	return tag.RowsAffected() > 0, nil
}

type rowScanner interface {
	Scan(dest ...any) error
}

func scanService(row rowScanner) (domain.Service, error) {
	var svc domain.Service
	err := row.Scan(
		&svc.ID,
		&svc.Name,
		&svc.Description,
		&svc.Price,
		&svc.EstimatedDuration,
		&svc.IsAvailable,
		&svc.CreatedAt,
		&svc.UpdatedAt,
	)
	return svc, err
}
