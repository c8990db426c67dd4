package store

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"

	"github.com/google/uuid"

	"shiftwise/internal/tenant/models"
	id "shiftwise/pkg/domain"
	dErrors "shiftwise/pkg/domain-errors"
)

// PostgresStore persists tenants in PostgreSQL.
type PostgresStore struct {
	db *sql.DB
}

// NewPostgres constructs a PostgreSQL-backed tenant store.
func NewPostgres(db *sql.DB) *PostgresStore {
	return &PostgresStore{db: db}
}

const tenantColumns = `id, name, rule_set, status, api_secret_hash, created_at, updated_at`

// CreateIfNameAvailable relies on the unique index on lower(name) so
// concurrent creations with the same name resolve to exactly one winner.
func (s *PostgresStore) CreateIfNameAvailable(ctx context.Context, tenant *models.Tenant) error {
	if tenant == nil {
		return dErrors.New(dErrors.CodeInternal, "tenant is required")
	}
	_, err := s.db.ExecContext(ctx, `
		INSERT INTO tenants (`+tenantColumns+`)
		VALUES ($1, $2, $3, $4, $5, $6, $7)`,
		uuid.UUID(tenant.ID), tenant.Name, tenant.RuleSet, string(tenant.Status),
		tenant.APISecretHash, tenant.CreatedAt, tenant.UpdatedAt,
	)
	if err != nil {
		if isUniqueViolation(err) {
			return dErrors.New(dErrors.CodeConflict, "tenant name already exists")
		}
		return fmt.Errorf("create tenant: %w", err)
	}
	return nil
}

func (s *PostgresStore) Update(ctx context.Context, tenant *models.Tenant) error {
	res, err := s.db.ExecContext(ctx, `
		UPDATE tenants
		SET rule_set = $2, status = $3, api_secret_hash = $4, updated_at = $5
		WHERE id = $1`,
		uuid.UUID(tenant.ID), tenant.RuleSet, string(tenant.Status),
		tenant.APISecretHash, tenant.UpdatedAt,
	)
	if err != nil {
		return fmt.Errorf("update tenant: %w", err)
	}
	affected, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("update tenant: %w", err)
	}
	if affected == 0 {
		return dErrors.New(dErrors.CodeNotFound, "tenant not found")
	}
	return nil
}

func (s *PostgresStore) FindByID(ctx context.Context, tenantID id.TenantID) (*models.Tenant, error) {
	row := s.db.QueryRowContext(ctx, `
		SELECT `+tenantColumns+` FROM tenants WHERE id = $1`,
		uuid.UUID(tenantID),
	)
	tenant, err := scanTenant(row)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, dErrors.New(dErrors.CodeNotFound, "tenant not found")
		}
		return nil, fmt.Errorf("find tenant: %w", err)
	}
	return tenant, nil
}

func (s *PostgresStore) List(ctx context.Context) ([]*models.Tenant, error) {
	rows, err := s.db.QueryContext(ctx, `
		SELECT `+tenantColumns+` FROM tenants ORDER BY name ASC`)
	if err != nil {
		return nil, fmt.Errorf("list tenants: %w", err)
	}
	defer rows.Close()

	var tenants []*models.Tenant
	for rows.Next() {
		tenant, err := scanTenant(rows)
		if err != nil {
			return nil, fmt.Errorf("scan tenant: %w", err)
		}
		tenants = append(tenants, tenant)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("list tenants: %w", err)
	}
	return tenants, nil
}

type rowScanner interface {
	Scan(dest ...any) error
}

func scanTenant(row rowScanner) (*models.Tenant, error) {
	var (
		tenant   models.Tenant
		tenantID uuid.UUID
		status   string
	)
	err := row.Scan(&tenantID, &tenant.Name, &tenant.RuleSet, &status,
		&tenant.APISecretHash, &tenant.CreatedAt, &tenant.UpdatedAt)
	if err != nil {
		return nil, err
	}
	tenant.ID = id.TenantID(tenantID)
	tenant.Status = models.TenantStatus(status)
	return &tenant, nil
}

// isUniqueViolation detects Postgres unique constraint errors (SQLSTATE
// 23505) without binding to a specific driver error type.
func isUniqueViolation(err error) bool {
	return err != nil && strings.Contains(err.Error(), "23505")
}
