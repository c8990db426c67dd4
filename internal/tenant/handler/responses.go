package handler

import (
	"time"

	"shiftwise/internal/tenant/models"
	"shiftwise/internal/tenant/service"
)

// TenantResponse is the public representation of a tenant.
type TenantResponse struct {
	ID        string    `json:"id"`
	Name      string    `json:"name"`
	RuleSet   string    `json:"rule_set"`
	Status    string    `json:"status"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// CreatedTenantResponse additionally carries the plaintext API secret.
// It appears only in create and rotate responses; the secret is not
// retrievable afterwards.
type CreatedTenantResponse struct {
	TenantResponse
	APISecret string `json:"api_secret"`
}

func fromTenant(t *models.Tenant) TenantResponse {
	return TenantResponse{
		ID:        t.ID.String(),
		Name:      t.Name,
		RuleSet:   t.RuleSet,
		Status:    string(t.Status),
		CreatedAt: t.CreatedAt,
		UpdatedAt: t.UpdatedAt,
	}
}

func fromCreated(c *service.CreatedTenant) CreatedTenantResponse {
	return CreatedTenantResponse{
		TenantResponse: fromTenant(c.Tenant),
		APISecret:      c.APISecret,
	}
}
