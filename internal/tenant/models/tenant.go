// Package models defines the tenant aggregate.
package models

import (
	"time"

	id "shiftwise/pkg/domain"
	dErrors "shiftwise/pkg/domain-errors"
)

// TenantStatus is the lifecycle state of a tenant organization.
type TenantStatus string

const (
	TenantStatusActive   TenantStatus = "active"
	TenantStatusInactive TenantStatus = "inactive"
)

// IsValid checks if the status is one of the supported enum values.
func (s TenantStatus) IsValid() bool {
	return s == TenantStatusActive || s == TenantStatusInactive
}

// Tenant is the aggregate root for a customer organization.
//
// Invariants:
//   - Name is non-empty and at most 128 characters
//   - RuleSet names a registered labor-time rule configuration
//   - Status transitions: active ↔ inactive only
//   - CreatedAt is immutable after construction
//
// An inactive tenant keeps its recorded time but rejects new clock-ins and
// compliance evaluations at the service layer; reactivation needs no data
// repair.
type Tenant struct {
	ID      id.TenantID  `json:"id"`
	Name    string       `json:"name"`
	RuleSet string       `json:"rule_set"`
	Status  TenantStatus `json:"status"`
	// APISecretHash is the bcrypt hash of the tenant's API credential.
	// The plaintext is returned exactly once, at creation or rotation.
	APISecretHash string    `json:"-"`
	CreatedAt     time.Time `json:"created_at"`
	UpdatedAt     time.Time `json:"updated_at"`
}

// NewTenant constructs an active tenant, enforcing invariants.
func NewTenant(tenantID id.TenantID, name, ruleSet string, now time.Time) (*Tenant, error) {
	if tenantID.IsNil() {
		return nil, dErrors.New(dErrors.CodeInvariantViolation, "tenant id is required")
	}
	if name == "" {
		return nil, dErrors.New(dErrors.CodeInvariantViolation, "tenant name is required")
	}
	if len(name) > 128 {
		return nil, dErrors.New(dErrors.CodeInvariantViolation, "tenant name must be at most 128 characters")
	}
	if ruleSet == "" {
		return nil, dErrors.New(dErrors.CodeInvariantViolation, "rule set is required")
	}
	return &Tenant{
		ID:        tenantID,
		Name:      name,
		RuleSet:   ruleSet,
		Status:    TenantStatusActive,
		CreatedAt: now,
		UpdatedAt: now,
	}, nil
}

func (t *Tenant) IsActive() bool {
	return t.Status == TenantStatusActive
}

// Deactivate transitions the tenant to inactive.
func (t *Tenant) Deactivate(now time.Time) error {
	if t.Status == TenantStatusInactive {
		return dErrors.New(dErrors.CodeInvariantViolation, "tenant is already inactive")
	}
	t.Status = TenantStatusInactive
	t.UpdatedAt = now
	return nil
}

// Reactivate transitions the tenant back to active.
func (t *Tenant) Reactivate(now time.Time) error {
	if t.Status == TenantStatusActive {
		return dErrors.New(dErrors.CodeInvariantViolation, "tenant is already active")
	}
	t.Status = TenantStatusActive
	t.UpdatedAt = now
	return nil
}

// AssignRuleSet switches the tenant to a different rule configuration.
// Validation against the registry happens at the service layer.
func (t *Tenant) AssignRuleSet(ruleSet string, now time.Time) error {
	if ruleSet == "" {
		return dErrors.New(dErrors.CodeInvariantViolation, "rule set is required")
	}
	t.RuleSet = ruleSet
	t.UpdatedAt = now
	return nil
}
