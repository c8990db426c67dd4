package handler

import (
	"strings"

	dErrors "shiftwise/pkg/domain-errors"
)

// CreateTenantRequest is the HTTP request body for POST /admin/tenants.
type CreateTenantRequest struct {
	Name    string `json:"name"`
	RuleSet string `json:"rule_set"`
}

// Validate normalizes and checks the request shape. Rule-set existence is
// checked at the service layer against the registry.
func (r *CreateTenantRequest) Validate() error {
	if r == nil {
		return dErrors.New(dErrors.CodeBadRequest, "request body is required")
	}
	r.Name = strings.TrimSpace(r.Name)
	if r.Name == "" {
		return dErrors.New(dErrors.CodeValidation, "name is required")
	}
	if len(r.Name) > 128 {
		return dErrors.New(dErrors.CodeValidation, "name must be at most 128 characters")
	}
	r.RuleSet = strings.TrimSpace(r.RuleSet)
	return nil
}

// AssignRuleSetRequest is the HTTP request body for
// PUT /admin/tenants/{tenantID}/ruleset.
type AssignRuleSetRequest struct {
	RuleSet string `json:"rule_set"`
}

func (r *AssignRuleSetRequest) Validate() error {
	if r == nil {
		return dErrors.New(dErrors.CodeBadRequest, "request body is required")
	}
	r.RuleSet = strings.TrimSpace(r.RuleSet)
	if r.RuleSet == "" {
		return dErrors.New(dErrors.CodeValidation, "rule_set is required")
	}
	return nil
}
