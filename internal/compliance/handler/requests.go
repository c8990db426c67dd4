package handler

import (
	"time"

	id "shiftwise/pkg/domain"
	dErrors "shiftwise/pkg/domain-errors"
)

// EvaluateRequest is the HTTP request body for POST /compliance/evaluate.
type EvaluateRequest struct {
	UserID string `json:"user_id"`
	From   string `json:"from"`
	To     string `json:"to"`

	// Parsed values (populated by Validate)
	parsedUserID id.UserID
	parsedFrom   time.Time
	parsedTo     time.Time
}

// Validate validates and parses the request.
// Implements the Validatable interface for httputil.DecodeAndPrepare.
func (r *EvaluateRequest) Validate() error {
	if r == nil {
		return dErrors.New(dErrors.CodeBadRequest, "request body is required")
	}

	userID, err := id.ParseUserID(r.UserID)
	if err != nil {
		return err
	}
	r.parsedUserID = userID

	if r.From == "" || r.To == "" {
		return dErrors.New(dErrors.CodeValidation, "from and to are required")
	}
	from, err := time.Parse(time.RFC3339, r.From)
	if err != nil {
		return dErrors.New(dErrors.CodeValidation, "from must be an RFC 3339 timestamp")
	}
	to, err := time.Parse(time.RFC3339, r.To)
	if err != nil {
		return dErrors.New(dErrors.CodeValidation, "to must be an RFC 3339 timestamp")
	}
	r.parsedFrom = from
	r.parsedTo = to
	return nil
}

// ParsedUserID returns the validated user ID.
func (r *EvaluateRequest) ParsedUserID() id.UserID {
	return r.parsedUserID
}

// ParsedWindow returns the validated evaluation window.
func (r *EvaluateRequest) ParsedWindow() (time.Time, time.Time) {
	return r.parsedFrom, r.parsedTo
}
