// Package domain defines typed identifiers used across module boundaries.
//
// Every identifier wraps uuid.UUID as a distinct named type so the compiler
// rejects cross-type assignment (a UserID can never be passed where a
// TenantID is expected). Parsing enforces the invariant that IDs are valid,
// non-empty, non-nil UUIDs at trust boundaries.
package domain

import (
	"github.com/google/uuid"

	dErrors "shiftwise/pkg/domain-errors"
)

type (
	// UserID identifies a workforce member whose time is tracked.
	UserID uuid.UUID
	// TenantID identifies a customer organization.
	TenantID uuid.UUID
	// EntryID identifies a single tracked time entry.
	EntryID uuid.UUID
)

func (id UserID) String() string   { return uuid.UUID(id).String() }
func (id TenantID) String() string { return uuid.UUID(id).String() }
func (id EntryID) String() string  { return uuid.UUID(id).String() }

func (id UserID) IsNil() bool   { return uuid.UUID(id) == uuid.Nil }
func (id TenantID) IsNil() bool { return uuid.UUID(id) == uuid.Nil }
func (id EntryID) IsNil() bool  { return uuid.UUID(id) == uuid.Nil }

// Named types do not inherit uuid.UUID's text marshalling, so each ID
// implements encoding.TextMarshaler/TextUnmarshaler explicitly. JSON encoding
// of these IDs goes through the canonical string form.

func (id UserID) MarshalText() ([]byte, error)   { return uuid.UUID(id).MarshalText() }
func (id TenantID) MarshalText() ([]byte, error) { return uuid.UUID(id).MarshalText() }
func (id EntryID) MarshalText() ([]byte, error)  { return uuid.UUID(id).MarshalText() }

func (id *UserID) UnmarshalText(data []byte) error {
	return (*uuid.UUID)(id).UnmarshalText(data)
}

func (id *TenantID) UnmarshalText(data []byte) error {
	return (*uuid.UUID)(id).UnmarshalText(data)
}

func (id *EntryID) UnmarshalText(data []byte) error {
	return (*uuid.UUID)(id).UnmarshalText(data)
}

// NewUserID generates a fresh random UserID.
func NewUserID() UserID { return UserID(uuid.New()) }

// NewTenantID generates a fresh random TenantID.
func NewTenantID() TenantID { return TenantID(uuid.New()) }

// NewEntryID generates a fresh random EntryID.
func NewEntryID() EntryID { return EntryID(uuid.New()) }

// ParseUserID parses and validates a UserID from its string form.
func ParseUserID(s string) (UserID, error) {
	u, err := parseUUID(s, "user_id")
	return UserID(u), err
}

// ParseTenantID parses and validates a TenantID from its string form.
func ParseTenantID(s string) (TenantID, error) {
	u, err := parseUUID(s, "tenant_id")
	return TenantID(u), err
}

// ParseEntryID parses and validates an EntryID from its string form.
func ParseEntryID(s string) (EntryID, error) {
	u, err := parseUUID(s, "entry_id")
	return EntryID(u), err
}

func parseUUID(s, field string) (uuid.UUID, error) {
	if s == "" {
		return uuid.Nil, dErrors.Newf(dErrors.CodeInvalidInput, "%s cannot be empty", field)
	}
	u, err := uuid.Parse(s)
	if err != nil {
		return uuid.Nil, dErrors.Newf(dErrors.CodeInvalidInput, "%s is not a valid UUID", field)
	}
	if u == uuid.Nil {
		return uuid.Nil, dErrors.Newf(dErrors.CodeInvalidInput, "%s cannot be the nil UUID", field)
	}
	return u, nil
}
