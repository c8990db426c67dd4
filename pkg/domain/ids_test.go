package domain

import (
	"encoding/json"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	dErrors "shiftwise/pkg/domain-errors"
)

// Parsing must reject anything that is not a valid, non-nil UUID so malformed
// identifiers never cross a trust boundary.
func TestParseIDs_Invariants(t *testing.T) {
	t.Run("rejects empty string", func(t *testing.T) {
		_, err := ParseUserID("")
		require.Error(t, err)
		assert.True(t, dErrors.HasCode(err, dErrors.CodeInvalidInput))
	})

	t.Run("rejects invalid format", func(t *testing.T) {
		_, err := ParseEntryID("not-a-uuid")
		require.Error(t, err)
		assert.True(t, dErrors.HasCode(err, dErrors.CodeInvalidInput))
	})

	t.Run("rejects nil UUID", func(t *testing.T) {
		_, err := ParseTenantID(uuid.Nil.String())
		require.Error(t, err)
		assert.True(t, dErrors.HasCode(err, dErrors.CodeInvalidInput))
	})

	t.Run("accepts valid UUID", func(t *testing.T) {
		valid := uuid.New()
		id, err := ParseUserID(valid.String())
		require.NoError(t, err)
		assert.Equal(t, UserID(valid), id)
	})
}

// TestTypeDistinction verifies the compiler enforces type safety between ID
// kinds. If this compiles, the invariant holds:
//
//	var _ UserID = TenantID(uuid.New())  // would not compile
func TestTypeDistinction(t *testing.T) {
	userID := NewUserID()
	tenantID := NewTenantID()
	assert.NotEqual(t, uuid.UUID(userID), uuid.UUID(tenantID))
}

func TestStringRoundTrip(t *testing.T) {
	id := NewEntryID()
	parsed, err := ParseEntryID(id.String())
	require.NoError(t, err)
	assert.Equal(t, id, parsed)
}

// IDs must serialize as canonical UUID strings, not as raw byte arrays, both
// standalone and when embedded in response structs.
func TestJSONMarshalling(t *testing.T) {
	t.Run("marshals as UUID string", func(t *testing.T) {
		entryID := NewEntryID()

		payload := struct {
			ID       EntryID   `json:"id"`
			TenantID TenantID  `json:"tenant_id"`
			UserID   UserID    `json:"user_id"`
			Affected []EntryID `json:"affected_entries"`
		}{
			ID:       entryID,
			TenantID: NewTenantID(),
			UserID:   NewUserID(),
			Affected: []EntryID{entryID},
		}

		raw, err := json.Marshal(payload)
		require.NoError(t, err)
		assert.Contains(t, string(raw), `"id":"`+entryID.String()+`"`)
		assert.Contains(t, string(raw), `"affected_entries":["`+entryID.String()+`"]`)
	})

	t.Run("unmarshals from UUID string", func(t *testing.T) {
		want := NewUserID()

		var payload struct {
			UserID UserID `json:"user_id"`
		}
		err := json.Unmarshal([]byte(`{"user_id":"`+want.String()+`"}`), &payload)
		require.NoError(t, err)
		assert.Equal(t, want, payload.UserID)
	})

	t.Run("rejects malformed string", func(t *testing.T) {
		var payload struct {
			UserID UserID `json:"user_id"`
		}
		err := json.Unmarshal([]byte(`{"user_id":"not-a-uuid"}`), &payload)
		require.Error(t, err)
	})
}
