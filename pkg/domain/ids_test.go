package domain

import (
	"encoding/json"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	dErrors "fundready/pkg/domain-errors"
)

func TestParseBusinessID(t *testing.T) {
	t.Run("rejects empty string", func(t *testing.T) {
		_, err := ParseBusinessID("")
		require.Error(t, err)
		assert.True(t, dErrors.HasCode(err, dErrors.CodeInvalidInput))
	})

	t.Run("rejects invalid format", func(t *testing.T) {
		_, err := ParseBusinessID("not-a-uuid")
		require.Error(t, err)
		assert.True(t, dErrors.HasCode(err, dErrors.CodeInvalidInput))
	})

	t.Run("rejects nil UUID", func(t *testing.T) {
		_, err := ParseBusinessID(uuid.Nil.String())
		require.Error(t, err)
		assert.True(t, dErrors.HasCode(err, dErrors.CodeInvalidInput))
	})

	t.Run("accepts valid UUID", func(t *testing.T) {
		raw := uuid.New()
		businessID, err := ParseBusinessID(raw.String())
		require.NoError(t, err)
		assert.Equal(t, BusinessID(raw), businessID)
	})
}

func TestIDJSONRoundTrip(t *testing.T) {
	userID := NewUserID()

	data, err := json.Marshal(userID)
	require.NoError(t, err)
	assert.JSONEq(t, `"`+userID.String()+`"`, string(data))

	var parsed UserID
	require.NoError(t, json.Unmarshal(data, &parsed))
	assert.Equal(t, userID, parsed)
}

func TestIDStringIsCanonicalUUID(t *testing.T) {
	raw := uuid.New()
	assert.Equal(t, raw.String(), DocumentID(raw).String())
	assert.Equal(t, raw.String(), FundingUtilityID(raw).String())
}
