package models

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	id "fundready/pkg/domain"
	dErrors "fundready/pkg/domain-errors"
)

func TestNewDirector(t *testing.T) {
	now := time.Now()
	businessID := id.NewBusinessID()

	t.Run("name is required", func(t *testing.T) {
		_, err := NewDirector(id.NewDirectorID(), businessID, Fields{}, now)
		require.Error(t, err)
		assert.True(t, dErrors.HasCode(err, dErrors.CodeInvalidInput))
	})

	t.Run("kyc fields are optional at creation", func(t *testing.T) {
		director, err := NewDirector(id.NewDirectorID(), businessID, Fields{Name: "A. Kulkarni"}, now)
		require.NoError(t, err)
		assert.False(t, director.HasCompleteKYC())
	})
}

func TestHasCompleteKYC(t *testing.T) {
	director := Director{Name: "A. Kulkarni", PAN: "ABCPK1234L"}
	assert.False(t, director.HasCompleteKYC())

	director.AadhaarNumber = "345678901234"
	assert.True(t, director.HasCompleteKYC())
}

func TestDirectorApply(t *testing.T) {
	now := time.Now()
	director, err := NewDirector(id.NewDirectorID(), id.NewBusinessID(), Fields{Name: "A. Kulkarni"}, now)
	require.NoError(t, err)

	t.Run("fills kyc fields", func(t *testing.T) {
		pan, aadhaar := "ABCPK1234L", "345678901234"
		require.NoError(t, director.Apply(Update{PAN: &pan, AadhaarNumber: &aadhaar}, now.Add(time.Minute)))
		assert.True(t, director.HasCompleteKYC())
		assert.Equal(t, "A. Kulkarni", director.Name)
	})

	t.Run("name cannot be cleared", func(t *testing.T) {
		empty := ""
		err := director.Apply(Update{Name: &empty}, now)
		require.Error(t, err)
		assert.True(t, dErrors.HasCode(err, dErrors.CodeInvalidInput))
	})
}
