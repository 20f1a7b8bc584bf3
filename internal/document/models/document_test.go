package models

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	id "fundready/pkg/domain"
)

func TestStatusForCount(t *testing.T) {
	tests := []struct {
		count int
		want  GroupStatus
	}{
		{0, StatusNotStarted},
		{1, StatusInProgress},
		{2, StatusInProgress},
		{3, StatusComplete},
		{4, StatusComplete},
		{100, StatusComplete},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, StatusForCount(tt.count), "count=%d", tt.count)
	}
}

func TestNewGroups(t *testing.T) {
	businessID := id.NewBusinessID()
	now := time.Now()

	groups := NewGroups(businessID, now)
	require.Len(t, groups, 5)

	seen := make(map[GroupType]bool)
	for _, group := range groups {
		assert.Equal(t, businessID, group.BusinessID)
		assert.Equal(t, StatusNotStarted, group.Status)
		assert.False(t, group.ID.IsNil())
		assert.False(t, seen[group.Type], "duplicate group type %s", group.Type)
		seen[group.Type] = true
	}
	for _, groupType := range AllGroupTypes {
		assert.True(t, seen[groupType], "missing group type %s", groupType)
	}
}

func TestGroupTypeValid(t *testing.T) {
	for _, groupType := range AllGroupTypes {
		assert.True(t, groupType.Valid())
	}
	assert.False(t, GroupType("TAX_RETURN").Valid())
	assert.False(t, GroupType("").Valid())
}
