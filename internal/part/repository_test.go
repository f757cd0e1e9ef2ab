package part

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	_ "github.com/stocktree-app/stocktree/testing"
)

func TestListByFlagQueryFiltersOnFlagOnly(t *testing.T) {
	for _, flag := range []Flag{FlagPurchaseable, FlagBuildable} {
		query, err := listByFlagQuery(flag)
		require.NoError(t, err)

		assert.Contains(t, query, "WHERE p."+string(flag))
		// Inactive parts stay on the worklists; activity is not a filter.
		assert.NotContains(t, query, "active")
	}
}

func TestListByFlagQueryRejectsUnknownFlag(t *testing.T) {
	_, err := listByFlagQuery(Flag("name"))
	assert.Error(t, err)
}
