package types_test

import (
	"testing"

	"github.com/safebite/safebite/internal/database/types"
	"github.com/safebite/safebite/internal/database/types/enum"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestVoterIdentity_Key(t *testing.T) {
	t.Parallel()

	key, err := types.VoterIdentity{UserID: 42}.Key()
	require.NoError(t, err)
	assert.Equal(t, "u:42", key)

	key, err = types.VoterIdentity{AnonymousID: "device-abc"}.Key()
	require.NoError(t, err)
	assert.Equal(t, "a:device-abc", key)

	// User ID wins when the client sends both.
	key, err = types.VoterIdentity{UserID: 42, AnonymousID: "device-abc"}.Key()
	require.NoError(t, err)
	assert.Equal(t, "u:42", key)

	_, err = types.VoterIdentity{}.Key()
	require.ErrorIs(t, err, types.ErrNoVoterIdentity)
}

func TestVoterIdentity_Kind(t *testing.T) {
	t.Parallel()

	assert.Equal(t, enum.VoterKindRegistered, types.VoterIdentity{UserID: 1}.Kind())
	assert.Equal(t, enum.VoterKindAnonymous, types.VoterIdentity{AnonymousID: "x"}.Kind())
}

func TestIsValidPriceTier(t *testing.T) {
	t.Parallel()

	for _, tier := range []int{20, 40, 60, 80, 100} {
		assert.True(t, types.IsValidPriceTier(tier), "tier %d", tier)
	}

	for _, invalid := range []int{0, 10, 50, 99, 120, -20} {
		assert.False(t, types.IsValidPriceTier(invalid), "tier %d", invalid)
	}
}
