package domain

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"dotaznik/pkg/apperrors"
)

func TestParseOptionalInt(t *testing.T) {
	t.Run("empty input is absent", func(t *testing.T) {
		value, err := ParseOptionalInt("")
		require.NoError(t, err)
		assert.Nil(t, value)
	})

	t.Run("whitespace input is absent", func(t *testing.T) {
		value, err := ParseOptionalInt("   ")
		require.NoError(t, err)
		assert.Nil(t, value)
	})

	t.Run("digits coerce to int64", func(t *testing.T) {
		value, err := ParseOptionalInt("1998")
		require.NoError(t, err)
		require.NotNil(t, value)
		assert.Equal(t, int64(1998), *value)
	})

	t.Run("surrounding whitespace is tolerated", func(t *testing.T) {
		value, err := ParseOptionalInt(" 110 ")
		require.NoError(t, err)
		require.NotNil(t, value)
		assert.Equal(t, int64(110), *value)
	})

	t.Run("non-numeric text is malformed", func(t *testing.T) {
		value, err := ParseOptionalInt("cca 2000")
		require.Error(t, err)
		assert.Nil(t, value)
		assert.True(t, apperrors.Is(err, apperrors.CodeMalformedNumber))
	})
}

func TestEnumValidity(t *testing.T) {
	assert.True(t, PayQuarterly.Valid())
	assert.True(t, PaySemiannual.Valid())
	assert.True(t, PayAnnual.Valid())
	assert.False(t, PaymentFrequency("").Valid())
	assert.False(t, PaymentFrequency("monthly").Valid())

	assert.True(t, VehiclePersonal.Valid())
	assert.False(t, VehicleType("tractor").Valid())

	assert.True(t, UsageTaxi.Valid())
	assert.False(t, UsageType("").Valid())
}

func TestInsuranceOptionsPrimarySelected(t *testing.T) {
	assert.False(t, InsuranceOptions{}.PrimarySelected())
	assert.True(t, InsuranceOptions{Liability: true}.PrimarySelected())
	assert.True(t, InsuranceOptions{Collision: true}.PrimarySelected())
	// Supplementary coverages alone do not satisfy the primary requirement.
	assert.False(t, InsuranceOptions{Glass: true, Assistance: true, GAP: true}.PrimarySelected())
}
