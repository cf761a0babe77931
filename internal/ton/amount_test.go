package ton

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestToUnits(t *testing.T) {
	tests := []struct {
		in   string
		want string
	}{
		{"1", "1000000000"},
		{"1.5", "1500000000"},
		{"0.000000001", "1"},
		{" 2 ", "2000000000"},
		{"100000", "100000000000000"},
		{"1.0000000019", "1000000001"},
		{"1e2", "100000000000"},
	}
	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			got, err := ToUnits(tt.in, NanoDecimals)
			require.NoError(t, err)
			assert.Equal(t, tt.want, got.String())
		})
	}
}

func TestToUnitsInvalid(t *testing.T) {
	for _, in := range []string{"", "abc", "0", "-1", "0.0000000001"} {
		_, err := ToUnits(in, NanoDecimals)
		assert.ErrorIs(t, err, ErrInvalidAmount, "input %q", in)
	}
}

func TestFromUnits(t *testing.T) {
	got, err := FromUnits("1500000000", NanoDecimals)
	require.NoError(t, err)
	assert.Equal(t, "1.5", got.String())

	_, err = FromUnits("x", NanoDecimals)
	assert.ErrorIs(t, err, ErrInvalidAmount)
}
