package common

import (
	"math/big"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestWeiToBNB(t *testing.T) {
	tests := []struct {
		wei  string
		want string
	}{
		{"0", "0"},
		{"1", "0.000000000000000001"},
		{"1000000000000000000", "1"},
		{"1500000000000000000", "1.5"},
		{"123456789012345678901", "123.456789012345678901"},
		{"20000000000000000", "0.02"},
	}

	for _, tt := range tests {
		wei, ok := new(big.Int).SetString(tt.wei, 10)
		require.True(t, ok)
		assert.Equal(t, tt.want, WeiToBNB(wei), "wei %s", tt.wei)
	}

	assert.Equal(t, "0", WeiToBNB(nil))
}

func TestLamportsToSOL(t *testing.T) {
	tests := []struct {
		lamports uint64
		want     string
	}{
		{0, "0"},
		{1, "0.000000001"},
		{1000000000, "1"},
		{24981836, "0.024981836"},
		{1500000000, "1.5"},
	}

	for _, tt := range tests {
		assert.Equal(t, tt.want, LamportsToSOL(tt.lamports), "lamports %d", tt.lamports)
	}
}

func TestParseWithDecimals(t *testing.T) {
	n, err := ParseWithDecimals("1.5", 9)
	require.NoError(t, err)
	assert.Equal(t, "1500000000", n.String())

	n, err = ParseWithDecimals("0.000000001", 9)
	require.NoError(t, err)
	assert.Equal(t, "1", n.String())

	_, err = ParseWithDecimals("", 9)
	assert.Error(t, err)
	_, err = ParseWithDecimals("1.2.3", 9)
	assert.Error(t, err)
	_, err = ParseWithDecimals("0.0000000001", 9)
	assert.Error(t, err)
	_, err = ParseWithDecimals("abc", 9)
	assert.Error(t, err)
}
