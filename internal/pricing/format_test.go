package pricing

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFormatPrice(t *testing.T) {
	tests := []struct {
		amount int64
		want   string
	}{
		{0, "Rp 0"},
		{5, "Rp 5"},
		{999, "Rp 999"},
		{1000, "Rp 1.000"},
		{15000, "Rp 15.000"},
		{100000, "Rp 100.000"},
		{1234567, "Rp 1.234.567"},
		{1000000000, "Rp 1.000.000.000"},
	}

	for _, tt := range tests {
		got, err := FormatPrice(tt.amount)
		require.NoError(t, err)
		assert.Equal(t, tt.want, got)
	}
}

func TestFormatPriceNegative(t *testing.T) {
	_, err := FormatPrice(-1)
	assert.ErrorIs(t, err, ErrInvalidAmount)
}
