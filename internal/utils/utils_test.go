package utils

import (
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFormatRupiah(t *testing.T) {
	cases := map[string]string{
		"0":          "Rp 0",
		"500":        "Rp 500",
		"1000":       "Rp 1.000",
		"250000":     "Rp 250.000",
		"1234567":    "Rp 1.234.567",
		"10500000":   "Rp 10.500.000",
		"-3000000":   "(Rp 3.000.000)",
		"2500.6":     "Rp 2.501",
		"-0.2":       "Rp 0",
		"1000000000": "Rp 1.000.000.000",
	}
	for in, want := range cases {
		assert.Equal(t, want, FormatRupiah(decimal.RequireFromString(in)), in)
	}
}

func TestParseAmount(t *testing.T) {
	cases := []struct {
		in   string
		want string
	}{
		{"", "0"},
		{"1500000", "1500000"},
		{"1.500.000", "1500000"},
		{"Rp 2.000", "2000"},
		{"1.500,50", "1500.5"},
		{"12.5", "12.5"},
	}
	for _, tc := range cases {
		got, err := ParseAmount(tc.in)
		require.NoError(t, err, tc.in)
		assert.True(t, decimal.RequireFromString(tc.want).Equal(got), "%s -> %s", tc.in, got)
	}

	_, err := ParseAmount("abc")
	assert.Error(t, err)
}

func TestTokenRoundTrip(t *testing.T) {
	token, err := GenerateAccessToken(7, "petani@belut.in", "secret", time.Hour)
	require.NoError(t, err)

	claims, err := ValidateToken(token, "secret")
	require.NoError(t, err)
	assert.Equal(t, 7, claims.UserID)
	assert.Equal(t, "petani@belut.in", claims.Email)

	_, err = ValidateToken(token, "other-secret")
	assert.Error(t, err)

	expired, err := GenerateAccessToken(7, "petani@belut.in", "secret", -time.Minute)
	require.NoError(t, err)
	_, err = ValidateToken(expired, "secret")
	assert.Error(t, err)
}

func TestPasswordHash(t *testing.T) {
	hash, err := HashPassword("rahasia")
	require.NoError(t, err)
	assert.True(t, CheckPasswordHash("rahasia", hash))
	assert.False(t, CheckPasswordHash("salah", hash))
}

func TestDates(t *testing.T) {
	assert.True(t, ValidDate("2025-02-28"))
	assert.False(t, ValidDate("2025-02-30"))
	assert.False(t, ValidDate("28/02/2025"))
	assert.Equal(t, "05 Jan 2025", FormatDate("2025-01-05"))
	assert.Equal(t, "kemarin", FormatDate("kemarin"))
	assert.True(t, ValidDate(Today()))
}

func TestCalculatePagination(t *testing.T) {
	meta := CalculatePagination(2, 10, 25)
	assert.Equal(t, 3, meta.LastPage)
	assert.Equal(t, 11, meta.From)
	assert.Equal(t, 20, meta.To)
	assert.True(t, meta.HasMore)

	last := CalculatePagination(3, 10, 25)
	assert.Equal(t, 25, last.To)
	assert.False(t, last.HasMore)

	empty := CalculatePagination(1, 25, 0)
	assert.Equal(t, 0, empty.From)
	assert.Equal(t, 20, GetOffset(3, 10))
}
