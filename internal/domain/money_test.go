package domain

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseMoney_Crores(t *testing.T) {
	m, err := ParseMoney("₹2.5 Cr")
	require.NoError(t, err)
	assert.Equal(t, Money(25_000_000), m)
}

func TestParseMoney_Lakhs(t *testing.T) {
	m, err := ParseMoney("₹2.5 Lakh")
	require.NoError(t, err)
	assert.Equal(t, Money(250_000), m)
}

func TestParseMoney_RentWithGrouping(t *testing.T) {
	m, err := ParseMoney("₹25,000/month")
	require.NoError(t, err)
	assert.Equal(t, Money(25_000), m)
}

func TestParseMoney_PlainNumber(t *testing.T) {
	m, err := ParseMoney("45000")
	require.NoError(t, err)
	assert.Equal(t, Money(45_000), m)
}

func TestParseMoney_Empty(t *testing.T) {
	_, err := ParseMoney("")
	require.Error(t, err)
}

func TestParseMoney_NoDigits(t *testing.T) {
	_, err := ParseMoney("₹ Cr")
	require.Error(t, err)
}

func TestParseMoneyOrZero_Malformed(t *testing.T) {
	assert.Equal(t, Money(0), ParseMoneyOrZero("n/a"))
}

func TestFormat_RoundTripPreservesValue(t *testing.T) {
	cases := []string{"₹2.5 Cr", "₹25 Lakh", "₹1.25 Cr", "₹45,000", "₹3 Lakh"}
	for _, in := range cases {
		parsed, err := ParseMoney(in)
		require.NoError(t, err, "parsing %q", in)

		reparsed, err := ParseMoney(parsed.Format())
		require.NoError(t, err, "reparsing %q", parsed.Format())
		assert.Equal(t, parsed, reparsed, "round-trip of %q", in)
	}
}

func TestFormat_Thresholds(t *testing.T) {
	assert.Equal(t, "₹2.5 Cr", Money(25_000_000).Format())
	assert.Equal(t, "₹2.5 Lakh", Money(250_000).Format())
	assert.Equal(t, "₹45,000", Money(45_000).Format())
	assert.Equal(t, "₹999", Money(999).Format())
}
