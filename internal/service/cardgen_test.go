package service

import (
	"strconv"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Zxcchinii/ProjetWeb/internal/model"
)

func TestGenerateCardNumber(t *testing.T) {
	for i := 0; i < 50; i++ {
		visa := generateCardNumber(model.CardTypeVisa)
		assert.Len(t, visa, 16)
		assert.True(t, strings.HasPrefix(visa, "4"), "visa number %s", visa)
		assert.True(t, validLuhn(visa), "visa number %s fails Luhn", visa)

		mastercard := generateCardNumber(model.CardTypeMastercard)
		assert.Len(t, mastercard, 16)
		prefix, err := strconv.Atoi(mastercard[:2])
		require.NoError(t, err)
		assert.GreaterOrEqual(t, prefix, 51, "mastercard number %s", mastercard)
		assert.LessOrEqual(t, prefix, 55, "mastercard number %s", mastercard)
		assert.True(t, validLuhn(mastercard), "mastercard number %s fails Luhn", mastercard)

		amex := generateCardNumber(model.CardTypeAmex)
		assert.Len(t, amex, 15)
		assert.True(t, strings.HasPrefix(amex, "34") || strings.HasPrefix(amex, "37"), "amex number %s", amex)
		assert.True(t, validLuhn(amex), "amex number %s fails Luhn", amex)
	}
}

func TestLuhnCheckDigit(t *testing.T) {
	// 4111111111111111 is the canonical Visa test number.
	assert.Equal(t, 1, luhnCheckDigit("411111111111111"))
	assert.True(t, validLuhn("4111111111111111"))
	assert.False(t, validLuhn("4111111111111112"))
	assert.False(t, validLuhn("4111x11111111111"))
}

func TestGenerateCVV(t *testing.T) {
	for i := 0; i < 50; i++ {
		cvv := generateCVV()
		require.Len(t, cvv, 3)
		n, err := strconv.Atoi(cvv)
		require.NoError(t, err)
		assert.GreaterOrEqual(t, n, 100)
		assert.LessOrEqual(t, n, 999)
	}
}

func TestCardExpiration(t *testing.T) {
	now := time.Date(2026, time.August, 15, 10, 30, 0, 0, time.UTC)
	expiry := cardExpiration(now)

	// Last instant of the issuing month, three years out.
	assert.Equal(t, 2029, expiry.Year())
	assert.Equal(t, time.August, expiry.Month())
	assert.Equal(t, 31, expiry.Day())
	assert.True(t, expiry.Before(time.Date(2029, time.September, 1, 0, 0, 0, 0, time.UTC)))

	// Month-end arithmetic survives December.
	december := cardExpiration(time.Date(2026, time.December, 1, 0, 0, 0, 0, time.UTC))
	assert.Equal(t, 2029, december.Year())
	assert.Equal(t, time.December, december.Month())
	assert.Equal(t, 31, december.Day())
}
