package service

import (
	"fmt"
	"math/rand/v2"
	"strconv"
	"time"

	"github.com/Zxcchinii/ProjetWeb/internal/model"
)

// generateCardNumber produces a Luhn-valid card number with a brand-specific
// prefix and length: Visa "4"/16, Mastercard "51".."55"/16, Amex "34" or
// "37"/15.
func generateCardNumber(cardType model.CardType) string {
	var prefix string
	var length int

	switch cardType {
	case model.CardTypeVisa:
		prefix = "4"
		length = 16
	case model.CardTypeMastercard:
		prefix = "5" + strconv.Itoa(rand.IntN(5)+1)
		length = 16
	case model.CardTypeAmex:
		if rand.IntN(2) == 0 {
			prefix = "34"
		} else {
			prefix = "37"
		}
		length = 15
	default:
		prefix = "4"
		length = 16
	}

	number := prefix
	for i := 0; i < length-len(prefix)-1; i++ {
		number += strconv.Itoa(rand.IntN(10))
	}

	return number + strconv.Itoa(luhnCheckDigit(number))
}

// luhnCheckDigit computes the Luhn check digit for the given digit string:
// from the rightmost digit moving left, double every second digit, subtract
// nine when the doubled value exceeds nine, sum everything; the check digit
// is (10 - sum mod 10) mod 10.
func luhnCheckDigit(number string) int {
	sum := 0
	double := true

	for i := len(number) - 1; i >= 0; i-- {
		digit := int(number[i] - '0')
		if double {
			digit *= 2
			if digit > 9 {
				digit -= 9
			}
		}
		sum += digit
		double = !double
	}

	return (10 - sum%10) % 10
}

// validLuhn reports whether a full card number passes the Luhn checksum.
func validLuhn(number string) bool {
	sum := 0
	double := false

	for i := len(number) - 1; i >= 0; i-- {
		digit := int(number[i] - '0')
		if digit < 0 || digit > 9 {
			return false
		}
		if double {
			digit *= 2
			if digit > 9 {
				digit -= 9
			}
		}
		sum += digit
		double = !double
	}

	return sum%10 == 0
}

// generateCVV produces a 3-digit CVV between 100 and 999.
func generateCVV() string {
	return fmt.Sprintf("%d", rand.IntN(900)+100)
}

// cardExpiration returns the last instant of the month three years from now.
func cardExpiration(now time.Time) time.Time {
	firstOfMonth := time.Date(now.Year()+3, now.Month(), 1, 0, 0, 0, 0, now.Location())
	return firstOfMonth.AddDate(0, 1, 0).Add(-time.Millisecond)
}
