package fakeprovider

import (
	"strconv"
	"strings"
)

var innWeights = [9]int{2, 4, 10, 3, 5, 9, 4, 6, 8}

// BusinessINN returns a 10-digit legal-entity INN with a valid check digit.
func (p *Provider) BusinessINN() string {
	digits := make([]int, 10)
	digits[0] = 1 + p.intN(9)
	for i := 1; i < 9; i++ {
		digits[i] = p.intN(10)
	}
	digits[9] = innCheckDigit(digits[:9])
	return joinDigits(digits)
}

// BusinessOGRN returns a 13-digit OGRN with a valid check digit.
func (p *Provider) BusinessOGRN() string {
	var b strings.Builder
	b.WriteString(p.choice([]string{"1", "5"}))
	b.WriteString(twoDigits(2 + p.intN(23))) // registration year
	b.WriteString(twoDigits(1 + p.intN(89))) // region
	for i := 0; i < 7; i++ {
		b.WriteByte(byte('0' + p.intN(10)))
	}
	body := b.String()
	n, _ := strconv.ParseInt(body, 10, 64)
	return body + strconv.FormatInt(n%11%10, 10)
}

func innCheckDigit(digits []int) int {
	sum := 0
	for i, d := range digits {
		sum += d * innWeights[i]
	}
	return sum % 11 % 10
}

// ValidINN reports whether s is a 10-digit INN with a correct check digit.
func ValidINN(s string) bool {
	if len(s) != 10 {
		return false
	}
	digits := make([]int, 10)
	for i, r := range s {
		if r < '0' || r > '9' {
			return false
		}
		digits[i] = int(r - '0')
	}
	return innCheckDigit(digits[:9]) == digits[9]
}

// ValidOGRN reports whether s is a 13-digit OGRN with a correct check digit.
func ValidOGRN(s string) bool {
	if len(s) != 13 {
		return false
	}
	body, err := strconv.ParseInt(s[:12], 10, 64)
	if err != nil {
		return false
	}
	return strconv.FormatInt(body%11%10, 10) == s[12:]
}

func twoDigits(n int) string {
	if n < 10 {
		return "0" + strconv.Itoa(n)
	}
	return strconv.Itoa(n)
}

func joinDigits(digits []int) string {
	var b strings.Builder
	b.Grow(len(digits))
	for _, d := range digits {
		b.WriteByte(byte('0' + d))
	}
	return b.String()
}
