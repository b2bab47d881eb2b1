package jpltables

import (
	"strconv"
	"strings"
)

// NormalizeExponent rewrites a Fortran double precision literal such as
// "0.1234D+05" into the form strconv understands ("0.1234e+05").
func NormalizeExponent(token string) string {
	return strings.ReplaceAll(token, "D", "e")
}

// ParseFloatToken normalizes and parses a numeric token from a header or data file.
func ParseFloatToken(token string) (float64, error) {
	v, err := strconv.ParseFloat(NormalizeExponent(token), 64)
	if err != nil {
		return 0, &TokenFormatError{Token: token, Err: err}
	}
	return v, nil
}

// parseIntToken parses a GROUP 1050 table entry.
func parseIntToken(token string) (int, error) {
	v, err := strconv.Atoi(token)
	if err != nil {
		return 0, &TokenFormatError{Token: token, Err: err}
	}
	return v, nil
}
