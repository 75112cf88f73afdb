package util

import (
	"strconv"
	"strings"
)

// NormalizeValueToken strips thousands separators and maps the OCR letter/
// digit confusions seen in scanned reports ('o'/'O' read for '0') so the
// token can be parsed as a number.
func NormalizeValueToken(token string) string {
	s := strings.TrimSpace(token)
	s = strings.ReplaceAll(s, ",", "")
	s = strings.ReplaceAll(s, "o", "0")
	s = strings.ReplaceAll(s, "O", "0")
	return s
}

func ParseValue(token string) (float64, error) {
	return strconv.ParseFloat(NormalizeValueToken(token), 64)
}
