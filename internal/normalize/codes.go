package normalize

import (
	"fmt"
	"strconv"
	"strings"
)

// Code trims and uppercases a procedure code.
func Code(v string) string {
	return strings.ToUpper(strings.TrimSpace(v))
}

// ZIP validates and canonicalizes a ZIP code: digits only, left-padded to
// five. Returns an error for anything that is not 1–5 digits.
func ZIP(v string) (string, error) {
	s := strings.TrimSpace(v)
	if s == "" {
		return "", fmt.Errorf("empty ZIP code")
	}
	if len(s) > 5 {
		return "", fmt.Errorf("ZIP code %q is longer than 5 digits", s)
	}
	for _, r := range s {
		if r < '0' || r > '9' {
			return "", fmt.Errorf("ZIP code %q is not numeric", s)
		}
	}
	return strings.Repeat("0", 5-len(s)) + s, nil
}

// LocalityNumber canonicalizes a locality number. Source files disagree on
// formatting ("1", "01", "1.0"), so the value is parsed numerically and
// re-rendered without leading zeros.
func LocalityNumber(v string) (string, error) {
	s := strings.TrimSpace(v)
	if s == "" {
		return "", fmt.Errorf("missing locality number")
	}
	f, err := strconv.ParseFloat(s, 64)
	if err != nil {
		return "", fmt.Errorf("locality number %q is not numeric", s)
	}
	return strconv.Itoa(int(f)), nil
}
