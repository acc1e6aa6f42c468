package util

import (
	"fmt"
	"strconv"
	"strings"
)

// TrimQuotes removes one pair of surrounding double quotes from a string.
// Quotes inside the value, escaped ones included, are kept.
func TrimQuotes(s string) string {
	if len(s) >= 2 && strings.HasPrefix(s, `"`) && strings.HasSuffix(s, `"`) {
		return s[1 : len(s)-1]
	}
	return s
}

// FixEscapeQuotes replaces escaped double quotes ("") with single double quotes (").
func FixEscapeQuotes(s string) string {
	return strings.ReplaceAll(s, `""`, `"`)
}

// CleanArgs trims surrounding whitespace and quotes from every argument and
// unescapes doubled quotes. The input slice is not modified.
func CleanArgs(args []string) []string {
	out := make([]string, len(args))
	for i, a := range args {
		out[i] = FixEscapeQuotes(TrimQuotes(strings.TrimSpace(a)))
	}
	return out
}

// ParseBoolArg parses a visibility style flag. It accepts what strconv.ParseBool
// accepts plus "show" and "hide".
func ParseBoolArg(s string) (bool, error) {
	switch strings.ToLower(s) {
	case "show":
		return true, nil
	case "hide":
		return false, nil
	}
	v, err := strconv.ParseBool(s)
	if err != nil {
		return false, fmt.Errorf("invalid flag %q: %w", s, err)
	}
	return v, nil
}
