package rules

import "strings"

// atoi reads an optionally signed leading decimal integer from s the way C's
// atoi does: leading blanks are skipped, parsing stops at the first
// non-digit, and a string with no digits yields 0. Values beyond the int
// range saturate.
func atoi(s string) int {
	s = strings.TrimLeft(s, " \t\n\v\f\r")
	neg := false
	if s != "" && (s[0] == '-' || s[0] == '+') {
		neg = s[0] == '-'
		s = s[1:]
	}

	const limit = int(^uint(0) >> 1)
	n := 0
	for i := 0; i < len(s) && s[i] >= '0' && s[i] <= '9'; i++ {
		d := int(s[i] - '0')
		if n > (limit-d)/10 {
			n = limit
			break
		}
		n = n*10 + d
	}
	if neg {
		return -n
	}
	return n
}

// truthy reports whether a metadata flag value is set: a non-zero integer or
// anything starting with 'y'.
func truthy(s string) bool {
	return atoi(s) != 0 || strings.HasPrefix(s, "y")
}
