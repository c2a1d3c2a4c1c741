package duration

import "math"

// Bound is the largest value a single term may reach. Overflow checks are
// made against it, never against the accumulated total.
const Bound = math.MaxInt32

// Seconds per unit.
const (
	Minute = 60
	Hour   = 60 * Minute
	Day    = 24 * Hour
	Week   = 7 * Day
	Year   = 365 * Day
)

// unitSeconds maps a lower-case unit letter to its length in seconds.
var unitSeconds = map[byte]int{
	's': 1,
	'm': Minute,
	'h': Hour,
	'd': Day,
	'w': Week,
	'y': Year,
}

// Parse returns the number of seconds described by s, a concatenation of
// <digits><unit> terms. Units are s, m, h, d, w and y in either case; a
// trailing digit run without a unit counts as seconds. An unknown unit makes
// its term contribute nothing.
//
// Parse returns 0 for the empty string and whenever a digit run or a unit
// multiplication would exceed Bound. The sum of the terms is not re-checked;
// it is kept in a 64-bit accumulator, so it cannot wrap for any input of
// realistic length.
func Parse(s string) int {
	if s == "" {
		return 0
	}

	var total int64
	i := 0
	for i < len(s) {
		term := 0
		for i < len(s) && isDigit(s[i]) {
			d := int(s[i] - '0')
			if term > Bound/10 || (term == Bound/10 && d > Bound%10) {
				return 0
			}
			term = term*10 + d
			i++
		}

		if i == len(s) {
			// Unit-less trailing run: seconds.
			total += int64(term)
			break
		}

		mult, ok := unitSeconds[lower(s[i])]
		switch {
		case !ok:
			term = 0
		case term > Bound/mult:
			return 0
		default:
			term *= mult
		}
		total += int64(term)
		i++
	}

	if total > math.MaxInt {
		return math.MaxInt
	}
	return int(total)
}

// Seconds is Parse with negative results clamped to zero.
func Seconds(s string) int {
	if n := Parse(s); n > 0 {
		return n
	}
	return 0
}

func isDigit(c byte) bool { return c >= '0' && c <= '9' }

func lower(c byte) byte {
	if c >= 'A' && c <= 'Z' {
		return c + ('a' - 'A')
	}
	return c
}
