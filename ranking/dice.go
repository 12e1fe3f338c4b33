package ranking

import (
	"strings"
	"unicode"
)

// Dice returns the Sørensen–Dice coefficient of the character bigrams of a
// and b, ignoring whitespace. Identical strings score 1; a string with
// fewer than two characters scores 0 against any other.
func Dice(a, b string) float64 {
	ra := []rune(stripSpace(a))
	rb := []rune(stripSpace(b))
	if string(ra) == string(rb) {
		return 1
	}
	if len(ra) < 2 || len(rb) < 2 {
		return 0
	}

	bigrams := make(map[[2]rune]int, len(ra)-1)
	for i := 0; i < len(ra)-1; i++ {
		bigrams[[2]rune{ra[i], ra[i+1]}]++
	}
	shared := 0
	for i := 0; i < len(rb)-1; i++ {
		bg := [2]rune{rb[i], rb[i+1]}
		if bigrams[bg] > 0 {
			bigrams[bg]--
			shared++
		}
	}
	return float64(2*shared) / float64(len(ra)+len(rb)-2)
}

func stripSpace(s string) string {
	return strings.Map(func(r rune) rune {
		if unicode.IsSpace(r) {
			return -1
		}
		return r
	}, s)
}
