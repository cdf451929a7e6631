package dataset

import (
	"math"
	"strings"
)

// CoerceSales converts a sales cell to a unit count.
//
// The leading run of decimal digits is used, so "12.7" reads as 12 and "1,234"
// as 1. Blank, non-numeric and negative cells read as 0. Malformed cells are
// never an error.
func CoerceSales(cell string) int {
	s := strings.TrimSpace(cell)
	if strings.HasPrefix(s, "+") {
		s = s[1:]
	}

	n := 0
	for i := 0; i < len(s); i++ {
		c := s[i]
		if c < '0' || c > '9' {
			break
		}
		d := int(c - '0')
		if n > (math.MaxInt-d)/10 {
			// overflow
			return 0
		}
		n = n*10 + d
	}
	return n
}
