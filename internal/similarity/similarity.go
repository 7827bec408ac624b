// Package similarity provides the edit-distance and overlap primitives
// used by the match scorer. Inputs are expected to be normalized already.
package similarity

import "strings"

// Levenshtein returns the edit distance between a and b, counted in
// runes. It is symmetric and zero for identical strings.
func Levenshtein(a, b string) int {
	ra, rb := []rune(a), []rune(b)
	if len(ra) == 0 {
		return len(rb)
	}
	if len(rb) == 0 {
		return len(ra)
	}

	prev := make([]int, len(rb)+1)
	curr := make([]int, len(rb)+1)
	for j := range prev {
		prev[j] = j
	}

	for i := 1; i <= len(ra); i++ {
		curr[0] = i
		for j := 1; j <= len(rb); j++ {
			cost := 1
			if ra[i-1] == rb[j-1] {
				cost = 0
			}
			curr[j] = min(prev[j]+1, curr[j-1]+1, prev[j-1]+cost)
		}
		prev, curr = curr, prev
	}
	return prev[len(rb)]
}

// Ratio returns similarity in [0,1] derived from the edit distance:
// (maxLen - lev) / maxLen. Two empty strings are fully similar.
func Ratio(a, b string) float64 {
	la, lb := len([]rune(a)), len([]rune(b))
	maxLen := la
	if lb > maxLen {
		maxLen = lb
	}
	if maxLen == 0 {
		return 1
	}
	return float64(maxLen-Levenshtein(a, b)) / float64(maxLen)
}

// TokenOverlap scores how well the query tokens are covered by the
// candidate tokens, in [0,1]. Each query token contributes its best
// match across candidate tokens: exact 1.0, substring either direction
// 0.8, edit-distance similarity above 0.7 scaled by 0.7. The sum is
// divided by the query token count.
func TokenOverlap(queryTokens, candidateTokens []string) float64 {
	if len(queryTokens) == 0 {
		return 0
	}

	var sum float64
	for _, qt := range queryTokens {
		var best float64
		for _, ct := range candidateTokens {
			var c float64
			switch {
			case qt == ct:
				c = 1.0
			case strings.Contains(ct, qt) || strings.Contains(qt, ct):
				c = 0.8
			default:
				if r := Ratio(qt, ct); r > 0.7 {
					c = r * 0.7
				}
			}
			if c > best {
				best = c
			}
			if best == 1.0 {
				break
			}
		}
		sum += best
	}
	return sum / float64(len(queryTokens))
}

// CommonPrefixRatio returns the length of the shared prefix of a and b
// divided by the length of a, in [0,1].
func CommonPrefixRatio(a, b string) float64 {
	ra, rb := []rune(a), []rune(b)
	if len(ra) == 0 {
		return 0
	}
	n := 0
	for n < len(ra) && n < len(rb) && ra[n] == rb[n] {
		n++
	}
	return float64(n) / float64(len(ra))
}
