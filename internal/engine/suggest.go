package engine

import "strings"

// DefaultSuggestionCutoff is the similarity threshold below which no
// suggestion is offered.
const DefaultSuggestionCutoff = 0.75

// Similarity computes a Ratcliff-Obershelp ratio between two strings:
// twice the matched character count over the combined length, in [0, 1].
func Similarity(a, b string) float64 {
	if a == b {
		return 1
	}
	total := len(a) + len(b)
	if total == 0 {
		return 1
	}
	return 2 * float64(matchedChars(a, b)) / float64(total)
}

// matchedChars counts characters in matching blocks: the longest common
// substring, then recursively the pieces to its left and right.
func matchedChars(a, b string) int {
	ai, bi, size := longestMatch(a, b)
	if size == 0 {
		return 0
	}
	return size +
		matchedChars(a[:ai], b[:bi]) +
		matchedChars(a[ai+size:], b[bi+size:])
}

// longestMatch finds the longest common substring via dynamic programming
// over byte positions.
func longestMatch(a, b string) (ai, bi, size int) {
	if len(a) == 0 || len(b) == 0 {
		return 0, 0, 0
	}
	prev := make([]int, len(b)+1)
	cur := make([]int, len(b)+1)
	for i := 1; i <= len(a); i++ {
		for j := 1; j <= len(b); j++ {
			if a[i-1] == b[j-1] {
				cur[j] = prev[j-1] + 1
				if cur[j] > size {
					size = cur[j]
					ai = i - size
					bi = j - size
				}
			} else {
				cur[j] = 0
			}
		}
		prev, cur = cur, prev
	}
	return ai, bi, size
}

// BestMatch returns a suggestion only when exactly one candidate scores at
// or above the cutoff. Two or more candidates above the cutoff are treated
// as ambiguous and suppress the suggestion entirely: silence is preferred
// over a wrong guess.
func BestMatch(value string, candidates []string, cutoff float64) (string, bool) {
	if cutoff <= 0 {
		cutoff = DefaultSuggestionCutoff
	}
	lowered := strings.ToLower(value)
	var match string
	count := 0
	for _, candidate := range candidates {
		if Similarity(lowered, strings.ToLower(candidate)) >= cutoff {
			match = candidate
			count++
			if count > 1 {
				return "", false
			}
		}
	}
	if count == 1 {
		return match, true
	}
	return "", false
}
