package analysis

// Similarity is the share of positions holding the same rune in a and b,
// over the longer length. Purely positional: no alignment or edit distance.
func Similarity(a, b string) float64 {
	ra, rb := []rune(a), []rune(b)
	minLen, maxLen := len(ra), len(rb)
	if minLen > maxLen {
		minLen, maxLen = maxLen, minLen
	}
	if maxLen == 0 {
		return 0
	}
	same := 0
	for i := 0; i < minLen; i++ {
		if ra[i] == rb[i] {
			same++
		}
	}
	return float64(same) / float64(maxLen)
}
