package search

// editDistance returns the optimal string alignment distance between a and
// b: insertions, deletions, substitutions and transpositions of adjacent
// runes each cost 1. Once every cell of a row exceeds limit the walk stops
// and limit+1 is returned.
func editDistance(a, b []rune, limit int) int {
	m, n := len(a), len(b)
	if d := m - n; d > limit || -d > limit {
		return limit + 1
	}
	if m == 0 {
		return n
	}
	if n == 0 {
		return m
	}

	prev2 := make([]int, n+1)
	prev := make([]int, n+1)
	cur := make([]int, n+1)
	for j := range prev {
		prev[j] = j
	}

	for i := 1; i <= m; i++ {
		cur[0] = i
		rowMin := cur[0]
		for j := 1; j <= n; j++ {
			cost := 1
			if a[i-1] == b[j-1] {
				cost = 0
			}
			cur[j] = min(prev[j]+1, cur[j-1]+1, prev[j-1]+cost)
			if i > 1 && j > 1 && a[i-1] == b[j-2] && a[i-2] == b[j-1] {
				cur[j] = min(cur[j], prev2[j-2]+1)
			}
			rowMin = min(rowMin, cur[j])
		}
		if rowMin > limit {
			return limit + 1
		}
		prev2, prev, cur = prev, cur, prev2
	}
	return prev[n]
}
