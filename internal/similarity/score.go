package similarity

// Score rates how alike two words look. Matching 2- and 3-letter prefix
// and suffix fragments add their length, near-equal lengths add up to 3,
// and every rune matching at the same position adds 1. Comparison is
// case-insensitive.
func Score(target, candidate string) int {
	t := []rune(normalize(target))
	c := []rune(normalize(candidate))

	score := 0
	for _, n := range []int{2, 3} {
		if len(t) >= n && len(c) >= n {
			if string(t[:n]) == string(c[:n]) {
				score += n
			}
			if string(t[len(t)-n:]) == string(c[len(c)-n:]) {
				score += n
			}
		}
	}

	diff := len(t) - len(c)
	if diff < 0 {
		diff = -diff
	}
	if diff <= 1 {
		score += 2
	}
	if diff <= 2 {
		score++
	}

	for i := 0; i < min(len(t), len(c)); i++ {
		if t[i] == c[i] {
			score++
		}
	}
	return score
}
