package domain

// LevelForTotal derives the display level from lifetime coins.
func LevelForTotal(totalCoins int64) int {
	if totalCoins <= 0 {
		return MinLevel
	}
	steps := totalCoins / LevelStep
	if steps >= MaxLevel-MinLevel {
		return MaxLevel
	}
	return MinLevel + int(steps)
}
