package engine

// XPPerLevel is the XP span of one level.
const XPPerLevel = 500

// ApplyXP adds delta to total, never going below zero.
func ApplyXP(total, delta int) int {
	return max(0, total+delta)
}

// ApplyCredits adds delta to total, never going below zero.
func ApplyCredits(total, delta int) int {
	return max(0, total+delta)
}

func Level(totalXP int) int {
	return max(0, totalXP) / XPPerLevel
}

// LevelProgressPercent is the share of the current level already earned, 0 to <100.
func LevelProgressPercent(totalXP int) float64 {
	return float64(max(0, totalXP)%XPPerLevel) / XPPerLevel * 100
}

// DisplayProgressPercent clamps progress to [5,100] so a progress bar is never empty.
func DisplayProgressPercent(totalXP int) float64 {
	return min(100, max(5, LevelProgressPercent(totalXP)))
}
