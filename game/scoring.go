package game

import "time"

const (
	MaxLevel      = 10
	LinesPerLevel = 10

	BaseTickInterval = 700 * time.Millisecond
	TickIntervalStep = 60 * time.Millisecond
	MinTickInterval  = 80 * time.Millisecond

	SoftDropPoints = 1
	HardDropPoints = 2
)

// lineClearPoints is indexed by the number of rows cleared at once.
var lineClearPoints = [...]int{0, 40, 100, 300, 1200}

// LevelFor derives the level from the total number of cleared lines.
func LevelFor(lines int) int {
	if lines <= 0 {
		return 0
	}
	return min(MaxLevel, lines/LinesPerLevel)
}

// TickIntervalFor returns the gravity interval at level.
func TickIntervalFor(level int) time.Duration {
	return max(MinTickInterval, BaseTickInterval-time.Duration(level)*TickIntervalStep)
}

// LineClearScore is the score for clearing cleared rows at once while
// playing at level.
func LineClearScore(cleared, level int) int {
	if cleared <= 0 {
		return 0
	}
	cleared = min(cleared, len(lineClearPoints)-1)
	return lineClearPoints[cleared] * (level + 1)
}
