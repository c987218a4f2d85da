// Package difficulty turns a verified puzzle definition into a
// human-aligned difficulty score, an estimated solve time, and one of five
// size-relative ordinal labels.
package difficulty

import (
	"errors"
	"fmt"
)

// Level is an ordinal difficulty label, size-relative by percentile.
type Level int

const (
	Easiest Level = iota
	Easy
	Medium
	Hard
	Expert

	levelCount = 5
)

var ErrUnknownLevel = errors.New("unknown difficulty level")

var levelNames = [levelCount]string{"easiest", "easy", "medium", "hard", "expert"}

// String returns the corpus label for the level.
func (l Level) String() string {
	if l < 0 || l >= levelCount {
		return fmt.Sprintf("Level(%d)", int(l))
	}
	return levelNames[l]
}

// Valid reports whether l is one of the five defined levels.
func (l Level) Valid() bool {
	return l >= 0 && l < levelCount
}

// ParseLevel converts a corpus label into a Level.
func ParseLevel(s string) (Level, error) {
	for i, name := range levelNames {
		if s == name {
			return Level(i), nil
		}
	}
	return 0, fmt.Errorf("%w: %q", ErrUnknownLevel, s)
}

// Levels returns all levels in ascending order.
func Levels() []Level {
	return []Level{Easiest, Easy, Medium, Hard, Expert}
}
