package session

import (
	"fmt"
	"strings"
)

// Difficulty is the requested depth of an answer.
type Difficulty string

const (
	Beginner     Difficulty = "beginner"
	Intermediate Difficulty = "intermediate"
	Advanced     Difficulty = "advanced"
)

// DefaultDifficulty is used until the user picks another level.
const DefaultDifficulty = Intermediate

// Difficulties returns all levels in selector order.
func Difficulties() []Difficulty {
	return []Difficulty{Beginner, Intermediate, Advanced}
}

// Label is the display name, e.g. "Beginner".
func (d Difficulty) Label() string {
	if d == "" {
		return ""
	}
	return strings.ToUpper(string(d[:1])) + string(d[1:])
}

// Hint is the one-line description shown next to the selector.
func (d Difficulty) Hint() string {
	switch d {
	case Beginner:
		return "Simple explanations with examples"
	case Intermediate:
		return "Balanced detail and accessibility"
	case Advanced:
		return "Comprehensive legal analysis"
	default:
		return ""
	}
}

// Valid reports whether d is a known level.
func (d Difficulty) Valid() bool {
	switch d {
	case Beginner, Intermediate, Advanced:
		return true
	}
	return false
}

// ParseDifficulty accepts a level name in any case.
func ParseDifficulty(s string) (Difficulty, error) {
	d := Difficulty(strings.ToLower(strings.TrimSpace(s)))
	if !d.Valid() {
		return "", fmt.Errorf("unknown difficulty %q (use beginner, intermediate or advanced)", s)
	}
	return d, nil
}
