// Package render holds the pure formatting logic for answers and their
// cited sources. Nothing here touches the terminal.
package render

import (
	"math"
	"regexp"
	"strconv"
)

// sourcePattern matches "<name> (score=<float>)". The lazy name group and the
// unanchored tail mean a name that itself contains "(score=" splits at the
// first occurrence.
var sourcePattern = regexp.MustCompile(`(.+?)\s*\(score=([\d.]+)\)`)

// Source is a parsed source reference.
type Source struct {
	Raw      string
	Name     string
	Score    float64
	HasScore bool
}

// ParseSource parses a backend source string. Strings without a readable
// score come back with HasScore false and Name set to the raw string.
func ParseSource(s string) Source {
	src := Source{Raw: s, Name: s}

	m := sourcePattern.FindStringSubmatch(s)
	if m == nil {
		return src
	}
	score, ok := parseScore(m[2])
	if !ok {
		return src
	}

	src.Name = m[1]
	src.Score = score
	src.HasScore = true
	return src
}

// parseScore reads the longest prefix of digits that forms a number, so
// "1.2.3" reads as 1.2. A string with no such prefix has no score.
func parseScore(digits string) (float64, bool) {
	for end := len(digits); end > 0; end-- {
		if f, err := strconv.ParseFloat(digits[:end], 64); err == nil {
			return f, true
		}
	}
	return 0, false
}

// ParseSources parses every source string, keeping order.
func ParseSources(sources []string) []Source {
	out := make([]Source, len(sources))
	for i, s := range sources {
		out[i] = ParseSource(s)
	}
	return out
}

// Percent returns the relevance percent, or -1 when there is no score.
func (s Source) Percent() int {
	if !s.HasScore {
		return -1
	}
	return Relevance(s.Score)
}

// Level returns the relevance level. Unscored sources are LevelNone.
func (s Source) Level() Level {
	if !s.HasScore {
		return LevelNone
	}
	return LevelFor(s.Percent())
}

// Relevance converts a distance score (lower is better) to a 0-100 percent.
func Relevance(score float64) int {
	p := (1 - score) * 100
	p = math.Max(0, math.Min(100, p))
	return int(math.Round(p))
}

// Level is a relevance bucket used to color a source.
type Level int

const (
	LevelNone Level = iota
	LevelLow
	LevelFair
	LevelGood
	LevelHigh
)

// Lower bounds (inclusive) for each level.
const (
	highThreshold = 80
	goodThreshold = 60
	fairThreshold = 40
)

// LevelFor maps a relevance percent to its level.
func LevelFor(percent int) Level {
	switch {
	case percent >= highThreshold:
		return LevelHigh
	case percent >= goodThreshold:
		return LevelGood
	case percent >= fairThreshold:
		return LevelFair
	default:
		return LevelLow
	}
}

// Color is the hex color for the level.
func (l Level) Color() string {
	switch l {
	case LevelHigh:
		return "#28a745"
	case LevelGood:
		return "#17a2b8"
	case LevelFair:
		return "#ffc107"
	case LevelLow:
		return "#dc3545"
	default:
		return ""
	}
}

func (l Level) String() string {
	switch l {
	case LevelHigh:
		return "high"
	case LevelGood:
		return "good"
	case LevelFair:
		return "fair"
	case LevelLow:
		return "low"
	default:
		return "none"
	}
}
