package extract

import (
	"regexp"
	"strconv"
	"strings"
)

// RaceQualifiers are the contest facts some jurisdictions fold into the
// office title.
type RaceQualifiers struct {
	IsSpecial   bool
	IsUnexpired bool
	NumElected  int
}

var (
	electCount    = regexp.MustCompile(`(?i)\(\s*elect\s+(\d+)\s*\)`)
	specialMarker = regexp.MustCompile(`(?i)\(?\s*\bspecial election\b(?:\s+for\b)?\s*\)?|\(\s*special\s*\)`)
	unexpiredTerm = regexp.MustCompile(`(?i)[-(]?\s*\bunexpired term\b\s*\)?`)
	danglingMarks = regexp.MustCompile(`\s*[-–]\s*$|^\s*[-–]\s*`)
)

// Qualifiers detects special or unexpired term elections and the number of
// seats a race fills, independently of the office itself.
func Qualifiers(title string) RaceQualifiers {
	q := RaceQualifiers{NumElected: 1}
	if m := electCount.FindStringSubmatch(title); m != nil {
		if n, err := strconv.Atoi(m[1]); err == nil && n > 0 {
			q.NumElected = n
		}
	}
	q.IsSpecial = specialMarker.MatchString(title)
	q.IsUnexpired = unexpiredTerm.MatchString(title)
	return q
}

// Special reports whether the race is held outside the regular term cycle.
func (q RaceQualifiers) Special() bool {
	return q.IsSpecial || q.IsUnexpired
}

// StripQualifiers removes the race qualifiers from a title so the office
// rules only see the office itself.
func StripQualifiers(title string) string {
	title = electCount.ReplaceAllString(title, " ")
	title = specialMarker.ReplaceAllString(title, " ")
	title = unexpiredTerm.ReplaceAllString(title, " ")
	title = Clean(title)
	return strings.TrimSpace(danglingMarks.ReplaceAllString(title, ""))
}
