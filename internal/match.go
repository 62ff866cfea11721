package internal

import (
	"fmt"
	"regexp"
)

// CaptureSpan is the byte range of one capture group inside a line.
// Group 0 is always the whole match.
type CaptureSpan struct {
	Group int
	Start int
	End   int
}

// Len returns the number of bytes covered by the span
func (s CaptureSpan) Len() int {
	return s.End - s.Start
}

// Match holds the participating capture groups of one whole match
type Match struct {
	Index    int
	Captures []CaptureSpan

	// raw submatch offsets as reported by regexp, kept for template expansion
	loc []int
}

// Whole returns the span of group 0
func (m Match) Whole() CaptureSpan {
	return m.Captures[0]
}

// String returns a string representation of the match
func (m Match) String() string {
	return fmt.Sprintf("Match{index:%d,start:%d,end:%d,groups:%d}",
		m.Index, m.Whole().Start, m.Whole().End, len(m.Captures))
}

// CompilePattern compiles the find expression, wrapping failures in ErrInvalidPattern
func CompilePattern(pattern string) (*regexp.Regexp, error) {
	re, err := regexp.Compile(pattern)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidPattern, err)
	}
	return re, nil
}

// Collect finds every non-overlapping match of re in line, left to right.
// Groups that did not participate in a match are left out of its captures.
func Collect(line string, re *regexp.Regexp) []Match {
	locs := re.FindAllStringSubmatchIndex(line, -1)
	if len(locs) == 0 {
		return nil
	}

	matches := make([]Match, 0, len(locs))
	for i, loc := range locs {
		captures := make([]CaptureSpan, 0, len(loc)/2)
		for group := 0; group*2 < len(loc); group++ {
			start, end := loc[group*2], loc[group*2+1]
			if start < 0 {
				continue
			}
			captures = append(captures, CaptureSpan{Group: group, Start: start, End: end})
		}
		matches = append(matches, Match{
			Index:    i,
			Captures: captures,
			loc:      loc,
		})
	}

	return matches
}
