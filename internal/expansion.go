package internal

import "regexp"

// ExpansionMap holds the expanded replacement strings keyed by the end offset
// of the whole match that produced them
type ExpansionMap map[int][]string

// IndexExpansions expands template once per match and files the result under
// the match's end offset, preserving match order for shared offsets.
//
// The template uses regexp.Expand syntax: $1, ${1}, $name and ${name}. A group
// that did not participate expands to the empty string.
func IndexExpansions(line string, re *regexp.Regexp, matches []Match, template string) ExpansionMap {
	expansions := make(ExpansionMap, len(matches))
	for _, m := range matches {
		end := m.Whole().End
		expanded := re.ExpandString(nil, template, line, m.loc)
		expansions[end] = append(expansions[end], string(expanded))
	}
	return expansions
}
