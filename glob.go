package samsungdocs

import (
	"regexp"
	"strings"
)

// MatchGlob matches subject against a restricted glob pattern: '*' matches
// any run of characters (including none), '?' matches exactly one
// character, and every other character — including '/' and '.' — is a
// literal. The pattern is anchored at both ends.
func MatchGlob(subject, pattern string) bool {
	return globRegexp(pattern).MatchString(subject)
}

func globRegexp(pattern string) *regexp.Regexp {
	var sb strings.Builder
	sb.WriteString("^")
	for _, r := range pattern {
		switch r {
		case '*':
			sb.WriteString(".*")
		case '?':
			sb.WriteString(".")
		default:
			sb.WriteString(regexp.QuoteMeta(string(r)))
		}
	}
	sb.WriteString("$")
	return regexp.MustCompile(sb.String())
}

// KeyFilter is a predicate over page keys, built from zero or more glob
// patterns over URL paths. A nil filter accepts everything.
type KeyFilter func(PageKey) bool

// NewKeyFilter compiles patterns into a KeyFilter that accepts a key when
// its URL path matches at least one pattern. Returns nil when no patterns
// are given, meaning no restriction.
func NewKeyFilter(patterns []string) KeyFilter {
	if len(patterns) == 0 {
		return nil
	}
	regexps := make([]*regexp.Regexp, len(patterns))
	for i, pattern := range patterns {
		regexps[i] = globRegexp(pattern)
	}
	return func(key PageKey) bool {
		path, err := PathForKey(key)
		if err != nil {
			return false
		}
		for _, re := range regexps {
			if re.MatchString(path) {
				return true
			}
		}
		return false
	}
}
