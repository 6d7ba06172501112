// Package skills detects a fixed vocabulary of skill keywords in resume text.
package skills

import (
	"regexp"
	"strings"

	"github.com/jonathan/internship-finder/internal/types"
)

// Vocabulary lists the canonical skill names, in reporting order.
var Vocabulary = []string{"Python", "Java", "HTML", "CSS", "JavaScript", "Machine Learning"}

// skillPattern matches whole-word vocabulary terms, case-insensitively.
// "Machine Learning" requires exactly one space between the words.
var skillPattern = regexp.MustCompile(`(?i)\b(?:Python|Java|HTML|CSS|JavaScript|Machine Learning)\b`)

// canonical maps a lowercased match back to its vocabulary entry.
var canonical = func() map[string]string {
	m := make(map[string]string, len(Vocabulary))
	for _, term := range Vocabulary {
		m[strings.ToLower(term)] = term
	}
	return m
}()

// Match returns the distinct vocabulary terms found in text, in vocabulary order.
// Empty or skill-free text yields an empty, non-nil set.
func Match(text string) types.SkillSet {
	found := make(map[string]bool)
	for _, m := range skillPattern.FindAllString(text, -1) {
		if term, ok := canonical[strings.ToLower(m)]; ok {
			found[term] = true
		}
	}

	result := make(types.SkillSet, 0, len(found))
	for _, term := range Vocabulary {
		if found[term] {
			result = append(result, term)
		}
	}
	return result
}
