package catalog

import (
	"strings"

	"github.com/jonathan/internship-finder/internal/types"
)

// MaxSuggestions caps the number of suggested titles.
const MaxSuggestions = 10

// Suggest returns the titles of the first MaxSuggestions entries, in catalog
// order, for which some skill (trimmed) exactly equals one of the entry's
// required skills. There is no ranking by overlap.
func Suggest(skills types.SkillSet, entries []types.CatalogEntry) []string {
	suggestions := make([]string, 0, MaxSuggestions)
	for _, entry := range entries {
		if len(suggestions) == MaxSuggestions {
			break
		}
		if matchesAny(skills, entry.RequiredSkills) {
			suggestions = append(suggestions, entry.Title)
		}
	}
	return suggestions
}

// SuggestFromFile loads the catalog at path and runs Suggest over it.
func SuggestFromFile(skills types.SkillSet, path string) ([]string, error) {
	entries, err := Load(path)
	if err != nil {
		return nil, err
	}
	return Suggest(skills, entries), nil
}

func matchesAny(skills types.SkillSet, required []string) bool {
	for _, skill := range skills {
		skill = strings.TrimSpace(skill)
		for _, req := range required {
			if skill == req {
				return true
			}
		}
	}
	return false
}
