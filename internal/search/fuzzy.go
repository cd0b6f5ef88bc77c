// ABOUTME: Fuzzy filtering of installed specifications for list/info lookups
// ABOUTME: Matches against "name title" haystacks, best score first

package search

import (
	"strings"

	"github.com/sahilm/fuzzy"

	"github.com/smcget/smcget/internal/repo"
)

// Filter returns the specifications matching query, best match first. An
// empty or whitespace query returns all specifications in index order.
func Filter(query string, specs []*repo.PackageSpecification) []*repo.PackageSpecification {
	if strings.TrimSpace(query) == "" {
		return specs
	}

	haystack := make([]string, len(specs))
	for i, s := range specs {
		haystack[i] = s.Name + " " + s.Title
	}

	matches := fuzzy.Find(query, haystack)
	out := make([]*repo.PackageSpecification, 0, len(matches))
	for _, m := range matches {
		out = append(out, specs[m.Index])
	}
	return out
}
