package docs

import (
	"fmt"
	"regexp"
	"strings"
)

var (
	headingName  = regexp.MustCompile(`(?m)^## (\w+)`)
	sectionSplit = regexp.MustCompile(`(?m)^## `)
)

// HeadingNames returns the first word of every "## " heading in order.
func HeadingNames(overview string) []string {
	var names []string
	for _, m := range headingName.FindAllStringSubmatch(overview, -1) {
		names = append(names, m[1])
	}
	return names
}

// SplitSections cuts the overview at "## " headings. Each section keeps its
// heading text without the "## " marker. Text before the first heading is
// not a section.
func SplitSections(overview string) []string {
	parts := sectionSplit.Split(overview, -1)
	if len(parts) == 0 {
		return nil
	}
	if !strings.HasPrefix(overview, "## ") {
		parts = parts[1:]
	}

	sections := make([]string, 0, len(parts))
	for _, p := range parts {
		if p != "" {
			sections = append(sections, p)
		}
	}
	return sections
}

// MatchSections keeps the sections containing query, ignoring case.
func MatchSections(sections []string, query string) []string {
	lower := strings.ToLower(query)
	var matches []string
	for _, s := range sections {
		if strings.Contains(strings.ToLower(s), lower) {
			matches = append(matches, s)
		}
	}
	return matches
}

// FormatSearchResults renders matches back into a markdown document.
func FormatSearchResults(query string, matches []string) string {
	return fmt.Sprintf("# Search results for \"%s\"\n\n## %s", query, strings.Join(matches, "\n## "))
}
