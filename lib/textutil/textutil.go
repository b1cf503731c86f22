package textutil

import (
	"regexp"
	"strings"
)

var whitespaceRegex = regexp.MustCompile(`\s+`)

// the portal pads almost every cell with non-breaking spaces,
// both as the raw entity and as the decoded   rune.
func StripNbsp(s string) string {
	s = strings.ReplaceAll(s, "&nbsp;", "")
	return strings.ReplaceAll(s, " ", "")
}

func NormalizeName(name string) string {
	name = strings.ToLower(name)
	name = strings.Trim(name, " \n\t")
	name = whitespaceRegex.ReplaceAllString(name, "")
	return name
}

func MatchName(name string, matchers []string) bool {
	name = NormalizeName(name)
	for _, m := range matchers {
		if strings.Contains(name, m) {
			return true
		}
	}
	return false
}
